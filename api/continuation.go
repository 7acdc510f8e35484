package api

// State is the evaluator state threaded through a continuation chain: the
// current value environment, the current macro environment, and the values
// produced so far by the step just completed.
type State struct {
	Env    *Environment
	Macros *Environment
	Values []Value
}

// Continuation is a single step of a suspended computation. Applying a
// continuation to the current state yields the next continuation and the next
// state. A nil next continuation signals that the computation is complete and
// the state's values are its result; a non-nil error abandons the chain.
//
// Continuations are heap-allocated closures: the trampoline applies them in a
// loop, so chaining never consumes host stack.
type Continuation func(s *State) (Continuation, *State, error)
