package api

// NewCons returns the pair (head . tail).
func NewCons(head, tail Value) *Cons {
	return &Cons{Head: head, Tail: tail}
}

// List builds a proper list from the given elements. List() is Nil.
func List(elems ...Value) Value {
	result := Nil
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewCons(elems[i], result)
	}
	return result
}

// IsList reports whether v is a proper list: Nil, or a chain of pairs whose
// final tail is Nil.
func IsList(v Value) bool {
	for IsCons(v) {
		v = v.(*Cons).Tail
	}
	return IsNil(v)
}

// Head returns the head of a pair, with ok false if v is not a pair.
func Head(v Value) (Value, bool) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, false
	}
	return c.Head, true
}

// Tail returns the tail of a pair, with ok false if v is not a pair.
func Tail(v Value) (Value, bool) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, false
	}
	return c.Tail, true
}

// Uncons splits a pair into its head and tail, with ok false if v is not a
// pair.
func Uncons(v Value) (head, tail Value, ok bool) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, nil, false
	}
	return c.Head, c.Tail, true
}

// Length returns the number of pairs in a proper list, with ok false for
// dotted structures and non-lists.
func Length(v Value) (int, bool) {
	n := 0
	for IsCons(v) {
		n++
		v = v.(*Cons).Tail
	}
	if !IsNil(v) {
		return 0, false
	}
	return n, true
}

// Append concatenates lists. All arguments but the last must be proper lists;
// the final argument becomes the tail of the result, so appending onto a
// non-list yields a dotted structure. Append() is Nil.
func Append(lists ...Value) (Value, bool) {
	if len(lists) == 0 {
		return Nil, true
	}
	last := lists[len(lists)-1]
	result := last
	for i := len(lists) - 2; i >= 0; i-- {
		elems, ok := Flatten(lists[i])
		if !ok {
			return nil, false
		}
		for j := len(elems) - 1; j >= 0; j-- {
			result = NewCons(elems[j], result)
		}
	}
	return result, true
}

// Flatten collects the elements of a proper list into a slice, with ok false
// for dotted structures and non-lists. Flatten(Nil) is an empty slice.
func Flatten(v Value) ([]Value, bool) {
	var elems []Value
	for IsCons(v) {
		c := v.(*Cons)
		elems = append(elems, c.Head)
		v = c.Tail
	}
	if !IsNil(v) {
		return nil, false
	}
	return elems, true
}
