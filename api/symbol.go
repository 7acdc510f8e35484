package api

// SymbolTable interns identifier text to unique symbols. Lookup is total:
// requesting an absent name creates and stores a new symbol. Symbols from the
// same table compare equal iff they came from the same slot, so pointer
// identity is symbol identity. A table lives as long as its session.
type SymbolTable struct {
	symbols map[string]*Symbol
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: map[string]*Symbol{}}
}

// Intern returns the symbol for name, creating it on first use.
func (t *SymbolTable) Intern(name string) *Symbol {
	if s, ok := t.symbols[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	t.symbols[name] = s
	return s
}
