package ir

import "sync"

// Symbol is an interned name (operator kind, attribute name).
type Symbol uint32

// SymbolTable interns strings to Symbols. Safe for concurrent use.
type SymbolTable struct {
	mu    sync.RWMutex
	ids   map[string]Symbol
	names []string
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ids: make(map[string]Symbol)}
}

// Intern returns the symbol for name, assigning the next id on first use.
func (t *SymbolTable) Intern(name string) Symbol {
	t.mu.RLock()
	s, ok := t.ids[name]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.ids[name]; ok {
		return s
	}
	s = Symbol(len(t.names)) //nolint:gosec // G115: symbol count fits in uint32.
	t.ids[name] = s
	t.names = append(t.names, name)
	return s
}

// Lookup returns the symbol for name without interning it.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.ids[name]
	return s, ok
}

// Name returns the string for s, or "" if s was not issued by this table.
func (t *SymbolTable) Name(s Symbol) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(s) >= len(t.names) {
		return ""
	}
	return t.names[s]
}

// Len returns the number of interned symbols.
func (t *SymbolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
