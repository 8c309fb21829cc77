package ast

// Well-known package names referenced by the literal dumper (spec.md §4.4)
// and the special-form compilers. JSCL-lineage compilers single out their
// own package and the bootstrap package of standard symbols for abbreviated
// dumping; everything else carries its package name explicitly.
const (
	CompilerPackage = "JSCL"
	StandardPackage = "COMMON-LISP"
	KeywordPackage  = "KEYWORD"
)

// IsKeyword reports whether s lives in the keyword package, i.e. it is
// self-evaluating (`:foo` evaluates to itself).
func IsKeyword(s *Symbol) bool {
	return s.Package == KeywordPackage
}

// IsUninterned reports whether s has no home package, i.e. it was produced
// by something like (gensym) and must be dumped as `new Symbol(name)`
// rather than `intern(name, package)`.
func IsUninterned(s *Symbol) bool {
	return s.Package == ""
}

// SymbolTable interns symbols by (package, name) so that repeated
// references to "the same" symbol share one *Symbol, the way a real
// reader's package system would. This is a convenience for tests and the
// bootstrap unit, which build forms directly with Go constructors instead
// of through a reader.
type SymbolTable struct {
	table map[string]map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]map[string]*Symbol)}
}

func (t *SymbolTable) Intern(pkg, name string) *Symbol {
	byName, ok := t.table[pkg]
	if !ok {
		byName = make(map[string]*Symbol)
		t.table[pkg] = byName
	}
	if s, ok := byName[name]; ok {
		return s
	}
	s := NewSymbol(name, pkg)
	byName[name] = s
	return s
}

// Gensym always returns a fresh uninterned symbol, never reusing the table.
func (t *SymbolTable) Gensym(name string) *Symbol {
	return NewSymbol(name, "")
}
