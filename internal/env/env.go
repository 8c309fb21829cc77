// Package env implements the lexical environment of spec.md §3/§4.2: four
// namespaces (variable, function, block, gotag), each an ordered,
// persistent (immutable-extension) list of bindings with innermost-first
// lookup.
//
// The shape — a chain of immutable frames, extended by prepending rather
// than mutating — mirrors both the teacher's js_ast.Scope chain (parent
// pointers, member lookup walks outward) and robpike-lisp's scope stack
// (push/pop frames, innermost wins), adapted here to persistent sharing
// instead of a mutable stack, since spec.md §8 requires that `extend`
// never affects lookups against the original environment.
package env

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/lispjs/lispjs/internal/ast"
)

// Namespace identifies one of the four binding spaces. Names in different
// namespaces never collide (spec.md GLOSSARY).
type Namespace uint8

const (
	Variable Namespace = iota
	Function
	Block
	Gotag
	namespaceCount
)

// Kind classifies what a Binding's Value means (spec.md §3).
type Kind uint8

const (
	KindVariable Kind = iota
	KindFunction
	KindMacro
	KindSpecialMacro // symbol-macro, installed in the Variable namespace
	KindBlockLabel
	KindGotag
)

// DeclFlag is one bit of spec.md §3's declaration-flags set.
type DeclFlag uint8

const (
	DeclSpecial DeclFlag = 1 << iota
	DeclConstant
	DeclNotinline
	DeclUsed
	DeclMultipleValue
)

func (f DeclFlag) Has(flags DeclFlag) bool { return flags&f != 0 }

// GotagValue is the Value payload of a Kind == KindGotag binding: a
// (tagbody-id-var, tag-index) pair (spec.md §3).
type GotagValue struct {
	TagbodyIDVar string
	TagIndex     int
}

// Binding is one entry of one namespace. Value's dynamic type depends on
// Kind: KindVariable/KindFunction carry a JS identifier string;
// KindBlockLabel carries internal/compiler's per-block record (its
// *blockInfo); KindMacro/KindSpecialMacro carry a macro expander (represented
// as `interface{}` here so internal/macro can define the concrete
// expander type without an import cycle); KindGotag carries a GotagValue.
//
// Bindings are immutable once constructed and are always referenced by
// pointer, so a cache keyed on binding identity (internal/macro's
// ExpanderCache) stays valid for exactly the binding's lexical lifetime.
type Binding struct {
	Name  *ast.Symbol
	Kind  Kind
	Value interface{}
	Decls DeclFlag
}

func (b *Binding) HasFlag(f DeclFlag) bool { return b.Decls&f != 0 }

// WithFlag returns a new Binding (bindings are immutable) with f set; the
// receiver is left unchanged.
func (b *Binding) WithFlag(f DeclFlag) *Binding {
	nb := *b
	nb.Decls |= f
	return &nb
}

func (b *Binding) JSName() string {
	s, ok := b.Value.(string)
	if !ok {
		panic(fmt.Sprintf("env: binding %s has no JS identifier (kind %d)", b.Name.Name, b.Kind))
	}
	return s
}

func (b *Binding) Gotag() GotagValue {
	return b.Value.(GotagValue)
}

// Env is an immutable four-namespace binding chain. The zero value is a
// valid, empty top-level environment.
type Env struct {
	spaces [namespaceCount][]*Binding // head = innermost
}

// New returns an empty environment.
func New() *Env { return &Env{} }

// Lookup returns the first (innermost) binding matching name in ns, or nil
// if none exists.
func (e *Env) Lookup(name *ast.Symbol, ns Namespace) *Binding {
	if e == nil {
		return nil
	}
	for _, b := range e.spaces[ns] {
		if ast.SymbolEq(b.Name, name) {
			return b
		}
	}
	return nil
}

// Extend returns a NEW environment with bindings prepended (innermost) to
// ns, sharing every other namespace's slice and the tail of ns itself.
// The receiver is never mutated (spec.md §8: "extend(env, bindings, ns)
// does not mutate env").
func (e *Env) Extend(bindings []*Binding, ns Namespace) *Env {
	if len(bindings) == 0 {
		return e
	}
	next := &Env{}
	for i := Namespace(0); i < namespaceCount; i++ {
		if i == ns {
			merged := make([]*Binding, 0, len(bindings)+len(e.spaces[i]))
			// bindings is given outermost-first by convention (the order a
			// `let` lists its clauses) and is prepended in that same order,
			// so of two same-named bindings in one call the first listed
			// one shadows the later (Lookup returns the first match).
			merged = append(merged, bindings...)
			merged = append(merged, e.spaces[i]...)
			next.spaces[i] = merged
		} else {
			next.spaces[i] = e.spaces[i]
		}
	}
	return next
}

// ExtendOne is a convenience for the common case of installing a single
// binding.
func (e *Env) ExtendOne(b *Binding, ns Namespace) *Env {
	return e.Extend([]*Binding{b}, ns)
}

// Scratch is a destructively-built environment under construction: spec.md
// §4.2 allows "push(binding, namespace)" to mutate a scratch copy that is
// about to be installed, as an optimization over repeated Extend calls
// when many bindings must be added one at a time (e.g. labels/flet
// building up mutually-visible function bindings). NewScratch copies the
// parent's namespace slices defensively so pushing never aliases the
// parent's backing arrays.
type Scratch struct {
	spaces [namespaceCount][]*Binding
}

func (e *Env) NewScratch() *Scratch {
	s := &Scratch{}
	for i := Namespace(0); i < namespaceCount; i++ {
		cp := make([]*Binding, len(e.spaces[i]))
		copy(cp, e.spaces[i])
		s.spaces[i] = cp
	}
	return s
}

// Push destructively prepends one binding onto the scratch copy.
func (s *Scratch) Push(b *Binding, ns Namespace) {
	s.spaces[ns] = append([]*Binding{b}, s.spaces[ns]...)
}

// Install freezes the scratch copy into an immutable Env, safe to extend
// further via Env.Extend from this point on.
func (s *Scratch) Install() *Env {
	e := &Env{}
	for i := Namespace(0); i < namespaceCount; i++ {
		e.spaces[i] = s.spaces[i]
	}
	return e
}

// LookupMacro satisfies internal/macro.Lookup: forSymbolMacro selects the
// variable namespace (symbol-macros installed by symbol-macrolet) instead
// of the function namespace (ordinary macros installed by macrolet or a
// toplevel defmacro). A binding of the wrong Kind at that name (e.g. an
// ordinary function shadowing where a macro was expected) reports not
// found, since it isn't a macro.
func (e *Env) LookupMacro(name *ast.Symbol, forSymbolMacro bool) (interface{}, bool) {
	if forSymbolMacro {
		b := e.Lookup(name, Variable)
		if b == nil || b.Kind != KindSpecialMacro {
			return nil, false
		}
		return b.Value, true
	}
	b := e.Lookup(name, Function)
	if b == nil || b.Kind != KindMacro {
		return nil, false
	}
	return b.Value, true
}

// DebugString pretty-prints every namespace's binding chain, for use in
// development/debugging only (never on a hot path).
func (e *Env) DebugString() string {
	if e == nil {
		return "<nil env>"
	}
	names := [namespaceCount]string{"variable", "function", "block", "gotag"}
	out := ""
	for i := Namespace(0); i < namespaceCount; i++ {
		out += names[i] + ": " + spew.Sdump(e.spaces[i])
	}
	return out
}
