// Package macro models the macro expander contract spec.md §6 names as an
// external collaborator: "given (op . args), return an expanded form".
// The pattern-matching mechanism itself (destructuring lambda lists,
// backquote-driven templates, etc.) is out of scope; this package only
// defines the interface internal/compiler's driver calls and a couple of
// trivial implementations useful for tests and the bootstrap unit.
package macro

import "github.com/lispjs/lispjs/internal/ast"

// Lookup is the minimal slice of internal/env.Env this package needs:
// looking up a macro binding in either namespace. Declared here (rather
// than importing internal/env directly) only to avoid coupling the contract
// to env's exact binding representation; internal/compiler passes its real
// *env.Env, which satisfies this interface directly since its LookupMacro
// signature matches.
type Lookup interface {
	// LookupMacro returns the expander value bound to name (either a
	// function-namespace macro for a cons-headed form, or a
	// variable-namespace symbol-macro for a bare symbol), and whether a
	// binding was found at all.
	LookupMacro(name *ast.Symbol, forSymbolMacro bool) (expander interface{}, ok bool)
}

// Expander is the contract of spec.md §6: given the full form (operator
// plus arguments, or a lone symbol for a symbol-macro) and the lexical
// environment it appears in, decide whether it expands and return the
// replacement form.
type Expander interface {
	MacroexpandOnce(form ast.Form, lookup Lookup) (expanded ast.Form, didExpand bool, err error)
}

// FuncExpander adapts a plain function to the Expander interface, the way
// a host program would plug in its own pattern-matching macro engine
// without this package needing to know anything about it.
type FuncExpander func(form ast.Form, lookup Lookup) (ast.Form, bool, error)

func (f FuncExpander) MacroexpandOnce(form ast.Form, lookup Lookup) (ast.Form, bool, error) {
	return f(form, lookup)
}

// NoExpansion never expands anything; useful for tests of the driver that
// don't exercise macro expansion at all.
var NoExpansion Expander = FuncExpander(func(form ast.Form, lookup Lookup) (ast.Form, bool, error) {
	return form, false, nil
})

// CompiledExpander is what a macro binding's Value holds once the
// bootstrap-lambda-form representation has been compiled to a callable
// (spec.md §3: "macro ... expander, either a source lambda form (bootstrap)
// or a compiled callable"). Go has no "compile a closure from a source
// form" step of its own, so a CompiledExpander is simply a Go function —
// in the bootstrap unit it is produced by evaluating the macro's lambda
// form through the host's own evaluator (out of scope), in every other
// unit it is produced directly by whatever Go code registers built-in
// macros.
type CompiledExpander func(args ast.Form) (ast.Form, error)

// ExpanderCache amortizes recompilation of a macro's source-lambda-form
// expander across repeated uses within one compilation unit (spec.md §9:
// "cache compiled expanders by binding identity"). Keyed by a pointer
// identity (here: the macro's source lambda Form's underlying *ast.Cons,
// or any comparable key the caller chooses) rather than by name, since two
// distinct macrolet bindings can share a name across nested scopes but
// must never share a cached expander.
type ExpanderCache struct {
	cache map[interface{}]CompiledExpander
}

func NewExpanderCache() *ExpanderCache {
	return &ExpanderCache{cache: make(map[interface{}]CompiledExpander)}
}

func (c *ExpanderCache) Get(key interface{}) (CompiledExpander, bool) {
	fn, ok := c.cache[key]
	return fn, ok
}

func (c *ExpanderCache) Put(key interface{}, fn CompiledExpander) {
	c.cache[key] = fn
}
