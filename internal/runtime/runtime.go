// Package runtime names the members of the `internals` namespace that
// emitted code depends on at run time (spec.md §6, "Runtime symbol table").
// The runtime library itself is out of scope; this package exists only so
// the rest of the compiler references these names through Go constants
// instead of scattering string literals, exactly as the teacher's own
// internal/runtime package is the one place that knows the names of the
// helpers its emitted output calls (there it embeds the helpers' source;
// here the helpers live outside this module, so only the names are kept).
package runtime

import "github.com/lispjs/lispjs/internal/jsast"

// Namespace is the global JS identifier under which every runtime helper is
// reachable, e.g. `internals.checkArgs(...)`.
const Namespace = "internals"

// Member names, spec.md §6.
const (
	Symbol              = "Symbol"
	Cons                 = "cons"
	Intern               = "intern"
	QIList                = "QIList"
	Set                  = "set"
	MakeLispString        = "make_lisp_string"
	LispToJS              = "lisp_to_js"
	JSToLisp              = "js_to_lisp"
	Xstring               = "xstring"
	CheckArgs             = "checkArgs"
	CheckArgsAtLeast      = "checkArgsAtLeast"
	CheckArgsAtMost       = "checkArgsAtMost"
	ForceMV               = "forcemv"
	PV                    = "pv"
	MV                    = "mv"
	Values                = "values"
	SymbolFunction        = "symbolFunction"
	CharToCodepoint       = "char_to_codepoint"
	CharFromCodepoint     = "char_from_codepoint"
	SafeCharUpcase        = "safe_char_upcase"
	SafeCharDowncase      = "safe_char_downcase"
	HandledDivision       = "handled_division"
	WithDynamicBindings   = "withDynamicBindings"
	IsNLX                 = "isNLX"
	GlobalEval            = "globalEval"
	BlockNLX              = "BlockNLX"
	CatchNLX              = "CatchNLX"
	TagNLX                = "TagNLX"
	FValue                = "fvalue"
)

func ident() jsast.Expr { return jsast.Ident(Namespace) }

// Get builds `internals.member`.
func Get(member string) jsast.Expr {
	return jsast.Expr{Data: &jsast.EDot{Target: ident(), Name: member}}
}

// Call builds `internals.member(args...)`.
func Call(member string, args ...jsast.Expr) jsast.Expr {
	return jsast.Expr{Data: &jsast.ECall{Target: ident(), Method: member, Args: args}}
}

// New builds `new internals.member(args...)`.
func New(member string, args ...jsast.Expr) jsast.Expr {
	return jsast.Expr{Data: &jsast.ENew{Target: Get(member), Args: args}}
}

// ThrowNew builds `throw new internals.member(args...);`, the shape every
// run-time error in spec.md §7's second list takes in emitted code.
func ThrowNew(member string, args ...jsast.Expr) jsast.Stmt {
	return jsast.ThrowStmt(New(member, args...))
}

// StringLit builds a plain JS string literal argument, a convenience for
// the many runtime calls that take a message string.
func StringLit(s string) jsast.Expr { return jsast.Str(s) }
