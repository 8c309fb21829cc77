// Package compiler implements the special-form compilers, builtins,
// funcall dispatcher, and driver of spec.md §4.6–§4.9: the part of the
// system that actually turns a source form into JavaScript.
package compiler

import (
	"github.com/google/uuid"
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/config"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/literal"
	"github.com/lispjs/lispjs/internal/logger"
	"github.com/lispjs/lispjs/internal/macro"
	"github.com/lispjs/lispjs/internal/namegen"
	"github.com/lispjs/lispjs/internal/target"
)

// magicMarker is the process-unique symbol that triggers the literal
// table's magic-unquote seam (spec.md GLOSSARY, §4.4). It is uninterned
// (empty package) so no user-written symbol, however constructed, can ever
// collide with it.
var magicMarker = ast.NewSymbol("%MAGIC-UNQUOTE%", "")

// Unit is the state that lives for one compilation unit (spec.md §3, §5):
// the literal table, name generator, macro expander cache, function-info
// table, and a logger collecting diagnostics.
type Unit struct {
	ID       string
	Gen      *namegen.Generator
	Literals *literal.Table
	Toplevel *target.Buffer
	Macros   *macro.ExpanderCache
	FnInfo   *FunctionInfoTable
	Log      logger.Log
	Expander macro.Expander
}

// NewUnit constructs a fresh per-compilation-unit state. opts configures
// the literal table's package-special-casing (spec.md §4.4); expander is
// the host-supplied macro engine (macro.NoExpansion if the caller has none
// wired up yet, e.g. in a test that never expands macros).
func NewUnit(opts config.Options, expander macro.Expander) *Unit {
	gen := namegen.New()
	toplevel := &target.Buffer{}

	u := &Unit{
		ID:       uuid.NewString(),
		Gen:      gen,
		Toplevel: toplevel,
		Macros:   macro.NewExpanderCache(),
		FnInfo:   NewFunctionInfoTable(),
		Log:      logger.NewDeferLog(),
		Expander: expander,
	}

	u.Literals = literal.NewTable(literal.Options{
		Generator:   gen,
		Toplevel:    toplevel,
		ThisPackage: ast.CompilerPackage,
		StandardPackage: ast.StandardPackage,
		Bootstrap:   opts.Bootstrap,
		MagicMarker: magicMarker,
		Convert: func(code ast.Form, buf *target.Buffer) error {
			ctx := &Context{Env: env.New(), Target: buf, Unit: u, Options: opts}
			_, err := Convert(ctx, code, target.VarNone, "")
			return err
		},
	})

	return u
}

// KeywordRef adapts the unit's literal table to internal/lambdalist's
// KeywordRef hook: dumping a keyword symbol always succeeds without
// needing to re-enter convert, since keywords are self-evaluating
// literals.
func (u *Unit) KeywordRef(sym *ast.Symbol) jsast.Expr {
	expr, err := u.Literals.Literal(ast.MakeSymbol(sym), false)
	if err != nil {
		// Dumping a bare keyword symbol can never fail; a failure here
		// means the literal table itself is broken.
		panic(err)
	}
	return expr
}

// Context threads the state a single compile call needs: the lexical
// environment, the current target buffer, and the multiple-value flag
// (spec.md §5's "dynamic parameters"), plus a handle to the unit-wide
// state every nested call shares. Context is passed explicitly rather
// than stored in package-level state, following the teacher's
// explicit-options-threading discipline throughout internal/js_parser.
type Context struct {
	Env            *env.Env
	Target         *target.Buffer
	MultipleValues bool
	Unit           *Unit
	Options        config.Options
}

// WithTarget runs fn with a temporarily-swapped target buffer, restoring
// the old one on every exit path including a panic (spec.md §5).
func (ctx *Context) WithTarget(buf *target.Buffer, fn func()) {
	target.WithTarget(&ctx.Target, buf, fn)
}

// WithMultipleValues runs fn with the multiple-value flag temporarily set,
// restoring it afterward the same way WithTarget does.
func (ctx *Context) WithMultipleValues(mv bool, fn func()) {
	old := ctx.MultipleValues
	ctx.MultipleValues = mv
	defer func() { ctx.MultipleValues = old }()
	fn()
}

// WithEnv returns a shallow copy of ctx with Env replaced, leaving ctx
// itself untouched — callers extending the environment for a nested body
// always do so through a new Context value, never by mutating Env in
// place, matching internal/env's own non-destructive Extend.
func (ctx *Context) WithEnv(e *env.Env) *Context {
	next := *ctx
	next.Env = e
	return &next
}

// Emit is a thin convenience wrapping internal/target.Emit with the unit's
// name generator already supplied.
func (ctx *Context) Emit(expr jsast.Expr, mode target.VarMode, existing string) string {
	return target.Emit(ctx.Target, ctx.Unit.Gen, expr, mode, existing)
}
