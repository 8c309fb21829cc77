// Package target implements the append-only statement buffer that is the
// sole channel through which the compiler core produces output (spec.md
// §4.1): push-to-target, target-statements, and the emit helper with its
// three var-modes.
package target

import (
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/namegen"
)

// Buffer is an ordered sequence of JS statements being built up for one
// form (or one compilation unit's toplevel-compilations channel).
type Buffer struct {
	stmts []jsast.Stmt
}

// PushToTarget appends one statement (spec.md §4.1).
func (b *Buffer) PushToTarget(s jsast.Stmt) {
	b.stmts = append(b.stmts, s)
}

// TargetStatements returns the accumulated statements (spec.md §4.1).
func (b *Buffer) TargetStatements() []jsast.Stmt {
	return b.stmts
}

// VarMode selects how Emit delivers an expression's value to its caller
// (spec.md §4.1 / §4.9's "out" values).
type VarMode uint8

const (
	// VarFresh allocates a new JS identifier, emits `var <id>;`, then
	// emits `<id> = expr;`.
	VarFresh VarMode = iota
	// VarExisting emits `<id> = expr;` against a caller-supplied identifier.
	VarExisting
	// VarNone emits `expr;` as a bare statement, discarding the value.
	VarNone
)

func assign(name string, expr jsast.Expr) jsast.Stmt {
	return jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{Target: jsast.Ident(name), Value: expr}})
}

// Emit is the ONLY way the core writes output (spec.md §4.1). It returns
// the JS identifier now holding expr's value, or "" when mode is VarNone.
func Emit(b *Buffer, gen *namegen.Generator, expr jsast.Expr, mode VarMode, existing string) string {
	switch mode {
	case VarFresh:
		id := gen.Var()
		b.PushToTarget(jsast.VarDecl(id))
		b.PushToTarget(assign(id, expr))
		return id
	case VarExisting:
		b.PushToTarget(assign(existing, expr))
		return existing
	case VarNone:
		b.PushToTarget(jsast.ExprStmt(expr))
		return ""
	default:
		panic("target: invalid VarMode")
	}
}

// WithTarget saves *current, installs newBuf as *current, runs fn, and
// restores the saved buffer on every exit path including a panic — the Go
// rendering of spec.md §5's "current-target parameter must be restored on
// every exit from let-target". current is a pointer to whatever field of
// the caller's compile context holds "the current target buffer", so this
// package does not need to know the shape of that context.
func WithTarget(current **Buffer, newBuf *Buffer, fn func()) {
	old := *current
	*current = newBuf
	defer func() { *current = old }()
	fn()
}
