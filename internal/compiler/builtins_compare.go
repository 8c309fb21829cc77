package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("<", compileNumLt)
	registerBuiltin(">", compileNumGt)
	registerBuiltin("<=", compileNumLe)
	registerBuiltin(">=", compileNumGe)
	registerBuiltin("=", compileNumEq)
	registerBuiltin("/=", compileNumNe)
	registerBuiltin("EQ", compileEq)
	registerBuiltin("EQL", compileEq)
	registerBuiltin("NOT", compileNot)
	registerBuiltin("NULL", compileNot)
}

// lispBool turns a JS boolean expression into the source-level `t`/`nil`
// value a predicate builtin must return, compiled by left-fold "each
// predicate converted to a boolean via if ... nil/t" (spec.md §4.7).
func lispBool(ctx *Context, cond jsast.Expr) (jsast.Expr, error) {
	tExpr, err := ctx.Unit.Literals.Literal(ast.T, false)
	if err != nil {
		return jsast.Expr{}, err
	}
	nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
	if err != nil {
		return jsast.Expr{}, err
	}
	return jsast.Expr{Data: &jsast.ECondExpr{Test: cond, Yes: tExpr, No: nilExpr}}, nil
}

// chainCompare implements `(op a b c)` ≡ `a op b && b op c`, a left-fold
// over adjacent pairs (spec.md §4.7's `<` example, generalized to every
// relational operator).
func chainCompare(ctx *Context, op jsast.BinOp, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("comparison: expected at least two arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		numberGuard(ctx, id)
	}
	var cond jsast.Expr
	for i := 0; i < len(ids)-1; i++ {
		pair := jsast.Expr{Data: &jsast.EBinary{Op: op, Left: jsast.Ident(ids[i]), Right: jsast.Ident(ids[i+1])}}
		if i == 0 {
			cond = pair
		} else {
			cond = jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpLogicalAnd, Left: cond, Right: pair}}
		}
	}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

func compileNumLt(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return chainCompare(ctx, jsast.BinOpLt, args, mode, existing)
}
func compileNumGt(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return chainCompare(ctx, jsast.BinOpGt, args, mode, existing)
}
func compileNumLe(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return chainCompare(ctx, jsast.BinOpLe, args, mode, existing)
}
func compileNumGe(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return chainCompare(ctx, jsast.BinOpGe, args, mode, existing)
}
func compileNumEq(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return chainCompare(ctx, jsast.BinOpStrictEq, args, mode, existing)
}

// compileNumNe implements CL `/=`'s pairwise-distinct semantics (every
// pair of operands differs, not just neighbors) rather than chaining
// adjacent `!==`, since `(/= 1 2 1)` must be nil even though each
// neighbor pair differs.
func compileNumNe(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("/=: expected at least two arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		numberGuard(ctx, id)
	}
	var cond jsast.Expr
	first := true
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pair := jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpStrictNe, Left: jsast.Ident(ids[i]), Right: jsast.Ident(ids[j])}}
			if first {
				cond = pair
				first = false
			} else {
				cond = jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpLogicalAnd, Left: cond, Right: pair}}
			}
		}
	}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

// compileEq backs both `eq` and `eql`: this core represents every atom
// eligible for `eq`-identity (symbols, conses, arrays) as the literal
// table's interned JS object, so `===` is the correct identity test for
// both (spec.md §4.7: "Symbol predicates check runtime instance-of or
// property shape" — equality itself is the plainer `===` case of that).
func compileEq(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("eq: expected exactly two arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	cond := jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpStrictEq, Left: jsast.Ident(ids[0]), Right: jsast.Ident(ids[1])}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

func compileNot(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("not: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	cond := jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpStrictEq, Left: jsast.Ident(ids[0]), Right: jsast.Ident("nil")}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}
