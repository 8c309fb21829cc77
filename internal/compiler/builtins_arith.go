package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("+", compileAdd)
	registerBuiltin("-", compileSub)
	registerBuiltin("*", compileMul)
	registerBuiltin("/", compileDiv)
	registerBuiltin("1+", compile1Plus)
	registerBuiltin("1-", compile1Minus)
}

// compileBuiltinArgs compiles each form to a fresh primary-value identifier,
// the shape every arithmetic/comparison builtin operates over (spec.md
// §4.7: these are fixed, statically-known operand lists, not a JS
// function's runtime `arguments`, so there is no argument-count guard
// here — that machinery belongs to internal/lambdalist alone).
func compileBuiltinArgs(ctx *Context, forms []ast.Form) ([]string, error) {
	ids := make([]string, len(forms))
	for i, f := range forms {
		var id string
		var err error
		ctx.WithMultipleValues(false, func() {
			id, err = Convert(ctx, f, target.VarFresh, "")
		})
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// numberGuard emits a statement throwing TypeError unless id holds a JS
// number, the "wrap each argument in a typeof === number check" rule of
// spec.md §4.7. This is plain JS `typeof`/`throw`, not a runtime helper
// call: spec.md §6's runtime symbol table has no dedicated type-check
// member, so a hand-rolled typeof guard is the only grounded option here.
func numberGuard(ctx *Context, id string) {
	test := jsast.Expr{Data: &jsast.EBinary{
		Op:    jsast.BinOpStrictNe,
		Left:  jsast.Expr{Data: &jsast.ETypeof{Value: jsast.Ident(id)}},
		Right: jsast.Str("number"),
	}}
	throwStmt := jsast.ThrowStmt(jsast.Expr{Data: &jsast.ENew{
		Target: jsast.Ident("TypeError"),
		Args:   []jsast.Expr{jsast.Str(id + " is not a number")},
	}})
	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.SIf{
		Test: test,
		Yes:  []jsast.Stmt{throwStmt},
	}})
}

func foldBinary(op jsast.BinOp, ids []string, seed *jsast.Expr) jsast.Expr {
	var acc jsast.Expr
	start := 0
	if seed != nil {
		acc = *seed
	} else {
		acc = jsast.Ident(ids[0])
		start = 1
	}
	for _, id := range ids[start:] {
		acc = jsast.Expr{Data: &jsast.EBinary{Op: op, Left: acc, Right: jsast.Ident(id)}}
	}
	return acc
}

func compileAdd(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		numberGuard(ctx, id)
	}
	if len(ids) == 0 {
		return ctx.Emit(jsast.Num(0), mode, existing), nil
	}
	return ctx.Emit(foldBinary(jsast.BinOpAdd, ids, nil), mode, existing), nil
}

func compileSub(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("-: expected at least one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		numberGuard(ctx, id)
	}
	if len(ids) == 1 {
		neg := jsast.Expr{Data: &jsast.EUnary{Op: jsast.UnOpNeg, Value: jsast.Ident(ids[0])}}
		return ctx.Emit(neg, mode, existing), nil
	}
	return ctx.Emit(foldBinary(jsast.BinOpSub, ids, nil), mode, existing), nil
}

func compileMul(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		numberGuard(ctx, id)
	}
	if len(ids) == 0 {
		return ctx.Emit(jsast.Num(1), mode, existing), nil
	}
	return ctx.Emit(foldBinary(jsast.BinOpMul, ids, nil), mode, existing), nil
}

// compileDiv traps division by zero through the runtime's
// handled_division helper rather than raw `/`, per spec.md §4.7; it folds
// pairwise the same way `-` does, and a single operand is its reciprocal.
func compileDiv(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("/: expected at least one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		numberGuard(ctx, id)
	}
	if len(ids) == 1 {
		call := runtime.Call(runtime.HandledDivision, jsast.Num(1), jsast.Ident(ids[0]))
		return ctx.Emit(call, mode, existing), nil
	}
	acc := jsast.Ident(ids[0])
	for _, id := range ids[1:] {
		acc = runtime.Call(runtime.HandledDivision, acc, jsast.Ident(id))
	}
	return ctx.Emit(acc, mode, existing), nil
}

func compile1Plus(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("1+: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	numberGuard(ctx, ids[0])
	sum := jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpAdd, Left: jsast.Ident(ids[0]), Right: jsast.Num(1)}}
	return ctx.Emit(sum, mode, existing), nil
}

func compile1Minus(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("1-: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	numberGuard(ctx, ids[0])
	diff := jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpSub, Left: jsast.Ident(ids[0]), Right: jsast.Num(1)}}
	return ctx.Emit(diff, mode, existing), nil
}
