package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("CONS", compileConsBuiltin)
	registerBuiltin("CAR", compileCar)
	registerBuiltin("CDR", compileCdr)
	registerBuiltin("RPLACA", compileRplaca)
	registerBuiltin("RPLACD", compileRplacd)
	registerBuiltin("CONSP", compileConsp)
	registerBuiltin("ATOM", compileAtom)
}

func compileConsBuiltin(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("cons: expected exactly two arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	call := runtime.New(runtime.Cons, jsast.Ident(ids[0]), jsast.Ident(ids[1]))
	return ctx.Emit(call, mode, existing), nil
}

func isNilTest(id string) jsast.Expr {
	return jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpStrictEq, Left: jsast.Ident(id), Right: jsast.Ident("nil")}}
}

func notConsTest(id string) jsast.Expr {
	return jsast.Expr{Data: &jsast.EUnary{Op: jsast.UnOpNot, Value: jsast.Expr{Data: &jsast.EInstanceof{
		Value: jsast.Ident(id), Class: runtime.Get(runtime.Cons),
	}}}}
}

func throwNotAList(id string) jsast.Stmt {
	return jsast.ThrowStmt(jsast.Expr{Data: &jsast.ENew{
		Target: jsast.Ident("TypeError"),
		Args:   []jsast.Expr{jsast.Str(id + " is not a list")},
	}})
}

// compileAccessor shares car/cdr's "nil-check the argument, throw on
// non-list" shape (spec.md §4.7): `(car nil)` is `nil`, `(car x)` for a
// non-cons non-nil x throws, otherwise read the named property.
func compileAccessor(ctx *Context, args []ast.Form, prop string, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.Errorf("%s: expected exactly one argument", prop)
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	id := ids[0]

	slot := existing
	innerMode := mode
	if mode == target.VarFresh {
		slot = ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarDecl(slot))
		innerMode = target.VarExisting
	}

	nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
	if err != nil {
		return "", err
	}

	yesBuf := &target.Buffer{}
	yesCtx := ctx.WithEnv(ctx.Env)
	yesCtx.Target = yesBuf
	yesCtx.Emit(nilExpr, innerMode, slot)

	noBuf := &target.Buffer{}
	noCtx := ctx.WithEnv(ctx.Env)
	noCtx.Target = noBuf
	noBuf.PushToTarget(jsast.Stmt{Data: &jsast.SIf{
		Test: notConsTest(id),
		Yes:  []jsast.Stmt{throwNotAList(id)},
	}})
	accessExpr := jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(id), Name: prop}}
	noCtx.Emit(accessExpr, innerMode, slot)

	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.SIf{
		Test: isNilTest(id),
		Yes:  yesBuf.TargetStatements(),
		No:   noBuf.TargetStatements(),
	}})

	if mode == target.VarNone {
		return "", nil
	}
	return slot, nil
}

func compileCar(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return compileAccessor(ctx, args, "car", mode, existing)
}

func compileCdr(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return compileAccessor(ctx, args, "cdr", mode, existing)
}

// compileMutator shares rplaca/rplacd's shape: mutate the named property
// in place and yield the cons itself, CL's actual return value (spec.md
// §4.7: "rplaca/rplacd mutate the cons object").
func compileMutator(ctx *Context, args []ast.Form, prop string, mode target.VarMode, existing string) (string, error) {
	if len(args) != 2 {
		return "", errors.Errorf("%s: expected exactly two arguments", prop)
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.SIf{
		Test: notConsTest(ids[0]),
		Yes:  []jsast.Stmt{throwNotAList(ids[0])},
	}})
	ctx.Target.PushToTarget(jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
		Target: jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(ids[0]), Name: prop}},
		Value:  jsast.Ident(ids[1]),
	}}))
	return ctx.Emit(jsast.Ident(ids[0]), mode, existing), nil
}

func compileRplaca(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return compileMutator(ctx, args, "car", mode, existing)
}

func compileRplacd(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	return compileMutator(ctx, args, "cdr", mode, existing)
}

func compileConsp(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("consp: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	cond := jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(ids[0]), Class: runtime.Get(runtime.Cons)}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

// compileAtom is everything that is not a cons, including nil itself (CL:
// `(atom nil)` is `t`).
func compileAtom(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("atom: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	cond := jsast.Expr{Data: &jsast.EUnary{Op: jsast.UnOpNot, Value: jsast.Expr{Data: &jsast.EInstanceof{
		Value: jsast.Ident(ids[0]), Class: runtime.Get(runtime.Cons),
	}}}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}
