package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("VECTORP", compileVectorp)
	registerBuiltin("AREF", compileAref)
	registerBuiltin("ASET", compileAset)
	registerBuiltin("VECTOR-LENGTH", compileVectorLength)
}

// compiled storage vectors are plain JS arrays (internal/literal's
// dumpArray emits an EArray literal directly), so these builtins operate
// on native JS array shape rather than a wrapper object, unlike strings'
// tagged objects (spec.md §4.7's "array/storage-vector builtins").
func compileVectorp(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("vectorp: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	cond := jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(ids[0]), Class: jsast.Ident("Array")}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

func compileAref(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("aref: expected exactly two arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	indexed := jsast.Expr{Data: &jsast.EIndex{Target: jsast.Ident(ids[0]), Index: jsast.Ident(ids[1])}}
	return ctx.Emit(indexed, mode, existing), nil
}

// compileAset is this core's `(setf aref)` equivalent, named directly
// since a full `setf`-expander is out of scope for a thin core (the same
// simplification `compileSetq` documents for symbol-macro assignment).
func compileAset(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 3 {
		return "", errors.New("aset: expected exactly three arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	ctx.Target.PushToTarget(jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
		Target: jsast.Expr{Data: &jsast.EIndex{Target: jsast.Ident(ids[0]), Index: jsast.Ident(ids[1])}},
		Value:  jsast.Ident(ids[2]),
	}}))
	return ctx.Emit(jsast.Ident(ids[2]), mode, existing), nil
}

func compileVectorLength(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("vector-length: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	lenExpr := jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(ids[0]), Name: "length"}}
	return ctx.Emit(lenExpr, mode, existing), nil
}
