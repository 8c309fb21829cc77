package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("SYMBOLP", compileSymbolp)
	registerBuiltin("KEYWORDP", compileKeywordp)
	registerBuiltin("SYMBOL-NAME", compileSymbolName)
	registerBuiltin("SYMBOL-VALUE", compileSymbolValue)
	registerBuiltin("SYMBOL-FUNCTION", compileSymbolFunctionBuiltin)
}

// compileSymbolp checks runtime instance-of against the Symbol
// constructor (spec.md §4.7: "Symbol predicates check runtime
// instance-of or property shape").
func compileSymbolp(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("symbolp: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	cond := jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(ids[0]), Class: runtime.Get(runtime.Symbol)}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

// compileKeywordp checks the instance-of test plus the package-name
// property shape (spec.md §4.7's "or property shape" half — a keyword is
// a symbol whose `.package` property names the keyword package).
func compileKeywordp(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("keywordp: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	isSym := jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(ids[0]), Class: runtime.Get(runtime.Symbol)}}
	pkgMatch := jsast.Expr{Data: &jsast.EBinary{
		Op:    jsast.BinOpStrictEq,
		Left:  jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(ids[0]), Name: "package"}},
		Right: jsast.Str(ast.KeywordPackage),
	}}
	cond := jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpLogicalAnd, Left: isSym, Right: pkgMatch}}
	result, err := lispBool(ctx, cond)
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

// compileSymbolName reads the symbol's bare name and wraps it as a lisp
// string object, mirroring how the literal dumper itself constructs
// strings (internal/literal's make_lisp_string call).
func compileSymbolName(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("symbol-name: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	nameProp := jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(ids[0]), Name: "name"}}
	call := runtime.Call(runtime.MakeLispString, nameProp)
	return ctx.Emit(call, mode, existing), nil
}

// compileSymbolValue reads the symbol's `.value` property directly — the
// same slot `withDynamicBindings` shadows and restores (spec.md §4.9).
func compileSymbolValue(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("symbol-value: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	valueExpr := jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(ids[0]), Name: "value"}}
	return ctx.Emit(valueExpr, mode, existing), nil
}

func compileSymbolFunctionBuiltin(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("symbol-function: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	call := runtime.Call(runtime.SymbolFunction, jsast.Ident(ids[0]))
	return ctx.Emit(call, mode, existing), nil
}
