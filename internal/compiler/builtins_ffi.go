package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("OGET", compileOgetBuiltin)
	registerBuiltin("OSET", compileOsetBuiltin)
	registerBuiltin("LISP-TO-JS", compileLispToJS)
	registerBuiltin("JS-TO-LISP", compileJSToLisp)
}

// compileOgetBuiltin is `oget` used as an ordinary property-get call
// rather than as a funcall designator (that shape is handled directly by
// compileOgetCall in funcall.go); here it just reads a chain of
// properties off the first argument and js-to-lisp coerces the result
// (spec.md §4.7's FFI builtins).
func compileOgetBuiltin(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("oget: expected an object and at least one key")
	}
	objID, err := Convert(ctx, args[0], target.VarFresh, "")
	if err != nil {
		return "", err
	}
	receiver := jsast.Ident(objID)
	for _, k := range args[1:] {
		name, err := ogetPropertyName(k)
		if err != nil {
			return "", err
		}
		receiver = jsast.Expr{Data: &jsast.EDot{Target: receiver, Name: name}}
	}
	coerced := runtime.Call(runtime.JSToLisp, receiver)
	return ctx.Emit(coerced, mode, existing), nil
}

// compileOsetBuiltin mirrors compileOgetBuiltin for assignment: the last
// argument is the lisp-to-js-coerced value, every key before it but the
// last navigates, the final key is assigned.
func compileOsetBuiltin(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) < 3 {
		return "", errors.New("oset: expected an object, at least one key, and a value")
	}
	objID, err := Convert(ctx, args[0], target.VarFresh, "")
	if err != nil {
		return "", err
	}
	keyForms := args[1 : len(args)-1]
	valueForm := args[len(args)-1]

	valueID, err := Convert(ctx, valueForm, target.VarFresh, "")
	if err != nil {
		return "", err
	}

	receiver := jsast.Ident(objID)
	for _, k := range keyForms[:len(keyForms)-1] {
		name, err := ogetPropertyName(k)
		if err != nil {
			return "", err
		}
		receiver = jsast.Expr{Data: &jsast.EDot{Target: receiver, Name: name}}
	}
	lastName, err := ogetPropertyName(keyForms[len(keyForms)-1])
	if err != nil {
		return "", err
	}

	jsValue := runtime.Call(runtime.LispToJS, jsast.Ident(valueID))
	ctx.Target.PushToTarget(jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
		Target: jsast.Expr{Data: &jsast.EDot{Target: receiver, Name: lastName}},
		Value:  jsValue,
	}}))
	return ctx.Emit(jsast.Ident(valueID), mode, existing), nil
}

func compileLispToJS(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("lisp-to-js: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	call := runtime.Call(runtime.LispToJS, jsast.Ident(ids[0]))
	return ctx.Emit(call, mode, existing), nil
}

func compileJSToLisp(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("js-to-lisp: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	call := runtime.Call(runtime.JSToLisp, jsast.Ident(ids[0]))
	return ctx.Emit(call, mode, existing), nil
}
