package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerBuiltin("STRINGP", compileStringp)
	registerBuiltin("STRING-LENGTH", compileStringLength)
	registerBuiltin("CHAR", compileCharAt)
	registerBuiltin("CHAR-UPCASE", compileCharUpcase)
	registerBuiltin("CHAR-DOWNCASE", compileCharDowncase)
}

// stringpTest reads the "stringp" tag field spec.md §4.7 says every
// string object carries, rather than an instance-of check: "Strings are
// represented as objects with a length and a stringp tag field."
func stringpTest(id string) jsast.Expr {
	return jsast.Expr{Data: &jsast.EBinary{
		Op:   jsast.BinOpStrictEq,
		Left: jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(id), Name: "stringp"}},
		Right: jsast.Bool(true),
	}}
}

func compileStringp(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("stringp: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	result, err := lispBool(ctx, stringpTest(ids[0]))
	if err != nil {
		return "", err
	}
	return ctx.Emit(result, mode, existing), nil
}

// compileStringLength reads the backing string's JS `.length`, the field
// spec.md §4.7 says every string object carries directly.
func compileStringLength(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("string-length: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	lenExpr := jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(ids[0]), Name: "length"}}
	return ctx.Emit(lenExpr, mode, existing), nil
}

// compileCharAt indexes the runtime's raw JS-string projection of the
// string object (internal/runtime's `xstring`) to read a single-character
// source value, honoring the width-2 (surrogate pair) characterp
// decision recorded in DESIGN.md by leaving width entirely to the
// runtime's own indexing rather than re-deriving codepoint boundaries
// here.
func compileCharAt(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("char: expected exactly two arguments")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	xstr := runtime.Call(runtime.Xstring, jsast.Ident(ids[0]))
	indexed := jsast.Expr{Data: &jsast.EIndex{Target: xstr, Index: jsast.Ident(ids[1])}}
	return ctx.Emit(indexed, mode, existing), nil
}

func compileCharUpcase(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("char-upcase: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	call := runtime.Call(runtime.SafeCharUpcase, jsast.Ident(ids[0]))
	return ctx.Emit(call, mode, existing), nil
}

func compileCharDowncase(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("char-downcase: expected exactly one argument")
	}
	ids, err := compileBuiltinArgs(ctx, args)
	if err != nil {
		return "", err
	}
	call := runtime.Call(runtime.SafeCharDowncase, jsast.Ident(ids[0]))
	return ctx.Emit(call, mode, existing), nil
}
