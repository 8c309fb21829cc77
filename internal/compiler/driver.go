package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/macro"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

// specialFormFn is the signature every special-form compiler in this
// package implements.
type specialFormFn func(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error)

// builtinFn is the signature every builtin compiler implements; args is
// the already-split list of argument forms (the cdr of the call form).
type builtinFn func(ctx *Context, args []ast.Form, mode target.VarMode, existing string) (string, error)

var specialForms = map[string]specialFormFn{}
var builtins = map[string]builtinFn{}

func registerSpecialForm(name string, fn specialFormFn) { specialForms[name] = fn }
func registerBuiltin(name string, fn builtinFn)         { builtins[name] = fn }

// headName returns the standard-package name of form's head symbol, if
// form is a cons whose car is a symbol, for dispatch against the
// special-form/builtin tables (both are keyed by upcased standard names,
// regardless of the actual symbol's package, matching how a real reader
// would intern `if`, `let`, etc. into the standard package).
func headName(form ast.Form) (string, bool) {
	if _, isCons := form.AsCons(); !isCons {
		return "", false
	}
	sym, ok := ast.Car(form).AsSymbol()
	if !ok {
		return "", false
	}
	return sym.Name, true
}

// Convert is the driver entry point of spec.md §4.9: macroexpand to a
// fixpoint, then dispatch on form shape. mode/existing follow
// internal/target's Emit conventions; ctx.MultipleValues is the ambient
// "are multiple values wanted here" dynamic parameter.
func Convert(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	form, err := macroexpandFixpoint(ctx, form)
	if err != nil {
		return "", errors.Wrapf(err, "while macroexpanding %s", form.String())
	}

	id, err := convert1(ctx, form, mode, existing)
	if err != nil {
		return "", errors.Wrapf(err, "while compiling %s", form.String())
	}
	return id, nil
}

func macroexpandFixpoint(ctx *Context, form ast.Form) (ast.Form, error) {
	expander := ctx.Unit.Expander
	if expander == nil {
		expander = macro.NoExpansion
	}
	for {
		_, isSymbol := form.AsSymbol()
		_, hasSymbolHead := headName(form)
		if !isSymbol && !hasSymbolHead {
			return form, nil
		}

		expanded, did, err := expander.MacroexpandOnce(form, ctx.Env)
		if err != nil {
			return form, err
		}
		if !did {
			return form, nil
		}
		form = expanded
	}
}

// convert1 dispatches on form's shape once macroexpansion has reached a
// fixpoint (spec.md §4.9's "dispatches on shape" paragraph).
func convert1(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	switch form.Kind() {
	case ast.KindSymbol:
		return convertSymbol(ctx, form, mode, existing)

	case ast.KindInt, ast.KindFloat, ast.KindChar, ast.KindStr, ast.KindArray:
		expr, err := ctx.Unit.Literals.Literal(form, false)
		if err != nil {
			return "", err
		}
		return ctx.Emit(expr, mode, existing), nil

	case ast.KindCons:
		name, ok := headName(form)
		if ok {
			if sf, found := specialForms[name]; found {
				return sf(ctx, form, mode, existing)
			}
			if b, found := builtins[name]; found {
				if sym, _ := ast.Car(form).AsSymbol(); sym != nil {
					if decl := ctx.Env.Lookup(sym, env.Function); decl == nil || !decl.HasFlag(env.DeclNotinline) {
						return b(ctx, ast.ToSlice(ast.Cdr(form)), mode, existing)
					}
				}
			}
		}
		return compileFuncall(ctx, form, mode, existing)
	}

	return "", errors.Errorf("convert: unhandled form %s", form.String())
}

func convertSymbol(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	sym, _ := form.AsSymbol()

	if b := ctx.Env.Lookup(sym, env.Variable); b != nil && b.Kind == env.KindVariable && !b.HasFlag(env.DeclSpecial) {
		return ctx.Emit(jsast.Ident(b.JSName()), mode, existing), nil
	}

	// Keyword, declared constant, or an ordinary special variable: all
	// three read through the literal symbol's `.value` slot, the same
	// slot `withDynamicBindings` shadows and restores for special binding
	// forms (spec.md §4.9).
	litExpr, err := ctx.Unit.Literals.Literal(form, false)
	if err != nil {
		return "", err
	}
	valueExpr := jsast.Expr{Data: &jsast.EDot{Target: litExpr, Name: "value"}}
	return ctx.Emit(valueExpr, mode, existing), nil
}

// compileBody compiles a progn-like sequence: every form but the last is
// compiled for effect only (mode = VarNone), the last is compiled into
// (mode, existing) carrying the caller's multiple-value flag (spec.md
// §4.6's `progn` row). An empty body compiles to nil.
func compileBody(ctx *Context, forms []ast.Form, mode target.VarMode, existing string) (string, error) {
	if len(forms) == 0 {
		nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
		if err != nil {
			return "", err
		}
		return ctx.Emit(nilExpr, mode, existing), nil
	}
	for _, f := range forms[:len(forms)-1] {
		if _, err := Convert(ctx, f, target.VarNone, ""); err != nil {
			return "", err
		}
	}
	return Convert(ctx, forms[len(forms)-1], mode, existing)
}

// ConvertToplevel flattens a leading `progn` and compiles the remaining
// forms in sequence, optionally adding a terminal `return` (spec.md
// §4.9's `convert-toplevel`). It is used both by process-toplevel and by
// any special form that embeds a whole function body (flet/labels/
// function), which is why returnP is a parameter rather than always-on.
func ConvertToplevel(ctx *Context, form ast.Form, returnP bool) error {
	forms := flattenProgn(form)
	for i, f := range forms {
		last := i == len(forms)-1
		if last && returnP {
			id, err := Convert(ctx, f, target.VarFresh, "")
			if err != nil {
				return err
			}
			ctx.Target.PushToTarget(jsast.ReturnStmt(jsast.Ident(id)))
			return nil
		}
		if _, err := Convert(ctx, f, target.VarNone, ""); err != nil {
			return err
		}
	}
	return nil
}

func flattenProgn(form ast.Form) []ast.Form {
	if name, ok := headName(form); ok && name == "PROGN" {
		return ast.ToSlice(ast.Cdr(form))
	}
	return []ast.Form{form}
}

// ProcessToplevel creates a fresh toplevel-compilations buffer, compiles
// form into it, and returns the combined (init-statements..., code)
// statement list so literal initializers always precede the code that
// references them (spec.md §4.9's `process-toplevel`).
func ProcessToplevel(ctx *Context, form ast.Form) ([]jsast.Stmt, error) {
	body := &target.Buffer{}
	bodyCtx := ctx.WithEnv(ctx.Env)
	bodyCtx.Target = body

	if err := ConvertToplevel(bodyCtx, form, false); err != nil {
		return nil, err
	}

	out := append([]jsast.Stmt{}, ctx.Unit.Toplevel.TargetStatements()...)
	out = append(out, body.TargetStatements()...)
	return out, nil
}
