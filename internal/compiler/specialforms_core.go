package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerSpecialForm("IF", compileIf)
	registerSpecialForm("QUOTE", compileQuote)
	registerSpecialForm("PROGN", compileProgn)
	registerSpecialForm("SETQ", compileSetq)
	registerSpecialForm("PSETQ", compilePsetq)
	registerSpecialForm("PROG1", compileProg1)
	registerSpecialForm("PROG2", compileProg2)
	registerSpecialForm("DECLARE", compileDeclareNoop)
}

// compileIf emits `if (cond !== nil) <then> else <else>` as block
// statements, both arms compiled with the current out-slot so the chosen
// value lands in the same place regardless of branch (spec.md §4.6).
func compileIf(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	args := ast.ToSlice(ast.Cdr(form))
	if len(args) < 2 || len(args) > 3 {
		return "", errors.Errorf("if: expected 2 or 3 forms, got %d", len(args))
	}
	testForm, thenForm := args[0], args[1]
	var elseForm ast.Form
	hasElse := len(args) == 3
	if hasElse {
		elseForm = args[2]
	}

	testID, err := Convert(ctx, testForm, target.VarFresh, "")
	if err != nil {
		return "", err
	}

	slot := existing
	if mode == target.VarFresh {
		slot = ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarDecl(slot))
		mode = target.VarExisting
	}

	yesBuf := &target.Buffer{}
	yesCtx := ctx.WithEnv(ctx.Env)
	yesCtx.Target = yesBuf
	if _, err := Convert(yesCtx, thenForm, mode, slot); err != nil {
		return "", err
	}

	var noBuf *target.Buffer
	if hasElse {
		noBuf = &target.Buffer{}
		noCtx := ctx.WithEnv(ctx.Env)
		noCtx.Target = noBuf
		if _, err := Convert(noCtx, elseForm, mode, slot); err != nil {
			return "", err
		}
	} else if mode != target.VarNone {
		noBuf = &target.Buffer{}
		nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
		if err != nil {
			return "", err
		}
		noCtx := ctx.WithEnv(ctx.Env)
		noCtx.Target = noBuf
		noCtx.Emit(nilExpr, mode, slot)
	}

	var noStmts []jsast.Stmt
	if noBuf != nil {
		noStmts = noBuf.TargetStatements()
	}

	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.SIf{
		Test: binaryNotNil(jsast.Ident(testID)),
		Yes:  yesBuf.TargetStatements(),
		No:   noStmts,
	}})

	if mode == target.VarNone {
		return "", nil
	}
	return slot, nil
}

func binaryNotNil(e jsast.Expr) jsast.Expr {
	return jsast.Expr{Data: &jsast.EBinary{Op: jsast.BinOpStrictNe, Left: e, Right: jsast.Ident("nil")}}
}

func compileQuote(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	sexp := ast.Cadr(form)
	expr, err := ctx.Unit.Literals.Literal(sexp, false)
	if err != nil {
		return "", err
	}
	return ctx.Emit(expr, mode, existing), nil
}

func compileProgn(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	return compileBody(ctx, ast.ToSlice(ast.Cdr(form)), mode, existing)
}

// compileProg1 evaluates the first form with the caller's multiple-value
// flag into a saved slot, evaluates the rest for effect, then yields the
// saved slot — sugar over let+progn restored from the original (spec.md
// supplement: prog1/prog2).
func compileProg1(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	forms := ast.ToSlice(ast.Cdr(form))
	if len(forms) == 0 {
		return "", errors.New("prog1: expected at least one form")
	}
	savedID, err := Convert(ctx, forms[0], target.VarFresh, "")
	if err != nil {
		return "", err
	}
	for _, f := range forms[1:] {
		if _, err := Convert(ctx, f, target.VarNone, ""); err != nil {
			return "", err
		}
	}
	return ctx.Emit(jsast.Ident(savedID), mode, existing), nil
}

// compileProg2 is prog1 shifted by one: the second form's value survives.
func compileProg2(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	forms := ast.ToSlice(ast.Cdr(form))
	if len(forms) < 2 {
		return "", errors.New("prog2: expected at least two forms")
	}
	if _, err := Convert(ctx, forms[0], target.VarNone, ""); err != nil {
		return "", err
	}
	savedID, err := Convert(ctx, forms[1], target.VarFresh, "")
	if err != nil {
		return "", err
	}
	for _, f := range forms[2:] {
		if _, err := Convert(ctx, f, target.VarNone, ""); err != nil {
			return "", err
		}
	}
	return ctx.Emit(jsast.Ident(savedID), mode, existing), nil
}

// compileDeclareNoop handles a bare (declare ...) encountered somewhere
// other than the head of a body (where parseBindingClauses already consumed it):
// documentation strings and optimize-quality declarations compile to nil,
// matching the original's permissive handling (SPEC_FULL supplement).
func compileDeclareNoop(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
	if err != nil {
		return "", err
	}
	return ctx.Emit(nilExpr, mode, existing), nil
}

// compileSetq is pairwise: for a lexical, non-special, non-constant
// variable binding, assign its JS slot directly; for a symbol-macro
// binding, rewrite as the macro's `setf` expansion is out of scope for a
// thin core so we fall back to the runtime `set`; otherwise call the
// runtime `set(symbol, value)` (spec.md §4.6).
func compileSetq(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	pairs := ast.ToSlice(ast.Cdr(form))
	if len(pairs)%2 != 0 {
		return "", errors.New("setq: odd number of forms")
	}

	var lastID string
	for i := 0; i < len(pairs); i += 2 {
		sym, ok := pairs[i].AsSymbol()
		if !ok {
			return "", errors.Errorf("setq: %s is not a symbol", pairs[i])
		}
		valueForm := pairs[i+1]

		isLast := i == len(pairs)-2
		wantMode := target.VarNone
		wantExisting := ""
		if isLast {
			wantMode, wantExisting = mode, existing
		}

		if b := ctx.Env.Lookup(sym, env.Variable); b != nil && b.Kind == env.KindVariable && !b.HasFlag(env.DeclSpecial) {
			id, err := Convert(ctx, valueForm, target.VarExisting, b.JSName())
			if err != nil {
				return "", err
			}
			if isLast {
				lastID = ctx.Emit(jsast.Ident(id), wantMode, wantExisting)
			}
			continue
		}

		valueID, err := Convert(ctx, valueForm, target.VarFresh, "")
		if err != nil {
			return "", err
		}
		litExpr, err := ctx.Unit.Literals.Literal(ast.MakeSymbol(sym), false)
		if err != nil {
			return "", err
		}
		setExpr := runtime.Call(runtime.Set, litExpr, jsast.Ident(valueID))
		lastID = ctx.Emit(setExpr, wantMode, wantExisting)
	}
	return lastID, nil
}

// compilePsetq evaluates every value form before performing any
// assignment, unlike setq's pairwise left-to-right semantics (SPEC_FULL
// supplement).
func compilePsetq(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	pairs := ast.ToSlice(ast.Cdr(form))
	if len(pairs)%2 != 0 {
		return "", errors.New("psetq: odd number of forms")
	}

	n := len(pairs) / 2
	syms := make([]*ast.Symbol, n)
	valueIDs := make([]string, n)
	for i := 0; i < n; i++ {
		sym, ok := pairs[i*2].AsSymbol()
		if !ok {
			return "", errors.Errorf("psetq: %s is not a symbol", pairs[i*2])
		}
		syms[i] = sym
		id, err := Convert(ctx, pairs[i*2+1], target.VarFresh, "")
		if err != nil {
			return "", err
		}
		valueIDs[i] = id
	}

	for i := 0; i < n; i++ {
		if b := ctx.Env.Lookup(syms[i], env.Variable); b != nil && b.Kind == env.KindVariable && !b.HasFlag(env.DeclSpecial) {
			ctx.Target.PushToTarget(jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
				Target: jsast.Ident(b.JSName()),
				Value:  jsast.Ident(valueIDs[i]),
			}}))
			continue
		}
		litExpr, err := ctx.Unit.Literals.Literal(ast.MakeSymbol(syms[i]), false)
		if err != nil {
			return "", err
		}
		ctx.Target.PushToTarget(jsast.ExprStmt(runtime.Call(runtime.Set, litExpr, jsast.Ident(valueIDs[i]))))
	}

	nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
	if err != nil {
		return "", err
	}
	return ctx.Emit(nilExpr, mode, existing), nil
}
