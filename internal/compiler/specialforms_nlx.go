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
	registerSpecialForm("BLOCK", compileBlock)
	registerSpecialForm("RETURN-FROM", compileReturnFrom)
	registerSpecialForm("TAGBODY", compileTagbody)
	registerSpecialForm("GO", compileGo)
	registerSpecialForm("CATCH", compileCatch)
	registerSpecialForm("THROW", compileThrow)
	registerSpecialForm("UNWIND-PROTECT", compileUnwindProtect)
}

// blockInfo is the Value payload of a KindBlockLabel binding: the JS
// sentinel variable identifying this block's activation, and whether any
// nested return-from has referenced it. Used is mutated in place through
// the shared pointer every copy of the extended env carries, which is how
// compileBlock learns — after fully compiling the body, deep returns and
// all — whether the try/catch wrapper is needed at all (spec.md §4.6,
// §8's "no try/catch for blocks never referenced by return-from").
type blockInfo struct {
	SentinelVar string
	Used        bool
}

// compileBlock mints a fresh sentinel array identifying this activation,
// binds name in the block namespace, and compiles body under the extended
// env. Only if return-from actually reached into this block does the
// result get wrapped in a try/catch matching BlockNLX by sentinel
// identity; an unused block compiles to its body with no overhead at all.
func compileBlock(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	parts := ast.ToSlice(ast.Cdr(form))
	if len(parts) == 0 {
		return "", errors.New("block: expected a block name")
	}
	nameSym, ok := parts[0].AsSymbol()
	if !ok {
		return "", errors.Errorf("block: %s is not a symbol", parts[0])
	}
	body := parts[1:]

	sentinelVar := ctx.Unit.Gen.Var()
	ctx.Target.PushToTarget(jsast.VarStmt(sentinelVar, jsast.Expr{Data: &jsast.EArray{}}))

	info := &blockInfo{SentinelVar: sentinelVar}
	blockEnv := ctx.Env.ExtendOne(&env.Binding{Name: nameSym, Kind: env.KindBlockLabel, Value: info}, env.Block)
	bodyCtx := ctx.WithEnv(blockEnv)

	slot := existing
	innerMode := mode
	if mode == target.VarFresh {
		slot = ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarDecl(slot))
		innerMode = target.VarExisting
	}

	innerBuf := &target.Buffer{}
	bodyCtx.Target = innerBuf
	if _, err := compileBody(bodyCtx, body, innerMode, slot); err != nil {
		return "", err
	}

	if !info.Used {
		for _, s := range innerBuf.TargetStatements() {
			ctx.Target.PushToTarget(s)
		}
		if mode == target.VarNone {
			return "", nil
		}
		return slot, nil
	}

	catchParam := ctx.Unit.Gen.Var()
	isMatch := jsast.Expr{Data: &jsast.EBinary{
		Op:   jsast.BinOpLogicalAnd,
		Left: jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(catchParam), Class: runtime.Get(runtime.BlockNLX)}},
		Right: jsast.Expr{Data: &jsast.EBinary{
			Op:    jsast.BinOpStrictEq,
			Left:  jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(catchParam), Name: "id"}},
			Right: jsast.Ident(sentinelVar),
		}},
	}}
	var catchBody []jsast.Stmt
	if mode != target.VarNone {
		catchBody = append(catchBody, jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
			Target: jsast.Ident(slot),
			Value:  jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(catchParam), Name: "values"}},
		}}))
	}
	rethrow := jsast.ThrowStmt(jsast.Ident(catchParam))

	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.STry{
		Body: innerBuf.TargetStatements(),
		Catch: &jsast.CatchClause{
			Param: catchParam,
			Body:  []jsast.Stmt{{Data: &jsast.SIf{Test: isMatch, Yes: catchBody, No: []jsast.Stmt{rethrow}}}},
		},
	}})

	if mode == target.VarNone {
		return "", nil
	}
	return slot, nil
}

// compileReturnFrom looks up name in the block namespace (erroring if
// absent), marks the binding used so the enclosing block knows it must
// wrap itself in a catch, and throws a BlockNLX carrying the sentinel,
// the compiled value, and the block's source name for diagnostics
// (spec.md §4.6).
func compileReturnFrom(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	parts := ast.ToSlice(ast.Cdr(form))
	if len(parts) == 0 {
		return "", errors.New("return-from: expected a block name")
	}
	nameSym, ok := parts[0].AsSymbol()
	if !ok {
		return "", errors.Errorf("return-from: %s is not a symbol", parts[0])
	}

	b := ctx.Env.Lookup(nameSym, env.Block)
	if b == nil {
		return "", errors.Errorf("return-from: no enclosing block named %s", nameSym.Name)
	}
	info := b.Value.(*blockInfo)
	info.Used = true

	var valueForm ast.Form = ast.Nil
	if len(parts) >= 2 {
		valueForm = parts[1]
	}
	valueID, err := Convert(ctx, valueForm, target.VarFresh, "")
	if err != nil {
		return "", err
	}

	slot := unreachableSlot(ctx, mode, existing)
	ctx.Target.PushToTarget(runtime.ThrowNew(runtime.BlockNLX,
		jsast.Ident(info.SentinelVar), jsast.Ident(valueID), runtime.StringLit(nameSym.Name)))

	return slot, nil
}

// unreachableSlot upholds Convert's "returns a valid identifier unless
// mode is VarNone" contract for forms that never fall through (they
// always throw): it mints the `var` declaration a VarFresh caller expects
// without ever assigning to it, since no statement following the throw
// can run.
func unreachableSlot(ctx *Context, mode target.VarMode, existing string) string {
	switch mode {
	case target.VarNone:
		return ""
	case target.VarFresh:
		slot := ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarDecl(slot))
		return slot
	default:
		return existing
	}
}

// tagbodyItem is either a go-tag marker (Tag != nil) or an ordinary form.
type tagbodyItem struct {
	Tag  *ast.Symbol
	Form ast.Form
}

// parseTagbodyItems classifies each form as a go-tag (a bare symbol) or an
// ordinary body form. Only symbols are go-tags here: an integer in a
// tagbody body is not treated as a tag and is compiled as an ordinary
// (numeric-literal) body form.
func parseTagbodyItems(forms []ast.Form) []tagbodyItem {
	items := make([]tagbodyItem, len(forms))
	for i, f := range forms {
		if sym, ok := f.AsSymbol(); ok {
			items[i] = tagbodyItem{Tag: sym}
			continue
		}
		items[i] = tagbodyItem{Form: f}
	}
	return items
}

// compileTagbody reduces a tag-free body to `(progn body... nil)` (spec.md
// §4.6's fast path), otherwise lowers to a labeled `while (true)` loop
// whose body is a try/catch around `switch (branch) { case N: ...;
// default: break label; }`; the catch matches TagNLX by tbidx identity,
// reassigns branch to the jump's target label, and lets the loop continue
// (spec.md §4.6; §8's no-catch-when-tagless invariant is the !hasTags
// early return below).
func compileTagbody(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	forms := ast.ToSlice(ast.Cdr(form))
	items := parseTagbodyItems(forms)

	hasTags := false
	for _, it := range items {
		if it.Tag != nil {
			hasTags = true
			break
		}
	}
	if !hasTags {
		for _, it := range items {
			if _, err := Convert(ctx, it.Form, target.VarNone, ""); err != nil {
				return "", err
			}
		}
		nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
		if err != nil {
			return "", err
		}
		return ctx.Emit(nilExpr, mode, existing), nil
	}

	if len(items) == 0 || items[0].Tag == nil {
		startTag := ast.NewSymbol("", "")
		items = append([]tagbodyItem{{Tag: startTag}}, items...)
	}

	// A tag followed immediately by another tag (or the end) has an empty
	// body; group consecutive non-tag forms under the most recent tag.
	type tagCase struct {
		Tag   *ast.Symbol
		Forms []ast.Form
	}
	var cases []tagCase
	for _, it := range items {
		if it.Tag != nil {
			cases = append(cases, tagCase{Tag: it.Tag})
			continue
		}
		cases[len(cases)-1].Forms = append(cases[len(cases)-1].Forms, it.Form)
	}

	tbidxVar := ctx.Unit.Gen.Var()
	branchVar := ctx.Unit.Gen.Var()
	labelName := "TB" + ctx.Unit.Gen.Var()

	ctx.Target.PushToTarget(jsast.VarStmt(tbidxVar, jsast.Expr{Data: &jsast.EArray{}}))
	ctx.Target.PushToTarget(jsast.VarStmt(branchVar, jsast.Num(0)))

	var gotagBindings []*env.Binding
	for i, c := range cases {
		gotagBindings = append(gotagBindings, &env.Binding{
			Name: c.Tag, Kind: env.KindGotag,
			Value: env.GotagValue{TagbodyIDVar: tbidxVar, TagIndex: i},
		})
	}
	bodyEnv := ctx.Env.Extend(gotagBindings, env.Gotag)
	bodyCtx := ctx.WithEnv(bodyEnv)

	var switchCases []jsast.SwitchCase
	for i, c := range cases {
		caseBuf := &target.Buffer{}
		caseCtxCopy := *bodyCtx
		caseCtxCopy.Target = caseBuf
		for _, f := range c.Forms {
			if _, err := Convert(&caseCtxCopy, f, target.VarNone, ""); err != nil {
				return "", err
			}
		}
		test := jsast.Num(float64(i))
		switchCases = append(switchCases, jsast.SwitchCase{Test: &test, Body: caseBuf.TargetStatements()})
	}
	switchCases = append(switchCases, jsast.SwitchCase{
		Test: nil,
		Body: []jsast.Stmt{{Data: &jsast.SBreak{Label: labelName}}},
	})

	catchParam := ctx.Unit.Gen.Var()
	isMatch := jsast.Expr{Data: &jsast.EBinary{
		Op:   jsast.BinOpLogicalAnd,
		Left: jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(catchParam), Class: runtime.Get(runtime.TagNLX)}},
		Right: jsast.Expr{Data: &jsast.EBinary{
			Op:    jsast.BinOpStrictEq,
			Left:  jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(catchParam), Name: "id"}},
			Right: jsast.Ident(tbidxVar),
		}},
	}}
	assignBranch := jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
		Target: jsast.Ident(branchVar),
		Value:  jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(catchParam), Name: "label"}},
	}})
	continueStmt := jsast.Stmt{Data: &jsast.SContinue{Label: labelName}}
	rethrow := jsast.ThrowStmt(jsast.Ident(catchParam))

	// The try sits INSIDE the labeled while's body (not the other way
	// around), so the catch's `continue label` can legally target the
	// loop it is lexically nested in. Falling off the switch normally
	// (tagbody ran to completion without a go) breaks the loop via the
	// unconditional break appended after it.
	tryBody := []jsast.Stmt{
		{Data: &jsast.SSwitch{Test: jsast.Ident(branchVar), Cases: switchCases}},
		{Data: &jsast.SBreak{Label: labelName}},
	}
	tryStmt := jsast.Stmt{Data: &jsast.STry{
		Body: tryBody,
		Catch: &jsast.CatchClause{
			Param: catchParam,
			Body:  []jsast.Stmt{{Data: &jsast.SIf{Test: isMatch, Yes: []jsast.Stmt{assignBranch, continueStmt}, No: []jsast.Stmt{rethrow}}}},
		},
	}}
	whileStmt := jsast.Stmt{Data: &jsast.SWhile{Test: jsast.Bool(true), Body: []jsast.Stmt{tryStmt}}}
	labeled := jsast.Stmt{Data: &jsast.SLabel{Name: labelName, Body: whileStmt}}
	ctx.Target.PushToTarget(labeled)

	nilExpr, err := ctx.Unit.Literals.Literal(ast.Nil, false)
	if err != nil {
		return "", err
	}
	return ctx.Emit(nilExpr, mode, existing), nil
}

// compileGo throws a TagNLX carrying the tagbody's sentinel and the
// target tag's branch index, for the enclosing tagbody's catch to match
// and resume from (spec.md §4.6).
func compileGo(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	parts := ast.ToSlice(ast.Cdr(form))
	if len(parts) != 1 {
		return "", errors.New("go: expected exactly one tag")
	}
	tagSym, ok := parts[0].AsSymbol()
	if !ok {
		return "", errors.Errorf("go: %s is not a tag", parts[0])
	}

	b := ctx.Env.Lookup(tagSym, env.Gotag)
	if b == nil {
		return "", errors.Errorf("go: tag %s is not visible here", tagSym.Name)
	}
	gv := b.Gotag()

	slot := unreachableSlot(ctx, mode, existing)
	ctx.Target.PushToTarget(runtime.ThrowNew(runtime.TagNLX, jsast.Ident(gv.TagbodyIDVar), jsast.Num(float64(gv.TagIndex))))
	return slot, nil
}

// compileCatch evaluates the tag, runs body in a try, and catches a
// CatchNLX whose id matches the tag by ===, re-threading its carried
// value through the runtime's multiple-value forcer; anything else
// rethrows (spec.md §4.6).
func compileCatch(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	parts := ast.ToSlice(ast.Cdr(form))
	if len(parts) == 0 {
		return "", errors.New("catch: expected a tag form")
	}
	tagID, err := Convert(ctx, parts[0], target.VarFresh, "")
	if err != nil {
		return "", err
	}
	body := parts[1:]

	slot := existing
	innerMode := mode
	if mode == target.VarFresh {
		slot = ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarDecl(slot))
		innerMode = target.VarExisting
	}

	innerBuf := &target.Buffer{}
	bodyCtx := ctx.WithEnv(ctx.Env)
	bodyCtx.Target = innerBuf
	if _, err := compileBody(bodyCtx, body, innerMode, slot); err != nil {
		return "", err
	}

	catchParam := ctx.Unit.Gen.Var()
	isMatch := jsast.Expr{Data: &jsast.EBinary{
		Op:   jsast.BinOpLogicalAnd,
		Left: jsast.Expr{Data: &jsast.EInstanceof{Value: jsast.Ident(catchParam), Class: runtime.Get(runtime.CatchNLX)}},
		Right: jsast.Expr{Data: &jsast.EBinary{
			Op:    jsast.BinOpStrictEq,
			Left:  jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(catchParam), Name: "id"}},
			Right: jsast.Ident(tagID),
		}},
	}}
	var catchBody []jsast.Stmt
	if mode != target.VarNone {
		forced := runtime.Call(runtime.ForceMV, jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(catchParam), Name: "values"}})
		catchBody = append(catchBody, jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{Target: jsast.Ident(slot), Value: forced}}))
	}
	rethrow := jsast.ThrowStmt(jsast.Ident(catchParam))

	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.STry{
		Body: innerBuf.TargetStatements(),
		Catch: &jsast.CatchClause{
			Param: catchParam,
			Body:  []jsast.Stmt{{Data: &jsast.SIf{Test: isMatch, Yes: catchBody, No: []jsast.Stmt{rethrow}}}},
		},
	}})

	if mode == target.VarNone {
		return "", nil
	}
	return slot, nil
}

// compileThrow evaluates tag and value (value compiled under the
// multiple-value flag, since a throw's value is a full multiple-value
// object per spec.md §4.6) and throws a CatchNLX.
func compileThrow(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	parts := ast.ToSlice(ast.Cdr(form))
	if len(parts) != 2 {
		return "", errors.New("throw: expected a tag and a value form")
	}
	tagID, err := Convert(ctx, parts[0], target.VarFresh, "")
	if err != nil {
		return "", err
	}
	var valueID string
	ctx.WithMultipleValues(true, func() {
		valueID, err = Convert(ctx, parts[1], target.VarFresh, "")
	})
	if err != nil {
		return "", err
	}

	slot := unreachableSlot(ctx, mode, existing)
	ctx.Target.PushToTarget(runtime.ThrowNew(runtime.CatchNLX, jsast.Ident(tagID), jsast.Ident(valueID)))
	return slot, nil
}

// compileUnwindProtect emits `var r; try { r = <protected>; } finally {
// <cleanup>; }`, returning r (spec.md §4.6).
func compileUnwindProtect(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	parts := ast.ToSlice(ast.Cdr(form))
	if len(parts) == 0 {
		return "", errors.New("unwind-protect: expected a protected form")
	}
	protected := parts[0]
	cleanup := parts[1:]

	slot := existing
	innerMode := mode
	if mode == target.VarFresh {
		slot = ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarDecl(slot))
		innerMode = target.VarExisting
	}

	tryBuf := &target.Buffer{}
	tryCtx := ctx.WithEnv(ctx.Env)
	tryCtx.Target = tryBuf
	if _, err := Convert(tryCtx, protected, innerMode, slot); err != nil {
		return "", err
	}

	finallyBuf := &target.Buffer{}
	finallyCtx := ctx.WithEnv(ctx.Env)
	finallyCtx.Target = finallyBuf
	if _, err := compileBody(finallyCtx, cleanup, target.VarNone, ""); err != nil {
		return "", err
	}

	ctx.Target.PushToTarget(jsast.Stmt{Data: &jsast.STry{
		Body:    tryBuf.TargetStatements(),
		Finally: finallyBuf.TargetStatements(),
	}})

	if mode == target.VarNone {
		return "", nil
	}
	return slot, nil
}
