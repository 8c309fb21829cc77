package compiler

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/lambdalist"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
	"github.com/pkg/errors"
)

func init() {
	registerSpecialForm("LET", compileLet)
	registerSpecialForm("LET*", compileLetStar)
	registerSpecialForm("FLET", compileFlet)
	registerSpecialForm("LABELS", compileLabels)
	registerSpecialForm("FUNCTION", compileFunctionForm)
	registerSpecialForm("MACROLET", compileMacrolet)
	registerSpecialForm("SYMBOL-MACROLET", compileSymbolMacrolet)
}

// letClause is one (name [value]) or bare NAME binding clause, classified
// into lexical or special by whether a leading (declare (special ...))
// names it (SPEC_FULL supplement: declare handling).
type letClause struct {
	Name    *ast.Symbol
	Value   ast.Form
	Special bool
}

func parseBindingClauses(form ast.Form) ([]letClause, []ast.Form, error) {
	raw := ast.ToSlice(ast.Cadr(form))
	body := ast.ToSlice(ast.Cdr(ast.Cdr(form)))

	specials := map[string]bool{}
	for len(body) > 0 {
		if name, ok := headName(body[0]); ok && name == "DECLARE" {
			collectSpecialDecls(body[0], specials)
			body = body[1:]
			continue
		}
		break
	}

	clauses := make([]letClause, len(raw))
	for i, c := range raw {
		if sym, ok := c.AsSymbol(); ok {
			clauses[i] = letClause{Name: sym, Value: ast.Nil, Special: specials[symKeyFor(sym)]}
			continue
		}
		parts := ast.ToSlice(c)
		if len(parts) == 0 {
			return nil, nil, errors.Errorf("malformed binding clause %s", c)
		}
		sym, ok := parts[0].AsSymbol()
		if !ok {
			return nil, nil, errors.Errorf("binding name %s is not a symbol", parts[0])
		}
		value := ast.Nil
		if len(parts) >= 2 {
			value = parts[1]
		}
		clauses[i] = letClause{Name: sym, Value: value, Special: specials[symKeyFor(sym)]}
	}
	return clauses, body, nil
}

func symKeyFor(s *ast.Symbol) string { return s.Package + "\x00" + s.Name }

var symSpecial = ast.NewSymbol("SPECIAL", ast.StandardPackage)

// collectSpecialDecls records every name in (declare (special a b ...))
// clauses of declareForm into specials (SPEC_FULL supplement).
func collectSpecialDecls(declareForm ast.Form, specials map[string]bool) {
	for _, clause := range ast.ToSlice(ast.Cdr(declareForm)) {
		head, ok := ast.Car(clause).AsSymbol()
		if !ok || !ast.SymbolEq(head, symSpecial) {
			continue
		}
		for _, name := range ast.ToSlice(ast.Cdr(clause)) {
			if sym, ok := name.AsSymbol(); ok {
				specials[symKeyFor(sym)] = true
			}
		}
	}
}

// compileLet evaluates every value form in the outer environment (so
// bindings are not yet visible to their siblings), then extends the
// environment with lexical bindings and wraps the body in a
// withDynamicBindings call installing the special ones (spec.md §4.6).
func compileLet(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	clauses, body, err := parseBindingClauses(form)
	if err != nil {
		return "", err
	}

	valueIDs := make([]string, len(clauses))
	for i, c := range clauses {
		id, err := Convert(ctx, c.Value, target.VarFresh, "")
		if err != nil {
			return "", err
		}
		valueIDs[i] = id
	}

	var lexBindings []*env.Binding
	var specialClauses []letClause
	var specialValueIDs []string
	for i, c := range clauses {
		if c.Special {
			specialClauses = append(specialClauses, c)
			specialValueIDs = append(specialValueIDs, valueIDs[i])
			continue
		}
		slot := ctx.Unit.Gen.Var()
		ctx.Target.PushToTarget(jsast.VarStmt(slot, jsast.Ident(valueIDs[i])))
		lexBindings = append(lexBindings, &env.Binding{Name: c.Name, Kind: env.KindVariable, Value: slot})
	}

	bodyCtx := ctx.WithEnv(ctx.Env.Extend(lexBindings, env.Variable))

	if len(specialClauses) == 0 {
		return compileBody(bodyCtx, body, mode, existing)
	}
	return compileWithDynamicBindings(bodyCtx, specialClauses, specialValueIDs, body, mode, existing)
}

// compileLetStar binds sequentially: each lexical binding extends env
// before the next value is evaluated; special bindings push/set/record
// for a finally-restored pop, the whole body wrapped in try/finally when
// any binding is special (spec.md §4.6).
func compileLetStar(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	clauses, body, err := parseBindingClauses(form)
	if err != nil {
		return "", err
	}

	cur := ctx
	var specialClauses []letClause
	var specialValueIDs []string
	for _, c := range clauses {
		id, err := Convert(cur, c.Value, target.VarFresh, "")
		if err != nil {
			return "", err
		}
		if c.Special {
			specialClauses = append(specialClauses, c)
			specialValueIDs = append(specialValueIDs, id)
			continue
		}
		slot := cur.Unit.Gen.Var()
		cur.Target.PushToTarget(jsast.VarStmt(slot, jsast.Ident(id)))
		nextEnv := cur.Env.ExtendOne(&env.Binding{Name: c.Name, Kind: env.KindVariable, Value: slot}, env.Variable)
		cur = cur.WithEnv(nextEnv)
	}

	if len(specialClauses) == 0 {
		return compileBody(cur, body, mode, existing)
	}
	return compileWithDynamicBindings(cur, specialClauses, specialValueIDs, body, mode, existing)
}

// compileWithDynamicBindings wraps body in a runtime withDynamicBindings
// call: an array of (symbol, value) pairs, a thunk compiling body, push
// the special bindings' flags into a throwaway env so lookups inside body
// that reference them as special still read through .value.
func compileWithDynamicBindings(ctx *Context, clauses []letClause, valueIDs []string, body []ast.Form, mode target.VarMode, existing string) (string, error) {
	pairs := make([]jsast.Expr, 0, len(clauses)*2)
	var specialBindings []*env.Binding
	for i, c := range clauses {
		litExpr, err := ctx.Unit.Literals.Literal(ast.MakeSymbol(c.Name), false)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, litExpr, jsast.Ident(valueIDs[i]))
		specialBindings = append(specialBindings, &env.Binding{
			Name: c.Name, Kind: env.KindVariable, Value: "", Decls: env.DeclSpecial,
		})
	}

	innerCtx := ctx.WithEnv(ctx.Env.Extend(specialBindings, env.Variable))
	innerBuf := &target.Buffer{}
	innerCtx.Target = innerBuf

	resultID, err := compileBody(innerCtx, body, target.VarFresh, "")
	if err != nil {
		return "", err
	}
	innerBuf.PushToTarget(jsast.ReturnStmt(jsast.Ident(resultID)))

	thunk := jsast.Expr{Data: &jsast.EFunction{Fn: jsast.Fn{Body: innerBuf.TargetStatements()}}}
	callExpr := runtime.Call(runtime.WithDynamicBindings, jsast.Expr{Data: &jsast.EArray{Items: pairs}}, thunk)
	return ctx.Emit(callExpr, mode, existing), nil
}

// funDef is one flet/labels function definition: a name plus a lambda
// form `(lambda-list . body)`.
type funDef struct {
	Name       *ast.Symbol
	LambdaList ast.Form
	Body       []ast.Form
}

func parseFunDefs(form ast.Form) ([]funDef, []ast.Form) {
	raw := ast.ToSlice(ast.Cadr(form))
	body := ast.ToSlice(ast.Cdr(ast.Cdr(form)))
	defs := make([]funDef, len(raw))
	for i, d := range raw {
		parts := ast.ToSlice(d)
		sym, _ := parts[0].AsSymbol()
		defs[i] = funDef{Name: sym, LambdaList: parts[1], Body: parts[2:]}
	}
	return defs, body
}

// compileFlet compiles each definition in the outer env (so they cannot
// see each other or themselves), binds each name to a fresh function-slot
// identifier, and emits one JS function receiving those identifiers,
// invoked immediately with the compiled closures as arguments (spec.md
// §4.6).
func compileFlet(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	defs, body := parseFunDefs(form)

	slots := make([]string, len(defs))
	fns := make([]jsast.Expr, len(defs))
	for i, d := range defs {
		slots[i] = ctx.Unit.Gen.Var()
		fnExpr, err := compileLambdaExpr(ctx, d.LambdaList, d.Body, d.Name.Name)
		if err != nil {
			return "", err
		}
		fns[i] = fnExpr
	}

	var fnBindings []*env.Binding
	for i, d := range defs {
		fnBindings = append(fnBindings, &env.Binding{Name: d.Name, Kind: env.KindFunction, Value: slots[i]})
	}
	bodyCtx := ctx.WithEnv(ctx.Env.Extend(fnBindings, env.Function))

	return compileImmediatelyInvoked(bodyCtx, slots, fns, body, mode, existing)
}

// compileLabels allocates function slots first so mutually-recursive
// definitions see one another while compiling, then emits the same
// immediately-invoked shape as flet (spec.md §4.6).
func compileLabels(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	defs, body := parseFunDefs(form)

	slots := make([]string, len(defs))
	var fnBindings []*env.Binding
	for i, d := range defs {
		slots[i] = ctx.Unit.Gen.Var()
		fnBindings = append(fnBindings, &env.Binding{Name: d.Name, Kind: env.KindFunction, Value: slots[i]})
	}
	recEnv := ctx.Env.Extend(fnBindings, env.Function)
	recCtx := ctx.WithEnv(recEnv)

	fns := make([]jsast.Expr, len(defs))
	for i, d := range defs {
		fnExpr, err := compileLambdaExpr(recCtx, d.LambdaList, d.Body, d.Name.Name)
		if err != nil {
			return "", err
		}
		fns[i] = fnExpr
	}

	return compileImmediatelyInvoked(recCtx, slots, fns, body, mode, existing)
}

// compileImmediatelyInvoked emits `(function (s1, s2, ...) { <body> })(f1,
// f2, ...)`, the IIFE shape both flet and labels lower to.
func compileImmediatelyInvoked(ctx *Context, slots []string, fns []jsast.Expr, body []ast.Form, mode target.VarMode, existing string) (string, error) {
	innerBuf := &target.Buffer{}
	innerCtx := ctx.WithEnv(ctx.Env)
	innerCtx.Target = innerBuf

	resultID, err := compileBody(innerCtx, body, target.VarFresh, "")
	if err != nil {
		return "", err
	}
	innerBuf.PushToTarget(jsast.ReturnStmt(jsast.Ident(resultID)))

	iife := jsast.Expr{Data: &jsast.ECall{
		Target: jsast.Expr{Data: &jsast.EFunction{Fn: jsast.Fn{Params: slots, Body: innerBuf.TargetStatements()}}},
		Args:   fns,
	}}
	return ctx.Emit(iife, mode, existing), nil
}

// compileFunctionForm handles `(lambda ...)`, `(named-lambda name ...)`,
// and a bare function-name symbol (spec.md §4.6's `function` row).
func compileFunctionForm(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	arg := ast.Cadr(form)

	if sym, ok := arg.AsSymbol(); ok {
		if b := ctx.Env.Lookup(sym, env.Function); b != nil && b.Kind == env.KindFunction {
			return ctx.Emit(jsast.Ident(b.JSName()), mode, existing), nil
		}
		litExpr, err := ctx.Unit.Literals.Literal(ast.MakeSymbol(sym), false)
		if err != nil {
			return "", err
		}
		return ctx.Emit(runtime.Call(runtime.SymbolFunction, litExpr), mode, existing), nil
	}

	name, _ := headName(arg)
	switch name {
	case "LAMBDA":
		parts := ast.ToSlice(ast.Cdr(arg))
		fnExpr, err := compileLambdaExpr(ctx, parts[0], parts[1:], "")
		if err != nil {
			return "", err
		}
		return ctx.Emit(fnExpr, mode, existing), nil
	case "NAMED-LAMBDA":
		parts := ast.ToSlice(ast.Cdr(arg))
		sym, _ := parts[0].AsSymbol()
		blockName := sym
		if blockName == nil {
			blockName = ast.NewSymbol("", "")
		}
		body := wrapBlockBody(blockName, parts[2:])
		fnExpr, err := compileLambdaExpr(ctx, parts[1], body, sym.Name)
		if err != nil {
			return "", err
		}
		return ctx.Emit(fnExpr, mode, existing), nil
	}
	return "", errors.Errorf("function: unsupported operand %s", arg)
}

func wrapBlockBody(name *ast.Symbol, body []ast.Form) []ast.Form {
	blockSym := ast.MakeSymbol(ast.NewSymbol("BLOCK", ast.StandardPackage))
	return []ast.Form{ast.QList(append([]ast.Form{blockSym, ast.MakeSymbol(name)}, body...)...)}
}

// compileLambdaExpr compiles a full function body: lower the lambda list
// (argument-count guard, optional/rest/key handling), then the body, then
// wrap as an EFunction. The emitted function's leading `values` parameter
// is the multiple-values marker every compiled function receives (spec.md
// §6's calling convention); it is always named "values" so builtins can
// reference it directly without env plumbing.
func compileLambdaExpr(ctx *Context, lambdaListForm ast.Form, bodyForms []ast.Form, name string) (jsast.Expr, error) {
	ll, err := lambdalist.Parse(lambdaListForm, ast.KeywordPackage)
	if err != nil {
		return jsast.Expr{}, err
	}

	fnBuf := &target.Buffer{}
	compileDefault := func(defaultForm ast.Form, e *env.Env, buf *target.Buffer, slot string) error {
		subCtx := ctx.WithEnv(e)
		subCtx.Target = buf
		_, err := Convert(subCtx, defaultForm, target.VarExisting, slot)
		return err
	}

	slots, err := lambdalist.Compile(ll, ctx.Env, ctx.Unit.Gen, fnBuf, compileDefault, ctx.Unit.KeywordRef)
	if err != nil {
		return jsast.Expr{}, err
	}

	bodyCtx := ctx.WithEnv(slots.Env)
	bodyCtx.Target = fnBuf

	resultID, err := compileBody(bodyCtx, bodyForms, target.VarFresh, "")
	if err != nil {
		return jsast.Expr{}, err
	}
	fnBuf.PushToTarget(jsast.ReturnStmt(jsast.Ident(resultID)))

	params := append([]string{"values"}, slots.FormalArgs...)
	return jsast.Expr{Data: &jsast.EFunction{Fn: jsast.Fn{Name: name, Params: params, Body: fnBuf.TargetStatements()}}}, nil
}

// compileMacrolet installs temporary macro bindings whose expanders are
// plain Go closures compiling the user's lambda-list-destructured body at
// expansion time, then compiles the body under those bindings (spec.md
// §4.6). Expansion runs at compile time only; it never reaches emitted
// JS.
func compileMacrolet(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	defs, body := parseFunDefs(form)

	var macroBindings []*env.Binding
	for _, d := range defs {
		ll, err := lambdalist.Parse(d.LambdaList, ast.KeywordPackage)
		if err != nil {
			return "", err
		}
		bodyForms := d.Body
		expander := macroClosureFromLambdaList(ll, bodyForms)
		macroBindings = append(macroBindings, &env.Binding{Name: d.Name, Kind: env.KindMacro, Value: expander})
	}

	bodyCtx := ctx.WithEnv(ctx.Env.Extend(macroBindings, env.Function))
	return compileBody(bodyCtx, body, mode, existing)
}

// macroClosureFromLambdaList builds the compile-time-only destructuring
// closure macrolet installs: given the macro call's argument list, bind
// it against ll the same way a function call would, then return the
// (unevaluated, un-compiled) body form for the driver to re-expand.
// Because this core has no evaluator, the closure supports only the
// common case where the body is a single backquote-style template that
// substitutes argument forms positionally; a pattern-matching macro
// engine beyond that is the external Expander's job (spec.md §6).
func macroClosureFromLambdaList(ll *lambdalist.LambdaList, body []ast.Form) func(ast.Form) (ast.Form, error) {
	return func(args ast.Form) (ast.Form, error) {
		argForms := ast.ToSlice(args)
		bindings := map[string]ast.Form{}
		for i, name := range ll.Required {
			if i < len(argForms) {
				bindings[symKeyFor(name)] = argForms[i]
			}
		}
		if len(body) == 0 {
			return ast.Nil, nil
		}
		return substituteSymbols(body[len(body)-1], bindings), nil
	}
}

func substituteSymbols(form ast.Form, bindings map[string]ast.Form) ast.Form {
	switch form.Kind() {
	case ast.KindSymbol:
		sym, _ := form.AsSymbol()
		if repl, ok := bindings[symKeyFor(sym)]; ok {
			return repl
		}
		return form
	case ast.KindCons:
		c, _ := form.AsCons()
		return ast.MakeCons(ast.NewCons(substituteSymbols(c.Car, bindings), substituteSymbols(c.Cdr, bindings)))
	default:
		return form
	}
}

// compileSymbolMacrolet installs symbol-macro bindings in the variable
// namespace; each reference to the bound symbol is textually replaced by
// its expansion form, which is then itself compiled (spec.md §4.6).
func compileSymbolMacrolet(ctx *Context, form ast.Form, mode target.VarMode, existing string) (string, error) {
	raw := ast.ToSlice(ast.Cadr(form))
	body := ast.ToSlice(ast.Cdr(ast.Cdr(form)))

	var macroBindings []*env.Binding
	for _, c := range raw {
		parts := ast.ToSlice(c)
		sym, _ := parts[0].AsSymbol()
		expansion := parts[1]
		macroBindings = append(macroBindings, &env.Binding{
			Name: sym, Kind: env.KindSpecialMacro,
			Value: func(ast.Form) (ast.Form, error) { return expansion, nil },
		})
	}

	bodyCtx := ctx.WithEnv(ctx.Env.Extend(macroBindings, env.Variable))
	return compileBody(bodyCtx, body, mode, existing)
}
