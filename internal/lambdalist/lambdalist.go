// Package lambdalist implements the lambda-list compiler of spec.md §4.5:
// splitting a lambda-list form into required/optional/rest/keyword
// parameter groups, then lowering that classification into JS argument
// count guards, switch-based optional defaulting, rest collection, and
// paired keyword scanning.
//
// There is no lambda-list analog in the teacher; the "classify first, then
// lower in ordered phases" shape mirrors how the teacher's own
// internal/js_parser lowers binding patterns (classify target shape, then
// emit initialization code for each piece in a fixed order), without
// reusing any parser-specific code, since none applies here.
package lambdalist

import (
	"fmt"

	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/namegen"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
)

// Optional is one &optional parameter: NAME, (NAME), (NAME DEFAULT), or
// (NAME DEFAULT SVAR).
type Optional struct {
	Name    *ast.Symbol
	Default ast.Form    // ast.Nil if unspecified
	Svar    *ast.Symbol // nil if no presence flag requested
}

// Key is one &key parameter: NAME, (NAME), (NAME DEFAULT), (NAME DEFAULT
// SVAR), ((KEYWORD-NAME NAME)), ((KEYWORD-NAME NAME) DEFAULT), or
// ((KEYWORD-NAME NAME) DEFAULT SVAR).
type Key struct {
	Keyword *ast.Symbol // the keyword-package symbol compared with ===
	Var     *ast.Symbol
	Default ast.Form
	Svar    *ast.Symbol
}

// LambdaList is the parsed, classified shape of spec.md §4.5's first
// paragraph.
type LambdaList struct {
	Required       []*ast.Symbol
	Optional       []Optional
	Rest           *ast.Symbol
	Key            []Key
	AllowOtherKeys bool
}

var (
	symOptional       = ast.NewSymbol("&OPTIONAL", ast.StandardPackage)
	symRest           = ast.NewSymbol("&REST", ast.StandardPackage)
	symKey            = ast.NewSymbol("&KEY", ast.StandardPackage)
	symAllowOtherKeys = ast.NewSymbol("&ALLOW-OTHER-KEYS", ast.StandardPackage)
)

func isMarker(f ast.Form, marker *ast.Symbol) bool {
	s, ok := f.AsSymbol()
	return ok && ast.SymbolEq(s, marker)
}

// Parse splits a lambda-list form into its four parameter groups.
func Parse(form ast.Form, keywordPkg string) (*LambdaList, error) {
	ll := &LambdaList{}
	section := 0 // 0=required 1=optional 2=rest(expect exactly one) 3=key
	items := ast.ToSlice(form)

	for i := 0; i < len(items); i++ {
		item := items[i]
		switch {
		case isMarker(item, symOptional):
			section = 1
			continue
		case isMarker(item, symRest):
			section = 2
			continue
		case isMarker(item, symKey):
			section = 3
			continue
		case isMarker(item, symAllowOtherKeys):
			ll.AllowOtherKeys = true
			continue
		}

		switch section {
		case 0:
			sym, ok := item.AsSymbol()
			if !ok {
				return nil, fmt.Errorf("lambdalist: required parameter %s is not a symbol", item)
			}
			ll.Required = append(ll.Required, sym)

		case 1:
			opt, err := parseOptional(item)
			if err != nil {
				return nil, err
			}
			ll.Optional = append(ll.Optional, opt)

		case 2:
			if ll.Rest != nil {
				return nil, fmt.Errorf("lambdalist: more than one &rest parameter")
			}
			sym, ok := item.AsSymbol()
			if !ok {
				return nil, fmt.Errorf("lambdalist: &rest parameter %s is not a symbol", item)
			}
			ll.Rest = sym

		case 3:
			k, err := parseKey(item, keywordPkg)
			if err != nil {
				return nil, err
			}
			ll.Key = append(ll.Key, k)
		}
	}

	return ll, nil
}

func parseOptional(item ast.Form) (Optional, error) {
	if sym, ok := item.AsSymbol(); ok {
		return Optional{Name: sym, Default: ast.Nil}, nil
	}
	parts := ast.ToSlice(item)
	if len(parts) == 0 {
		return Optional{}, fmt.Errorf("lambdalist: malformed &optional entry %s", item)
	}
	sym, ok := parts[0].AsSymbol()
	if !ok {
		return Optional{}, fmt.Errorf("lambdalist: &optional name %s is not a symbol", parts[0])
	}
	opt := Optional{Name: sym, Default: ast.Nil}
	if len(parts) >= 2 {
		opt.Default = parts[1]
	}
	if len(parts) >= 3 {
		svar, ok := parts[2].AsSymbol()
		if !ok {
			return Optional{}, fmt.Errorf("lambdalist: &optional presence-variable %s is not a symbol", parts[2])
		}
		opt.Svar = svar
	}
	return opt, nil
}

func parseKey(item ast.Form, keywordPkg string) (Key, error) {
	mk := func(varSym *ast.Symbol) Key {
		return Key{
			Keyword: ast.NewSymbol(varSym.Name, keywordPkg),
			Var:     varSym,
			Default: ast.Nil,
		}
	}

	if sym, ok := item.AsSymbol(); ok {
		return mk(sym), nil
	}

	parts := ast.ToSlice(item)
	if len(parts) == 0 {
		return Key{}, fmt.Errorf("lambdalist: malformed &key entry %s", item)
	}

	var k Key
	if varSym, ok := parts[0].AsSymbol(); ok {
		k = mk(varSym)
	} else {
		// ((keyword-name var) ...)
		pair := ast.ToSlice(parts[0])
		if len(pair) != 2 {
			return Key{}, fmt.Errorf("lambdalist: malformed &key name spec %s", parts[0])
		}
		kw, ok1 := pair[0].AsSymbol()
		v, ok2 := pair[1].AsSymbol()
		if !ok1 || !ok2 {
			return Key{}, fmt.Errorf("lambdalist: malformed &key name spec %s", parts[0])
		}
		k = Key{Keyword: kw, Var: v, Default: ast.Nil}
	}

	if len(parts) >= 2 {
		k.Default = parts[1]
	}
	if len(parts) >= 3 {
		svar, ok := parts[2].AsSymbol()
		if !ok {
			return Key{}, fmt.Errorf("lambdalist: &key presence-variable %s is not a symbol", parts[2])
		}
		k.Svar = svar
	}
	return k, nil
}

// CompileDefault compiles a default-value form with VarExisting semantics
// into the already-declared JS slot named slot, under env e, appending
// statements to buf. internal/compiler supplies this (it closes over the
// real driver entry point) so lambdalist never imports internal/compiler.
type CompileDefault func(form ast.Form, e *env.Env, buf *target.Buffer, slot string) error

// KeywordRef turns a keyword symbol into the JS expression that denotes it
// at run time (the literal table's interned symbol reference).
// internal/compiler supplies this for the same reason as CompileDefault.
type KeywordRef func(*ast.Symbol) jsast.Expr

// Slots is the result of Compile: the new environment with every
// lambda-list parameter installed, and the ordered list of formal JS
// parameter names (required + optional only — rest/key are parsed out of
// `arguments`, never declared as formals, since their count isn't fixed).
type Slots struct {
	Env        *env.Env
	FormalArgs []string
}

func argsExpr() jsast.Expr { return jsast.Ident("arguments") }

func argsLengthExpr() jsast.Expr {
	return jsast.Expr{Data: &jsast.EDot{Target: argsExpr(), Name: "length"}}
}

func argAt(index jsast.Expr) jsast.Expr {
	return jsast.Expr{Data: &jsast.EIndex{Target: argsExpr(), Index: index}}
}

func binop(op jsast.BinOp, left, right jsast.Expr) jsast.Expr {
	return jsast.Expr{Data: &jsast.EBinary{Op: op, Left: left, Right: right}}
}

func assign(tgt, value jsast.Expr) jsast.Stmt {
	return jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{Target: tgt, Value: value}})
}

func exprPtr(e jsast.Expr) *jsast.Expr { return &e }

// Compile lowers ll into JS statements appended to buf, in the four phases
// spec.md §4.5 specifies, and returns the lexical environment extended
// with every parameter binding.
func Compile(ll *LambdaList, e *env.Env, gen *namegen.Generator, buf *target.Buffer, compileDefault CompileDefault, keywordRef KeywordRef) (*Slots, error) {
	min := len(ll.Required)
	max := min + len(ll.Optional)
	hasRestOrKey := ll.Rest != nil || len(ll.Key) > 0
	// argCount is `arguments.length - 1`: the actual argument count with
	// the values marker excluded (spec.md §4.5 / §6's calling convention).
	argCount := func() jsast.Expr { return binop(jsast.BinOpSub, argsLengthExpr(), jsast.Num(1)) }

	// Phase 1: argument count guard.
	switch {
	case !hasRestOrKey && len(ll.Optional) == 0:
		buf.PushToTarget(jsast.ExprStmt(runtime.Call(runtime.CheckArgs, argsExpr(), jsast.Num(float64(min)))))
	default:
		if min > 0 {
			buf.PushToTarget(jsast.ExprStmt(runtime.Call(runtime.CheckArgsAtLeast, argsExpr(), jsast.Num(float64(min)))))
		}
		if !hasRestOrKey {
			buf.PushToTarget(jsast.ExprStmt(runtime.Call(runtime.CheckArgsAtMost, argsExpr(), jsast.Num(float64(max)))))
		}
	}

	var bindings []*env.Binding
	var formals []string

	for _, req := range ll.Required {
		slot := gen.Var()
		formals = append(formals, slot)
		bindings = append(bindings, &env.Binding{Name: req, Kind: env.KindVariable, Value: slot})
	}
	// Required parameters are visible to optional defaults immediately;
	// extend now so compileDefault sees them.
	e = e.Extend(bindings, env.Variable)

	// Phase 2: optional defaulting via a switch on actual argument count.
	if len(ll.Optional) > 0 {
		slots := make([]string, len(ll.Optional))
		svars := make([]string, len(ll.Optional))
		caseBodies := make([][]jsast.Stmt, len(ll.Optional))

		for i, opt := range ll.Optional {
			slots[i] = gen.Var()
			formals = append(formals, slots[i])
			if opt.Svar != nil {
				svars[i] = gen.Var()
			}

			// Build this case's body under the env as of "only parameters
			// before this one are bound", matching ordinary left-to-right
			// &optional default visibility.
			sub := &target.Buffer{}
			if err := compileDefault(opt.Default, e, sub, slots[i]); err != nil {
				return nil, err
			}
			body := append([]jsast.Stmt{}, sub.TargetStatements()...)
			if opt.Svar != nil {
				body = append(body, assign(jsast.Ident(svars[i]), jsast.Ident("nil")))
			}
			caseBodies[i] = body

			optBindings := []*env.Binding{{Name: opt.Name, Kind: env.KindVariable, Value: slots[i]}}
			if opt.Svar != nil {
				optBindings = append(optBindings, &env.Binding{Name: opt.Svar, Kind: env.KindVariable, Value: svars[i]})
			}
			e = e.Extend(optBindings, env.Variable)
		}

		for _, svar := range svars {
			if svar == "" {
				continue
			}
			buf.PushToTarget(jsast.VarStmt(svar, jsast.Ident("t")))
		}

		var cases []jsast.SwitchCase
		// One case per "this many optionals were supplied", ascending:
		// landing on case min+k means exactly k optionals arrived, and
		// falling through from it runs the default of optional k and of
		// every later one, leaving the k supplied optionals untouched.
		for i := 0; i < len(ll.Optional); i++ {
			testVal := jsast.Num(float64(min + i))
			cases = append(cases, jsast.SwitchCase{Test: exprPtr(testVal), Body: caseBodies[i]})
		}
		cases = append(cases, jsast.SwitchCase{Test: nil, Body: nil})
		buf.PushToTarget(jsast.Stmt{Data: &jsast.SSwitch{Test: argCount(), Cases: cases}})
	}

	// Phase 3: rest collection, consing from the last actual argument down
	// to the first rest position, producing a fresh list (spec.md §4.5).
	if ll.Rest != nil {
		restSlot := gen.Var()
		idxVar := gen.Var()
		buf.PushToTarget(jsast.VarStmt(restSlot, jsast.Ident("nil")))
		buf.PushToTarget(jsast.VarStmt(idxVar, argCount()))
		loopBody := []jsast.Stmt{
			assign(jsast.Ident(restSlot), runtime.Call(runtime.Cons, argAt(jsast.Ident(idxVar)), jsast.Ident(restSlot))),
			jsast.ExprStmt(jsast.Expr{Data: &jsast.EUnary{Op: jsast.UnOpPreDec, Value: jsast.Ident(idxVar)}}),
		}
		buf.PushToTarget(jsast.Stmt{Data: &jsast.SWhile{
			Test: binop(jsast.BinOpGt, jsast.Ident(idxVar), jsast.Num(float64(max))),
			Body: loopBody,
		}})
		restBinding := &env.Binding{Name: ll.Rest, Kind: env.KindVariable, Value: restSlot}
		e = e.ExtendOne(restBinding, env.Variable)
	}

	// Phase 4: keyword parsing.
	if len(ll.Key) > 0 {
		keySlots := make([]string, len(ll.Key))
		keySvars := make([]string, len(ll.Key))
		for i, k := range ll.Key {
			keySlots[i] = gen.Var()
			buf.PushToTarget(jsast.VarDecl(keySlots[i]))
			if k.Svar != nil {
				keySvars[i] = gen.Var()
				buf.PushToTarget(jsast.VarStmt(keySvars[i], jsast.Ident("nil")))
			}
		}

		idxVar := gen.Var()
		matchLabel := gen.Fresh("kwmatch")
		buf.PushToTarget(jsast.VarStmt(idxVar, jsast.Num(float64(max+1))))

		oddCheck := jsast.Stmt{Data: &jsast.SIf{
			Test: binop(jsast.BinOpGe, binop(jsast.BinOpAdd, jsast.Ident(idxVar), jsast.Num(1)), argsLengthExpr()),
			Yes:  []jsast.Stmt{runtime.ThrowNew("Error", jsast.Str("Odd number of keyword arguments."))},
		}}

		var matchChain []jsast.Stmt
		for i, k := range ll.Key {
			matchBody := []jsast.Stmt{
				assign(jsast.Ident(keySlots[i]), argAt(binop(jsast.BinOpAdd, jsast.Ident(idxVar), jsast.Num(1)))),
			}
			if k.Svar != nil {
				matchBody = append(matchBody, assign(jsast.Ident(keySvars[i]), jsast.Ident("t")))
			}
			matchBody = append(matchBody, jsast.BreakStmt(matchLabel))
			matchChain = append(matchChain, jsast.Stmt{Data: &jsast.SIf{
				Test: binop(jsast.BinOpStrictEq, argAt(jsast.Ident(idxVar)), keywordRef(k.Keyword)),
				Yes:  matchBody,
			}})
		}
		if !ll.AllowOtherKeys {
			// spec.md §9: the unknown-keyword check fires whenever keyword
			// parameters are declared, independent of &rest, until
			// &allow-other-keys is present.
			matchChain = append(matchChain, runtime.ThrowNew("Error",
				binop(jsast.BinOpAdd, jsast.Str("Unknown keyword argument "), argAt(jsast.Ident(idxVar)))))
		}

		loopBody := []jsast.Stmt{
			oddCheck,
			jsast.Stmt{Data: &jsast.SLabel{Name: matchLabel, Body: jsast.Stmt{Data: &jsast.SBlock{Body: matchChain}}}},
			assign(jsast.Ident(idxVar), binop(jsast.BinOpAdd, jsast.Ident(idxVar), jsast.Num(2))),
		}

		buf.PushToTarget(jsast.Stmt{Data: &jsast.SWhile{
			Test: binop(jsast.BinOpLt, jsast.Ident(idxVar), argsLengthExpr()),
			Body: loopBody,
		}})

		for i, k := range ll.Key {
			sub := &target.Buffer{}
			if err := compileDefault(k.Default, e, sub, keySlots[i]); err != nil {
				return nil, err
			}
			buf.PushToTarget(jsast.Stmt{Data: &jsast.SIf{
				Test: binop(jsast.BinOpStrictEq, jsast.Ident(keySlots[i]), jsast.Undefined()),
				Yes:  sub.TargetStatements(),
			}})
			keyBindings := []*env.Binding{{Name: k.Var, Kind: env.KindVariable, Value: keySlots[i]}}
			if k.Svar != nil {
				keyBindings = append(keyBindings, &env.Binding{Name: k.Svar, Kind: env.KindVariable, Value: keySvars[i]})
			}
			e = e.Extend(keyBindings, env.Variable)
		}
	}

	return &Slots{Env: e, FormalArgs: formals}, nil
}
