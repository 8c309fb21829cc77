package compiler

import (
	"strings"
	"testing"

	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/config"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsprinter"
	"github.com/lispjs/lispjs/internal/macro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func std(name string) ast.Form { return ast.MakeSymbol(ast.NewSymbol(name, ast.StandardPackage)) }
func num(v int64) ast.Form     { return ast.MakeInt(v) }

// compile runs one toplevel form through a fresh unit, the same path
// cmd/lispjsc's compile subcommand uses, and returns the printed JS.
func compile(t *testing.T, form ast.Form) string {
	t.Helper()
	unit := NewUnit(config.DefaultOptions(), macro.NoExpansion)
	ctx := &Context{Env: env.New(), Target: unit.Toplevel, Unit: unit, Options: config.DefaultOptions()}

	stmts, err := ProcessToplevel(ctx, form)
	require.NoError(t, err)
	return jsprinter.Print(stmts, jsprinter.Options{Indent: "  "})
}

func TestConvertArithmeticBuiltinChains(t *testing.T) {
	js := compile(t, ast.QList(std("+"), num(1), num(2), num(3)))
	assert.Contains(t, js, "+")
}

func TestConvertIfTakesTrueBranch(t *testing.T) {
	js := compile(t, ast.QList(std("IF"), num(1), num(11), num(22)))
	assert.Contains(t, js, "if")
}

func TestConvertLetBindsAndShadows(t *testing.T) {
	form := ast.QList(std("LET"),
		ast.QList(
			ast.QList(std("X"), num(1)),
			ast.QList(std("Y"), num(2)),
		),
		ast.QList(std("+"), std("X"), std("Y")),
	)
	js := compile(t, form)
	assert.NotEmpty(t, js)
}

func TestConvertSetqAssignsBoundVariable(t *testing.T) {
	form := ast.QList(std("LET"),
		ast.QList(ast.QList(std("X"), num(1))),
		ast.QList(std("SETQ"), std("X"), num(2)),
	)
	js := compile(t, form)
	assert.Contains(t, js, "=")
}

func TestConvertPrognFlattensAtToplevel(t *testing.T) {
	form := ast.QList(std("PROGN"), num(1), num(2), num(3))
	js := compile(t, form)
	// three toplevel forms compiled for effect/value, none of them nested
	// inside a single expression statement for the others.
	assert.NotEmpty(t, js)
}

func TestConvertQuoteDoesNotEvaluateItsArgument(t *testing.T) {
	form := ast.QList(std("QUOTE"), ast.QList(std("A"), std("B")))
	js := compile(t, form)
	assert.NotEmpty(t, js)
}

func TestConvertNonSymbolHeadIsNotAValidFunctionDesignator(t *testing.T) {
	// (1 2): a cons whose head is neither a special form, a builtin, nor
	// a bound function symbol is not a valid funcall target once the head
	// itself isn't a symbol at all.
	form := ast.NewCons(num(1), ast.NewCons(num(2), ast.Nil))
	unit := NewUnit(config.DefaultOptions(), macro.NoExpansion)
	ctx := &Context{Env: env.New(), Target: unit.Toplevel, Unit: unit, Options: config.DefaultOptions()}

	_, err := ProcessToplevel(ctx, ast.MakeCons(form))
	assert.Error(t, err)
}

func kwSym(name string) ast.Form { return ast.MakeSymbol(ast.NewSymbol(name, ast.KeywordPackage)) }

func TestConvertDirectLambdaApplicationRestDoesNotSuppressUnknownKeywordCheck(t *testing.T) {
	// &rest still throws on an unrecognized keyword until &allow-other-keys
	// is present (spec.md §9) — scenario 6 of the self-test table.
	form := ast.QList(
		ast.QList(std("LAMBDA"),
			ast.QList(std("&KEY"), ast.QList(std("A"), num(1), std("AP")), std("&REST"), std("R")),
			std("A"),
		),
		kwSym("A"), num(2), kwSym("B"), num(3),
	)
	js := compile(t, form)
	assert.Contains(t, js, "Unknown keyword argument")
}

func TestConvertCatchThrowRoutesThroughCatchNLX(t *testing.T) {
	form := ast.QList(std("CATCH"), ast.QList(std("QUOTE"), std("K")),
		ast.QList(std("THROW"), ast.QList(std("QUOTE"), std("K")), num(42)),
	)
	js := compile(t, form)
	assert.Contains(t, js, "CatchNLX")
}

func TestConvertBlockTagbodyEmitsExactlyOneBlockNLXAndOneTagNLX(t *testing.T) {
	form := ast.QList(std("BLOCK"), std("OUTER"),
		ast.QList(std("TAGBODY"),
			ast.QList(std("SETQ"), std("X"), num(0)),
			std("START"),
			ast.QList(std("IF"),
				ast.QList(std(">="), std("X"), num(3)),
				ast.QList(std("RETURN-FROM"), std("OUTER"), std("X")),
			),
			ast.QList(std("SETQ"), std("X"), ast.QList(std("+"), std("X"), num(1))),
			ast.QList(std("GO"), std("START")),
		),
	)
	js := compile(t, form)
	assert.Equal(t, 1, strings.Count(js, "instanceof internals.BlockNLX"))
	assert.Equal(t, 1, strings.Count(js, "instanceof internals.TagNLX"))
}

func TestConvertSpecialVariableLetRoutesThroughWithDynamicBindings(t *testing.T) {
	form := ast.QList(std("LET"),
		ast.QList(ast.QList(std("*X*"), num(10))),
		ast.QList(std("DECLARE"), ast.QList(std("SPECIAL"), std("*X*"))),
		ast.QList(std("SYMBOL-VALUE"), ast.QList(std("QUOTE"), std("*X*"))),
	)
	js := compile(t, form)
	assert.Contains(t, js, "withDynamicBindings")
}
