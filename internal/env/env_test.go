package env

import (
	"testing"

	"github.com/lispjs/lispjs/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindVar(name, jsName string) *Binding {
	return &Binding{Name: ast.NewSymbol(name, ast.StandardPackage), Kind: KindVariable, Value: jsName}
}

func TestLookupMissOnEmptyEnv(t *testing.T) {
	e := New()
	assert.Nil(t, e.Lookup(ast.NewSymbol("X", ast.StandardPackage), Variable))
}

func TestExtendDoesNotMutateParent(t *testing.T) {
	parent := New()
	child := parent.ExtendOne(bindVar("X", "x1"), Variable)

	require.NotNil(t, child.Lookup(ast.NewSymbol("X", ast.StandardPackage), Variable))
	assert.Nil(t, parent.Lookup(ast.NewSymbol("X", ast.StandardPackage), Variable),
		"extend must not affect lookups against the original environment")
}

func TestLookupIsInnermostFirst(t *testing.T) {
	outer := New().ExtendOne(bindVar("X", "x_outer"), Variable)
	inner := outer.ExtendOne(bindVar("X", "x_inner"), Variable)

	b := inner.Lookup(ast.NewSymbol("X", ast.StandardPackage), Variable)
	require.NotNil(t, b)
	assert.Equal(t, "x_inner", b.JSName())

	outerB := outer.Lookup(ast.NewSymbol("X", ast.StandardPackage), Variable)
	require.NotNil(t, outerB)
	assert.Equal(t, "x_outer", outerB.JSName())
}

func TestNamespacesDoNotCollide(t *testing.T) {
	name := ast.NewSymbol("FOO", ast.StandardPackage)
	e := New().ExtendOne(&Binding{Name: name, Kind: KindVariable, Value: "foo_var"}, Variable)
	assert.Nil(t, e.Lookup(name, Function), "a variable binding must not be visible in the function namespace")
}

func TestExtendPreservesFirstListedBindingOnDuplicateNames(t *testing.T) {
	// let semantics: of two same-named clauses in one binding list, the
	// first one listed wins when both are installed in the same Extend call.
	first := bindVar("X", "x_first")
	second := bindVar("X", "x_second")
	e := New().Extend([]*Binding{first, second}, Variable)

	b := e.Lookup(ast.NewSymbol("X", ast.StandardPackage), Variable)
	require.NotNil(t, b)
	assert.Equal(t, "x_first", b.JSName())
}

func TestWithFlagReturnsNewBinding(t *testing.T) {
	b := bindVar("X", "x1")
	flagged := b.WithFlag(DeclSpecial)

	assert.False(t, b.HasFlag(DeclSpecial), "WithFlag must not mutate the receiver")
	assert.True(t, flagged.HasFlag(DeclSpecial))
}

func TestScratchPushThenInstall(t *testing.T) {
	base := New().ExtendOne(bindVar("A", "a1"), Variable)
	scratch := base.NewScratch()
	scratch.Push(bindVar("B", "b1"), Variable)
	scratch.Push(bindVar("C", "c1"), Variable)

	installed := scratch.Install()
	assert.NotNil(t, installed.Lookup(ast.NewSymbol("A", ast.StandardPackage), Variable))
	assert.NotNil(t, installed.Lookup(ast.NewSymbol("B", ast.StandardPackage), Variable))
	assert.NotNil(t, installed.Lookup(ast.NewSymbol("C", ast.StandardPackage), Variable))

	// Pushing onto the scratch must never have aliased base's backing array.
	assert.Nil(t, base.Lookup(ast.NewSymbol("B", ast.StandardPackage), Variable))
}

func TestLookupMacroDistinguishesKind(t *testing.T) {
	macroSym := ast.NewSymbol("MY-MACRO", ast.StandardPackage)
	e := New().ExtendOne(&Binding{Name: macroSym, Kind: KindMacro, Value: "expander"}, Function)

	v, ok := e.LookupMacro(macroSym, false)
	require.True(t, ok)
	assert.Equal(t, "expander", v)

	_, ok = e.LookupMacro(macroSym, true)
	assert.False(t, ok, "an ordinary macro must not satisfy a symbol-macro lookup")
}

func TestJSNamePanicsOnNonStringValue(t *testing.T) {
	b := &Binding{Name: ast.NewSymbol("X", ast.StandardPackage), Kind: KindGotag, Value: GotagValue{TagbodyIDVar: "tb1", TagIndex: 2}}
	assert.Panics(t, func() { b.JSName() })
}
