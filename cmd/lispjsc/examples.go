package main

import "github.com/lispjs/lispjs/internal/ast"

// sym interns a standard-package symbol; kw interns a keyword-package one.
// Every example form in this command is built by hand through
// internal/ast's constructors, since no s-expression reader is in scope
// for this core (spec.md's Non-goals exclude a reader/parser).
func sym(name string) ast.Form {
	return ast.MakeSymbol(ast.NewSymbol(name, ast.StandardPackage))
}

func kw(name string) ast.Form {
	return ast.MakeSymbol(ast.NewSymbol(name, ast.KeywordPackage))
}

func num(v int64) ast.Form {
	return ast.MakeInt(v)
}

type example struct {
	name string
	form ast.Form
}

// compileExamples is the handful of built-in forms the "compile" subcommand
// prints JS for. They exercise arithmetic, binding, conditionals, and
// non-local exit, one representative special form or builtin at a time.
func compileExamples() []example {
	return []example{
		{
			name: "arithmetic",
			form: ast.QList(sym("+"), num(1), num(2), num(3)),
		},
		{
			name: "let",
			form: ast.QList(sym("LET"),
				ast.QList(
					ast.QList(sym("X"), num(1)),
					ast.QList(sym("Y"), num(2)),
				),
				ast.QList(sym("+"), sym("X"), sym("Y")),
			),
		},
		{
			name: "if",
			form: ast.QList(sym("IF"), num(1), num(1), num(2)),
		},
		{
			name: "catch-throw",
			form: ast.QList(sym("CATCH"), ast.QList(sym("QUOTE"), sym("K")),
				ast.QList(sym("THROW"), ast.QList(sym("QUOTE"), sym("K")), num(42)),
			),
		},
		{
			name: "block-tagbody",
			form: blockTagbodyExample(),
		},
	}
}

// blockTagbodyExample builds spec.md §8 scenario 3: a block wrapping a
// tagbody that counts up to 3 via go, then returns out of the block.
func blockTagbodyExample() ast.Form {
	return ast.QList(sym("BLOCK"), sym("OUTER"),
		ast.QList(sym("TAGBODY"),
			ast.QList(sym("SETQ"), sym("X"), num(0)),
			sym("START"),
			ast.QList(sym("IF"),
				ast.QList(sym(">="), sym("X"), num(3)),
				ast.QList(sym("RETURN-FROM"), sym("OUTER"), sym("X")),
			),
			ast.QList(sym("SETQ"), sym("X"), ast.QList(sym("+"), sym("X"), num(1))),
			ast.QList(sym("GO"), sym("START")),
		),
	)
}
