package main

import (
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/compiler"
	"github.com/lispjs/lispjs/internal/config"
	"github.com/lispjs/lispjs/internal/env"
	"github.com/lispjs/lispjs/internal/jsprinter"
	"github.com/lispjs/lispjs/internal/logger"
	"github.com/lispjs/lispjs/internal/macro"
)

// compileForm runs one toplevel form through a fresh compilation unit and
// prints the result, mirroring what internal/compiler.NewUnit's doc comment
// says a one-off REPL-style compile should do (config.DefaultOptions).
func compileForm(form ast.Form) (string, []logger.Msg, error) {
	unit := compiler.NewUnit(config.DefaultOptions(), macro.NoExpansion)
	ctx := &compiler.Context{Env: env.New(), Target: unit.Toplevel, Unit: unit, Options: config.DefaultOptions()}

	stmts, err := compiler.ProcessToplevel(ctx, form)
	if err != nil {
		return "", unit.Log.Done(), err
	}
	return jsprinter.Print(stmts, jsprinter.Options{Indent: "  "}), unit.Log.Done(), nil
}
