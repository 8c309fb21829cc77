// Package config carries the ambient options threaded through a
// compilation unit, the way the teacher's internal/config carries
// config.Options through the parser and printer. Everything here is a pure
// value; nothing in this package mutates global state.
package config

import "github.com/lispjs/lispjs/internal/logger"

// Options configures one call to internal/compiler.NewUnit.
type Options struct {
	// PackageName is the default home package for symbols this unit
	// interns. The literal dumper does not read it: its "this compiler's
	// package" special case always uses ast.CompilerPackage (see
	// internal/compiler.NewUnit).
	PackageName string

	// Bootstrap marks the unit that defines the standard-symbols package
	// itself; the literal dumper then also special-cases symbols of that
	// package (spec.md §4.4).
	Bootstrap bool

	// ToplevelFile marks that this unit is compiling an entire file at
	// toplevel, which governs eval-when's :compile-toplevel/:load-toplevel
	// handling (spec.md §4.6, "eval-when").
	ToplevelFile bool

	// WarnLevel records the diagnostic level the caller asked for. Nothing
	// in internal/compiler reads it: it does not filter the warnings that
	// FunctionInfoTable.Report returns.
	WarnLevel logger.LogLevel
}

// DefaultOptions is what a one-off compile (e.g. a REPL form) should use.
func DefaultOptions() Options {
	return Options{
		PackageName: "CL-USER",
		WarnLevel:   logger.LevelWarning,
	}
}
