package compiler

import (
	"sort"

	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/logger"
)

// fnInfoEntry is spec.md §3's {defined?, called?} pair, plus every call
// site's source-form text — restored per SPEC_FULL.md's "function-info
// warnings report format" supplement so each undefined-function warning
// can cite where it was called from, instead of collapsing into one blob.
type fnInfoEntry struct {
	defined   bool
	callSites []string
}

// FunctionInfoTable tracks, for the duration of one compilation unit,
// which symbols have been defined as functions and which have been called
// (spec.md §3: "process-wide map symbol -> {defined?, called?}"; here
// scoped to the Unit instead of literally process-wide, since nothing in
// this core shares that state across unrelated units).
type FunctionInfoTable struct {
	entries map[string]*fnInfoEntry
}

func NewFunctionInfoTable() *FunctionInfoTable {
	return &FunctionInfoTable{entries: make(map[string]*fnInfoEntry)}
}

func fnInfoKey(sym *ast.Symbol) string { return sym.Package + "\x00" + sym.Name }

func (t *FunctionInfoTable) entry(sym *ast.Symbol) *fnInfoEntry {
	key := fnInfoKey(sym)
	e, ok := t.entries[key]
	if !ok {
		e = &fnInfoEntry{}
		t.entries[key] = e
	}
	return e
}

// MarkDefined records that sym now names a function (a toplevel defun, or
// any other binding form the driver treats as establishing a global
// function definition).
func (t *FunctionInfoTable) MarkDefined(sym *ast.Symbol) {
	t.entry(sym).defined = true
}

// MarkCalled records a funcall-dispatcher reference to sym (spec.md §4.8:
// "mark it called in fn-info"), remembering callSite (the textual form
// being compiled) for the eventual warning.
func (t *FunctionInfoTable) MarkCalled(sym *ast.Symbol, callSite string) {
	e := t.entry(sym)
	e.callSites = append(e.callSites, callSite)
}

// Report renders every called-but-never-defined symbol as a sorted list of
// warnings, one per symbol, each carrying every recorded call site as a
// Note (spec.md §7: "Warnings ... undefined-but-called functions, via the
// fn-info table").
func (t *FunctionInfoTable) Report(unitID string) []logger.Msg {
	type row struct {
		key   string
		name  string
		entry *fnInfoEntry
	}
	var rows []row
	for key, e := range t.entries {
		if e.defined || len(e.callSites) == 0 {
			continue
		}
		rows = append(rows, row{key: key, entry: e})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	msgs := make([]logger.Msg, 0, len(rows))
	for _, r := range rows {
		notes := make([]logger.MsgData, len(r.entry.callSites))
		for i, site := range r.entry.callSites {
			notes[i] = logger.MsgData{Text: "called from " + site}
		}
		msgs = append(msgs, logger.Msg{
			Kind: logger.Warning,
			Data: logger.MsgData{
				Text:     "undefined function " + r.key,
				Location: &logger.MsgLocation{Unit: unitID},
			},
			Notes: notes,
		})
	}
	return msgs
}

// Reset clears the table (spec.md §3: "the function-info table is reset
// after reporting").
func (t *FunctionInfoTable) Reset() {
	t.entries = make(map[string]*fnInfoEntry)
}
