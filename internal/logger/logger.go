// Package logger collects and renders the compiler's diagnostics: the
// compile-time errors of spec.md §7 (surfaced to the caller) and the
// undefined-function warnings collected on the function-info table and
// flushed at the end of a compilation unit.
//
// The shape (Log with AddMsg/HasErrors/Done, Msg/MsgData/MsgLocation,
// LogLevel, terminal-aware Colors) follows the teacher's internal/logger,
// trimmed to drop everything that only makes sense for a file-based
// bundler (byte-offset source ranges, source maps, the JSON metadata
// summary table). A MsgLocation here names a source *form* (by its printed
// representation) rather than a byte range in a text file, since the
// reader/parser is out of scope and this core never sees file text.
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Note
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		panic("logger: invalid MsgKind")
	}
}

// MsgLocation names where a diagnostic occurred: the printed form plus an
// optional enclosing special-form name, since that is the only notion of
// "location" available once the reader (which would track byte offsets)
// is out of scope.
type MsgLocation struct {
	Form        string // printed source form (ast.Form.String())
	Enclosing   string // e.g. "LET", "TAGBODY" — empty if top level
	Unit        string // compilation unit identifier, see internal/compiler
}

type MsgData struct {
	Text     string
	Location *MsgLocation
}

type Msg struct {
	Kind  MsgKind
	Data  MsgData
	Notes []MsgData
}

type SortableMsgs []Msg

func (a SortableMsgs) Len() int      { return len(a) }
func (a SortableMsgs) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a SortableMsgs) Less(i, j int) bool {
	ai, aj := a[i], a[j]
	if ai.Kind != aj.Kind {
		return ai.Kind < aj.Kind
	}
	return ai.Data.Text < aj.Data.Text
}

type OutputOptions struct {
	Color UseColor
}

type UseColor uint8

const (
	ColorIfTerminal UseColor = iota
	ColorNever
	ColorAlways
)

func (msg Msg) String(options OutputOptions, terminalInfo TerminalInfo) string {
	var colors Colors
	useColor := false
	switch options.Color {
	case ColorAlways:
		useColor = SupportsColorEscapes
	case ColorIfTerminal:
		useColor = terminalInfo.UseColorEscapes
	}
	if useColor {
		colors = TerminalColors
	}

	kindColor := colors.Red
	if msg.Kind == Warning {
		kindColor = colors.Yellow
	} else if msg.Kind == Note {
		kindColor = colors.Cyan
	}

	var b strings.Builder
	if loc := msg.Data.Location; loc != nil && loc.Unit != "" {
		fmt.Fprintf(&b, "%s[%s] ", colors.Dim, loc.Unit)
		b.WriteString(colors.Reset)
	}
	fmt.Fprintf(&b, "%s%s%s: %s", kindColor, msg.Kind.String(), colors.Reset, msg.Data.Text)
	if loc := msg.Data.Location; loc != nil && loc.Form != "" {
		fmt.Fprintf(&b, "\n    %sin%s %s", colors.Dim, colors.Reset, loc.Form)
		if loc.Enclosing != "" {
			fmt.Fprintf(&b, " (inside %s)", loc.Enclosing)
		}
	}
	b.WriteString("\n")
	for _, note := range msg.Notes {
		fmt.Fprintf(&b, "    %snote:%s %s\n", colors.Cyan, colors.Reset, note.Text)
	}
	return b.String()
}

// NewDeferLog returns a Log that buffers every message instead of printing
// it immediately, for use by callers (including tests) that want to
// inspect the final diagnostic set themselves.
func NewDeferLog() Log {
	var msgs []Msg
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool { return hasErrors },
		Done: func() []Msg {
			sort.Stable(SortableMsgs(msgs))
			return msgs
		},
	}
}

// NewStderrLog returns a Log that prints every message to stderr as it
// arrives, matching the teacher's streaming-diagnostics design.
func NewStderrLog(options OutputOptions) Log {
	var msgs []Msg
	var hasErrors bool
	terminalInfo := GetTerminalInfo(os.Stderr)

	return Log{
		AddMsg: func(msg Msg) {
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
			writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
		},
		HasErrors: func() bool { return hasErrors },
		Done: func() []Msg {
			return msgs
		},
	}
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
	Height          int
}

type Colors struct {
	Reset     string
	Bold      string
	Dim       string
	Underline string
	Red       string
	Green     string
	Blue      string
	Cyan      string
	Magenta   string
	Yellow    string
}

var TerminalColors = Colors{
	Reset:     "\033[0m",
	Bold:      "\033[1m",
	Dim:       "\033[37m",
	Underline: "\033[4m",
	Red:       "\033[31m",
	Green:     "\033[32m",
	Blue:      "\033[34m",
	Cyan:      "\033[36m",
	Magenta:   "\033[35m",
	Yellow:    "\033[33m",
}

func hasNoColorEnvironmentVariable() bool {
	for _, key := range os.Environ() {
		if strings.HasPrefix(key, "NO_COLOR=") {
			return true
		}
	}
	return false
}
