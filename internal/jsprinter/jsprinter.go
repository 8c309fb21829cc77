// Package jsprinter serializes internal/jsast trees to JavaScript source
// text. It is not part of the compiler core (spec.md §6 treats the printer
// as an external collaborator, contracted only to "emit valid JavaScript
// source with explicit statement terminators"); it exists so the demo CLI
// and the test suite have something to run emitted code through.
//
// Structure follows the teacher's internal/js_printer: a `printer` struct
// accumulating output in a buffer, with one print* method per node kind,
// trimmed to the node set internal/jsast defines (no minification, no
// source maps).
package jsprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lispjs/lispjs/internal/jsast"
)

type Options struct {
	Indent string // defaults to two spaces
}

type printer struct {
	sb     strings.Builder
	indent int
	step   string
}

// Print renders a sequence of top-level statements as a complete program.
func Print(stmts []jsast.Stmt, options Options) string {
	step := options.Indent
	if step == "" {
		step = "  "
	}
	p := &printer{step: step}
	p.printStmts(stmts)
	return p.sb.String()
}

// PrintExpr renders a single expression, useful for tests that only care
// about one emitted value.
func PrintExpr(e jsast.Expr) string {
	p := &printer{step: "  "}
	p.printExpr(e)
	return p.sb.String()
}

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(p.step)
	}
}

func (p *printer) printStmts(stmts []jsast.Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

func (p *printer) printBlock(stmts []jsast.Stmt) {
	p.sb.WriteString("{\n")
	p.indent++
	p.printStmts(stmts)
	p.indent--
	p.writeIndent()
	p.sb.WriteString("}")
}

func (p *printer) printStmt(s jsast.Stmt) {
	p.writeIndent()
	switch d := s.Data.(type) {
	case *jsast.SVar:
		p.sb.WriteString("var ")
		p.sb.WriteString(d.Name)
		if d.Init != nil {
			p.sb.WriteString(" = ")
			p.printExpr(*d.Init)
		}
		p.sb.WriteString(";\n")

	case *jsast.SExpr:
		p.printExpr(d.Value)
		p.sb.WriteString(";\n")

	case *jsast.SIf:
		p.sb.WriteString("if (")
		p.printExpr(d.Test)
		p.sb.WriteString(") ")
		p.printBlock(d.Yes)
		if len(d.No) > 0 {
			p.sb.WriteString(" else ")
			p.printBlock(d.No)
		}
		p.sb.WriteString("\n")

	case *jsast.SSwitch:
		p.sb.WriteString("switch (")
		p.printExpr(d.Test)
		p.sb.WriteString(") {\n")
		p.indent++
		for _, c := range d.Cases {
			p.writeIndent()
			if c.Test != nil {
				p.sb.WriteString("case ")
				p.printExpr(*c.Test)
				p.sb.WriteString(":\n")
			} else {
				p.sb.WriteString("default:\n")
			}
			p.indent++
			p.printStmts(c.Body)
			p.indent--
		}
		p.indent--
		p.writeIndent()
		p.sb.WriteString("}\n")

	case *jsast.SWhile:
		p.sb.WriteString("while (")
		p.printExpr(d.Test)
		p.sb.WriteString(") ")
		p.printBlock(d.Body)
		p.sb.WriteString("\n")

	case *jsast.SFor:
		p.sb.WriteString("for (")
		if d.Init != nil {
			p.printStmtInline(*d.Init)
		}
		p.sb.WriteString("; ")
		if d.Test != nil {
			p.printExpr(*d.Test)
		}
		p.sb.WriteString("; ")
		if d.Step != nil {
			p.printExpr(*d.Step)
		}
		p.sb.WriteString(") ")
		p.printBlock(d.Body)
		p.sb.WriteString("\n")

	case *jsast.SForIn:
		p.sb.WriteString("for (var ")
		p.sb.WriteString(d.Binder)
		p.sb.WriteString(" in ")
		p.printExpr(d.Target)
		p.sb.WriteString(") ")
		p.printBlock(d.Body)
		p.sb.WriteString("\n")

	case *jsast.SLabel:
		p.sb.WriteString(d.Name)
		p.sb.WriteString(": ")
		p.printLabelBody(d.Body)

	case *jsast.SBreak:
		p.sb.WriteString("break")
		if d.Label != "" {
			p.sb.WriteString(" " + d.Label)
		}
		p.sb.WriteString(";\n")

	case *jsast.SContinue:
		p.sb.WriteString("continue")
		if d.Label != "" {
			p.sb.WriteString(" " + d.Label)
		}
		p.sb.WriteString(";\n")

	case *jsast.STry:
		p.sb.WriteString("try ")
		p.printBlock(d.Body)
		if d.Catch != nil {
			p.sb.WriteString(" catch (")
			if d.Catch.Param == "" {
				p.sb.WriteString("e")
			} else {
				p.sb.WriteString(d.Catch.Param)
			}
			p.sb.WriteString(") ")
			p.printBlock(d.Catch.Body)
		}
		if d.Finally != nil {
			p.sb.WriteString(" finally ")
			p.printBlock(d.Finally)
		}
		p.sb.WriteString("\n")

	case *jsast.SThrow:
		p.sb.WriteString("throw ")
		p.printExpr(d.Value)
		p.sb.WriteString(";\n")

	case *jsast.SReturn:
		p.sb.WriteString("return")
		if d.Value != nil {
			p.sb.WriteString(" ")
			p.printExpr(*d.Value)
		}
		p.sb.WriteString(";\n")

	case *jsast.SBlock:
		p.printBlock(d.Body)
		p.sb.WriteString("\n")

	case *jsast.SEmpty:
		p.sb.WriteString(";\n")

	case *jsast.SFunction:
		p.printFn(d.Fn)
		p.sb.WriteString("\n")

	default:
		panic(fmt.Sprintf("jsprinter: unhandled statement %T", s.Data))
	}
}

// printStmtInline prints a statement without its own indentation/newline,
// for use inside a `for (...)` header.
func (p *printer) printStmtInline(s jsast.Stmt) {
	switch d := s.Data.(type) {
	case *jsast.SVar:
		p.sb.WriteString("var ")
		p.sb.WriteString(d.Name)
		if d.Init != nil {
			p.sb.WriteString(" = ")
			p.printExpr(*d.Init)
		}
	case *jsast.SExpr:
		p.printExpr(d.Value)
	default:
		panic(fmt.Sprintf("jsprinter: unhandled for-init statement %T", s.Data))
	}
}

// printLabelBody prints the statement following a label without repeating
// indentation (the label itself already wrote the leading whitespace).
func (p *printer) printLabelBody(s jsast.Stmt) {
	switch d := s.Data.(type) {
	case *jsast.SWhile:
		p.sb.WriteString("while (")
		p.printExpr(d.Test)
		p.sb.WriteString(") ")
		p.printBlock(d.Body)
		p.sb.WriteString("\n")
	default:
		p.printStmt(s)
	}
}

func (p *printer) printFn(fn jsast.Fn) {
	p.sb.WriteString("function ")
	p.sb.WriteString(fn.Name)
	p.sb.WriteString("(")
	p.sb.WriteString(strings.Join(fn.Params, ", "))
	p.sb.WriteString(") ")
	p.printBlock(fn.Body)
}

func (p *printer) printExpr(e jsast.Expr) {
	switch d := e.Data.(type) {
	case *jsast.EIdentifier:
		p.sb.WriteString(d.Name)

	case *jsast.ENumber:
		p.sb.WriteString(formatNumber(d.Value))

	case *jsast.EString:
		p.sb.WriteString(strconv.Quote(d.Value))

	case *jsast.EBoolean:
		if d.Value {
			p.sb.WriteString("true")
		} else {
			p.sb.WriteString("false")
		}

	case *jsast.ENull:
		p.sb.WriteString("null")

	case *jsast.EUndefined:
		p.sb.WriteString("void 0")

	case *jsast.EArray:
		p.sb.WriteString("[")
		for i, item := range d.Items {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(item)
		}
		p.sb.WriteString("]")

	case *jsast.EObject:
		p.sb.WriteString("{")
		for i, prop := range d.Properties {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(strconv.Quote(prop.Key))
			p.sb.WriteString(": ")
			p.printExpr(prop.Value)
		}
		p.sb.WriteString("}")

	case *jsast.EUnary:
		p.sb.WriteString(unaryOp(d.Op))
		p.printExpr(d.Value)

	case *jsast.EBinary:
		p.sb.WriteString("(")
		p.printExpr(d.Left)
		p.sb.WriteString(" ")
		p.sb.WriteString(binaryOp(d.Op))
		p.sb.WriteString(" ")
		p.printExpr(d.Right)
		p.sb.WriteString(")")

	case *jsast.ECall:
		p.printExpr(d.Target)
		if d.Method != "" {
			p.sb.WriteString(".")
			p.sb.WriteString(d.Method)
		}
		p.sb.WriteString("(")
		for i, a := range d.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(a)
		}
		p.sb.WriteString(")")

	case *jsast.ENew:
		p.sb.WriteString("new ")
		p.printExpr(d.Target)
		p.sb.WriteString("(")
		for i, a := range d.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.printExpr(a)
		}
		p.sb.WriteString(")")

	case *jsast.EDot:
		p.printExpr(d.Target)
		p.sb.WriteString(".")
		p.sb.WriteString(d.Name)

	case *jsast.EIndex:
		p.printExpr(d.Target)
		p.sb.WriteString("[")
		p.printExpr(d.Index)
		p.sb.WriteString("]")

	case *jsast.EFunction:
		p.printFn(d.Fn)

	case *jsast.ETypeof:
		p.sb.WriteString("typeof ")
		p.printExpr(d.Value)

	case *jsast.EInstanceof:
		p.sb.WriteString("(")
		p.printExpr(d.Value)
		p.sb.WriteString(" instanceof ")
		p.printExpr(d.Class)
		p.sb.WriteString(")")

	case *jsast.EIn:
		p.sb.WriteString("(")
		p.printExpr(d.Prop)
		p.sb.WriteString(" in ")
		p.printExpr(d.Target)
		p.sb.WriteString(")")

	case *jsast.EDelete:
		p.sb.WriteString("delete ")
		p.printExpr(d.Target)

	case *jsast.EAssign:
		p.printExpr(d.Target)
		p.sb.WriteString(" = ")
		p.printExpr(d.Value)

	case *jsast.ECondExpr:
		p.sb.WriteString("(")
		p.printExpr(d.Test)
		p.sb.WriteString(" ? ")
		p.printExpr(d.Yes)
		p.sb.WriteString(" : ")
		p.printExpr(d.No)
		p.sb.WriteString(")")

	default:
		panic(fmt.Sprintf("jsprinter: unhandled expression %T", e.Data))
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func unaryOp(op jsast.UnOp) string {
	switch op {
	case jsast.UnOpNeg:
		return "-"
	case jsast.UnOpNot:
		return "!"
	case jsast.UnOpVoid:
		return "void "
	case jsast.UnOpPreInc:
		return "++"
	case jsast.UnOpPreDec:
		return "--"
	}
	panic("jsprinter: unknown unary op")
}

func binaryOp(op jsast.BinOp) string {
	switch op {
	case jsast.BinOpAdd:
		return "+"
	case jsast.BinOpSub:
		return "-"
	case jsast.BinOpMul:
		return "*"
	case jsast.BinOpDiv:
		return "/"
	case jsast.BinOpMod:
		return "%"
	case jsast.BinOpLt:
		return "<"
	case jsast.BinOpLe:
		return "<="
	case jsast.BinOpGt:
		return ">"
	case jsast.BinOpGe:
		return ">="
	case jsast.BinOpStrictEq:
		return "==="
	case jsast.BinOpStrictNe:
		return "!=="
	case jsast.BinOpLogicalAnd:
		return "&&"
	case jsast.BinOpLogicalOr:
		return "||"
	case jsast.BinOpComma:
		return ","
	}
	panic("jsprinter: unknown binary op")
}
