// Package literal implements the literal dumper of spec.md §4.4: an
// interning table that turns source data into initializer statements
// appended to the toplevel-compilations buffer, preserving sharing the way
// a real reader's circular/shared structure would round-trip.
//
// The interning strategy — map-keyed identity lookup before minting a
// fresh binding — follows the shape of the teacher's own symbol/import
// interning tables in internal/ast (a Ref-keyed map guarding against
// re-emitting the same symbol twice); the pointer-identity half of it
// (conses and arrays share by Go pointer, never by structural equality)
// is the one genuinely new piece, grounded directly on spec.md's own
// invariant list (§3, §8) since no example repo needs that exact rule.
package literal

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/lispjs/lispjs/internal/ast"
	"github.com/lispjs/lispjs/internal/jsast"
	"github.com/lispjs/lispjs/internal/namegen"
	"github.com/lispjs/lispjs/internal/runtime"
	"github.com/lispjs/lispjs/internal/target"
)

// ConvertFunc re-enters the driver to compile a form as code into buf,
// discarding its value. internal/compiler supplies this so the magic
// unquote seam (spec.md §4.4) can run without an import cycle between
// internal/literal and internal/compiler.
type ConvertFunc func(code ast.Form, buf *target.Buffer) error

// Table is the per-compilation-unit literal table (spec.md §3's "Literal
// table" lifecycle: lives for the compilation unit).
type Table struct {
	gen        *namegen.Generator
	toplevel   *target.Buffer
	convert    ConvertFunc
	thisPkg    string
	stdPkg     string
	bootstrap  bool
	magicMarker *ast.Symbol

	atoms      map[atomKey]string
	internedSy map[string]string        // "pkg\x00name" -> identifier
	uninterned map[*ast.Symbol]string
	byPointer  map[interface{}]string // *ast.Cons / *ast.Array -> identifier
}

type atomKey struct {
	kind ast.Kind
	val  interface{}
}

// Options configures one Table.
type Options struct {
	Generator *namegen.Generator
	// Toplevel is the toplevel-compilations buffer every dumped literal's
	// initializer is appended to (spec.md §3, §4.9).
	Toplevel *target.Buffer
	// Convert re-enters the driver for the magic-unquote seam.
	Convert ConvertFunc
	// ThisPackage is the compiler's own package name, special-cased by
	// symbol dumping (spec.md §4.4).
	ThisPackage string
	// StandardPackage is the bootstrap standard-symbols package name,
	// special-cased only when Bootstrap is set (spec.md §4.4).
	StandardPackage string
	Bootstrap       bool
	// MagicMarker is the process-unique cons-head symbol that triggers
	// the magic-unquote seam (spec.md GLOSSARY).
	MagicMarker *ast.Symbol
}

func NewTable(opts Options) *Table {
	return &Table{
		gen:         opts.Generator,
		toplevel:    opts.Toplevel,
		convert:     opts.Convert,
		thisPkg:     opts.ThisPackage,
		stdPkg:      opts.StandardPackage,
		bootstrap:   opts.Bootstrap,
		magicMarker: opts.MagicMarker,
		atoms:       make(map[atomKey]string),
		internedSy:  make(map[string]string),
		uninterned:  make(map[*ast.Symbol]string),
		byPointer:   make(map[interface{}]string),
	}
}

// Literal implements the `literal(form, recursive?)` contract of spec.md
// §4.4: returns a JS expression referencing a binding whose value equals
// form at runtime.
func (t *Table) Literal(form ast.Form, recursive bool) (jsast.Expr, error) {
	// Magic unquote: (MAGIC-MARKER code) re-enters the driver.
	if _, ok := form.AsCons(); ok {
		if head, ok := ast.Car(form).AsSymbol(); ok && t.magicMarker != nil && head == t.magicMarker {
			code := ast.Cadr(form)
			if err := t.convert(code, t.toplevel); err != nil {
				return jsast.Expr{}, err
			}
			return jsast.Undefined(), nil
		}
	}

	if id, ok := t.lookup(form); ok {
		return jsast.Ident(id), nil
	}

	switch form.Kind() {
	case ast.KindInt:
		v, _ := form.AsInt()
		return jsast.Num(float64(v)), nil
	case ast.KindFloat:
		v, _ := form.AsFloat()
		return jsast.Num(float64(v)), nil
	case ast.KindChar:
		v, _ := form.AsChar()
		return jsast.Str(string(rune(v))), nil
	case ast.KindStr:
		v, _ := form.AsStr()
		return t.dumpNamed(form, recursive, runtime.Call(runtime.MakeLispString, jsast.Str(string(v))))
	case ast.KindSymbol:
		sym, _ := form.AsSymbol()
		return t.dumpSymbol(form, sym)
	case ast.KindCons:
		return t.dumpCons(form, recursive)
	case ast.KindArray:
		return t.dumpArray(form, recursive)
	default:
		return jsast.Expr{}, fmt.Errorf("literal: unhandled form kind %v", form.Kind())
	}
}

// lookup returns the already-minted identifier for form, if any, honoring
// spec.md §4.4's identity rules (structural equality for atoms, pointer
// equality for conses/arrays).
func (t *Table) lookup(form ast.Form) (string, bool) {
	switch form.Kind() {
	case ast.KindInt, ast.KindFloat, ast.KindChar, ast.KindStr:
		key := atomKeyFor(form)
		id, ok := t.atoms[key]
		return id, ok
	case ast.KindSymbol:
		sym, _ := form.AsSymbol()
		if ast.IsUninterned(sym) {
			id, ok := t.uninterned[sym]
			return id, ok
		}
		id, ok := t.internedSy[symKey(sym)]
		return id, ok
	case ast.KindCons:
		c, _ := form.AsCons()
		id, ok := t.byPointer[c]
		return id, ok
	case ast.KindArray:
		a, _ := form.AsArray()
		id, ok := t.byPointer[a]
		return id, ok
	}
	return "", false
}

func (t *Table) record(form ast.Form, id string) {
	switch form.Kind() {
	case ast.KindInt, ast.KindFloat, ast.KindChar, ast.KindStr:
		t.atoms[atomKeyFor(form)] = id
	case ast.KindSymbol:
		sym, _ := form.AsSymbol()
		if ast.IsUninterned(sym) {
			t.uninterned[sym] = id
		} else {
			t.internedSy[symKey(sym)] = id
		}
	case ast.KindCons:
		c, _ := form.AsCons()
		t.byPointer[c] = id
	case ast.KindArray:
		a, _ := form.AsArray()
		t.byPointer[a] = id
	}
}

func atomKeyFor(form ast.Form) atomKey {
	switch form.Kind() {
	case ast.KindInt:
		v, _ := form.AsInt()
		return atomKey{ast.KindInt, v}
	case ast.KindFloat:
		v, _ := form.AsFloat()
		return atomKey{ast.KindFloat, v}
	case ast.KindChar:
		v, _ := form.AsChar()
		return atomKey{ast.KindChar, v}
	case ast.KindStr:
		v, _ := form.AsStr()
		return atomKey{ast.KindStr, v}
	}
	panic("literal: atomKeyFor on non-atom")
}

func symKey(s *ast.Symbol) string { return s.Package + "\x00" + s.Name }

// dumpNamed is the common "mint fresh lN, record it, emit `var lN = expr`"
// path shared by strings/conses/arrays (spec.md §4.4: "for non-recursive
// calls or symbols: mint a fresh lN ... otherwise" — strings/conses/arrays
// always go through this path since they are always eligible for sharing).
func (t *Table) dumpNamed(form ast.Form, recursive bool, expr jsast.Expr) (jsast.Expr, error) {
	id := t.gen.Literal()
	t.record(form, id)
	t.toplevel.PushToTarget(jsast.VarStmt(id, expr))
	return jsast.Ident(id), nil
}

func (t *Table) dumpSymbol(form ast.Form, sym *ast.Symbol) (jsast.Expr, error) {
	var expr jsast.Expr
	switch {
	case ast.IsUninterned(sym):
		expr = runtime.New(runtime.Symbol, jsast.Str(sym.Name))
	case sym.Package == t.thisPkg:
		expr = runtime.Call(runtime.Intern, jsast.Str(sym.Name))
	case t.bootstrap && sym.Package == t.stdPkg:
		expr = runtime.Call(runtime.Intern, jsast.Str(sym.Name))
	default:
		expr = runtime.Call(runtime.Intern, jsast.Str(sym.Name), jsast.Str(sym.Package))
	}

	id := t.gen.Literal()
	t.record(form, id)
	t.toplevel.PushToTarget(jsast.VarStmt(id, expr))

	if ast.IsKeyword(sym) {
		// Keywords are self-evaluating: lN.value = lN.
		t.toplevel.PushToTarget(jsast.ExprStmt(jsast.Expr{Data: &jsast.EAssign{
			Target: jsast.Expr{Data: &jsast.EDot{Target: jsast.Ident(id), Name: "value"}},
			Value:  jsast.Ident(id),
		}}))
	}

	return jsast.Ident(id), nil
}

func (t *Table) dumpCons(form ast.Form, recursive bool) (jsast.Expr, error) {
	// Flatten the spine into head elements plus the final (car, cdr) pair,
	// the shape QIList(head..., lastCar, lastCdr) expects (spec.md §4.4).
	var elems []ast.Form
	cur := form
	for {
		cc, ok := cur.AsCons()
		if !ok {
			break
		}
		elems = append(elems, cc.Car)
		cur = cc.Cdr
		if _, isCons := cur.AsCons(); !isCons {
			break
		}
	}
	lastCdr := cur
	lastCar := elems[len(elems)-1]
	head := elems[:len(elems)-1]

	args := make([]jsast.Expr, 0, len(head)+2)
	for _, e := range head {
		sub, err := t.Literal(e, true)
		if err != nil {
			return jsast.Expr{}, err
		}
		args = append(args, sub)
	}
	carExpr, err := t.Literal(lastCar, true)
	if err != nil {
		return jsast.Expr{}, err
	}
	cdrExpr, err := t.Literal(lastCdr, true)
	if err != nil {
		return jsast.Expr{}, err
	}
	args = append(args, carExpr, cdrExpr)

	return t.dumpNamed(form, recursive, runtime.Call(runtime.QIList, args...))
}

func (t *Table) dumpArray(form ast.Form, recursive bool) (jsast.Expr, error) {
	a, _ := form.AsArray()
	items := make([]jsast.Expr, len(a.Elements))
	for i, e := range a.Elements {
		sub, err := t.Literal(e, true)
		if err != nil {
			return jsast.Expr{}, err
		}
		items[i] = sub
	}
	return t.dumpNamed(form, recursive, jsast.Expr{Data: &jsast.EArray{Items: items}})
}

// FreshUninternedSuffix returns a UUID suitable for disambiguating two
// uninterned symbols that happen to print with the same name, used by
// callers constructing gensym-like symbols outside of ast.SymbolTable.
func FreshUninternedSuffix() string { return uuid.NewString() }

// DebugString dumps the table's contents for development use only.
func (t *Table) DebugString() string {
	return spew.Sdump(t.atoms) + spew.Sdump(t.internedSy)
}
