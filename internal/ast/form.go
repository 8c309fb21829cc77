// Package ast models source forms: the tree of integers, floats, characters,
// strings, symbols, arrays and conses that the reader (out of scope) would
// otherwise produce and that macro expansion (also out of scope beyond its
// contract) consumes and rewrites.
//
// Forms are intended to be read-only once built. A Cons is a pointer so that
// two occurrences of "the same" source list can be distinguished from two
// structurally-equal-but-distinct lists; the literal dumper relies on that
// distinction to preserve sharing (spec.md §4.4, §8).
package ast

import "fmt"

// Form is the sum type over every kind of source datum. Exactly one of the
// typed accessors below is meaningful for a given Form; Kind reports which.
type Form struct {
	data formData
}

type formData interface{ isForm() }

func (Int) isForm()    {}
func (Float) isForm()  {}
func (Char) isForm()   {}
func (Str) isForm()    {}
func (*Symbol) isForm() {}
func (*Cons) isForm()   {}
func (*Array) isForm()  {}

type Int int64
type Float float64
type Char rune
type Str string

// Symbol carries its print name and an optional home package name. Two
// symbols are equal iff both match (spec.md §3); uninterned symbols carry
// an empty Package and are never equal to any other symbol by name alone —
// identity is established by the Go pointer, which is why Symbol is always
// handled by pointer.
type Symbol struct {
	Name    string
	Package string // empty for uninterned symbols
}

// Cons is a pair of forms. It is always referenced through a pointer: two
// calls to NewCons produce distinct conses even with identical car/cdr,
// mirroring the reader allocating fresh pairs (cf. robpike-lisp's Cons).
type Cons struct {
	Car Form
	Cdr Form
}

// Array is a source vector literal: #(1 2 3).
type Array struct {
	Elements []Form
}

func MakeInt(v int64) Form      { return Form{Int(v)} }
func MakeFloat(v float64) Form  { return Form{Float(v)} }
func MakeChar(v rune) Form      { return Form{Char(v)} }
func MakeStr(v string) Form     { return Form{Str(v)} }
func MakeSymbol(s *Symbol) Form { return Form{s} }
func MakeCons(c *Cons) Form     { return Form{c} }
func MakeArray(a *Array) Form   { return Form{a} }

// NewSymbol allocates a fresh, distinct symbol object. Call it once per
// logical symbol and share the pointer; calling it twice with the same
// name/package produces two symbols that are NOT equal, which is exactly
// how an uninterned symbol ((gensym)) behaves, and is also why any code
// that wants "the same interned symbol" must intern through a shared table
// rather than calling NewSymbol repeatedly.
func NewSymbol(name, pkg string) *Symbol {
	return &Symbol{Name: name, Package: pkg}
}

// Cons builds a cons form from two forms.
func NewCons(car, cdr Form) *Cons {
	return &Cons{Car: car, Cdr: cdr}
}

var Nil = MakeSymbol(NewSymbol("NIL", "COMMON-LISP"))

// T is the canonical boolean-true symbol every predicate builtin and
// comparison chain yields (spec.md §4.7's "each predicate converted to a
// boolean via if ... nil/t").
var T = MakeSymbol(NewSymbol("T", "COMMON-LISP"))

// QList builds a proper list form (... . nil) from the given elements,
// right to left, the way the reader would for `(a b c)`.
func QList(elems ...Form) Form {
	result := Nil
	for i := len(elems) - 1; i >= 0; i-- {
		result = MakeCons(NewCons(elems[i], result))
	}
	return result
}

// QListDotted builds a list whose final cdr is `last` instead of nil, the
// way the reader would for `(a b . c)`.
func QListDotted(last Form, elems ...Form) Form {
	result := last
	for i := len(elems) - 1; i >= 0; i-- {
		result = MakeCons(NewCons(elems[i], result))
	}
	return result
}

// Kind classifies a Form for dispatch (used by internal/compiler's driver
// and internal/literal's dumper).
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindChar
	KindStr
	KindSymbol
	KindCons
	KindArray
)

func (f Form) Kind() Kind {
	switch f.data.(type) {
	case Int:
		return KindInt
	case Float:
		return KindFloat
	case Char:
		return KindChar
	case Str:
		return KindStr
	case *Symbol:
		return KindSymbol
	case *Cons:
		return KindCons
	case *Array:
		return KindArray
	default:
		panic("ast: Form has no data")
	}
}

func (f Form) IsNil() bool {
	s, ok := f.data.(*Symbol)
	return ok && s == Nil.data.(*Symbol)
}

func (f Form) AsInt() (Int, bool)       { v, ok := f.data.(Int); return v, ok }
func (f Form) AsFloat() (Float, bool)   { v, ok := f.data.(Float); return v, ok }
func (f Form) AsChar() (Char, bool)     { v, ok := f.data.(Char); return v, ok }
func (f Form) AsStr() (Str, bool)       { v, ok := f.data.(Str); return v, ok }
func (f Form) AsSymbol() (*Symbol, bool) { v, ok := f.data.(*Symbol); return v, ok }
func (f Form) AsCons() (*Cons, bool)     { v, ok := f.data.(*Cons); return v, ok }
func (f Form) AsArray() (*Array, bool)   { v, ok := f.data.(*Array); return v, ok }

// Car returns the car of a cons form, or Nil if f is not a cons (mirrors
// robpike-lisp's free-function Car/Cdr, which also treat non-conses as
// nil rather than panicking, so callers can walk possibly-improper lists
// without a type-switch at every step).
func Car(f Form) Form {
	if c, ok := f.AsCons(); ok {
		return c.Car
	}
	return Nil
}

func Cdr(f Form) Form {
	if c, ok := f.AsCons(); ok {
		return c.Cdr
	}
	return Nil
}

// Cadr, Caddr etc. are the common compositions used throughout the
// special-form compilers.
func Cadr(f Form) Form  { return Car(Cdr(f)) }
func Caddr(f Form) Form { return Car(Cdr(Cdr(f))) }
func Cdddr(f Form) Form { return Cdr(Cdr(Cdr(f))) }

// ToSlice flattens a proper list into a Go slice, top level only.
func ToSlice(f Form) []Form {
	var out []Form
	for {
		c, ok := f.AsCons()
		if !ok {
			break
		}
		out = append(out, c.Car)
		f = c.Cdr
	}
	return out
}

// Length counts the top-level elements of a (possibly improper) list.
func Length(f Form) int {
	n := 0
	for {
		c, ok := f.AsCons()
		if !ok {
			return n
		}
		n++
		f = c.Cdr
	}
}

// SymbolEq reports whether two symbols are the name/package pair spec.md §3
// requires, independent of pointer identity (used by code comparing a
// compile-time-known symbol, e.g. the quote special form's name, against
// whatever symbol the form actually carries).
func SymbolEq(a, b *Symbol) bool {
	return a.Name == b.Name && a.Package == b.Package
}

// Equal reports structural equality of atoms; cons/array equality is by
// pointer only (per spec.md §4.4's literal-table identity rule: "pointer
// equality of conses/arrays").
func Equal(a, b Form) bool {
	switch av := a.data.(type) {
	case Int:
		bv, ok := b.data.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.data.(Float)
		return ok && av == bv
	case Char:
		bv, ok := b.data.(Char)
		return ok && av == bv
	case Str:
		bv, ok := b.data.(Str)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.data.(*Symbol)
		return ok && (av == bv || SymbolEq(av, bv))
	case *Cons:
		bv, ok := b.data.(*Cons)
		return ok && av == bv
	case *Array:
		bv, ok := b.data.(*Array)
		return ok && av == bv
	}
	return false
}

func (f Form) String() string {
	switch v := f.data.(type) {
	case Int:
		return fmt.Sprintf("%d", int64(v))
	case Float:
		return fmt.Sprintf("%g", float64(v))
	case Char:
		return fmt.Sprintf("#\\%c", rune(v))
	case Str:
		return fmt.Sprintf("%q", string(v))
	case *Symbol:
		if v.Package == "" {
			return "#:" + v.Name
		}
		return v.Package + "::" + v.Name
	case *Cons:
		return "(" + consString(v) + ")"
	case *Array:
		s := "#("
		for i, e := range v.Elements {
			if i > 0 {
				s += " "
			}
			s += e.String()
		}
		return s + ")"
	}
	return "<?>"
}

func consString(c *Cons) string {
	s := c.Car.String()
	switch rest := c.Cdr.data.(type) {
	case *Cons:
		return s + " " + consString(rest)
	case *Symbol:
		if rest == Nil.data.(*Symbol) {
			return s
		}
		return s + " . " + c.Cdr.String()
	default:
		return s + " . " + c.Cdr.String()
	}
}
