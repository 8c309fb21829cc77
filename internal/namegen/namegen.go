// Package namegen mints fresh JS identifiers. Every identifier it returns
// is guaranteed never to have been returned before by the same Generator,
// satisfying spec.md §8's freshness invariant by construction rather than
// by checking against a renamer's reserved-name set after the fact — the
// teacher's internal/renamer solves a harder problem (avoiding collisions
// with names that already exist in hand-written source); this compiler
// never emits a name it didn't mint itself, so a monotone counter per
// prefix is sufficient and exact.
package namegen

import "strconv"

// Generator holds the monotone counters for one compilation unit. Counters
// are never reset mid-unit (spec.md §5) — construct a new Generator per
// unit (internal/compiler.NewUnit does this).
type Generator struct {
	counters map[string]int
}

func New() *Generator {
	return &Generator{counters: make(map[string]int)}
}

// Fresh mints the next name for the given prefix: "v" -> v1, v2, ...;
// "l" -> l1, l2, ...; any other prefix (branch, tbidx, ...) works the same
// way.
func (g *Generator) Fresh(prefix string) string {
	g.counters[prefix]++
	return prefix + strconv.Itoa(g.counters[prefix])
}

// Var mints the next general-purpose variable identifier (vN).
func (g *Generator) Var() string { return g.Fresh("v") }

// Literal mints the next literal-table identifier (lN).
func (g *Generator) Literal() string { return g.Fresh("l") }

// Branch mints the next tagbody dispatch-variable identifier.
func (g *Generator) Branch() string { return g.Fresh("branch") }

// Tbidx mints the next tagbody sentinel-id identifier.
func (g *Generator) Tbidx() string { return g.Fresh("tbidx") }

// Block mints the next block-sentinel identifier.
func (g *Generator) Block() string { return g.Fresh("blk") }
