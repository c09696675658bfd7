// Package bijectgen declares bijections for two-way conversion code
// generation.
//
// A bijection pairs up the values of two types clause by clause. Declare the
// pairing once, and the generator produces both conversion functions from the
// same clause list, so the two directions can never drift apart.
//
// To start with bijectgen, add a build constraint to files containing
// bijectgen declarations:
//
//	//go:build bijectgen
//
// A bijection is declared with [Declare]. The declaration names the two types
// and lists the clauses between braces, one clause per pairing:
//
//	// source:
//	var _ = bijectgen.Declare(`Suit, Farbe, {
//		Clubs    => Kreuz,
//		Spades   => Pik,
//		Hearts   => Herz,
//		Diamonds => Karo,
//	}`)
//
// After declaring bijections, run the bijectgen command. It will generate
// bijectgen_gen.go for your package:
//
//	go run github.com/mkoo/bijectgen/cmd/bijectgen
//
// The generated file contains one function per direction, built from the same
// clauses in the same order:
//
//	// generated: (simplified)
//	func SuitToFarbe(in Suit) Farbe {
//		switch in {
//		case Clubs:
//			return Kreuz
//		...
//	}
//	func FarbeToSuit(in Farbe) Suit {
//		switch in {
//		case Kreuz:
//			return Clubs
//		...
//	}
//
// # Shapes
//
// Each side of a clause is a shape. A shape must be usable both as a matcher
// and as a constructor, because every clause contributes one arm to each
// direction. Three kinds of shapes are supported:
//
//   - Literals: constants, selector paths, and basic literals. They match by
//     equality and construct themselves.
//
//	Clubs => Kreuz,
//	1     => "one",
//
//   - Bindings: lower-case identifiers. They match any value and carry it to
//     the other side. The blank identifier is rejected since it cannot
//     construct a value.
//
//	Point{X: x, Y: y} => Flipped{X: y, Y: x},
//
//   - Structures: composite literals over the declared types, with named or
//     positional fields, nesting literals and bindings. When a side type is an
//     interface, its shapes are composite literals of the concrete
//     implementations and the generated function dispatches on the dynamic
//     type.
//
// Clauses are ordered and the generated dispatch is first-match-wins, so an
// earlier clause shadows a later one with an overlapping shape. bijectgen does
// not verify that the clause list is a genuine bijection; unreachable and
// duplicated shapes are reported by the bundled analyzer
// (pkg/bijectanalysis) instead of the generator.
//
// A shape whose top level is an alternation (A | B) is rejected: an
// alternation can match but cannot construct. Inside a sub-shape, | keeps its
// ordinary bitwise-or meaning; this is a known ambiguity inherited from the
// declaration syntax, so prefer splitting such clauses.
package bijectgen

// Decl is the opaque value of a [Declare] directive. It only exists so that a
// declaration can be assigned to the blank identifier; the generator erases
// the assignment.
type Decl struct{ _ struct{} }

// Declare declares a bijection between two types of the surrounding package.
//
// The declaration must be a raw string literal of the form
//
//	TypeA, TypeB, { shape => shape, ... }
//
// assigned to the blank identifier at package level. The generator replaces
// every declaration with two conversion functions, TypeAToTypeB and
// TypeBToTypeA, each an ordered dispatch over the same clause list.
func Declare(decl string) Decl {
	panic("bijectgen: not generated")
}
