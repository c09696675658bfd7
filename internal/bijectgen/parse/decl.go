package parse

import (
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Decl is one compiled bijection declaration: two side types and the clause
// list between them, already normalized into the two arm-lists the generator
// emits from.
type Decl struct {
	A, B SideType

	// Clauses keeps the authored pairings in source order.
	Clauses []Clause

	// Forward and Backward are the normalized arm-lists. Both always have
	// exactly one arm per clause, in clause order.
	Forward  []Arm
	Backward []Arm

	pkg      *packages.Package
	src      string
	base     token.Pos
	pos, end token.Pos
}

func (d *Decl) Pkg() *packages.Package { return d.pkg }
func (d *Decl) Pos() token.Pos         { return d.pos }
func (d *Decl) End() token.Pos         { return d.end }

// frag cuts the source text of the declaration between two file positions.
func (d *Decl) frag(from, to token.Pos) string {
	return strings.TrimSpace(d.src[from-d.base : to-d.base])
}

// Clause is one authored "left => right" pairing.
type Clause struct {
	Left, Right Shape

	frag     string
	pos, end token.Pos
}

func (c Clause) Frag() string   { return c.frag }
func (c Clause) Pos() token.Pos { return c.pos }
func (c Clause) End() token.Pos { return c.end }

// Arm is one entry of a generated dispatch function: Match is the shape the
// arm matches the input against, Build the shape it constructs on success.
type Arm struct {
	Match, Build Shape
}

// SideType is one of the two types a declaration converts between.
type SideType struct {
	Name string

	// Iface is set during resolution when the type is an interface. Interface
	// sides dispatch by dynamic type instead of by value.
	Iface bool

	pos, end token.Pos
}

func (s SideType) Frag() string   { return s.Name }
func (s SideType) Pos() token.Pos { return s.pos }
func (s SideType) End() token.Pos { return s.end }
