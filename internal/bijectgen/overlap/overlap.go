// Package overlap detects clause lists that cannot encode a bijection. It is
// deliberately separate from the generator: normalization accepts any
// well-formed clause list and emission keeps author order, so overlap is a
// lint concern rather than a compile failure.
package overlap

import (
	"fmt"
	"go/token"

	"github.com/mkoo/bijectgen/internal/bijectgen/parse"
)

// Warning is one overlap finding with the span of the offending clause.
type Warning struct {
	Pos, End token.Pos
	Message  string
}

// Check reports clauses whose shapes collide with an earlier clause. A
// repeated left shape makes the later clause unreachable in the forward
// direction; a repeated right shape makes the backward direction lose
// information, so the pair of functions is no longer inverse. A binding
// shape matches any value at all, so once one appears every later clause is
// shadowed in that direction.
//
// Non-binding shapes are compared by source text; structure shapes with
// overlapping but differently spelled matchers are not modeled.
func Check(d *parse.Decl) []Warning {
	var warns []Warning
	seen := newBidiMultiMap[string, string]()
	var bindLeft, bindRight string

	for _, cl := range d.Clauses {
		left, right := cl.Left.Frag(), cl.Right.Frag()

		switch {
		case bindLeft != "":
			warns = append(warns, Warning{
				Pos: cl.Pos(),
				End: cl.End(),
				Message: fmt.Sprintf(
					"unreachable clause %s: earlier binding %s already matches any value", cl.Frag(), bindLeft),
			})
		case len(seen.Get(left)) != 0:
			warns = append(warns, Warning{
				Pos: cl.Pos(),
				End: cl.End(),
				Message: fmt.Sprintf(
					"unreachable clause %s: %s is already matched by an earlier clause", cl.Frag(), left),
			})
		}

		switch {
		case bindRight != "":
			warns = append(warns, Warning{
				Pos: cl.Pos(),
				End: cl.End(),
				Message: fmt.Sprintf(
					"clause %s is never reached converting back: earlier binding %s already matches any value", cl.Frag(), bindRight),
			})
		case len(seen.GetKeys(right)) != 0:
			warns = append(warns, Warning{
				Pos: cl.Pos(),
				End: cl.End(),
				Message: fmt.Sprintf(
					"clause %s breaks the bijection: %s is already produced by an earlier clause", cl.Frag(), right),
			})
		}

		seen.Add(left, right)
		if bindLeft == "" && cl.Left.Kind == parse.Binding {
			bindLeft = left
		}
		if bindRight == "" && cl.Right.Kind == parse.Binding {
			bindRight = right
		}
	}
	return warns
}
