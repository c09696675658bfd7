//go:build bijectgen

package resolve

import "github.com/mkoo/bijectgen"

type Suit int

type Point struct {
	X, Y int
}

type Flipped struct {
	X, Y int
}

var _ = bijectgen.Declare(`Suit, Missing, {}`) // want `undefined type: Missing`

var _ = bijectgen.Declare(`Point, Flipped, { Point{Z: z} => Flipped{X: z, Y: 0} }`) // want `type Point has no field Z`

var _ = bijectgen.Declare(`Point, Flipped, { Flipped{X: x, Y: y} => Flipped{X: y, Y: x} }`) // want `shape type Flipped does not match declaration type Point`
