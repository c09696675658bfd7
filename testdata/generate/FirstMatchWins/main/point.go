//go:build bijectgen

package main

import "github.com/mkoo/bijectgen"

type Point struct {
	X, Y int
}

type Flipped struct {
	X, Y int
}

var _ = bijectgen.Declare(`Point, Flipped, {
	Point{X: 0, Y: 0} => Flipped{X: 9, Y: 9},
	Point{X: x, Y: y} => Flipped{X: y, Y: x},
}`)
