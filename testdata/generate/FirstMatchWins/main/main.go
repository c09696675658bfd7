package main

import "fmt"

func main() {
	// The zero point hits the special-cased first clause, not the general
	// swap that also covers it.
	for _, p := range []Point{{X: 0, Y: 0}, {X: 1, Y: 2}} {
		f := PointToFlipped(p)
		fmt.Println(f.X, f.Y, FlippedToPoint(f) == p)
	}
}
