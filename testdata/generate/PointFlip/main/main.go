package main

import "fmt"

func main() {
	for _, p := range []Point{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 3}} {
		f := PointToFlipped(p)
		fmt.Println(f.X, f.Y, FlippedToPoint(f) == p)
	}
}
