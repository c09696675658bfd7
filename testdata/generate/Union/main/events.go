//go:build bijectgen

package main

import "github.com/mkoo/bijectgen"

type Event interface{ isEvent() }

type Signal interface{ isSignal() }

type Click struct{ X, Y int }

func (Click) isEvent() {}

type Tap struct{ X, Y int }

func (Tap) isSignal() {}

type Quit struct{}

func (Quit) isEvent() {}

type Exit struct{}

func (Exit) isSignal() {}

var _ = bijectgen.Declare(`Event, Signal, {
	Click{X: x, Y: y} => Tap{X: x, Y: y},
	Quit{} => Exit{},
}`)
