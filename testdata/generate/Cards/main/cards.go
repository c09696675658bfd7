//go:build bijectgen

package main

import "github.com/mkoo/bijectgen"

type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

type Farbe int

const (
	Kreuz Farbe = iota
	Karo
	Herz
	Pik
)

var _ = bijectgen.Declare(`Suit, Farbe, {
	Clubs => Kreuz,
	Diamonds => Karo,
	Hearts => Herz,
	Spades => Pik,
}`)
