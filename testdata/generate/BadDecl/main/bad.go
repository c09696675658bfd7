//go:build bijectgen

package bad

import "github.com/mkoo/bijectgen"

type Suit int

type Farbe int

var _ = bijectgen.Declare(`Suit, Farbe { Clubs => Kreuz }`)
