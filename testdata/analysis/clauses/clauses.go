//go:build bijectgen

package clauses

import "github.com/mkoo/bijectgen"

type Suit int

type Farbe int

var _ = bijectgen.Declare(`Suit, Farbe, { Clubs = Kreuz }`) // want `invalid bijection pattern: Clubs = Kreuz`

var _ = bijectgen.Declare(`Suit, Farbe, { Clubs => Kreuz, , Spades => Pik }`) // want `empty bijection clause`

var _ = bijectgen.Declare(`Suit, Farbe, { _ => Kreuz }`) // want `cannot use _ in a bijection clause`

var _ = bijectgen.Declare(`Suit, Farbe, { Clubs | Spades => Kreuz }`) // want `alternation Clubs . Spades cannot be a bijection shape`

var _ = bijectgen.Declare("Suit, Farbe, { Clubs => Kreuz }") // want `declaration must be a raw string literal`
