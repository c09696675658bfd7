//go:build bijectgen

package overlap

import "github.com/mkoo/bijectgen"

type Suit int

type Farbe int

var _ = bijectgen.Declare(`Suit, Farbe, { Clubs => Kreuz, Clubs => Pik }`) // want `unreachable clause Clubs => Pik`

var _ = bijectgen.Declare(`Suit, Farbe, { Hearts => Herz, Spades => Herz }`) // want `clause Spades => Herz breaks the bijection`

var _ = bijectgen.Declare(`Suit, Farbe, { x => x, Diamonds => Karo }`) // want `unreachable clause Diamonds => Karo: earlier binding x already matches any value` `clause Diamonds => Karo is never reached converting back`
