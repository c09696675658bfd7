//go:build bijectgen

package grammar

import "github.com/mkoo/bijectgen"

type Suit int

type Farbe int

var _ = bijectgen.Declare(`Suit, Farbe`) // want `missing bijection declaration block after types`

var _ = bijectgen.Declare(`Suit, Farbe { }`) // want `declaration block must be separated with a comma`

var _ = bijectgen.Declare(`Suit { }`) // want `declaration block must be separated with a comma`

var _ = bijectgen.Declare(`Suit, Farbe, 42`) // want `bijection declaration block expected, found 42`

var _ = bijectgen.Declare(`Suit, Farbe 42`) // want `bijection declaration block expected, found 42`

var _ = bijectgen.Declare(`Suit`) // want `missing second type`

var _ = bijectgen.Declare(`{ Clubs => Kreuz }`) // want `missing types before declaration block`

var _ = bijectgen.Declare(`42`) // want `invalid declaration; expected "TypeA, TypeB, . clauses ."`
