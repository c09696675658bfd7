//go:build bijectgen

package placement

import "github.com/mkoo/bijectgen"

type A int

type B int

var x = bijectgen.Declare(`A, B, {}`) // want `declaration must be assigned to the blank identifier`

var _ = x

func init() {
	_ = bijectgen.Declare(`A, B, {}`) // want `Declare must be assigned in a package-level var`
}
