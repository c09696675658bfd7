package notag

import "github.com/mkoo/bijectgen"

type A int

type B int

var _ = bijectgen.Declare(`A, B, {}`)
