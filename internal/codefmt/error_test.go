package codefmt_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/packages"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

type pkger struct{}

func (pkger) Pkg() *packages.Package {
	var pkg packages.Package
	pkg.Fset = token.NewFileSet()
	pkg.Fset.AddFile("test.go", -1, 100).AddLine(10)
	return &pkg
}

type poser struct{ pos int }

func (p poser) Pos() token.Pos { return token.Pos(p.pos) }

type frag string

func (f frag) Frag() string { return string(f) }

func TestErrorfNilNil(t *testing.T) {
	err := codefmt.Errorf(nil, nil, "simple error")
	assert.Equal(t, "simple error", err.Error())
}

func TestErrorfPos(t *testing.T) {
	err := codefmt.Errorf(pkger{}, poser{1}, "error")
	assert.Equal(t, "test.go:1:1: error", err.Error())
}

func TestErrorfW(t *testing.T) {
	assert.Panics(t, func() {
		_ = codefmt.Errorf(pkger{}, poser{1}, "error: %w", assert.AnError)
	})
}

func TestErrorfFrag(t *testing.T) {
	err := codefmt.Errorf(pkger{}, poser{12}, "unexpected %c", frag("A => B"))
	assert.Equal(t, "test.go:2:2: unexpected A => B", err.Error())
}

func TestErrorfSpan(t *testing.T) {
	err := codefmt.Errorf(pkger{}, codefmt.Span(1, 5), "error")
	codeErr, ok := err.(*codefmt.CodeError)
	assert.True(t, ok)
	assert.Equal(t, token.Pos(1), codeErr.Pos())
	assert.Equal(t, token.Pos(5), codeErr.End())
}
