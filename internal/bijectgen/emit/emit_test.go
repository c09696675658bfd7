package emit_test

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/mkoo/bijectgen/internal/bijectgen/emit"
	"github.com/mkoo/bijectgen/internal/bijectgen/parse"
	"github.com/mkoo/bijectgen/internal/codefmt"
)

func newTestParser(t *testing.T) *parse.Parser {
	t.Helper()

	tpkg := types.NewPackage("example.com/cards", "cards")
	scope := tpkg.Scope()

	declare := func(name string, underlying types.Type) {
		tn := types.NewTypeName(token.NoPos, tpkg, name, nil)
		types.NewNamed(tn, underlying, nil)
		scope.Insert(tn)
	}

	intT := types.Typ[types.Int]
	declare("Suit", intT)
	declare("Farbe", intT)
	declare("Point", types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, tpkg, "X", intT, false),
		types.NewField(token.NoPos, tpkg, "Y", intT, false),
	}, nil))
	declare("Flipped", types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, tpkg, "X", intT, false),
		types.NewField(token.NoPos, tpkg, "Y", intT, false),
	}, nil))
	declare("Event", types.NewInterfaceType(nil, nil))
	declare("Signal", types.NewInterfaceType(nil, nil))
	declare("Click", types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, tpkg, "At", scope.Lookup("Point").Type(), false),
	}, nil))
	declare("Tap", types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, tpkg, "At", scope.Lookup("Point").Type(), false),
	}, nil))
	declare("Quit", types.NewStruct(nil, nil))
	declare("Exit", types.NewStruct(nil, nil))

	fset := token.NewFileSet()
	fset.AddFile("decl.go", 1, 4096)

	pkg := &packages.Package{
		Name:      "cards",
		PkgPath:   "example.com/cards",
		Types:     tpkg,
		Fset:      fset,
		Syntax:    []*ast.File{},
		TypesInfo: &types.Info{},
	}

	p, err := parse.New(pkg)
	require.NoError(t, err)
	return p
}

// write parses the declaration and emits the forward function. The output is
// unindented; indentation comes from gofmt at framing.
func write(t *testing.T, src string) string {
	t.Helper()
	p := newTestParser(t)

	d, err := p.ParseDecl(src, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := codefmt.NewWriter(&buf, p.Pkg())
	emit.Write(w, emit.Func{
		Name: d.A.Name + "To" + d.B.Name,
		In:   d.A,
		Out:  d.B,
		Arms: d.Forward,
	})

	// Whatever the dispatch strategy, the output must be gofmt-able.
	_, err = format.Source([]byte("package cards\n" + buf.String()))
	assert.NoError(t, err)

	return buf.String()
}

func TestWriteValueSwitch(t *testing.T) {
	code := write(t, `Suit, Farbe, { Clubs => Kreuz, Spades => Pik }`)
	assert.Equal(t, `func SuitToFarbe(in Suit) Farbe {
switch in {
case Clubs:
return Kreuz
case Spades:
return Pik
}
panic(bijecterrors.Unmatched("Suit", in))
}
`, code)
}

func TestWriteStructChain(t *testing.T) {
	code := write(t, `Point, Flipped, { Point{X: x, Y: 0} => Flipped{X: 0, Y: x} }`)
	assert.Equal(t, `func PointToFlipped(in Point) Flipped {
{
x := in.X
if in.Y == 0 {
return Flipped{X: 0, Y: x}
}
}
panic(bijecterrors.Unmatched("Point", in))
}
`, code)
}

func TestWriteBindingArm(t *testing.T) {
	code := write(t, `Point, Flipped, { Point{X: 0, Y: 0} => Flipped{X: 1, Y: 1}, p => Flipped{X: p.Y, Y: p.X} }`)
	assert.Equal(t, `func PointToFlipped(in Point) Flipped {
{
if in.X == 0 && in.Y == 0 {
return Flipped{X: 1, Y: 1}
}
}
{
p := in
return Flipped{X: p.Y, Y: p.X}
}
panic(bijecterrors.Unmatched("Point", in))
}
`, code)
}

func TestWriteTypeSwitch(t *testing.T) {
	code := write(t, `Event, Signal, { Click{At: p} => Tap{At: p}, x => x }`)
	assert.Equal(t, `func EventToSignal(in Event) Signal {
switch in := in.(type) {
case Click:
p := in.At
return Tap{At: p}
default:
x := in
return x
}
panic(bijecterrors.Unmatched("Event", in))
}
`, code)
}

func TestWriteTypeSwitchNoValue(t *testing.T) {
	// No arm touches the input value, so the switch must not bind it.
	code := write(t, `Event, Signal, { Quit{} => Exit{} }`)
	assert.Equal(t, `func EventToSignal(in Event) Signal {
switch in.(type) {
case Quit:
return Exit{}
}
panic(bijecterrors.Unmatched("Event", in))
}
`, code)
}

func TestWriteAssertChain(t *testing.T) {
	// A repeated match type rules out a type switch; each arm gets its own
	// assertion so first-match-wins still holds.
	code := write(t, `Event, Signal, { Click{At: Point{X: 0, Y: 0}} => Exit{}, Click{At: p} => Tap{At: p} }`)
	assert.Equal(t, `func EventToSignal(in Event) Signal {
if in, ok := in.(Click); ok {
if in.At.X == 0 && in.At.Y == 0 {
return Exit{}
}
}
if in, ok := in.(Click); ok {
p := in.At
return Tap{At: p}
}
panic(bijecterrors.Unmatched("Event", in))
}
`, code)
}

func TestWriteEmptyArms(t *testing.T) {
	code := write(t, `Suit, Farbe, {}`)
	assert.Equal(t, `func SuitToFarbe(in Suit) Farbe {
panic(bijecterrors.Unmatched("Suit", in))
}
`, code)
}

func TestWriteRecordsImport(t *testing.T) {
	p := newTestParser(t)
	d, err := p.ParseDecl(`Suit, Farbe, { Clubs => Kreuz }`, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := codefmt.NewWriter(&buf, p.Pkg())
	emit.Write(w, emit.Func{Name: "SuitToFarbe", In: d.A, Out: d.B, Arms: d.Forward})

	var paths []string
	for _, imp := range w.Imports() {
		paths = append(paths, imp.Path)
	}
	assert.Equal(t, []string{"github.com/mkoo/bijectgen/pkg/bijecterrors"}, paths)
}
