package parse

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

// ShapeKind classifies what a shape does on each side of an arm.
type ShapeKind int

const (
	// Literal shapes match by equality and construct themselves.
	Literal ShapeKind = iota

	// Binding shapes match anything, capture the input under a name, and
	// construct from whatever that name is bound to.
	Binding

	// Structure shapes destructure a composite value field by field and
	// construct one the same way.
	Structure
)

// Shape is one side of a clause: a fragment that must be usable both as a
// matcher and as a constructor. The same shape text serves both roles
// depending on the conversion direction, which is what keeps the two
// generated functions inverse to each other.
type Shape struct {
	Kind ShapeKind

	frag     string
	expr     ast.Expr // positions are frag-relative, starting at 1
	fields   map[*ast.CompositeLit][]string
	pos, end token.Pos
}

func (s Shape) Frag() string   { return s.frag }
func (s Shape) Pos() token.Pos { return s.pos }
func (s Shape) End() token.Pos { return s.end }

// Root returns the underlying expression of the shape.
func (s Shape) Root() ast.Expr { return s.expr }

// Sub returns the source text of a sub-expression of the shape. Constructors
// are emitted from this text verbatim, so bindings keep the exact names the
// clause author wrote.
func (s Shape) Sub(expr ast.Expr) string {
	return s.frag[expr.Pos()-1 : expr.End()-1]
}

// FieldNames returns the field name of each element of a composite literal
// inside the shape. Names of positional elements come from the struct
// definition; they are resolved during parsing so emission cannot fail.
func (s Shape) FieldNames(lit *ast.CompositeLit) []string {
	return s.fields[lit]
}

// TypeName returns the type name a structure shape matches and constructs.
func (s Shape) TypeName() string {
	lit := s.expr.(*ast.CompositeLit)
	return lit.Type.(*ast.Ident).Name
}

// BindingName reports whether the expression is a binding identifier inside a
// shape and returns its name.
func BindingName(expr ast.Expr) (string, bool) {
	if id, ok := ast.Unparen(expr).(*ast.Ident); ok && isBindingName(id.Name) {
		return id.Name, true
	}
	return "", false
}

// isBindingName reports whether an identifier captures a value rather than
// naming one. Lowercase identifiers bind, except the predeclared value names
// which read as literals.
func isBindingName(name string) bool {
	switch name {
	case "true", "false", "nil", "iota":
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}

// parseShape compiles one side of a clause. The fragment is parsed by the
// host expression parser and then checked against the shape whitelist.
func (d *Decl) parseShape(p *Parser, seg []Token) (Shape, error) {
	pos, end := seg[0].Pos(), seg[len(seg)-1].End()
	frag := d.frag(pos, end)
	span := codefmt.Span(pos, end)

	expr, err := goparser.ParseExpr(frag)
	if err != nil {
		return Shape{}, d.clauseError(p, seg)
	}
	expr = ast.Unparen(expr)

	// An alternation is a fine matcher but can never construct a single
	// value, so it cannot serve both roles. Only the top level is rejected;
	// a nested "|" reads as the host's bitwise-or operator.
	if bin, ok := expr.(*ast.BinaryExpr); ok && bin.Op == token.OR {
		return Shape{}, codefmt.Errorf(p, span,
			"alternation %s cannot be a bijection shape; each side must construct exactly one value", frag)
	}

	sh := Shape{frag: frag, expr: expr, pos: pos, end: end}
	if err := sh.classify(p, span); err != nil {
		return Shape{}, err
	}
	return sh, nil
}

// classify assigns the shape kind and rejects expressions that cannot act as
// both matcher and constructor.
func (sh *Shape) classify(p *Parser, span codefmt.Poser) error {
	switch expr := sh.expr.(type) {
	case *ast.Ident:
		if expr.Name == "_" {
			return codefmt.Errorf(p, span, "cannot use _ in a bijection clause; both sides must construct a value")
		}
		if isBindingName(expr.Name) {
			sh.Kind = Binding
		} else {
			sh.Kind = Literal
		}

	case *ast.CompositeLit:
		sh.Kind = Structure
		return sh.checkStructure(p, span, expr)

	case *ast.BasicLit, *ast.SelectorExpr, *ast.UnaryExpr, *ast.BinaryExpr:
		sh.Kind = Literal

	default:
		return codefmt.Errorf(p, span,
			"%s cannot be a bijection shape; a shape must be usable as both pattern and expression", sh.frag)
	}
	return nil
}

// checkStructure validates a composite shape and every nested sub-shape.
func (sh *Shape) checkStructure(p *Parser, span codefmt.Poser, lit *ast.CompositeLit) error {
	if _, ok := lit.Type.(*ast.Ident); !ok {
		return codefmt.Errorf(p, span, "shape %s must name a type of the declaring package", sh.frag)
	}

	for _, elt := range lit.Elts {
		val := elt
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			if _, ok := kv.Key.(*ast.Ident); !ok {
				return codefmt.Errorf(p, span, "invalid field %s in shape %s", sh.Sub(kv.Key), sh.frag)
			}
			val = kv.Value
		}
		val = ast.Unparen(val)

		switch val := val.(type) {
		case *ast.Ident:
			if val.Name == "_" {
				return codefmt.Errorf(p, span, "cannot use _ in a bijection clause; both sides must construct a value")
			}
		case *ast.CompositeLit:
			if err := sh.checkStructure(p, span, val); err != nil {
				return err
			}
		case *ast.BasicLit, *ast.SelectorExpr, *ast.UnaryExpr, *ast.BinaryExpr:
			// Nested literal, matched by equality.
		default:
			return codefmt.Errorf(p, span, "invalid sub-shape %s in %s", sh.Sub(val), sh.frag)
		}
	}
	return nil
}
