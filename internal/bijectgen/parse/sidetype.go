package parse

import (
	"errors"
	"go/ast"
	"go/types"
	"strings"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

// resolveSides resolves the declared type names in the package scope and then
// checks every shape against the side it matches. The resolved kind of a side
// drives which dispatch construct the emitter picks, so all failure modes are
// caught here and emission stays infallible.
func (d *Decl) resolveSides(p *Parser) error {
	var errs error
	errs = errors.Join(errs, d.A.resolve(p))
	errs = errors.Join(errs, d.B.resolve(p))
	if errs != nil {
		return errs
	}

	for i := range d.Clauses {
		cl := &d.Clauses[i]
		errs = errors.Join(errs, d.resolveShape(p, &cl.Left, d.A))
		errs = errors.Join(errs, d.resolveShape(p, &cl.Right, d.B))
	}
	if errs != nil {
		return errs
	}

	// The shapes inside the arm-lists are copies of the clause shapes; renew
	// them so the resolved field tables travel with the arms.
	for i := range d.Clauses {
		d.Forward[i] = Arm{Match: d.Clauses[i].Left, Build: d.Clauses[i].Right}
		d.Backward[i] = Arm{Match: d.Clauses[i].Right, Build: d.Clauses[i].Left}
	}
	return nil
}

func (s *SideType) resolve(p *Parser) error {
	if strings.Contains(s.Name, ".") {
		return codefmt.Errorf(p, s,
			"cannot use qualified type %s; declaration types must be defined in package %s", s.Name, p.Pkg().Name)
	}

	obj := p.Pkg().Types.Scope().Lookup(s.Name)
	if obj == nil {
		return codefmt.Errorf(p, s, "undefined type: %s", s.Name)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return codefmt.Errorf(p, s, "%s is not a type", s.Name)
	}

	s.Iface = types.IsInterface(tn.Type())
	return nil
}

// resolveShape checks one shape against the side type it matches and resolves
// the field names of its composite literals.
func (d *Decl) resolveShape(p *Parser, sh *Shape, side SideType) error {
	span := codefmt.Span(sh.pos, sh.end)

	if side.Iface && sh.Kind == Literal {
		return codefmt.Errorf(p, span,
			"shape %s cannot match interface %s; use a composite literal of an implementation", sh.frag, side.Name)
	}
	if sh.Kind != Structure {
		return nil
	}

	lit := sh.expr.(*ast.CompositeLit)
	if !side.Iface {
		// On a concrete side the shape must spell the side type itself;
		// anything else could not destructure the input.
		if name := lit.Type.(*ast.Ident).Name; name != side.Name {
			return codefmt.Errorf(p, span, "shape type %s does not match declaration type %s", name, side.Name)
		}
	}

	sh.fields = make(map[*ast.CompositeLit][]string)
	return d.resolveFields(p, sh, span, lit)
}

// resolveFields fills in the field name of every composite element, including
// positional ones, from the struct definition in the package scope.
func (d *Decl) resolveFields(p *Parser, sh *Shape, span codefmt.Poser, lit *ast.CompositeLit) error {
	typeName := lit.Type.(*ast.Ident).Name
	st, err := d.lookupStruct(p, span, typeName)
	if err != nil {
		return err
	}

	names := make([]string, len(lit.Elts))
	for i, elt := range lit.Elts {
		var val ast.Expr
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			key := kv.Key.(*ast.Ident).Name
			if !structHasField(st, key) {
				return codefmt.Errorf(p, span, "type %s has no field %s", typeName, key)
			}
			names[i] = key
			val = kv.Value
		} else {
			if i >= st.NumFields() {
				return codefmt.Errorf(p, span, "too many fields in shape %s for type %s", sh.frag, typeName)
			}
			names[i] = st.Field(i).Name()
			val = elt
		}

		if sub, ok := ast.Unparen(val).(*ast.CompositeLit); ok {
			if err := d.resolveFields(p, sh, span, sub); err != nil {
				return err
			}
		}
	}

	sh.fields[lit] = names
	return nil
}

func (d *Decl) lookupStruct(p *Parser, span codefmt.Poser, name string) (*types.Struct, error) {
	obj := p.Pkg().Types.Scope().Lookup(name)
	if obj == nil {
		return nil, codefmt.Errorf(p, span, "undefined type: %s", name)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, codefmt.Errorf(p, span, "%s is not a type", name)
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, codefmt.Errorf(p, span, "%s is not a struct type", name)
	}
	return st, nil
}

func structHasField(st *types.Struct, name string) bool {
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i).Name() == name {
			return true
		}
	}
	return false
}
