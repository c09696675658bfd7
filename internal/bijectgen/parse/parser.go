package parse

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/mkoo/bijectgen/internal/codefmt"
)

func IsBijectgenImport(path string) bool {
	// Source code from "wire/internal/wire/parse.go".
	const vendorPart = "vendor/"
	if i := strings.LastIndex(path, vendorPart); i != -1 && (i == 0 || path[i-1] == '/') {
		path = path[i+len(vendorPart):]
	}
	return path == "github.com/mkoo/bijectgen"
}

// Parser parses an AST of the underlying package to collect bijection
// declarations.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg}, nil
}

// GetDirective returns the name of the bijectgen directive function if the
// call expression is a bijectgen directive. Otherwise, it returns false.
func (p *Parser) GetDirective(call *ast.CallExpr) (string, bool) {
	callee := typeutil.Callee(p.Pkg().TypesInfo, call)
	if callee == nil {
		return "", false
	}

	pkg := callee.Pkg()
	if pkg == nil {
		// Built-in functions like panic()
		return "", false
	}

	if !IsBijectgenImport(pkg.Path()) {
		// Not a bijectgen function
		return "", false
	}

	return callee.Name(), true
}

// IsDirective checks if the call expression is a bijectgen directive with the
// given name. If name is empty, it checks if the call is any bijectgen
// directive.
func (p *Parser) IsDirective(call *ast.CallExpr, name string) bool {
	calleeName, ok := p.GetDirective(call)
	if !ok {
		return false
	}

	if name == "" {
		// Any bijectgen directive
		return true
	}

	return calleeName == name
}

// TaggedGoFiles returns the Go files that have a "//go:build bijectgen"
// constraint.
func (p *Parser) TaggedGoFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.Pkg().Syntax {
		if hasGoBuildBijectgen(file) {
			files = append(files, file)
		}
	}
	return files
}

// hasGoBuildBijectgen checks if the file has a "//go:build bijectgen"
// constraint.
func hasGoBuildBijectgen(file *ast.File) bool {
	ok := false
	for _, group := range file.Comments {
		for _, comment := range group.List {
			if constraint.IsGoBuild(comment.Text) {
				expr, _ := constraint.Parse(comment.Text)
				expr.Eval(func(tag string) bool {
					if tag == "bijectgen" {
						ok = true
					}
					return true
				})
			}
		}
	}
	return ok
}

// ParseDecls parses every bijection declaration in the tagged files of the
// package. Each declaration is compiled independently; errors of all
// declarations are collected.
func (p *Parser) ParseDecls() ([]*Decl, error) {
	var errs error
	var decls []*Decl

	for _, file := range p.TaggedGoFiles() {
		for _, fileDecl := range file.Decls {
			gen, ok := fileDecl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				continue
			}

			for _, spec := range gen.Specs {
				val, ok := spec.(*ast.ValueSpec)
				if !ok || len(val.Names) != len(val.Values) {
					continue
				}

				for i := range val.Values {
					call, ok := val.Values[i].(*ast.CallExpr)
					if !ok || !p.IsDirective(call, "Declare") {
						continue
					}

					d, err := p.parseDeclare(val.Names[i], call)
					if err != nil {
						errs = errors.Join(errs, err)
						continue
					}
					decls = append(decls, d)
				}
			}
		}
	}

	if errs != nil {
		return nil, errs
	}
	return decls, nil
}

// parseDeclare compiles one Declare directive call.
func (p *Parser) parseDeclare(name *ast.Ident, call *ast.CallExpr) (*Decl, error) {
	if name.Name != "_" {
		return nil, codefmt.Errorf(p, name, "declaration must be assigned to the blank identifier")
	}

	if len(call.Args) != 1 {
		return nil, codefmt.Errorf(p, call, "need 1 parameter")
	}

	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING || !strings.HasPrefix(lit.Value, "`") {
		return nil, codefmt.Errorf(p, call.Args[0], "declaration must be a raw string literal")
	}

	src := lit.Value[1 : len(lit.Value)-1]
	base := lit.ValuePos + 1
	return p.ParseDecl(src, base)
}

// ParseDecl compiles one raw declaration. base is the position of the first
// byte of src within the declaring file, so every diagnostic points inside
// the declaration text.
func (p *Parser) ParseDecl(src string, base token.Pos) (*Decl, error) {
	d := &Decl{
		pkg:  p.pkg,
		src:  src,
		base: base,
		pos:  base,
		end:  base + token.Pos(len(src)),
	}

	toks, err := p.scanTokens(src, base)
	if err != nil {
		return nil, err
	}

	block, err := d.parseGrammar(p, toks)
	if err != nil {
		return nil, err
	}

	if err := d.normalize(p, block); err != nil {
		return nil, err
	}

	if err := d.resolveSides(p); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks for usages outside expected paths. It collects all errors
// instead of stopping at the first error.
func (p *Parser) Validate() error {
	var errs error
	for _, file := range p.Pkg().Syntax {
		errs = errors.Join(errs, p.validateConstraint(file))
	}
	errs = errors.Join(errs, p.validateDeclarePlacement())
	return errs
}

// validateConstraint checks if files importing "github.com/mkoo/bijectgen"
// have a "//go:build bijectgen" constraint.
func (p *Parser) validateConstraint(file *ast.File) error {
	var bijectgenImport *ast.ImportSpec
	for _, imp := range file.Imports {
		if IsBijectgenImport(strings.Trim(imp.Path.Value, `"`)) {
			bijectgenImport = imp
			break
		}
	}
	if bijectgenImport == nil {
		return nil // No bijectgen import found
	}

	if hasGoBuildBijectgen(file) {
		return nil // Constraint satisfied
	}

	// This file imports bijectgen but has no "//go:build bijectgen" constraint
	return codefmt.Errorf(p, bijectgenImport, `file must have "//go:build bijectgen" constraint when importing bijectgen`)
}

// validateDeclarePlacement checks that Declare is only called in package-level
// var specs. Declarations are erased at code generation, so any other usage
// would leave a reference to a value that never exists at runtime.
func (p *Parser) validateDeclarePlacement() error {
	allowed := make(map[token.Pos]struct{})
	for _, file := range p.Pkg().Syntax {
		for _, fileDecl := range file.Decls {
			gen, ok := fileDecl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				continue
			}
			for _, spec := range gen.Specs {
				val, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, value := range val.Values {
					allowed[value.Pos()] = struct{}{}
				}
			}
		}
	}

	var errs error
	for _, file := range p.Pkg().Syntax {
		ast.Inspect(file, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok || !p.IsDirective(call, "Declare") {
				return true
			}

			if _, ok := allowed[call.Pos()]; !ok {
				err := codefmt.Errorf(p, call, "Declare must be assigned in a package-level var")
				errs = errors.Join(errs, err)
			}
			return false
		})
	}
	return errs
}
