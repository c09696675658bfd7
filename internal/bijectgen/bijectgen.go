package bijectgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"path/filepath"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/mkoo/bijectgen/internal/bijectgen/emit"
	"github.com/mkoo/bijectgen/internal/bijectgen/parse"
	"github.com/mkoo/bijectgen/internal/codefmt"
)

// Bijectgen generates conversion code for the target package. Call [Build]
// and then [Generate] to get the generated code. All potential errors are
// returned by [Build]. Once [Build] succeeds, [Generate] never fails.
type Bijectgen struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	decls []*parse.Decl
	funcs []emit.Func
}

// New creates a new [Bijectgen] for the given package. If the package does
// not satisfy the requirements, an error is returned. The package must have
// its Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package) (*Bijectgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	ns := codefmt.NewNS(pkg.Types.Scope())
	return &Bijectgen{
		p:   parser,
		ns:  ns,
		buf: &buf,
		w:   codefmt.NewWriter(&buf, pkg).WithNS(ns),
	}, nil
}

// Build prepares code generation by parsing declarations and pairing each of
// them with its two conversion functions. All potential errors are returned
// by this method. It must be called before [Generate].
func (bg *Bijectgen) Build() error {
	errs := bg.p.Validate()

	decls, err := bg.p.ParseDecls()
	errs = errors.Join(errs, err)
	if errs != nil {
		return errs
	}
	bg.decls = decls

	for _, d := range decls {
		// The names come from the side types in both orientations, so the
		// pair reads as inverses. The namespace already holds every
		// package-level name, so a clash just gets a numeric suffix.
		fwd := bg.ns.Name(d.A.Name + "To" + d.B.Name)
		bwd := bg.ns.Name(d.B.Name + "To" + d.A.Name)

		bg.funcs = append(bg.funcs,
			emit.Func{Name: fwd, In: d.A, Out: d.B, Arms: d.Forward},
			emit.Func{Name: bwd, In: d.B, Out: d.A, Arms: d.Backward},
		)
	}
	return nil
}

// Decls returns the built declarations. The analyzer inspects them for
// findings beyond generation errors.
func (bg *Bijectgen) Decls() []*parse.Decl { return bg.decls }

// Generate generates conversion code for the package. It must be called after
// [Build] succeeds. It returns nil when the package declares no bijections.
func (bg *Bijectgen) Generate() []byte {
	if len(bg.funcs) == 0 {
		return nil
	}

	bg.writeFuncCode()
	bg.mergeCode()
	return bg.frameCode()
}

// writeFuncCode writes the function declarations, two per bijection, in
// declaration order.
func (bg *Bijectgen) writeFuncCode() {
	bg.w.Printf("// bijectgen: conversion functions\n\n")
	for _, fn := range bg.funcs {
		emit.Write(bg.w, fn)
		bg.w.Printf("\n")
	}
}

// mergeCode copies non-bijectgen code from the source files tagged with
// "//go:build bijectgen". Declaration specs are erased so no reference to the
// bijectgen package remains in the output.
func (bg *Bijectgen) mergeCode() {
	for _, file := range bg.p.TaggedGoFiles() {
		name := filepath.Base(bg.p.Pkg().Fset.File(file.Pos()).Name())
		first := true
		kept := false

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
				// Import declarations are regrouped at framing.
				continue
			}

			decl = bg.eraseDeclares(decl)
			if decl == nil {
				continue
			}

			if first {
				fmt.Fprintf(bg.buf, "// %s:\n\n", name)
				first = false
			}
			kept = true

			printer.Fprint(bg.buf, bg.p.Pkg().Fset, &printer.CommentedNode{
				Node:     decl,
				Comments: file.Comments,
			})
			fmt.Fprintf(bg.buf, "\n\n")
		}

		if kept {
			bg.keepImports(file)
		}
	}
}

// eraseDeclares removes Declare assignments from a var declaration. It
// returns nil when nothing remains of the declaration.
func (bg *Bijectgen) eraseDeclares(decl ast.Decl) ast.Decl {
	gen, ok := decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return decl
	}

	gen = astutil.Apply(gen, func(c *astutil.Cursor) bool {
		spec, ok := c.Node().(*ast.ValueSpec)
		if !ok {
			return true
		}

		// Find non-bijectgen values
		var names []*ast.Ident
		var values []ast.Expr
		for i := range spec.Names {
			if i >= len(spec.Values) {
				names = append(names, spec.Names[i])
				continue
			}

			if call, ok := spec.Values[i].(*ast.CallExpr); ok && bg.p.IsDirective(call, "Declare") {
				continue
			}
			names = append(names, spec.Names[i])
			values = append(values, spec.Values[i])
		}

		if len(names) == 0 {
			// Input:  var ( _ = bijectgen.Declare(...) )
			// Output: var ()
			c.Delete()
		} else if len(names) != len(spec.Names) {
			// Input:  var ( _, b = bijectgen.Declare(...), 42 )
			// Output: var ( b = 42 )
			c.Replace(&ast.ValueSpec{
				Doc:     spec.Doc,
				Names:   names,
				Type:    spec.Type,
				Values:  values,
				Comment: spec.Comment,
			})
		}
		return false
	}, nil).(*ast.GenDecl)

	if len(gen.Specs) == 0 {
		return nil
	}
	return gen
}

// keepImports records the imports of a merged file, except bijectgen itself
// which has no remaining references after erasure.
func (bg *Bijectgen) keepImports(file *ast.File) {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || parse.IsBijectgenImport(path) {
			continue
		}

		name := ""
		if imp.Name != nil {
			name = imp.Name.Name
		}
		bg.w.Import(path, name)
	}
}

func (bg *Bijectgen) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !bijectgen\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/mkoo/bijectgen%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", bg.p.Pkg().Name)

	if bg.w.HasImports() {
		fmt.Fprintf(&buf, "import (\n")
		for name, imp := range bg.w.Imports() {
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", name, imp.Path)
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path)
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, bg.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
