// Package bijectanalysis plugs bijectgen diagnostics into the Go analysis
// protocol. Besides the generation errors, it reports overlap findings:
// clauses that can never match or that break the inverse property. Overlap is
// reported here and not at generation time, so a declaration that only
// overlaps still generates.
package bijectanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	bijectgeninternal "github.com/mkoo/bijectgen/internal/bijectgen"
	"github.com/mkoo/bijectgen/internal/bijectgen/overlap"
	"github.com/mkoo/bijectgen/internal/codefmt"
)

// Analyzer validates the usage of Bijectgen in the package.
var Analyzer = &analysis.Analyzer{
	Name: "bijectgen",
	Doc:  "linter for bijectgen declarations",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	bg, err := bijectgeninternal.New(pkg)
	if err != nil {
		return nil, err
	}

	if err := bg.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(analysis.Diagnostic{
					Pos:     codeErr.Pos(),
					End:     codeErr.End(),
					Message: codeErr.Unwrap().Error(),
				})
				continue
			}

			if u, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, u.Unwrap()...)
			}
		}
		return nil, nil
	}

	for _, d := range bg.Decls() {
		for _, warn := range overlap.Check(d) {
			pass.Report(analysis.Diagnostic{
				Pos:     warn.Pos,
				End:     warn.End,
				Message: warn.Message,
			})
		}
	}

	return nil, nil
}
