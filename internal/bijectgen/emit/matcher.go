package emit

import (
	"go/ast"
	"strings"

	"github.com/mkoo/bijectgen/internal/bijectgen/parse"
)

// compileMatch flattens a structure shape into binding statements and
// equality conditions over the input value. path is the expression the shape
// destructures, usually "in".
func compileMatch(sh parse.Shape, path string) (binds, conds []string) {
	lit := sh.Root().(*ast.CompositeLit)
	return compileLit(sh, lit, path)
}

func compileLit(sh parse.Shape, lit *ast.CompositeLit, path string) (binds, conds []string) {
	names := sh.FieldNames(lit)

	for i, elt := range lit.Elts {
		val := elt
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			val = kv.Value
		}
		val = ast.Unparen(val)
		fieldPath := path + "." + names[i]

		if name, ok := parse.BindingName(val); ok {
			binds = append(binds, name+" := "+fieldPath)
			continue
		}
		if sub, ok := val.(*ast.CompositeLit); ok {
			b, c := compileLit(sh, sub, fieldPath)
			binds = append(binds, b...)
			conds = append(conds, c...)
			continue
		}

		// A literal field matches by equality.
		conds = append(conds, fieldPath+" == "+sh.Sub(val))
	}
	return binds, conds
}

func joinAnd(conds []string) string {
	return strings.Join(conds, " && ")
}
