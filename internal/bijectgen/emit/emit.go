// Package emit turns normalized arm-lists into conversion function source.
// Emission cannot fail: every shape reaching this package has been validated
// and resolved during parsing. Output is unindented; the generator runs the
// result through gofmt when framing the file.
package emit

import (
	"github.com/mkoo/bijectgen/internal/bijectgen/parse"
	"github.com/mkoo/bijectgen/internal/codefmt"
)

const errorsImportPath = "github.com/mkoo/bijectgen/pkg/bijecterrors"

// Func is one conversion function: an ordered, first-match-wins dispatch from
// In to Out. The two functions of a declaration share the same arm-list in
// opposite orientations, which is what makes them inverse.
type Func struct {
	Name    string
	In, Out parse.SideType
	Arms    []parse.Arm
}

// Write emits the function declaration.
func Write(w *codefmt.Writer, fn Func) {
	w.Printf("func %s(in %s) %s {\n", fn.Name, fn.In.Name, fn.Out.Name)

	switch {
	case len(fn.Arms) == 0:
		// Nothing to dispatch on; the fall-through below is the whole body.
	case fn.In.Iface:
		writeTypeDispatch(w, fn)
	case literalArmsOnly(fn.Arms):
		writeValueSwitch(w, fn)
	default:
		writeChain(w, fn)
	}

	// Every generated function is total over its clauses, never over the
	// input type. Unmatched inputs are the caller's bug.
	errs := w.Import(errorsImportPath, "")
	w.Printf("panic(%s.Unmatched(%q, in))\n", errs, fn.In.Name)
	w.Printf("}\n")
}

func literalArmsOnly(arms []parse.Arm) bool {
	for _, arm := range arms {
		if arm.Match.Kind != parse.Literal {
			return false
		}
	}
	return true
}

// writeValueSwitch emits a value switch for arm-lists that match by equality
// only. Arm order is preserved by case order.
func writeValueSwitch(w *codefmt.Writer, fn Func) {
	w.Printf("switch in {\n")
	for _, arm := range fn.Arms {
		w.Printf("case %s:\n", arm.Match.Frag())
		w.Printf("return %s\n", arm.Build.Frag())
	}
	w.Printf("}\n")
}

// writeChain emits an if-chain for arm-lists that mix literal, binding, and
// structure matchers on a concrete input type. The first matching arm
// returns, so clause order is dispatch order.
func writeChain(w *codefmt.Writer, fn Func) {
	for _, arm := range fn.Arms {
		switch arm.Match.Kind {
		case parse.Binding:
			name, _ := parse.BindingName(arm.Match.Root())
			w.Printf("{\n")
			w.Printf("%s := in\n", name)
			w.Printf("return %s\n", arm.Build.Frag())
			w.Printf("}\n")

		case parse.Literal:
			w.Printf("if in == %s {\n", arm.Match.Frag())
			w.Printf("return %s\n", arm.Build.Frag())
			w.Printf("}\n")

		case parse.Structure:
			binds, conds := compileMatch(arm.Match, "in")
			if len(binds) == 0 && len(conds) == 0 {
				// A bare structure shape constrains nothing.
				w.Printf("return %s\n", arm.Build.Frag())
				continue
			}
			w.Printf("{\n")
			writeArmBody(w, arm, binds, conds)
			w.Printf("}\n")
		}
	}
}

// writeTypeDispatch dispatches on the dynamic type of an interface input. A
// type switch is used when the arm-list allows it; otherwise each arm gets
// its own type assertion so arbitrary orders and repeated types still
// dispatch first-match-wins.
func writeTypeDispatch(w *codefmt.Writer, fn Func) {
	if !typeSwitchable(fn.Arms) {
		writeAssertChain(w, fn)
		return
	}

	usesValue := false
	for _, arm := range fn.Arms {
		if armUsesValue(arm) {
			usesValue = true
			break
		}
	}

	if usesValue {
		w.Printf("switch in := in.(type) {\n")
	} else {
		w.Printf("switch in.(type) {\n")
	}
	for _, arm := range fn.Arms {
		if name, ok := parse.BindingName(arm.Match.Root()); ok {
			// The binding arm is last, so it becomes the default clause.
			w.Printf("default:\n")
			w.Printf("%s := in\n", name)
			w.Printf("return %s\n", arm.Build.Frag())
			continue
		}

		w.Printf("case %s:\n", arm.Match.TypeName())
		binds, conds := compileMatch(arm.Match, "in")
		writeArmBody(w, arm, binds, conds)
	}
	w.Printf("}\n")
}

// typeSwitchable reports whether the arm-list maps onto a single type switch:
// structure arms with pairwise distinct types, conditions-free, plus at most
// one binding arm in the last position.
func typeSwitchable(arms []parse.Arm) bool {
	types := make(map[string]bool)
	for i, arm := range arms {
		if arm.Match.Kind == parse.Binding {
			if i != len(arms)-1 {
				return false
			}
			continue
		}
		name := arm.Match.TypeName()
		if types[name] {
			return false
		}
		types[name] = true

		// An arm with equality conditions can fail after its type matched,
		// and a type switch cannot fall through to later arms.
		if _, conds := compileMatch(arm.Match, "in"); len(conds) != 0 {
			return false
		}
	}
	return true
}

// writeAssertChain emits one type assertion per arm.
func writeAssertChain(w *codefmt.Writer, fn Func) {
	for _, arm := range fn.Arms {
		if name, ok := parse.BindingName(arm.Match.Root()); ok {
			w.Printf("{\n")
			w.Printf("%s := in\n", name)
			w.Printf("return %s\n", arm.Build.Frag())
			w.Printf("}\n")
			continue
		}

		binder := "_"
		if armUsesValue(arm) {
			binder = "in"
		}
		w.Printf("if %s, ok := in.(%s); ok {\n", binder, arm.Match.TypeName())
		binds, conds := compileMatch(arm.Match, "in")
		writeArmBody(w, arm, binds, conds)
		w.Printf("}\n")
	}
}

// writeArmBody writes the bindings and the guarded return of one structure
// arm. The input value is already the concrete type here.
func writeArmBody(w *codefmt.Writer, arm parse.Arm, binds, conds []string) {
	for _, b := range binds {
		w.Printf("%s\n", b)
	}
	if len(conds) == 0 {
		w.Printf("return %s\n", arm.Build.Frag())
		return
	}
	w.Printf("if %s {\n", joinAnd(conds))
	w.Printf("return %s\n", arm.Build.Frag())
	w.Printf("}\n")
}

func armUsesValue(arm parse.Arm) bool {
	if arm.Match.Kind != parse.Structure {
		return arm.Match.Kind == parse.Binding
	}
	binds, conds := compileMatch(arm.Match, "in")
	return len(binds)+len(conds) != 0
}
