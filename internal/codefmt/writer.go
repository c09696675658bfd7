package codefmt

import (
	"io"
	"iter"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/packages"
)

// Writer is a writer for generated code. It tracks imports the generated code
// needs, in registration order, and carries a namespace for unique names.
type Writer struct {
	w       io.Writer
	fmt     Formatter
	imports *linkedhashmap.Map // key: name, value: Import
	ns      NS
}

// NewWriter creates a new [Writer]. It does not initialize the namespace. To
// specify a namespace, use [Writer.WithNS].
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		fmt:     New(pkg),
		imports: linkedhashmap.New(),
		ns:      nil,
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return w.fmt.Fprintf(w.w, format, args...)
}

// Sprintf creates a formatted string using [Formatter.Sprintf].
func (w *Writer) Sprintf(format string, args ...any) string {
	return w.fmt.Sprintf(format, args...)
}

// Name returns a unique name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// Reserve marks a name as used in the namespace of the writer.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

// WithBuf copies the writer and sets a new write buffer.
func (w *Writer) WithBuf(buf io.Writer) *Writer {
	return &Writer{
		w:       buf,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      w.ns,
	}
}

// WithNS copies the writer and sets a new namespace.
func (w *Writer) WithNS(ns NS) *Writer {
	return &Writer{
		w:       w.w,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      ns,
	}
}

// Import records an import for the package with the given path and returns
// the name to refer to it. name may be empty for the default package name
// (the last path segment). The name might differ from the requested one if it
// had to be disambiguated:
//
//	errsName := w.Import("github.com/mkoo/bijectgen/pkg/bijecterrors", "bijecterrors")
//	w.Printf("panic(%s.Unmatched(...))", errsName)
//
// Call [Writer.Imports] to retrieve the recorded imports.
func (w *Writer) Import(path, name string) string {
	defaultName := pathBase(path)
	if name == "" {
		name = defaultName
	}

	for name := range DisambiguateName(name) {
		if prev, ok := w.imports.Get(name); ok {
			if prev.(Import).Path == path {
				// Already imported with the same name.
				return name
			}
			continue
		}
		if w.ns != nil && !w.ns.Reserve(name) {
			// The name is taken by a package-level declaration.
			continue
		}
		w.imports.Put(name, Import{Path: path, HasAlias: name != defaultName})
		return name
	}

	panic("unreachable")
}

// Import is one recorded import of the generated file.
type Import struct {
	Path string

	// HasAlias indicates that the import needs an explicit name.
	HasAlias bool
}

// Imports yields the recorded imports in registration order as (name, imp)
// pairs.
func (w *Writer) Imports() iter.Seq2[string, Import] {
	return func(yield func(string, Import) bool) {
		for it := w.imports.Iterator(); it.Next(); {
			if !yield(it.Key().(string), it.Value().(Import)) {
				return
			}
		}
	}
}

// HasImports reports whether any import has been recorded.
func (w *Writer) HasImports() bool {
	return w.imports.Size() != 0
}

func pathBase(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}
	return base
}
