// Package gen renders an inferred tree as Go struct declarations with bson
// and json tags.
package gen

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
	"unicode"

	inferskema "github.com/reoring/inferskema"
)

const primitivePkg = "go.mongodb.org/mongo-driver/bson/primitive"

// File describes the generated source file.
type File struct {
	Package string
	Type    string // name of the root struct
}

// RenderFile returns gofmt-ed Go source declaring f.Type for the tree.
// Nested objects become their own types named after the parent type and the
// attribute.
func RenderFile(f File, o *inferskema.Object) ([]byte, error) {
	if f.Package == "" {
		f.Package = "main"
	}
	if f.Type == "" {
		f.Type = "Sample"
	}
	if !isIdent(f.Package) {
		return nil, fmt.Errorf("gen: invalid package name %q", f.Package)
	}
	r := &renderer{imports: map[string]struct{}{}, taken: map[string]struct{}{}}
	r.declare(exportedName(f.Type), o)

	var buf strings.Builder
	fmt.Fprintf(&buf, "// Code generated by inferskema. DO NOT EDIT.\n\npackage %s\n\n", f.Package)
	if len(r.imports) > 0 {
		paths := make([]string, 0, len(r.imports))
		for p := range r.imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		buf.WriteString("import (\n")
		for _, p := range paths {
			fmt.Fprintf(&buf, "\t%q\n", p)
		}
		buf.WriteString(")\n\n")
	}
	for _, d := range r.decls {
		buf.WriteString(d)
		buf.WriteString("\n")
	}
	out, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("gen: format: %w", err)
	}
	return out, nil
}

type renderer struct {
	decls   []string
	imports map[string]struct{}
	taken   map[string]struct{}
}

// declare emits a struct type for o and returns the name actually used.
func (r *renderer) declare(name string, o *inferskema.Object) string {
	name = r.unique(name)
	idx := len(r.decls)
	r.decls = append(r.decls, "")

	var b strings.Builder
	fmt.Fprintf(&b, "type %s struct {\n", name)
	fields := map[string]struct{}{}
	for _, f := range o.Fields {
		goName := exportedName(f.Name)
		for i := 2; ; i++ {
			if _, dup := fields[goName]; !dup {
				break
			}
			goName = fmt.Sprintf("%s%d", exportedName(f.Name), i)
		}
		fields[goName] = struct{}{}
		typ := r.goType(name+goName, f.Type)
		tag := f.Name
		if !f.Required {
			tag += ",omitempty"
		}
		fmt.Fprintf(&b, "\t%s %s `bson:%q json:%q`\n", goName, typ, tag, tag)
	}
	b.WriteString("}\n")
	r.decls[idx] = b.String()
	return name
}

func (r *renderer) goType(name string, t inferskema.Type) string {
	switch x := t.(type) {
	case *inferskema.Object:
		return r.declare(name, x)
	case *inferskema.Array:
		if x.Elem == nil {
			return "[]any"
		}
		return "[]" + r.goType(name+"Item", x.Elem)
	}
	if t == nil {
		return "any"
	}
	switch t.Kind() {
	case inferskema.KindString:
		return "string"
	case inferskema.KindNumber:
		return "float64"
	case inferskema.KindDate:
		r.imports["time"] = struct{}{}
		return "time.Time"
	case inferskema.KindBuffer:
		return "[]byte"
	case inferskema.KindBoolean:
		return "bool"
	case inferskema.KindObjectID:
		r.imports[primitivePkg] = struct{}{}
		return "primitive.ObjectID"
	case inferskema.KindDecimal128:
		r.imports[primitivePkg] = struct{}{}
		return "primitive.Decimal128"
	case inferskema.KindMap:
		return "map[string]any"
	case inferskema.KindArray:
		return "[]any"
	}
	return "any"
}

func (r *renderer) unique(name string) string {
	cand := name
	for i := 2; ; i++ {
		if _, ok := r.taken[cand]; !ok {
			r.taken[cand] = struct{}{}
			return cand
		}
		cand = fmt.Sprintf("%s%d", name, i)
	}
}

var initialisms = map[string]string{
	"id": "ID", "url": "URL", "uri": "URI", "api": "API", "http": "HTTP",
	"json": "JSON", "ip": "IP", "uuid": "UUID", "sku": "SKU",
}

// exportedName turns an attribute name such as "_id", "created_at" or
// "userName" into an exported Go identifier.
func exportedName(s string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	prev := rune(0)
	for _, c := range s {
		switch {
		case !unicode.IsLetter(c) && !unicode.IsDigit(c):
			flush()
		case unicode.IsUpper(c) && prev != 0 && unicode.IsLower(prev):
			flush()
			cur = append(cur, c)
		default:
			cur = append(cur, c)
		}
		prev = c
	}
	flush()

	var b strings.Builder
	for _, w := range words {
		if up, ok := initialisms[strings.ToLower(w)]; ok {
			b.WriteString(up)
			continue
		}
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	out := b.String()
	if out == "" {
		return "Field"
	}
	if r := []rune(out)[0]; !unicode.IsLetter(r) {
		out = "F" + out
	}
	return out
}

func isIdent(s string) bool {
	for i, c := range s {
		if !(unicode.IsLetter(c) || c == '_' || (i > 0 && unicode.IsDigit(c))) {
			return false
		}
	}
	return s != ""
}
