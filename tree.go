package inferskema

// Type is a node of the schema-description tree.
type Type interface {
	Kind() Kind
}

// Scalar is a terminal field type. It never carries KindArray or KindObject.
type Scalar struct {
	K Kind
}

func (s *Scalar) Kind() Kind { return s.K }

// Array is a collection. Elem is nil for untyped collections; otherwise it is
// the single element type shared by every element (Mixed when heterogeneous).
type Array struct {
	Elem Type
}

func (a *Array) Kind() Kind { return KindArray }

// Typed reports whether the collection carries an element type.
func (a *Array) Typed() bool { return a.Elem != nil }

// Object is a nested object; the root of every inferred tree is an Object.
type Object struct {
	Fields []Field
}

func (o *Object) Kind() Kind { return KindObject }

// Field returns the descriptor named name.
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the attribute names in enumeration order.
func (o *Object) Names() []string {
	out := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		out[i] = f.Name
	}
	return out
}

// Field describes a single attribute.
type Field struct {
	Name     string
	Type     Type
	Required bool
	// Default is the caller supplied default; meaningful only when
	// HasDefault is set.
	Default    any
	HasDefault bool
}

// Equal reports whether a and b describe the same structure. Field names,
// order, required flags and nested types are compared; defaults are not.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Scalar:
		_, ok := b.(*Scalar)
		return ok
	case *Array:
		y, ok := b.(*Array)
		return ok && Equal(x.Elem, y.Elem)
	case *Object:
		y, ok := b.(*Object)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			fx, fy := x.Fields[i], y.Fields[i]
			if fx.Name != fy.Name || fx.Required != fy.Required || !Equal(fx.Type, fy.Type) {
				return false
			}
		}
		return true
	}
	return false
}

func scalar(k Kind) Type { return &Scalar{K: k} }
