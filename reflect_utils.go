package inferskema

import (
	"reflect"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// attribute name.
// Priority: bson tag name > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	for _, key := range []string{"bson", "json"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		if tag == "-" {
			return "-"
		}
		if i := strings.IndexByte(tag, ','); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	return sf.Name
}

type attribute struct {
	name  string
	value any
}

var (
	mapType       = reflect.TypeOf(Map(nil))
	emptyIfaceTyp = reflect.TypeOf((*any)(nil)).Elem()
)

// attributesOf enumerates the data attributes of an object-shaped value.
// Functions and channels are skipped. ok is false when v is not object-shaped.
func attributesOf(v any) (attrs []attribute, ok bool) {
	switch x := v.(type) {
	case primitive.D:
		attrs = make([]attribute, 0, len(x))
		for _, e := range x {
			if !isCallable(e.Value) {
				attrs = append(attrs, attribute{name: e.Key, value: e.Value})
			}
		}
		return attrs, true
	case Map:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if !isObjectMap(rv.Type()) {
			return nil, false
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		attrs = make([]attribute, 0, len(keys))
		for _, k := range keys {
			val := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
			if !isCallable(val) {
				attrs = append(attrs, attribute{name: k, value: val})
			}
		}
		return attrs, true
	case reflect.Struct:
		return structAttributes(rv, nil), true
	}
	return nil, false
}

func structAttributes(rv reflect.Value, dst []attribute) []attribute {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if sf.Anonymous && ResolveStructKey(sf) == sf.Name {
			// untagged embedded structs are flattened
			ev := fv
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				dst = structAttributes(ev, dst)
				continue
			}
		}
		name := ResolveStructKey(sf)
		if name == "-" {
			continue
		}
		switch sf.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}
		val := fv.Interface()
		if isCallable(val) {
			continue
		}
		dst = append(dst, attribute{name: name, value: val})
	}
	return dst
}

// isObjectMap reports whether maps of type t are documents (string keys,
// interface values) rather than key-value maps.
func isObjectMap(t reflect.Type) bool {
	return t != mapType && t.Key().Kind() == reflect.String && t.Elem() == emptyIfaceTyp
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// isAbsent reports nil values, typed nil pointers and the BSON null markers.
func isAbsent(v any) bool {
	switch v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Map, reflect.Slice:
		// nil collections carry no value; empty ones do
		return rv.IsNil()
	}
	return false
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
