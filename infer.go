package inferskema

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Infer derives a schema-description tree from a single sample object.
//
// The sample must be object-shaped (a bson.D, a map[string]any or bson.M, a
// struct or a pointer to one) with at least one data attribute. Types,
// functions and slices of sample objects are recognised but not supported
// (ErrNotImplemented); anything else is rejected with ErrInvalidInput.
// Errors are terminal: no partial tree is returned.
func Infer(sample any, opt Options) (*Object, error) {
	if isAbsent(sample) {
		return nil, invalidInput(InputObject)
	}
	if _, ok := sample.(reflect.Type); ok {
		return nil, notImplemented(InputClass)
	}
	rv := reflect.ValueOf(sample)
	if rv.Kind() == reflect.Func {
		return nil, notImplemented(InputFunction)
	}
	if isSampleCollection(sample) {
		return nil, notImplemented(InputArray)
	}
	if !isObjectShaped(sample) {
		return nil, invalidInput(InputObject)
	}

	w := newWalker(opt)
	release, _ := w.track(rv)
	defer release()
	obj, err := w.object(sample, "", true)
	if err != nil {
		return nil, err
	}
	if len(obj.Fields) == 0 {
		return nil, invalidInput(InputObject)
	}
	return obj, nil
}

// object builds one level of the tree. Optional attributes and defaults only
// apply at the top level.
func (w *walker) object(v any, path string, top bool) (*Object, error) {
	attrs, _ := attributesOf(v)
	obj := &Object{Fields: make([]Field, 0, len(attrs))}
	for _, a := range attrs {
		sub := joinPath(path, a.name)
		t, err := w.typeOf(a.value, sub)
		if err != nil {
			return nil, err
		}
		f := Field{Name: a.name, Type: t, Required: true}
		if top {
			if _, ok := w.optional[a.name]; ok {
				f.Required = false
			}
			if def, ok := w.opt.DefaultValues[a.name]; ok {
				f.Default, f.HasDefault = def, true
			}
		}
		obj.Fields = append(obj.Fields, f)
	}
	return obj, nil
}

// isObjectShaped reports whether v classifies as a nested object: documents,
// string-keyed interface maps and structs that are not value types.
func isObjectShaped(v any) bool {
	switch v.(type) {
	case primitive.D:
		return true
	case Map, primitive.A, primitive.ObjectID, primitive.Decimal128, primitive.Binary,
		primitive.DateTime, primitive.Timestamp:
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		return isObjectMap(rv.Type())
	case reflect.Struct:
		return !isValueStruct(rv.Type())
	}
	return false
}

// isSampleCollection reports a non-empty slice whose first element is a
// sample object.
func isSampleCollection(v any) bool {
	if _, ok := v.(primitive.D); ok {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	if rv.Len() == 0 {
		return false
	}
	first := rv.Index(0).Interface()
	return !isAbsent(first) && isObjectShaped(first)
}
