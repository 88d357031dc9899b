package inferskema

import (
	"math/big"
	"reflect"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// walker carries per-call state through the recursion. A walker is never
// shared between calls.
type walker struct {
	opt      Options
	rules    ruleMask
	depth    int
	optional map[string]struct{}
	active   map[visitKey]struct{}
}

// visitKey identifies a map, slice or struct pointer currently being
// descended into. Slices sharing a backing array differ by length.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func newWalker(opt Options) *walker {
	w := &walker{opt: opt, rules: maskOf(opt.DecimalRules), active: map[visitKey]struct{}{}}
	if len(opt.OptionalAttributes) > 0 {
		w.optional = make(map[string]struct{}, len(opt.OptionalAttributes))
		for _, name := range opt.OptionalAttributes {
			w.optional[name] = struct{}{}
		}
	}
	return w
}

// typeOf classifies v. Checks run in a fixed order and the first match wins;
// the decimal policy runs before the generic String/Number checks.
func (w *walker) typeOf(v any, path string) (Type, error) {
	if isAbsent(v) {
		return scalar(KindMixed), nil
	}
	if _, ok := matchDecimalRule(v, w.rules); ok {
		return scalar(KindDecimal128), nil
	}
	switch x := v.(type) {
	case string:
		return scalar(KindString), nil
	case json.Number, *big.Int, *big.Float, *big.Rat, big.Int, big.Float, big.Rat,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return scalar(KindNumber), nil
	case time.Time, primitive.DateTime, primitive.Timestamp:
		return scalar(KindDate), nil
	case []byte, primitive.Binary:
		return scalar(KindBuffer), nil
	case bool:
		return scalar(KindBoolean), nil
	case primitive.ObjectID:
		return scalar(KindObjectID), nil
	case primitive.A:
		return w.sequence(reflect.ValueOf(x), path)
	case primitive.Decimal128:
		return scalar(KindDecimal128), nil
	case Map:
		return scalar(KindMap), nil
	case primitive.D:
		return w.nested(x, path)
	}
	return w.typeOfValue(reflect.ValueOf(v), path)
}

// typeOfValue handles named types and pointers by their reflect kind, keeping
// the same order as typeOf.
func (w *walker) typeOfValue(rv reflect.Value, path string) (Type, error) {
	if rv.Kind() == reflect.Pointer {
		elem := rv.Elem()
		if elem.Kind() == reflect.Struct && !isValueStruct(elem.Type()) {
			return w.nested(rv.Interface(), path)
		}
		return w.typeOf(elem.Interface(), path)
	}
	switch rv.Kind() {
	case reflect.String:
		return scalar(KindString), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return scalar(KindNumber), nil
	case reflect.Bool:
		return scalar(KindBoolean), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return scalar(KindBuffer), nil
		}
		return w.sequence(rv, path)
	case reflect.Map:
		if isObjectMap(rv.Type()) {
			return w.nested(rv.Interface(), path)
		}
		return scalar(KindMap), nil
	case reflect.Struct:
		return w.nested(rv.Interface(), path)
	}
	return scalar(KindMixed), nil
}

// isValueStruct reports struct types that stand for a single value and must
// not be walked as objects.
func isValueStruct(t reflect.Type) bool {
	switch t {
	case timeType, binaryType, decimalType, timestampType, bigIntType, bigFloatType, bigRatType:
		return true
	}
	return false
}

var (
	timeType      = reflect.TypeOf(time.Time{})
	binaryType    = reflect.TypeOf(primitive.Binary{})
	decimalType   = reflect.TypeOf(primitive.Decimal128{})
	timestampType = reflect.TypeOf(primitive.Timestamp{})
	bigIntType    = reflect.TypeOf(big.Int{})
	bigFloatType  = reflect.TypeOf(big.Float{})
	bigRatType    = reflect.TypeOf(big.Rat{})
)

// sequence types an ordered collection. Untyped unless StronglyTypeArrays is
// set and the collection is non-empty.
func (w *walker) sequence(rv reflect.Value, path string) (Type, error) {
	if rv.Len() == 0 || !w.opt.StronglyTypeArrays {
		return &Array{}, nil
	}
	var elem Type
	err := w.enter(rv, path, func() error {
		elemPath := path + "[]"
		for i := 0; i < rv.Len(); i++ {
			t, err := w.typeOf(rv.Index(i).Interface(), elemPath)
			if err != nil {
				return err
			}
			if i == 0 {
				elem = t
				continue
			}
			if !Equal(elem, t) {
				// heterogeneous collections are not partially typed
				elem = scalar(KindMixed)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Array{Elem: elem}, nil
}

// nested descends into an object-shaped value and returns its sub-tree.
func (w *walker) nested(v any, path string) (Type, error) {
	var obj *Object
	err := w.enter(reflect.ValueOf(v), path, func() error {
		var err error
		obj, err = w.object(v, path, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// enter guards one level of descent with the depth limit and the cycle check.
func (w *walker) enter(rv reflect.Value, path string, fn func() error) error {
	if w.opt.MaxDepth > 0 && w.depth >= w.opt.MaxDepth {
		return maxDepthExceeded(path, w.opt.MaxDepth)
	}
	release, cyclic := w.track(rv)
	if cyclic {
		return cyclicStructure(path)
	}
	defer release()
	w.depth++
	defer func() { w.depth-- }()
	return fn()
}

// track marks rv as being descended into. cyclic is true when rv is already
// on the current descent path.
func (w *walker) track(rv reflect.Value) (release func(), cyclic bool) {
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice:
		if p := rv.Pointer(); p != 0 {
			key := visitKey{typ: rv.Type(), ptr: p}
			if rv.Kind() == reflect.Slice {
				key.len = rv.Len()
			}
			if _, seen := w.active[key]; seen {
				return nil, true
			}
			w.active[key] = struct{}{}
			return func() { delete(w.active, key) }, false
		}
	}
	return func() {}, false
}
