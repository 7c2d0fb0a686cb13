package minilang

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/minilang/internal/evaluator"
	"github.com/funvibe/minilang/internal/typesystem"
)

// Marshaller handles conversion between Go values and language objects.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

var objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()

// ToValue converts a Go value to an Object. Numbers of any Go kind
// become Number, slices become List and maps become Dict.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.NIL, nil
	}
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Number{Value: float64(v.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &evaluator.Number{Value: float64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Number{Value: v.Float()}, nil
	case reflect.Bool:
		return &evaluator.Boolean{Value: v.Bool()}, nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Map:
		return m.mapToDict(v)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return evaluator.NIL, nil
		}
		return m.ToValue(v.Elem().Interface())
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", val)
	}
}

func (m *Marshaller) sliceToList(v reflect.Value) (*evaluator.List, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return &evaluator.List{Elements: elements}, nil
}

// mapToDict inserts entries in key order so the result does not depend on
// Go's map iteration order.
func (m *Marshaller) mapToDict(v reflect.Value) (*evaluator.Dict, error) {
	type entry struct {
		key, value evaluator.Object
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := m.ToValue(iter.Key().Interface())
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := m.ToValue(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		entries = append(entries, entry{key, val})
	}
	sort.Slice(entries, func(i, j int) bool {
		return evaluator.Repr(entries[i].key) < evaluator.Repr(entries[j].key)
	})

	dict := evaluator.NewDict()
	for _, e := range entries {
		if !dict.Set(e.key, e.value) {
			return nil, fmt.Errorf("map key %s cannot be used as a dictionary key", evaluator.Repr(e.key))
		}
	}
	return dict, nil
}

// FromValue converts an Object to a Go value. targetType is optional;
// when given, the result is converted to it.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType == objectType {
		return obj, nil
	}

	var val interface{}
	switch o := obj.(type) {
	case *evaluator.Number:
		val = o.Value
	case *evaluator.String:
		val = o.Value
	case *evaluator.Boolean:
		val = o.Value
	case *evaluator.Nil:
		return nil, nil
	case *evaluator.List:
		if !acceptsKind(targetType, reflect.Slice) {
			return nil, fmt.Errorf("cannot convert a list to %s", targetType)
		}
		return m.listToSlice(o, targetType)
	case *evaluator.Dict:
		if !acceptsKind(targetType, reflect.Map) {
			return nil, fmt.Errorf("cannot convert a dictionary to %s", targetType)
		}
		return m.dictToMap(o, targetType)
	case *evaluator.Function, *evaluator.Builtin:
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value for conversion: %s", obj.Type())
	}

	if targetType == nil || targetType.Kind() == reflect.Interface {
		return val, nil
	}
	rv := reflect.ValueOf(val)
	if !rv.Type().ConvertibleTo(targetType) {
		return nil, fmt.Errorf("cannot convert %s to %s", rv.Type(), targetType)
	}
	return rv.Convert(targetType).Interface(), nil
}

func (m *Marshaller) listToSlice(l *evaluator.List, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(l.Elements))
	for _, el := range l.Elements {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, valueOf(val, elemType))
	}
	return slice.Interface(), nil
}

func (m *Marshaller) dictToMap(d *evaluator.Dict, targetType reflect.Type) (interface{}, error) {
	mapType := reflect.TypeOf(map[interface{}]interface{}{})
	if targetType != nil && targetType.Kind() == reflect.Map {
		mapType = targetType
	} else if allStringKeys(d) {
		mapType = reflect.TypeOf(map[string]interface{}{})
	}

	result := reflect.MakeMapWithSize(mapType, d.Len())
	for _, pair := range d.Pairs() {
		key, err := m.FromValue(pair.Key, mapType.Key())
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := m.FromValue(pair.Value, mapType.Elem())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		result.SetMapIndex(valueOf(key, mapType.Key()), valueOf(val, mapType.Elem()))
	}
	return result.Interface(), nil
}

func acceptsKind(t reflect.Type, k reflect.Kind) bool {
	return t == nil || t.Kind() == k || t.Kind() == reflect.Interface
}

func allStringKeys(d *evaluator.Dict) bool {
	for _, pair := range d.Pairs() {
		if _, ok := pair.Key.(*evaluator.String); !ok {
			return false
		}
	}
	return true
}

// valueOf wraps val for storage in a slot of type t; nil becomes the zero value.
func valueOf(val interface{}, t reflect.Type) reflect.Value {
	if val == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(val)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// typeOf maps a Go type to a language type for the checker.
func typeOf(t reflect.Type) (typesystem.Type, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return typesystem.Number, nil
	case reflect.String:
		return typesystem.String, nil
	case reflect.Bool:
		return typesystem.Boolean, nil
	case reflect.Slice, reflect.Array:
		elem, err := typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return typesystem.TList{Elem: elem}, nil
	case reflect.Map:
		key, err := typeOf(t.Key())
		if err != nil {
			return nil, err
		}
		value, err := typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return typesystem.TDict{Key: key, Value: value}, nil
	case reflect.Func:
		return funcType(t)
	default:
		return nil, fmt.Errorf("no language type for Go type %s", t)
	}
}

// funcType maps a Go function type. A trailing error result is not part
// of the signature; it becomes a runtime error.
func funcType(t reflect.Type) (typesystem.TFunc, error) {
	fn := typesystem.TFunc{IsVariadic: t.IsVariadic()}
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if fn.IsVariadic && i == t.NumIn()-1 {
			in = in.Elem()
		}
		pt, err := typeOf(in)
		if err != nil {
			return typesystem.TFunc{}, fmt.Errorf("parameter %d: %w", i, err)
		}
		fn.Params = append(fn.Params, pt)
	}

	outs := t.NumOut()
	if outs > 0 && t.Out(outs-1) == errorType {
		outs--
	}
	switch outs {
	case 0:
		fn.ReturnType = typesystem.Void
	case 1:
		rt, err := typeOf(t.Out(0))
		if err != nil {
			return typesystem.TFunc{}, fmt.Errorf("result: %w", err)
		}
		fn.ReturnType = rt
	default:
		return typesystem.TFunc{}, fmt.Errorf("functions may return one value and an optional error, got %d results", t.NumOut())
	}
	return fn, nil
}
