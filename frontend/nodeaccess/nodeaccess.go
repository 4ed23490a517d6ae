// Package nodeaccess reads properties off syntax nodes it knows nothing
// about, by probing for a getter method or an exported field by name.
// It lets the same inference code run over nodes from any parser, and over
// plain structs in tests.
package nodeaccess

import "reflect"

// Property returns the value of the getter method if node has one that
// takes no arguments, else the value of the named exported field. Pointers
// are followed for fields. The getter is preferred when both exist and is
// called on every access.
func Property(node any, getter, field string) (any, bool) {
	if node == nil {
		return nil, false
	}
	v := reflect.ValueOf(node)
	if isNilValue(v) {
		return nil, false
	}
	if getter != "" {
		if m := v.MethodByName(getter); m.IsValid() {
			mt := m.Type()
			if mt.NumIn() == 0 && mt.NumOut() >= 1 {
				out := m.Call(nil)[0]
				if isNilValue(out) {
					return nil, true
				}
				return out.Interface(), true
			}
		}
	}
	if field == "" {
		return nil, false
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	f := v.FieldByName(field)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	if isNilValue(f) {
		return nil, true
	}
	return f.Interface(), true
}

// ListProperty returns the getter's result if it is a slice or array, else
// the field's value if it is one, else nil. Nil elements are dropped.
func ListProperty(node any, getter, field string) []any {
	if node == nil || isNilValue(reflect.ValueOf(node)) {
		return nil
	}
	if getter != "" {
		if list, ok := asList(methodOnly(node, getter)); ok {
			return list
		}
	}
	if field != "" {
		if val, ok := Property(node, "", field); ok {
			if list, ok := asList(val); ok {
				return list
			}
		}
	}
	return nil
}

// HasProperty reports whether node has the getter or field, whatever its
// current value.
func HasProperty(node any, getter, field string) bool {
	_, ok := Property(node, getter, field)
	return ok
}

// StringProperty is Property restricted to string values. Values with a
// String or Text method, such as tokens, are accepted too.
func StringProperty(node any, getter, field string) (string, bool) {
	val, ok := Property(node, getter, field)
	if !ok || val == nil {
		return "", false
	}
	switch s := val.(type) {
	case string:
		return s, true
	case interface{ GetText() string }:
		return s.GetText(), true
	case interface{ Text() string }:
		return s.Text(), true
	case interface{ String() string }:
		return s.String(), true
	}
	if v := reflect.ValueOf(val); v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

func methodOnly(node any, getter string) any {
	m := reflect.ValueOf(node).MethodByName(getter)
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() < 1 {
		return nil
	}
	out := m.Call(nil)[0]
	if isNilValue(out) {
		return nil
	}
	return out.Interface()
}

func asList(val any) ([]any, bool) {
	if val == nil {
		return nil, false
	}
	v := reflect.ValueOf(val)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, 0, v.Len())
	for i := range v.Len() {
		elem := v.Index(i)
		if isNilValue(elem) {
			continue
		}
		out = append(out, elem.Interface())
	}
	return out, true
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
