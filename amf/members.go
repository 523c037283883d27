package amf

import (
	"reflect"
	"sort"
	"strings"

	"amfkit/alias"
)

// object is the encoder's view of anything written as an AMF object: its
// class name (empty for anonymous objects) and its members in wire order.
type object struct {
	className string
	names     []string
	values    map[string]interface{}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func anonymous(m map[string]interface{}) *object {
	return &object{names: sortedKeys(m), values: m}
}

func typed(t TypedObject) *object {
	return &object{className: t.ClassName, names: sortedKeys(t.Members), values: t.Members}
}

// structObject lists the exported fields of v in declaration order. An amf
// tag renames a field, "-" skips it, and embedded structs are flattened.
func structObject(v reflect.Value) (*object, error) {
	name, err := alias.QualifiedClassName(v.Interface())
	if err != nil {
		return nil, err
	}
	obj := &object{className: name, values: make(map[string]interface{})}
	collectFields(v, obj)
	return obj, nil
}

func collectFields(v reflect.Value, obj *object) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if _, tagged := f.Tag.Lookup("amf"); !tagged {
				collectFields(fv, obj)
				continue
			}
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("amf"); ok {
			tag = strings.Split(tag, ",")[0]
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if _, dup := obj.values[name]; !dup {
			obj.names = append(obj.names, name)
		}
		obj.values[name] = fv.Interface()
	}
}

// mapObject converts a map with string keys of any value type.
func mapObject(v reflect.Value) (map[string]interface{}, bool) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]interface{}, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

// sequence converts any slice or array to []interface{}.
func sequence(v reflect.Value) []interface{} {
	out := make([]interface{}, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out
}
