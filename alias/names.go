package alias

import (
	"reflect"
	"regexp"

	"amfkit/errs"
)

// RootClassName is the superclass of every value without a more specific
// base.
const RootClassName = "Object"

// ClassDescriber is implemented by values that carry their own class
// metadata. FullClassName returns a dotted name such as "com.example.Foo".
type ClassDescriber interface {
	FullClassName() string
}

// Extender is implemented by values that name their superclass explicitly.
type Extender interface {
	SuperclassName() string
}

var (
	lastSegment   = regexp.MustCompile(`\.([^.]+)$`)
	describerType = reflect.TypeOf((*ClassDescriber)(nil)).Elem()
)

// QualifiedClassName returns the qualified name of v. Described classes have
// their last dot turned into "::", so "com.example.Foo" becomes
// "com.example::Foo". Other values use the import path and name of their
// type, or the type string for unnamed types.
func QualifiedClassName(v interface{}) (string, error) {
	if v == nil {
		return "", errs.InvalidArgument("nil value")
	}
	t := typeOf(v)
	d, ok := v.(ClassDescriber)
	if rv := reflect.ValueOf(v); !ok || (rv.Kind() == reflect.Ptr && rv.IsNil()) {
		d, ok = describer(t)
	}
	if ok {
		if full := d.FullClassName(); full != "" {
			return lastSegment.ReplaceAllString(full, "::$1"), nil
		}
	}
	return typeName(t), nil
}

// QualifiedSuperclassName returns the qualified name of v's base. A struct's
// base is its first embedded struct field; anything else resolves to
// RootClassName.
func QualifiedSuperclassName(v interface{}) (string, error) {
	if v == nil {
		return "", errs.InvalidArgument("nil value")
	}
	if e, ok := v.(Extender); ok {
		return e.SuperclassName(), nil
	}
	t := typeOf(v)
	if t.Kind() != reflect.Struct || t.NumField() == 0 {
		return RootClassName, nil
	}
	f := t.Field(0)
	if !f.Anonymous {
		return RootClassName, nil
	}
	base := f.Type
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return RootClassName, nil
	}
	return QualifiedClassName(base)
}

// typeOf returns the dereferenced type of v. A reflect.Type is used as is.
func typeOf(v interface{}) reflect.Type {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// describer returns a fresh *t when it carries class metadata. Typed nil
// pointers and reflect.Type values reach their metadata this way.
func describer(t reflect.Type) (ClassDescriber, bool) {
	if t.Kind() == reflect.Interface || !reflect.PtrTo(t).Implements(describerType) {
		return nil, false
	}
	return reflect.New(t).Interface().(ClassDescriber), true
}

func typeName(t reflect.Type) string {
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
