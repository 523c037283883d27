package alias

import (
	"reflect"
	"regexp"
	"strings"
)

// TypeDescription is the structural view of a type used by codecs that
// address methods by name.
type TypeDescription struct {
	QualifiedName string
	MethodNames   []string
}

// AccessorLister is implemented by types whose property accessors do not
// follow the Get/Set naming convention. Accessors returns the method names to
// leave out of a description.
type AccessorLister interface {
	Accessors() []string
}

var (
	methodName = regexp.MustCompile(`^[a-zA-Z_]`)

	// methods of the interfaces above describe the type, they are not part
	// of it
	hookMethods = map[string]bool{
		"FullClassName":  true,
		"SuperclassName": true,
		"Accessors":      true,
	}
)

// DescribeType lists the methods of v's type, pointer receivers included.
// Property accessors are left out: every SetX together with the X or GetX it
// pairs with, any GetX taking no arguments, and anything AccessorLister names.
func DescribeType(v interface{}) (*TypeDescription, error) {
	name, err := QualifiedClassName(v)
	if err != nil {
		return nil, err
	}

	t := typeOf(v)
	if t.Kind() != reflect.Interface {
		t = reflect.PtrTo(t)
	}
	excluded := make(map[string]bool)
	if l, ok := accessorLister(v, t); ok {
		for _, a := range l.Accessors() {
			excluded[a] = true
		}
	}

	methods := make(map[string]reflect.Method, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		methods[m.Name] = m
	}
	for n, m := range methods {
		if strings.HasPrefix(n, "Set") && len(n) > 3 {
			excluded[n] = true
			excluded[n[3:]] = true
			excluded["Get"+n[3:]] = true
		}
		if strings.HasPrefix(n, "Get") && len(n) > 3 && m.Type.NumIn() == numReceiverIn(t) {
			excluded[n] = true
		}
	}

	desc := &TypeDescription{
		QualifiedName: name,
		MethodNames:   []string{},
	}
	for i := 0; i < t.NumMethod(); i++ {
		n := t.Method(i).Name
		if !methodName.MatchString(n) || excluded[n] || hookMethods[n] {
			continue
		}
		desc.MethodNames = append(desc.MethodNames, n)
	}
	return desc, nil
}

// numReceiverIn is the input count of a method with no arguments. Method
// types of concrete types include the receiver, interface ones do not.
func numReceiverIn(t reflect.Type) int {
	if t.Kind() == reflect.Interface {
		return 0
	}
	return 1
}

func accessorLister(v interface{}, t reflect.Type) (AccessorLister, bool) {
	if l, ok := v.(AccessorLister); ok {
		if rv := reflect.ValueOf(v); rv.Kind() != reflect.Ptr || !rv.IsNil() {
			return l, true
		}
	}
	if t.Kind() == reflect.Ptr && t.Implements(accessorListerType) {
		return reflect.New(t.Elem()).Interface().(AccessorLister), true
	}
	return nil, false
}

var accessorListerType = reflect.TypeOf((*AccessorLister)(nil)).Elem()
