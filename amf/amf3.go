package amf

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"amfkit/alias"
	"amfkit/errs"

	"github.com/pkg/errors"
)

// AMF3 is the AMF3 object codec. Every EncodeObject and DecodeObject call
// starts with empty reference tables.
type AMF3 struct {
	reg *alias.Registry
}

func NewAMF3(reg *alias.Registry) *AMF3 {
	return &AMF3{reg: reg}
}

func (a *AMF3) EncodeObject(v interface{}) ([]byte, error) {
	e := newAMF3Encoder(a.reg)
	if err := e.write(v, 0); err != nil {
		return nil, errors.Wrap(err, "amf3")
	}
	return e.w.buf, nil
}

func (a *AMF3) DecodeObject(b []byte) (interface{}, int, error) {
	d := &amf3Decoder{reg: a.reg, r: &reader{b: b}}
	v, err := d.read(0)
	if err != nil {
		return nil, 0, errors.Wrap(err, "amf3")
	}
	return v, d.r.pos, nil
}

type traits struct {
	className string
	dynamic   bool
	names     []string
}

func (t traits) key() string {
	return strconv.FormatBool(t.dynamic) + "\x00" + t.className + "\x00" + strings.Join(t.names, "\x00")
}

type amf3Encoder struct {
	reg     *alias.Registry
	w       writer
	strings map[string]int
	traits  map[string]int
}

func newAMF3Encoder(reg *alias.Registry) *amf3Encoder {
	return &amf3Encoder{
		reg:     reg,
		strings: make(map[string]int),
		traits:  make(map[string]int),
	}
}

func (e *amf3Encoder) write(v interface{}, depth int) error {
	if depth > maxDepth {
		return errs.Bounds("values nested deeper than %d", maxDepth)
	}
	switch val := v.(type) {
	case nil:
		e.w.byte(amf3Null)
		return nil
	case Undefined:
		e.w.byte(amf3Undefined)
		return nil
	case bool:
		if val {
			e.w.byte(amf3True)
		} else {
			e.w.byte(amf3False)
		}
		return nil
	case string:
		e.w.byte(amf3String)
		return e.writeUTF8(val)
	case float64:
		e.writeDouble(val)
		return nil
	case time.Time:
		e.w.byte(amf3Date)
		e.w.byte(0x01)
		e.w.float64(timeToMillis(val))
		return nil
	case []byte:
		e.w.byte(amf3ByteArray)
		if err := e.writeU29(uint32(len(val))<<1 | 1); err != nil {
			return err
		}
		e.w.bytes(val)
		return nil
	case ECMAArray:
		return e.writeAssociative(val, depth)
	case map[string]interface{}:
		return e.writeObject(anonymous(val), depth)
	case TypedObject:
		return e.writeObject(typed(val), depth)
	case *TypedObject:
		if val == nil {
			e.w.byte(amf3Null)
			return nil
		}
		return e.writeObject(typed(*val), depth)
	case []interface{}:
		return e.writeDense(val, depth)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			e.w.byte(amf3Null)
			return nil
		}
		return e.write(rv.Elem().Interface(), depth+1)
	case reflect.Bool:
		return e.write(rv.Bool(), depth)
	case reflect.String:
		e.w.byte(amf3String)
		return e.writeUTF8(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < MinInt29 || n > MaxInt29 {
			e.writeDouble(float64(n))
			return nil
		}
		e.w.byte(amf3Integer)
		return e.writeU29(uint32(n) & maxU29)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > MaxInt29 {
			e.writeDouble(float64(n))
			return nil
		}
		e.w.byte(amf3Integer)
		return e.writeU29(uint32(n))
	case reflect.Float32, reflect.Float64:
		e.writeDouble(rv.Float())
		return nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			e.w.byte(amf3Null)
			return nil
		}
		return e.writeDense(sequence(rv), depth)
	case reflect.Map:
		m, ok := mapObject(rv)
		if !ok {
			return errs.Unsupported("cannot encode %s, keys must be strings", rv.Type())
		}
		return e.writeObject(anonymous(m), depth)
	case reflect.Struct:
		obj, err := structObject(rv)
		if err != nil {
			return err
		}
		return e.writeObject(obj, depth)
	}
	return errs.Unsupported("cannot encode %T", v)
}

// writeU29 writes v in one to four bytes. The first three carry seven bits
// each behind a continuation flag, the fourth carries a full eight.
func (e *amf3Encoder) writeU29(v uint32) error {
	switch {
	case v <= 0x7f:
		e.w.byte(byte(v))
	case v <= 0x3fff:
		e.w.byte(byte(v>>7) | 0x80)
		e.w.byte(byte(v) & 0x7f)
	case v <= 0x1fffff:
		e.w.byte(byte(v>>14) | 0x80)
		e.w.byte(byte(v>>7)&0x7f | 0x80)
		e.w.byte(byte(v) & 0x7f)
	case v <= maxU29:
		e.w.byte(byte(v>>22) | 0x80)
		e.w.byte(byte(v>>15)&0x7f | 0x80)
		e.w.byte(byte(v>>8)&0x7f | 0x80)
		e.w.byte(byte(v))
	default:
		return errs.Bounds("%d does not fit 29 bits", v)
	}
	return nil
}

func (e *amf3Encoder) writeDouble(v float64) {
	e.w.byte(amf3Double)
	e.w.float64(v)
}

// writeUTF8 writes s inline on first use and as a string reference after
// that. The empty string is never referenced.
func (e *amf3Encoder) writeUTF8(s string) error {
	if s == "" {
		e.w.byte(0x01)
		return nil
	}
	if idx, ok := e.strings[s]; ok {
		return e.writeU29(uint32(idx) << 1)
	}
	if len(s) > maxU29>>1 {
		return errs.Bounds("string of %d bytes", len(s))
	}
	e.strings[s] = len(e.strings)
	if err := e.writeU29(uint32(len(s))<<1 | 1); err != nil {
		return err
	}
	e.w.bytes([]byte(s))
	return nil
}

func (e *amf3Encoder) writeDense(values []interface{}, depth int) error {
	e.w.byte(amf3Array)
	if err := e.writeU29(uint32(len(values))<<1 | 1); err != nil {
		return err
	}
	e.w.byte(0x01)
	for i, v := range values {
		if err := e.write(v, depth+1); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

func (e *amf3Encoder) writeAssociative(m ECMAArray, depth int) error {
	e.w.byte(amf3Array)
	e.w.byte(0x01)
	for _, k := range sortedKeys(m) {
		if k == "" {
			return errs.InvalidArgument("empty associative key")
		}
		if err := e.writeUTF8(k); err != nil {
			return err
		}
		if err := e.write(m[k], depth+1); err != nil {
			return errors.Wrapf(err, "key %q", k)
		}
	}
	e.w.byte(0x01)
	return nil
}

// writeObject writes anonymous objects as dynamic and typed ones as sealed.
// Traits seen earlier in the same encoding are sent by reference.
func (e *amf3Encoder) writeObject(obj *object, depth int) error {
	t := traits{
		className: wireAlias(e.reg, obj.className),
		dynamic:   obj.className == "",
	}
	if !t.dynamic {
		t.names = obj.names
	}

	e.w.byte(amf3Object)
	if idx, ok := e.traits[t.key()]; ok {
		if err := e.writeU29(uint32(idx)<<2 | 0x01); err != nil {
			return err
		}
	} else {
		if len(t.names) > maxU29>>4 {
			return errs.Bounds("%d sealed members", len(t.names))
		}
		e.traits[t.key()] = len(e.traits)
		flags := uint32(len(t.names))<<4 | 0x03
		if t.dynamic {
			flags |= 0x08
		}
		if err := e.writeU29(flags); err != nil {
			return err
		}
		if err := e.writeUTF8(t.className); err != nil {
			return err
		}
		for _, name := range t.names {
			if err := e.writeUTF8(name); err != nil {
				return err
			}
		}
	}

	for _, name := range t.names {
		if err := e.write(obj.values[name], depth+1); err != nil {
			return errors.Wrapf(err, "member %q", name)
		}
	}
	if !t.dynamic {
		return nil
	}
	for _, name := range obj.names {
		if name == "" {
			return errs.InvalidArgument("empty member name")
		}
		if err := e.writeUTF8(name); err != nil {
			return err
		}
		if err := e.write(obj.values[name], depth+1); err != nil {
			return errors.Wrapf(err, "member %q", name)
		}
	}
	e.w.byte(0x01)
	return nil
}

type amf3Decoder struct {
	reg     *alias.Registry
	r       *reader
	strings []string
	objects []interface{}
	traits  []traits
}

func (d *amf3Decoder) read(depth int) (interface{}, error) {
	if depth > maxDepth {
		return nil, errs.Bounds("values nested deeper than %d", maxDepth)
	}
	marker, err := d.r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "error reading marker")
	}

	switch marker {
	case amf3Undefined:
		return Undefined{}, nil
	case amf3Null:
		return nil, nil
	case amf3False:
		return false, nil
	case amf3True:
		return true, nil
	case amf3Integer:
		u, err := d.readU29()
		if err != nil {
			return nil, err
		}
		if u&0x10000000 != 0 {
			return int(u) - (1 << 29), nil
		}
		return int(u), nil
	case amf3Double:
		return d.r.float64()
	case amf3String:
		return d.readUTF8()
	case amf3XMLDoc, amf3XML:
		return d.readXML()
	case amf3Date:
		return d.readDate()
	case amf3Array:
		return d.readArray(depth)
	case amf3Object:
		return d.readObject(depth)
	case amf3ByteArray:
		return d.readByteArray()
	case amf3VectorInt, amf3VectorUint, amf3VectorDouble, amf3VectorObject, amf3Dictionary:
		return nil, errs.Unsupported("marker 0x%02x", marker)
	}
	return nil, errs.Unsupported("unknown marker 0x%02x", marker)
}

func (d *amf3Decoder) readU29() (uint32, error) {
	var v uint32
	for i := 0; i < 3; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "error reading U29")
		}
		if b&0x80 == 0 {
			return v<<7 | uint32(b), nil
		}
		v = v<<7 | uint32(b&0x7f)
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, errors.Wrap(err, "error reading U29")
	}
	return v<<8 | uint32(b), nil
}

// readHeader reads the U29 that opens strings and complex values. ok is
// false when it is a reference, in which case n is the table index.
func (d *amf3Decoder) readHeader() (n int, ok bool, err error) {
	u, err := d.readU29()
	if err != nil {
		return 0, false, err
	}
	return int(u >> 1), u&1 == 1, nil
}

func (d *amf3Decoder) object(idx int) (interface{}, error) {
	if idx >= len(d.objects) {
		return nil, errors.Errorf("object reference %d out of %d", idx, len(d.objects))
	}
	return d.objects[idx], nil
}

func (d *amf3Decoder) remaining() int {
	return len(d.r.b) - d.r.pos
}

func (d *amf3Decoder) readUTF8() (string, error) {
	n, inline, err := d.readHeader()
	if err != nil {
		return "", err
	}
	if !inline {
		if n >= len(d.strings) {
			return "", errors.Errorf("string reference %d out of %d", n, len(d.strings))
		}
		return d.strings[n], nil
	}
	b, err := d.r.next(n)
	if err != nil {
		return "", err
	}
	s := string(b)
	if s != "" {
		d.strings = append(d.strings, s)
	}
	return s, nil
}

func (d *amf3Decoder) readXML() (interface{}, error) {
	n, inline, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	if !inline {
		return d.object(n)
	}
	b, err := d.r.next(n)
	if err != nil {
		return nil, err
	}
	d.objects = append(d.objects, string(b))
	return string(b), nil
}

func (d *amf3Decoder) readDate() (interface{}, error) {
	n, inline, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	if !inline {
		return d.object(n)
	}
	ms, err := d.r.float64()
	if err != nil {
		return nil, err
	}
	t := millisToTime(ms)
	d.objects = append(d.objects, t)
	return t, nil
}

func (d *amf3Decoder) readByteArray() (interface{}, error) {
	n, inline, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	if !inline {
		return d.object(n)
	}
	b, err := d.r.next(n)
	if err != nil {
		return nil, err
	}
	out := append([]byte{}, b...)
	d.objects = append(d.objects, out)
	return out, nil
}

// readArray returns []interface{} for dense arrays and ECMAArray when there
// is an associative part. Dense entries of a mixed array are keyed by index.
func (d *amf3Decoder) readArray(depth int) (interface{}, error) {
	n, inline, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	if !inline {
		return d.object(n)
	}
	if n > d.remaining() {
		return nil, errors.Errorf("array of %d elements overruns input", n)
	}

	idx := len(d.objects)
	assoc := make(ECMAArray)
	d.objects = append(d.objects, assoc)
	for {
		key, err := d.readUTF8()
		if err != nil {
			return nil, errors.Wrap(err, "error reading associative key")
		}
		if key == "" {
			break
		}
		if assoc[key], err = d.read(depth + 1); err != nil {
			return nil, errors.Wrapf(err, "key %q", key)
		}
	}

	// no keys reads as a dense array, empty ECMAArrays included
	if len(assoc) > 0 {
		for i := 0; i < n; i++ {
			if assoc[strconv.Itoa(i)], err = d.read(depth + 1); err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
		}
		return assoc, nil
	}

	dense := make([]interface{}, n)
	d.objects[idx] = dense
	for i := range dense {
		if dense[i], err = d.read(depth + 1); err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
	}
	return dense, nil
}

// readObject returns map[string]interface{} for anonymous objects and
// TypedObject for everything with a class name.
func (d *amf3Decoder) readObject(depth int) (interface{}, error) {
	u, err := d.readU29()
	if err != nil {
		return nil, err
	}
	if u&0x01 == 0 {
		return d.object(int(u >> 1))
	}

	var t traits
	switch {
	case u&0x02 == 0:
		idx := int(u >> 2)
		if idx >= len(d.traits) {
			return nil, errors.Errorf("traits reference %d out of %d", idx, len(d.traits))
		}
		t = d.traits[idx]
	case u&0x04 != 0:
		return nil, errs.Unsupported("externalizable objects")
	default:
		t.dynamic = u&0x08 != 0
		count := int(u >> 4)
		if count > d.remaining() {
			return nil, errors.Errorf("%d sealed members overrun input", count)
		}
		if t.className, err = d.readUTF8(); err != nil {
			return nil, errors.Wrap(err, "error reading class name")
		}
		t.names = make([]string, count)
		for i := range t.names {
			if t.names[i], err = d.readUTF8(); err != nil {
				return nil, errors.Wrap(err, "error reading member name")
			}
		}
		d.traits = append(d.traits, t)
	}

	members := make(map[string]interface{})
	var result interface{} = members
	if t.className != "" {
		result = TypedObject{ClassName: className(d.reg, t.className), Members: members}
	}
	d.objects = append(d.objects, result)

	for _, name := range t.names {
		if members[name], err = d.read(depth + 1); err != nil {
			return nil, errors.Wrapf(err, "member %q", name)
		}
	}
	if !t.dynamic {
		return result, nil
	}
	for {
		name, err := d.readUTF8()
		if err != nil {
			return nil, errors.Wrap(err, "error reading dynamic member name")
		}
		if name == "" {
			return result, nil
		}
		if members[name], err = d.read(depth + 1); err != nil {
			return nil, errors.Wrapf(err, "member %q", name)
		}
	}
}
