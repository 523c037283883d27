package amf

import (
	"math"
	"reflect"
	"time"

	"amfkit/alias"
	"amfkit/errs"

	"github.com/pkg/errors"
)

// maxDepth bounds the nesting of encoded and decoded values.
const maxDepth = 256

// AMF0 is the AMF0 object codec.
type AMF0 struct {
	reg *alias.Registry
}

func NewAMF0(reg *alias.Registry) *AMF0 {
	return &AMF0{reg: reg}
}

func (a *AMF0) EncodeObject(v interface{}) ([]byte, error) {
	e := &amf0Encoder{reg: a.reg}
	if err := e.write(v, 0); err != nil {
		return nil, errors.Wrap(err, "amf0")
	}
	return e.w.buf, nil
}

func (a *AMF0) DecodeObject(b []byte) (interface{}, int, error) {
	d := &amf0Decoder{reg: a.reg, r: &reader{b: b}}
	v, err := d.read(0)
	if err != nil {
		return nil, 0, errors.Wrap(err, "amf0")
	}
	return v, d.r.pos, nil
}

type amf0Encoder struct {
	reg *alias.Registry
	w   writer
}

func (e *amf0Encoder) write(v interface{}, depth int) error {
	if depth > maxDepth {
		return errs.Bounds("values nested deeper than %d", maxDepth)
	}
	switch val := v.(type) {
	case nil:
		e.w.byte(amf0Null)
		return nil
	case Undefined:
		e.w.byte(amf0Undefined)
		return nil
	case bool:
		e.w.byte(amf0Boolean)
		if val {
			e.w.byte(1)
		} else {
			e.w.byte(0)
		}
		return nil
	case string:
		return e.writeString(val)
	case float64:
		e.writeNumber(val)
		return nil
	case time.Time:
		e.w.byte(amf0Date)
		e.w.float64(timeToMillis(val))
		e.w.uint16(0)
		return nil
	case []byte:
		// AMF0 has no byte array, switch to AMF3 for this value
		e.w.byte(amf0AvmplusObject)
		sub := newAMF3Encoder(e.reg)
		if err := sub.write(val, depth+1); err != nil {
			return err
		}
		e.w.bytes(sub.w.buf)
		return nil
	case ECMAArray:
		e.w.byte(amf0EcmaArray)
		e.w.uint32(uint32(len(val)))
		return e.writeMembers(anonymous(val), depth)
	case map[string]interface{}:
		e.w.byte(amf0Object)
		return e.writeMembers(anonymous(val), depth)
	case TypedObject:
		return e.writeTyped(typed(val), depth)
	case *TypedObject:
		if val == nil {
			e.w.byte(amf0Null)
			return nil
		}
		return e.writeTyped(typed(*val), depth)
	case []interface{}:
		return e.writeStrictArray(val, depth)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			e.w.byte(amf0Null)
			return nil
		}
		return e.write(rv.Elem().Interface(), depth+1)
	case reflect.Bool:
		return e.write(rv.Bool(), depth)
	case reflect.String:
		return e.writeString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.writeNumber(float64(rv.Int()))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.writeNumber(float64(rv.Uint()))
		return nil
	case reflect.Float32, reflect.Float64:
		e.writeNumber(rv.Float())
		return nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			e.w.byte(amf0Null)
			return nil
		}
		return e.writeStrictArray(sequence(rv), depth)
	case reflect.Map:
		m, ok := mapObject(rv)
		if !ok {
			return errs.Unsupported("cannot encode %s, keys must be strings", rv.Type())
		}
		e.w.byte(amf0Object)
		return e.writeMembers(anonymous(m), depth)
	case reflect.Struct:
		obj, err := structObject(rv)
		if err != nil {
			return err
		}
		return e.writeTyped(obj, depth)
	}
	return errs.Unsupported("cannot encode %T", v)
}

func (e *amf0Encoder) writeNumber(v float64) {
	e.w.byte(amf0Number)
	e.w.float64(v)
}

func (e *amf0Encoder) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		if uint64(len(s)) > math.MaxUint32 {
			return errs.Bounds("string of %d bytes", len(s))
		}
		e.w.byte(amf0LongString)
		e.w.uint32(uint32(len(s)))
		e.w.bytes([]byte(s))
		return nil
	}
	e.w.byte(amf0String)
	return e.writeUTF(s)
}

func (e *amf0Encoder) writeUTF(s string) error {
	if len(s) > math.MaxUint16 {
		return errs.Bounds("name of %d bytes", len(s))
	}
	e.w.uint16(uint16(len(s)))
	e.w.bytes([]byte(s))
	return nil
}

func (e *amf0Encoder) writeTyped(obj *object, depth int) error {
	e.w.byte(amf0TypedObject)
	if err := e.writeUTF(wireAlias(e.reg, obj.className)); err != nil {
		return err
	}
	return e.writeMembers(obj, depth)
}

func (e *amf0Encoder) writeMembers(obj *object, depth int) error {
	for _, name := range obj.names {
		if name == "" {
			return errs.InvalidArgument("empty member name")
		}
		if err := e.writeUTF(name); err != nil {
			return err
		}
		if err := e.write(obj.values[name], depth+1); err != nil {
			return errors.Wrapf(err, "member %q", name)
		}
	}
	e.w.uint16(0)
	e.w.byte(amf0ObjectEnd)
	return nil
}

func (e *amf0Encoder) writeStrictArray(values []interface{}, depth int) error {
	e.w.byte(amf0StrictArray)
	e.w.uint32(uint32(len(values)))
	for i, v := range values {
		if err := e.write(v, depth+1); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

type amf0Decoder struct {
	reg  *alias.Registry
	r    *reader
	refs []interface{}
}

func (d *amf0Decoder) read(depth int) (interface{}, error) {
	if depth > maxDepth {
		return nil, errs.Bounds("values nested deeper than %d", maxDepth)
	}
	marker, err := d.r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "error reading marker")
	}

	switch marker {
	case amf0Number:
		return d.r.float64()
	case amf0Boolean:
		b, err := d.r.ReadByte()
		return b != 0, err
	case amf0String:
		return d.readUTF()
	case amf0LongString, amf0XMLDocument:
		return d.readLongUTF()
	case amf0Object:
		m := make(map[string]interface{})
		d.refs = append(d.refs, m)
		return m, d.readMembers(m, depth)
	case amf0Null, amf0Unsupported:
		return nil, nil
	case amf0Undefined:
		return Undefined{}, nil
	case amf0Reference:
		idx, err := d.r.uint16()
		if err != nil {
			return nil, err
		}
		if int(idx) >= len(d.refs) {
			return nil, errors.Errorf("reference %d out of %d objects", idx, len(d.refs))
		}
		return d.refs[idx], nil
	case amf0EcmaArray:
		// the count is only a hint, members run to the end marker
		if _, err := d.r.uint32(); err != nil {
			return nil, err
		}
		m := make(ECMAArray)
		d.refs = append(d.refs, m)
		return m, d.readMembers(m, depth)
	case amf0StrictArray:
		n, err := d.r.uint32()
		if err != nil {
			return nil, err
		}
		if int64(n) > int64(len(d.r.b)-d.r.pos) {
			return nil, errors.Errorf("strict array of %d elements overruns input", n)
		}
		values := make([]interface{}, n)
		d.refs = append(d.refs, values)
		for i := range values {
			if values[i], err = d.read(depth + 1); err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
		}
		return values, nil
	case amf0Date:
		ms, err := d.r.float64()
		if err != nil {
			return nil, err
		}
		if _, err := d.r.uint16(); err != nil {
			return nil, err
		}
		return millisToTime(ms), nil
	case amf0TypedObject:
		wire, err := d.readUTF()
		if err != nil {
			return nil, err
		}
		obj := TypedObject{ClassName: className(d.reg, wire), Members: make(map[string]interface{})}
		d.refs = append(d.refs, obj)
		return obj, d.readMembers(obj.Members, depth)
	case amf0AvmplusObject:
		sub := &amf3Decoder{reg: d.reg, r: d.r}
		return sub.read(depth + 1)
	case amf0Movieclip, amf0Recordset:
		return nil, errs.Unsupported("reserved marker 0x%02x", marker)
	case amf0ObjectEnd:
		return nil, errors.New("unexpected object end marker")
	}
	return nil, errs.Unsupported("unknown marker 0x%02x", marker)
}

func (d *amf0Decoder) readUTF() (string, error) {
	n, err := d.r.uint16()
	if err != nil {
		return "", err
	}
	b, err := d.r.next(int(n))
	return string(b), err
}

func (d *amf0Decoder) readLongUTF() (string, error) {
	n, err := d.r.uint32()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(len(d.r.b)-d.r.pos) {
		return "", errors.Errorf("long string of %d bytes overruns input", n)
	}
	b, err := d.r.next(int(n))
	return string(b), err
}

func (d *amf0Decoder) readMembers(m map[string]interface{}, depth int) error {
	for {
		key, err := d.readUTF()
		if err != nil {
			return errors.Wrap(err, "error reading member name")
		}
		if key == "" {
			end, err := d.r.ReadByte()
			if err != nil {
				return err
			}
			if end != amf0ObjectEnd {
				return errors.Errorf("expected object end marker, got 0x%02x", end)
			}
			return nil
		}
		if m[key], err = d.read(depth + 1); err != nil {
			return errors.Wrapf(err, "member %q", key)
		}
	}
}

func timeToMillis(t time.Time) float64 {
	return float64(t.Unix())*1000 + float64(t.Nanosecond())/float64(time.Millisecond)
}

func millisToTime(ms float64) time.Time {
	sec := math.Floor(ms / 1000)
	nsec := (ms - sec*1000) * float64(time.Millisecond)
	return time.Unix(int64(sec), int64(nsec)).UTC()
}
