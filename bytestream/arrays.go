package bytestream

import (
	"reflect"

	"amfkit/errs"
)

func (s *Stream) ReadByteArray(n int) ([]int8, error) {
	if err := s.checkArray(n, 1); err != nil {
		return nil, err
	}
	start := s.pos
	out := make([]int8, n)
	for i := range out {
		v, err := s.ReadInt8()
		if err != nil {
			s.pos = start
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *Stream) ReadShortArray(n int) ([]int16, error) {
	if err := s.checkArray(n, 2); err != nil {
		return nil, err
	}
	start := s.pos
	out := make([]int16, n)
	for i := range out {
		v, err := s.ReadShort()
		if err != nil {
			s.pos = start
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *Stream) ReadIntArray(n int) ([]int32, error) {
	if err := s.checkArray(n, 4); err != nil {
		return nil, err
	}
	start := s.pos
	out := make([]int32, n)
	for i := range out {
		v, err := s.ReadInt()
		if err != nil {
			s.pos = start
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// WriteByteArray writes every element of values, a slice or array of any
// integer type, as one byte.
func (s *Stream) WriteByteArray(values interface{}) error {
	return s.writeIntegers(values, 1, func(v int64) error {
		return s.WriteUnsignedByte(uint8(v))
	})
}

// WriteShortArray writes every element of values as a 16-bit integer.
func (s *Stream) WriteShortArray(values interface{}) error {
	return s.writeIntegers(values, 2, func(v int64) error {
		return s.WriteUnsignedShort(uint16(v))
	})
}

// WriteIntArray writes every element of values as a 32-bit integer.
func (s *Stream) WriteIntArray(values interface{}) error {
	return s.writeIntegers(values, 4, func(v int64) error {
		return s.WriteUnsignedInt(uint32(v))
	})
}

func (s *Stream) checkArray(n, width int) error {
	if n < 0 {
		return errs.InvalidArgument("negative array length %d", n)
	}
	return s.check(n * width)
}

// writeIntegers validates the whole sequence before the first write. An
// element must fit width bytes under either a signed or an unsigned reading.
func (s *Stream) writeIntegers(values interface{}, width int, put func(int64) error) error {
	val := reflect.ValueOf(values)
	if !val.IsValid() || (val.Kind() != reflect.Slice && val.Kind() != reflect.Array) {
		return errs.InvalidArgument("%T is not a sequence", values)
	}

	bits := uint(width * 8)
	min, max := -int64(1)<<(bits-1), int64(1)<<bits-1
	ints := make([]int64, val.Len())
	for i := range ints {
		elem := val.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		switch elem.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ints[i] = elem.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			u := elem.Uint()
			if u > uint64(max) {
				return errs.Bounds("element %d (%d) does not fit %d bytes", i, u, width)
			}
			ints[i] = int64(u)
		default:
			return errs.InvalidArgument("element %d is a %s, not an integer", i, elem.Type())
		}
		if ints[i] < min || ints[i] > max {
			return errs.Bounds("element %d (%d) does not fit %d bytes", i, ints[i], width)
		}
	}

	if err := s.check(len(ints) * width); err != nil {
		return err
	}
	for _, v := range ints {
		if err := put(v); err != nil {
			return err
		}
	}
	return nil
}
