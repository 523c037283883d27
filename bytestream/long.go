package bytestream

import (
	"math"

	"amfkit/errs"
)

const (
	twoTo63 = 9223372036854775808.0
	twoTo64 = 18446744073709551616.0
)

// ReadLong reads a signed 64-bit integer as high * 2^32 + low. The high half
// comes first on big endian streams.
func (s *Stream) ReadLong() (int64, error) {
	hi, lo, err := s.readHalves()
	if err != nil {
		return 0, err
	}
	return int64(int32(hi))<<32 | int64(lo), nil
}

func (s *Stream) ReadUnsignedLong() (uint64, error) {
	hi, lo, err := s.readHalves()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (s *Stream) WriteLong(v int64) error {
	return s.writeHalves(uint32(v>>32), uint32(v))
}

func (s *Stream) WriteUnsignedLong(v uint64) error {
	return s.writeHalves(uint32(v>>32), uint32(v))
}

// WriteLongNumber writes an AMF number as a signed 64-bit integer. v must be
// integral and inside [-2^63, 2^63-1].
func (s *Stream) WriteLongNumber(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return errs.InvalidArgument("%v is not an integer", v)
	}
	if v < -twoTo63 || v >= twoTo63 {
		return errs.Bounds("%v is outside the signed 64-bit range", v)
	}
	return s.WriteLong(int64(v))
}

// WriteUnsignedLongNumber writes an AMF number as an unsigned 64-bit integer.
// v must be integral and inside [0, 2^64-1].
func (s *Stream) WriteUnsignedLongNumber(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return errs.InvalidArgument("%v is not an integer", v)
	}
	if v < 0 || v >= twoTo64 {
		return errs.Bounds("%v is outside the unsigned 64-bit range", v)
	}
	return s.WriteUnsignedLong(uint64(v))
}

func (s *Stream) readHalves() (hi uint32, lo uint32, err error) {
	b, err := s.advance(8)
	if err != nil {
		return 0, 0, err
	}
	first, second := s.order.Uint32(b[:4]), s.order.Uint32(b[4:])
	if s.endian == LittleEndian {
		return second, first, nil
	}
	return first, second, nil
}

func (s *Stream) writeHalves(hi, lo uint32) error {
	b, err := s.advance(8)
	if err != nil {
		return err
	}
	if s.endian == LittleEndian {
		hi, lo = lo, hi
	}
	s.order.PutUint32(b[:4], hi)
	s.order.PutUint32(b[4:], lo)
	return nil
}
