package bytestream

import (
	"math"

	"amfkit/errs"
)

func (s *Stream) ReadBoolean() (bool, error) {
	b, err := s.advance(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (s *Stream) WriteBoolean(v bool) error {
	b, err := s.advance(1)
	if err != nil {
		return err
	}
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
	return nil
}

func (s *Stream) ReadInt8() (int8, error) {
	b, err := s.ReadUnsignedByte()
	return int8(b), err
}

func (s *Stream) WriteInt8(v int8) error {
	return s.WriteUnsignedByte(uint8(v))
}

// ReadByte implements io.ByteReader.
func (s *Stream) ReadByte() (byte, error) {
	return s.ReadUnsignedByte()
}

// WriteByte implements io.ByteWriter.
func (s *Stream) WriteByte(c byte) error {
	return s.WriteUnsignedByte(c)
}

func (s *Stream) ReadUnsignedByte() (uint8, error) {
	b, err := s.advance(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Stream) WriteUnsignedByte(v uint8) error {
	b, err := s.advance(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (s *Stream) ReadShort() (int16, error) {
	v, err := s.ReadUnsignedShort()
	return int16(v), err
}

func (s *Stream) WriteShort(v int16) error {
	return s.WriteUnsignedShort(uint16(v))
}

func (s *Stream) ReadUnsignedShort() (uint16, error) {
	b, err := s.advance(2)
	if err != nil {
		return 0, err
	}
	return s.order.Uint16(b), nil
}

func (s *Stream) WriteUnsignedShort(v uint16) error {
	b, err := s.advance(2)
	if err != nil {
		return err
	}
	s.order.PutUint16(b, v)
	return nil
}

func (s *Stream) ReadInt() (int32, error) {
	v, err := s.ReadUnsignedInt()
	return int32(v), err
}

func (s *Stream) WriteInt(v int32) error {
	return s.WriteUnsignedInt(uint32(v))
}

func (s *Stream) ReadUnsignedInt() (uint32, error) {
	b, err := s.advance(4)
	if err != nil {
		return 0, err
	}
	return s.order.Uint32(b), nil
}

func (s *Stream) WriteUnsignedInt(v uint32) error {
	b, err := s.advance(4)
	if err != nil {
		return err
	}
	s.order.PutUint32(b, v)
	return nil
}

func (s *Stream) ReadFloat() (float32, error) {
	v, err := s.ReadUnsignedInt()
	return math.Float32frombits(v), err
}

func (s *Stream) WriteFloat(v float32) error {
	return s.WriteUnsignedInt(math.Float32bits(v))
}

func (s *Stream) ReadDouble() (float64, error) {
	b, err := s.advance(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(s.order.Uint64(b)), nil
}

func (s *Stream) WriteDouble(v float64) error {
	b, err := s.advance(8)
	if err != nil {
		return err
	}
	s.order.PutUint64(b, math.Float64bits(v))
	return nil
}

// ReadChar reads one byte as a single character code.
func (s *Stream) ReadChar() (rune, error) {
	b, err := s.ReadUnsignedByte()
	return rune(b), err
}

// WriteChar writes c as one byte. Codes above 0xFF do not fit.
func (s *Stream) WriteChar(c rune) error {
	if c < 0 || c > 0xFF {
		return errs.Bounds("character code %d does not fit in one byte", c)
	}
	return s.WriteUnsignedByte(uint8(c))
}
