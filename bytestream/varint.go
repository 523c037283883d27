package bytestream

import (
	"amfkit/errs"
)

// MaxVarIntLen is the longest encoding of a 32-bit varint.
const MaxVarIntLen = 5

// ZigZagEncode maps signed values onto unsigned ones so that small
// magnitudes stay small: 0, -1, 1, -2 become 0, 1, 2, 3.
func ZigZagEncode(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

func ZigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// VarIntLen returns the number of 7-bit groups needed to encode v.
func VarIntLen(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// WriteVarInt writes v as little endian base-128 groups, low group first,
// with the high bit of every byte but the last set.
func (s *Stream) WriteVarInt(v int32) error {
	n := VarIntLen(v)
	b, err := s.advance(n)
	if err != nil {
		return err
	}
	u := uint32(v)
	for i := 0; i < n-1; i++ {
		b[i] = byte(u&0x7f) | 0x80
		u >>= 7
	}
	b[n-1] = byte(u)
	return nil
}

// ReadVarInt reads a value written by WriteVarInt. On failure the cursor is
// left where it was.
func (s *Stream) ReadVarInt() (int32, error) {
	start := s.pos
	var result uint32
	for i := 0; i < MaxVarIntLen; i++ {
		b, err := s.ReadUnsignedByte()
		if err != nil {
			s.pos = start
			return 0, err
		}
		if i == MaxVarIntLen-1 && b > 0x0f {
			break
		}
		result |= uint32(b&0x7f) << (7 * uint(i))
		if b < 0x80 {
			return int32(result), nil
		}
	}
	s.pos = start
	return 0, errs.Bounds("varint at position %d overflows 32 bits", start)
}

// WriteVarUInt zig-zags v and writes it as a varint.
func (s *Stream) WriteVarUInt(v int32) error {
	return s.WriteVarInt(int32(ZigZagEncode(v)))
}

// ReadVarUInt reads one varint and reverses the zig-zag transform.
func (s *Stream) ReadVarUInt() (int32, error) {
	v, err := s.ReadVarInt()
	if err != nil {
		return 0, err
	}
	return ZigZagDecode(uint32(v)), nil
}
