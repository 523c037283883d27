package bytestream

import (
	"math"
	"testing"

	"amfkit/errs"

	"github.com/stretchr/testify/require"
)

type primitiveCase struct {
	name  string
	width int
	write func(s *Stream) error
	read  func(s *Stream) (interface{}, error)
	want  interface{}
}

func primitiveCases() []primitiveCase {
	return []primitiveCase{
		{"bool true", 1, func(s *Stream) error { return s.WriteBoolean(true) }, func(s *Stream) (interface{}, error) { return s.ReadBoolean() }, true},
		{"bool false", 1, func(s *Stream) error { return s.WriteBoolean(false) }, func(s *Stream) (interface{}, error) { return s.ReadBoolean() }, false},
		{"int8", 1, func(s *Stream) error { return s.WriteInt8(-128) }, func(s *Stream) (interface{}, error) { return s.ReadInt8() }, int8(-128)},
		{"uint8", 1, func(s *Stream) error { return s.WriteUnsignedByte(255) }, func(s *Stream) (interface{}, error) { return s.ReadUnsignedByte() }, uint8(255)},
		{"int16", 2, func(s *Stream) error { return s.WriteShort(-12345) }, func(s *Stream) (interface{}, error) { return s.ReadShort() }, int16(-12345)},
		{"uint16", 2, func(s *Stream) error { return s.WriteUnsignedShort(0xbeef) }, func(s *Stream) (interface{}, error) { return s.ReadUnsignedShort() }, uint16(0xbeef)},
		{"int32", 4, func(s *Stream) error { return s.WriteInt(math.MinInt32) }, func(s *Stream) (interface{}, error) { return s.ReadInt() }, int32(math.MinInt32)},
		{"uint32", 4, func(s *Stream) error { return s.WriteUnsignedInt(math.MaxUint32) }, func(s *Stream) (interface{}, error) { return s.ReadUnsignedInt() }, uint32(math.MaxUint32)},
		{"float32", 4, func(s *Stream) error { return s.WriteFloat(3.5) }, func(s *Stream) (interface{}, error) { return s.ReadFloat() }, float32(3.5)},
		{"float64", 8, func(s *Stream) error { return s.WriteDouble(-0.1) }, func(s *Stream) (interface{}, error) { return s.ReadDouble() }, -0.1},
		{"int64", 8, func(s *Stream) error { return s.WriteLong(math.MinInt64) }, func(s *Stream) (interface{}, error) { return s.ReadLong() }, int64(math.MinInt64)},
		{"uint64", 8, func(s *Stream) error { return s.WriteUnsignedLong(math.MaxUint64) }, func(s *Stream) (interface{}, error) { return s.ReadUnsignedLong() }, uint64(math.MaxUint64)},
		{"char", 1, func(s *Stream) error { return s.WriteChar('é') }, func(s *Stream) (interface{}, error) { return s.ReadChar() }, 'é'},
		{"utf", 2 + 6, func(s *Stream) error { return s.WriteUTF("héllo") }, func(s *Stream) (interface{}, error) { return s.ReadUTF() }, "héllo"},
	}
}

func TestPrimitives_RoundTrip(t *testing.T) {
	for _, endian := range []Endian{BigEndian, LittleEndian} {
		for _, tt := range primitiveCases() {
			t.Run(endian.String()+"/"+tt.name, func(t *testing.T) {
				s := New(WithEndian(endian))
				s.SetPosition(10)
				require.NoError(t, tt.write(s))
				require.Equal(t, 10+tt.width, s.Position())
				require.Equal(t, s.Len()-s.Position(), s.BytesAvailable())

				s.SetPosition(10)
				got, err := tt.read(s)
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
				require.Equal(t, 10+tt.width, s.Position())
			})
		}
	}
}

func TestPrimitives_ByteOrder(t *testing.T) {
	be := New()
	require.NoError(t, be.WriteInt(0x01020304))
	require.Equal(t, []byte{1, 2, 3, 4}, be.Bytes()[:4])

	le := New(WithEndian(LittleEndian))
	require.NoError(t, le.WriteInt(0x01020304))
	require.Equal(t, []byte{4, 3, 2, 1}, le.Bytes()[:4])

	require.NoError(t, le.WriteDouble(1))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, le.Bytes()[4:12])
}

func TestReadBoolean_Nonzero(t *testing.T) {
	v, err := Wrap([]byte{0x7f}).ReadBoolean()
	require.NoError(t, err)
	require.True(t, v)
}

func TestPrimitives_Bounds(t *testing.T) {
	for _, tt := range primitiveCases() {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			start := MaxBufferSize - tt.width + 1
			s.SetPosition(start)
			requireKind(t, tt.write(s), errs.ErrBoundsViolation)
			require.Equal(t, start, s.Position())
			require.Equal(t, make([]byte, DefaultCapacity), s.Bytes())
		})
	}
}

func TestPrimitives_SmallBuffer(t *testing.T) {
	s, err := NewSize(3)
	require.NoError(t, err)
	requireKind(t, s.WriteInt(1), errs.ErrBoundsViolation)
	require.Equal(t, 0, s.Position())
	_, err = s.ReadInt()
	requireKind(t, err, errs.ErrBoundsViolation)
	require.NoError(t, s.WriteShort(1))
	require.NoError(t, s.WriteBoolean(true))
	require.Equal(t, 0, s.BytesAvailable())
}

func TestPrimitives_CeilingOnLargeBuffer(t *testing.T) {
	s, err := NewSize(MaxBufferSize * 2)
	require.NoError(t, err)
	s.SetPosition(MaxBufferSize)
	requireKind(t, s.WriteUnsignedByte(1), errs.ErrBoundsViolation)
	s.SetPosition(MaxBufferSize - 1)
	require.NoError(t, s.WriteUnsignedByte(1))
}

func TestWriteChar_TooWide(t *testing.T) {
	s := New()
	requireKind(t, s.WriteChar('€'), errs.ErrBoundsViolation)
	require.Equal(t, 0, s.Position())
}
