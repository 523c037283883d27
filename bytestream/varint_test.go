package bytestream

import (
	"math"
	"testing"

	"amfkit/errs"

	"github.com/stretchr/testify/require"
)

func TestVarInt_Encoding(t *testing.T) {
	tests := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		s := New()
		require.NoError(t, s.WriteVarInt(tt.v))
		require.Equal(t, len(tt.want), s.Position(), "value %d", tt.v)
		require.Equal(t, len(tt.want), VarIntLen(tt.v))
		require.Equal(t, tt.want, s.Bytes()[:len(tt.want)])

		s.Reset()
		got, err := s.ReadVarInt()
		require.NoError(t, err)
		require.Equal(t, tt.v, got)
		require.Equal(t, len(tt.want), s.Position())
	}
}

func TestVarInt_SampledRange(t *testing.T) {
	s := New()
	for v := int64(math.MinInt32); v <= math.MaxInt32; v += 65521 {
		s.Reset()
		require.NoError(t, s.WriteVarInt(int32(v)))
		require.NoError(t, s.WriteVarUInt(int32(v)))
		s.Reset()
		got, err := s.ReadVarInt()
		require.NoError(t, err)
		require.Equal(t, int32(v), got)
		got, err = s.ReadVarUInt()
		require.NoError(t, err)
		require.Equal(t, int32(v), got)
	}
}

func TestVarUInt_ZigZag(t *testing.T) {
	tests := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{1, []byte{0x02}},
		{-2, []byte{0x03}},
		{-64, []byte{0x7f}},
		{64, []byte{0x80, 0x01}},
		{math.MinInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		s := New()
		require.NoError(t, s.WriteVarUInt(tt.v))
		require.Equal(t, tt.want, s.Bytes()[:len(tt.want)], "value %d", tt.v)
		s.Reset()
		got, err := s.ReadVarUInt()
		require.NoError(t, err)
		require.Equal(t, tt.v, got)
	}
	require.Equal(t, uint32(3), ZigZagEncode(-2))
	require.Equal(t, int32(-2), ZigZagDecode(3))
}

func TestReadVarInt_Overflow(t *testing.T) {
	s := Wrap([]byte{0xff, 0xff, 0xff, 0xff, 0x7f})
	_, err := s.ReadVarInt()
	requireKind(t, err, errs.ErrBoundsViolation)
	require.Equal(t, 0, s.Position())

	s = Wrap([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err = s.ReadVarInt()
	requireKind(t, err, errs.ErrBoundsViolation)
}

func TestReadVarInt_Truncated(t *testing.T) {
	s := Wrap([]byte{0x01, 0x80, 0x80})
	s.SetPosition(1)
	_, err := s.ReadVarInt()
	requireKind(t, err, errs.ErrBoundsViolation)
	require.Equal(t, 1, s.Position())
}

func TestWriteVarInt_Capacity(t *testing.T) {
	s := New()
	s.SetPosition(MaxBufferSize - 1)
	requireKind(t, s.WriteVarInt(300), errs.ErrBoundsViolation)
	require.Equal(t, MaxBufferSize-1, s.Position())
	require.NoError(t, s.WriteVarInt(5))
}
