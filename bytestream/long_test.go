package bytestream

import (
	"encoding/binary"
	"math"
	"testing"

	"amfkit/errs"

	"github.com/stretchr/testify/require"
)

func TestLong_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 32, -(1 << 32), 1<<32 + 2, 1425546000123, math.MaxInt64, math.MinInt64}
	for _, endian := range []Endian{BigEndian, LittleEndian} {
		s := New(WithEndian(endian))
		for _, v := range values {
			require.NoError(t, s.WriteLong(v))
		}
		s.Reset()
		for _, v := range values {
			got, err := s.ReadLong()
			require.NoError(t, err)
			require.Equal(t, v, got)
		}
		require.Equal(t, len(values)*8, s.Position())
	}
}

func TestLong_Halves(t *testing.T) {
	s := New()
	require.NoError(t, s.WriteLong(1<<32+2))
	require.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 2}, s.Bytes()[:8])

	le := New(WithEndian(LittleEndian))
	require.NoError(t, le.WriteUnsignedLong(0x0102030405060708))
	want := make([]byte, 8)
	binary.LittleEndian.PutUint64(want, 0x0102030405060708)
	require.Equal(t, want, le.Bytes()[:8])
}

func TestUnsignedLong_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64}
	s := New()
	for _, v := range values {
		require.NoError(t, s.WriteUnsignedLong(v))
	}
	s.Reset()
	for _, v := range values {
		got, err := s.ReadUnsignedLong()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestLongNumber_Range(t *testing.T) {
	s := New()
	require.NoError(t, s.WriteLongNumber(-9007199254740992))
	require.NoError(t, s.WriteLongNumber(-twoTo63))
	requireKind(t, s.WriteLongNumber(twoTo63), errs.ErrBoundsViolation)
	requireKind(t, s.WriteLongNumber(-twoTo63*2), errs.ErrBoundsViolation)
	requireKind(t, s.WriteLongNumber(1.5), errs.ErrInvalidArgument)
	requireKind(t, s.WriteLongNumber(math.NaN()), errs.ErrInvalidArgument)

	require.NoError(t, s.WriteUnsignedLongNumber(twoTo63))
	requireKind(t, s.WriteUnsignedLongNumber(-1), errs.ErrBoundsViolation)
	requireKind(t, s.WriteUnsignedLongNumber(twoTo64), errs.ErrBoundsViolation)
	require.Equal(t, 24, s.Position())

	s.Reset()
	v, err := s.ReadLong()
	require.NoError(t, err)
	require.EqualValues(t, -9007199254740992, v)
	v, err = s.ReadLong()
	require.NoError(t, err)
	require.EqualValues(t, math.MinInt64, v)
	u, err := s.ReadUnsignedLong()
	require.NoError(t, err)
	require.EqualValues(t, uint64(1)<<63, u)
}

func TestLong_InsufficientCapacity(t *testing.T) {
	s := New()
	s.SetPosition(MaxBufferSize - 7)
	requireKind(t, s.WriteLong(1), errs.ErrBoundsViolation)
	requireKind(t, s.WriteUnsignedLong(1), errs.ErrBoundsViolation)
	require.Equal(t, MaxBufferSize-7, s.Position())
	require.Equal(t, make([]byte, 7), s.Bytes()[MaxBufferSize-7:])
}
