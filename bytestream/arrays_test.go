package bytestream

import (
	"testing"

	"amfkit/errs"

	"github.com/stretchr/testify/require"
)

func TestArrays_RoundTrip(t *testing.T) {
	s := New()
	require.NoError(t, s.WriteByteArray([]int{-128, 0, 255}))
	require.NoError(t, s.WriteShortArray([3]int16{-1, 2, 3}))
	require.NoError(t, s.WriteIntArray([]uint32{0xffffffff, 7}))
	require.Equal(t, 3+6+8, s.Position())

	s.Reset()
	bytes, err := s.ReadByteArray(3)
	require.NoError(t, err)
	require.Equal(t, []int8{-128, 0, -1}, bytes)
	shorts, err := s.ReadShortArray(3)
	require.NoError(t, err)
	require.Equal(t, []int16{-1, 2, 3}, shorts)
	ints, err := s.ReadIntArray(2)
	require.NoError(t, err)
	require.Equal(t, []int32{-1, 7}, ints)
}

func TestArrays_Empty(t *testing.T) {
	s := New()
	require.NoError(t, s.WriteIntArray([]int32{}))
	require.Equal(t, 0, s.Position())
	out, err := s.ReadShortArray(0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestArrays_InvalidInput(t *testing.T) {
	s := New()
	requireKind(t, s.WriteByteArray(nil), errs.ErrInvalidArgument)
	requireKind(t, s.WriteByteArray(42), errs.ErrInvalidArgument)
	requireKind(t, s.WriteShortArray([]interface{}{1, "x"}), errs.ErrInvalidArgument)
	requireKind(t, s.WriteByteArray([]int{256}), errs.ErrBoundsViolation)
	requireKind(t, s.WriteShortArray([]int{-32769}), errs.ErrBoundsViolation)
	requireKind(t, s.WriteIntArray([]uint64{1 << 32}), errs.ErrBoundsViolation)
	_, err := s.ReadIntArray(-1)
	requireKind(t, err, errs.ErrInvalidArgument)
	require.Equal(t, 0, s.Position())
}

func TestArrays_NoPartialWrite(t *testing.T) {
	s := New()
	requireKind(t, s.WriteByteArray([]int{1, 2, 300}), errs.ErrBoundsViolation)
	require.Equal(t, 0, s.Position())
	require.Equal(t, []byte{0, 0, 0}, s.Bytes()[:3])

	s.SetPosition(MaxBufferSize - 7)
	requireKind(t, s.WriteIntArray([]int32{1, 2}), errs.ErrBoundsViolation)
	require.Equal(t, MaxBufferSize-7, s.Position())

	_, err := s.ReadShortArray(4)
	requireKind(t, err, errs.ErrBoundsViolation)
	require.Equal(t, MaxBufferSize-7, s.Position())
}

func TestArrays_TruncatedRead(t *testing.T) {
	s := Wrap([]byte{0x00, 0x01, 0x00})
	_, err := s.ReadShortArray(2)
	requireKind(t, err, errs.ErrBoundsViolation)
	require.Equal(t, 0, s.Position())

	s.SetPosition(1)
	_, err = s.ReadIntArray(1)
	requireKind(t, err, errs.ErrBoundsViolation)
	require.Equal(t, 1, s.Position())

	out, err := s.ReadByteArray(2)
	require.NoError(t, err)
	require.Equal(t, []int8{1, 0}, out)
	require.Equal(t, 3, s.Position())
}
