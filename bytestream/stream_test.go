package bytestream

import (
	"encoding/json"
	"testing"

	"amfkit/errs"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	require.Equal(t, DefaultCapacity, s.Len())
	require.Equal(t, 0, s.Position())
	require.Equal(t, BigEndian, s.Endian())
	require.Equal(t, AMF3, s.ObjectEncoding())
	require.Equal(t, 4096, s.BytesAvailable())

	sized, err := NewSize(16)
	require.NoError(t, err)
	require.Equal(t, 16, sized.Len())

	_, err = NewSize(-1)
	requireKind(t, err, errs.ErrInvalidArgument)
}

func TestNewShared(t *testing.T) {
	a := New(WithEndian(LittleEndian))
	b, err := NewShared(a)
	require.NoError(t, err)
	require.Equal(t, LittleEndian, b.Endian())
	require.Same(t, a.Buffer(), b.Buffer())

	require.NoError(t, a.WriteInt(0x01020304))
	require.Equal(t, 4, a.Position())
	require.Equal(t, 0, b.Position())
	v, err := b.ReadInt()
	require.NoError(t, err)
	require.EqualValues(t, 0x01020304, v)

	require.NoError(t, b.SetLen(10))
	require.Equal(t, 10, a.Len())

	_, err = NewShared(nil)
	requireKind(t, err, errs.ErrInvalidArgument)
}

func TestWrap_NoCopy(t *testing.T) {
	raw := []byte{0x00, 0x00}
	s := Wrap(raw)
	require.NoError(t, s.WriteUnsignedShort(0xcafe))
	require.Equal(t, []byte{0xca, 0xfe}, raw)
}

func TestSetObjectEncoding(t *testing.T) {
	s := New()
	require.NoError(t, s.SetObjectEncoding(AMF0))
	require.Equal(t, AMF0, s.ObjectEncoding())
	requireKind(t, s.SetObjectEncoding(ObjectEncoding(1)), errs.ErrUnsupportedEncoding)
	require.Equal(t, AMF0, s.ObjectEncoding())

	require.Equal(t, AMF3, New(WithObjectEncoding(ObjectEncoding(7))).ObjectEncoding())
}

func TestBookkeeping(t *testing.T) {
	s := New()
	require.NoError(t, s.WriteUTFBytes("hello"))
	s.Reset()
	require.Equal(t, 0, s.Position())
	require.NoError(t, s.SetLen(5))
	require.Equal(t, "hello", s.String())
	s.SetPosition(3)
	require.Equal(t, "lo", s.String())
	require.Equal(t, 2, s.BytesAvailable())

	s.SetPosition(9)
	require.Equal(t, 0, s.BytesAvailable())
	require.Equal(t, "", s.String())
	_, err := s.ReadUnsignedByte()
	requireKind(t, err, errs.ErrBoundsViolation)

	require.Equal(t, []byte("xxxlo"), s.Fill(3, 'x'))
	require.Equal(t, []byte("zzzzz"), s.Fill(100, 'z'))

	requireKind(t, s.SetLen(-1), errs.ErrInvalidArgument)
	require.NoError(t, s.SetLen(7))
	require.Equal(t, []byte{'z', 'z', 'z', 'z', 'z', 0, 0}, s.Bytes())

	s.Clear()
	require.Equal(t, DefaultCapacity, s.Len())
	require.Equal(t, 0, s.Position())
	require.Equal(t, make([]byte, DefaultCapacity), s.Bytes())
}

func TestSetLen_ShrinkThenGrowZeroes(t *testing.T) {
	s := Wrap([]byte{1, 2, 3, 4})
	require.NoError(t, s.SetLen(2))
	require.NoError(t, s.SetLen(4))
	require.Equal(t, []byte{1, 2, 0, 0}, s.Bytes())
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Wrap([]byte{1, 2, 255}))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Buffer","data":[1,2,255]}`, string(b))
}
