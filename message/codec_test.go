package message

import (
	"testing"
	"time"

	"amfkit/amf"
	"amfkit/bytestream"
	"amfkit/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEncode_Layout(t *testing.T) {
	m := New(0)
	m.Version = 0
	m.AddHeader(NewHeader("h", true, nil))
	m.AddBody(NewBody("a/b", "/1", "x"))

	got, err := Encode(m, amf.NewCodecs(nil))
	require.NoError(t, err)
	want := []byte{
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x01, 'h', 0x01, 0x00, 0x00, 0x00, 0x01, 0x05,
		0x00, 0x01,
		0x00, 0x03, 'a', '/', 'b', 0x00, 0x02, '/', '1', 0x00, 0x00, 0x00, 0x04, 0x02, 0x00, 0x01, 'x',
	}
	require.Equal(t, want, got)
}

func TestEncode_LayoutVersion3(t *testing.T) {
	m := New(3)
	m.AddBody(NewBody("/", "1", "hi"))

	got, err := Encode(m, amf.NewCodecs(nil))
	require.NoError(t, err)
	want := []byte{
		0x00, 0x03,
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x01, '/', 0x00, 0x01, '1',
		0x00, 0x00, 0x00, 0x05, 0x11, 0x06, 0x05, 'h', 'i',
	}
	require.Equal(t, want, got)
}

func TestDecode_Version3Packet(t *testing.T) {
	codecs := amf.NewCodecs(nil)

	m, err := Decode([]byte{
		0x00, 0x03,
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x01, '/', 0x00, 0x01, '1',
		0x00, 0x00, 0x00, 0x05, 0x11, 0x06, 0x05, 'h', 'i',
	}, codecs)
	require.NoError(t, err)
	require.Equal(t, uint16(3), m.Version)
	require.Equal(t, "hi", m.BodyAt(0).Data())

	// a remoting call: an AMF0 strict array holding one AMF3 object
	m, err = Decode([]byte{
		0x00, 0x03,
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x04, 'n', 'u', 'l', 'l', 0x00, 0x02, '/', '1',
		0x00, 0x00, 0x00, 0x0e,
		0x0a, 0x00, 0x00, 0x00, 0x01,
		0x11, 0x0a, 0x0b, 0x01, 0x03, 'a', 0x04, 0x01, 0x01,
	}, codecs)
	require.NoError(t, err)
	body := m.BodyAt(0)
	require.Equal(t, "null", body.TargetURI())
	require.Equal(t, "/1", body.ResponseURI())
	if diff := cmp.Diff([]interface{}{map[string]interface{}{"a": 1}}, body.Data()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	when := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, version := range []uint16{0, 3} {
		m := New(3)
		m.Version = version
		m.AddHeader(NewHeader("DSId", false, "nil"))
		m.AddHeader(NewHeader("Credentials", true, map[string]interface{}{"user": "u"}))
		m.AddBody(NewBody("Comp/method", "/1", []interface{}{"arg", true, when}))
		m.AddBody(NewBody("Comp/other", "/2", nil))

		codecs := amf.NewCodecs(nil)
		b, err := Encode(m, codecs)
		require.NoError(t, err)

		got, err := Decode(b, codecs)
		require.NoError(t, err)
		require.Equal(t, version, got.Version)
		require.Equal(t, 2, got.HeaderCount())
		require.Equal(t, 2, got.BodyCount())
		require.Equal(t, "Credentials", got.HeaderAt(1).Name)
		require.True(t, got.HeaderAt(1).MustUnderstand)
		if diff := cmp.Diff(map[string]interface{}{"user": "u"}, got.HeaderAt(1).Data); diff != "" {
			t.Fatalf("header mismatch (-want +got):\n%s", diff)
		}
		body := got.BodyAt(0)
		require.Equal(t, "Comp/method", body.TargetURI())
		require.Equal(t, "/1", body.ResponseURI())
		if diff := cmp.Diff([]interface{}{"arg", true, when}, body.Data()); diff != "" {
			t.Fatalf("body mismatch (-want +got):\n%s", diff)
		}
		require.Nil(t, got.BodyAt(1).Data())
	}
}

func TestDecode_UnknownLength(t *testing.T) {
	b := []byte{
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x01, 'a', 0x00, 0x00,
		0xff, 0xff, 0xff, 0xff, 0x01, 0x01,
	}
	m, err := Decode(b, amf.NewCodecs(nil))
	require.NoError(t, err)
	require.Equal(t, true, m.BodyAt(0).Data())
}

func TestDecode_Errors(t *testing.T) {
	codecs := amf.NewCodecs(nil)

	_, err := Decode([]byte{0x00, 0x02, 0x00, 0x00}, codecs)
	require.True(t, errors.Is(err, errs.ErrUnsupportedEncoding))

	_, err = Decode([]byte{0x00, 0x00, 0x00, 0x01, 0x00}, codecs)
	require.True(t, errors.Is(err, errs.ErrBoundsViolation))

	mismatch := []byte{
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x05, 0x05,
	}
	_, err = Decode(mismatch, codecs)
	require.Error(t, err)

	_, err = Decode(nil, codecs)
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(nil, amf.NewCodecs(nil))
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))

	m := New(0)
	m.Version = 1
	_, err = Encode(m, amf.NewCodecs(nil))
	require.True(t, errors.Is(err, errs.ErrUnsupportedEncoding))

	_, err = Encode(New(0), bytestream.Codecs{})
	require.True(t, errors.Is(err, errs.ErrUnsupportedEncoding))

	big := New(0)
	big.AddBody(NewBody("a", "b", make([]byte, bytestream.MaxBufferSize)))
	_, err = Encode(big, amf.NewCodecs(nil))
	require.True(t, errors.Is(err, errs.ErrBoundsViolation))
}
