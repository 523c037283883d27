package message

import (
	"amfkit/bytestream"
	"amfkit/errs"
	"amfkit/log"

	"github.com/pkg/errors"
)

// UnknownLength in a header or body length field means the value has to be
// decoded to find where it ends.
const UnknownLength = 0xffffffff

// avmPlusMarker is the AMF0 marker that switches one value to AMF3.
const avmPlusMarker = 0x11

var logger = log.WithModule("message")

// ObjectEncoding returns the object encoding a message version implies.
func ObjectEncoding(version uint16) (bytestream.ObjectEncoding, error) {
	switch version {
	case 0:
		return bytestream.AMF0, nil
	case 3:
		return bytestream.AMF3, nil
	}
	return 0, errs.Unsupported("message version %d", version)
}

// Encode serializes m as an AMF packet. Header and body values are always
// AMF0 values framed by their byte length. Version 3 messages switch each
// value to AMF3 with the AVM+ marker.
func Encode(m *Message, codecs bytestream.CodecSet) ([]byte, error) {
	if m == nil || codecs == nil {
		return nil, errs.InvalidArgument("nil message or codecs")
	}
	enc, err := ObjectEncoding(m.Version)
	if err != nil {
		return nil, err
	}
	codec, err := codecs.Codec(enc)
	if err != nil {
		return nil, err
	}
	if enc == bytestream.AMF3 {
		codec = avmPlus{codec}
	}

	s := bytestream.New()
	if err := s.WriteUnsignedShort(m.Version); err != nil {
		return nil, err
	}
	if err := writeCount(s, len(m.headers)); err != nil {
		return nil, err
	}
	for i, h := range m.headers {
		if err := s.WriteUTF(h.Name); err != nil {
			return nil, errors.Wrapf(err, "error writing header %d name", i)
		}
		if err := s.WriteBoolean(h.MustUnderstand); err != nil {
			return nil, err
		}
		if err := writeValue(s, codec, h.Data); err != nil {
			return nil, errors.Wrapf(err, "error writing header %q", h.Name)
		}
	}
	if err := writeCount(s, len(m.bodies)); err != nil {
		return nil, err
	}
	for i, b := range m.bodies {
		if err := s.WriteUTF(b.targetURI); err != nil {
			return nil, errors.Wrapf(err, "error writing body %d target", i)
		}
		if err := s.WriteUTF(b.responseURI); err != nil {
			return nil, errors.Wrapf(err, "error writing body %d response", i)
		}
		if err := writeValue(s, codec, b.data); err != nil {
			return nil, errors.Wrapf(err, "error writing body %d", i)
		}
	}

	out := append([]byte(nil), s.Bytes()[:s.Position()]...)
	logger.Trace("encoded message", "version", m.Version, "headers", len(m.headers), "bodies", len(m.bodies), "bytes", len(out))
	return out, nil
}

func writeCount(s *bytestream.Stream, n int) error {
	if n > 0xffff {
		return errs.Bounds("%d entries do not fit a 16-bit count", n)
	}
	return s.WriteUnsignedShort(uint16(n))
}

// avmPlus prefixes every encoded AMF3 value with the AVM+ marker so it reads
// as one AMF0 value.
type avmPlus struct {
	bytestream.ObjectCodec
}

func (a avmPlus) EncodeObject(v interface{}) ([]byte, error) {
	b, err := a.ObjectCodec.EncodeObject(v)
	if err != nil {
		return nil, err
	}
	return append([]byte{avmPlusMarker}, b...), nil
}

func writeValue(s *bytestream.Stream, codec bytestream.ObjectCodec, v interface{}) error {
	b, err := codec.EncodeObject(v)
	if err != nil {
		return err
	}
	if err := s.WriteUnsignedInt(uint32(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	n, err := s.WriteRaw(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errs.Bounds("value of %d bytes does not fit, %d written", len(b), n)
	}
	return nil
}

// Decode parses an AMF packet produced by Encode or by a remoting peer.
// Values are read as AMF0 whatever the version; AMF3 values arrive behind
// the AVM+ marker.
func Decode(b []byte, codecs bytestream.CodecSet) (*Message, error) {
	if b == nil || codecs == nil {
		return nil, errs.InvalidArgument("nil input or codecs")
	}
	s := bytestream.Wrap(b, bytestream.WithCodecs(codecs), bytestream.WithObjectEncoding(bytestream.AMF0))
	version, err := s.ReadUnsignedShort()
	if err != nil {
		return nil, errors.Wrap(err, "error reading version")
	}
	if _, err := ObjectEncoding(version); err != nil {
		return nil, err
	}

	m := &Message{Version: version}
	count, err := s.ReadUnsignedShort()
	if err != nil {
		return nil, errors.Wrap(err, "error reading header count")
	}
	for i := 0; i < int(count); i++ {
		h := new(Header)
		if h.Name, err = s.ReadUTF(); err != nil {
			return nil, errors.Wrapf(err, "error reading header %d name", i)
		}
		if h.MustUnderstand, err = s.ReadBoolean(); err != nil {
			return nil, errors.Wrapf(err, "error reading header %q", h.Name)
		}
		if h.Data, err = readValue(s); err != nil {
			return nil, errors.Wrapf(err, "error reading header %q", h.Name)
		}
		m.AddHeader(h)
	}

	if count, err = s.ReadUnsignedShort(); err != nil {
		return nil, errors.Wrap(err, "error reading body count")
	}
	for i := 0; i < int(count); i++ {
		body := new(Body)
		if body.targetURI, err = s.ReadUTF(); err != nil {
			return nil, errors.Wrapf(err, "error reading body %d target", i)
		}
		if body.responseURI, err = s.ReadUTF(); err != nil {
			return nil, errors.Wrapf(err, "error reading body %d response", i)
		}
		if body.data, err = readValue(s); err != nil {
			return nil, errors.Wrapf(err, "error reading body %d", i)
		}
		m.AddBody(body)
	}
	if s.Position() != len(b) {
		logger.Debug("trailing bytes after message", "bytes", len(b)-s.Position())
	}
	return m, nil
}

func readValue(s *bytestream.Stream) (interface{}, error) {
	length, err := s.ReadUnsignedInt()
	if err != nil {
		return nil, err
	}
	start := s.Position()
	v, err := s.ReadObject()
	if err != nil {
		return nil, err
	}
	if length != UnknownLength && uint32(s.Position()-start) != length {
		return nil, errors.Errorf("value length is %d, decoded %d bytes", length, s.Position()-start)
	}
	return v, nil
}
