package bytestream

import (
	"amfkit/errs"

	"github.com/pkg/errors"
)

// ObjectCodec marshals object graphs for one AMF version.
type ObjectCodec interface {
	// EncodeObject returns the encoding of v.
	EncodeObject(v interface{}) ([]byte, error)
	// DecodeObject decodes one value from the start of b and reports how many
	// bytes it consumed.
	DecodeObject(b []byte) (interface{}, int, error)
}

// CodecSet selects the ObjectCodec for an object encoding.
type CodecSet interface {
	Codec(enc ObjectEncoding) (ObjectCodec, error)
}

// Codecs is a CodecSet backed by a map.
type Codecs map[ObjectEncoding]ObjectCodec

func (c Codecs) Codec(enc ObjectEncoding) (ObjectCodec, error) {
	codec, ok := c[enc]
	if !ok {
		return nil, errs.Unsupported("no object codec for AMF%d", enc)
	}
	return codec, nil
}

func (s *Stream) objectCodec() (ObjectCodec, error) {
	if s.codecs == nil {
		return nil, errs.Unsupported("stream has no object codecs")
	}
	return s.codecs.Codec(s.objectEncoding)
}

// ReadObject decodes one object at the cursor and advances past it.
func (s *Stream) ReadObject() (interface{}, error) {
	codec, err := s.objectCodec()
	if err != nil {
		return nil, err
	}
	if err := s.check(0); err != nil {
		return nil, err
	}
	v, n, err := codec.DecodeObject(s.buf.Bytes()[s.pos:])
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding AMF%d object at position %d", s.objectEncoding, s.pos)
	}
	if _, err := s.advance(n); err != nil {
		return nil, err
	}
	return v, nil
}

// WriteObject encodes v and prepends the encoding to the buffer. The cursor
// is not moved.
func (s *Stream) WriteObject(v interface{}) error {
	codec, err := s.objectCodec()
	if err != nil {
		return err
	}
	b, err := codec.EncodeObject(v)
	if err != nil {
		return errors.Wrapf(err, "error encoding AMF%d object", s.objectEncoding)
	}
	s.buf.prepend(b)
	s.lgr.Trace("prepended object", "encoding", s.objectEncoding, "bytes", len(b))
	return nil
}
