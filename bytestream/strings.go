package bytestream

import (
	"strings"

	"amfkit/errs"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ReadUTF reads a uint16 byte length followed by that many UTF-8 bytes. On
// failure the cursor is left where it was.
func (s *Stream) ReadUTF() (string, error) {
	start := s.pos
	n, err := s.ReadUnsignedShort()
	if err != nil {
		return "", err
	}
	str, err := s.ReadUTFBytes(int(n))
	if err != nil {
		s.pos = start
		return "", err
	}
	return str, nil
}

// WriteUTF writes the byte length of str as a uint16 followed by its UTF-8
// bytes. Nothing is written unless the whole string fits.
func (s *Stream) WriteUTF(str string) error {
	if len(str) > MaxUTFLength {
		return errs.Bounds("string of %d bytes exceeds %d", len(str), MaxUTFLength)
	}
	if err := s.check(2 + len(str)); err != nil {
		return err
	}
	if err := s.WriteUnsignedShort(uint16(len(str))); err != nil {
		return err
	}
	return s.WriteUTFBytes(str)
}

func (s *Stream) ReadUTFBytes(n int) (string, error) {
	b, err := s.advance(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteUTFBytes writes the UTF-8 bytes of str with no length prefix.
func (s *Stream) WriteUTFBytes(str string) error {
	b, err := s.advance(len(str))
	if err != nil {
		return err
	}
	copy(b, str)
	return nil
}

// ReadMultiByte reads n bytes and decodes them with the named charset. An
// empty charset means UTF-8.
func (s *Stream) ReadMultiByte(n int, charset string) (string, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}
	if err := s.check(n); err != nil {
		return "", err
	}
	raw := s.buf.Bytes()[s.pos : s.pos+n]
	if enc == nil {
		s.pos += n
		return string(raw), nil
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Wrapf(err, "error decoding %s", charset)
	}
	s.pos += n
	return string(decoded), nil
}

// WriteMultiByte encodes str with the named charset and writes the result
// with no length prefix.
func (s *Stream) WriteMultiByte(str, charset string) error {
	enc, err := lookupCharset(charset)
	if err != nil {
		return err
	}
	if enc == nil {
		return s.WriteUTFBytes(str)
	}
	encoded, err := enc.NewEncoder().String(str)
	if err != nil {
		return errors.Wrapf(err, "error encoding %s", charset)
	}
	return s.WriteUTFBytes(encoded)
}

// lookupCharset returns nil for UTF-8, which needs no transcoding.
func lookupCharset(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errs.Unsupported("charset %q", charset)
	}
	return enc, nil
}
