package bytestream

import (
	"amfkit/errs"
)

// ReadBytes copies length bytes from the cursor into dst starting at index
// offset, growing dst when needed. A zero length copies everything that is
// available. dst's cursor is not moved. The copy is byte by byte and stops
// early if this stream runs out of bytes; the count copied is returned.
func (s *Stream) ReadBytes(dst *Stream, offset, length int) (int, error) {
	if dst == nil {
		return 0, errs.InvalidArgument("nil destination stream")
	}
	if offset < 0 || length < 0 {
		return 0, errs.Bounds("negative offset %d or length %d", offset, length)
	}
	if length == 0 {
		length = s.BytesAvailable()
	}
	if length > s.BytesAvailable() {
		return 0, errs.Bounds("cannot read %d bytes, %d available", length, s.BytesAvailable())
	}
	if offset+length > dst.Len() {
		dst.buf.resize(offset + length)
	}

	n := 0
	for n < length && s.BytesAvailable() > 0 {
		b, err := s.ReadUnsignedByte()
		if err != nil {
			return n, err
		}
		dst.buf.Bytes()[offset+n] = b
		n++
	}
	return n, nil
}

// WriteBytes copies length bytes of src, starting at index offset, to the
// cursor. A zero length means everything from offset to the end of src; an
// offset past the end of src is clamped. src's cursor is not moved. The copy
// stops early, without error, once this stream has no bytes available.
func (s *Stream) WriteBytes(src *Stream, offset, length int) (int, error) {
	if src == nil {
		return 0, errs.InvalidArgument("nil source stream")
	}
	if offset < 0 || length < 0 {
		return 0, errs.Bounds("negative offset %d or length %d", offset, length)
	}
	if offset > src.Len() {
		offset = src.Len()
	}
	if length == 0 {
		length = src.Len() - offset
	}
	if length > src.Len()-offset {
		return 0, errs.Bounds("length %d is higher than %d", length, src.Len()-offset)
	}

	scratch, err := NewShared(src)
	if err != nil {
		return 0, err
	}
	scratch.SetPosition(offset)
	n := 0
	for n < length && s.BytesAvailable() > 0 {
		b, err := scratch.ReadUnsignedByte()
		if err != nil {
			return n, err
		}
		if err := s.WriteUnsignedByte(b); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// WriteRaw writes all of b at the cursor through a scratch stream that
// shares b's bytes.
func (s *Stream) WriteRaw(b []byte) (int, error) {
	if b == nil {
		return 0, errs.InvalidArgument("nil source bytes")
	}
	if len(b) == 0 {
		return 0, nil
	}
	return s.WriteBytes(Wrap(b), 0, len(b))
}
