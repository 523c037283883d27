package amf

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// reader is a cursor over the bytes handed to DecodeObject.
type reader struct {
	b   []byte
	pos int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.b) {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "need %d bytes at offset %d", n, r.pos)
	}
	out := r.b[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) ReadByte() (byte, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) float64() (float64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// writer accumulates an encoding in memory. Appends cannot fail.
type writer struct {
	buf []byte
}

func (w *writer) byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) uint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

func (w *writer) uint32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *writer) float64(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf = append(w.buf, b[:]...)
}
