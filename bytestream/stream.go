package bytestream

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"amfkit/compression"
	"amfkit/errs"
	"amfkit/log"
)

const (
	// MaxBufferSize is the hard ceiling on any stream's cursor.
	MaxBufferSize = 4096
	// DefaultCapacity is the buffer size of streams created without one.
	DefaultCapacity = MaxBufferSize
	// MaxUTFLength is the longest string a uint16 length prefix can describe.
	MaxUTFLength = 65535

	DefaultCompressionTimeout = 30 * time.Second
)

type Endian int

const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) String() string {
	if e == LittleEndian {
		return "littleEndian"
	}
	return "bigEndian"
}

func (e Endian) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ObjectEncoding is the AMF protocol version used by ReadObject and
// WriteObject.
type ObjectEncoding uint8

const (
	AMF0 ObjectEncoding = 0
	AMF3 ObjectEncoding = 3
)

func (o ObjectEncoding) Valid() bool {
	return o == AMF0 || o == AMF3
}

var (
	logger             = log.WithModule("bytestream")
	defaultCompressors = compression.DefaultRegistry()
)

type Stream struct {
	buf             *Buffer
	pos             int
	endian          Endian
	order           binary.ByteOrder
	objectEncoding  ObjectEncoding
	codecs          CodecSet
	compressors     *compression.Registry
	compressTimeout time.Duration
	lgr             log.Logger
}

type Option func(s *Stream)

func WithEndian(e Endian) Option {
	return func(s *Stream) {
		s.SetEndian(e)
	}
}

// WithObjectEncoding sets the initial object encoding. Unrecognized versions
// are ignored and the default (AMF3) is kept.
func WithObjectEncoding(o ObjectEncoding) Option {
	return func(s *Stream) {
		_ = s.SetObjectEncoding(o)
	}
}

func WithCodecs(c CodecSet) Option {
	return func(s *Stream) {
		s.codecs = c
	}
}

func WithCompressors(r *compression.Registry) Option {
	return func(s *Stream) {
		s.compressors = r
	}
}

// WithCompressionTimeout bounds every compression call. Zero disables the
// timeout.
func WithCompressionTimeout(d time.Duration) Option {
	return func(s *Stream) {
		s.compressTimeout = d
	}
}

func WithLogger(lgr log.Logger) Option {
	return func(s *Stream) {
		s.lgr = lgr
	}
}

// New returns a stream over a zeroed buffer of DefaultCapacity bytes.
func New(opts ...Option) *Stream {
	return newStream(NewBuffer(DefaultCapacity), opts)
}

// NewSize returns a stream over a zeroed buffer of size bytes.
func NewSize(size int, opts ...Option) (*Stream, error) {
	if size < 0 {
		return nil, errs.InvalidArgument("negative capacity %d", size)
	}
	return newStream(NewBuffer(size), opts), nil
}

// NewShared returns a stream with its own cursor over other's buffer. The
// new stream inherits other's settings before opts are applied.
func NewShared(other *Stream, opts ...Option) (*Stream, error) {
	if other == nil {
		return nil, errs.InvalidArgument("nil source stream")
	}
	s := &Stream{
		buf:             other.buf,
		endian:          other.endian,
		order:           other.order,
		objectEncoding:  other.objectEncoding,
		codecs:          other.codecs,
		compressors:     other.compressors,
		compressTimeout: other.compressTimeout,
		lgr:             other.lgr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Wrap returns a stream over b without copying it.
func Wrap(b []byte, opts ...Option) *Stream {
	return newStream(&Buffer{data: b}, opts)
}

func newStream(buf *Buffer, opts []Option) *Stream {
	s := &Stream{
		buf:             buf,
		endian:          BigEndian,
		order:           binary.BigEndian,
		objectEncoding:  AMF3,
		compressors:     defaultCompressors,
		compressTimeout: DefaultCompressionTimeout,
		lgr:             logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stream) Buffer() *Buffer {
	return s.buf
}

// Bytes returns the whole buffer, regardless of the cursor.
func (s *Stream) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *Stream) Position() int {
	return s.pos
}

// SetPosition moves the cursor. It is not checked here; the next primitive
// fails if the cursor is out of range.
func (s *Stream) SetPosition(pos int) {
	s.pos = pos
}

func (s *Stream) Len() int {
	return s.buf.Len()
}

// SetLen truncates or zero-extends the buffer. The cursor is not moved.
func (s *Stream) SetLen(n int) error {
	if n < 0 {
		return errs.InvalidArgument("negative length %d", n)
	}
	s.buf.resize(n)
	return nil
}

// BytesAvailable is Len minus Position, floored to zero.
func (s *Stream) BytesAvailable() int {
	n := s.buf.Len() - s.pos
	if n < 0 {
		return 0
	}
	return n
}

func (s *Stream) Endian() Endian {
	return s.endian
}

func (s *Stream) SetEndian(e Endian) {
	s.endian = e
	s.order = e.order()
}

func (s *Stream) ObjectEncoding() ObjectEncoding {
	return s.objectEncoding
}

func (s *Stream) SetObjectEncoding(o ObjectEncoding) error {
	if !o.Valid() {
		return errs.Unsupported("invalid AMF version %d", o)
	}
	s.objectEncoding = o
	return nil
}

// Reset moves the cursor to the start of the buffer.
func (s *Stream) Reset() {
	s.pos = 0
}

// Clear discards the buffer and replaces it with a zeroed buffer of
// DefaultCapacity bytes.
func (s *Stream) Clear() {
	s.buf.replace(make([]byte, DefaultCapacity))
	s.pos = 0
}

// Fill overwrites the first n bytes with v. n is clamped to the buffer.
func (s *Stream) Fill(n int, v byte) []byte {
	data := s.buf.Bytes()
	if n > len(data) {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		data[i] = v
	}
	return data
}

// String decodes the bytes from the cursor to the end of the buffer as UTF-8.
func (s *Stream) String() string {
	if s.pos < 0 || s.pos >= s.buf.Len() {
		return ""
	}
	return string(s.buf.Bytes()[s.pos:])
}

// MarshalJSON renders the buffer as {"type":"Buffer","data":[...]}.
func (s *Stream) MarshalJSON() ([]byte, error) {
	data := s.buf.Bytes()
	ints := make([]int, len(data))
	for i, b := range data {
		ints[i] = int(b)
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Data []int  `json:"data"`
	}{
		"Buffer",
		ints,
	})
}

// check reports whether n bytes can be consumed at the cursor.
func (s *Stream) check(n int) error {
	if n < 0 {
		return errs.InvalidArgument("negative width %d", n)
	}
	end := s.pos + n
	if end > MaxBufferSize {
		return errs.Bounds("position %d exceeds max buffer size %d", end, MaxBufferSize)
	}
	if s.pos < 0 || end > s.buf.Len() {
		return errs.Bounds("%d bytes at position %d exceed buffer length %d", n, s.pos, s.buf.Len())
	}
	return nil
}

// advance reserves n bytes at the cursor and returns them.
func (s *Stream) advance(n int) ([]byte, error) {
	if err := s.check(n); err != nil {
		return nil, err
	}
	start := s.pos
	s.pos += n
	return s.buf.Bytes()[start:s.pos], nil
}
