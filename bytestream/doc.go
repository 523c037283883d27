/*
Package bytestream implements a cursor based binary reader and writer over an
in-memory buffer, in the shape of the ActionScript ByteArray used by AMF
remoting.

A Stream reads and writes primitives at its current position and advances the
position by the primitive's width:

	- bool: one byte, nonzero reads as true.
	- int8/uint8: one byte.
	- int16/uint16, int32/uint32, float32, float64: two, four, four and eight
	  bytes in the stream's byte order (big endian unless changed).
	- int64/uint64: two 32-bit halves, high * 2^32 + low.
	- UTF: a uint16 byte length followed by UTF-8 bytes.
	- varint: little endian base-128 groups with a continuation bit; the
	  unsigned flavor zig-zags first.

No primitive moves the cursor past MaxBufferSize (4096) or past the end of the
buffer. A primitive that would do so fails with errs.ErrBoundsViolation and
leaves both the buffer and the cursor untouched.

Object payloads are handed to an ObjectCodec picked by the stream's object
encoding (AMF0 or AMF3). Encoded objects are prepended to the buffer, so an
envelope is assembled back to front:

	s := bytestream.New(bytestream.WithCodecs(amf.NewCodecs(reg)))
	if err := s.WriteObject(body); err != nil {
		return err
	}
	v, err := s.ReadObject()

Compression replaces the whole buffer with its compressed or decompressed form
and always returns a completed result, even for backends that finish on
another goroutine.
*/
package bytestream
