// Package amf implements the AMF0 and AMF3 object codecs used by
// bytestream.Stream.ReadObject and WriteObject.
package amf

import (
	"amfkit/alias"
	"amfkit/bytestream"
	"amfkit/log"
)

// AMF0 markers
const (
	amf0Number        = 0x00
	amf0Boolean       = 0x01
	amf0String        = 0x02
	amf0Object        = 0x03
	amf0Movieclip     = 0x04
	amf0Null          = 0x05
	amf0Undefined     = 0x06
	amf0Reference     = 0x07
	amf0EcmaArray     = 0x08
	amf0ObjectEnd     = 0x09
	amf0StrictArray   = 0x0a
	amf0Date          = 0x0b
	amf0LongString    = 0x0c
	amf0Unsupported   = 0x0d
	amf0Recordset     = 0x0e
	amf0XMLDocument   = 0x0f
	amf0TypedObject   = 0x10
	amf0AvmplusObject = 0x11
)

// AMF3 markers
const (
	amf3Undefined    = 0x00
	amf3Null         = 0x01
	amf3False        = 0x02
	amf3True         = 0x03
	amf3Integer      = 0x04
	amf3Double       = 0x05
	amf3String       = 0x06
	amf3XMLDoc       = 0x07
	amf3Date         = 0x08
	amf3Array        = 0x09
	amf3Object       = 0x0a
	amf3XML          = 0x0b
	amf3ByteArray    = 0x0c
	amf3VectorInt    = 0x0d
	amf3VectorUint   = 0x0e
	amf3VectorDouble = 0x0f
	amf3VectorObject = 0x10
	amf3Dictionary   = 0x11
)

const (
	// MinInt29 and MaxInt29 bound the integers AMF3 encodes as U29. Anything
	// outside is written as a double.
	MinInt29 = -1 << 28
	MaxInt29 = 1<<28 - 1

	maxU29 = 1<<29 - 1
)

var logger = log.WithModule("amf")

// Undefined is the decoded form of the undefined marker. Encoding it writes
// undefined rather than null.
type Undefined struct{}

// ECMAArray is an associative array. It decodes from AMF0 ECMA arrays and
// from AMF3 arrays with an associative part. An empty ECMAArray written as
// AMF3 is the same bytes as an empty dense array and decodes as
// []interface{}{}; AMF0 keeps the type.
type ECMAArray map[string]interface{}

// TypedObject is an object with a class name. ClassName is the qualified
// name when the wire alias is registered, otherwise the alias itself.
type TypedObject struct {
	ClassName string
	Members   map[string]interface{}
}

// NewCodecs returns the AMF0 and AMF3 codecs keyed by object encoding. reg
// translates between wire aliases and class names and may be nil.
func NewCodecs(reg *alias.Registry) bytestream.Codecs {
	return bytestream.Codecs{
		bytestream.AMF0: NewAMF0(reg),
		bytestream.AMF3: NewAMF3(reg),
	}
}

// wireAlias returns the alias a class name is sent as.
func wireAlias(reg *alias.Registry, className string) string {
	if reg == nil || className == "" {
		return className
	}
	if a, ok, _ := reg.AliasByClassName(className); ok {
		return a
	}
	return className
}

// className is the inverse of wireAlias.
func className(reg *alias.Registry, wire string) string {
	if reg == nil || wire == "" {
		return wire
	}
	if name, ok, _ := reg.ClassNameByAlias(wire); ok {
		return name
	}
	logger.Trace("unregistered class alias", "alias", wire)
	return wire
}
