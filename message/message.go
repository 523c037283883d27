// Package message models one AMF remoting packet: a version, ordered
// headers and ordered bodies.
package message

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultVersion is used when a message is created with version 0.
const DefaultVersion uint16 = 3

// ErrMustUnderstand is returned by Validate for a must-understand header the
// receiver cannot process.
var ErrMustUnderstand = errors.New("must understand header not recognized")

type Message struct {
	Version uint16

	headers []*Header
	bodies  []*Body
}

// New returns an empty message. A zero version means DefaultVersion; set
// Version afterwards for AMF0 packets.
func New(version uint16) *Message {
	if version == 0 {
		version = DefaultVersion
	}
	return &Message{Version: version}
}

func (m *Message) AddHeader(h *Header) {
	m.headers = append(m.headers, h)
}

func (m *Message) AddBody(b *Body) {
	m.bodies = append(m.bodies, b)
}

// Headers returns the headers in the order they were added.
func (m *Message) Headers() []*Header {
	return append([]*Header(nil), m.headers...)
}

func (m *Message) Bodies() []*Body {
	return append([]*Body(nil), m.bodies...)
}

func (m *Message) HeaderCount() int {
	return len(m.headers)
}

func (m *Message) BodyCount() int {
	return len(m.bodies)
}

// HeaderAt returns the i-th header, or nil when there is none.
func (m *Message) HeaderAt(i int) *Header {
	if i < 0 || i >= len(m.headers) {
		return nil
	}
	return m.headers[i]
}

// BodyAt returns the i-th body, or nil when there is none.
func (m *Message) BodyAt(i int) *Body {
	if i < 0 || i >= len(m.bodies) {
		return nil
	}
	return m.bodies[i]
}

// Header returns the first header called name.
func (m *Message) Header(name string) (*Header, bool) {
	for _, h := range m.headers {
		if h.Name == name {
			return h, true
		}
	}
	return nil, false
}

// Validate fails with ErrMustUnderstand on the first must-understand header
// known does not accept. A nil known accepts nothing.
func (m *Message) Validate(known func(name string) bool) error {
	for _, h := range m.headers {
		if !h.MustUnderstand {
			continue
		}
		if known == nil || !known(h.Name) {
			return errors.Wrapf(ErrMustUnderstand, "header %q", h.Name)
		}
	}
	return nil
}

type Header struct {
	Name           string
	MustUnderstand bool
	Data           interface{}
}

func NewHeader(name string, mustUnderstand bool, data interface{}) *Header {
	return &Header{
		Name:           name,
		MustUnderstand: mustUnderstand,
		Data:           data,
	}
}

// Body is one request or reply. TargetURI addresses the remote operation,
// ResponseURI the channel the reply goes to.
type Body struct {
	targetURI   string
	responseURI string
	data        interface{}
}

func NewBody(targetURI, responseURI string, data interface{}) *Body {
	return &Body{
		targetURI:   targetURI,
		responseURI: responseURI,
		data:        data,
	}
}

func (b *Body) TargetURI() string {
	return b.targetURI
}

func (b *Body) SetTargetURI(uri string) {
	b.targetURI = uri
}

func (b *Body) ResponseURI() string {
	return b.responseURI
}

func (b *Body) SetResponseURI(uri string) {
	b.responseURI = uri
}

func (b *Body) Data() interface{} {
	return b.data
}

func (b *Body) SetData(data interface{}) {
	b.data = data
}

// ReplyMethod returns the last path segment of the target URI.
func (b *Body) ReplyMethod() string {
	return b.targetURI[strings.LastIndex(b.targetURI, "/")+1:]
}

// SetReplyMethod points the target URI at name. A trailing /onStatus or
// /onResult is replaced rather than extended, so "Comp/method/onStatus"
// becomes "Comp/method/onResult" for name "onResult".
func (b *Body) SetReplyMethod(name string) {
	target := b.targetURI
	for _, suffix := range []string{"/onStatus", "/onResult"} {
		if strings.HasSuffix(target, suffix) {
			target = strings.TrimSuffix(target, suffix)
			break
		}
	}
	if target != "" && !strings.HasSuffix(target, "/") {
		target += "/"
	}
	b.targetURI = target + name
}
