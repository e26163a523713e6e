package xim

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream is returned when a read needs more bytes than the
	// message has left.
	ErrEndOfStream = errors.New("xim: end of stream")

	// ErrNotNativeEndian is returned when a Connect message's endian tag
	// does not match the host's own byte order.
	ErrNotNativeEndian = errors.New("xim: message is not native endian")
)

// InvalidDataError reports a field whose wire value is not one of the
// values the decoder understands — an unknown opcode, an unknown
// AttrType discriminant, and so on.
type InvalidDataError struct {
	Type  string
	Value string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("xim: invalid %s: %s", e.Type, e.Value)
}

func invalidData(typ string, value interface{}) error {
	return &InvalidDataError{Type: typ, Value: fmt.Sprint(value)}
}

// ProtocolError wraps a Request::Error received from the peer. It
// surfaces the failure of whatever operation was pending without
// unilaterally tearing down the session — the host decides what to do
// next.
type ProtocolError struct {
	Code   uint16
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("xim: protocol error %d: %s", e.Code, e.Detail)
}

// TransportError wraps a failure of the underlying X11 connection (atom
// interning, property access, ClientMessage delivery). It is always
// fatal for the session it occurred on.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("xim: transport: %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
