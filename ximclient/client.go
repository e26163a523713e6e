// Package ximclient drives the client side of an XIM conversation: the
// handshake state machine described in spec §4.5, an input-context
// table, and an attribute builder for encoding CreateIc/SetIcValues
// payloads against the dictionaries the server hands back in OpenReply.
package ximclient

import (
	"errors"
	"fmt"
	"log"

	"github.com/netrack/xim"
	"github.com/netrack/xim/transport"
)

// HandshakePhase enumerates the client's connection-wide negotiation
// state.
type HandshakePhase int

const (
	PhaseInit HandshakePhase = iota
	PhaseAwaitingConnectReply
	PhaseAwaitingOpenReply
	PhaseAwaitingQueryExtensionReply
	PhaseAwaitingEncodingNegotiationReply
	PhaseOpen
)

func (p HandshakePhase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseAwaitingConnectReply:
		return "AwaitingConnectReply"
	case PhaseAwaitingOpenReply:
		return "AwaitingOpenReply"
	case PhaseAwaitingQueryExtensionReply:
		return "AwaitingQueryExtensionReply"
	case PhaseAwaitingEncodingNegotiationReply:
		return "AwaitingEncodingNegotiationReply"
	case PhaseOpen:
		return "Open"
	default:
		return "Unknown"
	}
}

// ICPhase enumerates the lifecycle of a single input context.
type ICPhase int

const (
	ICCreating ICPhase = iota
	ICOpen
	ICFocused
	ICDestroying
)

// ErrXim wraps a Request::Error the server sent back for a pending
// operation. The engine surfaces it to the host without tearing the
// connection down.
type ErrXim struct {
	Code   uint16
	Detail string
}

func (e *ErrXim) Error() string {
	return fmt.Sprintf("ximclient: server error %d: %s", e.Code, e.Detail)
}

var errUnexpectedReply = errors.New("ximclient: reply received outside its expected phase")

// icState is the client's own view of one input context.
type icState struct {
	imID  uint16
	icID  uint16
	phase ICPhase
}

// Handler receives the events FilterEvent cannot resolve by itself:
// committed text, forwarded key events, and protocol errors.
type Handler interface {
	HandleCommit(imID, icID uint16, data xim.CommitData)
	HandleForwardEvent(imID, icID uint16, xevent [32]byte)
	HandleError(err *ErrXim)
}

// DiscardHandler ignores every callback; useful for tests or hosts that
// only care about the handshake completing.
type DiscardHandler struct{}

func (DiscardHandler) HandleCommit(uint16, uint16, xim.CommitData) {}
func (DiscardHandler) HandleForwardEvent(uint16, uint16, [32]byte) {}
func (DiscardHandler) HandleError(*ErrXim)                        {}

// Client is the client-side conversation engine for a single transport
// connection.
type Client struct {
	conn    *transport.Conn
	handler Handler

	phase HandshakePhase
	imID  uint16
	ics   map[uint16]*icState

	imAttrsByName map[string]xim.Attr
	icAttrsByName map[string]xim.Attr

	forwardEventMask     uint32
	synchronousEventMask uint32

	serial uint16
	locale string
}

// New creates a Client bound to an already-bootstrapped transport
// connection and handler. The caller still must send Connect to start
// the handshake.
func New(conn *transport.Conn, handler Handler) *Client {
	if handler == nil {
		handler = DiscardHandler{}
	}
	return &Client{
		conn:    conn,
		handler: handler,
		ics:     make(map[uint16]*icState),
	}
}

// Phase reports the client's current handshake phase.
func (c *Client) Phase() HandshakePhase { return c.phase }

// SendReq encodes req and hands it to the transport.
func (c *Client) SendReq(req xim.Message) error {
	return c.conn.Send(xim.Encode(req))
}

// Connect starts the handshake by sending a Connect request for the
// given locale, to be followed by Open once ConnectReply arrives.
func (c *Client) Connect(locale string) error {
	c.phase = PhaseAwaitingConnectReply
	c.locale = locale

	return c.SendReq(&xim.Connect{
		ClientEndian: xim.HostEndian(),
		ClientMajor:  1,
		ClientMinor:  0,
	})
}

// FilterEvent decodes data (a single transport message) and drives the
// state machine. It returns true if the message was recognized and
// consumed.
func (c *Client) FilterEvent(data []byte) (bool, error) {
	m, err := xim.Decode(data)
	if err != nil {
		return false, err
	}
	return true, c.handle(m)
}

func (c *Client) handle(m xim.Message) error {
	switch req := m.(type) {
	case *xim.ConnectReply:
		if c.phase != PhaseAwaitingConnectReply {
			return errUnexpectedReply
		}
		c.phase = PhaseAwaitingOpenReply
		return c.SendReq(&xim.Open{Name: xim.XimString(c.locale)})

	case *xim.OpenReply:
		if c.phase != PhaseAwaitingOpenReply {
			return errUnexpectedReply
		}
		c.imID = req.ImID
		c.SetAttrs(req.ImAttrs, req.IcAttrs)
		c.phase = PhaseAwaitingQueryExtensionReply
		return c.SendReq(&xim.QueryExtension{ImID: c.imID})

	case *xim.QueryExtensionReply:
		if c.phase != PhaseAwaitingQueryExtensionReply {
			return errUnexpectedReply
		}
		c.phase = PhaseAwaitingEncodingNegotiationReply
		return c.SendReq(&xim.EncodingNegotiation{
			ImID:      c.imID,
			Encodings: []xim.XimString{xim.XimString("COMPOUND_TEXT"), xim.XimString("")},
		})

	case *xim.EncodingNegotiationReply:
		if c.phase != PhaseAwaitingEncodingNegotiationReply {
			return errUnexpectedReply
		}
		c.phase = PhaseOpen
		return nil

	case *xim.SetEventMask:
		c.forwardEventMask = req.ForwardEventMask
		c.synchronousEventMask = req.SynchronousEventMask
		return nil

	case *xim.CreateIcReply:
		c.ics[req.IcID] = &icState{imID: req.ImID, icID: req.IcID, phase: ICOpen}
		return nil

	case *xim.DestroyIcReply:
		delete(c.ics, req.IcID)
		return nil

	case *xim.ForwardEvent:
		c.handler.HandleForwardEvent(req.ImID, req.IcID, req.XEvent)
		return nil

	case *xim.Commit:
		c.handler.HandleCommit(req.ImID, req.IcID, req.Data)
		return nil

	case *xim.Error:
		c.handler.HandleError(&ErrXim{Code: req.Code, Detail: string(req.Detail)})
		return nil

	case *xim.DisconnectReply:
		c.phase = PhaseInit
		return nil

	default:
		log.Printf("ximclient: unhandled request %T", req)
		return nil
	}
}

// SetAttrs records the im/ic attribute dictionaries OpenReply handed
// back, indexed by name for the attribute builder.
func (c *Client) SetAttrs(imAttrs, icAttrs []xim.Attr) {
	c.imAttrsByName = make(map[string]xim.Attr, len(imAttrs))
	for _, a := range imAttrs {
		c.imAttrsByName[a.Name.String()] = a
	}

	c.icAttrsByName = make(map[string]xim.Attr, len(icAttrs))
	for _, a := range icAttrs {
		c.icAttrsByName[a.Name.String()] = a
	}
}

// SetEventMask updates the locally tracked forward/synchronous event
// masks (mirroring what the server last pushed via SetEventMask).
func (c *Client) SetEventMask(forward, synchronous uint32) {
	c.forwardEventMask = forward
	c.synchronousEventMask = synchronous
}

// nextSerial increments and returns the serial number ForwardKeyPress
// stamps onto outbound ForwardEvent requests.
func (c *Client) nextSerial() uint16 {
	c.serial++
	return c.serial
}

// ForwardKeyPress encodes a raw X KeyPress/KeyRelease event (32 bytes,
// verbatim) into a ForwardEvent and sends it.
func (c *Client) ForwardKeyPress(imID, icID uint16, xevent [32]byte) error {
	return c.SendReq(&xim.ForwardEvent{
		ImID:   imID,
		IcID:   icID,
		Serial: c.nextSerial(),
		XEvent: xevent,
	})
}

// BuildIcAttributes starts an AttributeBuilder against the client's
// current ic_attrs dictionary.
func (c *Client) BuildIcAttributes() *AttributeBuilder {
	return &AttributeBuilder{dict: c.icAttrsByName}
}
