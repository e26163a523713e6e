// Package transport frames XIM protocol messages over the X11
// ClientMessage/property delivery mechanism described in the XIM
// transport specification. It never talks to an X server directly —
// X11Conn is a narrow capability contract that any X11 connection
// library can satisfy, kept deliberately free of a concrete binding the
// way the core codec is kept free of a concrete COMPOUND_TEXT encoder.
package transport

import (
	"fmt"

	"github.com/netrack/xim"
)

// Atom is an X11 interned string identifier.
type Atom uint32

// Window is an X11 window id.
type Window uint32

// PropertyMode selects how ChangeProperty combines new data with
// whatever the property already holds.
type PropertyMode uint8

const (
	PropModeReplace PropertyMode = iota
	PropModeAppend
)

// Well-known atom names the transport interns at startup, bit-exact per
// the XIM transport specification.
const (
	AtomXimServers  = "_XIM_SERVERS"
	AtomXimXConnect = "_XIM_XCONNECT"
	AtomXimProtocol = "_XIM_PROTOCOL"
	AtomXimMoreData = "_XIM_MOREDATA"
	AtomLocales     = "LOCALES"
	AtomTransport   = "TRANSPORT"
)

// ServerSelectionName builds the "@server=<name>" selection atom name a
// client interns to locate a running server.
func ServerSelectionName(serverName string) string {
	return fmt.Sprintf("@server=%s", serverName)
}

// inlineThreshold is the largest message that fits in a format-8
// ClientMessage's 20-byte payload. Anything bigger is delivered via
// property spillover.
const inlineThreshold = 20

// ClientMessageEvent is the subset of an X11 ClientMessage event the
// transport needs: the window it targets, the atom naming its type, its
// format (8 or 32), and its raw data words.
type ClientMessageEvent struct {
	Window Window
	Type   Atom
	Format uint8
	Data   [20]byte
}

// PropertyNotifyEvent is the subset of an X11 PropertyNotify event the
// transport needs.
type PropertyNotifyEvent struct {
	Window Window
	Atom   Atom
}

// X11Conn is the narrow capability contract the transport consumes. A
// concrete X11 connection library (xgb, x11rb-via-cgo, whatever the host
// links against) implements this directly against its own types.
type X11Conn interface {
	InternAtom(name string, onlyIfExists bool) (Atom, error)
	GetSelectionOwner(selection Atom) (Window, error)
	GenerateID() (Window, error)
	CreateWindow(parent Window) (Window, error)
	SendClientMessage(target Window, msg ClientMessageEvent) error
	ChangeProperty(win Window, property, typ Atom, format uint8, mode PropertyMode, data []byte) error
	GetProperty(win Window, property Atom, delete bool) (data []byte, typ Atom, format uint8, err error)
	DeleteProperty(win Window, property Atom) error
}

// Conn frames and delivers XIM requests over a single negotiated
// transport connection: an owning X11Conn, this side's own communication
// window, and the peer window ClientMessage traffic is addressed to.
// Spillover properties are staged on the window the ClientMessage
// targets, so each side reads them from its own window.
type Conn struct {
	x X11Conn

	propertyWindow Window
	peerWindow     Window

	protocolAtom Atom
	moreDataAtom Atom

	spilloverAtom Atom
	spilloverName string

	queue [][]byte
}

// newConn interns the atoms every Conn needs and wires them to x.
func newConn(x X11Conn, propertyWindow, peerWindow Window) (*Conn, error) {
	protocolAtom, err := x.InternAtom(AtomXimProtocol, false)
	if err != nil {
		return nil, fmt.Errorf("xim/transport: intern %s: %w", AtomXimProtocol, err)
	}

	moreDataAtom, err := x.InternAtom(AtomXimMoreData, false)
	if err != nil {
		return nil, fmt.Errorf("xim/transport: intern %s: %w", AtomXimMoreData, err)
	}

	return &Conn{
		x:              x,
		propertyWindow: propertyWindow,
		peerWindow:     peerWindow,
		protocolAtom:   protocolAtom,
		moreDataAtom:   moreDataAtom,
		spilloverName:  "_XIM_GOLANG_SPILL",
	}, nil
}

// Send frames msg and delivers it to the peer: inline as a single
// format-8 ClientMessage if it fits in 20 bytes, otherwise as a window
// property plus a format-32 ClientMessage pointing at it.
func (c *Conn) Send(msg []byte) error {
	if len(msg) <= inlineThreshold {
		var ev ClientMessageEvent
		ev.Window = c.peerWindow
		ev.Type = c.protocolAtom
		ev.Format = 8
		copy(ev.Data[:], msg)
		return c.x.SendClientMessage(c.peerWindow, ev)
	}

	atom, err := c.spilloverAtomID()
	if err != nil {
		return err
	}

	if err := c.x.ChangeProperty(c.peerWindow, atom, c.protocolAtom, 8, PropModeReplace, msg); err != nil {
		return fmt.Errorf("xim/transport: write spillover property: %w", err)
	}

	var ev ClientMessageEvent
	ev.Window = c.peerWindow
	ev.Type = c.protocolAtom
	ev.Format = 32
	putU32(ev.Data[0:4], uint32(len(msg)))
	putU32(ev.Data[4:8], uint32(atom))

	return c.x.SendClientMessage(c.peerWindow, ev)
}

// spilloverAtomID interns the spillover property atom once per session
// and reuses it afterward, per spec §5's "interned once per session and
// reused" resource policy.
func (c *Conn) spilloverAtomID() (Atom, error) {
	if c.spilloverAtom != 0 {
		return c.spilloverAtom, nil
	}

	atom, err := c.x.InternAtom(c.spilloverName, false)
	if err != nil {
		return 0, fmt.Errorf("xim/transport: intern spillover atom: %w", err)
	}

	c.spilloverAtom = atom
	return atom, nil
}

// HandleClientMessage demultiplexes an inbound ClientMessage. It returns
// false if the event isn't addressed to this transport's protocol atom.
// A fully assembled message is appended to the internal queue and can be
// retrieved with Recv.
func (c *Conn) HandleClientMessage(ev ClientMessageEvent) (bool, error) {
	if ev.Type != c.protocolAtom {
		return false, nil
	}

	switch ev.Format {
	case 8:
		c.queue = append(c.queue, append([]byte(nil), ev.Data[:]...))
		return true, nil

	case 32:
		length := getU32(ev.Data[0:4])
		atom := Atom(getU32(ev.Data[4:8]))

		data, _, _, err := c.x.GetProperty(ev.Window, atom, true)
		if err != nil {
			return true, fmt.Errorf("xim/transport: read spillover property: %w", err)
		}
		if uint32(len(data)) < length {
			return true, xim.ErrEndOfStream
		}

		c.queue = append(c.queue, data[:length])
		return true, nil

	default:
		return true, fmt.Errorf("xim/transport: unexpected ClientMessage format %d", ev.Format)
	}
}

// HandlePropertyNotify is a no-op hook kept for X11 bindings that
// deliver spillover completion via PropertyNotify rather than via the
// format-32 ClientMessage alone; this transport's framing (spec §4.4)
// carries everything it needs in the ClientMessage itself; the hook
// exists so callers can still wire PropertyNotify without special-casing
// it out of their event loop.
func (c *Conn) HandlePropertyNotify(ev PropertyNotifyEvent) {}

// Recv pops the next fully assembled message, or returns ok=false if
// none is queued yet.
func (c *Conn) Recv() (msg []byte, ok bool) {
	if len(c.queue) == 0 {
		return nil, false
	}

	msg, c.queue = c.queue[0], c.queue[1:]
	return msg, true
}

// Decode is a convenience wrapper that pops the next queued message and
// decodes it into an xim.Message.
func (c *Conn) Decode() (xim.Message, bool, error) {
	b, ok := c.Recv()
	if !ok {
		return nil, false, nil
	}

	m, err := xim.Decode(b)
	return m, true, err
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
