// Package ximserver drives the server side of an XIM conversation: it
// answers the handshake described in spec §4.5 from the server's end,
// keeps an input-method/input-context table per transport connection,
// and exposes the outward operations (Commit, ForwardEvent, the
// preedit/status callbacks) a host uses to push state to the client.
package ximserver

import (
	"fmt"
	"log"

	"github.com/netrack/xim"
	"github.com/netrack/xim/transport"
)

const (
	icAttrInputStyle        uint16 = 1
	icAttrClientWindow      uint16 = 2
	icAttrFocusWindow       uint16 = 3
	icAttrPreeditAttributes uint16 = 4
	icAttrStatusAttributes  uint16 = 5
	icAttrFilterEvents      uint16 = 6
)

const imAttrQueryInputStyle uint16 = 1

// defaultIcAttrs is the ic_attrs dictionary every Server advertises in
// OpenReply. Names follow the XIM 1.0 core attribute set; the dictionary
// is fixed and not configurable per Server.
var defaultIcAttrs = []xim.Attr{
	{ID: icAttrInputStyle, Type: xim.AttrLong, Name: xim.XimString("inputStyle")},
	{ID: icAttrClientWindow, Type: xim.AttrWindow, Name: xim.XimString("clientWindow")},
	{ID: icAttrFocusWindow, Type: xim.AttrWindow, Name: xim.XimString("focusWindow")},
	{ID: icAttrPreeditAttributes, Type: xim.AttrNestedList, Name: xim.XimString("preeditAttributes")},
	{ID: icAttrStatusAttributes, Type: xim.AttrNestedList, Name: xim.XimString("statusAttributes")},
	{ID: icAttrFilterEvents, Type: xim.AttrLong, Name: xim.XimString("filterEvents")},
}

var defaultImAttrs = []xim.Attr{
	{ID: imAttrQueryInputStyle, Type: xim.AttrStyle, Name: xim.XimString("queryInputStyle")},
}

// InputContext is the server's view of one client input context: its
// ids, the raw attribute values the client pushed through CreateIc or
// SetIcValues, and whether it currently holds input focus.
type InputContext struct {
	ImID  uint16
	IcID  uint16
	Focus bool
	Attrs map[uint16][]byte
}

// Uint32 decodes the named attribute as a native-endian uint32, or
// returns ok=false if it was never set.
func (ic *InputContext) Uint32(id uint16) (v uint32, ok bool) {
	raw, ok := ic.Attrs[id]
	if !ok || len(raw) < 4 {
		return 0, false
	}
	r := xim.NewReader(raw)
	v, err := r.U32()
	return v, err == nil
}

// ClientWindow returns the ic's clientWindow attribute, if the client
// set one.
func (ic *InputContext) ClientWindow() (uint32, bool) { return ic.Uint32(icAttrClientWindow) }

// FocusWindow returns the ic's focusWindow attribute, if the client set
// one.
func (ic *InputContext) FocusWindow() (uint32, bool) { return ic.Uint32(icAttrFocusWindow) }

// Handler is the capability set a host implements to react to client
// requests. Server supplies sensible defaults (DiscardHandler) for
// anything the host doesn't override, mirroring the
// default-handler/override shape the core request multiplexer uses.
type Handler interface {
	// InputStyles lists the input styles the host supports. Server does
	// not call it: OpenReply carries only the attribute dictionaries,
	// and GetIMValues requests are not answered.
	InputStyles() []uint32
	HandleConnect(s *Server) error
	HandleCreateIc(s *Server, ic *InputContext) error
	HandleSetIcValues(s *Server, ic *InputContext, values []xim.AttributeValue) error
	HandleForwardEvent(s *Server, ic *InputContext, xevent [32]byte) error
	HandleResetIc(s *Server, ic *InputContext) (xim.CommitData, error)
	HandleDestroyIc(s *Server, ic *InputContext) error
	HandleDisconnect(s *Server)
}

// DiscardHandler implements Handler with no-op defaults; embed it to
// override only the callbacks a host cares about.
type DiscardHandler struct{}

func (DiscardHandler) InputStyles() []uint32 { return []uint32{0} }
func (DiscardHandler) HandleConnect(*Server) error { return nil }
func (DiscardHandler) HandleCreateIc(*Server, *InputContext) error { return nil }
func (DiscardHandler) HandleSetIcValues(*Server, *InputContext, []xim.AttributeValue) error {
	return nil
}
func (DiscardHandler) HandleForwardEvent(*Server, *InputContext, [32]byte) error { return nil }
func (DiscardHandler) HandleResetIc(*Server, *InputContext) (xim.CommitData, error) {
	return nil, nil
}
func (DiscardHandler) HandleDestroyIc(*Server, *InputContext) error { return nil }
func (DiscardHandler) HandleDisconnect(*Server)                    {}

// Server is the server-side conversation engine for a single transport
// connection. One Server handles exactly one input-method session,
// matching the XIM 1.0 convention that Connect precedes a single Open.
type Server struct {
	conn    *transport.Conn
	handler Handler

	imAttrs []xim.Attr
	icAttrs []xim.Attr

	imID     uint16
	imOpen   bool
	nextIcID uint16
	ics      map[uint16]*InputContext
}

// New creates a Server bound to an already-bootstrapped transport
// connection and handler.
func New(conn *transport.Conn, handler Handler) *Server {
	if handler == nil {
		handler = DiscardHandler{}
	}
	return &Server{
		conn:    conn,
		handler: handler,
		imAttrs: defaultImAttrs,
		icAttrs: defaultIcAttrs,
		ics:     make(map[uint16]*InputContext),
	}
}

// SendReq encodes req and hands it to the transport.
func (s *Server) SendReq(req xim.Message) error {
	return s.conn.Send(xim.Encode(req))
}

// HandleMessage decodes data (a single transport message) and drives
// the server's reaction to it.
func (s *Server) HandleMessage(data []byte) error {
	m, err := xim.Decode(data)
	if err != nil {
		return err
	}
	return s.handle(m)
}

func (s *Server) handle(m xim.Message) error {
	switch req := m.(type) {
	case *xim.Connect:
		if err := s.handler.HandleConnect(s); err != nil {
			return err
		}
		return s.SendReq(&xim.ConnectReply{ServerMajor: 1, ServerMinor: 0})

	case *xim.Open:
		s.imID = 1
		s.imOpen = true
		return s.SendReq(&xim.OpenReply{
			ImID:    s.imID,
			ImAttrs: s.imAttrs,
			IcAttrs: s.icAttrs,
		})

	case *xim.QueryExtension:
		return s.SendReq(&xim.QueryExtensionReply{ImID: req.ImID})

	case *xim.EncodingNegotiation:
		return s.SendReq(&xim.EncodingNegotiationReply{ImID: req.ImID})

	case *xim.CreateIc:
		s.nextIcID++
		ic := &InputContext{
			ImID:  req.ImID,
			IcID:  s.nextIcID,
			Attrs: make(map[uint16][]byte, len(req.IcAttributes)),
		}
		for _, v := range req.IcAttributes {
			ic.Attrs[v.ID] = v.Value
		}
		s.ics[ic.IcID] = ic

		if err := s.handler.HandleCreateIc(s, ic); err != nil {
			return err
		}
		return s.SendReq(&xim.CreateIcReply{ImID: req.ImID, IcID: ic.IcID})

	case *xim.SetIcValues:
		ic, ok := s.ics[req.IcID]
		if !ok {
			return fmt.Errorf("ximserver: SetIcValues for unknown ic %d", req.IcID)
		}
		for _, v := range req.Values {
			ic.Attrs[v.ID] = v.Value
		}
		if err := s.handler.HandleSetIcValues(s, ic, req.Values); err != nil {
			return err
		}
		return s.SendReq(&xim.SetIcValuesReply{ImID: req.ImID, IcID: req.IcID})

	case *xim.GetIcValues:
		ic, ok := s.ics[req.IcID]
		if !ok {
			return fmt.Errorf("ximserver: GetIcValues for unknown ic %d", req.IcID)
		}
		values := make([]xim.AttributeValue, 0, len(req.RequestedIDs))
		for _, id := range req.RequestedIDs {
			if raw, ok := ic.Attrs[id]; ok {
				values = append(values, xim.AttributeValue{ID: id, Value: raw})
			}
		}
		return s.SendReq(&xim.GetIcValuesReply{ImID: req.ImID, IcID: req.IcID, Values: values})

	case *xim.SetIcFocus:
		if ic, ok := s.ics[req.IcID]; ok {
			ic.Focus = true
		}
		return nil

	case *xim.UnsetIcFocus:
		if ic, ok := s.ics[req.IcID]; ok {
			ic.Focus = false
		}
		return nil

	case *xim.DestroyIc:
		ic, ok := s.ics[req.IcID]
		if ok {
			if err := s.handler.HandleDestroyIc(s, ic); err != nil {
				return err
			}
			delete(s.ics, req.IcID)
		}
		return s.SendReq(&xim.DestroyIcReply{ImID: req.ImID, IcID: req.IcID})

	case *xim.ResetIc:
		ic, ok := s.ics[req.IcID]
		if !ok {
			return fmt.Errorf("ximserver: ResetIc for unknown ic %d", req.IcID)
		}
		data, err := s.handler.HandleResetIc(s, ic)
		if err != nil {
			return err
		}
		var preedit xim.XimString
		if chars, ok := data.(xim.CommitChars); ok {
			preedit = chars.Committed
		}
		return s.SendReq(&xim.ResetIcReply{ImID: req.ImID, IcID: req.IcID, PreeditString: preedit})

	case *xim.ForwardEvent:
		ic, ok := s.ics[req.IcID]
		if !ok {
			return fmt.Errorf("ximserver: ForwardEvent for unknown ic %d", req.IcID)
		}
		return s.handler.HandleForwardEvent(s, ic, req.XEvent)

	case *xim.Sync:
		return s.SendReq(&xim.SyncReply{ImID: req.ImID, IcID: req.IcID})

	case *xim.SyncIc:
		return s.SendReq(&xim.SyncIcReply{ImID: req.ImID, IcID: req.IcID})

	case *xim.Close:
		s.imOpen = false
		return s.SendReq(&xim.CloseReply{ImID: req.ImID})

	case *xim.Disconnect:
		s.handler.HandleDisconnect(s)
		return s.SendReq(&xim.DisconnectReply{})

	default:
		log.Printf("ximserver: unhandled request %T", req)
		return nil
	}
}

// Commit pushes committed text or a composed keysym to the client.
func (s *Server) Commit(imID, icID uint16, data xim.CommitData) error {
	flags := uint16(0)
	switch data.(type) {
	case xim.CommitKeysym:
		flags = xim.CommitFlagKeysym
	case xim.CommitChars:
		flags = xim.CommitFlagChars
	case xim.CommitBoth:
		flags = xim.CommitFlagKeysym | xim.CommitFlagChars
	}
	return s.SendReq(&xim.Commit{ImID: imID, IcID: icID, Flags: flags, Data: data})
}

// CommitString is a convenience wrapper around Commit for the common
// case of committing plain text.
func (s *Server) CommitString(imID, icID uint16, text string) error {
	return s.Commit(imID, icID, xim.CommitChars{Committed: xim.XimString(text)})
}

// ForwardEvent relays a raw X event back to the client, stamped with
// serial.
func (s *Server) ForwardEvent(imID, icID uint16, serial uint16, xevent [32]byte) error {
	return s.SendReq(&xim.ForwardEvent{ImID: imID, IcID: icID, Serial: serial, XEvent: xevent})
}

// PreeditDraw replaces a span of the preedit string the client
// displays.
func (s *Server) PreeditDraw(imID, icID uint16, caret, chgFirst, chgLength int32, text string, feedback []uint32) error {
	return s.SendReq(&xim.PreeditDraw{
		ImID:          imID,
		IcID:          icID,
		Caret:         caret,
		ChgFirst:      chgFirst,
		ChgLength:     chgLength,
		PreeditString: xim.XimString(text),
		Feedback:      feedback,
	})
}

// PreeditCaret moves the preedit caret.
func (s *Server) PreeditCaret(imID, icID uint16, position int32, direction, style uint32) error {
	return s.SendReq(&xim.PreeditCaret{ImID: imID, IcID: icID, Position: position, Direction: direction, Style: style})
}

// StatusDraw updates the text shown in the client's status area.
func (s *Server) StatusDraw(imID, icID uint16, text string, feedback []uint32) error {
	return s.SendReq(&xim.StatusDraw{ImID: imID, IcID: icID, StatusString: xim.XimString(text), Feedback: feedback})
}

// SetEventMask updates which X events the client should forward to the
// server, and which it must forward synchronously.
func (s *Server) SetEventMask(imID, icID uint16, forward, synchronous uint32) error {
	return s.SendReq(&xim.SetEventMask{ImID: imID, IcID: icID, ForwardEventMask: forward, SynchronousEventMask: synchronous})
}
