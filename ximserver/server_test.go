package ximserver

import (
	"testing"

	"github.com/netrack/xim"
	"github.com/netrack/xim/transport"
)

// fakeX11Conn is a minimal in-memory transport.X11Conn sufficient to
// carry one client/server transport.Conn pair without an X server.
type fakeX11Conn struct {
	atoms      map[string]transport.Atom
	nextAtom   transport.Atom
	nextWindow transport.Window
	owners     map[transport.Atom]transport.Window
	props      map[transport.Window]map[transport.Atom][]byte
	sent       map[transport.Window][]transport.ClientMessageEvent
}

func newFakeX11Conn() *fakeX11Conn {
	return &fakeX11Conn{
		atoms:  make(map[string]transport.Atom),
		owners: make(map[transport.Atom]transport.Window),
		props:  make(map[transport.Window]map[transport.Atom][]byte),
		sent:   make(map[transport.Window][]transport.ClientMessageEvent),
	}
}

func (f *fakeX11Conn) InternAtom(name string, onlyIfExists bool) (transport.Atom, error) {
	if a, ok := f.atoms[name]; ok {
		return a, nil
	}
	f.nextAtom++
	f.atoms[name] = f.nextAtom
	return f.nextAtom, nil
}

func (f *fakeX11Conn) GetSelectionOwner(selection transport.Atom) (transport.Window, error) {
	return f.owners[selection], nil
}

func (f *fakeX11Conn) GenerateID() (transport.Window, error) {
	f.nextWindow++
	return f.nextWindow, nil
}

func (f *fakeX11Conn) CreateWindow(parent transport.Window) (transport.Window, error) {
	return f.GenerateID()
}

func (f *fakeX11Conn) SendClientMessage(target transport.Window, msg transport.ClientMessageEvent) error {
	f.sent[target] = append(f.sent[target], msg)
	return nil
}

func (f *fakeX11Conn) ChangeProperty(win transport.Window, property, typ transport.Atom, format uint8, mode transport.PropertyMode, data []byte) error {
	if f.props[win] == nil {
		f.props[win] = make(map[transport.Atom][]byte)
	}
	f.props[win][property] = append([]byte(nil), data...)
	return nil
}

func (f *fakeX11Conn) GetProperty(win transport.Window, property transport.Atom, del bool) ([]byte, transport.Atom, uint8, error) {
	data := f.props[win][property]
	if del {
		delete(f.props[win], property)
	}
	return data, 0, 8, nil
}

func (f *fakeX11Conn) DeleteProperty(win transport.Window, property transport.Atom) error {
	delete(f.props[win], property)
	return nil
}

// deliver pumps every ClientMessage queued for dstWindow into dst and
// returns the decoded messages.
func deliver(t *testing.T, f *fakeX11Conn, dstWindow transport.Window, dst *transport.Conn) []xim.Message {
	t.Helper()

	events := f.sent[dstWindow]
	f.sent[dstWindow] = nil

	for _, ev := range events {
		ok, err := dst.HandleClientMessage(ev)
		if err != nil {
			t.Fatalf("HandleClientMessage failed: %s", err)
		}
		if !ok {
			t.Fatalf("HandleClientMessage did not recognize event %+v", ev)
		}
	}

	var out []xim.Message
	for {
		b, ok := dst.Recv()
		if !ok {
			return out
		}
		m, err := xim.Decode(b)
		if err != nil {
			t.Fatalf("Decode failed: %s", err)
		}
		out = append(out, m)
	}
}

type recordingHandler struct {
	DiscardHandler
	created []*InputContext
}

func (h *recordingHandler) HandleCreateIc(s *Server, ic *InputContext) error {
	h.created = append(h.created, ic)
	return s.CommitString(ic.ImID, ic.IcID, "hello")
}

func TestServerHandshakeAndCreateIc(t *testing.T) {
	x := newFakeX11Conn()

	serverWindow := transport.Window(100)
	selection, _ := x.InternAtom(transport.ServerSelectionName("test_server"), false)
	x.owners[selection] = serverWindow

	pending, err := transport.StartBootstrap(x, 0, "test_server")
	if err != nil {
		t.Fatalf("StartBootstrap failed: %s", err)
	}

	xconnectReq := x.sent[serverWindow][0]
	x.sent[serverWindow] = nil

	serverConn, ok, err := transport.AcceptBootstrap(x, 0, serverWindow, xconnectReq)
	if err != nil || !ok {
		t.Fatalf("AcceptBootstrap failed: ok=%v err=%v", ok, err)
	}

	var clientConn *transport.Conn
	for window, events := range x.sent {
		if len(events) == 0 {
			continue
		}
		conn, ok, err := pending.HandleReply(events[0])
		if err != nil {
			t.Fatalf("HandleReply failed: %s", err)
		}
		if ok {
			clientConn = conn
			x.sent[window] = nil
			break
		}
	}
	if clientConn == nil {
		t.Fatal("never found the XCONNECT reply")
	}

	// fakeX11Conn.GenerateID allocates sequentially: StartBootstrap
	// creates the client's comm window first (id 1), then
	// AcceptBootstrap creates the server's own comm window (id 2).
	// Messages addressed to one comm window accumulate in x.sent under
	// that window's id, regardless of which side happens to own it.
	clientCommWindow := transport.Window(1)
	serverCommWindow := transport.Window(2)

	handler := &recordingHandler{}
	server := New(serverConn, handler)

	if err := clientConn.Send(xim.Encode(&xim.Connect{ClientEndian: xim.HostEndian(), ClientMajor: 1, ClientMinor: 0})); err != nil {
		t.Fatalf("client Send Connect failed: %s", err)
	}

	msgs := deliver(t, x, serverCommWindow, serverConn)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message at server, got %d", len(msgs))
	}
	if err := server.handle(msgs[0]); err != nil {
		t.Fatalf("server.handle(Connect) failed: %s", err)
	}

	msgs = deliver(t, x, clientCommWindow, clientConn)
	if len(msgs) != 1 {
		t.Fatalf("expected ConnectReply at client, got %d messages", len(msgs))
	}
	if _, ok := msgs[0].(*xim.ConnectReply); !ok {
		t.Fatalf("expected *xim.ConnectReply, got %T", msgs[0])
	}

	if err := clientConn.Send(xim.Encode(&xim.Open{Name: xim.XimString("en_US.UTF-8")})); err != nil {
		t.Fatalf("client Send Open failed: %s", err)
	}
	msgs = deliver(t, x, serverCommWindow, serverConn)
	if err := server.handle(msgs[0]); err != nil {
		t.Fatalf("server.handle(Open) failed: %s", err)
	}

	msgs = deliver(t, x, clientCommWindow, clientConn)
	openReply, ok := msgs[0].(*xim.OpenReply)
	if !ok {
		t.Fatalf("expected *xim.OpenReply, got %T", msgs[0])
	}
	if len(openReply.IcAttrs) == 0 {
		t.Fatal("expected a non-empty ic_attrs dictionary")
	}

	if err := clientConn.Send(xim.Encode(&xim.CreateIc{
		ImID: openReply.ImID,
		IcAttributes: []xim.AttributeValue{
			{ID: icAttrInputStyle, Value: []byte{0, 0, 0, 0}},
		},
	})); err != nil {
		t.Fatalf("client Send CreateIc failed: %s", err)
	}

	msgs = deliver(t, x, serverCommWindow, serverConn)
	if err := server.handle(msgs[0]); err != nil {
		t.Fatalf("server.handle(CreateIc) failed: %s", err)
	}
	if len(handler.created) != 1 {
		t.Fatalf("expected HandleCreateIc to run once, got %d", len(handler.created))
	}

	msgs = deliver(t, x, clientCommWindow, clientConn)
	if len(msgs) != 2 {
		t.Fatalf("expected Commit + CreateIcReply at client, got %d messages", len(msgs))
	}
	// HandleCreateIc runs (and may commit) before Server sends the
	// CreateIcReply that acknowledges the request, mirroring the
	// x11rb server example's handle_create_ic/commit ordering.
	commit, ok := msgs[0].(*xim.Commit)
	if !ok {
		t.Fatalf("expected *xim.Commit first, got %T", msgs[0])
	}
	reply, ok := msgs[1].(*xim.CreateIcReply)
	if !ok {
		t.Fatalf("expected *xim.CreateIcReply second, got %T", msgs[1])
	}
	if reply.IcID != 1 {
		t.Fatalf("expected ic_id 1, got %d", reply.IcID)
	}
	chars, ok := commit.Data.(xim.CommitChars)
	if !ok {
		t.Fatalf("expected xim.CommitChars, got %T", commit.Data)
	}
	if string(chars.Committed) != "hello" {
		t.Fatalf("expected committed text %q, got %q", "hello", chars.Committed)
	}
}
