package transport

import (
	"bytes"
	"testing"
)

// fakeX11Conn is an in-memory X11Conn good enough to exercise framing
// and bootstrap logic without an X server.
type fakeX11Conn struct {
	atoms      map[string]Atom
	nextAtom   Atom
	nextWindow Window
	owners     map[Atom]Window
	props      map[Window]map[Atom][]byte
	sent       []ClientMessageEvent
}

func newFakeX11Conn() *fakeX11Conn {
	return &fakeX11Conn{
		atoms:  make(map[string]Atom),
		owners: make(map[Atom]Window),
		props:  make(map[Window]map[Atom][]byte),
	}
}

func (f *fakeX11Conn) InternAtom(name string, onlyIfExists bool) (Atom, error) {
	if a, ok := f.atoms[name]; ok {
		return a, nil
	}
	f.nextAtom++
	f.atoms[name] = f.nextAtom
	return f.nextAtom, nil
}

func (f *fakeX11Conn) GetSelectionOwner(selection Atom) (Window, error) {
	return f.owners[selection], nil
}

func (f *fakeX11Conn) GenerateID() (Window, error) {
	f.nextWindow++
	return f.nextWindow, nil
}

func (f *fakeX11Conn) CreateWindow(parent Window) (Window, error) {
	return f.GenerateID()
}

func (f *fakeX11Conn) SendClientMessage(target Window, msg ClientMessageEvent) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeX11Conn) ChangeProperty(win Window, property, typ Atom, format uint8, mode PropertyMode, data []byte) error {
	if f.props[win] == nil {
		f.props[win] = make(map[Atom][]byte)
	}
	f.props[win][property] = append([]byte(nil), data...)
	return nil
}

func (f *fakeX11Conn) GetProperty(win Window, property Atom, del bool) ([]byte, Atom, uint8, error) {
	data := f.props[win][property]
	if del {
		delete(f.props[win], property)
	}
	return data, 0, 8, nil
}

func (f *fakeX11Conn) DeleteProperty(win Window, property Atom) error {
	delete(f.props[win], property)
	return nil
}

func TestSendInline(t *testing.T) {
	x := newFakeX11Conn()
	c, err := newConn(x, 1, 2)
	if err != nil {
		t.Fatalf("newConn failed: %s", err)
	}

	msg := []byte{1, 2, 3, 4}
	if err := c.Send(msg); err != nil {
		t.Fatalf("Send failed: %s", err)
	}

	if len(x.sent) != 1 {
		t.Fatalf("expected 1 ClientMessage sent, got %d", len(x.sent))
	}
	ev := x.sent[0]
	if ev.Format != 8 {
		t.Fatalf("expected format 8, got %d", ev.Format)
	}
	if !bytes.Equal(ev.Data[:len(msg)], msg) {
		t.Fatalf("inline payload mismatch: %x", ev.Data)
	}

	ok, err := c.HandleClientMessage(ev)
	if err != nil || !ok {
		t.Fatalf("HandleClientMessage failed: ok=%v err=%v", ok, err)
	}

	got, ok := c.Recv()
	if !ok || !bytes.Equal(got[:len(msg)], msg) {
		t.Fatalf("Recv mismatch: ok=%v got=%x", ok, got)
	}
}

func TestSendSpillover(t *testing.T) {
	x := newFakeX11Conn()
	c, err := newConn(x, 1, 2)
	if err != nil {
		t.Fatalf("newConn failed: %s", err)
	}

	msg := bytes.Repeat([]byte{0xAB}, 64)
	if err := c.Send(msg); err != nil {
		t.Fatalf("Send failed: %s", err)
	}

	if len(x.sent) != 1 {
		t.Fatalf("expected 1 ClientMessage sent, got %d", len(x.sent))
	}
	ev := x.sent[0]
	if ev.Format != 32 {
		t.Fatalf("expected format 32, got %d", ev.Format)
	}

	ok, err := c.HandleClientMessage(ev)
	if err != nil || !ok {
		t.Fatalf("HandleClientMessage failed: ok=%v err=%v", ok, err)
	}

	got, ok := c.Recv()
	if !ok || !bytes.Equal(got, msg) {
		t.Fatalf("Recv mismatch: ok=%v len=%d", ok, len(got))
	}

	if _, ok := x.props[c.peerWindow][c.spilloverAtom]; ok {
		t.Fatal("expected spillover property to be deleted after read")
	}
}

func TestBootstrapHandshake(t *testing.T) {
	x := newFakeX11Conn()

	serverSelection, _ := x.InternAtom(ServerSelectionName("test_server"), false)
	serverWindow := Window(100)
	x.owners[serverSelection] = serverWindow

	pending, err := StartBootstrap(x, 0, "test_server")
	if err != nil {
		t.Fatalf("StartBootstrap failed: %s", err)
	}
	if len(x.sent) != 1 {
		t.Fatalf("expected 1 XCONNECT request sent, got %d", len(x.sent))
	}

	req := x.sent[0]
	conn, ok, err := AcceptBootstrap(x, 0, serverWindow, req)
	if err != nil {
		t.Fatalf("AcceptBootstrap failed: %s", err)
	}
	if !ok {
		t.Fatal("AcceptBootstrap did not recognize the XCONNECT request")
	}
	if conn == nil {
		t.Fatal("AcceptBootstrap returned a nil Conn")
	}

	if len(x.sent) != 2 {
		t.Fatalf("expected a reply to be sent, total sent = %d", len(x.sent))
	}
	reply := x.sent[1]

	clientConn, ok, err := pending.HandleReply(reply)
	if err != nil {
		t.Fatalf("HandleReply failed: %s", err)
	}
	if !ok {
		t.Fatal("HandleReply did not recognize the XCONNECT reply")
	}
	if clientConn == nil {
		t.Fatal("HandleReply returned a nil Conn")
	}
}
