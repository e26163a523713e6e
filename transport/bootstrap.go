package transport

import "fmt"

// TransportVersionMajor and TransportVersionMinor are the transport
// protocol version this package speaks during the _XIM_XCONNECT
// handshake, independent of the XIM protocol version negotiated
// afterward by Connect/ConnectReply.
const (
	TransportVersionMajor = 0
	TransportVersionMinor = 0
)

// PendingBootstrap tracks a client's in-flight _XIM_XCONNECT handshake
// between sending the request and receiving the server's reply.
type PendingBootstrap struct {
	x X11Conn

	serverWindow Window
	commWindow   Window

	xconnectAtom Atom
}

// StartBootstrap discovers the server owning the named "@server=<name>"
// selection, creates the client's own communication window, and sends it
// the initial _XIM_XCONNECT request. The caller feeds subsequent
// ClientMessage events to (*PendingBootstrap).HandleReply until it
// returns a ready Conn.
func StartBootstrap(x X11Conn, rootWindow Window, serverName string) (*PendingBootstrap, error) {
	selection, err := x.InternAtom(ServerSelectionName(serverName), false)
	if err != nil {
		return nil, fmt.Errorf("xim/transport: intern server selection: %w", err)
	}

	serverWindow, err := x.GetSelectionOwner(selection)
	if err != nil {
		return nil, fmt.Errorf("xim/transport: get selection owner: %w", err)
	}

	commWindow, err := x.CreateWindow(rootWindow)
	if err != nil {
		return nil, fmt.Errorf("xim/transport: create communication window: %w", err)
	}

	xconnectAtom, err := x.InternAtom(AtomXimXConnect, false)
	if err != nil {
		return nil, fmt.Errorf("xim/transport: intern %s: %w", AtomXimXConnect, err)
	}

	req := ClientMessageEvent{Window: serverWindow, Type: xconnectAtom, Format: 32}
	putU32(req.Data[0:4], uint32(commWindow))
	putU32(req.Data[4:8], TransportVersionMajor)
	putU32(req.Data[8:12], TransportVersionMinor)

	if err := x.SendClientMessage(serverWindow, req); err != nil {
		return nil, fmt.Errorf("xim/transport: send XCONNECT request: %w", err)
	}

	return &PendingBootstrap{
		x:            x,
		serverWindow: serverWindow,
		commWindow:   commWindow,
		xconnectAtom: xconnectAtom,
	}, nil
}

// HandleReply inspects ev for the server's _XIM_XCONNECT reply. It
// returns ok=false for any event that isn't that reply, leaving p
// unchanged so the caller can keep routing other events through its
// event loop.
func (p *PendingBootstrap) HandleReply(ev ClientMessageEvent) (conn *Conn, ok bool, err error) {
	if ev.Type != p.xconnectAtom || ev.Window != p.commWindow {
		return nil, false, nil
	}

	peerCommWindow := Window(getU32(ev.Data[0:4]))

	conn, err = newConn(p.x, p.commWindow, peerCommWindow)
	if err != nil {
		return nil, true, err
	}

	return conn, true, nil
}

// AcceptBootstrap inspects ev for an inbound _XIM_XCONNECT request
// addressed to the server's selection-owner window. On a match, it
// replies with the negotiated transport version and the server's own
// communication window, and returns a Conn ready to carry _XIM_PROTOCOL
// traffic with that client.
func AcceptBootstrap(x X11Conn, rootWindow, serverWindow Window, ev ClientMessageEvent) (conn *Conn, ok bool, err error) {
	xconnectAtom, err := x.InternAtom(AtomXimXConnect, false)
	if err != nil {
		return nil, false, fmt.Errorf("xim/transport: intern %s: %w", AtomXimXConnect, err)
	}

	if ev.Type != xconnectAtom || ev.Window != serverWindow {
		return nil, false, nil
	}

	clientCommWindow := Window(getU32(ev.Data[0:4]))

	ownCommWindow, err := x.CreateWindow(rootWindow)
	if err != nil {
		return nil, true, fmt.Errorf("xim/transport: create communication window: %w", err)
	}

	reply := ClientMessageEvent{Window: clientCommWindow, Type: xconnectAtom, Format: 32}
	putU32(reply.Data[0:4], uint32(ownCommWindow))
	putU32(reply.Data[4:8], TransportVersionMajor)
	putU32(reply.Data[8:12], TransportVersionMinor)

	if err := x.SendClientMessage(clientCommWindow, reply); err != nil {
		return nil, true, fmt.Errorf("xim/transport: send XCONNECT reply: %w", err)
	}

	conn, err = newConn(x, ownCommWindow, clientCommWindow)
	if err != nil {
		return nil, true, err
	}

	return conn, true, nil
}
