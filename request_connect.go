package xim

func init() {
	register(OpConnect, 0, func() body { return &Connect{} })
	register(OpConnectReply, 0, func() body { return &ConnectReply{} })
	register(OpDisconnect, 0, func() body { return &Disconnect{} })
	register(OpDisconnectReply, 0, func() body { return &DisconnectReply{} })
}

// Connect opens a transport connection. AuthProtocolNames is almost
// always empty in practice; when present, each name is individually
// padded to 4 bytes rather than the list being padded once as a whole.
type Connect struct {
	ClientEndian      Endian
	ClientMajor       uint16
	ClientMinor       uint16
	AuthProtocolNames []XimString
}

func (m *Connect) Opcode() (uint8, uint8) { return OpConnect, 0 }

func (m *Connect) WriteBody(w *Writer) {
	w.WriteU8(uint8(m.ClientEndian))
	w.WriteU8(0) // pad
	w.WriteU16(m.ClientMajor)
	w.WriteU16(m.ClientMinor)
	writeList(w, m.AuthProtocolNames, func(w *Writer, s XimString) {
		WriteSTRINGPadded(w, s)
	})
}

func (m *Connect) ReadBody(r *Reader) error {
	e, err := ReadEndian(r)
	if err != nil {
		return err
	}
	m.ClientEndian = e

	if _, err := r.U8(); err != nil { // pad
		return err
	}

	if m.ClientMajor, err = r.U16(); err != nil {
		return err
	}
	if m.ClientMinor, err = r.U16(); err != nil {
		return err
	}

	m.AuthProtocolNames, err = readList(r, ReadSTRINGPadded)
	return err
}

// ConnectReply answers Connect with the server's own protocol version.
type ConnectReply struct {
	ServerMajor uint16
	ServerMinor uint16
}

func (m *ConnectReply) Opcode() (uint8, uint8) { return OpConnectReply, 0 }

func (m *ConnectReply) WriteBody(w *Writer) {
	w.WriteU16(m.ServerMajor)
	w.WriteU16(m.ServerMinor)
}

func (m *ConnectReply) ReadBody(r *Reader) error {
	var err error
	if m.ServerMajor, err = r.U16(); err != nil {
		return err
	}
	if m.ServerMinor, err = r.U16(); err != nil {
		return err
	}
	return nil
}

// Disconnect carries no body.
type Disconnect struct{}

func (m *Disconnect) Opcode() (uint8, uint8)    { return OpDisconnect, 0 }
func (m *Disconnect) WriteBody(w *Writer)       {}
func (m *Disconnect) ReadBody(r *Reader) error  { return nil }

// DisconnectReply carries no body.
type DisconnectReply struct{}

func (m *DisconnectReply) Opcode() (uint8, uint8)   { return OpDisconnectReply, 0 }
func (m *DisconnectReply) WriteBody(w *Writer)      {}
func (m *DisconnectReply) ReadBody(r *Reader) error { return nil }
