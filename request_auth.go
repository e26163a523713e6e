package xim

// Authentication is rarely exercised in practice — most XIM servers skip
// straight from ConnectReply to Open — but the handshake is part of the
// wire protocol and a conforming peer must be able to decode it even if
// it never initiates it itself.

func init() {
	register(OpAuthRequired, 0, func() body { return &AuthRequired{} })
	register(OpAuthReply, 0, func() body { return &AuthReply{} })
	register(OpAuthNext, 0, func() body { return &AuthNext{} })
	register(OpAuthSetup, 0, func() body { return &AuthSetup{} })
	register(OpAuthNG, 0, func() body { return &AuthNG{} })
}

// AuthRequired announces the auth protocol the server picked (by index
// into Connect's auth_protocol_names) and hands the client its first
// opaque blob of protocol-specific data.
type AuthRequired struct {
	AuthProtocolIndex uint16
	Data              XimString
}

func (m *AuthRequired) Opcode() (uint8, uint8) { return OpAuthRequired, 0 }

func (m *AuthRequired) WriteBody(w *Writer) {
	w.WriteU16(m.AuthProtocolIndex)
	w.WriteU16(0) // pad
	WriteSTRINGPadded(w, m.Data)
}

func (m *AuthRequired) ReadBody(r *Reader) error {
	var err error
	if m.AuthProtocolIndex, err = r.U16(); err != nil {
		return err
	}
	if _, err = r.U16(); err != nil { // pad
		return err
	}
	m.Data, err = ReadSTRINGPadded(r)
	return err
}

// AuthReply carries the client's response to an AuthRequired/AuthNext
// challenge.
type AuthReply struct {
	Data XimString
}

func (m *AuthReply) Opcode() (uint8, uint8) { return OpAuthReply, 0 }
func (m *AuthReply) WriteBody(w *Writer)    { WriteSTRINGPadded(w, m.Data) }
func (m *AuthReply) ReadBody(r *Reader) error {
	var err error
	m.Data, err = ReadSTRINGPadded(r)
	return err
}

// AuthNext carries a further round of server challenge data when the
// chosen auth protocol needs more than one exchange.
type AuthNext struct {
	Data XimString
}

func (m *AuthNext) Opcode() (uint8, uint8) { return OpAuthNext, 0 }
func (m *AuthNext) WriteBody(w *Writer)    { WriteSTRINGPadded(w, m.Data) }
func (m *AuthNext) ReadBody(r *Reader) error {
	var err error
	m.Data, err = ReadSTRINGPadded(r)
	return err
}

// AuthSetup concludes the challenge/response rounds; Data is whatever
// the auth protocol needs to finalize the exchange.
type AuthSetup struct {
	Data XimString
}

func (m *AuthSetup) Opcode() (uint8, uint8) { return OpAuthSetup, 0 }
func (m *AuthSetup) WriteBody(w *Writer)    { WriteSTRINGPadded(w, m.Data) }
func (m *AuthSetup) ReadBody(r *Reader) error {
	var err error
	m.Data, err = ReadSTRINGPadded(r)
	return err
}

// AuthNG reports authentication failure; the connection attempt is over.
type AuthNG struct{}

func (m *AuthNG) Opcode() (uint8, uint8)   { return OpAuthNG, 0 }
func (m *AuthNG) WriteBody(w *Writer)      {}
func (m *AuthNG) ReadBody(r *Reader) error { return nil }
