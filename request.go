package xim

import "github.com/netrack/xim/encoding/binary"

func binaryPutLength(b []byte, v uint16) { binary.NativeEndian.PutUint16(b, v) }
func binaryGetLength(b []byte) uint16    { return binary.NativeEndian.Uint16(b) }

// Message is anything that can be framed as a complete XIM wire message:
// a 4-byte header carrying an opcode pair, followed by an opcode-defined
// body.
type Message interface {
	// Opcode returns the major/minor opcode pair that identifies this
	// message's wire type.
	Opcode() (major, minor uint8)

	// WriteBody encodes the message body (everything after the header)
	// into w. w is seeded so that w.Offset() already accounts for the
	// 4-byte header, letting padding come out correct without the body
	// knowing it's a body.
	WriteBody(w *Writer)
}

// body is the decode-side counterpart every registered Message type
// must also implement.
type body interface {
	Message
	ReadBody(r *Reader) error
}

type opcodeKey struct {
	major uint8
	minor uint8
}

var registry = map[opcodeKey]func() body{}

// register associates a wire opcode pair with a constructor for the
// zero-value Message that decodes it. Called from each variant file's
// init.
func register(major, minor uint8, new func() body) {
	registry[opcodeKey{major, minor}] = new
}

// Encode serializes m into a complete XIM wire message: header followed
// by body, with the body zero-padded to a multiple of 4 bytes.
func Encode(m Message) []byte {
	w := NewWriter(headerLen)
	m.WriteBody(w)
	w.WritePad4()
	body := w.Bytes()

	major, minor := m.Opcode()

	out := make([]byte, headerLen+len(body))
	out[0] = major
	out[1] = minor
	binaryPutLength(out[2:4], uint16(len(body)/4))
	copy(out[headerLen:], body)

	return out
}

// Decode parses the header of data and dispatches to the registered
// Message type for its opcode, returning the fully decoded Message.
func Decode(data []byte) (Message, error) {
	if len(data) < headerLen {
		return nil, ErrEndOfStream
	}

	major, minor := data[0], data[1]
	length := binaryGetLength(data[2:4])

	bodyLen := int(length) * 4
	if len(data)-headerLen < bodyLen {
		return nil, ErrEndOfStream
	}

	new, ok := registry[opcodeKey{major, minor}]
	if !ok {
		return nil, invalidData("Opcode", opcodeKey{major, minor})
	}

	m := new()
	br := NewReader(data[headerLen : headerLen+bodyLen])
	br.consumed = headerLen
	if err := m.ReadBody(br); err != nil {
		return nil, err
	}

	return m, nil
}

// Bytes is a convenience wrapper around Encode for callers that only
// have a Message and want wire bytes, mirroring the teacher's ioutil
// helper of the same name.
func Bytes(m Message) []byte {
	return Encode(m)
}
