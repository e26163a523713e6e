package xim

// Every XIM message begins with this 4-byte header: a major/minor
// opcode pair and a body length measured in 4-byte units, excluding the
// header itself.
const headerLen = 4

const (
	// Connection negotiation.
	OpError        = 20
	OpConnect      = 1
	OpConnectReply = 2
	OpDisconnect   = 3
	OpDisconnectReply = 4

	// Authentication.
	OpAuthRequired = 10
	OpAuthReply    = 11
	OpAuthNext     = 12
	OpAuthSetup    = 13
	OpAuthNG       = 14

	// Locale / input-method session lifecycle.
	OpOpen                      = 30
	OpOpenReply                 = 31
	OpClose                     = 32
	OpCloseReply                = 33
	OpRegisterTriggerkeys       = 34
	OpTriggerNotify             = 35
	OpTriggerNotifyReply        = 36
	OpSetEventMask              = 37
	OpEncodingNegotiation       = 38
	OpEncodingNegotiationReply  = 39
	OpQueryExtension            = 40
	OpQueryExtensionReply       = 41
	OpSetIMValues               = 42
	OpSetIMValuesReply          = 43
	OpGetIMValues               = 44
	OpGetIMValuesReply          = 45

	// Input context lifecycle.
	OpCreateIc        = 50
	OpCreateIcReply   = 51
	OpDestroyIc       = 52
	OpDestroyIcReply  = 53
	OpSetIcValues     = 54
	OpSetIcValuesReply = 55
	OpGetIcValues     = 56
	OpGetIcValuesReply = 57
	OpSetIcFocus      = 58
	OpUnsetIcFocus    = 59
	OpSyncIc          = 60
	OpSyncIcReply     = 61
	OpSync            = 62
	OpSyncReply       = 63
	OpResetIc         = 64
	OpResetIcReply    = 65

	// Text/event flow.
	OpForwardEvent = 70
	OpCommit       = 71

	// Preedit/status callbacks.
	OpPreeditStart      = 80
	OpPreeditStartReply = 81
	OpPreeditDraw       = 82
	OpPreeditCaret      = 83
	OpPreeditCaretReply = 84
	OpPreeditDone       = 85
	OpStatusStart       = 90
	OpStatusDraw        = 91
	OpStatusDone        = 92

	// String conversion.
	OpStrConversion      = 100
	OpStrConversionReply = 101
)

// Header is the decoded form of the 4-byte frame header common to every
// XIM message.
type Header struct {
	Major  uint8
	Minor  uint8
	Length uint16 // body length in 4-byte units, excluding the header
}
