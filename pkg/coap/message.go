// Package coap implements the wire format of a CoAP message (RFC 7252 §3):
// header, token, delta-encoded options, and payload. It covers parsing and
// serialization only; transport, retransmission, and block-wise reassembly
// are the host application's concern.
package coap

import "fmt"

// Type is the CoAP message type (RFC 7252 §3).
type Type uint8

const (
	TypeCON Type = 0
	TypeNON Type = 1
	TypeACK Type = 2
	TypeRST Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeCON:
		return "CON"
	case TypeNON:
		return "NON"
	case TypeACK:
		return "ACK"
	case TypeRST:
		return "RST"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// Code is a CoAP method or response code, encoded as class.detail
// (RFC 7252 §3: bits 7-5 class, bits 4-0 detail).
type Code uint8

// NewCode builds a Code from its class.detail form, e.g. NewCode(2, 4) is 2.04.
func NewCode(class, detail uint8) Code {
	return Code(class<<5 | (detail & 0x1f))
}

func (c Code) Class() uint8  { return uint8(c) >> 5 }
func (c Code) Detail() uint8 { return uint8(c) & 0x1f }

func (c Code) String() string {
	return fmt.Sprintf("%d.%02d", c.Class(), c.Detail())
}

// IsRequest reports whether c is a request code (class 0, excluding the
// empty message code 0.00).
func (c Code) IsRequest() bool {
	return c.Class() == 0 && c != CodeEmpty
}

// Codes used by this module. Only the subset the core touches directly is
// named; any other code round-trips through Message.Code untouched.
const (
	CodeEmpty Code = 0x00 // 0.00, messaging layer only

	CodeGET   Code = 0x01 // 0.01
	CodePOST  Code = 0x02 // 0.02
	CodePUT   Code = 0x03 // 0.03
	CodeFETCH Code = 0x05 // 0.05 (RFC 8132)

	CodeChanged Code = 0x44 // 2.04
	CodeContent Code = 0x45 // 2.05
)

// Option is one CoAP option: a number and a value. Number is absolute
// (already resolved from the wire-format delta); the codec recomputes
// deltas from the sorted Number sequence whenever it serializes.
type Option struct {
	Number uint16
	Value  []byte
}

// Message is a parsed or to-be-serialized CoAP message. Options must be
// sorted by Number ascending; Parse guarantees this, and Serialize rejects
// a Message that violates it.
type Message struct {
	Version   uint8
	Type      Type
	Token     []byte
	Code      Code
	MessageID uint16
	Options   []Option
	Payload   []byte
}
