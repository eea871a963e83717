package coap

import "errors"

var (
	// ErrInvalidPacket is returned when a buffer violates the CoAP wire
	// format (RFC 7252 §3): bad version, oversized token, a reserved
	// option-header nibble, a truncated option, or a standalone 0xFF with
	// no payload after it.
	ErrInvalidPacket = errors.New("coap: invalid packet")

	// ErrTooManyOptions is returned when a message carries more options
	// than MaxOptionCount.
	ErrTooManyOptions = errors.New("coap: too many options")

	// ErrBufferTooSmall is returned when a serialized message would
	// exceed MaxMessageLen.
	ErrBufferTooSmall = errors.New("coap: buffer too small")
)
