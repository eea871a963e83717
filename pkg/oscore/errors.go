// Package oscore implements the coap2oscore sender pipeline (RFC 8613): it
// turns a plaintext CoAP message and a maintained SecurityContext into an
// OSCORE-protected CoAP message. The inverse direction, EDHOC, and replay
// handling are out of scope — this package only ever encrypts outbound.
package oscore

import (
	"errors"

	"github.com/iotsec/oscore-sender/internal/aead"
	"github.com/iotsec/oscore-sender/pkg/coap"
)

var (
	// ErrInvalidPacket is coap.ErrInvalidPacket, re-exported so callers can
	// errors.Is against either package.
	ErrInvalidPacket = coap.ErrInvalidPacket
	// ErrTooManyOptions is coap.ErrTooManyOptions, re-exported.
	ErrTooManyOptions = coap.ErrTooManyOptions
	// ErrBufferTooSmall is coap.ErrBufferTooSmall, re-exported.
	ErrBufferTooSmall = coap.ErrBufferTooSmall
	// ErrAead is internal/aead.ErrAead, re-exported.
	ErrAead = aead.ErrAead

	// ErrUnknownOption is returned when an option number has no entry in
	// the Class-E/Class-U table (RFC 8613 §4.1). spec.md mandates
	// rejection rather than a permissive fallback to Class-U.
	ErrUnknownOption = errors.New("oscore: option has no Class-E/Class-U mapping")

	// ErrSeqNumOverflow is returned once sender_seq_num would reach 2^40;
	// the context becomes unusable for sending (RFC 8613 §7.2.1).
	ErrSeqNumOverflow = errors.New("oscore: sender sequence number exhausted")

	// ErrIdTooLong is returned when sender_id is longer than
	// nonce_len - 6 and therefore cannot be packed into the nonce.
	ErrIdTooLong = errors.New("oscore: sender ID too long for AEAD nonce")

	// ErrOscoreValueTooLong is returned when an OSCORE option value would
	// exceed OscoreOptValueLen.
	ErrOscoreValueTooLong = errors.New("oscore: OSCORE option value too long")
)
