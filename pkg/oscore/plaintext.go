package oscore

import (
	"fmt"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

// BuildPlaintext assembles the bytes to be AEAD-encrypted (RFC 8613 §5.3):
//
//	plaintext = code || serialized(inner) || (0xFF || payload, if payload present)
//
// innerLen must be the value Split returned alongside inner; BuildPlaintext
// checks it against the actual serialization as a consistency guard.
func BuildPlaintext(code coap.Code, inner []coap.Option, payload []byte, innerLen int) ([]byte, error) {
	serializedInner, err := coap.SerializeOptions(inner)
	if err != nil {
		return nil, err
	}
	if len(serializedInner) != innerLen {
		return nil, fmt.Errorf("oscore: inner option length mismatch (computed %d, expected %d): %w", len(serializedInner), innerLen, ErrInvalidPacket)
	}

	total := 1 + len(serializedInner)
	if len(payload) > 0 {
		total += 1 + len(payload)
	}
	if total > MaxPlaintextLen {
		return nil, fmt.Errorf("oscore: plaintext is %d bytes, exceeds %d: %w", total, MaxPlaintextLen, ErrBufferTooSmall)
	}

	out := make([]byte, 0, total)
	out = append(out, byte(code))
	out = append(out, serializedInner...)
	if len(payload) > 0 {
		out = append(out, 0xFF)
		out = append(out, payload...)
	}
	return out, nil
}
