package oscore

import "fmt"

const (
	flagKIDContext byte = 0x10 // h bit
	flagKID        byte = 0x08 // k bit
	flagNMask      byte = 0x07 // n field, bits 2-0
)

// EncodeOption builds the OSCORE option value (RFC 8613 §6.1).
//
// A request, an Observe-bearing message, or the first message after reboot
// passes a non-nil piv and kid: the result carries the flag byte, the PIV,
// an optional KID context, and the KID (k is always set in this case, even
// when kid itself is zero-length — an explicit empty KID, not an omitted
// one). A plain response passes piv == nil, and EncodeOption returns a
// nil, zero-length value: flag, PIV, KID context and KID are all absent.
func EncodeOption(piv, kid, kidContext []byte) ([]byte, error) {
	if piv == nil {
		return nil, nil
	}
	if len(piv) > 7 {
		return nil, fmt.Errorf("oscore: PIV is %d bytes, the 3-bit n field allows at most 7: %w", len(piv), ErrOscoreValueTooLong)
	}

	size := 1 + len(piv)
	if len(kidContext) > 0 {
		size += 1 + len(kidContext)
	}
	size += len(kid)
	if size > OscoreOptValueLen {
		return nil, fmt.Errorf("oscore: OSCORE option value is %d bytes, exceeds %d: %w", size, OscoreOptValueLen, ErrOscoreValueTooLong)
	}

	out := make([]byte, size)
	flag := byte(len(piv)) & flagNMask
	flag |= flagKID

	idx := 1
	copy(out[idx:], piv)
	idx += len(piv)

	if len(kidContext) > 0 {
		flag |= flagKIDContext
		out[idx] = byte(len(kidContext))
		idx++
		copy(out[idx:], kidContext)
		idx += len(kidContext)
	}

	out[0] = flag
	copy(out[idx:], kid)
	return out, nil
}
