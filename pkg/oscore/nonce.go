package oscore

import "fmt"

// Nonce derives the AEAD nonce per RFC 8613 §5.2 from the identity used for
// this message (sender_id for an outbound message), its Partial IV, and the
// context's Common IV:
//
//	ID_PIV_padded = zeros(nonceLen-6-len(id)) || len(id) || id   (nonceLen-5 bytes)
//	PIV_padded    = zeros(5-len(piv)) || piv                     (5 bytes)
//	pre_nonce     = ID_PIV_padded || PIV_padded                  (nonceLen bytes)
//	nonce         = pre_nonce XOR commonIV
func Nonce(id, piv, commonIV []byte, nonceLen int) ([]byte, error) {
	if len(id) > nonceLen-6 {
		return nil, fmt.Errorf("oscore: sender ID is %d bytes, nonce of length %d allows at most %d: %w", len(id), nonceLen, nonceLen-6, ErrIdTooLong)
	}
	if len(piv) > 5 {
		return nil, fmt.Errorf("oscore: PIV is %d bytes, at most 5 allowed: %w", len(piv), ErrInvalidPacket)
	}
	if len(commonIV) != nonceLen {
		return nil, fmt.Errorf("oscore: common IV is %d bytes, want %d: %w", len(commonIV), nonceLen, ErrInvalidPacket)
	}

	pre := make([]byte, nonceLen)
	idStart := nonceLen - 6 - len(id)
	pre[idStart] = byte(len(id))
	copy(pre[idStart+1:], id)
	copy(pre[nonceLen-len(piv):], piv)

	nonce := make([]byte, nonceLen)
	for i := range nonce {
		nonce[i] = pre[i] ^ commonIV[i]
	}
	return nonce, nil
}
