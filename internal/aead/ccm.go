package aead

import (
	"crypto/aes"
	"fmt"

	"github.com/pion/dtls/v3/pkg/crypto/ccm"
)

// aesCCM implements Cipher over AES-CCM (RFC 3610 / NIST SP 800-38C) using
// the same ccm.NewCCM construction DTLS 1.2's CCM cipher suites use.
type aesCCM struct {
	spec algoSpec
}

func (a *aesCCM) NonceSize() int { return a.spec.nonceSize }
func (a *aesCCM) TagSize() int   { return a.spec.tagSize }
func (a *aesCCM) KeySize() int   { return a.spec.keySize }

func (a *aesCCM) Seal(key, nonce, plaintext, additionalData []byte) ([]byte, error) {
	if len(key) != a.spec.keySize {
		return nil, fmt.Errorf("aead: key is %d bytes, want %d: %w", len(key), a.spec.keySize, ErrAead)
	}
	if len(nonce) != a.spec.nonceSize {
		return nil, fmt.Errorf("aead: nonce is %d bytes, want %d: %w", len(nonce), a.spec.nonceSize, ErrAead)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aead: aes key setup: %w", ErrAead)
	}
	c, err := ccm.NewCCM(block, a.spec.tagSize, a.spec.nonceSize)
	if err != nil {
		return nil, fmt.Errorf("aead: ccm setup: %w", ErrAead)
	}

	return c.Seal(nil, nonce, plaintext, additionalData), nil
}
