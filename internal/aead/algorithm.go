package aead

import (
	"fmt"

	gocose "github.com/veraison/go-cose"
)

// Algorithm IDs this package supports, taken from the IANA COSE Algorithms
// registry (RFC 8152 §8.1, RFC 8613 §3.2.1).
const (
	AlgAESCCM16_64_128  gocose.Algorithm = 10 // nonce 13, tag 8  — OSCORE default
	AlgAESCCM16_128_128 gocose.Algorithm = 30 // nonce 13, tag 16
	AlgAESCCM64_64_128  gocose.Algorithm = 12 // nonce 7,  tag 8
)

// Cipher is the shape the oscore pipeline needs from an AEAD: seal into a
// new buffer, plus the three sizes that drive nonce/ciphertext bounds checking. It is
// satisfied by a thin wrapper over crypto/cipher.AEAD.
type Cipher interface {
	// Seal encrypts and authenticates plaintext against aad using nonce,
	// returning ciphertext with the tag appended.
	Seal(key, nonce, plaintext, aad []byte) ([]byte, error)
	NonceSize() int
	TagSize() int
	KeySize() int
}

type algoSpec struct {
	nonceSize, tagSize, keySize int
}

var algoTable = map[gocose.Algorithm]algoSpec{
	AlgAESCCM16_64_128:  {nonceSize: 13, tagSize: 8, keySize: 16},
	AlgAESCCM16_128_128: {nonceSize: 13, tagSize: 16, keySize: 16},
	AlgAESCCM64_64_128:  {nonceSize: 7, tagSize: 8, keySize: 16},
}

// ForAlgorithm returns the Cipher for a COSE algorithm ID.
func ForAlgorithm(alg gocose.Algorithm) (Cipher, error) {
	spec, ok := algoTable[alg]
	if !ok {
		return nil, fmt.Errorf("aead: algorithm %d: %w", alg, ErrUnsupportedAlgorithm)
	}
	return &aesCCM{spec: spec}, nil
}
