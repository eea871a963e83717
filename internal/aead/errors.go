// Package aead provides the AEAD primitive the oscore pipeline seals
// plaintext with. Only the algorithms RFC 8613 §3.2.1 lists as mandatory or
// commonly deployed are wired; anything else is a configuration error, not
// a runtime one.
package aead

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned by ForAlgorithm for a COSE
	// algorithm ID this package has no Cipher for.
	ErrUnsupportedAlgorithm = errors.New("aead: unsupported algorithm")

	// ErrAead wraps any failure of Seal: a key or nonce of the wrong
	// length, or an error from the underlying AES/CCM setup.
	ErrAead = errors.New("aead: seal failed")
)
