package oscore

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	gocose "github.com/veraison/go-cose"
)

// BuildAAD constructs the byte string passed as associated data to the
// AEAD: the COSE_Encrypt0 enc_structure (RFC 8152 §5.3) whose external_aad
// is the OSCORE Additional Authenticated Data (RFC 8613 §5.4). Both layers
// use deterministic CBOR so two callers with the same inputs always produce
// the same bytes.
//
//	external_aad  = [ 1, [alg], requestKID, requestPIV, h'' ]
//	enc_structure = [ "Encrypt0", h'', external_aad ]
func BuildAAD(alg gocose.Algorithm, requestKID, requestPIV []byte) ([]byte, error) {
	extAAD, err := externalAAD(alg, requestKID, requestPIV)
	if err != nil {
		return nil, err
	}

	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("oscore: cbor encoder: %w", err)
	}
	structure := []interface{}{
		"Encrypt0",
		[]byte{},
		extAAD,
	}
	out, err := encMode.Marshal(structure)
	if err != nil {
		return nil, fmt.Errorf("oscore: marshal enc_structure: %w", err)
	}
	if len(out) > MaxAADLen {
		return nil, fmt.Errorf("oscore: AAD is %d bytes, exceeds %d: %w", len(out), MaxAADLen, ErrBufferTooSmall)
	}
	return out, nil
}

// oscoreVersion is the fixed first element of external_aad (RFC 8613 §5.4).
const oscoreVersion = 1

func externalAAD(alg gocose.Algorithm, kid, piv []byte) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("oscore: cbor encoder: %w", err)
	}
	// kid/piv must encode as CBOR byte strings, including when empty;
	// a nil slice would encode as CBOR null, so emptyIfNil turns it into h''.
	arr := []interface{}{
		uint64(oscoreVersion),
		[]interface{}{int64(alg)},
		emptyIfNil(kid),
		emptyIfNil(piv),
		[]byte{}, // Class-I options: always empty, this core carries none
	}
	out, err := encMode.Marshal(arr)
	if err != nil {
		return nil, fmt.Errorf("oscore: marshal external_aad: %w", err)
	}
	return out, nil
}

func emptyIfNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
