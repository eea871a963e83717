package boot

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	gocose "github.com/veraison/go-cose"
	"golang.org/x/crypto/hkdf"

	"github.com/iotsec/oscore-sender/internal/aead"
	"github.com/iotsec/oscore-sender/pkg/oscore"
)

// Derive runs the OSCORE context derivation (RFC 8613 §3.2) from a
// bootstrap descriptor's resolved secret material, producing the
// CommonContext and SenderContext halves of an oscore.Context. No
// recipient key is derived — this module only ever sends.
func Derive(d *Descriptor, masterSecret, masterSalt []byte) (oscore.CommonContext, oscore.SenderContext, error) {
	senderID, err := decodeHex(d.SenderID)
	if err != nil {
		return oscore.CommonContext{}, oscore.SenderContext{}, err
	}
	idContext, err := decodeHex(d.IDContext)
	if err != nil {
		return oscore.CommonContext{}, oscore.SenderContext{}, err
	}

	alg := d.ResolvedAlgorithm()
	cipher, err := aead.ForAlgorithm(alg)
	if err != nil {
		return oscore.CommonContext{}, oscore.SenderContext{}, err
	}

	senderKey, err := expand(masterSecret, masterSalt, senderID, idContext, alg, "Key", cipher.KeySize())
	if err != nil {
		return oscore.CommonContext{}, oscore.SenderContext{}, fmt.Errorf("boot: derive sender key: %w", err)
	}
	commonIV, err := expand(masterSecret, masterSalt, nil, idContext, alg, "IV", cipher.NonceSize())
	if err != nil {
		return oscore.CommonContext{}, oscore.SenderContext{}, fmt.Errorf("boot: derive common IV: %w", err)
	}

	cc := oscore.CommonContext{
		CommonIV:  commonIV,
		IDContext: idContext,
		AEADAlg:   alg,
	}
	sc := oscore.SenderContext{
		ID:  senderID,
		Key: senderKey,
	}
	return cc, sc, nil
}

// expand runs HKDF-Expand (RFC 5869, via the Extract-then-Expand reader
// golang.org/x/crypto/hkdf provides) with the CBOR-encoded info structure
// RFC 8613 §3.2 specifies:
//
//	info = [ id, id_context, alg, type, L ]
func expand(secret, salt, id, idContext []byte, alg gocose.Algorithm, typ string, length int) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	info, err := encMode.Marshal([]interface{}{
		emptyIfNilBytes(id),
		emptyIfNilBytes(idContext),
		int64(alg),
		typ,
		length,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal info: %w", err)
	}

	reader := hkdf.New(sha256.New, secret, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("hkdf expand: %w", err)
	}
	return out, nil
}

func emptyIfNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
