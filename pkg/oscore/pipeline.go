package oscore

import (
	"fmt"

	"github.com/iotsec/oscore-sender/internal/aead"
	"github.com/iotsec/oscore-sender/pkg/coap"
)

// CoapToOscore turns a plaintext CoAP message into its OSCORE-protected
// form (RFC 8613 §8.1). ctx must be locked by the caller for the duration
// of the call (Context.Lock/Unlock) — it mutates the sender sequence
// number and the request/response cache.
//
// A messaging-layer packet (code 0.00, type ACK — a bare acknowledgement
// with no payload) bypasses OSCORE entirely and is returned unchanged, per
// RFC 8613 §4.2's note that such packets carry no CoAP semantics to
// protect.
func CoapToOscore(input []byte, ctx *Context, cipher aead.Cipher) ([]byte, error) {
	msg, err := coap.Parse(input)
	if err != nil {
		return nil, err
	}

	if msg.Code == coap.CodeEmpty && msg.Type == coap.TypeACK {
		return input, nil
	}

	inner, outer, innerLen, err := Split(msg)
	if err != nil {
		return nil, err
	}

	plaintext, err := BuildPlaintext(msg.Code, inner, msg.Payload, innerLen)
	if err != nil {
		return nil, err
	}

	request := msg.Code.IsRequest()
	observe := HasObserve(outer)

	var oscoreOptVal []byte
	if request || observe || ctx.RRC.Reboot {
		piv, err := ctx.AcquireSenderPIV()
		if err != nil {
			return nil, err
		}

		if request || ctx.RRC.Reboot {
			ctx.RememberRequest(piv, ctx.SC.ID)
		}
		ctx.CacheEcho(inner)

		nonce, err := Nonce(ctx.SC.ID, piv, ctx.CC.CommonIV, cipher.NonceSize())
		if err != nil {
			return nil, err
		}
		ctx.RRC.Nonce = nonce

		oscoreOptVal, err = EncodeOption(piv, ctx.SC.ID, ctx.CC.IDContext)
		if err != nil {
			return nil, err
		}
	}

	aad, err := BuildAAD(ctx.CC.AEADAlg, ctx.RRC.RequestKID, ctx.RRC.RequestPIV)
	if err != nil {
		return nil, err
	}

	if len(plaintext)+cipher.TagSize() > MaxCiphertextLen {
		return nil, fmt.Errorf("oscore: ciphertext would be %d bytes, exceeds %d: %w", len(plaintext)+cipher.TagSize(), MaxCiphertextLen, ErrBufferTooSmall)
	}
	ciphertext, err := cipher.Seal(ctx.SC.Key, ctx.RRC.Nonce, plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("oscore: %w: %v", ErrAead, err)
	}

	out, err := Assemble(msg, outer, oscoreOptVal, ciphertext, observe)
	if err != nil {
		return nil, err
	}

	return coap.Serialize(out)
}
