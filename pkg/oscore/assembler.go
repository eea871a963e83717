package oscore

import (
	"fmt"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

// Assemble builds the outer OSCORE-protected message (RFC 8613 §4.2, §8.1).
// outer is the Class-U option set Split returned (already sorted by
// Number); Assemble inserts the OSCORE option into it at its sorted
// position and attaches ciphertext as the payload. orig supplies the
// header fields (version, type, token, message ID) that pass through
// unprotected.
//
// Code is rewritten per RFC 8613 §4.2:
//
//	request, Observe set    -> 0.01 GET  (register/cancel an observation)
//	request, no Observe     -> 0.02 POST
//	response, Observe set   -> 2.05 Content (notification)
//	response, no Observe    -> 2.04 Changed
func Assemble(orig *coap.Message, outer []coap.Option, oscoreOptVal, ciphertext []byte, observe bool) (*coap.Message, error) {
	request := orig.Code.IsRequest()

	var code coap.Code
	switch {
	case request && observe:
		code = coap.CodeGET
	case request:
		code = coap.CodePOST
	case observe:
		code = coap.CodeContent
	default:
		code = coap.CodeChanged
	}

	options, err := insertOption(outer, coap.Option{Number: coap.OptOSCORE, Value: oscoreOptVal})
	if err != nil {
		return nil, err
	}

	return &coap.Message{
		Version:   orig.Version,
		Type:      orig.Type,
		Token:     orig.Token,
		Code:      code,
		MessageID: orig.MessageID,
		Options:   options,
		Payload:   ciphertext,
	}, nil
}

// insertOption inserts opt into sorted (ascending by Number) at the
// position that keeps the result sorted, by a linear scan from the start —
// outer option sets are small enough that a binary search would not pay
// for itself.
func insertOption(sorted []coap.Option, opt coap.Option) ([]coap.Option, error) {
	if len(sorted) >= MaxOptionCount {
		return nil, fmt.Errorf("oscore: outer option set already at %d: %w", MaxOptionCount, ErrTooManyOptions)
	}

	out := make([]coap.Option, 0, len(sorted)+1)
	inserted := false
	for _, o := range sorted {
		if !inserted && opt.Number < o.Number {
			out = append(out, opt)
			inserted = true
		}
		out = append(out, o)
	}
	if !inserted {
		out = append(out, opt)
	}
	return out, nil
}
