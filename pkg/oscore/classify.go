package oscore

import (
	"fmt"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

// Split partitions msg's options into the Class-E ("inner", to be
// encrypted) and Class-U ("outer", left visible) sets per RFC 8613 §4.1.
// Observe (option 6) is the one exception to a strict E-xor-U split: it
// appears in both sets. Its inner value is the original value for a
// request (registration/cancellation) and empty for a response
// (notification); its outer value is always the original value.
//
// Both returned slices stay sorted by option number ascending, because
// msg.Options already is and Split only filters, never reorders.
//
// innerLen is the exact byte length coap.SerializeOptions(inner) would
// produce — callers use it to size the plaintext buffer without having to
// serialize twice.
func Split(msg *coap.Message) (inner, outer []coap.Option, innerLen int, err error) {
	if len(msg.Options) > MaxOptionCount {
		return nil, nil, 0, fmt.Errorf("oscore: %d options exceeds cap %d: %w", len(msg.Options), MaxOptionCount, ErrTooManyOptions)
	}

	request := msg.Code.IsRequest()
	for _, opt := range msg.Options {
		if opt.Number == coap.OptObserve {
			innerValue := opt.Value
			if !request {
				innerValue = nil
			}
			inner = append(inner, coap.Option{Number: opt.Number, Value: innerValue})
			outer = append(outer, coap.Option{Number: opt.Number, Value: opt.Value})
			continue
		}

		class, ok := coap.ClassOf(opt.Number)
		if !ok {
			return nil, nil, 0, fmt.Errorf("oscore: option %d: %w", opt.Number, ErrUnknownOption)
		}
		switch class {
		case coap.ClassE:
			inner = append(inner, opt)
		case coap.ClassU:
			outer = append(outer, opt)
		}
	}

	serialized, err := coap.SerializeOptions(inner)
	if err != nil {
		return nil, nil, 0, err
	}
	return inner, outer, len(serialized), nil
}

// HasObserve reports whether opts (expected to be an outer option set)
// carries the Observe option.
func HasObserve(opts []coap.Option) bool {
	for _, o := range opts {
		if o.Number == coap.OptObserve {
			return true
		}
	}
	return false
}
