package coap

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MaxMessageLen bounds a serialized message. 1152 is the CoAP default MTU
// recommendation (RFC 7252 §4.6) for a link without fragmentation below it.
const MaxMessageLen = 1152

// MaxTokenLen is the largest token CoAP allows (RFC 7252 §3: TKL is 4 bits,
// values 9-15 reserved).
const MaxTokenLen = 8

// Parse decodes a CoAP datagram into a Message. It rejects anything that
// violates the wire format: unsupported version, oversized token, option
// numbers overflowing uint16, truncated reads, a reserved nibble 15 in an
// option header, and a trailing 0xFF with no payload after it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("coap: packet shorter than 4-byte header: %w", ErrInvalidPacket)
	}

	b0 := data[0]
	version := b0 >> 6
	if version != 1 {
		return nil, fmt.Errorf("coap: unsupported version %d: %w", version, ErrInvalidPacket)
	}
	typ := Type((b0 >> 4) & 0x3)
	tkl := int(b0 & 0x0f)
	if tkl > MaxTokenLen {
		return nil, fmt.Errorf("coap: token length %d exceeds %d: %w", tkl, MaxTokenLen, ErrInvalidPacket)
	}

	code := Code(data[1])
	mid := binary.BigEndian.Uint16(data[2:4])

	pos := 4
	if pos+tkl > len(data) {
		return nil, fmt.Errorf("coap: token runs past end of buffer: %w", ErrInvalidPacket)
	}
	var token []byte
	if tkl > 0 {
		token = append([]byte(nil), data[pos:pos+tkl]...)
	}
	pos += tkl

	msg := &Message{
		Version:   version,
		Type:      typ,
		Token:     token,
		Code:      code,
		MessageID: mid,
	}

	var lastNumber uint32
	sawPayloadMarker := false
	for pos < len(data) {
		if data[pos] == 0xFF {
			pos++
			sawPayloadMarker = true
			break
		}

		header := data[pos]
		pos++
		deltaNibble := uint16(header >> 4)
		lenNibble := uint16(header & 0x0f)
		if deltaNibble == 15 || lenNibble == 15 {
			return nil, fmt.Errorf("coap: reserved option-header nibble 15: %w", ErrInvalidPacket)
		}

		delta, newPos, err := readExtension(data, pos, deltaNibble)
		if err != nil {
			return nil, err
		}
		pos = newPos
		length, newPos, err := readExtension(data, pos, lenNibble)
		if err != nil {
			return nil, err
		}
		pos = newPos

		number := lastNumber + uint32(delta)
		if number > 0xFFFF {
			return nil, fmt.Errorf("coap: option number %d overflows uint16: %w", number, ErrInvalidPacket)
		}

		if pos+int(length) > len(data) {
			return nil, fmt.Errorf("coap: option value runs past end of buffer: %w", ErrInvalidPacket)
		}
		var value []byte
		if length > 0 {
			value = append([]byte(nil), data[pos:pos+int(length)]...)
		}
		pos += int(length)

		if len(msg.Options) >= MaxOptionCount {
			return nil, fmt.Errorf("coap: more than %d options: %w", MaxOptionCount, ErrTooManyOptions)
		}
		msg.Options = append(msg.Options, Option{Number: uint16(number), Value: value})
		lastNumber = number
	}

	if sawPayloadMarker {
		if pos >= len(data) {
			return nil, fmt.Errorf("coap: payload marker with no payload: %w", ErrInvalidPacket)
		}
		msg.Payload = append([]byte(nil), data[pos:]...)
	}

	return msg, nil
}

// readExtension decodes one delta or length nibble and its extension bytes
// (RFC 7252 §3.1), returning the resolved value and the position just past
// the extension.
func readExtension(data []byte, pos int, nibble uint16) (uint16, int, error) {
	switch {
	case nibble < 13:
		return nibble, pos, nil
	case nibble == 13:
		if pos >= len(data) {
			return 0, 0, fmt.Errorf("coap: 1-byte option extension runs past end of buffer: %w", ErrInvalidPacket)
		}
		return uint16(data[pos]) + 13, pos + 1, nil
	case nibble == 14:
		if pos+1 >= len(data) {
			return 0, 0, fmt.Errorf("coap: 2-byte option extension runs past end of buffer: %w", ErrInvalidPacket)
		}
		v := uint32(binary.BigEndian.Uint16(data[pos:pos+2])) + 269
		if v > 0xFFFF {
			return 0, 0, fmt.Errorf("coap: option extension value %d overflows uint16: %w", v, ErrInvalidPacket)
		}
		return uint16(v), pos + 2, nil
	default:
		return 0, 0, fmt.Errorf("coap: reserved option extension nibble 15: %w", ErrInvalidPacket)
	}
}

// Serialize encodes msg back to its wire format. Options must already be
// sorted by Number ascending; Serialize recomputes each option's delta
// against the running sum of preceding Numbers and picks the minimal
// nibble/extension encoding for both delta and length.
func Serialize(msg *Message) ([]byte, error) {
	if len(msg.Token) > MaxTokenLen {
		return nil, fmt.Errorf("coap: token length %d exceeds %d: %w", len(msg.Token), MaxTokenLen, ErrInvalidPacket)
	}
	if len(msg.Options) > MaxOptionCount {
		return nil, fmt.Errorf("coap: more than %d options: %w", MaxOptionCount, ErrTooManyOptions)
	}

	var buf bytes.Buffer
	version := msg.Version
	if version == 0 {
		version = 1
	}
	buf.WriteByte(version<<6 | byte(msg.Type)<<4 | byte(len(msg.Token)))
	buf.WriteByte(byte(msg.Code))
	var midBuf [2]byte
	binary.BigEndian.PutUint16(midBuf[:], msg.MessageID)
	buf.Write(midBuf[:])
	buf.Write(msg.Token)

	if err := writeOptions(&buf, msg.Options); err != nil {
		return nil, err
	}

	if len(msg.Payload) > 0 {
		buf.WriteByte(0xFF)
		buf.Write(msg.Payload)
	}

	out := buf.Bytes()
	if len(out) > MaxMessageLen {
		return nil, fmt.Errorf("coap: serialized message is %d bytes, exceeds %d: %w", len(out), MaxMessageLen, ErrBufferTooSmall)
	}
	return out, nil
}

// SerializeOptions encodes just the option sequence (no header, token, or
// payload marker) — the form the OSCORE plaintext builder needs for the
// inner ("E") option set (RFC 8613 §5.3).
func SerializeOptions(opts []Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeOptions(&buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeOptions(buf *bytes.Buffer, opts []Option) error {
	var last uint32
	for i, opt := range opts {
		if uint32(opt.Number) < last {
			return fmt.Errorf("coap: option %d is out of order at index %d: %w", opt.Number, i, ErrInvalidPacket)
		}
		delta := uint16(uint32(opt.Number) - last)
		writeOptionHeader(buf, delta, len(opt.Value))
		buf.Write(opt.Value)
		last = uint32(opt.Number)
	}
	return nil
}

func writeOptionHeader(buf *bytes.Buffer, delta uint16, length int) {
	dNibble, dExt := nibbleAndExtension(delta)
	lNibble, lExt := nibbleAndExtension(uint16(length))
	buf.WriteByte(dNibble<<4 | lNibble)
	buf.Write(dExt)
	buf.Write(lExt)
}

// nibbleAndExtension picks the minimal nibble/extension encoding for a
// delta or length value (RFC 7252 §3.1).
func nibbleAndExtension(v uint16) (nibble byte, ext []byte) {
	switch {
	case v < 13:
		return byte(v), nil
	case v < 269:
		return 13, []byte{byte(v - 13)}
	default:
		e := v - 269
		return 14, []byte{byte(e >> 8), byte(e)}
	}
}

