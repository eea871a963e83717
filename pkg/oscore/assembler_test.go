package oscore

import (
	"testing"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

func TestAssembleCodeRewrite(t *testing.T) {
	cases := []struct {
		name     string
		code     coap.Code
		observe  bool
		wantCode coap.Code
	}{
		{"request-plain", coap.CodeGET, false, coap.CodePOST},
		{"request-observe", coap.CodeGET, true, coap.CodeGET},
		{"response-plain", coap.CodeContent, false, coap.CodeChanged},
		{"response-observe", coap.CodeContent, true, coap.CodeContent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			orig := &coap.Message{Code: c.code, Token: []byte{0x01}, MessageID: 7}
			out, err := Assemble(orig, nil, []byte{0x09, 0x01, 0x00}, []byte{0xde, 0xad}, c.observe)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if out.Code != c.wantCode {
				t.Errorf("Code = %v, want %v", out.Code, c.wantCode)
			}
		})
	}
}

func TestAssembleInsertsOscoreOptionSorted(t *testing.T) {
	outer := []coap.Option{
		{Number: coap.OptUriHost, Value: []byte("h")},
		{Number: 35, Value: []byte("p")}, // Proxy-Uri, numerically above OSCORE(9)
	}
	orig := &coap.Message{Code: coap.CodeGET}
	out, err := Assemble(orig, outer, []byte{0x09, 0x01, 0x00}, []byte{0x01}, false)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var last uint16
	for i, opt := range out.Options {
		if i > 0 && opt.Number < last {
			t.Fatalf("options not sorted: %v", out.Options)
		}
		last = opt.Number
	}
	found := false
	for _, opt := range out.Options {
		if opt.Number == coap.OptOSCORE {
			found = true
		}
	}
	if !found {
		t.Error("OSCORE option missing from assembled message")
	}
}

func TestAssemblePreservesHeaderFields(t *testing.T) {
	orig := &coap.Message{
		Version:   1,
		Type:      coap.TypeCON,
		Token:     []byte{0xaa, 0xbb},
		Code:      coap.CodeGET,
		MessageID: 42,
	}
	out, err := Assemble(orig, nil, nil, []byte{0x01}, false)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if out.MessageID != 42 || string(out.Token) != "\xaa\xbb" || out.Type != coap.TypeCON {
		t.Errorf("header fields not preserved: %+v", out)
	}
}
