package oscore

import (
	"bytes"
	"testing"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

func TestBuildPlaintextWithPayload(t *testing.T) {
	inner := []coap.Option{{Number: coap.OptUriPath, Value: []byte("temp")}}
	serialized, err := coap.SerializeOptions(inner)
	if err != nil {
		t.Fatalf("SerializeOptions: %v", err)
	}

	got, err := BuildPlaintext(coap.CodeGET, inner, []byte("hello"), len(serialized))
	if err != nil {
		t.Fatalf("BuildPlaintext: %v", err)
	}

	want := append([]byte{byte(coap.CodeGET)}, serialized...)
	want = append(want, 0xFF)
	want = append(want, []byte("hello")...)
	if !bytes.Equal(got, want) {
		t.Errorf("BuildPlaintext = % x, want % x", got, want)
	}
}

func TestBuildPlaintextNoPayloadOmitsMarker(t *testing.T) {
	got, err := BuildPlaintext(coap.CodeGET, nil, nil, 0)
	if err != nil {
		t.Fatalf("BuildPlaintext: %v", err)
	}
	want := []byte{byte(coap.CodeGET)}
	if !bytes.Equal(got, want) {
		t.Errorf("BuildPlaintext = % x, want % x", got, want)
	}
}

func TestBuildPlaintextRejectsInnerLenMismatch(t *testing.T) {
	inner := []coap.Option{{Number: coap.OptUriPath, Value: []byte("temp")}}
	_, err := BuildPlaintext(coap.CodeGET, inner, nil, 999)
	if err == nil {
		t.Fatal("BuildPlaintext with wrong innerLen: want error, got nil")
	}
}
