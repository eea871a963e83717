package oscore

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeOptionScenarioOne(t *testing.T) {
	// sender_id = 0x00, PIV = 0x14 (seq 20), no KID context.
	got, err := EncodeOption([]byte{0x14}, []byte{0x00}, nil)
	if err != nil {
		t.Fatalf("EncodeOption: %v", err)
	}
	want := []byte{0x09, 0x14, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeOption = % x, want % x", got, want)
	}
}

func TestEncodeOptionEmptyKIDIsExplicit(t *testing.T) {
	got, err := EncodeOption([]byte{0x01}, []byte{}, nil)
	if err != nil {
		t.Fatalf("EncodeOption: %v", err)
	}
	// flag byte: n=1, k bit set (0x08) -> 0x09; PIV byte 0x01; KID absent
	// from the wire but k is still set, distinguishing "empty KID" from
	// "no KID sent at all" (piv == nil case).
	want := []byte{0x09, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeOption = % x, want % x", got, want)
	}
}

func TestEncodeOptionPlainResponse(t *testing.T) {
	got, err := EncodeOption(nil, nil, nil)
	if err != nil {
		t.Fatalf("EncodeOption: %v", err)
	}
	if got != nil {
		t.Errorf("EncodeOption(nil, ...) = % x, want nil", got)
	}
}

func TestEncodeOptionWithKIDContext(t *testing.T) {
	piv := []byte{0x07}
	kid := []byte{0x01, 0x02}
	kidCtx := []byte{0xaa, 0xbb, 0xcc}

	got, err := EncodeOption(piv, kid, kidCtx)
	if err != nil {
		t.Fatalf("EncodeOption: %v", err)
	}
	// flag: n=1, h bit (0x10), k bit (0x08) -> 0x19
	want := []byte{0x19, 0x07, 0x03, 0xaa, 0xbb, 0xcc, 0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeOption = % x, want % x", got, want)
	}
}

func TestEncodeOptionRejectsOverlongPIV(t *testing.T) {
	piv := bytes.Repeat([]byte{0x01}, 8)
	_, err := EncodeOption(piv, []byte{0x00}, nil)
	if !errors.Is(err, ErrOscoreValueTooLong) {
		t.Fatalf("err = %v, want ErrOscoreValueTooLong", err)
	}
}

func TestEncodeOptionRejectsOverlongTotal(t *testing.T) {
	piv := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	kid := bytes.Repeat([]byte{0x01}, 8)
	kidCtx := bytes.Repeat([]byte{0x02}, 8)
	_, err := EncodeOption(piv, kid, kidCtx)
	if !errors.Is(err, ErrOscoreValueTooLong) {
		t.Fatalf("err = %v, want ErrOscoreValueTooLong", err)
	}
}
