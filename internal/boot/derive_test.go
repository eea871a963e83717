package boot

import (
	"bytes"
	"testing"

	"github.com/iotsec/oscore-sender/internal/aead"
)

func TestDeriveProducesCorrectlySizedKeyAndIV(t *testing.T) {
	d := &Descriptor{Algorithm: "AES-CCM-16-64-128", SenderID: "00"}
	secret := bytes.Repeat([]byte{0x0c}, 16)
	salt := bytes.Repeat([]byte{0x9e}, 8)

	cc, sc, err := Derive(d, secret, salt)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	cipher, err := aead.ForAlgorithm(aead.AlgAESCCM16_64_128)
	if err != nil {
		t.Fatalf("ForAlgorithm: %v", err)
	}
	if len(sc.Key) != cipher.KeySize() {
		t.Errorf("sender key is %d bytes, want %d", len(sc.Key), cipher.KeySize())
	}
	if len(cc.CommonIV) != cipher.NonceSize() {
		t.Errorf("common IV is %d bytes, want %d", len(cc.CommonIV), cipher.NonceSize())
	}
	if !bytes.Equal(sc.ID, []byte{0x00}) {
		t.Errorf("sender ID = % x, want 00", sc.ID)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	d := &Descriptor{Algorithm: "AES-CCM-16-64-128", SenderID: "01"}
	secret := bytes.Repeat([]byte{0x01}, 16)

	cc1, sc1, err := Derive(d, secret, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	cc2, sc2, err := Derive(d, secret, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !bytes.Equal(sc1.Key, sc2.Key) || !bytes.Equal(cc1.CommonIV, cc2.CommonIV) {
		t.Error("Derive is not deterministic for identical inputs")
	}
}

func TestDeriveDifferentSenderIDsYieldDifferentKeys(t *testing.T) {
	secret := bytes.Repeat([]byte{0x01}, 16)
	d0 := &Descriptor{Algorithm: "AES-CCM-16-64-128", SenderID: "00"}
	d1 := &Descriptor{Algorithm: "AES-CCM-16-64-128", SenderID: "01"}

	_, sc0, err := Derive(d0, secret, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	_, sc1, err := Derive(d1, secret, nil)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if bytes.Equal(sc0.Key, sc1.Key) {
		t.Error("different sender IDs produced the same sender key")
	}
}
