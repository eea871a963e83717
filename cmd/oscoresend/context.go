package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/iotsec/oscore-sender/internal/aead"
	"github.com/iotsec/oscore-sender/internal/boot"
	"github.com/iotsec/oscore-sender/pkg/oscore"
)

// loadContext reads a bootstrap descriptor, resolves its secret material,
// and derives a ready-to-use oscore.Context plus the Cipher it was derived
// for.
func loadContext(descriptorPath string) (*oscore.Context, aead.Cipher, error) {
	d, err := boot.LoadDescriptor(descriptorPath)
	if err != nil {
		return nil, nil, err
	}

	var secret, salt []byte
	switch {
	case d.Secret.Inline != nil:
		secret, salt, err = loadInlineSecret(d)
	case d.Secret.PKCS11 != nil:
		secret, salt, err = loadPKCS11Secret(d)
	}
	if err != nil {
		return nil, nil, err
	}

	cc, sc, err := boot.Derive(d, secret, salt)
	if err != nil {
		return nil, nil, err
	}

	cipher, err := aead.ForAlgorithm(d.ResolvedAlgorithm())
	if err != nil {
		return nil, nil, err
	}

	return &oscore.Context{CC: cc, SC: sc}, cipher, nil
}

func loadInlineSecret(d *boot.Descriptor) (secret, salt []byte, err error) {
	secret, err = decodeHexArg(d.Secret.Inline.MasterSecret)
	if err != nil {
		return nil, nil, err
	}
	if d.Secret.Inline.MasterSalt != "" {
		salt, err = decodeHexArg(d.Secret.Inline.MasterSalt)
		if err != nil {
			return nil, nil, err
		}
	}
	return secret, salt, nil
}

func loadPKCS11Secret(d *boot.Descriptor) (secret, salt []byte, err error) {
	pin := os.Getenv(d.Secret.PKCS11.PinEnv)
	if pin == "" {
		return nil, nil, fmt.Errorf("environment variable %s is not set", d.Secret.PKCS11.PinEnv)
	}
	return boot.LoadMasterSecret(d.Secret.PKCS11, pin)
}

func decodeHexArg(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}
