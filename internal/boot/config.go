// Package boot derives an oscore.Context from a bootstrap descriptor: a
// YAML file naming the security context's fixed parameters and where its
// master secret lives (inline, for test fixtures, or in an HSM via
// PKCS#11).
package boot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	gocose "github.com/veraison/go-cose"

	"github.com/iotsec/oscore-sender/internal/aead"
)

// Descriptor is the YAML bootstrap file for one OSCORE security context.
type Descriptor struct {
	Algorithm   string         `yaml:"algorithm"`
	SenderID    string         `yaml:"sender_id"`    // hex
	RecipientID string         `yaml:"recipient_id"` // hex
	IDContext   string         `yaml:"id_context"`   // hex, optional
	Secret      SecretSettings `yaml:"secret"`
}

// SecretSettings names where the master secret and master salt come from.
// Exactly one of Inline or PKCS11 must be set.
type SecretSettings struct {
	Inline *InlineSecret `yaml:"inline"`
	PKCS11 *HSMConfig    `yaml:"pkcs11"`
}

// InlineSecret carries the master secret/salt directly in the descriptor.
// Meant for test fixtures and local development, never for a deployed
// endpoint — spec.md's Non-goals exclude a secrets-at-rest story, but an
// inline secret is explicit enough not to masquerade as one.
type InlineSecret struct {
	MasterSecret string `yaml:"master_secret"` // hex
	MasterSalt   string `yaml:"master_salt"`   // hex, optional
}

var algorithmTable = map[string]gocose.Algorithm{
	"AES-CCM-16-64-128":  aead.AlgAESCCM16_64_128,
	"AES-CCM-16-128-128": aead.AlgAESCCM16_128_128,
	"AES-CCM-64-64-128":  aead.AlgAESCCM64_64_128,
}

// LoadDescriptor reads and validates a bootstrap descriptor from path.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boot: read descriptor: %w", err)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("boot: parse descriptor: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("boot: invalid descriptor: %w", err)
	}
	return &d, nil
}

// Validate checks that d names a supported algorithm, a sender ID, and
// exactly one secret source.
func (d *Descriptor) Validate() error {
	if _, ok := algorithmTable[d.Algorithm]; !ok {
		return fmt.Errorf("unsupported algorithm %q", d.Algorithm)
	}
	if d.SenderID == "" {
		return fmt.Errorf("sender_id is required")
	}

	switch {
	case d.Secret.Inline != nil && d.Secret.PKCS11 != nil:
		return fmt.Errorf("secret.inline and secret.pkcs11 are mutually exclusive")
	case d.Secret.Inline != nil:
		if d.Secret.Inline.MasterSecret == "" {
			return fmt.Errorf("secret.inline.master_secret is required")
		}
	case d.Secret.PKCS11 != nil:
		if err := d.Secret.PKCS11.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of secret.inline or secret.pkcs11 is required")
	}
	return nil
}

// ResolvedAlgorithm resolves d's named algorithm to its COSE ID.
func (d *Descriptor) ResolvedAlgorithm() gocose.Algorithm {
	return algorithmTable[d.Algorithm]
}
