package boot

import (
	"encoding/hex"
	"fmt"

	"github.com/miekg/pkcs11"
)

// HSMConfig names the PKCS#11 module, token, and object labels the master
// secret and master salt are provisioned under.
type HSMConfig struct {
	Lib         string `yaml:"lib"`
	Token       string `yaml:"token"`
	Slot        *uint  `yaml:"slot"`
	PinEnv      string `yaml:"pin_env"`
	SecretLabel string `yaml:"secret_label"`
	SaltLabel   string `yaml:"salt_label"`
}

// Validate checks that c names a module, a way to find the token, and a
// PIN source.
func (c *HSMConfig) Validate() error {
	if c.Lib == "" {
		return fmt.Errorf("pkcs11.lib is required")
	}
	if c.Token == "" && c.Slot == nil {
		return fmt.Errorf("one of pkcs11.token or pkcs11.slot is required")
	}
	if c.PinEnv == "" {
		return fmt.Errorf("pkcs11.pin_env is required (the PIN must come from the environment, never from the descriptor file)")
	}
	if c.SecretLabel == "" {
		return fmt.Errorf("pkcs11.secret_label is required")
	}
	return nil
}

// LoadMasterSecret opens cfg's PKCS#11 module, logs in with pin, and reads
// the raw value of the secret-key objects labelled SecretLabel and (if
// set) SaltLabel. The session is closed before returning; this package
// does not keep a pool open across calls (unlike the teacher's signer,
// nothing here signs repeatedly — bootstrap happens once per context).
func LoadMasterSecret(cfg *HSMConfig, pin string) (secret, salt []byte, err error) {
	ctx := pkcs11.New(cfg.Lib)
	if ctx == nil {
		return nil, nil, fmt.Errorf("boot: failed to load PKCS#11 module %q", cfg.Lib)
	}
	defer ctx.Destroy()

	if err := ctx.Initialize(); err != nil {
		if p11err, ok := err.(pkcs11.Error); !ok || p11err != pkcs11.CKR_CRYPTOKI_ALREADY_INITIALIZED {
			return nil, nil, fmt.Errorf("boot: initialize PKCS#11: %w", err)
		}
	}

	slot, err := findSlot(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("boot: find slot: %w", err)
	}

	session, err := ctx.OpenSession(slot, pkcs11.CKF_SERIAL_SESSION|pkcs11.CKF_RW_SESSION)
	if err != nil {
		return nil, nil, fmt.Errorf("boot: open session: %w", err)
	}
	defer func() { _ = ctx.CloseSession(session) }()

	if err := ctx.Login(session, pkcs11.CKU_USER, pin); err != nil {
		return nil, nil, fmt.Errorf("boot: login: %w", err)
	}
	defer func() { _ = ctx.Logout(session) }()

	secret, err = readSecretObject(ctx, session, cfg.SecretLabel)
	if err != nil {
		return nil, nil, fmt.Errorf("boot: read master secret: %w", err)
	}

	if cfg.SaltLabel != "" {
		salt, err = readSecretObject(ctx, session, cfg.SaltLabel)
		if err != nil {
			return nil, nil, fmt.Errorf("boot: read master salt: %w", err)
		}
	}

	return secret, salt, nil
}

func findSlot(ctx *pkcs11.Ctx, cfg *HSMConfig) (uint, error) {
	if cfg.Slot != nil {
		return *cfg.Slot, nil
	}

	slots, err := ctx.GetSlotList(true)
	if err != nil {
		return 0, fmt.Errorf("get slot list: %w", err)
	}
	for _, slot := range slots {
		info, err := ctx.GetTokenInfo(slot)
		if err != nil {
			continue
		}
		if info.Label == cfg.Token {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("token with label %q not found", cfg.Token)
}

func readSecretObject(ctx *pkcs11.Ctx, session pkcs11.SessionHandle, label string) ([]byte, error) {
	template := []*pkcs11.Attribute{
		pkcs11.NewAttribute(pkcs11.CKA_CLASS, pkcs11.CKO_SECRET_KEY),
		pkcs11.NewAttribute(pkcs11.CKA_LABEL, label),
	}
	if err := ctx.FindObjectsInit(session, template); err != nil {
		return nil, fmt.Errorf("init find objects: %w", err)
	}
	defer func() { _ = ctx.FindObjectsFinal(session) }()

	objs, _, err := ctx.FindObjects(session, 1)
	if err != nil {
		return nil, fmt.Errorf("find objects: %w", err)
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("object labelled %q not found", label)
	}

	attrs, err := ctx.GetAttributeValue(session, objs[0], []*pkcs11.Attribute{
		pkcs11.NewAttribute(pkcs11.CKA_VALUE, nil),
	})
	if err != nil {
		return nil, fmt.Errorf("read CKA_VALUE: %w", err)
	}
	if len(attrs) == 0 || len(attrs[0].Value) == 0 {
		return nil, fmt.Errorf("object labelled %q has an empty value", label)
	}
	return attrs[0].Value, nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("boot: invalid hex %q: %w", s, err)
	}
	return b, nil
}
