package boot

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const (
	testTokenLabel = "oscore-test-token"
	testTokenPIN   = "1234"
	testSOPIN      = "12345678"
	testSecretLbl  = "oscore-master-secret"
)

// setupSoftHSM initialises a temporary, empty SoftHSM token (no objects on
// it), skipping the test when SoftHSM tooling isn't installed.
func setupSoftHSM(t *testing.T) (modulePath string) {
	t.Helper()

	if _, err := exec.LookPath("softhsm2-util"); err != nil {
		t.Skip("softhsm2-util not found, skipping PKCS#11 test")
	}
	modulePath = findSoftHSMLib()
	if modulePath == "" {
		t.Skip("SoftHSM library not found, skipping PKCS#11 test")
	}

	tokenDir := t.TempDir()
	tokensDir := filepath.Join(tokenDir, "tokens")
	if err := os.MkdirAll(tokensDir, 0700); err != nil {
		t.Fatalf("mkdir tokens dir: %v", err)
	}
	configFile := filepath.Join(tokenDir, "softhsm2.conf")
	conf := "directories.tokendir = " + tokensDir + "\nobjectstore.backend = file\nlog.level = ERROR\n"
	if err := os.WriteFile(configFile, []byte(conf), 0600); err != nil {
		t.Fatalf("write softhsm2.conf: %v", err)
	}
	t.Setenv("SOFTHSM2_CONF", configFile)

	initCmd := exec.Command("softhsm2-util", "--init-token", "--free",
		"--label", testTokenLabel, "--pin", testTokenPIN, "--so-pin", testSOPIN)
	if out, err := initCmd.CombinedOutput(); err != nil {
		t.Fatalf("init-token: %v: %s", err, out)
	}
	return modulePath
}

func findSoftHSMLib() string {
	candidates := []string{
		"/usr/lib/softhsm/libsofthsm2.so",
		"/usr/lib/x86_64-linux-gnu/softhsm/libsofthsm2.so",
		"/usr/local/lib/softhsm/libsofthsm2.so",
		"/opt/homebrew/lib/softhsm/libsofthsm2.so",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func TestLoadMasterSecretFromSoftHSMMissingObject(t *testing.T) {
	modulePath := setupSoftHSM(t)

	cfg := &HSMConfig{
		Lib:         modulePath,
		Token:       testTokenLabel,
		PinEnv:      "OSCORE_TEST_PIN",
		SecretLabel: testSecretLbl,
	}
	t.Setenv("OSCORE_TEST_PIN", testTokenPIN)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// SoftHSM's pkcs11-tool would normally provision the secret object
	// out of band; this test only exercises LoadMasterSecret's error
	// path against a token with no matching object, since generating a
	// generic secret key needs a vendor tool this module doesn't ship.
	_, _, err := LoadMasterSecret(cfg, testTokenPIN)
	if err == nil {
		t.Fatal("LoadMasterSecret: want error, token has no provisioned secret object")
	}
}
