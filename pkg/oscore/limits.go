package oscore

// Compile-time bounds used throughout the pipeline. None of them are
// load-bearing for correctness by themselves — they exist so a constrained
// caller can size its buffers once and never allocate per message.
const (
	// MaxOptionCount mirrors coap.MaxOptionCount; kept as its own constant
	// so this package's bound is visible without an import alias.
	MaxOptionCount = 32

	// MaxPIVLen is the largest Partial IV this pipeline will emit: 40-bit
	// sequence numbers never need more than 5 bytes (RFC 8613 §6.1).
	MaxPIVLen = 5

	// MaxPlaintextLen bounds code + inner options + 0xFF + payload.
	MaxPlaintextLen = 1024

	// MaxCiphertextLen bounds plaintext plus the largest tag this
	// pipeline's AEAD table supports (16 bytes, AES-CCM-16-128-128).
	MaxCiphertextLen = MaxPlaintextLen + 16

	// MaxAADLen bounds the COSE_Encrypt0 enc_structure passed to the AEAD.
	MaxAADLen = 64

	// OscoreOptValueLen bounds the OSCORE option value: 1 flag byte + PIV
	// (5) + 1 KID-context-length byte + KID context (8) + KID (7).
	OscoreOptValueLen = 1 + MaxPIVLen + 1 + 8 + 7

	// maxSeqNum is the first sequence number RFC 8613 §7.2.1 forbids
	// (sender_seq_num must stay within 2^40).
	maxSeqNum = uint64(1) << 40
)
