package oscore

import (
	"sync"

	gocose "github.com/veraison/go-cose"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

// CommonContext holds the parameters shared by both ends of one OSCORE
// security context (RFC 8613 §3.1). It is derived once at bootstrap and
// never mutated by the sender pipeline.
type CommonContext struct {
	CommonIV  []byte
	IDContext []byte
	AEADAlg   gocose.Algorithm
}

// SenderContext holds this endpoint's half of the context: its key and its
// sequence number. SeqNum must never repeat for the lifetime of Key —
// AcquireSenderPIV is the only sanctioned way to read and advance it.
type SenderContext struct {
	ID     []byte
	Key    []byte
	SeqNum uint64
}

// RequestResponseCache is the per-exchange memory the response path needs:
// the KID/PIV that went into the matching request's AAD, the nonce that
// request used (responses reuse it verbatim — RFC 8613 §5.2), and the
// reboot/ECHO recovery state (RFC 8613 §7.2, Appendix B.1.2).
type RequestResponseCache struct {
	RequestPIV []byte
	RequestKID []byte
	Nonce      []byte
	EchoOptVal []byte
	Reboot     bool
}

// Context is one maintained OSCORE security context. Every field is
// exported for the host application's bootstrap and introspection code,
// but mutation during a coap2oscore call happens only inside CoapToOscore
// and the methods below. Concurrent calls against the same Context are not safe;
// the caller must serialize them with Lock/Unlock (spec.md §5).
type Context struct {
	mu sync.Mutex

	CC  CommonContext
	SC  SenderContext
	RRC RequestResponseCache
}

// Lock acquires the context's mutual-exclusion guarantee. Callers must hold
// it for the full duration of a CoapToOscore call.
func (c *Context) Lock() { c.mu.Lock() }

// Unlock releases the lock acquired by Lock.
func (c *Context) Unlock() { c.mu.Unlock() }

// AcquireSenderPIV post-increments SeqNum and returns the Partial IV
// derived from the pre-increment value. Once this returns successfully the
// sequence number is burned: a later pipeline failure must never roll it
// back, because reusing a (key, nonce) pair breaks AEAD confidentiality and
// integrity outright (RFC 8613 §7.2.1, spec.md §4.9).
func (c *Context) AcquireSenderPIV() ([]byte, error) {
	if c.SC.SeqNum >= maxSeqNum {
		return nil, ErrSeqNumOverflow
	}
	seq := c.SC.SeqNum
	c.SC.SeqNum++
	return TrimToPIV(seq), nil
}

// RememberRequest records piv/kid as the values the eventual response's AAD
// must reference (RFC 8613 §5.4). Called for every outbound request, and
// for the first outbound response after a reboot (spec.md §4.5).
func (c *Context) RememberRequest(piv, kid []byte) {
	c.RRC.RequestPIV = append([]byte(nil), piv...)
	c.RRC.RequestKID = append([]byte(nil), kid...)
}

// CacheEcho records the ECHO option (coap.OptEcho) from inner's first
// occurrence, if any, and clears Reboot. It is a no-op once Reboot is
// already false — only the first post-reboot message's ECHO is kept.
func (c *Context) CacheEcho(inner []coap.Option) {
	if !c.RRC.Reboot {
		return
	}
	for _, opt := range inner {
		if opt.Number == coap.OptEcho {
			c.RRC.EchoOptVal = append([]byte(nil), opt.Value...)
			break
		}
	}
	c.RRC.Reboot = false
}
