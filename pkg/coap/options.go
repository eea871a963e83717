package coap

// MaxOptionCount bounds the number of options a message may carry, so the
// core can work against fixed-capacity slices instead of unbounded
// allocation (spec budget: constrained endpoints, no heap growth surprises).
const MaxOptionCount = 32

// CoAP option numbers this module has an opinion about, either because the
// core classifies them (RFC 8613 §4.1) or because it special-cases them.
const (
	OptIfMatch       uint16 = 1
	OptUriHost       uint16 = 3
	OptETag          uint16 = 4
	OptIfNoneMatch   uint16 = 5
	OptObserve       uint16 = 6
	OptUriPort       uint16 = 7
	OptLocationPath  uint16 = 8
	OptOSCORE        uint16 = 9
	OptUriPath       uint16 = 11
	OptContentFormat uint16 = 12
	OptMaxAge        uint16 = 14
	OptUriQuery      uint16 = 15
	OptAccept        uint16 = 17
	OptLocationQuery uint16 = 20
	OptBlock2        uint16 = 23
	OptBlock1        uint16 = 27
	OptSize2         uint16 = 28
	OptProxyUri      uint16 = 35
	OptProxyScheme   uint16 = 39
	OptSize1         uint16 = 60
	OptEcho          uint16 = 252
)

// Class is a CoAP option's OSCORE security class (RFC 8613 §4.1): whether
// it travels inside the encrypted plaintext (Class-E) or stays on the
// outer, unprotected message (Class-U).
type Class int

const (
	classUnknown Class = iota
	ClassE              // encrypted, "inner"
	ClassU              // unprotected, "outer"
)

// classTable is the fixed RFC 8613 §4.1 mapping. Observe (6) is listed here
// as Class-E because its inner half follows the Class-E rules, but callers
// needing its outer-option duality must special-case it themselves (see
// oscore.Split) rather than relying on this table alone.
var classTable = map[uint16]Class{
	OptIfMatch:       ClassE,
	OptUriHost:       ClassU,
	OptETag:          ClassE,
	OptIfNoneMatch:   ClassE,
	OptObserve:       ClassE,
	OptUriPort:       ClassU,
	OptLocationPath:  ClassE,
	OptOSCORE:        ClassU,
	OptUriPath:       ClassE,
	OptContentFormat: ClassE,
	OptMaxAge:        ClassE,
	OptUriQuery:      ClassE,
	OptAccept:        ClassE,
	OptLocationQuery: ClassE,
	OptBlock2:        ClassE,
	OptBlock1:        ClassE,
	OptSize2:         ClassE,
	OptProxyUri:      ClassU,
	OptProxyScheme:   ClassU,
	OptSize1:         ClassE,
	OptEcho:          ClassE, // RFC 9175 §2.2
}

// ClassOf looks up number's OSCORE security class. The second return value
// is false for any option number absent from the RFC 8613 §4.1 table.
func ClassOf(number uint16) (Class, bool) {
	c, ok := classTable[number]
	return c, ok
}
