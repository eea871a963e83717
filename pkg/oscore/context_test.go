package oscore

import (
	"bytes"
	"errors"
	"testing"

	"github.com/iotsec/oscore-sender/pkg/coap"
)

func TestAcquireSenderPIVIsMonotonic(t *testing.T) {
	ctx := &Context{SC: SenderContext{SeqNum: 0}}

	first, err := ctx.AcquireSenderPIV()
	if err != nil {
		t.Fatalf("AcquireSenderPIV: %v", err)
	}
	if !bytes.Equal(first, []byte{0x00}) {
		t.Errorf("first PIV = % x, want 00", first)
	}

	second, err := ctx.AcquireSenderPIV()
	if err != nil {
		t.Fatalf("AcquireSenderPIV: %v", err)
	}
	if !bytes.Equal(second, []byte{0x01}) {
		t.Errorf("second PIV = % x, want 01", second)
	}
	if ctx.SC.SeqNum != 2 {
		t.Errorf("SeqNum = %d, want 2", ctx.SC.SeqNum)
	}
}

func TestAcquireSenderPIVOverflow(t *testing.T) {
	ctx := &Context{SC: SenderContext{SeqNum: maxSeqNum}}
	_, err := ctx.AcquireSenderPIV()
	if !errors.Is(err, ErrSeqNumOverflow) {
		t.Fatalf("err = %v, want ErrSeqNumOverflow", err)
	}
	if ctx.SC.SeqNum != maxSeqNum {
		t.Errorf("SeqNum mutated on overflow: %d", ctx.SC.SeqNum)
	}
}

func TestRememberRequestCopiesInputs(t *testing.T) {
	ctx := &Context{}
	piv := []byte{0x01}
	kid := []byte{0x02}
	ctx.RememberRequest(piv, kid)

	piv[0] = 0xff
	if ctx.RRC.RequestPIV[0] == 0xff {
		t.Error("RememberRequest aliased the caller's PIV slice")
	}
	if !bytes.Equal(ctx.RRC.RequestKID, []byte{0x02}) {
		t.Errorf("RequestKID = % x, want 02", ctx.RRC.RequestKID)
	}
}

func TestCacheEchoOnlyActsDuringReboot(t *testing.T) {
	ctx := &Context{RRC: RequestResponseCache{Reboot: true}}
	inner := []coap.Option{{Number: coap.OptEcho, Value: []byte{0xaa, 0xbb}}}

	ctx.CacheEcho(inner)
	if !bytes.Equal(ctx.RRC.EchoOptVal, []byte{0xaa, 0xbb}) {
		t.Errorf("EchoOptVal = % x, want aa bb", ctx.RRC.EchoOptVal)
	}
	if ctx.RRC.Reboot {
		t.Error("Reboot still true after CacheEcho")
	}

	// Second call, Reboot now false: must be a no-op even with a
	// different ECHO value present.
	ctx.CacheEcho([]coap.Option{{Number: coap.OptEcho, Value: []byte{0xcc}}})
	if !bytes.Equal(ctx.RRC.EchoOptVal, []byte{0xaa, 0xbb}) {
		t.Errorf("EchoOptVal overwritten after reboot flag cleared: % x", ctx.RRC.EchoOptVal)
	}
}

func TestCacheEchoNoEchoOptionPresent(t *testing.T) {
	ctx := &Context{RRC: RequestResponseCache{Reboot: true}}
	ctx.CacheEcho([]coap.Option{{Number: coap.OptUriPath, Value: []byte("x")}})
	if ctx.RRC.EchoOptVal != nil {
		t.Errorf("EchoOptVal = % x, want nil", ctx.RRC.EchoOptVal)
	}
	if ctx.RRC.Reboot {
		t.Error("Reboot still true after CacheEcho with no ECHO option")
	}
}
