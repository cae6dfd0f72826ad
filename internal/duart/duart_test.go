package duart

import (
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestDuart() (*Duart, *fakeClock) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	d := New(clk)
	return d, clk
}

func TestLoopbackRoundTrip(t *testing.T) {
	d, clk := newTestDuart()
	d.WriteRegister(RegMRA, 0x00)
	// MR2: set loopback bits 7:6 = 10.
	d.WriteRegister(RegMRA, 0x80)
	d.WriteRegister(RegCRA, CmdEnableRX|CmdEnableTX)
	d.WriteRegister(RegRHRA_THRA, 0x41)

	delay := d.ports[PortRS232].charDelay
	for i := 0; i < 3; i++ {
		clk.advance(delay)
		d.Service()
	}

	sr := d.Status(PortRS232)
	if sr&StatusRxRDY == 0 {
		t.Fatalf("expected RxRDY set after loopback delivery, sr=%#x", sr)
	}
	got := d.ReadRegister(RegRHRA_THRA)
	if got != 0x41 {
		t.Fatalf("RHR = %#x, want 0x41", got)
	}
	sr = d.Status(PortRS232)
	if sr&StatusRxRDY != 0 {
		t.Fatalf("RxRDY should clear once FIFO drained, sr=%#x", sr)
	}
}

func TestFIFODepth(t *testing.T) {
	d, clk := newTestDuart()
	d.WriteRegister(RegCRA, CmdEnableRX)

	for i := 0; i < 4; i++ {
		d.Rx(byte(0x30 + i))
	}

	delay := d.ports[PortRS232].charDelay
	for i := 0; i < 4; i++ {
		clk.advance(delay)
		d.Service()
	}

	sr := d.Status(PortRS232)
	if sr&StatusFIFOFull == 0 {
		t.Fatalf("expected FIFO-FULL after three queued bytes, sr=%#x", sr)
	}

	for i, want := range []byte{0x30, 0x31, 0x32} {
		got := d.ReadRegister(RegRHRA_THRA)
		if got != want {
			t.Fatalf("byte %d = %#x, want %#x", i, got, want)
		}
	}

	got := d.ReadRegister(RegRHRA_THRA)
	if got != 0x33 {
		t.Fatalf("fourth byte = %#x, want 0x33 after FIFO drained once", got)
	}
}

func TestMouseDownSetsIPCRBit(t *testing.T) {
	d, _ := newTestDuart()
	d.MouseDown(0)
	if d.ReadRegister(RegIPCR_ACR) != 0x80 {
		t.Fatalf("expected IPCR bit 0x80 after mouse_down(0)")
	}
	if d.ReadRegister(RegIPCR_ACR) != 0 {
		t.Fatalf("expected IPCR to read 0 after being read once")
	}
}
