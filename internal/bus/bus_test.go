package bus

import (
	"testing"
	"time"
)

func newTestBus() *Bus {
	return New(0x10000, fakeClock{})
}

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Unix(0, 0) }

func TestEndiannessDataVsOperand(t *testing.T) {
	b := newTestBus()
	addr := uint32(RAMBase)
	if err := b.WriteByte(addr, 0x01); err != nil {
		t.Fatal(err)
	}
	b.WriteByte(addr+1, 0x02)
	b.WriteByte(addr+2, 0x03)
	b.WriteByte(addr+3, 0x04)

	w, err := b.ReadWord(addr)
	if err != nil {
		t.Fatal(err)
	}
	if w != 0x01020304 {
		t.Fatalf("ReadWord = %#x, want 0x01020304", w)
	}

	op, err := b.ReadOpWord(addr)
	if err != nil {
		t.Fatal(err)
	}
	if op != 0x04030201 {
		t.Fatalf("ReadOpWord = %#x, want 0x04030201", op)
	}
}

func TestAlignmentFaults(t *testing.T) {
	b := newTestBus()
	if _, err := b.ReadHalf(RAMBase + 1); err == nil {
		t.Fatal("expected alignment error on odd half-word read")
	}
	if _, err := b.ReadWord(RAMBase + 2); err == nil {
		t.Fatal("expected alignment error on misaligned word read")
	}
}

func TestROMReadOnly(t *testing.T) {
	b := newTestBus()
	if err := b.LoadROM([]byte{0xAA, 0xBB}); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteByte(ROMBase, 0xFF); err == nil {
		t.Fatal("expected permission error writing ROM")
	}
	v, _ := b.ReadByte(ROMBase)
	if v != 0xAA {
		t.Fatal("ROM write must not have mutated state")
	}
}

func TestDirtyTracking(t *testing.T) {
	// RAM must extend past the video window for the final write below.
	b := New(0x20000, fakeClock{})
	b.WriteHalf(VideoBase, 0) // video start register = 0 -> window at RAM+0
	b.VideoRAM()              // clear any initial dirty state

	if b.Dirty() {
		t.Fatal("dirty flag should be clear before any video write")
	}
	if err := b.WriteByte(RAMBase, 0x7F); err != nil {
		t.Fatal(err)
	}
	if !b.Dirty() {
		t.Fatal("write inside video window must set dirty flag")
	}
	b.VideoRAM()
	if b.Dirty() {
		t.Fatal("reading video slice must clear dirty flag")
	}

	if err := b.WriteByte(RAMBase+videoBytes+0x100, 0x01); err != nil {
		t.Fatal(err)
	}
	if b.Dirty() {
		t.Fatal("write outside video window must not set dirty flag")
	}
}

func TestNoDeviceError(t *testing.T) {
	b := newTestBus()
	if _, err := b.ReadByte(0x300000); err == nil {
		t.Fatal("expected no-device error for unmapped address")
	}
}
