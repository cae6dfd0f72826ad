package terminal

import "testing"

func TestResetAndStepParksAtHalt(t *testing.T) {
	term := New(0x10000)
	if err := term.Reset(2); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	// The placeholder ROM image parks at a HALT; Step should report the
	// breakpoint-trap exception rather than executing garbage.
	if err := term.Step(); err == nil {
		t.Fatal("Step() at placeholder ROM entry: want error (HALT trap), got nil")
	}
}

func TestNVRAMRoundTrip(t *testing.T) {
	term := New(0x10000)
	if err := term.Reset(1); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	blob := term.GetNVRAM()
	for i := range blob {
		blob[i] = byte(i)
	}
	if err := term.SetNVRAM(blob); err != nil {
		t.Fatalf("SetNVRAM: %v", err)
	}
	got := term.GetNVRAM()
	for i := range got {
		if got[i] != byte(i) {
			t.Fatalf("NVRAM[%d] = %#x, want %#x", i, got[i], byte(i))
		}
	}
}

func TestSetNVRAMWrongSize(t *testing.T) {
	term := New(0x10000)
	if err := term.SetNVRAM(make([]byte, 10)); err == nil {
		t.Fatal("SetNVRAM with wrong length: want error, got nil")
	}
}

func TestMouseAndMemoryAccessors(t *testing.T) {
	term := New(0x10000)
	if err := term.Reset(2); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	term.MouseMove(100, 200)
	term.MouseDown(0)
	// IPCR read-and-clear is exercised at the duart layer; here we just
	// confirm the façade forwards mouse events without error.
	term.MouseUp(0)

	v, err := term.ReadWord(0x700000)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	_ = v

	if _, err := term.ReadByte(0x999999); err == nil {
		t.Fatal("ReadByte at unmapped address: want error, got nil")
	}
}

func TestStepLoopStopsOnFirstFault(t *testing.T) {
	term := New(0x10000)
	if err := term.Reset(2); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	n, err := term.StepLoop(5)
	if err == nil {
		t.Fatal("StepLoop into HALT: want error, got nil")
	}
	if n != 0 {
		t.Fatalf("StepLoop executed %d instructions before faulting, want 0", n)
	}
}
