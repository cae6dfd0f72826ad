package memory

import "testing"

func TestReadWriteWordBigEndian(t *testing.T) {
	r := New(16, false)
	if err := r.WriteWord(4, 0x12345678); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	b, _ := r.ReadByte(4)
	if b != 0x12 {
		t.Fatalf("most significant byte at lowest offset: got %#x", b)
	}
	got, err := r.ReadWord(4)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if got != 0x12345678 {
		t.Fatalf("ReadWord = %#x, want 0x12345678", got)
	}
}

func TestReadWriteHalfBigEndian(t *testing.T) {
	r := New(8, false)
	if err := r.WriteHalf(0, 0xABCD); err != nil {
		t.Fatalf("WriteHalf: %v", err)
	}
	b0, _ := r.ReadByte(0)
	b1, _ := r.ReadByte(1)
	if b0 != 0xAB || b1 != 0xCD {
		t.Fatalf("WriteHalf bytes = %#x %#x, want AB CD", b0, b1)
	}
}

func TestWriteReadOnlyFails(t *testing.T) {
	r := New(8, true)
	if err := r.WriteByte(0, 1); err == nil {
		t.Fatal("expected permission error writing to read-only region")
	}
	b, _ := r.ReadByte(0)
	if b != 0 {
		t.Fatal("read-only write must not mutate state")
	}
}

func TestLoadBypassesReadOnly(t *testing.T) {
	r := New(4, true)
	if err := r.Load(0, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	w, _ := r.ReadWord(0)
	if w != 0x01020304 {
		t.Fatalf("Load = %#x, want 0x01020304", w)
	}
}

func TestLoadDoesNotFit(t *testing.T) {
	r := New(2, true)
	if err := r.Load(0, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected out-of-range error loading oversized data")
	}
}

func TestOutOfBounds(t *testing.T) {
	r := New(4, false)
	if _, err := r.ReadWord(2); err == nil {
		t.Fatal("expected out-of-range error reading past end")
	}
	if _, err := r.ReadByte(4); err == nil {
		t.Fatal("expected out-of-range error reading at size")
	}
}
