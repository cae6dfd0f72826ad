// Package rom holds the two placeholder firmware images selectable by
// reset version. Spec §1 places real DMD 5620 firmware explicitly out
// of scope ("opaque byte arrays"); these are clearly-marked stand-ins
// that boot far enough to exercise the reset sequence (§4.8) and are
// not a reproduction of AT&T's actual ROM contents.
package rom

// VersionA and VersionB are selected by terminal.Reset's version
// argument: 1 selects VersionA, any other value selects VersionB, per
// spec §6.
var (
	VersionA = buildPlaceholder(0xA5)
	VersionB = buildPlaceholder(0x5A)
)

// Layout of the placeholder PCB, all fields big-endian words per
// internal/memory's convention.
const (
	pcbpPtr = 0x80  // address the reset sequence reads PCBP from, §4.8
	pcbAddr = 0x100 // where the placeholder PCB itself lives
	entryPC = 0x200 // where the initial PC points
	entrySP = 0x700000
	opHalt  = 0x00 // WE32100 HALT opcode, internal/cpu's opHALT
)

// buildPlaceholder constructs a minimal image whose word at physical
// address 0x80 points at a PCB at 0x100, sufficient for the reset
// sequence described in
// spec §4.8: PCBP -> PSW, PC, SP. The PC it installs points at a HALT
// instruction so an emulator booted with a placeholder image parks
// immediately instead of executing garbage.
func buildPlaceholder(fill byte) []byte {
	img := make([]byte, 0x20000)
	for i := range img {
		img[i] = fill
	}
	putWord(img, pcbpPtr, pcbAddr)
	putWord(img, pcbAddr, 0)       // PSW: kernel, ET=0, no initial-context bit
	putWord(img, pcbAddr+4, entryPC) // PC
	putWord(img, pcbAddr+8, entrySP) // SP
	img[entryPC] = opHalt
	return img
}

func putWord(img []byte, off uint32, v uint32) {
	img[off] = byte(v >> 24)
	img[off+1] = byte(v >> 16)
	img[off+2] = byte(v >> 8)
	img[off+3] = byte(v)
}
