// Package bus implements the WE32100 memory-mapped address space: a
// fixed set of regions (ROM, RAM, DUART, mouse latch, video-start
// register, NVRAM) dispatched by address range. Per spec §9 this is a
// tagged variant held inline rather than a virtual device-interface
// dispatch, so the hot RAM path needs no heap indirection.
package bus

import (
	"fmt"

	"github.com/sethm/dmd-core/internal/clock"
	"github.com/sethm/dmd-core/internal/duart"
	"github.com/sethm/dmd-core/internal/memory"
)

// Address ranges, §6.
const (
	ROMBase    = 0x000000
	ROMSize    = 0x020000
	DUARTBase  = 0x200000
	DUARTSize  = 0x000040
	MouseBase  = 0x400000
	MouseSize  = 0x000004
	VideoBase  = 0x500000
	VideoSize  = 0x000002
	NVRAMBase  = 0x600000
	NVRAMSize  = 0x002000
	RAMBase    = 0x700000
	videoBytes = 0x19000
)

// AccessCode distinguishes the kind of access being made; the bus
// only needs to tell an instruction-operand fetch apart from every
// other access since that is the one place endianness and alignment
// enforcement diverge (§4.2).
type AccessCode int

const (
	AccessNormal AccessCode = iota
	AccessOperandFetch
)

// Kind enumerates the BusError's failure mode.
type Kind int

const (
	KindInit Kind = iota
	KindRead
	KindWrite
	KindNoDevice
	KindRange
	KindPermission
	KindAlignment
)

// Error is the bus's error taxonomy, §7.
type Error struct {
	Kind Kind
	Addr uint32
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInit:
		return "bus: could not initialize"
	case KindRead:
		return fmt.Sprintf("bus: could not read at %#08x", e.Addr)
	case KindWrite:
		return fmt.Sprintf("bus: could not write at %#08x", e.Addr)
	case KindNoDevice:
		return fmt.Sprintf("bus: no device at %#08x", e.Addr)
	case KindRange:
		return "bus: address out of range"
	case KindPermission:
		return "bus: invalid permission"
	case KindAlignment:
		return fmt.Sprintf("bus: alignment fault at %#08x", e.Addr)
	}
	return "bus: error"
}

// Bus owns every addressable region and peripheral.
type Bus struct {
	rom   *memory.Region
	ram   *memory.Region
	nvram *memory.Region
	duart *duart.Duart

	mouseX, mouseY uint16
	videoStart     uint16
	dirty          bool
}

// New constructs a Bus with the given RAM size (bytes) and wall clock
// for DUART timing.
func New(ramSize uint32, clk clock.Clock) *Bus {
	return &Bus{
		rom:   memory.New(ROMSize, true),
		ram:   memory.New(ramSize, false),
		nvram: memory.New(NVRAMSize, false),
		duart: duart.New(clk),
	}
}

// LoadROM installs a ROM image, bypassing the read-only flag, per
// spec §4.1's load operation.
func (b *Bus) LoadROM(data []byte) error {
	if err := b.rom.Load(0, data); err != nil {
		return &Error{Kind: KindRange, Addr: ROMBase}
	}
	return nil
}

// region returns the backing memory.Region and region-relative offset
// for a physical address, or a no-device error.
func (b *Bus) region(addr uint32) (*memory.Region, uint32, error) {
	switch {
	case addr >= ROMBase && addr < ROMBase+ROMSize:
		return b.rom, addr - ROMBase, nil
	case addr >= NVRAMBase && addr < NVRAMBase+NVRAMSize:
		return b.nvram, addr - NVRAMBase, nil
	case addr >= RAMBase && addr < RAMBase+b.ram.Size():
		return b.ram, addr - RAMBase, nil
	}
	return nil, 0, &Error{Kind: KindNoDevice, Addr: addr}
}

func (b *Bus) markDirtyIfVideo(addr uint32) {
	start := RAMBase + uint32(b.videoStart)*4
	if addr >= start && addr < start+videoBytes {
		b.dirty = true
	}
}

// ReadByte reads one byte at addr, dispatching to the mapped region or
// peripheral.
func (b *Bus) ReadByte(addr uint32) (byte, error) {
	switch {
	case addr >= DUARTBase && addr < DUARTBase+DUARTSize:
		return b.duart.ReadRegister(addr - DUARTBase), nil
	case addr >= MouseBase && addr < MouseBase+MouseSize:
		return b.readMouseByte(addr - MouseBase), nil
	case addr >= VideoBase && addr < VideoBase+VideoSize:
		return b.readVideoRegByte(addr - VideoBase), nil
	}
	r, off, err := b.region(addr)
	if err != nil {
		return 0, err
	}
	v, err := r.ReadByte(off)
	if err != nil {
		return 0, &Error{Kind: KindRead, Addr: addr}
	}
	return v, nil
}

// ReadHalf reads a big-endian half-word at addr. Requires addr&1==0.
func (b *Bus) ReadHalf(addr uint32) (uint16, error) {
	if addr&1 != 0 {
		return 0, &Error{Kind: KindAlignment, Addr: addr}
	}
	switch {
	case addr >= DUARTBase && addr < DUARTBase+DUARTSize:
		return uint16(b.duart.ReadRegister(addr + 1 - DUARTBase)), nil
	case addr >= MouseBase && addr < MouseBase+MouseSize:
		return b.readMouseHalf(addr - MouseBase), nil
	case addr >= VideoBase && addr < VideoBase+VideoSize:
		return b.videoStart, nil
	}
	r, off, err := b.region(addr)
	if err != nil {
		return 0, err
	}
	v, err := r.ReadHalf(off)
	if err != nil {
		return 0, &Error{Kind: KindRead, Addr: addr}
	}
	return v, nil
}

// ReadWord reads a big-endian word at addr. Requires addr&3==0.
func (b *Bus) ReadWord(addr uint32) (uint32, error) {
	if addr&3 != 0 {
		return 0, &Error{Kind: KindAlignment, Addr: addr}
	}
	switch {
	case addr >= DUARTBase && addr < DUARTBase+DUARTSize:
		return uint32(b.duart.ReadRegister(addr + 3 - DUARTBase)), nil
	case addr >= MouseBase && addr < MouseBase+MouseSize:
		return uint32(b.readMouseHalf(addr - MouseBase)), nil
	case addr >= VideoBase && addr < VideoBase+VideoSize:
		return uint32(b.videoStart), nil
	}
	r, off, err := b.region(addr)
	if err != nil {
		return 0, err
	}
	v, err := r.ReadWord(off)
	if err != nil {
		return 0, &Error{Kind: KindRead, Addr: addr}
	}
	return v, nil
}

// WriteByte writes one byte at addr.
func (b *Bus) WriteByte(addr uint32, v byte) error {
	switch {
	case addr >= DUARTBase && addr < DUARTBase+DUARTSize:
		b.duart.WriteRegister(addr-DUARTBase, v)
		return nil
	case addr >= MouseBase && addr < MouseBase+MouseSize:
		b.writeMouseByte(addr-MouseBase, v)
		return nil
	case addr >= VideoBase && addr < VideoBase+VideoSize:
		b.writeVideoRegByte(addr-VideoBase, v)
		return nil
	}
	r, off, err := b.region(addr)
	if err != nil {
		return err
	}
	b.markDirtyIfVideo(addr)
	if err := r.WriteByte(off, v); err != nil {
		return &Error{Kind: KindPermission, Addr: addr}
	}
	return nil
}

// WriteHalf writes a big-endian half-word at addr. Requires addr&1==0.
func (b *Bus) WriteHalf(addr uint32, v uint16) error {
	if addr&1 != 0 {
		return &Error{Kind: KindAlignment, Addr: addr}
	}
	switch {
	case addr >= DUARTBase && addr < DUARTBase+DUARTSize:
		b.duart.WriteRegister(addr+1-DUARTBase, byte(v))
		return nil
	case addr >= MouseBase && addr < MouseBase+MouseSize:
		b.writeMouseHalf(addr-MouseBase, v)
		return nil
	case addr >= VideoBase && addr < VideoBase+VideoSize:
		b.videoStart = v
		return nil
	}
	r, off, err := b.region(addr)
	if err != nil {
		return err
	}
	b.markDirtyIfVideo(addr)
	if err := r.WriteHalf(off, v); err != nil {
		return &Error{Kind: KindPermission, Addr: addr}
	}
	return nil
}

// WriteWord writes a big-endian word at addr. Requires addr&3==0.
func (b *Bus) WriteWord(addr uint32, v uint32) error {
	if addr&3 != 0 {
		return &Error{Kind: KindAlignment, Addr: addr}
	}
	switch {
	case addr >= DUARTBase && addr < DUARTBase+DUARTSize:
		b.duart.WriteRegister(addr+3-DUARTBase, byte(v))
		return nil
	case addr >= MouseBase && addr < MouseBase+MouseSize:
		b.writeMouseHalf(addr-MouseBase, uint16(v))
		return nil
	case addr >= VideoBase && addr < VideoBase+VideoSize:
		b.videoStart = uint16(v)
		return nil
	}
	r, off, err := b.region(addr)
	if err != nil {
		return err
	}
	b.markDirtyIfVideo(addr)
	if err := r.WriteWord(off, v); err != nil {
		return &Error{Kind: KindPermission, Addr: addr}
	}
	return nil
}

// ReadOpHalf fetches a little-endian instruction-operand half-word,
// without alignment enforcement, per §4.2.
func (b *Bus) ReadOpHalf(addr uint32) (uint16, error) {
	b0, err := b.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	b1, err := b.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(b0) | uint16(b1)<<8, nil
}

// ReadOpWord fetches a little-endian instruction-operand word, without
// alignment enforcement, per §4.2.
func (b *Bus) ReadOpWord(addr uint32) (uint32, error) {
	var v uint32
	for i := uint32(0); i < 4; i++ {
		byt, err := b.ReadByte(addr + i)
		if err != nil {
			return 0, err
		}
		v |= uint32(byt) << (8 * i)
	}
	return v, nil
}

func (b *Bus) readMouseByte(off uint32) byte {
	switch off {
	case 0:
		return byte(b.mouseY >> 8)
	case 1:
		return byte(b.mouseY)
	case 2:
		return byte(b.mouseX >> 8)
	case 3:
		return byte(b.mouseX)
	}
	return 0
}

func (b *Bus) readMouseHalf(off uint32) uint16 {
	if off == 0 {
		return b.mouseY
	}
	return b.mouseX
}

func (b *Bus) writeMouseByte(off uint32, v byte) {
	switch off {
	case 0:
		b.mouseY = uint16(v)<<8 | b.mouseY&0xFF
	case 1:
		b.mouseY = b.mouseY&0xFF00 | uint16(v)
	case 2:
		b.mouseX = uint16(v)<<8 | b.mouseX&0xFF
	case 3:
		b.mouseX = b.mouseX&0xFF00 | uint16(v)
	}
}

func (b *Bus) writeMouseHalf(off uint32, v uint16) {
	if off == 0 {
		b.mouseY = v
	} else {
		b.mouseX = v
	}
}

func (b *Bus) readVideoRegByte(off uint32) byte {
	if off == 0 {
		return byte(b.videoStart >> 8)
	}
	return byte(b.videoStart)
}

func (b *Bus) writeVideoRegByte(off uint32, v byte) {
	if off == 0 {
		b.videoStart = uint16(v)<<8 | b.videoStart&0xFF
	} else {
		b.videoStart = b.videoStart&0xFF00 | uint16(v)
	}
}

// MouseMove sets the mouse X/Y latch directly, bypassing the bus
// address decode (host-facing API, §4.3).
func (b *Bus) MouseMove(x, y uint16) {
	b.mouseX = x
	b.mouseY = y
}

// MouseDown forwards a button press to the DUART's input-port latch.
func (b *Bus) MouseDown(button int) { b.duart.MouseDown(button) }

// MouseUp forwards a button release to the DUART's input-port latch.
func (b *Bus) MouseUp(button int) { b.duart.MouseUp(button) }

// VideoRAM returns the live video window slice and clears the dirty
// flag, per §4.2's dirty-tracking rule.
func (b *Bus) VideoRAM() []byte {
	start := uint32(b.videoStart) * 4
	end := start + videoBytes
	ram := b.ram.Bytes()
	if end > uint32(len(ram)) {
		end = uint32(len(ram))
	}
	if start > end {
		start = end
	}
	b.dirty = false
	return ram[start:end]
}

// Dirty reports whether any write has landed in the current video
// window since the last VideoRAM call.
func (b *Bus) Dirty() bool { return b.dirty }

// Service advances the DUART's FIFO/TX state machine by one tick.
func (b *Bus) Service() { b.duart.Service() }

// GetInterrupts returns the DUART's pending interrupt vector, if any.
func (b *Bus) GetInterrupts() (byte, bool) { return b.duart.PendingVector() }

// DuartOutputPort returns the complemented output-port latch.
func (b *Bus) DuartOutputPort() byte { return b.duart.OutputPort() }

// RS232Rx enqueues a host byte on the DUART's RS-232 receive queue.
func (b *Bus) RS232Rx(c byte) { b.duart.Rx(c) }

// KeyboardRx enqueues a host byte on the DUART's keyboard receive
// queue.
func (b *Bus) KeyboardRx(c byte) { b.duart.KeyboardRx(c) }

// RS232Tx pops the next transmitted RS-232 byte, if any.
func (b *Bus) RS232Tx() (byte, bool) { return b.duart.Tx() }

// KeyboardTx pops the next transmitted keyboard-channel byte, if any.
func (b *Bus) KeyboardTx() (byte, bool) { return b.duart.KeyboardTx() }

// NVRAM returns the NVRAM's backing slice by reference, per §5's
// shared-resource note.
func (b *Bus) NVRAM() []byte { return b.nvram.Bytes() }

// SetNVRAM replaces the NVRAM contents wholesale.
func (b *Bus) SetNVRAM(data []byte) error {
	if uint32(len(data)) != b.nvram.Size() {
		return &Error{Kind: KindRange, Addr: NVRAMBase}
	}
	return b.nvram.Load(0, data)
}
