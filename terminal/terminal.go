// Package terminal is the public façade of the DMD 5620 emulator core
// (§6): a small, owned-instance API wrapping the bus and CPU, keeping
// the hot simulation loop behind one small owned-instance type instead
// of package-level globals.
package terminal

import (
	"sync"

	"github.com/sethm/dmd-core/internal/bus"
	"github.com/sethm/dmd-core/internal/clock"
	"github.com/sethm/dmd-core/internal/cpu"
	"github.com/sethm/dmd-core/internal/rom"
	"github.com/sethm/dmd-core/internal/runloop"
)

// HistoryDepth is the default size of the instruction-history ring
// buffer (SPEC_FULL.md §13).
const HistoryDepth = 256

// Terminal owns one WE32100 CPU, its bus, and the peripherals attached
// to it. The zero value is not usable; construct with New.
type Terminal struct {
	mu   sync.Mutex
	bus  *bus.Bus
	cpu  *cpu.CPU
	loop *runloop.Loop
}

// New constructs a Terminal with ramSize bytes of RAM, using the real
// wall clock for DUART timing.
func New(ramSize uint32) *Terminal {
	return &Terminal{
		bus:  bus.New(ramSize, clock.Real()),
		cpu:  cpu.New(HistoryDepth),
		loop: runloop.New(),
	}
}

// StepStatus collapses a Step error into §6's façade return codes (0
// success, 1 error, 2 "no data available"), for any future cgo
// boundary built on top of this package; Step itself returns the
// richer Go error.
type StepStatus int

const (
	StatusOK    StepStatus = 0
	StatusError StepStatus = 1
	StatusBusy  StepStatus = 2
)

// Collapse converts a Step/Tx-poll result into a StepStatus.
func Collapse(err error, hasData bool) StepStatus {
	if err != nil {
		return StatusError
	}
	if !hasData {
		return StatusBusy
	}
	return StatusOK
}

// Reset implements spec §6/§4.8: select a ROM image by version (1 ->
// image A, anything else -> image B), install it, and load the
// initial CPU context from the PCB at physical address 0x80.
func (t *Terminal) Reset(version int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	img := rom.VersionB
	if version == 1 {
		img = rom.VersionA
	}
	if err := t.bus.LoadROM(img); err != nil {
		return err
	}
	return t.cpu.Reset(t.bus)
}

// Step executes exactly one instruction (§4.7/§5).
func (t *Terminal) Step() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cpu.Step(t.bus)
}

// StepLoop runs up to n instructions, stopping early (and returning
// the count actually executed, plus the error) on the first faulting
// step.
func (t *Terminal) StepLoop(n int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := t.cpu.Step(t.bus); err != nil {
			return i, err
		}
	}
	return n, nil
}

// RunAsync starts a free-running loop on its own goroutine, calling
// onErr (if non-nil) when Step first fails. main.go uses it when not
// in interactive mode, so the CPU runs in the background while the
// caller can still poll VideoRAM/GetPC.
func (t *Terminal) RunAsync(onErr func(error)) {
	t.loop.Start(t.Step, onErr)
}

// Stop halts a RunAsync loop, if one is running.
func (t *Terminal) Stop() {
	t.loop.Stop()
}

// Running reports whether a RunAsync loop is active.
func (t *Terminal) Running() bool {
	return t.loop.Running()
}

// VideoRAM returns the live video window bytes (§4.2's dirty-tracked
// window); the returned slice aliases live RAM and is only valid until
// the next bus write that could move or repaint it.
func (t *Terminal) VideoRAM() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.VideoRAM()
}

// VideoDirty reports whether the video window has changed since the
// last VideoRAM call.
func (t *Terminal) VideoDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.Dirty()
}

// GetPC returns the current program counter.
func (t *Terminal) GetPC() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cpu.GetPC()
}

// GetRegister returns R0-R15 by index.
func (t *Terminal) GetRegister(i int) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cpu.GetRegister(i)
}

// ReadWord reads a big-endian word from the bus (debugger/inspector
// use; bypasses no protection the CPU itself wouldn't also bypass).
func (t *Terminal) ReadWord(addr uint32) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.ReadWord(addr)
}

// ReadByte reads one byte from the bus.
func (t *Terminal) ReadByte(addr uint32) (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.ReadByte(addr)
}

// DuartOutputPort returns the DUART's complemented output-port latch.
func (t *Terminal) DuartOutputPort() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.DuartOutputPort()
}

// MouseMove sets the mouse position latch (§4.3).
func (t *Terminal) MouseMove(x, y uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bus.MouseMove(x, y)
}

// MouseDown reports a mouse button press.
func (t *Terminal) MouseDown(button int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bus.MouseDown(button)
}

// MouseUp reports a mouse button release.
func (t *Terminal) MouseUp(button int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bus.MouseUp(button)
}

// RS232Rx enqueues a host byte on the RS-232 receive queue.
func (t *Terminal) RS232Rx(c byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bus.RS232Rx(c)
}

// KeyboardRx enqueues a host byte on the keyboard receive queue.
func (t *Terminal) KeyboardRx(c byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bus.KeyboardRx(c)
}

// RS232Tx pops the next transmitted RS-232 byte, if any.
func (t *Terminal) RS232Tx() (byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.RS232Tx()
}

// KeyboardTx pops the next transmitted keyboard-channel byte, if any.
func (t *Terminal) KeyboardTx() (byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.KeyboardTx()
}

// GetNVRAM returns a copy of the 8 KiB NVRAM blob.
func (t *Terminal) GetNVRAM() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	live := t.bus.NVRAM()
	out := make([]byte, len(live))
	copy(out, live)
	return out
}

// SetNVRAM replaces the NVRAM contents wholesale; data must be exactly
// 8 KiB.
func (t *Terminal) SetNVRAM(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.SetNVRAM(data)
}

// History returns the ring buffer of recently executed instructions
// (SPEC_FULL.md §13).
func (t *Terminal) History() []cpu.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cpu.History().Entries()
}

// Steps returns the number of instructions executed since Reset.
func (t *Terminal) Steps() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cpu.Steps()
}
