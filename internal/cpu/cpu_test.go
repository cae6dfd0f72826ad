package cpu

import "testing"

// fakeBus is a flat, big-endian byte-addressable memory used only to
// drive the decoder/executor in isolation from the real bus/device
// mix.
type fakeBus struct {
	mem [0x10000]byte
}

func (b *fakeBus) ReadByte(addr uint32) (byte, error) { return b.mem[addr], nil }
func (b *fakeBus) ReadHalf(addr uint32) (uint16, error) {
	return uint16(b.mem[addr])<<8 | uint16(b.mem[addr+1]), nil
}
func (b *fakeBus) ReadWord(addr uint32) (uint32, error) {
	return uint32(b.mem[addr])<<24 | uint32(b.mem[addr+1])<<16 | uint32(b.mem[addr+2])<<8 | uint32(b.mem[addr+3]), nil
}
func (b *fakeBus) WriteByte(addr uint32, v byte) error { b.mem[addr] = v; return nil }
func (b *fakeBus) WriteHalf(addr uint32, v uint16) error {
	b.mem[addr] = byte(v >> 8)
	b.mem[addr+1] = byte(v)
	return nil
}
func (b *fakeBus) WriteWord(addr uint32, v uint32) error {
	b.mem[addr] = byte(v >> 24)
	b.mem[addr+1] = byte(v >> 16)
	b.mem[addr+2] = byte(v >> 8)
	b.mem[addr+3] = byte(v)
	return nil
}
func (b *fakeBus) ReadOpHalf(addr uint32) (uint16, error) {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8, nil
}
func (b *fakeBus) ReadOpWord(addr uint32) (uint32, error) {
	return uint32(b.mem[addr]) | uint32(b.mem[addr+1])<<8 | uint32(b.mem[addr+2])<<16 | uint32(b.mem[addr+3])<<24, nil
}
func (b *fakeBus) Service()                    {}
func (b *fakeBus) GetInterrupts() (byte, bool) { return 0, false }

func newCPU() (*CPU, *fakeBus) {
	return New(16), &fakeBus{}
}

// writeInstr lays down a one-byte opcode followed by literal bytes at
// addr and points PC at it.
func writeInstr(c *CPU, b *fakeBus, addr uint32, bytes ...byte) {
	for i, v := range bytes {
		b.mem[addr+uint32(i)] = v
	}
	c.r[RPC] = addr
}

func TestResetLoadsInitialContext(t *testing.T) {
	c, b := newCPU()
	b.WriteWord(0x80, 0x1000)
	b.WriteWord(0x1000, 0x00000003) // PSW with ISC bits irrelevant here
	b.WriteWord(0x1004, 0x2000)     // PC
	b.WriteWord(0x1008, 0x3000)     // SP

	if err := c.Reset(b); err != nil {
		t.Fatal(err)
	}
	if c.GetPC() != 0x2000 {
		t.Fatalf("PC = %#x, want 0x2000", c.GetPC())
	}
	if c.r[RSP] != 0x3000 {
		t.Fatalf("SP = %#x, want 0x3000", c.r[RSP])
	}
	if (c.r[RPSW]&maskISC)>>shiftISC != 3 {
		t.Fatalf("ISC after reset = %d, want 3", (c.r[RPSW]&maskISC)>>shiftISC)
	}
}

// addw2 %r1, %r0 : register-mode descriptors are 0x40|reg (mode 4 in
// decode.go's table).
func TestAddSetsCarryAndZero(t *testing.T) {
	c, b := newCPU()
	c.r[RPC] = 0x100
	c.r[0] = 0xffffffff
	c.r[1] = 1
	// ADDW2 r1,r0 : descriptor 0x40|1 (register r1), 0x40|0 (register r0)
	writeInstr(c, b, 0x100, opADDW2, 0x40|1, 0x40|0)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if c.r[0] != 0 {
		t.Fatalf("r0 = %#x, want 0", c.r[0])
	}
	if !c.zFlag() || !c.cFlag() {
		t.Fatalf("expected Z and C set after wraparound add, psw=%#x", c.r[RPSW])
	}
}

func TestDivideByZeroTraps(t *testing.T) {
	c, b := newCPU()
	c.r[RPC] = 0x100
	c.r[0] = 0
	c.r[1] = 10
	// DIVW2 r0,r1 : r0 is divisor (0), r1 is dividend/dest
	writeInstr(c, b, 0x100, opDIVW2, 0x40|0, 0x40|1)
	err := c.Step(b)
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != ExcIntegerZeroDivide {
		t.Fatalf("err = %v, want ExcIntegerZeroDivide", err)
	}
}

func TestSignedDivideTruncatesTowardZero(t *testing.T) {
	c, b := newCPU()
	c.r[RPC] = 0x100
	c.r[0] = uint32(int32(3))
	dividend := int32(-7)
	c.r[1] = uint32(dividend)
	writeInstr(c, b, 0x100, opDIVW2, 0x40|0, 0x40|1)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if int32(c.r[1]) != -2 {
		t.Fatalf("r1 = %d, want -2", int32(c.r[1]))
	}
}

func TestBranchTakenAndNotTaken(t *testing.T) {
	c, b := newCPU()
	c.r[RPC] = 0x100
	c.setZFlag(true)
	// BEB +0x10
	writeInstr(c, b, 0x100, opBEB2, 0x10)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if c.GetPC() != 0x110 {
		t.Fatalf("PC = %#x, want 0x110 (branch taken)", c.GetPC())
	}

	c.r[RPC] = 0x200
	c.setZFlag(false)
	writeInstr(c, b, 0x200, opBEB2, 0x10)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if c.GetPC() != 0x202 {
		t.Fatalf("PC = %#x, want 0x202 (branch not taken, 2-byte instr)", c.GetPC())
	}
}

func TestCallAndReturnRoundTrip(t *testing.T) {
	c, b := newCPU()
	c.r[RPC] = 0x100
	c.r[RSP] = 0x2000
	c.r[RAP] = 0xdead

	// CALL ap,dst : both operands register-deferred (descriptor 0x50|reg),
	// so effectiveAddress resolves directly to the register's value.
	c.r[4] = 0x3000 // new AP
	c.r[5] = 0x300  // target PC
	writeInstr(c, b, 0x100, opCALL, 0x50|4, 0x50|5)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if c.GetPC() != 0x300 {
		t.Fatalf("PC = %#x, want 0x300", c.GetPC())
	}
	if c.r[RAP] != 0x3000 {
		t.Fatalf("AP = %#x, want 0x3000", c.r[RAP])
	}
	if c.r[RSP] != 0x2008 {
		t.Fatalf("SP = %#x, want 0x2008 after CALL", c.r[RSP])
	}

	// RET should restore AP from the saved frame and redirect PC to the
	// saved return address.
	writeInstr(c, b, 0x300, opRET)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if c.r[RAP] != 0xdead {
		t.Fatalf("AP after RET = %#x, want 0xdead", c.r[RAP])
	}
	if c.r[RSP] != 0x3000 {
		t.Fatalf("SP after RET = %#x, want restored AP 0x3000", c.r[RSP])
	}
}

func TestHaltRaisesBreakpoint(t *testing.T) {
	c, b := newCPU()
	writeInstr(c, b, 0x100, opHALT)
	err := c.Step(b)
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != ExcBreakpoint {
		t.Fatalf("err = %v, want ExcBreakpoint", err)
	}
}

func TestWaitIsNoOp(t *testing.T) {
	c, b := newCPU()
	writeInstr(c, b, 0x100, opWAIT)
	if err := c.Step(b); err != nil {
		t.Fatal(err)
	}
	if c.GetPC() != 0x101 {
		t.Fatalf("PC = %#x, want 0x101", c.GetPC())
	}
}

func TestIllegalOpcodeUnclaimedBySlot(t *testing.T) {
	c, b := newCPU()
	writeInstr(c, b, 0x100, byte(opSPOPRD))
	err := c.Step(b)
	cerr, ok := err.(*Error)
	if !ok || cerr.Kind != ExcIllegalOpcode {
		t.Fatalf("err = %v, want ExcIllegalOpcode", err)
	}
}

func TestExceptionGateVectorsThroughTable(t *testing.T) {
	c, b := newCPU()
	c.r[RISP] = 0x5000

	// level-1 table at physical 0: one entry per ISC value (<<3).
	// Gate's ISC is forced to 5 before the lookup, so level1[5<<3] must
	// hold a pointer to the level-2 table.
	b.WriteWord(5<<3, 0x6000)
	// level-2 entry at 0x6000 + (5<<3): {gatePSW, gatePC}
	b.WriteWord(0x6000+(5<<3), 0x00000000)
	b.WriteWord(0x6000+(5<<3)+4, 0x9000)

	c.r[RPC] = 0x1234
	c.r[RPSW] = (2 << shiftCM) | (9 << shiftIPL)

	if err := c.exceptionGate(b); err != nil {
		t.Fatal(err)
	}
	if c.GetPC() != 0x9000 {
		t.Fatalf("PC after gate = %#x, want 0x9000", c.GetPC())
	}
	if (c.r[RPSW]&maskISC)>>shiftISC != 7 {
		t.Fatalf("ISC after gate = %d, want 7", (c.r[RPSW]&maskISC)>>shiftISC)
	}
	if c.r[RPSW]&maskET != 3 {
		t.Fatalf("ET after gate = %d, want 3", c.r[RPSW]&maskET)
	}
	// old PC/PSW should have been pushed onto the interrupt stack.
	if c.r[RISP] != 0x5008 {
		t.Fatalf("ISP = %#x, want 0x5008 (two words pushed)", c.r[RISP])
	}
}

func TestDispatchInterruptSwitchesContext(t *testing.T) {
	c, b := newCPU()
	c.r[RPCBP] = 0x4000
	c.r[RPC] = 0x1000
	c.r[RSP] = 0x4100
	c.r[RISP] = 0x7000

	vector := byte(0x3f) // ^0x3f&0x3f == 0 -> newPcbp table slot 0
	newPcbp := uint32(0x5000)
	b.WriteWord(0x8c+4*0, newPcbp)
	b.WriteWord(newPcbp, 0)      // incoming PSW: R flag clear, IPL 0
	b.WriteWord(newPcbp+4, 0x900) // incoming PC
	b.WriteWord(newPcbp+8, 0x4200) // incoming SP

	bus := &interruptBus{fakeBus: b, vector: vector, pending: true}
	if err := c.dispatchInterrupt(bus); err != nil {
		t.Fatal(err)
	}
	if c.r[RPCBP] != newPcbp {
		t.Fatalf("PCBP = %#x, want %#x", c.r[RPCBP], newPcbp)
	}
	if c.GetPC() != 0x900 {
		t.Fatalf("PC = %#x, want 0x900", c.GetPC())
	}
	if c.r[RSP] != 0x4200 {
		t.Fatalf("SP = %#x, want 0x4200", c.r[RSP])
	}
}

// interruptBus wraps fakeBus to report a pending interrupt exactly
// once, matching how the real bus clears IPCR/ISR state on read.
type interruptBus struct {
	*fakeBus
	vector  byte
	pending bool
}

func (b *interruptBus) GetInterrupts() (byte, bool) {
	if !b.pending {
		return 0, false
	}
	b.pending = false
	return b.vector, true
}

// TestCallPsRetPsRoundTrip exercises §8 testable property 9: CALLPS
// with an R-bit-set PCB, then RETPS, must restore PCBP/SP and every
// one of R0-R8, FP, AP exactly as they stood before the switch, and
// resume at the byte after the CALLPS.
func TestCallPsRetPsRoundTrip(t *testing.T) {
	c, b := newCPU()
	c.r[RPSW] = 0 // kernel privilege (CM field 0)
	c.r[RPCBP] = 0x1000
	c.r[RPC] = 0x100
	c.r[RSP] = 0x2000
	for i := 0; i < 9; i++ {
		c.r[i] = 0x10000 + uint32(i)
	}
	c.r[RFP] = 0xAAAA
	c.r[RAP] = 0xBBBB

	newPcbp := uint32(0x3000)
	b.WriteWord(newPcbp, uint32(maskR))   // incoming PSW: R bit set
	b.WriteWord(newPcbp+4, 0x400)         // incoming PC
	b.WriteWord(newPcbp+8, 0x5000)        // incoming SP
	c.r[0] = newPcbp

	// CALLPS new_pcbp=R0 (op0 unused by the fixed dispatch below; just
	// exercise execSystem directly since CALLPS needs no operand decode).
	savedRegs := [9]uint32{}
	copy(savedRegs[:], c.r[:9])
	savedFP, savedAP, savedPCBP, savedSP, savedPC := c.r[RFP], c.r[RAP], c.r[RPCBP], c.r[RSP], c.r[RPC]

	instr := &DecodedInstruction{Opcode: opCALLPS}
	if _, _, err := c.execSystem(b, instr, 1); err != nil {
		t.Fatalf("CALLPS: %v", err)
	}
	if c.r[RPCBP] != newPcbp {
		t.Fatalf("PCBP after CALLPS = %#x, want %#x", c.r[RPCBP], newPcbp)
	}
	if c.GetPC() != 0x400 {
		t.Fatalf("PC after CALLPS = %#x, want 0x400", c.GetPC())
	}
	if c.r[RSP] != 0x5000 {
		t.Fatalf("SP after CALLPS = %#x, want 0x5000", c.r[RSP])
	}

	// RETPS should restore everything saved into the old PCB.
	instr = &DecodedInstruction{Opcode: opRETPS}
	if _, _, err := c.execSystem(b, instr, 1); err != nil {
		t.Fatalf("RETPS: %v", err)
	}
	if c.r[RPCBP] != savedPCBP {
		t.Fatalf("PCBP after RETPS = %#x, want %#x", c.r[RPCBP], savedPCBP)
	}
	// CALLPS saves the return PC after advancing it by the instruction
	// length passed to execSystem (1, here), so the restored PC is one
	// past the PC captured before the call.
	if want := savedPC + 1; c.GetPC() != want {
		t.Fatalf("PC after RETPS = %#x, want %#x", c.GetPC(), want)
	}
	if c.r[RSP] != savedSP {
		t.Fatalf("SP after RETPS = %#x, want %#x", c.r[RSP], savedSP)
	}
	for i := 0; i < 9; i++ {
		if c.r[i] != savedRegs[i] {
			t.Fatalf("R%d after RETPS = %#x, want %#x", i, c.r[i], savedRegs[i])
		}
	}
	if c.r[RFP] != savedFP {
		t.Fatalf("FP after RETPS = %#x, want %#x", c.r[RFP], savedFP)
	}
	if c.r[RAP] != savedAP {
		t.Fatalf("AP after RETPS = %#x, want %#x", c.r[RAP], savedAP)
	}
}
