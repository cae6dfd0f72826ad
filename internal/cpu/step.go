package cpu

// we32100Version is the value MVERNO loads into R0 (§4.7).
const we32100Version = 0x1a

// shift8Table, shift16Table, shift32Table hold the sign-replication
// patterns ORed into ARS{B,H,W}3's result when the operand's sign bit
// is set, per §4.6's arithmetic-shift rule. Entry i has the top i bits
// of the width set; a shift by n ORs in entry n+1 (sign bit plus the n
// vacated bits).
var (
	shift8Table  [65]uint32
	shift16Table [65]uint32
	shift32Table [65]uint32
)

func init() {
	shift8Table[0] = 0x00
	shift16Table[0] = 0x0000
	shift32Table[0] = 0x00000000
	for i := 1; i <= 64; i++ {
		if i <= 8 {
			shift8Table[i] = (shift8Table[i-1] >> 1) | 0x80
		} else {
			shift8Table[i] = 0xff
		}
		if i <= 16 {
			shift16Table[i] = (shift16Table[i-1] >> 1) | 0x8000
		} else {
			shift16Table[i] = 0xffff
		}
		if i <= 32 {
			shift32Table[i] = (shift32Table[i-1] >> 1) | 0x80000000
		} else {
			shift32Table[i] = 0xffffffff
		}
	}
}

// stackPush/stackPop operate on the normal (SP-based) call stack used
// by CALL/JSB/BSB*/RSB/R{cond}/PUSH*/POP.
func (c *CPU) stackPush(bus Bus, val uint32) error {
	if err := bus.WriteWord(c.r[RSP], val); err != nil {
		return wrapBusError(err)
	}
	c.r[RSP] += 4
	return nil
}

func (c *CPU) stackPop(bus Bus) (uint32, error) {
	v, err := bus.ReadWord(c.r[RSP] - 4)
	if err != nil {
		return 0, wrapBusError(err)
	}
	c.r[RSP] -= 4
	return v, nil
}

// irqPush/irqPop operate on the interrupt stack pointer (ISP), used by
// process/interrupt context switches and the exception gate.
func (c *CPU) irqPush(bus Bus, val uint32) error {
	if err := bus.WriteWord(c.r[RISP], val); err != nil {
		return wrapBusError(err)
	}
	c.r[RISP] += 4
	return nil
}

func (c *CPU) irqPop(bus Bus) (uint32, error) {
	v, err := bus.ReadWord(c.r[RISP] - 4)
	if err != nil {
		return 0, wrapBusError(err)
	}
	c.r[RISP] -= 4
	return v, nil
}

// Step executes exactly one instruction, after servicing devices and
// dispatching any pending interrupt, per §4.7/§5's ordering guarantee:
// device service comes first, then any pending interrupt is taken, then
// the next instruction is fetched and run.
func (c *CPU) Step(bus Bus) error {
	bus.Service()
	if err := c.dispatchInterrupt(bus); err != nil {
		return err
	}

	instr, err := c.decodeInstruction(bus)
	if err != nil {
		return c.handleException(bus, wrapBusError(err))
	}

	c.steps++
	c.history.push(HistoryEntry{PC: instr.PC, Opcode: instr.Opcode, Name: instr.Mnemonic.Name})

	pcIncrement := int32(instr.Bytes)
	pcIncrement, err = c.execute(bus, instr, pcIncrement)
	if err != nil {
		return c.handleException(bus, err)
	}
	c.r[RPC] = uint32(int32(c.r[RPC]) + pcIncrement)
	return nil
}

// handleException implements §4.9/§7: a wrapped bus error (external-
// memory) is routed through the exception gate; every other CPU
// exception is reported to the caller without being gated (the open
// question recorded in DESIGN.md).
func (c *CPU) handleException(bus Bus, err error) error {
	cerr, ok := err.(*Error)
	if ok && cerr.Kind == ExcExternalMemory {
		if gateErr := c.exceptionGate(bus); gateErr != nil {
			return gateErr
		}
		return nil
	}
	return err
}

// exceptionGate implements §4.9: push PC then the modified PSW onto
// the interrupt stack, then vector through the two-level gate table
// rooted at physical address 0.
func (c *CPU) exceptionGate(bus Bus) error {
	oldPSW := c.r[RPSW]
	oldCM := (oldPSW & maskCM) >> shiftCM
	oldIPL := (oldPSW & maskIPL) >> shiftIPL
	oldR := oldPSW & maskR

	if err := c.irqPush(bus, c.r[RPC]); err != nil {
		return err
	}
	c.setISC(5)
	c.setET(3)
	if err := c.irqPush(bus, c.r[RPSW]); err != nil {
		return err
	}

	isc := (c.r[RPSW] & maskISC) >> shiftISC
	level1, err := bus.ReadWord(isc << 3)
	if err != nil {
		return wrapBusError(err)
	}
	gateAddr := level1 + (isc << 3)
	gatePSW, err := bus.ReadWord(gateAddr)
	if err != nil {
		return wrapBusError(err)
	}
	gatePC, err := bus.ReadWord(gateAddr + 4)
	if err != nil {
		return wrapBusError(err)
	}

	newPSW := gatePSW &^ (maskISC | maskTM | maskET | maskPM | maskIPL | maskR)
	newPSW |= (7 << shiftISC) & maskISC
	newPSW |= maskTM
	newPSW |= 3 & maskET
	newPSW |= (oldCM << shiftPM) & maskPM
	newPSW |= (oldIPL << shiftIPL) & maskIPL
	newPSW |= oldR

	c.r[RPSW] = newPSW
	c.r[RPC] = gatePC
	return nil
}

// dispatchInterrupt implements §4.7's interrupt-dispatch paragraph.
func (c *CPU) dispatchInterrupt(bus Bus) error {
	raw, ok := bus.GetInterrupts()
	if !ok {
		return nil
	}
	if c.ipl() >= interruptIPL(raw) {
		return nil
	}

	vector := uint32(^raw&0x3f) & 0x3f
	newPcbp, err := bus.ReadWord(0x8c + 4*vector)
	if err != nil {
		return wrapBusError(err)
	}

	if err := c.irqPush(bus, c.r[RPCBP]); err != nil {
		return err
	}

	c.r[RPSW] &^= maskISC | maskTM | maskET
	c.r[RPSW] |= 1

	if err := c.contextSwitch1(bus, newPcbp); err != nil {
		return err
	}
	if err := c.contextSwitch2(bus, newPcbp); err != nil {
		return err
	}

	c.r[RPSW] &^= maskISC | maskTM | maskET
	c.r[RPSW] |= (7 << shiftISC) & maskISC
	c.r[RPSW] |= 3

	return c.contextSwitch3(bus)
}

// contextSwitch1 saves the outgoing context into the current PCB and
// copies the incoming PCB's R flag into the (still current) PSW.
func (c *CPU) contextSwitch1(bus Bus, newPcbp uint32) error {
	if err := bus.WriteWord(c.r[RPCBP]+4, c.r[RPC]); err != nil {
		return wrapBusError(err)
	}

	newPSWWord, err := bus.ReadWord(newPcbp)
	if err != nil {
		return wrapBusError(err)
	}
	c.r[RPSW] &^= maskR
	c.r[RPSW] |= newPSWWord & maskR

	if err := bus.WriteWord(c.r[RPCBP], c.r[RPSW]); err != nil {
		return wrapBusError(err)
	}
	if err := bus.WriteWord(c.r[RPCBP]+8, c.r[RSP]); err != nil {
		return wrapBusError(err)
	}

	if c.r[RPSW]&maskR != 0 {
		offsets := [9]uint32{24, 28, 32, 36, 40, 44, 48, 52, 56}
		vals := [9]uint32{c.r[RFP], c.r[0], c.r[1], c.r[2], c.r[3], c.r[4], c.r[5], c.r[6], c.r[7]}
		for i, off := range offsets {
			if err := bus.WriteWord(c.r[RPCBP]+off, vals[i]); err != nil {
				return wrapBusError(err)
			}
		}
		if err := bus.WriteWord(c.r[RPCBP]+60, c.r[8]); err != nil {
			return wrapBusError(err)
		}
		if err := bus.WriteWord(c.r[RPCBP]+20, c.r[RAP]); err != nil {
			return wrapBusError(err)
		}
	}
	return nil
}

// contextSwitch2 installs the incoming PCB's PSW/PC/SP.
func (c *CPU) contextSwitch2(bus Bus, newPcbp uint32) error {
	c.r[RPCBP] = newPcbp

	psw, err := bus.ReadWord(c.r[RPCBP])
	if err != nil {
		return wrapBusError(err)
	}
	c.r[RPSW] = psw &^ maskTM

	pc, err := bus.ReadWord(c.r[RPCBP] + 4)
	if err != nil {
		return wrapBusError(err)
	}
	c.r[RPC] = pc

	sp, err := bus.ReadWord(c.r[RPCBP] + 8)
	if err != nil {
		return wrapBusError(err)
	}
	c.r[RSP] = sp

	if c.iBit() {
		c.clearIBit()
		c.r[RPCBP] += 12
	}
	return nil
}

// contextSwitch3 walks the variable-length restore-block list rooted
// at PCBP+64 when the R flag is set: each block is a (count,
// dest-pointer, count words...) triple, terminated by a zero count.
// Clobbers R0-R2.
func (c *CPU) contextSwitch3(bus Bus) error {
	if c.r[RPSW]&maskR == 0 {
		return nil
	}
	c.r[0] = c.r[RPCBP] + 64
	v, err := bus.ReadWord(c.r[0])
	if err != nil {
		return wrapBusError(err)
	}
	c.r[2] = v
	c.r[0] += 4

	for c.r[2] != 0 {
		v, err := bus.ReadWord(c.r[0])
		if err != nil {
			return wrapBusError(err)
		}
		c.r[1] = v
		c.r[0] += 4

		for c.r[2] != 0 {
			tmp, err := bus.ReadWord(c.r[0])
			if err != nil {
				return wrapBusError(err)
			}
			if err := bus.WriteWord(c.r[1], tmp); err != nil {
				return wrapBusError(err)
			}
			c.r[2]--
			c.r[0] += 4
			c.r[1] += 4
		}

		v, err = bus.ReadWord(c.r[0])
		if err != nil {
			return wrapBusError(err)
		}
		c.r[2] = v
		c.r[0] += 4
	}
	c.r[0] += 4
	return nil
}
