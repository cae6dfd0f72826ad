package cpu

// Bus is the minimal surface the CPU needs from the memory/device bus;
// satisfied by *internal/bus.Bus. Keeping it as a small interface here
// (rather than importing the bus package) keeps the CPU independent of
// the bus package and makes the decoder/executor trivially testable
// against a fake.
type Bus interface {
	ReadByte(addr uint32) (byte, error)
	ReadHalf(addr uint32) (uint16, error)
	ReadWord(addr uint32) (uint32, error)
	WriteByte(addr uint32, v byte) error
	WriteHalf(addr uint32, v uint16) error
	WriteWord(addr uint32, v uint32) error
	ReadOpHalf(addr uint32) (uint16, error)
	ReadOpWord(addr uint32) (uint32, error)
	Service()
	GetInterrupts() (byte, bool)
}

// interruptIPL is the fixed priority table of §4.7: vector 0 is
// priority 0, vectors 1-7 are priority 14, everything else is 15.
func interruptIPL(vector byte) uint32 {
	low := uint32(vector) & 0x3f
	switch {
	case low == 0:
		return 0
	case low >= 1 && low <= 7:
		return 14
	default:
		return 15
	}
}

// CPU is the WE32100 register file plus decode/execute state.
type CPU struct {
	r       [numRegs]uint32
	steps   uint64
	history *History
}

// New constructs a CPU with a bounded instruction-history ring buffer.
func New(historyDepth int) *CPU {
	return &CPU{history: NewHistory(historyDepth)}
}

// Reset implements §4.8: clear registers, load PCBP from physical
// address 0x80, then PSW/PC/SP from the PCB; skip the initial-context
// block if PSW.I is set; force ISC=3.
func (c *CPU) Reset(bus Bus) error {
	for i := range c.r {
		c.r[i] = 0
	}
	c.steps = 0

	pcbp, err := bus.ReadWord(0x80)
	if err != nil {
		return wrapBusError(err)
	}
	c.r[RPCBP] = pcbp

	psw, err := bus.ReadWord(c.r[RPCBP])
	if err != nil {
		return wrapBusError(err)
	}
	c.r[RPSW] = psw

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
	c.setISC(3)
	return nil
}

// GetPC returns the current program counter.
func (c *CPU) GetPC() uint32 { return c.r[RPC] }

// GetRegister returns R0-R15 by index.
func (c *CPU) GetRegister(i int) uint32 { return c.r[i] }

// SetPC sets the program counter directly.
func (c *CPU) SetPC(v uint32) { c.r[RPC] = v }

// Steps returns the number of instructions dispatched so far.
func (c *CPU) Steps() uint64 { return c.steps }

// History returns the ring buffer of recently executed instructions.
func (c *CPU) History() *History { return c.history }

func signExtend(v uint32, dt Data) uint32 {
	switch dt {
	case DHalf:
		return uint32(int32(int16(uint16(v))))
	case DUHalf:
		return uint32(uint16(v))
	case DByte:
		return uint32(uint8(v))
	case DSByte:
		return uint32(int32(int8(uint8(v))))
	default:
		return v
	}
}

// effectiveAddress computes the memory address for non-immediate,
// non-register, non-literal modes, performing at most one indirection
// for the "deferred" variants (§4.6).
func (c *CPU) effectiveAddress(bus Bus, op *Operand) (uint32, error) {
	switch op.Mode {
	case AddrRegisterDeferred:
		return c.r[*op.Register], nil
	case AddrFPShortOffset:
		return c.r[RFP] + op.Embedded, nil
	case AddrAPShortOffset:
		return c.r[RAP] + op.Embedded, nil
	case AddrAbsolute:
		return op.Embedded, nil
	case AddrAbsoluteDeferred:
		return wordErr(bus.ReadWord(op.Embedded))
	case AddrWordDisplacement:
		return c.r[*op.Register] + op.Embedded, nil
	case AddrWordDisplacementDeferred:
		addr := c.r[*op.Register] + op.Embedded
		return wordErr(bus.ReadWord(addr))
	case AddrHalfDisplacement:
		return c.r[*op.Register] + op.Embedded, nil
	case AddrHalfDisplacementDeferred:
		addr := c.r[*op.Register] + op.Embedded
		return wordErr(bus.ReadWord(addr))
	case AddrByteDisplacement:
		return c.r[*op.Register] + op.Embedded, nil
	case AddrByteDisplacementDeferred:
		addr := c.r[*op.Register] + op.Embedded
		return wordErr(bus.ReadWord(addr))
	default:
		return 0, &Error{Kind: ExcInvalidDescriptor}
	}
}

func wordErr(v uint32, err error) (uint32, error) {
	if err != nil {
		return 0, wrapBusError(err)
	}
	return v, nil
}

// readOp reads a 32-bit value from a decoded operand, sign/zero
// extending per its effective data type (§4.6).
func (c *CPU) readOp(bus Bus, op *Operand) (uint32, error) {
	dt := op.EffectiveType()
	switch op.Mode {
	case AddrPosLiteral, AddrNegLiteral, AddrByteImmediate:
		return signExtend(op.Embedded, DSByte), nil
	case AddrHalfImmediate:
		return signExtend(op.Embedded, DHalf), nil
	case AddrWordImmediate:
		return op.Embedded, nil
	case AddrRegister:
		return signExtend(c.r[*op.Register], dt), nil
	default:
		addr, err := c.effectiveAddress(bus, op)
		if err != nil {
			return 0, err
		}
		switch dt {
		case DByte, DSByte:
			b, err := bus.ReadByte(addr)
			if err != nil {
				return 0, wrapBusError(err)
			}
			return signExtend(uint32(b), dt), nil
		case DHalf, DUHalf:
			h, err := bus.ReadHalf(addr)
			if err != nil {
				return 0, wrapBusError(err)
			}
			return signExtend(uint32(h), dt), nil
		default:
			w, err := bus.ReadWord(addr)
			if err != nil {
				return 0, wrapBusError(err)
			}
			return w, nil
		}
	}
}

// writeOp writes val to a decoded operand; immediate/literal
// destinations are illegal (§4.6).
func (c *CPU) writeOp(bus Bus, op *Operand, val uint32) error {
	dt := op.EffectiveType()
	switch op.Mode {
	case AddrPosLiteral, AddrNegLiteral, AddrByteImmediate, AddrHalfImmediate, AddrWordImmediate:
		return &Error{Kind: ExcIllegalOpcode}
	case AddrRegister:
		switch dt {
		case DByte, DSByte:
			c.r[*op.Register] = (c.r[*op.Register] &^ 0xff) | (val & 0xff)
		case DHalf, DUHalf:
			c.r[*op.Register] = (c.r[*op.Register] &^ 0xffff) | (val & 0xffff)
		default:
			c.r[*op.Register] = val
		}
		return nil
	default:
		addr, err := c.effectiveAddress(bus, op)
		if err != nil {
			return err
		}
		switch dt {
		case DByte, DSByte:
			return wrapBusError(bus.WriteByte(addr, byte(val)))
		case DHalf, DUHalf:
			return wrapBusError(bus.WriteHalf(addr, uint16(val)))
		default:
			return wrapBusError(bus.WriteWord(addr, val))
		}
	}
}

// add implements the shared ADD machinery: wrapping add, write result,
// set N/Z from width, C from unsigned overflow, V from signed overflow
// (§4.7).
func (c *CPU) add(bus Bus, a, b uint32, dst *Operand) error {
	result := uint64(a) + uint64(b)
	if err := c.writeOp(bus, dst, uint32(result)); err != nil {
		return err
	}
	c.setNZFlags(uint32(result), dst)

	signBit := func(width uint32) uint32 { return uint32(1) << (width - 1) }
	switch dst.DataType {
	case DWord, DUWord:
		c.setCFlag(result > 0xffffffff)
		c.setVFlag((a^(^b))&(a^uint32(result))&signBit(32) != 0)
	case DHalf, DUHalf:
		c.setCFlag(result > 0xffff)
		c.setVFlag((a^(^b))&(a^uint32(result))&signBit(16) != 0)
	case DByte, DSByte:
		c.setCFlag(result > 0xff)
		c.setVFlag((a^(^b))&(a^uint32(result))&signBit(8) != 0)
	}
	return nil
}

// sub implements SUB: wrapping subtract, N/Z from width, C = a<b
// (unsigned borrow), V via setVFlagOp (§4.7).
func (c *CPU) sub(bus Bus, a, b uint32, dst *Operand) error {
	result := uint64(a) - uint64(b)
	if a < b {
		result = uint64(a) + (1 << 32) - uint64(b)
	}
	if err := c.writeOp(bus, dst, uint32(result)); err != nil {
		return err
	}
	c.setNZFlags(uint32(result), dst)
	c.setCFlag(b > a)
	c.setVFlagOp(uint32(result), dst)
	return nil
}
