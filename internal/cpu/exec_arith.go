package cpu

import "math"

// execArith handles ADD/SUB/INC/DEC/MUL/DIV/MOD/MCOM/MNEG/CMP/TST
// (§4.7's arithmetic table).
func (c *CPU) execArith(bus Bus, instr *DecodedInstruction, pc int32) (int32, bool, error) {
	ops := &instr.Operands
	switch instr.Opcode {
	case opADDW2, opADDH2, opADDB2:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.add(bus, a, b, &ops[1])

	case opADDW3, opADDH3, opADDB3:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.add(bus, a, b, &ops[2])

	case opSUBW2, opSUBH2, opSUBB2:
		b, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		a, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.sub(bus, a, b, &ops[1])

	case opSUBW3, opSUBH3, opSUBB3:
		b, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		a, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.sub(bus, a, b, &ops[2])

	case opINCW, opINCH, opINCB:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.add(bus, a, 1, &ops[0])

	case opDECW, opDECH, opDECB:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.sub(bus, a, 1, &ops[0])

	case opMULW2, opMULH2, opMULB2:
		src, dst := &ops[0], &ops[1]
		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, dst)
		if err != nil {
			return pc, true, err
		}
		result := a * b
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opMULW3, opMULH3, opMULB3:
		dst := &ops[2]
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		result := a * b
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opDIVW2, opDIVH2, opDIVB2:
		src, dst := &ops[0], &ops[1]
		return pc, true, c.divide(bus, src, dst, dst)

	case opDIVW3, opDIVH3, opDIVB3:
		src1, src2, dst := &ops[0], &ops[1], &ops[2]
		return pc, true, c.divide(bus, src1, src2, dst)

	case opMODW2, opMODH2, opMODB2:
		src, dst := &ops[0], &ops[1]
		return pc, true, c.modulo(bus, src, dst, dst)

	case opMODW3, opMODH3, opMODB3:
		src1, src2, dst := &ops[0], &ops[1], &ops[2]
		return pc, true, c.modulo(bus, src1, src2, dst)

	case opMCOMW, opMCOMH, opMCOMB:
		dst := &ops[1]
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		result := ^a
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opMNEGW, opMNEGH, opMNEGB:
		dst := &ops[1]
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		result := ^a + 1
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opCMPW:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		c.setZFlag(b == a)
		c.setNFlag(int32(b) < int32(a))
		c.setCFlag(b < a)
		c.setVFlag(false)
		return pc, true, nil

	case opCMPH:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		c.setZFlag(uint16(b) == uint16(a))
		c.setNFlag(int16(b) < int16(a))
		c.setCFlag(uint16(b) < uint16(a))
		c.setVFlag(false)
		return pc, true, nil

	case opCMPB:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		c.setZFlag(uint8(b) == uint8(a))
		c.setNFlag(int8(b) < int8(a))
		c.setCFlag(uint8(b) < uint8(a))
		c.setVFlag(false)
		return pc, true, nil

	case opTSTW:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		c.setNFlag(int32(a) < 0)
		c.setZFlag(a == 0)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opTSTH:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		c.setNFlag(int16(a) < 0)
		c.setZFlag(a == 0)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opTSTB:
		a, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		c.setNFlag(int8(a) < 0)
		c.setZFlag(a == 0)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil
	}
	return pc, false, nil
}

// divOverflow reports the one case integer division traps a V flag
// without a zero-divide: dividend is the width's most negative value
// and the divisor is -1.
func divOverflow(divisor, dividend int32, dt Data) bool {
	if divisor != -1 {
		return false
	}
	switch dt {
	case DWord, DUWord:
		return dividend == math.MinInt32
	case DHalf, DUHalf:
		return dividend == int32(int16(math.MinInt16))
	case DByte, DSByte:
		return dividend == int32(int8(math.MinInt8))
	default:
		return false
	}
}

// divide implements DIVx2/DIVx3 as an int32 division of the values
// readOp returns: words are used as-is and halfwords are sign-extended,
// so both divide as signed; byte operands are zero-extended, so byte
// division is unsigned.
func (c *CPU) divide(bus Bus, src, dstSrc, dst *Operand) error {
	a, err := c.readOp(bus, src)
	if err != nil {
		return err
	}
	b, err := c.readOp(bus, dstSrc)
	if err != nil {
		return err
	}
	if a == 0 {
		return &Error{Kind: ExcIntegerZeroDivide}
	}
	if divOverflow(int32(a), int32(b), dst.DataType) {
		c.setVFlag(true)
	}
	result := uint32(int32(b) / int32(a))
	if err := c.writeOp(bus, dst, result); err != nil {
		return err
	}
	c.setNZFlags(result, dst)
	c.setCFlag(false)
	return nil
}

func (c *CPU) modulo(bus Bus, src, dstSrc, dst *Operand) error {
	a, err := c.readOp(bus, src)
	if err != nil {
		return err
	}
	b, err := c.readOp(bus, dstSrc)
	if err != nil {
		return err
	}
	if a == 0 {
		return &Error{Kind: ExcIntegerZeroDivide}
	}
	result := uint32(int32(b) % int32(a))
	if err := c.writeOp(bus, dst, result); err != nil {
		return err
	}
	c.setNZFlags(result, dst)
	c.setCFlag(false)
	c.setVFlagOp(result, dst)
	return nil
}
