package cpu

// execLogic handles bitwise AND/OR/XOR/BIT, the shift/rotate family,
// and the bit-field EXTF/INSF instructions (§4.7).
func (c *CPU) execLogic(bus Bus, instr *DecodedInstruction, pc int32) (int32, bool, error) {
	ops := &instr.Operands
	switch instr.Opcode {
	case opANDW2, opANDH2, opANDB2:
		return pc, true, c.logic2(bus, &ops[0], &ops[1], func(a, b uint32) uint32 { return a & b })
	case opANDW3, opANDH3, opANDB3:
		return pc, true, c.logic3(bus, &ops[0], &ops[1], &ops[2], func(a, b uint32) uint32 { return a & b })
	case opORW2, opORH2, opORB2:
		return pc, true, c.logic2(bus, &ops[0], &ops[1], func(a, b uint32) uint32 { return a | b })
	case opORW3, opORH3, opORB3:
		return pc, true, c.logic3(bus, &ops[0], &ops[1], &ops[2], func(a, b uint32) uint32 { return a | b })
	case opXORW2, opXORH2, opXORB2:
		return pc, true, c.logic2(bus, &ops[0], &ops[1], func(a, b uint32) uint32 { return a ^ b })
	case opXORW3, opXORH3, opXORB3:
		return pc, true, c.logic3(bus, &ops[0], &ops[1], &ops[2], func(a, b uint32) uint32 { return a ^ b })

	case opBITW, opBITH, opBITB:
		src1, src2 := &ops[0], &ops[1]
		a, err := c.readOp(bus, src1)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, src2)
		if err != nil {
			return pc, true, err
		}
		result := a & b
		c.setNZFlags(result, src2)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opALSW3:
		count, src, dst := &ops[0], &ops[1], &ops[2]
		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, count)
		if err != nil {
			return pc, true, err
		}
		result := uint32(uint64(a) << (b & 0x1f))
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opARSW3, opARSH3, opARSB3:
		count, src, dst := &ops[0], &ops[1], &ops[2]
		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, count)
		if err != nil {
			return pc, true, err
		}
		shift := b & 0x1f
		result := a >> shift
		switch src.DataType {
		case DWord, DUWord:
			if a&0x80000000 != 0 {
				result |= shift32Table[shift+1]
			}
		case DHalf, DUHalf:
			if a&0x8000 != 0 {
				result |= shift16Table[shift+1]
			}
		case DByte, DSByte:
			if a&0x80 != 0 {
				result |= shift8Table[shift+1]
			}
		}
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opLLSW3, opLLSH3, opLLSB3:
		count, src, dst := &ops[0], &ops[1], &ops[2]
		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, count)
		if err != nil {
			return pc, true, err
		}
		result := uint32(uint64(a) << (b & 0x1f))
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opLRSW3:
		count, src, dst := &ops[0], &ops[1], &ops[2]
		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, count)
		if err != nil {
			return pc, true, err
		}
		result := a >> (b & 0x1f)
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlagOp(result, dst)
		return pc, true, nil

	case opROTW:
		count, src, dst := &ops[0], &ops[1], &ops[2]
		a, err := c.readOp(bus, count)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		shift := a & 0x1f
		result := (b >> shift) | (b << (32 - shift))
		if err := c.writeOp(bus, dst, result); err != nil {
			return pc, true, err
		}
		c.setNZFlags(result, dst)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opEXTFW, opEXTFH, opEXTFB:
		widthOp, offsetOp, src, dst := &ops[0], &ops[1], &ops[2], &ops[3]
		width, err := c.readOp(bus, widthOp)
		if err != nil {
			return pc, true, err
		}
		width = (width & 0x1f) + 1
		offset, err := c.readOp(bus, offsetOp)
		if err != nil {
			return pc, true, err
		}
		offset &= 0x1f

		var mask uint32
		if width >= 32 {
			mask = 0xffffffff
		} else {
			mask = (uint32(1) << width) - 1
		}
		mask <<= offset
		if width+offset > 32 {
			mask |= (uint32(1) << ((width + offset) - 32)) - 1
		}

		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		a &= mask
		a >>= offset

		if err := c.writeOp(bus, dst, a); err != nil {
			return pc, true, err
		}
		c.setNZFlags(a, dst)
		c.setCFlag(false)
		c.setVFlagOp(a, dst)
		return pc, true, nil

	case opINSFW, opINSFH, opINSFB:
		widthOp, offsetOp, src, dst := &ops[0], &ops[1], &ops[2], &ops[3]
		width, err := c.readOp(bus, widthOp)
		if err != nil {
			return pc, true, err
		}
		width = (width & 0x1f) + 1
		offset, err := c.readOp(bus, offsetOp)
		if err != nil {
			return pc, true, err
		}
		offset &= 0x1f

		var mask uint32
		if width >= 32 {
			mask = 0xffffffff
		} else {
			mask = (uint32(1) << width) - 1
		}

		a, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		b, err := c.readOp(bus, dst)
		if err != nil {
			return pc, true, err
		}
		b &^= mask << offset
		b |= a << offset

		if err := c.writeOp(bus, dst, b); err != nil {
			return pc, true, err
		}
		c.setNZFlags(b, dst)
		c.setCFlag(false)
		c.setVFlagOp(b, dst)
		return pc, true, nil
	}
	return pc, false, nil
}

func (c *CPU) logic2(bus Bus, src, dst *Operand, op func(a, b uint32) uint32) error {
	a, err := c.readOp(bus, src)
	if err != nil {
		return err
	}
	b, err := c.readOp(bus, dst)
	if err != nil {
		return err
	}
	result := op(a, b)
	if err := c.writeOp(bus, dst, result); err != nil {
		return err
	}
	c.setNZFlags(result, dst)
	c.setCFlag(false)
	c.setVFlagOp(result, dst)
	return nil
}

func (c *CPU) logic3(bus Bus, src1, src2, dst *Operand, op func(a, b uint32) uint32) error {
	a, err := c.readOp(bus, src1)
	if err != nil {
		return err
	}
	b, err := c.readOp(bus, src2)
	if err != nil {
		return err
	}
	result := op(a, b)
	if err := c.writeOp(bus, dst, result); err != nil {
		return err
	}
	c.setNZFlags(result, dst)
	c.setCFlag(false)
	c.setVFlagOp(result, dst)
	return nil
}
