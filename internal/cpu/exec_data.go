package cpu

// execData handles data movement and the stack/register-window family:
// MOV*, CLR*, MOVAW, SWAP*, PUSH*/POP*, SAVE/RESTORE, MOVBLW, STREND
// (§4.7 "Miscellaneous" and the data-movement table).
func (c *CPU) execData(bus Bus, instr *DecodedInstruction, pc int32) (int32, bool, error) {
	ops := &instr.Operands
	switch instr.Opcode {
	case opMOVW, opMOVH, opMOVB:
		val, err := c.readOp(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.writeOp(bus, &ops[1], val)

	case opMOVAW:
		addr, err := c.effectiveAddress(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		return pc, true, c.writeOp(bus, &ops[1], addr)

	case opCLRW, opCLRH, opCLRB:
		if err := c.writeOp(bus, &ops[0], 0); err != nil {
			return pc, true, err
		}
		c.setNFlag(false)
		c.setZFlag(true)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opSWAPWI, opSWAPHI, opSWAPBI:
		dst := &ops[0]
		a, err := c.readOp(bus, dst)
		if err != nil {
			return pc, true, err
		}
		if err := c.writeOp(bus, dst, c.r[0]); err != nil {
			return pc, true, err
		}
		c.r[0] = a
		c.setNZFlags(a, dst)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opPUSHW:
		src := &ops[0]
		val, err := c.readOp(bus, src)
		if err != nil {
			return pc, true, err
		}
		if err := c.stackPush(bus, val); err != nil {
			return pc, true, err
		}
		c.setNZFlags(val, src)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opPUSHAW:
		src := &ops[0]
		val, err := c.effectiveAddress(bus, src)
		if err != nil {
			return pc, true, err
		}
		if err := c.stackPush(bus, val); err != nil {
			return pc, true, err
		}
		c.setNZFlags(val, src)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opPOPW:
		dst := &ops[0]
		val, err := bus.ReadWord(c.r[RSP] - 4)
		if err != nil {
			return pc, true, wrapBusError(err)
		}
		if err := c.writeOp(bus, dst, val); err != nil {
			return pc, true, err
		}
		c.r[RSP] -= 4
		c.setNZFlags(val, dst)
		c.setCFlag(false)
		c.setVFlag(false)
		return pc, true, nil

	case opSAVE:
		if err := bus.WriteWord(c.r[RSP], c.r[RFP]); err != nil {
			return pc, true, wrapBusError(err)
		}
		reg := ops[0].Register
		if reg == nil {
			return pc, true, &Error{Kind: ExcIllegalOpcode}
		}
		offset := uint32(4)
		for r := *reg; r < RFP; r++ {
			if err := bus.WriteWord(c.r[RSP]+offset, c.r[r]); err != nil {
				return pc, true, wrapBusError(err)
			}
			offset += 4
		}
		c.r[RSP] += 28
		c.r[RFP] = c.r[RSP]
		return pc, true, nil

	case opRESTORE:
		a := c.r[RFP] - 28
		b, err := bus.ReadWord(a)
		if err != nil {
			return pc, true, wrapBusError(err)
		}
		reg := ops[0].Register
		if reg == nil {
			return pc, true, &Error{Kind: ExcIllegalOpcode}
		}
		addr := c.r[RFP] - 24
		for r := *reg; r < RFP; r++ {
			v, err := bus.ReadWord(addr)
			if err != nil {
				return pc, true, wrapBusError(err)
			}
			c.r[r] = v
			addr += 4
		}
		c.r[RFP] = b
		c.r[RSP] = a
		return pc, true, nil

	case opMOVBLW:
		for c.r[2] != 0 {
			v, err := bus.ReadWord(c.r[0])
			if err != nil {
				return pc, true, wrapBusError(err)
			}
			if err := bus.WriteWord(c.r[1], v); err != nil {
				return pc, true, wrapBusError(err)
			}
			c.r[2]--
			c.r[0] += 4
			c.r[1] += 4
		}
		return pc, true, nil

	case opSTREND:
		for {
			b, err := bus.ReadByte(c.r[0])
			if err != nil {
				return pc, true, wrapBusError(err)
			}
			if b == 0 {
				break
			}
			c.r[0]++
		}
		return pc, true, nil
	}
	return pc, false, nil
}
