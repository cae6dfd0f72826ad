package cpu

// execBranch handles the branch, conditional-return, and call/jump
// family (§4.7). Conditional forms replace pc (the increment) rather
// than adding to it; CALL/JMP/JSB/RSB/RET set pc to 0 and redirect
// R_PC directly.
func (c *CPU) execBranch(bus Bus, instr *DecodedInstruction, pc int32) (int32, bool, error) {
	ops := &instr.Operands
	switch instr.Opcode {
	case opBRH, opBRB:
		return branchOffset(&ops[0]), true, nil

	case opBEH1, opBEH2, opBEB1, opBEB2:
		if c.zFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBNEH1, opBNEH2, opBNEB1, opBNEB2:
		if !c.zFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBGH, opBGB:
		if !(c.nFlag() || c.zFlag()) {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBGEH, opBGEB:
		if !c.nFlag() || c.zFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBLH, opBLB:
		if c.nFlag() && !c.zFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBLEH, opBLEB:
		if c.nFlag() || c.zFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBGUH, opBGUB:
		if !(c.cFlag() || c.zFlag()) {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBGEUH, opBGEUB:
		if !c.cFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBLUH, opBLUB:
		if c.cFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBLEUH, opBLEUB:
		if c.cFlag() || c.zFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBVCH, opBVCB:
		if !c.vFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil
	case opBVSH, opBVSB:
		if c.vFlag() {
			return branchOffset(&ops[0]), true, nil
		}
		return pc, true, nil

	case opBSBH, opBSBB:
		offset := branchOffset(&ops[0])
		returnPC := uint32(int32(c.r[RPC]) + pc)
		if err := c.stackPush(bus, returnPC); err != nil {
			return pc, true, err
		}
		return offset, true, nil

	case opRSB:
		v, err := c.stackPop(bus)
		if err != nil {
			return pc, true, err
		}
		c.r[RPC] = v
		return 0, true, nil

	case opREQL, opREQLU:
		return c.condReturn(bus, pc, c.zFlag())
	case opRNEQ, opRNEQU:
		return c.condReturn(bus, pc, !c.zFlag())
	case opRGTR:
		return c.condReturn(bus, pc, !c.nFlag() && !c.zFlag())
	case opRGEQ:
		return c.condReturn(bus, pc, !c.nFlag() || c.zFlag())
	case opRLSS:
		return c.condReturn(bus, pc, c.nFlag() && !c.zFlag())
	case opRLEQ:
		return c.condReturn(bus, pc, c.nFlag() || c.zFlag())
	case opRGTRU:
		return c.condReturn(bus, pc, !(c.cFlag() || c.zFlag()))
	case opRGEQU:
		return c.condReturn(bus, pc, !c.cFlag())
	case opRLSSU:
		return c.condReturn(bus, pc, c.cFlag())
	case opRLEQU:
		return c.condReturn(bus, pc, c.cFlag() || c.zFlag())
	case opRVC:
		return c.condReturn(bus, pc, !c.vFlag())
	case opRVS:
		return c.condReturn(bus, pc, c.vFlag())

	case opJMP:
		addr, err := c.effectiveAddress(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		c.r[RPC] = addr
		return 0, true, nil

	case opJSB:
		addr, err := c.effectiveAddress(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		returnPC := uint32(int32(c.r[RPC]) + pc)
		if err := c.stackPush(bus, returnPC); err != nil {
			return pc, true, err
		}
		c.r[RPC] = addr
		return 0, true, nil

	case opCALL:
		a, err := c.effectiveAddress(bus, &ops[0])
		if err != nil {
			return pc, true, err
		}
		b, err := c.effectiveAddress(bus, &ops[1])
		if err != nil {
			return pc, true, err
		}
		returnPC := uint32(int32(c.r[RPC]) + pc)
		if err := bus.WriteWord(c.r[RSP]+4, c.r[RAP]); err != nil {
			return pc, true, wrapBusError(err)
		}
		if err := bus.WriteWord(c.r[RSP], returnPC); err != nil {
			return pc, true, wrapBusError(err)
		}
		c.r[RSP] += 8
		c.r[RPC] = b
		c.r[RAP] = a
		return 0, true, nil

	case opRET:
		a := c.r[RAP]
		b, err := bus.ReadWord(c.r[RSP] - 4)
		if err != nil {
			return pc, true, wrapBusError(err)
		}
		d, err := bus.ReadWord(c.r[RSP] - 8)
		if err != nil {
			return pc, true, wrapBusError(err)
		}
		c.r[RAP] = b
		c.r[RPC] = d
		c.r[RSP] = a
		return 0, true, nil
	}
	return pc, false, nil
}

// condReturn implements the R{cond} family: pop the return address off
// the call stack and redirect PC only when cond holds.
func (c *CPU) condReturn(bus Bus, pc int32, cond bool) (int32, bool, error) {
	if !cond {
		return pc, true, nil
	}
	v, err := c.stackPop(bus)
	if err != nil {
		return pc, true, err
	}
	c.r[RPC] = v
	return 0, true, nil
}
