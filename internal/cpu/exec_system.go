package cpu

// execSystem handles the privileged/system control group: HALT/BPT/WAIT,
// CFLUSH, NOP family, MVERNO, ENBVJMP/DISVJMP, and the process-switch
// primitives CALLPS/RETPS/RETG (§4.6, §4.7's system table). SPOP*,
// MOVTRW, EXTOP, INTACK, STRCPY, and GATE have mnemonic slots in the
// decode table but no implemented semantics in the reference this was
// built from and no mention in the terminal's operational requirements,
// so they fall through unclaimed here and surface as illegal opcodes
// from execute()'s final fallback.
func (c *CPU) execSystem(bus Bus, instr *DecodedInstruction, pc int32) (int32, bool, error) {
	switch instr.Opcode {
	case opHALT, opBPT:
		return pc, true, &Error{Kind: ExcBreakpoint}

	case opWAIT:
		return pc, true, nil

	case opCFLUSH:
		return pc, true, nil

	case opNOP:
		return 1, true, nil
	case opNOP2:
		return 2, true, nil
	case opNOP3:
		return 3, true, nil

	case opMVERNO:
		c.r[0] = we32100Version
		return pc, true, nil

	case opENBVJMP:
		if c.privLevel() != PrivKernel {
			return pc, true, &Error{Kind: ExcPrivilegedOpcode}
		}
		c.r[RPC] = c.r[0]
		return 0, true, nil

	case opDISVJMP:
		if c.privLevel() != PrivKernel {
			return pc, true, &Error{Kind: ExcPrivilegedOpcode}
		}
		c.r[RPC] = c.r[0]
		return 0, true, nil

	case opCALLPS:
		if c.privLevel() != PrivKernel {
			return pc, true, &Error{Kind: ExcPrivilegedOpcode}
		}
		newPcbp := c.r[0]
		if err := c.irqPush(bus, c.r[RPCBP]); err != nil {
			return pc, true, err
		}
		c.r[RPC] = uint32(int32(c.r[RPC]) + pc)

		c.r[RPSW] &^= maskISC | maskTM | maskET
		c.r[RPSW] |= 1
		if err := c.contextSwitch1(bus, newPcbp); err != nil {
			return 0, true, err
		}
		if err := c.contextSwitch2(bus, newPcbp); err != nil {
			return 0, true, err
		}

		c.r[RPSW] &^= maskISC | maskTM | maskET
		c.r[RPSW] |= (7 << shiftISC) & maskISC
		c.r[RPSW] |= 3
		if err := c.contextSwitch3(bus); err != nil {
			return 0, true, err
		}
		return 0, true, nil

	case opRETPS:
		if c.privLevel() != PrivKernel {
			return pc, true, &Error{Kind: ExcPrivilegedOpcode}
		}
		a, err := c.irqPop(bus)
		if err != nil {
			return pc, true, err
		}
		b, err := bus.ReadWord(a)
		if err != nil {
			return pc, true, wrapBusError(err)
		}
		c.r[RPSW] &^= maskR
		c.r[RPSW] |= b & maskR

		if err := c.contextSwitch2(bus, a); err != nil {
			return 0, true, err
		}
		if err := c.contextSwitch3(bus); err != nil {
			return 0, true, err
		}

		if c.r[RPSW]&maskR != 0 {
			vals := [9]uint32{}
			for i := range vals {
				v, err := bus.ReadWord(c.r[RPCBP] + uint32(24+4*i))
				if err != nil {
					return 0, true, wrapBusError(err)
				}
				vals[i] = v
			}
			c.r[RFP] = vals[0]
			for i := 0; i < 8; i++ {
				c.r[i] = vals[i+1]
			}
			r8, err := bus.ReadWord(c.r[RPCBP] + 60)
			if err != nil {
				return 0, true, wrapBusError(err)
			}
			c.r[8] = r8
			ap, err := bus.ReadWord(c.r[RPCBP] + 20)
			if err != nil {
				return 0, true, wrapBusError(err)
			}
			c.r[RAP] = ap
		}
		return 0, true, nil

	case opRETG:
		psw, err := c.stackPop(bus)
		if err != nil {
			return pc, true, err
		}
		newPC, err := c.stackPop(bus)
		if err != nil {
			return pc, true, err
		}
		kept := c.r[RPSW] & (maskIPL | maskCFD | maskR)
		psw &^= maskISC | maskET | maskIPL | maskCFD | maskR
		psw |= (7 << shiftISC) & maskISC
		psw |= 3
		psw |= kept
		c.r[RPSW] = psw
		c.r[RPC] = newPC
		return 0, true, nil
	}
	return pc, false, nil
}
