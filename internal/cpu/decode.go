package cpu

// decodeInstruction fetches and fully decodes the instruction at the
// current PC (§4.5). It does not advance PC; the caller applies the
// returned byte length (or a branch's override).
func (c *CPU) decodeInstruction(bus Bus) (*DecodedInstruction, error) {
	pc := c.r[RPC]
	b0, err := bus.ReadByte(pc)
	if err != nil {
		return nil, err
	}

	var opcode uint32
	var addr uint32
	if b0 == 0x30 {
		b1, err := bus.ReadByte(pc+1)
		if err != nil {
			return nil, err
		}
		opcode = 0x3000 | uint32(b1)
		addr = pc + 2
	} else {
		opcode = uint32(b0)
		addr = pc + 1
	}

	m, ok := mnemonics[opcode]
	if !ok {
		return nil, &Error{Kind: ExcIllegalOpcode}
	}

	instr := &DecodedInstruction{Opcode: opcode, Mnemonic: m, PC: pc}
	for i, kind := range m.Ops {
		var op Operand
		var n uint32
		var err error
		if kind == OpLit {
			op, n, err = c.decodeLiteralOperand(bus, m.DType, addr)
		} else {
			op, n, err = c.decodeDescriptorOperand(bus, m.DType, nil, addr, true)
		}
		if err != nil {
			return nil, err
		}
		instr.Operands[i] = op
		instr.NumOps = i + 1
		addr += n
	}
	instr.Bytes = addr - pc
	return instr, nil
}

// decodeLiteralOperand decodes an immediate value embedded directly
// after the opcode, width equal to the mnemonic's data type (§4.5).
func (c *CPU) decodeLiteralOperand(bus Bus, dtype Data, addr uint32) (Operand, uint32, error) {
	switch dtype {
	case DByte:
		b, err := bus.ReadByte(addr)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 1, Mode: AddrNone, DataType: DByte, Embedded: uint32(b)}, 1, nil
	case DHalf:
		h, err := bus.ReadOpHalf(addr)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 2, Mode: AddrNone, DataType: DHalf, Embedded: uint32(h)}, 2, nil
	case DWord:
		w, err := bus.ReadOpWord(addr)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 4, Mode: AddrNone, DataType: DWord, Embedded: w}, 4, nil
	default:
		return Operand{}, 0, &Error{Kind: ExcIllegalOpcode}
	}
}

// decodeDescriptorOperand decodes one descriptor byte, per the table in
// §4.5. recur controls whether an m=14 "expanded type" descriptor may
// itself recurse (exactly one level deep, per §3's invariant).
func (c *CPU) decodeDescriptorOperand(bus Bus, dtype Data, etype *Data, addr uint32, recur bool) (Operand, uint32, error) {
	desc, err := bus.ReadByte(addr)
	if err != nil {
		return Operand{}, 0, err
	}
	m := int(desc >> 4)
	reg := int(desc & 0x0f)

	mkReg := func(r int) *int { return &r }

	switch {
	case m <= 3:
		return Operand{Bytes: 1, Mode: AddrPosLiteral, DataType: dtype, ExpType: etype, Embedded: uint32(desc)}, 1, nil
	case m == 4 && reg == 15:
		w, err := bus.ReadOpWord(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 5, Mode: AddrWordImmediate, DataType: dtype, ExpType: etype, Embedded: w}, 5, nil
	case m == 4:
		return Operand{Bytes: 1, Mode: AddrRegister, DataType: dtype, ExpType: etype, Register: mkReg(reg)}, 1, nil
	case m == 5 && reg == 15:
		h, err := bus.ReadOpHalf(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 3, Mode: AddrHalfImmediate, DataType: dtype, ExpType: etype, Embedded: uint32(int32(int16(h)))}, 3, nil
	case m == 5 && reg == 11:
		return Operand{}, 0, &Error{Kind: ExcInvalidDescriptor}
	case m == 5:
		return Operand{Bytes: 1, Mode: AddrRegisterDeferred, DataType: dtype, ExpType: etype, Register: mkReg(reg)}, 1, nil
	case m == 6 && reg == 15:
		b, err := bus.ReadByte(addr+1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 2, Mode: AddrByteImmediate, DataType: dtype, ExpType: etype, Embedded: uint32(int32(int8(b)))}, 2, nil
	case m == 6:
		return Operand{Bytes: 1, Mode: AddrFPShortOffset, DataType: dtype, ExpType: etype, Embedded: uint32(reg)}, 1, nil
	case m == 7 && reg == 15:
		w, err := bus.ReadOpWord(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 5, Mode: AddrAbsolute, DataType: dtype, ExpType: etype, Embedded: w}, 5, nil
	case m == 7:
		return Operand{Bytes: 1, Mode: AddrAPShortOffset, DataType: dtype, ExpType: etype, Embedded: uint32(reg)}, 1, nil
	case m == 8 && reg == 11:
		return Operand{}, 0, &Error{Kind: ExcInvalidDescriptor}
	case m == 8:
		w, err := bus.ReadOpWord(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 5, Mode: AddrWordDisplacement, DataType: dtype, ExpType: etype, Register: mkReg(reg), Embedded: w}, 5, nil
	case m == 9 && reg == 11:
		return Operand{}, 0, &Error{Kind: ExcInvalidDescriptor}
	case m == 9:
		w, err := bus.ReadOpWord(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 5, Mode: AddrWordDisplacementDeferred, DataType: dtype, ExpType: etype, Register: mkReg(reg), Embedded: w}, 5, nil
	case (m == 10 || m == 11) && reg == 11:
		return Operand{}, 0, &Error{Kind: ExcInvalidDescriptor}
	case m == 10:
		h, err := bus.ReadOpHalf(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 3, Mode: AddrHalfDisplacement, DataType: dtype, ExpType: etype, Register: mkReg(reg), Embedded: uint32(int32(int16(h)))}, 3, nil
	case m == 11:
		h, err := bus.ReadOpHalf(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 3, Mode: AddrHalfDisplacementDeferred, DataType: dtype, ExpType: etype, Register: mkReg(reg), Embedded: uint32(int32(int16(h)))}, 3, nil
	case (m == 12 || m == 13) && reg == 11:
		return Operand{}, 0, &Error{Kind: ExcInvalidDescriptor}
	case m == 12:
		b, err := bus.ReadByte(addr+1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 2, Mode: AddrByteDisplacement, DataType: dtype, ExpType: etype, Register: mkReg(reg), Embedded: uint32(int32(int8(b)))}, 2, nil
	case m == 13:
		b, err := bus.ReadByte(addr+1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 2, Mode: AddrByteDisplacementDeferred, DataType: dtype, ExpType: etype, Register: mkReg(reg), Embedded: uint32(int32(int8(b)))}, 2, nil
	case m == 14 && reg == 15:
		w, err := bus.ReadOpWord(addr + 1)
		if err != nil {
			return Operand{}, 0, err
		}
		return Operand{Bytes: 5, Mode: AddrAbsoluteDeferred, DataType: dtype, ExpType: etype, Embedded: w}, 5, nil
	case m == 14 && recur && isExpandable(reg):
		inner := expandedType(reg)
		op, n, err := c.decodeDescriptorOperand(bus, dtype, &inner, addr+1, false)
		if err != nil {
			return Operand{}, 0, err
		}
		op.Bytes++
		return op, n + 1, nil
	case m == 14:
		return Operand{}, 0, &Error{Kind: ExcInvalidDescriptor}
	default: // m == 15
		return Operand{Bytes: 1, Mode: AddrNegLiteral, DataType: dtype, ExpType: etype, Embedded: uint32(desc)}, 1, nil
	}
}

func isExpandable(reg int) bool {
	switch reg {
	case 0, 2, 3, 4, 6, 7:
		return true
	default:
		return false
	}
}

// expandedType maps the m=14 expanded-type register field to the data
// type override, per §4.5.
func expandedType(reg int) Data {
	switch reg {
	case 0:
		return DUWord
	case 2:
		return DUHalf
	case 3:
		return DByte
	case 4:
		return DWord
	case 6:
		return DHalf
	case 7:
		return DSByte
	default:
		return DNone
	}
}
