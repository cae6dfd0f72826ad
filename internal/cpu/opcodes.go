package cpu

// One-byte and two-byte (0x30xx) opcodes, per §4.5. Two-byte opcodes are
// formed as (0x30 << 8) | b1.
const (
	opHALT    = 0x00
	opSPOPRD  = 0x02
	opSPOPRD2 = 0x03
	opMOVAW   = 0x04
	opSPOPRT  = 0x06
	opSPOPT2  = 0x07
	opRET     = 0x08
	opMOVTRW  = 0x0C
	opSAVE    = 0x10
	opSPOPWD  = 0x13
	opEXTOP   = 0x14
	opSPOPWT  = 0x17
	opRESTORE = 0x18
	opSWAPWI  = 0x1C
	opSWAPHI  = 0x1E
	opSWAPBI  = 0x1F
	opPOPW    = 0x20
	opSPOPRS  = 0x22
	opSPOPS2  = 0x23
	opJMP     = 0x24
	opCFLUSH  = 0x27
	opTSTW    = 0x28
	opTSTH    = 0x2A
	opTSTB    = 0x2B
	opCALL    = 0x2C
	opBPT     = 0x2E
	opWAIT    = 0x2F
	opSPOP    = 0x32
	opSPOPWS  = 0x33
	opJSB     = 0x34
	opBSBH    = 0x36
	opBSBB    = 0x37
	opBITW    = 0x38
	opBITH    = 0x3A
	opBITB    = 0x3B
	opCMPW    = 0x3C
	opCMPH    = 0x3E
	opCMPB    = 0x3F
	opRGEQ    = 0x40
	opBGEH    = 0x42
	opBGEB    = 0x43
	opRGTR    = 0x44
	opBGH     = 0x46
	opBGB     = 0x47
	opRLSS    = 0x48
	opBLH     = 0x4A
	opBLB     = 0x4B
	opRLEQ    = 0x4C
	opBLEH    = 0x4E
	opBLEB    = 0x4F
	opRGEQU   = 0x50
	opBGEUH   = 0x52
	opBGEUB   = 0x53
	opRGTRU   = 0x54
	opBGUH    = 0x56
	opBGUB    = 0x57
	opRLSSU   = 0x58
	opBLUH    = 0x5A
	opBLUB    = 0x5B
	opRLEQU   = 0x5C
	opBLEUH   = 0x5E
	opBLEUB   = 0x5F
	opRVC     = 0x60
	opBVCH    = 0x62
	opBVCB    = 0x63
	opRNEQU   = 0x64
	opBNEH1   = 0x66
	opBNEB1   = 0x67
	opRVS     = 0x68
	opBVSH    = 0x6A
	opBVSB    = 0x6B
	opREQLU   = 0x6C
	opBEH1    = 0x6E
	opBEB1    = 0x6F
	opNOP     = 0x70
	opNOP3    = 0x72
	opNOP2    = 0x73
	opRNEQ    = 0x74
	opBNEH2   = 0x76
	opBNEB2   = 0x77
	opRSB     = 0x78
	opBRH     = 0x7A
	opBRB     = 0x7B
	opREQL    = 0x7C
	opBEH2    = 0x7E
	opBEB2    = 0x7F
	opCLRW    = 0x80
	opCLRH    = 0x82
	opCLRB    = 0x83
	opMOVW    = 0x84
	opMOVH    = 0x86
	opMOVB    = 0x87
	opMCOMW   = 0x88
	opMCOMH   = 0x8A
	opMCOMB   = 0x8B
	opMNEGW   = 0x8C
	opMNEGH   = 0x8E
	opMNEGB   = 0x8F
	opINCW    = 0x90
	opINCH    = 0x92
	opINCB    = 0x93
	opDECW    = 0x94
	opDECH    = 0x96
	opDECB    = 0x97
	opADDW2   = 0x9C
	opADDH2   = 0x9E
	opADDB2   = 0x9F
	opPUSHW   = 0xA0
	opMODW2   = 0xA4
	opMODH2   = 0xA6
	opMODB2   = 0xA7
	opMULW2   = 0xA8
	opMULH2   = 0xAA
	opMULB2   = 0xAB
	opDIVW2   = 0xAC
	opDIVH2   = 0xAE
	opDIVB2   = 0xAF
	opORW2    = 0xB0
	opORH2    = 0xB2
	opORB2    = 0xB3
	opXORW2   = 0xB4
	opXORH2   = 0xB6
	opXORB2   = 0xB7
	opANDW2   = 0xB8
	opANDH2   = 0xBA
	opANDB2   = 0xBB
	opSUBW2   = 0xBC
	opSUBH2   = 0xBE
	opSUBB2   = 0xBF
	opALSW3   = 0xC0
	opARSW3   = 0xC4
	opARSH3   = 0xC6
	opARSB3   = 0xC7
	opINSFW   = 0xC8
	opINSFH   = 0xCA
	opINSFB   = 0xCB
	opEXTFW   = 0xCC
	opEXTFH   = 0xCE
	opEXTFB   = 0xCF
	opLLSW3   = 0xD0
	opLLSH3   = 0xD2
	opLLSB3   = 0xD3
	opLRSW3   = 0xD4
	opROTW    = 0xD8
	opADDW3   = 0xDC
	opADDH3   = 0xDE
	opADDB3   = 0xDF
	opPUSHAW  = 0xE0
	opMODW3   = 0xE4
	opMODH3   = 0xE6
	opMODB3   = 0xE7
	opMULW3   = 0xE8
	opMULH3   = 0xEA
	opMULB3   = 0xEB
	opDIVW3   = 0xEC
	opDIVH3   = 0xEE
	opDIVB3   = 0xEF
	opORW3    = 0xF0
	opORH3    = 0xF2
	opORB3    = 0xF3
	opXORW3   = 0xF4
	opXORH3   = 0xF6
	opXORB3   = 0xF7
	opANDW3   = 0xF8
	opANDH3   = 0xFA
	opANDB3   = 0xFB
	opSUBW3   = 0xFC
	opSUBH3   = 0xFE
	opSUBB3   = 0xFF

	opMVERNO   = 0x3009
	opENBVJMP  = 0x300d
	opDISVJMP  = 0x3013
	opMOVBLW   = 0x3019
	opSTREND   = 0x301f
	opINTACK   = 0x302f
	opSTRCPY   = 0x303f
	opRETG     = 0x3045
	opGATE     = 0x3061
	opCALLPS   = 0x30ac
	opRETPS    = 0x30c8
)

func mn(opcode uint32, dt Data, name string, ops ...OpKind) *Mnemonic {
	return &Mnemonic{Opcode: opcode, DType: dt, Name: name, Ops: ops}
}

var mnemonics = buildMnemonics()

func buildMnemonics() map[uint32]*Mnemonic {
	m := map[uint32]*Mnemonic{}
	add := func(x *Mnemonic) { m[x.Opcode] = x }

	add(mn(opHALT, DNone, "HALT"))
	add(mn(opSPOPRD, DWord, "SPOPRD", OpLit, OpSrc))
	add(mn(opSPOPRD2, DWord, "SPOPRD2", OpLit, OpSrc, OpDest))
	add(mn(opMOVAW, DWord, "MOVAW", OpSrc, OpDest))
	add(mn(opSPOPRT, DWord, "SPOPRT", OpLit, OpSrc))
	add(mn(opSPOPT2, DWord, "SPOPT2", OpLit, OpSrc, OpDest))
	add(mn(opRET, DNone, "RET"))
	add(mn(opMOVTRW, DWord, "MOVTRW", OpSrc, OpDest))
	add(mn(opSAVE, DWord, "SAVE", OpSrc))
	add(mn(opSPOPWD, DWord, "SPOPWD", OpLit, OpDest))
	add(mn(opEXTOP, DByte, "EXTOP"))
	add(mn(opSPOPWT, DWord, "SPOPWT", OpLit, OpDest))
	add(mn(opRESTORE, DNone, "RESTORE", OpSrc))
	add(mn(opSWAPWI, DWord, "SWAPWI", OpDest))
	add(mn(opSWAPHI, DHalf, "SWAPHI", OpDest))
	add(mn(opSWAPBI, DByte, "SWAPBI", OpDest))
	add(mn(opPOPW, DWord, "POPW", OpSrc))
	add(mn(opSPOPRS, DWord, "SPOPRS", OpLit, OpSrc))
	add(mn(opSPOPS2, DWord, "SPOPS2", OpLit, OpSrc, OpDest))
	add(mn(opJMP, DWord, "JMP", OpDest))
	add(mn(opCFLUSH, DNone, "CFLUSH"))
	add(mn(opTSTW, DWord, "TSTW", OpSrc))
	add(mn(opTSTH, DHalf, "TSTH", OpSrc))
	add(mn(opTSTB, DByte, "TSTB", OpSrc))
	add(mn(opCALL, DWord, "CALL", OpSrc, OpDest))
	add(mn(opBPT, DNone, "BPT"))
	add(mn(opWAIT, DNone, "WAIT"))
	add(mn(opSPOP, DWord, "SPOP", OpLit))
	add(mn(opSPOPWS, DWord, "SPOPWS", OpLit, OpDest))
	add(mn(opJSB, DWord, "JSB", OpDest))
	add(mn(opBSBH, DHalf, "BSBH", OpLit))
	add(mn(opBSBB, DByte, "BSBB", OpLit))
	add(mn(opBITW, DWord, "BITW", OpSrc, OpSrc))
	add(mn(opBITH, DHalf, "BITH", OpSrc, OpSrc))
	add(mn(opBITB, DByte, "BITB", OpSrc, OpSrc))
	add(mn(opCMPW, DWord, "CMPW", OpSrc, OpSrc))
	add(mn(opCMPH, DHalf, "CMPH", OpSrc, OpSrc))
	add(mn(opCMPB, DByte, "CMPB", OpSrc, OpSrc))
	add(mn(opRGEQ, DNone, "RGEQ"))
	add(mn(opBGEH, DHalf, "BGEH", OpLit))
	add(mn(opBGEB, DByte, "BGEB", OpLit))
	add(mn(opRGTR, DNone, "RGTR"))
	add(mn(opBGH, DHalf, "BGH", OpLit))
	add(mn(opBGB, DByte, "BGB", OpLit))
	add(mn(opRLSS, DNone, "RLSS"))
	add(mn(opBLH, DHalf, "BLH", OpLit))
	add(mn(opBLB, DByte, "BLB", OpLit))
	add(mn(opRLEQ, DNone, "RLEQ"))
	add(mn(opBLEH, DHalf, "BLEH", OpLit))
	add(mn(opBLEB, DByte, "BLEB", OpLit))
	add(mn(opRGEQU, DNone, "RGEQU"))
	add(mn(opBGEUH, DHalf, "BGEUH", OpLit))
	add(mn(opBGEUB, DByte, "BGEUB", OpLit))
	add(mn(opRGTRU, DNone, "RGTRU"))
	add(mn(opBGUH, DHalf, "BGUH", OpLit))
	add(mn(opBGUB, DByte, "BGUB", OpLit))
	add(mn(opRLSSU, DNone, "RLSSU"))
	add(mn(opBLUH, DHalf, "BLUH", OpLit))
	add(mn(opBLUB, DByte, "BLUB", OpLit))
	add(mn(opRLEQU, DNone, "RLEQU"))
	add(mn(opBLEUH, DHalf, "BLEUH", OpLit))
	add(mn(opBLEUB, DByte, "BLEUB", OpLit))
	add(mn(opRVC, DNone, "RVC"))
	add(mn(opBVCH, DHalf, "BVCH", OpLit))
	add(mn(opBVCB, DByte, "BVCB", OpLit))
	add(mn(opRNEQU, DNone, "RNEQU"))
	add(mn(opBNEH1, DHalf, "BNEH", OpLit))
	add(mn(opBNEB1, DByte, "BNEB", OpLit))
	add(mn(opRVS, DNone, "RVS"))
	add(mn(opBVSH, DHalf, "BVSH", OpLit))
	add(mn(opBVSB, DByte, "BVSB", OpLit))
	add(mn(opREQLU, DNone, "REQLU"))
	add(mn(opBEH1, DHalf, "BEH", OpLit))
	add(mn(opBEB1, DByte, "BEB", OpLit))
	add(mn(opNOP, DNone, "NOP"))
	add(mn(opNOP3, DNone, "NOP3"))
	add(mn(opNOP2, DNone, "NOP2"))
	add(mn(opRNEQ, DNone, "RNEQ"))
	add(mn(opBNEH2, DHalf, "BNEH2", OpLit))
	add(mn(opBNEB2, DByte, "BNEB2", OpLit))
	add(mn(opRSB, DNone, "RSB"))
	add(mn(opBRH, DHalf, "BRH", OpLit))
	add(mn(opBRB, DByte, "BRB", OpLit))
	add(mn(opREQL, DNone, "REQL"))
	add(mn(opBEH2, DHalf, "BEH2", OpLit))
	add(mn(opBEB2, DByte, "BEB2", OpLit))
	add(mn(opCLRW, DWord, "CLRW", OpDest))
	add(mn(opCLRH, DHalf, "CLRH", OpDest))
	add(mn(opCLRB, DByte, "CLRB", OpDest))
	add(mn(opMOVW, DWord, "MOVW", OpSrc, OpDest))
	add(mn(opMOVH, DHalf, "MOVH", OpSrc, OpDest))
	add(mn(opMOVB, DByte, "MOVB", OpSrc, OpDest))
	add(mn(opMCOMW, DWord, "MCOMW", OpSrc, OpDest))
	add(mn(opMCOMH, DHalf, "MCOMH", OpSrc, OpDest))
	add(mn(opMCOMB, DByte, "MCOMB", OpSrc, OpDest))
	add(mn(opMNEGW, DWord, "MNEGW", OpSrc, OpDest))
	add(mn(opMNEGH, DHalf, "MNEGH", OpSrc, OpDest))
	add(mn(opMNEGB, DByte, "MNEGB", OpSrc, OpDest))
	add(mn(opINCW, DWord, "INCW", OpDest))
	add(mn(opINCH, DHalf, "INCH", OpDest))
	add(mn(opINCB, DByte, "INCB", OpDest))
	add(mn(opDECW, DWord, "DECW", OpDest))
	add(mn(opDECH, DHalf, "DECH", OpDest))
	add(mn(opDECB, DByte, "DECB", OpDest))
	add(mn(opADDW2, DWord, "ADDW2", OpSrc, OpDest))
	add(mn(opADDH2, DHalf, "ADDH2", OpSrc, OpDest))
	add(mn(opADDB2, DByte, "ADDB2", OpSrc, OpDest))
	add(mn(opPUSHW, DWord, "PUSHW", OpSrc))
	add(mn(opMODW2, DWord, "MODW2", OpSrc, OpDest))
	add(mn(opMODH2, DHalf, "MODH2", OpSrc, OpDest))
	add(mn(opMODB2, DByte, "MODB2", OpSrc, OpDest))
	add(mn(opMULW2, DWord, "MULW2", OpSrc, OpDest))
	add(mn(opMULH2, DHalf, "MULH2", OpSrc, OpDest))
	add(mn(opMULB2, DByte, "MULB2", OpSrc, OpDest))
	add(mn(opDIVW2, DWord, "DIVW2", OpSrc, OpDest))
	add(mn(opDIVH2, DHalf, "DIVH2", OpSrc, OpDest))
	add(mn(opDIVB2, DByte, "DIVB2", OpSrc, OpDest))
	add(mn(opORW2, DWord, "ORW2", OpSrc, OpDest))
	add(mn(opORH2, DHalf, "ORH2", OpSrc, OpDest))
	add(mn(opORB2, DByte, "ORB2", OpSrc, OpDest))
	add(mn(opXORW2, DWord, "XORW2", OpSrc, OpDest))
	add(mn(opXORH2, DHalf, "XORH2", OpSrc, OpDest))
	add(mn(opXORB2, DByte, "XORB2", OpSrc, OpDest))
	add(mn(opANDW2, DWord, "ANDW2", OpSrc, OpDest))
	add(mn(opANDH2, DHalf, "ANDH2", OpSrc, OpDest))
	add(mn(opANDB2, DByte, "ANDB2", OpSrc, OpDest))
	add(mn(opSUBW2, DWord, "SUBW2", OpSrc, OpDest))
	add(mn(opSUBH2, DHalf, "SUBH2", OpSrc, OpDest))
	add(mn(opSUBB2, DByte, "SUBB2", OpSrc, OpDest))
	add(mn(opALSW3, DWord, "ALSW3", OpSrc, OpSrc, OpDest))
	add(mn(opARSW3, DWord, "ARSW3", OpSrc, OpSrc, OpDest))
	add(mn(opARSH3, DHalf, "ARSH3", OpSrc, OpSrc, OpDest))
	add(mn(opARSB3, DByte, "ARSB3", OpSrc, OpSrc, OpDest))
	add(mn(opINSFW, DWord, "INSFW", OpSrc, OpSrc, OpSrc, OpDest))
	add(mn(opINSFH, DHalf, "INSFH", OpSrc, OpSrc, OpSrc, OpDest))
	add(mn(opINSFB, DByte, "INSFB", OpSrc, OpSrc, OpSrc, OpDest))
	add(mn(opEXTFW, DWord, "EXTFW", OpSrc, OpSrc, OpSrc, OpDest))
	add(mn(opEXTFH, DHalf, "EXTFH", OpSrc, OpSrc, OpSrc, OpDest))
	add(mn(opEXTFB, DByte, "EXTFB", OpSrc, OpSrc, OpSrc, OpDest))
	add(mn(opLLSW3, DWord, "LLSW3", OpSrc, OpSrc, OpDest))
	add(mn(opLLSH3, DHalf, "LLSH3", OpSrc, OpSrc, OpDest))
	add(mn(opLLSB3, DByte, "LLSB3", OpSrc, OpSrc, OpDest))
	add(mn(opLRSW3, DWord, "LRSW3", OpSrc, OpSrc, OpDest))
	add(mn(opROTW, DWord, "ROTW", OpSrc, OpSrc, OpDest))
	add(mn(opADDW3, DWord, "ADDW3", OpSrc, OpSrc, OpDest))
	add(mn(opADDH3, DHalf, "ADDH3", OpSrc, OpSrc, OpDest))
	add(mn(opADDB3, DByte, "ADDB3", OpSrc, OpSrc, OpDest))
	add(mn(opPUSHAW, DWord, "PUSHAW", OpSrc))
	add(mn(opMODW3, DWord, "MODW3", OpSrc, OpSrc, OpDest))
	add(mn(opMODH3, DHalf, "MODH3", OpSrc, OpSrc, OpDest))
	add(mn(opMODB3, DByte, "MODB3", OpSrc, OpSrc, OpDest))
	add(mn(opMULW3, DWord, "MULW3", OpSrc, OpSrc, OpDest))
	add(mn(opMULH3, DHalf, "MULH3", OpSrc, OpSrc, OpDest))
	add(mn(opMULB3, DByte, "MULB3", OpSrc, OpSrc, OpDest))
	add(mn(opDIVW3, DWord, "DIVW3", OpSrc, OpSrc, OpDest))
	add(mn(opDIVH3, DHalf, "DIVH3", OpSrc, OpSrc, OpDest))
	add(mn(opDIVB3, DByte, "DIVB3", OpSrc, OpSrc, OpDest))
	add(mn(opORW3, DWord, "ORW3", OpSrc, OpSrc, OpDest))
	add(mn(opORH3, DHalf, "ORH3", OpSrc, OpSrc, OpDest))
	add(mn(opORB3, DByte, "ORB3", OpSrc, OpSrc, OpDest))
	add(mn(opXORW3, DWord, "XORW3", OpSrc, OpSrc, OpDest))
	add(mn(opXORH3, DHalf, "XORH3", OpSrc, OpSrc, OpDest))
	add(mn(opXORB3, DByte, "XORB3", OpSrc, OpSrc, OpDest))
	add(mn(opANDW3, DWord, "ANDW3", OpSrc, OpSrc, OpDest))
	add(mn(opANDH3, DHalf, "ANDH3", OpSrc, OpSrc, OpDest))
	add(mn(opANDB3, DByte, "ANDB3", OpSrc, OpSrc, OpDest))
	add(mn(opSUBW3, DWord, "SUBW3", OpSrc, OpSrc, OpDest))
	add(mn(opSUBH3, DHalf, "SUBH3", OpSrc, OpSrc, OpDest))
	add(mn(opSUBB3, DByte, "SUBB3", OpSrc, OpSrc, OpDest))

	add(mn(opMVERNO, DNone, "MVERNO"))
	add(mn(opENBVJMP, DNone, "ENBVJMP"))
	add(mn(opDISVJMP, DNone, "DISVJMP"))
	add(mn(opMOVBLW, DNone, "MOVBLW"))
	add(mn(opSTREND, DNone, "STREND"))
	add(mn(opINTACK, DNone, "INTACK"))
	add(mn(opSTRCPY, DNone, "STRCPY"))
	add(mn(opRETG, DNone, "RETG"))
	add(mn(opGATE, DNone, "GATE"))
	add(mn(opCALLPS, DNone, "CALLPS"))
	add(mn(opRETPS, DNone, "RETPS"))

	return m
}
