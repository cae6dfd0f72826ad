// Package cpu implements the WE32100 instruction decoder and executor:
// descriptor-byte addressing modes, the ~200-entry opcode table, PSW flag
// semantics, and process-control-block context switching.
package cpu

// Register aliases, per the WE32100 register file.
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	RFP
	RAP
	RPSW
	RSP
	RPCBP
	RISP
	RPC
	numRegs
)

// Data is the declared or effective data type of an operand.
type Data int

const (
	DNone Data = iota
	DByte
	DSByte
	DHalf
	DUHalf
	DWord
	DUWord
)

func (d Data) widthBytes() uint32 {
	switch d {
	case DByte, DSByte:
		return 1
	case DHalf, DUHalf:
		return 2
	case DWord, DUWord:
		return 4
	default:
		return 0
	}
}

// AddrMode enumerates the descriptor-byte addressing modes of §4.5.
type AddrMode int

const (
	AddrNone AddrMode = iota
	AddrPosLiteral
	AddrNegLiteral
	AddrWordImmediate
	AddrHalfImmediate
	AddrByteImmediate
	AddrRegister
	AddrRegisterDeferred
	AddrFPShortOffset
	AddrAPShortOffset
	AddrAbsolute
	AddrAbsoluteDeferred
	AddrWordDisplacement
	AddrWordDisplacementDeferred
	AddrHalfDisplacement
	AddrHalfDisplacementDeferred
	AddrByteDisplacement
	AddrByteDisplacementDeferred
	AddrExpanded
)

// OpKind is how an operand slot in a mnemonic's signature is used.
type OpKind int

const (
	OpLit OpKind = iota
	OpSrc
	OpDest
)

// Operand is a fully decoded instruction operand (§3 "Operand").
type Operand struct {
	Bytes     uint32
	Mode      AddrMode
	DataType  Data
	ExpType   *Data
	Register  *int
	Embedded  uint32
}

// EffectiveType returns the expanded type override if present, else the
// declared type (§3 invariant).
func (o *Operand) EffectiveType() Data {
	if o.ExpType != nil {
		return *o.ExpType
	}
	return o.DataType
}

// Mnemonic describes one opcode: its natural data width and operand
// signature.
type Mnemonic struct {
	Opcode uint32
	DType  Data
	Name   string
	Ops    []OpKind
}

// DecodedInstruction is one fetched, fully decoded instruction.
type DecodedInstruction struct {
	Opcode   uint32
	Mnemonic *Mnemonic
	Bytes    uint32
	Operands [4]Operand
	NumOps   int
	PC       uint32
}
