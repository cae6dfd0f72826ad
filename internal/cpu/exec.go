package cpu

// execute dispatches a decoded instruction and returns the PC
// increment to apply (replacing, not adding to, pcIncrement for
// branches/calls/returns that redirect control flow).
func (c *CPU) execute(bus Bus, instr *DecodedInstruction, pcIncrement int32) (int32, error) {
	if pc, ok, err := c.execData(bus, instr, pcIncrement); ok {
		return pc, err
	}
	if pc, ok, err := c.execArith(bus, instr, pcIncrement); ok {
		return pc, err
	}
	if pc, ok, err := c.execLogic(bus, instr, pcIncrement); ok {
		return pc, err
	}
	if pc, ok, err := c.execBranch(bus, instr, pcIncrement); ok {
		return pc, err
	}
	if pc, ok, err := c.execSystem(bus, instr, pcIncrement); ok {
		return pc, err
	}
	return pcIncrement, &Error{Kind: ExcIllegalOpcode}
}

// branchOffset sign-extends a branch/call literal operand's raw byte
// or half-word encoding (§4.7's branch family).
func branchOffset(op *Operand) int32 {
	if op.DataType == DHalf {
		return int32(int16(op.Embedded))
	}
	return int32(int8(op.Embedded))
}
