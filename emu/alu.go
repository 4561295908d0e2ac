// Package emu provides functional RV32I emulation.
package emu

import "github.com/sarchlab/rvsim/insts"

// ALU implements RV32I arithmetic and logic operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// Compute applies a register-register or register-immediate operation to
// two operands. Shift amounts use the low 5 bits of b. The second result
// is false for operations the ALU does not implement.
func Compute(op insts.Op, a, b int32) (int32, bool) {
	shamt := uint32(b) & 0x1F

	switch op {
	case insts.OpADD, insts.OpADDI:
		return a + b, true
	case insts.OpSUB:
		return a - b, true
	case insts.OpSLL, insts.OpSLLI:
		return int32(uint32(a) << shamt), true
	case insts.OpSLT, insts.OpSLTI:
		return boolToInt32(a < b), true
	case insts.OpSLTU, insts.OpSLTIU:
		return boolToInt32(uint32(a) < uint32(b)), true
	case insts.OpXOR, insts.OpXORI:
		return a ^ b, true
	case insts.OpSRL, insts.OpSRLI:
		return int32(uint32(a) >> shamt), true
	case insts.OpSRA, insts.OpSRAI:
		return a >> shamt, true
	case insts.OpOR, insts.OpORI:
		return a | b, true
	case insts.OpAND, insts.OpANDI:
		return a & b, true
	default:
		return 0, false
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// OpImm executes a register-immediate operation: rd = rs1 op imm.
func (a *ALU) OpImm(op insts.Op, rd, rs1 uint8, imm int32) bool {
	result, ok := Compute(op, a.regFile.ReadReg(rs1), imm)
	if !ok {
		return false
	}
	a.regFile.WriteReg(rd, result)
	return true
}

// OpReg executes a register-register operation: rd = rs1 op rs2.
func (a *ALU) OpReg(op insts.Op, rd, rs1, rs2 uint8) bool {
	result, ok := Compute(op, a.regFile.ReadReg(rs1), a.regFile.ReadReg(rs2))
	if !ok {
		return false
	}
	a.regFile.WriteReg(rd, result)
	return true
}

// LUI loads an upper immediate: rd = imm.
func (a *ALU) LUI(rd uint8, imm int32) {
	a.regFile.WriteReg(rd, imm)
}

// AUIPC adds an upper immediate to the address of the current
// instruction: rd = PC + imm.
func (a *ALU) AUIPC(rd uint8, imm int32) {
	a.regFile.WriteRegU(rd, a.regFile.PC+uint32(imm))
}
