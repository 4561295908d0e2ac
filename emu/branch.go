// Package emu provides functional RV32I emulation.
package emu

import "github.com/sarchlab/rvsim/insts"

// BranchUnit implements RV32I jumps and conditional branches. Every
// method leaves PC pointing at the next instruction to execute.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JAL jumps to PC + offset and saves the return address PC + 4 in rd.
func (b *BranchUnit) JAL(rd uint8, offset int32) {
	pc := b.regFile.PC
	b.regFile.WriteRegU(rd, pc+4)
	b.regFile.PC = pc + uint32(offset)
}

// JALR jumps to (rs1 + offset) with bit 0 cleared and saves the return
// address PC + 4 in rd.
func (b *BranchUnit) JALR(rd, rs1 uint8, offset int32) {
	// Read the target first in case rd == rs1
	target := (b.regFile.ReadRegU(rs1) + uint32(offset)) &^ 1

	b.regFile.WriteRegU(rd, b.regFile.PC+4)
	b.regFile.PC = target
}

// Branch compares rs1 and rs2 and branches to PC + offset when the
// condition holds, otherwise falls through to PC + 4. It reports whether
// the branch was taken.
func (b *BranchUnit) Branch(op insts.Op, rs1, rs2 uint8, offset int32) bool {
	taken := b.CheckCondition(op, b.regFile.ReadReg(rs1), b.regFile.ReadReg(rs2))

	if taken {
		b.regFile.PC += uint32(offset)
	} else {
		b.regFile.PC += 4
	}

	return taken
}

// CheckCondition evaluates a branch condition on two register values.
// Operations that are not branches evaluate to false.
func (b *BranchUnit) CheckCondition(op insts.Op, x, y int32) bool {
	switch op {
	case insts.OpBEQ:
		return x == y
	case insts.OpBNE:
		return x != y
	case insts.OpBLT:
		return x < y
	case insts.OpBGE:
		return x >= y
	case insts.OpBLTU:
		return uint32(x) < uint32(y)
	case insts.OpBGEU:
		return uint32(x) >= uint32(y)
	default:
		return false
	}
}
