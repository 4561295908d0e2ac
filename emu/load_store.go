// Package emu provides functional RV32I emulation.
package emu

import "github.com/sarchlab/rvsim/insts"

// LoadStoreUnit implements RV32I load and store operations. A failed
// memory access leaves the register file untouched.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// EffectiveAddress returns rs1 + offset, wrapping at 32 bits.
func (lsu *LoadStoreUnit) EffectiveAddress(rs1 uint8, offset int32) uint32 {
	return lsu.regFile.ReadRegU(rs1) + uint32(offset)
}

// Load executes a load operation: rd = mem[rs1 + offset].
func (lsu *LoadStoreUnit) Load(op insts.Op, rd, rs1 uint8, offset int32) error {
	addr := lsu.EffectiveAddress(rs1, offset)

	switch op {
	case insts.OpLB:
		return lsu.LB(rd, addr)
	case insts.OpLH:
		return lsu.LH(rd, addr)
	case insts.OpLW:
		return lsu.LW(rd, addr)
	case insts.OpLBU:
		return lsu.LBU(rd, addr)
	case insts.OpLHU:
		return lsu.LHU(rd, addr)
	default:
		return ErrUnknownInstruction
	}
}

// Store executes a store operation: mem[rs1 + offset] = rs2.
func (lsu *LoadStoreUnit) Store(op insts.Op, rs1, rs2 uint8, offset int32) error {
	addr := lsu.EffectiveAddress(rs1, offset)

	switch op {
	case insts.OpSB:
		return lsu.SB(rs2, addr)
	case insts.OpSH:
		return lsu.SH(rs2, addr)
	case insts.OpSW:
		return lsu.SW(rs2, addr)
	default:
		return ErrUnknownInstruction
	}
}

// LB loads a byte with sign extension.
func (lsu *LoadStoreUnit) LB(rd uint8, addr uint32) error {
	value, err := lsu.memory.Read8(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, int32(int8(value)))
	return nil
}

// LH loads a halfword with sign extension.
func (lsu *LoadStoreUnit) LH(rd uint8, addr uint32) error {
	value, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, int32(int16(value)))
	return nil
}

// LW loads a word.
func (lsu *LoadStoreUnit) LW(rd uint8, addr uint32) error {
	value, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteRegU(rd, value)
	return nil
}

// LBU loads a byte with zero extension.
func (lsu *LoadStoreUnit) LBU(rd uint8, addr uint32) error {
	value, err := lsu.memory.Read8(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteRegU(rd, uint32(value))
	return nil
}

// LHU loads a halfword with zero extension.
func (lsu *LoadStoreUnit) LHU(rd uint8, addr uint32) error {
	value, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteRegU(rd, uint32(value))
	return nil
}

// SB stores the low byte of rs2.
func (lsu *LoadStoreUnit) SB(rs2 uint8, addr uint32) error {
	return lsu.memory.Write8(addr, uint8(lsu.regFile.ReadRegU(rs2)))
}

// SH stores the low halfword of rs2.
func (lsu *LoadStoreUnit) SH(rs2 uint8, addr uint32) error {
	return lsu.memory.Write16(addr, uint16(lsu.regFile.ReadRegU(rs2)))
}

// SW stores rs2.
func (lsu *LoadStoreUnit) SW(rs2 uint8, addr uint32) error {
	return lsu.memory.Write32(addr, lsu.regFile.ReadRegU(rs2))
}
