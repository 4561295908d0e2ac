// Package emu provides functional RV32I emulation.
package emu

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 32

// ZeroRegisterPolicy selects how register x0 behaves.
type ZeroRegisterPolicy uint8

const (
	// ZeroHardwired makes x0 read as zero and discards writes to it.
	ZeroHardwired ZeroRegisterPolicy = iota
	// ZeroWritable treats x0 as an ordinary general-purpose register.
	ZeroWritable
)

// RegFile represents the RV32I machine state.
type RegFile struct {
	// X holds general-purpose registers x0-x31.
	X [NumRegisters]int32

	// PC is the address of the next instruction to fetch.
	PC uint32

	// ZeroPolicy selects the behavior of x0.
	ZeroPolicy ZeroRegisterPolicy
}

// ReadReg reads a register value. Only the low 5 bits of reg are used.
func (r *RegFile) ReadReg(reg uint8) int32 {
	reg &= 0x1F
	if reg == 0 && r.ZeroPolicy == ZeroHardwired {
		return 0
	}
	return r.X[reg]
}

// ReadRegU reads a register value as unsigned.
func (r *RegFile) ReadRegU(reg uint8) uint32 {
	return uint32(r.ReadReg(reg))
}

// WriteReg writes a register value. Writes to a hardwired x0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value int32) {
	reg &= 0x1F
	if reg == 0 && r.ZeroPolicy == ZeroHardwired {
		return
	}
	r.X[reg] = value
}

// WriteRegU writes an unsigned value to a register.
func (r *RegFile) WriteRegU(reg uint8, value uint32) {
	r.WriteReg(reg, int32(value))
}

// Reset clears all registers and sets the PC. The zero register policy is
// kept.
func (r *RegFile) Reset(pc uint32) {
	r.X = [NumRegisters]int32{}
	r.PC = pc
}
