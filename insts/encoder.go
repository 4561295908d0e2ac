package insts

// EncodeR builds an R-type instruction word.
func EncodeR(opcode, funct3, funct7, rd, rs1, rs2 uint8) uint32 {
	return uint32(opcode&0x7F) |
		uint32(rd&0x1F)<<7 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(rs2&0x1F)<<20 |
		uint32(funct7&0x7F)<<25
}

// EncodeI builds an I-type instruction word. Only the low 12 bits of imm
// are encoded.
func EncodeI(opcode, funct3, rd, rs1 uint8, imm int32) uint32 {
	return uint32(opcode&0x7F) |
		uint32(rd&0x1F)<<7 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1F)<<15 |
		(uint32(imm)&0xFFF)<<20
}

// EncodeS builds an S-type instruction word.
func EncodeS(opcode, funct3, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm)
	return uint32(opcode&0x7F) |
		(u&0x1F)<<7 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(rs2&0x1F)<<20 |
		((u>>5)&0x7F)<<25
}

// EncodeB builds a B-type instruction word. Bit 0 of imm is dropped.
func EncodeB(opcode, funct3, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm)
	return uint32(opcode&0x7F) |
		((u>>11)&0x1)<<7 |
		((u>>1)&0xF)<<8 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(rs2&0x1F)<<20 |
		((u>>5)&0x3F)<<25 |
		((u>>12)&0x1)<<31
}

// EncodeU builds a U-type instruction word. imm is the full upper-aligned
// value; its low 12 bits are dropped.
func EncodeU(opcode, rd uint8, imm int32) uint32 {
	return uint32(opcode&0x7F) |
		uint32(rd&0x1F)<<7 |
		uint32(imm)&0xFFFFF000
}

// EncodeJ builds a J-type instruction word. Bit 0 of imm is dropped.
func EncodeJ(opcode, rd uint8, imm int32) uint32 {
	u := uint32(imm)
	return uint32(opcode&0x7F) |
		uint32(rd&0x1F)<<7 |
		((u>>12)&0xFF)<<12 |
		((u>>11)&0x1)<<20 |
		((u>>1)&0x3FF)<<21 |
		((u>>20)&0x1)<<31
}
