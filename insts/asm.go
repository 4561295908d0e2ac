package insts

// Assembler helpers. Each returns the encoded instruction word for one
// RV32I instruction, with operands in assembly order.

func LUI(rd uint8, imm int32) uint32   { return EncodeU(OpcodeLUI, rd, imm) }
func AUIPC(rd uint8, imm int32) uint32 { return EncodeU(OpcodeAUIPC, rd, imm) }

func JAL(rd uint8, offset int32) uint32 { return EncodeJ(OpcodeJAL, rd, offset) }
func JALR(rd, rs1 uint8, offset int32) uint32 {
	return EncodeI(OpcodeJALR, 0, rd, rs1, offset)
}

func BEQ(rs1, rs2 uint8, offset int32) uint32  { return EncodeB(OpcodeBranch, 0, rs1, rs2, offset) }
func BNE(rs1, rs2 uint8, offset int32) uint32  { return EncodeB(OpcodeBranch, 1, rs1, rs2, offset) }
func BLT(rs1, rs2 uint8, offset int32) uint32  { return EncodeB(OpcodeBranch, 4, rs1, rs2, offset) }
func BGE(rs1, rs2 uint8, offset int32) uint32  { return EncodeB(OpcodeBranch, 5, rs1, rs2, offset) }
func BLTU(rs1, rs2 uint8, offset int32) uint32 { return EncodeB(OpcodeBranch, 6, rs1, rs2, offset) }
func BGEU(rs1, rs2 uint8, offset int32) uint32 { return EncodeB(OpcodeBranch, 7, rs1, rs2, offset) }

func LB(rd, rs1 uint8, offset int32) uint32  { return EncodeI(OpcodeLoad, 0, rd, rs1, offset) }
func LH(rd, rs1 uint8, offset int32) uint32  { return EncodeI(OpcodeLoad, 1, rd, rs1, offset) }
func LW(rd, rs1 uint8, offset int32) uint32  { return EncodeI(OpcodeLoad, 2, rd, rs1, offset) }
func LBU(rd, rs1 uint8, offset int32) uint32 { return EncodeI(OpcodeLoad, 4, rd, rs1, offset) }
func LHU(rd, rs1 uint8, offset int32) uint32 { return EncodeI(OpcodeLoad, 5, rd, rs1, offset) }

// Stores take the value register first, as in "sw rs2, offset(rs1)".
func SB(rs2, rs1 uint8, offset int32) uint32 { return EncodeS(OpcodeStore, 0, rs1, rs2, offset) }
func SH(rs2, rs1 uint8, offset int32) uint32 { return EncodeS(OpcodeStore, 1, rs1, rs2, offset) }
func SW(rs2, rs1 uint8, offset int32) uint32 { return EncodeS(OpcodeStore, 2, rs1, rs2, offset) }

func ADDI(rd, rs1 uint8, imm int32) uint32  { return EncodeI(OpcodeOpImm, 0, rd, rs1, imm) }
func SLTI(rd, rs1 uint8, imm int32) uint32  { return EncodeI(OpcodeOpImm, 2, rd, rs1, imm) }
func SLTIU(rd, rs1 uint8, imm int32) uint32 { return EncodeI(OpcodeOpImm, 3, rd, rs1, imm) }
func XORI(rd, rs1 uint8, imm int32) uint32  { return EncodeI(OpcodeOpImm, 4, rd, rs1, imm) }
func ORI(rd, rs1 uint8, imm int32) uint32   { return EncodeI(OpcodeOpImm, 6, rd, rs1, imm) }
func ANDI(rd, rs1 uint8, imm int32) uint32  { return EncodeI(OpcodeOpImm, 7, rd, rs1, imm) }

func SLLI(rd, rs1, shamt uint8) uint32 {
	return EncodeR(OpcodeOpImm, 1, funct7Base, rd, rs1, shamt)
}
func SRLI(rd, rs1, shamt uint8) uint32 {
	return EncodeR(OpcodeOpImm, 5, funct7Base, rd, rs1, shamt)
}
func SRAI(rd, rs1, shamt uint8) uint32 {
	return EncodeR(OpcodeOpImm, 5, funct7Alt, rd, rs1, shamt)
}

func ADD(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 0, funct7Base, rd, rs1, rs2) }
func SUB(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 0, funct7Alt, rd, rs1, rs2) }
func SLL(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 1, funct7Base, rd, rs1, rs2) }
func SLT(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 2, funct7Base, rd, rs1, rs2) }
func SLTU(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeOp, 3, funct7Base, rd, rs1, rs2) }
func XOR(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 4, funct7Base, rd, rs1, rs2) }
func SRL(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 5, funct7Base, rd, rs1, rs2) }
func SRA(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 5, funct7Alt, rd, rs1, rs2) }
func OR(rd, rs1, rs2 uint8) uint32   { return EncodeR(OpcodeOp, 6, funct7Base, rd, rs1, rs2) }
func AND(rd, rs1, rs2 uint8) uint32  { return EncodeR(OpcodeOp, 7, funct7Base, rd, rs1, rs2) }

func FENCE() uint32  { return EncodeI(OpcodeMiscMem, 0, 0, 0, 0x0FF) }
func ECALL() uint32  { return EncodeI(OpcodeSystem, 0, 0, 0, 0) }
func EBREAK() uint32 { return EncodeI(OpcodeSystem, 0, 0, 0, 1) }

// NOP is the canonical no-op, addi x0, x0, 0.
func NOP() uint32 { return ADDI(0, 0, 0) }

// Program converts instruction words into a little-endian byte image.
func Program(words ...uint32) []byte {
	out := make([]byte, 0, 4*len(words))
	for _, w := range words {
		out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return out
}
