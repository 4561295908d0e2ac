package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Field extraction", func() {
		// add x3, x1, x2 with funct7 = 0x20 -> sub
		It("should extract opcode, funct3, funct7 and registers", func() {
			inst := decoder.Decode(0x402081B3)

			Expect(inst.Raw).To(Equal(uint32(0x402081B3)))
			Expect(inst.Opcode).To(Equal(insts.OpcodeOp))
			Expect(inst.Funct3).To(Equal(uint8(0)))
			Expect(inst.Funct7).To(Equal(uint8(0x20)))
			Expect(inst.Rd).To(Equal(uint8(3)))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))
		})
	})

	Describe("Upper immediates", func() {
		// lui x5, 0x12345 -> 0x123452B7
		It("should decode LUI", func() {
			inst := decoder.Decode(0x123452B7)

			Expect(inst.Op).To(Equal(insts.OpLUI))
			Expect(inst.Class).To(Equal(insts.ClassLUI))
			Expect(inst.Format).To(Equal(insts.FormatU))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(0x12345000)))
		})

		// auipc x10, 0x2 -> 0x00002517
		It("should decode AUIPC", func() {
			inst := decoder.Decode(0x00002517)

			Expect(inst.Op).To(Equal(insts.OpAUIPC))
			Expect(inst.Rd).To(Equal(uint8(10)))
			Expect(inst.Imm).To(Equal(int32(0x2000)))
		})
	})

	Describe("Jumps", func() {
		// jal x1, 16 -> 0x010000EF
		It("should decode JAL with a forward offset", func() {
			inst := decoder.Decode(0x010000EF)

			Expect(inst.Op).To(Equal(insts.OpJAL))
			Expect(inst.Format).To(Equal(insts.FormatJ))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(16)))
		})

		// jal x0, -4 -> 0xFFDFF06F
		It("should decode JAL with a backward offset", func() {
			inst := decoder.Decode(0xFFDFF06F)

			Expect(inst.Op).To(Equal(insts.OpJAL))
			Expect(inst.Rd).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(-4)))
		})

		It("should decode JALR", func() {
			inst := decoder.Decode(insts.JALR(1, 5, -12))

			Expect(inst.Op).To(Equal(insts.OpJALR))
			Expect(inst.Class).To(Equal(insts.ClassJALR))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(-12)))
		})

		It("should not accept JALR with a non-zero funct3", func() {
			inst := decoder.Decode(insts.JALR(1, 5, 0) | 1<<12)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Class).To(Equal(insts.ClassJALR))
		})
	})

	Describe("Branches", func() {
		// beq x1, x2, 8 -> 0x00208463
		It("should decode BEQ", func() {
			inst := decoder.Decode(0x00208463)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Format).To(Equal(insts.FormatB))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// bne x1, x0, -8 -> 0xFE009CE3
		It("should decode BNE with a negative offset", func() {
			inst := decoder.Decode(0xFE009CE3)

			Expect(inst.Op).To(Equal(insts.OpBNE))
			Expect(inst.Imm).To(Equal(int32(-8)))
		})

		DescribeTable("branch conditions by funct3",
			func(word uint32, op insts.Op) {
				Expect(decoder.Decode(word).Op).To(Equal(op))
			},
			Entry("blt", insts.BLT(1, 2, 4), insts.OpBLT),
			Entry("bge", insts.BGE(1, 2, 4), insts.OpBGE),
			Entry("bltu", insts.BLTU(1, 2, 4), insts.OpBLTU),
			Entry("bgeu", insts.BGEU(1, 2, 4), insts.OpBGEU),
			Entry("funct3 2 is unknown", insts.EncodeB(insts.OpcodeBranch, 2, 1, 2, 4), insts.OpUnknown),
			Entry("funct3 3 is unknown", insts.EncodeB(insts.OpcodeBranch, 3, 1, 2, 4), insts.OpUnknown),
		)
	})

	Describe("Loads and stores", func() {
		// lw x5, 8(x2) -> 0x00812283
		It("should decode LW", func() {
			inst := decoder.Decode(0x00812283)

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Class).To(Equal(insts.ClassLoad))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// sw x5, 12(x2) -> 0x00512623
		It("should decode SW with the S-immediate", func() {
			inst := decoder.Decode(0x00512623)

			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Format).To(Equal(insts.FormatS))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(12)))
		})

		DescribeTable("load and store widths",
			func(word uint32, op insts.Op) {
				Expect(decoder.Decode(word).Op).To(Equal(op))
			},
			Entry("lb", insts.LB(1, 2, 0), insts.OpLB),
			Entry("lh", insts.LH(1, 2, 0), insts.OpLH),
			Entry("lbu", insts.LBU(1, 2, 0), insts.OpLBU),
			Entry("lhu", insts.LHU(1, 2, 0), insts.OpLHU),
			Entry("load funct3 3", insts.EncodeI(insts.OpcodeLoad, 3, 1, 2, 0), insts.OpUnknown),
			Entry("load funct3 6", insts.EncodeI(insts.OpcodeLoad, 6, 1, 2, 0), insts.OpUnknown),
			Entry("sb", insts.SB(1, 2, 0), insts.OpSB),
			Entry("sh", insts.SH(1, 2, 0), insts.OpSH),
			Entry("store funct3 3", insts.EncodeS(insts.OpcodeStore, 3, 1, 2, 0), insts.OpUnknown),
		)

		It("should decode negative store offsets", func() {
			inst := decoder.Decode(insts.SW(3, 4, -2048))

			Expect(inst.Imm).To(Equal(int32(-2048)))
		})
	})

	Describe("Register-immediate operations", func() {
		// addi x1, x1, 42 -> 0x02A08093
		It("should decode ADDI", func() {
			inst := decoder.Decode(0x02A08093)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Class).To(Equal(insts.ClassOpImm))
			Expect(inst.Imm).To(Equal(int32(42)))
		})

		// addi x1, x0, -1 -> 0xFFF00093
		It("should sign-extend the I-immediate", func() {
			inst := decoder.Decode(0xFFF00093)

			Expect(inst.Imm).To(Equal(int32(-1)))
		})

		// srai x1, x2, 3 -> 0x40315093
		It("should decode SRAI and keep only the shift amount", func() {
			inst := decoder.Decode(0x40315093)

			Expect(inst.Op).To(Equal(insts.OpSRAI))
			Expect(inst.Imm).To(Equal(int32(3)))
		})

		DescribeTable("operations by funct3",
			func(word uint32, op insts.Op) {
				Expect(decoder.Decode(word).Op).To(Equal(op))
			},
			Entry("slti", insts.SLTI(1, 2, 3), insts.OpSLTI),
			Entry("sltiu", insts.SLTIU(1, 2, 3), insts.OpSLTIU),
			Entry("xori", insts.XORI(1, 2, 3), insts.OpXORI),
			Entry("ori", insts.ORI(1, 2, 3), insts.OpORI),
			Entry("andi", insts.ANDI(1, 2, 3), insts.OpANDI),
			Entry("slli", insts.SLLI(1, 2, 3), insts.OpSLLI),
			Entry("srli", insts.SRLI(1, 2, 3), insts.OpSRLI),
			Entry("slli with funct7 0x20", insts.EncodeR(insts.OpcodeOpImm, 1, 0x20, 1, 2, 3), insts.OpUnknown),
			Entry("srli with funct7 0x01", insts.EncodeR(insts.OpcodeOpImm, 5, 0x01, 1, 2, 3), insts.OpUnknown),
		)
	})

	Describe("Register-register operations", func() {
		DescribeTable("operations by funct3 and funct7",
			func(word uint32, op insts.Op) {
				inst := decoder.Decode(word)
				Expect(inst.Op).To(Equal(op))
				Expect(inst.Format).To(Equal(insts.FormatR))
			},
			Entry("add", insts.ADD(1, 2, 3), insts.OpADD),
			Entry("sub", insts.SUB(1, 2, 3), insts.OpSUB),
			Entry("sll", insts.SLL(1, 2, 3), insts.OpSLL),
			Entry("slt", insts.SLT(1, 2, 3), insts.OpSLT),
			Entry("sltu", insts.SLTU(1, 2, 3), insts.OpSLTU),
			Entry("xor", insts.XOR(1, 2, 3), insts.OpXOR),
			Entry("srl", insts.SRL(1, 2, 3), insts.OpSRL),
			Entry("sra", insts.SRA(1, 2, 3), insts.OpSRA),
			Entry("or", insts.OR(1, 2, 3), insts.OpOR),
			Entry("and", insts.AND(1, 2, 3), insts.OpAND),
			// mul x1, x2, x3 belongs to the M extension
			Entry("mul is unknown", uint32(0x023100B3), insts.OpUnknown),
			Entry("funct7 0x20 with funct3 1", insts.EncodeR(insts.OpcodeOp, 1, 0x20, 1, 2, 3), insts.OpUnknown),
		)
	})

	Describe("Fence and system", func() {
		It("should decode FENCE", func() {
			inst := decoder.Decode(insts.FENCE())

			Expect(inst.Op).To(Equal(insts.OpFENCE))
			Expect(inst.Class).To(Equal(insts.ClassMiscMem))
		})

		It("should decode ECALL and EBREAK", func() {
			Expect(decoder.Decode(0x00000073).Op).To(Equal(insts.OpECALL))
			Expect(decoder.Decode(0x00100073).Op).To(Equal(insts.OpEBREAK))
		})

		// csrrs x1, mstatus, x0 -> 0x300020F3
		It("should decode other SYSTEM encodings as a generic system op", func() {
			inst := decoder.Decode(0x300020F3)

			Expect(inst.Op).To(Equal(insts.OpSYSTEM))
			Expect(inst.Class).To(Equal(insts.ClassSystem))
		})
	})

	Describe("Unknown opcodes", func() {
		It("should decode an all-zero word as unknown", func() {
			inst := decoder.Decode(0x00000000)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Class).To(Equal(insts.ClassUnknown))
			Expect(inst.Format).To(Equal(insts.FormatUnknown))
		})

		It("should decode an unused major opcode as unknown", func() {
			// 0x7B is reserved in RV32I
			inst := decoder.Decode(0x0000007B)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Class).To(Equal(insts.ClassUnknown))
		})
	})
})
