package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/insts"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{PC: 0x100}
		branchUnit = emu.NewBranchUnit(regFile)
	})

	Describe("JAL", func() {
		It("should link and jump forward", func() {
			branchUnit.JAL(1, 16)
			Expect(regFile.ReadRegU(1)).To(Equal(uint32(0x104)))
			Expect(regFile.PC).To(Equal(uint32(0x110)))
		})

		It("should jump backward", func() {
			branchUnit.JAL(0, -0x20)
			Expect(regFile.PC).To(Equal(uint32(0xE0)))
			Expect(regFile.ReadReg(0)).To(Equal(int32(0)))
		})
	})

	Describe("JALR", func() {
		It("should clear bit 0 of the target", func() {
			regFile.WriteReg(5, 0x201)
			branchUnit.JALR(1, 5, 2)
			Expect(regFile.PC).To(Equal(uint32(0x202)))
			Expect(regFile.ReadRegU(1)).To(Equal(uint32(0x104)))
		})

		It("should read rs1 before writing rd", func() {
			regFile.WriteReg(1, 0x400)
			branchUnit.JALR(1, 1, 0)
			Expect(regFile.PC).To(Equal(uint32(0x400)))
			Expect(regFile.ReadRegU(1)).To(Equal(uint32(0x104)))
		})
	})

	Describe("Branch", func() {
		It("should go to PC + offset when taken", func() {
			Expect(branchUnit.Branch(insts.OpBEQ, 1, 2, 8)).To(BeTrue())
			Expect(regFile.PC).To(Equal(uint32(0x108)))
		})

		It("should fall through to PC + 4 when not taken", func() {
			regFile.WriteReg(1, 1)
			Expect(branchUnit.Branch(insts.OpBEQ, 1, 2, 8)).To(BeFalse())
			Expect(regFile.PC).To(Equal(uint32(0x104)))
		})
	})

	DescribeTable("CheckCondition",
		func(op insts.Op, x, y int32, expected bool) {
			Expect(branchUnit.CheckCondition(op, x, y)).To(Equal(expected))
		},
		Entry("beq equal", insts.OpBEQ, int32(3), int32(3), true),
		Entry("bne equal", insts.OpBNE, int32(3), int32(3), false),
		Entry("blt signed", insts.OpBLT, int32(-1), int32(0), true),
		Entry("bge signed", insts.OpBGE, int32(-1), int32(0), false),
		Entry("bltu unsigned", insts.OpBLTU, int32(-1), int32(0), false),
		Entry("bgeu unsigned", insts.OpBGEU, int32(-1), int32(0), true),
		Entry("non-branch", insts.OpADD, int32(0), int32(0), false),
	)
})
