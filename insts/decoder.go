// Package insts provides RV32I instruction definitions and decoding.
package insts

// Major opcodes (bits [6:0]).
const (
	OpcodeLoad    uint8 = 0x03
	OpcodeMiscMem uint8 = 0x0F
	OpcodeOpImm   uint8 = 0x13
	OpcodeAUIPC   uint8 = 0x17
	OpcodeStore   uint8 = 0x23
	OpcodeOp      uint8 = 0x33
	OpcodeLUI     uint8 = 0x37
	OpcodeBranch  uint8 = 0x63
	OpcodeJALR    uint8 = 0x67
	OpcodeJAL     uint8 = 0x6F
	OpcodeSystem  uint8 = 0x73
)

// Op represents an RV32I operation.
type Op uint8

// RV32I operations.
const (
	OpUnknown Op = iota
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpSB
	OpSH
	OpSW
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpFENCE
	OpECALL
	OpEBREAK
	OpSYSTEM // any other SYSTEM encoding (CSR access, WFI, ...)
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // register-register
	FormatI              // 12-bit immediate
	FormatS              // store
	FormatB              // conditional branch
	FormatU              // upper immediate
	FormatJ              // jump
)

// Class identifies the major opcode group an instruction belongs to. The
// emulator dispatches on it.
type Class uint8

// Opcode classes.
const (
	ClassUnknown Class = iota
	ClassLUI
	ClassAUIPC
	ClassJAL
	ClassJALR
	ClassBranch
	ClassLoad
	ClassStore
	ClassOpImm
	ClassOp
	ClassMiscMem
	ClassSystem
)

// funct7 values accepted for register-register and shift-immediate forms.
const (
	funct7Base uint8 = 0x00
	funct7Alt  uint8 = 0x20 // SUB, SRA, SRAI
)

// Instruction represents a decoded RV32I instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format
	Class  Class  // Major opcode group

	Raw    uint32 // Original instruction word
	Opcode uint8  // bits [6:0]
	Funct3 uint8  // bits [14:12]
	Funct7 uint8  // bits [31:25]

	Rd  uint8 // Destination register, bits [11:7]
	Rs1 uint8 // First source register, bits [19:15]
	Rs2 uint8 // Second source register, bits [24:20]

	// Imm is the sign-extended immediate of the instruction's format. For
	// shift-immediate operations it holds the 5-bit shift amount.
	Imm int32
}

// Decoder decodes RV32I machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word. Words that do not map to
// an RV32I operation decode with Op == OpUnknown; Class and Format are
// still filled in when the major opcode is recognized.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Op:     OpUnknown,
		Raw:    word,
		Opcode: uint8(word & 0x7F),
		Funct3: uint8((word >> 12) & 0x07),
		Funct7: uint8((word >> 25) & 0x7F),
		Rd:     uint8((word >> 7) & 0x1F),
		Rs1:    uint8((word >> 15) & 0x1F),
		Rs2:    uint8((word >> 20) & 0x1F),
	}

	switch inst.Opcode {
	case OpcodeLUI:
		d.decodeUpper(inst, ClassLUI, OpLUI)
	case OpcodeAUIPC:
		d.decodeUpper(inst, ClassAUIPC, OpAUIPC)
	case OpcodeJAL:
		inst.Class = ClassJAL
		inst.Format = FormatJ
		inst.Imm = ImmJ(word)
		inst.Op = OpJAL
	case OpcodeJALR:
		inst.Class = ClassJALR
		inst.Format = FormatI
		inst.Imm = ImmI(word)
		if inst.Funct3 == 0 {
			inst.Op = OpJALR
		}
	case OpcodeBranch:
		d.decodeBranch(inst)
	case OpcodeLoad:
		d.decodeLoad(inst)
	case OpcodeStore:
		d.decodeStore(inst)
	case OpcodeOpImm:
		d.decodeOpImm(inst)
	case OpcodeOp:
		d.decodeOp(inst)
	case OpcodeMiscMem:
		inst.Class = ClassMiscMem
		inst.Format = FormatI
		inst.Imm = ImmI(word)
		inst.Op = OpFENCE
	case OpcodeSystem:
		d.decodeSystem(inst)
	}

	return inst
}

func (d *Decoder) decodeUpper(inst *Instruction, class Class, op Op) {
	inst.Class = class
	inst.Format = FormatU
	inst.Imm = ImmU(inst.Raw)
	inst.Op = op
}

var branchOps = [8]Op{
	0: OpBEQ,
	1: OpBNE,
	4: OpBLT,
	5: OpBGE,
	6: OpBLTU,
	7: OpBGEU,
}

func (d *Decoder) decodeBranch(inst *Instruction) {
	inst.Class = ClassBranch
	inst.Format = FormatB
	inst.Imm = ImmB(inst.Raw)
	inst.Op = branchOps[inst.Funct3]
}

var loadOps = [8]Op{
	0: OpLB,
	1: OpLH,
	2: OpLW,
	4: OpLBU,
	5: OpLHU,
}

func (d *Decoder) decodeLoad(inst *Instruction) {
	inst.Class = ClassLoad
	inst.Format = FormatI
	inst.Imm = ImmI(inst.Raw)
	inst.Op = loadOps[inst.Funct3]
}

var storeOps = [8]Op{
	0: OpSB,
	1: OpSH,
	2: OpSW,
}

func (d *Decoder) decodeStore(inst *Instruction) {
	inst.Class = ClassStore
	inst.Format = FormatS
	inst.Imm = ImmS(inst.Raw)
	inst.Op = storeOps[inst.Funct3]
}

var opImmOps = [8]Op{
	0: OpADDI,
	2: OpSLTI,
	3: OpSLTIU,
	4: OpXORI,
	6: OpORI,
	7: OpANDI,
}

// decodeOpImm decodes register-immediate ALU operations. Shifts carry the
// shift amount in bits [24:20] and select SRAI with bit 30.
func (d *Decoder) decodeOpImm(inst *Instruction) {
	inst.Class = ClassOpImm
	inst.Format = FormatI
	inst.Imm = ImmI(inst.Raw)

	switch inst.Funct3 {
	case 1:
		if inst.Funct7 == funct7Base {
			inst.Op = OpSLLI
		}
		inst.Imm = int32(inst.Rs2)
	case 5:
		switch inst.Funct7 {
		case funct7Base:
			inst.Op = OpSRLI
		case funct7Alt:
			inst.Op = OpSRAI
		}
		inst.Imm = int32(inst.Rs2)
	default:
		inst.Op = opImmOps[inst.Funct3]
	}
}

var (
	opBaseOps = [8]Op{OpADD, OpSLL, OpSLT, OpSLTU, OpXOR, OpSRL, OpOR, OpAND}
	opAltOps  = [8]Op{0: OpSUB, 5: OpSRA}
)

// decodeOp decodes register-register ALU operations. Only funct7 0x00 and
// 0x20 belong to RV32I; everything else (e.g. the M extension) is unknown.
func (d *Decoder) decodeOp(inst *Instruction) {
	inst.Class = ClassOp
	inst.Format = FormatR

	switch inst.Funct7 {
	case funct7Base:
		inst.Op = opBaseOps[inst.Funct3]
	case funct7Alt:
		inst.Op = opAltOps[inst.Funct3]
	}
}

// decodeSystem decodes ECALL, EBREAK and the remaining SYSTEM encodings.
func (d *Decoder) decodeSystem(inst *Instruction) {
	inst.Class = ClassSystem
	inst.Format = FormatI
	inst.Imm = ImmI(inst.Raw)
	inst.Op = OpSYSTEM

	if inst.Funct3 != 0 || inst.Rd != 0 || inst.Rs1 != 0 {
		return
	}

	switch inst.Imm {
	case 0:
		inst.Op = OpECALL
	case 1:
		inst.Op = OpEBREAK
	}
}
