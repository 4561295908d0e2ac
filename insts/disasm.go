package insts

import "fmt"

var opNames = [...]string{
	OpUnknown: "unknown",
	OpLUI:     "lui",
	OpAUIPC:   "auipc",
	OpJAL:     "jal",
	OpJALR:    "jalr",
	OpBEQ:     "beq",
	OpBNE:     "bne",
	OpBLT:     "blt",
	OpBGE:     "bge",
	OpBLTU:    "bltu",
	OpBGEU:    "bgeu",
	OpLB:      "lb",
	OpLH:      "lh",
	OpLW:      "lw",
	OpLBU:     "lbu",
	OpLHU:     "lhu",
	OpSB:      "sb",
	OpSH:      "sh",
	OpSW:      "sw",
	OpADDI:    "addi",
	OpSLTI:    "slti",
	OpSLTIU:   "sltiu",
	OpXORI:    "xori",
	OpORI:     "ori",
	OpANDI:    "andi",
	OpSLLI:    "slli",
	OpSRLI:    "srli",
	OpSRAI:    "srai",
	OpADD:     "add",
	OpSUB:     "sub",
	OpSLL:     "sll",
	OpSLT:     "slt",
	OpSLTU:    "sltu",
	OpXOR:     "xor",
	OpSRL:     "srl",
	OpSRA:     "sra",
	OpOR:      "or",
	OpAND:     "and",
	OpFENCE:   "fence",
	OpECALL:   "ecall",
	OpEBREAK:  "ebreak",
	OpSYSTEM:  "system",
}

// String returns the assembly mnemonic of the operation.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// String disassembles the instruction using x0-x31 register names.
func (i *Instruction) String() string {
	m := i.Op.String()

	switch i.Op {
	case OpUnknown:
		return fmt.Sprintf(".word 0x%08x", i.Raw)
	case OpLUI, OpAUIPC:
		return fmt.Sprintf("%s x%d, 0x%x", m, i.Rd, uint32(i.Imm)>>12)
	case OpJAL:
		return fmt.Sprintf("%s x%d, %d", m, i.Rd, i.Imm)
	case OpJALR:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, i.Rd, i.Imm, i.Rs1)
	case OpFENCE, OpECALL, OpEBREAK:
		return m
	case OpSYSTEM:
		return fmt.Sprintf("%s 0x%08x", m, i.Raw)
	}

	switch i.Class {
	case ClassBranch:
		return fmt.Sprintf("%s x%d, x%d, %d", m, i.Rs1, i.Rs2, i.Imm)
	case ClassLoad:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, i.Rd, i.Imm, i.Rs1)
	case ClassStore:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, i.Rs2, i.Imm, i.Rs1)
	case ClassOpImm:
		return fmt.Sprintf("%s x%d, x%d, %d", m, i.Rd, i.Rs1, i.Imm)
	default:
		return fmt.Sprintf("%s x%d, x%d, x%d", m, i.Rd, i.Rs1, i.Rs2)
	}
}
