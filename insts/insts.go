// Package insts provides RV32I instruction definitions and decoding.
//
// This package implements decoding of RISC-V RV32I machine code into
// structured instruction representations. It supports:
//   - Upper immediates: LUI, AUIPC
//   - Jumps: JAL, JALR
//   - Conditional branches: BEQ, BNE, BLT, BGE, BLTU, BGEU
//   - Loads and stores: LB, LH, LW, LBU, LHU, SB, SH, SW
//   - Integer register-immediate and register-register operations
//   - FENCE and SYSTEM encodings (decoded, executed as no-ops)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x02A08093) // addi x1, x1, 42
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Imm: %d\n", inst.Op, inst.Rd, inst.Rs1, inst.Imm)
//
// The Encode* functions and the assembler helpers in asm.go build
// instruction words, which is how tests and scripts produce programs.
package insts
