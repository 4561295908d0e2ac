package benchmarks

import (
	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/insts"
)

// Scratch addresses used by the memory benchmarks.
const (
	srcBase = 0x1000
	dstBase = 0x2000
)

// GetMicrobenchmarks returns the standard set of microbenchmarks. Each
// benchmark targets one part of the execution core.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		memorySequential(),
		functionCalls(),
		branchTaken(),
		countedLoop(),
		byteCopy(),
		fibonacci(),
	}
}

// GetCoreBenchmarks returns a minimal set of core benchmarks for quick
// validation: a loop, memory traffic and branch-heavy code.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countedLoop(),
		byteCopy(),
		branchTaken(),
	}
}

// 1. Arithmetic Sequential - independent ALU operations
func arithmeticSequential() Benchmark {
	words := make([]uint32, 0, 21)
	for i := 0; i < 4; i++ {
		for rd := uint8(10); rd < 15; rd++ {
			words = append(words, insts.ADDI(rd, rd, 1))
		}
	}
	words = append(words, insts.JAL(0, 0))

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 independent ADDIs across 5 registers",
		Program:     insts.Program(words...),
		Expected:    4,
	}
}

// 2. Dependency Chain - every instruction reads the previous result
func dependencyChain() Benchmark {
	words := make([]uint32, 0, 21)
	for i := 0; i < 20; i++ {
		words = append(words, insts.ADDI(10, 10, 1))
	}
	words = append(words, insts.JAL(0, 0))

	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent ADDIs (x10 = x10 + 1)",
		Program:     insts.Program(words...),
		Expected:    20,
	}
}

// 3. Memory Sequential - word stores followed by loads
func memorySequential() Benchmark {
	return Benchmark{
		Name:        "memory_sequential",
		Description: "4 SWs then 4 LWs to consecutive words, summed",
		Setup: func(regFile *emu.RegFile, _ emu.Memory) error {
			regFile.WriteReg(2, srcBase)
			return nil
		},
		Program: insts.Program(
			insts.ADDI(6, 0, 1), insts.SW(6, 2, 0),
			insts.ADDI(6, 0, 2), insts.SW(6, 2, 4),
			insts.ADDI(6, 0, 3), insts.SW(6, 2, 8),
			insts.ADDI(6, 0, 4), insts.SW(6, 2, 12),
			insts.LW(7, 2, 0), insts.ADD(10, 10, 7),
			insts.LW(7, 2, 4), insts.ADD(10, 10, 7),
			insts.LW(7, 2, 8), insts.ADD(10, 10, 7),
			insts.LW(7, 2, 12), insts.ADD(10, 10, 7),
			insts.JAL(0, 0),
		),
		Expected: 10,
	}
}

// 4. Function Calls - JAL/JALR pairs
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "5 calls to a leaf function (JAL + JALR)",
		Program: insts.Program(
			insts.JAL(1, 24), // call add_one
			insts.JAL(1, 20),
			insts.JAL(1, 16),
			insts.JAL(1, 12),
			insts.JAL(1, 8),
			insts.JAL(0, 0),

			// add_one
			insts.ADDI(10, 10, 1),
			insts.JALR(0, 1, 0),
		),
		Expected: 5,
	}
}

// 5. Branch Taken - unconditional jumps over dead code
func branchTaken() Benchmark {
	words := make([]uint32, 0, 16)
	for i := 0; i < 5; i++ {
		words = append(words,
			insts.JAL(0, 8),        // skip next
			insts.ADDI(11, 11, 99), // skipped
			insts.ADDI(10, 10, 1),
		)
	}
	words = append(words, insts.JAL(0, 0))

	return Benchmark{
		Name:        "branch_taken",
		Description: "5 forward jumps over skipped instructions",
		Program:     insts.Program(words...),
		Expected:    5,
	}
}

// 6. Counted Loop - for i := 0; i < 10; i++ { sum += i }
func countedLoop() Benchmark {
	return Benchmark{
		Name:        "counted_loop",
		Description: "10-iteration loop closed by BLT",
		Program: insts.Program(
			insts.ADDI(11, 0, 0),  // i
			insts.ADDI(12, 0, 10), // bound
			insts.ADD(10, 10, 11), // loop: sum += i
			insts.ADDI(11, 11, 1),
			insts.BLT(11, 12, -8),
			insts.JAL(0, 0),
		),
		Expected: 45,
	}
}

// 7. Byte Copy - LBU/SB loop over 16 bytes, summing as it goes
func byteCopy() Benchmark {
	return Benchmark{
		Name:        "byte_copy",
		Description: "copy 16 bytes with LBU/SB and sum them",
		Setup: func(regFile *emu.RegFile, memory emu.Memory) error {
			for i := uint32(0); i < 16; i++ {
				if err := memory.Write8(srcBase+i, uint8(i+1)); err != nil {
					return err
				}
			}
			regFile.WriteReg(2, srcBase)
			regFile.WriteReg(3, dstBase)
			return nil
		},
		Program: insts.Program(
			insts.ADDI(4, 0, 16), // count
			insts.LBU(5, 2, 0),   // loop
			insts.SB(5, 3, 0),
			insts.ADD(10, 10, 5),
			insts.ADDI(2, 2, 1),
			insts.ADDI(3, 3, 1),
			insts.ADDI(4, 4, -1),
			insts.BNE(4, 0, -24),
			insts.JAL(0, 0),
		),
		Expected: 136,
	}
}

// 8. Fibonacci - iterative fib(20)
func fibonacci() Benchmark {
	return Benchmark{
		Name:        "fibonacci",
		Description: "iterative fib(20) with register moves",
		Program: insts.Program(
			insts.ADDI(11, 0, 0),  // a
			insts.ADDI(12, 0, 1),  // b
			insts.ADDI(13, 0, 20), // n
			insts.ADD(14, 11, 12), // loop
			insts.ADDI(11, 12, 0),
			insts.ADDI(12, 14, 0),
			insts.ADDI(13, 13, -1),
			insts.BNE(13, 0, -16),
			insts.ADDI(10, 11, 0),
			insts.JAL(0, 0),
		),
		Expected: 6765,
	}
}
