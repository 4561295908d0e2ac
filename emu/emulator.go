// Package emu provides functional RV32I emulation.
package emu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rvsim/insts"
)

// UnknownPolicy selects what Step does with instructions it does not
// recognize.
type UnknownPolicy uint8

const (
	// UnknownIgnore executes unrecognized instructions as no-ops that
	// advance the PC by 4.
	UnknownIgnore UnknownPolicy = iota
	// UnknownReport makes Step fail with ErrUnknownInstruction and leaves
	// the machine state unchanged.
	UnknownReport
)

// Stats holds execution counters.
type Stats struct {
	// Instructions is the number of instructions executed.
	Instructions uint64
	// Branches is the number of conditional branches executed.
	Branches uint64
	// BranchesTaken is the number of conditional branches taken.
	BranchesTaken uint64
	// Jumps is the number of JAL and JALR instructions executed.
	Jumps uint64
	// Loads is the number of loads executed.
	Loads uint64
	// Stores is the number of stores executed.
	Stores uint64
	// Ignored is the number of unrecognized instructions skipped.
	Ignored uint64
}

// Emulator executes RV32I instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  Memory
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	logger *logrus.Logger

	unknownPolicy   UnknownPolicy
	maxInstructions uint64 // 0 means no limit

	stats Stats
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithEntryPoint sets the initial program counter.
func WithEntryPoint(pc uint32) EmulatorOption {
	return func(e *Emulator) {
		e.regFile.PC = pc
	}
}

// WithZeroRegister sets the behavior of register x0.
func WithZeroRegister(policy ZeroRegisterPolicy) EmulatorOption {
	return func(e *Emulator) {
		e.regFile.ZeroPolicy = policy
	}
}

// WithUnknownPolicy sets how unrecognized instructions are handled.
func WithUnknownPolicy(policy UnknownPolicy) EmulatorOption {
	return func(e *Emulator) {
		e.unknownPolicy = policy
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithLogger sets the logger. Per-instruction traces are logged at debug
// level.
func WithLogger(logger *logrus.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// NewEmulator creates a new RV32I emulator executing against memory. The
// memory is shared, not copied: the host may keep using it.
func NewEmulator(memory Memory, opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}

	e := &Emulator{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logrus.New()
		e.logger.SetOutput(io.Discard)
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.branchUnit = NewBranchUnit(regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() Memory {
	return e.memory
}

// Stats returns the execution counters.
func (e *Emulator) Stats() Stats {
	return e.stats
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.stats.Instructions
}

// Reset clears the registers and counters and sets the PC. Memory is left
// alone.
func (e *Emulator) Reset(pc uint32) {
	e.regFile.Reset(pc)
	e.stats = Stats{}
}

// Step executes a single instruction. On error the registers, the PC and
// memory are unchanged.
func (e *Emulator) Step() error {
	if e.maxInstructions > 0 && e.stats.Instructions >= e.maxInstructions {
		return ErrMaxInstructions
	}

	pc := e.regFile.PC

	// 1. Fetch
	word, err := e.memory.Read32(pc)
	if err != nil {
		return &StepError{PC: pc, Err: fmt.Errorf("fetch: %w", err)}
	}

	// 2. Decode
	inst := e.decoder.Decode(word)

	if e.logger.IsLevelEnabled(logrus.DebugLevel) {
		e.logger.WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("0x%08X", pc),
			"word": fmt.Sprintf("0x%08X", word),
			"inst": inst.String(),
		}).Debug("step")
	}

	// 3. Execute
	if err := e.execute(inst); err != nil {
		return &StepError{PC: pc, Word: word, Err: err}
	}

	e.stats.Instructions++

	return nil
}

// execute dispatches a decoded instruction by opcode class.
func (e *Emulator) execute(inst *insts.Instruction) error {
	if inst.Op == insts.OpUnknown {
		return e.executeUnknown(inst)
	}

	switch inst.Class {
	case insts.ClassLUI:
		e.alu.LUI(inst.Rd, inst.Imm)
	case insts.ClassAUIPC:
		e.alu.AUIPC(inst.Rd, inst.Imm)
	case insts.ClassJAL:
		e.branchUnit.JAL(inst.Rd, inst.Imm)
		e.stats.Jumps++
		return nil // PC already updated
	case insts.ClassJALR:
		e.branchUnit.JALR(inst.Rd, inst.Rs1, inst.Imm)
		e.stats.Jumps++
		return nil // PC already updated
	case insts.ClassBranch:
		if e.branchUnit.Branch(inst.Op, inst.Rs1, inst.Rs2, inst.Imm) {
			e.stats.BranchesTaken++
		}
		e.stats.Branches++
		return nil // PC already updated
	case insts.ClassLoad:
		if err := e.lsu.Load(inst.Op, inst.Rd, inst.Rs1, inst.Imm); err != nil {
			return err
		}
		e.stats.Loads++
	case insts.ClassStore:
		if err := e.lsu.Store(inst.Op, inst.Rs1, inst.Rs2, inst.Imm); err != nil {
			return err
		}
		e.stats.Stores++
	case insts.ClassOpImm:
		if !e.alu.OpImm(inst.Op, inst.Rd, inst.Rs1, inst.Imm) {
			return e.executeUnknown(inst)
		}
	case insts.ClassOp:
		if !e.alu.OpReg(inst.Op, inst.Rd, inst.Rs1, inst.Rs2) {
			return e.executeUnknown(inst)
		}
	case insts.ClassMiscMem, insts.ClassSystem:
		// No memory ordering or trap delivery is modeled.
	default:
		return e.executeUnknown(inst)
	}

	// Advance PC by 4 (for non-branch instructions)
	e.regFile.PC += 4

	return nil
}

// executeUnknown applies the unknown-instruction policy.
func (e *Emulator) executeUnknown(inst *insts.Instruction) error {
	if e.unknownPolicy == UnknownReport {
		return ErrUnknownInstruction
	}

	e.logger.WithFields(logrus.Fields{
		"pc":   fmt.Sprintf("0x%08X", e.regFile.PC),
		"word": fmt.Sprintf("0x%08X", inst.Raw),
	}).Warn("ignoring unrecognized instruction")

	e.stats.Ignored++
	e.regFile.PC += 4

	return nil
}

// StopReason tells why Run returned.
type StopReason uint8

const (
	// StopError means Step failed; Run returns the error.
	StopError StopReason = iota
	// StopSelfLoop means an instruction jumped to itself, the usual way
	// bare-metal RV32I programs halt.
	StopSelfLoop
	// StopMaxInstructions means the instruction limit was reached.
	StopMaxInstructions
	// StopCanceled means the context was canceled.
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopError:
		return "error"
	case StopSelfLoop:
		return "self-loop"
	case StopMaxInstructions:
		return "max-instructions"
	case StopCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("StopReason(%d)", uint8(r))
	}
}

// RunResult summarizes a Run.
type RunResult struct {
	Reason StopReason
	// Steps is the number of instructions executed by this Run.
	Steps uint64
	// PC is the program counter when Run returned.
	PC uint32
}

// ctxCheckInterval is how many steps Run executes between context checks.
const ctxCheckInterval = 1024

// Run executes instructions until an instruction jumps to itself, the
// instruction limit is reached, the context is canceled or Step fails.
func (e *Emulator) Run(ctx context.Context) (RunResult, error) {
	var steps uint64

	for {
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return e.stop(StopCanceled, steps), err
			}
		}

		pc := e.regFile.PC
		err := e.Step()
		if errors.Is(err, ErrMaxInstructions) {
			return e.stop(StopMaxInstructions, steps), nil
		}
		if err != nil {
			return e.stop(StopError, steps), err
		}
		steps++

		if e.regFile.PC == pc {
			return e.stop(StopSelfLoop, steps), nil
		}
	}
}

func (e *Emulator) stop(reason StopReason, steps uint64) RunResult {
	result := RunResult{Reason: reason, Steps: steps, PC: e.regFile.PC}

	e.logger.WithFields(logrus.Fields{
		"reason": reason.String(),
		"steps":  steps,
		"pc":     fmt.Sprintf("0x%08X", result.PC),
	}).Info("run stopped")

	return result
}
