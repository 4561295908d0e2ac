package emu

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for any memory access at or beyond the
	// memory's capacity.
	ErrOutOfRange = errors.New("memory access out of range")

	// ErrUnknownInstruction is returned by Step for unrecognized
	// instructions when the emulator reports them.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrMaxInstructions is returned by Step once the configured
	// instruction limit has been reached.
	ErrMaxInstructions = errors.New("max instructions reached")
)

// AccessError describes a failed memory access.
type AccessError struct {
	Op    string // "read" or "write"
	Addr  uint32
	Width uint32 // bytes
	Size  uint32 // memory capacity
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s of %d byte(s) at 0x%08X beyond capacity 0x%X",
		e.Op, e.Width, e.Addr, e.Size)
}

// Unwrap returns ErrOutOfRange.
func (e *AccessError) Unwrap() error {
	return ErrOutOfRange
}

// StepError is returned by Step when an instruction cannot be executed.
// The machine state is unchanged when a StepError is returned.
type StepError struct {
	PC   uint32
	Word uint32 // zero when the fetch itself failed
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("PC=0x%08X word=0x%08X: %v", e.PC, e.Word, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
