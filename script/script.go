// Package script drives an emulator from Starlark scripts.
//
// A script sees the machine through these builtins:
//
//	step(n=1)             execute n instructions
//	run(limit=0)          run until the program halts; returns the stop reason
//	count()               instructions executed so far
//	pc() / set_pc(v)      read or write the program counter
//	reg(i) / set_reg(i, v) read or write register xi
//	read8/16/32(addr)     read memory
//	write8/16/32(addr, v) write memory
//
// Register and memory values are unsigned 32-bit integers. Negative values
// passed to the setters are stored in two's complement.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/sarchlab/rvsim/emu"
)

// StopLimit is the reason run reports when its step limit is reached.
const StopLimit = "limit"

// ctxCheckInterval is how many steps a builtin executes between context
// checks.
const ctxCheckInterval = 1024

type host struct {
	ctx context.Context
	e   *emu.Emulator
}

// Run executes src against e. Output of print goes to out. Canceling ctx
// interrupts the script and the builtins stepping the machine; the returned
// error then wraps ctx.Err().
func Run(
	ctx context.Context,
	e *emu.Emulator,
	name string,
	src string,
	out io.Writer,
) error {
	h := &host{ctx: ctx, e: e}

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			_, _ = fmt.Fprintln(out, msg)
		},
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	opts := syntax.FileOptions{}
	_, err := starlark.ExecFileOptions(&opts, thread, name, src, h.builtins())
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("script %s: %w", name, ctxErr)
	}
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}

	return nil
}

// checkCanceled reports the context error every ctxCheckInterval steps.
func (h *host) checkCanceled(steps int) error {
	if steps%ctxCheckInterval != 0 {
		return nil
	}
	return h.ctx.Err()
}

func (h *host) builtins() starlark.StringDict {
	return starlark.StringDict{
		"step":    starlark.NewBuiltin("step", h.step),
		"run":     starlark.NewBuiltin("run", h.run),
		"count":   starlark.NewBuiltin("count", h.count),
		"pc":      starlark.NewBuiltin("pc", h.pc),
		"set_pc":  starlark.NewBuiltin("set_pc", h.setPC),
		"reg":     starlark.NewBuiltin("reg", h.reg),
		"set_reg": starlark.NewBuiltin("set_reg", h.setReg),
		"read8":   starlark.NewBuiltin("read8", h.read(1)),
		"read16":  starlark.NewBuiltin("read16", h.read(2)),
		"read32":  starlark.NewBuiltin("read32", h.read(4)),
		"write8":  starlark.NewBuiltin("write8", h.write(1)),
		"write16": starlark.NewBuiltin("write16", h.write(2)),
		"write32": starlark.NewBuiltin("write32", h.write(4)),
	}
}

// toWord converts a Starlark integer to a 32-bit word.
func toWord(fn string, v starlark.Int) (uint32, error) {
	i, ok := v.Int64()
	if !ok || i < math.MinInt32 || i > math.MaxUint32 {
		return 0, fmt.Errorf("%s: %v does not fit in 32 bits", fn, v)
	}
	return uint32(i), nil
}

func (h *host) step(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		if err := h.checkCanceled(i); err != nil {
			return nil, err
		}
		if err := h.e.Step(); err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

func (h *host) run(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	limit := 0
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "limit?", &limit); err != nil {
		return nil, err
	}

	if limit <= 0 {
		result, err := h.e.Run(h.ctx)
		if err != nil {
			return nil, err
		}
		return starlark.String(result.Reason.String()), nil
	}

	for i := 0; i < limit; i++ {
		if err := h.checkCanceled(i); err != nil {
			return nil, err
		}

		pc := h.e.RegFile().PC
		err := h.e.Step()
		if errors.Is(err, emu.ErrMaxInstructions) {
			return starlark.String(emu.StopMaxInstructions.String()), nil
		}
		if err != nil {
			return nil, err
		}
		if h.e.RegFile().PC == pc {
			return starlark.String(emu.StopSelfLoop.String()), nil
		}
	}

	return starlark.String(StopLimit), nil
}

func (h *host) count(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return starlark.MakeUint64(h.e.InstructionCount()), nil
}

func (h *host) pc(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return starlark.MakeUint64(uint64(h.e.RegFile().PC)), nil
}

func (h *host) setPC(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var v starlark.Int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "v", &v); err != nil {
		return nil, err
	}

	pc, err := toWord(b.Name(), v)
	if err != nil {
		return nil, err
	}
	h.e.RegFile().PC = pc

	return starlark.None, nil
}

func (h *host) regIndex(fn string, i int) (uint8, error) {
	if i < 0 || i >= emu.NumRegisters {
		return 0, fmt.Errorf("%s: register x%d does not exist", fn, i)
	}
	return uint8(i), nil
}

func (h *host) reg(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var i int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "i", &i); err != nil {
		return nil, err
	}

	r, err := h.regIndex(b.Name(), i)
	if err != nil {
		return nil, err
	}

	return starlark.MakeUint64(uint64(h.e.RegFile().ReadRegU(r))), nil
}

func (h *host) setReg(
	_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var (
		i int
		v starlark.Int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "i", &i, "v", &v); err != nil {
		return nil, err
	}

	r, err := h.regIndex(b.Name(), i)
	if err != nil {
		return nil, err
	}
	value, err := toWord(b.Name(), v)
	if err != nil {
		return nil, err
	}
	h.e.RegFile().WriteRegU(r, value)

	return starlark.None, nil
}

func (h *host) read(width int) builtinFunc {
	return func(
		_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var a starlark.Int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &a); err != nil {
			return nil, err
		}

		addr, err := toWord(b.Name(), a)
		if err != nil {
			return nil, err
		}

		memory := h.e.Memory()
		var value uint32

		switch width {
		case 1:
			var v uint8
			v, err = memory.Read8(addr)
			value = uint32(v)
		case 2:
			var v uint16
			v, err = memory.Read16(addr)
			value = uint32(v)
		default:
			value, err = memory.Read32(addr)
		}
		if err != nil {
			return nil, err
		}

		return starlark.MakeUint64(uint64(value)), nil
	}
}

func (h *host) write(width int) builtinFunc {
	return func(
		_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		var a, v starlark.Int
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &a, "v", &v); err != nil {
			return nil, err
		}

		addr, err := toWord(b.Name(), a)
		if err != nil {
			return nil, err
		}
		value, err := toWord(b.Name(), v)
		if err != nil {
			return nil, err
		}

		memory := h.e.Memory()
		switch width {
		case 1:
			err = memory.Write8(addr, uint8(value))
		case 2:
			err = memory.Write16(addr, uint16(value))
		default:
			err = memory.Write32(addr, value)
		}
		if err != nil {
			return nil, err
		}

		return starlark.None, nil
	}
}

type builtinFunc = func(
	*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple,
) (starlark.Value, error)
