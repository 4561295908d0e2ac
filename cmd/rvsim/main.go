// Package main provides the rvsim command-line emulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/emu"
	"github.com/sarchlab/rvsim/loader"
	"github.com/sarchlab/rvsim/script"
	"github.com/sarchlab/rvsim/translate"
)

var (
	configPath = flag.String("config", "", "Path to machine configuration JSON file")
	raw        = flag.Bool("raw", false, "Treat the program as a raw binary image instead of ELF")
	base       = flag.Uint("base", 0, "Load address of a raw binary image")
	memSize    = flag.Uint("mem", 0, "Memory size in bytes (overrides config)")
	maxInsts   = flag.Uint64("max", 0, "Maximum instructions to execute (overrides config)")
	scriptPath = flag.String("script", "", "Starlark script that drives the emulator")
	strict     = flag.Bool("strict", false, "Fail on unknown instructions instead of skipping them")
	writableX0 = flag.Bool("writable-x0", false, "Treat x0 as an ordinary register")
	verbose    = flag.Bool("v", false, "Verbose output (trace every instruction)")
	quiet      = flag.Bool("q", false, "Only log errors")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rvsim [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg, os.Stderr)

	loadAddr, err := flagUint32("base", *base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	prog, err := loadProgram(flag.Arg(0), *raw, loadAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"program":  flag.Arg(0),
		"entry":    fmt.Sprintf("0x%08X", prog.EntryPoint),
		"segments": len(prog.Segments),
	}).Info("loaded")

	e, err := newEmulator(cfg, prog, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating machine: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reason, runErr := execute(ctx, e, *scriptPath, os.Stdout)

	printReport(translate.Printer(), os.Stdout, e, reason)

	if runErr != nil {
		fmt.Fprint(os.Stderr, translate.From(translate.MsgError, runErr))
		stop()
		os.Exit(1)
	}
}

// buildConfig loads the machine configuration and applies flag overrides.
func buildConfig() (*config.Machine, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return nil, err
		}
	}

	if *memSize != 0 {
		size, err := flagUint32("mem", *memSize)
		if err != nil {
			return nil, err
		}
		cfg.MemorySize = size
	}
	if *maxInsts != 0 {
		cfg.MaxInstructions = *maxInsts
	}
	if *strict {
		cfg.UnknownInstructions = config.UnknownReport
	}
	if *writableX0 {
		cfg.ZeroRegister = config.ZeroWritable
	}
	if *verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	if *quiet {
		cfg.LogLevel = logrus.ErrorLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// flagUint32 narrows an unsigned flag value to the 32-bit address space.
func flagUint32(name string, v uint) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("-%s %d does not fit in 32 bits", name, v)
	}
	return uint32(v), nil
}

func newLogger(cfg *config.Machine, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(cfg.Level())
	return logger
}

func loadProgram(path string, isRaw bool, base uint32) (*loader.Program, error) {
	if isRaw {
		return loader.LoadRaw(path, base)
	}
	return loader.Load(path)
}

// newEmulator places the program in a fresh memory and creates an
// emulator for it.
func newEmulator(
	cfg *config.Machine,
	prog *loader.Program,
	logger *logrus.Logger,
) (*emu.Emulator, error) {
	if end := prog.End(); end > uint64(cfg.MemorySize) {
		return nil, fmt.Errorf("program ends at 0x%x, past memory of size 0x%x",
			end, cfg.MemorySize)
	}

	memory, err := cfg.NewMemory(prog.Image())
	if err != nil {
		return nil, err
	}

	opts := []emu.EmulatorOption{
		emu.WithEntryPoint(prog.EntryPoint),
		emu.WithLogger(logger),
	}
	opts = append(opts, cfg.Options()...)

	return emu.NewEmulator(memory, opts...), nil
}

// execute runs the emulator, or the script when one is given, and returns
// why execution stopped.
func execute(
	ctx context.Context,
	e *emu.Emulator,
	scriptFile string,
	out io.Writer,
) (string, error) {
	if scriptFile != "" {
		src, err := os.ReadFile(scriptFile)
		if err != nil {
			return emu.StopError.String(), fmt.Errorf("failed to read script: %w", err)
		}

		err = script.Run(ctx, e, scriptFile, string(src), out)
		if errors.Is(err, context.Canceled) {
			return emu.StopCanceled.String(), nil
		}
		if err != nil {
			return emu.StopError.String(), err
		}
		return "script", nil
	}

	result, err := e.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return result.Reason.String(), nil
	}

	return result.Reason.String(), err
}

// printReport writes the final machine state.
func printReport(p *message.Printer, w io.Writer, e *emu.Emulator, reason string) {
	stats := e.Stats()
	regFile := e.RegFile()

	_, _ = p.Fprintf(w, translate.MsgStopReason, reason)
	_, _ = p.Fprintf(w, translate.MsgPC, regFile.PC)
	_, _ = p.Fprintf(w, translate.MsgInstructions, stats.Instructions)
	_, _ = p.Fprintf(w, translate.MsgBranches, stats.Branches, stats.BranchesTaken)
	_, _ = p.Fprintf(w, translate.MsgMemoryOps, stats.Loads, stats.Stores)
	if stats.Ignored > 0 {
		_, _ = p.Fprintf(w, translate.MsgIgnored, stats.Ignored)
	}

	for i := 0; i < emu.NumRegisters; i++ {
		value := regFile.ReadReg(uint8(i))
		if value != 0 {
			_, _ = p.Fprintf(w, translate.MsgRegister, i, uint32(value), value)
		}
	}
}
