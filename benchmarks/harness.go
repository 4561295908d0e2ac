// Package benchmarks provides RV32I microbenchmarks and a harness that
// runs them on the functional emulator.
package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rvsim/config"
	"github.com/sarchlab/rvsim/emu"
)

// ResultRegister holds each benchmark's result when it halts.
const ResultRegister = 10

// BenchmarkResult holds the results of a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Instructions is the number of instructions executed
	Instructions uint64 `json:"instructions"`

	// Branches and BranchesTaken count conditional branches
	Branches      uint64 `json:"branches"`
	BranchesTaken uint64 `json:"branches_taken"`

	// Loads and Stores count memory operations
	Loads  uint64 `json:"loads"`
	Stores uint64 `json:"stores"`

	// Value is the content of the result register at halt
	Value int32 `json:"value"`

	// Passed reports whether Value matched the expected result
	Passed bool `json:"passed"`

	// Error is set when the benchmark did not halt cleanly
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the benchmark
	WallTime time.Duration `json:"wall_time_ns"`
}

// MIPS returns millions of emulated instructions per second.
func (r BenchmarkResult) MIPS() float64 {
	if r.WallTime <= 0 {
		return 0
	}
	return float64(r.Instructions) / r.WallTime.Seconds() / 1e6
}

// Benchmark defines a single benchmark program. Programs are loaded at
// address 0 and halt by jumping to themselves.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the machine state before the run (optional)
	Setup func(regFile *emu.RegFile, memory emu.Memory) error

	// Program is the RV32I machine code to execute
	Program []byte

	// Expected is the expected value of the result register
	Expected int32
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Machine configures memory and emulator options for every run
	Machine *config.Machine

	// Output is where results are written
	Output io.Writer

	// Logger receives per-run log entries
	Logger *logrus.Logger
}

// DefaultConfig returns a HarnessConfig with the default machine.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Machine: config.Default(),
		Output:  os.Stdout,
	}
}

// Harness runs benchmarks and reports their results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Machine == nil {
		config.Machine = DefaultConfig().Machine
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
		config.Logger.SetOutput(io.Discard)
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll runs every benchmark in order.
func (h *Harness) RunAll(ctx context.Context) []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))
	for _, bench := range h.benchmarks {
		results = append(results, h.Run(ctx, bench))
	}
	return results
}

// Run runs a single benchmark on a fresh machine.
func (h *Harness) Run(ctx context.Context, bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	e, err := h.newEmulator(bench)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	runResult, err := e.Run(ctx)
	result.WallTime = time.Since(start)

	stats := e.Stats()
	result.Instructions = stats.Instructions
	result.Branches = stats.Branches
	result.BranchesTaken = stats.BranchesTaken
	result.Loads = stats.Loads
	result.Stores = stats.Stores
	result.Value = e.RegFile().ReadReg(ResultRegister)

	switch {
	case err != nil:
		result.Error = err.Error()
	case runResult.Reason != emu.StopSelfLoop:
		result.Error = fmt.Sprintf("stopped by %s", runResult.Reason)
	default:
		result.Passed = result.Value == bench.Expected
	}

	h.config.Logger.WithFields(logrus.Fields{
		"benchmark":    bench.Name,
		"instructions": result.Instructions,
		"passed":       result.Passed,
	}).Info("benchmark finished")

	return result
}

func (h *Harness) newEmulator(bench Benchmark) (*emu.Emulator, error) {
	memory, err := h.config.Machine.NewMemory(bench.Program)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", bench.Name, err)
	}

	opts := append([]emu.EmulatorOption{emu.WithLogger(h.config.Logger)},
		h.config.Machine.Options()...)
	e := emu.NewEmulator(memory, opts...)

	if bench.Setup != nil {
		if err := bench.Setup(e.RegFile(), memory); err != nil {
			return nil, fmt.Errorf("benchmark %s setup: %w", bench.Name, err)
		}
	}

	return e, nil
}

// PrintResults writes human-readable results.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== RVSim Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Result: %d (passed: %v)\n", r.Value, r.Passed)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions:   %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  Branches:       %d (%d taken)\n", r.Branches, r.BranchesTaken)
		_, _ = fmt.Fprintf(h.config.Output, "  Loads/Stores:   %d/%d\n", r.Loads, r.Stores)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v (%.2f MIPS)\n", r.WallTime, r.MIPS())
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV writes results as CSV.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,branches,branches_taken,loads,stores,value,passed,wall_time_ns")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%d,%d,%d,%v,%d\n",
			r.Name,
			r.Instructions,
			r.Branches,
			r.BranchesTaken,
			r.Loads,
			r.Stores,
			r.Value,
			r.Passed,
			r.WallTime.Nanoseconds(),
		)
	}
}

// PrintJSON writes results as indented JSON.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
