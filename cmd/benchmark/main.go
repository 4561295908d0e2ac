// Command benchmark runs the RVSim microbenchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv      Output results in CSV format (default: human-readable)
//	-json     Output results in JSON format
//	-core     Run only the core benchmarks
//	-config   Path to machine configuration JSON file
//	-storage  Use storage-backed memory instead of a flat buffer
//
// Example:
//
//	# Compare memory backings
//	go run ./cmd/benchmark -csv > flat.csv
//	go run ./cmd/benchmark -csv -storage > storage.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rvsim/benchmarks"
	"github.com/sarchlab/rvsim/config"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	configPath := flag.String("config", "", "Path to machine configuration JSON file")
	storage := flag.Bool("storage", false, "Use storage-backed memory")
	flag.Parse()

	machine := config.Default()
	if *configPath != "" {
		var err error
		machine, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *storage {
		machine.MemoryBacking = config.BackingStorage
	}
	if err := machine.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	cfg := benchmarks.DefaultConfig()
	cfg.Machine = machine
	cfg.Output = os.Stdout

	harness := benchmarks.NewHarness(cfg)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	results := harness.RunAll(context.Background())

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		fmt.Println("RVSim Benchmark Harness")
		fmt.Println("=======================")
		fmt.Printf("Memory: %s, %d bytes\n", machine.MemoryBacking, machine.MemorySize)
		fmt.Println("")
		harness.PrintResults(results)
	}

	for _, r := range results {
		if !r.Passed {
			os.Exit(1)
		}
	}
}
