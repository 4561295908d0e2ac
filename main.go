// Package main provides the entry point for RVSim.
// RVSim is a functional RV32I instruction-set emulator.
//
// For the full CLI, use: go run ./cmd/rvsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("RVSim - RV32I Functional Emulator")
	fmt.Println("")
	fmt.Println("Usage: rvsim [options] <program>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config       Path to machine configuration JSON file")
	fmt.Println("  -raw          Treat the program as a raw binary image")
	fmt.Println("  -base         Load address of a raw binary image")
	fmt.Println("  -mem          Memory size in bytes")
	fmt.Println("  -max          Maximum instructions to execute")
	fmt.Println("  -script       Starlark script that drives the emulator")
	fmt.Println("  -strict       Fail on unknown instructions")
	fmt.Println("  -writable-x0  Treat x0 as an ordinary register")
	fmt.Println("  -v / -q       Verbose / quiet logging")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rvsim' for the full CLI.")
	fmt.Println("Run 'go run ./cmd/benchmark' for the microbenchmark harness.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rvsim' instead.")
	}
}
