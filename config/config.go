// Package config provides the JSON machine configuration for rvsim.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rvsim/emu"
)

// Memory backings.
const (
	BackingFlat    = "flat"
	BackingStorage = "storage"
)

// Zero register behaviors.
const (
	ZeroHardwired = "hardwired"
	ZeroWritable  = "writable"
)

// Unknown instruction policies.
const (
	UnknownIgnore = "ignore"
	UnknownReport = "report"
)

// DefaultMemorySize is the default memory capacity (1 MiB).
const DefaultMemorySize = 1 << 20

// Machine describes the emulated machine.
type Machine struct {
	// MemorySize is the memory capacity in bytes. Default: 1 MiB.
	MemorySize uint32 `json:"memory_size"`

	// MemoryBacking selects the memory implementation, "flat" or
	// "storage". Default: "flat".
	MemoryBacking string `json:"memory_backing"`

	// EntryPoint overrides the program's entry point when set.
	EntryPoint *uint32 `json:"entry_point,omitempty"`

	// MaxInstructions limits execution. 0 means no limit.
	MaxInstructions uint64 `json:"max_instructions"`

	// ZeroRegister is "hardwired" or "writable". Default: "hardwired".
	ZeroRegister string `json:"zero_register"`

	// UnknownInstructions is "ignore" or "report". Default: "ignore".
	UnknownInstructions string `json:"unknown_instructions"`

	// LogLevel is a logrus level name. Default: "warning".
	LogLevel string `json:"log_level"`
}

// Default returns a Machine with default values.
func Default() *Machine {
	return &Machine{
		MemorySize:          DefaultMemorySize,
		MemoryBacking:       BackingFlat,
		ZeroRegister:        ZeroHardwired,
		UnknownInstructions: UnknownIgnore,
		LogLevel:            logrus.WarnLevel.String(),
	}
}

// Load loads a Machine from a JSON file. Fields missing from the file keep
// their default values.
func Load(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	return config, nil
}

// Save writes the Machine to a JSON file.
func (c *Machine) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize machine config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write machine config file: %w", err)
	}

	return nil
}

// Validate checks that all values are valid.
func (c *Machine) Validate() error {
	if c.MemorySize == 0 {
		return fmt.Errorf("memory_size must be > 0")
	}
	if c.MemoryBacking != BackingFlat && c.MemoryBacking != BackingStorage {
		return fmt.Errorf("memory_backing must be %q or %q, got %q",
			BackingFlat, BackingStorage, c.MemoryBacking)
	}
	if c.ZeroRegister != ZeroHardwired && c.ZeroRegister != ZeroWritable {
		return fmt.Errorf("zero_register must be %q or %q, got %q",
			ZeroHardwired, ZeroWritable, c.ZeroRegister)
	}
	if c.UnknownInstructions != UnknownIgnore && c.UnknownInstructions != UnknownReport {
		return fmt.Errorf("unknown_instructions must be %q or %q, got %q",
			UnknownIgnore, UnknownReport, c.UnknownInstructions)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.EntryPoint != nil && *c.EntryPoint >= c.MemorySize {
		return fmt.Errorf("entry_point 0x%x is outside memory of size 0x%x",
			*c.EntryPoint, c.MemorySize)
	}
	return nil
}

// Clone returns a deep copy of the Machine.
func (c *Machine) Clone() *Machine {
	clone := *c
	if c.EntryPoint != nil {
		entry := *c.EntryPoint
		clone.EntryPoint = &entry
	}
	return &clone
}

// Level returns the configured log level, falling back to warning.
func (c *Machine) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// Options converts the configuration into emulator options. The entry
// point option is included only when the configuration overrides it.
func (c *Machine) Options() []emu.EmulatorOption {
	opts := []emu.EmulatorOption{
		emu.WithMaxInstructions(c.MaxInstructions),
	}

	if c.ZeroRegister == ZeroWritable {
		opts = append(opts, emu.WithZeroRegister(emu.ZeroWritable))
	}

	if c.UnknownInstructions == UnknownReport {
		opts = append(opts, emu.WithUnknownPolicy(emu.UnknownReport))
	}

	if c.EntryPoint != nil {
		opts = append(opts, emu.WithEntryPoint(*c.EntryPoint))
	}

	return opts
}

// NewMemory builds the configured memory backing holding image at
// address 0.
func (c *Machine) NewMemory(image []byte) (emu.Memory, error) {
	if uint64(len(image)) > uint64(c.MemorySize) {
		return nil, fmt.Errorf("image of %d bytes does not fit in memory of %d bytes",
			len(image), c.MemorySize)
	}

	switch c.MemoryBacking {
	case BackingFlat:
		return emu.NewFlatMemory(c.MemorySize, image), nil
	case BackingStorage:
		memory, err := emu.NewStorageMemory(c.MemorySize, image)
		if err != nil {
			return nil, err
		}
		return memory, nil
	default:
		return nil, fmt.Errorf("unknown memory backing %q", c.MemoryBacking)
	}
}
