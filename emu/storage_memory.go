package emu

import (
	"fmt"

	akitamem "github.com/sarchlab/akita/v4/mem/mem"
)

// StorageMemory is a Memory backed by an Akita storage. Akita allocates
// its storage in units on first touch, so large, sparsely used address
// spaces stay cheap.
type StorageMemory struct {
	wideAccess
	storage *akitamem.Storage
	size    uint32
}

// NewStorageMemory creates a storage-backed memory of size bytes with
// image written at address 0. Image bytes past size are dropped.
func NewStorageMemory(size uint32, image []byte) (*StorageMemory, error) {
	m := &StorageMemory{
		storage: akitamem.NewStorage(uint64(size)),
		size:    size,
	}
	m.wideAccess = wideAccess{bytes: m}

	if uint64(len(image)) > uint64(size) {
		image = image[:size]
	}
	if len(image) > 0 {
		if err := m.storage.Write(0, image); err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	return m, nil
}

// Size returns the capacity in bytes.
func (m *StorageMemory) Size() uint32 {
	return m.size
}

// Read8 returns the byte at addr.
func (m *StorageMemory) Read8(addr uint32) (uint8, error) {
	if addr >= m.size {
		return 0, &AccessError{Op: "read", Addr: addr, Width: 1, Size: m.size}
	}

	data, err := m.storage.Read(uint64(addr), 1)
	if err != nil {
		return 0, fmt.Errorf("storage read at 0x%08X: %w", addr, err)
	}

	return data[0], nil
}

// Write8 stores value at addr.
func (m *StorageMemory) Write8(addr uint32, value uint8) error {
	if addr >= m.size {
		return &AccessError{Op: "write", Addr: addr, Width: 1, Size: m.size}
	}

	if err := m.storage.Write(uint64(addr), []byte{value}); err != nil {
		return fmt.Errorf("storage write at 0x%08X: %w", addr, err)
	}

	return nil
}
