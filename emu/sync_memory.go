package emu

import "sync"

// SyncMemory serializes access to a shared Memory so that emulators on
// different goroutines can use it. Each call is atomic; sequences of
// calls are not.
type SyncMemory struct {
	mu    sync.Mutex
	inner Memory
}

// NewSyncMemory wraps inner.
func NewSyncMemory(inner Memory) *SyncMemory {
	return &SyncMemory{inner: inner}
}

// Size returns the capacity of the wrapped memory.
func (m *SyncMemory) Size() uint32 {
	return m.inner.Size()
}

func (m *SyncMemory) Read8(addr uint32) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Read8(addr)
}

func (m *SyncMemory) Read16(addr uint32) (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Read16(addr)
}

func (m *SyncMemory) Read32(addr uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Read32(addr)
}

func (m *SyncMemory) Write8(addr uint32, value uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Write8(addr, value)
}

func (m *SyncMemory) Write16(addr uint32, value uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Write16(addr, value)
}

func (m *SyncMemory) Write32(addr uint32, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Write32(addr, value)
}
