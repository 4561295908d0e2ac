package emu

// FlatMemory is a Memory backed by one contiguous byte slice.
type FlatMemory struct {
	wideAccess
	data []byte
}

// NewFlatMemory creates a memory of exactly size bytes holding image at
// address 0. Bytes past the image are zero; image bytes past size are
// dropped.
func NewFlatMemory(size uint32, image []byte) *FlatMemory {
	m := &FlatMemory{data: make([]byte, size)}
	copy(m.data, image)
	m.wideAccess = wideAccess{bytes: m}
	return m
}

// Size returns the capacity in bytes.
func (m *FlatMemory) Size() uint32 {
	return uint32(len(m.data))
}

// Read8 returns the byte at addr.
func (m *FlatMemory) Read8(addr uint32) (uint8, error) {
	if uint64(addr) >= uint64(len(m.data)) {
		return 0, &AccessError{Op: "read", Addr: addr, Width: 1, Size: m.Size()}
	}
	return m.data[addr], nil
}

// Write8 stores value at addr.
func (m *FlatMemory) Write8(addr uint32, value uint8) error {
	if uint64(addr) >= uint64(len(m.data)) {
		return &AccessError{Op: "write", Addr: addr, Width: 1, Size: m.Size()}
	}
	m.data[addr] = value
	return nil
}

// Bytes returns a copy of the memory contents.
func (m *FlatMemory) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
