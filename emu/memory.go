// Package emu provides functional RV32I emulation.
package emu

// ByteMemory is byte-addressable storage with a fixed capacity. It is the
// only capability a backing store has to provide; wider accesses are
// composed from it.
type ByteMemory interface {
	// Size returns the capacity in bytes.
	Size() uint32
	// Read8 returns the byte at addr.
	Read8(addr uint32) (uint8, error)
	// Write8 stores value at addr.
	Write8(addr uint32, value uint8) error
}

// Memory is the memory contract the emulator executes against. All
// multi-byte accesses are little-endian and need no alignment. Accesses
// at or beyond Size fail with an error wrapping ErrOutOfRange.
//
// A Memory is shared by reference between the host and any number of
// emulators. Implementations are not safe for concurrent use unless
// documented otherwise; wrap them in a SyncMemory to share between
// goroutines.
type Memory interface {
	ByteMemory

	Read16(addr uint32) (uint16, error)
	Read32(addr uint32) (uint32, error)
	Write16(addr uint32, value uint16) error
	Write32(addr uint32, value uint32) error
}

// wideAccess composes halfword and word accesses from a ByteMemory.
// Backings embed it to satisfy Memory.
type wideAccess struct {
	bytes ByteMemory
}

func (w wideAccess) check(op string, addr uint32, width uint32) error {
	size := w.bytes.Size()
	if uint64(addr)+uint64(width) > uint64(size) {
		return &AccessError{Op: op, Addr: addr, Width: width, Size: size}
	}
	return nil
}

// Read16 reads a little-endian halfword: lo | hi<<8.
func (w wideAccess) Read16(addr uint32) (uint16, error) {
	if err := w.check("read", addr, 2); err != nil {
		return 0, err
	}

	lo, err := w.bytes.Read8(addr)
	if err != nil {
		return 0, err
	}
	hi, err := w.bytes.Read8(addr + 1)
	if err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}

// Read32 reads a little-endian word: lo-half | hi-half<<16.
func (w wideAccess) Read32(addr uint32) (uint32, error) {
	if err := w.check("read", addr, 4); err != nil {
		return 0, err
	}

	lo, err := w.Read16(addr)
	if err != nil {
		return 0, err
	}
	hi, err := w.Read16(addr + 2)
	if err != nil {
		return 0, err
	}

	return uint32(hi)<<16 | uint32(lo), nil
}

// Write16 stores a halfword little-endian. Nothing is written unless the
// whole halfword is in range.
func (w wideAccess) Write16(addr uint32, value uint16) error {
	if err := w.check("write", addr, 2); err != nil {
		return err
	}

	if err := w.bytes.Write8(addr, uint8(value)); err != nil {
		return err
	}
	return w.bytes.Write8(addr+1, uint8(value>>8))
}

// Write32 stores a word little-endian. Nothing is written unless the whole
// word is in range.
func (w wideAccess) Write32(addr uint32, value uint32) error {
	if err := w.check("write", addr, 4); err != nil {
		return err
	}

	if err := w.Write16(addr, uint16(value)); err != nil {
		return err
	}
	return w.Write16(addr+2, uint16(value>>16))
}
