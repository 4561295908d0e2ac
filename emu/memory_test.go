package emu_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/emu"
)

func newStorageMemory(size uint32, image []byte) emu.Memory {
	m, err := emu.NewStorageMemory(size, image)
	Expect(err).NotTo(HaveOccurred())
	return m
}

func newFlatMemory(size uint32, image []byte) emu.Memory {
	return emu.NewFlatMemory(size, image)
}

func newSyncMemory(size uint32, image []byte) emu.Memory {
	return emu.NewSyncMemory(emu.NewFlatMemory(size, image))
}

// memoryBehavior runs the common memory contract against a backing.
func memoryBehavior(newMemory func(size uint32, image []byte) emu.Memory) {
	var m emu.Memory

	BeforeEach(func() {
		m = newMemory(1024, []byte{0x11, 0x22, 0x33, 0x44})
	})

	It("should report its capacity", func() {
		Expect(m.Size()).To(Equal(uint32(1024)))
	})

	It("should hold the image at address 0 and zeros after it", func() {
		Expect(m.Read8(0)).To(Equal(uint8(0x11)))
		Expect(m.Read8(3)).To(Equal(uint8(0x44)))
		Expect(m.Read8(4)).To(Equal(uint8(0)))
		Expect(m.Read32(0)).To(Equal(uint32(0x44332211)))
	})

	It("should store halfwords and words little-endian", func() {
		Expect(m.Write32(0x100, 0xDEADBEEF)).To(Succeed())

		Expect(m.Read8(0x100)).To(Equal(uint8(0xEF)))
		Expect(m.Read8(0x101)).To(Equal(uint8(0xBE)))
		Expect(m.Read8(0x102)).To(Equal(uint8(0xAD)))
		Expect(m.Read8(0x103)).To(Equal(uint8(0xDE)))
		Expect(m.Read16(0x100)).To(Equal(uint16(0xBEEF)))
		Expect(m.Read16(0x102)).To(Equal(uint16(0xDEAD)))

		Expect(m.Write16(0x200, 0xCAFE)).To(Succeed())
		Expect(m.Read8(0x200)).To(Equal(uint8(0xFE)))
		Expect(m.Read8(0x201)).To(Equal(uint8(0xCA)))
	})

	It("should allow unaligned accesses", func() {
		Expect(m.Write32(0x101, 0x01020304)).To(Succeed())
		Expect(m.Read32(0x101)).To(Equal(uint32(0x01020304)))
		Expect(m.Read16(0x102)).To(Equal(uint16(0x0203)))
	})

	It("should accept accesses ending exactly at capacity", func() {
		Expect(m.Write32(1020, 0xA5A5A5A5)).To(Succeed())
		Expect(m.Read32(1020)).To(Equal(uint32(0xA5A5A5A5)))
		Expect(m.Write8(1023, 7)).To(Succeed())
	})

	It("should reject accesses past capacity", func() {
		_, err := m.Read8(1024)
		Expect(errors.Is(err, emu.ErrOutOfRange)).To(BeTrue())

		_, err = m.Read16(1023)
		Expect(errors.Is(err, emu.ErrOutOfRange)).To(BeTrue())

		_, err = m.Read32(1021)
		Expect(errors.Is(err, emu.ErrOutOfRange)).To(BeTrue())

		_, err = m.Read32(0xFFFFFFFE)
		Expect(errors.Is(err, emu.ErrOutOfRange)).To(BeTrue())
	})

	It("should leave memory unchanged after a rejected write", func() {
		Expect(m.Write8(1022, 0x5A)).To(Succeed())

		err := m.Write32(1022, 0xFFFFFFFF)
		Expect(errors.Is(err, emu.ErrOutOfRange)).To(BeTrue())

		Expect(m.Read8(1022)).To(Equal(uint8(0x5A)))
		Expect(m.Read8(1023)).To(Equal(uint8(0)))
	})

	It("should describe the failed access", func() {
		err := m.Write16(1023, 1)

		var accessErr *emu.AccessError
		Expect(errors.As(err, &accessErr)).To(BeTrue())
		Expect(accessErr.Op).To(Equal("write"))
		Expect(accessErr.Addr).To(Equal(uint32(1023)))
		Expect(accessErr.Width).To(Equal(uint32(2)))
		Expect(accessErr.Size).To(Equal(uint32(1024)))
	})
}

var _ = Describe("FlatMemory", func() {
	memoryBehavior(newFlatMemory)

	It("should drop image bytes past capacity", func() {
		m := emu.NewFlatMemory(2, []byte{1, 2, 3, 4})
		Expect(m.Bytes()).To(Equal([]byte{1, 2}))
	})

	It("should return a copy of its contents", func() {
		m := emu.NewFlatMemory(4, nil)
		snapshot := m.Bytes()
		snapshot[0] = 0xFF
		Expect(m.Read8(0)).To(Equal(uint8(0)))
	})

	It("should support zero capacity", func() {
		m := emu.NewFlatMemory(0, nil)
		_, err := m.Read8(0)
		Expect(errors.Is(err, emu.ErrOutOfRange)).To(BeTrue())
	})
})

var _ = Describe("StorageMemory", func() {
	memoryBehavior(newStorageMemory)

	It("should address a large sparse space", func() {
		m := newStorageMemory(64<<20, nil)
		Expect(m.Write32(48<<20, 0x12345678)).To(Succeed())
		Expect(m.Read32(48<<20)).To(Equal(uint32(0x12345678)))
		Expect(m.Read32(1<<20)).To(Equal(uint32(0)))
	})
})

var _ = Describe("SyncMemory", func() {
	memoryBehavior(newSyncMemory)

	It("should serialize concurrent writers", func() {
		m := newSyncMemory(256, nil)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(base uint32) {
				defer GinkgoRecover()
				defer wg.Done()
				for j := uint32(0); j < 8; j++ {
					Expect(m.Write32(base*32+j*4, base<<8|j)).To(Succeed())
				}
			}(uint32(i))
		}
		wg.Wait()

		for i := uint32(0); i < 8; i++ {
			for j := uint32(0); j < 8; j++ {
				Expect(m.Read32(i*32 + j*4)).To(Equal(i<<8 | j))
			}
		}
	})
})
