package insts

// ImmI extracts the I-type immediate: sign-extended bits [31:20].
func ImmI(word uint32) int32 {
	return int32(word) >> 20
}

// ImmS extracts the S-type immediate: sign-extended {[31:25], [11:7]}.
func ImmS(word uint32) int32 {
	return (int32(word)>>25)<<5 | int32((word>>7)&0x1F)
}

// ImmB extracts the B-type immediate: sign-extended
// {[31], [7], [30:25], [11:8], 0}. The result is always even.
func ImmB(word uint32) int32 {
	return (int32(word)>>31)<<12 |
		int32((word>>7)&0x1)<<11 |
		int32((word>>25)&0x3F)<<5 |
		int32((word>>8)&0xF)<<1
}

// ImmU extracts the U-type immediate: bits [31:12] in place, low 12 bits
// zero.
func ImmU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// ImmJ extracts the J-type immediate: sign-extended
// {[31], [19:12], [20], [30:21], 0}. The result is always even.
func ImmJ(word uint32) int32 {
	return (int32(word)>>31)<<20 |
		int32((word>>12)&0xFF)<<12 |
		int32((word>>20)&0x1)<<11 |
		int32((word>>21)&0x3FF)<<1
}

// Bits of an instruction word occupied by each immediate format.
const (
	ImmMaskI uint32 = 0xFFF00000
	ImmMaskS uint32 = 0xFE000F80
	ImmMaskB uint32 = 0xFE000F80
	ImmMaskU uint32 = 0xFFFFF000
	ImmMaskJ uint32 = 0xFFFFF000
)
