// opcodes.go - the 6502 instruction table the decoder consults.
package main

// Mnemonic names a 6502 instruction regardless of addressing mode.
type Mnemonic int

const (
	MnADC Mnemonic = iota
	MnAND
	MnASL
	MnBCC
	MnBCS
	MnBEQ
	MnBIT
	MnBMI
	MnBNE
	MnBPL
	MnBRK
	MnBVC
	MnBVS
	MnCLC
	MnCLD
	MnCLI
	MnCLV
	MnCMP
	MnCPX
	MnCPY
	MnDEC
	MnDEX
	MnDEY
	MnEOR
	MnINC
	MnINX
	MnINY
	MnJMP
	MnJSR
	MnLDA
	MnLDX
	MnLDY
	MnLSR
	MnNOP
	MnORA
	MnPHA
	MnPHP
	MnPLA
	MnPLP
	MnROL
	MnROR
	MnRTI
	MnRTS
	MnSBC
	MnSEC
	MnSED
	MnSEI
	MnSTA
	MnSTX
	MnSTY
	MnTAX
	MnTAY
	MnTSX
	MnTXA
	MnTXS
	MnTYA
	MnInvalid
)

// OpcodeInfo describes the decode shape of one opcode byte.
type OpcodeInfo struct {
	Mnemonic Mnemonic
	Mode     AddrMode
	Len      int // total instruction length in bytes, including the opcode byte
	Cycles   int // base cycle cost, before any page-cross penalty
}

// opcodeTable maps opcode byte to its decode shape. Unlisted bytes are
// illegal/undocumented opcodes; the decoder emits a UopTrap for them
// rather than guessing a behavior (spec's decode-error fallback).
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]OpcodeInfo {
	var t [256]OpcodeInfo
	for i := range t {
		t[i] = OpcodeInfo{Mnemonic: MnInvalid}
	}

	set := func(op uint8, mn Mnemonic, mode AddrMode, length, cycles int) {
		t[op] = OpcodeInfo{Mnemonic: mn, Mode: mode, Len: length, Cycles: cycles}
	}

	// ADC
	set(0x69, MnADC, AddrImmediate, 2, 2)
	set(0x65, MnADC, AddrZeroPage, 2, 3)
	set(0x75, MnADC, AddrZeroPageX, 2, 4)
	set(0x6D, MnADC, AddrAbsolute, 3, 4)
	set(0x7D, MnADC, AddrAbsoluteX, 3, 4)
	set(0x79, MnADC, AddrAbsoluteY, 3, 4)
	set(0x61, MnADC, AddrIndirectX, 2, 6)
	set(0x71, MnADC, AddrIndirectY, 2, 5)

	// AND
	set(0x29, MnAND, AddrImmediate, 2, 2)
	set(0x25, MnAND, AddrZeroPage, 2, 3)
	set(0x35, MnAND, AddrZeroPageX, 2, 4)
	set(0x2D, MnAND, AddrAbsolute, 3, 4)
	set(0x3D, MnAND, AddrAbsoluteX, 3, 4)
	set(0x39, MnAND, AddrAbsoluteY, 3, 4)
	set(0x21, MnAND, AddrIndirectX, 2, 6)
	set(0x31, MnAND, AddrIndirectY, 2, 5)

	// ASL
	set(0x0A, MnASL, AddrAccumulator, 1, 2)
	set(0x06, MnASL, AddrZeroPage, 2, 5)
	set(0x16, MnASL, AddrZeroPageX, 2, 6)
	set(0x0E, MnASL, AddrAbsolute, 3, 6)
	set(0x1E, MnASL, AddrAbsoluteX, 3, 7)

	// Branches (relative, 2 bytes, base 2 cycles + taken/page penalties at runtime)
	set(0x90, MnBCC, AddrRelative, 2, 2)
	set(0xB0, MnBCS, AddrRelative, 2, 2)
	set(0xF0, MnBEQ, AddrRelative, 2, 2)
	set(0x30, MnBMI, AddrRelative, 2, 2)
	set(0xD0, MnBNE, AddrRelative, 2, 2)
	set(0x10, MnBPL, AddrRelative, 2, 2)
	set(0x50, MnBVC, AddrRelative, 2, 2)
	set(0x70, MnBVS, AddrRelative, 2, 2)

	// BIT
	set(0x24, MnBIT, AddrZeroPage, 2, 3)
	set(0x2C, MnBIT, AddrAbsolute, 3, 4)

	// BRK
	set(0x00, MnBRK, AddrImplied, 1, 7)

	// Flag ops
	set(0x18, MnCLC, AddrImplied, 1, 2)
	set(0xD8, MnCLD, AddrImplied, 1, 2)
	set(0x58, MnCLI, AddrImplied, 1, 2)
	set(0xB8, MnCLV, AddrImplied, 1, 2)
	set(0x38, MnSEC, AddrImplied, 1, 2)
	set(0xF8, MnSED, AddrImplied, 1, 2)
	set(0x78, MnSEI, AddrImplied, 1, 2)

	// CMP
	set(0xC9, MnCMP, AddrImmediate, 2, 2)
	set(0xC5, MnCMP, AddrZeroPage, 2, 3)
	set(0xD5, MnCMP, AddrZeroPageX, 2, 4)
	set(0xCD, MnCMP, AddrAbsolute, 3, 4)
	set(0xDD, MnCMP, AddrAbsoluteX, 3, 4)
	set(0xD9, MnCMP, AddrAbsoluteY, 3, 4)
	set(0xC1, MnCMP, AddrIndirectX, 2, 6)
	set(0xD1, MnCMP, AddrIndirectY, 2, 5)

	// CPX / CPY
	set(0xE0, MnCPX, AddrImmediate, 2, 2)
	set(0xE4, MnCPX, AddrZeroPage, 2, 3)
	set(0xEC, MnCPX, AddrAbsolute, 3, 4)
	set(0xC0, MnCPY, AddrImmediate, 2, 2)
	set(0xC4, MnCPY, AddrZeroPage, 2, 3)
	set(0xCC, MnCPY, AddrAbsolute, 3, 4)

	// DEC / INC
	set(0xC6, MnDEC, AddrZeroPage, 2, 5)
	set(0xD6, MnDEC, AddrZeroPageX, 2, 6)
	set(0xCE, MnDEC, AddrAbsolute, 3, 6)
	set(0xDE, MnDEC, AddrAbsoluteX, 3, 7)
	set(0xE6, MnINC, AddrZeroPage, 2, 5)
	set(0xF6, MnINC, AddrZeroPageX, 2, 6)
	set(0xEE, MnINC, AddrAbsolute, 3, 6)
	set(0xFE, MnINC, AddrAbsoluteX, 3, 7)

	set(0xCA, MnDEX, AddrImplied, 1, 2)
	set(0x88, MnDEY, AddrImplied, 1, 2)
	set(0xE8, MnINX, AddrImplied, 1, 2)
	set(0xC8, MnINY, AddrImplied, 1, 2)

	// EOR
	set(0x49, MnEOR, AddrImmediate, 2, 2)
	set(0x45, MnEOR, AddrZeroPage, 2, 3)
	set(0x55, MnEOR, AddrZeroPageX, 2, 4)
	set(0x4D, MnEOR, AddrAbsolute, 3, 4)
	set(0x5D, MnEOR, AddrAbsoluteX, 3, 4)
	set(0x59, MnEOR, AddrAbsoluteY, 3, 4)
	set(0x41, MnEOR, AddrIndirectX, 2, 6)
	set(0x51, MnEOR, AddrIndirectY, 2, 5)

	// JMP / JSR / RTS / RTI
	set(0x4C, MnJMP, AddrAbsolute, 3, 3)
	set(0x6C, MnJMP, AddrIndirect, 3, 5)
	set(0x20, MnJSR, AddrAbsolute, 3, 6)
	set(0x60, MnRTS, AddrImplied, 1, 6)
	set(0x40, MnRTI, AddrImplied, 1, 6)

	// LDA / LDX / LDY
	set(0xA9, MnLDA, AddrImmediate, 2, 2)
	set(0xA5, MnLDA, AddrZeroPage, 2, 3)
	set(0xB5, MnLDA, AddrZeroPageX, 2, 4)
	set(0xAD, MnLDA, AddrAbsolute, 3, 4)
	set(0xBD, MnLDA, AddrAbsoluteX, 3, 4)
	set(0xB9, MnLDA, AddrAbsoluteY, 3, 4)
	set(0xA1, MnLDA, AddrIndirectX, 2, 6)
	set(0xB1, MnLDA, AddrIndirectY, 2, 5)

	set(0xA2, MnLDX, AddrImmediate, 2, 2)
	set(0xA6, MnLDX, AddrZeroPage, 2, 3)
	set(0xB6, MnLDX, AddrZeroPageY, 2, 4)
	set(0xAE, MnLDX, AddrAbsolute, 3, 4)
	set(0xBE, MnLDX, AddrAbsoluteY, 3, 4)

	set(0xA0, MnLDY, AddrImmediate, 2, 2)
	set(0xA4, MnLDY, AddrZeroPage, 2, 3)
	set(0xB4, MnLDY, AddrZeroPageX, 2, 4)
	set(0xAC, MnLDY, AddrAbsolute, 3, 4)
	set(0xBC, MnLDY, AddrAbsoluteX, 3, 4)

	// LSR
	set(0x4A, MnLSR, AddrAccumulator, 1, 2)
	set(0x46, MnLSR, AddrZeroPage, 2, 5)
	set(0x56, MnLSR, AddrZeroPageX, 2, 6)
	set(0x4E, MnLSR, AddrAbsolute, 3, 6)
	set(0x5E, MnLSR, AddrAbsoluteX, 3, 7)

	// NOP
	set(0xEA, MnNOP, AddrImplied, 1, 2)

	// ORA
	set(0x09, MnORA, AddrImmediate, 2, 2)
	set(0x05, MnORA, AddrZeroPage, 2, 3)
	set(0x15, MnORA, AddrZeroPageX, 2, 4)
	set(0x0D, MnORA, AddrAbsolute, 3, 4)
	set(0x1D, MnORA, AddrAbsoluteX, 3, 4)
	set(0x19, MnORA, AddrAbsoluteY, 3, 4)
	set(0x01, MnORA, AddrIndirectX, 2, 6)
	set(0x11, MnORA, AddrIndirectY, 2, 5)

	// Stack
	set(0x48, MnPHA, AddrImplied, 1, 3)
	set(0x08, MnPHP, AddrImplied, 1, 3)
	set(0x68, MnPLA, AddrImplied, 1, 4)
	set(0x28, MnPLP, AddrImplied, 1, 4)

	// ROL / ROR
	set(0x2A, MnROL, AddrAccumulator, 1, 2)
	set(0x26, MnROL, AddrZeroPage, 2, 5)
	set(0x36, MnROL, AddrZeroPageX, 2, 6)
	set(0x2E, MnROL, AddrAbsolute, 3, 6)
	set(0x3E, MnROL, AddrAbsoluteX, 3, 7)
	set(0x6A, MnROR, AddrAccumulator, 1, 2)
	set(0x66, MnROR, AddrZeroPage, 2, 5)
	set(0x76, MnROR, AddrZeroPageX, 2, 6)
	set(0x6E, MnROR, AddrAbsolute, 3, 6)
	set(0x7E, MnROR, AddrAbsoluteX, 3, 7)

	// SBC
	set(0xE9, MnSBC, AddrImmediate, 2, 2)
	set(0xE5, MnSBC, AddrZeroPage, 2, 3)
	set(0xF5, MnSBC, AddrZeroPageX, 2, 4)
	set(0xED, MnSBC, AddrAbsolute, 3, 4)
	set(0xFD, MnSBC, AddrAbsoluteX, 3, 4)
	set(0xF9, MnSBC, AddrAbsoluteY, 3, 4)
	set(0xE1, MnSBC, AddrIndirectX, 2, 6)
	set(0xF1, MnSBC, AddrIndirectY, 2, 5)

	// STA / STX / STY
	set(0x85, MnSTA, AddrZeroPage, 2, 3)
	set(0x95, MnSTA, AddrZeroPageX, 2, 4)
	set(0x8D, MnSTA, AddrAbsolute, 3, 4)
	set(0x9D, MnSTA, AddrAbsoluteX, 3, 5)
	set(0x99, MnSTA, AddrAbsoluteY, 3, 5)
	set(0x81, MnSTA, AddrIndirectX, 2, 6)
	set(0x91, MnSTA, AddrIndirectY, 2, 6)

	set(0x86, MnSTX, AddrZeroPage, 2, 3)
	set(0x96, MnSTX, AddrZeroPageY, 2, 4)
	set(0x8E, MnSTX, AddrAbsolute, 3, 4)

	set(0x84, MnSTY, AddrZeroPage, 2, 3)
	set(0x94, MnSTY, AddrZeroPageX, 2, 4)
	set(0x8C, MnSTY, AddrAbsolute, 3, 4)

	// Transfers
	set(0xAA, MnTAX, AddrImplied, 1, 2)
	set(0xA8, MnTAY, AddrImplied, 1, 2)
	set(0xBA, MnTSX, AddrImplied, 1, 2)
	set(0x8A, MnTXA, AddrImplied, 1, 2)
	set(0x9A, MnTXS, AddrImplied, 1, 2)
	set(0x98, MnTYA, AddrImplied, 1, 2)

	return t
}

// pageCrossable reports whether mode's effective-address computation can
// add a page-crossing cycle penalty (spec's supplemented cycle-accuracy
// feature; see jit_optimizer.go's applyPageCrossPenalty).
func pageCrossable(mode AddrMode) bool {
	switch mode {
	case AddrAbsoluteX, AddrAbsoluteY, AddrIndirectY:
		return true
	default:
		return false
	}
}

// isBCDOpcode reports whether mn is ADC/SBC, the two mnemonics whose
// behavior changes under the decimal flag and which the decoder routes
// through a runtime decimal-mode check (spec's BCD supplement).
func isBCDOpcode(mn Mnemonic) bool {
	return mn == MnADC || mn == MnSBC
}
