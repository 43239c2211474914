// Completion: 100% - Instruction implementation complete
package main

import (
	"fmt"
	"os"
)

// PUSH/POP instructions for host stack management. No code in this
// package calls PushReg or PopReg.

// PushReg pushes a register value onto the stack
func (o *Out) PushReg(reg string) {
	switch o.target.Arch() {
	case ArchX86_64:
		o.pushX86Reg(reg)
	case ArchARM64:
		o.pushARM64Reg(reg)
	}
}

// PopReg pops a value from the stack into a register
func (o *Out) PopReg(reg string) {
	switch o.target.Arch() {
	case ArchX86_64:
		o.popX86Reg(reg)
	case ArchARM64:
		o.popARM64Reg(reg)
	}
}

// x86-64 PUSH reg
func (o *Out) pushX86Reg(reg string) {
	regInfo, regOk := GetRegister(o.target.Arch(), reg)
	if !regOk {
		return
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "push %s:", reg)
	}

	// PUSH uses compact encoding: 0x50 + reg
	// For extended registers (R8-R15), need REX prefix
	if regInfo.Encoding >= 8 {
		o.Write(0x41) // REX.B
		o.Write(0x50 + uint8(regInfo.Encoding&7))
	} else {
		o.Write(0x50 + uint8(regInfo.Encoding))
	}

	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}
}

// x86-64 POP reg
func (o *Out) popX86Reg(reg string) {
	regInfo, regOk := GetRegister(o.target.Arch(), reg)
	if !regOk {
		return
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "pop %s:", reg)
	}

	// POP uses compact encoding: 0x58 + reg
	if regInfo.Encoding >= 8 {
		o.Write(0x41) // REX.B
		o.Write(0x58 + uint8(regInfo.Encoding&7))
	} else {
		o.Write(0x58 + uint8(regInfo.Encoding))
	}

	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}
}

// ARM64 doesn't have dedicated PUSH/POP, uses STR/LDR with pre/post-indexing
// (one register per 16-byte stack slot, keeping SP 16-byte aligned)
func (o *Out) pushARM64Reg(reg string) {
	regInfo, regOk := GetRegister(o.target.Arch(), reg)
	if !regOk {
		return
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "str %s, [sp, #-16]!:", reg)
	}

	// STR Xt, [SP, #-16]! (pre-indexed)
	// Format: 11 111 0 00 00 0 imm9 01 Rn Rt
	// imm9 = -16 (0x1F0 in 9-bit signed)
	instr := uint32(0xF81F0FE0) | uint32(regInfo.Encoding&31)

	o.Write(uint8(instr & 0xFF))
	o.Write(uint8((instr >> 8) & 0xFF))
	o.Write(uint8((instr >> 16) & 0xFF))
	o.Write(uint8((instr >> 24) & 0xFF))

	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}
}

// ARM64 POP
func (o *Out) popARM64Reg(reg string) {
	regInfo, regOk := GetRegister(o.target.Arch(), reg)
	if !regOk {
		return
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "ldr %s, [sp], #16:", reg)
	}

	// LDR Xt, [SP], #16 (post-indexed)
	// Format: 11 111 0 00 01 0 imm9 01 Rn Rt
	instr := uint32(0xF84107E0) | uint32(regInfo.Encoding&31)

	o.Write(uint8(instr & 0xFF))
	o.Write(uint8((instr >> 8) & 0xFF))
	o.Write(uint8((instr >> 16) & 0xFF))
	o.Write(uint8((instr >> 24) & 0xFF))

	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}
}










