// cpu.go - the 6502 register file and status flag layout shared by the
// interpreter core, the decoder, and the JIT's flag-packing uops.
package main

// Status register bit positions, standard 6502 layout: N V - B D I Z C.
const (
	flagC byte = 1 << 0
	flagZ byte = 1 << 1
	flagI byte = 1 << 2
	flagD byte = 1 << 3
	flagB byte = 1 << 4
	flagU byte = 1 << 5 // unused, always reads 1
	flagV byte = 1 << 6
	flagN byte = 1 << 7
)

// CPUState is the 6502 register file: A/X/Y/S/PC plus the packed status
// byte. The interpreter and the JIT-compiled code both converge on and
// diverge from this same layout at every trampoline boundary.
type CPUState struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	P       uint8 // packed N V - B D I Z C, bit5 always reads 1

	// Cycles is the countdown register: Interp.Step decrements it by each
	// instruction's cycle cost. Nothing reads it; execution is not stopped
	// or diverted to a timer trampoline when it goes negative.
	Cycles int64
}

func NewCPUState() *CPUState {
	return &CPUState{S: 0xFD, P: flagU | flagI}
}

func (c *CPUState) setFlag(bit byte, v bool) {
	if v {
		c.P |= bit
	} else {
		c.P &^= bit
	}
}

func (c *CPUState) flag(bit byte) bool {
	return c.P&bit != 0
}

func (c *CPUState) setNZ(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}
