package main

import "testing"

func newTestInterp() (*Interp, *FlatBus, *CPUState) {
	bus := NewFlatBus()
	return NewInterp(bus), bus, NewCPUState()
}

// LDA #$C0 ; ADC #$C0: two negative operands summing to exactly -128,
// which is representable, so carry is set (unsigned overflow past $FF)
// but signed overflow (flagV) is not.
func TestInterpADCUnsignedCarryWithoutSignedOverflow(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	bus.Load(0x0600, []byte{0xA9, 0xC0, 0x69, 0xC0})
	cpu.PC = 0x0600

	ip.Step(cpu) // LDA #$C0
	ip.Step(cpu) // ADC #$C0

	if cpu.A != 0x80 {
		t.Errorf("A = $%02X, want $80 (0xC0+0xC0 truncated to 8 bits)", cpu.A)
	}
	if !cpu.flag(flagC) {
		t.Error("flagC should be set: 0xC0+0xC0 overflows 8 bits")
	}
	if cpu.flag(flagV) {
		t.Error("flagV should be clear: -64 + -64 = -128 is representable in signed 8 bits")
	}
}

// LDA #$50 ; ADC #$50: two positive operands summing past the signed
// range (80+80=160) sets flagV without setting flagC.
func TestInterpADCSignedOverflowWithoutCarry(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	bus.Load(0x0600, []byte{0xA9, 0x50, 0x69, 0x50})
	cpu.PC = 0x0600

	ip.Step(cpu) // LDA #$50
	ip.Step(cpu) // ADC #$50

	if cpu.A != 0xA0 {
		t.Errorf("A = $%02X, want $A0", cpu.A)
	}
	if cpu.flag(flagC) {
		t.Error("flagC should be clear: 80+80=160 does not exceed 255")
	}
	if !cpu.flag(flagV) {
		t.Error("flagV should be set: two positive operands produced a negative-looking result")
	}
}

// SBC is ADC of the complement: with carry set (no borrow-in), #$05 -
// #$01 comes out as 4 and carry stays set.
func TestInterpSBCWithCarrySet(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	bus.Load(0x0600, []byte{0xA9, 0x05, 0x38, 0xE9, 0x01}) // LDA #5 ; SEC ; SBC #1
	cpu.PC = 0x0600

	ip.Step(cpu) // LDA
	ip.Step(cpu) // SEC
	ip.Step(cpu) // SBC #1

	if cpu.A != 4 {
		t.Errorf("A = %d, want 4 (5 - 1 with carry set, i.e. no extra borrow)", cpu.A)
	}
	if !cpu.flag(flagC) {
		t.Error("flagC should remain set: no borrow occurred")
	}
}

// The famous 6502 indirect-JMP bug: when the pointer sits at the end of a
// page ($xxFF), the high byte is fetched from $xx00, not from the next
// page, because the 6502 never carries into the high byte of the pointer.
func TestInterpIndirectJMPPageWrapBug(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	bus.Load(0x0600, []byte{0x6C, 0xFF, 0x02}) // JMP ($02FF)
	bus.WriteByte(0x02FF, 0x00)                // low byte of target
	bus.WriteByte(0x0300, 0x11)                // what a correct wrap-around read would use (wrong)
	bus.WriteByte(0x0200, 0x22)                // what the buggy wrap-within-page read actually uses
	cpu.PC = 0x0600

	ip.Step(cpu)

	want := uint16(0x2200)
	if cpu.PC != want {
		t.Errorf("PC after indirect JMP = $%04X, want $%04X (page-wrap bug: high byte from $0200, not $0300)", cpu.PC, want)
	}
}

// A taken branch costs one extra cycle over a non-taken one, and two
// extra when the branch crosses a page boundary.
func TestInterpBranchCyclePenalty(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	bus.Load(0x0600, []byte{0xB0, 0x02}) // BCS +2 (not taken: carry clear)
	cpu.PC = 0x0600

	cycles := ip.Step(cpu)
	if cycles != opcodeTable[0xB0].Cycles {
		t.Errorf("not-taken branch cost %d cycles, want base %d", cycles, opcodeTable[0xB0].Cycles)
	}

	bus.Load(0x0700, []byte{0xB0, 0x02})
	cpu.PC = 0x0700
	cpu.setFlag(flagC, true)
	cycles = ip.Step(cpu)
	if cycles <= opcodeTable[0xB0].Cycles {
		t.Errorf("taken branch cost %d cycles, want more than base %d", cycles, opcodeTable[0xB0].Cycles)
	}
}

// JSR followed by RTS returns to the instruction after the call, and a
// GuestStackValidator attached to the interpreter sees balanced depth.
func TestInterpJSRRTSRoundTrip(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	log := NewErrorLog(16)
	validator := NewGuestStackValidator(log)
	ip.WithStackValidator(validator)

	bus.Load(0x0600, []byte{0x20, 0x00, 0x07}) // JSR $0700
	bus.Load(0x0700, []byte{0x60})             // RTS
	cpu.PC = 0x0600

	ip.Step(cpu) // JSR
	if cpu.PC != 0x0700 {
		t.Fatalf("PC after JSR = $%04X, want $0700", cpu.PC)
	}
	if validator.Depth() != 1 {
		t.Fatalf("call depth after JSR = %d, want 1", validator.Depth())
	}

	ip.Step(cpu) // RTS
	if cpu.PC != 0x0603 {
		t.Fatalf("PC after RTS = $%04X, want $0603", cpu.PC)
	}
	if validator.Depth() != 0 {
		t.Fatalf("call depth after RTS = %d, want 0", validator.Depth())
	}
	if log.Len() != 0 {
		t.Fatalf("balanced JSR/RTS should not log a diagnostic, got %d entries", log.Len())
	}
}

// An RTS with no matching JSR logs exactly one diagnostic, never panics.
func TestInterpUnmatchedRTSLogsOnce(t *testing.T) {
	ip, bus, cpu := newTestInterp()
	log := NewErrorLog(16)
	ip.WithStackValidator(NewGuestStackValidator(log))

	bus.Load(0x0600, []byte{0x60, 0x60}) // RTS ; RTS, neither preceded by a JSR
	bus.WriteByte(0x01FE, 0x00)          // first RTS pulls $0600 and lands on $0601,
	bus.WriteByte(0x01FF, 0x06)          // so the second step runs the second RTS
	cpu.PC = 0x0600

	ip.Step(cpu)
	ip.Step(cpu)

	if log.Len() != 1 {
		t.Fatalf("got %d log entries, want exactly 1 (warns once, then stays quiet)", log.Len())
	}
	if log.Entries()[0].Level != LevelWarning {
		t.Errorf("unmatched RTS should log at LevelWarning, got %v", log.Entries()[0].Level)
	}
}
