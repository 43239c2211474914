package main

import "testing"

func newTestDecoder() (*Decoder, *FlatBus) {
	bus := NewFlatBus()
	opts := DefaultOptions()
	opts.Optimize = false
	log := NewErrorLog(64)
	return NewDecoder(bus, opts, log), bus
}

// LDA #$05 ; STA $10 ; BRK should lower to a load-immediate, a store, and
// a terminal jump uop, and the block should not fall through.
func TestDecodeBlockLoadStoreBrk(t *testing.T) {
	dec, bus := newTestDecoder()
	bus.Load(0x0600, []byte{0xA9, 0x05, 0x85, 0x10, 0x00})

	block := dec.DecodeBlock(0x0600, false)

	if len(block.Uops) != 3 {
		t.Fatalf("got %d uops, want 3: %+v", len(block.Uops), block.Uops)
	}
	if block.Uops[0].Kind != UopLoadImm || block.Uops[0].Reg != "A" || block.Uops[0].Operand != 5 {
		t.Errorf("uop 0 = %+v, want LoadImm A #5", block.Uops[0])
	}
	if block.Uops[1].Kind != UopStoreMem || block.Uops[1].Reg != "A" || block.Uops[1].Operand != 0x10 {
		t.Errorf("uop 1 = %+v, want StoreMem A $10", block.Uops[1])
	}
	if block.Uops[2].Kind != UopJump {
		t.Errorf("uop 2 kind = %v, want UopJump (BRK)", block.Uops[2].Kind)
	}
	if block.FallsThrough {
		t.Error("block should not fall through past a BRK")
	}
	if block.GuestLen != 5 {
		t.Errorf("GuestLen = %d, want 5", block.GuestLen)
	}
}

// A branch instruction ends its block and computes the correct signed
// relative target, whether forward or backward.
func TestDecodeBlockBranchTarget(t *testing.T) {
	dec, bus := newTestDecoder()
	// at $0600: BEQ -2 (branches back to itself)
	bus.Load(0x0600, []byte{0xF0, 0xFE})

	block := dec.DecodeBlock(0x0600, false)
	if len(block.Uops) != 1 || block.Uops[0].Kind != UopBranch {
		t.Fatalf("got %+v, want one UopBranch", block.Uops)
	}
	if block.Uops[0].Operand != 0x0600 {
		t.Errorf("branch target = $%04X, want $0600", block.Uops[0].Operand)
	}
	if block.Uops[0].Flag != flagZ || !block.Uops[0].FlagSet {
		t.Errorf("BEQ should branch on flagZ set, got flag=%d set=%v", block.Uops[0].Flag, block.Uops[0].FlagSet)
	}
}

// An undocumented opcode byte decodes to a single UopTrap and ends the
// block without marking it fall-through.
func TestDecodeBlockIllegalOpcodeTraps(t *testing.T) {
	dec, bus := newTestDecoder()
	bus.Load(0x0600, []byte{0x02}) // unassigned in the official table

	block := dec.DecodeBlock(0x0600, false)
	if len(block.Uops) != 1 || block.Uops[0].Kind != UopTrap {
		t.Fatalf("got %+v, want one UopTrap", block.Uops)
	}
	if block.FallsThrough {
		t.Error("a trapped block should not claim to fall through")
	}
}
