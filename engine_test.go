package main

import "testing"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := NewEngine(GetDefaultTarget(), DefaultOptions())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

// LDA #$2A ; STA $10 ; LDX $10 drives A and X to the same loaded value
// through the full dispatcher/arena/interpreter path.
func TestEngineRunLoadStoreLoad(t *testing.T) {
	eng := newTestEngine(t)
	eng.LoadProgram(0x0600, []byte{
		0xA9, 0x2A, // LDA #$2A
		0x85, 0x10, // STA $10
		0xA6, 0x10, // LDX $10
		0x00, // BRK
	})

	eng.Run(100)

	if eng.CPU.A != 0x2A {
		t.Errorf("A = $%02X, want $2A", eng.CPU.A)
	}
	if eng.CPU.X != 0x2A {
		t.Errorf("X = $%02X, want $2A (loaded back from the byte STA wrote)", eng.CPU.X)
	}
	if eng.Bus.ReadByte(0x10) != 0x2A {
		t.Errorf("guest RAM at $10 = $%02X, want $2A", eng.Bus.ReadByte(0x10))
	}
}

// A program that writes into its own instruction stream invalidates the
// arena slot it just ran from.
func TestEngineSelfModifyingCodeInvalidates(t *testing.T) {
	eng := newTestEngine(t)
	// LDA #$00 ; STA $0600 (overwrite our own first opcode byte, $A9, with
	// a different value so the write isn't a same-byte no-op) ; BRK
	eng.LoadProgram(0x0600, []byte{
		0xA9, 0x00,
		0x8D, 0x00, 0x06,
		0x00,
	})

	eng.Run(100)

	if eng.Log.Len() == 0 {
		t.Error("expected at least one FaultError logged for the self-modifying write")
	}
	if eng.Arena.Meta(0x0600).Invalidations == 0 {
		t.Error("expected the arena to record an invalidation at $0600")
	}
}

// Reset zeroes guest RAM and CPU state but the engine remains usable
// immediately afterward.
func TestEngineResetThenReuse(t *testing.T) {
	eng := newTestEngine(t)
	eng.LoadProgram(0x0600, []byte{0xA9, 0x42, 0x00}) // LDA #$42 ; BRK
	eng.Run(50)
	if eng.CPU.A != 0x42 {
		t.Fatalf("A = $%02X before Reset, want $42", eng.CPU.A)
	}

	if err := eng.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if eng.CPU.A != 0 || eng.CPU.PC != 0 {
		t.Errorf("CPU state after Reset = A=$%02X PC=$%04X, want zeroed", eng.CPU.A, eng.CPU.PC)
	}

	eng.LoadProgram(0x0600, []byte{0xA9, 0x7E, 0x00}) // LDA #$7E ; BRK
	eng.Run(50)
	if eng.CPU.A != 0x7E {
		t.Errorf("A = $%02X after reload post-Reset, want $7E", eng.CPU.A)
	}
}
