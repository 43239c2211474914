package main

import "testing"

func newTestDispatcher(t *testing.T) (*Dispatcher, *Arena, *WatchedBus) {
	t.Helper()
	arena, err := NewArena(DefaultSlotSize)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	t.Cleanup(func() { _ = arena.Close() })

	log := NewErrorLog(64)
	bus := NewFlatBus()
	watched := NewWatchedBus(bus, arena, log)
	interp := NewInterp(watched)
	opts := DefaultOptions()
	target := GetDefaultTarget()
	emitter := NewEmitter(target, arena, opts, log)
	dispatcher := NewDispatcher(emitter, interp, arena, watched, opts, log, target)
	watched.SetInvalidationHook(dispatcher.NoteInvalidation)
	return dispatcher, arena, watched
}

// Two Step calls at the same still-valid address must not recompile: the
// arena's BlockMeta.Generation counter only bumps on Install.
func TestDispatcherStepDoesNotRecompileAValidBlock(t *testing.T) {
	d, arena, _ := newTestDispatcher(t)
	bus := NewFlatBus()
	bus.Load(0x0600, []byte{0xEA, 0xEA, 0xEA}) // NOP NOP NOP, falls through
	// Route the dispatcher's bus through the same bytes the interpreter sees.
	d.bus = bus
	d.interp = NewInterp(bus)

	cpu := NewCPUState()
	cpu.PC = 0x0600
	d.Step(cpu)
	gen := arena.Meta(0x0600).Generation
	if gen == 0 {
		t.Fatal("first Step should have installed a block with Generation >= 1")
	}

	cpu.PC = 0x0600
	d.Step(cpu)
	if arena.Meta(0x0600).Generation != gen {
		t.Errorf("Generation changed from %d to %d across a second Step at the same address -- block was needlessly recompiled", gen, arena.Meta(0x0600).Generation)
	}
}

// A self-modifying write to an address inside a compiled block's span
// invalidates it and notifies the dispatcher's promotion policy.
func TestDispatcherNoteInvalidationViaWatchedBus(t *testing.T) {
	d, arena, watched := newTestDispatcher(t)
	watched.WriteByte(0x0600, 0xA9) // LDA #imm opcode byte
	watched.WriteByte(0x0601, 0x05)

	cpu := NewCPUState()
	cpu.PC = 0x0600
	d.Step(cpu)
	if !arena.Meta(0x0600).Installed {
		t.Fatal("expected $0600 to be installed after Step")
	}

	watched.WriteByte(0x0600, 0xA9) // same byte: must not invalidate
	if d.stateFor(0x0600).Invalidations != 0 {
		t.Fatal("a no-op write must not count as an invalidation")
	}

	watched.WriteByte(0x0600, 0x00) // changes the byte: self-modifying write
	if arena.Meta(0x0600).Installed {
		t.Error("block should be invalidated after its code byte changed")
	}
	if d.stateFor(0x0600).Invalidations != 1 {
		t.Errorf("dispatcher promotion state saw %d invalidations, want 1", d.stateFor(0x0600).Invalidations)
	}
}
