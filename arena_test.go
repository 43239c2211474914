package main

import "testing"

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	arena, err := NewArena(DefaultSlotSize)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	t.Cleanup(func() { _ = arena.Close() })
	return arena
}

func TestArenaInstallAndLookup(t *testing.T) {
	arena := newTestArena(t)

	code := []byte{0xC3} // a single RET-like byte is enough to exercise Install
	if err := arena.Install(0x0600, code, 2); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if arena.Lookup(0x0600) == 0 {
		t.Error("Lookup should return a non-zero host pointer after Install")
	}
	meta := arena.Meta(0x0600)
	if !meta.Installed || meta.GuestLen != 2 || meta.HostLen != len(code) {
		t.Errorf("Meta after install = %+v, want Installed=true GuestLen=2 HostLen=%d", meta, len(code))
	}
}

func TestArenaInstallRejectsOversizedBlock(t *testing.T) {
	arena := newTestArena(t)
	tooBig := make([]byte, arena.SlotSize()+1)
	if err := arena.Install(0x0600, tooBig, 1); err == nil {
		t.Error("Install should reject a block larger than the slot size")
	}
}

func TestArenaInvalidateClearsCoveringBlocks(t *testing.T) {
	arena := newTestArena(t)
	if err := arena.Install(0x0600, []byte{0x90}, 4); err != nil {
		t.Fatalf("Install: %v", err)
	}

	// A write inside the installed block's guest span invalidates it, even
	// though the write address itself differs from the block's start.
	arena.Invalidate(0x0602)

	if arena.Lookup(0x0600) != 0 {
		t.Error("Lookup should return 0 after the covering block was invalidated")
	}
	meta := arena.Meta(0x0600)
	if meta.Installed {
		t.Error("Meta.Installed should be false after invalidation")
	}
	if meta.Invalidations != 1 {
		t.Errorf("Invalidations = %d, want 1", meta.Invalidations)
	}
}

func TestArenaCompactClearsColdCounters(t *testing.T) {
	arena := newTestArena(t)
	if err := arena.Install(0x0600, []byte{0x90}, 1); err != nil {
		t.Fatalf("Install: %v", err)
	}
	arena.Invalidate(0x0600)
	if arena.Meta(0x0600).Invalidations != 1 {
		t.Fatalf("expected one invalidation before Compact")
	}

	swept := arena.Compact(5) // threshold above the current count
	if swept != 1 {
		t.Errorf("Compact swept %d slots, want 1", swept)
	}
	if arena.Meta(0x0600).Invalidations != 0 {
		t.Error("Compact should reset a cold slot's invalidation counter")
	}
}

func TestArenaResetClearsMetadataButKeepsMapping(t *testing.T) {
	arena := newTestArena(t)
	if err := arena.Install(0x0600, []byte{0x90}, 1); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if err := arena.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if arena.Lookup(0x0600) != 0 {
		t.Error("Lookup should be 0 for every address right after Reset")
	}
	if arena.Meta(0x0600).Installed {
		t.Error("Meta should be zeroed after Reset")
	}
	// A second Install after Reset should still succeed against the same mapping.
	if err := arena.Install(0x0600, []byte{0x90}, 1); err != nil {
		t.Fatalf("Install after Reset: %v", err)
	}
}
