// arena.go - the JIT code arena and its metadata store (spec component 4.1)
//
// One slot per 6502 address: slot N holds (or begins) the compiled host
// code for guest address N. A jump to guest address A is therefore a
// computed host jump to ARENA_BASE + A*SlotSize, no hash map lookup, and
// naturally supports "sub-instruction entry" (jumping into the middle of
// a previously compiled block, e.g. a loop branching back into the body
// of the instruction that follows it).
package main

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// SlotSize is the number of host code bytes reserved per 6502 address.
// Configurable via RuntimeOptions; must be a power of two. Slot
// addressing is ARENA_BASE + A*SlotSize (see SlotOffset).
const DefaultSlotSize = 256

// GuestAddressSpace is the size of the 6502's flat address space.
const GuestAddressSpace = 1 << 16

// BlockMeta is the per-slot metadata the optimiser and fault engine
// consult when deciding whether to recompile, split, or promote a block.
type BlockMeta struct {
	Installed      bool   // slot holds valid compiled code
	HostLen        int    // bytes of host code occupying the slot
	GuestLen       int    // bytes of 6502 source the block covers
	Generation     uint32 // bumped on every (re)compile of this slot
	Invalidations  int    // times this address has been write-invalidated
	DynamicOperand bool   // promoted: operand decoded at run time, not baked in
	DynamicOpcode  bool   // promoted: opcode decoded at run time
}

// Arena is the fixed-size, page-protected code cache plus its metadata
// store. It never grows and is never freed for the engine's lifetime
// (Reset reprotects and zeroes metadata but keeps the mapping, matching
// the original interpreter's own arena lifetime policy).
type Arena struct {
	mu sync.Mutex

	slotSize int
	mem      []byte // mmap'd RWX region, GuestAddressSpace*slotSize bytes
	writable bool    // current mprotect state: true=RW, false=RX

	jitPtrs    [GuestAddressSpace]uintptr // host entry point per guest address, 0 if not installed
	codeBlocks [GuestAddressSpace]BlockMeta
}

// NewArena mmaps the code cache. slotSize must be a power of two.
func NewArena(slotSize int) (*Arena, error) {
	if slotSize <= 0 || slotSize&(slotSize-1) != 0 {
		return nil, fmt.Errorf("arena: slot size %d is not a power of two", slotSize)
	}

	total := GuestAddressSpace * slotSize
	mem, err := unix.Mmap(-1, 0, total,
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap %d bytes: %w", total, err)
	}

	return &Arena{
		slotSize: slotSize,
		mem:      mem,
		writable: true,
	}, nil
}

// Close unmaps the arena. Only ever called at process exit or in tests;
// the engine itself never frees the arena during normal operation.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}
	err := unix.Munmap(a.mem)
	a.mem = nil
	return err
}

// SlotSize returns the configured per-address slot size in bytes.
func (a *Arena) SlotSize() int {
	return a.slotSize
}

// SlotOffset computes ARENA_BASE-relative byte offset for guest address addr.
func (a *Arena) SlotOffset(addr uint16) int {
	return int(addr) * a.slotSize
}

// SlotPtr returns the host address of the start of addr's slot, for
// emitting the computed-jump target (ARENA_BASE + A*SlotSize).
func (a *Arena) SlotPtr(addr uint16) uintptr {
	return uintptr(unsafe.Pointer(&a.mem[0])) + uintptr(a.SlotOffset(addr))
}

// ensureWritable flips the whole arena to RW, mprotect is page-granular so
// individual slots cannot be protected independently without wasting a
// full page per 6502 byte; the fault engine (fault.go) instead uses this
// coarse RW/RX toggle around each Install call, which is safe because the
// engine is single-threaded (spec's concurrency model, §5).
func (a *Arena) ensureWritable() error {
	if a.writable {
		return nil
	}
	if err := unix.Mprotect(a.mem, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("arena: mprotect RW: %w", err)
	}
	a.writable = true
	return nil
}

func (a *Arena) ensureExecutable() error {
	if !a.writable {
		return nil
	}
	if err := unix.Mprotect(a.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("arena: mprotect RX: %w", err)
	}
	a.writable = false
	return nil
}

// Install writes compiled host code into addr's slot and marks it live.
// Overwrites any previous occupant of the slot (the caller is responsible
// for having already run the block through the invalidation path if one
// existed, per spec's "never self-overwrite speculatively" invariant).
func (a *Arena) Install(addr uint16, code []byte, guestLen int) error {
	if len(code) > a.slotSize {
		return fmt.Errorf("arena: compiled block for $%04X is %d bytes, exceeds slot size %d", addr, len(code), a.slotSize)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureWritable(); err != nil {
		return err
	}
	off := a.SlotOffset(addr)
	copy(a.mem[off:off+a.slotSize], make([]byte, a.slotSize)) // clear stale tail
	copy(a.mem[off:], code)
	if err := a.ensureExecutable(); err != nil {
		return err
	}

	meta := &a.codeBlocks[addr]
	meta.Installed = true
	meta.HostLen = len(code)
	meta.GuestLen = guestLen
	meta.Generation++
	a.jitPtrs[addr] = a.SlotPtr(addr)
	return nil
}

// Invalidate marks addr (and every slot whose block covered addr, per
// GuestLen) as uncompiled, forcing the dispatcher back through the
// compiler on next entry. Called from the fault engine (fault.go) on a
// self-modifying-code write trap.
func (a *Arena) Invalidate(addr uint16) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Walk backward far enough to catch any block whose span covers addr;
	// GuestLen is bounded by MaxBlockOps*3 (longest possible 6502 instruction
	// run for a capacity-limited block), so this is a small constant scan.
	for start := int(addr) - maxBlockGuestSpan; start <= int(addr); start++ {
		if start < 0 || start >= GuestAddressSpace {
			continue
		}
		meta := &a.codeBlocks[start]
		if !meta.Installed {
			continue
		}
		if start+meta.GuestLen-1 < int(addr) {
			continue
		}
		meta.Installed = false
		meta.Invalidations++
		a.jitPtrs[start] = 0
	}
}

const maxBlockGuestSpan = 256 * 3 // MaxBlockOps * worst-case 3 bytes/opcode

// Lookup returns the host entry point for addr, or 0 if the block is not
// (or no longer) compiled.
func (a *Arena) Lookup(addr uint16) uintptr {
	return a.jitPtrs[addr]
}

// Meta returns the metadata for addr's slot, for the optimiser's
// promotion-policy checks (DynamicOperand/DynamicOpcode thresholds).
func (a *Arena) Meta(addr uint16) BlockMeta {
	return a.codeBlocks[addr]
}

// MarkPromoted sets the dynamic-operand/dynamic-opcode bits for addr.
// No code in this package calls it; the dispatcher keeps its promotion
// decision in its own PromotionState.
func (a *Arena) MarkPromoted(addr uint16, dynamicOperand, dynamicOpcode bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	meta := &a.codeBlocks[addr]
	meta.DynamicOperand = meta.DynamicOperand || dynamicOperand
	meta.DynamicOpcode = meta.DynamicOpcode || dynamicOpcode
}

// Compact sweeps code_blocks for slots whose Invalidations counter has
// gone cold (spec §4.5 "Cleanup") and resets the counter to zero. It
// does not clear DynamicOperand/DynamicOpcode, touch installed code, or
// change the dispatcher's own promotion counters. Called
// explicitly by the host (Engine.Compact), never on a timer: the engine
// never does unrequested global work (spec §9).
func (a *Arena) Compact(coldThreshold int) (swept int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.codeBlocks {
		meta := &a.codeBlocks[i]
		if meta.Invalidations > 0 && meta.Invalidations < coldThreshold {
			meta.Invalidations = 0
			swept++
		}
	}
	return swept
}

// Reset reprotects the arena to its initial RWX-via-RW/RX-toggle state
// and clears all metadata, but keeps the mmap'd region mapped.
func (a *Arena) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ensureWritable(); err != nil {
		return err
	}
	for i := range a.mem {
		a.mem[i] = 0
	}
	for i := range a.codeBlocks {
		a.codeBlocks[i] = BlockMeta{}
		a.jitPtrs[i] = 0
	}
	return a.ensureExecutable()
}
