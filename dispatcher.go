// dispatcher.go - jit_enter and the trampolines (spec component 4.6).
//
// The dispatcher decides, for every value of PC, whether to run the
// interpreter or a compiled block. On hosts with a native backend
// (SupportedHostArch) it enters the arena for real through the asm
// bridge in native.go; everywhere else it falls back to driving
// Interp.Step directly, covering exactly the guest span the compiled
// block claims, so the two paths produce identical guest-visible
// behavior.
package main

// PromotionState tracks how many times an address has been compiled and
// subsequently invalidated, the input to the dynamic-operand/dynamic-
// opcode promotion policy (spec §4.3).
type PromotionState struct {
	Compiles      int
	Invalidations int
}

// Dispatcher owns one engine's run loop: compile-on-first-entry (with
// dynamic operands once an address has been invalidated DynamicTrigger
// times), then either enter the arena natively or interpret the block.
type Dispatcher struct {
	emitter *Emitter
	interp  *Interp
	arena   *Arena
	bus     Bus
	opts    RuntimeOptions
	log     *ErrorLog
	promote map[uint16]*PromotionState

	target     Target
	native     bool
	returnStub uintptr

	// blocks caches the decoded Block alongside the arena's installed
	// bytes, since the arena itself only stores bytes + BlockMeta, not
	// the GuestAddr/GuestLen the interpreter fallback needs to replay
	// a cache hit. Invalidated purely by the arena: a cache entry is
	// only trusted while Arena.Lookup still reports the address
	// installed.
	blocks map[uint16]Block
}

func NewDispatcher(emitter *Emitter, interp *Interp, arena *Arena, bus Bus, opts RuntimeOptions, log *ErrorLog, target Target) *Dispatcher {
	d := &Dispatcher{
		emitter: emitter,
		interp:  interp,
		arena:   arena,
		bus:     bus,
		opts:    opts,
		log:     log,
		target:  target,
		promote: make(map[uint16]*PromotionState),
		blocks:  make(map[uint16]Block),
	}

	if SupportedHostArch() {
		stub, err := emitter.BuildReturnStub()
		if err != nil {
			log.Add(EngineError{Level: LevelError, Category: CategoryDispatch, Message: "native return stub unavailable, falling back to the interpreter: " + err.Error()})
		} else {
			d.returnStub = stub
			d.native = true
		}
	}

	return d
}

// Step runs one dispatch cycle at cpu.PC: compiling the address only if
// it has never been compiled (or was invalidated since -- the arena's
// own Lookup is the source of truth for that, not a local flag), then
// entering the arena for real, or interpreting directly on hosts with
// no native backend.
func (d *Dispatcher) Step(cpu *CPUState) int {
	addr := cpu.PC
	state := d.stateFor(addr)

	block, cached := d.blocks[addr]
	if !cached || d.arena.Lookup(addr) == 0 {
		dynamic := state.Invalidations >= d.opts.DynamicTrigger
		compiled, err := d.emitter.Compile(addr, d.bus, dynamic)
		if err != nil {
			d.log.Add(CompileError(addr, 0, err.Error()))
		}
		block = compiled
		d.blocks[addr] = block
		state.Compiles++
	}

	if d.native {
		return d.runNative(cpu)
	}
	return d.runBlockInterpreted(cpu, block)
}

// runBlockInterpreted advances cpu by exactly the instructions block
// covers, via the interpreter -- used on hosts with no native backend,
// and as a defensive fallback if native entry ever can't be used for an
// address that Compile nonetheless installed.
func (d *Dispatcher) runBlockInterpreted(cpu *CPUState, block Block) int {
	if block.GuestLen == 0 {
		block.GuestLen = 1
	}
	end := block.GuestAddr + uint16(block.GuestLen)
	total := 0
	for cpu.PC != end {
		before := cpu.PC
		next := before + uint16(opcodeTable[d.bus.ReadByte(before)].Len)
		total += d.interp.Step(cpu)
		if cpu.PC == before {
			break // a trap or branch left PC unchanged; avoid spinning
		}
		if cpu.PC != next {
			break // control left the block via jump/branch/RTS early
		}
	}
	return total
}

func (d *Dispatcher) stateFor(addr uint16) *PromotionState {
	s, ok := d.promote[addr]
	if !ok {
		s = &PromotionState{}
		d.promote[addr] = s
	}
	return s
}

// NoteInvalidation is called by the engine after WatchedBus invalidates
// addr, so the dispatcher's promotion policy sees it on the next Step.
func (d *Dispatcher) NoteInvalidation(addr uint16) {
	d.stateFor(addr).Invalidations++
}
