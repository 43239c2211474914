// engine.go - the top-level sixjit engine: wires the memory model,
// decoder/emitter pipeline, fault engine, and dispatcher into one
// runnable unit (spec §5, the component boundary every other file in
// this package was written to fill).
package main

// Engine owns one guest machine: its CPU state, its guest RAM, its JIT
// arena, and the pipeline that keeps the arena consistent with RAM.
type Engine struct {
	Target     Target
	CPU        *CPUState
	Bus        *FlatBus
	Watched    *WatchedBus
	Arena      *Arena
	Emitter    *Emitter
	Interp     *Interp
	Dispatcher *Dispatcher
	Opts       RuntimeOptions
	Log        *ErrorLog
}

// NewEngine builds an Engine for target using opts, allocating a fresh
// arena and guest bus.
func NewEngine(target Target, opts RuntimeOptions) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, SetupError(err.Error())
	}
	VerboseMode = opts.Verbose

	arena, err := NewArena(opts.SlotSize)
	if err != nil {
		return nil, err
	}

	log := NewErrorLog(256)
	bus := NewFlatBus()
	watched := NewWatchedBus(bus, arena, log)
	interp := NewInterp(watched).WithStackValidator(NewGuestStackValidator(log))
	emitter := NewEmitter(target, arena, opts, log)
	dispatcher := NewDispatcher(emitter, interp, arena, watched, opts, log, target)
	watched.SetInvalidationHook(dispatcher.NoteInvalidation)

	return &Engine{
		Target:     target,
		CPU:        NewCPUState(),
		Bus:        bus,
		Watched:    watched,
		Arena:      arena,
		Emitter:    emitter,
		Interp:     interp,
		Dispatcher: dispatcher,
		Opts:       opts,
		Log:        log,
	}, nil
}

// LoadProgram copies data into guest RAM starting at addr and parks PC
// there, ready for Run/Step.
func (e *Engine) LoadProgram(addr uint16, data []byte) {
	e.Bus.Load(addr, data)
	e.CPU.PC = addr
}

// Step runs exactly one dispatch cycle (one compiled block, or one
// interpreted instruction if the block degraded to a TRAP) and returns
// the guest (6502) cycle count charged.
func (e *Engine) Step() int {
	return e.Dispatcher.Step(e.CPU)
}

// Run drives Step until the cycle budget is exhausted, returning the
// total cycles actually consumed. A budget of 0 means run until the
// guest halts itself. Run also stops whenever a Step leaves PC
// unchanged: the EXIT pseudo-opcode ($02), a jump or branch to itself,
// or a BRK whose vector points back at the BRK.
func (e *Engine) Run(budget int64) int64 {
	var spent int64
	for budget <= 0 || spent < budget {
		before := e.CPU.PC
		spent += int64(e.Step())
		if e.CPU.PC == before {
			break
		}
	}
	return spent
}

// Compact resets the arena's per-address invalidation counters that are
// below coldThreshold, without a full Reset, and returns how many it
// reset. Installed code and the dispatcher's promotion state are left
// as they are.
func (e *Engine) Compact(coldThreshold int) int {
	return e.Arena.Compact(coldThreshold)
}

// Reset clears the arena and guest RAM and rewinds the CPU to power-on
// state, but keeps the underlying mmap mapping alive -- per the
// resolved Open Question, the arena is never freed across Reset, only
// zeroed and re-marked writable, so repeated Reset calls in a test
// harness don't pay mmap/munmap cost per run.
func (e *Engine) Reset() error {
	if err := e.Arena.Reset(); err != nil {
		return err
	}
	e.Bus = NewFlatBus()
	e.Watched = NewWatchedBus(e.Bus, e.Arena, e.Log)
	e.Interp = NewInterp(e.Watched).WithStackValidator(NewGuestStackValidator(e.Log))
	e.Dispatcher = NewDispatcher(e.Emitter, e.Interp, e.Arena, e.Watched, e.Opts, e.Log, e.Target)
	e.Watched.SetInvalidationHook(e.Dispatcher.NoteInvalidation)
	e.CPU = NewCPUState()
	return nil
}

// Close releases the arena's mmap mapping. Call once at process exit.
func (e *Engine) Close() error {
	return e.Arena.Close()
}
