// native.go - the asm bridge between a compiled arena slot's native
// bytes and the Go-side uop semantics in interp.go (spec component 4.6,
// "jit_enter").
//
// Every compiled slot is exactly two real instructions: a CALL into
// sixjitHelperTrampoline (asm, native_$GOARCH.s) and a JMP through
// whatever address that call leaves in the result register. The
// trampoline's entire job is bridging Go's ABI: it calls helperBridge,
// a normal Go function, and hands its uintptr result back to the arena
// code via the result register instead of the stack. helperBridge runs
// exactly one 6502 instruction through Interp.Step and returns either
// the next arena slot's host entry point (if it's already installed) or
// the shared return stub, so the dispatcher regains control.
//
// Picking a trampoline/result register pair is the one place this file
// has to be careful: Go's ABIInternal permanently pins R14 as the
// current goroutine pointer on amd64 (X28 on arm64), so any register
// this bridge clobbers across the native/Go boundary must avoid those.
// r13/r12 and x26/x25 are ordinary, unpinned registers under both ABIs.
package main

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	trampolineRegX86   = "r13"
	resultRegX86       = "r12"
	trampolineRegARM64 = "x26"
	resultRegARM64     = "x25"
)

// nativeStepSlice bounds how many guest instructions a single chain of
// slot-to-slot native JMPs may run before helperBridge forces a return
// to the dispatcher, so Engine.Run's cycle budget stays responsive even
// though chained slots never otherwise return to Go.
const nativeStepSlice = 1024

// nativeExecContext is the state one callArenaSlot entry threads through
// every helperBridge call it makes via the trampoline. It's a single
// package-level value rather than an argument to helperBridge because
// the trampoline calls helperBridge with Go's zero-argument ABI0
// convention -- passing it through registers the arena code doesn't
// otherwise reserve would cost another register pin for no benefit,
// since only one native call chain is ever active at a time (sixjit is
// single-threaded per Engine, same invariant arena.go's mprotect
// toggling already relies on).
var activeNative nativeExecContext

type nativeExecContext struct {
	cpu        *CPUState
	interp     *Interp
	arena      *Arena
	returnStub uintptr
	cycles     int
	remaining  int
}

// callArenaSlot is implemented in native_$GOARCH.s. It calls into entry
// (a host pointer returned by Arena.Lookup/SlotPtr) as a genuine native
// call and returns once the chain of slot-to-slot JMPs it starts has
// bottomed out at the return stub.
func callArenaSlot(entry uintptr)

// helperBridge runs exactly one guest instruction and decides where
// native execution resumes. Called only from sixjitHelperTrampoline,
// never directly from Go.
func helperBridge() uintptr {
	ctx := &activeNative
	ctx.cycles += ctx.interp.Step(ctx.cpu)
	ctx.remaining--
	if ctx.remaining <= 0 {
		return ctx.returnStub
	}
	if next := ctx.arena.Lookup(ctx.cpu.PC); next != 0 {
		return next
	}
	return ctx.returnStub
}

// runNative enters the arena at cpu.PC through the real native bridge
// and keeps chaining slot to slot until either nativeStepSlice
// instructions have run or the chain reaches an address that isn't
// compiled yet, at which point helperBridge hands control back via
// returnStub and this call returns the cycles actually charged.
func (d *Dispatcher) runNative(cpu *CPUState) int {
	entry := d.arena.Lookup(cpu.PC)
	if entry == 0 {
		return d.runBlockInterpreted(cpu, d.blocks[cpu.PC])
	}

	activeNative = nativeExecContext{
		cpu:        cpu,
		interp:     d.interp,
		arena:      d.arena,
		returnStub: d.returnStub,
		remaining:  nativeStepSlice,
	}
	callArenaSlot(entry)
	return activeNative.cycles
}

// buildReturnStub mmaps a small RX page holding the single bare RET
// instruction out emits, and returns its host address. This stub is not
// addressed by any guest PC -- it belongs to no arena slot, only to the
// native call chain's unwind path -- so it lives in its own page rather
// than the arena.
func buildReturnStub(out *Out, buf *CodeBuffer) (uintptr, error) {
	out.Ret()
	buf.Commit()
	return allocExecPage(buf.Bytes())
}

// allocExecPage copies code into a freshly mmap'd page and makes it
// executable, following the same mmap-then-mprotect sequence arena.go
// uses for the arena itself: write while writable, then flip to RX and
// never write to it again.
func allocExecPage(code []byte) (uintptr, error) {
	size := unix.Getpagesize()
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, SetupError("native: mmap return stub: " + err.Error())
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return 0, SetupError("native: mprotect return stub: " + err.Error())
	}
	return uintptr(unsafe.Pointer(&mem[0])), nil
}
