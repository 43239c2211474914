// emitter.go - the backend emitter (spec component 4.4): turns a
// decoded, optimised Block into host bytes and installs them into the
// arena.
//
// Every compiled slot is the same two real instructions regardless of
// what 6502 instruction lives at that address: a CALL into the native
// bridge's trampoline (native.go/native_$GOARCH.s), which runs exactly
// one guest instruction through Interp.Step and hands back the next
// native entry point, followed by a JMP through that result. Interp.Step
// already re-reads the opcode byte and handles every addressing mode,
// flag, and control-flow case (including JSR/RTS/RTI/BRK) on its own, so
// there's no per-uop-kind code to generate here -- decode/optimize still
// run, to keep Block.GuestLen/FallsThrough accurate for the interpreter
// fallback path and the promotion policy, but the native path itself is
// uop-kind-agnostic.
package main

import (
	"fmt"
)

// trampolineRegName/resultRegName select the two fixed registers the
// native bridge uses per architecture (defined in native.go, alongside
// the Go-ABI register-pinning constraint that dictated the choice).
func trampolineRegName(arch Arch) string {
	if arch == ArchARM64 {
		return trampolineRegARM64
	}
	return trampolineRegX86
}

func resultRegName(arch Arch) string {
	if arch == ArchARM64 {
		return resultRegARM64
	}
	return resultRegX86
}

// Emitter compiles Blocks into host code and installs them into the
// arena, recovering from compilerError panics raised deep in Out/the
// ARM64 backend by degrading the offending block to a TRAP instead of
// letting the panic reach the dispatcher.
type Emitter struct {
	target Target
	arena  *Arena
	opts   RuntimeOptions
	log    *ErrorLog
}

func NewEmitter(target Target, arena *Arena, opts RuntimeOptions, log *ErrorLog) *Emitter {
	return &Emitter{target: target, arena: arena, opts: opts, log: log}
}

// Compile decodes, optimises, and emits the block starting at addr, and
// installs it into the arena. On any emit-time failure the address is
// installed with the same TRAP stub instead, so the dispatcher always
// has something runnable at addr.
func (e *Emitter) Compile(addr uint16, bus Bus, dynamic bool) (block Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			ee, ok := r.(EngineError)
			if !ok {
				ee = EngineError{Level: LevelError, Category: CategoryCompile, Message: fmt.Sprintf("%v", r)}
			}
			ee.Location.Addr = addr
			e.log.Add(ee)
			block = e.compileTrap(addr)
			err = nil
		}
	}()

	dec := NewDecoder(bus, e.opts, e.log)
	block = dec.DecodeBlock(addr, dynamic)
	if e.opts.Optimize {
		block = Optimize(block, e.opts)
	}

	buf := NewCodeBuffer(fmt.Sprintf("block-%04X", addr))
	out := NewOut(e.target, buf)
	e.emitEntry(out)
	buf.Commit()

	if ierr := e.arena.Install(addr, buf.Bytes(), block.GuestLen); ierr != nil {
		e.log.Add(CompileError(addr, 0, ierr.Error()))
		return e.compileTrap(addr), nil
	}
	return block, nil
}

// compileTrap installs the same native-entry stub at addr with a
// one-byte guest length: an undecodable opcode still has to run through
// Interp.Step to produce the fault/log entry the decoder already
// recorded, so there is nothing TRAP needs that the generic entry
// doesn't already do.
func (e *Emitter) compileTrap(addr uint16) Block {
	buf := NewCodeBuffer(fmt.Sprintf("trap-%04X", addr))
	out := NewOut(e.target, buf)
	e.emitEntry(out)
	buf.Commit()
	_ = e.arena.Install(addr, buf.Bytes(), 1)
	return Block{GuestAddr: addr, GuestLen: 1, Uops: []Uop{{Kind: UopTrap, Operand: uint16(addr)}}}
}

// emitEntry emits the two instructions every compiled slot consists of:
// call into the native bridge, then jump through whatever it returns.
func (e *Emitter) emitEntry(out *Out) {
	arch := e.target.Arch()
	out.CallRegister(trampolineRegName(arch))
	out.JmpRegister(resultRegName(arch))
}

// BuildReturnStub compiles the bare RET every native call chain
// eventually unwinds to, through the same Out/CodeBuffer pipeline as
// every other piece of emitted code, and installs it into its own RX
// page rather than the arena -- it belongs to no guest address, only to
// the native dispatch machinery.
func (e *Emitter) BuildReturnStub() (uintptr, error) {
	buf := NewCodeBuffer("return-stub")
	out := NewOut(e.target, buf)
	return buildReturnStub(out, buf)
}
