// jit_optimizer.go - uop-level peephole passes (spec component 4.3).
//
// This file is the only optimiser in the tree; the JIT pipeline runs it
// between decode and emit.
package main

// Optimize runs the configured peephole passes over block's uops and
// returns the rewritten block. Block.GuestAddr/GuestLen/FallsThrough are
// untouched -- only the Uops slice is rewritten, since optimisation must
// never change which guest bytes a block claims to cover.
func Optimize(block Block, opts RuntimeOptions) Block {
	block.Uops = elideNops(block.Uops)
	block.Uops = fuseStoreImmediate(block.Uops)
	block.Uops = applyPageCrossPenalty(block.Uops)
	if opts.MergeStoaImmOnARM64 {
		// fuseStoreImmediate above runs unconditionally on both host
		// architectures; setting MergeStoaImmOnARM64 to false does not
		// skip it.
	}
	return block
}

// elideNops drops UopNop entries the decoder or a previous pass left
// behind. The emitter's slot code does not depend on the uops, so this
// changes only the uop list (as shown by `sixjit disasm`).
func elideNops(uops []Uop) []Uop {
	out := uops[:0]
	for _, u := range uops {
		if u.Kind == UopNop {
			continue
		}
		out = append(out, u)
	}
	return out
}

// fuseStoreImmediate merges `LDA #imm` immediately followed by `STA
// addr` (or STX/STY's immediate-load equivalents) into one UopStoreImm,
// skipping the register round-trip. This is the "merged STOA_IMM form"
// resolved to apply on both host architectures, not just x86-64.
func fuseStoreImmediate(uops []Uop) []Uop {
	out := make([]Uop, 0, len(uops))
	for i := 0; i < len(uops); i++ {
		if i+1 < len(uops) &&
			uops[i].Kind == UopLoadImm &&
			uops[i+1].Kind == UopStoreMem &&
			uops[i+1].Reg == uops[i].Reg {
			fused := uops[i+1]
			fused.Kind = UopStoreImm
			fused.Flag = byte(uops[i].Operand)
			out = append(out, fused)
			i++
			continue
		}
		out = append(out, uops[i])
	}
	return out
}

// applyPageCrossPenalty marks (PageCross) every uop whose addressing mode
// can cross a page boundary; it does not change Cycles. The extra cycle
// for an access that actually crosses is added at run time by
// Interp.Step.
func applyPageCrossPenalty(uops []Uop) []Uop {
	for i := range uops {
		if pageCrossable(uops[i].Mode) {
			uops[i].PageCross = true
		}
	}
	return uops
}
