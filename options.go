// Completion: 100% - Configuration layer complete
package main

import (
	"flag"
	"fmt"

	env "github.com/xyproto/env/v2"
)

// RuntimeOptions configures one engine instance. CLI flags and environment
// variables both populate it; flags always win when both are set, matching
// c67's original precedence for -o/--output.
type RuntimeOptions struct {
	// SlotSize is the arena's per-address slot size in bytes. Must be a
	// power of two.
	SlotSize int

	// Optimize enables the uop-level peephole passes (NOP elision,
	// LDA #imm + STA fusion, page-cross marking). Off keeps the literal
	// uop translation -- useful when bisecting a miscompile.
	Optimize bool

	// DynamicTrigger is the number of invalidations an address must
	// accumulate before its block is promoted to decode operand/opcode
	// dynamically instead of baking them in as immediates.
	DynamicTrigger int

	// MergeStoaImmOnARM64 is read from flags and the environment, but
	// nothing consults it: the fused store-accumulator-immediate uop is
	// produced on both ARM64 and x86-64 whatever its value.
	MergeStoaImmOnARM64 bool

	// ColdSweepThreshold is read from flags and the environment, but the
	// engine does not pass it anywhere; Engine.Compact takes its threshold
	// as an argument.
	ColdSweepThreshold int

	Verbose bool
}

// VerboseMode mirrors the active RuntimeOptions.Verbose for the backend
// emission files (mov.go, call.go, etc.), which log through this package
// global the same way the teacher's code generator did.
var VerboseMode bool

const (
	envSlotSize       = "SIXJIT_SLOT_SIZE"
	envOptimize       = "SIXJIT_OPTIMIZE"
	envDynamicTrigger = "SIXJIT_DYNAMIC_TRIGGER"
	envMergeStoaARM64 = "SIXJIT_MERGE_STOA_ARM64"
	envColdSweep      = "SIXJIT_COLD_SWEEP"
	envVerbose        = "SIXJIT_VERBOSE"
)

// DefaultOptions returns the baseline configuration before env or flag
// overrides are applied.
func DefaultOptions() RuntimeOptions {
	return RuntimeOptions{
		SlotSize:            DefaultSlotSize,
		Optimize:            true,
		DynamicTrigger:      3,
		MergeStoaImmOnARM64: true,
		ColdSweepThreshold:  2,
	}
}

// ApplyEnv overrides opts in place from SIXJIT_* environment variables.
// Grounded on the unused env/v2 dependency already present in the
// original go.mod: every knob gets a same-named override here.
func (opts *RuntimeOptions) ApplyEnv() {
	opts.SlotSize = env.Int(envSlotSize, opts.SlotSize)
	if env.Has(envOptimize) {
		opts.Optimize = env.Bool(envOptimize)
	}
	opts.DynamicTrigger = env.Int(envDynamicTrigger, opts.DynamicTrigger)
	if env.Has(envMergeStoaARM64) {
		opts.MergeStoaImmOnARM64 = env.Bool(envMergeStoaARM64)
	}
	opts.ColdSweepThreshold = env.Int(envColdSweep, opts.ColdSweepThreshold)
	if env.Has(envVerbose) {
		opts.Verbose = env.Bool(envVerbose)
	}
}

// RegisterFlags binds opts to a flag.FlagSet so CLI flags can override
// whatever ApplyEnv already set. Call ApplyEnv before RegisterFlags so the
// flag defaults shown in -help reflect the environment.
func (opts *RuntimeOptions) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&opts.SlotSize, "slot-size", opts.SlotSize, "arena bytes reserved per 6502 address (power of two)")
	fs.BoolVar(&opts.Optimize, "optimize", opts.Optimize, "enable uop-level peephole optimization")
	fs.IntVar(&opts.DynamicTrigger, "dynamic-trigger", opts.DynamicTrigger, "invalidations before a block is promoted to dynamic decode")
	fs.BoolVar(&opts.MergeStoaImmOnARM64, "merge-stoa-imm-arm64", opts.MergeStoaImmOnARM64, "fused store-accumulator-immediate on ARM64 (has no effect)")
	fs.IntVar(&opts.ColdSweepThreshold, "cold-sweep-threshold", opts.ColdSweepThreshold, "Compact threshold (not passed to Compact by the engine)")
	fs.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "print logged diagnostics (decode/compile errors, invalidations) and emitted host instructions to stderr")
}

// Validate rejects a configuration the engine cannot run with. Only
// setup-time failures like this return a Go error (spec's error model);
// everything after the engine starts degrades via EngineError instead.
func (opts RuntimeOptions) Validate() error {
	if opts.SlotSize <= 0 || opts.SlotSize&(opts.SlotSize-1) != 0 {
		return fmt.Errorf("options: slot-size %d must be a power of two", opts.SlotSize)
	}
	if opts.DynamicTrigger < 1 {
		return fmt.Errorf("options: dynamic-trigger must be >= 1, got %d", opts.DynamicTrigger)
	}
	return nil
}

// LoadOptions builds a RuntimeOptions from defaults, then environment,
// and returns it with a new flag set bound to it. The caller parses that
// flag set, which then overrides the values.
func LoadOptions() (RuntimeOptions, *flag.FlagSet) {
	opts := DefaultOptions()
	opts.ApplyEnv()
	fs := flag.NewFlagSet("sixjit", flag.ContinueOnError)
	opts.RegisterFlags(fs)
	return opts, fs
}

