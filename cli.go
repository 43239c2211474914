// cli.go - sixjit's three subcommands: run, disasm, bench.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseAddr accepts "$0600", "0x0600", or a plain decimal string.
func parseAddr(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s = s[1:]
		base = 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

// runFlags are the flags shared by run/disasm/bench beyond RuntimeOptions.
type runFlags struct {
	load   string
	pc     string
	budget int64
}

func registerRunFlags(fs *flag.FlagSet, rf *runFlags) {
	fs.StringVar(&rf.load, "load", "$0600", "guest load address for the image")
	fs.StringVar(&rf.pc, "pc", "", "initial program counter (defaults to -load)")
	fs.Int64Var(&rf.budget, "budget", 0, "cycle budget (0 = until halted; bench uses 1000000)")
}

func newEngineFromFlags(args []string, name string) (*Engine, *runFlags, error) {
	opts := DefaultOptions()
	opts.ApplyEnv()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts.RegisterFlags(fs)
	rf := &runFlags{}
	registerRunFlags(fs, rf)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	eng, err := NewEngine(GetDefaultTarget(), opts)
	if err != nil {
		return nil, nil, err
	}
	return eng, rf, nil
}

func loadAndPlace(eng *Engine, rf *runFlags, imagePath string) (uint16, error) {
	loadAddr, err := parseAddr(rf.load)
	if err != nil {
		return 0, err
	}
	data, err := LoadImage(imagePath)
	if err != nil {
		return 0, err
	}
	eng.LoadProgram(loadAddr, data)

	if rf.pc != "" {
		pc, err := parseAddr(rf.pc)
		if err != nil {
			return 0, err
		}
		eng.CPU.PC = pc
	}
	return loadAddr, nil
}

// cmdRun loads a raw 6502 memory image, installs the initial block, and
// drives the dispatcher until the cycle budget (or guest halt) is reached.
func cmdRun(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: sixjit run <image> [flags]")
	}
	imagePath := args[0]

	eng, rf, err := newEngineFromFlags(args[1:], "sixjit run")
	if err != nil {
		return err
	}
	defer eng.Close()

	if _, err := loadAndPlace(eng, rf, imagePath); err != nil {
		return err
	}

	spent := eng.Run(rf.budget)
	fmt.Printf("halted at $%04X after %d cycles (A=$%02X X=$%02X Y=$%02X P=$%02X S=$%02X)\n",
		eng.CPU.PC, spent, eng.CPU.A, eng.CPU.X, eng.CPU.Y, eng.CPU.P, eng.CPU.S)
	for _, e := range eng.Log.Entries() {
		fmt.Println(e.Format(false))
	}
	return nil
}

// cmdDisasm runs the decoder and optimiser alone (no emission, no
// arena install) over one block and prints its uop sequence.
func cmdDisasm(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sixjit disasm <image> <addr> [flags]")
	}
	imagePath := args[0]
	addrStr := args[1]

	opts := DefaultOptions()
	opts.ApplyEnv()
	fs := flag.NewFlagSet("sixjit disasm", flag.ContinueOnError)
	opts.RegisterFlags(fs)
	rf := &runFlags{}
	registerRunFlags(fs, rf)
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	addr, err := parseAddr(addrStr)
	if err != nil {
		return err
	}
	loadAddr, err := parseAddr(rf.load)
	if err != nil {
		return err
	}

	data, err := LoadImage(imagePath)
	if err != nil {
		return err
	}
	bus := NewFlatBus()
	bus.Load(loadAddr, data)

	log := NewErrorLog(64)
	dec := NewDecoder(bus, opts, log)
	block := dec.DecodeBlock(addr, false)
	if opts.Optimize {
		block = Optimize(block, opts)
	}

	fmt.Printf("block $%04X, %d guest bytes, falls through: %v\n", block.GuestAddr, block.GuestLen, block.FallsThrough)
	for i, u := range block.Uops {
		fmt.Printf("  %3d: kind=%-14v reg=%-2s operand=$%04X cycles=%d pagecross=%v\n",
			i, u.Kind, u.Reg, u.Operand, u.Cycles, u.PageCross)
	}
	for _, e := range log.Entries() {
		fmt.Println(e.Format(false))
	}
	return nil
}

// cmdBench times JIT-dispatched execution against pure-interpreter
// execution of the same image, starting from the same initial state.
func cmdBench(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sixjit bench <image> <addr> [flags]")
	}
	imagePath := args[0]
	addrStr := args[1]

	eng, rf, err := newEngineFromFlags(args[2:], "sixjit bench")
	if err != nil {
		return err
	}
	defer eng.Close()

	addr, err := parseAddr(addrStr)
	if err != nil {
		return err
	}
	if _, err := loadAndPlace(eng, rf, imagePath); err != nil {
		return err
	}
	eng.CPU.PC = addr

	budget := rf.budget
	if budget <= 0 {
		budget = 1_000_000
	}

	jitStart := time.Now()
	jitCycles := eng.Run(budget)
	jitElapsed := time.Since(jitStart)

	if err := eng.Reset(); err != nil {
		return err
	}
	if _, err := loadAndPlace(eng, rf, imagePath); err != nil {
		return err
	}
	eng.CPU.PC = addr

	interpStart := time.Now()
	var interpCycles int64
	for interpCycles < budget {
		before := eng.CPU.PC
		interpCycles += int64(eng.Interp.Step(eng.CPU))
		if eng.CPU.PC == before {
			break
		}
	}
	interpElapsed := time.Since(interpStart)

	fmt.Printf("jit:    %d cycles in %s\n", jitCycles, jitElapsed)
	fmt.Printf("interp: %d cycles in %s\n", interpCycles, interpElapsed)
	return nil
}
