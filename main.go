// main.go - sixjit: a 6502 dynamic binary translator.
package main

import (
	"fmt"
	"os"
)

const versionString = "sixjit 0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "-V", "--version", "version":
		fmt.Println(versionString)
	case "help", "-h", "--help":
		printUsage()
	case "run":
		if err := cmdRun(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "sixjit run: %v\n", err)
			os.Exit(1)
		}
	case "disasm":
		if err := cmdDisasm(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "sixjit disasm: %v\n", err)
			os.Exit(1)
		}
	case "bench":
		if err := cmdBench(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "sixjit bench: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "sixjit: unknown command %q\n", os.Args[1])
		if guess := suggestCommand(os.Args[1]); guess != "" {
			fmt.Fprintf(os.Stderr, "did you mean %q?\n", guess)
		}
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `sixjit - a 6502 dynamic binary translator

Usage:
  sixjit run <image> [flags]      load a raw (or ELF-packaged) 6502 image and run it
  sixjit disasm <image> <addr>    decode+optimise one block and print its uops
  sixjit bench <image> <addr>     compare JIT vs. interpreter-only timing
  sixjit version                  print version information
  sixjit help                     show this message

Flags (run/disasm/bench):
  -load=ADDR       guest load address for the image (default $0600)
  -pc=ADDR          initial program counter (defaults to -load)
  -budget=N         cycle budget for run/bench (0 = until halted; bench uses 1000000)
  -slot-size=N      arena bytes reserved per 6502 address
  -optimize=BOOL    enable uop-level peephole optimisation
  -verbose=BOOL     print logged diagnostics and emitted host instructions`)
}
