// stack_validator.go - optional diagnostic tracking of JSR/RTS call
// balance. Unlike a host stack, the 6502's stack pointer S just wraps
// silently past $00/$FF on real hardware -- that is legal behavior, not
// corruption, so this never panics or rewrites guest state. It exists to
// surface the one guest bug class worth a diagnostic: an RTS with no
// outstanding JSR, which almost always means a hand-written routine
// fell through into its own return address.
package main

import "fmt"

// GuestStackValidator tracks call depth across JSR/RTS (and the implied
// return of RTI) for one CPUState's lifetime.
type GuestStackValidator struct {
	depth  int
	log    *ErrorLog
	warned bool
}

func NewGuestStackValidator(log *ErrorLog) *GuestStackValidator {
	return &GuestStackValidator{log: log}
}

// EnterCall records a JSR.
func (v *GuestStackValidator) EnterCall() {
	v.depth++
}

// LeaveCall records an RTS or RTI executing at pc (the address the
// return lands on) and logs once the first time depth goes negative.
// It keeps tracking after that rather than clamping, since a guest
// program that deliberately manipulates S (common in reset/IRQ
// handlers) should not re-trigger the warning on every subsequent RTS.
func (v *GuestStackValidator) LeaveCall(pc uint16) {
	v.depth--
	if v.depth < 0 && !v.warned {
		v.warned = true
		if v.log != nil {
			v.log.Add(EngineError{
				Level:    LevelWarning,
				Category: CategoryDispatch,
				Message:  fmt.Sprintf("RTS/RTI with no matching JSR (landed at $%04X) -- stack pointer has wrapped", pc),
				Location: GuestLocation{Addr: pc},
				Context: EngineContext{
					HelpText: "real hardware keeps running with a wrapped S; this is only a diagnostic",
				},
			})
		}
	}
}

// Depth reports the current tracked call depth, for tests.
func (v *GuestStackValidator) Depth() int {
	return v.depth
}

// Reset clears tracked depth and the warned latch. Engine.Reset does not
// call it; it attaches a new validator instead.
func (v *GuestStackValidator) Reset() {
	v.depth = 0
	v.warned = false
}
