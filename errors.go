package rtl

import (
	"fmt"
	"strconv"
)

// Construction-time invariant violations are reported as the typed
// errors below so that callers can inspect the offending signals and
// scalar context programmatically. These are design errors, not
// transient faults; nothing in this package retries them.

// An EmptyError reports an operation attempted on the Empty sentinel.
//
type EmptyError struct {
	Op string // the operation that was attempted
}

func (e *EmptyError) Error() string {
	return e.Op + ": empty signal"
}

// AssignCause discriminates the ways a wire assignment can fail.
type AssignCause int

// Assignment failure causes.
const (
	AssignNotAWire AssignCause = iota
	AssignAlreadyDriven
	AssignWidthMismatch
)

// An AssignError reports an invalid wire assignment.
//
type AssignError struct {
	Cause AssignCause
	Wire  *Signal // assignment target
	Value *Signal // driving expression
}

func (e *AssignError) Error() string {
	switch e.Cause {
	case AssignNotAWire:
		return "assign: target " + e.Wire.String() + " is not a wire"
	case AssignAlreadyDriven:
		return "assign: wire " + e.Wire.String() + " already assigned"
	default:
		return "assign: wire " + e.Wire.String() + " has width " +
			strconv.Itoa(e.Wire.Width()) + ", expression " + e.Value.String() +
			" has width " + strconv.Itoa(e.Value.Width())
	}
}

// A WidthError reports a signal whose width does not match what a
// constructor requires of it.
//
type WidthError struct {
	Op   string  // constructor reporting the error
	Arg  string  // which argument is at fault
	Sig  *Signal // the offending signal
	Want int
	Got  int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("%s: %s %s has width %d, want %d", e.Op, e.Arg, e.Sig, e.Got, e.Want)
}

// A BoundsError reports select bounds outside the operand, or inverted.
//
type BoundsError struct {
	High, Low int
	Width     int // operand width
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("select [%d:%d] out of bounds for width %d", e.High, e.Low, e.Width)
}

// A MemError reports a single memory or multiport-memory validation
// failure by name. Port is the index of the offending write port, or -1
// when the failure is not tied to one.
//
type MemError struct {
	Op    string // Memory or MultiportMemory
	Field string // named input at fault (size, write enable, read address, ...)
	Port  int
	Msg   string
}

func (e *MemError) Error() string {
	if e.Port >= 0 {
		return fmt.Sprintf("%s: port %d: %s: %s", e.Op, e.Port, e.Field, e.Msg)
	}
	return e.Op + ": " + e.Field + ": " + e.Msg
}

// A PortError reports a circuit port-contract violation: an invalid
// output, a missing or extra port versus an expected interface, a width
// mismatch, or a phantom-input collision.
//
type PortError struct {
	Circuit string
	Port    string
	Msg     string
}

func (e *PortError) Error() string {
	return "circuit " + e.Circuit + ": port " + e.Port + ": " + e.Msg
}

// A LoopError reports a combinational loop: a dependency cycle with no
// register or memory on it. Path holds the signals along the cycle.
//
type LoopError struct {
	Path []*Signal
}

func (e *LoopError) Error() string {
	s := "combinational loop:"
	for _, n := range e.Path {
		s += " " + n.String()
	}
	return s
}
