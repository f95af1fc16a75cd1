package rtl

import (
	"github.com/pkg/errors"
)

// Kind discriminates the signal node variants.
type Kind uint8

// Signal node kinds.
const (
	KindEmpty Kind = iota
	KindConst
	KindOp
	KindSelect
	KindWire
	KindReg
	KindMem
	KindMultiportMem
	KindMemReadPort
	KindInst
)

var kindNames = [...]string{
	KindEmpty:        "empty",
	KindConst:        "const",
	KindOp:           "op",
	KindSelect:       "select",
	KindWire:         "wire",
	KindReg:          "reg",
	KindMem:          "mem",
	KindMultiportMem: "multiport_mem",
	KindMemReadPort:  "mem_read_port",
	KindInst:         "inst",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + string(rune('0'+k)) + ")"
}

// Op is the opcode of a KindOp node.
type Op uint8

// Opcodes.
const (
	OpAdd Op = iota
	OpSub
	OpMulu
	OpMuls
	OpAnd
	OpOr
	OpXor
	OpEq
	OpNot
	OpLt
	OpConcat
	OpMux
)

var opNames = [...]string{
	OpAdd:    "add",
	OpSub:    "sub",
	OpMulu:   "mulu",
	OpMuls:   "muls",
	OpAnd:    "and",
	OpOr:     "or",
	OpXor:    "xor",
	OpEq:     "eq",
	OpNot:    "not",
	OpLt:     "lt",
	OpConcat: "concat",
	OpMux:    "mux",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op(" + string(rune('0'+o)) + ")"
}

// A Signal is one node of the expression graph. All nodes share the
// uid/names/width/deps record; the remaining fields are meaningful for
// specific kinds only. After construction, the only mutable parts are
// the name list (append-only) and, for wires, the driver (write-once).
//
type Signal struct {
	uid   Uid
	kind  Kind
	width int
	names []string // most recent first
	deps  []*Signal

	op        Op             // KindOp
	bits      string         // KindConst: bit characters, most significant first
	high, low int            // KindSelect
	driven    bool           // KindWire
	spec      Spec           // KindReg, KindMem
	size      int            // KindMem, KindMultiportMem
	inst      *Instantiation // KindInst
}

// Empty is the sentinel signal: uid 0, width 0, no dependencies, no
// names. Most operations on it fail. Absent optional signals (register
// resets, enables, ...) are represented by Empty.
var Empty = &Signal{}

// IsEmpty reports whether s is the Empty sentinel (or nil, which is
// treated the same).
//
func (s *Signal) IsEmpty() bool {
	return s == nil || s.kind == KindEmpty
}

// Uid returns the node's unique id. Empty has uid 0.
func (s *Signal) Uid() Uid {
	if s == nil {
		return 0
	}
	return s.uid
}

// Kind returns the node's variant tag.
func (s *Signal) Kind() Kind {
	if s == nil {
		return KindEmpty
	}
	return s.kind
}

// Width returns the node's bit count. Empty has width 0.
func (s *Signal) Width() int {
	if s == nil {
		return 0
	}
	return s.width
}

// Deps returns the node's ordered operand list. The semantics of each
// position are fixed per node kind; absent optional operands are Empty.
// Callers must not modify the returned slice.
//
func (s *Signal) Deps() []*Signal {
	if s == nil {
		return nil
	}
	return s.deps
}

// Names returns the node's user-assigned labels, most recent first.
// It fails with an EmptyError on the Empty sentinel.
//
func (s *Signal) Names() ([]string, error) {
	if s.IsEmpty() {
		return nil, &EmptyError{Op: "names"}
	}
	n := make([]string, len(s.names))
	copy(n, s.names)
	return n, nil
}

// HasName reports whether at least one label has been assigned.
func (s *Signal) HasName() bool {
	return !s.IsEmpty() && len(s.names) > 0
}

// AddName pushes a label onto the node's name list. It fails with an
// EmptyError on the Empty sentinel.
//
func (s *Signal) AddName(name string) error {
	if s.IsEmpty() {
		return &EmptyError{Op: "add name"}
	}
	if name == "" {
		return errors.Errorf("add name: empty name for signal %s", s)
	}
	s.names = append([]string{name}, s.names...)
	return nil
}

// Op returns the opcode of a KindOp node.
func (s *Signal) Op() Op { return s.op }

// Bits returns the literal of a KindConst node, most significant bit
// first, and "" for any other kind.
//
func (s *Signal) Bits() string { return s.bits }

// Bounds returns the (high, low) bit bounds of a KindSelect node.
func (s *Signal) Bounds() (high, low int) { return s.high, s.low }

// Driven reports whether a wire has been assigned. It is false for
// non-wire nodes.
//
func (s *Signal) Driven() bool { return s != nil && s.driven }

// RegSpec returns the resolved register specification of a KindReg or
// KindMem node.
//
func (s *Signal) RegSpec() Spec { return s.spec }

// MemSize returns the word count of a memory node, 0 otherwise.
func (s *Signal) MemSize() int { return s.size }

// Inst returns the instantiation descriptor of a KindInst node.
func (s *Signal) Inst() *Instantiation { return s.inst }

// named is a construction helper: it panics if the label cannot be
// attached, which only happens on programmer misuse of the sentinel.
func named(s *Signal, name string) *Signal {
	if err := s.AddName(name); err != nil {
		panic(err)
	}
	return s
}

// Named attaches a label to s and returns s, panicking on the Empty
// sentinel. It exists for fluent construction; use AddName when an
// error return is preferred.
//
func Named(s *Signal, name string) *Signal {
	return named(s, name)
}
