package rtl

// Edge selects the active clock or reset edge.
type Edge uint8

// Clock and reset edges.
const (
	Rising Edge = iota
	Falling
)

func (e Edge) String() string {
	if e == Falling {
		return "falling"
	}
	return "rising"
}

// Level selects the active clear level.
type Level uint8

// Clear levels.
const (
	High Level = iota
	Low
)

func (l Level) String() string {
	if l == Low {
		return "low"
	}
	return "high"
}

// A Spec is the clock/reset/clear/enable template governing a register
// or memory's update semantics. Reset, clear and enable are
// independently optional; absent fields hold the Empty sentinel.
//
// Downstream consumers interpret the priority as reset over clear over
// enable over the plain update; this package encodes that ordering
// structurally in register dependency lists and does not re-validate
// the interpretation.
//
type Spec struct {
	Clock      *Signal
	ClockEdge  Edge
	Reset      *Signal
	ResetEdge  Edge
	ResetTo    *Signal // value loaded on reset; all-zero when left Empty
	Clear      *Signal
	ClearLevel Level
	ClearTo    *Signal // value loaded on clear; all-zero when left Empty
	Enable     *Signal
}

// NewSpec returns the template for a rising-edge clocked register with
// no reset, clear or enable. Bind reset and clear with the With
// methods.
//
func NewSpec(clock *Signal) Spec {
	return Spec{
		Clock:   clock,
		Reset:   Empty,
		ResetTo: Empty,
		Clear:   Empty,
		ClearTo: Empty,
		Enable:  Empty,
	}
}

// The With methods return a copy of the spec with only the given
// fields replaced.

// WithClockEdge returns a copy of s clocked on the given edge.
func (s Spec) WithClockEdge(e Edge) Spec {
	s.ClockEdge = e
	return s
}

// WithReset returns a copy of s with an asynchronous reset bound.
func (s Spec) WithReset(reset *Signal, edge Edge) Spec {
	s.Reset = reset
	s.ResetEdge = edge
	return s
}

// WithResetTo returns a copy of s loading v on reset.
func (s Spec) WithResetTo(v *Signal) Spec {
	s.ResetTo = v
	return s
}

// WithClear returns a copy of s with a synchronous clear bound.
func (s Spec) WithClear(clear *Signal, level Level) Spec {
	s.Clear = clear
	s.ClearLevel = level
	return s
}

// WithClearTo returns a copy of s loading v on clear.
func (s Spec) WithClearTo(v *Signal) Spec {
	s.ClearTo = v
	return s
}

// WithEnable returns a copy of s gated by the given enable.
func (s Spec) WithEnable(enable *Signal) Spec {
	s.Enable = enable
	return s
}

// triviallyTrue reports whether an enable operand contributes nothing:
// absent, or the always-true 1 bit constant.
func triviallyTrue(s *Signal) bool {
	return s.IsEmpty() || (s.Kind() == KindConst && s.Bits() == "1")
}

// formSpec validates a spec against the data width of the node under
// construction and completes its defaults: absent reset and clear
// values materialize as all-zero at the data width, and the effective
// enable combines the spec's enable with the call-site enable. It runs
// at every register and memory instantiation.
//
func formSpec(b *Base, op string, s Spec, enable *Signal, width int) (Spec, error) {
	if s.Clock.IsEmpty() {
		return Spec{}, &EmptyError{Op: op + ": clock"}
	}
	if s.Clock.Width() != 1 {
		return Spec{}, &WidthError{Op: op, Arg: "clock", Sig: s.Clock, Want: 1, Got: s.Clock.Width()}
	}
	for _, c := range []struct {
		arg string
		sig *Signal
	}{
		{"reset", s.Reset},
		{"clear", s.Clear},
		{"enable", s.Enable},
		{"enable", enable},
	} {
		if !c.sig.IsEmpty() && c.sig.Width() != 1 {
			return Spec{}, &WidthError{Op: op, Arg: c.arg, Sig: c.sig, Want: 1, Got: c.sig.Width()}
		}
	}
	if !s.Reset.IsEmpty() {
		if s.ResetTo.IsEmpty() {
			s.ResetTo = Zero(b, width)
		} else if s.ResetTo.Width() != width {
			return Spec{}, &WidthError{Op: op, Arg: "reset value", Sig: s.ResetTo, Want: width, Got: s.ResetTo.Width()}
		}
	}
	if !s.Clear.IsEmpty() {
		if s.ClearTo.IsEmpty() {
			s.ClearTo = Zero(b, width)
		} else if s.ClearTo.Width() != width {
			return Spec{}, &WidthError{Op: op, Arg: "clear value", Sig: s.ClearTo, Want: width, Got: s.ClearTo.Width()}
		}
	}
	// effective enable: AND of the spec enable and the call-site
	// enable, collapsing trivially true operands.
	switch {
	case triviallyTrue(s.Enable) && triviallyTrue(enable):
		s.Enable = b.Const("1")
	case triviallyTrue(s.Enable):
		s.Enable = enable
	case triviallyTrue(enable):
		// keep s.Enable
	default:
		s.Enable = b.And(s.Enable, enable)
	}
	return s, nil
}

// specDeps returns the spec's contribution to a register dependency
// list: the five optional slots in priority order, then the clock.
func specDeps(s Spec) []*Signal {
	return []*Signal{s.Reset, s.ResetTo, s.Clear, s.ClearTo, s.Enable, s.Clock}
}

// Reg returns a register of d governed by spec. The call-site enable
// combines with the spec's enable (pass Empty for none). The resulting
// dependency list is (data, reset, reset-value, clear, clear-value,
// enable, clock): the first six slots encode the update priority
// structurally, the clock rides last so that graph traversal reaches
// clock wires. Absent optionals keep their slot as Empty.
//
func (b *Base) Reg(spec Spec, enable, d *Signal) (*Signal, error) {
	if d.IsEmpty() {
		return nil, &EmptyError{Op: "reg: data"}
	}
	fs, err := formSpec(b, "reg", spec, enable, d.Width())
	if err != nil {
		return nil, err
	}
	deps := append([]*Signal{d}, specDeps(fs)...)
	n := b.node(KindReg, d.Width(), deps...)
	n.spec = fs
	return n, nil
}
