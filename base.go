package rtl

import (
	"strings"

	"github.com/pkg/errors"
)

// Base is the primitive operator builder: it constructs nodes exactly
// as asked, with no simplification. Width rules are opcode-specific;
// equal operand widths on binary arithmetic/logic ops are assumed, not
// enforced (callers such as the comb helpers pre-validate).
//
// Base panics with typed errors on programmer misuse (invalid literals,
// select bounds, empty mux case lists) and returns errors from the
// stateful operations (Assign, Reg, memory construction).
//
type Base struct {
	uids *Uids
}

// NewBase returns a Base allocating uids from u. A nil u selects the
// process-wide default allocator.
//
func NewBase(u *Uids) *Base {
	if u == nil {
		u = defaultUids
	}
	return &Base{uids: u}
}

func (b *Base) node(kind Kind, width int, deps ...*Signal) *Signal {
	return &Signal{uid: b.uids.Next(), kind: kind, width: width, deps: deps}
}

// Const returns a constant node for the given bit literal, most
// significant bit first. Width is the literal length, so arbitrary
// widths are exact. Invalid literals panic.
//
func (b *Base) Const(bits string) *Signal {
	if len(bits) == 0 {
		panic(errors.New("const: empty literal"))
	}
	for _, c := range bits {
		if c != '0' && c != '1' {
			panic(errors.Errorf("const: invalid literal %q", bits))
		}
	}
	n := b.node(KindConst, len(bits))
	n.bits = bits
	return n
}

// Wire returns an undriven wire of the given width. Its driver is set
// exactly once with Assign.
//
func (b *Base) Wire(width int) *Signal {
	if width <= 0 {
		panic(errors.Errorf("wire: invalid width %d", width))
	}
	return b.node(KindWire, width, Empty)
}

// Assign sets d as the driver of wire w. The target must be an
// undriven wire and d must match its width; each violation is reported
// as an AssignError with the corresponding cause.
//
func (b *Base) Assign(w, d *Signal) error {
	if w.Kind() != KindWire {
		return &AssignError{Cause: AssignNotAWire, Wire: w, Value: d}
	}
	if w.driven {
		return &AssignError{Cause: AssignAlreadyDriven, Wire: w, Value: d}
	}
	if d.Width() != w.width {
		return &AssignError{Cause: AssignWidthMismatch, Wire: w, Value: d}
	}
	w.deps[0] = d
	w.driven = true
	return nil
}

func (b *Base) binary(op Op, width int, x, y *Signal) *Signal {
	n := b.node(KindOp, width, x, y)
	n.op = op
	return n
}

// Add returns x + y at the operands' width.
func (b *Base) Add(x, y *Signal) *Signal { return b.binary(OpAdd, x.Width(), x, y) }

// Sub returns x - y at the operands' width.
func (b *Base) Sub(x, y *Signal) *Signal { return b.binary(OpSub, x.Width(), x, y) }

// And returns the bitwise conjunction of x and y.
func (b *Base) And(x, y *Signal) *Signal { return b.binary(OpAnd, x.Width(), x, y) }

// Or returns the bitwise disjunction of x and y.
func (b *Base) Or(x, y *Signal) *Signal { return b.binary(OpOr, x.Width(), x, y) }

// Xor returns the bitwise exclusive or of x and y.
func (b *Base) Xor(x, y *Signal) *Signal { return b.binary(OpXor, x.Width(), x, y) }

// Eq returns the 1 bit equality of x and y.
func (b *Base) Eq(x, y *Signal) *Signal { return b.binary(OpEq, 1, x, y) }

// Lt returns the 1 bit unsigned comparison x < y.
func (b *Base) Lt(x, y *Signal) *Signal { return b.binary(OpLt, 1, x, y) }

// Mulu returns the unsigned product of x and y at the sum of the
// operand widths. No implicit sign extension takes place.
//
func (b *Base) Mulu(x, y *Signal) *Signal {
	return b.binary(OpMulu, x.Width()+y.Width(), x, y)
}

// Muls returns the signed product of x and y at the sum of the operand
// widths.
//
func (b *Base) Muls(x, y *Signal) *Signal {
	return b.binary(OpMuls, x.Width()+y.Width(), x, y)
}

// Not returns the bitwise complement of x at its width.
func (b *Base) Not(x *Signal) *Signal {
	n := b.node(KindOp, x.Width(), x)
	n.op = OpNot
	return n
}

// mergeConstRuns replaces every maximal run of two or more adjacent
// constant operands with a single wider constant. Lone constants are
// kept as is.
func mergeConstRuns(b *Base, parts []*Signal) []*Signal {
	out := make([]*Signal, 0, len(parts))
	var run []*Signal
	flush := func() {
		switch len(run) {
		case 0:
		case 1:
			out = append(out, run[0])
		default:
			var sb strings.Builder
			for _, p := range run {
				sb.WriteString(p.bits)
			}
			out = append(out, b.Const(sb.String()))
		}
		run = run[:0]
	}
	for _, p := range parts {
		if p.Kind() == KindConst {
			run = append(run, p)
			continue
		}
		flush()
		out = append(out, p)
	}
	flush()
	return out
}

// Concat concatenates the operands left to right, the first operand
// occupying the most significant bits. Maximal runs of adjacent
// constants are merged eagerly; when the reduced list has exactly one
// element that element is returned directly, with no Concat node
// allocated.
//
func (b *Base) Concat(parts ...*Signal) *Signal {
	if len(parts) == 0 {
		panic(errors.New("concat: no operands"))
	}
	parts = mergeConstRuns(b, parts)
	if len(parts) == 1 {
		return parts[0]
	}
	w := 0
	for _, p := range parts {
		w += p.Width()
	}
	n := b.node(KindOp, w, parts...)
	n.op = OpConcat
	return n
}

// Select returns bits high down to low of d, width high-low+1. Bounds
// outside the operand, or inverted, panic with a BoundsError.
//
func (b *Base) Select(d *Signal, high, low int) *Signal {
	if low < 0 || high < low || high >= d.Width() {
		panic(&BoundsError{High: high, Low: low, Width: d.Width()})
	}
	n := b.node(KindSelect, high-low+1, d)
	n.high, n.low = high, low
	return n
}

// Mux returns a multiplexer selecting among cases by the numeric value
// of sel. The result takes the first case's width. The selector range
// is not checked at construction time; resolution of out-of-range
// selectors is a downstream concern.
//
func (b *Base) Mux(sel *Signal, cases ...*Signal) *Signal {
	if len(cases) == 0 {
		panic(errors.New("mux: no cases"))
	}
	deps := make([]*Signal, 0, len(cases)+1)
	deps = append(deps, sel)
	deps = append(deps, cases...)
	n := b.node(KindOp, cases[0].Width(), deps...)
	n.op = OpMux
	return n
}
