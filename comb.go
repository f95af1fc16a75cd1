package rtl

import (
	"strings"

	"github.com/pkg/errors"
)

// Comb is the primitive operator contract. Base implements it with
// plain node construction and Fold with constant propagation; anything
// expressible purely in terms of these primitives is written once as a
// function over Comb and works with either implementation.
//
type Comb interface {
	Const(bits string) *Signal
	Wire(width int) *Signal
	Assign(w, d *Signal) error
	Add(x, y *Signal) *Signal
	Sub(x, y *Signal) *Signal
	Mulu(x, y *Signal) *Signal
	Muls(x, y *Signal) *Signal
	And(x, y *Signal) *Signal
	Or(x, y *Signal) *Signal
	Xor(x, y *Signal) *Signal
	Not(x *Signal) *Signal
	Eq(x, y *Signal) *Signal
	Lt(x, y *Signal) *Signal
	Concat(parts ...*Signal) *Signal
	Select(d *Signal, high, low int) *Signal
	Mux(sel *Signal, cases ...*Signal) *Signal
}

// Zero returns the all-zero constant of the given width.
func Zero(c Comb, width int) *Signal {
	return c.Const(strings.Repeat("0", width))
}

// Ones returns the all-ones constant of the given width.
func Ones(c Comb, width int) *Signal {
	return c.Const(strings.Repeat("1", width))
}

// One returns the constant 1 at the given width.
func One(c Comb, width int) *Signal {
	return ConstUint(c, 1, width)
}

// ConstUint returns a constant of the given width holding v. It panics
// if v does not fit.
//
func ConstUint(c Comb, v uint64, width int) *Signal {
	if width <= 0 || (width < 64 && v>>uint(width) != 0) {
		panic(errors.Errorf("const: value %d does not fit in %d bits", v, width))
	}
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		b[width-1-i] = byte('0' + (v>>uint(i))&1)
	}
	return c.Const(string(b))
}

// Bit returns bit i of s as a 1 bit signal.
func Bit(c Comb, s *Signal, i int) *Signal {
	return c.Select(s, i, i)
}

// Msb returns the most significant bit of s.
func Msb(c Comb, s *Signal) *Signal {
	return c.Select(s, s.Width()-1, s.Width()-1)
}

// Lsb returns the least significant bit of s.
func Lsb(c Comb, s *Signal) *Signal {
	return c.Select(s, 0, 0)
}

// Repeat concatenates n copies of s.
func Repeat(c Comb, s *Signal, n int) *Signal {
	if n <= 0 {
		panic(errors.Errorf("repeat: invalid count %d", n))
	}
	parts := make([]*Signal, n)
	for i := range parts {
		parts[i] = s
	}
	return c.Concat(parts...)
}

// Resize zero-extends or truncates s to the given width. Resizing to
// the current width returns s unchanged.
//
func Resize(c Comb, s *Signal, width int) *Signal {
	w := s.Width()
	switch {
	case width <= 0:
		panic(errors.Errorf("resize: invalid width %d", width))
	case width == w:
		return s
	case width < w:
		return c.Select(s, width-1, 0)
	default:
		return c.Concat(Zero(c, width-w), s)
	}
}

// ResizeSigned sign-extends or truncates s to the given width.
func ResizeSigned(c Comb, s *Signal, width int) *Signal {
	w := s.Width()
	switch {
	case width <= 0:
		panic(errors.Errorf("resize: invalid width %d", width))
	case width == w:
		return s
	case width < w:
		return c.Select(s, width-1, 0)
	default:
		return c.Concat(Repeat(c, Msb(c, s), width-w), s)
	}
}

func reduce(c Comb, s *Signal, f func(x, y *Signal) *Signal) *Signal {
	r := Bit(c, s, s.Width()-1)
	for i := s.Width() - 2; i >= 0; i-- {
		r = f(r, Bit(c, s, i))
	}
	return r
}

// ReduceAnd returns the 1 bit conjunction of all bits of s.
func ReduceAnd(c Comb, s *Signal) *Signal { return reduce(c, s, c.And) }

// ReduceOr returns the 1 bit disjunction of all bits of s.
func ReduceOr(c Comb, s *Signal) *Signal { return reduce(c, s, c.Or) }

// ReduceXor returns the 1 bit parity of s.
func ReduceXor(c Comb, s *Signal) *Signal { return reduce(c, s, c.Xor) }

// Ne returns the 1 bit inequality of x and y.
func Ne(c Comb, x, y *Signal) *Signal { return c.Not(c.Eq(x, y)) }

// Gt returns the 1 bit unsigned comparison x > y.
func Gt(c Comb, x, y *Signal) *Signal { return c.Lt(y, x) }

// Le returns the 1 bit unsigned comparison x <= y.
func Le(c Comb, x, y *Signal) *Signal { return c.Not(c.Lt(y, x)) }

// Ge returns the 1 bit unsigned comparison x >= y.
func Ge(c Comb, x, y *Signal) *Signal { return c.Not(c.Lt(x, y)) }
