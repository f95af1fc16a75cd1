package rtl

import (
	"math/big"
	"strings"
)

// Fold implements the Comb contract like Base, but evaluates operations
// over constant operands at construction time and applies algebraic
// simplifications before falling back to plain node construction.
// Substituting a Fold for a Base never changes the value a downstream
// consumer computes, only the shape of the graph.
//
type Fold struct {
	*Base
}

// NewFold returns a constant-propagating builder allocating uids from
// u. A nil u selects the process-wide default allocator.
//
func NewFold(u *Uids) *Fold {
	return &Fold{Base: NewBase(u)}
}

// Literal evaluation helpers. Constants are bit-character strings, most
// significant bit first, so arbitrary widths stay exact; evaluation
// goes through math/big.

func isConst(s *Signal) bool { return s.Kind() == KindConst }

func allZero(bits string) bool { return strings.Count(bits, "1") == 0 }

func allOnes(bits string) bool { return strings.Count(bits, "0") == 0 }

// shiftOf returns the bit index of the single set bit when the literal
// is a power of two, -1 otherwise.
func shiftOf(bits string) int {
	if strings.Count(bits, "1") != 1 {
		return -1
	}
	return len(bits) - 1 - strings.IndexByte(bits, '1')
}

func bitsToBig(bits string) *big.Int {
	v, ok := new(big.Int).SetString(bits, 2)
	if !ok {
		panic("invalid constant literal " + bits)
	}
	return v
}

// bitsToBigSigned interprets the literal as a two's complement value.
func bitsToBigSigned(bits string) *big.Int {
	v := bitsToBig(bits)
	if bits[0] == '1' {
		m := new(big.Int).Lsh(big.NewInt(1), uint(len(bits)))
		v.Sub(v, m)
	}
	return v
}

// bigToBits truncates v to width bits of two's complement and renders
// the literal.
func bigToBits(v *big.Int, width int) string {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	v = new(big.Int).Mod(v, m) // Mod is Euclidean: negative v wraps
	s := v.Text(2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

func bool01(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Add folds constant operands and drops additions of zero.
func (f *Fold) Add(x, y *Signal) *Signal {
	switch {
	case isConst(x) && isConst(y):
		return f.Const(bigToBits(new(big.Int).Add(bitsToBig(x.bits), bitsToBig(y.bits)), x.width))
	case isConst(y) && allZero(y.bits):
		return x
	case isConst(x) && allZero(x.bits):
		return y
	}
	return f.Base.Add(x, y)
}

// Sub folds constant operands and drops subtractions of zero (the
// right-hand zero case only).
func (f *Fold) Sub(x, y *Signal) *Signal {
	switch {
	case isConst(x) && isConst(y):
		return f.Const(bigToBits(new(big.Int).Sub(bitsToBig(x.bits), bitsToBig(y.bits)), x.width))
	case isConst(y) && allZero(y.bits):
		return x
	}
	return f.Base.Sub(x, y)
}

// And folds constants and applies the x&ones=x and x&0=0 identities.
func (f *Fold) And(x, y *Signal) *Signal {
	if isConst(x) && isConst(y) {
		return f.Const(bigToBits(new(big.Int).And(bitsToBig(x.bits), bitsToBig(y.bits)), x.width))
	}
	if c, o := constOperand(x, y); c != nil {
		if allOnes(c.bits) {
			return o
		}
		if allZero(c.bits) {
			return c
		}
	}
	return f.Base.And(x, y)
}

// Or folds constants and applies the x|0=x and x|ones=ones identities.
func (f *Fold) Or(x, y *Signal) *Signal {
	if isConst(x) && isConst(y) {
		return f.Const(bigToBits(new(big.Int).Or(bitsToBig(x.bits), bitsToBig(y.bits)), x.width))
	}
	if c, o := constOperand(x, y); c != nil {
		if allZero(c.bits) {
			return o
		}
		if allOnes(c.bits) {
			return c
		}
	}
	return f.Base.Or(x, y)
}

// constOperand returns (the constant operand, the other) when exactly
// one of x, y is constant, (nil, nil) otherwise.
func constOperand(x, y *Signal) (c, other *Signal) {
	switch {
	case isConst(x) && !isConst(y):
		return x, y
	case isConst(y) && !isConst(x):
		return y, x
	}
	return nil, nil
}

// Xor folds constant operands.
func (f *Fold) Xor(x, y *Signal) *Signal {
	if isConst(x) && isConst(y) {
		return f.Const(bigToBits(new(big.Int).Xor(bitsToBig(x.bits), bitsToBig(y.bits)), x.width))
	}
	return f.Base.Xor(x, y)
}

// Not folds a constant operand by flipping its literal.
func (f *Fold) Not(x *Signal) *Signal {
	if isConst(x) {
		b := []byte(x.bits)
		for i, c := range b {
			b[i] = '0' + '1' - c
		}
		return f.Const(string(b))
	}
	return f.Base.Not(x)
}

// Eq folds constant operands into a 1 bit constant.
func (f *Fold) Eq(x, y *Signal) *Signal {
	if isConst(x) && isConst(y) {
		return f.Const(bool01(x.bits == y.bits))
	}
	return f.Base.Eq(x, y)
}

// Lt folds constant operands into a 1 bit constant (unsigned compare).
func (f *Fold) Lt(x, y *Signal) *Signal {
	if isConst(x) && isConst(y) {
		return f.Const(bool01(bitsToBig(x.bits).Cmp(bitsToBig(y.bits)) < 0))
	}
	return f.Base.Lt(x, y)
}

// Mulu folds constant operands and strength-reduces multiplication by
// 0, 1 and powers of two. The result width is always the sum of the
// operand widths.
func (f *Fold) Mulu(x, y *Signal) *Signal {
	w := x.Width() + y.Width()
	if isConst(x) && isConst(y) {
		return f.Const(bigToBits(new(big.Int).Mul(bitsToBig(x.bits), bitsToBig(y.bits)), w))
	}
	if c, o := constOperand(x, y); c != nil {
		switch {
		case allZero(c.bits):
			return Zero(f, w)
		case bitsToBig(c.bits).Cmp(big.NewInt(1)) == 0:
			return Resize(f, o, w)
		case shiftOf(c.bits) > 0:
			// power of two: left shift built from zero padding
			return Resize(f, f.Concat(o, Zero(f, shiftOf(c.bits))), w)
		}
	}
	return f.Base.Mulu(x, y)
}

// Muls folds only when both operands are constant; the unsigned
// identities are unsound under sign extension.
func (f *Fold) Muls(x, y *Signal) *Signal {
	if isConst(x) && isConst(y) {
		w := x.width + y.width
		return f.Const(bigToBits(new(big.Int).Mul(bitsToBigSigned(x.bits), bitsToBigSigned(y.bits)), w))
	}
	return f.Base.Muls(x, y)
}

// Select slices constant operands statically. Selecting the full width
// of any operand is a no-op returning the operand itself.
func (f *Fold) Select(d *Signal, high, low int) *Signal {
	if low < 0 || high < low || high >= d.Width() {
		panic(&BoundsError{High: high, Low: low, Width: d.Width()})
	}
	if low == 0 && high == d.Width()-1 {
		return d
	}
	if isConst(d) {
		w := d.width
		return f.Const(d.bits[w-1-high : w-low])
	}
	return f.Base.Select(d, high, low)
}

// Mux with a constant selector statically picks the corresponding
// case. A selector value past the last case is clipped to the last
// case rather than failing.
func (f *Fold) Mux(sel *Signal, cases ...*Signal) *Signal {
	if len(cases) > 0 && isConst(sel) {
		i := bitsToBig(sel.bits)
		last := big.NewInt(int64(len(cases) - 1))
		if i.Cmp(last) > 0 {
			i = last
		}
		return cases[i.Int64()]
	}
	return f.Base.Mux(sel, cases...)
}
