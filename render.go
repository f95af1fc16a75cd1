package rtl

import (
	"fmt"
	"strconv"
	"strings"
)

// Render returns a depth-bounded, cycle-terminating textual form of a
// node, for diagnostics and tests. It is not a persisted or versioned
// format.
//
// At depth 0 a node renders as its literal value (constants), its first
// name, its full name list when it carries more than one, or a
// kind/uid fallback. At greater depths it renders as a structured
// record with kind-specific fields, recursing into dependencies until
// the depth bound or a revisited node cuts the recursion off.
//
func Render(s *Signal, depth int) string {
	var sb strings.Builder
	render(&sb, s, depth, make(map[Uid]bool))
	return sb.String()
}

// String is the depth-0 rendering.
func (s *Signal) String() string {
	return Render(s, 0)
}

// constLiteral renders a constant as binary up to 8 bits, hexadecimal
// above.
func constLiteral(s *Signal) string {
	w := s.Width()
	if w <= 8 {
		return strconv.Itoa(w) + "'b" + s.Bits()
	}
	digits := (w + 3) / 4
	return fmt.Sprintf("%d'h%0*x", w, digits, bitsToBig(s.Bits()))
}

func shortForm(s *Signal) string {
	switch {
	case s.IsEmpty():
		return "empty"
	case s.Kind() == KindConst:
		return constLiteral(s)
	case len(s.names) == 1:
		return s.names[0]
	case len(s.names) > 1:
		return "[" + strings.Join(s.names, " ") + "]"
	case s.Kind() == KindOp:
		return s.Op().String() + "/" + strconv.FormatInt(int64(s.Uid()), 10)
	default:
		return s.Kind().String() + "/" + strconv.FormatInt(int64(s.Uid()), 10)
	}
}

func render(sb *strings.Builder, s *Signal, depth int, seen map[Uid]bool) {
	if depth <= 0 || s.IsEmpty() || seen[s.Uid()] {
		sb.WriteString(shortForm(s))
		return
	}
	seen[s.Uid()] = true

	field := func(name, value string) {
		sb.WriteRune(' ')
		sb.WriteString(name)
		sb.WriteRune('=')
		sb.WriteString(value)
	}
	sub := func(name string, d *Signal) {
		sb.WriteRune(' ')
		sb.WriteString(name)
		sb.WriteRune('=')
		render(sb, d, depth-1, seen)
	}
	list := func(name string, ds []*Signal) {
		sb.WriteRune(' ')
		sb.WriteString(name)
		sb.WriteString("=(")
		for i, d := range ds {
			if i > 0 {
				sb.WriteRune(' ')
			}
			render(sb, d, depth-1, seen)
		}
		sb.WriteRune(')')
	}

	sb.WriteRune('{')
	sb.WriteString(s.Kind().String())
	field("uid", strconv.FormatInt(int64(s.Uid()), 10))
	if len(s.names) > 0 {
		field("names", "["+strings.Join(s.names, " ")+"]")
	}
	field("width", strconv.Itoa(s.Width()))

	switch s.Kind() {
	case KindConst:
		field("value", constLiteral(s))
	case KindOp:
		field("op", s.Op().String())
		list("deps", s.Deps())
	case KindSelect:
		field("bounds", fmt.Sprintf("[%d:%d]", s.high, s.low))
		sub("data", s.deps[0])
	case KindWire:
		if s.driven {
			sub("driver", s.deps[0])
		} else {
			field("driver", "unassigned")
		}
	case KindReg:
		sub("data", s.deps[0])
		field("edge", s.spec.ClockEdge.String())
		sub("clock", s.spec.Clock)
		if !s.spec.Reset.IsEmpty() {
			sub("reset", s.spec.Reset)
			sub("reset_to", s.spec.ResetTo)
		}
		if !s.spec.Clear.IsEmpty() {
			sub("clear", s.spec.Clear)
			sub("clear_to", s.spec.ClearTo)
		}
		if !s.spec.Enable.IsEmpty() {
			sub("enable", s.spec.Enable)
		}
	case KindMem, KindMultiportMem:
		field("size", strconv.Itoa(s.size))
		list("deps", s.Deps())
	case KindMemReadPort:
		field("size", strconv.Itoa(s.size))
		sub("mem", s.deps[0])
		sub("address", s.deps[1])
	case KindInst:
		field("module", s.inst.Name)
		list("deps", s.Deps())
	}
	sb.WriteRune('}')
}
