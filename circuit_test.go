package rtl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwkit/rtl"
	"github.com/hwkit/rtl/rtltest"
)

// output names and wraps an expression into a named output wire.
func output(t *testing.T, b *rtl.Base, name string, d *rtl.Signal) *rtl.Signal {
	t.Helper()
	o := rtl.Named(b.Wire(d.Width()), name)
	require.NoError(t, b.Assign(o, d))
	return o
}

func TestCircuitIO(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	c := rtl.Named(b.Wire(8), "b")
	o := output(t, b, "o", b.Add(a, c))

	circ, err := rtl.NewCircuit("adder", []*rtl.Signal{o})
	require.NoError(t, err)
	require.Equal(t, "adder", circ.Name())

	var inNames []string
	for _, in := range circ.Inputs() {
		inNames = append(inNames, in.String())
		require.Equal(t, 8, in.Width())
	}
	require.ElementsMatch(t, []string{"a", "b"}, inNames)

	require.Len(t, circ.Outputs(), 1)
	require.Equal(t, "o", circ.Outputs()[0].String())
}

func TestCircuitOutputValidation(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())

	t.Run("empty name", func(t *testing.T) {
		_, err := rtl.NewCircuit("", []*rtl.Signal{rtl.Named(b.Wire(1), "o")})
		require.Error(t, err)
	})
	t.Run("no outputs", func(t *testing.T) {
		_, err := rtl.NewCircuit("c", nil)
		require.Error(t, err)
	})
	t.Run("output not a wire", func(t *testing.T) {
		_, err := rtl.NewCircuit("c", []*rtl.Signal{b.Const("1")})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("undriven output", func(t *testing.T) {
		_, err := rtl.NewCircuit("c", []*rtl.Signal{rtl.Named(b.Wire(1), "o")})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("unnamed output", func(t *testing.T) {
		o := b.Wire(1)
		require.NoError(t, b.Assign(o, b.Const("0")))
		_, err := rtl.NewCircuit("c", []*rtl.Signal{o})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("multiply named output", func(t *testing.T) {
		o := rtl.Named(rtl.Named(b.Wire(1), "o"), "alias")
		require.NoError(t, b.Assign(o, b.Const("0")))
		_, err := rtl.NewCircuit("c", []*rtl.Signal{o})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("unnamed input", func(t *testing.T) {
		in := b.Wire(1) // reachable, unassigned, nameless
		o := output(t, b, "o", b.Not(in))
		_, err := rtl.NewCircuit("c", []*rtl.Signal{o})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("duplicate port names", func(t *testing.T) {
		in := rtl.Named(b.Wire(1), "x")
		o := output(t, b, "x", b.Not(in))
		_, err := rtl.NewCircuit("c", []*rtl.Signal{o})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
}

func TestCircuitLoopDetection(t *testing.T) {
	t.Run("combinational feedback fails", func(t *testing.T) {
		b := rtl.NewBase(rtl.NewUids())
		a := rtl.Named(b.Wire(4), "a")
		fb := b.Wire(4)
		require.NoError(t, b.Assign(fb, b.And(fb, a)))
		o := output(t, b, "o", fb)

		_, err := rtl.NewCircuit("loop", []*rtl.Signal{o})
		var le *rtl.LoopError
		require.ErrorAs(t, err, &le)
	})

	t.Run("registered feedback builds", func(t *testing.T) {
		b := rtl.NewBase(rtl.NewUids())
		clk := rtl.Named(b.Wire(1), "clk")
		a := rtl.Named(b.Wire(4), "a")
		fb := b.Wire(4)
		q, err := b.Reg(rtl.NewSpec(clk), rtl.Empty, b.And(fb, a))
		require.NoError(t, err)
		require.NoError(t, b.Assign(fb, q))
		o := output(t, b, "o", fb)

		circ, err := rtl.NewCircuit("looped", []*rtl.Signal{o})
		require.NoError(t, err)
		require.Len(t, circ.Inputs(), 2) // clk and a
	})
}

func TestCircuitNormalizeUids(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	// burn uids so the raw graph starts well above 1
	for i := 0; i < 50; i++ {
		b.Wire(1)
	}
	a := rtl.Named(b.Wire(8), "a")
	o := output(t, b, "o", b.Not(a))

	circ, err := rtl.NewCircuit("norm", []*rtl.Signal{o})
	require.NoError(t, err)

	n := len(circ.Signals())
	for uid, s := range circ.Signals() {
		require.Equal(t, uid, s.Uid())
		require.GreaterOrEqual(t, uid, rtl.Uid(1))
		require.LessOrEqual(t, uid, rtl.Uid(n), "uids must form a compact sequence")
	}
}

func TestCircuitKeepUids(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	before := a.Uid()
	o := output(t, b, "o", b.Not(a))

	_, err := rtl.NewCircuitCfg("keep", []*rtl.Signal{o}, rtl.Config{})
	require.NoError(t, err)
	require.Equal(t, before, a.Uid())
}

func TestCircuitAdjacencyCached(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	n := b.Not(a)
	o := output(t, b, "o", n)

	circ, err := rtl.NewCircuit("adj", []*rtl.Signal{o})
	require.NoError(t, err)

	fo := circ.FanOut()
	require.ElementsMatch(t, []rtl.Uid{n.Uid()}, fo[a.Uid()])
	require.ElementsMatch(t, []rtl.Uid{a.Uid()}, circ.FanIn()[n.Uid()])
	require.Empty(t, fo[o.Uid()])
}

func TestPhantomInputs(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	o := output(t, b, "o", b.Not(a))

	circ, err := rtl.NewCircuit("ph", []*rtl.Signal{o})
	require.NoError(t, err)

	t.Run("registers and dedupes", func(t *testing.T) {
		cc, err := circ.WithPhantomInputs([]rtl.Port{
			{Name: "a", Width: 8}, // collides with a real input: dropped
			{Name: "p", Width: 4},
			{Name: "p", Width: 4}, // duplicate phantom: dropped
			{Name: "q", Width: 1},
		})
		require.NoError(t, err)
		require.Equal(t, []rtl.Port{{Name: "p", Width: 4}, {Name: "q", Width: 1}}, cc.PhantomInputs())
		// the original circuit is untouched
		require.Empty(t, circ.PhantomInputs())
	})

	t.Run("output collision fails", func(t *testing.T) {
		_, err := circ.WithPhantomInputs([]rtl.Port{{Name: "o", Width: 8}})
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
}

func TestVerifyInterface(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	c := rtl.Named(b.Wire(8), "b")
	o := output(t, b, "o", b.Add(a, c))

	circ, err := rtl.NewCircuit("iface", []*rtl.Signal{o})
	require.NoError(t, err)

	ins := []rtl.Port{{Name: "a", Width: 8}, {Name: "b", Width: 8}}
	outs := []rtl.Port{{Name: "o", Width: 8}}

	require.NoError(t, circ.VerifyInterface(ins, outs, rtl.PortSetsAndWidths))
	require.NoError(t, circ.VerifyInterface(nil, nil, rtl.NoPortChecks))

	t.Run("missing port", func(t *testing.T) {
		err := circ.VerifyInterface(append(ins, rtl.Port{Name: "z", Width: 1}), outs, rtl.PortSets)
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("extra port", func(t *testing.T) {
		err := circ.VerifyInterface(ins[:1], outs, rtl.PortSets)
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("width checked only in the strict mode", func(t *testing.T) {
		wrong := []rtl.Port{{Name: "a", Width: 4}, {Name: "b", Width: 8}}
		require.NoError(t, circ.VerifyInterface(wrong, outs, rtl.PortSets))
		err := circ.VerifyInterface(wrong, outs, rtl.PortSetsAndWidths)
		var pe *rtl.PortError
		require.ErrorAs(t, err, &pe)
	})
	t.Run("phantoms participate", func(t *testing.T) {
		cc, err := circ.WithPhantomInputs([]rtl.Port{{Name: "p", Width: 4}})
		require.NoError(t, err)
		require.NoError(t, cc.VerifyInterface(
			append(ins, rtl.Port{Name: "p", Width: 4}), outs, rtl.PortSetsAndWidths))
	})
}

func buildCircuit(t *testing.T, name string, op func(b *rtl.Base) func(x, y *rtl.Signal) *rtl.Signal) *rtl.Circuit {
	t.Helper()
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	c := rtl.Named(b.Wire(8), "b")
	o := output(t, b, "o", op(b)(a, c))
	circ, err := rtl.NewCircuit(name, []*rtl.Signal{o})
	require.NoError(t, err)
	return circ
}

func TestStructurallyEqual(t *testing.T) {
	add1 := buildCircuit(t, "add1", func(b *rtl.Base) func(x, y *rtl.Signal) *rtl.Signal { return b.Add })
	add2 := buildCircuit(t, "add2", func(b *rtl.Base) func(x, y *rtl.Signal) *rtl.Signal { return b.Add })
	sub := buildCircuit(t, "sub", func(b *rtl.Base) func(x, y *rtl.Signal) *rtl.Signal { return b.Sub })

	rtltest.AssertEquivalent(t, add1, add2)
	rtltest.AssertNotEquivalent(t, add1, sub)
	require.True(t, rtl.StructurallyEqual(add1, add2))
	require.False(t, rtl.StructurallyEqual(add1, sub))
}
