package rtl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwkit/rtl"
)

func TestGraphReachability(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(8), "a")
	c := rtl.Named(b.Wire(8), "b")
	sum := b.Add(a, c)
	o := rtl.Named(b.Wire(8), "o")
	require.NoError(t, b.Assign(o, sum))

	// unrelated node, not reachable from o
	stray := b.Wire(8)

	g := rtl.NewGraph([]*rtl.Signal{o})
	require.Len(t, g.Signals(), 4)
	require.Same(t, o, g.Signal(o.Uid()))
	require.Nil(t, g.Signal(stray.Uid()))

	ins := g.Inputs()
	require.Len(t, ins, 2)
	require.Contains(t, ins, a)
	require.Contains(t, ins, c)
}

func TestGraphAdjacency(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := b.Wire(8)
	c := b.Wire(8)
	sum := b.Add(a, c)
	prod := b.Mulu(a, c)
	o1, o2 := b.Wire(8), b.Wire(16)
	require.NoError(t, b.Assign(o1, sum))
	require.NoError(t, b.Assign(o2, prod))

	g := rtl.NewGraph([]*rtl.Signal{o1, o2})
	fanOut, fanIn := g.FanOut(), g.FanIn()

	require.ElementsMatch(t, []rtl.Uid{sum.Uid(), prod.Uid()}, fanOut[a.Uid()])
	require.ElementsMatch(t, []rtl.Uid{a.Uid(), c.Uid()}, fanIn[sum.Uid()])
	require.ElementsMatch(t, []rtl.Uid{o1.Uid()}, fanOut[sum.Uid()])
	require.Empty(t, fanOut[o1.Uid()])
	require.Empty(t, fanIn[a.Uid()])
}

func TestCombinationalLoop(t *testing.T) {
	t.Run("pure combinational feedback is a loop", func(t *testing.T) {
		b := rtl.NewBase(rtl.NewUids())
		a := b.Wire(4)
		fb := b.Wire(4)
		require.NoError(t, b.Assign(fb, b.And(fb, a)))

		g := rtl.NewGraph([]*rtl.Signal{fb})
		err := g.CombinationalLoop()
		var le *rtl.LoopError
		require.ErrorAs(t, err, &le)
		require.NotEmpty(t, le.Path)
	})

	t.Run("feedback through a register is fine", func(t *testing.T) {
		b := rtl.NewBase(rtl.NewUids())
		clk := b.Wire(1)
		a := b.Wire(4)
		fb := b.Wire(4)
		q, err := b.Reg(rtl.NewSpec(clk), rtl.Empty, b.And(fb, a))
		require.NoError(t, err)
		require.NoError(t, b.Assign(fb, q))

		g := rtl.NewGraph([]*rtl.Signal{fb})
		require.NoError(t, g.CombinationalLoop())
	})

	t.Run("memory breaks combinational paths", func(t *testing.T) {
		b := rtl.NewBase(rtl.NewUids())
		fb := b.Wire(8)
		w := rtl.WritePort{Clock: b.Wire(1), Address: b.Wire(4), Enable: b.Wire(1), Data: fb}
		q, err := rtl.Memory(b, 16, w, b.Wire(4))
		require.NoError(t, err)
		require.NoError(t, b.Assign(fb, q))

		g := rtl.NewGraph([]*rtl.Signal{fb})
		require.NoError(t, g.CombinationalLoop())
	})
}
