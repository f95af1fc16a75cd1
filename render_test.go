package rtl_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwkit/rtl"
)

func TestRenderShortForms(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())

	t.Run("constants", func(t *testing.T) {
		require.Equal(t, "4'b1010", b.Const("1010").String())
		require.Equal(t, "1'b1", b.Const("1").String())
		// above 8 bits the value switches to zero-padded hex
		c := b.Const("0000111100001111")
		require.Equal(t, "16'h0f0f", c.String())
	})

	t.Run("names", func(t *testing.T) {
		w := rtl.Named(b.Wire(8), "a")
		require.Equal(t, "a", w.String())
		// naming is most recent first
		rtl.Named(w, "b")
		require.Equal(t, "[b a]", w.String())
	})

	t.Run("fallbacks", func(t *testing.T) {
		require.Equal(t, "empty", rtl.Empty.String())
		s := b.Add(b.Wire(4), b.Wire(4))
		require.Equal(t, "add/"+strconv.FormatInt(int64(s.Uid()), 10), s.String())
		w := b.Wire(4)
		require.Equal(t, "wire/"+strconv.FormatInt(int64(w.Uid()), 10), w.String())
	})
}

func TestRenderRecords(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	a := rtl.Named(b.Wire(4), "a")
	c := rtl.Named(b.Wire(4), "b")
	sum := b.Add(a, c)

	t.Run("depth one names the deps", func(t *testing.T) {
		r := rtl.Render(sum, 1)
		require.Contains(t, r, "{op")
		require.Contains(t, r, "width=4")
		require.Contains(t, r, "op=add")
		require.Contains(t, r, "deps=(a b)")
	})

	t.Run("depth two expands the deps", func(t *testing.T) {
		r := rtl.Render(sum, 2)
		require.Contains(t, r, "{wire")
		require.Contains(t, r, "names=[a]")
		require.Contains(t, r, "driver=unassigned")
	})

	t.Run("register fields", func(t *testing.T) {
		clk := rtl.Named(b.Wire(1), "clk")
		rst := rtl.Named(b.Wire(1), "rst")
		q, err := b.Reg(rtl.NewSpec(clk).WithReset(rst, rtl.Rising), rtl.Empty, sum)
		require.NoError(t, err)
		r := rtl.Render(q, 1)
		require.Contains(t, r, "{reg")
		require.Contains(t, r, "edge=rising")
		require.Contains(t, r, "clock=clk")
		require.Contains(t, r, "reset=rst")
		require.NotContains(t, r, "clear")
	})
}

func TestRenderCycleTerminates(t *testing.T) {
	b := rtl.NewBase(rtl.NewUids())
	clk := rtl.Named(b.Wire(1), "clk")
	fb := rtl.Named(b.Wire(4), "fb")
	q, err := b.Reg(rtl.NewSpec(clk), rtl.Empty, fb)
	require.NoError(t, err)
	require.NoError(t, b.Assign(fb, q))

	// unbounded depth through a feedback path must still return
	r := rtl.Render(fb, 100)
	require.Contains(t, r, "fb")
	require.Contains(t, r, "{reg")
}
