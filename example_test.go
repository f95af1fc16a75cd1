package rtl_test

import (
	"fmt"

	"github.com/hwkit/rtl"
)

// Build a free-running 4-bit counter: a register whose input is its own
// output plus one, exposed through a named output wire.
func ExampleNewCircuit() {
	b := rtl.NewBase(rtl.NewUids())

	clk := rtl.Named(b.Wire(1), "clk")
	fb := b.Wire(4)
	next := b.Add(fb, rtl.ConstUint(b, 1, 4))
	q, err := b.Reg(rtl.NewSpec(clk), rtl.Empty, next)
	if err != nil {
		panic(err)
	}
	if err := b.Assign(fb, q); err != nil {
		panic(err)
	}

	count := rtl.Named(b.Wire(4), "count")
	if err := b.Assign(count, fb); err != nil {
		panic(err)
	}

	c, err := rtl.NewCircuit("counter", []*rtl.Signal{count})
	if err != nil {
		panic(err)
	}

	fmt.Println(c.Name())
	for _, in := range c.Inputs() {
		fmt.Printf("in: %s width=%d\n", in, in.Width())
	}
	for _, o := range c.Outputs() {
		fmt.Printf("out: %s width=%d\n", o, o.Width())
	}
	fmt.Println(rtl.Render(c.Outputs()[0], 2))
	// Output:
	// counter
	// in: clk width=1
	// out: count width=4
	// {wire uid=7 names=[count] width=4 driver={wire uid=2 width=4 driver=reg/6}}
}
