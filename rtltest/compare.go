// Package rtltest provides utility functions for testing circuits.
//
package rtltest

import (
	"testing"

	"github.com/hwkit/rtl"
)

// AssertEquivalent fails t unless the two circuits expose the same
// ports and drive each output with structurally equivalent logic.
//
func AssertEquivalent(t *testing.T, want, got *rtl.Circuit) {
	t.Helper()
	if !rtl.StructurallyEqual(want, got) {
		t.Errorf("circuits %s and %s are not structurally equivalent\nwant outputs: %s\ngot outputs: %s",
			want.Name(), got.Name(), renderOutputs(want), renderOutputs(got))
	}
}

// AssertNotEquivalent fails t if the two circuits compare structurally
// equal.
//
func AssertNotEquivalent(t *testing.T, a, b *rtl.Circuit) {
	t.Helper()
	if rtl.StructurallyEqual(a, b) {
		t.Errorf("circuits %s and %s are structurally equivalent, expected a difference",
			a.Name(), b.Name())
	}
}

func renderOutputs(c *rtl.Circuit) string {
	s := ""
	for _, o := range c.Outputs() {
		if s != "" {
			s += ", "
		}
		s += rtl.Render(o, 3)
	}
	return s
}
