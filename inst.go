package rtl

import (
	"github.com/pkg/errors"
)

// A Generic is a name/value parameter of an instantiated module.
type Generic struct {
	Name  string
	Value string
}

// An InstInput binds a signal to a named input port of an instantiated
// module.
type InstInput struct {
	Name   string
	Signal *Signal
}

// An InstOutput declares a named, sized output slice of an instantiated
// module.
type InstOutput struct {
	Name  string
	Width int
}

// An Instantiation describes an opaque external module: its name,
// generics, named input signals and named output slices. The toolkit
// treats its behavior as unknown; only the interface participates in
// construction and comparison.
//
type Instantiation struct {
	Name     string
	Generics []Generic
	Inputs   []InstInput
	Outputs  []InstOutput

	sig *Signal // the Inst node; all outputs packed, first declared on top
}

// Instantiate builds the Inst node for an external module. The node's
// width is the sum of the declared output widths and its dependencies
// are the input signals in declaration order.
//
func Instantiate(b *Base, name string, generics []Generic, inputs []InstInput, outputs []InstOutput) (*Instantiation, error) {
	if name == "" {
		return nil, errors.New("instantiate: empty module name")
	}
	if len(outputs) == 0 {
		return nil, errors.Errorf("instantiate %s: no outputs", name)
	}
	width := 0
	for _, o := range outputs {
		if o.Width <= 0 {
			return nil, errors.Errorf("instantiate %s: output %s has width %d", name, o.Name, o.Width)
		}
		width += o.Width
	}
	deps := make([]*Signal, len(inputs))
	for i, in := range inputs {
		if in.Signal.IsEmpty() {
			return nil, &EmptyError{Op: "instantiate " + name + ": input " + in.Name}
		}
		deps[i] = in.Signal
	}
	inst := &Instantiation{Name: name, Generics: generics, Inputs: inputs, Outputs: outputs}
	n := b.node(KindInst, width, deps...)
	n.inst = inst
	inst.sig = n
	return inst, nil
}

// Signal returns the underlying Inst node carrying all outputs packed
// together.
//
func (i *Instantiation) Signal() *Signal {
	return i.sig
}

// Output cuts the named output slice out of the packed Inst node. The
// first declared output occupies the most significant bits.
//
func (i *Instantiation) Output(c Comb, name string) (*Signal, error) {
	high := i.sig.Width() - 1
	for _, o := range i.Outputs {
		if o.Name == name {
			return c.Select(i.sig, high, high-o.Width+1), nil
		}
		high -= o.Width
	}
	return nil, errors.Errorf("instantiate %s: no output named %s", i.Name, name)
}

// interfaceEqual reports whether two instantiations expose the same
// module name, generics and output slices. Inputs are compared through
// the node dependency lists, not here.
func interfaceEqual(a, b *Instantiation) bool {
	if a.Name != b.Name || len(a.Generics) != len(b.Generics) || len(a.Outputs) != len(b.Outputs) {
		return false
	}
	for i, g := range a.Generics {
		if b.Generics[i] != g {
			return false
		}
	}
	for i, o := range a.Outputs {
		if b.Outputs[i] != o {
			return false
		}
	}
	return true
}
