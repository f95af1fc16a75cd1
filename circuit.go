package rtl

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// A Port names a sized circuit port.
type Port struct {
	Name  string
	Width int
}

// PortChecks selects how strictly VerifyInterface compares a circuit
// against an expected interface.
type PortChecks int

// Port check modes.
const (
	// NoPortChecks performs no checking.
	NoPortChecks PortChecks = iota
	// PortSets verifies the port name sets match.
	PortSets
	// PortSetsAndWidths additionally verifies the declared widths.
	PortSetsAndWidths
)

// Config controls circuit construction.
type Config struct {
	// DetectCombinationalLoops rejects circuits containing a
	// dependency cycle with no register on it.
	DetectCombinationalLoops bool
	// NormalizeUids renumbers every reachable node to a fresh compact
	// sequence. Purely an internal relabeling for reproducible output;
	// graph structure is untouched.
	NormalizeUids bool
}

// DefaultConfig is the construction configuration used by NewCircuit.
var DefaultConfig = Config{
	DetectCombinationalLoops: true,
	NormalizeUids:            true,
}

// A Circuit is a frozen, validated signal graph with named ports.
// Circuits are immutable once built: wire assignment and naming must be
// complete before construction, and nothing mutates the graph after.
//
type Circuit struct {
	name    string
	graph   *Graph
	signals map[Uid]*Signal
	inputs  []*Signal
	outputs []*Signal
	phantom []Port

	// computed on first access, sound because the circuit is immutable
	fanIn  map[Uid][]Uid
	fanOut map[Uid][]Uid
}

// NewCircuit builds a circuit from a set of named output signals using
// DefaultConfig. See NewCircuitCfg.
//
func NewCircuit(name string, outputs []*Signal) (*Circuit, error) {
	return NewCircuitCfg(name, outputs, DefaultConfig)
}

// NewCircuitCfg builds a circuit from a set of named output signals.
// Every output must be a driven wire carrying exactly one name; the
// inputs are discovered as the unassigned wires reachable from the
// outputs and must also carry exactly one name each. Port names must
// not collide.
//
func NewCircuitCfg(name string, outputs []*Signal, cfg Config) (*Circuit, error) {
	if name == "" {
		return nil, errors.New("circuit: empty name")
	}
	if len(outputs) == 0 {
		return nil, errors.Errorf("circuit %s: no outputs", name)
	}
	for _, o := range outputs {
		if err := checkPortSignal(name, o, true); err != nil {
			return nil, err
		}
	}

	g := NewGraph(outputs)
	inputs := g.Inputs()
	for _, in := range inputs {
		if err := checkPortSignal(name, in, false); err != nil {
			return nil, err
		}
	}

	// port names must be unique across inputs and outputs
	ports := make(map[string]bool, len(inputs)+len(outputs))
	for _, s := range append(append([]*Signal(nil), inputs...), outputs...) {
		n := s.names[0]
		if ports[n] {
			return nil, &PortError{Circuit: name, Port: n, Msg: "duplicate port name"}
		}
		ports[n] = true
	}

	if cfg.NormalizeUids {
		normalizeUids(g)
	}
	if cfg.DetectCombinationalLoops {
		if err := g.CombinationalLoop(); err != nil {
			return nil, errors.Wrap(err, "circuit "+name)
		}
	}

	signals := make(map[Uid]*Signal, len(g.Signals()))
	for _, s := range g.Signals() {
		signals[s.Uid()] = s
	}
	return &Circuit{
		name:    name,
		graph:   g,
		signals: signals,
		inputs:  inputs,
		outputs: outputs,
	}, nil
}

func checkPortSignal(circuit string, s *Signal, output bool) error {
	dir := "input"
	if output {
		dir = "output"
	}
	if s.Kind() != KindWire {
		return &PortError{Circuit: circuit, Port: s.String(), Msg: dir + " is not a wire"}
	}
	if output && !s.Driven() {
		return &PortError{Circuit: circuit, Port: s.String(), Msg: "output is not driven"}
	}
	switch len(s.names) {
	case 1:
		return nil
	case 0:
		return &PortError{Circuit: circuit, Port: s.String(), Msg: dir + " has no name"}
	default:
		return &PortError{Circuit: circuit, Port: s.String(), Msg: dir + " has several names"}
	}
}

// normalizeUids relabels every reachable node with a fresh compact
// sequence, in creation order for reproducibility.
func normalizeUids(g *Graph) {
	signals := append([]*Signal(nil), g.Signals()...)
	sort.Slice(signals, func(i, j int) bool { return signals[i].Uid() < signals[j].Uid() })
	u := NewUids()
	for _, s := range signals {
		s.uid = u.Next()
	}
	g.reindex()
}

// Name returns the circuit name.
func (c *Circuit) Name() string { return c.name }

// Inputs returns the discovered input wires, in traversal order.
func (c *Circuit) Inputs() []*Signal { return c.inputs }

// Outputs returns the output wires, in the order given at construction.
func (c *Circuit) Outputs() []*Signal { return c.outputs }

// PhantomInputs returns the declared-but-structurally-absent input
// ports.
func (c *Circuit) PhantomInputs() []Port { return c.phantom }

// Graph returns the underlying traversal view of the frozen graph.
func (c *Circuit) Graph() *Graph { return c.graph }

// Signals returns the post-validation uid to node snapshot. Callers
// must treat it as read-only.
//
func (c *Circuit) Signals() map[Uid]*Signal { return c.signals }

// Signal returns the node with the given uid, or nil.
func (c *Circuit) Signal(uid Uid) *Signal { return c.signals[uid] }

// FanOut returns the per-node sets of direct successor uids. It is
// computed on first access and cached for the circuit's lifetime.
//
func (c *Circuit) FanOut() map[Uid][]Uid {
	if c.fanOut == nil {
		c.fanIn, c.fanOut = c.graph.adjacency()
	}
	return c.fanOut
}

// FanIn returns the per-node sets of direct predecessor uids. It is
// computed on first access and cached for the circuit's lifetime.
//
func (c *Circuit) FanIn() map[Uid][]Uid {
	if c.fanIn == nil {
		c.fanIn, c.fanOut = c.graph.adjacency()
	}
	return c.fanIn
}

// portName returns a port wire's single name.
func portName(s *Signal) string { return s.names[0] }

// WithPhantomInputs returns a copy of c with the given ports registered
// as phantom inputs: declared ports with no structural presence in the
// graph, kept so the circuit still honors an interface contract. A
// phantom colliding with a real input is silently dropped; one
// colliding with a real output is an error.
//
func (c *Circuit) WithPhantomInputs(ports []Port) (*Circuit, error) {
	inputs := make(map[string]bool, len(c.inputs))
	for _, in := range c.inputs {
		inputs[portName(in)] = true
	}
	outputs := make(map[string]bool, len(c.outputs))
	for _, o := range c.outputs {
		outputs[portName(o)] = true
	}
	seen := make(map[string]bool, len(c.phantom))
	phantom := append([]Port(nil), c.phantom...)
	for _, p := range phantom {
		seen[p.Name] = true
	}
	for _, p := range ports {
		if outputs[p.Name] {
			return nil, &PortError{Circuit: c.name, Port: p.Name,
				Msg: "phantom input collides with an output"}
		}
		if inputs[p.Name] || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		phantom = append(phantom, p)
	}
	cc := *c
	cc.phantom = phantom
	return &cc, nil
}

// inputPorts returns the circuit's input contract: real inputs then
// phantoms.
func (c *Circuit) inputPorts() []Port {
	ports := make([]Port, 0, len(c.inputs)+len(c.phantom))
	for _, in := range c.inputs {
		ports = append(ports, Port{Name: portName(in), Width: in.Width()})
	}
	return append(ports, c.phantom...)
}

func (c *Circuit) outputPorts() []Port {
	ports := make([]Port, 0, len(c.outputs))
	for _, o := range c.outputs {
		ports = append(ports, Port{Name: portName(o), Width: o.Width()})
	}
	return ports
}

// VerifyInterface checks the circuit's ports (phantom inputs included)
// against an expected interface. NoPortChecks always passes; PortSets
// verifies the input and output name sets match; PortSetsAndWidths
// additionally verifies the declared widths.
//
func (c *Circuit) VerifyInterface(inputs, outputs []Port, checks PortChecks) error {
	if checks == NoPortChecks {
		return nil
	}
	if err := verifyPorts(c.name, "input", c.inputPorts(), inputs, checks); err != nil {
		return err
	}
	return verifyPorts(c.name, "output", c.outputPorts(), outputs, checks)
}

func verifyPorts(circuit, dir string, got, want []Port, checks PortChecks) error {
	wm := make(map[string]int, len(want))
	for _, p := range want {
		wm[p.Name] = p.Width
	}
	gm := make(map[string]int, len(got))
	for _, p := range got {
		gm[p.Name] = p.Width
	}
	for _, p := range want {
		g, ok := gm[p.Name]
		if !ok {
			return &PortError{Circuit: circuit, Port: p.Name, Msg: "missing " + dir}
		}
		if checks == PortSetsAndWidths && g != p.Width {
			return &PortError{Circuit: circuit, Port: p.Name,
				Msg: fmt.Sprintf("%s width %d, interface declares %d", dir, g, p.Width)}
		}
	}
	for _, p := range got {
		if _, ok := wm[p.Name]; !ok {
			return &PortError{Circuit: circuit, Port: p.Name, Msg: "extra " + dir}
		}
	}
	return nil
}

// StructurallyEqual reports whether two circuits expose the same input
// and output port name and width sets and drive each matching output
// with structurally equivalent logic (see Equivalent).
//
func StructurallyEqual(a, b *Circuit) bool {
	if !portSetsEqual(a.inputPorts(), b.inputPorts()) ||
		!portSetsEqual(a.outputPorts(), b.outputPorts()) {
		return false
	}
	bOut := make(map[string]*Signal, len(b.outputs))
	for _, o := range b.outputs {
		bOut[portName(o)] = o
	}
	for _, o := range a.outputs {
		if !Equivalent(o, bOut[portName(o)], CompareOpts{Names: true, Deps: true}) {
			return false
		}
	}
	return true
}

func portSetsEqual(a, b []Port) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]int, len(a))
	for _, p := range a {
		m[p.Name] = p.Width
	}
	for _, p := range b {
		w, ok := m[p.Name]
		if !ok || w != p.Width {
			return false
		}
	}
	return true
}
