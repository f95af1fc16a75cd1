package rtl

import (
	"sort"
)

// A Graph is the depth-first view of everything reachable from a set of
// output signals. It is the traversal engine the circuit builder
// delegates to: reachability, unassigned-wire input extraction,
// combinational-loop detection and fan-in/fan-out computation.
//
// A Graph captures the subgraph as it stands when built; callers must
// finish all wire assignments first.
//
type Graph struct {
	outputs []*Signal
	signals []*Signal // reachable nodes in first-visit order
	index   map[Uid]*Signal
}

// NewGraph collects everything reachable from the given outputs,
// depth first. Empty sentinels are skipped; cycles are handled by a
// visited set.
//
func NewGraph(outputs []*Signal) *Graph {
	g := &Graph{
		outputs: outputs,
		index:   make(map[Uid]*Signal),
	}
	stack := make([]*Signal, 0, len(outputs))
	for i := len(outputs) - 1; i >= 0; i-- {
		stack = append(stack, outputs[i])
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.IsEmpty() {
			continue
		}
		if _, ok := g.index[s.Uid()]; ok {
			continue
		}
		g.index[s.Uid()] = s
		g.signals = append(g.signals, s)
		deps := s.Deps()
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, deps[i])
		}
	}
	return g
}

// Outputs returns the roots the graph was built from.
func (g *Graph) Outputs() []*Signal { return g.outputs }

// Signals returns every reachable node in first-visit order.
func (g *Graph) Signals() []*Signal { return g.signals }

// Signal returns the reachable node with the given uid, or nil.
func (g *Graph) Signal(uid Uid) *Signal { return g.index[uid] }

// reindex rebuilds the uid index after a renumbering pass.
func (g *Graph) reindex() {
	g.index = make(map[Uid]*Signal, len(g.signals))
	for _, s := range g.signals {
		g.index[s.Uid()] = s
	}
}

// Inputs returns the unassigned wires reachable from the outputs, in
// visit order. These are the structural inputs of the subgraph.
//
func (g *Graph) Inputs() []*Signal {
	var ins []*Signal
	for _, s := range g.signals {
		if s.Kind() == KindWire && !s.Driven() {
			ins = append(ins, s)
		}
	}
	return ins
}

// sequential reports whether a node breaks combinational paths.
func sequential(s *Signal) bool {
	switch s.Kind() {
	case KindReg, KindMem, KindMultiportMem:
		return true
	}
	return false
}

// CombinationalLoop returns a LoopError if the graph contains a
// dependency cycle with no register or memory on it, nil otherwise.
//
func (g *Graph) CombinationalLoop() error {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[Uid]int, len(g.signals))
	var path []*Signal

	var visit func(s *Signal) error
	visit = func(s *Signal) error {
		switch state[s.Uid()] {
		case onPath:
			// trim the path to the cycle itself
			for i, p := range path {
				if p == s {
					return &LoopError{Path: append([]*Signal(nil), path[i:]...)}
				}
			}
			return &LoopError{Path: []*Signal{s}}
		case done:
			return nil
		}
		if sequential(s) {
			// deps are sampled on a clock edge, not combinationally
			state[s.Uid()] = done
			return nil
		}
		state[s.Uid()] = onPath
		path = append(path, s)
		for _, d := range s.Deps() {
			if d.IsEmpty() {
				continue
			}
			if err := visit(d); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[s.Uid()] = done
		return nil
	}

	for _, s := range g.signals {
		if err := visit(s); err != nil {
			return err
		}
	}
	return nil
}

// adjacency computes both adjacency maps in one pass over the graph.
func (g *Graph) adjacency() (fanIn, fanOut map[Uid][]Uid) {
	fanIn = make(map[Uid][]Uid, len(g.signals))
	fanOut = make(map[Uid][]Uid, len(g.signals))
	for _, s := range g.signals {
		if _, ok := fanIn[s.Uid()]; !ok {
			fanIn[s.Uid()] = nil
		}
		if _, ok := fanOut[s.Uid()]; !ok {
			fanOut[s.Uid()] = nil
		}
		for _, d := range s.Deps() {
			if d.IsEmpty() {
				continue
			}
			fanIn[s.Uid()] = append(fanIn[s.Uid()], d.Uid())
			fanOut[d.Uid()] = append(fanOut[d.Uid()], s.Uid())
		}
	}
	for _, m := range []map[Uid][]Uid{fanIn, fanOut} {
		for k, v := range m {
			m[k] = sortedUnique(v)
		}
	}
	return fanIn, fanOut
}

// FanIn returns the per-node sets of direct predecessor uids, sorted.
func (g *Graph) FanIn() map[Uid][]Uid {
	in, _ := g.adjacency()
	return in
}

// FanOut returns the per-node sets of direct successor uids, sorted.
func (g *Graph) FanOut() map[Uid][]Uid {
	_, out := g.adjacency()
	return out
}

func sortedUnique(uids []Uid) []Uid {
	if len(uids) < 2 {
		return uids
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	out := uids[:1]
	for _, u := range uids[1:] {
		if u != out[len(out)-1] {
			out = append(out, u)
		}
	}
	return out
}
