package rtl

// CompareOpts selects which parts of a node graph participate in a
// structural comparison.
type CompareOpts struct {
	Names bool // compare name lists
	Deps  bool // recurse into dependency lists
}

// Equivalent performs a cycle-safe structural comparison of the graphs
// rooted at a and b. The walk is guarded by a visited set keyed on the
// first argument's uids: a revisited pair is assumed equal. This
// terminates cycles but is a heuristic, not a full bisimulation; it can
// under-detect divergence in cyclic graphs past the first revisit.
//
func Equivalent(a, b *Signal, opts CompareOpts) bool {
	return equivalent(a, b, opts, make(map[Uid]bool))
}

func equivalent(a, b *Signal, opts CompareOpts, seen map[Uid]bool) bool {
	if seen[a.Uid()] {
		return true
	}
	seen[a.Uid()] = true

	// kind and kind-specific payload
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindConst:
		if a.Bits() != b.Bits() {
			return false
		}
	case KindSelect:
		ah, al := a.Bounds()
		bh, bl := b.Bounds()
		if ah != bh || al != bl {
			return false
		}
	case KindMem, KindMultiportMem, KindMemReadPort:
		if a.MemSize() != b.MemSize() {
			return false
		}
	case KindInst:
		if !interfaceEqual(a.Inst(), b.Inst()) {
			return false
		}
	case KindOp:
		if a.Op() != b.Op() {
			return false
		}
	}

	if a.Width() != b.Width() {
		return false
	}

	// best-effort name check: a failure to read either name list does
	// not block the comparison.
	if opts.Names {
		na, erra := a.Names()
		nb, errb := b.Names()
		if erra == nil && errb == nil {
			if len(na) != len(nb) {
				return false
			}
			for i := range na {
				if na[i] != nb[i] {
					return false
				}
			}
		}
	}

	if opts.Deps {
		da, db := a.Deps(), b.Deps()
		if len(da) != len(db) {
			return false
		}
		for i := range da {
			if !equivalent(da[i], db[i], opts, seen) {
				return false
			}
		}
	}
	return true
}
