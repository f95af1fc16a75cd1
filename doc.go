/*
Package rtl is a typed, bit-width-aware intermediate representation for
synchronous digital hardware.

Logic-building code constructs a graph of signal nodes (constants,
operators, bit selects, wires, registers, memories, module
instantiations) through a builder implementing the Comb contract. Two
builders ship with the package: Base, which constructs nodes verbatim,
and Fold, which additionally folds constant sub-expressions and applies
algebraic simplifications. Once a subgraph is fully driven, NewCircuit
freezes it into an immutable Circuit with discovered inputs, validated
outputs and cached fan-in/fan-out maps, ready for downstream consumers
such as simulators or netlist emitters.

Construction is single-threaded: wires are assigned exactly once, names
only ever append, everything else is fixed at node creation.
Build, then freeze, then read.
*/
package rtl
