package rtl

import (
	"fmt"

	"github.com/pkg/errors"
)

// A WritePort bundles the signals of one memory write port.
type WritePort struct {
	Clock   *Signal
	Address *Signal
	Enable  *Signal
	Data    *Signal
}

// A ReadPort bundles the signals timing a memory read.
type ReadPort struct {
	Clock   *Signal
	Address *Signal
	Enable  *Signal
}

// addressable reports whether size words fit in width address bits.
func addressable(size, width int) bool {
	if width >= 63 {
		return true
	}
	return int64(size) <= int64(1)<<uint(width)
}

// Memory returns the read data of a single-port clocked memory of the
// given word count. The storage node derives its register spec from the
// write port's clock and enable only. Validation: write enable width 1,
// size > 0, read and write address widths equal, and size addressable
// by the address width; every violation is reported by name.
//
// Dependency order of the resulting node: data, write address, read
// address, then the register spec slots.
//
func Memory(b *Base, size int, w WritePort, readAddress *Signal) (*Signal, error) {
	const op = "memory"
	if size <= 0 {
		return nil, &MemError{Op: op, Field: "size", Port: -1,
			Msg: fmt.Sprintf("%d is not positive", size)}
	}
	for _, c := range []struct {
		field string
		sig   *Signal
	}{
		{"write clock", w.Clock},
		{"write address", w.Address},
		{"write enable", w.Enable},
		{"write data", w.Data},
		{"read address", readAddress},
	} {
		if c.sig.IsEmpty() {
			return nil, &MemError{Op: op, Field: c.field, Port: -1, Msg: "empty signal"}
		}
	}
	if w.Enable.Width() != 1 {
		return nil, &MemError{Op: op, Field: "write enable", Port: -1,
			Msg: fmt.Sprintf("width %d, want 1", w.Enable.Width())}
	}
	if readAddress.Width() != w.Address.Width() {
		return nil, &MemError{Op: op, Field: "read address", Port: -1,
			Msg: fmt.Sprintf("width %d, want write address width %d",
				readAddress.Width(), w.Address.Width())}
	}
	if !addressable(size, w.Address.Width()) {
		return nil, &MemError{Op: op, Field: "size", Port: -1,
			Msg: fmt.Sprintf("%d words exceed %d address bits", size, w.Address.Width())}
	}
	fs, err := formSpec(b, op, NewSpec(w.Clock), w.Enable, w.Data.Width())
	if err != nil {
		return nil, err
	}
	deps := append([]*Signal{w.Data, w.Address, readAddress}, specDeps(fs)...)
	n := b.node(KindMem, w.Data.Width(), deps...)
	n.spec = fs
	n.size = size
	return n, nil
}

// RAMReadBeforeWrite composes a memory whose read sees the pre-write
// contents on a colliding address: the read address is registered, then
// indexes the storage.
//
func RAMReadBeforeWrite(b *Base, size int, w WritePort, r ReadPort) (*Signal, error) {
	ra, err := b.Reg(NewSpec(r.Clock), r.Enable, r.Address)
	if err != nil {
		return nil, errors.Wrap(err, "ram rbw: read address")
	}
	return Memory(b, size, w, ra)
}

// RAMWriteBeforeRead composes a memory whose read sees the newly
// written contents on a colliding address: the storage is indexed with
// the raw address and the output is registered.
//
func RAMWriteBeforeRead(b *Base, size int, w WritePort, r ReadPort) (*Signal, error) {
	q, err := Memory(b, size, w, r.Address)
	if err != nil {
		return nil, err
	}
	q, err = b.Reg(NewSpec(r.Clock), r.Enable, q)
	return q, errors.Wrap(err, "ram wbr: output register")
}

// MultiportMemory returns one read-data signal per read address, all
// backed by a single shared storage node serving every write port. The
// read-port count is independent of the write-port count.
//
// Validation, each failure reported individually and by name: at least
// one write port and one read address; per write port, clock and enable
// width 1, address and data widths uniform across ports; per read
// address, width equal to the write address width; size positive and
// addressable on both sides.
//
func MultiportMemory(b *Base, size int, writes []WritePort, readAddresses []*Signal) ([]*Signal, error) {
	const op = "multiport_memory"
	if size <= 0 {
		return nil, &MemError{Op: op, Field: "size", Port: -1,
			Msg: fmt.Sprintf("%d is not positive", size)}
	}
	if len(writes) == 0 {
		return nil, &MemError{Op: op, Field: "write ports", Port: -1, Msg: "none given"}
	}
	if len(readAddresses) == 0 {
		return nil, &MemError{Op: op, Field: "read addresses", Port: -1, Msg: "none given"}
	}
	addrW, dataW := writes[0].Address.Width(), writes[0].Data.Width()
	for i, w := range writes {
		for _, c := range []struct {
			field string
			sig   *Signal
		}{
			{"write clock", w.Clock},
			{"write address", w.Address},
			{"write enable", w.Enable},
			{"write data", w.Data},
		} {
			if c.sig.IsEmpty() {
				return nil, &MemError{Op: op, Field: c.field, Port: i, Msg: "empty signal"}
			}
		}
		if w.Clock.Width() != 1 {
			return nil, &MemError{Op: op, Field: "write clock", Port: i,
				Msg: fmt.Sprintf("width %d, want 1", w.Clock.Width())}
		}
		if w.Enable.Width() != 1 {
			return nil, &MemError{Op: op, Field: "write enable", Port: i,
				Msg: fmt.Sprintf("width %d, want 1", w.Enable.Width())}
		}
		if w.Address.Width() != addrW {
			return nil, &MemError{Op: op, Field: "write address", Port: i,
				Msg: fmt.Sprintf("width %d, want %d as on port 0", w.Address.Width(), addrW)}
		}
		if w.Data.Width() != dataW {
			return nil, &MemError{Op: op, Field: "write data", Port: i,
				Msg: fmt.Sprintf("width %d, want %d as on port 0", w.Data.Width(), dataW)}
		}
		if !addressable(size, w.Address.Width()) {
			return nil, &MemError{Op: op, Field: "size", Port: i,
				Msg: fmt.Sprintf("%d words exceed %d address bits", size, w.Address.Width())}
		}
	}
	for i, ra := range readAddresses {
		if ra.IsEmpty() {
			return nil, &MemError{Op: op, Field: "read address", Port: i, Msg: "empty signal"}
		}
		if ra.Width() != addrW {
			return nil, &MemError{Op: op, Field: "read address", Port: i,
				Msg: fmt.Sprintf("width %d, want write address width %d", ra.Width(), addrW)}
		}
		if !addressable(size, ra.Width()) {
			return nil, &MemError{Op: op, Field: "size", Port: i,
				Msg: fmt.Sprintf("%d words exceed %d read address bits", size, ra.Width())}
		}
	}

	// one shared storage node; write ports flatten into its deps as
	// (data, address, enable, clock) groups in port order.
	deps := make([]*Signal, 0, 4*len(writes))
	for _, w := range writes {
		deps = append(deps, w.Data, w.Address, w.Enable, w.Clock)
	}
	mem := b.node(KindMultiportMem, dataW, deps...)
	mem.size = size

	ports := make([]*Signal, len(readAddresses))
	for i, ra := range readAddresses {
		ports[i] = b.node(KindMemReadPort, dataW, mem, ra)
		ports[i].size = size
	}
	return ports, nil
}
