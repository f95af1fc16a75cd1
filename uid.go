package rtl

// A Uid is the process-scoped identity of a signal node. Uid 0 is
// reserved for the Empty sentinel; real nodes start at 1.
//
type Uid int64

// Uids allocates strictly increasing uids for a construction epoch.
// An allocator is threaded explicitly through builders rather than kept
// as ambient global state; it is not safe for concurrent use.
//
type Uids struct {
	next Uid
}

// NewUids returns a fresh allocator whose first allocated uid is 1.
//
func NewUids() *Uids {
	return &Uids{next: 1}
}

// Next returns the current counter value and increments it.
//
func (u *Uids) Next() Uid {
	n := u.next
	u.next++
	return n
}

// Reset rewinds the counter to 1. This breaks uid uniqueness for any
// graph built before the reset: confine it to isolated test or sandbox
// scopes, never a live construction.
//
func (u *Uids) Reset() {
	u.next = 1
}

// defaultUids backs builders created without an explicit allocator.
var defaultUids = NewUids()
