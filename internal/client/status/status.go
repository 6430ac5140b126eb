// Package status tracks the lifecycle of store operations per operation kind.
//
// Each kind moves Idle -> Pending -> Fulfilled | Rejected | Cancelled and
// back to Pending on the next dispatch. Kinds are independent: a failing
// stats request does not touch the state of a concurrent lead update.
//
// A Tracker is not safe for concurrent use on its own; stores drive it under
// their own mutex so that state changes and data changes land together.
package status

import (
	"context"
	"errors"
)

// ErrSuperseded is returned to the caller of a request whose result was
// dropped because a newer request of the same kind was dispatched.
var ErrSuperseded = errors.New("superseded by a newer request")

type State int

const (
	Idle State = iota
	Pending
	Fulfilled
	Rejected
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Op is the status of the latest request of one kind. Err is set only when
// State is Rejected.
type Op struct {
	State State
	Err   error
}

// Token identifies one dispatched request.
type Token[K comparable] struct {
	kind K
	seq  uint64
}

func (t Token[K]) Kind() K { return t.kind }

type Tracker[K comparable] struct {
	seq     uint64
	ops     map[K]Op
	current map[K]uint64
}

func NewTracker[K comparable]() *Tracker[K] {
	return &Tracker[K]{ops: make(map[K]Op), current: make(map[K]uint64)}
}

// Begin marks kind as pending and returns the token that will be allowed to
// settle it. Any earlier token for the same kind becomes stale.
func (t *Tracker[K]) Begin(kind K) Token[K] {
	t.seq++
	t.current[kind] = t.seq
	t.ops[kind] = Op{State: Pending}
	return Token[K]{kind: kind, seq: t.seq}
}

// Current reports whether tok is still the latest request of its kind.
func (t *Tracker[K]) Current(tok Token[K]) bool {
	return t.current[tok.kind] == tok.seq && tok.seq != 0
}

func (t *Tracker[K]) Succeed(tok Token[K]) bool {
	return t.settle(tok, Op{State: Fulfilled})
}

func (t *Tracker[K]) Fail(tok Token[K], err error) bool {
	return t.settle(tok, Op{State: Rejected, Err: err})
}

func (t *Tracker[K]) Cancel(tok Token[K]) bool {
	return t.settle(tok, Op{State: Cancelled})
}

func (t *Tracker[K]) settle(tok Token[K], op Op) bool {
	if !t.Current(tok) {
		return false
	}
	t.ops[tok.kind] = op
	delete(t.current, tok.kind)
	return true
}

// Settle records how the request behind tok ended and returns the recorded
// state along with the error the caller should see. Only Fulfilled means the
// result may be applied. A done ctx yields Cancelled even if the call
// succeeded; a stale token records nothing and yields Cancelled with
// ErrSuperseded.
func (t *Tracker[K]) Settle(ctx context.Context, tok Token[K], err error) (State, error) {
	switch {
	case ctx.Err() != nil:
		t.Cancel(tok)
		return Cancelled, ctx.Err()
	case !t.Current(tok):
		return Cancelled, ErrSuperseded
	case err != nil:
		t.Fail(tok, err)
		return Rejected, err
	}
	t.Succeed(tok)
	return Fulfilled, nil
}

// Get returns the status of kind; never-dispatched kinds are Idle.
func (t *Tracker[K]) Get(kind K) Op {
	return t.ops[kind]
}

// Pending reports whether any kind has a request in flight.
func (t *Tracker[K]) Pending() bool {
	for _, op := range t.ops {
		if op.State == Pending {
			return true
		}
	}
	return false
}

// Snapshot copies every non-idle status.
func (t *Tracker[K]) Snapshot() map[K]Op {
	out := make(map[K]Op, len(t.ops))
	for k, v := range t.ops {
		out[k] = v
	}
	return out
}

// Reset forgets all statuses. In-flight tokens become stale.
func (t *Tracker[K]) Reset() {
	t.ops = make(map[K]Op)
	t.current = make(map[K]uint64)
}
