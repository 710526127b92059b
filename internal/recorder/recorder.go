// Package recorder implements the process-wide mutable ledger the
// (externally supplied) circuit front end emits operations through: a
// pointer-based ABI with no context handle, so the three parallel vectors
// it appends to are protected by a single mutex rather than threaded as
// explicit state (§4.3, §9 "Process-wide mutable state"). internal/frontend
// is the only in-tree caller; a real circuit compiler would call the same
// Handle-returning API.
package recorder

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	werrors "witness/internal/errors"
	"witness/internal/field"
	"witness/internal/graph"
	"witness/internal/obs"
)

// Handle is an opaque reference to a recorded node. It is only meaningful
// against the Recorder that produced it.
type Handle int

// Recorder accumulates graph.Node entries and, for every node, the
// concrete field.Element it currently evaluates to (so that IsTrue/ToInt
// can answer immediately without walking the graph). isConstant tracks
// which handles are eligible for IsTrue/ToInt.
type Recorder struct {
	mu         deadlock.Mutex
	nodes      []graph.Node
	values     []field.Element
	isConstant []bool
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Constant records a literal value and returns its handle.
func (r *Recorder) Constant(v field.Element) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.append(graph.ConstantNode(v), v, true)
}

// Input records a named-input placeholder at the given slot. Its value is
// unknown until evaluation time, so it is not constant.
func (r *Recorder) Input(slot int) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.append(graph.InputNode(slot), field.Zero, false)
}

// Binop records an operation over two already-recorded handles. If both
// operands are currently constant, the result is computed eagerly and
// marked constant too (mirroring the front end's incremental constant
// tracking); arithmetic errors (e.g. division by a constant zero) are
// returned to the caller rather than deferred to evaluation time, since
// the concrete values are known right now.
func (r *Recorder) Binop(op graph.Operation, a, b Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(a, b); err != nil {
		return 0, err
	}

	node := graph.OpNode(op, int(a), int(b))
	if r.isConstant[a] && r.isConstant[b] {
		v, err := graph.Eval(op, r.values[a], r.values[b])
		if err != nil {
			return 0, errors.Wrapf(err, "recorder: binop %s", op)
		}
		return r.append(node, v, true), nil
	}
	return r.append(node, field.Zero, false), nil
}

// Neg returns 0 - a.
func (r *Recorder) Neg(a Handle) (Handle, error) {
	zero := r.Constant(field.Zero)
	return r.Binop(graph.Sub, zero, a)
}

// Inv returns 1 / a.
func (r *Recorder) Inv(a Handle) (Handle, error) {
	one := r.Constant(field.One)
	return r.Binop(graph.Div, one, a)
}

// Square returns a * a.
func (r *Recorder) Square(a Handle) (Handle, error) {
	return r.Binop(graph.Mul, a, a)
}

// IsTrue reports whether handle a's recorded value is the nonzero truth
// value. It is only valid on a handle the recorder has proven constant;
// calling it on a value that depends on an Input is a caller programming
// error, and the recorder logs the ancestor chain before returning one
// (§4.3, §7 "Recorder misuse").
func (r *Recorder) IsTrue(a Handle) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkRange(a); err != nil {
		return false, err
	}
	if !r.isConstant[a] {
		r.logAncestorTrace(a)
		return false, &NonConstantAccessError{Handle: a, Call: "IsTrue"}
	}
	return !r.values[a].IsZero(), nil
}

// ToInt returns handle a's recorded value. Same non-constant restriction
// as IsTrue.
func (r *Recorder) ToInt(a Handle) (field.Element, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkRange(a); err != nil {
		return field.Element{}, err
	}
	if !r.isConstant[a] {
		r.logAncestorTrace(a)
		return field.Element{}, &NonConstantAccessError{Handle: a, Call: "ToInt"}
	}
	return r.values[a], nil
}

// Copy records a new node identical in value to a (a fresh handle, same
// kind and operands), matching the front end's habit of duplicating a
// signal's defining expression rather than aliasing it.
func (r *Recorder) Copy(a Handle) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkRange(a); err != nil {
		return 0, err
	}
	return r.append(r.nodes[a], r.values[a], r.isConstant[a]), nil
}

// CopyN records n copies of a, returning their handles in order.
func (r *Recorder) CopyN(a Handle, n int) ([]Handle, error) {
	out := make([]Handle, n)
	for i := 0; i < n; i++ {
		h, err := r.Copy(a)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// CreateVec records n fresh Input nodes at consecutive slots starting at
// firstSlot, returning their handles.
func (r *Recorder) CreateVec(firstSlot, n int) []Handle {
	out := make([]Handle, n)
	for i := 0; i < n; i++ {
		out[i] = r.Input(firstSlot + i)
	}
	return out
}

// CreateVecU32 is CreateVec for the front end's u32-indexed input arrays;
// slots are still plain ints in our model, so it is a thin rename.
func (r *Recorder) CreateVecU32(firstSlot uint32, n uint32) []Handle {
	return r.CreateVec(int(firstSlot), int(n))
}

// Snapshot returns the node list recorded so far. Callers (internal/frontend,
// or any future generated front end) pass this to optimize.Default().Run
// and then codec.Serialize once recording is complete.
func (r *Recorder) Snapshot(outputs []Handle) *graph.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	outs := make([]int, len(outputs))
	for i, h := range outputs {
		outs[i] = int(h)
	}
	return &graph.Program{
		Nodes:   append([]graph.Node(nil), r.nodes...),
		Outputs: outs,
	}
}

func (r *Recorder) append(n graph.Node, v field.Element, constant bool) Handle {
	r.nodes = append(r.nodes, n)
	r.values = append(r.values, v)
	r.isConstant = append(r.isConstant, constant)
	return Handle(len(r.nodes) - 1)
}

func (r *Recorder) checkRange(handles ...Handle) error {
	for _, h := range handles {
		if int(h) < 0 || int(h) >= len(r.nodes) {
			return &InvalidHandleError{Handle: h, Size: len(r.nodes)}
		}
	}
	return nil
}

// logAncestorTrace walks the operand chain backward from a and emits it as
// a diagnostic, since IsTrue/ToInt misuse is a front-end bug whose cause is
// usually visible a few operands up.
func (r *Recorder) logAncestorTrace(a Handle) {
	var trace []string
	cur := int(a)
	for depth := 0; depth < 8 && cur >= 0; depth++ {
		n := r.nodes[cur]
		trace = append(trace, fmt.Sprintf("%%%d=%s", cur, n.Kind))
		if n.Kind != graph.KindOp {
			break
		}
		cur = n.Lhs
	}
	obs.Logger.Error().Strs("ancestors", trace).Int("handle", int(a)).
		Msg("recorder: is_true/to_int called on non-constant handle")
}

// InvalidHandleError reports a Handle that does not refer to any node this
// Recorder has produced.
type InvalidHandleError struct {
	Handle Handle
	Size   int
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("recorder: handle %d out of range (%d nodes)", e.Handle, e.Size)
}

// Code reports the stable error code for an InvalidHandleError.
func (e *InvalidHandleError) Code() werrors.Code { return werrors.ErrInvalidHandle }

// NonConstantAccessError reports an IsTrue/ToInt call on a handle whose
// value is not yet known.
type NonConstantAccessError struct {
	Handle Handle
	Call   string
}

func (e *NonConstantAccessError) Error() string {
	return fmt.Sprintf("recorder: %s called on non-constant handle %d", e.Call, e.Handle)
}

// Code reports the stable error code for a NonConstantAccessError.
func (e *NonConstantAccessError) Code() werrors.Code { return werrors.ErrNonConstantAccess }
