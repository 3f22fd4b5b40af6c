package query

import (
	"fmt"

	"github.com/vango-dev/querido/internal/errors"
)

// Input is a ready-made Source[T] for callers that don't have a more
// specific type of their own: a Key paired with a plain value.
type Input[T any] struct {
	key   Key
	value T
}

// NewInput builds an Input source keyed by key.
func NewInput[T any](key Key, value T) Input[T] {
	return Input[T]{key: key, value: value}
}

func (i Input[T]) Key() Key { return i.key }
func (i Input[T]) Value() T { return i.value }

// Set installs or updates a source. If a source already exists at src's
// key and compares equal to the new value, the epoch does not advance and
// no dependent recomputes; this is the equality-elision fast path.
//
// Set may be called with a different T than a previous Set at the same
// key; the engine does not check for this; callers that mix types under
// one key get whatever dynEq.equal's type assertion decides, which is
// "unequal" across different box[T] instantiations.
func Set[T any](db *Database, src Source[T]) SourceId[T] {
	value := newBox(src.Value(), nil)
	db.sources.set(db.clock, src.Key(), value)
	return SourceId[T]{key: src.Key()}
}

// SetWithEqual is Set with a caller-supplied equality function, for T that
// should not be compared with reflect.DeepEqual's default behavior (for
// example a value holding unexported fields that don't affect identity).
func SetWithEqual[T any](db *Database, src Source[T], eq func(a, b T) bool) SourceId[T] {
	value := newBox(src.Value(), eq)
	db.sources.set(db.clock, src.Key(), value)
	return SourceId[T]{key: src.Key()}
}

// Get reads a source's current value, registering a dependency on it if
// called from inside a memoized function. Returns a Q001 error if no
// source has ever been set at id's key, or if it was removed and never
// re-set.
func Get[T any](db *Database, id SourceId[T]) (T, error) {
	var zero T
	node, ok := db.sources.get(id.Key())
	if !ok {
		db.log.Warn("source not found", "key", id.Key())
		return zero, errors.New("Q001").WithDetail(fmt.Sprintf("source key %d was never set or has been removed", id.Key()))
	}
	db.registerDependency(Dependency{
		Kind:                  NodeSource,
		SourceKey:             id.Key(),
		TimeVerifiedOrUpdated: db.clock.Current(),
	}, node.timeUpdated)
	b, ok := node.value.(box[T])
	if !ok {
		db.log.Warn("source not found", "key", id.Key(), "reason", "stored under a different type")
		return zero, errors.New("Q001").WithDetail(fmt.Sprintf("source key %d was set with a different type than requested", id.Key()))
	}
	return b.value, nil
}

// Remove deletes a source, always advancing the epoch regardless of
// whether the key existed, so dependents that merely inspected this key's
// absence before are treated consistently with dependents that read its
// value.
func Remove[T any](db *Database, id SourceId[T]) error {
	db.sources.remove(db.clock, id.Key())
	return nil
}

// InspectParam returns the debug representation of the parameter tuple
// interned under id, for introspection tooling (internal/lsp's
// querido/inspectParam request) that is handed a raw ParamId by an
// external client and has no type to recover the tuple with. Returns a
// Q002 error if id was never produced by this Database's interner.
func InspectParam(db *Database, id ParamId) (string, error) {
	tuple, ok := db.interner.Get(id)
	if !ok {
		db.log.Warn("param not found", "param", id)
		return "", errors.New("Q002").WithDetail(fmt.Sprintf("param id %d is not interned in this database", id))
	}
	return fmt.Sprintf("%#v", tuple), nil
}
