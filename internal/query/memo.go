package query

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/querido/internal/errors"
)

// DidRecalculate reports whether a call to Memo actually re-ran the inner
// function or reused a previously verified value.
type DidRecalculate int

const (
	ReusedMemoizedValue DidRecalculate = iota
	Recalculated
)

func (d DidRecalculate) String() string {
	if d == Recalculated {
		return "Recalculated"
	}
	return "ReusedMemoizedValue"
}

var nextFnIdentity uint64

// nextFn allocates a fresh FnIdentity. Called once per FuncOf registration;
// never at call time, so identities stay stable across a process's
// lifetime.
func nextFn() FnIdentity {
	return FnIdentity(atomic.AddUint64(&nextFnIdentity, 1))
}

// MemoFn is a memoized pure function bound to a stable FnIdentity. Obtain
// one with FuncOf and invoke it with Call; two Calls sharing both the
// MemoFn and an equal parameter tuple resolve to the same cached node.
type MemoFn[T any] struct {
	id    FnIdentity
	inner func(db *Database, p ParamId) (T, error)
}

// FuncOf registers a pure function for memoization. inner must depend on
// its arguments and on the Database only through Get/Memo calls made on
// db; anything else it reads will not be tracked and will not trigger
// recomputation when it changes.
func FuncOf[T any](inner func(db *Database, p ParamId) (T, error)) MemoFn[T] {
	return MemoFn[T]{id: nextFn(), inner: inner}
}

// Call runs f, memoized on f's identity and the interned params tuple. If a
// cached, verified-current value already exists, it is returned without
// calling inner.
func (f MemoFn[T]) Call(db *Database, params ...any) (T, DidRecalculate, error) {
	paramId := db.interner.Intern(params...)
	nodeId := DerivedNodeId{Fn: f.id, Param: paramId}

	raw := func(db *Database, p ParamId) (dynEq, error) {
		v, err := f.inner(db, p)
		if err != nil {
			return nil, err
		}
		return newBox(v, nil), nil
	}

	value, did, err := memo(db, nodeId, raw)
	if err != nil {
		var zero T
		return zero, did, err
	}
	return value.(box[T]).value, did, nil
}

// memo is the untyped driver: the Case A / B / C decision from the design
// notes, working entirely in terms of dynEq so it can recurse into a
// dependency's own inner function without knowing its result type.
func memo(db *Database, nodeId DerivedNodeId, innerFn rawFunc) (dynEq, DidRecalculate, error) {
	if db.stack.containsAncestor(nodeId) {
		return nil, ReusedMemoizedValue, errors.New("Q003").
			WithDetail(fmt.Sprintf("function %d re-entered itself via parameter %d", nodeId.Fn, nodeId.Param))
	}

	currentEpoch := db.clock.Current()
	node, exists := db.derived[nodeId]

	var timeUpdated Epoch
	var did DidRecalculate

	switch {
	case !exists:
		// Case A: no existing node. Compute fresh and insert.
		value, dependencies, computedUpdated, err := callAndCollectDependencies(db, nodeId, innerFn)
		if err != nil {
			return nil, ReusedMemoizedValue, err
		}
		db.derived[nodeId] = &DerivedNode{
			value:        value,
			dependencies: dependencies,
			timeVerified: currentEpoch,
			timeUpdated:  computedUpdated,
			innerFn:      innerFn,
		}
		timeUpdated = computedUpdated
		did = Recalculated
		db.log.Debug("derived node computed", "fn", nodeId.Fn, "param", nodeId.Param, "epoch", currentEpoch)

	case !anyDependencyChanged(db, nodeId, node, currentEpoch):
		// Case B: node exists and every dependency is confirmed current as
		// of this epoch (or was re-verified just now). Reuse as-is.
		node.timeVerified = currentEpoch
		timeUpdated = node.timeUpdated
		did = ReusedMemoizedValue

	default:
		// Case C: node exists but at least one dependency may have changed.
		// Recompute and compare; an equal value preserves time_updated so
		// dependents of this node are not themselves forced to recompute.
		value, dependencies, computedUpdated, err := callAndCollectDependencies(db, nodeId, innerFn)
		if err != nil {
			return nil, ReusedMemoizedValue, err
		}
		if node.value.equal(value) {
			did = ReusedMemoizedValue
		} else {
			node.value = value
			node.timeUpdated = computedUpdated
			did = Recalculated
			db.log.Debug("derived node recomputed with a changed value", "fn", nodeId.Fn, "param", nodeId.Param, "epoch", currentEpoch)
		}
		node.dependencies = dependencies
		node.timeVerified = currentEpoch
		node.innerFn = innerFn
		timeUpdated = node.timeUpdated
	}

	db.registerDependency(Dependency{
		Kind:                  NodeDerived,
		DerivedTo:             nodeId,
		TimeVerifiedOrUpdated: currentEpoch,
	}, timeUpdated)

	return db.derived[nodeId].value, did, nil
}

// anyDependencyChanged checks every dependency not already confirmed
// current as of currentEpoch. A dependency recorded at currentEpoch was
// either just verified or just registered by a sibling call this same
// epoch and needs no further work.
func anyDependencyChanged(db *Database, nodeId DerivedNodeId, node *DerivedNode, currentEpoch Epoch) bool {
	for _, dep := range node.dependencies {
		if dep.TimeVerifiedOrUpdated == currentEpoch {
			continue
		}
		switch dep.Kind {
		case NodeSource:
			if sourceNodeChangedSince(db, dep.SourceKey, dep.TimeVerifiedOrUpdated) {
				return true
			}
		case NodeDerived:
			if derivedNodeChangedSince(db, dep.DerivedTo, dep.TimeVerifiedOrUpdated) {
				return true
			}
		}
	}
	return false
}

func sourceNodeChangedSince(db *Database, key Key, since Epoch) bool {
	n, ok := db.sources.get(key)
	if !ok {
		// The source was removed since this dependency was recorded; treat
		// as changed so the derived node recomputes and observes the
		// removal through its own Get call.
		return true
	}
	return n.timeUpdated > since
}

func derivedNodeChangedSince(db *Database, nodeId DerivedNodeId, since Epoch) bool {
	if _, ok := db.interner.Get(nodeId.Param); !ok {
		return true
	}
	node, ok := db.derived[nodeId]
	if !ok {
		return true
	}
	if node.timeUpdated > since {
		return true
	}
	_, did, err := memo(db, nodeId, node.innerFn)
	if err != nil {
		return true
	}
	return did == Recalculated
}

// callAndCollectDependencies pushes a fresh dependency frame, runs innerFn
// inside it, and folds the collected entries into a dependency list and the
// max time_updated across them (initialEpoch if the call made no tracked
// reads).
func callAndCollectDependencies(db *Database, nodeId DerivedNodeId, innerFn rawFunc) (value dynEq, dependencies []Dependency, timeUpdated Epoch, err error) {
	db.stack.push(nodeId)

	value, err = callGuarded(db, nodeId, innerFn)
	frame := db.stack.pop()
	if err != nil {
		return nil, nil, 0, err
	}

	maxUpdated := initialEpoch
	deps := make([]Dependency, 0, len(frame.entries))
	for _, e := range frame.entries {
		deps = append(deps, e.dep)
		if e.timeUpdated > maxUpdated {
			maxUpdated = e.timeUpdated
		}
	}
	return value, deps, maxUpdated, nil
}

// callGuarded invokes innerFn and recovers a panic into an error so the
// dependency frame pushed above is always popped by the caller, even if
// the user function unwinds.
func callGuarded(db *Database, nodeId DerivedNodeId, innerFn rawFunc) (value dynEq, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("querido: panic in memoized function %d: %v", nodeId.Fn, r)
		}
	}()
	return innerFn(db, nodeId.Param)
}
