package query

// FnIdentity is a stable handle for a specific memoized pure function.
// Callers register a function once, through FuncOf, and thereafter every
// call sharing both the identity and the interned parameters resolves to
// the same DerivedNodeId and therefore the same cached node.
type FnIdentity uint64

// rawFunc is the type-erased shape every memoized function is reduced to
// internally. The generic FuncOf[T] wraps a func(*Database, ParamId) (T,
// error) down to this signature so the driver can re-invoke a dependency's
// own function during Case C verification without knowing its result type.
type rawFunc func(db *Database, p ParamId) (dynEq, error)

// DerivedNodeId is a pair of a function identity and an interned parameter
// tuple: the identity of one memoized call.
type DerivedNodeId struct {
	Fn    FnIdentity
	Param ParamId
}

// NodeKind tags what a Dependency points at: a source or another derived
// node.
type NodeKind int

const (
	NodeSource NodeKind = iota
	NodeDerived
)

// Dependency is a recorded read edge from a derived node to a source or to
// another derived node, carrying the epoch at which the edge was last
// confirmed. Order within a DerivedNode's dependency list is preserved
// (insertion order) but not semantically significant.
type Dependency struct {
	Kind NodeKind

	// SourceKey is valid when Kind == NodeSource.
	SourceKey Key

	// DerivedTo is valid when Kind == NodeDerived.
	DerivedTo DerivedNodeId

	// TimeVerifiedOrUpdated is the epoch at which this dependency was last
	// observed to be current, at the moment the parent node's value was
	// installed.
	TimeVerifiedOrUpdated Epoch
}

// DerivedNode holds the last computed value of one memoized call, its
// dependency list, and the two epochs that drive the freshness check:
// TimeVerified (last confirmed current, whether or not the value changed)
// and TimeUpdated (last epoch at which the value actually changed).
//
// Invariant: TimeVerified >= TimeUpdated always.
type DerivedNode struct {
	value        dynEq
	dependencies []Dependency
	timeVerified Epoch
	timeUpdated  Epoch

	// innerFn is the function that produced value, retained so the driver
	// can call it again: once to recompute on a confirmed-stale node, and
	// recursively to verify a dependency of kind NodeDerived during Case C.
	innerFn rawFunc
}
