package query

import "github.com/cespare/xxhash/v2"

// Key is a 64-bit hash uniquely identifying a source input. Keys are
// supplied by callers via Source.Key; the engine trusts them and does not
// defend against collisions between distinct logical inputs.
type Key uint64

// HashKey derives a Key from arbitrary bytes, for callers that don't already
// have a natural stable identity (e.g. a file path or a cache-line name).
// Two equal byte slices always produce the same Key.
func HashKey(b []byte) Key {
	return Key(xxhash.Sum64(b))
}

// HashKeyString is HashKey for strings, avoiding a copy to []byte on the
// common path of keying by file path or literal name.
func HashKeyString(s string) Key {
	return Key(xxhash.Sum64String(s))
}

// Source is the capability a caller-supplied value must implement to be
// stored in the source table.
type Source[T any] interface {
	// Key returns this source's stable identity.
	Key() Key
	// Value returns the payload to store.
	Value() T
}

// SourceId is a typed handle wrapping a Key. It is copyable regardless of T:
// T is only a phantom tag that keeps callers from mixing source kinds at
// compile time.
type SourceId[T any] struct {
	key Key
}

// Key returns the underlying Key. Used internally and by callers that need
// to correlate a SourceId with external identity (e.g. watcher events).
func (id SourceId[T]) Key() Key {
	return id.key
}

// dynEq is the dynamically-typed, equality-comparable payload box that lets
// the derived-node store hold heterogeneous result types behind one table.
// It is the Go stand-in for the reference engine's boxed trait object.
type dynEq interface {
	// equal reports whether this boxed value is equal to another boxed
	// value. Implementations may assume both boxes were produced by calls
	// to the same user function and so share a concrete type; a mismatched
	// type is treated as unequal rather than a panic.
	equal(other dynEq) bool
}

// box wraps any equality-comparable payload of type T into a dynEq, using
// the caller-supplied equality function if provided, or defaultEqual (== for
// the common scalar kinds, reflect.DeepEqual otherwise) as the default
// (comparable is intentionally not required on T: memoized values may be
// slices or structs containing slices, so equality is a capability, not a
// type constraint).
type box[T any] struct {
	value T
	eq    func(a, b T) bool
}

func newBox[T any](value T, eq func(a, b T) bool) box[T] {
	return box[T]{value: value, eq: eq}
}

func (b box[T]) equal(other dynEq) bool {
	ob, ok := other.(box[T])
	if !ok {
		return false
	}
	if b.eq != nil {
		return b.eq(b.value, ob.value)
	}
	return defaultEqual(b.value, ob.value)
}
