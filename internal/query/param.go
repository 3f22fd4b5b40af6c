package query

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ParamId is a 64-bit handle identifying an interned parameter tuple. Two
// calls whose parameters compare equal under the interner's hashing receive
// the same ParamId; the memo driver never walks inside parameters, only
// compares identity.
type ParamId uint64

// interner canonicalises call arguments into ParamIds so memo lookups use
// cheap integer equality instead of comparing argument tuples directly. It
// owns the stored tuples so they outlive any DerivedNodeId referencing them.
type interner struct {
	mu     sync.Mutex
	byHash map[uint64]ParamId
	tuples map[ParamId][]any
	nextId ParamId
}

func newInterner() *interner {
	return &interner{
		byHash: make(map[uint64]ParamId),
		tuples: make(map[ParamId][]any),
	}
}

// Intern canonicalises a parameter tuple into a stable ParamId. Parts are
// hashed structurally (via fmt's %#v representation, which is stable for the
// plain value types params are expected to be: strings, numbers, and small
// comparable structs); a good hash makes distinct-tuple collisions
// vanishingly unlikely, so structural hash equality is treated as tuple
// equality.
func (in *interner) Intern(parts ...any) ParamId {
	h := hashParts(parts)

	in.mu.Lock()
	defer in.mu.Unlock()

	if id, ok := in.byHash[h]; ok {
		return id
	}

	in.nextId++
	id := in.nextId
	in.byHash[h] = id
	in.tuples[id] = parts
	return id
}

// Get returns the tuple previously interned under id. It is infallible for
// any id this interner itself returned from Intern; ok is false only for an
// id that was never produced by this instance (e.g. one leaked from another
// engine).
func (in *interner) Get(id ParamId) ([]any, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	tuple, ok := in.tuples[id]
	return tuple, ok
}

func hashParts(parts []any) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		fmt.Fprintf(d, "%#v|", p)
	}
	return d.Sum64()
}
