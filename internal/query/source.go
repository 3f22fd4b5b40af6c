package query

// sourceNode is the stored record for one externally supplied input:
// its current value and the epoch it was last set at.
type sourceNode struct {
	value       dynEq
	timeUpdated Epoch
}

// sourceTable stores externally supplied inputs keyed by stable identity and
// records the update-time per input. It is C2 of the engine.
type sourceTable struct {
	nodes map[Key]*sourceNode
}

func newSourceTable() *sourceTable {
	return &sourceTable{nodes: make(map[Key]*sourceNode)}
}

// set installs or updates the value at key. It returns the new live epoch
// and whether the epoch actually advanced: it does not when the key already
// held an equal value. This equality-elision is load-bearing: it is what
// lets a caller pre-emptively re-assert an unchanged input (re-reading a
// file with the same bytes, say) without cascading recomputation downstream.
func (t *sourceTable) set(clock *epochClock, key Key, value dynEq) (epoch Epoch, changed bool) {
	if existing, ok := t.nodes[key]; ok {
		if existing.value.equal(value) {
			return clock.Current(), false
		}
		newEpoch := clock.Advance()
		existing.value = value
		existing.timeUpdated = newEpoch
		return newEpoch, true
	}

	newEpoch := clock.Advance()
	t.nodes[key] = &sourceNode{value: value, timeUpdated: newEpoch}
	return newEpoch, true
}

// get returns the node at key, or ok=false if absent.
func (t *sourceTable) get(key Key) (*sourceNode, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// remove deletes the node at key. It always advances the epoch: a removal
// is itself a mutation, even when the key was already absent, so that
// anything watching "has the world changed" can rely on the epoch alone. A
// remove of an absent key reports ok=false but still advances.
func (t *sourceTable) remove(clock *epochClock, key Key) (ok bool) {
	_, existed := t.nodes[key]
	delete(t.nodes, key)
	clock.Advance()
	return existed
}
