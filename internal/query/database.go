package query

import "log/slog"

// dependencyFrame is one level of the dependency stack: the ordered list of
// dependencies observed so far by the user function currently executing at
// this level, paired with the callee's own time_updated so the parent can
// fold a max() over them.
type dependencyFrame struct {
	// node is the DerivedNodeId of the memoized call this frame belongs to,
	// used for cycle detection against ancestor frames.
	node    DerivedNodeId
	entries []frameEntry
}

type frameEntry struct {
	timeUpdated Epoch
	dep         Dependency
}

// dependencyStack is the run-time apparatus that lets the engine observe
// which reads a user function performs. There is exactly one stack per
// Database, and it is a LIFO: the frame on top corresponds to the
// currently-executing memoized call.
type dependencyStack struct {
	frames []*dependencyFrame
}

func (s *dependencyStack) push(node DerivedNodeId) {
	s.frames = append(s.frames, &dependencyFrame{node: node})
}

func (s *dependencyStack) pop() *dependencyFrame {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

func (s *dependencyStack) top() *dependencyFrame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// containsAncestor reports whether id already appears among the frames
// currently on the stack (i.e. some ancestor call is re-entering its own
// DerivedNodeId), which is how a dependency cycle is detected.
func (s *dependencyStack) containsAncestor(id DerivedNodeId) bool {
	for _, f := range s.frames {
		if f.node == id {
			return true
		}
	}
	return false
}

// Database is the engine's single owned aggregate: the epoch clock, the
// source table, the parameter interner, the derived-node store, and the
// dependency stack. Callers hold only opaque handles (SourceId, and the
// FnIdentity/params pair used with MemoFn.Call); the Database exclusively owns
// everything behind them.
//
// A Database is not safe for concurrent use: the memo driver recurses on the
// calling goroutine's stack and the dependency stack has no synchronization.
// Hosts that need to serialize access from multiple goroutines (the
// dev-server command loop, for instance) must do so themselves.
type Database struct {
	clock    *epochClock
	sources  *sourceTable
	interner *interner
	derived  map[DerivedNodeId]*DerivedNode
	stack    dependencyStack

	log *slog.Logger
}

// NewDatabase creates an empty engine instance. Multiple Databases may exist
// in one process; they share no state and must not exchange handles.
func NewDatabase() *Database {
	return &Database{
		clock:    newEpochClock(),
		sources:  newSourceTable(),
		interner: newInterner(),
		derived:  make(map[DerivedNodeId]*DerivedNode),
		log:      slog.Default(),
	}
}

// WithLogger replaces the Database's logger. Derived-node computation and
// recomputation are logged at Debug, and engine-raised errors at Warn,
// through this logger.
func (db *Database) WithLogger(log *slog.Logger) *Database {
	db.log = log
	return db
}

// CurrentEpoch returns the live epoch. Read-only; never advances anything.
func (db *Database) CurrentEpoch() Epoch {
	return db.clock.Current()
}

// registerDependency appends a dependency to the parent frame, if one
// exists. If the dependency stack is empty, the current call is the
// outermost host call and there is nothing to register against.
func (db *Database) registerDependency(dep Dependency, timeUpdated Epoch) {
	frame := db.stack.top()
	if frame == nil {
		return
	}
	frame.entries = append(frame.entries, frameEntry{timeUpdated: timeUpdated, dep: dep})
}
