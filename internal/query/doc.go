// Package query implements Querido's incremental computation engine: the
// query database that underpins every recomputation in the compiler.
//
// The engine is single-threaded, cooperative, and synchronous. It tracks
// dependencies between mutable "source" inputs and memoized pure functions
// ("derived" nodes), and re-runs the minimum amount of work needed to bring a
// derived value up to date after a source changes.
//
// # Core concepts
//
//   - Epoch: a strictly monotonic logical clock, advanced whenever a source
//     changes value or is removed.
//   - Source: an externally supplied input, set and read through a Database.
//   - Derived node: the memoized result of a pure function call, identified
//     by the function's identity plus its interned parameters.
//
// # Usage
//
//	db := query.NewDatabase()
//	a := query.Set(db, query.NewInput(query.Key(1), 1))
//	b := query.Set(db, query.NewInput(query.Key(2), 2))
//
//	sum := query.FuncOf(func(db *query.Database, _ query.ParamId) (int, error) {
//	    av, _ := query.Get(db, a)
//	    bv, _ := query.Get(db, b)
//	    return av + bv, nil
//	})
//
//	value, did, err := sum.Call(db)
//
// The engine does not persist across process restarts, does not cancel
// in-flight computations, does not execute independent memoized calls in
// parallel, and does not garbage-collect unreferenced nodes; these are
// explicit non-goals, not oversights.
package query
