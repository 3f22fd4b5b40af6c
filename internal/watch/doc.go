// Package watch monitors a project's source directories for changes and
// reports them as a stream of Events, so internal/devserver can trigger a
// recompile without scanning the whole tree on every tick.
//
// # Usage
//
//	w, err := watch.New(watch.Config{
//	    Paths:    cfg.SourcePaths(),
//	    Ignore:   cfg.Watch.Ignore,
//	    Debounce: 100 * time.Millisecond,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	w.OnEvent(func(batch []watch.Event) {
//	    for _, e := range batch {
//	        fmt.Println(e.Kind, e.Path)
//	    }
//	})
//	w.Start(ctx)
package watch
