package main

import (
	ctxengine "github.com/ctxagent/ctx"
)

// runPass opens the engine for projectRoot, takes the writer lock for
// the duration of one indexing pass, and releases both before returning.
func runPass(projectRoot string) (ctxengine.Summary, error) {
	e, err := ctxengine.Open(projectRoot)
	if err != nil {
		return ctxengine.Summary{}, err
	}
	defer e.Close()

	lock, err := e.Lock()
	if err != nil {
		return ctxengine.Summary{}, err
	}
	defer lock.Release()

	return e.Run()
}

// openEngine opens the engine without taking the writer lock. The query
// commands use it because the Store's journaling mode lets readers
// proceed alongside a writer; learn also uses it for its single note
// insert.
func openEngine(projectRoot string) (*ctxengine.Engine, error) {
	return ctxengine.Open(projectRoot)
}
