package main

import (
	"fmt"
	"log"
	"os"

	"github.com/steveyegge/graphstore/internal/config"
	"github.com/steveyegge/graphstore/internal/registry"
	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/storage/memory"
	"github.com/steveyegge/graphstore/internal/types"
)

// openStore loads StartOptions (defaults layered with --config, per
// internal/config.Load) and starts a fresh in-memory store for the
// command's lifetime. The CLI never shares a store across invocations;
// that would need a daemon, which is out of scope for a dev sandbox.
func openStore() (storage.Storage, error) {
	opts, err := config.Load(storeName, configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	store := memory.New(opts.Name, opts)
	if err := registry.Default.Register(opts.Name, store); err != nil {
		return nil, err
	}
	return store, nil
}

func closeStore(s storage.Storage) {
	s.Close()
	registry.Default.Unregister(s.Name())
}

// recoverStoreFailure is the supervisor boundary spec.md §7 calls for:
// an IndexInconsistencyError is a fatal bug, never an ordinary error
// return. The store's own goroutine doesn't catch it (it should crash
// that store rather than paper over divergent indices), but this
// top-level recover stops it from also taking down the CLI process with
// a raw stack trace, logging it as a failed store instead.
func recoverStoreFailure() {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*types.IndexInconsistencyError); ok {
		log.Printf("graphstore: store %q failed: %s", ie.Store, ie.Error())
		fmt.Fprintln(os.Stderr, failStyle.Render("store failed: "+ie.Error()))
		os.Exit(1)
	}
	panic(r)
}
