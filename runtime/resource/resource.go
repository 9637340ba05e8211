// Package resource backs WFL's I/O resource handles — file, network,
// database, subprocess, web server, and WebSocket — with concrete Go
// implementations, each exposed to the interpreter as a
// *value.Resource plus a typed handle it can type-assert back to for
// resource-specific operations (read/write/respond/kill/...).
package resource

import (
	"sync"

	"github.com/wfl-lang/wfl/runtime/value"
)

// nextID hands out process-wide unique handle IDs for *value.Resource
// display text (`<file handle #3>`), mirroring how the teacher's ORM
// assigns row IDs rather than leaving handles anonymous.
var (
	idMu  sync.Mutex
	idSeq int64
)

func nextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	idSeq++
	return idSeq
}

// Table is the interpreter's process-wide resource registry, tracking
// every handle opened so far for diagnostics and forced shutdown
// cleanup (spec.md's "unresponded requests are closed at server
// shutdown" and "kill_on_shutdown" rules).
type Table struct {
	mu        sync.Mutex
	resources []*value.Resource
}

// NewTable creates an empty resource table.
func NewTable() *Table { return &Table{} }

// Track registers r so CloseAll can reach it later.
func (t *Table) Track(r *value.Resource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resources = append(t.resources, r)
}

// CloseAll closes every tracked resource, ignoring errors from
// resources that are already closed (Close is idempotent) and
// collecting the rest.
func (t *Table) CloseAll() []error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var errs []error
	for _, r := range t.resources {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
