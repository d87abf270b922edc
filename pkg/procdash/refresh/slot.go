// Package refresh keeps the latest rendered dashboard in sync with its source.
package refresh

import (
	"sync/atomic"
	"time"

	"github.com/ukaji3/procdash-go/pkg/procdash"
)

// Snapshot is one published dashboard and the blob version it came from.
// Snapshots are never modified after being stored.
type Snapshot struct {
	Version   string
	Origin    string
	ModTime   time.Time
	LoadedAt  time.Time
	Dashboard *procdash.Dashboard
}

// Slot holds the current snapshot. Writers race with last-write-wins
// semantics; readers always see a whole snapshot.
type Slot struct {
	p atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or nil before the first Store.
func (s *Slot) Load() *Snapshot { return s.p.Load() }

// Store publishes snap, replacing any previous snapshot.
func (s *Slot) Store(snap *Snapshot) { s.p.Store(snap) }

// Version returns the current snapshot version, or "" when empty.
func (s *Slot) Version() string {
	if snap := s.p.Load(); snap != nil {
		return snap.Version
	}
	return ""
}
