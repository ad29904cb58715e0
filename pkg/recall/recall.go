/*
Package recall implements the one-shot startup prefetch of recent memories.
The fetch runs in the background while the server starts serving requests; a
resource read that arrives first can await it, or perform the fetch itself
when the background task was never started.
*/
package recall

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/theapemachine/velixar-mcp/pkg/velixar"
)

// DefaultLimit bounds how many recent memories the prefetch requests.
const DefaultLimit = 10

// Lister is the slice of the velixar client the recaller needs.
type Lister interface {
	ListMemories(ctx context.Context, userID string, limit int, cursor string) (*velixar.ListMemoriesResponse, error)
}

/*
Recaller performs the recent-memories fetch exactly once in intent: started
fire-and-forget at process start, or on demand by the first resource read.
Failures degrade to an empty snapshot and are only surfaced in the logs.
*/
type Recaller struct {
	lister  Lister
	userID  string
	limit   int
	snap    *Snapshot
	done    chan struct{}
	started atomic.Bool
}

func New(lister Lister, userID string, limit int, snap *Snapshot) *Recaller {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &Recaller{
		lister: lister,
		userID: userID,
		limit:  limit,
		snap:   snap,
		done:   make(chan struct{}),
	}
}

// Snapshot returns the slot this recaller writes into.
func (r *Recaller) Snapshot() *Snapshot {
	return r.snap
}

/*
Start launches the background fetch and returns immediately. The completion
channel from Done is closed when the fetch has resolved either way.
*/
func (r *Recaller) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}

	go func() {
		r.fetch(context.Background())
		close(r.done)
	}()
}

// Done reports completion of the startup fetch.
func (r *Recaller) Done() <-chan struct{} {
	return r.done
}

/*
Ensure blocks until the snapshot has left its unfetched state: it awaits the
startup fetch when one is in flight, and otherwise performs the fetch
synchronously. Returns once the snapshot is populated or empty, or the
context is done.
*/
func (r *Recaller) Ensure(ctx context.Context) {
	if r.snap.State() != StateUnfetched {
		return
	}

	if r.started.Load() {
		select {
		case <-r.done:
		case <-ctx.Done():
			return
		}
	}

	if r.snap.State() == StateUnfetched {
		r.fetch(ctx)
	}
}

func (r *Recaller) fetch(ctx context.Context) {
	page, err := r.lister.ListMemories(ctx, r.userID, r.limit, "")

	if err != nil {
		// Recall is best-effort: degrade to an empty snapshot.
		log.Warn("recall fetch failed", "user", r.userID, "error", err)
		r.snap.MarkEmpty()
		return
	}

	r.snap.Populate(page.Memories)
	log.Debug("recall fetch complete", "user", r.userID, "count", len(page.Memories))
}
