package recall

import (
	"sync"

	"github.com/theapemachine/velixar-mcp/pkg/velixar"
)

// State describes the lifecycle of the snapshot slot.
type State int

const (
	// StateUnfetched means no fetch has completed yet.
	StateUnfetched State = iota
	// StatePopulated means a fetch completed and returned memories.
	StatePopulated
	// StateEmpty means a fetch completed with no memories, or failed.
	StateEmpty
)

/*
Snapshot is the single mutable slot holding the recalled memories. It is
written once by whichever fetch completes first and read by the resource
provider for the life of the process.
*/
type Snapshot struct {
	mu       sync.RWMutex
	state    State
	memories []velixar.Memory
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

/*
Populate stores a fetch result. An empty result is recorded as StateEmpty so
readers can distinguish "nothing there" from "not fetched yet".
*/
func (s *Snapshot) Populate(memories []velixar.Memory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(memories) == 0 {
		s.state = StateEmpty
		s.memories = nil
		return
	}

	s.state = StatePopulated
	s.memories = append([]velixar.Memory(nil), memories...)
}

// MarkEmpty records a failed or empty fetch.
func (s *Snapshot) MarkEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateEmpty
	s.memories = nil
}

func (s *Snapshot) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Memories returns a copy of the recalled memories.
func (s *Snapshot) Memories() []velixar.Memory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]velixar.Memory(nil), s.memories...)
}
