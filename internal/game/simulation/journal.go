package simulation

import (
	"context"
	"sync"

	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/model"
)

const defaultJournalSize = 256

// Entry is one journaled event outcome.
type Entry struct {
	Tick   int64
	Result event.EventResult
}

// Sink receives every journal entry, e.g. a database writer.
type Sink interface {
	Append(ctx context.Context, tick int64, r event.EventResult) error
}

// Journal keeps the most recent event outcomes in a ring buffer.
//
// Thread-safe: all methods are protected by sync.Mutex.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	total   int64
}

// NewJournal creates a journal that keeps the last size entries.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = defaultJournalSize
	}
	return &Journal{entries: make([]Entry, size)}
}

// Record stores an entry, evicting the oldest when full.
func (j *Journal) Record(tick int64, r event.EventResult) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.next] = Entry{Tick: tick, Result: r}
	j.next = (j.next + 1) % len(j.entries)
	if j.next == 0 {
		j.full = true
	}
	j.total++
}

// Entries returns retained entries oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.full {
		out := make([]Entry, j.next)
		copy(out, j.entries[:j.next])
		return out
	}
	out := make([]Entry, 0, len(j.entries))
	out = append(out, j.entries[j.next:]...)
	out = append(out, j.entries[:j.next]...)
	return out
}

// ByInitiator returns retained entries started by id, oldest first.
func (j *Journal) ByInitiator(id model.EntityID) []Entry {
	var out []Entry
	for _, e := range j.Entries() {
		if e.Result.Event != nil && e.Result.Event.InitiatorID() == id {
			out = append(out, e)
		}
	}
	return out
}

// Total returns the number of entries ever recorded.
func (j *Journal) Total() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.total
}
