package llmcall

import (
	"fmt"
	"sync"
)

// DefaultCapacity bounds the in-memory call log.
const DefaultCapacity = 1000

// Log is a bounded in-memory record of model calls, newest retained.
// It is safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	capacity int
	calls    []*Call
	byID     map[string]*Call
}

// NewLog creates a call log that keeps at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		byID:     make(map[string]*Call),
	}
}

// Record appends a call, evicting the oldest entry when full.
// Nil calls are ignored.
func (l *Log) Record(call *Call) {
	if call == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.calls) == l.capacity {
		oldest := l.calls[0]
		l.calls = l.calls[1:]
		delete(l.byID, oldest.ID)
	}
	l.calls = append(l.calls, call)
	l.byID[call.ID] = call
}

// List returns up to limit calls, newest first. A non-positive limit
// returns all retained calls.
func (l *Log) List(limit int) []*Call {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.calls)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Call, 0, n)
	for i := len(l.calls) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.calls[i])
	}
	return out
}

// Get returns a call by ID.
func (l *Log) Get(id string) (*Call, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	call, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("call not found: %s", id)
	}
	return call, nil
}

// Len returns the number of retained calls.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.calls)
}
