package model

import (
	"sync/atomic"
)

// BusyFlag tracks whether background image work is in flight. The zero value is idle and usable.
// Concurrency-safe via atomic Bool because the worker and presenter ticks may race.
type BusyFlag struct {
	busy    atomic.Bool
	started atomic.Uint64
}

// Busy reports whether work is currently running.
func (m *BusyFlag) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}

// SetBusy stores the flag. It returns false when the value did not change.
func (m *BusyFlag) SetBusy(b bool) bool {
	if m == nil {
		return false
	}
	if m.busy.Swap(b) == b { // no change
		return false
	}
	if b {
		m.started.Add(1)
	}
	return true
}

// Started returns how many times the flag went from idle to busy.
func (m *BusyFlag) Started() uint64 {
	if m == nil {
		return 0
	}
	return m.started.Load()
}
