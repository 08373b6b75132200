package service

import "sync"

// WriteLock serializes every store mutation behind a single writer. The
// engine itself is read-only and needs no coordination, but overlapping
// admin sessions issuing writes would otherwise race on last-write-wins;
// one shared lock is passed to every mutating service.
type WriteLock struct {
	sync.Mutex
}

// NewWriteLock creates the single writer lock shared by all mutating services.
func NewWriteLock() *WriteLock {
	return &WriteLock{}
}
