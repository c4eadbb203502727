package repository

import (
	"bytes"
	"context"
	"sync"

	"refdataservice/internal/refdata"
)

var _ refdata.Slot = (*MemorySlot)(nil)

// MemorySlot keeps the payload in process memory. Nothing survives a restart.
type MemorySlot struct {
	mu      sync.RWMutex
	payload []byte
	found   bool
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load returns a copy of the stored payload.
func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.found {
		return nil, false, nil
	}
	return bytes.Clone(s.payload), true, nil
}

// Save stores a copy of payload.
func (s *MemorySlot) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = bytes.Clone(payload)
	s.found = true
	return nil
}
