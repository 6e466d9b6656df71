package storage

import "context"

// MemorySlot keeps the value in process memory.
type MemorySlot struct {
	data    []byte
	present bool
}

var _ Slot = (*MemorySlot)(nil)

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	if !s.present {
		return nil, ErrNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.present = true
	return nil
}

func (s *MemorySlot) Remove(_ context.Context) error {
	s.data = nil
	s.present = false
	return nil
}

// Exists reports whether the key is currently set.
func (s *MemorySlot) Exists() bool {
	return s.present
}

func (s *MemorySlot) Close() error { return nil }
