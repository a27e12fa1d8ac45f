package cache

import "time"

// LayeredStore checks memory before disk and promotes disk hits
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a memory+disk store
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir, diskTTL),
	}
}

// Get retrieves a value, checking memory first
func (s *LayeredStore) Get(key string) ([]byte, bool) {
	if val, found := s.memory.Get(key); found {
		return val, true
	}

	if val, found := s.disk.Get(key); found {
		s.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (s *LayeredStore) Set(key string, value []byte, ttl time.Duration) error {
	if err := s.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return s.disk.Set(key, value, ttl)
}

// Delete removes a value from both layers
func (s *LayeredStore) Delete(key string) error {
	s.memory.Delete(key)
	s.disk.Delete(key)
	return nil
}

// Clear removes all values from both layers
func (s *LayeredStore) Clear() error {
	s.memory.Clear()
	s.disk.Clear()
	return nil
}
