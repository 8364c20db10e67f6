package store

import "slices"

// Memory is an in-process blob store. Nothing survives the process.
type Memory struct {
	blobs map[string][]byte

	// FailPut, when set, is returned by every Put.
	FailPut error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	b, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(b), true, nil
}

// Put replaces the blob stored under key.
func (m *Memory) Put(key string, data []byte) error {
	if m.FailPut != nil {
		return m.FailPut
	}
	m.blobs[key] = slices.Clone(data)
	return nil
}
