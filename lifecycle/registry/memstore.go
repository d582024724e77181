package registry

import "sync"

// MemoryStore keeps registry rows in memory. Used by tests and as a
// conformant embedded backend when no database is configured.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]Serial
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]Serial)}
}

func (m *MemoryStore) LoadAll() ([]Serial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Serial, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	return out, nil
}

func (m *MemoryStore) InsertBatch(serials []Serial) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range serials {
		if _, ok := m.rows[s.SerialNo]; ok {
			return &DuplicateSerialError{SerialNo: s.SerialNo}
		}
	}
	for _, s := range serials {
		m.rows[s.SerialNo] = s
	}
	return nil
}

func (m *MemoryStore) UpdateBatch(serials []Serial) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range serials {
		if _, ok := m.rows[s.SerialNo]; !ok {
			return ErrNotFound
		}
	}
	for _, s := range serials {
		m.rows[s.SerialNo] = s
	}
	return nil
}
