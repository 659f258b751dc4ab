// Package storage provides the key/value persistence substrate the recorder
// writes its state snapshot through.
package storage

// Storage is the persistence contract: whole-value reads and writes under a
// caller-chosen key. Get reports ok=false when the key has never been set.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is a map-backed Storage for tests and ephemeral runs.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
