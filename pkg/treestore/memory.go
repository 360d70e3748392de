package treestore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
)

// Memory is an in-process Store for tests and local development.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: map[string][]byte{}}
}

func (m *Memory) collect(path string) []entry {
	prefix := path + "/"
	var out []entry
	for k, v := range m.docs {
		if k == path || strings.HasPrefix(k, prefix) {
			out = append(out, entry{Path: k, Value: v})
		}
	}
	return out
}

func (m *Memory) dropSubtree(path string) {
	prefix := path + "/"
	for k := range m.docs {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(m.docs, k)
		}
	}
}

func (m *Memory) Get(_ context.Context, path string, dest interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	m.mu.RLock()
	raw, found, err := assemble(p, m.collect(p))
	m.mu.RUnlock()
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return decode(raw, dest)
}

func (m *Memory) Exists(_ context.Context, path string) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collect(p)) > 0, nil
}

func (m *Memory) Set(_ context.Context, path string, value interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropSubtree(p)
	m.docs[p] = raw
	return nil
}

func (m *Memory) Update(_ context.Context, path string, fields map[string]interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	if err := checkKeys(fields); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	merged, err := mergeObject(m.docs[p], fields)
	if err != nil {
		return err
	}
	m.docs[p] = merged
	return nil
}

func (m *Memory) Remove(_ context.Context, path string) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.dropSubtree(p)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Increment(_ context.Context, path string, delta int64) (int64, error) {
	p, err := Clean(path)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var current int64
	if raw, ok := m.docs[p]; ok {
		current, err = strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, ErrNotCounter
		}
	}
	current += delta
	m.docs[p] = []byte(strconv.FormatInt(current, 10))
	return current, nil
}

func (m *Memory) SetIfAbsent(_ context.Context, path string, value interface{}) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.collect(p)) > 0 {
		return false, nil
	}
	m.docs[p] = raw
	return true, nil
}

func (m *Memory) Ping(context.Context) error { return nil }
