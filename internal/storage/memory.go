package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Memory is a process-local Backend. Records are lost on exit.
type Memory struct {
	mu      sync.RWMutex
	devices map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{devices: make(map[string]map[string][]byte)}
}

func (m *Memory) Scope(device string) Storage {
	return &memoryScope{m: m, device: device}
}

func (m *Memory) Close() error { return nil }

type memoryScope struct {
	m      *Memory
	device string
}

func (s *memoryScope) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	value, ok := s.m.devices[s.device][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryScope) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	records, ok := s.m.devices[s.device]
	if !ok {
		records = make(map[string][]byte)
		s.m.devices[s.device] = records
	}
	records[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryScope) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	keys := lo.Filter(lo.Keys(s.m.devices[s.device]), func(key string, _ int) bool {
		return strings.HasPrefix(key, prefix)
	})
	sort.Strings(keys)
	return keys, nil
}
