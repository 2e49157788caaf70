// memory.go

package storage

import (
	"context"
	"sync"
)

// MemoryStore 内存存储，保存编码后的数据，读出的存档互不共享
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string][]byte)}
}

// Load 读取存档
func (m *MemoryStore) Load(_ context.Context, playerID string) (Snapshot, error) {
	m.mu.RLock()
	data, ok := m.saves[playerID]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return Decode(data, "")
}

// Save 写入存档
func (m *MemoryStore) Save(_ context.Context, playerID string, s Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.saves[playerID] = data
	m.mu.Unlock()
	return nil
}

// Delete 删除存档
func (m *MemoryStore) Delete(_ context.Context, playerID string) error {
	m.mu.Lock()
	delete(m.saves, playerID)
	m.mu.Unlock()
	return nil
}

// PutRaw 直接写入原始数据
func (m *MemoryStore) PutRaw(playerID string, data []byte) {
	m.mu.Lock()
	m.saves[playerID] = data
	m.mu.Unlock()
}
