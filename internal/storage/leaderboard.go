// leaderboard.go

package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	Gold     int     `json:"gold"`
	Score    float64 `json:"score"`
}

// Leaderboard 按等级排名
type Leaderboard interface {
	Update(ctx context.Context, s Summary) error
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	// Rank 从1开始，不在榜上返回-1
	Rank(ctx context.Context, playerID string) (int, error)
}

// MemoryLeaderboard 内存排行榜
type MemoryLeaderboard struct {
	mu      sync.RWMutex
	entries map[string]Summary
}

// NewMemoryLeaderboard 创建内存排行榜
func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{entries: make(map[string]Summary)}
}

// Update 更新玩家信息
func (m *MemoryLeaderboard) Update(_ context.Context, s Summary) error {
	m.mu.Lock()
	m.entries[s.PlayerID] = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryLeaderboard) sorted() []Summary {
	m.mu.RLock()
	list := make([]Summary, 0, len(m.entries))
	for _, s := range m.entries {
		list = append(list, s)
	}
	m.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Level != list[j].Level {
			return list[i].Level > list[j].Level
		}
		return list[i].PlayerID < list[j].PlayerID
	})
	return list
}

// Top 前 limit 名
func (m *MemoryLeaderboard) Top(_ context.Context, limit int) ([]LeaderboardEntry, error) {
	list := m.sorted()
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]LeaderboardEntry, 0, len(list))
	for i, s := range list {
		out = append(out, LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: s.PlayerID,
			Name:     s.Name,
			Level:    s.Level,
			Gold:     s.Gold,
			Score:    float64(s.Level),
		})
	}
	return out, nil
}

// Rank 玩家名次
func (m *MemoryLeaderboard) Rank(_ context.Context, playerID string) (int, error) {
	for i, s := range m.sorted() {
		if s.PlayerID == playerID {
			return i + 1, nil
		}
	}
	return -1, nil
}

// Ranker 可以按等级直接查询存档的存储
type Ranker interface {
	TopByLevel(ctx context.Context, limit int) ([]Summary, error)
}

// Warm 用已有存档填充排行榜，存储不支持按等级查询时跳过
func Warm(ctx context.Context, store SaveStore, board Leaderboard, limit int) (int, error) {
	r, ok := store.(Ranker)
	if !ok {
		return 0, nil
	}
	summaries, err := r.TopByLevel(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("查询存档排名失败: %w", err)
	}
	for _, s := range summaries {
		if err := board.Update(ctx, s); err != nil {
			return 0, err
		}
	}
	return len(summaries), nil
}
