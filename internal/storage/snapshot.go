// snapshot.go

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// SnapshotVersion 当前存档格式版本
const SnapshotVersion = 1

// 存储错误
var (
	ErrNotFound      = errors.New("存档不存在")
	ErrMalformedSave = errors.New("存档数据损坏")
)

// Position 玩家在世界中的坐标
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// QuestProgress 单个任务的进度
type QuestProgress struct {
	ID           int  `json:"id"`
	CurrentCount int  `json:"current_count"`
	IsAccepted   bool `json:"is_accepted"`
	IsCompleted  bool `json:"is_completed"`
}

// Snapshot 玩家存档
type Snapshot struct {
	Version          int             `json:"version"`
	Player           models.Player   `json:"player"`
	Position         Position        `json:"position"`
	Quests           []QuestProgress `json:"quests,omitempty"`
	LastBossDefeated bool            `json:"last_boss_defeated"`
	SavedAt          time.Time       `json:"saved_at"`
}

// DefaultSnapshot 新玩家的初始存档
func DefaultSnapshot(name string) Snapshot {
	p := models.NewPlayer(name)
	return Snapshot{
		Version:  SnapshotVersion,
		Player:   *p,
		Position: Position{X: p.RespawnPoint.X, Y: p.RespawnPoint.Y},
	}
}

// Encode 把存档编码为JSON
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("编码存档失败: %w", err)
	}
	return data, nil
}

// Decode 在默认存档之上解码，缺失字段保留默认值，未知字段忽略
// 解析失败时返回默认存档和 ErrMalformedSave
func Decode(data []byte, name string) (Snapshot, error) {
	s := DefaultSnapshot(name)
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSnapshot(name), fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	s.Player.Normalize()
	if s.Player.Name == "" {
		s.Player.Name = name
	}
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	return s, nil
}

// ApplyQuestProgress 把存档中的任务进度写回任务列表
func ApplyQuestProgress(quests []models.Quest, progress []QuestProgress) {
	byID := make(map[int]int, len(quests))
	for i, q := range quests {
		byID[q.ID] = i
	}
	for _, p := range progress {
		i, ok := byID[p.ID]
		if !ok {
			continue
		}
		q := &quests[i]
		q.IsAccepted = p.IsAccepted
		q.IsCompleted = p.IsCompleted
		q.CurrentCount = min(max(p.CurrentCount, 0), q.RequiredCount)
	}
}

// CollectQuestProgress 只记录有进度的任务
func CollectQuestProgress(quests []models.Quest) []QuestProgress {
	var out []QuestProgress
	for _, q := range quests {
		if !q.IsAccepted && !q.IsCompleted && q.CurrentCount == 0 {
			continue
		}
		out = append(out, QuestProgress{
			ID:           q.ID,
			CurrentCount: q.CurrentCount,
			IsAccepted:   q.IsAccepted,
			IsCompleted:  q.IsCompleted,
		})
	}
	return out
}
