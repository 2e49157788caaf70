// store.go

package storage

import (
	"context"
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/db"
)

// SaveStore 存档存储
type SaveStore interface {
	// Load 读取存档，不存在时返回 ErrNotFound
	Load(ctx context.Context, playerID string) (Snapshot, error)
	Save(ctx context.Context, playerID string, s Snapshot) error
	Delete(ctx context.Context, playerID string) error
}

// Summary 存档概要
type Summary struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Gold     int    `json:"gold"`
}

// Summarize 生成存档概要
func Summarize(playerID string, s Snapshot) Summary {
	return Summary{
		PlayerID: playerID,
		Name:     s.Player.Name,
		Level:    s.Player.Level,
		Gold:     s.Player.Gold,
	}
}

// NewStore 根据配置选择存储实现
// redis 和 postgres 需要先初始化 pkg/db 中的连接
func NewStore(cfg config.StorageConfig) (SaveStore, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "redis":
		if db.RedisClient == nil {
			return nil, fmt.Errorf("Redis未初始化")
		}
		return NewRedisStore(db.RedisClient, cfg.KeyPrefix), nil
	case "postgres":
		if db.DB == nil {
			return nil, fmt.Errorf("数据库未初始化")
		}
		return NewPostgresStore(db.DB), nil
	}
	return nil, fmt.Errorf("未知的存储类型: %s", cfg.Driver)
}

// NewLeaderboard 根据配置选择排行榜实现
func NewLeaderboard(cfg config.StorageConfig) Leaderboard {
	if cfg.Driver == "redis" && db.RedisClient != nil {
		return NewRedisLeaderboard(db.RedisClient, cfg.KeyPrefix)
	}
	return NewMemoryLeaderboard()
}
