// leaderboard_redis.go

package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// 排行榜Redis键名
const (
	LeaderboardLevelKey = "leaderboard:level"

	// 玩家详细信息键前缀
	PlayerInfoPrefix = "player:info:"

	// 玩家信息缓存时间
	LeaderboardCacheTTL = 24 * time.Hour
)

// RedisLeaderboard Redis排行榜管理器
type RedisLeaderboard struct {
	client *redis.Client
	prefix string
}

// NewRedisLeaderboard 创建Redis排行榜管理器
func NewRedisLeaderboard(client *redis.Client, prefix string) *RedisLeaderboard {
	return &RedisLeaderboard{client: client, prefix: prefix}
}

func (rl *RedisLeaderboard) boardKey() string {
	return rl.prefix + LeaderboardLevelKey
}

func (rl *RedisLeaderboard) infoKey(playerID string) string {
	return rl.prefix + PlayerInfoPrefix + playerID
}

// Update 更新玩家分数和信息
func (rl *RedisLeaderboard) Update(ctx context.Context, s Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	pipe := rl.client.TxPipeline()
	pipe.ZAdd(ctx, rl.boardKey(), &redis.Z{
		Score:  float64(s.Level),
		Member: s.PlayerID,
	})
	pipe.Set(ctx, rl.infoKey(s.PlayerID), data, LeaderboardCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Top 获取排行榜
func (rl *RedisLeaderboard) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	// 按分数降序
	members, err := rl.client.ZRevRangeWithScores(ctx, rl.boardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	var entries []LeaderboardEntry
	for i, member := range members {
		playerID, ok := member.Member.(string)
		if !ok {
			continue
		}

		entry := LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: playerID,
			Level:    int(member.Score),
			Score:    member.Score,
		}
		// 信息过期时只返回分数
		if info, err := rl.getPlayerInfo(ctx, playerID); err == nil {
			entry.Name = info.Name
			entry.Gold = info.Gold
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Rank 获取玩家排名
func (rl *RedisLeaderboard) Rank(ctx context.Context, playerID string) (int, error) {
	rank, err := rl.client.ZRevRank(ctx, rl.boardKey(), playerID).Result()
	if err != nil {
		if err == redis.Nil {
			return -1, nil // 玩家不在排行榜中
		}
		return -1, err
	}

	return int(rank) + 1, nil // Redis排名从0开始，转换为从1开始
}

// getPlayerInfo 从Redis获取玩家信息
func (rl *RedisLeaderboard) getPlayerInfo(ctx context.Context, playerID string) (*Summary, error) {
	data, err := rl.client.Get(ctx, rl.infoKey(playerID)).Bytes()
	if err != nil {
		return nil, err
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
