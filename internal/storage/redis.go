// redis.go

package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore 以字符串键保存JSON存档
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建Redis存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(playerID string) string {
	return r.prefix + playerID
}

// Load 读取存档
func (r *RedisStore) Load(ctx context.Context, playerID string) (Snapshot, error) {
	data, err := r.client.Get(ctx, r.key(playerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("读取Redis存档失败: %w", err)
	}
	return Decode(data, "")
}

// Save 写入存档，不设置过期时间
func (r *RedisStore) Save(ctx context.Context, playerID string, s Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(playerID), data, 0).Err(); err != nil {
		return fmt.Errorf("写入Redis存档失败: %w", err)
	}
	return nil
}

// Delete 删除存档
func (r *RedisStore) Delete(ctx context.Context, playerID string) error {
	return r.client.Del(ctx, r.key(playerID)).Err()
}
