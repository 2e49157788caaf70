// postgres.go

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// PostgresStore 把存档转成 structpb.Struct 后以protobuf二进制写入 player_saves
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore 创建PostgreSQL存储
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// MarshalBinary 存档 -> protobuf 二进制
func MarshalBinary(s Snapshot) ([]byte, error) {
	data, err := Encode(s)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("转换存档失败: %w", err)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("转换存档失败: %w", err)
	}
	return proto.Marshal(st)
}

// UnmarshalBinary protobuf 二进制 -> 存档
func UnmarshalBinary(data []byte) (Snapshot, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return DefaultSnapshot(""), fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return DefaultSnapshot(""), fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	return Decode(raw, "")
}

// Load 读取存档
func (p *PostgresStore) Load(ctx context.Context, playerID string) (Snapshot, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT snapshot FROM player_saves WHERE player_id = $1`, playerID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("查询存档失败: %w", err)
	}
	return UnmarshalBinary(data)
}

// Save 写入存档，同时更新便于查询的等级和金币列
func (p *PostgresStore) Save(ctx context.Context, playerID string, s Snapshot) error {
	data, err := MarshalBinary(s)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO player_saves (player_id, name, level, gold, snapshot, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		ON CONFLICT (player_id) DO UPDATE
		SET name = EXCLUDED.name, level = EXCLUDED.level, gold = EXCLUDED.gold,
		    snapshot = EXCLUDED.snapshot, updated_at = CURRENT_TIMESTAMP`,
		playerID, s.Player.Name, s.Player.Level, s.Player.Gold, data)
	if err != nil {
		return fmt.Errorf("写入存档失败: %w", err)
	}
	return nil
}

// Delete 删除存档
func (p *PostgresStore) Delete(ctx context.Context, playerID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM player_saves WHERE player_id = $1`, playerID)
	return err
}

// TopByLevel 按等级查询存档概要
func (p *PostgresStore) TopByLevel(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT player_id, name, level, gold FROM player_saves ORDER BY level DESC, gold DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.PlayerID, &s.Name, &s.Level, &s.Gold); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
