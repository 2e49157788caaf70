// file.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore 每个玩家一个JSON文件
type FileStore struct {
	dir string
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建存档目录失败: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(playerID string) (string, error) {
	if playerID == "" || strings.ContainsAny(playerID, `/\`) || strings.Contains(playerID, "..") {
		return "", fmt.Errorf("非法的玩家ID: %q", playerID)
	}
	return filepath.Join(f.dir, playerID+".json"), nil
}

// Load 读取存档
func (f *FileStore) Load(_ context.Context, playerID string) (Snapshot, error) {
	p, err := f.path(playerID)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("读取存档失败: %w", err)
	}
	return Decode(data, "")
}

// Save 先写临时文件再改名，避免写到一半的存档
func (f *FileStore) Save(_ context.Context, playerID string, s Snapshot) error {
	p, err := f.path(playerID)
	if err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("写入存档失败: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("写入存档失败: %w", err)
	}
	return nil
}

// Delete 删除存档
func (f *FileStore) Delete(_ context.Context, playerID string) error {
	p, err := f.path(playerID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除存档失败: %w", err)
	}
	return nil
}
