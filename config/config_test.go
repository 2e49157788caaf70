package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if cfg.Game.EncounterRate != def.Game.EncounterRate {
		t.Errorf("Expected encounter rate %v, got %v", def.Game.EncounterRate, cfg.Game.EncounterRate)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Expected memory driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h token ttl, got %v", cfg.Auth.TokenTTL)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("game:\n  inn_cost: 250\nstorage:\n  driver: file\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.InnCost != 250 {
		t.Errorf("Expected inn cost 250, got %d", cfg.Game.InnCost)
	}
	if cfg.Storage.Driver != "file" {
		t.Errorf("Expected file driver, got %s", cfg.Storage.Driver)
	}
	// 未写入文件的键保持默认值
	if cfg.Game.FusionCost != 300 {
		t.Errorf("Expected default fusion cost 300, got %d", cfg.Game.FusionCost)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestDSNAndRedisAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Redis.GetRedisAddr(); got != "localhost:6379" {
		t.Errorf("Unexpected redis addr %s", got)
	}
	if dsn := cfg.Database.GetDSN(); dsn == "" {
		t.Error("Expected non-empty DSN")
	}
}
