// session.go

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// Deps 会话共享的只读数据
type Deps struct {
	Catalog *content.Catalog
	World   *world.World
	Config  config.GameConfig
	Rand    battle.Rand
}

// NewDeps 按配置生成图鉴和世界
func NewDeps(cfg config.GameConfig) Deps {
	return Deps{
		Catalog: content.NewCatalog(),
		World:   world.New(cfg.Seed),
		Config:  cfg,
		Rand:    battle.NewRand(cfg.Seed),
	}
}

// WithRand 换用独立的随机源，图鉴和世界仍然共享
func (d Deps) WithRand(r battle.Rand) Deps {
	d.Rand = r
	return d
}

// Session 一名玩家的游戏会话
// 同一时间最多一场战斗，玩家只被当前战斗修改
type Session struct {
	ID string

	mu               sync.Mutex
	player           *models.Player
	quests           []models.Quest
	x, y             int
	lastBossDefeated bool
	battle           *battle.Battle

	deps     Deps
	selector *world.Selector
	log      *logrus.Entry
}

// New 从存档创建会话
func New(id string, snap storage.Snapshot, deps Deps) *Session {
	player := snap.Player.Clone()
	player.Normalize()

	quests := deps.Catalog.QuestsCopy()
	storage.ApplyQuestProgress(quests, snap.Quests)

	s := &Session{
		ID:               id,
		player:           player,
		quests:           quests,
		x:                snap.Position.X,
		y:                snap.Position.Y,
		lastBossDefeated: snap.LastBossDefeated,
		deps:             deps,
		selector:         world.NewSelector(deps.Catalog.Monsters, deps.Config, deps.Rand),
		log:              logger.Component("session").WithFields(logrus.Fields{"session": id, "player": player.Name}),
	}
	if !deps.World.Passable(s.x, s.y) || player.IsDead() {
		s.respawn()
	}
	return s
}

// Load 从存储读取存档并创建会话
// 存档不存在或损坏时使用新玩家
func Load(ctx context.Context, store storage.SaveStore, id, name string, deps Deps) (*Session, error) {
	snap, err := store.Load(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		snap = storage.DefaultSnapshot(name)
	case errors.Is(err, storage.ErrMalformedSave):
		logger.Component("session").WithField("session", id).WithError(err).Warn("存档损坏，使用初始状态")
		snap = storage.DefaultSnapshot(name)
	default:
		return nil, fmt.Errorf("读取存档失败: %w", err)
	}
	return New(id, snap, deps), nil
}

// Snapshot 生成存档
func (s *Session) Snapshot() storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() storage.Snapshot {
	return storage.Snapshot{
		Version:          storage.SnapshotVersion,
		Player:           *s.player.Clone(),
		Position:         storage.Position{X: s.x, Y: s.y},
		Quests:           storage.CollectQuestProgress(s.quests),
		LastBossDefeated: s.lastBossDefeated,
		SavedAt:          time.Now().UTC(),
	}
}

// Save 写入存储并更新排行榜
func (s *Session) Save(ctx context.Context, store storage.SaveStore, board storage.Leaderboard) error {
	snap := s.Snapshot()
	if err := store.Save(ctx, s.ID, snap); err != nil {
		return err
	}
	if board != nil {
		if err := board.Update(ctx, storage.Summarize(s.ID, snap)); err != nil {
			s.log.WithError(err).Warn("更新排行榜失败")
		}
	}
	return nil
}

// Status 会话状态的只读副本
type Status struct {
	Player           *models.Player
	X, Y             int
	Terrain          world.Terrain
	Location         *world.Location
	LastBossDefeated bool
	InBattle         bool
}

// Status 当前状态
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Player:           s.player.Clone(),
		X:                s.x,
		Y:                s.y,
		Terrain:          s.deps.World.Terrain(s.x, s.y),
		LastBossDefeated: s.lastBossDefeated,
		InBattle:         s.battle != nil,
	}
	if loc, ok := s.deps.World.LocationAt(s.x, s.y); ok {
		st.Location = &loc
	}
	return st
}

// Quests 任务列表副本
func (s *Session) Quests() []models.Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Quest, len(s.quests))
	copy(out, s.quests)
	return out
}

// World 会话所在的世界
func (s *Session) World() *world.World {
	return s.deps.World
}

// Catalog 图鉴
func (s *Session) Catalog() *content.Catalog {
	return s.deps.Catalog
}

// Allocate 分配属性点
func (s *Session) Allocate(stat string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.player.AllocatePoint(stat) {
		return fmt.Errorf("%w: %s", ErrAllocate, stat)
	}
	return nil
}

// Equip 装备背包中的道具
func (s *Session) Equip(slot models.EquipSlot, inventoryIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.battle != nil {
		return ErrBattleActive
	}
	if !s.player.Equip(slot, inventoryIndex) {
		return ErrEquip
	}
	return nil
}

// Unequip 卸下装备
func (s *Session) Unequip(slot models.EquipSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.battle != nil {
		return ErrBattleActive
	}
	if !s.player.Unequip(slot) {
		return ErrEquip
	}
	return nil
}
