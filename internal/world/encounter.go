// encounter.go

package world

import (
	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// Selector 遇敌时选择对手
type Selector struct {
	monsters []models.Monster
	below    int
	above    int
	radius   int
	maxLevel int
	rand     battle.Rand
	log      *logrus.Entry
}

// NewSelector 创建遇敌选择器
func NewSelector(monsters []models.Monster, cfg config.GameConfig, r battle.Rand) *Selector {
	maxLevel := 1
	for _, m := range monsters {
		if m.Level > maxLevel {
			maxLevel = m.Level
		}
	}
	return &Selector{
		monsters: monsters,
		below:    cfg.BandBelow,
		above:    cfg.BandAbove,
		radius:   cfg.DungeonBandRadius,
		maxLevel: maxLevel,
		rand:     r,
		log:      logger.Component("encounter"),
	}
}

// Band 野外遇敌的等级范围
func (s *Selector) Band(playerLevel int) (int, int) {
	return max(1, playerLevel-s.below), min(s.maxLevel, playerLevel+s.above)
}

// DungeonBand 地下城的等级范围，推荐等级超过图鉴上限时按上限计算
func (s *Selector) DungeonBand(recLevel int) (int, int) {
	center := min(recLevel, s.maxLevel)
	return max(1, center-s.radius), min(s.maxLevel, center+s.radius)
}

// ForPlayer 按玩家等级抽取对手
func (s *Selector) ForPlayer(playerLevel int) models.Monster {
	lo, hi := s.Band(playerLevel)
	return s.pick(lo, hi)
}

// ForDungeon 按地下城推荐等级抽取对手
func (s *Selector) ForDungeon(recLevel int) models.Monster {
	lo, hi := s.DungeonBand(recLevel)
	return s.pick(lo, hi)
}

// Candidates 等级范围内的非首领怪物
func (s *Selector) Candidates(lo, hi int) []models.Monster {
	var out []models.Monster
	for _, m := range s.monsters {
		if m.IsBoss || m.Level < lo || m.Level > hi {
			continue
		}
		out = append(out, m)
	}
	return out
}

// pick 返回的是值拷贝，不会影响图鉴
func (s *Selector) pick(lo, hi int) models.Monster {
	candidates := s.Candidates(lo, hi)
	if len(candidates) == 0 {
		s.log.WithFields(logrus.Fields{"min": lo, "max": hi}).Warn("等级范围内没有怪物，使用默认怪物")
		return *s.monsters[0].Clone()
	}
	return candidates[s.rand.Intn(len(candidates))]
}

// RollEncounter 走一步后是否遇敌
func RollEncounter(r battle.Rand, terrain Terrain, rate float64) bool {
	if terrain.Safe() {
		return false
	}
	return r.Float64() < rate
}
