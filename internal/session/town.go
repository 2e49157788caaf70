// town.go

package session

import (
	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/fusion"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
)

// 锻造规则
const (
	ForgeAttackBonus   = 2
	ForgeCostPerAttack = 50
)

func (s *Session) requireTown() error {
	if s.battle != nil {
		return ErrBattleActive
	}
	loc, ok := s.deps.World.LocationAt(s.x, s.y)
	if !ok || loc.Kind != world.KindTown {
		return ErrNotInTown
	}
	return nil
}

// charge 按人德折扣扣费，不足时不做任何修改
func (s *Session) charge(base int) (int, error) {
	cost := s.player.AdjustedCost(base)
	if !s.player.SpendGold(cost) {
		return cost, ErrInsufficientGold
	}
	return cost, nil
}

// InnCost 当前住宿费用
func (s *Session) InnCost() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.AdjustedCost(s.deps.Config.InnCost)
}

// Inn 住宿回满体力
func (s *Session) Inn() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireTown(); err != nil {
		return 0, err
	}
	cost, err := s.charge(s.deps.Config.InnCost)
	if err != nil {
		return cost, err
	}
	s.player.Restore()
	return cost, nil
}

// Buy 购买商品放入背包
func (s *Session) Buy(itemID string) (models.Item, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireTown(); err != nil {
		return models.Item{}, 0, err
	}
	item, ok := s.deps.Catalog.ShopItem(itemID)
	if !ok {
		return models.Item{}, 0, ErrUnknownItem
	}
	cost, err := s.charge(item.Price)
	if err != nil {
		return models.Item{}, cost, err
	}
	s.player.Inventory = append(s.player.Inventory, item)
	s.log.WithFields(logrus.Fields{"item": item.ID, "cost": cost}).Debug("购买道具")
	return item, cost, nil
}

// ForgeCost 强化当前武器的费用
func (s *Session) ForgeCost() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forgeCost()
}

func (s *Session) forgeCost() int {
	atk := 0
	if w := s.player.Equipment.Weapon; w != nil {
		atk = w.Bonus.Attack
	}
	return s.player.AdjustedCost(s.deps.Config.ForgeBaseCost + ForgeCostPerAttack*atk)
}

// Forge 强化武器攻击力
func (s *Session) Forge() (models.Item, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireTown(); err != nil {
		return models.Item{}, 0, err
	}
	w := s.player.Equipment.Weapon
	if w == nil {
		return models.Item{}, 0, ErrNoWeapon
	}
	cost := s.forgeCost()
	if !s.player.SpendGold(cost) {
		return models.Item{}, cost, ErrInsufficientGold
	}

	forged := *w
	forged.Bonus.Attack += ForgeAttackBonus
	s.player.Equipment.Weapon = &forged
	return forged, cost, nil
}

// FusionCost 融合费用
func (s *Session) FusionCost() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.AdjustedCost(s.deps.Config.FusionCost)
}

// Fuse 融合两个技能，消耗原技能
func (s *Session) Fuse(idA, idB string) (models.Skill, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.battle != nil {
		return models.Skill{}, 0, ErrBattleActive
	}
	if idA == idB {
		return models.Skill{}, 0, ErrFusionPair
	}
	a := s.player.FindSkill(idA)
	b := s.player.FindSkill(idB)
	if a == nil || b == nil {
		return models.Skill{}, 0, ErrFusionPair
	}
	parentA, parentB := *a, *b

	cost, err := s.charge(s.deps.Config.FusionCost)
	if err != nil {
		return models.Skill{}, cost, err
	}

	fused := fusion.Fuse(parentA, parentB)
	s.player.RemoveSkill(parentA.ID)
	s.player.RemoveSkill(parentB.ID)
	s.player.AddFusedSkill(fused)

	s.log.WithFields(logrus.Fields{"a": parentA.ID, "b": parentB.ID, "fused": fused.Name}).Info("技能融合")
	return fused, cost, nil
}
