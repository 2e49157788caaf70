// explore.go

package session

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
)

// MoveResult 一步移动的结果
type MoveResult struct {
	X        int             `json:"x"`
	Y        int             `json:"y"`
	Terrain  world.Terrain   `json:"terrain"`
	Arrived  *world.Location `json:"arrived,omitempty"`
	Messages []string        `json:"messages,omitempty"`
	// Events 遇敌时为战斗开始的事件
	Events []battle.Event `json:"events,omitempty"`
}

// Move 移动一格，可能触发遇敌
func (s *Session) Move(dx, dy int) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.battle != nil {
		return MoveResult{}, ErrBattleActive
	}
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		return MoveResult{}, ErrInvalidMove
	}

	nx, ny := s.x+dx, s.y+dy
	if !world.InBounds(nx, ny) || !s.deps.World.Passable(nx, ny) {
		return MoveResult{}, ErrBlocked
	}
	s.x, s.y = nx, ny

	res := MoveResult{X: nx, Y: ny, Terrain: s.deps.World.Terrain(nx, ny)}
	if loc, ok := s.deps.World.LocationAt(nx, ny); ok {
		res.Arrived = &loc
		res.Messages = append(res.Messages, fmt.Sprintf("到达了「%s」。", loc.Name))
		if loc.Kind == world.KindTown {
			s.player.RespawnPoint = models.RespawnPoint{X: loc.X, Y: loc.Y, Name: loc.Name}
			if loc.Greeting != "" {
				res.Messages = append(res.Messages, loc.Greeting)
			}
		}
	}

	if world.RollEncounter(s.deps.Rand, res.Terrain, s.deps.Config.EncounterRate) {
		res.Events = s.startBattle(s.selector.ForPlayer(s.player.Level))
	}
	return res, nil
}

// EnterDungeon 在地下城入口探索，按推荐等级遇敌
func (s *Session) EnterDungeon() ([]battle.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.battle != nil {
		return nil, ErrBattleActive
	}
	loc, ok := s.deps.World.LocationAt(s.x, s.y)
	if !ok || loc.Kind != world.KindDungeon {
		return nil, ErrNotAtDungeon
	}
	events := []battle.Event{logEvent(fmt.Sprintf("踏入了%s (推荐等级 %d)。", loc.Name, loc.RecLevel))}
	return append(events, s.startBattle(s.selector.ForDungeon(loc.RecLevel))...), nil
}

// ChallengeBoss 在最后的地下城挑战最终首领
func (s *Session) ChallengeBoss() ([]battle.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.battle != nil {
		return nil, ErrBattleActive
	}
	loc, ok := s.deps.World.LocationAt(s.x, s.y)
	if !ok || loc.Kind != world.KindDungeon {
		return nil, ErrNotAtDungeon
	}
	if !loc.Final {
		return nil, ErrNotFinalDungeon
	}
	return s.startBattle(s.deps.Catalog.FinalBoss()), nil
}

// Battle 当前战斗，没有时为nil
func (s *Session) Battle() *battle.Battle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle
}

func (s *Session) startBattle(template models.Monster) []battle.Event {
	opts := battle.OptionsFromConfig(s.deps.Config, s.deps.Catalog.Skills, s.deps.Rand)
	s.battle = battle.New(s.player, template, opts)
	s.log.WithFields(logrus.Fields{"monster": template.Name, "level": template.Level}).Debug("遭遇战斗")
	return s.battle.Start()
}

// Act 向当前战斗提交行动
// 战斗结束后结算任务、首领和复活，并释放战斗
func (s *Session) Act(a battle.Action) ([]battle.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.battle
	if b == nil {
		return nil, ErrNoBattle
	}
	levelBefore := s.player.Level

	events, err := b.Advance(a)
	if err != nil {
		return nil, err
	}
	if b.Over() {
		events = append(events, s.afterBattle(b, levelBefore)...)
		s.battle = nil
	}
	return events, nil
}

func (s *Session) afterBattle(b *battle.Battle, levelBefore int) []battle.Event {
	res := b.Result()
	if res == nil {
		return nil
	}

	var events []battle.Event
	switch res.Outcome {
	case battle.OutcomeWin:
		monster := b.Monster()
		if monster.IsBoss && !s.lastBossDefeated {
			s.lastBossDefeated = true
			events = append(events, logEvent("最终首领被击败了！世界迎来了和平，但冒险仍在继续……"))
		}
		events = append(events, s.unlockLevelSkills(levelBefore)...)
		events = append(events, s.progressQuests(monster.Level)...)
	case battle.OutcomeLose:
		s.respawn()
		events = append(events, logEvent(fmt.Sprintf("眼前一片漆黑……在%s醒来了。", s.player.RespawnPoint.Name)))
	}
	return events
}

// respawn 回到复活地点并回满体力
func (s *Session) respawn() {
	s.x, s.y = s.player.RespawnPoint.X, s.player.RespawnPoint.Y
	s.player.Restore()
}

// unlockLevelSkills 习得跨过的每个等级对应的技能
func (s *Session) unlockLevelSkills(levelBefore int) []battle.Event {
	var events []battle.Event
	for lv := levelBefore + 1; lv <= s.player.Level; lv++ {
		skill, ok := s.deps.Catalog.SkillForLevel(lv)
		if !ok {
			continue
		}
		if s.player.LearnSkill(skill) {
			events = append(events, logEvent(fmt.Sprintf("Lv.%d：习得了 %s！", lv, skill.Name)))
		}
	}
	return events
}

func logEvent(msg string) battle.Event {
	return battle.Event{Kind: battle.EventLog, Message: msg}
}
