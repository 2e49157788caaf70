// quests.go

package session

import (
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// AcceptQuest 接受任务
func (s *Session) AcceptQuest(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.findQuest(id)
	if q == nil {
		return fmt.Errorf("%w: %d", ErrUnknownQuest, id)
	}
	if q.IsAccepted || q.IsCompleted {
		return ErrQuestState
	}
	q.IsAccepted = true
	s.log.WithField("quest", id).Debug("接受任务")
	return nil
}

func (s *Session) findQuest(id int) *models.Quest {
	for i := range s.quests {
		if s.quests[i].ID == id {
			return &s.quests[i]
		}
	}
	return nil
}

// progressQuests 击败怪物后推进等级相符的任务，完成时发放奖励
func (s *Session) progressQuests(monsterLevel int) []battle.Event {
	var events []battle.Event
	tolerance := s.deps.Config.QuestLevelTolerance

	for i := range s.quests {
		q := &s.quests[i]
		if !q.IsAccepted || q.IsCompleted || !q.Matches(monsterLevel, tolerance) {
			continue
		}
		if !q.Progress() {
			events = append(events, logEvent(fmt.Sprintf("%s：%d/%d", q.Title, q.CurrentCount, q.RequiredCount)))
			continue
		}

		levelBefore := s.player.Level
		s.player.Gold += q.RewardGold
		s.player.GainExp(q.RewardExp)
		events = append(events, logEvent(fmt.Sprintf("任务「%s」完成！获得 %d 金币和 %d 点经验。", q.Title, q.RewardGold, q.RewardExp)))
		events = append(events, s.unlockLevelSkills(levelBefore)...)

		if skill, ok := s.deps.Catalog.SkillForQuest(q.ID); ok && s.player.LearnSkill(skill) {
			events = append(events, logEvent(fmt.Sprintf("作为谢礼，习得了 %s！", skill.Name)))
		}
	}
	return events
}
