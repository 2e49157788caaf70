// quests.go

package content

import (
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// 任务图鉴规模
const (
	QuestCount         = 300
	QuestRequiredKills = 3
)

var (
	questAreas   = []string{"平原", "古之森", "雾之谷", "奈落之底", "被遗忘的村庄周边", "北方雪原"}
	questReasons = []string{"正在袭击旅人", "正在糟蹋农作物", "需要调查", "正在异常繁殖"}
)

// GenerateQuests 生成任务图鉴
func GenerateQuests() []models.Quest {
	quests := make([]models.Quest, 0, QuestCount)
	for i := 1; i <= QuestCount; i++ {
		area := questAreas[i%len(questAreas)]
		reason := questReasons[i%len(questReasons)]
		quests = append(quests, models.Quest{
			ID:                 i,
			Title:              fmt.Sprintf("【委托】%s的威胁", area),
			Description:        fmt.Sprintf("%s一带，Lv.%d 前后的怪物%s。为了和平，请前往讨伐。", area, i, reason),
			TargetMonsterLevel: i,
			RequiredCount:      QuestRequiredKills,
			RewardGold:         i * 150,
			RewardExp:          i * 200,
		})
	}
	return quests
}
