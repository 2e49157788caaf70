// skills.go

package content

import (
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// SkillCount 技能图鉴规模
const SkillCount = 550

var skillSchools = []string{"魔法", "剑技", "辅助", "圣术", "暗黑技"}

// healingSchools 这些流派的主动技能是回复技能
var healingSchools = map[int]bool{2: true, 3: true}

var rarityLabels = map[models.Rarity]string{
	models.RarityCommon:    "普通",
	models.RarityUncommon:  "优秀",
	models.RarityRare:      "稀有",
	models.RarityEpic:      "史诗",
	models.RarityLegendary: "传说",
	models.RarityMythic:    "神话",
}

// RarityLabel 稀有度显示名
func RarityLabel(r models.Rarity) string {
	return rarityLabels[r]
}

// GenerateSkills 生成技能图鉴
func GenerateSkills() []models.Skill {
	skills := make([]models.Skill, 0, SkillCount)
	for i := 1; i <= SkillCount; i++ {
		skills = append(skills, newSkill(i))
	}
	return skills
}

func newSkill(i int) models.Skill {
	element := models.Elements[i%len(models.Elements)]
	schoolIdx := (i / 10) % len(skillSchools)
	school := skillSchools[schoolIdx]
	rarity := models.Rarities[(i/100)%len(models.Rarities)]

	s := models.Skill{
		ID:        fmt.Sprintf("skill_%d", i),
		Name:      fmt.Sprintf("%s之%s Lv.%d", element.Label(), school, i%10+1),
		School:    school,
		Category:  models.SkillActive,
		Element:   element,
		Rarity:    rarity,
		Power:     10 + i/5,
		MPCost:    5 + i/20,
		Cooldown:  1 + i/100,
		Condition: unlockCondition(i),
	}

	if i%7 == 0 {
		s.Category = models.SkillPassive
		s.MPCost = 0
		s.Cooldown = 0
		s.Name = fmt.Sprintf("%s之%s·被动 Lv.%d", element.Label(), school, i%10+1)
		if i%2 == 0 {
			s.Trigger = models.TriggerOnTurnEnd
		} else {
			s.Trigger = models.TriggerOnDamageTaken
		}
	} else {
		s.Healing = healingSchools[schoolIdx]
	}

	s.Description = fmt.Sprintf("%s属性的%s。威力与特性取决于熟练度(%s)。",
		element.Label(), school, RarityLabel(rarity))
	return s
}

func unlockCondition(i int) models.UnlockCondition {
	switch i % 3 {
	case 0:
		return models.UnlockByLevel
	case 1:
		return models.UnlockByQuest
	default:
		return models.UnlockByDrop
	}
}
