// fusion.go

package fusion

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// 融合规则
const (
	PowerMultiplier = 1.6
	MinCooldown     = 3
	MPSurcharge     = 10
	NamePrefix      = "极·"
	NameSuffix      = " EX"
)

// Fuse 把两个技能合成一个新的主动技能
// 除ID外结果只取决于输入
func Fuse(a, b models.Skill) models.Skill {
	healing := a.Healing || b.Healing

	element := a.Element
	if element.IsNeutral() {
		element = b.Element
	}
	if element == "" {
		element = models.ElementNeutral
	}

	kind := "究极绝技"
	if healing {
		kind = "至高治愈"
	}

	return models.Skill{
		ID:          "fused_" + uuid.New().String(),
		Name:        FusedName(a, b),
		Description: fmt.Sprintf("%s与%s经由禁断仪式融合而成的%s。", a.Name, b.Name, kind),
		School:      "究极",
		Category:    models.SkillActive,
		Element:     element,
		Rarity:      models.RarityMythic,
		Power:       int(math.Floor(float64(a.Power+b.Power) * PowerMultiplier)),
		Healing:     healing,
		MPCost:      maxInt(a.MPCost, b.MPCost) + MPSurcharge,
		Cooldown:    maxInt(a.Cooldown, b.Cooldown, MinCooldown),
		Trigger:     models.TriggerNone,
		Fused:       true,
	}
}

// FusedName A名字的前两个字加B名字的后两个字
func FusedName(a, b models.Skill) string {
	ra := []rune(a.Name)
	rb := []rune(b.Name)
	head := ra
	if len(head) > 2 {
		head = head[:2]
	}
	tail := rb
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}
	return NamePrefix + string(head) + string(tail) + NameSuffix
}

func maxInt(first int, rest ...int) int {
	m := first
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}
