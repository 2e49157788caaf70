// catalog.go

package content

import (
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// Catalog 启动时生成一次的只读图鉴
type Catalog struct {
	Monsters []models.Monster
	Skills   []models.Skill
	Quests   []models.Quest
	Shop     []models.Item

	skillIndex map[string]int
	shopIndex  map[string]int
}

// NewCatalog 生成全部图鉴
func NewCatalog() *Catalog {
	c := &Catalog{
		Monsters: GenerateMonsters(),
		Skills:   GenerateSkills(),
		Quests:   GenerateQuests(),
		Shop:     ShopStock(),
	}

	c.skillIndex = make(map[string]int, len(c.Skills))
	for i, s := range c.Skills {
		c.skillIndex[s.ID] = i
	}
	c.shopIndex = make(map[string]int, len(c.Shop))
	for i, it := range c.Shop {
		c.shopIndex[it.ID] = i
	}
	return c
}

// Monster 按ID取怪物模板的副本
func (c *Catalog) Monster(id int) (models.Monster, bool) {
	if id < 1 || id > len(c.Monsters) {
		return models.Monster{}, false
	}
	return c.Monsters[id-1], true
}

// FinalBoss 最终首领模板
func (c *Catalog) FinalBoss() models.Monster {
	for i := len(c.Monsters) - 1; i >= 0; i-- {
		if c.Monsters[i].IsBoss {
			return c.Monsters[i]
		}
	}
	return c.Monsters[len(c.Monsters)-1]
}

// MaxMonsterLevel 图鉴中的最高等级
func (c *Catalog) MaxMonsterLevel() int {
	highest := 0
	for _, m := range c.Monsters {
		if m.Level > highest {
			highest = m.Level
		}
	}
	return highest
}

// Skill 按ID取技能模板的副本
func (c *Catalog) Skill(id string) (models.Skill, bool) {
	i, ok := c.skillIndex[id]
	if !ok {
		return models.Skill{}, false
	}
	return c.Skills[i], true
}

// ShopItem 按ID取商品
func (c *Catalog) ShopItem(id string) (models.Item, bool) {
	i, ok := c.shopIndex[id]
	if !ok {
		return models.Item{}, false
	}
	return c.Shop[i], true
}

// QuestsCopy 每个会话持有自己的任务进度
func (c *Catalog) QuestsCopy() []models.Quest {
	quests := make([]models.Quest, len(c.Quests))
	copy(quests, c.Quests)
	return quests
}

// SkillForLevel 升到该等级时解锁的技能
// 第 3L 号技能的习得条件为等级
func (c *Catalog) SkillForLevel(level int) (models.Skill, bool) {
	s, ok := c.Skill(fmt.Sprintf("skill_%d", level*3))
	if !ok || s.Condition != models.UnlockByLevel {
		return models.Skill{}, false
	}
	return s, true
}

// SkillForQuest 完成任务时解锁的技能
// 第 3Q+1 号技能的习得条件为任务
func (c *Catalog) SkillForQuest(questID int) (models.Skill, bool) {
	s, ok := c.Skill(fmt.Sprintf("skill_%d", questID*3+1))
	if !ok || s.Condition != models.UnlockByQuest {
		return models.Skill{}, false
	}
	return s, true
}
