// monsters.go

package content

import (
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

// 怪物图鉴规模
const (
	MonsterCount = 450
	// DungeonLevelThreshold 高于此等级的怪物出现在地下城
	DungeonLevelThreshold = 5
)

var (
	monsterBaseNames = []string{"史莱姆", "哥布林", "兽人", "骷髅", "巨龙", "石像魔", "奇美拉", "吸血鬼"}
	monsterPrefixes  = []string{"迷途的", "愤怒的", "远古的", "暗之", "光之", "邪恶的", "守护的", "传说的"}
	monsterShapes    = []string{"slime", "beast", "ghost", "dragon", "knight"}
)

// GenerateMonsters 生成怪物图鉴
// 所有字段只由序号决定，1号最弱，最后一只是最终首领
func GenerateMonsters() []models.Monster {
	monsters := make([]models.Monster, 0, MonsterCount)
	for i := 1; i <= MonsterCount; i++ {
		monsters = append(monsters, newMonster(i))
	}
	return monsters
}

func newMonster(i int) models.Monster {
	base := monsterBaseNames[(i-1)%len(monsterBaseNames)]
	prefix := monsterPrefixes[((i-1)/len(monsterBaseNames))%len(monsterPrefixes)]

	return models.Monster{
		ID:               i,
		Name:             fmt.Sprintf("%s%s #%d", prefix, base, i),
		Level:            i,
		HP:               i * 20,
		MaxHP:            i * 20,
		Atk:              i * 5,
		Def:              i * 3,
		Spd:              i * 4,
		Exp:              i * 15,
		Gold:             i * 10,
		Element:          models.Elements[(i-1)%len(models.Elements)],
		Shape:            monsterShapes[(i/10)%len(monsterShapes)],
		IsBoss:           i == MonsterCount,
		IsDungeonMonster: i > DungeonLevelThreshold,
	}
}
