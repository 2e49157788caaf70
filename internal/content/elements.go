// elements.go

package content

import "github.com/kikennmodsett-of-git/kikennmodsett/internal/models"

// 属性倍率
const (
	MultiplierStrong  = 1.5
	MultiplierWeak    = 0.5
	MultiplierNeutral = 1.0
)

type elementPair struct {
	attacker models.Element
	defender models.Element
}

// advantageTable 攻击属性对防御属性的倍率，表中没有的组合为1.0
var advantageTable = buildAdvantageTable()

func buildAdvantageTable() map[elementPair]float64 {
	table := make(map[elementPair]float64)

	// 炎 > 冰 > 风 > 土 > 水 > 炎
	cycle := []models.Element{
		models.ElementFire,
		models.ElementIce,
		models.ElementWind,
		models.ElementEarth,
		models.ElementWater,
	}
	for i, atk := range cycle {
		def := cycle[(i+1)%len(cycle)]
		table[elementPair{atk, def}] = MultiplierStrong
		table[elementPair{def, atk}] = MultiplierWeak
	}

	// 光暗互克
	table[elementPair{models.ElementLight, models.ElementDark}] = MultiplierStrong
	table[elementPair{models.ElementDark, models.ElementLight}] = MultiplierStrong

	return table
}

// ElementalMultiplier 查询属性倍率
func ElementalMultiplier(attacker, defender models.Element) float64 {
	if m, ok := advantageTable[elementPair{attacker, defender}]; ok {
		return m
	}
	return MultiplierNeutral
}
