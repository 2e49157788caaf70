// element.go

package models

// Element 属性
type Element string

const (
	// ElementFire 炎
	ElementFire Element = "fire"
	// ElementIce 冰
	ElementIce Element = "ice"
	// ElementWind 风
	ElementWind Element = "wind"
	// ElementEarth 土
	ElementEarth Element = "earth"
	// ElementLight 光
	ElementLight Element = "light"
	// ElementDark 暗
	ElementDark Element = "dark"
	// ElementNeutral 无
	ElementNeutral Element = "neutral"
	// ElementWater 水
	ElementWater Element = "water"
)

// Elements 按生成顺序排列的全部属性
var Elements = []Element{
	ElementFire,
	ElementIce,
	ElementWind,
	ElementEarth,
	ElementLight,
	ElementDark,
	ElementNeutral,
	ElementWater,
}

var elementLabels = map[Element]string{
	ElementFire:    "炎",
	ElementIce:     "冰",
	ElementWind:    "风",
	ElementEarth:   "土",
	ElementLight:   "光",
	ElementDark:    "暗",
	ElementNeutral: "无",
	ElementWater:   "水",
}

// Label 属性的显示名
func (e Element) Label() string {
	if l, ok := elementLabels[e]; ok {
		return l
	}
	return elementLabels[ElementNeutral]
}

// IsNeutral 是否无属性
func (e Element) IsNeutral() bool {
	return e == ElementNeutral || e == ""
}

// Rarity 稀有度
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	// RarityMythic 只有融合技能使用
	RarityMythic Rarity = "mythic"
)

// Rarities 普通技能可用的稀有度，按等阶排列
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
}
