// rules.go

package battle

import "math"

// 数值规则
const (
	FleeSpeedFactor   = 0.5
	HealAttackDivisor = 8.0
	HealFlatBonus     = 10
	SkillAttackDiv    = 5.0
	PassiveHealRate   = 0.05
)

// AttackDamage 普通攻击伤害，最低为1
func AttackDamage(attack, defense int) int {
	return maxInt(1, attack*2-defense)
}

// MonsterDamage 怪物攻击伤害，防御时减半
func MonsterDamage(attack, defense int, defending bool) int {
	dmg := AttackDamage(attack, defense)
	if defending {
		dmg = maxInt(1, dmg/2)
	}
	return dmg
}

// SkillHeal 回复技能的回复量
func SkillHeal(power, attack int) int {
	return int(math.Floor(float64(power)*(float64(attack)/HealAttackDivisor))) + HealFlatBonus
}

// SkillDamage 攻击技能伤害
func SkillDamage(power, attack, defense int, multiplier float64) int {
	raw := int(math.Floor(float64(power) * (float64(attack) / SkillAttackDiv) * multiplier))
	return maxInt(1, raw-defense/2)
}

// PassiveHeal 被动技能每次发动的回复量
func PassiveHeal(maxHP int) int {
	return int(math.Floor(float64(maxHP) * PassiveHealRate))
}

// FleeSucceeds 逃跑判定
func FleeSucceeds(r Rand, agility, speed int) bool {
	return r.Float64()*float64(agility) > r.Float64()*float64(speed)*FleeSpeedFactor
}

// PlayerActsFirst 先手判定
func PlayerActsFirst(r Rand, agility, speed int) bool {
	return r.Float64()*float64(agility) >= r.Float64()*float64(speed)
}

// RareDropChance 稀有掉落概率
func RareDropChance(luck int, base, luckFactor float64) float64 {
	return base + float64(luck)*luckFactor
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
