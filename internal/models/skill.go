// skill.go

package models

// SkillCategory 技能类别
type SkillCategory string

const (
	// SkillActive 主动技能，战斗中手动选择
	SkillActive SkillCategory = "active"
	// SkillPassive 被动技能，按触发时机自动发动
	SkillPassive SkillCategory = "passive"
)

// SkillTrigger 被动技能触发时机
type SkillTrigger string

const (
	// TriggerNone 主动技能没有触发时机
	TriggerNone SkillTrigger = ""
	// TriggerOnTurnEnd 回合结束时
	TriggerOnTurnEnd SkillTrigger = "on_turn_end"
	// TriggerOnDamageTaken 受到伤害时
	TriggerOnDamageTaken SkillTrigger = "on_damage_taken"
)

// UnlockCondition 习得条件
type UnlockCondition string

const (
	UnlockByLevel UnlockCondition = "level"
	UnlockByQuest UnlockCondition = "quest"
	UnlockByDrop  UnlockCondition = "drop"
)

// Skill 技能模型
// 图鉴条目只读；玩家持有的是副本，CurrentCooldown 只在副本上变化
type Skill struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	School      string        `json:"school"`
	Category    SkillCategory `json:"category"`
	Element     Element       `json:"element"`
	Rarity      Rarity        `json:"rarity"`

	Power   int  `json:"power"`
	Healing bool `json:"healing"`

	MPCost          int `json:"mp_cost"`
	Cooldown        int `json:"cooldown"`
	CurrentCooldown int `json:"current_cooldown"`

	Trigger   SkillTrigger    `json:"trigger,omitempty"`
	Condition UnlockCondition `json:"condition,omitempty"`
	Fused     bool            `json:"fused,omitempty"`
}

// IsPassive 是否被动技能
func (s *Skill) IsPassive() bool {
	return s.Category == SkillPassive
}

// Ready 主动技能是否可以使用
func (s *Skill) Ready() bool {
	return !s.IsPassive() && s.CurrentCooldown <= 0
}

// StartCooldown 使用后进入冷却
func (s *Skill) StartCooldown() {
	s.CurrentCooldown = s.Cooldown
}

// TickCooldown 冷却减一，最低为0
func (s *Skill) TickCooldown() {
	if s.CurrentCooldown > 0 {
		s.CurrentCooldown--
	}
}
