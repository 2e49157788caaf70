// events.go

package battle

import "github.com/enetx/fsm"

// 战斗阶段
const (
	PhaseEncounter        fsm.State = "encounter"
	PhasePlayerTurn       fsm.State = "player_turn"
	PhaseActionResolution fsm.State = "action_resolution"
	PhaseMonsterTurn      fsm.State = "monster_turn"
	PhaseWin              fsm.State = "win"
	PhaseLose             fsm.State = "lose"
	PhaseFled             fsm.State = "fled"
)

// 阶段切换事件
const (
	evEngage    fsm.Event = "engage"
	evAmbush    fsm.Event = "ambush"
	evWalkAway  fsm.Event = "walk_away"
	evAct       fsm.Event = "act"
	evEndTurn   fsm.Event = "end_turn"
	evVictory   fsm.Event = "victory"
	evEscape    fsm.Event = "escape"
	evNextRound fsm.Event = "next_round"
	evDefeat    fsm.Event = "defeat"
)

// ActionKind 玩家可选的行动
type ActionKind string

const (
	// ActionFight 确认迎战高等级怪物
	ActionFight ActionKind = "fight"
	// ActionWalkAway 战斗开始前离开
	ActionWalkAway ActionKind = "walk_away"
	ActionAttack   ActionKind = "attack"
	ActionSkill    ActionKind = "skill"
	ActionDefend   ActionKind = "defend"
	ActionFlee     ActionKind = "flee"
	// ActionContinue 结算等待中的怪物回合
	ActionContinue ActionKind = "continue"
)

// Action 一次玩家输入
type Action struct {
	Kind    ActionKind `json:"kind"`
	SkillID string     `json:"skill_id,omitempty"`
}

// Outcome 战斗结果
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeFled Outcome = "fled"
)

// Result 战斗结束时的结算
type Result struct {
	Outcome              Outcome `json:"outcome"`
	RewardExp            int     `json:"reward_exp"`
	RewardGold           int     `json:"reward_gold"`
	RareDropGranted      bool    `json:"rare_drop_granted"`
	RareDropSkill        string  `json:"rare_drop_skill,omitempty"`
	WeaponUpgradeGranted bool    `json:"weapon_upgrade_granted"`
	LeveledUp            bool    `json:"leveled_up"`
	Turns                int     `json:"turns"`
}

// EventKind 通知给外层的事件类型
type EventKind string

const (
	EventLog            EventKind = "log"
	EventActionsChanged EventKind = "actions_changed"
	EventStatsChanged   EventKind = "stats_changed"
	EventConcluded      EventKind = "concluded"
)

// Effectiveness 属性效果提示
type Effectiveness string

const (
	EffectNormal  Effectiveness = ""
	EffectSuper   Effectiveness = "super_effective"
	EffectNotVery Effectiveness = "not_very_effective"
)

// Status 双方当前体力
type Status struct {
	Phase        string `json:"phase"`
	PlayerHP     int    `json:"player_hp"`
	PlayerMaxHP  int    `json:"player_max_hp"`
	MonsterHP    int    `json:"monster_hp"`
	MonsterMaxHP int    `json:"monster_max_hp"`
}

// Event 战斗事件
type Event struct {
	Kind    EventKind     `json:"kind"`
	Message string        `json:"message,omitempty"`
	Effect  Effectiveness `json:"effect,omitempty"`
	Actions []ActionKind  `json:"actions,omitempty"`
	Status  *Status       `json:"status,omitempty"`
	Result  *Result       `json:"result,omitempty"`
}
