// battle.go

package battle

import (
	"errors"
	"fmt"

	"github.com/enetx/fsm"
	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// 无效行动，拒绝后保持当前回合
var (
	ErrInvalidAction    = errors.New("无效的行动")
	ErrSkillOnCooldown  = fmt.Errorf("%w: 技能冷却中", ErrInvalidAction)
	ErrUnknownSkill     = fmt.Errorf("%w: 未习得的技能", ErrInvalidAction)
	ErrPassiveSkill     = fmt.Errorf("%w: 被动技能无法主动使用", ErrInvalidAction)
	ErrActionNotAllowed = fmt.Errorf("%w: 当前阶段不能执行该行动", ErrInvalidAction)
	ErrBattleOver       = errors.New("战斗已经结束")
)

// DungeonWeaponName 地下城掉落的武器名
const DungeonWeaponName = "地下城秘剑"

// Options 战斗参数
type Options struct {
	ConfirmLevelGap     int
	RareDropBase        float64
	RareDropLuckFactor  float64
	WeaponUpgradeChance float64
	WeaponUpgradeBonus  int
	// SkillPool 稀有掉落时从中抽取技能
	SkillPool []models.Skill
	Rand      Rand
}

// OptionsFromConfig 根据游戏配置生成战斗参数
func OptionsFromConfig(cfg config.GameConfig, pool []models.Skill, r Rand) Options {
	return Options{
		ConfirmLevelGap:     cfg.ConfirmLevelGap,
		RareDropBase:        cfg.RareDropBase,
		RareDropLuckFactor:  cfg.RareDropLuckFactor,
		WeaponUpgradeChance: cfg.WeaponUpgradeChance,
		WeaponUpgradeBonus:  cfg.WeaponUpgradeBonus,
		SkillPool:           pool,
		Rand:                r,
	}
}

// Battle 一场遭遇战
// 玩家在战斗期间由 Battle 独占修改
type Battle struct {
	player  *models.Player
	monster *models.Monster
	opts    Options

	machine   *fsm.FSM
	defending bool
	turns     int
	result    *Result

	log *logrus.Entry
}

// New 创建战斗，怪物模板会被复制
func New(player *models.Player, template models.Monster, opts Options) *Battle {
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}

	b := &Battle{
		player:  player,
		monster: template.Clone(),
		opts:    opts,
		log: logger.Component("battle").WithFields(logrus.Fields{
			"player":  player.Name,
			"monster": template.Name,
			"level":   template.Level,
		}),
	}

	b.machine = fsm.New(PhaseEncounter).
		Transition(PhaseEncounter, evEngage, PhasePlayerTurn).
		Transition(PhaseEncounter, evAmbush, PhaseMonsterTurn).
		Transition(PhaseEncounter, evWalkAway, PhaseFled).
		Transition(PhasePlayerTurn, evAct, PhaseActionResolution).
		Transition(PhaseActionResolution, evEndTurn, PhaseMonsterTurn).
		Transition(PhaseActionResolution, evVictory, PhaseWin).
		Transition(PhaseActionResolution, evEscape, PhaseFled).
		Transition(PhaseMonsterTurn, evNextRound, PhasePlayerTurn).
		Transition(PhaseMonsterTurn, evDefeat, PhaseLose).
		OnEnter(PhaseWin, b.onConcluded).
		OnEnter(PhaseLose, b.onConcluded).
		OnEnter(PhaseFled, b.onConcluded)

	return b
}

func (b *Battle) onConcluded(*fsm.Context) error {
	b.log.WithFields(logrus.Fields{
		"phase": b.machine.Current(),
		"turns": b.turns,
	}).Info("战斗结束")
	return nil
}

// Phase 当前阶段
func (b *Battle) Phase() fsm.State {
	return b.machine.Current()
}

// Over 是否已经结束
func (b *Battle) Over() bool {
	switch b.Phase() {
	case PhaseWin, PhaseLose, PhaseFled:
		return true
	}
	return false
}

// Result 结束后的结算，未结束时为nil
func (b *Battle) Result() *Result {
	return b.result
}

// Monster 战斗中的怪物实例
func (b *Battle) Monster() *models.Monster {
	return b.monster
}

// NeedsConfirm 怪物等级是否高到需要确认
func (b *Battle) NeedsConfirm() bool {
	return b.opts.ConfirmLevelGap > 0 && b.monster.Level-b.player.Level >= b.opts.ConfirmLevelGap
}

// Start 怪物登场
// 等级差过大时停在遭遇阶段等待确认，否则立即决定先手
func (b *Battle) Start() []Event {
	events := []Event{b.logf("%s (Lv.%d) 出现了！", b.monster.Name, b.monster.Level)}

	if b.NeedsConfirm() {
		events = append(events, b.logf("对手的等级远高于你，要迎战吗？"))
		return append(events, b.actionsEvent(), b.statusEvent())
	}

	events = append(events, b.rollInitiative()...)
	return append(events, b.actionsEvent(), b.statusEvent())
}

// Actions 当前可选的行动
func (b *Battle) Actions() []ActionKind {
	switch b.Phase() {
	case PhaseEncounter:
		return []ActionKind{ActionFight, ActionWalkAway}
	case PhasePlayerTurn:
		actions := []ActionKind{ActionAttack}
		if len(b.UsableSkills()) > 0 {
			actions = append(actions, ActionSkill)
		}
		return append(actions, ActionDefend, ActionFlee)
	case PhaseMonsterTurn:
		return []ActionKind{ActionContinue}
	}
	return nil
}

// UsableSkills 冷却完毕的主动技能
func (b *Battle) UsableSkills() []*models.Skill {
	var usable []*models.Skill
	for _, s := range b.player.AllSkills() {
		if s.Ready() {
			usable = append(usable, s)
		}
	}
	return usable
}

// Advance 执行一次行动
// 被拒绝的行动返回错误且不修改任何状态
func (b *Battle) Advance(a Action) ([]Event, error) {
	if b.Over() {
		return nil, ErrBattleOver
	}

	switch b.Phase() {
	case PhaseEncounter:
		return b.advanceEncounter(a)
	case PhasePlayerTurn:
		return b.advancePlayerTurn(a)
	case PhaseMonsterTurn:
		if a.Kind != ActionContinue {
			return nil, ErrActionNotAllowed
		}
		return b.resolveMonsterTurn()
	}
	return nil, ErrActionNotAllowed
}

func (b *Battle) advanceEncounter(a Action) ([]Event, error) {
	switch a.Kind {
	case ActionFight:
		events := b.rollInitiative()
		return append(events, b.actionsEvent(), b.statusEvent()), nil
	case ActionWalkAway:
		if err := b.trigger(evWalkAway); err != nil {
			return nil, err
		}
		events := []Event{b.logf("%s 转身离开了。", b.player.Name)}
		return append(events, b.conclude(OutcomeFled)...), nil
	}
	return nil, ErrActionNotAllowed
}

func (b *Battle) rollInitiative() []Event {
	total := b.player.TotalStats()
	if PlayerActsFirst(b.opts.Rand, total.Agility, b.monster.Spd) {
		b.mustTrigger(evEngage)
		return []Event{b.logf("%s 抢先行动！", b.player.Name)}
	}
	b.mustTrigger(evAmbush)
	return []Event{b.logf("%s 抢先发动了攻击！", b.monster.Name)}
}

// validate 在修改任何状态之前检查行动
func (b *Battle) validate(a Action) (*models.Skill, error) {
	switch a.Kind {
	case ActionAttack, ActionDefend, ActionFlee:
		return nil, nil
	case ActionSkill:
		skill := b.player.FindSkill(a.SkillID)
		if skill == nil {
			return nil, ErrUnknownSkill
		}
		if skill.IsPassive() {
			return nil, ErrPassiveSkill
		}
		if skill.CurrentCooldown > 0 {
			return nil, ErrSkillOnCooldown
		}
		return skill, nil
	}
	return nil, ErrActionNotAllowed
}

func (b *Battle) advancePlayerTurn(a Action) ([]Event, error) {
	skill, err := b.validate(a)
	if err != nil {
		b.log.WithField("action", a.Kind).WithError(err).Debug("行动被拒绝")
		return nil, err
	}

	if err := b.trigger(evAct); err != nil {
		return nil, err
	}
	b.turns++

	var events []Event
	switch a.Kind {
	case ActionAttack:
		events = b.playerAttack()
	case ActionSkill:
		events = b.playerSkill(skill)
	case ActionDefend:
		b.defending = true
		events = []Event{b.logf("%s 摆出了防御姿态！", b.player.Name)}
	case ActionFlee:
		total := b.player.TotalStats()
		if FleeSucceeds(b.opts.Rand, total.Agility, b.monster.Spd) {
			b.mustTrigger(evEscape)
			events = append(events, b.logf("成功逃脱了！"))
			return append(events, b.conclude(OutcomeFled)...), nil
		}
		events = []Event{b.logf("逃不掉！")}
	}

	if b.monster.IsDead() {
		b.mustTrigger(evVictory)
		events = append(events, b.logf("击败了 %s！", b.monster.Name))
		events = append(events, b.applyVictory()...)
		return append(events, b.conclude(OutcomeWin)...), nil
	}

	b.mustTrigger(evEndTurn)
	return append(events, b.statusEvent(), b.actionsEvent()), nil
}

func (b *Battle) playerAttack() []Event {
	dmg := AttackDamage(b.player.TotalStats().Attack, b.monster.Def)
	b.monster.TakeDamage(dmg)
	b.log.WithField("damage", dmg).Debug("普通攻击")
	return []Event{b.logf("%s 的攻击！对 %s 造成 %d 点伤害！", b.player.Name, b.monster.Name, dmg)}
}

func (b *Battle) playerSkill(skill *models.Skill) []Event {
	attack := b.player.TotalStats().Attack
	var events []Event

	if skill.Healing {
		healed := b.player.Heal(SkillHeal(skill.Power, attack))
		events = append(events, b.logf("%s 的 %s！回复了 %d 点体力。", b.player.Name, skill.Name, healed))
	} else {
		mult := content.ElementalMultiplier(skill.Element, b.monster.Element)
		events = append(events, b.logf("%s 的 %s！(%s属性)", b.player.Name, skill.Name, skill.Element.Label()))
		if mult > 1.0 {
			ev := b.logf("效果拔群！")
			ev.Effect = EffectSuper
			events = append(events, ev)
		} else if mult < 1.0 {
			ev := b.logf("效果不太好……")
			ev.Effect = EffectNotVery
			events = append(events, ev)
		}
		dmg := SkillDamage(skill.Power, attack, b.monster.Def, mult)
		b.monster.TakeDamage(dmg)
		events = append(events, b.logf("对 %s 造成 %d 点伤害！", b.monster.Name, dmg))
	}

	skill.StartCooldown()
	b.log.WithFields(logrus.Fields{"skill": skill.ID, "cooldown": skill.CurrentCooldown}).Debug("使用技能")
	return events
}

func (b *Battle) resolveMonsterTurn() ([]Event, error) {
	events := b.triggerPassives(models.TriggerOnTurnEnd)

	for _, s := range b.player.AllSkills() {
		if !s.IsPassive() {
			s.TickCooldown()
		}
	}

	dmg := MonsterDamage(b.monster.Atk, b.player.TotalStats().Defense, b.defending)
	b.defending = false
	dead := b.player.TakeDamage(dmg)
	b.log.WithField("damage", dmg).Debug("怪物攻击")
	events = append(events, b.logf("%s 的攻击！%s 受到 %d 点伤害！", b.monster.Name, b.player.Name, dmg))

	if dead {
		b.mustTrigger(evDefeat)
		events = append(events, b.logf("%s 倒下了……", b.player.Name))
		return append(events, b.conclude(OutcomeLose)...), nil
	}

	events = append(events, b.triggerPassives(models.TriggerOnDamageTaken)...)
	b.mustTrigger(evNextRound)
	return append(events, b.statusEvent(), b.actionsEvent()), nil
}

// triggerPassives 每个符合时机的被动技能回复一次体力
func (b *Battle) triggerPassives(trigger models.SkillTrigger) []Event {
	var events []Event
	for _, s := range b.player.AllSkills() {
		if !s.IsPassive() || s.Trigger != trigger {
			continue
		}
		healed := b.player.Heal(PassiveHeal(b.player.MaxHP))
		events = append(events, b.logf("[被动发动] %s！回复了 %d 点体力。", s.Name, healed))
	}
	return events
}

func (b *Battle) applyVictory() []Event {
	res := &Result{
		Outcome:    OutcomeWin,
		RewardExp:  b.monster.Exp,
		RewardGold: b.monster.Gold,
	}
	events := []Event{b.logf("获得了 %d 点经验和 %d 金币。", b.monster.Exp, b.monster.Gold)}

	luck := b.player.TotalStats().Luck
	if b.opts.Rand.Float64() < RareDropChance(luck, b.opts.RareDropBase, b.opts.RareDropLuckFactor) && len(b.opts.SkillPool) > 0 {
		skill := b.opts.SkillPool[b.opts.Rand.Intn(len(b.opts.SkillPool))]
		res.RareDropGranted = true
		res.RareDropSkill = skill.Name
		if b.player.LearnSkill(skill) {
			events = append(events, b.logf("发现宝物！习得了技能 %s！", skill.Name))
		} else {
			events = append(events, b.logf("发现宝物！但 %s 已经掌握了。", skill.Name))
		}
	}

	if b.monster.IsDungeonMonster && b.opts.Rand.Float64() < b.opts.WeaponUpgradeChance {
		res.WeaponUpgradeGranted = true
		b.upgradeWeapon()
		events = append(events, b.logf("竟然捡到了强力的武器 %s！", DungeonWeaponName))
	}

	b.player.Gold += b.monster.Gold
	if b.player.GainExp(b.monster.Exp) {
		res.LeveledUp = true
		events = append(events, b.logf("升级了！现在是 Lv.%d。", b.player.Level))
	}

	b.result = res
	return events
}

// upgradeWeapon 把当前武器换成更强的地下城武器
func (b *Battle) upgradeWeapon() {
	base := 0
	if w := b.player.Equipment.Weapon; w != nil {
		base = w.Bonus.Attack
	}
	b.player.Equipment.Weapon = &models.Item{
		ID:    "weapon_dungeon",
		Name:  DungeonWeaponName,
		Slot:  models.SlotWeapon,
		Bonus: models.StatBonus{Attack: base + b.opts.WeaponUpgradeBonus},
	}
}

func (b *Battle) conclude(outcome Outcome) []Event {
	if b.result == nil {
		b.result = &Result{Outcome: outcome}
	}
	b.result.Turns = b.turns
	return []Event{
		b.statusEvent(),
		{Kind: EventActionsChanged, Actions: nil},
		{Kind: EventConcluded, Result: b.result},
	}
}

func (b *Battle) trigger(ev fsm.Event) error {
	if err := b.machine.Trigger(ev); err != nil {
		return fmt.Errorf("阶段切换失败 %s: %w", ev, err)
	}
	return nil
}

// mustTrigger 用于已经校验过的切换
func (b *Battle) mustTrigger(ev fsm.Event) {
	if err := b.trigger(ev); err != nil {
		b.log.WithError(err).Error("阶段切换失败")
	}
}

func (b *Battle) logf(format string, args ...any) Event {
	return Event{Kind: EventLog, Message: fmt.Sprintf(format, args...)}
}

func (b *Battle) actionsEvent() Event {
	return Event{Kind: EventActionsChanged, Actions: b.Actions()}
}

func (b *Battle) statusEvent() Event {
	return Event{Kind: EventStatsChanged, Status: b.Status()}
}

// Status 当前体力快照
func (b *Battle) Status() *Status {
	return &Status{
		Phase:        string(b.Phase()),
		PlayerHP:     b.player.HP,
		PlayerMaxHP:  b.player.MaxHP,
		MonsterHP:    b.monster.HP,
		MonsterMaxHP: b.monster.MaxHP,
	}
}
