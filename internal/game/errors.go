// errors.go

package game

import (
	"errors"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{battle.ErrSkillOnCooldown, "skill_on_cooldown"},
	{battle.ErrUnknownSkill, "unknown_skill"},
	{battle.ErrPassiveSkill, "passive_skill"},
	{battle.ErrActionNotAllowed, "action_not_allowed"},
	{battle.ErrInvalidAction, "invalid_action"},
	{battle.ErrBattleOver, "battle_over"},
	{session.ErrInsufficientGold, "insufficient_gold"},
	{session.ErrBattleActive, "battle_active"},
	{session.ErrNoBattle, "no_battle"},
	{session.ErrNotInTown, "not_in_town"},
	{session.ErrNotAtDungeon, "not_at_dungeon"},
	{session.ErrNotFinalDungeon, "not_final_dungeon"},
	{session.ErrBlocked, "blocked"},
	{session.ErrInvalidMove, "invalid_move"},
	{session.ErrUnknownItem, "unknown_item"},
	{session.ErrUnknownQuest, "unknown_quest"},
	{session.ErrQuestState, "quest_state"},
	{session.ErrFusionPair, "fusion_pair"},
	{session.ErrAllocate, "allocate"},
	{session.ErrEquip, "equip"},
	{session.ErrNoWeapon, "no_weapon"},
	{errMalformed, "malformed"},
	{errUnknownType, "unknown_type"},
}

// errorCode 把错误映射为稳定的错误码
func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
