package game

import (
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/protocol"
)

// BattleEventsInfo 一次战斗推进的结果
type BattleEventsInfo struct {
	Events []protocol.EventInfo `json:"events"`
	Battle *protocol.BattleInfo `json:"battle,omitempty"`
	Status *protocol.StatusInfo `json:"status,omitempty"`
}

// sendBattle 发送战斗事件，战斗结束时附带最新状态
func (s *GameServer) sendBattle(client *Client, events []battle.Event) {
	b := client.Session.Battle()
	info := BattleEventsInfo{
		Events: protocol.ConvertEvents(events),
		Battle: protocol.ConvertBattle(b),
	}
	if b == nil {
		st := s.statusInfo(client)
		info.Status = &st
	}
	s.send(client, protocol.TypeBattle, info)
}

func (s *GameServer) handleBattleAction(client *Client, msg protocol.Message) error {
	var req protocol.BattleActionRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	events, err := client.Session.Act(battle.Action{Kind: battle.ActionKind(req.Action), SkillID: req.SkillID})
	if err != nil {
		return err
	}
	s.sendBattle(client, events)
	return nil
}

// handleBattleContinue 结算挂起的怪物回合
func (s *GameServer) handleBattleContinue(client *Client, _ protocol.Message) error {
	events, err := client.Session.Act(battle.Action{Kind: battle.ActionContinue})
	if err != nil {
		return err
	}
	s.sendBattle(client, events)
	return nil
}

func (s *GameServer) handleEnterDungeon(client *Client, _ protocol.Message) error {
	events, err := client.Session.EnterDungeon()
	if err != nil {
		return err
	}
	s.sendBattle(client, events)
	return nil
}

func (s *GameServer) handleChallengeBoss(client *Client, _ protocol.Message) error {
	events, err := client.Session.ChallengeBoss()
	if err != nil {
		return err
	}
	s.sendBattle(client, events)
	return nil
}
