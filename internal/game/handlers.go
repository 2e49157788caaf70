// handlers.go

package game

import (
	"context"
	"fmt"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/protocol"
)

// 地图视野半径
const (
	defaultViewRadius = 7
	maxViewRadius     = 15
)

type handlerFunc func(client *Client, msg protocol.Message) error

// handlers 消息类型到处理函数
func (s *GameServer) handlers() map[protocol.MessageType]handlerFunc {
	return map[protocol.MessageType]handlerFunc{
		protocol.TypeStatus:         s.handleStatus,
		protocol.TypeMove:           s.handleMove,
		protocol.TypeMapView:        s.handleMapView,
		protocol.TypeBattleAction:   s.handleBattleAction,
		protocol.TypeBattleContinue: s.handleBattleContinue,
		protocol.TypeEnterDungeon:   s.handleEnterDungeon,
		protocol.TypeChallengeBoss:  s.handleChallengeBoss,
		protocol.TypeAllocate:       s.handleAllocate,
		protocol.TypeEquip:          s.handleEquip,
		protocol.TypeUnequip:        s.handleUnequip,
		protocol.TypeInn:            s.handleInn,
		protocol.TypeBuy:            s.handleBuy,
		protocol.TypeForge:          s.handleForge,
		protocol.TypeFuse:           s.handleFuse,
		protocol.TypeQuests:         s.handleQuests,
		protocol.TypeAcceptQuest:    s.handleAcceptQuest,
		protocol.TypeSave:           s.handleSave,
	}
}

// decode 解码负载，失败时包装为格式错误
func decode(msg protocol.Message, v interface{}) error {
	if err := msg.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

func (s *GameServer) statusInfo(client *Client) protocol.StatusInfo {
	return protocol.ConvertStatus(client.Session.Status(), client.Session.Battle())
}

func (s *GameServer) sendStatus(client *Client) {
	s.send(client, protocol.TypeStatus, s.statusInfo(client))
}

func (s *GameServer) handleStatus(client *Client, _ protocol.Message) error {
	s.sendStatus(client)
	return nil
}

func (s *GameServer) handleMove(client *Client, msg protocol.Message) error {
	var req protocol.MoveRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	res, err := client.Session.Move(req.DX, req.DY)
	if err != nil {
		return err
	}
	s.send(client, protocol.TypeMoveResult, protocol.ConvertMove(res))
	return nil
}

func (s *GameServer) handleMapView(client *Client, msg protocol.Message) error {
	req := protocol.MapViewRequest{Radius: defaultViewRadius}
	if err := decode(msg, &req); err != nil {
		return err
	}
	if req.Radius <= 0 || req.Radius > maxViewRadius {
		req.Radius = defaultViewRadius
	}
	st := client.Session.Status()
	view := client.Session.World().View(st.X, st.Y, req.Radius)
	s.send(client, protocol.TypeMapView, protocol.ConvertView(st.X, st.Y, req.Radius, view))
	return nil
}

func (s *GameServer) handleAllocate(client *Client, msg protocol.Message) error {
	var req protocol.AllocateRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	if err := client.Session.Allocate(req.Stat); err != nil {
		return err
	}
	s.sendStatus(client)
	return nil
}

func (s *GameServer) handleEquip(client *Client, msg protocol.Message) error {
	var req protocol.EquipRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	if err := client.Session.Equip(models.EquipSlot(req.Slot), req.Index); err != nil {
		return err
	}
	s.sendStatus(client)
	return nil
}

func (s *GameServer) handleUnequip(client *Client, msg protocol.Message) error {
	var req protocol.UnequipRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	if err := client.Session.Unequip(models.EquipSlot(req.Slot)); err != nil {
		return err
	}
	s.sendStatus(client)
	return nil
}

func (s *GameServer) townResult(client *Client, service string, cost int) protocol.TownInfo {
	return protocol.TownInfo{
		Service: service,
		Cost:    cost,
		Gold:    client.Session.Status().Player.Gold,
	}
}

func (s *GameServer) handleInn(client *Client, _ protocol.Message) error {
	cost, err := client.Session.Inn()
	if err != nil {
		return err
	}
	s.send(client, protocol.TypeTown, s.townResult(client, "inn", cost))
	return nil
}

func (s *GameServer) handleBuy(client *Client, msg protocol.Message) error {
	var req protocol.BuyRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	item, cost, err := client.Session.Buy(req.ItemID)
	if err != nil {
		return err
	}
	res := s.townResult(client, "shop", cost)
	converted := protocol.ConvertItem(&item)
	res.Item = &converted
	s.send(client, protocol.TypeTown, res)
	return nil
}

func (s *GameServer) handleForge(client *Client, _ protocol.Message) error {
	weapon, cost, err := client.Session.Forge()
	if err != nil {
		return err
	}
	res := s.townResult(client, "forge", cost)
	converted := protocol.ConvertItem(&weapon)
	res.Item = &converted
	s.send(client, protocol.TypeTown, res)
	return nil
}

func (s *GameServer) handleFuse(client *Client, msg protocol.Message) error {
	var req protocol.FuseRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	skill, cost, err := client.Session.Fuse(req.SkillA, req.SkillB)
	if err != nil {
		return err
	}
	res := s.townResult(client, "fusion", cost)
	converted := protocol.ConvertSkill(&skill)
	res.Skill = &converted
	s.send(client, protocol.TypeTown, res)
	return nil
}

func (s *GameServer) handleQuests(client *Client, _ protocol.Message) error {
	s.send(client, protocol.TypeQuests, protocol.ConvertQuests(client.Session.Quests()))
	return nil
}

func (s *GameServer) handleAcceptQuest(client *Client, msg protocol.Message) error {
	var req protocol.QuestRequest
	if err := decode(msg, &req); err != nil {
		return err
	}
	if err := client.Session.AcceptQuest(req.QuestID); err != nil {
		return err
	}
	return s.handleQuests(client, msg)
}

func (s *GameServer) handleSave(client *Client, _ protocol.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Session.Save(ctx, s.store, s.board); err != nil {
		return err
	}
	s.send(client, protocol.TypeSaved, map[string]string{"player_id": client.PlayerID})
	return nil
}
