// message.go

package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType 消息类型
type MessageType string

// 客户端发送的消息
const (
	TypeMove           MessageType = "move"
	TypeBattleAction   MessageType = "battle_action"
	TypeBattleContinue MessageType = "battle_continue"
	TypeAllocate       MessageType = "allocate"
	TypeFuse           MessageType = "fuse"
	TypeInn            MessageType = "inn"
	TypeBuy            MessageType = "buy"
	TypeEquip          MessageType = "equip"
	TypeUnequip        MessageType = "unequip"
	TypeForge          MessageType = "forge"
	TypeAcceptQuest    MessageType = "accept_quest"
	TypeQuests         MessageType = "quests"
	TypeEnterDungeon   MessageType = "enter_dungeon"
	TypeChallengeBoss  MessageType = "challenge_boss"
	TypeMapView        MessageType = "map_view"
	TypeSave           MessageType = "save"
	TypeStatus         MessageType = "status"
)

// 服务器发送的消息
const (
	TypeWelcome    MessageType = "welcome"
	TypeMoveResult MessageType = "move_result"
	TypeBattle     MessageType = "battle_events"
	TypeTown       MessageType = "town_result"
	TypeSaved      MessageType = "saved"
	TypeError      MessageType = "error"
)

// Message 消息信封
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage 把负载编码进信封
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	msg := Message{Type: t}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("编码 %s 消息失败: %w", t, err)
	}
	msg.Payload = data
	return msg, nil
}

// Decode 解码负载，空负载保持零值
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("解析 %s 负载失败: %w", m.Type, err)
	}
	return nil
}

// MoveRequest 移动一格
type MoveRequest struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// BattleActionRequest 战斗行动
type BattleActionRequest struct {
	Action  string `json:"action"`
	SkillID string `json:"skill_id,omitempty"`
}

// AllocateRequest 分配属性点
type AllocateRequest struct {
	Stat string `json:"stat"`
}

// FuseRequest 融合两个技能
type FuseRequest struct {
	SkillA string `json:"skill_a"`
	SkillB string `json:"skill_b"`
}

// BuyRequest 购买道具
type BuyRequest struct {
	ItemID string `json:"item_id"`
}

// EquipRequest 装备背包中的道具
type EquipRequest struct {
	Slot  string `json:"slot"`
	Index int    `json:"index"`
}

// UnequipRequest 卸下装备
type UnequipRequest struct {
	Slot string `json:"slot"`
}

// QuestRequest 接受任务
type QuestRequest struct {
	QuestID int `json:"quest_id"`
}

// MapViewRequest 地图视野
type MapViewRequest struct {
	Radius int `json:"radius"`
}

// ErrorInfo 错误响应
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Request string `json:"request,omitempty"`
}
