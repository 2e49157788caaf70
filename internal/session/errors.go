// errors.go

package session

import "errors"

// 会话操作错误
var (
	ErrInsufficientGold = errors.New("金币不足")
	ErrBattleActive     = errors.New("战斗进行中")
	ErrNoBattle         = errors.New("当前没有战斗")
	ErrNotInTown        = errors.New("不在城镇中")
	ErrNotAtDungeon     = errors.New("不在地下城入口")
	ErrNotFinalDungeon  = errors.New("这里没有最终首领")
	ErrBlocked          = errors.New("无法通行")
	ErrInvalidMove      = errors.New("无效的移动")
	ErrUnknownItem      = errors.New("未知的道具")
	ErrUnknownQuest     = errors.New("未知的任务")
	ErrQuestState       = errors.New("任务状态不允许该操作")
	ErrFusionPair       = errors.New("需要两个不同的已习得技能")
	ErrAllocate         = errors.New("无法分配属性点")
	ErrEquip            = errors.New("无法装备")
	ErrNoWeapon         = errors.New("没有装备武器")
)
