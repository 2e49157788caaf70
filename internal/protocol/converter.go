package protocol

import (
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
)

// SkillInfo 技能信息
type SkillInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	School          string `json:"school"`
	Category        string `json:"category"`
	Element         string `json:"element"`
	ElementLabel    string `json:"element_label"`
	Rarity          string `json:"rarity"`
	RarityLabel     string `json:"rarity_label,omitempty"`
	Power           int    `json:"power"`
	Healing         bool   `json:"healing"`
	MPCost          int    `json:"mp_cost"`
	Cooldown        int    `json:"cooldown"`
	CurrentCooldown int    `json:"current_cooldown"`
	Trigger         string `json:"trigger,omitempty"`
	Condition       string `json:"condition,omitempty"`
	Fused           bool   `json:"fused,omitempty"`
}

// MonsterInfo 怪物信息
type MonsterInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
	HP           int    `json:"hp"`
	MaxHP        int    `json:"max_hp"`
	Atk          int    `json:"atk"`
	Def          int    `json:"def"`
	Spd          int    `json:"spd"`
	Exp          int    `json:"exp"`
	Gold         int    `json:"gold"`
	Element      string `json:"element"`
	ElementLabel string `json:"element_label"`
	Shape        string `json:"shape"`
	IsBoss       bool   `json:"is_boss,omitempty"`
	IsDungeon    bool   `json:"is_dungeon_monster,omitempty"`
}

// QuestInfo 任务信息
type QuestInfo struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	TargetMonsterLevel int    `json:"target_monster_level"`
	RequiredCount      int    `json:"required_count"`
	CurrentCount       int    `json:"current_count"`
	RewardGold         int    `json:"reward_gold"`
	RewardExp          int    `json:"reward_exp"`
	IsAccepted         bool   `json:"is_accepted"`
	IsCompleted        bool   `json:"is_completed"`
}

// ItemInfo 道具信息
type ItemInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slot    string `json:"slot"`
	Attack  int    `json:"attack,omitempty"`
	Defense int    `json:"defense,omitempty"`
	Agility int    `json:"agility,omitempty"`
	Luck    int    `json:"luck,omitempty"`
	Virtue  int    `json:"virtue,omitempty"`
	Price   int    `json:"price,omitempty"`
}

// StatsInfo 属性
type StatsInfo struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Agility int `json:"agility"`
	Luck    int `json:"luck"`
	Virtue  int `json:"virtue"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	Name         string               `json:"name"`
	Level        int                  `json:"level"`
	Exp          int                  `json:"exp"`
	NextLevelExp int                  `json:"next_level_exp"`
	HP           int                  `json:"hp"`
	MaxHP        int                  `json:"max_hp"`
	Gold         int                  `json:"gold"`
	StatusPoints int                  `json:"status_points"`
	Stats        StatsInfo            `json:"stats"`
	TotalStats   StatsInfo            `json:"total_stats"`
	DiscountRate float64              `json:"discount_rate"`
	Skills       []SkillInfo          `json:"skills"`
	FusedSkills  []SkillInfo          `json:"fused_skills"`
	Equipment    map[string]*ItemInfo `json:"equipment"`
	Inventory    []ItemInfo           `json:"inventory"`
	Respawn      string               `json:"respawn"`
}

// LocationInfo 地点信息
type LocationInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	RecLevel int    `json:"rec_level,omitempty"`
	Greeting string `json:"greeting,omitempty"`
	Final    bool   `json:"final,omitempty"`
}

// BattleInfo 进行中的战斗
type BattleInfo struct {
	Phase   string      `json:"phase"`
	Monster MonsterInfo `json:"monster"`
	Actions []string    `json:"actions"`
}

// StatusInfo 会话状态
type StatusInfo struct {
	Player           PlayerInfo    `json:"player"`
	X                int           `json:"x"`
	Y                int           `json:"y"`
	Terrain          string        `json:"terrain"`
	Location         *LocationInfo `json:"location,omitempty"`
	LastBossDefeated bool          `json:"last_boss_defeated"`
	Battle           *BattleInfo   `json:"battle,omitempty"`
}

// ResultInfo 战斗结果
type ResultInfo struct {
	Outcome              string `json:"outcome"`
	RewardExp            int    `json:"reward_exp"`
	RewardGold           int    `json:"reward_gold"`
	RareDropGranted      bool   `json:"rare_drop_granted"`
	RareDropSkill        string `json:"rare_drop_skill,omitempty"`
	WeaponUpgradeGranted bool   `json:"weapon_upgrade_granted"`
	LeveledUp            bool   `json:"leveled_up"`
	Turns                int    `json:"turns"`
}

// BattleStatusInfo 战斗中的体力
type BattleStatusInfo struct {
	Phase        string `json:"phase"`
	PlayerHP     int    `json:"player_hp"`
	PlayerMaxHP  int    `json:"player_max_hp"`
	MonsterHP    int    `json:"monster_hp"`
	MonsterMaxHP int    `json:"monster_max_hp"`
}

// EventInfo 战斗事件
type EventInfo struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message,omitempty"`
	Effect  string            `json:"effect,omitempty"`
	Actions []string          `json:"actions,omitempty"`
	Status  *BattleStatusInfo `json:"status,omitempty"`
	Result  *ResultInfo       `json:"result,omitempty"`
}

// MoveInfo 移动结果
type MoveInfo struct {
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Terrain  string        `json:"terrain"`
	Arrived  *LocationInfo `json:"arrived,omitempty"`
	Messages []string      `json:"messages,omitempty"`
	Events   []EventInfo   `json:"events,omitempty"`
}

// TownInfo 城镇服务结果
type TownInfo struct {
	Service string     `json:"service"`
	Cost    int        `json:"cost"`
	Gold    int        `json:"gold"`
	Item    *ItemInfo  `json:"item,omitempty"`
	Skill   *SkillInfo `json:"skill,omitempty"`
}

// MapViewInfo 以玩家为中心的地形
type MapViewInfo struct {
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Radius int        `json:"radius"`
	Tiles  [][]string `json:"tiles"`
}

// ConvertSkill 转换技能
func ConvertSkill(s *models.Skill) SkillInfo {
	return SkillInfo{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		School:          s.School,
		Category:        string(s.Category),
		Element:         string(s.Element),
		ElementLabel:    s.Element.Label(),
		Rarity:          string(s.Rarity),
		RarityLabel:     content.RarityLabel(s.Rarity),
		Power:           s.Power,
		Healing:         s.Healing,
		MPCost:          s.MPCost,
		Cooldown:        s.Cooldown,
		CurrentCooldown: s.CurrentCooldown,
		Trigger:         string(s.Trigger),
		Condition:       string(s.Condition),
		Fused:           s.Fused,
	}
}

// ConvertSkills 转换技能列表
func ConvertSkills(skills []models.Skill) []SkillInfo {
	out := make([]SkillInfo, len(skills))
	for i := range skills {
		out[i] = ConvertSkill(&skills[i])
	}
	return out
}

// ConvertMonster 转换怪物
func ConvertMonster(m *models.Monster) MonsterInfo {
	return MonsterInfo{
		ID:           m.ID,
		Name:         m.Name,
		Level:        m.Level,
		HP:           m.HP,
		MaxHP:        m.MaxHP,
		Atk:          m.Atk,
		Def:          m.Def,
		Spd:          m.Spd,
		Exp:          m.Exp,
		Gold:         m.Gold,
		Element:      string(m.Element),
		ElementLabel: m.Element.Label(),
		Shape:        m.Shape,
		IsBoss:       m.IsBoss,
		IsDungeon:    m.IsDungeonMonster,
	}
}

// ConvertQuest 转换任务
func ConvertQuest(q *models.Quest) QuestInfo {
	return QuestInfo{
		ID:                 q.ID,
		Title:              q.Title,
		Description:        q.Description,
		TargetMonsterLevel: q.TargetMonsterLevel,
		RequiredCount:      q.RequiredCount,
		CurrentCount:       q.CurrentCount,
		RewardGold:         q.RewardGold,
		RewardExp:          q.RewardExp,
		IsAccepted:         q.IsAccepted,
		IsCompleted:        q.IsCompleted,
	}
}

// ConvertQuests 转换任务列表
func ConvertQuests(quests []models.Quest) []QuestInfo {
	out := make([]QuestInfo, len(quests))
	for i := range quests {
		out[i] = ConvertQuest(&quests[i])
	}
	return out
}

// ConvertItem 转换道具
func ConvertItem(item *models.Item) ItemInfo {
	return ItemInfo{
		ID:      item.ID,
		Name:    item.Name,
		Slot:    string(item.Slot),
		Attack:  item.Bonus.Attack,
		Defense: item.Bonus.Defense,
		Agility: item.Bonus.Agility,
		Luck:    item.Bonus.Luck,
		Virtue:  item.Bonus.Virtue,
		Price:   item.Price,
	}
}

func convertStats(s models.Stats) StatsInfo {
	return StatsInfo{
		Attack:  s.Attack,
		Defense: s.Defense,
		Agility: s.Agility,
		Luck:    s.Luck,
		Virtue:  s.Virtue,
	}
}

// ConvertPlayer 转换玩家
func ConvertPlayer(p *models.Player) PlayerInfo {
	info := PlayerInfo{
		Name:         p.Name,
		Level:        p.Level,
		Exp:          p.Exp,
		NextLevelExp: p.NextLevelExp,
		HP:           p.HP,
		MaxHP:        p.MaxHP,
		Gold:         p.Gold,
		StatusPoints: p.StatusPoints,
		Stats:        convertStats(p.Stats),
		TotalStats:   convertStats(p.TotalStats()),
		DiscountRate: p.DiscountRate(),
		Skills:       ConvertSkills(p.Skills),
		FusedSkills:  ConvertSkills(p.FusedSkills),
		Equipment:    make(map[string]*ItemInfo, len(models.EquipSlots)),
		Inventory:    make([]ItemInfo, len(p.Inventory)),
		Respawn:      p.RespawnPoint.Name,
	}
	for _, slot := range models.EquipSlots {
		if item := p.Equipment.Get(slot); item != nil {
			converted := ConvertItem(item)
			info.Equipment[string(slot)] = &converted
		} else {
			info.Equipment[string(slot)] = nil
		}
	}
	for i := range p.Inventory {
		info.Inventory[i] = ConvertItem(&p.Inventory[i])
	}
	return info
}

// ConvertLocation 转换地点
func ConvertLocation(loc *world.Location) *LocationInfo {
	if loc == nil {
		return nil
	}
	return &LocationInfo{
		ID:       loc.ID,
		Name:     loc.Name,
		Kind:     string(loc.Kind),
		X:        loc.X,
		Y:        loc.Y,
		RecLevel: loc.RecLevel,
		Greeting: loc.Greeting,
		Final:    loc.Final,
	}
}

func convertActions(actions []battle.ActionKind) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}

// ConvertBattle 转换进行中的战斗，没有战斗时返回nil
func ConvertBattle(b *battle.Battle) *BattleInfo {
	if b == nil || b.Over() {
		return nil
	}
	return &BattleInfo{
		Phase:   string(b.Phase()),
		Monster: ConvertMonster(b.Monster()),
		Actions: convertActions(b.Actions()),
	}
}

// ConvertStatus 转换会话状态
func ConvertStatus(st session.Status, b *battle.Battle) StatusInfo {
	return StatusInfo{
		Player:           ConvertPlayer(st.Player),
		X:                st.X,
		Y:                st.Y,
		Terrain:          string(st.Terrain),
		Location:         ConvertLocation(st.Location),
		LastBossDefeated: st.LastBossDefeated,
		Battle:           ConvertBattle(b),
	}
}

// ConvertResult 转换战斗结果
func ConvertResult(r *battle.Result) *ResultInfo {
	if r == nil {
		return nil
	}
	return &ResultInfo{
		Outcome:              string(r.Outcome),
		RewardExp:            r.RewardExp,
		RewardGold:           r.RewardGold,
		RareDropGranted:      r.RareDropGranted,
		RareDropSkill:        r.RareDropSkill,
		WeaponUpgradeGranted: r.WeaponUpgradeGranted,
		LeveledUp:            r.LeveledUp,
		Turns:                r.Turns,
	}
}

// ConvertEvent 转换战斗事件
func ConvertEvent(e battle.Event) EventInfo {
	info := EventInfo{
		Kind:    string(e.Kind),
		Message: e.Message,
		Effect:  string(e.Effect),
		Actions: convertActions(e.Actions),
		Result:  ConvertResult(e.Result),
	}
	if e.Status != nil {
		info.Status = &BattleStatusInfo{
			Phase:        e.Status.Phase,
			PlayerHP:     e.Status.PlayerHP,
			PlayerMaxHP:  e.Status.PlayerMaxHP,
			MonsterHP:    e.Status.MonsterHP,
			MonsterMaxHP: e.Status.MonsterMaxHP,
		}
	}
	return info
}

// ConvertEvents 转换事件列表
func ConvertEvents(events []battle.Event) []EventInfo {
	out := make([]EventInfo, len(events))
	for i, e := range events {
		out[i] = ConvertEvent(e)
	}
	return out
}

// ConvertMove 转换移动结果
func ConvertMove(res session.MoveResult) MoveInfo {
	return MoveInfo{
		X:        res.X,
		Y:        res.Y,
		Terrain:  string(res.Terrain),
		Arrived:  ConvertLocation(res.Arrived),
		Messages: res.Messages,
		Events:   ConvertEvents(res.Events),
	}
}

// ConvertView 转换地图视野
func ConvertView(x, y, radius int, view [][]world.Terrain) MapViewInfo {
	tiles := make([][]string, len(view))
	for i, row := range view {
		tiles[i] = make([]string, len(row))
		for j, t := range row {
			tiles[i][j] = string(t)
		}
	}
	return MapViewInfo{X: x, Y: y, Radius: radius, Tiles: tiles}
}
