// player.go

package models

import "math"

// 成长规则
const (
	MaxLevel        = 9999
	StartExpToLevel = 100
	LevelExpGrowth  = 1.5
	PointsPerLevel  = 5
	HPPerLevel      = 20
	HPPerPoint      = 5
	MaxDiscountRate = 0.9
)

const (
	// maxDiscountPerMille 每点人德折扣千分之一，上限九成
	maxDiscountPerMille = 900
	// MaxNextLevelExp 升级所需经验的上限
	MaxNextLevelExp = math.MaxInt / 2
)

// 可分配的属性名
const (
	StatAttack  = "attack"
	StatDefense = "defense"
	StatAgility = "agility"
	StatLuck    = "luck"
	StatVirtue  = "virtue"
	StatHP      = "hp"
)

// Stats 可分配属性
type Stats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Agility int `json:"agility"`
	Luck    int `json:"luck"`
	Virtue  int `json:"virtue"`
	// HPBonus 分配到体力上的点数
	HPBonus int `json:"hp_bonus"`
}

// RespawnPoint 复活地点
type RespawnPoint struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
}

// Player 玩家模型
type Player struct {
	Name         string `json:"name"`
	Level        int    `json:"level"`
	Exp          int    `json:"exp"`
	NextLevelExp int    `json:"next_level_exp"`
	HP           int    `json:"hp"`
	MaxHP        int    `json:"max_hp"`
	Gold         int    `json:"gold"`
	StatusPoints int    `json:"status_points"`
	Stats        Stats  `json:"stats"`

	Skills      []Skill `json:"skills"`
	FusedSkills []Skill `json:"fused_skills"`

	Equipment    Equipment    `json:"equipment"`
	Inventory    []Item       `json:"inventory"`
	RespawnPoint RespawnPoint `json:"respawn_point"`
}

// StarterWeapon 初始武器
func StarterWeapon() *Item {
	return &Item{
		ID:    "weapon_stick",
		Name:  "木棒",
		Slot:  SlotWeapon,
		Bonus: StatBonus{Attack: 2},
	}
}

// NewPlayer 创建初始玩家
func NewPlayer(name string) *Player {
	return &Player{
		Name:         name,
		Level:        1,
		NextLevelExp: StartExpToLevel,
		HP:           100,
		MaxHP:        100,
		Gold:         500,
		Stats: Stats{
			Attack:  10,
			Defense: 10,
			Agility: 10,
			Luck:    10,
			Virtue:  10,
		},
		Skills:      []Skill{},
		FusedSkills: []Skill{},
		Equipment:   Equipment{Weapon: StarterWeapon()},
		Inventory:   []Item{},
		RespawnPoint: RespawnPoint{
			X:    10,
			Y:    10,
			Name: "起始之镇",
		},
	}
}

// GainExp 获得经验，可能连续升级
// 返回是否至少升了一级
func (p *Player) GainExp(amount int) bool {
	return p.gainExp(amount) > 0
}

func (p *Player) gainExp(amount int) int {
	if amount > 0 {
		if p.Exp > math.MaxInt-amount {
			p.Exp = math.MaxInt
		} else {
			p.Exp += amount
		}
	}
	levels := 0
	for p.Exp >= p.NextLevelExp && p.Level < MaxLevel {
		p.levelUp()
		levels++
	}
	return levels
}

func (p *Player) levelUp() {
	p.Level++
	p.StatusPoints += PointsPerLevel
	p.Exp -= p.NextLevelExp
	p.NextLevelExp = growExp(p.NextLevelExp)
	p.MaxHP += HPPerLevel
	p.HP = p.MaxHP
}

// growExp 下一级所需经验，超过上限时饱和
func growExp(cur int) int {
	next := math.Floor(float64(cur) * LevelExpGrowth)
	if next >= MaxNextLevelExp {
		return MaxNextLevelExp
	}
	return int(next)
}

// AllocatePoint 分配一点属性
func (p *Player) AllocatePoint(stat string) bool {
	if p.StatusPoints <= 0 {
		return false
	}

	switch stat {
	case StatAttack:
		p.Stats.Attack++
	case StatDefense:
		p.Stats.Defense++
	case StatAgility:
		p.Stats.Agility++
	case StatLuck:
		p.Stats.Luck++
	case StatVirtue:
		p.Stats.Virtue++
	case StatHP:
		p.Stats.HPBonus++
		p.MaxHP += HPPerPoint
		p.HP += HPPerPoint
	default:
		return false
	}

	p.StatusPoints--
	return true
}

// TotalStats 基础属性加上装备加成
func (p *Player) TotalStats() Stats {
	bonus := p.Equipment.Bonus()
	total := p.Stats
	total.Attack += bonus.Attack
	total.Defense += bonus.Defense
	total.Agility += bonus.Agility
	total.Luck += bonus.Luck
	total.Virtue += bonus.Virtue
	return total
}

// DiscountRate 人德带来的折扣率
func (p *Player) DiscountRate() float64 {
	return float64(p.discountPerMille()) / 1000
}

func (p *Player) discountPerMille() int {
	return min(maxDiscountPerMille, max(0, p.TotalStats().Virtue))
}

// AdjustedCost 折扣后的费用，向下取整
func (p *Player) AdjustedCost(base int) int {
	return base * (1000 - p.discountPerMille()) / 1000
}

// SpendGold 扣除金币，不足时不做任何修改
func (p *Player) SpendGold(cost int) bool {
	if cost < 0 || p.Gold < cost {
		return false
	}
	p.Gold -= cost
	return true
}

// LearnSkill 习得技能，已习得时返回false
// 融合消耗掉的技能可以再次习得
func (p *Player) LearnSkill(skill Skill) bool {
	for i := range p.Skills {
		if p.Skills[i].ID == skill.ID {
			return false
		}
	}
	skill.CurrentCooldown = 0
	p.Skills = append(p.Skills, skill)
	return true
}

// AddFusedSkill 加入融合技能
func (p *Player) AddFusedSkill(skill Skill) {
	p.FusedSkills = append(p.FusedSkills, skill)
}

// AllSkills 两个技能池中全部技能的指针
func (p *Player) AllSkills() []*Skill {
	all := make([]*Skill, 0, len(p.Skills)+len(p.FusedSkills))
	for i := range p.Skills {
		all = append(all, &p.Skills[i])
	}
	for i := range p.FusedSkills {
		all = append(all, &p.FusedSkills[i])
	}
	return all
}

// FindSkill 按ID查找技能
func (p *Player) FindSkill(id string) *Skill {
	for _, s := range p.AllSkills() {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// RemoveSkill 从两个技能池中移除
func (p *Player) RemoveSkill(id string) bool {
	for i := range p.Skills {
		if p.Skills[i].ID == id {
			p.Skills = append(p.Skills[:i], p.Skills[i+1:]...)
			return true
		}
	}
	for i := range p.FusedSkills {
		if p.FusedSkills[i].ID == id {
			p.FusedSkills = append(p.FusedSkills[:i], p.FusedSkills[i+1:]...)
			return true
		}
	}
	return false
}

// TakeDamage 受到伤害，返回是否倒下
func (p *Player) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
	return p.HP == 0
}

// Heal 回复体力，不超过上限，返回实际回复量
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.HP
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	return p.HP - before
}

// Restore 完全回复
func (p *Player) Restore() {
	p.HP = p.MaxHP
}

// IsDead 是否倒下
func (p *Player) IsDead() bool {
	return p.HP <= 0
}

// Equip 从背包装备一件道具，原装备放回背包
func (p *Player) Equip(slot EquipSlot, inventoryIndex int) bool {
	if inventoryIndex < 0 || inventoryIndex >= len(p.Inventory) {
		return false
	}
	item := p.Inventory[inventoryIndex]
	if item.Slot != slot {
		return false
	}

	old, ok := p.Equipment.Set(slot, &item)
	if !ok {
		return false
	}
	p.Inventory = append(p.Inventory[:inventoryIndex], p.Inventory[inventoryIndex+1:]...)
	if old != nil {
		p.Inventory = append(p.Inventory, *old)
	}
	return true
}

// Unequip 卸下装备放回背包
func (p *Player) Unequip(slot EquipSlot) bool {
	old, ok := p.Equipment.Set(slot, nil)
	if !ok || old == nil {
		return false
	}
	p.Inventory = append(p.Inventory, *old)
	return true
}

// Normalize 修正读档后可能违反的约束
func (p *Player) Normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Level > MaxLevel {
		p.Level = MaxLevel
	}
	if p.NextLevelExp < 1 {
		p.NextLevelExp = StartExpToLevel
	}
	if p.NextLevelExp > MaxNextLevelExp {
		p.NextLevelExp = MaxNextLevelExp
	}
	if p.Exp < 0 {
		p.Exp = 0
	}
	if p.StatusPoints < 0 {
		p.StatusPoints = 0
	}
	if p.MaxHP < 1 {
		p.MaxHP = 1
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.HP < 0 {
		p.HP = 0
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.FusedSkills == nil {
		p.FusedSkills = []Skill{}
	}
	if p.Inventory == nil {
		p.Inventory = []Item{}
	}
}

// Clone 深拷贝，用于存档和对外展示
func (p *Player) Clone() *Player {
	c := *p
	c.Skills = append([]Skill{}, p.Skills...)
	c.FusedSkills = append([]Skill{}, p.FusedSkills...)
	c.Inventory = append([]Item{}, p.Inventory...)
	for _, slot := range EquipSlots {
		if item := p.Equipment.Get(slot); item != nil {
			copied := *item
			c.Equipment.Set(slot, &copied)
		}
	}
	return &c
}
