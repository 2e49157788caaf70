// monster.go

package models

// Monster 怪物模板
// 图鉴中的条目只读，战斗时使用 Clone 得到的实例
type Monster struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Level   int     `json:"level"`
	HP      int     `json:"hp"`
	MaxHP   int     `json:"max_hp"`
	Atk     int     `json:"atk"`
	Def     int     `json:"def"`
	Spd     int     `json:"spd"`
	Exp     int     `json:"exp"`
	Gold    int     `json:"gold"`
	Element Element `json:"element"`
	Shape   string  `json:"shape"`

	IsBoss           bool `json:"is_boss"`
	IsDungeonMonster bool `json:"is_dungeon_monster"`
}

// Clone 复制一个战斗实例
// Monster 只包含值类型字段，结构体复制即深拷贝
func (m Monster) Clone() *Monster {
	c := m
	return &c
}

// IsDead 是否已被击倒
func (m *Monster) IsDead() bool {
	return m.HP <= 0
}

// TakeDamage 扣除HP，返回是否倒下
func (m *Monster) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	m.HP -= amount
	if m.HP < 0 {
		m.HP = 0
	}
	return m.HP == 0
}
