// item.go

package models

// EquipSlot 装备栏位
type EquipSlot string

const (
	SlotWeapon EquipSlot = "weapon"
	SlotHead   EquipSlot = "head"
	SlotChest  EquipSlot = "chest"
	SlotLegs   EquipSlot = "legs"
	SlotFeet   EquipSlot = "feet"
	SlotWaist  EquipSlot = "waist"
)

// EquipSlots 全部栏位
var EquipSlots = []EquipSlot{SlotWeapon, SlotHead, SlotChest, SlotLegs, SlotFeet, SlotWaist}

// StatBonus 装备附加属性
type StatBonus struct {
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`
	Agility int `json:"agility,omitempty"`
	Luck    int `json:"luck,omitempty"`
	Virtue  int `json:"virtue,omitempty"`
}

// Item 装备道具
type Item struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Slot  EquipSlot `json:"slot"`
	Bonus StatBonus `json:"bonus"`
	Price int       `json:"price,omitempty"`
}

// Equipment 装备栏，空位为nil
type Equipment struct {
	Weapon *Item `json:"weapon"`
	Head   *Item `json:"head"`
	Chest  *Item `json:"chest"`
	Legs   *Item `json:"legs"`
	Feet   *Item `json:"feet"`
	Waist  *Item `json:"waist"`
}

// slotRef 返回栏位指针，未知栏位返回nil
func (e *Equipment) slotRef(slot EquipSlot) **Item {
	switch slot {
	case SlotWeapon:
		return &e.Weapon
	case SlotHead:
		return &e.Head
	case SlotChest:
		return &e.Chest
	case SlotLegs:
		return &e.Legs
	case SlotFeet:
		return &e.Feet
	case SlotWaist:
		return &e.Waist
	}
	return nil
}

// Get 读取栏位
func (e *Equipment) Get(slot EquipSlot) *Item {
	if ref := e.slotRef(slot); ref != nil {
		return *ref
	}
	return nil
}

// Set 写入栏位，返回原来的装备
func (e *Equipment) Set(slot EquipSlot, item *Item) (*Item, bool) {
	ref := e.slotRef(slot)
	if ref == nil {
		return nil, false
	}
	old := *ref
	*ref = item
	return old, true
}

// Bonus 所有装备的附加属性合计
func (e *Equipment) Bonus() StatBonus {
	var total StatBonus
	for _, slot := range EquipSlots {
		item := e.Get(slot)
		if item == nil {
			continue
		}
		total.Attack += item.Bonus.Attack
		total.Defense += item.Bonus.Defense
		total.Agility += item.Bonus.Agility
		total.Luck += item.Bonus.Luck
		total.Virtue += item.Bonus.Virtue
	}
	return total
}
