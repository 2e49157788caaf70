// shop.go

package content

import "github.com/kikennmodsett-of-git/kikennmodsett/internal/models"

// ShopStock 城镇商店的固定货架
func ShopStock() []models.Item {
	return []models.Item{
		{ID: "weapon_iron", Name: "铁剑", Slot: models.SlotWeapon, Bonus: models.StatBonus{Attack: 6}, Price: 150},
		{ID: "weapon_legend", Name: "传说之剑", Slot: models.SlotWeapon, Bonus: models.StatBonus{Attack: 20}, Price: 500},
		{ID: "head_leather", Name: "皮帽", Slot: models.SlotHead, Bonus: models.StatBonus{Defense: 2}, Price: 120},
		{ID: "chest_chain", Name: "锁子甲", Slot: models.SlotChest, Bonus: models.StatBonus{Defense: 5}, Price: 300},
		{ID: "legs_guard", Name: "护腿", Slot: models.SlotLegs, Bonus: models.StatBonus{Defense: 3}, Price: 180},
		{ID: "feet_gale", Name: "疾风靴", Slot: models.SlotFeet, Bonus: models.StatBonus{Agility: 4}, Price: 200},
		{ID: "waist_charm", Name: "招福腰带", Slot: models.SlotWaist, Bonus: models.StatBonus{Luck: 5, Virtue: 3}, Price: 250},
	}
}
