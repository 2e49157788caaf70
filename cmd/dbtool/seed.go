// seed.go

package main

import (
	"database/sql"
	"fmt"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
)

// seedCounts 写入的行数
type seedCounts struct {
	Monsters int
	Skills   int
	Quests   int
}

const (
	upsertMonsterSQL = `
		INSERT INTO monsters (id, name, level, hp, atk, def, spd, exp, gold, element, shape, is_boss, is_dungeon_monster)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, level = EXCLUDED.level, hp = EXCLUDED.hp, atk = EXCLUDED.atk,
			def = EXCLUDED.def, spd = EXCLUDED.spd, exp = EXCLUDED.exp, gold = EXCLUDED.gold,
			element = EXCLUDED.element, shape = EXCLUDED.shape,
			is_boss = EXCLUDED.is_boss, is_dungeon_monster = EXCLUDED.is_dungeon_monster`

	upsertSkillSQL = `
		INSERT INTO skills (id, name, description, school, category, element, rarity, power, healing,
		                    mp_cost, cooldown, passive_trigger, unlock_condition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description, school = EXCLUDED.school,
			category = EXCLUDED.category, element = EXCLUDED.element, rarity = EXCLUDED.rarity,
			power = EXCLUDED.power, healing = EXCLUDED.healing, mp_cost = EXCLUDED.mp_cost,
			cooldown = EXCLUDED.cooldown, passive_trigger = EXCLUDED.passive_trigger,
			unlock_condition = EXCLUDED.unlock_condition`

	upsertQuestSQL = `
		INSERT INTO quests (id, title, description, target_monster_level, required_count, reward_gold, reward_exp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description,
			target_monster_level = EXCLUDED.target_monster_level, required_count = EXCLUDED.required_count,
			reward_gold = EXCLUDED.reward_gold, reward_exp = EXCLUDED.reward_exp`
)

// seedCatalog 在一个事务里写入整个图鉴，可以重复执行
func seedCatalog(conn *sql.DB, c *content.Catalog) (seedCounts, error) {
	var counts seedCounts

	tx, err := conn.Begin()
	if err != nil {
		return counts, fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	monsterStmt, err := tx.Prepare(upsertMonsterSQL)
	if err != nil {
		return counts, fmt.Errorf("准备怪物语句失败: %w", err)
	}
	defer monsterStmt.Close()
	for _, m := range c.Monsters {
		if _, err := monsterStmt.Exec(m.ID, m.Name, m.Level, m.MaxHP, m.Atk, m.Def, m.Spd, m.Exp, m.Gold,
			string(m.Element), m.Shape, m.IsBoss, m.IsDungeonMonster); err != nil {
			return counts, fmt.Errorf("写入怪物 %d 失败: %w", m.ID, err)
		}
		counts.Monsters++
	}

	skillStmt, err := tx.Prepare(upsertSkillSQL)
	if err != nil {
		return counts, fmt.Errorf("准备技能语句失败: %w", err)
	}
	defer skillStmt.Close()
	for _, s := range c.Skills {
		if _, err := skillStmt.Exec(s.ID, s.Name, s.Description, s.School, string(s.Category), string(s.Element),
			string(s.Rarity), s.Power, s.Healing, s.MPCost, s.Cooldown, nullable(string(s.Trigger)),
			string(s.Condition)); err != nil {
			return counts, fmt.Errorf("写入技能 %s 失败: %w", s.ID, err)
		}
		counts.Skills++
	}

	questStmt, err := tx.Prepare(upsertQuestSQL)
	if err != nil {
		return counts, fmt.Errorf("准备任务语句失败: %w", err)
	}
	defer questStmt.Close()
	for _, q := range c.Quests {
		if _, err := questStmt.Exec(q.ID, q.Title, q.Description, q.TargetMonsterLevel, q.RequiredCount,
			q.RewardGold, q.RewardExp); err != nil {
			return counts, fmt.Errorf("写入任务 %d 失败: %w", q.ID, err)
		}
		counts.Quests++
	}

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("提交事务失败: %w", err)
	}
	return counts, nil
}

// nullable 空字符串写为NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
