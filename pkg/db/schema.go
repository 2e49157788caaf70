// schema.go

package db

// 统一的数据库表结构定义

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 玩家存档表，快照以二进制保存
CREATE TABLE IF NOT EXISTS player_saves (
    player_id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    level INT NOT NULL DEFAULT 1,
    gold BIGINT NOT NULL DEFAULT 0,
    snapshot BYTEA NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

-- 怪物图鉴表
CREATE TABLE IF NOT EXISTS monsters (
    id INT PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    level INT NOT NULL,
    hp INT NOT NULL,
    atk INT NOT NULL,
    def INT NOT NULL,
    spd INT NOT NULL,
    exp INT NOT NULL,
    gold INT NOT NULL,
    element VARCHAR(16) NOT NULL,
    shape VARCHAR(16) NOT NULL,
    is_boss BOOLEAN DEFAULT false,
    is_dungeon_monster BOOLEAN DEFAULT false
);

-- 技能图鉴表
CREATE TABLE IF NOT EXISTS skills (
    id VARCHAR(32) PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    description TEXT,
    school VARCHAR(16) NOT NULL,
    category VARCHAR(16) NOT NULL,
    element VARCHAR(16) NOT NULL,
    rarity VARCHAR(16) NOT NULL,
    power INT NOT NULL,
    healing BOOLEAN DEFAULT false,
    mp_cost INT DEFAULT 0,
    cooldown INT DEFAULT 0,
    passive_trigger VARCHAR(32),
    unlock_condition VARCHAR(16)
);

-- 任务图鉴表
CREATE TABLE IF NOT EXISTS quests (
    id INT PRIMARY KEY,
    title VARCHAR(100) NOT NULL,
    description TEXT,
    target_monster_level INT NOT NULL,
    required_count INT NOT NULL,
    reward_gold INT NOT NULL,
    reward_exp INT NOT NULL
);

-- 索引
CREATE INDEX IF NOT EXISTS idx_player_saves_level ON player_saves(level DESC);
CREATE INDEX IF NOT EXISTS idx_monsters_level ON monsters(level);
`

// DropAllTablesSQL 删除所有表的SQL语句
const DropAllTablesSQL = `
DROP TABLE IF EXISTS player_saves CASCADE;
DROP TABLE IF EXISTS monsters CASCADE;
DROP TABLE IF EXISTS skills CASCADE;
DROP TABLE IF EXISTS quests CASCADE;
`
