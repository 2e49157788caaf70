// config.go

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服务器配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig 服务器基本配置
type ServerConfig struct {
	GamePort     int           `mapstructure:"game_port"`
	GatewayPort  int           `mapstructure:"gateway_port"`
	Debug        bool          `mapstructure:"debug"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
	MaxSessions  int           `mapstructure:"max_sessions"`
	SaveInterval time.Duration `mapstructure:"save_interval"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 存档存储配置
type StorageConfig struct {
	// Driver 可选 memory, file, redis, postgres
	Driver    string `mapstructure:"driver"`
	Dir       string `mapstructure:"dir"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// AuthConfig 令牌配置
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

// GameConfig 游戏数值配置
type GameConfig struct {
	Seed                int64   `mapstructure:"seed"`
	EncounterRate       float64 `mapstructure:"encounter_rate"`
	ConfirmLevelGap     int     `mapstructure:"confirm_level_gap"`
	RareDropBase        float64 `mapstructure:"rare_drop_base"`
	RareDropLuckFactor  float64 `mapstructure:"rare_drop_luck_factor"`
	WeaponUpgradeChance float64 `mapstructure:"weapon_upgrade_chance"`
	WeaponUpgradeBonus  int     `mapstructure:"weapon_upgrade_bonus"`
	BandBelow           int     `mapstructure:"band_below"`
	BandAbove           int     `mapstructure:"band_above"`
	DungeonBandRadius   int     `mapstructure:"dungeon_band_radius"`
	InnCost             int     `mapstructure:"inn_cost"`
	FusionCost          int     `mapstructure:"fusion_cost"`
	ForgeBaseCost       int     `mapstructure:"forge_base_cost"`
	QuestLevelTolerance int     `mapstructure:"quest_level_tolerance"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig = Default()
)

// Default 返回内置默认配置
func Default() Config {
	return Config{
		Server: ServerConfig{
			GamePort:     8081,
			GatewayPort:  8080,
			LogLevel:     "info",
			LogFormat:    "text",
			MaxSessions:  1000,
			SaveInterval: time.Minute,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "pixel_adventure",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Storage: StorageConfig{
			Driver:    "memory",
			Dir:       "data/saves",
			KeyPrefix: "save:",
		},
		Auth: AuthConfig{
			JWTSecret: "change-me",
			TokenTTL:  24 * time.Hour,
			Issuer:    "pixel-adventure",
		},
		Game: GameConfig{
			EncounterRate:       0.08,
			ConfirmLevelGap:     10,
			RareDropBase:        0.05,
			RareDropLuckFactor:  0.001,
			WeaponUpgradeChance: 0.1,
			WeaponUpgradeBonus:  3,
			BandBelow:           5,
			BandAbove:           10,
			DungeonBandRadius:   5,
			InnCost:             100,
			FusionCost:          300,
			ForgeBaseCost:       200,
			QuestLevelTolerance: 3,
		},
	}
}

// setDefaults 把默认值注册到viper，保证配置文件缺省的键也能被环境变量覆盖
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.game_port", cfg.Server.GamePort)
	v.SetDefault("server.gateway_port", cfg.Server.GatewayPort)
	v.SetDefault("server.debug", cfg.Server.Debug)
	v.SetDefault("server.log_level", cfg.Server.LogLevel)
	v.SetDefault("server.log_format", cfg.Server.LogFormat)
	v.SetDefault("server.max_sessions", cfg.Server.MaxSessions)
	v.SetDefault("server.save_interval", cfg.Server.SaveInterval)

	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.password", cfg.Database.Password)
	v.SetDefault("database.dbname", cfg.Database.DBName)
	v.SetDefault("database.sslmode", cfg.Database.SSLMode)

	v.SetDefault("redis.host", cfg.Redis.Host)
	v.SetDefault("redis.port", cfg.Redis.Port)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)

	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.key_prefix", cfg.Storage.KeyPrefix)

	v.SetDefault("auth.jwt_secret", cfg.Auth.JWTSecret)
	v.SetDefault("auth.token_ttl", cfg.Auth.TokenTTL)
	v.SetDefault("auth.issuer", cfg.Auth.Issuer)

	v.SetDefault("game.seed", cfg.Game.Seed)
	v.SetDefault("game.encounter_rate", cfg.Game.EncounterRate)
	v.SetDefault("game.confirm_level_gap", cfg.Game.ConfirmLevelGap)
	v.SetDefault("game.rare_drop_base", cfg.Game.RareDropBase)
	v.SetDefault("game.rare_drop_luck_factor", cfg.Game.RareDropLuckFactor)
	v.SetDefault("game.weapon_upgrade_chance", cfg.Game.WeaponUpgradeChance)
	v.SetDefault("game.weapon_upgrade_bonus", cfg.Game.WeaponUpgradeBonus)
	v.SetDefault("game.band_below", cfg.Game.BandBelow)
	v.SetDefault("game.band_above", cfg.Game.BandAbove)
	v.SetDefault("game.dungeon_band_radius", cfg.Game.DungeonBandRadius)
	v.SetDefault("game.inn_cost", cfg.Game.InnCost)
	v.SetDefault("game.fusion_cost", cfg.Game.FusionCost)
	v.SetDefault("game.forge_base_cost", cfg.Game.ForgeBaseCost)
	v.SetDefault("game.quest_level_tolerance", cfg.Game.QuestLevelTolerance)
}

// LoadConfig 从文件加载配置
// configPath 为空时只使用默认值和环境变量
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	GlobalConfig = cfg
	return nil
}

// Load 读取配置但不修改全局实例
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("PA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("无法读取配置文件: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("无法解析配置文件: %w", err)
	}

	return cfg, nil
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
