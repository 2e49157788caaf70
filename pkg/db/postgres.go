package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

var (
	// DB 全局数据库连接实例
	DB *sql.DB
)

// InitPostgres 初始化PostgreSQL连接
func InitPostgres() error {
	dsn := config.GlobalConfig.Database.GetDSN()
	var err error

	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 测试连接
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("数据库Ping失败: %w", err)
	}

	logger.Log.Info("成功连接到PostgreSQL数据库")
	return nil
}

// EnsureSchema 创建存档和图鉴表
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if _, err := DB.Exec(CreateAllTablesSQL); err != nil {
		return fmt.Errorf("创建表失败: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func Close() {
	if DB != nil {
		DB.Close()
		logger.Log.Info("数据库连接已关闭")
	}
}
