// main.go

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/db"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	action := flag.String("action", "help", "操作类型: reset, init, seed, setup, help")
	flag.Parse()

	if *action == "help" {
		showHelp()
		return
	}

	if err := config.LoadConfig(*configPath); err != nil {
		logger.Log.Fatalf("加载配置失败: %v", err)
	}
	logger.Init(config.GlobalConfig.Server.LogLevel, config.GlobalConfig.Server.LogFormat)

	if err := db.InitPostgres(); err != nil {
		logger.Log.Fatalf("初始化PostgreSQL失败: %v", err)
	}
	defer db.Close()

	var err error
	switch *action {
	case "reset":
		err = resetDatabase()
	case "init":
		err = db.EnsureSchema()
	case "seed":
		err = seed()
	case "setup":
		err = setup()
	default:
		err = fmt.Errorf("未知操作: %s", *action)
	}
	if err != nil {
		logger.Log.Fatal(err)
	}
	logger.Log.WithField("action", *action).Info("完成")
}

// showHelp 显示帮助信息
func showHelp() {
	fmt.Fprintln(os.Stderr, `数据库管理工具

用法:
  go run ./cmd/dbtool -action=<操作> [-config=<配置文件>]

操作:
  reset  删除所有表和数据
  init   创建存档和图鉴表
  seed   把生成的图鉴写入图鉴表
  setup  依次执行 reset, init, seed
  help   显示此帮助信息`)
}

// resetDatabase 删除所有表
func resetDatabase() error {
	logger.Log.Warn("正在重置数据库，这将删除所有表和数据")
	if _, err := db.DB.Exec(db.DropAllTablesSQL); err != nil {
		return fmt.Errorf("重置数据库失败: %w", err)
	}
	return nil
}

func seed() error {
	counts, err := seedCatalog(db.DB, content.NewCatalog())
	if err != nil {
		return err
	}
	logger.Log.WithField("monsters", counts.Monsters).
		WithField("skills", counts.Skills).
		WithField("quests", counts.Quests).
		Info("图鉴写入完成")
	return nil
}

func setup() error {
	if err := resetDatabase(); err != nil {
		return err
	}
	if err := db.EnsureSchema(); err != nil {
		return err
	}
	return seed()
}
