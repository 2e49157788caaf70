// main.go

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/game"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/gateway"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/db"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// service 可以启动和停止的服务
type service interface {
	Start() error
	Stop() error
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	serviceType := flag.String("service", "all", "服务类型 (game, gateway, all)")
	flag.Parse()

	if err := config.LoadConfig(*configPath); err != nil {
		logger.Log.Fatalf("加载配置失败: %v", err)
	}
	cfg := config.GlobalConfig
	logger.Init(cfg.Server.LogLevel, cfg.Server.LogFormat)

	// 只有用到的存储才建立连接
	switch cfg.Storage.Driver {
	case "postgres":
		if err := db.InitPostgres(); err != nil {
			logger.Log.Fatalf("初始化PostgreSQL失败: %v", err)
		}
		defer db.Close()
		if err := db.EnsureSchema(); err != nil {
			logger.Log.Fatalf("初始化数据库表失败: %v", err)
		}
	case "redis":
		if err := db.InitRedis(); err != nil {
			logger.Log.Fatalf("初始化Redis失败: %v", err)
		}
		defer db.CloseRedis()
	}

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		logger.Log.Fatalf("创建存档存储失败: %v", err)
	}
	board := storage.NewLeaderboard(cfg.Storage)
	if n, err := storage.Warm(context.Background(), store, board, 1000); err != nil {
		logger.Log.WithError(err).Warn("加载排行榜失败")
	} else if n > 0 {
		logger.Log.WithField("players", n).Info("排行榜已加载")
	}
	tokens := auth.NewIssuer(cfg.Auth)
	deps := session.NewDeps(cfg.Game)

	var services []service
	start := func(name string, svc service) {
		if err := svc.Start(); err != nil {
			logger.Log.Fatalf("启动%s失败: %v", name, err)
		}
		services = append(services, svc)
	}

	switch *serviceType {
	case "game":
		start("游戏服务器", game.NewGameServer(&cfg, deps, store, board, tokens))
	case "gateway":
		start("网关服务", gateway.NewGateway(&cfg, deps.Catalog, tokens, store, board))
	case "all":
		start("游戏服务器", game.NewGameServer(&cfg, deps, store, board, tokens))
		start("网关服务", gateway.NewGateway(&cfg, deps.Catalog, tokens, store, board))
	default:
		logger.Log.Fatalf("未知的服务类型: %s", *serviceType)
	}
	logger.Log.WithField("service", *serviceType).Info("服务已启动")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Log.Info("接收到关闭信号，正在关闭服务器...")
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(); err != nil {
			logger.Log.WithError(err).Warn("停止服务失败")
		}
	}
	logger.Log.Info("服务器已安全关闭")
}
