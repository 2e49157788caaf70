// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/tui"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	saveDir := flag.String("saves", "data/saves", "存档目录")
	name := flag.String("name", "勇者", "角色名")
	flag.Parse()

	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig
	// 日志会打乱界面，只保留警告以上
	logger.Init("warn", cfg.Server.LogFormat)
	if f, err := os.OpenFile("play.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		logger.Log.SetOutput(f)
		defer f.Close()
	}

	store, err := storage.NewFileStore(*saveDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	sess, err := session.Load(ctx, store, "local", *name, session.NewDeps(cfg.Game))
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(sess, store, nil))
	if _, err := p.Run(); err != nil {
		fmt.Printf("运行界面失败: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Save(ctx, store, nil); err != nil {
		fmt.Fprintf(os.Stderr, "保存失败: %v\n", err)
	}
}
