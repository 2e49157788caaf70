package game

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// ErrServerFull 在线会话已满
var ErrServerFull = errors.New("服务器已满")

// GameServer 游戏服务器，每个连接承载一个会话
type GameServer struct {
	config  *config.Config
	deps    session.Deps
	store   storage.SaveStore
	board   storage.Leaderboard
	tokens  *auth.Issuer
	idleTTL time.Duration

	clients      map[string]*Client
	clientsMutex sync.RWMutex
	httpServer   *http.Server

	// 关闭信号
	shutdown  chan struct{}
	isRunning bool
	log       *logrus.Entry
}

// NewGameServer 创建新的游戏服务器
func NewGameServer(cfg *config.Config, deps session.Deps, store storage.SaveStore, board storage.Leaderboard, tokens *auth.Issuer) *GameServer {
	return &GameServer{
		config:   cfg,
		deps:     deps,
		store:    store,
		board:    board,
		tokens:   tokens,
		idleTTL:  10 * time.Minute,
		clients:  make(map[string]*Client),
		shutdown: make(chan struct{}),
		log:      logger.Component("game"),
	}
}

// Start 启动游戏服务器
func (s *GameServer) Start() error {
	if s.isRunning {
		return fmt.Errorf("服务器已经在运行")
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.GamePort),
		Handler: s.Handler(),
	}

	go func() {
		s.log.WithField("port", s.config.Server.GamePort).Info("游戏服务器启动")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Fatal("HTTP服务器错误")
		}
	}()

	go s.sessionManager()

	s.isRunning = true
	return nil
}

// Stop 保存所有会话并停止服务器
func (s *GameServer) Stop() error {
	if !s.isRunning {
		return nil
	}
	close(s.shutdown)

	s.clientsMutex.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, c := range clients {
		s.closeClient(ctx, c)
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器关闭错误: %w", err)
	}

	s.isRunning = false
	s.log.Info("游戏服务器已停止")
	return nil
}

// Handler 游戏服务的HTTP处理器
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket 连接端点
	mux.HandleFunc("/ws", s.handleWSConnection)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

// sessionManager 定期自动存档并清理闲置连接
func (s *GameServer) sessionManager() {
	interval := s.config.Server.SaveInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.autosave()
		case <-s.shutdown:
			return
		}
	}
}

// autosave 保存所有在线会话，关闭闲置过久的连接
func (s *GameServer) autosave() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, c := range s.ListClients() {
		if c.ShouldCleanup(s.idleTTL) {
			s.log.WithField("player", c.PlayerID).Info("清理闲置连接")
			s.closeClient(ctx, c)
			continue
		}
		if err := c.Session.Save(ctx, s.store, s.board); err != nil {
			s.log.WithError(err).WithField("player", c.PlayerID).Warn("自动存档失败")
		}
	}
}

// register 登记新连接，同一玩家的旧连接会被顶掉
func (s *GameServer) register(c *Client) error {
	s.clientsMutex.Lock()
	var replaced *Client
	for _, existing := range s.clients {
		if existing.PlayerID == c.PlayerID {
			replaced = existing
			break
		}
	}
	if replaced == nil && s.config.Server.MaxSessions > 0 && len(s.clients) >= s.config.Server.MaxSessions {
		s.clientsMutex.Unlock()
		return ErrServerFull
	}
	s.clients[c.ID] = c
	s.clientsMutex.Unlock()

	if replaced != nil {
		s.log.WithField("player", c.PlayerID).Info("同一玩家重复登录，关闭旧连接")
		s.closeClient(context.Background(), replaced)
	}
	return nil
}

// closeClient 存档并移除连接，可以重复调用
func (s *GameServer) closeClient(ctx context.Context, c *Client) {
	s.clientsMutex.Lock()
	if _, ok := s.clients[c.ID]; !ok {
		s.clientsMutex.Unlock()
		return
	}
	delete(s.clients, c.ID)
	s.clientsMutex.Unlock()

	if err := c.Session.Save(ctx, s.store, s.board); err != nil {
		s.log.WithError(err).WithField("player", c.PlayerID).Warn("断开时存档失败")
	}
	c.Close()
	s.log.WithField("player", c.PlayerID).Info("玩家已断开连接")
}

// GetClient 按连接ID获取
func (s *GameServer) GetClient(id string) (*Client, bool) {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	c, ok := s.clients[id]
	return c, ok
}

// ListClients 列出所有在线连接
func (s *GameServer) ListClients() []*Client {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

// OnlineCount 在线人数
func (s *GameServer) OnlineCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}
