package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// 分页参数
const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Gateway HTTP网关：游客认证、图鉴、排行榜、存档摘要，并把 /ws 转发到游戏服务
type Gateway struct {
	config  *config.Config
	catalog *content.Catalog
	tokens  *auth.Issuer
	store   storage.SaveStore
	board   storage.Leaderboard

	gameURL     *url.URL
	gameHealthy bool
	mutex       sync.RWMutex

	httpServer *http.Server
	isRunning  bool
	shutdown   chan struct{}
	log        *logrus.Entry
}

// NewGateway 创建新的网关
func NewGateway(cfg *config.Config, catalog *content.Catalog, tokens *auth.Issuer, store storage.SaveStore, board storage.Leaderboard) *Gateway {
	gameURL, _ := url.Parse(fmt.Sprintf("http://localhost:%d", cfg.Server.GamePort))
	return &Gateway{
		config:   cfg,
		catalog:  catalog,
		tokens:   tokens,
		store:    store,
		board:    board,
		gameURL:  gameURL,
		shutdown: make(chan struct{}),
		log:      logger.Component("gateway"),
	}
}

// Start 启动网关
func (g *Gateway) Start() error {
	if g.isRunning {
		return fmt.Errorf("网关已经在运行")
	}

	g.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", g.config.Server.GatewayPort),
		Handler: g.Handler(),
	}

	go g.healthCheck()

	go func() {
		g.log.WithField("port", g.config.Server.GatewayPort).Info("API网关启动")
		if err := g.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			g.log.WithError(err).Fatal("HTTP服务器错误")
		}
	}()

	g.isRunning = true
	return nil
}

// Stop 停止网关
func (g *Gateway) Stop() error {
	if !g.isRunning {
		return nil
	}
	close(g.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器关闭错误: %w", err)
	}

	g.isRunning = false
	g.log.Info("API网关已停止")
	return nil
}

// Handler 创建HTTP处理器
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	NewAuthHandler(g.tokens).RegisterHandlers(mux)
	NewCatalogHandler(g.catalog).RegisterHandlers(mux)
	NewStatsHandler(g.board, g.tokens).RegisterHandlers(mux)
	NewProfileHandler(g.store, g.tokens).RegisterHandlers(mux)

	// 游戏连接转发到游戏服务
	mux.HandleFunc("/ws", g.handleGameRequest)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		g.mutex.RLock()
		healthy := g.gameHealthy
		g.mutex.RUnlock()
		sendSuccess(w, "OK", map[string]bool{"game": healthy})
	})

	return g.applyMiddleware(mux)
}

// applyMiddleware 应用中间件
func (g *Gateway) applyMiddleware(handler http.Handler) http.Handler {
	rateLimiter := NewRateLimiter(120)
	cacheMiddleware := NewCacheMiddleware()

	// 从内到外
	handler = cacheMiddleware.Middleware(handler)
	handler = rateLimiter.Middleware(handler)
	handler = NewCORSMiddleware().Middleware(handler)
	handler = NewSecurityMiddleware().Middleware(handler)
	handler = NewLoggingMiddleware(g.log).Middleware(handler)
	return handler
}

// handleGameRequest 校验令牌后转发到游戏服务
func (g *Gateway) handleGameRequest(w http.ResponseWriter, r *http.Request) {
	if _, err := g.tokens.Parse(requestToken(r)); err != nil {
		sendError(w, "未授权", http.StatusUnauthorized)
		return
	}

	proxy := httputil.NewSingleHostReverseProxy(g.gameURL)
	r.Header.Set("X-Forwarded-Host", r.Host)
	r.Host = g.gameURL.Host
	proxy.ServeHTTP(w, r)
}

// healthCheck 定期检查游戏服务
func (g *Gateway) healthCheck() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	g.checkGameHealth()
	for {
		select {
		case <-ticker.C:
			g.checkGameHealth()
		case <-g.shutdown:
			return
		}
	}
}

// checkGameHealth 检查游戏服务健康状态
func (g *Gateway) checkGameHealth() {
	healthURL := *g.gameURL
	healthURL.Path = "/health"

	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(healthURL.String())
	healthy := err == nil && resp.StatusCode == http.StatusOK
	if resp != nil {
		resp.Body.Close()
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()
	if healthy != g.gameHealthy {
		g.log.WithField("healthy", healthy).Info("游戏服务健康状态变化")
	}
	g.gameHealthy = healthy
}

// APIResponse 统一响应格式
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// sendSuccess 发送成功响应
func sendSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// sendError 发送错误响应
func sendError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, APIResponse{Success: false, Message: message})
}

// requestToken 从 Authorization 头或 token 参数读取令牌
func requestToken(r *http.Request) string {
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); h != "" {
		if len(h) > len(prefix) && h[:len(prefix)] == prefix {
			return h[len(prefix):]
		}
		return h
	}
	return r.URL.Query().Get("token")
}

// pagination 解析 offset 和 limit
func pagination(r *http.Request) (int, int) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

// page 截取一页，越界时返回空
func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
