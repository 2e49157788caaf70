package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
)

// AuthHandler 游客认证处理器
type AuthHandler struct {
	tokens *auth.Issuer
}

// GuestRequest 游客登录请求
type GuestRequest struct {
	Name string `json:"name"`
	// PlayerID 非空时为已有存档续签
	PlayerID string `json:"player_id,omitempty"`
}

// TokenInfo 令牌信息
type TokenInfo struct {
	Token     string    `json:"token"`
	PlayerID  string    `json:"player_id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(tokens *auth.Issuer) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// RegisterHandlers 注册HTTP处理器
func (h *AuthHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/auth/guest", h.handleGuest)
	mux.HandleFunc("/auth/validate", h.handleValidate)
}

// handleGuest 签发游客令牌
func (h *AuthHandler) handleGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	var req GuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "无效的请求格式", http.StatusBadRequest)
		return
	}

	var (
		token  string
		claims auth.Claims
		err    error
	)
	if req.PlayerID != "" {
		token, claims, err = h.tokens.Issue(req.PlayerID, req.Name)
	} else {
		token, claims, err = h.tokens.Guest(req.Name)
	}
	if errors.Is(err, auth.ErrEmptyName) {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		sendError(w, "生成令牌失败", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, "登录成功", TokenInfo{
		Token:     token,
		PlayerID:  claims.PlayerID,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// handleValidate 校验令牌
func (h *AuthHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	claims, err := h.tokens.Parse(requestToken(r))
	if err != nil {
		sendError(w, "无效或已过期的令牌", http.StatusUnauthorized)
		return
	}
	sendSuccess(w, "令牌有效", TokenInfo{
		PlayerID:  claims.PlayerID,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}
