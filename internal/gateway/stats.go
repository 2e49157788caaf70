// stats.go

package gateway

import (
	"net/http"
	"strconv"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// StatsHandler 排行榜处理器
type StatsHandler struct {
	board  storage.Leaderboard
	tokens *auth.Issuer
}

// RankInfo 玩家名次
type RankInfo struct {
	PlayerID string `json:"player_id"`
	Rank     int    `json:"rank"`
}

// NewStatsHandler 创建排行榜处理器
func NewStatsHandler(board storage.Leaderboard, tokens *auth.Issuer) *StatsHandler {
	return &StatsHandler{board: board, tokens: tokens}
}

// RegisterHandlers 注册HTTP处理器
func (h *StatsHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/stats/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/stats/rank", h.handleRank)
}

// handleLeaderboard 按等级排行
func (h *StatsHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := h.board.Top(r.Context(), limit)
	if err != nil {
		logger.Component("gateway").WithError(err).Error("查询排行榜失败")
		sendError(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}
	sendSuccess(w, "查询成功", entries)
}

// handleRank 查询令牌对应玩家的名次
func (h *StatsHandler) handleRank(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	claims, err := h.tokens.Parse(requestToken(r))
	if err != nil {
		sendError(w, "未授权", http.StatusUnauthorized)
		return
	}

	rank, err := h.board.Rank(r.Context(), claims.PlayerID)
	if err != nil {
		logger.Component("gateway").WithError(err).Error("查询名次失败")
		sendError(w, "查询名次失败", http.StatusInternalServerError)
		return
	}
	sendSuccess(w, "查询成功", RankInfo{PlayerID: claims.PlayerID, Rank: rank})
}
