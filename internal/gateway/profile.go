package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/pkg/logger"
)

// ProfileHandler 玩家存档摘要
type ProfileHandler struct {
	store  storage.SaveStore
	tokens *auth.Issuer
}

// SaveInfo 存档摘要
type SaveInfo struct {
	storage.Summary
	X                int       `json:"x"`
	Y                int       `json:"y"`
	Skills           int       `json:"skills"`
	FusedSkills      int       `json:"fused_skills"`
	QuestsCompleted  int       `json:"quests_completed"`
	LastBossDefeated bool      `json:"last_boss_defeated"`
	SavedAt          time.Time `json:"saved_at"`
}

// NewProfileHandler 创建存档处理器
func NewProfileHandler(store storage.SaveStore, tokens *auth.Issuer) *ProfileHandler {
	return &ProfileHandler{store: store, tokens: tokens}
}

// RegisterHandlers 注册HTTP处理器
func (h *ProfileHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/players/save", h.handleSave)
}

// handleSave GET 返回摘要，DELETE 删除存档
func (h *ProfileHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.Parse(requestToken(r))
	if err != nil {
		sendError(w, "未授权", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getSave(w, r, claims.PlayerID)
	case http.MethodDelete:
		if err := h.store.Delete(r.Context(), claims.PlayerID); err != nil {
			logger.Component("gateway").WithError(err).Error("删除存档失败")
			sendError(w, "删除存档失败", http.StatusInternalServerError)
			return
		}
		sendSuccess(w, "存档已删除", nil)
	default:
		sendError(w, "不支持的方法", http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) getSave(w http.ResponseWriter, r *http.Request, playerID string) {
	snap, err := h.store.Load(r.Context(), playerID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, "存档不存在", http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrMalformedSave):
		sendError(w, "存档已损坏", http.StatusUnprocessableEntity)
		return
	case err != nil:
		logger.Component("gateway").WithError(err).Error("读取存档失败")
		sendError(w, "读取存档失败", http.StatusInternalServerError)
		return
	}

	completed := 0
	for _, q := range snap.Quests {
		if q.IsCompleted {
			completed++
		}
	}
	sendSuccess(w, "查询成功", SaveInfo{
		Summary:          storage.Summarize(playerID, snap),
		X:                snap.Position.X,
		Y:                snap.Position.Y,
		Skills:           len(snap.Player.Skills),
		FusedSkills:      len(snap.Player.FusedSkills),
		QuestsCompleted:  completed,
		LastBossDefeated: snap.LastBossDefeated,
		SavedAt:          snap.SavedAt,
	})
}
