// catalog.go

package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/protocol"
)

// CatalogHandler 图鉴浏览
type CatalogHandler struct {
	catalog *content.Catalog
}

// PageInfo 分页结果
type PageInfo struct {
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
	Items  interface{} `json:"items"`
}

// NewCatalogHandler 创建图鉴处理器
func NewCatalogHandler(catalog *content.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterHandlers 注册HTTP处理器
func (h *CatalogHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/catalog/monsters", h.handleMonsters)
	mux.HandleFunc("/catalog/monsters/", h.handleMonster)
	mux.HandleFunc("/catalog/skills", h.handleSkills)
	mux.HandleFunc("/catalog/skills/", h.handleSkill)
	mux.HandleFunc("/catalog/quests", h.handleQuests)
	mux.HandleFunc("/catalog/shop", h.handleShop)
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		sendError(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (h *CatalogHandler) handleMonsters(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	offset, limit := pagination(r)
	monsters := page(h.catalog.Monsters, offset, limit)
	items := make([]protocol.MonsterInfo, len(monsters))
	for i := range monsters {
		items[i] = protocol.ConvertMonster(&monsters[i])
	}
	sendSuccess(w, "查询成功", PageInfo{Total: len(h.catalog.Monsters), Offset: offset, Limit: limit, Items: items})
}

func (h *CatalogHandler) handleMonster(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/catalog/monsters/"))
	if err != nil {
		sendError(w, "无效的怪物ID", http.StatusBadRequest)
		return
	}
	m, ok := h.catalog.Monster(id)
	if !ok {
		sendError(w, "怪物不存在", http.StatusNotFound)
		return
	}
	sendSuccess(w, "查询成功", protocol.ConvertMonster(&m))
}

func (h *CatalogHandler) handleSkills(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	offset, limit := pagination(r)
	skills := page(h.catalog.Skills, offset, limit)
	sendSuccess(w, "查询成功", PageInfo{Total: len(h.catalog.Skills), Offset: offset, Limit: limit, Items: protocol.ConvertSkills(skills)})
}

func (h *CatalogHandler) handleSkill(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s, ok := h.catalog.Skill(strings.TrimPrefix(r.URL.Path, "/catalog/skills/"))
	if !ok {
		sendError(w, "技能不存在", http.StatusNotFound)
		return
	}
	sendSuccess(w, "查询成功", protocol.ConvertSkill(&s))
}

func (h *CatalogHandler) handleQuests(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	offset, limit := pagination(r)
	quests := page(h.catalog.Quests, offset, limit)
	sendSuccess(w, "查询成功", PageInfo{Total: len(h.catalog.Quests), Offset: offset, Limit: limit, Items: protocol.ConvertQuests(quests)})
}

func (h *CatalogHandler) handleShop(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	items := make([]protocol.ItemInfo, len(h.catalog.Shop))
	for i := range h.catalog.Shop {
		items[i] = protocol.ConvertItem(&h.catalog.Shop[i])
	}
	sendSuccess(w, "查询成功", items)
}
