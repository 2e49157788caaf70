package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
)

type testGateway struct {
	handler http.Handler
	store   *storage.MemoryStore
	board   *storage.MemoryLeaderboard
	tokens  *auth.Issuer
}

func newTestGateway() *testGateway {
	cfg := config.Default()
	tokens := auth.NewIssuer(cfg.Auth)
	store := storage.NewMemoryStore()
	board := storage.NewMemoryLeaderboard()
	g := NewGateway(&cfg, content.NewCatalog(), tokens, store, board)
	return &testGateway{handler: g.Handler(), store: store, board: board, tokens: tokens}
}

func (tg *testGateway) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	tg.handler.ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func decodeData(t *testing.T, resp APIResponse, v interface{}) {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
}

func TestGuestAuth(t *testing.T) {
	tg := newTestGateway()

	rec, resp := tg.do(t, http.MethodPost, "/auth/guest", `{"name":"勇者"}`, "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("Guest login failed: %d %+v", rec.Code, resp)
	}
	var info TokenInfo
	decodeData(t, resp, &info)
	if info.Token == "" || info.PlayerID == "" || info.Name != "勇者" {
		t.Errorf("Unexpected token info %+v", info)
	}

	rec, resp = tg.do(t, http.MethodGet, "/auth/validate", "", info.Token)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Errorf("Validate failed: %d %+v", rec.Code, resp)
	}

	rec, _ = tg.do(t, http.MethodPost, "/auth/guest", `{"name":"  "}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty name, got %d", rec.Code)
	}
	rec, _ = tg.do(t, http.MethodGet, "/auth/guest", "", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
	rec, _ = tg.do(t, http.MethodGet, "/auth/validate", "", "bogus")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestCatalogPaging(t *testing.T) {
	tg := newTestGateway()

	rec, resp := tg.do(t, http.MethodGet, "/catalog/monsters?offset=440&limit=20", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Catalog request failed: %d", rec.Code)
	}
	var pageInfo struct {
		Total int `json:"total"`
		Items []struct {
			ID     int  `json:"id"`
			IsBoss bool `json:"is_boss"`
		} `json:"items"`
	}
	decodeData(t, resp, &pageInfo)
	if pageInfo.Total != content.MonsterCount || len(pageInfo.Items) != 10 {
		t.Errorf("Expected 10 of %d monsters, got %d of %d", content.MonsterCount, len(pageInfo.Items), pageInfo.Total)
	}
	if last := pageInfo.Items[len(pageInfo.Items)-1]; last.ID != 450 || !last.IsBoss {
		t.Errorf("Expected the boss last, got %+v", last)
	}

	rec, _ = tg.do(t, http.MethodGet, "/catalog/monsters/9999", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	rec, _ = tg.do(t, http.MethodGet, "/catalog/skills/skill_7", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected skill lookup to succeed, got %d", rec.Code)
	}
}

func TestCatalogCache(t *testing.T) {
	tg := newTestGateway()

	first, _ := tg.do(t, http.MethodGet, "/catalog/quests?limit=5", "", "")
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("Expected MISS, got %q", got)
	}
	second, _ := tg.do(t, http.MethodGet, "/catalog/quests?limit=5", "", "")
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("Expected HIT, got %q", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("Cached body differs")
	}
}

func TestLeaderboardAndSave(t *testing.T) {
	tg := newTestGateway()
	ctx := context.Background()
	token, _, err := tg.tokens.Issue("p1", "勇者")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	rec, _ := tg.do(t, http.MethodGet, "/players/save", "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before saving, got %d", rec.Code)
	}
	rec, _ = tg.do(t, http.MethodGet, "/players/save", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rec.Code)
	}

	snap := storage.DefaultSnapshot("勇者")
	snap.Player.Level = 7
	if err := tg.store.Save(ctx, "p1", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	tg.board.Update(ctx, storage.Summarize("p1", snap))

	rec, resp := tg.do(t, http.MethodGet, "/players/save", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected save summary, got %d", rec.Code)
	}
	var info SaveInfo
	decodeData(t, resp, &info)
	if info.Level != 7 || info.Name != "勇者" || info.X != 10 {
		t.Errorf("Unexpected summary %+v", info)
	}

	rec, resp = tg.do(t, http.MethodGet, "/stats/leaderboard?limit=5", "", "")
	var entries []storage.LeaderboardEntry
	decodeData(t, resp, &entries)
	if rec.Code != http.StatusOK || len(entries) != 1 || entries[0].PlayerID != "p1" {
		t.Errorf("Unexpected leaderboard %d %+v", rec.Code, entries)
	}

	_, resp = tg.do(t, http.MethodGet, "/stats/rank", "", token)
	var rank RankInfo
	decodeData(t, resp, &rank)
	if rank.Rank != 1 {
		t.Errorf("Expected rank 1, got %d", rank.Rank)
	}

	rec, _ = tg.do(t, http.MethodDelete, "/players/save", "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("Delete failed: %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := &RateLimiter{clients: make(map[string]*clientWindow), RequestsPerMinute: 2}
	now := time.Now()
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("First two requests should pass")
	}
	if rl.Allow("a") {
		t.Error("Third request should be limited")
	}
	if !rl.Allow("b") {
		t.Error("Other clients are not affected")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("a") {
		t.Error("Window should slide after a minute")
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := page(items, 3, 10); len(got) != 2 || got[0] != 4 {
		t.Errorf("Unexpected page %v", got)
	}
	if got := page(items, 9, 10); len(got) != 0 {
		t.Errorf("Expected empty page, got %v", got)
	}
}
