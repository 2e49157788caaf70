package game

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/auth"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/protocol"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
)

type testEnv struct {
	server *GameServer
	http   *httptest.Server
	store  *storage.MemoryStore
	tokens *auth.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Default()
	cfg.Game.Seed = 1
	cfg.Game.EncounterRate = 0

	deps := session.Deps{
		Catalog: content.NewCatalog(),
		World:   world.New(cfg.Game.Seed),
		Config:  cfg.Game,
		Rand:    battle.NewRand(1),
	}
	store := storage.NewMemoryStore()
	tokens := auth.NewIssuer(cfg.Auth)

	gs := NewGameServer(&cfg, deps, store, storage.NewMemoryLeaderboard(), tokens)
	ts := httptest.NewServer(gs.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{server: gs, http: ts, store: store, tokens: tokens}
}

func (e *testEnv) dial(t *testing.T, playerID string) *websocket.Conn {
	t.Helper()
	token, _, err := e.tokens.Issue(playerID, "勇者")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	url := "ws" + strings.TrimPrefix(e.http.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return msg
}

func request(t *testing.T, conn *websocket.Conn, typ protocol.MessageType, payload interface{}) protocol.Message {
	t.Helper()
	msg, err := protocol.NewMessage(typ, payload)
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	return readMessage(t, conn)
}

func TestRejectsMissingToken(t *testing.T) {
	env := newTestEnv(t)
	resp, err := http.Get(env.http.URL + "/ws")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionOverWebSocket(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "p1")

	welcome := readMessage(t, conn)
	if welcome.Type != protocol.TypeWelcome {
		t.Fatalf("Expected welcome, got %s", welcome.Type)
	}
	var info WelcomeInfo
	if err := welcome.Decode(&info); err != nil {
		t.Fatalf("Decode welcome failed: %v", err)
	}
	if info.Status.Player.Name != "勇者" || len(info.Quests) != content.QuestCount {
		t.Errorf("Unexpected welcome %+v", info.Status.Player)
	}

	reply := request(t, conn, protocol.TypeMove, protocol.MoveRequest{DX: 2})
	var errInfo protocol.ErrorInfo
	if err := reply.Decode(&errInfo); err != nil || reply.Type != protocol.TypeError || errInfo.Code != "invalid_move" {
		t.Errorf("Expected invalid_move error, got %s %+v", reply.Type, errInfo)
	}

	reply = request(t, conn, protocol.TypeInn, nil)
	var town protocol.TownInfo
	if err := reply.Decode(&town); err != nil || reply.Type != protocol.TypeTown {
		t.Fatalf("Expected town result, got %s", reply.Type)
	}
	if town.Cost != 99 || town.Gold != 401 {
		t.Errorf("Unexpected inn result %+v", town)
	}

	reply = request(t, conn, protocol.TypeBattleContinue, nil)
	if err := reply.Decode(&errInfo); err != nil || errInfo.Code != "no_battle" {
		t.Errorf("Expected no_battle, got %+v", errInfo)
	}

	reply = request(t, conn, "dance", nil)
	if err := reply.Decode(&errInfo); err != nil || errInfo.Code != "unknown_type" {
		t.Errorf("Expected unknown_type, got %+v", errInfo)
	}

	reply = request(t, conn, protocol.TypeSave, nil)
	if reply.Type != protocol.TypeSaved {
		t.Fatalf("Expected saved, got %s", reply.Type)
	}
	snap, err := env.store.Load(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Save not stored: %v", err)
	}
	if snap.Player.Gold != 401 {
		t.Errorf("Expected stored gold 401, got %d", snap.Player.Gold)
	}
}

func TestDuplicateLoginReplacesConnection(t *testing.T) {
	env := newTestEnv(t)
	first := env.dial(t, "p1")
	readMessage(t, first)

	second := env.dial(t, "p1")
	readMessage(t, second)

	if n := env.server.OnlineCount(); n != 1 {
		t.Errorf("Expected 1 online client, got %d", n)
	}
}

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{session.ErrInsufficientGold, "insufficient_gold"},
		{fmt.Errorf("%w: x", battle.ErrSkillOnCooldown), "skill_on_cooldown"},
		{battle.ErrActionNotAllowed, "action_not_allowed"},
		{fmt.Errorf("boom"), "internal"},
	}
	for _, c := range cases {
		if got := errorCode(c.err); got != c.want {
			t.Errorf("errorCode(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
