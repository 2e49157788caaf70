package session

import (
	"context"
	"errors"
	"testing"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/world"
)

// fixedRand 总是返回同样的值
type fixedRand struct {
	f float64
	i int
}

func (r *fixedRand) Float64() float64 { return r.f }
func (r *fixedRand) Intn(n int) int   { return r.i % n }

var sharedCatalog = content.NewCatalog()

func testDeps(r *fixedRand) Deps {
	cfg := config.Default().Game
	cfg.Seed = 1
	return Deps{
		Catalog: sharedCatalog,
		World:   world.New(cfg.Seed),
		Config:  cfg,
		Rand:    r,
	}
}

// openStep 在 (x0, y0) 附近找一个可以走一步的野外位置
func openStep(t *testing.T, w *world.World, x0, y0 int) (int, int, int, int) {
	t.Helper()
	open := func(x, y int) bool {
		_, isLoc := w.LocationAt(x, y)
		return w.Passable(x, y) && !isLoc
	}
	for y := y0; y < y0+40; y++ {
		for x := x0; x < x0+40; x++ {
			if open(x, y) && open(x+1, y) {
				return x, y, 1, 0
			}
		}
	}
	t.Fatal("No open tiles found")
	return 0, 0, 0, 0
}

func newSession(t *testing.T, r *fixedRand, edit func(*storage.Snapshot)) *Session {
	t.Helper()
	snap := storage.DefaultSnapshot("勇者")
	if edit != nil {
		edit(&snap)
	}
	return New("test", snap, testDeps(r))
}

func TestMoveRules(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, nil)

	if _, err := s.Move(2, 0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove, got %v", err)
	}
	if _, err := s.Move(0, 0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove, got %v", err)
	}

	edge := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: 0, Y: 250}
	})
	st := edge.Status()
	if st.X == 0 {
		if _, err := edge.Move(-1, 0); !errors.Is(err, ErrBlocked) {
			t.Errorf("Expected ErrBlocked at the map edge, got %v", err)
		}
	}
}

func TestMoveWithoutEncounter(t *testing.T) {
	w := world.New(1)
	x, y, dx, dy := openStep(t, w, 20, 20)
	s := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: x, Y: y}
	})

	res, err := s.Move(dx, dy)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if res.X != x+dx || res.Y != y+dy || len(res.Events) != 0 {
		t.Errorf("Unexpected move result %+v", res)
	}
	if s.Battle() != nil {
		t.Error("No battle expected")
	}
}

func TestArrivingAtTownSetsRespawn(t *testing.T) {
	w := world.New(1)
	town, _ := w.Location("town_central")

	var fromX, fromY int
	found := false
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, 1}} {
		if w.Passable(town.X+d[0], town.Y+d[1]) {
			fromX, fromY = town.X+d[0], town.Y+d[1]
			found = true
			break
		}
	}
	if !found {
		t.Skip("Town is surrounded by mountains for this seed")
	}

	s := newSession(t, &fixedRand{f: 0.0}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: fromX, Y: fromY}
	})
	res, err := s.Move(town.X-fromX, town.Y-fromY)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if res.Arrived == nil || res.Arrived.ID != "town_central" {
		t.Fatalf("Expected to arrive at the town, got %+v", res.Arrived)
	}
	if len(res.Events) != 0 {
		t.Error("Towns are safe from encounters")
	}
	if rp := s.Status().Player.RespawnPoint; rp.X != town.X || rp.Y != town.Y {
		t.Errorf("Respawn point not updated: %+v", rp)
	}
}

func TestEncounterWinAndQuest(t *testing.T) {
	w := world.New(1)
	x, y, dx, dy := openStep(t, w, 20, 20)
	s := newSession(t, &fixedRand{f: 0.0}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: x, Y: y}
		snap.Quests = []storage.QuestProgress{{ID: 1, CurrentCount: 2, IsAccepted: true}}
	})

	res, err := s.Move(dx, dy)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if len(res.Events) == 0 || s.Battle() == nil {
		t.Fatal("Expected an encounter")
	}
	if _, err := s.Move(dx, dy); !errors.Is(err, ErrBattleActive) {
		t.Errorf("Expected ErrBattleActive, got %v", err)
	}
	if _, err := s.Inn(); !errors.Is(err, ErrBattleActive) {
		t.Errorf("Expected ErrBattleActive, got %v", err)
	}

	// 攻击力 12 对 1 号怪物一击必杀
	if _, err := s.Act(battle.Action{Kind: battle.ActionAttack}); err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if s.Battle() != nil {
		t.Fatal("Battle should be released after the win")
	}

	st := s.Status()
	p := st.Player
	// 怪物 10 金币 + 任务 150 金币
	if p.Gold != 500+10+150 {
		t.Errorf("Expected gold 660, got %d", p.Gold)
	}
	if p.Level != 2 {
		t.Errorf("Expected level 2, got %d", p.Level)
	}
	learned := map[string]bool{}
	for _, sk := range p.Skills {
		learned[sk.ID] = true
	}
	for _, id := range []string{"skill_1", "skill_4", "skill_6"} {
		if !learned[id] {
			t.Errorf("Expected %s learned, have %v", id, learned)
		}
	}

	q := s.Quests()[0]
	if !q.IsCompleted || q.CurrentCount != 3 {
		t.Errorf("Quest not completed: %+v", q)
	}
	if sharedCatalog.Quests[0].IsCompleted {
		t.Error("Session mutated the catalog quests")
	}

	if _, err := s.Act(battle.Action{Kind: battle.ActionAttack}); !errors.Is(err, ErrNoBattle) {
		t.Errorf("Expected ErrNoBattle, got %v", err)
	}
}

func TestLoseRespawns(t *testing.T) {
	w := world.New(1)
	x, y, dx, dy := openStep(t, w, 20, 20)
	s := newSession(t, &fixedRand{f: 0.0}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: x, Y: y}
		snap.Player.HP = 1
		snap.Player.Stats.Attack = 1
	})

	if _, err := s.Move(dx, dy); err != nil || s.Battle() == nil {
		t.Fatalf("Expected an encounter, err=%v", err)
	}
	if _, err := s.Act(battle.Action{Kind: battle.ActionAttack}); err != nil {
		t.Fatalf("Attack failed: %v", err)
	}
	if _, err := s.Act(battle.Action{Kind: battle.ActionContinue}); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}

	st := s.Status()
	if st.InBattle {
		t.Error("Battle should be released after a loss")
	}
	rp := st.Player.RespawnPoint
	if st.X != rp.X || st.Y != rp.Y {
		t.Errorf("Expected respawn at %d,%d, got %d,%d", rp.X, rp.Y, st.X, st.Y)
	}
	if st.Player.HP != st.Player.MaxHP {
		t.Errorf("Expected full hp, got %d/%d", st.Player.HP, st.Player.MaxHP)
	}
}

func TestInn(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Player.HP = 50
	})

	cost, err := s.Inn()
	if err != nil {
		t.Fatalf("Inn failed: %v", err)
	}
	p := s.Status().Player
	if cost != 99 || p.Gold != 401 || p.HP != p.MaxHP {
		t.Errorf("Unexpected inn result cost=%d gold=%d hp=%d", cost, p.Gold, p.HP)
	}

	poor := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Player.HP = 50
		snap.Player.Gold = 10
	})
	if _, err := poor.Inn(); !errors.Is(err, ErrInsufficientGold) {
		t.Fatalf("Expected ErrInsufficientGold, got %v", err)
	}
	if p := poor.Status().Player; p.Gold != 10 || p.HP != 50 {
		t.Error("Failed inn must not mutate the player")
	}

	w := world.New(1)
	x, y, _, _ := openStep(t, w, 20, 20)
	away := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: x, Y: y}
	})
	if _, err := away.Inn(); !errors.Is(err, ErrNotInTown) {
		t.Errorf("Expected ErrNotInTown, got %v", err)
	}
}

func TestShopAndEquip(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, nil)

	if _, _, err := s.Buy("nothing"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Expected ErrUnknownItem, got %v", err)
	}
	item, cost, err := s.Buy("weapon_iron")
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if cost != 148 || item.ID != "weapon_iron" {
		t.Errorf("Unexpected purchase %s for %d", item.ID, cost)
	}
	if err := s.Equip(models.SlotWeapon, 0); err != nil {
		t.Fatalf("Equip failed: %v", err)
	}
	p := s.Status().Player
	if p.Equipment.Weapon.ID != "weapon_iron" || p.Gold != 352 {
		t.Errorf("Unexpected state weapon=%s gold=%d", p.Equipment.Weapon.ID, p.Gold)
	}
	if err := s.Equip(models.SlotHead, 0); !errors.Is(err, ErrEquip) {
		t.Errorf("Expected ErrEquip, got %v", err)
	}
}

func TestForge(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, nil)

	if s.ForgeCost() != 297 {
		t.Errorf("Expected forge cost 297, got %d", s.ForgeCost())
	}
	weapon, cost, err := s.Forge()
	if err != nil {
		t.Fatalf("Forge failed: %v", err)
	}
	if weapon.Bonus.Attack != 4 || cost != 297 {
		t.Errorf("Unexpected forge result atk=%d cost=%d", weapon.Bonus.Attack, cost)
	}
	if _, _, err := s.Forge(); !errors.Is(err, ErrInsufficientGold) {
		t.Errorf("Expected ErrInsufficientGold, got %v", err)
	}
	if got := s.Status().Player.Equipment.Weapon.Bonus.Attack; got != 4 {
		t.Errorf("Failed forge changed the weapon: %d", got)
	}
}

func TestFuse(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		a, _ := sharedCatalog.Skill("skill_1")
		b, _ := sharedCatalog.Skill("skill_7")
		snap.Player.Skills = []models.Skill{a, b}
	})

	if _, _, err := s.Fuse("skill_1", "skill_1"); !errors.Is(err, ErrFusionPair) {
		t.Errorf("Expected ErrFusionPair, got %v", err)
	}
	if _, _, err := s.Fuse("skill_1", "skill_99"); !errors.Is(err, ErrFusionPair) {
		t.Errorf("Expected ErrFusionPair, got %v", err)
	}

	fused, cost, err := s.Fuse("skill_1", "skill_7")
	if err != nil {
		t.Fatalf("Fuse failed: %v", err)
	}
	if cost != 297 || fused.IsPassive() {
		t.Errorf("Unexpected fusion cost=%d passive=%v", cost, fused.IsPassive())
	}
	p := s.Status().Player
	if len(p.Skills) != 0 || len(p.FusedSkills) != 1 || p.FusedSkills[0].ID != fused.ID {
		t.Errorf("Parents not replaced: skills=%v fused=%v", p.Skills, p.FusedSkills)
	}
}

func TestFuseInsufficientGold(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		a, _ := sharedCatalog.Skill("skill_1")
		b, _ := sharedCatalog.Skill("skill_2")
		snap.Player.Skills = []models.Skill{a, b}
		snap.Player.Gold = 100
	})
	if _, _, err := s.Fuse("skill_1", "skill_2"); !errors.Is(err, ErrInsufficientGold) {
		t.Fatalf("Expected ErrInsufficientGold, got %v", err)
	}
	if p := s.Status().Player; len(p.Skills) != 2 || p.Gold != 100 {
		t.Error("Failed fusion must not consume skills or gold")
	}
}

func TestDungeonAndBoss(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, nil)
	if _, err := s.EnterDungeon(); !errors.Is(err, ErrNotAtDungeon) {
		t.Errorf("Expected ErrNotAtDungeon, got %v", err)
	}

	cave := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: 15, Y: 20}
	})
	if _, err := cave.EnterDungeon(); err != nil {
		t.Fatalf("EnterDungeon failed: %v", err)
	}
	if m := cave.Battle().Monster(); m.Level < 1 || m.Level > 10 {
		t.Errorf("Dungeon monster level %d outside band", m.Level)
	}
	if _, err := cave.ChallengeBoss(); !errors.Is(err, ErrBattleActive) {
		t.Errorf("Expected ErrBattleActive, got %v", err)
	}

	last := newSession(t, &fixedRand{f: 0.99}, func(snap *storage.Snapshot) {
		snap.Position = storage.Position{X: 495, Y: 495}
	})
	if _, err := last.ChallengeBoss(); err != nil {
		t.Fatalf("ChallengeBoss failed: %v", err)
	}
	if !last.Battle().Monster().IsBoss {
		t.Error("Expected the final boss")
	}
}

func TestAcceptQuest(t *testing.T) {
	s := newSession(t, &fixedRand{f: 0.99}, nil)
	if err := s.AcceptQuest(5); err != nil {
		t.Fatalf("AcceptQuest failed: %v", err)
	}
	if err := s.AcceptQuest(5); !errors.Is(err, ErrQuestState) {
		t.Errorf("Expected ErrQuestState, got %v", err)
	}
	if err := s.AcceptQuest(9999); !errors.Is(err, ErrUnknownQuest) {
		t.Errorf("Expected ErrUnknownQuest, got %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Quests) != 1 || snap.Quests[0].ID != 5 || !snap.Quests[0].IsAccepted {
		t.Errorf("Quest progress missing from snapshot: %+v", snap.Quests)
	}
}

func TestLoadAndSave(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	board := storage.NewMemoryLeaderboard()
	deps := testDeps(&fixedRand{f: 0.99})

	fresh, err := Load(ctx, store, "p1", "新人", deps)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if fresh.Status().Player.Name != "新人" {
		t.Error("Missing save should create a default player")
	}

	if err := fresh.Allocate(models.StatAttack); !errors.Is(err, ErrAllocate) {
		t.Errorf("Expected ErrAllocate without points, got %v", err)
	}
	if _, _, err := fresh.Buy("head_leather"); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := fresh.Save(ctx, store, board); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(ctx, store, "p1", "新人", deps)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if p := loaded.Status().Player; len(p.Inventory) != 1 || p.Gold != fresh.Status().Player.Gold {
		t.Errorf("Reloaded player differs: %+v", p)
	}
	if top, _ := board.Top(ctx, 10); len(top) != 1 || top[0].PlayerID != "p1" {
		t.Errorf("Leaderboard not updated: %+v", top)
	}

	store.PutRaw("broken", []byte("{{{"))
	recovered, err := Load(ctx, store, "broken", "勇者", deps)
	if err != nil {
		t.Fatalf("Malformed save should not be fatal: %v", err)
	}
	if p := recovered.Status().Player; p.Level != 1 || p.Gold != 500 {
		t.Errorf("Expected default player, got %+v", p)
	}
}
