package world

import (
	"testing"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/content"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.i % n }

func TestWorldDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	if len(a.Locations) != len(b.Locations) {
		t.Fatalf("Location count differs: %d vs %d", len(a.Locations), len(b.Locations))
	}
	for i := range a.Locations {
		if a.Locations[i] != b.Locations[i] {
			t.Fatalf("Location %d differs", i)
		}
	}
	for y := 0; y < MapSize; y += 13 {
		for x := 0; x < MapSize; x += 11 {
			if a.Terrain(x, y) != b.Terrain(x, y) {
				t.Fatalf("Terrain differs at %d,%d", x, y)
			}
		}
	}
}

func TestTerrainRules(t *testing.T) {
	w := New(1)

	if w.Terrain(10, 10) != TerrainTown {
		t.Error("Start town should be a town tile")
	}
	if w.Terrain(495, 495) != TerrainDungeon {
		t.Error("Last dungeon should be a dungeon tile")
	}
	if w.Terrain(20, 450) != TerrainSnow {
		t.Error("North-west corner should be snow")
	}
	if w.Terrain(-1, 0) != TerrainMountain || w.Passable(MapSize, 0) {
		t.Error("Outside the map should be impassable")
	}
	if TerrainMountain.Passable() || !TerrainForest.Passable() {
		t.Error("Unexpected passability")
	}
}

func TestHiddenRuins(t *testing.T) {
	w := New(7)
	ruins := 0
	for _, loc := range w.Locations {
		if loc.Kind == KindDungeon && loc.RecLevel >= hiddenRuinBaseLevel+hiddenRuinLevelStep && loc.ID[:6] == "hidden" {
			ruins++
		}
	}
	if ruins == 0 || ruins > hiddenRuinCount {
		t.Errorf("Unexpected ruin count %d", ruins)
	}
	last, ok := w.Location("dungeon_last")
	if !ok || !last.Final {
		t.Error("Last dungeon should be marked final")
	}
}

func TestEncounterBand(t *testing.T) {
	s := NewSelector(content.GenerateMonsters(), config.Default().Game, fixedRand{})

	lo, hi := s.Band(1)
	if lo != 1 || hi != 11 {
		t.Errorf("Expected [1,11], got [%d,%d]", lo, hi)
	}
	lo, hi = s.Band(445)
	if lo != 440 || hi != 450 {
		t.Errorf("Expected [440,450], got [%d,%d]", lo, hi)
	}
	lo, hi = s.DungeonBand(1000)
	if lo != 445 || hi != 450 {
		t.Errorf("Expected [445,450], got [%d,%d]", lo, hi)
	}

	for _, m := range s.Candidates(440, 450) {
		if m.IsBoss {
			t.Fatal("Boss must never be a random encounter")
		}
	}
}

func TestEncounterReturnsCopy(t *testing.T) {
	monsters := content.GenerateMonsters()
	s := NewSelector(monsters, config.Default().Game, fixedRand{i: 3})

	m := s.ForPlayer(10)
	if m.Level < 5 || m.Level > 20 {
		t.Errorf("Monster level %d outside band", m.Level)
	}
	m.HP = 0
	if monsters[m.ID-1].HP == 0 {
		t.Error("Selector leaked a catalog reference")
	}

	d := s.ForDungeon(5)
	if d.Level < 1 || d.Level > 10 {
		t.Errorf("Dungeon monster level %d outside band", d.Level)
	}
}

func TestEncounterFallback(t *testing.T) {
	monsters := []models.Monster{
		{ID: 1, Name: "史莱姆", Level: 1, HP: 20, MaxHP: 20},
		{ID: 2, Name: "魔王", Level: 100, HP: 999, MaxHP: 999, IsBoss: true},
	}
	s := NewSelector(monsters, config.Default().Game, fixedRand{})
	m := s.ForPlayer(90)
	if m.ID != 1 {
		t.Errorf("Expected fallback to the first entry, got %d", m.ID)
	}
}

func TestRollEncounter(t *testing.T) {
	if RollEncounter(fixedRand{f: 0.0}, TerrainTown, 0.08) {
		t.Error("Towns are safe")
	}
	if !RollEncounter(fixedRand{f: 0.05}, TerrainGrass, 0.08) {
		t.Error("0.05 < 0.08 should encounter")
	}
	if RollEncounter(fixedRand{f: 0.5}, TerrainForest, 0.08) {
		t.Error("0.5 should not encounter")
	}
}
