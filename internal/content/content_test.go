package content

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/models"
)

func TestGenerateMonstersDeterministic(t *testing.T) {
	a := GenerateMonsters()
	b := GenerateMonsters()
	if len(a) != MonsterCount {
		t.Fatalf("Expected %d monsters, got %d", MonsterCount, len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Monster catalog differs between calls")
	}
}

func TestMonsterCatalogShape(t *testing.T) {
	monsters := GenerateMonsters()

	first := monsters[0]
	if first.ID != 1 || first.Level != 1 || first.HP != 20 || first.Atk != 5 || first.Def != 3 {
		t.Errorf("Unexpected first monster: %+v", first)
	}
	if first.IsDungeonMonster || first.IsBoss {
		t.Error("First monster should be a plain field monster")
	}

	for i := 1; i < len(monsters); i++ {
		if monsters[i].HP <= monsters[i-1].HP || monsters[i].Atk <= monsters[i-1].Atk {
			t.Fatalf("Monster %d is not stronger than %d", monsters[i].ID, monsters[i-1].ID)
		}
		if monsters[i-1].IsBoss {
			t.Fatalf("Only the last entry may be a boss, found %d", monsters[i-1].ID)
		}
	}

	last := monsters[len(monsters)-1]
	if !last.IsBoss {
		t.Error("Last monster should be the boss")
	}
	if !monsters[DungeonLevelThreshold].IsDungeonMonster {
		t.Errorf("Monster %d should be a dungeon monster", DungeonLevelThreshold+1)
	}

	names := make(map[string]bool)
	for _, m := range monsters {
		if names[m.Name] {
			t.Fatalf("Duplicate monster name %s", m.Name)
		}
		names[m.Name] = true
	}
}

func TestGenerateSkills(t *testing.T) {
	skills := GenerateSkills()
	if len(skills) != SkillCount {
		t.Fatalf("Expected %d skills, got %d", SkillCount, len(skills))
	}
	if !reflect.DeepEqual(skills, GenerateSkills()) {
		t.Error("Skill catalog differs between calls")
	}

	for _, s := range skills {
		if s.IsPassive() {
			if s.MPCost != 0 || s.Cooldown != 0 {
				t.Errorf("Passive %s has mp/cooldown %d/%d", s.ID, s.MPCost, s.Cooldown)
			}
			if s.Trigger == models.TriggerNone {
				t.Errorf("Passive %s has no trigger", s.ID)
			}
			if s.Healing {
				t.Errorf("Passive %s should not be a healing skill", s.ID)
			}
			continue
		}
		if s.Trigger != models.TriggerNone {
			t.Errorf("Active %s carries trigger %s", s.ID, s.Trigger)
		}
		if s.Cooldown < 1 || s.MPCost < 1 {
			t.Errorf("Active %s has mp/cooldown %d/%d", s.ID, s.MPCost, s.Cooldown)
		}
	}

	s1 := skills[0]
	if s1.ID != "skill_1" || s1.Power != 10 || s1.Cooldown != 1 || s1.MPCost != 5 {
		t.Errorf("Unexpected skill_1: %+v", s1)
	}
	if !skills[6].IsPassive() {
		t.Error("skill_7 should be passive")
	}
}

func TestGenerateQuests(t *testing.T) {
	quests := GenerateQuests()
	if len(quests) != QuestCount {
		t.Fatalf("Expected %d quests, got %d", QuestCount, len(quests))
	}
	q := quests[9]
	if q.ID != 10 || q.TargetMonsterLevel != 10 || q.RewardGold != 1500 || q.RewardExp != 2000 {
		t.Errorf("Unexpected quest 10: %+v", q)
	}
	if q.IsAccepted || q.IsCompleted || q.CurrentCount != 0 {
		t.Error("Generated quests should start untouched")
	}
}

func TestElementalMultiplier(t *testing.T) {
	cases := []struct {
		atk, def models.Element
		want     float64
	}{
		{models.ElementFire, models.ElementIce, MultiplierStrong},
		{models.ElementIce, models.ElementFire, MultiplierWeak},
		{models.ElementWater, models.ElementFire, MultiplierStrong},
		{models.ElementLight, models.ElementDark, MultiplierStrong},
		{models.ElementDark, models.ElementLight, MultiplierStrong},
		{models.ElementNeutral, models.ElementFire, MultiplierNeutral},
		{models.ElementFire, models.ElementLight, MultiplierNeutral},
		{models.ElementFire, models.ElementFire, MultiplierNeutral},
	}
	for _, c := range cases {
		if got := ElementalMultiplier(c.atk, c.def); got != c.want {
			t.Errorf("%s -> %s: expected %v, got %v", c.atk, c.def, c.want, got)
		}
	}
}

func TestElementalMultiplierAbsentPairs(t *testing.T) {
	for _, atk := range models.Elements {
		for _, def := range models.Elements {
			_, ok := advantageTable[elementPair{atk, def}]
			if !ok && ElementalMultiplier(atk, def) != 1.0 {
				t.Errorf("Absent pair %s -> %s should be 1.0", atk, def)
			}
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	c := NewCatalog()

	if m, ok := c.Monster(1); !ok || m.ID != 1 {
		t.Error("Monster 1 lookup failed")
	}
	if _, ok := c.Monster(0); ok {
		t.Error("Monster 0 should not exist")
	}
	if !c.FinalBoss().IsBoss {
		t.Error("FinalBoss should be a boss")
	}
	if c.MaxMonsterLevel() != MonsterCount {
		t.Errorf("Expected max level %d, got %d", MonsterCount, c.MaxMonsterLevel())
	}
	if s, ok := c.Skill("skill_42"); !ok || s.ID != "skill_42" {
		t.Error("Skill lookup failed")
	}
	if _, ok := c.ShopItem("weapon_iron"); !ok {
		t.Error("Shop lookup failed")
	}

	quests := c.QuestsCopy()
	quests[0].IsAccepted = true
	if c.Quests[0].IsAccepted {
		t.Error("QuestsCopy must not share state with the catalog")
	}
}

func TestCatalogNamesHaveNoFusionMarker(t *testing.T) {
	for _, s := range GenerateSkills() {
		if strings.HasPrefix(s.Name, "极·") {
			t.Fatalf("Catalog skill %s uses the fused prefix", s.ID)
		}
	}
}

func TestUnlockLookups(t *testing.T) {
	c := NewCatalog()

	s, ok := c.SkillForLevel(2)
	if !ok || s.ID != "skill_6" || s.Condition != models.UnlockByLevel {
		t.Errorf("Unexpected level unlock %+v", s)
	}
	if _, ok := c.SkillForLevel(500); ok {
		t.Error("Levels beyond the catalog unlock nothing")
	}

	s, ok = c.SkillForQuest(1)
	if !ok || s.ID != "skill_4" || s.Condition != models.UnlockByQuest {
		t.Errorf("Unexpected quest unlock %+v", s)
	}
}
