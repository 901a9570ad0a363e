package achievement

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func ids(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestEngine_LevelWon(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    []string
	}{
		{"spring", Outcome{LevelID: 1, Theme: "spring", Elapsed: 50 * time.Second, Mistakes: 3}, []string{"complete_spring"}},
		{"fast summer", Outcome{LevelID: 2, Theme: "summer", Elapsed: 45 * time.Second}, []string{"fast_summer"}},
		{"slow summer", Outcome{LevelID: 2, Theme: "summer", Elapsed: 46 * time.Second}, nil},
		{"perfect autumn", Outcome{LevelID: 3, Theme: "autumn", Mistakes: 0}, []string{"perfect_autumn"}},
		{"sloppy autumn", Outcome{LevelID: 3, Theme: "autumn", Mistakes: 1}, nil},
		{"winter", Outcome{LevelID: 4, Theme: "winter"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(DefaultRules())
			store := engine.NewStore()
			got := ids(engine.LevelWon(store, tt.outcome))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
				}
			}
			if !store.Won(tt.outcome.LevelID) {
				t.Errorf("Level %d should be marked won", tt.outcome.LevelID)
			}
		})
	}
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine(DefaultRules())
	store := engine.NewStore()
	o := Outcome{LevelID: 1, Theme: "spring"}

	if got := engine.LevelWon(store, o); len(got) != 1 {
		t.Fatalf("Expected one unlock, got %v", ids(got))
	}
	if got := engine.LevelWon(store, o); len(got) != 0 {
		t.Errorf("Rule fired twice: %v", ids(got))
	}
	if store.UnlockedCount() != 1 {
		t.Errorf("Expected 1 unlocked, got %d", store.UnlockedCount())
	}
}

func TestEngine_RuleOrder(t *testing.T) {
	rules := []Rule{
		{ID: "any_win", Event: EventLevelWon},
		{ID: "level_one", Event: EventLevelWon, LevelID: 1},
		{ID: "few_attempts", Event: EventLevelWon, MaxAttempts: intPtr(6)},
	}
	engine := NewEngine(rules)
	store := engine.NewStore()

	got := ids(engine.LevelWon(store, Outcome{LevelID: 1, Attempts: 6}))
	want := []string{"any_win", "level_one", "few_attempts"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestEngine_AllLevelsComplete(t *testing.T) {
	engine := NewEngine(DefaultRules())
	store := engine.NewStore()
	levels := []int{1, 2}

	engine.LevelWon(store, Outcome{LevelID: 1, Theme: "spring"})
	if got := engine.AllLevelsComplete(store, levels); len(got) != 0 {
		t.Fatalf("complete_all fired with level 2 unwon: %v", ids(got))
	}

	engine.LevelWon(store, Outcome{LevelID: 2, Theme: "summer", Elapsed: time.Minute})
	got := engine.AllLevelsComplete(store, levels)
	if len(got) != 1 || got[0].ID != "complete_all" {
		t.Fatalf("Expected complete_all, got %v", ids(got))
	}
	if got := engine.AllLevelsComplete(store, levels); len(got) != 0 {
		t.Errorf("complete_all fired twice")
	}
	if engine.AllLevelsComplete(engine.NewStore(), nil) != nil {
		t.Errorf("Empty level list must not unlock anything")
	}
}

func TestEngine_CompleteAllNotOnLevelWon(t *testing.T) {
	engine := NewEngine(DefaultRules())
	store := engine.NewStore()
	for _, r := range engine.LevelWon(store, Outcome{LevelID: 1, Theme: "spring"}) {
		if r.ID == "complete_all" {
			t.Errorf("complete_all unlocked by a level win")
		}
	}
}

func TestStore(t *testing.T) {
	rules := DefaultRules()
	rules = append(rules, Rule{ID: "complete_spring", Name: "duplicate"})
	store := NewStore(rules)

	if store.Total() != 4 {
		t.Errorf("Expected duplicates to be dropped, got %d records", store.Total())
	}
	records := store.Records()
	if records[0].ID != "complete_spring" || records[0].Name != "Spring Awakening" {
		t.Errorf("Unexpected first record %+v", records[0])
	}
	records[0].Unlocked = true
	if store.Unlocked("complete_spring") {
		t.Errorf("Records must return a copy")
	}
	if store.Unlocked("unknown") {
		t.Errorf("Unknown id reported unlocked")
	}
	if _, ok := store.unlock("unknown"); ok {
		t.Errorf("Unlocked an unknown id")
	}
}

func TestProperty_RulesFireOnce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	themes := []string{"spring", "summer", "autumn", "winter"}
	properties.Property("no achievement is unlocked twice", prop.ForAll(
		func(picks []int, seconds []int) bool {
			engine := NewEngine(DefaultRules())
			store := engine.NewStore()
			seen := map[string]bool{}
			for i, p := range picks {
				o := Outcome{LevelID: p + 1, Theme: themes[p], Mistakes: i % 2}
				if i < len(seconds) {
					o.Elapsed = time.Duration(seconds[i]) * time.Second
				}
				for _, r := range engine.LevelWon(store, o) {
					if seen[r.ID] {
						return false
					}
					seen[r.ID] = true
				}
				for _, r := range engine.AllLevelsComplete(store, []int{1, 2, 3, 4}) {
					if seen[r.ID] {
						return false
					}
					seen[r.ID] = true
				}
			}
			return store.UnlockedCount() == len(seen)
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.IntRange(0, 120)),
	))

	properties.TestingRun(t)
}
