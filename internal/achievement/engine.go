package achievement

// Engine evaluates a fixed rule table against a Store.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over rules, evaluated in the given order.
func NewEngine(rules []Rule) *Engine {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Engine{rules: out}
}

// Rules returns a copy of the rule table.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// NewStore creates a store holding one record per rule of this engine.
func (e *Engine) NewStore() *Store {
	return NewStore(e.rules)
}

// LevelWon marks the level as won and returns the records it newly unlocks, in rule order.
func (e *Engine) LevelWon(store *Store, o Outcome) []Record {
	store.markWon(o.LevelID)

	var unlocked []Record
	for _, r := range e.rules {
		if store.Unlocked(r.ID) || !r.Matches(o) {
			continue
		}
		if rec, ok := store.unlock(r.ID); ok {
			unlocked = append(unlocked, rec)
		}
	}
	return unlocked
}

// AllLevelsComplete fires the complete-all rules once every listed level has been won.
func (e *Engine) AllLevelsComplete(store *Store, levelIDs []int) []Record {
	if len(levelIDs) == 0 {
		return nil
	}
	for _, id := range levelIDs {
		if !store.Won(id) {
			return nil
		}
	}

	var unlocked []Record
	for _, r := range e.rules {
		if r.Event != EventCompleteAll || store.Unlocked(r.ID) {
			continue
		}
		if rec, ok := store.unlock(r.ID); ok {
			unlocked = append(unlocked, rec)
		}
	}
	return unlocked
}
