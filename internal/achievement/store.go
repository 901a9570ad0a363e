package achievement

// Record is the unlock state of one achievement.
type Record struct {
	ID          string
	Name        string
	Description string
	Unlocked    bool
}

// Store holds unlock flags and won levels for the lifetime of one player session.
// It is not safe for concurrent use.
type Store struct {
	records []Record
	index   map[string]int
	won     map[int]bool
}

// NewStore creates a store with one locked record per rule, in rule order.
func NewStore(rules []Rule) *Store {
	s := &Store{
		records: make([]Record, 0, len(rules)),
		index:   make(map[string]int, len(rules)),
		won:     make(map[int]bool),
	}
	for _, r := range rules {
		if _, dup := s.index[r.ID]; dup {
			continue
		}
		s.index[r.ID] = len(s.records)
		s.records = append(s.records, Record{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return s
}

// Records returns a copy of every record.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Unlocked(id string) bool {
	i, ok := s.index[id]
	return ok && s.records[i].Unlocked
}

func (s *Store) UnlockedCount() int {
	n := 0
	for _, r := range s.records {
		if r.Unlocked {
			n++
		}
	}
	return n
}

// Total returns the number of known achievements.
func (s *Store) Total() int {
	return len(s.records)
}

// Won reports whether the level has been won at least once.
func (s *Store) Won(levelID int) bool {
	return s.won[levelID]
}

func (s *Store) markWon(levelID int) {
	s.won[levelID] = true
}

// unlock flips the record and returns it; ok is false if it was already unlocked or unknown.
func (s *Store) unlock(id string) (Record, bool) {
	i, known := s.index[id]
	if !known || s.records[i].Unlocked {
		return Record{}, false
	}
	s.records[i].Unlocked = true
	return s.records[i], true
}
