package leaderboard

import (
	"iter"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"github.com/valyala/bytebufferpool"
)

// Scope identifies what a leaderboard ranks. Date is set for daily-quest boards and
// Season for the seasonal board.
type Scope struct {
	Method     game.Method     `json:"method"`
	MapName    string          `json:"mapname"`
	Mode       game.Mode       `json:"mode"`
	Difficulty game.Difficulty `json:"difficulty"`
	Date       string          `json:"date,omitempty"`
	Season     int             `json:"season,omitempty"`
}

// Leaderboard is an ordered sequence of scores in the order the service ranked them.
// Player holds the requesting player's own standing when one was attached.
type Leaderboard struct {
	Scope
	Total  int
	Player *score.Score

	entries []score.Score
}

func New(scope Scope, total int, entries []score.Score, player *score.Score) *Leaderboard {
	return &Leaderboard{
		Scope:   scope,
		Total:   total,
		Player:  player,
		entries: append([]score.Score(nil), entries...),
	}
}

func (l *Leaderboard) Len() int {
	return len(l.entries)
}

func (l *Leaderboard) IsEmpty() bool {
	return len(l.entries) == 0
}

// At returns the i-th entry. Negative indexes count from the end.
func (l *Leaderboard) At(i int) (score.Score, bool) {
	if i < 0 {
		i += len(l.entries)
	}
	if i < 0 || i >= len(l.entries) {
		return score.Score{}, false
	}
	return l.entries[i], true
}

// Slice returns a new leaderboard holding entries [i, j) with the same scope, total and
// player. Bounds are clamped and negative bounds count from the end.
func (l *Leaderboard) Slice(i, j int) *Leaderboard {
	i = clampIndex(i, len(l.entries))
	j = clampIndex(j, len(l.entries))
	if j < i {
		j = i
	}
	return New(l.Scope, l.Total, l.entries[i:j], l.Player)
}

// Clone returns a deep copy. Callers holding the copy cannot affect l.
func (l *Leaderboard) Clone() *Leaderboard {
	entries := make([]score.Score, len(l.entries))
	for i, entry := range l.entries {
		entries[i] = entry.Clone()
	}
	var player *score.Score
	if l.Player != nil {
		item := l.Player.Clone()
		player = &item
	}
	return &Leaderboard{
		Scope:   l.Scope,
		Total:   l.Total,
		Player:  player,
		entries: entries,
	}
}

func (l *Leaderboard) Entries() []score.Score {
	return append([]score.Score(nil), l.entries...)
}

func (l *Leaderboard) All() iter.Seq2[int, score.Score] {
	return func(yield func(int, score.Score) bool) {
		for i, entry := range l.entries {
			if !yield(i, entry) {
				return
			}
		}
	}
}

func (l *Leaderboard) Find(match func(score.Score) bool) (score.Score, bool) {
	for _, entry := range l.entries {
		if match(entry) {
			return entry, true
		}
	}
	return score.Score{}, false
}

func (l *Leaderboard) FindByPlayerID(playerID string) (score.Score, bool) {
	return l.Find(func(s score.Score) bool { return s.PlayerID == playerID })
}

func (l *Leaderboard) FindByNickname(nickname string) (score.Score, bool) {
	return l.Find(func(s score.Score) bool { return s.Nickname != nil && *s.Nickname == nickname })
}

func (l *Leaderboard) FindByRank(rank int) (score.Score, bool) {
	return l.Find(func(s score.Score) bool { return s.Rank == rank })
}

func (l *Leaderboard) Contains(target score.Score) bool {
	_, ok := l.Find(func(s score.Score) bool {
		return s.PlayerID == target.PlayerID && s.Rank == target.Rank && s.Score == target.Score
	})
	return ok
}

// Format renders every entry as one row per line. It fails on the first entry without a
// nickname.
func (l *Leaderboard) Format() (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, entry := range l.entries {
		row, err := entry.Format()
		if err != nil {
			return "", err
		}
		if i > 0 {
			_ = buf.WriteByte('\n')
		}
		_, _ = buf.WriteString(row)
	}
	return buf.String(), nil
}

type snapshot struct {
	Scope   Scope         `json:"scope"`
	Total   int           `json:"total"`
	Player  *score.Score  `json:"player,omitempty"`
	Entries []score.Score `json:"entries"`
}

func (l *Leaderboard) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(snapshot{
		Scope:   l.Scope,
		Total:   l.Total,
		Player:  l.Player,
		Entries: l.entries,
	})
}

func (l *Leaderboard) UnmarshalJSON(data []byte) error {
	var decoded snapshot
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*l = *New(decoded.Scope, decoded.Total, decoded.Entries, decoded.Player)
	return nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
