package leaderboard

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScope() Scope {
	return Scope{
		Method:     game.MethodLeaderboards,
		MapName:    "5.1",
		Mode:       game.ModeScore,
		Difficulty: game.DifficultyNormal,
	}
}

func sampleBoard(n int) *Leaderboard {
	entries := make([]score.Score, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, score.Score{
			Method:   game.MethodLeaderboards,
			MapName:  "5.1",
			PlayerID: "U-AAAA-BBBB-" + string(rune('A'+i%26)) + "00000",
			Rank:     i,
			Score:    1000 - i,
			Nickname: score.String("player" + string(rune('a'+i%26))),
		})
	}
	return New(sampleScope(), 500, entries, nil)
}

func TestLeaderboard_SliceKeepsScopeAndOrder(t *testing.T) {
	lb := sampleBoard(25)

	head := lb.Slice(0, 10)
	require.Equal(t, 10, head.Len())
	assert.Equal(t, lb.Scope, head.Scope)
	assert.Equal(t, lb.Total, head.Total)

	prev := 0
	for _, entry := range head.All() {
		assert.Greater(t, entry.Rank, prev)
		prev = entry.Rank
	}

	short := sampleBoard(3).Slice(0, 10)
	assert.Equal(t, 3, short.Len())

	tail := lb.Slice(-5, 100)
	require.Equal(t, 5, tail.Len())
	first, ok := tail.At(0)
	require.True(t, ok)
	assert.Equal(t, 21, first.Rank)

	assert.True(t, lb.Slice(10, 2).IsEmpty())
}

func TestLeaderboard_SliceCopiesEntries(t *testing.T) {
	lb := sampleBoard(5)
	sub := lb.Slice(0, 2)

	entries := sub.Entries()
	entries[0].Score = -1

	first, _ := sub.At(0)
	orig, _ := lb.At(0)
	assert.NotEqual(t, -1, first.Score)
	assert.Equal(t, orig.Score, first.Score)
}

func TestLeaderboard_At(t *testing.T) {
	lb := sampleBoard(3)

	last, ok := lb.At(-1)
	require.True(t, ok)
	assert.Equal(t, 3, last.Rank)

	_, ok = lb.At(3)
	assert.False(t, ok)
	_, ok = lb.At(-4)
	assert.False(t, ok)
}

func TestLeaderboard_IterationIsRestartable(t *testing.T) {
	lb := sampleBoard(4)

	count := func() int {
		n := 0
		for range lb.All() {
			n++
		}
		return n
	}
	assert.Equal(t, 4, count())
	assert.Equal(t, 4, count())

	seen := 0
	for i := range lb.All() {
		seen++
		if i == 1 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestLeaderboard_Find(t *testing.T) {
	lb := sampleBoard(4)
	target, _ := lb.At(2)

	got, ok := lb.FindByPlayerID(target.PlayerID)
	require.True(t, ok)
	assert.Equal(t, target.Rank, got.Rank)

	got, ok = lb.FindByNickname(*target.Nickname)
	require.True(t, ok)
	assert.Equal(t, target.PlayerID, got.PlayerID)

	_, ok = lb.FindByRank(99)
	assert.False(t, ok)

	assert.True(t, lb.Contains(target))
	assert.False(t, lb.Contains(score.Score{PlayerID: "U-ZZZZ-ZZZZ-ZZZZZZ"}))
}

func TestLeaderboard_Format(t *testing.T) {
	lb := New(sampleScope(), 2, []score.Score{
		{Rank: 1, Score: 500, Nickname: score.String("alpha")},
		{Rank: 2, Score: 1500, Nickname: score.String("beta")},
	}, nil)

	out, err := lb.Format()
	require.NoError(t, err)
	assert.Equal(t, "#1     alpha                  500\n#2     beta                   1,500", out)

	broken := New(sampleScope(), 1, []score.Score{{Rank: 1, Score: 1}}, nil)
	_, err = broken.Format()
	assert.True(t, errors.Is(err, score.ErrNotFormattable))
}

func TestLeaderboard_JSONRoundTripKeepsPlayer(t *testing.T) {
	player := score.Score{PlayerID: "U-AAAA-BBBB-CCCCCC", Rank: 7, Score: 42}
	lb := New(Scope{Method: game.MethodDailyQuestLeaderboards, MapName: game.MapDailyQuest, Date: "2026-10-19"}, 90, []score.Score{{Rank: 1, Score: 99}}, &player)

	raw, err := json.Marshal(lb)
	require.NoError(t, err)

	var decoded Leaderboard
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "2026-10-19", decoded.Date)
	assert.Equal(t, 90, decoded.Total)
	require.NotNil(t, decoded.Player)
	assert.Equal(t, 7, decoded.Player.Rank)
	assert.Equal(t, 1, decoded.Len())
}

func TestLeaderboard_CloneIsIndependent(t *testing.T) {
	player := score.Score{Rank: 7, Score: 42, Nickname: score.String("me")}
	lb := New(sampleScope(), 500, sampleBoard(3).Entries(), &player)

	cp := lb.Clone()
	cp.Total = -99
	cp.MapName = "tampered"
	*cp.Player.Nickname = "tampered"
	cp.Player.Rank = 1

	assert.Equal(t, 500, lb.Total)
	assert.Equal(t, "5.1", lb.MapName)
	require.NotNil(t, lb.Player)
	assert.Equal(t, "me", *lb.Player.Nickname)
	assert.Equal(t, 7, lb.Player.Rank)
	assert.Equal(t, lb.Entries(), cp.Entries())
}
