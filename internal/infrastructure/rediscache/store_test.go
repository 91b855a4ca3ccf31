package rediscache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store[infinitode.CacheKey, *leaderboard.Leaderboard], *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New[infinitode.CacheKey, *leaderboard.Leaderboard](client, "tdi:", time.Minute, logging.NewNop()), mr
}

func sampleBoard() *leaderboard.Leaderboard {
	scope := leaderboard.Scope{Method: game.MethodLeaderboards, MapName: "3.b1", Mode: game.ModeScore, Difficulty: game.DifficultyNormal}
	entries := []score.Score{
		{Method: scope.Method, MapName: scope.MapName, Mode: scope.Mode, Difficulty: scope.Difficulty, PlayerID: "U-AAAA-BBBB-CCCCCC", Rank: 1, Score: 900, Nickname: score.String("first")},
		{Method: scope.Method, MapName: scope.MapName, Mode: scope.Mode, Difficulty: scope.Difficulty, PlayerID: "U-DDDD-EEEE-FFFFFF", Rank: 2, Score: 800, Nickname: score.String("second")},
	}
	return leaderboard.New(scope, 4242, entries, nil)
}

func TestStore_RoundTripsLeaderboard(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	key := infinitode.CacheKey{Method: game.MethodLeaderboards, MapName: "3.b1", Mode: game.ModeScore, Difficulty: game.DifficultyNormal}

	_, ok := store.Get(ctx, key)
	require.False(t, ok)

	want := sampleBoard()
	store.Set(ctx, key, want)
	assert.True(t, mr.Exists("tdi:"+key.String()))

	got, ok := store.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, want.Scope, got.Scope)
	assert.Equal(t, want.Total, got.Total)
	assert.Equal(t, want.Entries(), got.Entries())
	assert.Nil(t, got.Player)
}

func TestStore_EntriesExpireWithTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	key := infinitode.CacheKey{Method: game.MethodSeasonalLeaderboard}

	store.Set(ctx, key, sampleBoard())
	mr.FastForward(59 * time.Second)
	_, ok := store.Get(ctx, key)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok = store.Get(ctx, key)
	assert.False(t, ok)
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	store, mr := newTestStore(t)
	key := infinitode.CacheKey{Method: game.MethodSkillPointLeaderboard}

	require.NoError(t, mr.Set("tdi:"+key.String(), "{not json"))

	_, ok := store.Get(context.Background(), key)
	assert.False(t, ok)
}

func TestStore_UnavailableRedisIsMiss(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()
	ctx := context.Background()
	key := infinitode.CacheKey{Method: game.MethodSkillPointLeaderboard}

	store.Set(ctx, key, sampleBoard())
	_, ok := store.Get(ctx, key)
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	key := infinitode.CacheKey{Method: game.MethodDailyQuestLeaderboards, Date: "2026-10-19"}

	store.Set(ctx, key, sampleBoard())
	store.Delete(ctx, key)
	_, ok := store.Get(ctx, key)
	assert.False(t, ok)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Dial(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = Dial(context.Background(), Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	require.Error(t, err)
}

var _ infinitode.Cache = (*Store[infinitode.CacheKey, *leaderboard.Leaderboard])(nil)
