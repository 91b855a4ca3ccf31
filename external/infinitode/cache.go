package infinitode

import (
	"context"
	"strings"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
)

// CacheKey identifies one anonymous leaderboard result.
type CacheKey struct {
	Method     game.Method
	MapName    string
	Mode       game.Mode
	Difficulty game.Difficulty
	Date       string
}

func (k CacheKey) String() string {
	return strings.Join([]string{string(k.Method), k.MapName, string(k.Mode), string(k.Difficulty), k.Date}, ":")
}

// Cache holds anonymous leaderboard results. Implementations own the expiry policy; Get
// reports false for missing and expired entries alike.
type Cache interface {
	Get(ctx context.Context, key CacheKey) (*leaderboard.Leaderboard, bool)
	Set(ctx context.Context, key CacheKey, lb *leaderboard.Leaderboard)
}
