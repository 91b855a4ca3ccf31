package infinitode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
)

const statusSuccess = "success"

type apiEnvelope struct {
	Status       string           `json:"status"`
	Player       map[string]any   `json:"player"`
	Leaderboards []map[string]any `json:"leaderboards"`
}

func decodeEnvelope(call string, raw []byte) (apiEnvelope, error) {
	var out apiEnvelope
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return apiEnvelope{}, fmt.Errorf("%w: decode %s response: %w body=%s", ErrAPI, call, err, abbreviateBody(raw))
	}
	if out.Status != statusSuccess {
		return apiEnvelope{}, apiErrorf("error response from server: call=%s status=%q", call, out.Status)
	}
	return out, nil
}

// hasStanding reports whether the player record holds a real standing. The service answers
// with zeros for anonymous calls and for players without a record.
func hasStanding(player map[string]any) bool {
	return getInt(player, "score") != 0 && getInt(player, "rank") != 0 && getInt(player, "total") != 0
}

// buildLeaderboard turns the rows of a structured response into a leaderboard. Rank is the
// 1-based position of the row; the player record is attached only when withPlayer is set.
func buildLeaderboard(scope leaderboard.Scope, env apiEnvelope, playerID string, withPlayer bool) *leaderboard.Leaderboard {
	entries := make([]score.Score, 0, len(env.Leaderboards))
	for i, row := range env.Leaderboards {
		item := scoreFromRecord(scope, getString(row, "playerid"), row)
		item.Rank = i + 1
		entries = append(entries, item)
	}

	var player *score.Score
	if withPlayer {
		item := scoreFromRecord(scope, playerID, env.Player)
		player = &item
	}
	return leaderboard.New(scope, getInt(env.Player, "total"), entries, player)
}

func scoreFromRecord(scope leaderboard.Scope, playerID string, src map[string]any) score.Score {
	out := score.Score{
		Method:     scope.Method,
		MapName:    scope.MapName,
		Mode:       scope.Mode,
		Difficulty: scope.Difficulty,
		PlayerID:   playerID,
		Rank:       getInt(src, "rank"),
		Score:      getInt(src, "score"),
	}
	if nickname, ok := lookupString(src, "nickname"); ok {
		out.Nickname = score.String(nickname)
	}
	if level, ok := lookupInt(src, "level"); ok {
		out.Level = score.Int(level)
	}
	if total, ok := lookupInt(src, "total"); ok {
		out.Total = score.Int(total)
	}
	if top, ok := lookupString(src, "top"); ok {
		out.Top = score.String(top)
	}
	if position, ok := lookupInt(src, "position"); ok {
		out.Position = score.Int(position)
	}
	if hasPfp, ok := src["hasPfp"].(bool); ok {
		out.HasPfp = score.Bool(hasPfp)
	}
	if badge, ok := src["pinnedBadge"].(map[string]any); ok {
		out.PinnedBadge = &score.Badge{
			IconImg:      getString(badge, "iconImg"),
			IconColor:    getString(badge, "iconColor"),
			OverlayImg:   getString(badge, "overlayImg"),
			OverlayColor: getString(badge, "overlayColor"),
		}
	}
	return out
}

func standardScope(method game.Method, mapName string, mode game.Mode, difficulty game.Difficulty) leaderboard.Scope {
	return leaderboard.Scope{Method: method, MapName: mapName, Mode: mode, Difficulty: difficulty}
}

func getString(src map[string]any, key string) string {
	value, _ := lookupString(src, key)
	return value
}

func lookupString(src map[string]any, key string) (string, bool) {
	if src == nil {
		return "", false
	}
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return "", false
	}
}

// getInt reads a counter that may arrive as a number or a numeric string. Missing,
// malformed and negative values read as 0.
func getInt(src map[string]any, key string) int {
	value, _ := lookupInt(src, key)
	return value
}

func lookupInt(src map[string]any, key string) (int, bool) {
	if src == nil {
		return 0, false
	}
	var value int
	switch typed := src[key].(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		value = int(typed)
	case int:
		value = typed
	case int64:
		value = int(typed)
	case string:
		parsed, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(typed), ",", ""))
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		return 0, false
	}
	if value < 0 {
		value = 0
	}
	return value, true
}
