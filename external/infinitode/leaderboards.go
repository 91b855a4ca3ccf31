package infinitode

import (
	"context"
	"fmt"
	"net/url"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	actionLeaderboardsRank       = "getLeaderboardsRank"
	actionLeaderboards           = "getLeaderboards"
	actionRuntimeLeaderboards    = "getRuntimeLeaderboards"
	actionSkillPointLeaderboard  = "getSkillPointLeaderboard"
	actionDailyQuestLeaderboards = "getDailyQuestLeaderboards"
)

// LeaderboardsRank returns one player's own record on a map. It is never cached.
func (c *Client) LeaderboardsRank(ctx context.Context, query RankQuery) (score.Score, error) {
	q, err := query.normalized()
	if err != nil {
		return score.Score{}, err
	}
	ctx, span := startSpan(ctx, "infinitode.Client.LeaderboardsRank")
	defer span.End()
	annotate(span, q.MapName, q.PlayerID)

	raw, err := c.postAPI(ctx, actionLeaderboardsRank, levelForm(q.MapName, q.PlayerID, q.Mode, q.Difficulty))
	if err != nil {
		return score.Score{}, fmt.Errorf("fetch leaderboards rank mapname=%s playerid=%s: %w", q.MapName, q.PlayerID, err)
	}
	env, err := decodeEnvelope(actionLeaderboardsRank, raw)
	if err != nil {
		return score.Score{}, err
	}
	scope := standardScope(game.MethodLeaderboardsRank, q.MapName, q.Mode, q.Difficulty)
	return scoreFromRecord(scope, q.PlayerID, env.Player), nil
}

// Leaderboards returns the top scores of a map. Anonymous results are served from cache
// while fresh.
func (c *Client) Leaderboards(ctx context.Context, query LeaderboardQuery) (*leaderboard.Leaderboard, error) {
	q, err := query.normalized()
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "infinitode.Client.Leaderboards")
	defer span.End()
	annotate(span, q.MapName, q.PlayerID)

	scope := standardScope(game.MethodLeaderboards, q.MapName, q.Mode, q.Difficulty)
	key := CacheKey{Method: scope.Method, MapName: scope.MapName, Mode: scope.Mode, Difficulty: scope.Difficulty}
	lb, err := c.fetchBoard(ctx, boardRequest{
		action:   actionLeaderboards,
		form:     levelForm(q.MapName, q.PlayerID, q.Mode, q.Difficulty),
		scope:    scope,
		playerID: q.PlayerID,
		cacheKey: &key,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboards mapname=%s: %w", q.MapName, err)
	}
	return lb, nil
}

// RuntimeLeaderboards returns the runtime board of a map with the player's standing
// always attached. It is never cached.
func (c *Client) RuntimeLeaderboards(ctx context.Context, query RuntimeQuery) (*leaderboard.Leaderboard, error) {
	q, err := query.normalized()
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "infinitode.Client.RuntimeLeaderboards")
	defer span.End()
	annotate(span, q.MapName, q.PlayerID)

	lb, err := c.fetchBoard(ctx, boardRequest{
		action:    actionRuntimeLeaderboards,
		form:      levelForm(q.MapName, q.PlayerID, q.Mode, q.Difficulty),
		scope:     standardScope(game.MethodRuntimeLeaderboards, q.MapName, q.Mode, q.Difficulty),
		playerID:  q.PlayerID,
		attachAll: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch runtime leaderboards mapname=%s playerid=%s: %w", q.MapName, q.PlayerID, err)
	}
	return lb, nil
}

func (c *Client) SkillPointLeaderboard(ctx context.Context, query SkillPointQuery) (*leaderboard.Leaderboard, error) {
	q, err := query.normalized()
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "infinitode.Client.SkillPointLeaderboard")
	defer span.End()
	annotate(span, game.MapSkillPoint, q.PlayerID)

	form := url.Values{}
	setPlayerID(form, q.PlayerID)
	key := CacheKey{Method: game.MethodSkillPointLeaderboard}
	lb, err := c.fetchBoard(ctx, boardRequest{
		action:   actionSkillPointLeaderboard,
		form:     form,
		scope:    standardScope(game.MethodSkillPointLeaderboard, game.MapSkillPoint, game.ModeScore, game.DifficultyNormal),
		playerID: q.PlayerID,
		cacheKey: &key,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch skill point leaderboard: %w", err)
	}
	return lb, nil
}

func (c *Client) DailyQuestLeaderboards(ctx context.Context, query DailyQuestQuery) (*leaderboard.Leaderboard, error) {
	q, err := query.normalized()
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "infinitode.Client.DailyQuestLeaderboards")
	defer span.End()
	annotate(span, game.MapDailyQuest, q.PlayerID)

	date := q.questDate(c.now())
	form := url.Values{}
	form.Set("date", date)
	setPlayerID(form, q.PlayerID)

	scope := standardScope(game.MethodDailyQuestLeaderboards, game.MapDailyQuest, game.ModeScore, game.DifficultyNormal)
	scope.Date = date
	key := CacheKey{Method: scope.Method, Date: date}
	lb, err := c.fetchBoard(ctx, boardRequest{
		action:   actionDailyQuestLeaderboards,
		form:     form,
		scope:    scope,
		playerID: q.PlayerID,
		cacheKey: &key,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch daily quest leaderboards date=%s: %w", date, err)
	}
	return lb, nil
}

type boardRequest struct {
	action   string
	form     url.Values
	scope    leaderboard.Scope
	playerID string
	// cacheKey is nil for boards that are never cached.
	cacheKey *CacheKey
	// attachAll attaches the player record even when it is all zeros.
	attachAll bool
}

func (c *Client) fetchBoard(ctx context.Context, req boardRequest) (*leaderboard.Leaderboard, error) {
	if req.cacheKey != nil && req.playerID == "" {
		if lb, ok := c.cache.Get(ctx, *req.cacheKey); ok {
			c.logger.DebugContext(ctx, "infinitode cache hit", "key", req.cacheKey.String())
			return lb.Clone(), nil
		}
	}

	raw, err := c.postAPI(ctx, req.action, req.form)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(req.action, raw)
	if err != nil {
		return nil, err
	}

	attach := req.attachAll || (req.playerID != "" && hasStanding(env.Player))
	lb := buildLeaderboard(req.scope, env, req.playerID, attach)
	if !attach && req.cacheKey != nil {
		c.cache.Set(ctx, *req.cacheKey, lb.Clone())
	}
	return lb, nil
}

func levelForm(mapName, playerID string, mode game.Mode, difficulty game.Difficulty) url.Values {
	form := url.Values{}
	form.Set("gamemode", gameMode)
	form.Set("difficulty", string(difficulty))
	form.Set("mapname", mapName)
	form.Set("mode", string(mode))
	setPlayerID(form, playerID)
	return form
}

func setPlayerID(form url.Values, playerID string) {
	if playerID != "" {
		form.Set("playerid", playerID)
	}
}

func annotate(span trace.Span, mapName, playerID string) {
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("infinitode.mapname", mapName),
		attribute.Bool("infinitode.has_playerid", playerID != ""),
	)
}
