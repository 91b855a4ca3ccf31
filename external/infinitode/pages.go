package infinitode

import (
	"context"
	"fmt"
	"net/url"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/player"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
)

const (
	pageSeasonal = "seasonal_leaderboard"
	pageProfile  = "profile/view"
)

type profileQuery struct {
	PlayerID string `param:"playerid" validate:"tdi_playerid"`
}

// SeasonalLeaderboard scrapes the current season's board. The result is cached.
func (c *Client) SeasonalLeaderboard(ctx context.Context) (*leaderboard.Leaderboard, error) {
	ctx, span := startSpan(ctx, "infinitode.Client.SeasonalLeaderboard")
	defer span.End()

	key := CacheKey{Method: game.MethodSeasonalLeaderboard}
	if lb, ok := c.cache.Get(ctx, key); ok {
		c.logger.DebugContext(ctx, "infinitode cache hit", "key", key.String())
		return lb.Clone(), nil
	}

	raw, err := c.getPage(ctx, pageSeasonal, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch seasonal leaderboard: %w", err)
	}
	doc, err := parseMarkup(pageSeasonal, raw)
	if err != nil {
		return nil, err
	}
	lb, err := parseSeasonal(doc)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, key, lb.Clone())
	return lb, nil
}

// Player scrapes a profile page. Profiles are never cached.
func (c *Client) Player(ctx context.Context, playerID string) (*player.Player, error) {
	if err := validateQuery(profileQuery{PlayerID: playerID}); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "infinitode.Client.Player")
	defer span.End()
	annotate(span, "", playerID)

	query := url.Values{}
	query.Set("id", playerID)
	raw, err := c.getPage(ctx, pageProfile, query)
	if err != nil {
		return nil, fmt.Errorf("fetch profile playerid=%s: %w", playerID, err)
	}
	doc, err := parseMarkup(pageProfile, raw)
	if err != nil {
		return nil, err
	}
	return parseProfile(playerID, doc)
}

// DailyQuestStanding returns the player's entry on today's daily quest board, or nil when
// the player has no record.
func (c *Client) DailyQuestStanding(ctx context.Context, playerID string) (*score.Score, error) {
	lb, err := c.DailyQuestLeaderboards(ctx, DailyQuestQuery{PlayerID: playerID})
	if err != nil {
		return nil, err
	}
	return lb.Player, nil
}

// SkillPointStanding returns the player's entry on the skill point board, or nil when the
// player has no record.
func (c *Client) SkillPointStanding(ctx context.Context, playerID string) (*score.Score, error) {
	lb, err := c.SkillPointLeaderboard(ctx, SkillPointQuery{PlayerID: playerID})
	if err != nil {
		return nil, err
	}
	return lb.Player, nil
}

var _ player.StandingSource = (*Client)(nil)
