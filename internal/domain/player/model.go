package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
)

const avatarURLFormat = "https://infinitode.prineside.com/img/avatars/%s-128.png"

// BadgeRank is the rarity tier and color id of one profile badge.
type BadgeRank struct {
	Rarity string
	Color  string
}

// StandingSource answers "where does this player stand" for the leaderboards that are not
// part of the profile page. A nil score means the player has no record.
type StandingSource interface {
	DailyQuestStanding(ctx context.Context, playerID string) (*score.Score, error)
	SkillPointStanding(ctx context.Context, playerID string) (*score.Score, error)
}

// Player is a scraped profile. DailyQuest and SkillPoint standings are fetched on first
// use and kept for the lifetime of the value.
type Player struct {
	PlayerID   string
	Nickname   string
	Level      int
	XP         int
	XPMax      int
	TotalScore int
	TotalRank  int
	TotalTop   string
	Replays    int
	Issues     int
	CreatedAt  time.Time
	Badges     map[string]BadgeRank
	// Levels is filled by the parser. Score may add entries to it, so once the player is
	// shared read it through LevelsSnapshot.
	Levels     map[string]score.Score

	levelsMu sync.Mutex

	dailyQuestMu sync.Mutex
	dailyQuest   *score.Score

	skillPointMu sync.Mutex
	skillPoint   *score.Score
}

func (p *Player) AvatarURL() string {
	return fmt.Sprintf(avatarURLFormat, p.PlayerID)
}

// Score returns the player's record on a level. Levels without a record get the unranked
// sentinel, which is stored so later lookups return the same value.
func (p *Player) Score(level string) score.Score {
	p.levelsMu.Lock()
	defer p.levelsMu.Unlock()

	if item, ok := p.Levels[level]; ok {
		return item
	}
	if p.Levels == nil {
		p.Levels = make(map[string]score.Score)
	}
	item := score.Unranked(game.MethodPlayer, level, p.PlayerID)
	p.Levels[level] = item
	return item
}

// LevelsSnapshot returns a copy of Levels taken under the lock Score writes with.
func (p *Player) LevelsSnapshot() map[string]score.Score {
	p.levelsMu.Lock()
	defer p.levelsMu.Unlock()

	out := make(map[string]score.Score, len(p.Levels))
	for level, item := range p.Levels {
		out[level] = item.Clone()
	}
	return out
}

func (p *Player) GetDailyQuest(ctx context.Context, src StandingSource) (score.Score, error) {
	p.dailyQuestMu.Lock()
	defer p.dailyQuestMu.Unlock()

	if p.dailyQuest != nil {
		return *p.dailyQuest, nil
	}
	standing, err := src.DailyQuestStanding(ctx, p.PlayerID)
	if err != nil {
		return score.Score{}, fmt.Errorf("fetch daily quest standing playerid=%s: %w", p.PlayerID, err)
	}
	p.dailyQuest = orUnranked(standing, game.MapDailyQuest, p.PlayerID)
	return *p.dailyQuest, nil
}

func (p *Player) GetSkillPoint(ctx context.Context, src StandingSource) (score.Score, error) {
	p.skillPointMu.Lock()
	defer p.skillPointMu.Unlock()

	if p.skillPoint != nil {
		return *p.skillPoint, nil
	}
	standing, err := src.SkillPointStanding(ctx, p.PlayerID)
	if err != nil {
		return score.Score{}, fmt.Errorf("fetch skill point standing playerid=%s: %w", p.PlayerID, err)
	}
	p.skillPoint = orUnranked(standing, game.MapSkillPoint, p.PlayerID)
	return *p.skillPoint, nil
}

func orUnranked(standing *score.Score, mapName, playerID string) *score.Score {
	if standing != nil {
		item := *standing
		return &item
	}
	item := score.Unranked(game.MethodPlayer, mapName, playerID)
	return &item
}
