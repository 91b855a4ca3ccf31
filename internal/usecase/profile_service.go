package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/player"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"github.com/sourcegraph/conc/pool"
)

// ProfileSource loads profiles and the standings that are not part of the profile page.
type ProfileSource interface {
	player.StandingSource
	Player(ctx context.Context, playerID string) (*player.Player, error)
}

// Profile is a player's profile together with the daily quest and skill point standings.
type Profile struct {
	Player     *player.Player
	DailyQuest score.Score
	SkillPoint score.Score
}

type ProfileService struct {
	source ProfileSource
}

func NewProfileService(source ProfileSource) *ProfileService {
	return &ProfileService{source: source}
}

// Profile loads the profile page, then resolves both standings concurrently. Any failure
// fails the whole call: bad ids as ErrInvalidInput, everything else as
// ErrDependencyUnavailable. The source error stays in the chain.
func (s *ProfileService) Profile(ctx context.Context, playerID string) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Profile")
	defer span.End()

	p, err := s.source.Player(ctx, playerID)
	if err != nil {
		return Profile{}, classifySourceError(fmt.Errorf("load profile playerid=%s: %w", playerID, err))
	}

	out := Profile{Player: p}
	facets := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	facets.Go(func(ctx context.Context) error {
		standing, err := p.GetDailyQuest(ctx, s.source)
		if err != nil {
			return err
		}
		out.DailyQuest = standing
		return nil
	})
	facets.Go(func(ctx context.Context) error {
		standing, err := p.GetSkillPoint(ctx, s.source)
		if err != nil {
			return err
		}
		out.SkillPoint = standing
		return nil
	})
	if err := facets.Wait(); err != nil {
		return Profile{}, classifySourceError(err)
	}
	return out, nil
}

func classifySourceError(err error) error {
	if errors.Is(err, infinitode.ErrBadArgument) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
}
