package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/player"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	usecasemock "github.com/riskibarqy/tdi-leaderboards/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

const profilePlayerID = "U-AAAA-BBBB-CCCCCC"

func TestProfileService_CombinesProfileAndStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := usecasemock.NewProfileSource(t)
	profile := &player.Player{PlayerID: profilePlayerID, Nickname: "Rainy Day"}

	source.On("Player", ctx, profilePlayerID).Return(profile, nil).Once()
	source.
		On("DailyQuestStanding", mock.Anything, profilePlayerID).
		Return(&score.Score{Method: game.MethodDailyQuestLeaderboards, MapName: game.MapDailyQuest, PlayerID: profilePlayerID, Rank: 3, Score: 420}, nil).
		Once()
	source.
		On("SkillPointStanding", mock.Anything, profilePlayerID).
		Return(nil, nil).
		Once()

	service := NewProfileService(source)
	got, err := service.Profile(ctx, profilePlayerID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.Player != profile {
		t.Fatalf("expected profile to be passed through")
	}
	if got.DailyQuest.Rank != 3 || got.DailyQuest.Score != 420 {
		t.Fatalf("unexpected daily quest standing: %+v", got.DailyQuest)
	}
	if got.SkillPoint.IsRanked() || got.SkillPoint.MapName != game.MapSkillPoint {
		t.Fatalf("expected unranked skill point standing, got %+v", got.SkillPoint)
	}
}

func TestProfileService_ProfileFailureSkipsStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := usecasemock.NewProfileSource(t)
	source.On("Player", ctx, profilePlayerID).Return(nil, infinitode.ErrAPI).Once()

	service := NewProfileService(source)
	_, err := service.Profile(ctx, profilePlayerID)
	if !errors.Is(err, ErrDependencyUnavailable) || !errors.Is(err, infinitode.ErrAPI) {
		t.Fatalf("expected ErrDependencyUnavailable wrapping ErrAPI, got %v", err)
	}
	source.AssertNotCalled(t, "DailyQuestStanding", mock.Anything, mock.Anything)
	source.AssertNotCalled(t, "SkillPointStanding", mock.Anything, mock.Anything)
}

func TestProfileService_StandingFailureFailsCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := usecasemock.NewProfileSource(t)
	profile := &player.Player{PlayerID: profilePlayerID, Nickname: "Rainy Day"}

	source.On("Player", ctx, profilePlayerID).Return(profile, nil).Once()
	source.On("DailyQuestStanding", mock.Anything, profilePlayerID).Return(nil, infinitode.ErrAPI).Once()
	source.On("SkillPointStanding", mock.Anything, profilePlayerID).Return(nil, nil).Maybe()

	service := NewProfileService(source)
	_, err := service.Profile(ctx, profilePlayerID)
	if !errors.Is(err, infinitode.ErrAPI) {
		t.Fatalf("expected ErrAPI, got %v", err)
	}
}

func TestProfileService_BadPlayerIDIsInvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := usecasemock.NewProfileSource(t)
	source.
		On("Player", ctx, "nobody").
		Return(nil, fmt.Errorf("invalid playerid %q: %w", "nobody", infinitode.ErrBadArgument)).
		Once()

	service := NewProfileService(source)
	_, err := service.Profile(ctx, "nobody")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
