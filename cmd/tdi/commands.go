package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/usecase"
)

type boardFlags struct {
	mode       string
	difficulty string
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", string(game.ModeScore), "Leaderboard mode: score or waves")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", string(game.DifficultyNormal), "Difficulty: EASY, NORMAL or ENDLESS_I")
}

func leaderboardCmd(s *session) *cobra.Command {
	var flags boardFlags
	var playerID string
	cmd := &cobra.Command{
		Use:   "leaderboard <mapname>",
		Short: "Show the top scores of a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := s.app.Client.Leaderboards(cmd.Context(), infinitode.LeaderboardQuery{
				MapName:    args[0],
				PlayerID:   playerID,
				Mode:       game.Mode(flags.mode),
				Difficulty: game.Difficulty(flags.difficulty),
			})
			if err != nil {
				return err
			}
			return s.printBoard(lb)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&playerID, "playerid", "", "Attach this player's own standing")
	return cmd
}

func rankCmd(s *session) *cobra.Command {
	var flags boardFlags
	cmd := &cobra.Command{
		Use:   "rank <mapname> <playerid>",
		Short: "Show one player's record on a map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := s.app.Client.LeaderboardsRank(cmd.Context(), infinitode.RankQuery{
				MapName:    args[0],
				PlayerID:   args[1],
				Mode:       game.Mode(flags.mode),
				Difficulty: game.Difficulty(flags.difficulty),
			})
			if err != nil {
				return err
			}
			return s.printScore(item)
		},
	}
	flags.register(cmd)
	return cmd
}

func runtimeCmd(s *session) *cobra.Command {
	var flags boardFlags
	cmd := &cobra.Command{
		Use:   "runtime <mapname> <playerid>",
		Short: "Show the runtime leaderboard around a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := s.app.Client.RuntimeLeaderboards(cmd.Context(), infinitode.RuntimeQuery{
				MapName:    args[0],
				PlayerID:   args[1],
				Mode:       game.Mode(flags.mode),
				Difficulty: game.Difficulty(flags.difficulty),
			})
			if err != nil {
				return err
			}
			return s.printBoard(lb)
		},
	}
	flags.register(cmd)
	return cmd
}

func skillPointCmd(s *session) *cobra.Command {
	var playerID string
	cmd := &cobra.Command{
		Use:   "skillpoint",
		Short: "Show the skill point leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := s.app.Client.SkillPointLeaderboard(cmd.Context(), infinitode.SkillPointQuery{PlayerID: playerID})
			if err != nil {
				return err
			}
			return s.printBoard(lb)
		},
	}
	cmd.Flags().StringVar(&playerID, "playerid", "", "Attach this player's own standing")
	return cmd
}

func dailyQuestCmd(s *session) *cobra.Command {
	var playerID, date string
	cmd := &cobra.Command{
		Use:   "dailyquest",
		Short: "Show the daily quest leaderboard of one UTC day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := s.app.Client.DailyQuestLeaderboards(cmd.Context(), infinitode.DailyQuestQuery{
				Date:     s.questDate(date),
				PlayerID: playerID,
			})
			if err != nil {
				return err
			}
			return s.printBoard(lb)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Quest day as YYYY-MM-DD (default today, UTC)")
	cmd.Flags().StringVar(&playerID, "playerid", "", "Attach this player's own standing")
	return cmd
}

// questDate falls back to today when the flag does not parse.
func (s *session) questDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := infinitode.ParseQuestDate(value)
	if err != nil {
		s.logger.Warn("invalid quest date, using today", "date", value, "error", err)
		return time.Time{}
	}
	return parsed
}

func seasonalCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seasonal",
		Short: "Show the current season leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := s.app.Client.SeasonalLeaderboard(cmd.Context())
			if err != nil {
				return err
			}
			return s.printBoard(lb)
		},
	}
}

func playerCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "player <playerid>",
		Short: "Show a player's profile with daily quest and skill point standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := s.app.Profile.Profile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.printProfile(profile)
		},
	}
}

func sweepCmd(s *session) *cobra.Command {
	var flags boardFlags
	var maps []string
	var playerID string
	var workers int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Fetch the leaderboards of many maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(maps) == 0 {
				maps = s.cfg.SweepMaps
			}
			result, err := s.app.Sweep.Sweep(cmd.Context(), usecase.SweepInput{
				Maps:       maps,
				Mode:       game.Mode(flags.mode),
				Difficulty: game.Difficulty(flags.difficulty),
				PlayerID:   playerID,
				MaxWorkers: workers,
			})
			if err != nil {
				return err
			}
			return s.printSweep(result)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&maps, "maps", nil, "Comma separated map names (default TDI_SWEEP_MAPS, then every map)")
	cmd.Flags().StringVar(&playerID, "playerid", "", "Attach this player's own standing on every map")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent requests (default TDI_SWEEP_CONCURRENCY)")
	return cmd
}
