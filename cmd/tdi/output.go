package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/player"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"github.com/riskibarqy/tdi-leaderboards/internal/usecase"
)

func (s *session) printJSON(v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(raw))
	return err
}

func (s *session) printBoard(lb *leaderboard.Leaderboard) error {
	if s.asJSON {
		return s.printJSON(lb)
	}
	return writeBoard(s.out, lb)
}

func (s *session) printScore(item score.Score) error {
	if s.asJSON {
		return s.printJSON(item)
	}
	_, err := fmt.Fprintln(s.out, scoreRow(item))
	return err
}

type profileView struct {
	PlayerID   string                      `json:"playerid"`
	Nickname   string                      `json:"nickname"`
	AvatarURL  string                      `json:"avatar_url"`
	Level      int                         `json:"level"`
	XP         int                         `json:"xp"`
	XPMax      int                         `json:"xp_max"`
	TotalScore int                         `json:"total_score"`
	TotalRank  int                         `json:"total_rank"`
	TotalTop   string                      `json:"total_top"`
	Replays    int                         `json:"replays"`
	Issues     int                         `json:"issues"`
	CreatedAt  *time.Time                  `json:"created_at,omitempty"`
	Badges     map[string]player.BadgeRank `json:"badges"`
	Levels     map[string]score.Score      `json:"levels"`
	DailyQuest score.Score                 `json:"daily_quest"`
	SkillPoint score.Score                 `json:"skill_point"`
}

func newProfileView(profile usecase.Profile) profileView {
	p := profile.Player
	view := profileView{
		PlayerID:   p.PlayerID,
		Nickname:   p.Nickname,
		AvatarURL:  p.AvatarURL(),
		Level:      p.Level,
		XP:         p.XP,
		XPMax:      p.XPMax,
		TotalScore: p.TotalScore,
		TotalRank:  p.TotalRank,
		TotalTop:   p.TotalTop,
		Replays:    p.Replays,
		Issues:     p.Issues,
		Badges:     p.Badges,
		Levels:     p.LevelsSnapshot(),
		DailyQuest: profile.DailyQuest,
		SkillPoint: profile.SkillPoint,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		view.CreatedAt = &createdAt
	}
	return view
}

func (s *session) printProfile(profile usecase.Profile) error {
	view := newProfileView(profile)
	if s.asJSON {
		return s.printJSON(view)
	}
	return writeProfile(s.out, view)
}

func (s *session) printSweep(result usecase.SweepResult) error {
	if s.asJSON {
		return s.printJSON(result)
	}
	return writeSweep(s.out, result)
}

func writeBoard(w io.Writer, lb *leaderboard.Leaderboard) error {
	header := fmt.Sprintf("%s %s", lb.Method, lb.MapName)
	switch {
	case lb.Season > 0:
		header += fmt.Sprintf(" season %d", lb.Season)
	case lb.Date != "":
		header += " " + lb.Date
	case lb.Mode != "":
		header += fmt.Sprintf(" %s/%s", lb.Mode, lb.Difficulty)
	}
	if _, err := fmt.Fprintf(w, "%s (%d players)\n", header, lb.Total); err != nil {
		return err
	}

	rows, err := lb.Format()
	if errors.Is(err, score.ErrNotFormattable) {
		for _, entry := range lb.All() {
			if _, err := fmt.Fprintln(w, scoreRow(entry)); err != nil {
				return err
			}
		}
	} else if err != nil {
		return err
	} else if rows != "" {
		if _, err := fmt.Fprintln(w, rows); err != nil {
			return err
		}
	}

	if lb.Player != nil {
		if _, err := fmt.Fprintf(w, "you: %s\n", scoreRow(*lb.Player)); err != nil {
			return err
		}
	}
	return nil
}

// scoreRow renders entries without a nickname by player id.
func scoreRow(item score.Score) string {
	if row, err := item.Format(); err == nil {
		return row
	}
	named := item
	named.Nickname = score.String(item.PlayerID)
	row, _ := named.Format()
	return row
}

func writeProfile(w io.Writer, view profileView) error {
	lines := []string{
		fmt.Sprintf("%s (%s)", view.Nickname, view.PlayerID),
		fmt.Sprintf("level %d  xp %d/%d", view.Level, view.XP, view.XPMax),
		fmt.Sprintf("total score %d  rank %d  top %s", view.TotalScore, view.TotalRank, view.TotalTop),
		fmt.Sprintf("replays %d  issues %d", view.Replays, view.Issues),
	}
	if view.CreatedAt != nil {
		lines = append(lines, "joined "+view.CreatedAt.Format("2006-01-02"))
	}
	lines = append(lines,
		"daily quest: "+standingRow(view.DailyQuest),
		"skill point: "+standingRow(view.SkillPoint),
	)
	for _, name := range slices.Sorted(maps.Keys(view.Badges)) {
		badge := view.Badges[name]
		lines = append(lines, fmt.Sprintf("badge %s %s #%s", name, badge.Rarity, badge.Color))
	}
	for _, level := range slices.Sorted(maps.Keys(view.Levels)) {
		lines = append(lines, fmt.Sprintf("%-6s %s", level, standingRow(view.Levels[level])))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func standingRow(item score.Score) string {
	if !item.IsRanked() {
		return "not ranked"
	}
	row := fmt.Sprintf("#%d score %d", item.Rank, item.Score)
	if item.Top != nil {
		row += " top " + *item.Top
	}
	return row
}

func writeSweep(w io.Writer, result usecase.SweepResult) error {
	for _, task := range result.Tasks {
		line := fmt.Sprintf("%-6s %-7s %4dms", task.MapName, task.Status, task.DurationMs)
		switch {
		case task.Message != "":
			line += "  " + task.Message
		case task.Leader != nil:
			line += "  " + scoreRow(*task.Leader)
		}
		if task.Player != nil {
			line += "  you: " + standingRow(*task.Player)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d maps, %d ok, %d failed, %d workers\n",
		result.MapCount, result.SuccessCount, result.FailedCount, result.WorkerCount)
	return err
}
