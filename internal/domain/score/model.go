package score

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnrankedTop is the percentile text the service shows for a player without a record.
const UnrankedTop = "-%"

var ErrNotFormattable = errors.New("score has no nickname attached")

var numberPrinter = message.NewPrinter(language.English)

// Badge is the cosmetic marker a player pins next to their name.
type Badge struct {
	IconImg      string `json:"iconImg"`
	IconColor    string `json:"iconColor"`
	OverlayImg   string `json:"overlayImg"`
	OverlayColor string `json:"overlayColor"`
}

// Score is one ranked entry, or a player's own standing within a leaderboard.
// Optional fields are nil when the producing call does not report them.
type Score struct {
	Method     game.Method     `json:"method"`
	MapName    string          `json:"mapname"`
	Mode       game.Mode       `json:"mode"`
	Difficulty game.Difficulty `json:"difficulty"`
	PlayerID   string          `json:"playerid"`
	Rank       int             `json:"rank"`
	Score      int             `json:"score"`

	Nickname    *string `json:"nickname,omitempty"`
	Level       *int    `json:"level,omitempty"`
	Total       *int    `json:"total,omitempty"`
	Top         *string `json:"top,omitempty"`
	PinnedBadge *Badge  `json:"pinned_badge,omitempty"`
	Position    *int    `json:"position,omitempty"`
	HasPfp      *bool   `json:"has_pfp,omitempty"`
}

// Unranked builds the zero standing used when the service has no record for a player.
func Unranked(method game.Method, mapName, playerID string) Score {
	return Score{
		Method:     method,
		MapName:    mapName,
		Mode:       game.ModeScore,
		Difficulty: game.DifficultyNormal,
		PlayerID:   playerID,
		Total:      Int(0),
		Top:        String(UnrankedTop),
	}
}

func (s Score) IsRanked() bool {
	return s.Rank > 0
}

func (s Score) NicknameOr(fallback string) string {
	if s.Nickname == nil {
		return fallback
	}
	return *s.Nickname
}

// Format renders the score as one leaderboard row: rank, nickname and score.
func (s Score) Format() (string, error) {
	if s.Nickname == nil {
		return "", fmt.Errorf("%w: rank=%d playerid=%s", ErrNotFormattable, s.Rank, s.PlayerID)
	}
	return fmt.Sprintf("#%-5d %-22s %s", s.Rank, truncateNickname(*s.Nickname), numberPrinter.Sprintf("%d", s.Score)), nil
}

func truncateNickname(nickname string) string {
	runes := []rune(nickname)
	if len(runes) < 21 {
		return nickname
	}
	return string(runes[:19]) + "..."
}

// Clone returns a copy that shares no pointers with s.
func (s Score) Clone() Score {
	out := s
	if s.Nickname != nil {
		out.Nickname = String(*s.Nickname)
	}
	if s.Level != nil {
		out.Level = Int(*s.Level)
	}
	if s.Total != nil {
		out.Total = Int(*s.Total)
	}
	if s.Top != nil {
		out.Top = String(*s.Top)
	}
	if s.PinnedBadge != nil {
		badge := *s.PinnedBadge
		out.PinnedBadge = &badge
	}
	if s.Position != nil {
		out.Position = Int(*s.Position)
	}
	if s.HasPfp != nil {
		out.HasPfp = Bool(*s.HasPfp)
	}
	return out
}

func Int(v int) *int {
	return &v
}

func String(v string) *string {
	return &v
}

func Bool(v bool) *bool {
	return &v
}
