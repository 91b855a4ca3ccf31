package score

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
)

func TestScoreFormat(t *testing.T) {
	tests := []struct {
		name  string
		score Score
		want  string
	}{
		{
			name:  "short nickname",
			score: Score{Rank: 1, Score: 1234567, Nickname: String("eupho")},
			want:  "#1     eupho                  1,234,567",
		},
		{
			name:  "long nickname is cut",
			score: Score{Rank: 12, Score: 5, Nickname: String("abcdefghijklmnopqrstuvwxyz")},
			want:  "#12    abcdefghijklmnopqrs... 5",
		},
		{
			name:  "twenty characters stay intact",
			score: Score{Rank: 200, Score: 0, Nickname: String("abcdefghijklmnopqrst")},
			want:  "#200   abcdefghijklmnopqrst   0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.score.Format()
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected row:\n got=%q\nwant=%q", got, tc.want)
			}
		})
	}
}

func TestScoreFormat_RequiresNickname(t *testing.T) {
	_, err := Score{Rank: 3, Score: 10, PlayerID: "U-AAAA-BBBB-CCCCCC"}.Format()
	if !errors.Is(err, ErrNotFormattable) {
		t.Fatalf("expected ErrNotFormattable, got %v", err)
	}
}

func TestUnranked(t *testing.T) {
	got := Unranked(game.MethodPlayer, game.MapDailyQuest, "U-AAAA-BBBB-CCCCCC")
	if got.IsRanked() || got.Rank != 0 || got.Score != 0 {
		t.Fatalf("expected unranked zero score, got %+v", got)
	}
	if got.Total == nil || *got.Total != 0 {
		t.Fatalf("expected total=0, got %v", got.Total)
	}
	if got.Top == nil || *got.Top != UnrankedTop {
		t.Fatalf("expected top sentinel, got %v", got.Top)
	}
	if got.Mode != game.ModeScore || got.Difficulty != game.DifficultyNormal {
		t.Fatalf("unexpected scope: mode=%s difficulty=%s", got.Mode, got.Difficulty)
	}
}

func TestScoreClone_SharesNoPointers(t *testing.T) {
	orig := Score{Rank: 1, Score: 500, Nickname: String("Alpha"), Total: Int(10), PinnedBadge: &Badge{IconImg: "a"}}
	cp := orig.Clone()

	*cp.Nickname = "tampered"
	*cp.Total = -1
	cp.PinnedBadge.IconImg = "b"

	if *orig.Nickname != "Alpha" || *orig.Total != 10 || orig.PinnedBadge.IconImg != "a" {
		t.Fatalf("clone shares state with original: %+v", orig)
	}
}
