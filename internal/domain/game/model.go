package game

import "regexp"

// Method tags which client operation produced an entity.
type Method string

const (
	MethodLeaderboardsRank       Method = "leaderboards_rank"
	MethodLeaderboards           Method = "leaderboards"
	MethodRuntimeLeaderboards    Method = "runtime_leaderboards"
	MethodSkillPointLeaderboard  Method = "skill_point_leaderboard"
	MethodDailyQuestLeaderboards Method = "daily_quest_leaderboards"
	MethodSeasonalLeaderboard    Method = "seasonal_leaderboard"
	MethodPlayer                 Method = "player"
)

type Mode string

const (
	ModeScore Mode = "score"
	ModeWaves Mode = "waves"
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "EASY"
	DifficultyNormal   Difficulty = "NORMAL"
	DifficultyEndlessI Difficulty = "ENDLESS_I"
)

// Map names used for leaderboards that are not scoped to a real level.
const (
	MapSkillPoint = "SP"
	MapDailyQuest = "DQ"
	MapSeason     = "season"
)

// Maps lists every level the remote service keeps a leaderboard for, in game order.
var Maps = []string{
	"1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "1.8", "1.b1",
	"2.1", "2.2", "2.3", "2.4", "2.5", "2.6", "2.7", "2.8", "2.b1",
	"3.1", "3.2", "3.3", "3.4", "3.5", "3.6", "3.7", "3.8", "3.b1",
	"4.1", "4.2", "4.3", "4.4", "4.5", "4.6", "4.7", "4.8", "4.b1",
	"5.1", "5.2", "5.3", "5.4", "5.5", "5.6", "5.7", "5.8", "5.b1", "5.b2",
	"6.1", "6.2", "6.3", "6.4", "rumble", "dev", "zecred",
	"DQ1", "DQ3", "DQ4", "DQ5", "DQ7", "DQ8", "DQ9", "DQ10", "DQ11", "DQ12",
}

var knownMaps = func() map[string]struct{} {
	out := make(map[string]struct{}, len(Maps))
	for _, name := range Maps {
		out[name] = struct{}{}
	}
	return out
}()

var playerIDRegex = regexp.MustCompile(`^U-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{6}$`)

func IsKnownMap(name string) bool {
	_, ok := knownMaps[name]
	return ok
}

// IsPlayerID reports whether value has the U-XXXX-XXXX-XXXXXX shape issued by the service.
func IsPlayerID(value string) bool {
	return playerIDRegex.MatchString(value)
}

func (m Mode) Valid() bool {
	return m == ModeScore || m == ModeWaves
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyEndlessI:
		return true
	default:
		return false
	}
}
