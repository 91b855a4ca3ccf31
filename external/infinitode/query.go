package infinitode

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
)

const questDateLayout = "2006-01-02"

// RankQuery selects one player's record on one map.
type RankQuery struct {
	MapName    string          `param:"mapname" validate:"tdi_map"`
	PlayerID   string          `param:"playerid" validate:"tdi_playerid"`
	Mode       game.Mode       `param:"mode" validate:"tdi_mode"`
	Difficulty game.Difficulty `param:"difficulty" validate:"tdi_difficulty"`
}

// LeaderboardQuery selects a map leaderboard. PlayerID is optional; when set the player's
// own standing is attached and the result is never served from cache.
type LeaderboardQuery struct {
	MapName    string          `param:"mapname" validate:"tdi_map"`
	PlayerID   string          `param:"playerid" validate:"omitempty,tdi_playerid"`
	Mode       game.Mode       `param:"mode" validate:"tdi_mode"`
	Difficulty game.Difficulty `param:"difficulty" validate:"tdi_difficulty"`
}

// RuntimeQuery selects the runtime leaderboard, which always needs a player.
type RuntimeQuery struct {
	MapName    string          `param:"mapname" validate:"tdi_map"`
	PlayerID   string          `param:"playerid" validate:"tdi_playerid"`
	Mode       game.Mode       `param:"mode" validate:"tdi_mode"`
	Difficulty game.Difficulty `param:"difficulty" validate:"tdi_difficulty"`
}

type SkillPointQuery struct {
	PlayerID string `param:"playerid" validate:"omitempty,tdi_playerid"`
}

// DailyQuestQuery selects the daily quest board of one day. The day is Date's calendar
// date in its own location; a zero Date means today in UTC.
type DailyQuestQuery struct {
	Date     time.Time
	PlayerID string `param:"playerid" validate:"omitempty,tdi_playerid"`
}

var queryValidator = newQueryValidator()

func newQueryValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.TrimSpace(field.Tag.Get("param"))
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "tdi_map", func(fl validator.FieldLevel) bool {
		return game.IsKnownMap(fl.Field().String())
	})
	mustRegister(v, "tdi_playerid", func(fl validator.FieldLevel) bool {
		return game.IsPlayerID(fl.Field().String())
	})
	mustRegister(v, "tdi_mode", func(fl validator.FieldLevel) bool {
		return game.Mode(fl.Field().String()).Valid()
	})
	mustRegister(v, "tdi_difficulty", func(fl validator.FieldLevel) bool {
		return game.Difficulty(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func validateQuery(query any) error {
	err := queryValidator.Struct(query)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return badArgument(fieldErrs[0].Field(), fieldErrs[0].Value())
	}
	return badArgument("query", err)
}

func defaultModeDifficulty(mode game.Mode, difficulty game.Difficulty) (game.Mode, game.Difficulty) {
	if mode == "" {
		mode = game.ModeScore
	}
	if difficulty == "" {
		difficulty = game.DifficultyNormal
	}
	return mode, difficulty
}

func (q RankQuery) normalized() (RankQuery, error) {
	q.Mode, q.Difficulty = defaultModeDifficulty(q.Mode, q.Difficulty)
	return q, validateQuery(q)
}

func (q LeaderboardQuery) normalized() (LeaderboardQuery, error) {
	q.Mode, q.Difficulty = defaultModeDifficulty(q.Mode, q.Difficulty)
	return q, validateQuery(q)
}

func (q RuntimeQuery) normalized() (RuntimeQuery, error) {
	q.Mode, q.Difficulty = defaultModeDifficulty(q.Mode, q.Difficulty)
	return q, validateQuery(q)
}

func (q SkillPointQuery) normalized() (SkillPointQuery, error) {
	return q, validateQuery(q)
}

// questDate returns the request date formatted for the service, using now when Date is zero.
func (q DailyQuestQuery) questDate(now time.Time) string {
	if q.Date.IsZero() {
		return now.UTC().Format(questDateLayout)
	}
	return q.Date.Format(questDateLayout)
}

func (q DailyQuestQuery) normalized() (DailyQuestQuery, error) {
	return q, validateQuery(q)
}

var questDateLayouts = []string{questDateLayout, time.RFC3339, "2006/01/02"}

// ParseQuestDate reads a daily quest date typed by a user.
func ParseQuestDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range questDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, badArgument("date", value)
}
