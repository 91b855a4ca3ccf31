package infinitode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/game"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/player"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/score"
	"golang.org/x/net/html"
)

const (
	selSeason        = `label[i18n="season_formatted"]`
	selPlayerCount   = `label[i18n="player_count_formatted"]`
	selSeasonRow     = `div[x="90"]`
	selSeasonName    = `label[color="LIGHT_BLUE:P300"]`
	selSeasonScore   = `label[nowrap="true"][text-align="right"]`
	selNickname      = `label:not([i18n])`
	selTotals        = `div[width="522"][height="128"][pad-top="10"][pad-bottom="10"][align="center"]`
	selXP            = `div[width="330"][height="64"] label`
	selLevelRow      = `div[width="800"][height="40"]`
	selNotRanked     = `label[i18n="not_ranked"]`
	selBadge         = `div[width="80"][height="80"]`
	selFooterTable   = `xdx-table[width="800"][align="center"]`
	joinedDateLayout = "02 January 2006"
)

var badgeRarities = map[string]struct{}{
	"not-received": {}, "common": {}, "rare": {}, "very-rare": {},
	"epic": {}, "legendary": {}, "supreme": {}, "artifact": {},
}

var badgeKeys = map[string]struct{}{
	"daily-game": {}, "invited-players": {}, "killed-enemies": {},
	"mined-resources": {}, "of-merit": {}, "beta-tester-season-2": {},
}

// XDX tables are layout containers. An HTML parser would hoist their children out of the
// table, so they are renamed to a neutral element before parsing.
var markupReplacer = strings.NewReplacer("<table", "<xdx-table", "</table", "</xdx-table")

func parseMarkup(page string, raw []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markupReplacer.Replace(string(raw))))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s markup: %w", ErrAPI, page, err)
	}
	return doc, nil
}

func parseSeasonal(doc *goquery.Document) (*leaderboard.Leaderboard, error) {
	season, ok := extractSeason(doc)
	if !ok {
		return nil, apiErrorf("seasonal markup has no season label")
	}

	scope := standardScope(game.MethodSeasonalLeaderboard, game.MapSeason, game.ModeScore, game.DifficultyNormal)
	scope.Season = season

	rows := doc.Find(selSeasonRow).Length()
	names := doc.Find(selSeasonName)
	scores := doc.Find(selSeasonScore)
	entries := make([]score.Score, 0, rows)
	for i := 0; i < rows; i++ {
		name := names.Eq(i)
		if name.Length() == 0 {
			continue
		}
		value, _ := parseCount(scores.Eq(i).Text())
		item := score.Score{
			Method:     scope.Method,
			MapName:    scope.MapName,
			Mode:       scope.Mode,
			Difficulty: scope.Difficulty,
			PlayerID:   playerIDFromClick(name),
			Rank:       i + 1,
			Score:      value,
			Nickname:   score.String(strings.TrimSpace(name.Text())),
		}
		entries = append(entries, item)
	}

	total, _ := extractPlayerCount(doc)
	return leaderboard.New(scope, total, entries, nil), nil
}

func extractSeason(doc *goquery.Document) (int, bool) {
	raw, ok := doc.Find(selSeason).First().Attr("i18nf")
	if !ok {
		return 0, false
	}
	return parseCount(unwrapI18nArg(raw))
}

func extractPlayerCount(doc *goquery.Document) (int, bool) {
	raw, ok := doc.Find(selPlayerCount).First().Attr("i18nf")
	if !ok {
		return 0, false
	}
	return parseCount(unwrapI18nArg(raw))
}

// unwrapI18nArg turns the single-argument form ["12"] into 12.
func unwrapI18nArg(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, `["`)
	return strings.TrimSuffix(raw, `"]`)
}

func playerIDFromClick(sel *goquery.Selection) string {
	click, _ := sel.Attr("click")
	_, id, found := strings.Cut(click, "id=")
	if !found {
		return ""
	}
	return strings.TrimSpace(id)
}

func parseProfile(playerID string, doc *goquery.Document) (*player.Player, error) {
	nickname, ok := extractNickname(doc)
	if !ok {
		return nil, apiErrorf("profile markup has no nickname playerid=%s", playerID)
	}

	out := &player.Player{
		PlayerID: playerID,
		Nickname: nickname,
		TotalTop: score.UnrankedTop,
		Badges:   extractBadges(doc),
		Levels:   extractLevels(playerID, doc),
	}

	totals := doc.Find(selTotals).First().Find("label")
	if v, ok := parseCount(totals.Eq(1).Text()); ok {
		out.TotalScore = v
	}
	if v, ok := parseCount(totals.Eq(2).Text()); ok {
		out.TotalRank = v
	}
	if top, ok := extractTotalTop(totals); ok {
		out.TotalTop = top
	}
	if v, ok := extractLevel(doc); ok {
		out.Level = v
	}
	if xp, xpMax, ok := extractXP(doc); ok {
		out.XP, out.XPMax = xp, xpMax
	}

	footer := doc.Find(selFooterTable).Last().Find("label")
	if v, ok := extractReplays(footer); ok {
		out.Replays = v
	}
	if v, ok := extractIssues(footer); ok {
		out.Issues = v
	}
	if v, ok := extractJoined(footer); ok {
		out.CreatedAt = v
	}
	return out, nil
}

func extractNickname(doc *goquery.Document) (string, bool) {
	sel := doc.Find(selNickname).First()
	if sel.Length() == 0 {
		return "", false
	}
	nickname := strings.TrimSpace(sel.Text())
	return nickname, nickname != ""
}

func extractTotalTop(totals *goquery.Selection) (string, bool) {
	label := totals.Eq(3)
	if label.Length() == 0 {
		return "", false
	}
	top := strings.TrimSpace(strings.Replace(label.Text(), "- Top ", "", 1))
	return top, top != ""
}

// extractLevel reads the player level from the commented-out markup block that still
// carries it.
func extractLevel(doc *goquery.Document) (int, bool) {
	for _, root := range doc.Nodes {
		if value, ok := findLevelComment(root); ok {
			parts := strings.Split(value, ">")
			if len(parts) < 4 {
				return 0, false
			}
			text, _, _ := strings.Cut(parts[3], "<")
			return parseCount(text)
		}
	}
	return 0, false
}

func findLevelComment(node *html.Node) (string, bool) {
	if node.Type == html.CommentNode && strings.Contains(node.Data, "Level:") {
		return node.Data, true
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if value, ok := findLevelComment(child); ok {
			return value, true
		}
	}
	return "", false
}

func extractXP(doc *goquery.Document) (int, int, bool) {
	text := doc.Find(selXP).First().Text()
	left, right, found := strings.Cut(text, " / ")
	if !found {
		return 0, 0, false
	}
	xp, ok := parseCount(left)
	if !ok {
		return 0, 0, false
	}
	xpMax, ok := parseCount(right)
	if !ok {
		return 0, 0, false
	}
	return xp, xpMax, true
}

func extractLevels(playerID string, doc *goquery.Document) map[string]score.Score {
	out := make(map[string]score.Score)
	rows := doc.Find(selLevelRow)
	if rows.Length() < 2 {
		return out
	}
	// The first row is the column header.
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		labels := row.Find("label")
		level := strings.TrimSpace(labels.Eq(0).Text())
		if level == "" {
			return
		}
		if row.Find(selNotRanked).Length() > 0 {
			out[level] = score.Unranked(game.MethodPlayer, level, playerID)
			return
		}

		item := score.Unranked(game.MethodPlayer, level, playerID)
		item.Score, _ = parseCount(labels.Eq(1).Text())
		item.Rank, _ = parseCount(labels.Eq(2).Text())
		total, _ := parseCount(strings.Replace(labels.Eq(3).Text(), "/ ", "", 1))
		item.Total = score.Int(total)
		if top := strings.TrimSpace(labels.Last().Text()); top != "" {
			item.Top = score.String(top)
		}
		out[level] = item
	})
	return out
}

func extractBadges(doc *goquery.Document) map[string]player.BadgeRank {
	out := make(map[string]player.BadgeRank)
	doc.Find(selBadge).Each(func(_ int, cell *goquery.Selection) {
		imgs := cell.Find("img")
		if imgs.Length() < 2 {
			return
		}
		bg, _ := imgs.Eq(0).Attr("src")
		_, rarity, found := strings.Cut(bg, "bg-")
		if !found {
			return
		}
		if _, ok := badgeRarities[rarity]; !ok {
			return
		}
		icon, _ := imgs.Eq(1).Attr("src")
		_, key, found := strings.Cut(icon, "icon-")
		if !found {
			return
		}
		if _, ok := badgeKeys[key]; !ok && !strings.HasPrefix(key, "season-1") {
			return
		}
		color, _ := imgs.Last().Attr("color")
		out[key] = player.BadgeRank{Rarity: rarity, Color: color}
	})
	return out
}

func extractReplays(footer *goquery.Selection) (int, bool) {
	n := footer.Length()
	if n < 3 {
		return 0, false
	}
	fields := strings.Fields(footer.Eq(n - 3).Text())
	if len(fields) < 4 {
		return 0, false
	}
	return parseCount(fields[3])
}

func extractIssues(footer *goquery.Selection) (int, bool) {
	n := footer.Length()
	if n < 2 {
		return 0, false
	}
	fields := strings.Fields(footer.Eq(n - 2).Text())
	if len(fields) == 0 || len(fields[0]) <= 3 {
		return 0, false
	}
	return parseCount(fields[0][3:])
}

// extractJoined parses "Joined 5th March 2021" into a date.
func extractJoined(footer *goquery.Selection) (time.Time, bool) {
	n := footer.Length()
	if n < 1 {
		return time.Time{}, false
	}
	_, rest, found := strings.Cut(footer.Eq(n-1).Text(), "ned ")
	if !found {
		return time.Time{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return time.Time{}, false
	}
	day := strings.TrimRightFunc(fields[0], func(r rune) bool { return r < '0' || r > '9' })
	if len(day) == 1 {
		day = "0" + day
	}
	parsed, err := time.Parse(joinedDateLayout, day+" "+fields[len(fields)-2]+" "+fields[len(fields)-1])
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// parseCount reads a non-negative count rendered with thousands separators.
func parseCount(text string) (int, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return 0, false
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
