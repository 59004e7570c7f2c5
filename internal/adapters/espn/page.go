package espn

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fittMarker precedes the embedded page-data assignment in team page HTML.
const fittMarker = "window['__espnfitt__']"

// Leader source names accepted by ResolveLeaderCategories.
const (
	SourceLeaders     = "leaders"
	SourceLeaderboard = "leaderboard"
	SourceSelf        = "self"
)

// PagePayload is the embedded page-data document scraped from team pages.
// Only the branches the dashboard reads are modeled.
type PagePayload struct {
	Page struct {
		Content struct {
			ScheduleData PageSchedule `json:"scheduleData"`
			Stats        struct {
				TeamLeaders TeamLeaders `json:"teamLeaders"`
			} `json:"stats"`
		} `json:"content"`
	} `json:"page"`
}

// PageSchedule is the schedule branch of the page payload.
type PageSchedule struct {
	Events []PageEvent `json:"events"`
}

// PageEvent is one scheduled game as the page embeds it.
type PageEvent struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// TeamLeaders holds the page's statistical-leader lists. The shape has
// shifted across site revisions, so all three historical homes are kept.
type TeamLeaders struct {
	Leaders     []PageLeaderCategory `json:"leaders"`
	Leaderboard []PageLeaderCategory `json:"leaderboard"`
	Categories  []PageLeaderCategory `json:"categories"`
}

// PageLeaderCategory is one stat category with its ranked athletes.
type PageLeaderCategory struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Leaders     []PageLeader `json:"leaders"`
}

// PageLeader is one ranked athlete row inside a category.
type PageLeader struct {
	DisplayValue string  `json:"displayValue"`
	Value        float64 `json:"value"`
	Athlete      struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Headshot    string `json:"headshot"`
		Href        string `json:"href"`
	} `json:"athlete"`
}

// ExtractPagePayload locates the embedded payload assignment in HTML and
// returns the balanced object literal that follows it. String escapes inside
// the literal never contain bare braces, so plain brace counting suffices.
func ExtractPagePayload(html string) (json.RawMessage, error) {
	markerIndex := strings.Index(html, fittMarker)
	if markerIndex == -1 {
		return nil, &ParseError{Err: fmt.Errorf("page payload marker not found")}
	}

	rest := html[markerIndex:]
	start := strings.IndexByte(rest, '{')
	if start == -1 {
		return nil, &ParseError{Err: fmt.Errorf("page payload missing opening brace")}
	}

	depth := 0
	for i := start; i < len(rest); i++ {
		switch rest[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				raw := json.RawMessage(rest[start : i+1])
				if !json.Valid(raw) {
					return nil, &ParseError{Err: fmt.Errorf("page payload is not valid JSON"), Preview: preview(raw)}
				}
				return raw, nil
			}
		}
	}

	return nil, &ParseError{Err: fmt.Errorf("page payload missing closing brace")}
}

// ParsePagePayload decodes an extracted payload into its typed form.
func ParsePagePayload(data json.RawMessage) (*PagePayload, error) {
	var payload PagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &ParseError{Err: err, Preview: preview(data)}
	}
	return &payload, nil
}

// ResolveLeaderCategories walks the ordered source policy and returns the
// first non-empty leader list the payload carries, plus the source that
// provided it.
func (t TeamLeaders) ResolveLeaderCategories(sources []string) ([]PageLeaderCategory, string, bool) {
	for _, source := range sources {
		var categories []PageLeaderCategory
		switch source {
		case SourceLeaders:
			categories = t.Leaders
		case SourceLeaderboard:
			categories = t.Leaderboard
		case SourceSelf:
			categories = t.Categories
		}
		if len(categories) > 0 {
			return categories, source, true
		}
	}
	return nil, "", false
}
