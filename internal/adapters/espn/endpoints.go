package espn

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoints builds upstream URLs and applies the same-origin proxy when one
// is configured. The site API serves schedules and box scores, the core API
// serves athlete profiles and season splits.
type Endpoints struct {
	siteBase  string
	coreBase  string
	proxy     string
	pageProxy string
}

// NewEndpoints creates an endpoint builder. Empty proxy values mean direct
// upstream access.
func NewEndpoints(siteBase, coreBase, proxy, pageProxy string) *Endpoints {
	return &Endpoints{
		siteBase:  strings.TrimSuffix(siteBase, "/"),
		coreBase:  strings.TrimSuffix(coreBase, "/"),
		proxy:     proxy,
		pageProxy: pageProxy,
	}
}

// TeamSchedule is the site-API schedule for one team and season.
func (e *Endpoints) TeamSchedule(teamID, season int) string {
	return fmt.Sprintf("%s/teams/%d/schedule?season=%d", e.siteBase, teamID, season)
}

// GameSummary is the site-API summary (box score included) for one event.
func (e *Endpoints) GameSummary(eventID string) string {
	return fmt.Sprintf("%s/summary?event=%s", e.siteBase, eventID)
}

// AthleteProfile is the core-API athlete document for one season.
func (e *Endpoints) AthleteProfile(season int, athleteID string) string {
	return fmt.Sprintf("%s/seasons/%d/athletes/%s?lang=en&region=us", e.coreBase, season, athleteID)
}

// SplitsRef normalizes a statistics $ref from a profile document. The core
// API hands out http refs; upstream only answers on https.
func (e *Endpoints) SplitsRef(ref string) string {
	return strings.Replace(ref, "http://", "https://", 1)
}

// ViaProxy wraps target as <proxy>?url=<encoded target> when an API proxy is
// configured; otherwise target passes through unchanged.
func (e *Endpoints) ViaProxy(target string) string {
	return wrap(e.proxy, target)
}

// ViaPageProxy is ViaProxy for page-scrape requests, which the page proxy
// answers with pre-extracted JSON.
func (e *Endpoints) ViaPageProxy(target string) string {
	return wrap(e.pageProxy, target)
}

// HasPageProxy reports whether page requests are relayed.
func (e *Endpoints) HasPageProxy() bool {
	return e.pageProxy != ""
}

func wrap(proxy, target string) string {
	if proxy == "" {
		return target
	}
	return proxy + "?url=" + url.QueryEscape(target)
}
