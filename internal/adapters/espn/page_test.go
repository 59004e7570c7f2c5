package espn_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hashmark/spotlight/internal/adapters/espn"
)

func TestExtractPagePayload(t *testing.T) {
	Convey("Given team page HTML with an embedded payload", t, func() {
		Convey("When the payload nests objects", func() {
			html := `<script>window['__espnfitt__']={"page":{"content":{"stats":{"x":1}}}};</script>`
			raw, err := espn.ExtractPagePayload(html)

			Convey("Then the balanced object literal is returned", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldEqual, `{"page":{"content":{"stats":{"x":1}}}}`)
			})
		})

		Convey("When content precedes and follows the assignment", func() {
			html := `<html>{"decoy":true}<script>var a=1;window['__espnfitt__'] = {"a":{"b":2}};var b=2;</script>{"tail":1}`
			raw, err := espn.ExtractPagePayload(html)

			Convey("Then only the assigned object is captured", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldEqual, `{"a":{"b":2}}`)
			})
		})

		Convey("When the marker is absent", func() {
			_, err := espn.ExtractPagePayload(`<html><body>nothing here</body></html>`)

			Convey("Then a terminal parse error is returned", func() {
				var pe *espn.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
				So(espn.IsRetryable(err), ShouldBeFalse)
			})
		})

		Convey("When the opening brace is missing", func() {
			_, err := espn.ExtractPagePayload(`window['__espnfitt__'] = null;`)

			Convey("Then extraction fails", func() {
				var pe *espn.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
			})
		})

		Convey("When the payload is truncated before it balances", func() {
			_, err := espn.ExtractPagePayload(`window['__espnfitt__']={"page":{"content":`)

			Convey("Then extraction fails on the missing closing brace", func() {
				var pe *espn.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
			})
		})
	})
}

func TestParsePagePayload(t *testing.T) {
	Convey("Given an extracted page payload", t, func() {
		raw := []byte(`{
			"page": {
				"content": {
					"scheduleData": {
						"events": [{"id": "401520100", "date": "2025-09-06T19:30Z", "completed": true}]
					},
					"stats": {
						"teamLeaders": {
							"leaders": [
								{
									"name": "passingYards",
									"displayName": "Passing Yards",
									"leaders": [
										{"displayValue": "312", "value": 312, "athlete": {"id": "7", "displayName": "QB One"}}
									]
								}
							]
						}
					}
				}
			}
		}`)

		payload, err := espn.ParsePagePayload(raw)

		Convey("Then the schedule and leader branches decode", func() {
			So(err, ShouldBeNil)
			So(len(payload.Page.Content.ScheduleData.Events), ShouldEqual, 1)
			So(payload.Page.Content.ScheduleData.Events[0].Completed, ShouldBeTrue)

			leaders := payload.Page.Content.Stats.TeamLeaders.Leaders
			So(len(leaders), ShouldEqual, 1)
			So(leaders[0].Leaders[0].Athlete.DisplayName, ShouldEqual, "QB One")
		})
	})
}

func TestResolveLeaderCategories(t *testing.T) {
	Convey("Given a payload with leaders only under the leaderboard key", t, func() {
		tl := espn.TeamLeaders{
			Leaderboard: []espn.PageLeaderCategory{{Name: "rushingYards"}},
		}

		Convey("When resolved with the default source order", func() {
			categories, source, ok := tl.ResolveLeaderCategories([]string{
				espn.SourceLeaders, espn.SourceLeaderboard, espn.SourceSelf,
			})

			Convey("Then the leaderboard list wins", func() {
				So(ok, ShouldBeTrue)
				So(source, ShouldEqual, espn.SourceLeaderboard)
				So(len(categories), ShouldEqual, 1)
			})
		})

		Convey("When no configured source has entries", func() {
			_, _, ok := tl.ResolveLeaderCategories([]string{espn.SourceLeaders, espn.SourceSelf})

			Convey("Then resolution reports no leaders", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
