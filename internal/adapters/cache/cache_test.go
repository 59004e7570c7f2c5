package cache_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/hashmark/spotlight/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResponseCacheTTL(t *testing.T) {
	Convey("Given a response cache with a controllable clock", t, func() {
		now := time.Date(2025, 10, 4, 18, 0, 0, 0, time.UTC)
		c := cache.NewResponseCache(cache.WithClock(func() time.Time { return now }))
		payload := json.RawMessage(`{"events":[]}`)

		Convey("When an entry is set with a 100ms TTL", func() {
			c.Set("https://example.test/schedule", payload, 100*time.Millisecond, map[string]string{"x-proxy-cache": "MISS"})

			Convey("Then an immediate Get returns it with its metadata", func() {
				e, ok := c.Get("https://example.test/schedule")
				So(ok, ShouldBeTrue)
				So(string(e.Payload), ShouldEqual, `{"events":[]}`)
				So(e.Meta["x-proxy-cache"], ShouldEqual, "MISS")
				So(e.ExpiresAt.Sub(e.FetchedAt), ShouldEqual, 100*time.Millisecond)
			})

			Convey("And after the TTL passes Get reports absent", func() {
				now = now.Add(150 * time.Millisecond)
				_, ok := c.Get("https://example.test/schedule")
				So(ok, ShouldBeFalse)
				So(c.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the same key is set twice", func() {
			c.Set("k", json.RawMessage(`1`), time.Minute, nil)
			c.Set("k", json.RawMessage(`2`), time.Minute, nil)

			Convey("Then the second payload overwrites the first", func() {
				e, ok := c.Get("k")
				So(ok, ShouldBeTrue)
				So(string(e.Payload), ShouldEqual, `2`)
				So(c.Len(), ShouldEqual, 1)
			})
		})

		Convey("When Reset is called", func() {
			c.Set("k", payload, time.Minute, nil)
			c.Reset()
			So(c.Len(), ShouldEqual, 0)
		})
	})
}

func TestAthleteCacheBound(t *testing.T) {
	Convey("Given an athlete cache bounded to 3 entries", t, func() {
		c := cache.NewAthleteCache(cache.WithMaxSize(3))

		Convey("When more packages than the bound are inserted", func() {
			for i := 1; i <= 5; i++ {
				c.Put(&cache.AthletePackage{Season: 2025, AthleteID: fmt.Sprintf("%d", i)})
			}

			Convey("Then the oldest entries are evicted FIFO", func() {
				So(c.Len(), ShouldEqual, 3)
				_, ok := c.Get(2025, "1")
				So(ok, ShouldBeFalse)
				_, ok = c.Get(2025, "2")
				So(ok, ShouldBeFalse)
				_, ok = c.Get(2025, "5")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the same athlete appears in two seasons", func() {
			c.Put(&cache.AthletePackage{Season: 2024, AthleteID: "9"})
			c.Put(&cache.AthletePackage{Season: 2025, AthleteID: "9"})

			Convey("Then the entries are scoped per season", func() {
				So(c.Len(), ShouldEqual, 2)
				pkg, ok := c.Get(2024, "9")
				So(ok, ShouldBeTrue)
				So(pkg.Season, ShouldEqual, 2024)
			})
		})

		Convey("When a package has no splits", func() {
			c.Put(&cache.AthletePackage{Season: 2025, AthleteID: "44", Splits: nil})

			Convey("Then the nil-splits state round-trips", func() {
				pkg, ok := c.Get(2025, "44")
				So(ok, ShouldBeTrue)
				So(pkg.Splits, ShouldBeNil)
			})
		})
	})
}
