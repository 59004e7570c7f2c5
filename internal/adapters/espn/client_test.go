package espn_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hashmark/spotlight/internal/adapters/espn"
	"github.com/hashmark/spotlight/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func newClient(serverURL string, extra ...espn.Option) *espn.Client {
	opts := append([]espn.Option{
		espn.WithEndpoints(espn.NewEndpoints(serverURL, serverURL, "", "")),
		espn.WithSleep(func(ctx context.Context, d time.Duration) error { return nil }),
	}, extra...)
	return espn.New(opts...)
}

func TestFetchJSONRetries(t *testing.T) {
	Convey("Given an upstream that fails twice with 500 then recovers", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("x-espn-cache", "MISS")
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		var delays []time.Duration
		client := newClient(srv.URL, espn.WithSleep(func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}))

		res, err := client.FetchJSON(context.Background(), srv.URL+"/doc", "test")

		Convey("Then the third attempt succeeds after two increasing backoffs", func() {
			So(err, ShouldBeNil)
			So(res.Attempts, ShouldEqual, 3)
			So(res.Status, ShouldEqual, http.StatusOK)
			So(res.CacheState, ShouldEqual, espn.CacheMiss)
			So(string(res.Data), ShouldEqual, `{"ok":true}`)
			So(res.Meta["x-espn-cache"], ShouldEqual, "MISS")
			So(len(delays), ShouldEqual, 2)
			So(delays[1], ShouldBeGreaterThan, delays[0])
		})
	})
}

func TestFetchJSONTerminalStatus(t *testing.T) {
	Convey("Given an upstream that answers 404", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		client := newClient(srv.URL)
		_, err := client.FetchJSON(context.Background(), srv.URL+"/doc", "test")

		Convey("Then the call fails on the first attempt without retrying", func() {
			So(err, ShouldNotBeNil)
			So(hits.Load(), ShouldEqual, 1)

			var ue *espn.UpstreamError
			So(errors.As(err, &ue), ShouldBeTrue)
			So(ue.Status, ShouldEqual, http.StatusNotFound)
			So(espn.IsRetryable(err), ShouldBeFalse)
		})
	})
}

func TestFetchJSONBadURL(t *testing.T) {
	Convey("Given a request URL that cannot form a request", t, func() {
		client := newClient("https://example.invalid")
		_, err := client.FetchJSON(context.Background(), "http://[::1]:namedport/doc", "test")

		Convey("Then the failure is terminal and is not a parse error", func() {
			So(err, ShouldNotBeNil)
			So(espn.IsRetryable(err), ShouldBeFalse)

			var pe *espn.ParseError
			So(errors.As(err, &pe), ShouldBeFalse)
		})
	})
}

func TestFetchJSONParseError(t *testing.T) {
	Convey("Given an upstream that returns a 200 with a non-JSON body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance page</html>"))
		}))
		defer srv.Close()

		client := newClient(srv.URL)
		_, err := client.FetchJSON(context.Background(), srv.URL+"/doc", "test")

		Convey("Then a terminal parse error carries a body preview", func() {
			var pe *espn.ParseError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.Preview, ShouldContainSubstring, "maintenance")
			So(espn.IsRetryable(err), ShouldBeFalse)
		})
	})
}

func TestFetchJSONCaching(t *testing.T) {
	Convey("Given a cached successful fetch", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write([]byte(`{"n":1}`))
		}))
		defer srv.Close()

		client := newClient(srv.URL)
		target := srv.URL + "/doc"

		first, err := client.FetchJSON(context.Background(), target, "test")
		So(err, ShouldBeNil)
		So(first.CacheState, ShouldEqual, espn.CacheMiss)

		Convey("When the same URL is fetched again", func() {
			second, err := client.FetchJSON(context.Background(), target, "test")

			Convey("Then the payload comes from cache without a new request", func() {
				So(err, ShouldBeNil)
				So(second.CacheState, ShouldEqual, espn.CacheHit)
				So(string(second.Data), ShouldEqual, `{"n":1}`)
				So(hits.Load(), ShouldEqual, 1)
			})
		})

		Convey("When the cache is reset", func() {
			client.ResponseCache().Reset()
			third, err := client.FetchJSON(context.Background(), target, "test")

			Convey("Then the upstream is hit again", func() {
				So(err, ShouldBeNil)
				So(third.CacheState, ShouldEqual, espn.CacheMiss)
				So(hits.Load(), ShouldEqual, 2)
			})
		})
	})
}

func TestFetchJSONFailuresAreNotCached(t *testing.T) {
	Convey("Given an upstream that fails then recovers across calls", t, func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client := newClient(srv.URL)
		target := srv.URL + "/doc"

		_, err := client.FetchJSON(context.Background(), target, "test")
		So(err, ShouldNotBeNil)

		Convey("When fetched again after the failure", func() {
			res, err := client.FetchJSON(context.Background(), target, "test")

			Convey("Then the error was not cached and the retry reaches upstream", func() {
				So(err, ShouldBeNil)
				So(res.CacheState, ShouldEqual, espn.CacheMiss)
				So(hits.Load(), ShouldEqual, 2)
			})
		})
	})
}

func TestFetchJSONRecordsDebugSummary(t *testing.T) {
	Convey("Given a fetch through the client", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := newClient(srv.URL)
		_, err := client.FetchJSON(context.Background(), srv.URL+"/doc", "schedule")
		So(err, ShouldBeNil)

		Convey("Then the last-request summary reflects the call", func() {
			summary, ok := client.DebugLog().LastRequest()
			So(ok, ShouldBeTrue)
			So(summary.Label, ShouldEqual, "schedule")
			So(summary.Status, ShouldEqual, http.StatusOK)
			So(summary.Attempts, ShouldEqual, 1)
			So(summary.Err, ShouldBeEmpty)
		})
	})
}

func TestFetchSchedule(t *testing.T) {
	Convey("Given an upstream serving a schedule document", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"events": [
					{
						"id": "401520100",
						"date": "2025-09-06T19:30Z",
						"competitions": [
							{"id": "401520100", "status": {"type": {"name": "STATUS_FINAL", "completed": true}}}
						]
					}
				]
			}`))
		}))
		defer srv.Close()

		client := newClient(srv.URL)
		schedule, err := client.FetchSchedule(context.Background(), 166, 2025)

		Convey("Then the events decode with their status", func() {
			So(err, ShouldBeNil)
			So(len(schedule.Events), ShouldEqual, 1)
			So(schedule.Events[0].ID, ShouldEqual, "401520100")
			So(schedule.Events[0].IsFinal(), ShouldBeTrue)
		})
	})
}
