package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashmark/spotlight/pkg/retry"
	. "github.com/smartystreets/goconvey/convey"
)

var errTransient = errors.New("transient")
var errTerminal = errors.New("terminal")

func TestPolicyDo(t *testing.T) {
	Convey("Given a policy with 3 attempts and instant sleep", t, func() {
		var delays []time.Duration
		p := retry.NewPolicy(
			retry.WithMaxAttempts(3),
			retry.WithBackoff(retry.Exponential(250*time.Millisecond)),
			retry.WithRetryable(func(err error) bool { return errors.Is(err, errTransient) }),
			retry.WithSleep(func(ctx context.Context, d time.Duration) error {
				delays = append(delays, d)
				return nil
			}),
		)

		Convey("When the call fails twice then succeeds", func() {
			calls := 0
			err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
				calls++
				if calls < 3 {
					return errTransient
				}
				return nil
			})

			Convey("Then it succeeds after exactly two strictly increasing delays", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 3)
				So(len(delays), ShouldEqual, 2)
				So(delays[1], ShouldBeGreaterThan, delays[0])
			})
		})

		Convey("When the error is terminal", func() {
			calls := 0
			err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
				calls++
				return errTerminal
			})

			Convey("Then it fails immediately with zero retries", func() {
				So(err, ShouldEqual, errTerminal)
				So(calls, ShouldEqual, 1)
				So(delays, ShouldBeEmpty)
			})
		})

		Convey("When every attempt fails transiently", func() {
			calls := 0
			err := p.Do(context.Background(), func(ctx context.Context, attempt int) error {
				calls++
				return errTransient
			})

			Convey("Then the last error surfaces after the budget is spent", func() {
				So(err, ShouldEqual, errTransient)
				So(calls, ShouldEqual, 3)
				So(len(delays), ShouldEqual, 2)
			})
		})
	})
}

func TestBackoffSchedules(t *testing.T) {
	Convey("Given backoff schedules with a 100ms base", t, func() {
		base := 100 * time.Millisecond

		Convey("Exponential doubles per attempt", func() {
			fn := retry.Exponential(base)
			So(fn(1), ShouldEqual, 100*time.Millisecond)
			So(fn(2), ShouldEqual, 200*time.Millisecond)
			So(fn(3), ShouldEqual, 400*time.Millisecond)
		})

		Convey("Linear grows per attempt", func() {
			fn := retry.Linear(base)
			So(fn(1), ShouldEqual, 100*time.Millisecond)
			So(fn(2), ShouldEqual, 200*time.Millisecond)
			So(fn(3), ShouldEqual, 300*time.Millisecond)
		})
	})
}

func TestDoCancellation(t *testing.T) {
	Convey("Given a cancelled context during backoff", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		p := retry.NewPolicy(
			retry.WithRetryable(func(error) bool { return true }),
			retry.WithBackoff(retry.Exponential(time.Hour)),
		)

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := p.Do(ctx, func(ctx context.Context, attempt int) error {
			return errTransient
		})

		Convey("Then Do returns the context error instead of waiting", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
