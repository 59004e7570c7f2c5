package grade_test

import (
	"testing"

	"github.com/hashmark/spotlight/internal/domain/grade"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given the passing benchmarks", t, func() {
		Convey("A benchmark-saturating performance grades A+ 100", func() {
			result := grade.Compute("passing", 400, 3500)
			So(result.Score, ShouldEqual, 100)
			So(result.Letter, ShouldEqual, "A+")
		})

		Convey("A zero performance grades F 0", func() {
			result := grade.Compute("passing", 0, 0)
			So(result.Score, ShouldEqual, 0)
			So(result.Letter, ShouldEqual, "F")
		})

		Convey("Ratios cap at the benchmark", func() {
			capped := grade.Compute("passing", 4000, 35000)
			So(capped.Score, ShouldEqual, 100)
		})

		Convey("The game counts 40% and the season 60%", func() {
			// game ratio 1, season ratio 0 -> 40
			result := grade.Compute("passing", 400, 0)
			So(result.Score, ShouldEqual, 40)
			So(result.Letter, ShouldEqual, "F")
		})

		Convey("Compute is pure and idempotent", func() {
			a := grade.Compute("rushing", 110, 900)
			b := grade.Compute("rushing", 110, 900)
			So(a, ShouldResemble, b)
		})
	})

	Convey("Given an unknown category", t, func() {
		Convey("The {1,1} fallback saturates per unit value", func() {
			result := grade.Compute("punting", 1, 1)
			So(result.Score, ShouldEqual, 100)
			So(result.Letter, ShouldEqual, "A+")
		})
	})
}

func TestLetter(t *testing.T) {
	Convey("Given the fixed threshold table", t, func() {
		cases := map[int]string{
			100: "A+", 97: "A+", 96: "A", 93: "A", 92: "A-", 90: "A-",
			89: "B+", 85: "B", 80: "B-", 78: "C+", 75: "C", 70: "C-",
			68: "D+", 65: "D", 60: "D-", 59: "F", 0: "F",
		}
		for score, want := range cases {
			So(grade.Letter(score), ShouldEqual, want)
		}
	})
}
