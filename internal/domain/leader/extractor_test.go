package leader_test

import (
	"testing"

	"github.com/hashmark/spotlight/internal/domain/leader"
	"github.com/hashmark/spotlight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rushingBlock() model.StatBlock {
	return model.StatBlock{
		Name:   "rushing",
		Labels: []string{"Carries", "Yards", "TD"},
		Athletes: []model.AthleteLine{
			{Athlete: model.Athlete{ID: "1", DisplayName: "Back One"}, Stats: []string{"8", "12", "0"}},
			{Athlete: model.Athlete{ID: "2", DisplayName: "Back Two"}, Stats: []string{"14", "45", "1"}},
			{Athlete: model.Athlete{ID: "3", DisplayName: "Back Three"}, Stats: []string{"10", "45", "0"}},
		},
	}
}

func TestExtract(t *testing.T) {
	Convey("Given a rushing block with tied top values", t, func() {
		block := rushingBlock()

		Convey("When extracting with no exclusions", func() {
			used := leader.NewExclusions()
			cand, ok := leader.Extract(block, 1, used)

			Convey("Then the first-listed of the tied maximum wins deterministically", func() {
				So(ok, ShouldBeTrue)
				So(cand.Athlete.ID, ShouldEqual, "2")
				So(cand.Display, ShouldEqual, "45")
				So(cand.Value, ShouldEqual, 45)
			})

			Convey("And the winner joins the exclusion set", func() {
				So(used.Has("2"), ShouldBeTrue)
				So(used.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the top athlete is already excluded", func() {
			used := leader.NewExclusions()
			used.Add("2")
			cand, ok := leader.Extract(block, 1, used)

			Convey("Then the next-highest non-excluded athlete is selected", func() {
				So(ok, ShouldBeTrue)
				So(cand.Athlete.ID, ShouldEqual, "3")
			})
		})

		Convey("When extracting twice with the same exclusion set", func() {
			used := leader.NewExclusions()
			first, ok1 := leader.Extract(block, 1, used)
			second, ok2 := leader.Extract(block, 1, used)

			Convey("Then the same athlete never wins twice", func() {
				So(ok1, ShouldBeTrue)
				So(ok2, ShouldBeTrue)
				So(first.Athlete.ID, ShouldNotEqual, second.Athlete.ID)
			})
		})
	})

	Convey("Given a block where every value is zero or negative", t, func() {
		block := model.StatBlock{
			Name:   "rushing",
			Labels: []string{"Carries", "Yards"},
			Athletes: []model.AthleteLine{
				{Athlete: model.Athlete{ID: "7"}, Stats: []string{"3", "-4"}},
				{Athlete: model.Athlete{ID: "8"}, Stats: []string{"1", "0"}},
			},
		}

		Convey("Then the highest-ranked non-excluded row still wins", func() {
			used := leader.NewExclusions()
			cand, ok := leader.Extract(block, 1, used)
			So(ok, ShouldBeTrue)
			So(cand.Athlete.ID, ShouldEqual, "8")
			So(cand.Value, ShouldEqual, 0)
		})
	})

	Convey("Given a block with every athlete excluded", t, func() {
		block := rushingBlock()
		used := leader.NewExclusions()
		used.Add("1")
		used.Add("2")
		used.Add("3")

		Convey("Then extraction reports no leader", func() {
			_, ok := leader.Extract(block, 1, used)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given rows with short stat slices", t, func() {
		block := model.StatBlock{
			Name:   "receiving",
			Labels: []string{"Rec", "Yards"},
			Athletes: []model.AthleteLine{
				{Athlete: model.Athlete{ID: "9"}, Stats: []string{"4"}},
				{Athlete: model.Athlete{ID: "10"}, Stats: []string{"2", "31"}},
			},
		}

		Convey("Then missing columns coerce to zero rather than crashing", func() {
			used := leader.NewExclusions()
			cand, ok := leader.Extract(block, 1, used)
			So(ok, ShouldBeTrue)
			So(cand.Athlete.ID, ShouldEqual, "10")
		})
	})
}
