package stats_test

import (
	"strconv"
	"testing"

	"github.com/okian/incentivo/internal/domain/bucket"
	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func scored(id, employee int64, taskType string, score float64) model.Task {
	return model.Task{ID: id, EmployeeID: employee, Type: taskType, TotalScore: &score}
}

func pending(id, employee int64, taskType string) model.Task {
	return model.Task{ID: id, EmployeeID: employee, Type: taskType}
}

func TestAggregate(t *testing.T) {
	Convey("Given no tasks", t, func() {
		s := stats.Aggregate(nil)

		Convey("Then every figure is zero", func() {
			So(s.TotalTasks, ShouldEqual, 0)
			So(s.PendingTasks, ShouldEqual, 0)
			So(s.AverageScore, ShouldEqual, 0)
			So(s.BonusPercentage, ShouldEqual, "0.00")
			So(s.TasksByType, ShouldNotBeNil)
			So(s.TasksByType, ShouldBeEmpty)
			So(len(s.Distribution), ShouldEqual, 4)
		})
	})

	Convey("Given only pending tasks", t, func() {
		s := stats.Aggregate([]model.Task{pending(1, 1, "PRA"), pending(2, 1, "PRA")})

		Convey("Then the average is guarded against division by zero", func() {
			So(s.TotalTasks, ShouldEqual, 0)
			So(s.PendingTasks, ShouldEqual, 2)
			So(s.AverageScore, ShouldEqual, 0)
			So(s.BonusPercentage, ShouldEqual, "0.00")
			So(s.TasksByType, ShouldBeEmpty)
		})
	})

	Convey("Given mixed tasks", t, func() {
		tasks := []model.Task{
			scored(1, 1, "PRA", 95),
			scored(2, 1, "Soporte", 75),
			scored(3, 2, "Soporte", 55),
			scored(4, 2, "PRA", 21),
			pending(5, 2, "PRA"),
		}
		s := stats.Aggregate(tasks)

		Convey("Then only evaluated tasks are averaged", func() {
			So(s.TotalTasks, ShouldEqual, 4)
			So(s.PendingTasks, ShouldEqual, 1)
			So(s.AverageScore, ShouldEqual, 61.5)
			So(s.BonusPercentage, ShouldEqual, "18.45")
			So(s.TasksByType, ShouldResemble, map[string]int{"PRA": 2, "Soporte": 2})
		})

		Convey("Then each bucket holds one task", func() {
			So(s.Distribution[bucket.Excellent], ShouldEqual, 1)
			So(s.Distribution[bucket.Good], ShouldEqual, 1)
			So(s.Distribution[bucket.Regular], ShouldEqual, 1)
			So(s.Distribution[bucket.Deficient], ShouldEqual, 1)
		})

		Convey("Then re-aggregating yields identical stats", func() {
			So(stats.Aggregate(tasks), ShouldResemble, s)
		})
	})

	Convey("Given a perfect average", t, func() {
		s := stats.Aggregate([]model.Task{scored(1, 1, "PRA", 100)})
		So(s.BonusPercentage, ShouldEqual, "30.00")
	})
}

func TestBonusMonotonic(t *testing.T) {
	Convey("Given two task sets with different averages", t, func() {
		averages := []float64{0, 12.5, 33.33, 50, 68, 70.01, 89.99, 100}
		for i := 1; i < len(averages); i++ {
			lo := stats.Aggregate([]model.Task{scored(1, 1, "X", averages[i-1])})
			hi := stats.Aggregate([]model.Task{scored(1, 1, "X", averages[i])})

			So(hi.AverageScore, ShouldBeGreaterThan, lo.AverageScore)
			So(stats.Bonus(hi.AverageScore), ShouldBeGreaterThan, stats.Bonus(lo.AverageScore))
			hiBonus, err := strconv.ParseFloat(hi.BonusPercentage, 64)
			So(err, ShouldBeNil)
			loBonus, err := strconv.ParseFloat(lo.BonusPercentage, 64)
			So(err, ShouldBeNil)
			So(hiBonus, ShouldBeGreaterThan, loBonus)
		}
	})
}

func TestForEmployee(t *testing.T) {
	Convey("Given tasks of two employees", t, func() {
		tasks := []model.Task{scored(1, 1, "PRA", 80), scored(2, 2, "PRA", 40), pending(3, 1, "PRA")}

		Convey("When narrowing to one employee", func() {
			s := stats.ForEmployee(tasks, 1)
			So(s.TotalTasks, ShouldEqual, 1)
			So(s.PendingTasks, ShouldEqual, 1)
			So(s.AverageScore, ShouldEqual, 80)
			So(s.BonusPercentage, ShouldEqual, "24.00")
		})

		Convey("When the employee has no tasks", func() {
			s := stats.ForEmployee(tasks, 99)
			So(s.TotalTasks, ShouldEqual, 0)
			So(s.AverageScore, ShouldEqual, 0)
			So(s.BonusPercentage, ShouldEqual, "0.00")
		})
	})
}

func TestByEmployee(t *testing.T) {
	Convey("Given employees with different averages", t, func() {
		employees := []model.Employee{{ID: 1, Name: "Beatriz"}, {ID: 2, Name: "Ana"}, {ID: 3, Name: "Carlos"}, {ID: 4, Name: "Diana"}}
		tasks := []model.Task{
			scored(1, 1, "PRA", 70),
			scored(2, 2, "PRA", 90),
			scored(3, 3, "PRA", 70),
		}
		rows := stats.ByEmployee(employees, tasks)

		Convey("Then rows are ranked by average and then by name", func() {
			So(len(rows), ShouldEqual, 4)
			So(rows[0].Employee.Name, ShouldEqual, "Ana")
			So(rows[1].Employee.Name, ShouldEqual, "Beatriz")
			So(rows[2].Employee.Name, ShouldEqual, "Carlos")
			So(rows[3].Employee.Name, ShouldEqual, "Diana")
		})

		Convey("Then employees without tasks report zeros", func() {
			So(rows[3].Stats.TotalTasks, ShouldEqual, 0)
			So(rows[3].Stats.BonusPercentage, ShouldEqual, "0.00")
		})
	})
}
