package backup_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/incentivo/internal/adapters/backup"
	"github.com/okian/incentivo/internal/domain/model"
)

func existingState() ([]model.Employee, []model.Task) {
	return []model.Employee{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Luis"}},
		[]model.Task{
			{ID: 1, Title: "Manual", EmployeeID: 1, Type: "Documentación", TotalScore: score(70)},
			{ID: 2, Title: "Soporte nocturno", EmployeeID: 2, Type: "Soporte"},
		}
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseStrategy(t *testing.T) {
	Convey("Given strategy names", t, func() {
		s, err := backup.ParseStrategy("")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, backup.KeepBoth)

		s, err = backup.ParseStrategy("REPLACE")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, backup.Replace)

		_, err = backup.ParseStrategy("overwrite")
		So(errors.Is(err, backup.ErrUnknownStrategy), ShouldBeTrue)
	})
}

func TestMerge(t *testing.T) {
	Convey("Given an existing state and an import", t, func() {
		employees, tasks := existingState()
		doc := model.Backup{
			Employees: []model.Employee{{ID: 2, Name: "Luis Pérez"}, {ID: 3, Name: "Marta"}},
			Tasks: []model.Task{
				{ID: 1, Title: "Manual", EmployeeID: 1, Type: "Documentación"},
				{ID: 2, Title: "Capacitación", EmployeeID: 3, Type: "Entrenamientos (Recibe)"},
				{ID: 9, Title: "Proyecto X", EmployeeID: 3, Type: "Proyecto especial", TotalScore: score(50)},
			},
		}

		Convey("When merging with keep_both", func() {
			res, err := backup.Merge(employees, tasks, doc, backup.KeepBoth)
			So(err, ShouldBeNil)

			Convey("Then employees merge by id with imported names", func() {
				So(res.Employees, ShouldResemble, []model.Employee{
					{ID: 1, Name: "Ana"}, {ID: 2, Name: "Luis Pérez"}, {ID: 3, Name: "Marta"},
				})
				So(res.Summary.EmployeesAdded, ShouldEqual, 1)
				So(res.Summary.EmployeesUpdated, ShouldEqual, 1)
			})

			Convey("Then duplicates are kept and colliding ids renumbered", func() {
				So(titles(res.Tasks), ShouldResemble, []string{
					"Manual", "Soporte nocturno", "Manual", "Capacitación", "Proyecto X",
				})
				So(ids(res.Tasks), ShouldResemble, []int64{1, 2, 10, 11, 9})
				So(res.Summary.Duplicates, ShouldEqual, 1)
				So(res.Summary.Renumbered, ShouldEqual, 2)
				So(res.Summary.TasksAdded, ShouldEqual, 3)
			})

			Convey("Then imported scores are cleared for rescoring", func() {
				So(res.Tasks[4].TotalScore, ShouldBeNil)
				So(*res.Tasks[0].TotalScore, ShouldEqual, 70.0)
			})

			Convey("Then the inputs are untouched", func() {
				So(employees[1].Name, ShouldEqual, "Luis")
				So(*doc.Tasks[2].TotalScore, ShouldEqual, 50.0)
				So(tasks, ShouldHaveLength, 2)
			})
		})

		Convey("When merging with replace", func() {
			res, err := backup.Merge(employees, tasks, doc, backup.Replace)
			So(err, ShouldBeNil)

			Convey("Then existing tasks with matching titles are dropped", func() {
				So(titles(res.Tasks), ShouldResemble, []string{
					"Soporte nocturno", "Manual", "Capacitación", "Proyecto X",
				})
				So(ids(res.Tasks), ShouldResemble, []int64{2, 1, 10, 9})
				So(res.Summary.Replaced, ShouldEqual, 1)
				So(res.Summary.Renumbered, ShouldEqual, 1)
			})
		})

		Convey("When merging into an empty state", func() {
			res, err := backup.Merge(nil, nil, doc, backup.KeepBoth)
			So(err, ShouldBeNil)

			Convey("Then the import is taken as is", func() {
				So(ids(res.Tasks), ShouldResemble, []int64{1, 2, 9})
				So(res.Summary.Duplicates, ShouldEqual, 0)
				So(res.Employees, ShouldHaveLength, 2)
			})
		})

		Convey("When the strategy is unknown", func() {
			_, err := backup.Merge(employees, tasks, doc, backup.Strategy("merge"))
			So(errors.Is(err, backup.ErrUnknownStrategy), ShouldBeTrue)
		})
	})
}
