package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/incentivo/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTaskClone(t *testing.T) {
	Convey("Given a scored task", t, func() {
		score := 72.5
		task := model.Task{
			ID:          1,
			Title:       "Revisión de manual",
			EmployeeID:  3,
			Type:        "PRA",
			Date:        "2024-01-15",
			Evaluations: model.Evaluations{"Calidad": 90},
			TotalScore:  &score,
		}

		Convey("When cloning it", func() {
			c := task.Clone()
			c.Evaluations["Calidad"] = 10
			*c.TotalScore = 1

			Convey("Then the original is untouched", func() {
				So(task.Evaluations["Calidad"], ShouldEqual, 90)
				So(*task.TotalScore, ShouldEqual, 72.5)
				So(task.Evaluated(), ShouldBeTrue)
			})
		})

		Convey("When cloning a pending task", func() {
			pending := model.Task{ID: 2}
			c := pending.Clone()

			Convey("Then nil fields stay nil", func() {
				So(c.Evaluations, ShouldBeNil)
				So(c.TotalScore, ShouldBeNil)
				So(c.Evaluated(), ShouldBeFalse)
			})
		})
	})
}

func TestTaskJSON(t *testing.T) {
	Convey("Given a pending task", t, func() {
		task := model.Task{ID: 7, Title: "x", EmployeeID: 1, Type: "PRA", Date: "2024-02-01"}

		Convey("When encoding it", func() {
			b, err := json.Marshal(task)
			So(err, ShouldBeNil)

			Convey("Then totalScore is null and names are camelCase", func() {
				So(string(b), ShouldContainSubstring, `"totalScore":null`)
				So(string(b), ShouldContainSubstring, `"employeeId":1`)
				So(string(b), ShouldNotContainSubstring, `"comments"`)
			})
		})
	})
}

func TestCloneSlices(t *testing.T) {
	Convey("Given nil slices", t, func() {
		So(model.CloneTasks(nil), ShouldBeNil)
		So(model.CloneEmployees(nil), ShouldBeNil)
	})

	Convey("Given an employee slice", t, func() {
		in := []model.Employee{{ID: 1, Name: "Ana"}}
		out := model.CloneEmployees(in)
		out[0].Name = "Luis"
		So(in[0].Name, ShouldEqual, "Ana")
	})
}
