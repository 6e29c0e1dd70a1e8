package scoring_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/okian/incentivo/internal/domain/catalog"
	"github.com/okian/incentivo/internal/domain/model"
	scoring "github.com/okian/incentivo/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func TestCalculator_WeightedRule(t *testing.T) {
	Convey("Given a calculator over a two-criterion type", t, func() {
		cat := catalog.MustNew(catalog.TaskType{
			Name:     "Simple",
			Criteria: []catalog.Criterion{{Name: "A", Weight: 60}, {Name: "B", Weight: 40}},
		})
		calc := scoring.NewCalculator(scoring.WithCatalog(cat))

		Convey("When every criterion is evaluated", func() {
			score := calc.Compute("Simple", model.Evaluations{"A": 80, "B": 50})

			Convey("Then the total is the weighted sum", func() {
				So(score, ShouldNotBeNil)
				So(*score, ShouldAlmostEqual, 68, epsilon)
			})
		})

		Convey("When only one criterion is evaluated", func() {
			score := calc.Compute("Simple", model.Evaluations{"B": 100})

			Convey("Then missing criteria count as zero", func() {
				So(*score, ShouldAlmostEqual, 40, epsilon)
			})
		})

		Convey("When an entered score is zero", func() {
			score := calc.Compute("Simple", model.Evaluations{"A": 0})

			Convey("Then the task is scored, not pending", func() {
				So(score, ShouldNotBeNil)
				So(*score, ShouldEqual, 0)
			})
		})

		Convey("When scores are out of range", func() {
			score := calc.Compute("Simple", model.Evaluations{"A": 150, "B": -20})

			Convey("Then they are clamped to [0,100]", func() {
				So(*score, ShouldAlmostEqual, 60, epsilon)
			})
		})

		Convey("When a score is NaN", func() {
			score := calc.Compute("Simple", model.Evaluations{"A": math.NaN(), "B": 100})

			Convey("Then it counts as zero", func() {
				So(*score, ShouldAlmostEqual, 40, epsilon)
			})
		})
	})
}

func TestCalculator_Pending(t *testing.T) {
	Convey("Given the default calculator", t, func() {
		calc := scoring.NewCalculator()

		Convey("When evaluations are empty", func() {
			So(calc.Compute("PRA", model.Evaluations{}), ShouldBeNil)
			So(calc.Compute("Soporte", nil), ShouldBeNil)
		})

		Convey("When only foreign criteria are present", func() {
			So(calc.Compute("Soporte", model.Evaluations{"Calidad": 100}), ShouldBeNil)
		})

		Convey("When the type is unknown", func() {
			So(calc.Compute("Tipo eliminado", model.Evaluations{"Calidad": 100}), ShouldBeNil)
			_, ok := calc.Breakdown("Tipo eliminado", model.Evaluations{"Calidad": 100})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestCalculator_ThresholdRule(t *testing.T) {
	Convey("Given the default rescaled calculator", t, func() {
		calc := scoring.NewCalculator()
		So(calc.Quality(), ShouldEqual, scoring.QualityRescaled)

		for _, taskType := range []string{"PRA", "Validacion"} {
			Convey("For "+taskType+", Calidad at 69 contributes nothing", func() {
				b, ok := calc.Breakdown(taskType, model.Evaluations{catalog.CriterionQuality: 69})
				So(ok, ShouldBeTrue)
				So(b.Contributions[0].Points, ShouldEqual, 0)
				So(b.Total, ShouldEqual, 0)
			})

			Convey("For "+taskType+", Calidad at 70 is rescaled", func() {
				score := calc.Compute(taskType, model.Evaluations{catalog.CriterionQuality: 70})
				So(*score, ShouldAlmostEqual, 60.0/31.0, epsilon)
			})
		}

		Convey("A perfect PRA scores 100", func() {
			score := calc.Compute("PRA", model.Evaluations{
				catalog.CriterionQuality:      100,
				"Tiempo de entrega":           100,
				catalog.CriterionInstructions: 100,
			})
			So(*score, ShouldAlmostEqual, 100, epsilon)
		})

		Convey("Other PRA criteria keep the weighted rule below the threshold", func() {
			score := calc.Compute("PRA", model.Evaluations{
				catalog.CriterionQuality:      69,
				"Tiempo de entrega":           100,
				catalog.CriterionInstructions: 50,
			})
			So(*score, ShouldAlmostEqual, 30, epsilon)
		})
	})

	Convey("Given the proportional calculator", t, func() {
		calc := scoring.NewCalculator(scoring.WithQualityStrategy(scoring.QualityProportional))

		Convey("Calidad at 69 still forfeits its weight", func() {
			score := calc.Compute("PRA", model.Evaluations{catalog.CriterionQuality: 69})
			So(*score, ShouldEqual, 0)
		})

		Convey("Calidad at 70 is proportional to its weight", func() {
			score := calc.Compute("PRA", model.Evaluations{catalog.CriterionQuality: 70})
			So(*score, ShouldAlmostEqual, 42, epsilon)
		})
	})
}

func TestCalculator_ProcessRule(t *testing.T) {
	Convey("Given a Práctica de procesos task", t, func() {
		evals := model.Evaluations{catalog.CriterionQuality: 85, catalog.CriterionInstructions: 50}

		Convey("When using the rescaled strategy", func() {
			b, ok := scoring.NewCalculator().Breakdown("Práctica de procesos", evals)

			Convey("Then Calidad is rescaled and instructions count 40%", func() {
				So(ok, ShouldBeTrue)
				So(b.Contributions[0].Points, ShouldAlmostEqual, 16.0/31.0*60, epsilon)
				So(b.Contributions[1].Points, ShouldAlmostEqual, 20, epsilon)
				So(b.Total, ShouldAlmostEqual, 16.0/31.0*60+20, epsilon)
			})
		})

		Convey("When Calidad is below the threshold", func() {
			score := scoring.NewCalculator().Compute("Práctica de procesos", model.Evaluations{
				catalog.CriterionQuality:      50,
				catalog.CriterionInstructions: 100,
			})

			Convey("Then only instructions contribute", func() {
				So(*score, ShouldAlmostEqual, 40, epsilon)
			})
		})

		Convey("When using the proportional strategy", func() {
			calc := scoring.NewCalculator(scoring.WithQualityStrategy(scoring.QualityProportional))
			score := calc.Compute("Práctica de procesos", evals)

			Convey("Then Calidad is weighted and instructions keep the fixed multiplier", func() {
				So(*score, ShouldAlmostEqual, 51+20, epsilon)
			})
		})
	})
}

func TestCalculator_Idempotent(t *testing.T) {
	Convey("Given identical inputs", t, func() {
		calc := scoring.NewCalculator()
		evals := model.Evaluations{catalog.CriterionQuality: 91, "Tiempo de entrega": 77}

		first := calc.Compute("Validacion", evals)
		second := calc.Compute("Validacion", evals)

		So(*first, ShouldEqual, *second)
		So(first, ShouldNotPointTo, second)
		So(evals, ShouldResemble, model.Evaluations{catalog.CriterionQuality: 91, "Tiempo de entrega": 77})
	})
}

func TestParseQualityStrategy(t *testing.T) {
	Convey("Given strategy names", t, func() {
		s, err := scoring.ParseQualityStrategy("")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, scoring.QualityRescaled)

		s, err = scoring.ParseQualityStrategy(" Proportional ")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, scoring.QualityProportional)

		_, err = scoring.ParseQualityStrategy("linear")
		So(errors.Is(err, scoring.ErrUnknownStrategy), ShouldBeTrue)
	})

	Convey("Given an invalid option value", t, func() {
		calc := scoring.NewCalculator(scoring.WithQualityStrategy("bogus"))
		So(calc.Quality(), ShouldEqual, scoring.QualityRescaled)
	})
}

func TestCoerce(t *testing.T) {
	Convey("Given loosely typed scores", t, func() {
		cases := []struct {
			in    any
			score float64
			ok    bool
		}{
			{nil, 0, false},
			{"", 0, false},
			{"   ", 0, false},
			{"85", 85, true},
			{" 72.5 ", 72.5, true},
			{"abc", 0, true},
			{float64(90), 90, true},
			{42, 42, true},
			{int64(7), 7, true},
			{json.Number("66"), 66, true},
			{json.Number("x"), 0, true},
			{true, 0, true},
			{[]int{1}, 0, true},
			{"NaN", 0, true},
			{"Inf", 0, true},
			{"-Inf", 0, true},
			{math.NaN(), 0, true},
			{math.Inf(1), 0, true},
			{float32(math.Inf(-1)), 0, true},
			{"150", 150, true},
		}
		for _, c := range cases {
			score, ok := scoring.Coerce(c.in)
			So(score, ShouldEqual, c.score)
			So(ok, ShouldEqual, c.ok)
		}
	})

	Convey("Given raw evaluations", t, func() {
		evals := scoring.ParseEvaluations(map[string]any{
			"Calidad":           "95",
			"Tiempo de entrega": "",
			"Documentación":     "n/a",
			"Otro":              nil,
		})

		So(evals, ShouldResemble, model.Evaluations{"Calidad": 95, "Documentación": 0})
		So(scoring.ParseEvaluations(nil), ShouldNotBeNil)
	})

	Convey("Given out-of-range and non-finite raw evaluations", t, func() {
		evals := scoring.ParseEvaluations(map[string]any{
			"Resolución":   150,
			"Comunicación": -40,
			"Tiempo":       "NaN",
			"Otro":         "Inf",
		})

		So(evals, ShouldResemble, model.Evaluations{
			"Resolución":   100,
			"Comunicación": 0,
			"Tiempo":       0,
			"Otro":         0,
		})
		_, err := json.Marshal(evals)
		So(err, ShouldBeNil)
	})
}

func TestClamp(t *testing.T) {
	Convey("Given raw scores", t, func() {
		So(scoring.Clamp(55.5), ShouldEqual, 55.5)
		So(scoring.Clamp(-1), ShouldEqual, 0)
		So(scoring.Clamp(101), ShouldEqual, 100)
		So(scoring.Clamp(math.NaN()), ShouldEqual, 0)
		So(scoring.Clamp(math.Inf(1)), ShouldEqual, 0)
		So(scoring.Clamp(math.Inf(-1)), ShouldEqual, 0)
	})

	Convey("Given stored evaluations", t, func() {
		in := model.Evaluations{"A": 120, "B": 30}
		out := scoring.NormalizeEvaluations(in)

		So(out, ShouldResemble, model.Evaluations{"A": 100, "B": 30})
		So(in["A"], ShouldEqual, 120)
		So(scoring.NormalizeEvaluations(nil), ShouldNotBeNil)
	})
}
