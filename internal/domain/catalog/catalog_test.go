package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/incentivo/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		c := catalog.Default()

		Convey("Then the special types carry their rules", func() {
			pra, ok := c.Lookup("PRA")
			So(ok, ShouldBeTrue)
			So(pra.Rule, ShouldEqual, catalog.RuleThreshold)

			val, ok := c.Lookup("Validacion")
			So(ok, ShouldBeTrue)
			So(val.Rule, ShouldEqual, catalog.RuleThreshold)

			proc, ok := c.Lookup("Práctica de procesos")
			So(ok, ShouldBeTrue)
			So(proc.Rule, ShouldEqual, catalog.RuleProcess)
			_, ok = proc.Criterion(catalog.CriterionInstructions)
			So(ok, ShouldBeTrue)
		})

		Convey("Then every weighted type sums to 100", func() {
			for _, tt := range c.Types() {
				if tt.Rule == catalog.RuleWeighted {
					So(tt.TotalWeight(), ShouldAlmostEqual, 100, 0.001)
				}
			}
		})

		Convey("Then names keep catalog order", func() {
			names := c.Names()
			So(names[0], ShouldEqual, "PRA")
			So(len(names), ShouldEqual, len(c.Types()))
		})

		Convey("When a caller mutates a looked-up type", func() {
			pra, _ := c.Lookup("PRA")
			pra.Criteria[0].Weight = 1

			Convey("Then the catalog is unaffected", func() {
				again, _ := c.Lookup("PRA")
				So(again.Criteria[0].Weight, ShouldEqual, 60)
			})
		})

		Convey("When looking up an unknown type", func() {
			_, ok := c.Lookup("Inexistente")
			So(ok, ShouldBeFalse)
			So(c.Has("Inexistente"), ShouldBeFalse)
		})
	})
}

func TestNewValidation(t *testing.T) {
	Convey("Given catalog construction", t, func() {
		Convey("When weights do not sum to 100", func() {
			_, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Criteria: []catalog.Criterion{{Name: "A", Weight: 60}, {Name: "B", Weight: 30}},
			})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the rule is omitted it defaults to weighted", func() {
			c, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Criteria: []catalog.Criterion{{Name: "A", Weight: 60}, {Name: "B", Weight: 40}},
			})
			So(err, ShouldBeNil)
			x, _ := c.Lookup("X")
			So(x.Rule, ShouldEqual, catalog.RuleWeighted)
		})

		Convey("When a criterion name repeats", func() {
			_, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Criteria: []catalog.Criterion{{Name: "A", Weight: 50}, {Name: "A", Weight: 50}},
			})
			So(errors.Is(err, catalog.ErrDuplicateCriterion), ShouldBeTrue)
		})

		Convey("When a type repeats", func() {
			tt := catalog.TaskType{Name: "X", Criteria: []catalog.Criterion{{Name: "A", Weight: 100}}}
			_, err := catalog.New(tt, tt)
			So(errors.Is(err, catalog.ErrDuplicateType), ShouldBeTrue)
		})

		Convey("When a weight is out of range", func() {
			_, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Rule:     catalog.RuleThreshold,
				Criteria: []catalog.Criterion{{Name: "Calidad", Weight: 120}},
			})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When a threshold type lacks Calidad", func() {
			_, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Rule:     catalog.RuleThreshold,
				Criteria: []catalog.Criterion{{Name: "A", Weight: 100}},
			})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When a process type lacks the instructions criterion", func() {
			_, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Rule:     catalog.RuleProcess,
				Criteria: []catalog.Criterion{{Name: "Calidad", Weight: 60}},
			})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the rule is unknown", func() {
			_, err := catalog.New(catalog.TaskType{
				Name:     "X",
				Rule:     "fancy",
				Criteria: []catalog.Criterion{{Name: "A", Weight: 100}},
			})
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When no types are given", func() {
			_, err := catalog.New()
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("MustNew panics on invalid input", func() {
			So(func() { catalog.MustNew() }, ShouldPanic)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML catalog file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.yaml")
		content := `
types:
  - name: PRA
    rule: threshold
    criteria:
      - name: Calidad
        weight: 70
      - name: Tiempo de entrega
        weight: 30
  - name: Soporte
    criteria:
      - name: Resolución
        weight: 100
        description: Caso cerrado
`
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			c, err := catalog.LoadFile(path)

			Convey("Then the types are available", func() {
				So(err, ShouldBeNil)
				So(c.Names(), ShouldResemble, []string{"PRA", "Soporte"})
				s, _ := c.Lookup("Soporte")
				So(s.Criteria[0].Description, ShouldEqual, "Caso cerrado")
			})
		})

		Convey("When the path is empty", func() {
			c, err := catalog.LoadFile("")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, catalog.Default())
		})

		Convey("When the file does not exist", func() {
			_, err := catalog.LoadFile(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})

		Convey("When the YAML is malformed", func() {
			_, err := catalog.Parse([]byte("types: ["))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})
	})
}
