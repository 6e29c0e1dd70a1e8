package dedupe_test

import (
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/incentivo/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d.Size(), ShouldEqual, 0)

		Convey("When recording a new key", func() {
			seen := d.SeenAndRecord("Manual de Onboarding")

			Convey("Then it is reported as new and stored", func() {
				So(seen, ShouldBeFalse)
				So(d.Seen("Manual de Onboarding"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports a duplicate", func() {
				So(d.SeenAndRecord("Manual de Onboarding"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And matching is exact", func() {
				So(d.Seen("manual de onboarding"), ShouldBeFalse)
				So(d.Seen("Manual de Onboarding "), ShouldBeFalse)
			})

			Convey("And unrecording forgets it", func() {
				d.Unrecord("Manual de Onboarding")
				So(d.Seen("Manual de Onboarding"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a deduper seeded with keys", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithKeys("a", "b", "a"))
		So(d.Size(), ShouldEqual, 2)
		So(d.SeenAndRecord("b"), ShouldBeTrue)
	})

	Convey("Given concurrent recorders", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if !d.SeenAndRecord(fmt.Sprintf("k%d", i%10)) {
					mu.Lock()
					fresh++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		So(fresh, ShouldEqual, 10)
		So(d.Size(), ShouldEqual, 10)
	})
}
