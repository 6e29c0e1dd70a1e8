package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/incentivo/pkg/logger"
)

func TestWriteJSON(t *testing.T) {
	Convey("Given a server", t, func() {
		s := NewServer(nil, WithLogger(logger.Nop()))
		r := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
		w := httptest.NewRecorder()

		Convey("When the value encodes", func() {
			s.writeJSON(w, r, http.StatusCreated, map[string]int{"id": 1})

			Convey("Then status and body are sent", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(w.Body.String(), ShouldEqual, "{\"id\":1}\n")
			})
		})

		Convey("When the value cannot be encoded", func() {
			s.writeJSON(w, r, http.StatusOK, map[string]float64{"avg": math.NaN()})

			Convey("Then an internal error is sent instead of an empty success", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var body errorResponse
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, string(KindInternal))
			})
		})
	})
}
