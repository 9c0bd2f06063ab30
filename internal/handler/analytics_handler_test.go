package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

func statusQueryContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/misconceptions?"+rawQuery, nil)
	return c, w
}

func TestStatusQueryDefaults(t *testing.T) {
	cases := []struct {
		name     string
		rawQuery string
		fallback model.MisconceptionStatus
		want     model.MisconceptionStatus
	}{
		{"absent falls back to valid", "", model.MisconceptionValid, model.MisconceptionValid},
		{"absent falls back to pending", "", model.MisconceptionPending, model.MisconceptionPending},
		{"explicit status overrides fallback", "status=rejected", model.MisconceptionValid, model.MisconceptionRejected},
		{"all disables the filter", "status=all", model.MisconceptionValid, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := statusQueryContext(t, tc.rawQuery)
			got, ok := statusQuery(c, tc.fallback)
			if !ok {
				t.Fatal("statusQuery rejected the request")
			}
			if got != tc.want {
				t.Errorf("statusQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusQueryRejectsUnknownState(t *testing.T) {
	c, w := statusQueryContext(t, "status=archived")
	_, ok := statusQuery(c, model.MisconceptionValid)
	if ok {
		t.Fatal("statusQuery accepted an unknown review state")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
