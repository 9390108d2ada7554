package visits

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUTCDay_IgnoresLocalZone(t *testing.T) {
	// 01:00 on June 5 at UTC+14 is still June 4 in UTC.
	ahead := time.Date(2026, 6, 5, 1, 0, 0, 0, time.FixedZone("UTC+14", 14*3600))
	assert.Equal(t, "2026-06-04", utcDay(ahead))

	// 23:00 on June 4 at UTC-10 is already June 5 in UTC.
	behind := time.Date(2026, 6, 4, 23, 0, 0, 0, time.FixedZone("UTC-10", -10*3600))
	assert.Equal(t, "2026-06-05", utcDay(behind))

	assert.Equal(t, "2026-06-05", utcDay(time.Date(2026, 6, 5, 12, 0, 0, 0, time.UTC)))
}

// Validation failures never reach the repository, so a nil repo is fine here.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil)
	r := gin.New()
	r.POST("/api/track-visit", h.Track)
	r.GET("/api/unique-visits-daily", h.Daily)
	return r
}

func TestTrack_RequiresVisitorID(t *testing.T) {
	r := newTestRouter()

	for _, body := range []string{``, `{}`, `{"visitorId":""}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/track-visit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.Contains(t, w.Body.String(), "visitorId is required")
	}
}

func TestDaily_RequiresDate(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unique-visits-daily", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Date parameter is required.")
}

func TestDaily_RejectsBadDateFormat(t *testing.T) {
	r := newTestRouter()

	for _, date := range []string{"05-06-2026", "2026/06/05", "yesterday"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unique-visits-daily?date="+date, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code, "date %q", date)
		assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
	}
}
