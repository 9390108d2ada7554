package registrants

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipca-wpd/backend/internal/auth"
)

// Validation failures return before any repository or mailer access, so the
// collaborators can stay nil.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	verification := auth.NewVerificationService("test-secret", time.Hour)
	h := NewHandler(nil, verification, nil, nil, "http://localhost:8080", nil)
	r := gin.New()
	r.POST("/api/users/register", h.Register)
	r.POST("/api/users/check", h.CheckStatus)
	r.GET("/api/users/verify", h.Verify)
	r.GET("/api/users/video", h.GetVideoData)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_RequiresAllFields(t *testing.T) {
	r := newTestRouter()

	cases := []string{
		`{}`,
		`{"annotation":"Mr","name":"Jane","email":"jane@example.com"}`,
		`{"annotation":"Mr","name":"Jane","mobile":"123"}`,
		`{"name":"Jane","email":"jane@example.com","mobile":"123"}`,
	}
	for _, body := range cases {
		w := postJSON(r, "/api/users/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "All fields (annotation, name, email, mobile) are required.")
	}
}

func TestRegister_RejectsBadEmail(t *testing.T) {
	r := newTestRouter()

	for _, email := range []string{"not-an-email", "a@b", "a b@c.com"} {
		w := postJSON(r, "/api/users/register",
			`{"annotation":"Mr","name":"Jane","email":"`+email+`","mobile":"123"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "email %q", email)
		assert.Contains(t, w.Body.String(), "Invalid email format.")
	}
}

func TestRegister_RejectsUnknownAnnotation(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/api/users/register",
		`{"annotation":"Prof","name":"Jane","email":"jane@example.com","mobile":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid annotation.")
}

func TestCheckStatus_RequiresEmailAndPasscode(t *testing.T) {
	r := newTestRouter()

	for _, body := range []string{`{}`, `{"email":"jane@example.com"}`, `{"passcode":"123456"}`} {
		w := postJSON(r, "/api/users/check", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "Email and 6-digit passcode are required")
	}
}

func TestVerify_RequiresToken(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/verify", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Verification token is required.", w.Body.String())
}

func TestVerify_RejectsInvalidToken(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/verify?token=garbage", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid verification token.", w.Body.String())
}

func TestGetVideoData_RequiresEmail(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/video", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email query parameter is required.")
}

func TestGeneratePasscode(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[1-9]\d{5}$`)
	for i := 0; i < 50; i++ {
		code, err := generatePasscode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}
