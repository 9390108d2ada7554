package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request validation runs before any repository or S3 access, so nil
// collaborators are safe for these cases.
func newTestRouter(maxVideoSizeMB int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, maxVideoSizeMB, nil)
	r := gin.New()
	r.POST("/api/upload", h.Upload)
	return r
}

func multipartVideo(t *testing.T, fieldName, filename, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	fw, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestUpload_RequiresEmail(t *testing.T) {
	r := newTestRouter(100)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/upload", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email query param is required")
}

func TestUpload_RequiresVideoFile(t *testing.T) {
	r := newTestRouter(100)

	body, contentType := multipartVideo(t, "attachment", "clip.mp4", "video/mp4", 16)
	req := httptest.NewRequest(http.MethodPost, "/api/upload?email=jane@example.com", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No video file uploaded")
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	r := newTestRouter(1)

	body, contentType := multipartVideo(t, "video", "clip.mp4", "video/mp4", 2*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/upload?email=jane@example.com", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Video file too large")
}

func TestUpload_RejectsNonVideoFile(t *testing.T) {
	r := newTestRouter(100)

	body, contentType := multipartVideo(t, "video", "report.pdf", "application/pdf", 16)
	req := httptest.NewRequest(http.MethodPost, "/api/upload?email=jane@example.com", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only video files are allowed!")
}
