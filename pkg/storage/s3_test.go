package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidVideoUpload(t *testing.T) {
	assert.True(t, ValidVideoUpload("video/mp4", "clip.mp4"))
	assert.True(t, ValidVideoUpload("video/webm", "whatever.bin"), "video content type alone is enough")
	assert.True(t, ValidVideoUpload("", "Clip.MOV"), "extension match is case-insensitive")
	assert.True(t, ValidVideoUpload("application/octet-stream", "clip.mkv"))

	assert.False(t, ValidVideoUpload("application/pdf", "report.pdf"))
	assert.False(t, ValidVideoUpload("", "notes.txt"))
	assert.False(t, ValidVideoUpload("image/png", "photo.png"))
}

func TestVideoContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", VideoContentType("clip.mp4"))
	assert.Equal(t, "video/quicktime", VideoContentType("clip.mov"))
	assert.Equal(t, "application/octet-stream", VideoContentType("unknown.xyz"))
}

func TestVideoKey(t *testing.T) {
	key := VideoKey("abc-123", "my clip.mp4")
	assert.Equal(t, "wpd_videos/abc-123/my clip.mp4", key)

	// Path components in the filename must not escape the registrant prefix.
	key = VideoKey("abc-123", "../../etc/passwd")
	assert.Equal(t, "wpd_videos/abc-123/passwd", key)
}

func TestCertificateKey(t *testing.T) {
	issuedAt := time.Date(2026, 6, 5, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "wpd_certificates/abc-123/20260605T103000.pdf", CertificateKey("abc-123", issuedAt))
}
