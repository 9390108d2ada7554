package uploads

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/internal/registrants"
	"github.com/ipca-wpd/backend/pkg/response"
	"github.com/ipca-wpd/backend/pkg/storage"
)

// Handler handles video submission uploads.
type Handler struct {
	repo         *registrants.Repository
	s3           *storage.S3
	maxVideoSize int64
	logger       *zap.Logger
}

// NewHandler creates an upload handler. maxVideoSizeMB bounds the accepted
// multipart file size.
func NewHandler(repo *registrants.Repository, s3 *storage.S3, maxVideoSizeMB int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxVideoSizeMB <= 0 {
		maxVideoSizeMB = 100
	}
	return &Handler{
		repo:         repo,
		s3:           s3,
		maxVideoSize: int64(maxVideoSizeMB) * 1024 * 1024,
		logger:       logger,
	}
}

// Upload handles POST /api/upload?email=... with a multipart "video" field.
// The previous video object, if any, is deleted best-effort; the registrant's
// approval state is reset so a replaced video always goes back through review.
func (h *Handler) Upload(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "Email query param is required")
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "No video file uploaded")
		return
	}
	if file.Size > h.maxVideoSize {
		response.BadRequest(c, "Video file too large")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !storage.ValidVideoUpload(contentType, file.Filename) {
		response.BadRequest(c, "Only video files are allowed!")
		return
	}

	reg, err := h.repo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("registrant lookup failed", zap.String("email", email), zap.Error(err))
		response.Internal(c, "Video upload failed")
		return
	}
	if reg == nil {
		response.NotFound(c, "User not found")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Internal(c, "Video upload failed")
		return
	}
	defer src.Close()

	if contentType == "" {
		contentType = storage.VideoContentType(file.Filename)
	}
	key := storage.VideoKey(reg.ID.String(), file.Filename)
	videoURL, err := h.s3.Upload(c.Request.Context(), key, contentType, src, file.Size)
	if err != nil {
		h.logger.Error("video upload failed", zap.String("email", email), zap.Error(err))
		response.Internal(c, "Video upload failed")
		return
	}

	// Best-effort removal of the replaced video object.
	if reg.StorageKey != nil && *reg.StorageKey != "" && *reg.StorageKey != key {
		if err := h.s3.Delete(c.Request.Context(), *reg.StorageKey); err != nil {
			h.logger.Warn("old video delete failed", zap.String("key", *reg.StorageKey), zap.Error(err))
		}
	}

	updated, err := h.repo.ReplaceVideo(c.Request.Context(), reg.ID, videoURL, key)
	if err != nil || updated == nil {
		h.logger.Error("video record update failed", zap.String("email", email), zap.Error(err))
		// The object is orphaned if the row update fails; clean it up.
		if delErr := h.s3.Delete(c.Request.Context(), key); delErr != nil {
			h.logger.Warn("orphaned video cleanup failed", zap.String("key", key), zap.Error(delErr))
		}
		response.Internal(c, "Video upload failed")
		return
	}

	response.OK(c, updated)
}
