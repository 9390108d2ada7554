package admin

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/internal/auth"
	"github.com/ipca-wpd/backend/internal/certificates"
	"github.com/ipca-wpd/backend/internal/emaillogs"
	"github.com/ipca-wpd/backend/internal/middleware"
	"github.com/ipca-wpd/backend/internal/models"
	"github.com/ipca-wpd/backend/internal/registrants"
	"github.com/ipca-wpd/backend/pkg/mailer"
	"github.com/ipca-wpd/backend/pkg/queue"
	"github.com/ipca-wpd/backend/pkg/response"
	"github.com/ipca-wpd/backend/pkg/storage"
	"github.com/ipca-wpd/backend/pkg/utils"
)

// LoginRequest is the body for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler handles admin HTTP endpoints.
type Handler struct {
	repo           *Repository
	registrantRepo *registrants.Repository
	jwt            *auth.JWTService
	renderer       certificates.Renderer
	s3             *storage.S3
	mail           *mailer.Mailer
	emailLog       *emaillogs.Repository
	jobs           *queue.Queue
	logger         *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(
	repo *Repository,
	registrantRepo *registrants.Repository,
	jwt *auth.JWTService,
	renderer certificates.Renderer,
	s3 *storage.S3,
	mail *mailer.Mailer,
	emailLog *emaillogs.Repository,
	jobs *queue.Queue,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:           repo,
		registrantRepo: registrantRepo,
		jwt:            jwt,
		renderer:       renderer,
		s3:             s3,
		mail:           mail,
		emailLog:       emailLog,
		jobs:           jobs,
		logger:         logger,
	}
}

// Login handles POST /api/admin/login. Unknown email and wrong password fail
// identically so the response does not reveal which admins exist.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Email and password are required")
		return
	}

	adm, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("admin lookup failed", zap.Error(err))
		response.Internal(c, "Server error")
		return
	}
	if adm == nil || !utils.CheckPassword(req.Password, adm.PasswordHash) {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := h.jwt.Generate(adm.ID, adm.Email)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		response.Internal(c, "Server error")
		return
	}

	response.OK(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"adminId": adm.ID,
	})
}

// ListSubmissions handles GET /api/admin/submissions. Only registrants with a
// video are listed, most recent upload first.
func (h *Handler) ListSubmissions(c *gin.Context) {
	list, err := h.registrantRepo.ListSubmissions(c.Request.Context())
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err))
		response.Internal(c, "Server error")
		return
	}
	if list == nil {
		list = []models.SubmissionSummary{}
	}
	response.OK(c, list)
}

// Approve handles POST /api/admin/approve/:userId. Approving an
// already-approved registrant re-sends the certificate; the certificate is
// regenerated either way so the issue date is always current. A failure after
// the approval flip is not rolled back.
func (h *Handler) Approve(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	ctx := c.Request.Context()
	reg, err := h.registrantRepo.GetByID(ctx, userID)
	if err != nil {
		h.logger.Error("approve lookup failed", zap.Error(err))
		response.Internal(c, "Server error")
		return
	}
	if reg == nil {
		response.NotFound(c, "User not found")
		return
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uuid.UUID)
	message := "Certificate re-sent successfully."
	if !reg.IsApproved {
		if err := h.registrantRepo.Approve(ctx, reg.ID, adminID); err != nil {
			h.logger.Error("approval update failed", zap.Error(err))
			response.Internal(c, "Server error")
			return
		}
		message = "User video approved and certificate emailed successfully."
	}

	issuedAt := time.Now()
	html, err := certificates.GenerateHTML(string(reg.Annotation), reg.Name, reg.CompanyName, issuedAt)
	if err != nil {
		h.logger.Error("certificate template failed", zap.Error(err))
		response.Internal(c, "Server error during certificate generation or email sending: "+err.Error())
		return
	}

	pdf, err := h.renderer.Render(ctx, html)
	if err != nil {
		h.logger.Error("certificate render failed", zap.String("registrant_id", reg.ID.String()), zap.Error(err))
		response.Internal(c, "Server error during certificate generation or email sending: "+err.Error())
		return
	}

	key := storage.CertificateKey(reg.ID.String(), issuedAt)
	certificateURL, err := h.s3.Upload(ctx, key, "application/pdf", bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		h.logger.Error("certificate upload failed", zap.String("registrant_id", reg.ID.String()), zap.Error(err))
		response.Internal(c, "Server error during certificate generation or email sending: "+err.Error())
		return
	}

	if err := h.registrantRepo.SetCertificateURL(ctx, reg.ID, certificateURL); err != nil {
		h.logger.Error("certificate url save failed", zap.Error(err))
		response.Internal(c, "Server error during certificate generation or email sending: "+err.Error())
		return
	}

	subject := "Congratulations! Your World Pest Day Certificate"
	body := fmt.Sprintf(`
		<h1>Congratulations, %s!</h1>
		<p>Thank you for participating in World Pest Day, celebrated by the Indian Pest Control Association.</p>
		<p>Attached is your certificate of participation.</p>
		<p>You can also download it directly from this link: <a href="%s">%s</a></p>
		<p>Best regards,<br>Indian Pest Control Association</p>`,
		reg.Name, certificateURL, certificateURL)
	attachment := mailer.Attachment{
		Filename:    fmt.Sprintf("World_Pest_Day_Certificate_%s.pdf", reg.Name),
		ContentType: "application/pdf",
		Data:        pdf,
	}
	sendErr := h.mail.Send(reg.Email, subject, body, attachment)
	h.emailLog.Record(ctx, &reg.ID, models.EmailTypeCertificate, reg.Email, subject, sendErr)
	if sendErr != nil {
		response.Internal(c, "Server error during certificate generation or email sending: "+sendErr.Error())
		return
	}

	response.OK(c, gin.H{
		"message":        message,
		"certificateUrl": certificateURL,
	})
}

// Dashboard handles GET /api/admin/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	email := c.MustGet(middleware.ContextAdminEmail).(string)
	response.OK(c, gin.H{"message": "Welcome admin " + email})
}

// EnqueueReminders handles POST /api/admin/reminders. One reminder email job
// is queued per registrant that has not uploaded a video; the worker delivers
// them outside the request.
func (h *Handler) EnqueueReminders(c *gin.Context) {
	pending, err := h.registrantRepo.ListWithoutVideo(c.Request.Context())
	if err != nil {
		h.logger.Error("reminder listing failed", zap.Error(err))
		response.Internal(c, "Server error")
		return
	}

	enqueued := 0
	for _, reg := range pending {
		payload := queue.ReminderPayload{
			RegistrantID:   reg.ID,
			RecipientEmail: reg.Email,
			Annotation:     string(reg.Annotation),
			Name:           reg.Name,
		}
		if err := h.jobs.EnqueueReminder(c.Request.Context(), payload); err != nil {
			h.logger.Error("reminder enqueue failed", zap.String("email", reg.Email), zap.Error(err))
			continue
		}
		enqueued++
	}

	response.OK(c, gin.H{"enqueued": enqueued, "pending": len(pending)})
}
