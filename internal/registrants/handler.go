package registrants

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/internal/auth"
	"github.com/ipca-wpd/backend/internal/emaillogs"
	"github.com/ipca-wpd/backend/internal/models"
	"github.com/ipca-wpd/backend/pkg/mailer"
	"github.com/ipca-wpd/backend/pkg/response"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest is the body for POST /api/users/register.
type RegisterRequest struct {
	Annotation  string `json:"annotation"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
}

// CheckRequest is the body for POST /api/users/check.
type CheckRequest struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
}

// Handler handles public registrant endpoints.
type Handler struct {
	repo         *Repository
	verification *auth.VerificationService
	mail         *mailer.Mailer
	emailLog     *emaillogs.Repository
	baseURL      string
	logger       *zap.Logger
}

// NewHandler creates a registrants handler.
func NewHandler(repo *Repository, verification *auth.VerificationService, mail *mailer.Mailer, emailLog *emaillogs.Repository, baseURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:         repo,
		verification: verification,
		mail:         mail,
		emailLog:     emailLog,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// Register handles POST /api/users/register. Upserts the registrant by email,
// issues a fresh passcode and verification link, and emails both. A failed
// email send fails the whole operation.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Email == "" || req.Name == "" || req.Mobile == "" || req.Annotation == "" {
		response.BadRequest(c, "All fields (annotation, name, email, mobile) are required.")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		response.BadRequest(c, "Invalid email format.")
		return
	}
	if !models.ValidAnnotation(req.Annotation) {
		response.BadRequest(c, "Invalid annotation.")
		return
	}

	passcode, err := generatePasscode()
	if err != nil {
		h.logger.Error("generate passcode failed", zap.Error(err))
		response.Internal(c, "Server error during registration. Please try again later.")
		return
	}

	token, err := h.verification.Generate(req.Name, req.CompanyName, req.Email, req.Mobile)
	if err != nil {
		h.logger.Error("generate verification token failed", zap.Error(err))
		response.Internal(c, "Server error during registration. Please try again later.")
		return
	}
	verifyLink := h.baseURL + "/api/users/verify?token=" + token

	subject := "Verify Your World Pest Day Registration & Get Your Passcode"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for registering for World Pest Day!</p>
		<p>Please verify your email by clicking this link: <a href="%s">Verify Email Address</a></p>
		<p>Your unique 6-digit passcode for checking your video submission status is: <strong>%s</strong></p>
		<p>Please keep this passcode safe. You will need it along with your email to view your video status on the landing page.</p>
		<p>Best regards,<br>The World Pest Day Team</p>`,
		req.Name, verifyLink, passcode)

	sendErr := h.mail.Send(req.Email, subject, body)
	h.emailLog.Record(c.Request.Context(), nil, models.EmailTypeVerification, req.Email, subject, sendErr)
	if sendErr != nil {
		h.logger.Error("verification email failed", zap.String("email", req.Email), zap.Error(sendErr))
		response.Internal(c, "Failed to send verification email: "+sendErr.Error())
		return
	}

	reg, err := h.repo.Upsert(c.Request.Context(), UpsertParams{
		Annotation:  req.Annotation,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Passcode:    passcode,
	})
	if err != nil {
		h.logger.Error("registrant upsert failed", zap.String("email", req.Email), zap.Error(err))
		response.Internal(c, "Server error during registration. Please try again later.")
		return
	}

	response.OK(c, gin.H{
		"message": "Registration successful! A verification email with your 6-digit passcode has been sent. Please check your inbox.",
		"user": gin.H{
			"email":      reg.Email,
			"isVerified": reg.IsVerified,
		},
	})
}

// CheckStatus handles POST /api/users/check. Unknown emails and wrong
// passcodes produce different status codes but neither reveals whether the
// email is registered.
func (h *Handler) CheckStatus(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Email == "" || req.Passcode == "" {
		response.BadRequest(c, "Email and 6-digit passcode are required to check status.")
		return
	}

	reg, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("status lookup failed", zap.Error(err))
		response.Internal(c, "Server error during status check.")
		return
	}
	if reg == nil {
		response.NotFound(c, "No matching user found or invalid credentials.")
		return
	}
	// Plain equality: the passcode is a convenience code, not a credential.
	if reg.Passcode != req.Passcode {
		response.Unauthorized(c, "Invalid passcode.")
		return
	}

	response.OK(c, reg.ToStatusView())
}

// Verify handles GET /api/users/verify?token=... with plain-text responses,
// since the link is opened directly in a browser.
func (h *Handler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.String(http.StatusBadRequest, "Verification token is required.")
		return
	}

	claims, err := h.verification.Validate(token)
	if err != nil {
		if err == auth.ErrVerificationExpired {
			c.String(http.StatusBadRequest, "Verification link has expired. Please register again to get a new link and passcode.")
			return
		}
		c.String(http.StatusBadRequest, "Invalid verification token.")
		return
	}

	reg, err := h.repo.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		h.logger.Error("verification lookup failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Server error during verification.")
		return
	}
	if reg == nil {
		c.String(http.StatusNotFound, "User not found for verification.")
		return
	}
	if reg.IsVerified {
		c.String(http.StatusOK, "Email already verified.")
		return
	}

	if err := h.repo.MarkVerified(c.Request.Context(), reg.ID); err != nil {
		h.logger.Error("mark verified failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Server error during verification.")
		return
	}
	c.String(http.StatusOK, "Email verified successfully. You may now upload your video.")
}

// GetVideoData handles GET /api/users/video?email=... Returns the registrant
// record, or null when the email is unknown.
func (h *Handler) GetVideoData(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "Email query parameter is required.")
		return
	}
	reg, err := h.repo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("video data lookup failed", zap.Error(err))
		response.Internal(c, "Server error fetching video data.")
		return
	}
	if reg == nil {
		c.JSON(http.StatusOK, response.Body{Success: true, Data: nil})
		return
	}
	response.OK(c, reg)
}

// generatePasscode returns a random 6-digit numeric passcode. Uniqueness
// across registrants is not required, only per-user.
func generatePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
