package certificates

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultConvertAPIURL = "https://v2.convertapi.com"

// ConvertAPIRenderer converts certificate HTML to PDF via the hosted
// ConvertAPI html-to-pdf endpoint.
type ConvertAPIRenderer struct {
	secret  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type convertAPIResponse struct {
	Files []struct {
		FileName string `json:"FileName"`
		FileSize int64  `json:"FileSize"`
		FileData string `json:"FileData"`
	} `json:"Files"`
}

// NewConvertAPIRenderer creates a ConvertAPI renderer. baseURL overrides the
// hosted endpoint (used by tests); empty means production.
func NewConvertAPIRenderer(secret, baseURL string, logger *zap.Logger) *ConvertAPIRenderer {
	if baseURL == "" {
		baseURL = defaultConvertAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertAPIRenderer{
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 90 * time.Second},
		logger:  logger,
	}
}

// Render posts the HTML to ConvertAPI and decodes the returned PDF.
// Page parameters mirror the print contract: landscape A4, zero margins,
// content scaled to 90%.
func (r *ConvertAPIRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("File", "certificate.html")
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.WriteString(fw, html); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	fields := map[string]string{
		"PageOrientation": "landscape",
		"PageSize":        "a4",
		"MarginTop":       "0",
		"MarginBottom":    "0",
		"MarginLeft":      "0",
		"MarginRight":     "0",
		"Scale":           "90",
		"StoreFile":       "false",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	endpoint := r.baseURL + "/convert/html/to/pdf?Secret=" + url.QueryEscape(r.secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("convertapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("convertapi status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed convertAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode convertapi response: %w", err)
	}
	if len(parsed.Files) == 0 || parsed.Files[0].FileData == "" {
		return nil, fmt.Errorf("convertapi returned no files")
	}

	pdf, err := base64.StdEncoding.DecodeString(parsed.Files[0].FileData)
	if err != nil {
		return nil, fmt.Errorf("decode pdf payload: %w", err)
	}
	r.logger.Debug("certificate converted", zap.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}
