// Package certificates renders participation certificates as landscape A4
// PDFs from an HTML template. Rendering backends are interchangeable.
package certificates

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/config"
)

// Renderer converts certificate HTML into PDF bytes (A4 landscape, zero
// margins, content scaled to fit).
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// NewRenderer builds the renderer selected by configuration: "chromedp" for
// the headless-browser print pipeline, "convertapi" for the hosted conversion
// service.
func NewRenderer(cfg config.CertificateConfig, logger *zap.Logger) (Renderer, error) {
	switch cfg.Backend {
	case "chromedp":
		return NewChromeRenderer(logger), nil
	case "convertapi":
		if cfg.ConvertAPISecret == "" {
			return nil, fmt.Errorf("convertapi renderer requires CONVERTAPI_SECRET")
		}
		return NewConvertAPIRenderer(cfg.ConvertAPISecret, cfg.ConvertAPIURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown certificate renderer: %q", cfg.Backend)
	}
}
