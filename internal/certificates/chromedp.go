package certificates

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// renderTimeout bounds one headless print. Font/network loading inside the
// page counts toward it.
const renderTimeout = 60 * time.Second

// ChromeRenderer prints certificate HTML to PDF via a headless browser.
type ChromeRenderer struct {
	logger *zap.Logger
}

// NewChromeRenderer creates a headless-browser renderer. A browser process is
// launched per render; certificate volume is low enough that keeping one warm
// is not worth the lifecycle handling.
func NewChromeRenderer(logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRenderer{logger: logger}
}

// Render prints the HTML to a landscape A4 PDF with zero margins.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithLandscape(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithScale(0.9).
				WithPrintBackground(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("headless print: %w", err)
	}
	r.logger.Debug("certificate printed", zap.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}
