package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/cvfiller/internal/resume"
)

const pdfRenderTimeout = 60 * time.Second

// PDFRenderer renders the HTML export to PDF through a headless Chrome
// instance. The binary is located via CHROME_PATH when set, otherwise
// chromedp's default lookup applies.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// RenderPDF produces an A4 PDF of the record.
func (r *PDFRenderer) RenderPDF(ctx context.Context, rec resume.Record) ([]byte, error) {
	html, err := HTML(rec)
	if err != nil {
		return nil, err
	}
	return r.renderHTML(ctx, html)
}

func (r *PDFRenderer) renderHTML(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, pdfRenderTimeout)
	defer cancelRun()

	// Chrome needs a file URL to resolve the document normally.
	tmpDir, err := os.MkdirTemp("", "cvfiller-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create render dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write render input: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches.
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}
