package resume

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

// PDFRenderer turns a resume document into bytes for download.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, doc models.ResumeDocument) ([]byte, error)
}

// ChromedpRenderer prints the HTML projection through headless Chrome. Chrome
// is resolved from PATH unless CHROME_PATH is set.
type ChromedpRenderer struct{}

func NewChromedpRenderer() *ChromedpRenderer { return &ChromedpRenderer{} }

func (r *ChromedpRenderer) RenderPDF(ctx context.Context, doc models.ResumeDocument) ([]byte, error) {
	const op = "ChromedpRenderer.RenderPDF"

	html, err := RenderHTML(doc)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to render resume html", err)
	}

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

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, 60*time.Second)
	defer cancelRun()

	// Chrome needs a real file to navigate to for relative asset resolution.
	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create temp dir", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to write temp html", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm, in inches
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "pdf rendering failed", err)
	}
	return pdfBuf, nil
}
