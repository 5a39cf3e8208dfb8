// Package pdf renders assembled report data into a printable PDF through a
// headless Chrome instance. Rendering is the only slow, I/O-bound step of the
// reporting path, so every render gets its own timeout and the browser
// contexts are always released, on success and on failure.
package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const defaultRenderTimeout = 30 * time.Second

// A4 paper in inches, with the report's 20mm/15mm margins.
const (
	paperWidthIn   = 8.27
	paperHeightIn  = 11.69
	marginTopIn    = 0.79
	marginBottomIn = 0.79
	marginLeftIn   = 0.59
	marginRightIn  = 0.59
)

// Renderer converts HTML into PDF bytes using the Chrome DevTools protocol.
type Renderer struct {
	timeout   time.Duration
	noSandbox bool
}

// NewRenderer creates a renderer. noSandbox is needed when Chrome runs as
// root inside a container.
func NewRenderer(noSandbox bool) *Renderer {
	return &Renderer{
		timeout:   defaultRenderTimeout,
		noSandbox: noSandbox,
	}
}

// Render loads the given HTML into a fresh headless browser page and prints
// it to an A4 PDF. The browser is torn down before returning regardless of
// outcome.
func (r *Renderer) Render(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.noSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdfData []byte
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
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginTopIn).
				WithMarginBottom(marginBottomIn).
				WithMarginLeft(marginLeftIn).
				WithMarginRight(marginRightIn).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("pdf rendering produced no output")
	}

	return pdfData, nil
}
