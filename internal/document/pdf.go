package document

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrRendererUnavailable means no Chrome or Chromium binary could be found.
var ErrRendererUnavailable = errors.New("PDF export needs Google Chrome or Chromium installed")

var chromeNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFExporter prints letters through a headless Chrome.
type PDFExporter struct {
	// ExecPath overrides browser discovery.
	ExecPath string
	Timeout  time.Duration
}

// FindChrome returns the first browser binary found on PATH.
func FindChrome() (string, error) {
	for _, name := range chromeNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrRendererUnavailable
}

// Available reports whether Export can run on this machine.
func (e *PDFExporter) Available() bool {
	_, err := e.execPath()
	return err == nil
}

func (e *PDFExporter) execPath() (string, error) {
	if e.ExecPath != "" {
		if _, err := exec.LookPath(e.ExecPath); err != nil {
			return "", fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
		}
		return e.ExecPath, nil
	}
	return FindChrome()
}

// Render prints d to PDF bytes.
func (e *PDFExporter) Render(ctx context.Context, d *Document) ([]byte, error) {
	chrome, err := e.execPath()
	if err != nil {
		return nil, err
	}
	html, err := d.HTML()
	if err != nil {
		return nil, err
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chrome),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print PDF: %w", err)
	}
	return pdf, nil
}

// Export writes d as a PDF at path.
func (e *PDFExporter) Export(ctx context.Context, d *Document, path string) error {
	data, err := e.Render(ctx, d)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}
