package mvpbuild

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mvpbuild/internal/fileutil"
	"github.com/alnah/go-mvpbuild/internal/process"
)

// Thumbnail defaults.
const (
	DefaultPreviewWidth   = 1280
	DefaultPreviewHeight  = 800
	DefaultPreviewTimeout = 30 * time.Second
	MaxPreviewDimension   = 4096
)

// Viewport is the browser window size used for a screenshot.
type Viewport struct {
	Width  int
	Height int
}

// Validate checks that both dimensions are positive and bounded.
func (v *Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, v.Width, v.Height)
	}
	if v.Width > MaxPreviewDimension || v.Height > MaxPreviewDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidSize, v.Width, v.Height, MaxPreviewDimension)
	}
	return nil
}

// Previewer renders built pages to PNG thumbnails in headless Chrome.
// Rod downloads Chromium on first use if none is found.
// Safe for concurrent use; Close releases the browser.
type Previewer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// NewPreviewer creates a Previewer. The browser starts on the first
// Screenshot. A zero timeout selects DefaultPreviewTimeout.
func NewPreviewer(timeout time.Duration) *Previewer {
	if timeout <= 0 {
		timeout = DefaultPreviewTimeout
	}
	return &Previewer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
// Caller must hold p.mu.
func (p *Previewer) ensureBrowser() error {
	if p.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker images)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Containers and CI runners lack the namespaces Chrome's sandbox needs
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	p.launcher = l
	p.browser = browser
	return nil
}

// Screenshot loads html in a fresh tab and captures the viewport as PNG.
// A nil viewport uses DefaultPreviewWidth x DefaultPreviewHeight.
// The page's tracking script runs but has no parent frame, so it posts nothing.
func (p *Previewer) Screenshot(ctx context.Context, html string, vp *Viewport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if vp == nil {
		vp = &Viewport{Width: DefaultPreviewWidth, Height: DefaultPreviewHeight}
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	p.mu.Lock()
	if err := p.ensureBrowser(); err != nil {
		p.mu.Unlock()
		return nil, err
	}
	browser := p.browser
	p.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx).Timeout(timeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	if err := page.Navigate("file://" + path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return img, nil
}

// Close shuts the browser down and kills any helper processes it left.
func (p *Previewer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser == nil {
		return nil
	}

	err := p.browser.Close()
	pid := p.launcher.PID()
	p.launcher.Kill()
	process.KillTree(pid)

	p.browser = nil
	p.launcher = nil
	return err
}
