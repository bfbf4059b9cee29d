package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// BrowserManager owns the headless Chrome process and replaces it after
// maxPages pages, since Chrome's memory baseline keeps growing under load.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount atomic.Int64
	maxPages  int64
	headless  bool
	mu        sync.Mutex
	closed    atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the maximum number of pages before the browser is recycled.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithHeadless controls whether Chrome runs without a window. Some feeds
// serve reduced markup to headless browsers.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// NewBrowserManager launches Chrome and returns a manager for it.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launch(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Browser returns the current browser, recycling it first when the page
// budget is spent. Callers report each rendered page with PageDone.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.pageCount.Load() >= bm.maxPages {
		bm.recycle()
	}

	return bm.browser
}

// PageDone records one rendered page toward the recycling threshold.
func (bm *BrowserManager) PageDone() {
	bm.pageCount.Add(1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.shutdown()
}

// LauncherPID returns the process ID of the browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// launch starts Chrome with a desktop-sized window and automation hints off.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", "1280,720").
		Set("disable-dev-shm-usage").
		Set("disable-renderer-backgrounding").
		Leakless(true).
		Headless(bm.headless)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// shutdown closes the browser and kills the launcher. Must be called with mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle swaps in a fresh browser, keeping the old one if the launch fails.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	bm.browser, bm.launcher = nil, nil

	if err := bm.launch(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pageCount.Store(0)
}
