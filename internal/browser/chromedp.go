package browser

import (
	"context"
	"strings"
	"sync"
	"time"

	"hifisearch/logger"
	"hifisearch/pkg/errors"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// maxCapturedResponses bounds how many network bodies a page retains.
const maxCapturedResponses = 64

var chromeUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// chromeOpts returns browser launch options that hide automation.
func chromeOpts(headless bool, userAgent string) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	}
	if headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}
	return opts
}

// ChromeNavigator loads pages in a shared headless Chrome instance. Each
// Load opens a new tab and records JSON and document network responses so
// embedded API payloads can be read after navigation.
type ChromeNavigator struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	log         *logger.Logger
}

// NewChromeNavigator prepares a Chrome exec allocator. The browser process
// itself starts lazily with the first tab.
func NewChromeNavigator(headless bool) *ChromeNavigator {
	ua := chromeUserAgents[int(time.Now().UnixNano())%len(chromeUserAgents)]
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		chromeOpts(headless, ua)...,
	)
	return &ChromeNavigator{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		log:         logger.ForComponent("browser"),
	}
}

// Close shuts down the browser and all open tabs.
func (n *ChromeNavigator) Close() {
	n.allocCancel()
}

// Load opens a new tab, navigates to url and waits for the document body.
func (n *ChromeNavigator) Load(ctx context.Context, url string) (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(n.allocCtx)

	p := &chromePage{
		ctx:     tabCtx,
		cancel:  tabCancel,
		changed: make(chan struct{}),
	}
	p.listen()

	err := p.run(ctx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		p.Close()
		return nil, errors.NewNavigation(url, "failed to load page", err)
	}
	n.log.Debug().Str("url", url).Msg("Page loaded")
	return p, nil
}

// chromePage is one open browser tab with captured network responses.
type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	responses []*CapturedResponse
	changed   chan struct{}
}

// listen records response metadata and fetches bodies for JSON and document
// responses once loading finishes.
func (p *chromePage) listen() {
	type pending struct {
		url         string
		contentType string
	}
	inflight := make(map[network.RequestID]pending)
	var mu sync.Mutex

	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			ct := strings.ToLower(e.Response.MimeType)
			if !strings.Contains(ct, "json") && !strings.Contains(ct, "html") {
				return
			}
			mu.Lock()
			inflight[e.RequestID] = pending{url: e.Response.URL, contentType: ct}
			mu.Unlock()
		case *network.EventLoadingFinished:
			mu.Lock()
			req, ok := inflight[e.RequestID]
			delete(inflight, e.RequestID)
			mu.Unlock()
			if !ok {
				return
			}
			// Body retrieval must not run on the event goroutine.
			go func(id network.RequestID, req pending) {
				var body []byte
				err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
					var err error
					body, err = network.GetResponseBody(id).Do(cdp.WithExecutor(ctx, chromedp.FromContext(p.ctx).Target))
					return err
				}))
				if err != nil || len(body) == 0 {
					return
				}
				p.record(&CapturedResponse{URL: req.url, ContentType: req.contentType, Body: body})
			}(e.RequestID, req)
		}
	})
}

func (p *chromePage) record(resp *CapturedResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.responses) >= maxCapturedResponses {
		p.responses = p.responses[1:]
	}
	p.responses = append(p.responses, resp)
	close(p.changed)
	p.changed = make(chan struct{})
}

// run executes chromedp actions on the tab while honoring the caller context.
func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(p.ctx, actions...)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	if err != nil {
		return "", errors.NewNavigation("", "failed to read document", err)
	}
	return html, nil
}

func (p *chromePage) ScrollToBottom(ctx context.Context) error {
	err := p.run(ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
	)
	if err != nil {
		return errors.NewNavigation("", "failed to scroll page", err)
	}
	return nil
}

// Response returns the first captured response matching the predicate. When
// none matched yet it waits for new captures until the context expires.
func (p *chromePage) Response(ctx context.Context, match ResponsePredicate) (*CapturedResponse, bool) {
	for {
		p.mu.Lock()
		for _, resp := range p.responses {
			if match(resp.URL, resp.ContentType) {
				p.mu.Unlock()
				return resp, true
			}
		}
		wait := p.changed
		p.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, false
		case <-p.ctx.Done():
			return nil, false
		}
	}
}

func (p *chromePage) Close() {
	p.cancel()
}
