package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/footcheck/internal/dom"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
)

// ChromeDPPage drives one tab of a headless Chrome through chromedp.
type ChromeDPPage struct {
	cfg    Config
	logger logging.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once

	mu  sync.Mutex
	url string
}

var _ interfaces.Page = (*ChromeDPPage)(nil)

// NewChromeDPPage launches Chrome and opens a tab. The browser is started
// here so a missing binary fails construction rather than the first check.
func NewChromeDPPage(cfg Config, logger logging.Logger) (*ChromeDPPage, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	componentLogger := logger.With(logging.F("backend", string(ClientChromedp)))

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
	)
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			componentLogger.Debug("chromedp: " + fmt.Sprintf(format, args...))
		}),
	)

	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	componentLogger.Debug("created chromedp page",
		logging.F("headless", cfg.Headless),
		logging.F("idle_after", cfg.IdleAfter.String()))

	return &ChromeDPPage{
		cfg:         cfg,
		logger:      componentLogger,
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}, nil
}

// runContext derives a context bound to the tab that ends after timeout or
// when the caller's ctx ends, whichever comes first.
func (p *ChromeDPPage) runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(p.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(p.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (p *ChromeDPPage) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := p.runContext(ctx, p.cfg.NavigateTimeout)
	defer cancel()

	var idle *idleWatcher
	actions := []chromedp.Action{}
	if p.cfg.IdleAfter > 0 {
		idle = watchNetworkIdle(runCtx, p.cfg.IdleAfter)
		actions = append(actions, network.Enable())
	}

	var location string
	actions = append(actions, chromedp.Navigate(url), chromedp.Location(&location))

	p.logger.Debug("navigating", logging.F("url", url))
	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	if idle != nil {
		idle.arm()
		select {
		case <-idle.done:
		case <-runCtx.Done():
			p.logger.Debug("network did not settle before navigation deadline", logging.F("url", url))
		}
	}

	p.mu.Lock()
	p.url = location
	p.mu.Unlock()
	return nil
}

func (p *ChromeDPPage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *ChromeDPPage) Find(ctx context.Context, selector string) ([]interfaces.Element, error) {
	doc, err := p.snapshot(ctx, "html")
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.Find(selector), nil
}

// WaitVisible polls the page until the first element matching selector is
// shown, using the same test the snapshot applies, and returns its snapshot.
// An element that is hidden again by the time it is captured keeps the wait
// going until timeout.
func (p *ChromeDPPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (interfaces.Element, error) {
	waitCtx, cancel := p.runContext(ctx, timeout)
	defer cancel()

	script, err := visibleScript(selector)
	if err != nil {
		return nil, err
	}

	for {
		var shown bool
		opts := []chromedp.PollOption{chromedp.WithPollingInterval(pollInterval)}
		if deadline, ok := waitCtx.Deadline(); ok {
			opts = append(opts, chromedp.WithPollingTimeout(time.Until(deadline)))
		}
		err := chromedp.Run(waitCtx, chromedp.Poll(script, &shown, opts...))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if waitCtx.Err() != nil || errors.Is(err, chromedp.ErrPollingTimeout) {
				return nil, interfaces.ErrNotVisible
			}
			return nil, fmt.Errorf("wait for %s: %w", selector, err)
		}

		doc, err := p.snapshot(ctx, selector)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			if el, ok := doc.First(selector); ok && el.Visible() {
				return el, nil
			}
		}
		if waitCtx.Err() != nil {
			return nil, interfaces.ErrNotVisible
		}
	}
}

// snapshot captures the first element matching root, annotated with
// visibility and resolved URLs. It returns nil when nothing matches.
func (p *ChromeDPPage) snapshot(ctx context.Context, root string) (*dom.Document, error) {
	runCtx, cancel := p.runContext(ctx, p.cfg.NavigateTimeout)
	defer cancel()

	script, err := snapshotScript(root)
	if err != nil {
		return nil, err
	}

	var location, outer string
	if err := chromedp.Run(runCtx,
		chromedp.Location(&location),
		chromedp.Evaluate(script, &outer),
	); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", root, err)
	}
	if outer == "" {
		return nil, nil
	}
	return dom.ParseSnapshot(strings.NewReader(outer), location)
}

const pollInterval = 100 * time.Millisecond

// shownJS is the single visibility test for waiting and for snapshots.
const shownJS = `(el) => {
	if (typeof el.checkVisibility === "function") {
		if (!el.checkVisibility({checkVisibilityCSS: true})) return false;
	} else {
		const st = getComputedStyle(el);
		if (st.display === "none" || st.visibility === "hidden") return false;
	}
	return el.getClientRects().length > 0;
}`

const visibleJS = `(() => {
	const el = document.querySelector(%s);
	return !!el && (` + shownJS + `)(el);
})()`

const snapshotJS = `(() => {
	const root = document.querySelector(%s);
	if (!root) return "";
	const shown = ` + shownJS + `;
	const src = [root, ...root.querySelectorAll("*")];
	const copy = root.cloneNode(true);
	const dst = [copy, ...copy.querySelectorAll("*")];
	for (let i = 0; i < src.length && i < dst.length; i++) {
		dst[i].setAttribute(%s, shown(src[i]) ? "1" : "0");
		if (typeof src[i].href === "string" && src[i].hasAttribute("href")) dst[i].setAttribute(%s, src[i].href);
		if (typeof src[i].src === "string" && src[i].hasAttribute("src")) dst[i].setAttribute(%s, src[i].src);
	}
	return copy.outerHTML;
})()`

func visibleScript(selector string) (string, error) {
	b, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("quote %q: %w", selector, err)
	}
	return fmt.Sprintf(visibleJS, string(b)), nil
}

func snapshotScript(root string) (string, error) {
	args := []string{root, dom.VisibleAttr, dom.HrefAttr, dom.SrcAttr}
	quoted := make([]any, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("quote %q: %w", a, err)
		}
		quoted[i] = string(b)
	}
	return fmt.Sprintf(snapshotJS, quoted...), nil
}

// Close shuts the browser down. It is safe to call more than once.
func (p *ChromeDPPage) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.logger.Debug("closing chromedp page")
		err = chromedp.Cancel(p.ctx)
		p.cancel()
		p.allocCancel()
	})
	return err
}
