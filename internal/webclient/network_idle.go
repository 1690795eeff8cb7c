package webclient

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// idleWatcher closes done once no request has been in flight for idleAfter.
// The timer is (re)armed whenever the last in-flight request finishes and
// once explicitly after navigation, for pages that load nothing at all.
type idleWatcher struct {
	idleAfter time.Duration
	done      chan struct{}

	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	timer    *time.Timer
	once     sync.Once
}

// watchNetworkIdle listens on the tab behind ctx until ctx ends.
func watchNetworkIdle(ctx context.Context, idleAfter time.Duration) *idleWatcher {
	w := &idleWatcher{
		idleAfter: idleAfter,
		done:      make(chan struct{}),
		inflight:  map[network.RequestID]struct{}{},
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			w.mu.Lock()
			w.inflight[e.RequestID] = struct{}{}
			w.mu.Unlock()
		case *network.EventLoadingFinished:
			w.finish(e.RequestID)
		case *network.EventLoadingFailed:
			w.finish(e.RequestID)
		}
	})

	return w
}

func (w *idleWatcher) finish(id network.RequestID) {
	w.mu.Lock()
	delete(w.inflight, id)
	empty := len(w.inflight) == 0
	w.mu.Unlock()
	if empty {
		w.arm()
	}
}

func (w *idleWatcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.idleAfter, func() {
		w.mu.Lock()
		quiet := len(w.inflight) == 0
		w.mu.Unlock()
		if quiet {
			w.once.Do(func() { close(w.done) })
		}
	})
}
