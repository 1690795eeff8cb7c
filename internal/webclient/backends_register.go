package webclient

import (
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
)

func init() {
	RegisterDefaultBackends()
}

// RegisterDefaultBackends registers the nethttp and chromedp backends.
// It runs from init; calling it again restores the defaults after a test
// replaced one of them.
func RegisterDefaultBackends() {
	RegisterBackend(string(ClientNetHTTP), func(cfg Config, logger logging.Logger) (interfaces.Page, error) {
		page, err := NewNetHTTPPage(cfg, logger, nil)
		if err != nil {
			return nil, err
		}
		return page, nil
	})

	RegisterBackend(string(ClientChromedp), func(cfg Config, logger logging.Logger) (interfaces.Page, error) {
		page, err := NewChromeDPPage(cfg, logger)
		if err != nil {
			return nil, err
		}
		return page, nil
	})
}
