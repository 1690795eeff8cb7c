package webclient

import "time"

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config controls how pages are loaded.
type Config struct {
	// Client selects the backend registered under that name.
	Client Client `yaml:"client"`

	// Headless runs Chrome without a window. Ignored by nethttp.
	Headless bool `yaml:"headless"`

	// ExecPath points at the Chrome binary. Empty means look it up on PATH.
	ExecPath string `yaml:"exec_path"`

	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	// NavigateTimeout bounds a single page load.
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`

	// IdleAfter is how long the network must stay quiet after a load before
	// the page counts as settled. Zero disables the wait. Ignored by nethttp.
	IdleAfter time.Duration `yaml:"idle_after"`

	// UserAgent overrides the backend default when set.
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig mirrors the browser setup the footer checks were written against.
func DefaultConfig() Config {
	return Config{
		Client:          ClientChromedp,
		Headless:        true,
		WindowWidth:     1920,
		WindowHeight:    1080,
		NavigateTimeout: 30 * time.Second,
		IdleAfter:       500 * time.Millisecond,
	}
}
