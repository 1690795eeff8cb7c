package webclient_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
	"github.com/raysh454/footcheck/internal/webclient"
)

func TestListBackends_HasDefaults(t *testing.T) {
	backends := webclient.ListBackends()
	assert.Contains(t, backends, "nethttp")
	assert.Contains(t, backends, "chromedp")
}

func TestNewPage_NetHTTP(t *testing.T) {
	cfg := webclient.DefaultConfig()
	cfg.Client = webclient.ClientNetHTTP

	page, err := webclient.NewPage(cfg, &noopLogger{})
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.NoError(t, page.Close())
}

func TestNewPage_BackendNameIsCaseInsensitive(t *testing.T) {
	cfg := webclient.Config{Client: " NetHTTP "}

	page, err := webclient.NewPage(cfg, nil)
	require.NoError(t, err)
	defer page.Close()
}

func TestNewPage_UnknownBackend(t *testing.T) {
	page, err := webclient.NewPage(webclient.Config{Client: "selenium"}, &noopLogger{})
	require.Error(t, err)
	assert.Nil(t, page)
	assert.Contains(t, err.Error(), `"selenium" not registered`)
}

func TestNewPage_ConstructorErrorIsWrapped(t *testing.T) {
	boom := errors.New("no chrome here")
	webclient.RegisterBackend("broken", func(webclient.Config, logging.Logger) (interfaces.Page, error) {
		return nil, boom
	})

	_, err := webclient.NewPage(webclient.Config{Client: "broken"}, nil)
	assert.ErrorIs(t, err, boom)
}

// TestNewPage_ChromeDP verifies that the chromedp backend can be constructed.
// Chrome may be missing in CI, in which case the test is skipped.
func TestNewPage_ChromeDP(t *testing.T) {
	cfg := webclient.DefaultConfig()

	page, err := webclient.NewPage(cfg, &noopLogger{})
	if err != nil {
		t.Skipf("Skipping chromedp test: %v", err)
	}
	assert.NoError(t, page.Close())
}
