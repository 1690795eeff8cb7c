package cli_test

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/footcheck/internal/cli"
	"github.com/raysh454/footcheck/internal/demoserver"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
	"github.com/raysh454/footcheck/internal/testutil"
	"github.com/raysh454/footcheck/internal/webclient"
)

func execute(t *testing.T, opts cli.Options, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.Stdout, opts.Stderr = &stdout, &stderr
	cmd := cli.NewRootCmd(opts)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func demoURL(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(demoserver.NewDemoServer(demoserver.DefaultConfig()).Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestRootCmd_PassingSite(t *testing.T) {
	base := demoURL(t)
	stdout, _, err := execute(t, cli.Options{}, "--backend", "nethttp", base+"/", base+"/about")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Testing page: "+base+"/about")
	assert.Contains(t, stdout, "2 passed, 0 failed")
}

func TestRootCmd_FailingSite(t *testing.T) {
	base := demoURL(t)
	stdout, _, err := execute(t, cli.Options{},
		"--backend", "nethttp", "--timeout", "50ms", base+"/", base+"/scenarios/empty-socials")
	assert.ErrorIs(t, err, cli.ErrChecksFailed)
	assert.Contains(t, stdout, "social network icons are missing")
}

func TestRootCmd_MarkdownToFile(t *testing.T) {
	base := demoURL(t)
	out := filepath.Join(t.TempDir(), "report.md")
	stdout, _, err := execute(t, cli.Options{},
		"-b", "nethttp", "-f", "md", "-o", out, "--repeat", "2", base+"/")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "# Footer check report")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Footer check report")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	base := demoURL(t)
	path := filepath.Join(t.TempDir(), "footcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("urls:\n  - "+base+"/services\nbrowser:\n  client: nethttp\n"), 0o600))

	stdout, _, err := execute(t, cli.Options{}, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Testing page: "+base+"/services")
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	_, _, err := execute(t, cli.Options{}, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestRootCmd_FlagsReachThePage(t *testing.T) {
	var got webclient.Config
	fake := &testutil.FakePage{Pages: map[string]string{"https://only.digital/": testutil.HealthyFooterPage()}}
	opts := cli.Options{NewPage: func(cfg webclient.Config, _ logging.Logger) (interfaces.Page, error) {
		got = cfg
		return fake, nil
	}}

	_, _, err := execute(t, opts, "--headless=false", "--chrome-path", "/opt/chrome", "only.digital")
	require.NoError(t, err)
	assert.False(t, got.Headless)
	assert.Equal(t, "/opt/chrome", got.ExecPath)
	assert.Equal(t, webclient.ClientChromedp, got.Client)
	assert.Equal(t, 1, fake.Closed)
}

func TestRootCmd_InvalidFlags(t *testing.T) {
	_, _, err := execute(t, cli.Options{}, "--format", "xml", "https://only.digital/")
	assert.Error(t, err)

	_, _, err = execute(t, cli.Options{}, "--repeat", "0", "https://only.digital/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeat")
}

func TestRootCmd_LogLevel(t *testing.T) {
	fakeOpts := func() cli.Options {
		fake := &testutil.FakePage{Pages: map[string]string{"https://only.digital/": testutil.HealthyFooterPage()}}
		return cli.Options{NewPage: func(webclient.Config, logging.Logger) (interfaces.Page, error) { return fake, nil }}
	}
	quiet := filepath.Join(t.TempDir(), "quiet.yaml")
	require.NoError(t, os.WriteFile(quiet, []byte("log_level: error\n"), 0o600))
	debug := filepath.Join(t.TempDir(), "debug.yaml")
	require.NoError(t, os.WriteFile(debug, []byte("log_level: debug\n"), 0o600))

	_, stderr, err := execute(t, fakeOpts(), "--config", quiet, "only.digital")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = execute(t, fakeOpts(), "--config", debug, "only.digital")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"debug"`)

	_, stderr, err = execute(t, fakeOpts(), "--config", quiet, "--verbose", "only.digital")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"debug"`)
}
