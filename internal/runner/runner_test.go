package runner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/footcheck/internal/footer"
	"github.com/raysh454/footcheck/internal/runner"
	"github.com/raysh454/footcheck/internal/testutil"
)

const (
	home     = "https://only.digital/"
	about    = "https://only.digital/about"
	services = "https://only.digital/services"
)

// newRunner takes an io.Writer so a nil trace stays a nil interface.
func newRunner(page *testutil.FakePage, trace io.Writer) *runner.Runner {
	v := footer.NewValidator(footer.DefaultConfig(), nil)
	return runner.New(page, v, &testutil.DummyLogger{}, trace)
}

func TestRun_AllPagesPass(t *testing.T) {
	page := &testutil.FakePage{Pages: map[string]string{
		home:     testutil.HealthyFooterPage(),
		about:    testutil.HealthyFooterPage(),
		services: testutil.HealthyFooterPage(),
	}}
	var trace bytes.Buffer

	res, err := newRunner(page, &trace).Run(context.Background(), []string{home, about, services})
	require.NoError(t, err)
	assert.True(t, res.Passed())
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Pages, 3)
	for _, p := range res.Pages {
		assert.True(t, p.Passed(), p.URL)
		assert.Empty(t, p.Message())
		require.NotNil(t, p.Report)
		assert.Len(t, p.Report.Checks, 5)
	}
	assert.Equal(t, []string{home, about, services}, page.Navigations)
	assert.Equal(t,
		"Testing page: "+home+"\nTesting page: "+about+"\nTesting page: "+services+"\n",
		trace.String())
	assert.Zero(t, page.Closed, "the runner must not close a page it does not own")
}

func TestRun_Scenarios(t *testing.T) {
	cases := []struct {
		name      string
		html      string
		wantCheck footer.CheckName
		wantMsg   string
	}{
		{
			name: "insecure contact link",
			html: testutil.FooterPage(testutil.LogoOK + `<a href="http://x/contacts">Контакты</a>` +
				testutil.EmailOK + testutil.SocialsOK + testutil.CopyrightOK),
			wantCheck: footer.CheckNameContact,
			wantMsg:   "'Контакты' link is missing or invalid",
		},
		{
			name:      "no footer",
			html:      `<html><body><main>content</main></body></html>`,
			wantCheck: footer.CheckNameFooter,
			wantMsg:   "footer not found or not visible on " + home,
		},
		{
			name:      "hidden footer",
			html:      `<html><body><footer style="display:none">` + testutil.LogoOK + `</footer></body></html>`,
			wantCheck: footer.CheckNameFooter,
			wantMsg:   "footer not found or not visible on " + home,
		},
		{
			name: "empty socials",
			html: testutil.FooterPage(testutil.LogoOK + testutil.ContactOK + testutil.EmailOK +
				`<div class="socials"></div>` + testutil.CopyrightOK),
			wantCheck: footer.CheckNameSocialIcons,
			wantMsg:   "social network icons are missing",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := &testutil.FakePage{Pages: map[string]string{home: tc.html}}

			res, err := newRunner(page, nil).Run(context.Background(), []string{home})
			require.NoError(t, err)
			require.False(t, res.Passed())
			require.Len(t, res.Failed(), 1)

			got := res.Pages[0]
			require.NotNil(t, got.Failure)
			assert.NoError(t, got.Err)
			assert.Equal(t, tc.wantCheck, got.Failure.Check)
			assert.Equal(t, tc.wantMsg, got.Message())
			if tc.wantCheck == footer.CheckNameFooter {
				assert.Empty(t, got.Report.Checks, "checks must not run without a footer")
			}
		})
	}
}

func TestRun_NavigationErrorDoesNotStopRun(t *testing.T) {
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	page := &testutil.FakePage{
		Pages: map[string]string{
			about:    testutil.HealthyFooterPage(),
			services: testutil.HealthyFooterPage(),
		},
		NavigateErrs: map[string]error{home: boom},
	}

	res, err := newRunner(page, nil).Run(context.Background(), []string{home, about, services})
	require.NoError(t, err)
	require.Len(t, res.Pages, 3)
	assert.ErrorIs(t, res.Pages[0].Err, boom)
	assert.Nil(t, res.Pages[0].Report)
	assert.True(t, res.Pages[1].Passed())
	assert.True(t, res.Pages[2].Passed())
	assert.False(t, res.Passed())
}

func TestRun_BrowserFailureDuringWait(t *testing.T) {
	boom := errors.New("websocket closed")
	page := &testutil.FakePage{
		Pages:   map[string]string{home: testutil.HealthyFooterPage()},
		WaitErr: boom,
	}

	res, err := newRunner(page, nil).Run(context.Background(), []string{home})
	require.NoError(t, err)
	assert.ErrorIs(t, res.Pages[0].Err, boom)
	assert.Nil(t, res.Pages[0].Failure)
}

func TestRun_CanceledContextStops(t *testing.T) {
	page := &testutil.FakePage{Pages: map[string]string{home: testutil.HealthyFooterPage()}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newRunner(page, nil).Run(ctx, []string{home, about})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Pages)
	assert.Empty(t, page.Navigations)
}

func TestRun_UsesConfiguredWaitTimeout(t *testing.T) {
	cfg := footer.DefaultConfig()
	page := &testutil.FakePage{Pages: map[string]string{home: `<html><body></body></html>`}}

	_, err := runner.New(page, footer.NewValidator(cfg, nil), nil, nil).Run(context.Background(), []string{home})
	require.NoError(t, err)
	require.Len(t, page.Waits, 1)
	assert.Equal(t, cfg.WaitTimeout, page.Waits[0])
}

func TestRun_IsIdempotent(t *testing.T) {
	page := &testutil.FakePage{Pages: map[string]string{
		home:  testutil.FooterPage(testutil.LogoOK + testutil.SocialsOK),
		about: testutil.HealthyFooterPage(),
	}}
	r := newRunner(page, nil)

	first, err := r.Run(context.Background(), []string{home, about})
	require.NoError(t, err)
	second, err := r.Run(context.Background(), []string{home, about})
	require.NoError(t, err)

	require.Len(t, second.Pages, len(first.Pages))
	for i := range first.Pages {
		assert.Equal(t, first.Pages[i].Report, second.Pages[i].Report)
		assert.Equal(t, first.Pages[i].Message(), second.Pages[i].Message())
	}
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestNew_NilTraceIsDiscarded(t *testing.T) {
	page := &testutil.FakePage{Pages: map[string]string{home: testutil.HealthyFooterPage()}}
	v := footer.NewValidator(footer.DefaultConfig(), nil)

	var res *runner.RunResult
	var err error
	require.NotPanics(t, func() {
		res, err = runner.New(page, v, nil, nil).Run(context.Background(), []string{home})
	})
	require.NoError(t, err)
	assert.True(t, res.Passed())
}
