package footer_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/footcheck/internal/dom"
	"github.com/raysh454/footcheck/internal/footer"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/testutil"
)

func footerOf(t *testing.T, html string) interfaces.Element {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(html), "https://only.digital/")
	require.NoError(t, err)
	el, ok := doc.First("footer")
	require.True(t, ok, "fixture has no footer")
	return el
}

func TestChecks_HealthyFooterPassesAll(t *testing.T) {
	cfg := footer.DefaultConfig()
	el := footerOf(t, testutil.HealthyFooterPage())

	for _, c := range footer.Checks() {
		res := c.Run(cfg, el)
		assert.True(t, res.Passed, "%s: %s", c.Name, res.Detail)
		assert.Equal(t, c.Name, res.Name)
	}
}

func TestCheckLogo(t *testing.T) {
	cfg := footer.DefaultConfig()
	cases := []struct {
		name   string
		inner  string
		passed bool
	}{
		{"exact alt", `<img alt="Only" src="/l.png">`, true},
		{"alt differs in case", `<img alt="only" src="/l.png">`, false},
		{"alt with extra text", `<img alt="Only logo" src="/l.png">`, false},
		{"no image", `<span>Only</span>`, false},
		{"hidden logo", `<img alt="Only" style="display:none">`, false},
		{"second image matches", `<img alt="x"><img alt="Only">`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := footer.CheckLogo(cfg, footerOf(t, testutil.FooterPage(tc.inner)))
			assert.Equal(t, tc.passed, res.Passed, res.Detail)
		})
	}
}

func TestCheckContactLink(t *testing.T) {
	cfg := footer.DefaultConfig()
	cases := []struct {
		name   string
		inner  string
		passed bool
	}{
		{"https absolute", `<a href="https://x/contacts">Контакты</a>`, true},
		{"relative resolves against https page", `<a href="/contacts">Контакты</a>`, true},
		{"plain http", `<a href="http://x/contacts">Контакты</a>`, false},
		{"wrong label", `<a href="https://x/contacts">Contacts</a>`, false},
		{"label in child only", `<a href="https://x/contacts"><span>Контакты</span></a>`, false},
		{"label is one of several text nodes", `<a href="https://x/contacts">Контакты<br>ru</a>`, true},
		{"label split across text nodes", `<a href="https://x/contacts">Конт<br>акты</a>`, false},
		{"hidden link", `<a hidden href="https://x/contacts">Контакты</a>`, false},
		{"no href", `<a>Контакты</a>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := footer.CheckContactLink(cfg, footerOf(t, testutil.FooterPage(tc.inner)))
			assert.Equal(t, tc.passed, res.Passed, res.Detail)
		})
	}
}

func TestCheckEmail(t *testing.T) {
	cfg := footer.DefaultConfig()
	cases := []struct {
		name   string
		inner  string
		passed bool
	}{
		{"info mailto", `<a href="mailto:info@only.digital">write</a>`, true},
		{"other mailbox", `<a href="mailto:hr@only.digital">write</a>`, false},
		{"first mailto decides", `<a href="mailto:hr@only.digital">a</a><a href="mailto:info@only.digital">b</a>`, false},
		{"no mailto", `<a href="https://only.digital/info@">x</a>`, false},
		{"hidden mailto", `<div style="display:none"><a href="mailto:info@only.digital">x</a></div>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := footer.CheckEmail(cfg, footerOf(t, testutil.FooterPage(tc.inner)))
			assert.Equal(t, tc.passed, res.Passed, res.Detail)
		})
	}
}

func TestCheckSocialIcons(t *testing.T) {
	cfg := footer.DefaultConfig()
	cases := []struct {
		name   string
		inner  string
		passed bool
	}{
		{"one icon", `<div class="socials"><a>icon</a></div>`, true},
		{"nested icon", `<ul class="socials"><li><a href="#">x</a></li></ul>`, true},
		{"empty container", `<div class="socials"></div>`, false},
		{"links outside container", `<div class="social"><a>x</a></div>`, false},
		{"hidden icons still count", `<div class="socials" style="display:none"><a>x</a></div>`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := footer.CheckSocialIcons(cfg, footerOf(t, testutil.FooterPage(tc.inner)))
			assert.Equal(t, tc.passed, res.Passed, res.Detail)
		})
	}
}

func TestCheckCopyright(t *testing.T) {
	cfg := footer.DefaultConfig()
	cases := []struct {
		name   string
		inner  string
		passed bool
	}{
		{"paragraph", `<p>© 2024</p>`, true},
		{"nested span", `<div><span>Only © 2024</span></div>`, true},
		{"no glyph", `<p>(c) 2024</p>`, false},
		{"text directly in footer", `© 2024`, false},
		{"hidden notice", `<p style="visibility: hidden">© 2024</p>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := footer.CheckCopyright(cfg, footerOf(t, testutil.FooterPage(tc.inner)))
			assert.Equal(t, tc.passed, res.Passed, res.Detail)
		})
	}
}

func TestChecks_OnlyLookInsideFooter(t *testing.T) {
	cfg := footer.DefaultConfig()
	html := `<html><body>
		<header>` + testutil.LogoOK + testutil.ContactOK + testutil.EmailOK + testutil.SocialsOK + testutil.CopyrightOK + `</header>
		<footer><p>empty</p></footer>
	</body></html>`
	el := footerOf(t, html)

	for _, c := range footer.Checks() {
		assert.False(t, c.Run(cfg, el).Passed, "%s matched outside the footer", c.Name)
	}
}

func TestChecks_OrderIndependent(t *testing.T) {
	cfg := footer.DefaultConfig()
	el := footerOf(t, testutil.FooterPage(testutil.LogoOK+`<a href="http://x">Контакты</a>`+testutil.SocialsOK))

	checks := footer.Checks()
	want := map[footer.CheckName]bool{}
	for _, c := range checks {
		want[c.Name] = c.Run(cfg, el).Passed
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(checks), func(a, b int) { checks[a], checks[b] = checks[b], checks[a] })
		for _, c := range checks {
			assert.Equal(t, want[c.Name], c.Run(cfg, el).Passed, c.Name)
		}
	}
}

func TestChecks_RespectConfig(t *testing.T) {
	cfg := footer.DefaultConfig()
	cfg.Brand = "Acme"
	cfg.ContactLabel = "Contacts"
	cfg.MailFragment = "hello@"
	cfg.SocialsSelector = ".social-links"

	el := footerOf(t, testutil.FooterPage(`
		<img alt="Acme">
		<a href="https://acme.test/contacts">Contacts</a>
		<a href="mailto:hello@acme.test">mail</a>
		<nav class="social-links"><a href="https://x.test">x</a></nav>
		<small>© Acme</small>`))

	for _, c := range footer.Checks() {
		res := c.Run(cfg, el)
		assert.True(t, res.Passed, "%s: %s", c.Name, res.Detail)
	}
}
