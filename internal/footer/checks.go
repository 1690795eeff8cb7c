package footer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/raysh454/footcheck/internal/interfaces"
)

// CheckFunc evaluates one expectation against the footer element only.
// Absence of the expected descendant is a failed result, never an error.
type CheckFunc func(cfg Config, footer interfaces.Element) CheckResult

// Check pairs a check with the assertion message used when it fails.
type Check struct {
	Name    CheckName
	Run     CheckFunc
	Message func(cfg Config) string
}

// Checks returns the structural checks in assertion order.
func Checks() []Check {
	return []Check{
		{
			Name: CheckNameLogo,
			Run:  CheckLogo,
			Message: func(cfg Config) string {
				return fmt.Sprintf("%s logo is missing from the footer", cfg.Brand)
			},
		},
		{
			Name: CheckNameContact,
			Run:  CheckContactLink,
			Message: func(cfg Config) string {
				return fmt.Sprintf("'%s' link is missing or invalid", cfg.ContactLabel)
			},
		},
		{
			Name:    CheckNameEmail,
			Run:     CheckEmail,
			Message: func(Config) string { return "email (mailto) is missing or invalid" },
		},
		{
			Name:    CheckNameSocialIcons,
			Run:     CheckSocialIcons,
			Message: func(Config) string { return "social network icons are missing" },
		},
		{
			Name:    CheckNameCopyright,
			Run:     CheckCopyright,
			Message: func(Config) string { return "copyright text is missing" },
		},
	}
}

func firstMatch(els []interfaces.Element, pred func(interfaces.Element) bool) (interfaces.Element, bool) {
	for _, el := range els {
		if pred(el) {
			return el, true
		}
	}
	return nil, false
}

func fail(name CheckName, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Passed: false, Detail: fmt.Sprintf(format, args...)}
}

// CheckLogo looks for an image whose alt text is exactly the brand name.
func CheckLogo(cfg Config, footer interfaces.Element) CheckResult {
	logo, ok := firstMatch(footer.Find("img"), func(el interfaces.Element) bool {
		alt, ok := el.Attr("alt")
		return ok && alt == cfg.Brand
	})
	if !ok {
		return fail(CheckNameLogo, "no img with alt=%q", cfg.Brand)
	}
	if !logo.Visible() {
		return fail(CheckNameLogo, "img alt=%q is not visible", cfg.Brand)
	}
	return CheckResult{Name: CheckNameLogo, Passed: true}
}

// CheckContactLink looks for the contact anchor and requires a secure href.
// The label must equal one of the anchor's direct text nodes.
func CheckContactLink(cfg Config, footer interfaces.Element) CheckResult {
	link, ok := firstMatch(footer.Find("a"), func(el interfaces.Element) bool {
		return slices.Contains(el.TextNodes(), cfg.ContactLabel)
	})
	if !ok {
		return fail(CheckNameContact, "no link with text %q", cfg.ContactLabel)
	}
	if !link.Visible() {
		return fail(CheckNameContact, "link %q is not visible", cfg.ContactLabel)
	}
	href, _ := link.Attr("href")
	if !strings.HasPrefix(href, cfg.SecurePrefix) {
		return fail(CheckNameContact, "href %q does not start with %q", href, cfg.SecurePrefix)
	}
	return CheckResult{Name: CheckNameContact, Passed: true, Detail: href}
}

// CheckEmail takes the first mail link and requires the configured address part.
func CheckEmail(cfg Config, footer interfaces.Element) CheckResult {
	link, ok := firstMatch(footer.Find("a[href]"), func(el interfaces.Element) bool {
		href, _ := el.Attr("href")
		return strings.Contains(href, cfg.MailPrefix)
	})
	if !ok {
		return fail(CheckNameEmail, "no link with %q in href", cfg.MailPrefix)
	}
	href, _ := link.Attr("href")
	if !link.Visible() {
		return fail(CheckNameEmail, "link %q is not visible", href)
	}
	if !strings.Contains(href, cfg.MailFragment) {
		return fail(CheckNameEmail, "href %q does not contain %q", href, cfg.MailFragment)
	}
	return CheckResult{Name: CheckNameEmail, Passed: true, Detail: href}
}

// CheckSocialIcons counts anchors inside the socials container. Icon identity
// and visibility are not checked.
func CheckSocialIcons(cfg Config, footer interfaces.Element) CheckResult {
	icons := footer.Find(cfg.SocialsSelector + " a")
	if len(icons) == 0 {
		return fail(CheckNameSocialIcons, "no links in %q", cfg.SocialsSelector)
	}
	return CheckResult{
		Name:   CheckNameSocialIcons,
		Passed: true,
		Detail: fmt.Sprintf("%d icon(s)", len(icons)),
	}
}

// CheckCopyright looks for the first element whose own text holds the glyph.
func CheckCopyright(cfg Config, footer interfaces.Element) CheckResult {
	notice, ok := firstMatch(footer.Find("*"), func(el interfaces.Element) bool {
		return strings.Contains(el.OwnText(), cfg.CopyrightGlyph)
	})
	if !ok {
		return fail(CheckNameCopyright, "no text containing %q", cfg.CopyrightGlyph)
	}
	if !notice.Visible() {
		return fail(CheckNameCopyright, "%q text is not visible", notice.OwnText())
	}
	return CheckResult{Name: CheckNameCopyright, Passed: true, Detail: notice.OwnText()}
}
