package testutil

import "fmt"

// FooterPage wraps a footer body in a minimal HTML document.
func FooterPage(footerInner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>fixture</title></head>
<body><main><h1>Page</h1></main>
<footer>%s</footer>
</body></html>`, footerInner)
}

// Footer parts that satisfy every check with the default configuration.
const (
	LogoOK      = `<img src="/logo.svg" alt="Only">`
	ContactOK   = `<a href="https://only.digital/contacts">Контакты</a>`
	EmailOK     = `<a href="mailto:info@only.digital">info@only.digital</a>`
	SocialsOK   = `<div class="socials"><a href="https://t.me/only">tg</a><a href="https://vk.com/only">vk</a></div>`
	CopyrightOK = `<p>© 2024 Only</p>`
)

// HealthyFooterPage is a page where all five checks pass.
func HealthyFooterPage() string {
	return FooterPage(LogoOK + ContactOK + EmailOK + SocialsOK + CopyrightOK)
}
