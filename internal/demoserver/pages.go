package demoserver

import (
	"fmt"
	"strings"
)

// PageVersion is one rendering of a page.
type PageVersion struct {
	HTML string
	// Broken names what this version breaks, empty for a healthy page.
	Broken string
}

// PageDefinition holds all versions of a single page.
type PageDefinition struct {
	Path        string
	Description string
	Versions    map[int]PageVersion
}

// Footer parts that satisfy every check with the default configuration.
// Links are absolute so the contact href stays https when served locally.
const (
	logoPart      = `<a class="logo" href="/"><img src="/static/logo.svg" alt="Only"></a>`
	contactPart   = `<nav><a href="https://only.digital/projects">Проекты</a><a href="https://only.digital/contacts">Контакты</a></nav>`
	emailPart     = `<a class="mail" href="mailto:info@only.digital">info@only.digital</a>`
	socialsPart   = `<div class="socials"><a href="https://t.me/onlydigital">tg</a><a href="https://vk.com/onlydigital">vk</a><a href="https://www.behance.net/onlydigital">be</a></div>`
	copyrightPart = `<p class="copy">© 2014–2024 Only</p>`
)

type footerParts struct {
	logo, contact, email, socials, copyright string
}

func healthyParts() footerParts {
	return footerParts{
		logo:      logoPart,
		contact:   contactPart,
		email:     emailPart,
		socials:   socialsPart,
		copyright: copyrightPart,
	}
}

func (f footerParts) html() string {
	return f.logo + f.contact + f.email + f.socials + f.copyright
}

// renderPage builds a full document. footerAttrs is placed on the <footer>
// tag; an empty inner with noFooter omits the element entirely.
func renderPage(title, footerAttrs, inner string, noFooter bool, extraScript string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="utf-8">
    <title>%s</title>
</head>
<body>
    <header><a href="/">Only</a></header>
    <main><h1>%s</h1><p>Digital production agency.</p></main>
`, title, title)
	if !noFooter {
		if footerAttrs != "" {
			footerAttrs = " " + footerAttrs
		}
		fmt.Fprintf(&b, "    <footer%s>%s</footer>\n", footerAttrs, inner)
	}
	if extraScript != "" {
		fmt.Fprintf(&b, "    <script>%s</script>\n", extraScript)
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func healthy(title string) PageVersion {
	return PageVersion{HTML: renderPage(title, "", healthyParts().html(), false, "")}
}

func withParts(title, broken string, mutate func(*footerParts)) PageVersion {
	parts := healthyParts()
	mutate(&parts)
	return PageVersion{HTML: renderPage(title, "", parts.html(), false, ""), Broken: broken}
}

// lateFooterScript appends a healthy footer after a short delay, the way a
// client-rendered site would.
func lateFooterScript(delayMS int) string {
	return fmt.Sprintf(`setTimeout(function () {
  var f = document.createElement("footer");
  f.innerHTML = %q;
  document.body.appendChild(f);
}, %d);`, healthyParts().html(), delayMS)
}

// GetAllPages returns all demo page definitions. The three site pages are
// healthy at version 1 and broken in different ways at version 2. Pages
// under /scenarios/ have a single fixed version.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		{
			Path:        "/",
			Description: "Home page",
			Versions: map[int]PageVersion{
				1: healthy("Only"),
				2: withParts("Only", "logo", func(p *footerParts) { p.logo = "" }),
			},
		},
		{
			Path:        "/about",
			Description: "About page",
			Versions: map[int]PageVersion{
				1: healthy("About"),
				2: withParts("About", "contact_link", func(p *footerParts) {
					p.contact = `<nav><a href="http://only.digital/contacts">Контакты</a></nav>`
				}),
			},
		},
		{
			Path:        "/services",
			Description: "Services page",
			Versions: map[int]PageVersion{
				1: healthy("Services"),
				2: {
					HTML:   renderPage("Services", `style="display:none"`, healthyParts().html(), false, ""),
					Broken: "footer",
				},
			},
		},
		scenario("/scenarios/no-footer", "No footer element", "footer",
			renderPage("No footer", "", "", true, "")),
		scenario("/scenarios/hidden-footer", "Footer hidden with display:none", "footer",
			renderPage("Hidden footer", `style="display:none"`, healthyParts().html(), false, "")),
		scenario("/scenarios/missing-logo", "Logo with the wrong alt text", "logo",
			withParts("Missing logo", "", func(p *footerParts) {
				p.logo = `<img src="/static/logo.svg" alt="Logo">`
			}).HTML),
		scenario("/scenarios/insecure-contact", "Contact link over plain http", "contact_link",
			withParts("Insecure contact", "", func(p *footerParts) {
				p.contact = `<a href="http://only.digital/contacts">Контакты</a>`
			}).HTML),
		scenario("/scenarios/wrong-email", "Mailto link to a personal address", "email",
			withParts("Wrong email", "", func(p *footerParts) {
				p.email = `<a href="mailto:ceo@only.digital">write us</a>`
			}).HTML),
		scenario("/scenarios/empty-socials", "Socials container without links", "social_icons",
			withParts("Empty socials", "", func(p *footerParts) {
				p.socials = `<div class="socials"></div>`
			}).HTML),
		scenario("/scenarios/no-copyright", "Copyright line without the glyph", "copyright",
			withParts("No copyright", "", func(p *footerParts) {
				p.copyright = `<p class="copy">2014–2024 Only</p>`
			}).HTML),
		scenario("/scenarios/late-footer", "Footer rendered by script after 300ms", "",
			renderPage("Late footer", "", "", true, lateFooterScript(300))),
	}
}

func scenario(path, desc, broken, html string) PageDefinition {
	return PageDefinition{
		Path:        path,
		Description: desc,
		Versions:    map[int]PageVersion{1: {HTML: html, Broken: broken}},
	}
}

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="80" height="24" viewBox="0 0 80 24"><text x="0" y="18" font-size="18">Only</text></svg>`
