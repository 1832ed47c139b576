package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	blogi18n "github.com/penwright/blog/internal/services/blog/platform/i18n"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// StylesheetPath is the embedded stylesheet served under /static/.
const StylesheetPath = routepath.StaticPrefix + "blog.css"

type navLink struct {
	href string
	key  string
}

var publicNav = []navLink{
	{href: routepath.Root, key: "core.nav.home"},
	{href: routepath.About, key: "core.nav.about"},
	{href: routepath.Categories, key: "core.nav.categories"},
	{href: routepath.Contact, key: "core.nav.contact"},
	{href: routepath.Backend, key: "core.nav.admin"},
}

// Layout renders the document shell around the children in ctx.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		h := &htmlWriter{w: w}
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(page.DocumentTitle())
		h.raw("</title><link rel=\"stylesheet\"")
		h.attr("href", StylesheetPath)
		h.raw("></head><body")
		if page.Admin() {
			h.attr("class", "admin")
		}
		h.raw("><header class=\"site-header\"><a class=\"site-name\"")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(page.Loc, "core.site.name"))
		h.raw("</a><p class=\"tagline\">")
		h.text(T(page.Loc, "core.site.tagline"))
		h.raw("</p><nav class=\"site-nav\">")
		for _, link := range publicNav {
			h.raw("<a")
			h.attr("href", link.href)
			if link.href == page.CurrentPath {
				h.attr("aria-current", "page")
			}
			h.raw(">")
			h.text(T(page.Loc, link.key))
			h.raw("</a>")
		}
		h.raw("</nav><nav class=\"lang-nav\">")
		for _, option := range blogi18n.LanguageOptions(page.Lang, page.Loc) {
			h.raw("<a")
			h.attr("href", blogi18n.LanguageURL(page.CurrentPath, page.CurrentQuery, option.Tag))
			h.attr("hreflang", option.Tag)
			if option.Active {
				h.attr("aria-current", "true")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw("</nav></header><main id=\"main\">")
		h.component(ctx, children)
		h.raw("</main></body></html>")
		return h.err
	})
}
