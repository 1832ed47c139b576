package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// PostList renders the public listing.
func PostList(page PageContext, posts []PostSummary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section id=\"post-list\"><h1>")
		h.text(T(page.Loc, "blog.page.index"))
		h.raw("</h1>")
		if len(posts) == 0 {
			h.raw("<p class=\"empty\">")
			h.text(T(page.Loc, "blog.list.empty"))
			h.raw("</p></section>")
			return h.err
		}
		h.raw("<ul class=\"posts\">")
		for _, post := range posts {
			h.raw("<li class=\"post-summary\"><h2><a")
			h.attr("href", routepath.Post(post.ID))
			h.raw(">")
			h.text(post.Title)
			h.raw("</a></h2><p class=\"meta\"><span class=\"category\">")
			h.text(T(page.Loc, "blog.post.category", post.Category))
			h.raw("</span>")
			writePublished(h, page, post.Published)
			h.raw("</p><p class=\"snippet\">")
			h.text(post.SnippetDescription)
			h.raw("</p><a class=\"read-more\"")
			h.attr("href", routepath.Post(post.ID))
			h.raw(">")
			h.text(T(page.Loc, "blog.list.read_more"))
			h.raw("</a></li>")
		}
		h.raw("</ul></section>")
		return h.err
	})
}

// PostDetail renders one post with its converted content.
func PostDetail(page PageContext, post PostView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<article id=\"post-detail\"")
		h.attr("data-post-id", strconv.FormatInt(post.ID, 10))
		h.raw("><header><p class=\"eyebrow\">")
		h.text(T(page.Loc, "blog.page.post"))
		h.raw("</p><h1 class=\"post-title\">")
		h.text(post.Title)
		h.raw("</h1><p class=\"meta\"><span class=\"category\">")
		h.text(T(page.Loc, "blog.post.category", post.Category))
		h.raw("</span>")
		writePublished(h, page, post.Published)
		h.raw("</p></header><div class=\"post-content\">")
		h.raw(post.ContentHTML)
		h.raw("</div><footer><a")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(page.Loc, "blog.post.back"))
		h.raw("</a></footer></article>")
		return h.err
	})
}

// StaticPage renders a page made of a heading and one paragraph of catalog
// copy.
func StaticPage(page PageContext, id string, bodyKey string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"static-page\"")
		h.attr("id", id)
		h.raw("><h1>")
		h.text(page.Title)
		h.raw("</h1><p>")
		h.text(T(page.Loc, bodyKey))
		h.raw("</p></section>")
		return h.err
	})
}

func writePublished(h *htmlWriter, page PageContext, published string) {
	if published == "" {
		return
	}
	h.raw(" <span class=\"published\">")
	h.text(T(page.Loc, "blog.post.published", published))
	h.raw("</span>")
}
