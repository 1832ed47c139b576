package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/post"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// AdminPostList renders the admin table of posts.
func AdminPostList(page PageContext, posts []PostSummary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section id=\"admin-post-list\"><h1>")
		h.text(T(page.Loc, "admin.page.list"))
		h.raw("</h1><p><a class=\"button\"")
		h.attr("href", routepath.BackendCreatePost)
		h.raw(">")
		h.text(T(page.Loc, "admin.action.create"))
		h.raw("</a></p>")
		if len(posts) == 0 {
			h.raw("<p class=\"empty\">")
			h.text(T(page.Loc, "admin.list.empty"))
			h.raw("</p></section>")
			return h.err
		}
		h.raw("<table><thead><tr>")
		for _, key := range []string{"admin.list.id", "admin.list.title", "admin.list.category", "admin.list.actions"} {
			h.raw("<th>")
			h.text(T(page.Loc, key))
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, item := range posts {
			h.raw("<tr><td>")
			h.text(strconv.FormatInt(item.ID, 10))
			h.raw("</td><td><a")
			h.attr("href", routepath.BackendPost(item.ID))
			h.raw(">")
			h.text(item.Title)
			h.raw("</a></td><td>")
			h.text(item.Category)
			h.raw("</td><td class=\"actions\"><a")
			h.attr("href", routepath.BackendEditPost(item.ID))
			h.raw(">")
			h.text(T(page.Loc, "admin.action.edit"))
			h.raw("</a>")
			writeDeleteForm(h, page, item.ID)
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table></section>")
		return h.err
	})
}

// AdminPostDetail renders a post preview with its admin actions.
func AdminPostDetail(page PageContext, view PostView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<nav class=\"admin-actions\"><a")
		h.attr("href", routepath.Backend)
		h.raw(">")
		h.text(T(page.Loc, "admin.action.back"))
		h.raw("</a><a")
		h.attr("href", routepath.Post(view.ID))
		h.raw(">")
		h.text(T(page.Loc, "admin.action.view"))
		h.raw("</a><a")
		h.attr("href", routepath.BackendEditPost(view.ID))
		h.raw(">")
		h.text(T(page.Loc, "admin.action.edit"))
		h.raw("</a>")
		writeDeleteForm(h, page, view.ID)
		h.raw("</nav>")
		h.component(ctx, PostDetail(page, view))
		return h.err
	})
}

type formField struct {
	name      string
	column    string
	labelKey  string
	multiline bool
	value     func(PostFormView) string
}

var postFormFields = []formField{
	{name: post.FormTitle, column: post.ColumnTitle, labelKey: "admin.form.title", value: func(v PostFormView) string { return v.Title }},
	{name: post.FormCategory, column: post.ColumnCategory, labelKey: "admin.form.category", value: func(v PostFormView) string { return v.Category }},
	{name: post.FormSnippetDescription, column: post.ColumnSnippetDescription, labelKey: "admin.form.snippet_description", multiline: true, value: func(v PostFormView) string { return v.SnippetDescription }},
	{name: post.FormFirstPartContent, column: post.ColumnFirstPartContent, labelKey: "admin.form.first_part", multiline: true, value: func(v PostFormView) string { return v.FirstPartContent }},
	{name: post.FormSecondPartContent, column: post.ColumnSecondPartContent, labelKey: "admin.form.second_part", multiline: true, value: func(v PostFormView) string { return v.SecondPartContent }},
}

// PostForm renders the create or edit form. Values are display text and are
// escaped on output.
func PostForm(page PageContext, view PostFormView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section id=\"post-form\"><h1>")
		h.text(page.Title)
		h.raw("</h1><form method=\"post\"")
		h.attr("action", view.Action)
		h.raw(">")
		for _, field := range postFormFields {
			label := T(page.Loc, field.labelKey)
			issue, invalid := view.Errors[field.column]
			h.raw("<div class=\"field\"><label")
			h.attr("for", field.name)
			h.raw(">")
			h.text(label)
			h.raw("</label>")
			if field.multiline {
				h.raw("<textarea")
				h.attr("id", field.name)
				h.attr("name", field.name)
				h.attr("rows", "8")
				if invalid {
					h.attr("aria-invalid", "true")
				}
				h.raw(">")
				h.text(field.value(view))
				h.raw("</textarea>")
			} else {
				h.raw("<input type=\"text\"")
				h.attr("id", field.name)
				h.attr("name", field.name)
				h.attr("value", field.value(view))
				if invalid {
					h.attr("aria-invalid", "true")
				}
				h.raw(">")
			}
			if invalid {
				h.raw("<p class=\"field-error\">")
				if issue.TooLong {
					h.text(T(page.Loc, "admin.field.too_long", label, issue.Limit))
				} else {
					h.text(T(page.Loc, "admin.field.required", label))
				}
				h.raw("</p>")
			}
			h.raw("</div>")
		}
		h.raw("<p class=\"hint\">")
		h.text(T(page.Loc, "admin.form.markdown_hint"))
		h.raw("</p><button type=\"submit\">")
		if view.Editing() {
			h.text(T(page.Loc, "admin.form.submit_update"))
		} else {
			h.text(T(page.Loc, "admin.form.submit_create"))
		}
		h.raw("</button></form><p><a")
		h.attr("href", routepath.Backend)
		h.raw(">")
		h.text(T(page.Loc, "admin.action.back"))
		h.raw("</a></p></section>")
		return h.err
	})
}

func writeDeleteForm(h *htmlWriter, page PageContext, id int64) {
	h.raw("<form class=\"inline\" method=\"post\"")
	h.attr("action", routepath.BackendDeletePost(id))
	h.raw("><button type=\"submit\">")
	h.text(T(page.Loc, "admin.action.delete"))
	h.raw("</button></form>")
}
