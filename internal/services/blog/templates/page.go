package templates

import (
	"strings"

	"github.com/penwright/blog/internal/services/blog/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Title        string
}

// Admin reports whether the page belongs to the admin area.
func (p PageContext) Admin() bool {
	return routepath.IsBackend(p.CurrentPath)
}

// DocumentTitle returns the <title> text: the page title followed by the
// site name.
func (p PageContext) DocumentTitle() string {
	site := T(p.Loc, "core.site.name")
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return site
	}
	return title + " | " + site
}

// PostSummary is one entry of a post listing. Text fields are display text,
// already unescaped.
type PostSummary struct {
	ID                 int64
	Title              string
	Category           string
	SnippetDescription string
	Published          string
}

// PostView is a post prepared for a detail page.
type PostView struct {
	ID                 int64
	Title              string
	Category           string
	SnippetDescription string
	Published          string
	// ContentHTML is trusted renderer output.
	ContentHTML string
}

// FieldIssue describes why a form field was rejected.
type FieldIssue struct {
	TooLong bool
	Limit   int
}

// PostFormView carries the values and field errors of the create/edit form.
type PostFormView struct {
	PostID             int64
	Action             string
	Title              string
	Category           string
	SnippetDescription string
	FirstPartContent   string
	SecondPartContent  string
	Errors             map[string]FieldIssue
}

// Editing reports whether the form edits an existing post.
func (v PostFormView) Editing() bool {
	return v.PostID > 0
}
