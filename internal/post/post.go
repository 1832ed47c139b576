// Package post owns the blog post model and the content pipeline around the
// table store: validate and escape on write, decode into a typed Post on read.
//
// Stored text is HTML-escaped. Post values returned by the Repository carry
// the stored (escaped) text; callers unescape before display, either through
// Post.Input or the markup renderer.
package post

import (
	"net/url"
	"strings"
	"time"
)

// Column names in the Posts table.
const (
	ColumnID                 = "id"
	ColumnCreatedAt          = "created_at"
	ColumnTitle              = "title"
	ColumnCategory           = "category"
	ColumnSnippetDescription = "snippet_description"
	ColumnFirstPartContent   = "first_part_content"
	ColumnSecondPartContent  = "second_part_content"
)

// Form field names posted by the admin editor.
const (
	FormTitle              = "title"
	FormCategory           = "category"
	FormSnippetDescription = "snippet_description"
	FormFirstPartContent   = "first_part_of_content"
	FormSecondPartContent  = "second_part_of_content"
)

// Post is one stored blog post.
type Post struct {
	ID                 int64
	Title              string
	Category           string
	SnippetDescription string
	FirstPartContent   string
	// SecondPartContent is nil when the post has a single part.
	SecondPartContent *string
	// CreatedAt is zero when the store does not report it.
	CreatedAt time.Time
}

// Input is the raw, unescaped editable content of a post.
type Input struct {
	Title              string
	Category           string
	SnippetDescription string
	FirstPartContent   string
	SecondPartContent  *string
}

// InputFromForm reads the editor form. A missing or blank second part
// becomes nil; other missing fields read as empty and fail Validate.
func InputFromForm(form url.Values) Input {
	in := Input{
		Title:              form.Get(FormTitle),
		Category:           form.Get(FormCategory),
		SnippetDescription: form.Get(FormSnippetDescription),
		FirstPartContent:   form.Get(FormFirstPartContent),
	}
	if second := form.Get(FormSecondPartContent); strings.TrimSpace(second) != "" {
		in.SecondPartContent = &second
	}
	return in
}

// Input returns the post's editable content with escaping reversed, ready to
// pre-fill an editor or display as text.
func (p Post) Input() Input {
	in := Input{
		Title:              Unescape(p.Title),
		Category:           Unescape(p.Category),
		SnippetDescription: Unescape(p.SnippetDescription),
		FirstPartContent:   Unescape(p.FirstPartContent),
	}
	if p.SecondPartContent != nil {
		second := Unescape(*p.SecondPartContent)
		in.SecondPartContent = &second
	}
	return in
}

// HasSecondPart reports whether the post has a non-null second part.
func (p Post) HasSecondPart() bool {
	return p.SecondPartContent != nil
}
