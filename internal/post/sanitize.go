package post

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/penwright/blog/internal/storage"
)

// Length limits in characters, checked before escaping.
const (
	MaxTitleLength              = 200
	MaxCategoryLength           = 64
	MaxSnippetDescriptionLength = 500
)

// Fields is an Input after escaping, in the shape written to the store.
type Fields struct {
	Title              string
	Category           string
	SnippetDescription string
	FirstPartContent   string
	SecondPartContent  *string
}

// Validate rejects blank required fields and over-long short fields.
func (in Input) Validate() error {
	var fields []FieldError
	check := func(column, value string, limit int) {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, FieldError{Field: column, Reason: ReasonRequired})
			return
		}
		if limit > 0 && utf8.RuneCountInString(value) > limit {
			fields = append(fields, FieldError{Field: column, Reason: ReasonTooLong, Limit: limit})
		}
	}
	check(ColumnTitle, in.Title, MaxTitleLength)
	check(ColumnCategory, in.Category, MaxCategoryLength)
	check(ColumnSnippetDescription, in.SnippetDescription, MaxSnippetDescriptionLength)
	check(ColumnFirstPartContent, in.FirstPartContent, 0)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Sanitize HTML-escapes every editable field: & < > ' " become entities.
// A nil or blank second part stays nil.
func Sanitize(in Input) Fields {
	out := Fields{
		Title:              html.EscapeString(in.Title),
		Category:           html.EscapeString(in.Category),
		SnippetDescription: html.EscapeString(in.SnippetDescription),
		FirstPartContent:   html.EscapeString(in.FirstPartContent),
	}
	if in.SecondPartContent != nil && strings.TrimSpace(*in.SecondPartContent) != "" {
		second := html.EscapeString(*in.SecondPartContent)
		out.SecondPartContent = &second
	}
	return out
}

// Unescape reverses Sanitize for one stored value.
func Unescape(stored string) string {
	return html.UnescapeString(stored)
}

// Row returns the store row for f. The second part is always present so an
// update overwrites it, with nil for a single-part post.
func (f Fields) Row() storage.Row {
	row := storage.Row{
		ColumnTitle:              f.Title,
		ColumnCategory:           f.Category,
		ColumnSnippetDescription: f.SnippetDescription,
		ColumnFirstPartContent:   f.FirstPartContent,
		ColumnSecondPartContent:  nil,
	}
	if f.SecondPartContent != nil {
		row[ColumnSecondPartContent] = *f.SecondPartContent
	}
	return row
}
