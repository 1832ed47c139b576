// Package postview turns stored posts into template views and domain
// failures into typed application errors.
package postview

import (
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/penwright/blog/internal/post"
	apperrors "github.com/penwright/blog/internal/services/blog/platform/errors"
	"github.com/penwright/blog/internal/services/blog/templates"
)

// Renderer converts a post's content into HTML.
type Renderer interface {
	RenderPost(p post.Post) (string, error)
}

// Summaries builds listing entries in the order given.
func Summaries(posts []post.Post, now time.Time) []templates.PostSummary {
	out := make([]templates.PostSummary, 0, len(posts))
	for _, p := range posts {
		in := p.Input()
		out = append(out, templates.PostSummary{
			ID:                 p.ID,
			Title:              in.Title,
			Category:           in.Category,
			SnippetDescription: in.SnippetDescription,
			Published:          published(p.CreatedAt, now),
		})
	}
	return out
}

// Detail renders p for a detail page.
func Detail(p post.Post, renderer Renderer, now time.Time) (templates.PostView, error) {
	if renderer == nil {
		return templates.PostView{}, errors.New("renderer is required")
	}
	content, err := renderer.RenderPost(p)
	if err != nil {
		return templates.PostView{}, err
	}
	in := p.Input()
	return templates.PostView{
		ID:                 p.ID,
		Title:              in.Title,
		Category:           in.Category,
		SnippetDescription: in.SnippetDescription,
		Published:          published(p.CreatedAt, now),
		ContentHTML:        content,
	}, nil
}

// Form builds the editor view for in. validation, when it is a
// *post.ValidationError, supplies the field errors.
func Form(action string, id int64, in post.Input, validation error) templates.PostFormView {
	view := templates.PostFormView{
		PostID:             id,
		Action:             action,
		Title:              in.Title,
		Category:           in.Category,
		SnippetDescription: in.SnippetDescription,
		FirstPartContent:   in.FirstPartContent,
	}
	if in.SecondPartContent != nil {
		view.SecondPartContent = *in.SecondPartContent
	}
	var invalid *post.ValidationError
	if errors.As(validation, &invalid) {
		view.Errors = make(map[string]templates.FieldIssue, len(invalid.Fields))
		for _, field := range invalid.Fields {
			view.Errors[field.Field] = templates.FieldIssue{
				TooLong: field.Reason == post.ReasonTooLong,
				Limit:   field.Limit,
			}
		}
	}
	return view
}

// AppError maps repository and renderer failures onto application error
// kinds. Errors that already carry a kind pass through unchanged.
func AppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr apperrors.Error
	var invalid *post.ValidationError
	var storeErr *post.StoreError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, post.ErrNotFound):
		return apperrors.Error{Kind: apperrors.KindNotFound, Key: "core.error.not_found", Message: err.Error(), Cause: err}
	case errors.As(err, &invalid):
		return apperrors.Error{Kind: apperrors.KindInvalidInput, Key: "core.error.invalid_input", Message: err.Error(), Cause: err}
	case errors.As(err, &storeErr):
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.unavailable", err)
	default:
		return apperrors.Wrap(apperrors.KindUnknown, "core.error.unavailable", err)
	}
}

func published(created time.Time, now time.Time) string {
	if created.IsZero() {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}
	return humanize.RelTime(created, now, "ago", "from now")
}
