package public

import (
	"context"
	"errors"
	"time"

	"github.com/penwright/blog/internal/post"
	apperrors "github.com/penwright/blog/internal/services/blog/platform/errors"
	"github.com/penwright/blog/internal/services/blog/postview"
	"github.com/penwright/blog/internal/services/blog/routepath"
	"github.com/penwright/blog/internal/services/blog/templates"
)

// PostReader loads posts for the public pages.
type PostReader interface {
	ListAll(ctx context.Context) ([]post.Post, error)
	Get(ctx context.Context, id int64) (post.Post, error)
}

var errUnavailable = errors.New("post reader is not configured")

type unavailableReader struct{}

func (unavailableReader) ListAll(context.Context) ([]post.Post, error) {
	return nil, &post.StoreError{Op: "list", Err: errUnavailable}
}

func (unavailableReader) Get(context.Context, int64) (post.Post, error) {
	return post.Post{}, &post.StoreError{Op: "get", Err: errUnavailable}
}

type service struct {
	posts    PostReader
	renderer postview.Renderer
}

func newService(posts PostReader, renderer postview.Renderer) service {
	if posts == nil {
		posts = unavailableReader{}
	}
	return service{posts: posts, renderer: renderer}
}

func (s service) listPosts(ctx context.Context, now time.Time) ([]templates.PostSummary, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, postview.AppError(err)
	}
	return postview.Summaries(posts, now), nil
}

// getPost loads and renders one post. Ids that cannot name a post are
// reported as not found without a store round-trip.
func (s service) getPost(ctx context.Context, rawID string, now time.Time) (templates.PostView, error) {
	id, ok := routepath.ParsePostID(rawID)
	if !ok {
		return templates.PostView{}, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", "invalid post id")
	}
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return templates.PostView{}, postview.AppError(err)
	}
	view, err := postview.Detail(p, s.renderer, now)
	if err != nil {
		return templates.PostView{}, postview.AppError(err)
	}
	return view, nil
}
