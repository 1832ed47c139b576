package admin

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

// PostStore reads and writes posts for the admin pages.
type PostStore interface {
	ListAll(ctx context.Context) ([]post.Post, error)
	Get(ctx context.Context, id int64) (post.Post, error)
	Create(ctx context.Context, in post.Input) (post.Post, error)
	Replace(ctx context.Context, id int64, in post.Input) (post.Post, error)
	Delete(ctx context.Context, id int64) error
}

var errUnavailable = errors.New("post store is not configured")

type unavailableStore struct{}

func (unavailableStore) ListAll(context.Context) ([]post.Post, error) {
	return nil, &post.StoreError{Op: "list", Err: errUnavailable}
}

func (unavailableStore) Get(context.Context, int64) (post.Post, error) {
	return post.Post{}, &post.StoreError{Op: "get", Err: errUnavailable}
}

func (unavailableStore) Create(context.Context, post.Input) (post.Post, error) {
	return post.Post{}, &post.StoreError{Op: "create", Err: errUnavailable}
}

func (unavailableStore) Replace(context.Context, int64, post.Input) (post.Post, error) {
	return post.Post{}, &post.StoreError{Op: "replace", Err: errUnavailable}
}

func (unavailableStore) Delete(context.Context, int64) error {
	return &post.StoreError{Op: "delete", Err: errUnavailable}
}

type service struct {
	posts    PostStore
	renderer postview.Renderer
}

func newService(posts PostStore, renderer postview.Renderer) service {
	if posts == nil {
		posts = unavailableStore{}
	}
	return service{posts: posts, renderer: renderer}
}

func parsePostID(rawID string) (int64, error) {
	id, ok := routepath.ParsePostID(rawID)
	if !ok {
		return 0, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", "invalid post id")
	}
	return id, nil
}

func (s service) listPosts(ctx context.Context, now time.Time) ([]templates.PostSummary, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, postview.AppError(err)
	}
	return postview.Summaries(posts, now), nil
}

func (s service) getPost(ctx context.Context, id int64) (post.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return post.Post{}, postview.AppError(err)
	}
	return p, nil
}

func (s service) previewPost(ctx context.Context, id int64, now time.Time) (templates.PostView, error) {
	p, err := s.getPost(ctx, id)
	if err != nil {
		return templates.PostView{}, err
	}
	view, err := postview.Detail(p, s.renderer, now)
	if err != nil {
		return templates.PostView{}, postview.AppError(err)
	}
	return view, nil
}

// createPost returns the raw repository error so callers can tell a
// validation failure from a store failure.
func (s service) createPost(ctx context.Context, in post.Input) (post.Post, error) {
	return s.posts.Create(ctx, in)
}

func (s service) replacePost(ctx context.Context, id int64, in post.Input) (post.Post, error) {
	return s.posts.Replace(ctx, id, in)
}

func (s service) deletePost(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return postview.AppError(err)
	}
	return nil
}
