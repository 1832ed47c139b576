package public

import (
	"context"

	"github.com/penwright/blog/internal/post"
)

// fakeReader implements PostReader over a fixed slice with error injection.
type fakeReader struct {
	posts   []post.Post
	listErr error
	getErr  error
	gets    *[]int64
}

var _ PostReader = fakeReader{}

func (f fakeReader) ListAll(context.Context) ([]post.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.posts, nil
}

func (f fakeReader) Get(_ context.Context, id int64) (post.Post, error) {
	if f.gets != nil {
		*f.gets = append(*f.gets, id)
	}
	if f.getErr != nil {
		return post.Post{}, f.getErr
	}
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return post.Post{}, post.ErrNotFound
}

func strPtr(s string) *string {
	return &s
}
