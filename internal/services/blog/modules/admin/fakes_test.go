package admin

import (
	"context"
	"sort"
	"sync"

	"github.com/penwright/blog/internal/post"
)

// fakeStore is an in-memory PostStore that validates and sanitizes like the
// repository, with per-operation error injection.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	posts   map[int64]post.Post
	failErr error
}

var _ PostStore = (*fakeStore)(nil)

func newFakeStore(inputs ...post.Input) *fakeStore {
	f := &fakeStore{posts: make(map[int64]post.Post)}
	for _, in := range inputs {
		if _, err := f.Create(context.Background(), in); err != nil {
			panic(err)
		}
	}
	return f
}

func (f *fakeStore) ListAll(context.Context) ([]post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := make([]post.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return post.Post{}, f.failErr
	}
	p, ok := f.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) Create(_ context.Context, in post.Input) (post.Post, error) {
	if err := in.Validate(); err != nil {
		return post.Post{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return post.Post{}, f.failErr
	}
	f.nextID++
	p := stored(f.nextID, in)
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakeStore) Replace(_ context.Context, id int64, in post.Input) (post.Post, error) {
	if err := in.Validate(); err != nil {
		return post.Post{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return post.Post{}, f.failErr
	}
	if _, ok := f.posts[id]; !ok {
		return post.Post{}, post.ErrNotFound
	}
	p := stored(id, in)
	f.posts[id] = p
	return p, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failErr = err
}

func stored(id int64, in post.Input) post.Post {
	fields := post.Sanitize(in)
	return post.Post{
		ID:                 id,
		Title:              fields.Title,
		Category:           fields.Category,
		SnippetDescription: fields.SnippetDescription,
		FirstPartContent:   fields.FirstPartContent,
		SecondPartContent:  fields.SecondPartContent,
	}
}
