package post

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/penwright/blog/internal/storage"
)

// TableName is the store table holding posts.
const TableName = "Posts"

const tracerName = "github.com/penwright/blog/internal/post"

// Repository reads and writes posts through a storage client. It holds no
// copy of the data; every call is a fresh round-trip.
type Repository struct {
	table   storage.Table
	timeout time.Duration
	tracer  trace.Tracer
}

// NewRepository binds a repository to the Posts table of client. A positive
// timeout bounds each store call.
func NewRepository(client storage.Client, timeout time.Duration) *Repository {
	return &Repository{
		table:   client.Table(TableName),
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
	}
}

// ListAll returns every post ordered by id ascending.
func (r *Repository) ListAll(ctx context.Context) (posts []Post, err error) {
	ctx, end := r.start(ctx, "post.ListAll")
	defer func() { end(err) }()

	rows, err := r.table.SelectAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	posts = make([]Post, 0, len(rows))
	for _, row := range rows {
		p, err := decodeRow(row)
		if err != nil {
			return nil, &StoreError{Op: "decode", Err: err}
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

// Get returns the post with id, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id int64) (p Post, err error) {
	ctx, end := r.start(ctx, "post.Get", attribute.Int64("post.id", id))
	defer func() { end(err) }()

	row, ok, err := r.table.SelectByID(ctx, id)
	if err != nil {
		return Post{}, &StoreError{Op: "get", Err: err}
	}
	if !ok {
		return Post{}, ErrNotFound
	}
	p, err = decodeRow(row)
	if err != nil {
		return Post{}, &StoreError{Op: "decode", Err: err}
	}
	return p, nil
}

// Create validates and escapes in, stores it, and returns the stored post.
func (r *Repository) Create(ctx context.Context, in Input) (p Post, err error) {
	ctx, end := r.start(ctx, "post.Create")
	defer func() { end(err) }()

	if err := in.Validate(); err != nil {
		return Post{}, err
	}
	row, err := r.table.Insert(ctx, Sanitize(in).Row())
	if err != nil {
		return Post{}, &StoreError{Op: "create", Err: err}
	}
	p, err = decodeRow(row)
	if err != nil {
		return Post{}, &StoreError{Op: "decode", Err: err}
	}
	return p, nil
}

// Replace overwrites every editable field of post id. A missing id is
// ErrNotFound.
func (r *Repository) Replace(ctx context.Context, id int64, in Input) (p Post, err error) {
	ctx, end := r.start(ctx, "post.Replace", attribute.Int64("post.id", id))
	defer func() { end(err) }()

	if err := in.Validate(); err != nil {
		return Post{}, err
	}
	row, ok, err := r.table.Update(ctx, id, Sanitize(in).Row())
	if err != nil {
		return Post{}, &StoreError{Op: "replace", Err: err}
	}
	if !ok {
		return Post{}, ErrNotFound
	}
	p, err = decodeRow(row)
	if err != nil {
		return Post{}, &StoreError{Op: "decode", Err: err}
	}
	return p, nil
}

// Delete removes post id. Deleting a missing id succeeds.
func (r *Repository) Delete(ctx context.Context, id int64) (err error) {
	ctx, end := r.start(ctx, "post.Delete", attribute.Int64("post.id", id))
	defer func() { end(err) }()

	if err := r.table.DeleteByID(ctx, id); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}

// start opens a span and applies the call timeout. end records err on the
// span unless it is an expected outcome.
func (r *Repository) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := r.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	cancel := context.CancelFunc(func() {})
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	return ctx, func(err error) {
		cancel()
		var validation *ValidationError
		switch {
		case err == nil, errors.Is(err, ErrNotFound), errors.As(err, &validation):
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
