// Package seed loads demo posts into the configured post store.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	entrypoint "github.com/penwright/blog/internal/platform/cmd"
	"github.com/penwright/blog/internal/platform/timeouts"
	"github.com/penwright/blog/internal/post"
	"github.com/penwright/blog/internal/storage/open"
)

// Config holds seed command configuration.
type Config struct {
	// File is a fixture path; empty uses the embedded demo fixture.
	File string
	// Parallel bounds concurrent creates. Ids follow fixture order only at 1.
	Parallel int
	DryRun   bool
	Store    open.Config
}

// Creator stores one post.
type Creator interface {
	Create(ctx context.Context, in post.Input) (post.Post, error)
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Parallel: 1}
	if err := entrypoint.ParseConfig(&cfg.Store); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.File, "file", "", "YAML post fixture (default: embedded demo posts)")
	fs.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "maximum concurrent creates")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate the fixture without writing")
	cfg.Store.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Parallel < 1 {
		return Config{}, fmt.Errorf("parallel must be at least 1, got %d", cfg.Parallel)
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	inputs, err := loadInputs(cfg.File)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		fmt.Fprintf(out, "fixture ok: %d posts\n", len(inputs))
		return nil
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		client, err := open.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("open post store: %w", err)
		}
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, timeouts.StorePing)
		err = client.Ping(pingCtx)
		cancel()
		if err != nil {
			return errors.Join(errors.New("post store unreachable"), err)
		}

		timeout := cfg.Store.Timeout
		if timeout <= 0 {
			timeout = timeouts.StoreRequest
		}
		return Seed(ctx, post.NewRepository(client, timeout), inputs, cfg.Parallel, out)
	})
}

func loadInputs(path string) ([]post.Input, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadFixture(demoFixture)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return LoadFixture(data)
}

// Seed creates every input through creator with at most parallel creates in
// flight. The first failure cancels the remaining creates.
func Seed(ctx context.Context, creator Creator, inputs []post.Input, parallel int, out io.Writer) error {
	if creator == nil {
		return errors.New("post creator is required")
	}
	if parallel < 1 {
		parallel = 1
	}
	if out == nil {
		out = io.Discard
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			created, err := creator.Create(gctx, in)
			if err != nil {
				return fmt.Errorf("create post %d (%q): %w", i+1, in.Title, err)
			}
			mu.Lock()
			fmt.Fprintf(out, "created post %d: %s\n", created.ID, in.Title)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
