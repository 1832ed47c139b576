// Package blog parses blog server flags and launches the service.
package blog

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/penwright/blog/internal/markup"
	entrypoint "github.com/penwright/blog/internal/platform/cmd"
	"github.com/penwright/blog/internal/platform/timeouts"
	"github.com/penwright/blog/internal/post"
	blogserver "github.com/penwright/blog/internal/services/blog"
	"github.com/penwright/blog/internal/services/blog/platform/requestmeta"
	"github.com/penwright/blog/internal/storage"
	"github.com/penwright/blog/internal/storage/open"
)

// Config holds blog command configuration.
type Config struct {
	HTTPAddr            string `env:"BLOG_HTTP_ADDR" envDefault:"localhost:8080"`
	TrustForwardedProto bool   `env:"BLOG_TRUST_FORWARDED_PROTO" envDefault:"false"`
	Store               open.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	cfg.Store.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Store.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run connects the post store and serves the blog until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBlog, func(ctx context.Context) error {
		client, err := connectStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Printf("close post store: %v", err)
			}
		}()

		server, err := blogserver.NewServer(blogserver.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Posts:               post.NewRepository(client, storeTimeout(cfg.Store.Timeout)),
			Renderer:            markup.NewRenderer(),
			Health:              client,
			RequestSchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		})
		if err != nil {
			return fmt.Errorf("init blog server: %w", err)
		}
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve blog: %w", err)
		}
		return nil
	})
}

// connectStore opens the configured store and fails fast when it cannot be
// reached.
func connectStore(ctx context.Context, cfg open.Config) (storage.Client, error) {
	client, err := open.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open post store: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.StorePing)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, errors.Join(errors.New("post store unreachable"), err)
	}
	return client, nil
}

func storeTimeout(configured time.Duration) time.Duration {
	if configured <= 0 {
		return timeouts.StoreRequest
	}
	return configured
}
