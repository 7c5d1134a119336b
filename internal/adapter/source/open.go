// Package source implements the table retrieval collaborators: local files,
// HTTP downloads and S3 objects.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/cryopcm-lab/internal/pipeline"
)

// Options carries the settings shared by all source kinds.
type Options struct {
	Timeout time.Duration
	S3      S3Options
	Logger  *slog.Logger
}

// Open picks a source implementation from the URI scheme:
//
//	/path/to/file.csv, file:///path   local file
//	http://..., https://...           HTTP GET
//	s3://bucket/key                   S3 GetObject
func Open(ctx context.Context, uri string, opts Options) (pipeline.Source, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if !strings.Contains(uri, "://") {
		return NewFile(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", uri, err)
	}
	switch u.Scheme {
	case "file":
		return NewFile(u.Path), nil
	case "http", "https":
		return NewHTTP(uri, opts.Timeout, opts.Logger), nil
	case "s3":
		return NewS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), opts.S3)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}
