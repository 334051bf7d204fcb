// Package archive reads the JSON-lines dumps that restore replays, from a local file, an HTTP(S) URL or an S3 object.
package archive

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/resilience"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

// Options configures the remote sources. Breaker guards HTTP and S3 fetches; nil disables it.
type Options struct {
	Timeout       time.Duration
	Breaker       *resilience.CircuitBreaker
	S3Region      string
	S3Endpoint    string
	S3Credentials S3Credentials
	HTTPClient    *fasthttp.Client
	Logger        *logging.Logger
}

type opener func(ctx context.Context) (io.ReadCloser, error)

// Source is one dump. Its name is the location it was opened from and keys the restore journal.
type Source struct {
	name   string
	open   opener
	logger *logging.Logger
}

var _ usecase.RestoreSource = (*Source)(nil)

// Open resolves location: s3://bucket/key, http(s)://..., file://path or a plain path.
func Open(ctx context.Context, location string, opts Options) (*Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: archive location is required", usecase.ErrInvalidInput)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// a one letter scheme is a windows drive
		return newSource(location, fileOpener(location), opts), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return newSource(location, fileOpener(u.Path), opts), nil
	case "http", "https":
		return newSource(location, guarded(opts, httpOpener(location, opts)), opts), nil
	case "s3":
		if u.Host == "" || strings.Trim(u.Path, "/") == "" {
			return nil, fmt.Errorf("%w: s3 location must be s3://bucket/key, got %q", usecase.ErrInvalidInput, location)
		}
		fetch, err := s3Opener(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), opts)
		if err != nil {
			return nil, err
		}
		return newSource(location, guarded(opts, fetch), opts), nil
	default:
		return nil, fmt.Errorf("%w: unsupported archive scheme %q", usecase.ErrInvalidInput, u.Scheme)
	}
}

func newSource(name string, open opener, opts Options) *Source {
	return &Source{
		name:   name,
		open:   open,
		logger: opts.Logger.With("archive", name),
	}
}

func (s *Source) Name() string {
	return s.name
}

// Lines opens the dump and scans it; the body is closed before Lines returns.
func (s *Source) Lines(ctx context.Context, fn func(usecase.RestoreLine) error) error {
	body, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.name, err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			s.logger.WarnContext(ctx, "close archive", "error", err)
		}
	}()

	return Scan(ctx, body, fn)
}

func fileOpener(path string) opener {
	return func(context.Context) (io.ReadCloser, error) {
		return os.Open(path)
	}
}

// guarded runs the fetch through the circuit breaker under the archive timeout.
// The timeout covers the whole read, so the body cancels its context when closed.
func guarded(opts Options, fetch opener) opener {
	return func(ctx context.Context) (io.ReadCloser, error) {
		cancel := context.CancelFunc(func() {})
		if opts.Timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		}

		var body io.ReadCloser
		err := opts.Breaker.Run(ctx, func(ctx context.Context) error {
			var err error
			body, err = fetch(ctx)
			return err
		})
		if err != nil {
			cancel()
			return nil, err
		}
		return cancelOnClose{ReadCloser: body, cancel: cancel}, nil
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}
