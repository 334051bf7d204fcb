package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxDumpBytes       = 512 << 20
)

func newHTTPClient() *fasthttp.Client {
	return &fasthttp.Client{
		Name:                "pkmnctl-restore",
		MaxResponseBodySize: maxDumpBytes,
		ReadTimeout:         defaultHTTPTimeout,
		WriteTimeout:        defaultHTTPTimeout,
	}
}

// httpOpener downloads the dump in one request; fasthttp hands back the whole body, so it is copied out
// before the response returns to the pool.
func httpOpener(location string, opts Options) opener {
	client := opts.HTTPClient
	if client == nil {
		client = newHTTPClient()
	}

	return func(ctx context.Context) (io.ReadCloser, error) {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(location)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Accept", "application/x-ndjson, application/json, text/plain")

		var err error
		if deadline, ok := ctx.Deadline(); ok {
			err = client.DoDeadline(req, resp, deadline)
		} else {
			err = client.Do(req, resp)
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", location, err)
		}
		if status := resp.StatusCode(); status != fasthttp.StatusOK {
			return nil, fmt.Errorf("get %s: unexpected status %d", location, status)
		}

		body, err := resp.BodyUncompressed()
		if err != nil {
			return nil, fmt.Errorf("decode body of %s: %w", location, err)
		}
		return io.NopCloser(bytes.NewReader(bytes.Clone(body))), nil
	}
}
