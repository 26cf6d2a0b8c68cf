package httpx

import (
	"context"
	"errors"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 512
	DefaultMaxIdleConnDuration = 10 * time.Second
	DefaultMaxResponseBodySize = 20 * 1024 * 1024
	DefaultUserAgent           = "UniSummarize/1.0"
)

type FastHTTPClientOptions struct {
	Timeout             time.Duration
	MaxConnsPerHost     int
	MaxIdleConnDuration time.Duration
	MaxResponseBodySize int
	UserAgent           string
}

type FastHTTPClientOption func(*FastHTTPClientOptions)

func WithTimeout(timeout time.Duration) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.Timeout = timeout
	}
}

func WithMaxResponseBodySize(size int) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.MaxResponseBodySize = size
	}
}

func WithUserAgent(userAgent string) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.UserAgent = userAgent
	}
}

// NewFastHTTPClient builds the shared outbound client used for page fetches,
// URL checks, the document extraction service and Azure completions.
func NewFastHTTPClient(opts ...FastHTTPClientOption) *fasthttp.Client {
	options := &FastHTTPClientOptions{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxIdleConnDuration: DefaultMaxIdleConnDuration,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
		UserAgent:           DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &fasthttp.Client{
		Name:                options.UserAgent,
		MaxConnsPerHost:     options.MaxConnsPerHost,
		MaxIdleConnDuration: options.MaxIdleConnDuration,
		MaxResponseBodySize: options.MaxResponseBodySize,
		ReadTimeout:         options.Timeout,
		WriteTimeout:        options.Timeout,
	}
}

const DefaultMaxRedirects = 5

var ErrTooManyRedirects = errors.New("too many redirects")

// Do runs req with a deadline taken from ctx, or now+timeout when ctx has
// none, following up to maxRedirects redirects. req's URI is updated in place.
func Do(
	ctx context.Context,
	client *fasthttp.Client,
	req *fasthttp.Request,
	resp *fasthttp.Response,
	timeout time.Duration,
	maxRedirects int,
) error {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for redirects := 0; ; redirects++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}
		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) {
			return nil
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return nil
		}
		if redirects >= maxRedirects {
			return ErrTooManyRedirects
		}
		req.URI().UpdateBytes(location)
		resp.Reset()
	}
}
