package extractor

import (
	"context"
	"net/url"
	"strings"
	"time"

	domain "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/httpx"
	"github.com/valyala/fasthttp"
	"mvdan.cc/xurls/v2"
)

const DefaultURLCheckTimeout = 5 * time.Second

var strictURL = xurls.Strict()

type URLValidator struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func NewURLValidator(client *fasthttp.Client, timeout time.Duration) *URLValidator {
	if timeout <= 0 {
		timeout = DefaultURLCheckTimeout
	}
	return &URLValidator{client: client, timeout: timeout}
}

// Validate checks that raw is a single absolute http(s) URL and that the
// target answers a HEAD request without a 4xx/5xx status. A 405 counts as
// reachable since many servers refuse HEAD.
func (v *URLValidator) Validate(ctx context.Context, raw string) error {
	if err := CheckFormat(raw); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(raw)
	req.Header.SetMethod(fasthttp.MethodHead)
	resp.SkipBody = true

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if err := httpx.Do(ctx, v.client, req, resp, v.timeout, httpx.DefaultMaxRedirects); err != nil {
		return &domain.APIError{Kind: domain.KindBadRequest, Detail: "URL is not accessible", Err: err}
	}
	status := resp.StatusCode()
	if status >= fasthttp.StatusBadRequest && status != fasthttp.StatusMethodNotAllowed {
		return domain.NewBadRequest("URL is not accessible")
	}
	return nil
}

func CheckFormat(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || strictURL.FindString(raw) != raw {
		return domain.NewBadRequest("Invalid URL format")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewBadRequest("Invalid URL format")
	}
	return nil
}
