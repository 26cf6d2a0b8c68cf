package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/httpx"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	acceptEncoding = "gzip, br, zstd, deflate"
	maxPageBytes   = 10 * 1024 * 1024
)

type WebPageFetcher struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *logrus.Logger
}

func NewWebPageFetcher(client *fasthttp.Client, timeout time.Duration, logger *logrus.Logger) *WebPageFetcher {
	if timeout <= 0 {
		timeout = httpx.DefaultTimeout
	}
	return &WebPageFetcher{client: client, timeout: timeout, logger: logger}
}

// FetchText downloads url and returns its visible text.
func (f *WebPageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.5")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, acceptEncoding)

	start := time.Now()
	text, err := f.fetch(ctx, req, resp)
	elapsed := time.Since(start)
	if err != nil {
		prometheus.ObserveCollaborator("page_fetcher", prometheus.OutcomeError, elapsed)
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	prometheus.ObserveCollaborator("page_fetcher", prometheus.OutcomeSuccess, elapsed)

	f.logger.WithFields(logrus.Fields{
		"url":         url,
		"final_url":   req.URI().String(),
		"chars":       len(text),
		"duration_ms": elapsed.Milliseconds(),
	}).Debug("page fetched")
	return text, nil
}

func (f *WebPageFetcher) fetch(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) (string, error) {
	if err := httpx.Do(ctx, f.client, req, resp, f.timeout, httpx.DefaultMaxRedirects); err != nil {
		return "", err
	}
	if status := resp.StatusCode(); status >= fasthttp.StatusBadRequest {
		return "", fmt.Errorf("unexpected status %d", status)
	}

	body, err := httpx.DecodeBody(resp, maxPageBytes)
	if err != nil {
		return "", err
	}

	if ct := string(resp.Header.ContentType()); strings.HasPrefix(ct, "text/plain") {
		return string(body), nil
	}
	return htmlToText(body)
}

// htmlToText returns the document's text nodes in order, separated by
// spaces, with script and style content removed.
func htmlToText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					if b.Len() > 0 {
						b.WriteByte(' ')
					}
					b.WriteString(t)
				}
				return
			}
			walk(c)
		})
	}
	walk(doc.Selection)
	return b.String(), nil
}
