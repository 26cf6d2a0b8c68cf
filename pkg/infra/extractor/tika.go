package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/httpx"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

var documentContentTypes = map[summary.DocumentKind]string{
	summary.DocumentPDF:  "application/pdf",
	summary.DocumentDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	summary.DocumentPNG:  "image/png",
	summary.DocumentJPEG: "image/jpeg",
}

type TikaConfig struct {
	URL          string
	OCRLanguages []string
	Timeout      time.Duration
}

// Tika extracts plain text from documents and, through its Tesseract
// parser, from images. One instance serves both collaborator roles.
type Tika struct {
	client       *fasthttp.Client
	endpoint     string
	ocrLanguages string
	timeout      time.Duration
	breaker      httpx.CircuitBreaker
	logger       *logrus.Logger
}

func NewTika(client *fasthttp.Client, cfg TikaConfig, logger *logrus.Logger) *Tika {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpx.DefaultTimeout
	}
	langs := make([]string, 0, len(cfg.OCRLanguages))
	for _, l := range cfg.OCRLanguages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &Tika{
		client:       client,
		endpoint:     strings.TrimRight(cfg.URL, "/") + "/tika",
		ocrLanguages: strings.Join(langs, "+"),
		timeout:      timeout,
		breaker: httpx.NewCircuitBreaker("tika", 30*time.Second, 5,
			httpx.WithStateChangeHook(func(name, from, to string) {
				logger.WithFields(logrus.Fields{"breaker": name, "from": from, "to": to}).
					Warn("tika circuit breaker changed state")
				prometheus.SetBreakerState(name, to)
			}),
		),
		logger: logger,
	}
}

func (t *Tika) ExtractText(ctx context.Context, kind summary.DocumentKind, data []byte) (string, error) {
	contentType, ok := documentContentTypes[kind]
	if !ok {
		return "", fmt.Errorf("unsupported document kind %q", kind)
	}
	return t.put(ctx, "tika_document", contentType, data, false)
}

func (t *Tika) RecognizeText(ctx context.Context, data []byte) (string, error) {
	return t.put(ctx, "tika_ocr", mimetype.Detect(data).String(), data, true)
}

func (t *Tika) put(ctx context.Context, collaborator, contentType string, data []byte, ocr bool) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(t.endpoint)
	req.Header.SetMethod(fasthttp.MethodPut)
	req.Header.SetContentType(contentType)
	req.Header.Set(fasthttp.HeaderAccept, "text/plain; charset=UTF-8")
	if ocr && t.ocrLanguages != "" {
		req.Header.Set("X-Tika-OCRLanguage", t.ocrLanguages)
	}
	req.SetBodyRaw(data)

	var text string
	start := time.Now()
	err := t.breaker.Execute(func() error {
		if err := httpx.Do(ctx, t.client, req, resp, t.timeout, 0); err != nil {
			return err
		}
		switch status := resp.StatusCode(); status {
		case fasthttp.StatusOK, fasthttp.StatusNoContent:
			text = string(resp.Body())
			return nil
		default:
			return fmt.Errorf("tika returned status %d", status)
		}
	})
	elapsed := time.Since(start)

	if err != nil {
		outcome := prometheus.OutcomeError
		if httpx.IsOpen(err) {
			outcome = prometheus.OutcomeOpen
		}
		prometheus.ObserveCollaborator(collaborator, outcome, elapsed)
		return "", err
	}

	prometheus.ObserveCollaborator(collaborator, prometheus.OutcomeSuccess, elapsed)
	t.logger.WithFields(logrus.Fields{
		"content_type": contentType,
		"bytes_in":     len(data),
		"chars_out":    len(text),
		"duration_ms":  elapsed.Milliseconds(),
	}).Debug("text extracted")
	return text, nil
}
