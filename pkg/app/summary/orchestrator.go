package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxLength = 130
	DefaultMinLength = 30
)

//go:generate mockery --name=Orchestrator --dir=. --output=./mocks --filename=orchestrator_mock.go --case=underscore
type Orchestrator interface {
	SummarizeText(ctx context.Context, text string, opts Options) (string, error)
	SummarizeURL(ctx context.Context, url string, opts Options) (string, error)
	SummarizeDocument(ctx context.Context, kind DocumentKind, data []byte, opts Options) (string, error)
	Ready() bool
}

type Dependencies struct {
	Summarizer Summarizer
	Documents  DocumentExtractor
	Images     ImageRecognizer
	Pages      PageFetcher
	URLs       URLValidator
	Logger     *logrus.Logger
	MaxLength  int
	MinLength  int
}

type orchestrator struct {
	summarizer Summarizer
	documents  DocumentExtractor
	images     ImageRecognizer
	pages      PageFetcher
	urls       URLValidator
	logger     *logrus.Logger
	maxLength  int
	minLength  int
	group      singleflight.Group
}

func NewOrchestrator(deps Dependencies) Orchestrator {
	maxLength, minLength := deps.MaxLength, deps.MinLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if minLength <= 0 || minLength > maxLength {
		minLength = min(DefaultMinLength, maxLength)
	}
	return &orchestrator{
		summarizer: deps.Summarizer,
		documents:  deps.Documents,
		images:     deps.Images,
		pages:      deps.Pages,
		urls:       deps.URLs,
		logger:     deps.Logger,
		maxLength:  maxLength,
		minLength:  minLength,
	}
}

func (o *orchestrator) Ready() bool {
	return o.summarizer != nil && o.summarizer.Ready()
}

func (o *orchestrator) SummarizeText(ctx context.Context, text string, opts Options) (string, error) {
	return o.summarizeCleaned(ctx, CleanText(text), opts, "Content must not be empty")
}

func (o *orchestrator) SummarizeURL(ctx context.Context, url string, opts Options) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", domainErrors.NewBadRequest("Content must not be empty")
	}
	if o.urls != nil {
		if err := o.urls.Validate(ctx, url); err != nil {
			return "", asBadRequest(err, "Invalid URL")
		}
	}
	if o.pages == nil {
		return "", domainErrors.NewUpstream("Error processing URL", errors.New("page fetcher not configured"))
	}

	text, err := o.pages.FetchText(ctx, url)
	if err != nil {
		return "", domainErrors.NewUpstream("Error processing URL", err)
	}
	return o.summarizeCleaned(ctx, CleanText(text), opts, "No readable text found at URL")
}

func (o *orchestrator) SummarizeDocument(
	ctx context.Context,
	kind DocumentKind,
	data []byte,
	opts Options,
) (string, error) {
	if len(data) == 0 {
		return "", domainErrors.NewBadRequest("File must not be empty")
	}

	var (
		text  string
		err   error
		empty string
	)
	switch {
	case kind.IsImage():
		if o.images == nil {
			return "", domainErrors.NewUpstream("Error processing image", errors.New("image recognizer not configured"))
		}
		text, err = o.images.RecognizeText(ctx, data)
		if err != nil {
			return "", domainErrors.NewUpstream("Error processing image", err)
		}
		empty = "No text could be extracted from the image"
	case kind == DocumentPDF || kind == DocumentDOCX:
		if o.documents == nil {
			return "", domainErrors.NewUpstream("Error processing document", errors.New("document extractor not configured"))
		}
		text, err = o.documents.ExtractText(ctx, kind, data)
		if err != nil {
			return "", domainErrors.NewUpstream("Error processing document", err)
		}
		empty = "No text could be extracted from the document"
	default:
		return "", domainErrors.NewBadRequest(fmt.Sprintf("Unsupported file format: %s", kind))
	}

	return o.summarizeCleaned(ctx, CleanText(text), opts, empty)
}

func (o *orchestrator) summarizeCleaned(ctx context.Context, text string, opts Options, emptyDetail string) (string, error) {
	if text == "" {
		return "", domainErrors.NewBadRequest(emptyDetail)
	}
	if !o.Ready() {
		return "", domainErrors.NewUpstream("Summarization model unavailable", errors.New("summarizer not configured"))
	}

	// Identical in-flight requests share one model call, so it must not be
	// cut short when the caller that started it goes away. The summarizer
	// applies its own timeout.
	shared := context.WithoutCancel(ctx)
	raw, err, joined := o.group.Do(o.key(text), func() (interface{}, error) {
		return o.summarizer.Summarize(shared, text, o.maxLength, o.minLength)
	})
	if err != nil {
		return "", domainErrors.NewUpstream("Summarization failed", err)
	}

	summary := strings.TrimSpace(raw.(string))
	if summary == "" {
		return "", domainErrors.NewUpstream("Summarization failed", errors.New("model returned an empty summary"))
	}

	if o.logger != nil {
		o.logger.WithFields(logrus.Fields{
			"domain":       opts.Domain,
			"format":       opts.Format,
			"input_chars":  len(text),
			"output_chars": len(summary),
			"shared":       joined,
		}).Debug("summary generated")
	}

	return formatSummary(adaptToDomain(summary, opts.Domain), opts.Format), nil
}

func (o *orchestrator) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func asBadRequest(err error, fallback string) error {
	var apiErr *domainErrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &domainErrors.APIError{Kind: domainErrors.KindBadRequest, Detail: fallback, Err: err}
}
