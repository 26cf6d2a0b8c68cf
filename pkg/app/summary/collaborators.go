package summary

import "context"

//go:generate mockery --name=Summarizer --dir=. --output=./mocks --filename=summarizer_mock.go --case=underscore
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLen, minLen int) (string, error)
	Ready() bool
}

//go:generate mockery --name=DocumentExtractor --dir=. --output=./mocks --filename=document_extractor_mock.go --case=underscore
type DocumentExtractor interface {
	ExtractText(ctx context.Context, kind DocumentKind, data []byte) (string, error)
}

//go:generate mockery --name=ImageRecognizer --dir=. --output=./mocks --filename=image_recognizer_mock.go --case=underscore
type ImageRecognizer interface {
	RecognizeText(ctx context.Context, data []byte) (string, error)
}

//go:generate mockery --name=PageFetcher --dir=. --output=./mocks --filename=page_fetcher_mock.go --case=underscore
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

//go:generate mockery --name=URLValidator --dir=. --output=./mocks --filename=url_validator_mock.go --case=underscore
type URLValidator interface {
	Validate(ctx context.Context, url string) error
}
