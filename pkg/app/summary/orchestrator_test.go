package summary_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	"github.com/NeuralTrust/UniSummarize/pkg/app/summary/mocks"
	domain "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type collaborators struct {
	summarizer *mocks.Summarizer
	documents  *mocks.DocumentExtractor
	images     *mocks.ImageRecognizer
	pages      *mocks.PageFetcher
	urls       *mocks.URLValidator
}

func setupOrchestrator(t *testing.T) (summary.Orchestrator, collaborators) {
	c := collaborators{
		summarizer: mocks.NewSummarizer(t),
		documents:  mocks.NewDocumentExtractor(t),
		images:     mocks.NewImageRecognizer(t),
		pages:      mocks.NewPageFetcher(t),
		urls:       mocks.NewURLValidator(t),
	}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	o := summary.NewOrchestrator(summary.Dependencies{
		Summarizer: c.summarizer,
		Documents:  c.documents,
		Images:     c.images,
		Pages:      c.pages,
		URLs:       c.urls,
		Logger:     logger,
	})
	return o, c
}

func TestOrchestrator_SummarizeText_Paragraph(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, "Quarterly revenue grew. Costs fell.", 130, 30).
		Return("Revenue grew while costs fell.", nil)

	out, err := o.SummarizeText(context.Background(), "  Quarterly   revenue grew.\n\nCosts fell. ", summary.Options{
		Domain: summary.DomainCorporate,
		Format: summary.FormatParagraph,
	})

	require.NoError(t, err)
	assert.Equal(t, "The business implications suggest that Revenue grew while costs fell.", out)
}

func TestOrchestrator_SummarizeText_Bullet(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, mock.Anything, 130, 30).
		Return("Cells divide. Proteins fold!", nil)

	out, err := o.SummarizeText(context.Background(), "Some biology text.", summary.Options{
		Domain: summary.DomainResearch,
		Format: summary.FormatBullet,
	})

	require.NoError(t, err)
	assert.Equal(t, "• The research demonstrates that Cells divide\n• Proteins fold", out)
}

func TestOrchestrator_SummarizeText_EmptyAfterCleaning(t *testing.T) {
	o, _ := setupOrchestrator(t)

	_, err := o.SummarizeText(context.Background(), "  @@@ ### \n\t", summary.Options{
		Domain: summary.DomainLegal,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	assert.Equal(t, 400, domain.AsAPIError(err).StatusCode())
}

func TestOrchestrator_SummarizeText_ModelFailure(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, mock.Anything, 130, 30).
		Return("", errors.New("provider timeout"))

	_, err := o.SummarizeText(context.Background(), "Some text.", summary.Options{
		Domain: summary.DomainLegal,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	apiErr := domain.AsAPIError(err)
	assert.Equal(t, 500, apiErr.StatusCode())
	assert.Equal(t, "Internal server error", apiErr.PublicDetail())
	assert.Contains(t, err.Error(), "provider timeout")
}

func TestOrchestrator_SummarizeText_ModelNotReady(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.summarizer.On("Ready").Return(false)

	_, err := o.SummarizeText(context.Background(), "Some text.", summary.Options{
		Domain: summary.DomainLegal,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	assert.Equal(t, 500, domain.AsAPIError(err).StatusCode())
	assert.False(t, o.Ready())
}

func TestOrchestrator_SummarizeText_ConcurrentDuplicatesShareOneCall(t *testing.T) {
	o, c := setupOrchestrator(t)
	var calls atomic.Int32
	release := make(chan struct{})
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, "Same text.", 130, 30).
		Return(func(context.Context, string, int, int) (string, error) {
			calls.Add(1)
			<-release
			return "Shared summary.", nil
		})

	opts := summary.Options{Domain: summary.DomainAcademic, Format: summary.FormatParagraph}
	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := o.SummarizeText(context.Background(), "Same text.", opts)
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Less(t, calls.Load(), int32(len(results)))
	for _, out := range results {
		assert.Equal(t, "This academic analysis reveals that Shared summary.", out)
	}
}

func TestOrchestrator_SummarizeURL(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.urls.On("Validate", mock.Anything, "https://example.com/post").Return(nil)
	c.pages.On("FetchText", mock.Anything, "https://example.com/post").Return("Article body text.", nil)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, "Article body text.", 130, 30).Return("Body.", nil)

	out, err := o.SummarizeURL(context.Background(), " https://example.com/post ", summary.Options{
		Domain: summary.DomainMedical,
		Format: summary.FormatParagraph,
	})

	require.NoError(t, err)
	assert.Equal(t, "The medical findings indicate that Body.", out)
}

func TestOrchestrator_SummarizeURL_InvalidURL(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.urls.On("Validate", mock.Anything, "not a url").Return(domain.NewBadRequest("Invalid URL"))

	_, err := o.SummarizeURL(context.Background(), "not a url", summary.Options{
		Domain: summary.DomainMedical,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	apiErr := domain.AsAPIError(err)
	assert.Equal(t, 400, apiErr.StatusCode())
	assert.Equal(t, "Invalid URL", apiErr.PublicDetail())
}

func TestOrchestrator_SummarizeURL_FetchFailure(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.urls.On("Validate", mock.Anything, "https://example.com").Return(nil)
	c.pages.On("FetchText", mock.Anything, "https://example.com").Return("", errors.New("connection reset"))

	_, err := o.SummarizeURL(context.Background(), "https://example.com", summary.Options{
		Domain: summary.DomainMedical,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	assert.Equal(t, 500, domain.AsAPIError(err).StatusCode())
}

func TestOrchestrator_SummarizeDocument_PDF(t *testing.T) {
	o, c := setupOrchestrator(t)
	data := []byte("%PDF-1.7 fake")
	c.documents.On("ExtractText", mock.Anything, summary.DocumentPDF, data).Return("Contract terms apply.", nil)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, "Contract terms apply.", 130, 30).Return("Terms apply.", nil)

	out, err := o.SummarizeDocument(context.Background(), summary.DocumentPDF, data, summary.Options{
		Domain: summary.DomainLegal,
		Format: summary.FormatParagraph,
	})

	require.NoError(t, err)
	assert.Equal(t, "From a legal perspective, Terms apply.", out)
}

func TestOrchestrator_SummarizeDocument_ImageUsesOCR(t *testing.T) {
	o, c := setupOrchestrator(t)
	data := []byte{0x89, 'P', 'N', 'G'}
	c.images.On("RecognizeText", mock.Anything, data).Return("Scanned receipt total.", nil)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize", mock.Anything, "Scanned receipt total.", 130, 30).Return("A receipt.", nil)

	out, err := o.SummarizeDocument(context.Background(), summary.DocumentPNG, data, summary.Options{
		Domain: summary.DomainCorporate,
		Format: summary.FormatParagraph,
	})

	require.NoError(t, err)
	assert.Equal(t, "The business implications suggest that A receipt.", out)
	c.documents.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestrator_SummarizeDocument_ImageWithoutText(t *testing.T) {
	o, c := setupOrchestrator(t)
	data := []byte{0xFF, 0xD8, 0xFF}
	c.images.On("RecognizeText", mock.Anything, data).Return("   ", nil)

	_, err := o.SummarizeDocument(context.Background(), summary.DocumentJPEG, data, summary.Options{
		Domain: summary.DomainCorporate,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	assert.Equal(t, 400, domain.AsAPIError(err).StatusCode())
}

func TestOrchestrator_SummarizeDocument_Empty(t *testing.T) {
	o, _ := setupOrchestrator(t)

	_, err := o.SummarizeDocument(context.Background(), summary.DocumentDOCX, nil, summary.Options{
		Domain: summary.DomainCorporate,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	assert.Equal(t, 400, domain.AsAPIError(err).StatusCode())
}

func TestOrchestrator_SummarizeDocument_ExtractionFailure(t *testing.T) {
	o, c := setupOrchestrator(t)
	data := []byte("PK\x03\x04")
	c.documents.On("ExtractText", mock.Anything, summary.DocumentDOCX, data).Return("", errors.New("tika unavailable"))

	_, err := o.SummarizeDocument(context.Background(), summary.DocumentDOCX, data, summary.Options{
		Domain: summary.DomainCorporate,
		Format: summary.FormatParagraph,
	})

	require.Error(t, err)
	apiErr := domain.AsAPIError(err)
	assert.Equal(t, 500, apiErr.StatusCode())
	assert.ErrorContains(t, err, "tika unavailable")
}

func TestOrchestrator_SummarizeText_SharedCallIgnoresCallerCancellation(t *testing.T) {
	o, c := setupOrchestrator(t)
	c.summarizer.On("Ready").Return(true)
	c.summarizer.On("Summarize",
		mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }),
		"Shared text.", 130, 30,
	).Return("Shared.", nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := o.SummarizeText(ctx, "Shared text.", summary.Options{
		Domain: summary.DomainCorporate,
		Format: summary.FormatParagraph,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Shared.")
}
