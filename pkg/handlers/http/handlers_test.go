package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	"github.com/NeuralTrust/UniSummarize/pkg/app/summary/mocks"
	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	handlers "github.com/NeuralTrust/UniSummarize/pkg/handlers/http"
	"github.com/NeuralTrust/UniSummarize/pkg/middleware"
	"github.com/NeuralTrust/UniSummarize/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const maxFileSize = 1024

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newApp(orchestrator summary.Orchestrator) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(logger)})
	app.Use(middleware.NewPipelineMiddleware(logger, nil).Middleware())
	app.Post("/api/summarize", handlers.NewSummarizeHandler(logger, orchestrator).Handle)
	app.Post("/api/summarize/file", handlers.NewSummarizeFileHandler(logger, orchestrator, maxFileSize).Handle)
	app.Get("/api/health", handlers.NewHealthHandler(orchestrator, func() time.Time {
		return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	}).Handle)
	app.Get("/version", handlers.NewGetVersionHandler().Handle)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func detail(t *testing.T, raw []byte) string {
	t.Helper()
	var envelope middleware.ErrorEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope.Error.Detail
}

func TestSummarizeHandler_Text(t *testing.T) {
	orchestrator := mocks.NewOrchestrator(t)
	opts := summary.Options{Domain: summary.DomainLegal, Format: summary.FormatParagraph}
	orchestrator.On("SummarizeText", mock.Anything, "The contract ends in May.", opts).
		Return("From a legal perspective, the contract ends in May.", nil).Once()

	resp, raw := postJSON(t, newApp(orchestrator),
		`{"input_type":"text","content":"The contract ends in May.","domain":"legal","format":"paragraph"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out handlers.SummaryResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "From a legal perspective, the contract ends in May.", out.Summary)
}

func TestSummarizeHandler_URL(t *testing.T) {
	orchestrator := mocks.NewOrchestrator(t)
	orchestrator.On("SummarizeURL", mock.Anything, "https://example.com/post", mock.Anything).
		Return("• Point", nil).Once()

	resp, _ := postJSON(t, newApp(orchestrator),
		`{"input_type":"url","content":"https://example.com/post","domain":"research","format":"bullet"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSummarizeHandler_RejectsBeforeCallingCollaborators(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"malformed json", `{"input_type":`, 422, "Invalid request body"},
		{"unknown domain", `{"input_type":"text","content":"x","domain":"sports","format":"bullet"}`, 422, `domain: unsupported value "sports"`},
		{"missing content", `{"input_type":"text","domain":"legal","format":"bullet"}`, 422, "content: field required"},
		{"file input type", `{"input_type":"file","content":"x","domain":"legal","format":"bullet"}`, 400, "Invalid input type for this endpoint. Use /api/summarize/file for file uploads."},
		{"empty content", `{"input_type":"text","content":"","domain":"legal","format":"bullet"}`, 400, "Content must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orchestrator := mocks.NewOrchestrator(t)
			resp, raw := postJSON(t, newApp(orchestrator), tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.detail, detail(t, raw))
		})
	}
}

func TestSummarizeHandler_UpstreamFailureIsGeneric(t *testing.T) {
	orchestrator := mocks.NewOrchestrator(t)
	orchestrator.On("SummarizeText", mock.Anything, mock.Anything, mock.Anything).
		Return("", domainErrors.NewUpstream("Summarization failed", errors.New("openai: 503"))).Once()

	resp, raw := postJSON(t, newApp(orchestrator),
		`{"input_type":"text","content":"Some text.","domain":"medical","format":"detailed"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", detail(t, raw))
	assert.NotContains(t, string(raw), "openai")
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if content != nil {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/summarize/file", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSummarizeFileHandler_Image(t *testing.T) {
	orchestrator := mocks.NewOrchestrator(t)
	opts := summary.Options{Domain: summary.DomainCorporate, Format: summary.FormatBullet}
	orchestrator.On("SummarizeDocument", mock.Anything, summary.DocumentPNG, pngHeader, opts).
		Return("• Revenue grew", nil).Once()

	// The declared name is ignored; the bytes decide the type.
	req := multipartRequest(t, map[string]string{"domain": "corporate", "format": "bullet"}, "report.pdf", pngHeader)
	resp, err := newApp(orchestrator).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSummarizeFileHandler_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		content []byte
		status  int
		detail  string
	}{
		{
			name:    "disallowed type",
			fields:  map[string]string{"domain": "legal", "format": "bullet"},
			content: []byte("#!/bin/sh\necho hello\n"),
			status:  400,
			detail:  "File type not allowed. Allowed types: pdf, docx, png, jpg, jpeg",
		},
		{
			name:    "too large",
			fields:  map[string]string{"domain": "legal", "format": "bullet"},
			content: append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, maxFileSize)...),
			status:  400,
			detail:  "File size too large. Maximum size allowed: 0.0MB",
		},
		{
			name:   "missing file",
			fields: map[string]string{"domain": "legal", "format": "bullet"},
			status: 422,
			detail: "file: field required",
		},
		{
			name:    "bad format",
			fields:  map[string]string{"domain": "legal", "format": "poem"},
			content: pngHeader,
			status:  422,
			detail:  `format: unsupported value "poem"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orchestrator := mocks.NewOrchestrator(t)
			resp, err := newApp(orchestrator).Test(multipartRequest(t, tt.fields, "upload.bin", tt.content))
			require.NoError(t, err)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.detail, detail(t, raw))
		})
	}
}

func TestSummarizeFileHandler_NotMultipart(t *testing.T) {
	orchestrator := mocks.NewOrchestrator(t)
	resp, raw := postJSONTo(t, newApp(orchestrator), "/api/summarize/file", `{"domain":"legal"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Request must be multipart/form-data", detail(t, raw))
}

func postJSONTo(t *testing.T, app *fiber.App, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestHealthHandler(t *testing.T) {
	for _, ready := range []bool{true, false} {
		orchestrator := mocks.NewOrchestrator(t)
		orchestrator.On("Ready").Return(ready).Once()

		resp, err := newApp(orchestrator).Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out handlers.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "healthy", out.Status)
		assert.Equal(t, "2024-05-01T10:00:00Z", out.Timestamp)
		assert.Equal(t, "online", out.Services["api"])
		assert.Equal(t, version.Version, out.Version)
		if ready {
			assert.Equal(t, "online", out.Services["summarizer"])
		} else {
			assert.Equal(t, "offline", out.Services["summarizer"])
		}
	}
}

func TestVersionHandler(t *testing.T) {
	resp, err := newApp(mocks.NewOrchestrator(t)).Test(httptest.NewRequest(http.MethodGet, "/version", nil))
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "UniSummarize", info.AppName)
	assert.Equal(t, version.Version, info.Version)
}
