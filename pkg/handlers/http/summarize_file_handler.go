package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/NeuralTrust/UniSummarize/pkg/handlers/http/request"
	"github.com/NeuralTrust/UniSummarize/pkg/infra/filetype"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	fileField = "file"
	// room for multipart framing and the text fields next to the file
	formOverhead = 1 << 20
)

type summarizeFileHandler struct {
	*BaseHandler
	orchestrator summary.Orchestrator
	maxFileSize  int64
}

func NewSummarizeFileHandler(logger *logrus.Logger, orchestrator summary.Orchestrator, maxFileSize int64) Handler {
	return &summarizeFileHandler{
		BaseHandler:  NewBaseHandler(logger),
		orchestrator: orchestrator,
		maxFileSize:  maxFileSize,
	}
}

// Handle @Summary Summarize an uploaded file
// @Description Extracts text from a PDF, DOCX or image (OCR) and summarizes it
// @Tags Summarize
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param X-Client-ID header string false "Client identifier used for rate limiting"
// @Param file formData file true "pdf, docx, png, jpg or jpeg"
// @Param domain formData string true "Summary domain" Enums(academic, legal, medical, research, corporate)
// @Param format formData string true "Summary format" Enums(paragraph, bullet, detailed)
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} middleware.ErrorEnvelope
// @Failure 401 {object} middleware.ErrorEnvelope
// @Failure 422 {object} middleware.ErrorEnvelope
// @Failure 429 {object} middleware.ErrorEnvelope
// @Failure 500 {object} middleware.ErrorEnvelope
// @Router /api/summarize/file [post]
func (h *summarizeFileHandler) Handle(c *fiber.Ctx) error {
	if n := c.Request().Header.ContentLength(); n > 0 && int64(n) > h.maxFileSize+formOverhead {
		return h.tooLarge()
	}

	form, err := c.MultipartForm()
	if err != nil {
		return &domainErrors.APIError{
			Kind:   domainErrors.KindValidation,
			Detail: "Request must be multipart/form-data",
			Err:    err,
		}
	}
	defer func() {
		if err := form.RemoveAll(); err != nil {
			h.requestLogger(c).WithError(err).Warn("failed to remove multipart temp files")
		}
	}()

	req, err := request.DecodeSummarizeFileRequest(form.Value)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	files := form.File[fileField]
	if len(files) == 0 {
		return domainErrors.NewValidation("file: field required")
	}
	header := files[0]
	if header.Size > h.maxFileSize {
		return h.tooLarge()
	}

	data, err := h.read(header)
	if err != nil {
		return err
	}

	kind, mime, ok := filetype.Sniff(data)
	log := h.requestLogger(c).WithFields(logrus.Fields{
		"filename":      header.Filename,
		"declared_type": header.Header.Get(fiber.HeaderContentType),
		"detected_type": mime,
		"size":          len(data),
		"domain":        req.Domain,
		"format":        req.Format,
	})
	if !ok {
		log.Debug("rejected upload with unsupported content type")
		return domainErrors.NewBadRequest("File type not allowed. Allowed types: pdf, docx, png, jpg, jpeg")
	}
	log.Debug("processing file upload")

	result, err := h.orchestrator.SummarizeDocument(c.UserContext(), kind, data, req.Options())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(SummaryResponse{Summary: result})
}

// read loads the upload, enforcing the size ceiling on the bytes actually
// read rather than the declared part size.
func (h *summarizeFileHandler) read(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, domainErrors.NewInternal(fmt.Errorf("open upload: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, domainErrors.NewInternal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, h.tooLarge()
	}
	if len(data) == 0 {
		return nil, domainErrors.NewBadRequest("File must not be empty")
	}
	return data, nil
}

func (h *summarizeFileHandler) tooLarge() error {
	return domainErrors.NewBadRequest(fmt.Sprintf(
		"File size too large. Maximum size allowed: %.1fMB", float64(h.maxFileSize)/1024/1024,
	))
}
