package request

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
)

const wrongEndpointDetail = "Invalid input type for this endpoint. Use /api/summarize/file for file uploads."

type SummarizeRequest struct {
	InputType string  `json:"input_type"` // @required
	Content   *string `json:"content"`    // @required
	Domain    string  `json:"domain"`     // @required
	Format    string  `json:"format"`     // @required
}

// Validate reports schema problems as validation errors and semantic ones
// (wrong input type for this route, blank content) as bad requests.
func (r *SummarizeRequest) Validate() error {
	if r.InputType == "" {
		return domainErrors.NewValidation("input_type: field required")
	}
	if r.Content == nil {
		return domainErrors.NewValidation("content: field required")
	}
	if err := validateOptions(r.Domain, r.Format); err != nil {
		return err
	}

	inputType := summary.InputType(r.InputType)
	if !inputType.Valid() {
		return domainErrors.NewValidation(fmt.Sprintf("input_type: unsupported value %q", r.InputType))
	}
	if inputType != summary.InputText && inputType != summary.InputURL {
		return domainErrors.NewBadRequest(wrongEndpointDetail)
	}
	if strings.TrimSpace(*r.Content) == "" {
		return domainErrors.NewBadRequest("Content must not be empty")
	}
	return nil
}

func (r *SummarizeRequest) Options() summary.Options {
	return summary.Options{Domain: summary.Domain(r.Domain), Format: summary.Format(r.Format)}
}

func validateOptions(domain, format string) error {
	if domain == "" {
		return domainErrors.NewValidation("domain: field required")
	}
	if !summary.Domain(domain).Valid() {
		return domainErrors.NewValidation(fmt.Sprintf("domain: unsupported value %q", domain))
	}
	if format == "" {
		return domainErrors.NewValidation("format: field required")
	}
	if !summary.Format(format).Valid() {
		return domainErrors.NewValidation(fmt.Sprintf("format: unsupported value %q", format))
	}
	return nil
}
