package request

import (
	"fmt"

	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	domainErrors "github.com/NeuralTrust/UniSummarize/pkg/domain/errors"
	"github.com/mitchellh/mapstructure"
)

// SummarizeFileRequest holds the text fields of the multipart upload; the
// file part is read separately.
type SummarizeFileRequest struct {
	Domain string `mapstructure:"domain"`
	Format string `mapstructure:"format"`
}

// DecodeSummarizeFileRequest maps multipart form values onto the request,
// taking the first value of every field.
func DecodeSummarizeFileRequest(values map[string][]string) (*SummarizeFileRequest, error) {
	flat := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			flat[key] = v[0]
		}
	}
	var req SummarizeFileRequest
	if err := mapstructure.Decode(flat, &req); err != nil {
		return nil, domainErrors.NewValidation(fmt.Sprintf("invalid form fields: %v", err))
	}
	return &req, nil
}

func (r *SummarizeFileRequest) Validate() error {
	return validateOptions(r.Domain, r.Format)
}

func (r *SummarizeFileRequest) Options() summary.Options {
	return summary.Options{Domain: summary.Domain(r.Domain), Format: summary.Format(r.Format)}
}
