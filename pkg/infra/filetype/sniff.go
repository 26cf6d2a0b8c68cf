package filetype

import (
	"github.com/NeuralTrust/UniSummarize/pkg/app/summary"
	"github.com/gabriel-vasile/mimetype"
)

// SniffLength is how many leading bytes are inspected.
const SniffLength = 2048

var allowed = map[string]summary.DocumentKind{
	"application/pdf": summary.DocumentPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": summary.DocumentDOCX,
	"image/png":  summary.DocumentPNG,
	"image/jpeg": summary.DocumentJPEG,
}

// Sniff detects the upload's type from its content, ignoring the client's
// filename and Content-Type. ok is false for anything not accepted.
func Sniff(data []byte) (kind summary.DocumentKind, mime string, ok bool) {
	head := data
	if len(head) > SniffLength {
		head = head[:SniffLength]
	}
	detected := mimetype.Detect(head)
	for m := detected; m != nil; m = m.Parent() {
		if kind, ok := allowed[m.String()]; ok {
			return kind, detected.String(), true
		}
	}
	return "", detected.String(), false
}
