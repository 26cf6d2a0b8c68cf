package summary

type InputType string

const (
	InputText  InputType = "text"
	InputFile  InputType = "file"
	InputURL   InputType = "url"
	InputImage InputType = "image"
)

func (t InputType) Valid() bool {
	switch t {
	case InputText, InputFile, InputURL, InputImage:
		return true
	}
	return false
}

type Domain string

const (
	DomainAcademic  Domain = "academic"
	DomainLegal     Domain = "legal"
	DomainMedical   Domain = "medical"
	DomainResearch  Domain = "research"
	DomainCorporate Domain = "corporate"
)

func (d Domain) Valid() bool {
	_, ok := domainPrefixes[d]
	return ok
}

type Format string

const (
	FormatBullet    Format = "bullet"
	FormatParagraph Format = "paragraph"
	FormatDetailed  Format = "detailed"
)

func (f Format) Valid() bool {
	switch f {
	case FormatBullet, FormatParagraph, FormatDetailed:
		return true
	}
	return false
}

// DocumentKind is a sniffed upload type accepted by the file endpoint.
type DocumentKind string

const (
	DocumentPDF  DocumentKind = "pdf"
	DocumentDOCX DocumentKind = "docx"
	DocumentPNG  DocumentKind = "png"
	DocumentJPEG DocumentKind = "jpeg"
)

func (k DocumentKind) IsImage() bool {
	return k == DocumentPNG || k == DocumentJPEG
}

// Options are the presentation choices shared by every summary request.
type Options struct {
	Domain Domain
	Format Format
}
