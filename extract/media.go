package extract

// MediaType names one of the content types the extractor understands.
type MediaType string

const (
	MediaPDF  MediaType = "application/pdf"
	MediaDOCX MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaText MediaType = "text/plain"
	MediaHTML MediaType = "text/html"
)

// MediaTypes lists every supported type.
var MediaTypes = []MediaType{MediaPDF, MediaDOCX, MediaText, MediaHTML}

// ParseMediaType matches s exactly against the supported types. Parameters
// such as "; charset=utf-8" must already be stripped.
func ParseMediaType(s string) (MediaType, error) {
	for _, mt := range MediaTypes {
		if string(mt) == s {
			return mt, nil
		}
	}
	return "", &UnsupportedTypeError{MediaType: s}
}

func (mt MediaType) String() string {
	return string(mt)
}
