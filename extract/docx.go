package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart = "word/document.xml"
)

// extractDOCX returns the text of every paragraph directly under the
// document body, each followed by "\n". Paragraphs inside tables and text
// boxes are not body paragraphs and are skipped.
func extractDOCX(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", decodeError(MediaDOCX, "open package", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == documentPart {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", decodeError(MediaDOCX, documentPart+" not found in package", nil)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", decodeError(MediaDOCX, "open "+documentPart, err)
	}
	defer rc.Close()

	return readBodyParagraphs(xml.NewDecoder(rc))
}

func readBodyParagraphs(decoder *xml.Decoder) (string, error) {
	var (
		out   strings.Builder
		stack []string
		// depth of w:p elements open inside the current body paragraph
		inPara int
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", decodeError(MediaDOCX, "parse "+documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := ""
			if t.Name.Space == wordNS {
				name = t.Name.Local
			}

			if name == "p" {
				if inPara == 0 && parent() == "body" {
					inPara = 1
				} else if inPara > 0 {
					inPara++
				}
			}

			if inPara == 1 && parent() == "r" {
				switch name {
				case "tab", "ptab":
					out.WriteByte('\t')
				case "br":
					if breakType(t) == "" || breakType(t) == "textWrapping" {
						out.WriteByte('\n')
					}
				case "cr":
					out.WriteByte('\n')
				case "noBreakHyphen":
					out.WriteByte('-')
				}
			}

			stack = append(stack, name)

		case xml.CharData:
			if inPara == 1 && parent() == "t" && len(stack) >= 2 && stack[len(stack)-2] == "r" {
				out.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if name == "p" && inPara > 0 {
				inPara--
				if inPara == 0 {
					out.WriteByte('\n')
				}
			}
		}
	}

	return out.String(), nil
}

func breakType(el xml.StartElement) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == "type" {
			return attr.Value
		}
	}
	return ""
}
