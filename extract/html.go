package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Elements whose text never reaches the reader.
const hiddenElements = "script, style, noscript, template"

// extractHTML returns the document's text nodes in document order, one per
// line. Whitespace-only nodes are dropped; the rest are kept verbatim.
func extractHTML(data []byte) (string, error) {
	data, err := decodeHTML(data)
	if err != nil {
		return "", decodeError(MediaHTML, "failed to decode html charset", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", decodeError(MediaHTML, "failed to parse html", err)
	}

	doc.Find(hiddenElements).Remove()

	var texts []string
	for _, n := range doc.Nodes {
		collectText(n, &texts)
	}

	return strings.Join(texts, "\n"), nil
}

func collectText(n *html.Node, texts *[]string) {
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) != "" {
			*texts = append(*texts, n.Data)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, texts)
	}
}

var utf8BOM = []byte("\xef\xbb\xbf")

// decodeHTML converts data to UTF-8. A byte order mark decides the charset,
// then a <meta> declaration. A page that is already valid UTF-8 is kept as
// is even when its declaration says otherwise; anything else without a
// declaration is read as windows-1252.
func decodeHTML(data []byte) ([]byte, error) {
	e, name, certain := charset.DetermineEncoding(data, string(MediaHTML))
	if name != "utf-8" && (certain || !utf8.Valid(data)) {
		decoded, err := e.NewDecoder().Bytes(data)
		if err != nil {
			return nil, err
		}
		data = decoded
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}
