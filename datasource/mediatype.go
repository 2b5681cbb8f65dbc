package datasource

import (
	"mime"
	"path"
	"strings"
)

var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".html": "text/html",
	".htm":  "text/html",
}

// ParseContentType reduces a Content-Type header to its bare media type:
// "Text/HTML; charset=utf-8" becomes "text/html". Media types are case
// insensitive on the wire, so the result is lower-cased before the
// extractor's exact match.
func ParseContentType(header string) string {
	mt, _, _ := strings.Cut(header, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// GuessMediaType guesses a media type from a file name or URL path. It
// returns "" when the extension is unknown.
func GuessMediaType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return ""
	}
	if mt, ok := extensionTypes[ext]; ok {
		return mt
	}
	return ParseContentType(mime.TypeByExtension(ext))
}
