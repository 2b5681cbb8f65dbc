package datasource

import (
	"fmt"
	"strings"
)

// Kinds of source a reference can point at.
const (
	KindFile = "file"
	KindWeb  = "web"
	KindS3   = "s3"
)

// Kind classifies a user-supplied reference: http(s) URLs are web, s3://
// URIs are s3, anything else is a local path.
func Kind(ref string) string {
	lower := strings.ToLower(strings.TrimSpace(ref))
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindWeb
	case strings.HasPrefix(lower, "s3://"):
		return KindS3
	default:
		return KindFile
	}
}

// ParseS3URI splits s3://bucket/key. key may be empty or end in "/" to
// name a prefix.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "s3://")
	if !ok {
		return "", "", invalidS3URI(uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", invalidS3URI(uri)
	}
	return bucket, key, nil
}

func invalidS3URI(uri string) error {
	return &DataSourceError{
		Source:  KindS3,
		Op:      "parse_uri",
		Code:    ErrCodeInvalidSource,
		Message: fmt.Sprintf("invalid s3 uri %q", uri),
	}
}
