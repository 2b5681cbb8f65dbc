package extract

import "unicode/utf8"

func extractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", decodeError(MediaText, "content is not valid UTF-8", nil)
	}
	return string(data), nil
}
