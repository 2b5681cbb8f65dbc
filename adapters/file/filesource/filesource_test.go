package filesource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		content  string
		wantType string
	}{
		{name: "Text", file: "notes.txt", content: "hello", wantType: "text/plain"},
		{name: "HTML", file: "page.html", content: "<p>x</p>", wantType: "text/html"},
		{name: "PDF by extension", file: "doc.PDF", content: "%PDF", wantType: "application/pdf"},
		{name: "Unknown extension", file: "blob", content: "??", wantType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			docs, err := NewFileSource(path).Load(context.Background())
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, tt.content, string(docs[0].Data))
			assert.Equal(t, tt.wantType, docs[0].MediaType)
			assert.Equal(t, path, docs[0].Source)
			assert.Equal(t, tt.file, docs[0].Metadata["name"])
		})
	}
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "missing.txt")).Load(context.Background())
	var dsErr *datasource.DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, datasource.ErrCodeNotFound, dsErr.Code)
	assert.False(t, errors.Is(err, datasource.ErrNetwork))

	_, err = NewFileSource(dir).Load(context.Background())
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, datasource.ErrCodeInvalidSource, dsErr.Code)

	path := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))
	_, err = NewFileSource(path).Load(context.Background(), datasource.WithMaxBytes(5))
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, datasource.ErrCodeTooLarge, dsErr.Code)
}
