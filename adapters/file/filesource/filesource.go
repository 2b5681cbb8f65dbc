package filesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/inputassist/datasource"
)

// FileSource reads a single local file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Load(ctx context.Context, opts ...datasource.Option) ([]datasource.Document, error) {
	options := datasource.NewLoadOptions(opts...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return nil, f.wrapError("Load", err, "failed to stat file")
	}
	if info.IsDir() {
		return nil, &datasource.DataSourceError{
			Source:  "file",
			Op:      "Load",
			Code:    datasource.ErrCodeInvalidSource,
			Message: f.path + " is a directory",
		}
	}
	if options.TooLarge(info.Size()) {
		return nil, &datasource.DataSourceError{
			Source:  "file",
			Op:      "Load",
			Code:    datasource.ErrCodeTooLarge,
			Message: fmt.Sprintf("%s is %d bytes, limit is %d", f.path, info.Size(), options.MaxBytes),
		}
	}

	metadata := map[string]interface{}{
		"path":          f.path,
		"name":          filepath.Base(f.path),
		"size":          info.Size(),
		"last_modified": info.ModTime(),
	}
	if !options.Accept(metadata) {
		return nil, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, f.wrapError("Load", err, "failed to read file")
	}

	return []datasource.Document{{
		Data:      data,
		MediaType: datasource.GuessMediaType(f.path),
		Source:    f.path,
		Metadata:  metadata,
	}}, nil
}

func (f *FileSource) wrapError(op string, err error, message string) error {
	code := datasource.ErrCodeInternal
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = datasource.ErrCodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = datasource.ErrCodeAccessDenied
	}
	return &datasource.DataSourceError{
		Source:  "file",
		Op:      op,
		Err:     err,
		Code:    code,
		Message: message,
	}
}
