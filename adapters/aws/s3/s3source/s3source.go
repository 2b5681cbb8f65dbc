package s3source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/Abraxas-365/inputassist/storage"
)

// S3Source loads one object, or every object under a prefix when key is
// empty or ends in "/".
type S3Source struct {
	store  storage.ObjectStore
	bucket string
	key    string
}

func NewS3Source(store storage.ObjectStore, bucket, key string) *S3Source {
	return &S3Source{
		store:  store,
		bucket: bucket,
		key:    key,
	}
}

func (s *S3Source) isPrefix() bool {
	return s.key == "" || strings.HasSuffix(s.key, "/")
}

func (s *S3Source) Load(ctx context.Context, opts ...datasource.Option) ([]datasource.Document, error) {
	options := datasource.NewLoadOptions(opts...)

	if !s.isPrefix() {
		doc, err := s.loadObject(ctx, s.key, options)
		if err != nil {
			return nil, err
		}
		return []datasource.Document{doc}, nil
	}

	objects, err := s.store.List(ctx, s.key, storage.WithRecursive(options.Recursive))
	if err != nil {
		return nil, s.wrap("Load", err, "failed to list objects")
	}

	var documents []datasource.Document
	for _, obj := range objects {
		if options.Full(len(documents)) {
			break
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		metadata := map[string]interface{}{
			"key":           obj.Key,
			"last_modified": obj.LastModified,
			"size":          obj.Size,
			"etag":          obj.ETag,
		}
		if !options.Accept(metadata) {
			continue
		}

		doc, err := s.loadObject(ctx, obj.Key, options)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, nil
}

func (s *S3Source) loadObject(ctx context.Context, key string, options *datasource.LoadOptions) (datasource.Document, error) {
	info, err := s.store.Stat(ctx, key)
	if err != nil {
		return datasource.Document{}, s.wrap("loadObject", err, "failed to stat object")
	}
	if options.TooLarge(info.Size) {
		return datasource.Document{}, &datasource.DataSourceError{
			Source:  "s3",
			Op:      "loadObject",
			Code:    datasource.ErrCodeTooLarge,
			Message: fmt.Sprintf("object %s is %d bytes, limit is %d", key, info.Size, options.MaxBytes),
		}
	}

	body, err := s.store.Get(ctx, key)
	if err != nil {
		return datasource.Document{}, s.wrap("loadObject", err, "failed to get object")
	}
	defer body.Close()

	var r io.Reader = body
	if options.MaxBytes > 0 {
		r = io.LimitReader(body, options.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return datasource.Document{}, &datasource.DataSourceError{
			Source:  "s3",
			Op:      "loadObject",
			Err:     err,
			Code:    datasource.ErrCodeNetwork,
			Message: "failed to read object content",
		}
	}
	if options.TooLarge(int64(len(data))) {
		return datasource.Document{}, &datasource.DataSourceError{
			Source:  "s3",
			Op:      "loadObject",
			Code:    datasource.ErrCodeTooLarge,
			Message: fmt.Sprintf("object %s exceeds %d bytes", key, options.MaxBytes),
		}
	}

	return datasource.Document{
		Data:      data,
		MediaType: mediaType(info.ContentType, key),
		Source:    "s3://" + s.bucket + "/" + key,
		Metadata: map[string]interface{}{
			"key":           key,
			"last_modified": info.LastModified,
			"size":          info.Size,
			"etag":          info.ETag,
			"content_type":  info.ContentType,
		},
	}, nil
}

// mediaType prefers the stored Content-Type and falls back to the key's
// extension when the object was uploaded as generic binary.
func mediaType(contentType, key string) string {
	mt := datasource.ParseContentType(contentType)
	switch mt {
	case "", "application/octet-stream", "binary/octet-stream":
		return datasource.GuessMediaType(key)
	}
	return mt
}

func (s *S3Source) wrap(op string, err error, message string) error {
	code := datasource.ErrCodeNetwork
	var se *storage.StorageError
	if errors.As(err, &se) {
		switch se.Code {
		case storage.ErrCodeNotFound:
			code = datasource.ErrCodeNotFound
		case storage.ErrCodePermissionDenied:
			code = datasource.ErrCodeAccessDenied
		}
	}
	return &datasource.DataSourceError{
		Source:  "s3",
		Op:      op,
		Err:     err,
		Code:    code,
		Message: message,
	}
}
