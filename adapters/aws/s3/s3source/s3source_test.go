package s3source

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/Abraxas-365/inputassist/datasource"
	"github.com/Abraxas-365/inputassist/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object struct {
	body        string
	contentType string
}

type fakeStore struct {
	objects map[string]object
	failGet bool
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.failGet {
		return nil, storage.NewStorageError("Get", key, errors.New("connection reset"), storage.ErrCodeInternal, "failed to get object")
	}
	obj, ok := f.objects[key]
	if !ok {
		return nil, storage.NewStorageError("Get", key, nil, storage.ErrCodeNotFound, "object not found")
	}
	return io.NopCloser(strings.NewReader(obj.body)), nil
}

func (f *fakeStore) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	obj, ok := f.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.NewStorageError("Stat", key, nil, storage.ErrCodeNotFound, "object not found")
	}
	return storage.ObjectInfo{Key: key, Size: int64(len(obj.body)), ContentType: obj.contentType}, nil
}

func (f *fakeStore) List(ctx context.Context, prefix string, options ...storage.ListOption) ([]storage.ObjectInfo, error) {
	opts := storage.NewListOptions(options...)
	var keys []string
	for key := range f.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if !opts.Recursive && strings.Contains(strings.TrimPrefix(key, prefix), "/") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	infos := make([]storage.ObjectInfo, len(keys))
	for i, key := range keys {
		infos[i] = storage.ObjectInfo{Key: key, Size: int64(len(f.objects[key].body))}
	}
	return infos, nil
}

func newStore() *fakeStore {
	return &fakeStore{objects: map[string]object{
		"docs/a.txt":       {body: "alpha", contentType: "text/plain; charset=utf-8"},
		"docs/b.html":      {body: "<p>b</p>", contentType: "application/octet-stream"},
		"docs/sub/c.txt":   {body: "charlie"},
		"docs/empty-dir/":  {},
		"other/readme.txt": {body: "other"},
	}}
}

func TestS3Source_LoadObject(t *testing.T) {
	src := NewS3Source(newStore(), "bucket", "docs/a.txt")

	docs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "alpha", string(docs[0].Data))
	assert.Equal(t, "text/plain", docs[0].MediaType)
	assert.Equal(t, "s3://bucket/docs/a.txt", docs[0].Source)
}

func TestS3Source_MediaTypeFallback(t *testing.T) {
	docs, err := NewS3Source(newStore(), "bucket", "docs/b.html").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "text/html", docs[0].MediaType)

	docs, err = NewS3Source(newStore(), "bucket", "docs/sub/c.txt").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "text/plain", docs[0].MediaType)
}

func TestS3Source_LoadPrefix(t *testing.T) {
	src := NewS3Source(newStore(), "bucket", "docs/")

	docs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "s3://bucket/docs/a.txt", docs[0].Source)

	docs, err = src.Load(context.Background(), datasource.WithRecursive(false))
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = src.Load(context.Background(), datasource.WithMaxItems(1))
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = src.Load(context.Background(), datasource.WithFilter(func(m map[string]interface{}) bool {
		return strings.HasSuffix(m["key"].(string), ".html")
	}))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "<p>b</p>", string(docs[0].Data))
}

func TestS3Source_Errors(t *testing.T) {
	_, err := NewS3Source(newStore(), "bucket", "missing.txt").Load(context.Background())
	var dsErr *datasource.DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, datasource.ErrCodeNotFound, dsErr.Code)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	_, err = NewS3Source(newStore(), "bucket", "docs/a.txt").Load(context.Background(), datasource.WithMaxBytes(2))
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, datasource.ErrCodeTooLarge, dsErr.Code)

	store := newStore()
	store.failGet = true
	_, err = NewS3Source(store, "bucket", "docs/a.txt").Load(context.Background())
	assert.True(t, errors.Is(err, datasource.ErrNetwork))
}
