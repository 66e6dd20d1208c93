package imagestore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyKeepsExtension(t *testing.T) {
	key := NewKey("Photo.JPG")

	assert.True(t, strings.HasPrefix(key, Folder+"/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, NewKey("Photo.JPG"))
}

func TestFakeStore(t *testing.T) {
	ctx := context.Background()
	f := NewFakeStore()

	url, err := f.Put(ctx, "a.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, f.Has(url))

	require.NoError(t, f.Delete(ctx, url))
	assert.False(t, f.Has(url))
	assert.NoError(t, f.Delete(ctx, "memory://unknown"))
}

func TestS3KeyFromURL(t *testing.T) {
	s := &S3Store{publicURL: "https://cdn.example.com/"}

	key, ok := s.keyFromURL("https://cdn.example.com/articles/x.png")
	assert.True(t, ok)
	assert.Equal(t, "articles/x.png", key)

	_, ok = s.keyFromURL("https://elsewhere.example.com/articles/x.png")
	assert.False(t, ok)
}
