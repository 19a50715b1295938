package media

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	uploads   int
	destroyed []string
	failAt    int
}

func (r *recordingUploader) Upload(ctx context.Context, payload, folder string) (*UploadResult, error) {
	r.uploads++
	if r.failAt != 0 && r.uploads == r.failAt {
		return nil, fmt.Errorf("upload rejected")
	}
	id := fmt.Sprintf("asset-%d", r.uploads)
	return &UploadResult{URL: "https://media.test/" + id + ".jpg", PublicID: id}, nil
}

func (r *recordingUploader) Destroy(ctx context.Context, publicID string) error {
	r.destroyed = append(r.destroyed, publicID)
	return nil
}

func TestIsHostedURL(t *testing.T) {
	assert.True(t, IsHostedURL("https://cdn.example.com/a.jpg"))
	assert.True(t, IsHostedURL("http://cdn.example.com/a.jpg"))
	assert.False(t, IsHostedURL("data:image/png;base64,AAAA"))
	assert.False(t, IsHostedURL("raw-bytes"))
}

func TestResolveImagesPassesHostedThrough(t *testing.T) {
	up := &recordingUploader{}

	urls, _, err := ResolveImages(context.Background(), up, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
	}, "folder")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
	}, urls)
	assert.Equal(t, 0, up.uploads)
}

func TestResolveImagesPreservesOrder(t *testing.T) {
	up := &recordingUploader{}

	urls, _, err := ResolveImages(context.Background(), up, []string{
		"inline-one",
		"https://cdn.example.com/a.jpg",
		"inline-two",
	}, "folder")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://media.test/asset-1.jpg",
		"https://cdn.example.com/a.jpg",
		"https://media.test/asset-2.jpg",
	}, urls)
	assert.Equal(t, 2, up.uploads)
}

func TestResolveImagesFailureDestroysOwnUploads(t *testing.T) {
	up := &recordingUploader{failAt: 3}

	_, _, err := ResolveImages(context.Background(), up, []string{
		"inline-one",
		"inline-two",
		"inline-three",
	}, "folder")

	require.Error(t, err)
	assert.Equal(t, []string{"asset-1", "asset-2"}, up.destroyed,
		"only the batch's finished uploads are torn down")
}

func TestResolveImagesRollbackDestroysUploads(t *testing.T) {
	up := &recordingUploader{}

	_, rollback, err := ResolveImages(context.Background(), up, []string{
		"https://cdn.example.com/a.jpg",
		"inline-one",
		"inline-two",
	}, "folder")
	require.NoError(t, err)
	require.Empty(t, up.destroyed)

	rollback()
	assert.Equal(t, []string{"asset-1", "asset-2"}, up.destroyed,
		"hosted pass-throughs are never destroyed")
}
