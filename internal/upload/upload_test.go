package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func memFile(name string, data []byte) *File {
	return &File{
		Filename: name,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func newLocal(t *testing.T) (*Uploader, *LocalStorage) {
	t.Helper()
	storage, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), "uploads")
	require.NoError(t, err)
	return NewUploader(storage, 1024*1024), storage
}

func TestSaveAcceptsPNGAndJPEG(t *testing.T) {
	uploader, storage := newLocal(t)

	for name, data := range map[string][]byte{"photo.PNG": pngBytes(t), "photo.jpeg": jpegBytes(t)} {
		ref, err := uploader.Save(context.Background(), memFile(name, data))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(ref, "/uploads/"), ref)

		stored, err := os.ReadFile(filepath.Join(storage.Dir(), filepath.Base(ref)))
		require.NoError(t, err)
		assert.Equal(t, data, stored)
	}
}

func TestSaveRejectsDisguisedFile(t *testing.T) {
	uploader, _ := newLocal(t)

	_, err := uploader.Save(context.Background(), memFile("notes.png", []byte("plain text, not an image")))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsExtension(t *testing.T) {
	uploader, _ := newLocal(t)

	_, err := uploader.Save(context.Background(), memFile("photo.gif", pngBytes(t)))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsOversize(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	uploader := NewUploader(storage, 10)

	_, err = uploader.Save(context.Background(), memFile("photo.png", pngBytes(t)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLocalRemove(t *testing.T) {
	uploader, storage := newLocal(t)
	ctx := context.Background()

	ref, err := uploader.Save(ctx, memFile("photo.png", pngBytes(t)))
	require.NoError(t, err)

	require.NoError(t, uploader.Remove(ctx, ref))
	_, err = os.Stat(filepath.Join(storage.Dir(), filepath.Base(ref)))
	assert.True(t, os.IsNotExist(err))

	// gone already, foreign refs and empty refs are no-ops
	assert.NoError(t, uploader.Remove(ctx, ref))
	assert.NoError(t, uploader.Remove(ctx, "https://cdn.example.com/x.png"))
	assert.NoError(t, uploader.Remove(ctx, ""))
}

func TestMinioPublicBase(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", publicBase(MinioConfig{Endpoint: "localhost:9000"}))
	assert.Equal(t, "https://s3.local", publicBase(MinioConfig{Endpoint: "s3.local", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com", publicBase(MinioConfig{Endpoint: "s3.local", PublicURL: "https://cdn.example.com/"}))

	s := &MinioStorage{bucket: "catalog", base: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/catalog/products/a.png", s.objectURL("products/a.png"))
}
