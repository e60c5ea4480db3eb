package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("image exceeds the size limit")
	ErrUnsupportedType = errors.New("only JPEG/PNG images are allowed")
)

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

var allowedMIME = []string{"image/jpeg", "image/png"}

// File is an uploaded image before it is stored.
type File struct {
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromFileHeader adapts a parsed multipart part.
func FromFileHeader(fh *multipart.FileHeader) *File {
	return &File{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Storage persists image bytes and returns the reference products keep.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Uploader validates images and hands them to a Storage backend.
type Uploader struct {
	storage  Storage
	maxBytes int64
	now      func() time.Time
}

func NewUploader(storage Storage, maxBytes int64) *Uploader {
	return &Uploader{storage: storage, maxBytes: maxBytes, now: time.Now}
}

// Save checks size, extension and sniffed content, then stores the image
// under a generated name.
func (u *Uploader) Save(ctx context.Context, f *File) (string, error) {
	if f.Size > u.maxBytes {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}

	src, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Sniff the head, then replay it in front of the rest of the stream
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	detected := mimetype.Detect(head)
	if !mimetype.EqualsAny(detected.String(), allowedMIME...) {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("%d-%s%s", u.now().UnixMilli(), uuid.NewString(), ext)
	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(src, u.maxBytes-int64(n)+1))
	ref, err := u.storage.Put(ctx, name, body, f.Size, detected.String())
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return ref, nil
}

// Remove deletes a stored image. Empty refs are ignored.
func (u *Uploader) Remove(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	return u.storage.Remove(ctx, ref)
}
