// Package storage keeps uploaded product images and hands back their public URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotImage      = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

type ImageStore interface {
	Save(ctx context.Context, img Image) (string, error)
	Delete(ctx context.Context, url string) error
}

type Image struct {
	Key         string
	ContentType string
	Data        []byte
}

// ReadImage loads an uploaded file, checks its real content type and assigns
// it a fresh storage key. The multipart file is always closed.
func ReadImage(fh *multipart.FileHeader, maxBytes int64) (Image, error) {
	if fh.Size > maxBytes {
		return Image{}, fmt.Errorf("%w: %s", ErrImageTooLarge, fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return Image{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return readImage(f, fh.Filename, maxBytes)
}

func readImage(r io.Reader, name string, maxBytes int64) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return Image{}, fmt.Errorf("%w: %s", ErrImageTooLarge, name)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, fmt.Errorf("%w: %s (%s)", ErrNotImage, name, mt.String())
	}
	return Image{
		Key:         "products/" + uuid.NewString() + mt.Extension(),
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

func (img Image) Reader() io.ReadSeeker { return bytes.NewReader(img.Data) }

// DeleteAll removes every url, returning the joined errors.
func DeleteAll(ctx context.Context, store ImageStore, urls []string) error {
	var errs []error
	for _, u := range urls {
		if err := store.Delete(ctx, u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
