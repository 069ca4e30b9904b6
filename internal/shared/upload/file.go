package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxPhotoSize caps photos forwarded to the canteen API.
const MaxPhotoSize = 5 << 20

var ErrTooLarge = errors.New("file too large")

// File is an uploaded file held in memory until it is forwarded as multipart.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (f *File) Empty() bool {
	return f == nil || len(f.Content) == 0
}

// FromHeader reads a multipart file header. A nil header yields a nil file.
func FromHeader(header *multipart.FileHeader) (*File, error) {
	if header == nil || header.Size == 0 {
		return nil, nil
	}
	if header.Size > MaxPhotoSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, header.Filename, header.Size)
	}
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, MaxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(content) > MaxPhotoSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, header.Filename)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}
	return &File{Filename: header.Filename, ContentType: contentType, Content: content}, nil
}
