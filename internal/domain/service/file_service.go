package service

import (
	"context"
	"io"
)

// FileUploadService is the blob-storage boundary: upload yields a publicly
// addressable URL, delete removes by that URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
