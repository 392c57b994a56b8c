package usecase

import (
	"context"
	"fmt"
	"io"

	"neohand/internal/domain/entity"
	"neohand/internal/domain/service"
	"neohand/pkg/errors"
)

const (
	// MaxUploadFiles caps how many attachments one message may carry.
	MaxUploadFiles = 5
	// MaxUploadSize caps each attachment's size in bytes.
	MaxUploadSize = 5 * 1024 * 1024
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
	"application/pdf": true,
}

// FileUpload is one pending attachment: content plus the metadata the client
// reported for it.
type FileUpload struct {
	Reader io.Reader
	Name   string
	Type   string
	Size   int64
}

type FileUseCase struct {
	storage service.FileUploadService
}

func NewFileUseCase(storage service.FileUploadService) *FileUseCase {
	return &FileUseCase{storage: storage}
}

// UploadAttachments validates every file before uploading any of them, so a
// rejected batch leaves no orphaned blobs behind.
func (uc *FileUseCase) UploadAttachments(ctx context.Context, uploads []FileUpload) ([]entity.Attachment, error) {
	if len(uploads) == 0 {
		return nil, errors.BadRequest("No files provided", nil)
	}
	if len(uploads) > MaxUploadFiles {
		return nil, errors.BadRequest(fmt.Sprintf("At most %d files per message", MaxUploadFiles), nil)
	}
	for _, u := range uploads {
		if u.Size > MaxUploadSize {
			return nil, errors.BadRequest(fmt.Sprintf("File %q exceeds the %d byte limit", u.Name, MaxUploadSize), nil)
		}
		if !allowedUploadTypes[u.Type] {
			return nil, errors.BadRequest(fmt.Sprintf("File type %q is not allowed", u.Type), nil)
		}
	}

	attachments := make([]entity.Attachment, 0, len(uploads))
	for _, u := range uploads {
		url, err := uc.storage.UploadFile(ctx, u.Reader, u.Type, "chat-attachments")
		if err != nil {
			return nil, errors.Internal("Failed to upload attachment", err)
		}
		attachments = append(attachments, entity.Attachment{
			URL:  url,
			Name: u.Name,
			Type: u.Type,
			Size: u.Size,
		})
	}
	return attachments, nil
}

// UploadProductImage stores one product image and returns its public URL.
func (uc *FileUseCase) UploadProductImage(ctx context.Context, upload FileUpload) (string, error) {
	if upload.Size > MaxUploadSize {
		return "", errors.BadRequest(fmt.Sprintf("File %q exceeds the %d byte limit", upload.Name, MaxUploadSize), nil)
	}
	if !allowedUploadTypes[upload.Type] {
		return "", errors.BadRequest(fmt.Sprintf("File type %q is not allowed", upload.Type), nil)
	}
	url, err := uc.storage.UploadFile(ctx, upload.Reader, upload.Type, "product-images")
	if err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}
	return url, nil
}

// DeleteFile removes a stored blob by its public URL.
func (uc *FileUseCase) DeleteFile(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return errors.BadRequest("File URL is required", nil)
	}
	return uc.storage.DeleteFile(ctx, fileURL)
}
