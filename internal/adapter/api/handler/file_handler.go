package handler

import (
	"mime/multipart"

	"neohand/internal/usecase"
	"neohand/pkg/errors"
	"neohand/pkg/response"

	"github.com/labstack/echo/v4"
)

type FileHandler struct {
	fileUseCase *usecase.FileUseCase
}

func NewFileHandler(fileUseCase *usecase.FileUseCase) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
	}
}

func toFileUpload(header *multipart.FileHeader) (usecase.FileUpload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return usecase.FileUpload{}, nil, errors.BadRequest("Failed to open uploaded file", err)
	}
	return usecase.FileUpload{
		Reader: file,
		Name:   header.Filename,
		Type:   header.Header.Get("Content-Type"),
		Size:   header.Size,
	}, func() { file.Close() }, nil
}

// UploadAttachments accepts a multipart form with a "files" field and stores
// every part as a chat attachment.
func (h *FileHandler) UploadAttachments(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	headers := form.File["files"]
	uploads := make([]usecase.FileUpload, 0, len(headers))
	var closers []func()
	defer func() {
		for _, closeFile := range closers {
			closeFile()
		}
	}()

	for _, header := range headers {
		upload, closeFile, err := toFileUpload(header)
		if err != nil {
			return response.Error(c, err)
		}
		closers = append(closers, closeFile)
		uploads = append(uploads, upload)
	}

	attachments, err := h.fileUseCase.UploadAttachments(c.Request().Context(), uploads)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, attachments)
}

// UploadProductImage accepts a single "file" part and returns its public URL.
func (h *FileHandler) UploadProductImage(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("A file part is required", err))
	}

	upload, closeFile, err := toFileUpload(header)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFile()

	url, err := h.fileUseCase.UploadProductImage(c.Request().Context(), upload)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]string{"url": url})
}

type deleteFileRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	var req deleteFileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.fileUseCase.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "File deleted"})
}
