package helper

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"langschool_backend/internals/constants"
)

// ValidateProofUpload enforces the proof upload allow-list and size cap.
func ValidateProofUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is missing")
	}
	if fh.Size > constants.MaxProofUploadSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large (max %d MB)", constants.MaxProofUploadSize/(1024*1024)))
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !constants.AllowedProofExtensions[ext] {
		return fiber.NewError(fiber.StatusUnsupportedMediaType,
			"Unsupported file type (use jpg/png/webp/pdf)")
	}
	return nil
}
