package helper

import (
	"mime/multipart"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langschool_backend/internals/constants"
)

func TestValidateProofUpload(t *testing.T) {
	tests := []struct {
		name     string
		fh       *multipart.FileHeader
		wantCode int // 0 = ok
	}{
		{"jpg ok", &multipart.FileHeader{Filename: "receipt.jpg", Size: 1024}, 0},
		{"pdf ok", &multipart.FileHeader{Filename: "invoice.PDF", Size: 2048}, 0},
		{"webp ok", &multipart.FileHeader{Filename: "scan.webp", Size: 500}, 0},
		{"nil header", nil, fiber.StatusBadRequest},
		{"too large", &multipart.FileHeader{Filename: "big.png", Size: constants.MaxProofUploadSize + 1}, fiber.StatusRequestEntityTooLarge},
		{"exe rejected", &multipart.FileHeader{Filename: "virus.exe", Size: 10}, fiber.StatusUnsupportedMediaType},
		{"no extension", &multipart.FileHeader{Filename: "payment", Size: 10}, fiber.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProofUpload(tt.fh)
			if tt.wantCode == 0 {
				assert.NoError(t, err)
				return
			}
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantCode, fe.Code)
		})
	}
}

func TestValidateProofUpload_SizeBoundary(t *testing.T) {
	fh := &multipart.FileHeader{Filename: "edge.jpg", Size: constants.MaxProofUploadSize}
	assert.NoError(t, ValidateProofUpload(fh))
}
