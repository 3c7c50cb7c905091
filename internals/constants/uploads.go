package constants

import (
	"path/filepath"
	"strings"
)

// Allow-list for payment proof uploads (images + pdf).
var AllowedProofExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

const MaxProofUploadSize = int64(5 * 1024 * 1024) // 5MB

func IsImageExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}
