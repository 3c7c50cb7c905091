package oss

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Bukti Transfer Maret", "bukti-transfer-maret"},
		{"receipt_2025.final", "receipt-2025final"},
		{"  Mixed CASE  ", "mixed-case"},
		{"///***", "file"},
		{"", "file"},
		{"already-clean-123", "already-clean-123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestBuildObjectKey(t *testing.T) {
	s := &Service{Prefix: "uploads"}
	key := s.BuildObjectKey("payment-checks", "Bukti Transfer.JPG")

	assert.True(t, strings.HasPrefix(key, "uploads/payment-checks/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	name := key[strings.LastIndex(key, "/")+1:]
	re := regexp.MustCompile(`^bukti-transfer_\d{8}_\d{6}_[0-9a-f]{6}\.jpg$`)
	assert.Regexp(t, re, name)
}

func TestBuildObjectKey_NoPrefixNoDir(t *testing.T) {
	s := &Service{}
	key := s.BuildObjectKey("", "doc.pdf")
	assert.NotContains(t, key, "//")
	assert.False(t, strings.HasPrefix(key, "/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(assert.AnError))
}
