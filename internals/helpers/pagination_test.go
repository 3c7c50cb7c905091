package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, query string) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Paging
	}{
		{"defaults", "", Paging{Page: 1, Size: 20}},
		{"explicit", "?page=3&size=50", Paging{Page: 3, Size: 50}},
		{"zero page", "?page=0", Paging{Page: 1, Size: 20}},
		{"negative size", "?size=-5", Paging{Page: 1, Size: 20}},
		{"oversized", "?size=1000", Paging{Page: 1, Size: 100}},
		{"garbage", "?page=abc&size=xyz", Paging{Page: 1, Size: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveFor(t, tt.query))
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name                string
		page, size          int
		total               int64
		wantPage, wantPages int
	}{
		{"within range", 2, 20, 100, 2, 5},
		{"past the end", 9, 20, 45, 3, 3},
		{"empty set", 5, 20, 0, 1, 1},
		{"exact boundary", 3, 20, 60, 3, 3},
		{"single partial page", 1, 20, 7, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pages := ClampPage(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPages, pages)
		})
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 45, 20)
	assert.Equal(t, Pagination{
		Page: 2, Size: 20, Total: 45, TotalPages: 3,
		HasNext: true, HasPrev: true, Count: 20,
	}, p)

	last := BuildPagination(3, 20, 45, 5)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	only := BuildPagination(1, 20, 0, 0)
	assert.False(t, only.HasNext)
	assert.False(t, only.HasPrev)
}
