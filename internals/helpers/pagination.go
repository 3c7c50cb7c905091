package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Count      int   `json:"count"` // items on this page
}

type Paging struct {
	Page int
	Size int
}

// ResolvePaging reads ?page= and ?size= and normalizes them.
// size is clamped to [1, MaxSize]; page to >= 1.
func ResolvePaging(c *fiber.Ctx) Paging {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))
	if page < 1 {
		page = DefaultPage
	}
	size, err := strconv.Atoi(strings.TrimSpace(c.Query("size", strconv.Itoa(DefaultSize))))
	if err != nil || size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Paging{Page: page, Size: size}
}

// ClampPage pulls the page back to the last available one instead of
// returning an empty page. Never less than 1.
func ClampPage(page, size int, total int64) (clampedPage, totalPages int) {
	totalPages = int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page, totalPages
}

func BuildPagination(page, size int, total int64, count int) Pagination {
	_, totalPages := ClampPage(page, size, total)
	return Pagination{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Count:      count,
	}
}
