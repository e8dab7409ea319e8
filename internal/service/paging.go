package service

import "github.com/Dan9191/kos-service/internal/models"

// Pagination bounds for listings
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// clampPage applies the listing defaults and returns the row offset
func clampPage(page, limit int) (int, int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}

func newPage[T any](items []T, total int64, page, limit int) *models.Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.Page[T]{
		Items: items,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
	}
}
