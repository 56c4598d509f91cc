package util

import (
	"math"
	"strconv"
	"strings"

	"foodplaces/places-service/internal/app/places/entity"
)

const (
	DefaultPageNum  = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPageNum ограничивает номер страницы так, чтобы Skip не переполнялся
	MaxPageNum = math.MaxInt32
)

// Page - нормализованные параметры пагинации
type Page struct {
	Num  int
	Size int
}

// NormalizePage приводит номер и размер страницы к допустимым значениям
func NormalizePage(pageNum, pageSize int) Page {
	if pageNum < 1 {
		pageNum = DefaultPageNum
	}
	if pageNum > MaxPageNum {
		pageNum = MaxPageNum
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Page{Num: pageNum, Size: pageSize}
}

// ParsePage разбирает параметры pn/ps из запроса.
// Отсутствующие и нечисловые значения заменяются значениями по умолчанию независимо друг от друга
func ParsePage(rawNum, rawSize string) Page {
	pageNum, err := strconv.Atoi(strings.TrimSpace(rawNum))
	if err != nil {
		pageNum = DefaultPageNum
	}
	pageSize, err := strconv.Atoi(strings.TrimSpace(rawSize))
	if err != nil {
		pageSize = DefaultPageSize
	}
	return NormalizePage(pageNum, pageSize)
}

func (p Page) Skip() int64 {
	return int64(p.Num-1) * int64(p.Size)
}

func (p Page) Limit() int64 {
	return int64(p.Size)
}

// ComputePagination считает блок пагинации, total_pages округляется вверх
func ComputePagination(totalItems int64, page Page) entity.Pagination {
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((totalItems + int64(page.Size) - 1) / int64(page.Size))
	}
	return entity.Pagination{
		CurrentPage: page.Num,
		TotalPages:  totalPages,
		PageSize:    page.Size,
		TotalItems:  totalItems,
	}
}
