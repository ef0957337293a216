package catalog

import (
	"strconv"
	"strings"

	"github.com/wyu6609/pokedex/pkg/model"
)

const (
	AllTypes        = "all"
	DefaultPageSize = 24
)

// FilterByType keeps the pokemon carrying the given type tag in either slot.
// An empty tag or "all" returns the list itself.
func FilterByType(list []model.Pokemon, typ string) []model.Pokemon {
	if typ == "" || typ == AllTypes {
		return list
	}

	filtered := make([]model.Pokemon, 0, len(list))
	for i := range list {
		if list[i].HasType(typ) {
			filtered = append(filtered, list[i])
		}
	}

	return filtered
}

// Search matches the query as a case-insensitive substring of the name, or as a
// substring of the decimal id. The query is never parsed as a number.
func Search(list []model.Pokemon, query string) []model.Pokemon {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return list
	}

	found := make([]model.Pokemon, 0, len(list))
	for i := range list {
		name := strings.ToLower(list[i].Name)
		id := strconv.Itoa(list[i].ID)
		if strings.Contains(name, term) || strings.Contains(id, term) {
			found = append(found, list[i])
		}
	}

	return found
}

type Page[T any] struct {
	Items       []T
	TotalItems  int
	TotalPages  int
	CurrentPage int
	StartIndex  int
	EndIndex    int
}

func (p Page[T]) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Paginate slices out the 1-based page. Pages outside [1, TotalPages] come back
// empty; clamping navigation is the caller's job.
func Paginate[T any](list []T, page int, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(list)
	p := Page[T]{
		TotalItems:  total,
		TotalPages:  (total + pageSize - 1) / pageSize,
		CurrentPage: page,
	}

	start := clamp((page-1)*pageSize, 0, total)
	end := clamp(page*pageSize, 0, total)
	if page < 1 {
		start, end = 0, 0
	}

	p.StartIndex = start
	p.EndIndex = end
	p.Items = list[start:end:end]

	return p
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

// Ellipsis marks a gap in the output of PageNumbers.
const Ellipsis = 0

const maxPagesShown = 5

// PageNumbers lists the page buttons to show around the current page, with
// Ellipsis standing in for skipped ranges.
func PageNumbers(current int, total int) []int {
	pages := make([]int, 0, maxPagesShown+2)
	switch {
	case total <= 0:
		return pages
	case total <= maxPagesShown:
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
	case current <= 3:
		for i := 1; i <= 4; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, total)
	case current >= total-2:
		pages = append(pages, 1, Ellipsis)
		for i := total - 3; i <= total; i++ {
			pages = append(pages, i)
		}
	default:
		pages = append(pages, 1, Ellipsis, current-1, current, current+1, Ellipsis, total)
	}

	return pages
}
