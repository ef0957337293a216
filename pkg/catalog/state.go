package catalog

import (
	"strings"

	"github.com/wyu6609/pokedex/pkg/model"
)

// State is the transient browse state: type filter, query and page. Changing
// the filter or the query sends the view back to the first page.
type State struct {
	Type     string
	Query    string
	Page     int
	PageSize int
}

func NewState(pageSize int) State {
	return State{
		Type:     AllTypes,
		Page:     1,
		PageSize: pageSize,
	}
}

func (s State) WithType(typ string) State {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		typ = AllTypes
	}
	s.Type = typ
	s.Page = 1
	return s
}

func (s State) WithQuery(query string) State {
	s.Query = query
	s.Page = 1
	return s
}

func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// Derive runs the fixed pipeline: type filter, then search, then paginate.
func Derive(list []model.Pokemon, s State) Page[model.Pokemon] {
	filtered := FilterByType(list, s.Type)
	searched := Search(filtered, s.Query)
	return Paginate(searched, s.Page, s.PageSize)
}
