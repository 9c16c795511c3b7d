package repository

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPerPage is used when a caller asks for a non-positive page size.
const DefaultPerPage = 10

// Pagination describes the page returned by Paginate. Indexes are 1-based.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	StartIndex int  `json:"start_index"`
	EndIndex   int  `json:"end_index"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Page is one page of records plus its metadata.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Paginate slices data into the requested page. page is clamped into
// [1, total pages].
func Paginate[T any](data []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(data)
	totalPages := (total + perPage - 1) / perPage

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, data[start:end])

	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: total,
		EndIndex:   end,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if total > 0 {
		p.StartIndex = start + 1
	}
	return Page[T]{Items: items, Pagination: p}
}

type sortKey struct {
	field string
	desc  bool
}

// parseSort turns "name,-purchase_date" into sort keys using a whitelist
// of allowed keys. allowed maps incoming keys to record field names.
// Unknown keys are skipped; with no usable key the order is id ascending.
func parseSort(sortParam string, allowed map[string]string) []sortKey {
	var keys []sortKey
	for _, raw := range strings.Split(sortParam, ",") {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(s, "-") {
			desc = true
			s = strings.TrimPrefix(s, "-")
		}
		field, ok := allowed[s]
		if !ok {
			continue
		}
		keys = append(keys, sortKey{field: field, desc: desc})
	}
	if len(keys) == 0 {
		field := "id"
		if col, ok := allowed["id"]; ok {
			field = col
		}
		keys = []sortKey{{field: field}}
	}
	return keys
}

// Sort returns a sorted copy of data. Values that parse as numbers are
// compared numerically; everything else compares as text.
func Sort[T Fielder](data []T, sortParam string, allowed map[string]string) []T {
	return sortFunc(data, valueField[T], sortParam, allowed)
}

func sortFunc[T any](data []T, field func(*T, string) string, sortParam string, allowed map[string]string) []T {
	keys := parseSort(sortParam, allowed)
	out := make([]T, len(data))
	copy(out, data)
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(field(&out[i], k.field), field(&out[j], k.field))
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

func compareValues(a, b string) int {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA == nil && errB == nil {
		return da.Cmp(db)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Distribution counts data by key. Every name in keys is present in the
// result even when its count is zero.
func Distribution[T any](data []T, key func(T) string, keys ...string) map[string]int {
	out := make(map[string]int, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	for _, rec := range data {
		out[key(rec)]++
	}
	return out
}
