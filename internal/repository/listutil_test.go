package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"itam-service/internal/models"
	"itam-service/internal/sampledata"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	data := numbers(25)

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantPage  int
		wantItems []int
		wantStart int
		wantEnd   int
		wantPrev  bool
		wantNext  bool
	}{
		{name: "page zero clamps to first", page: 0, perPage: 10, wantPage: 1, wantItems: numbers(10), wantStart: 1, wantEnd: 10, wantNext: true},
		{name: "negative page clamps to first", page: -3, perPage: 10, wantPage: 1, wantItems: numbers(10), wantStart: 1, wantEnd: 10, wantNext: true},
		{name: "middle page", page: 2, perPage: 10, wantPage: 2, wantItems: data[10:20], wantStart: 11, wantEnd: 20, wantPrev: true, wantNext: true},
		{name: "page past the end clamps to last", page: 999, perPage: 10, wantPage: 3, wantItems: data[20:], wantStart: 21, wantEnd: 25, wantPrev: true},
		{name: "zero per page defaults to ten", page: 1, perPage: 0, wantPage: 1, wantItems: numbers(10), wantStart: 1, wantEnd: 10, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(data, tt.page, tt.perPage)
			assert.Equal(t, tt.wantItems, got.Items)
			assert.Equal(t, tt.wantPage, got.Pagination.Page)
			assert.Equal(t, 3, got.Pagination.TotalPages)
			assert.Equal(t, 25, got.Pagination.TotalItems)
			assert.Equal(t, tt.wantStart, got.Pagination.StartIndex)
			assert.Equal(t, tt.wantEnd, got.Pagination.EndIndex)
			assert.Equal(t, tt.wantPrev, got.Pagination.HasPrev)
			assert.Equal(t, tt.wantNext, got.Pagination.HasNext)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate([]int{}, 5, 10)
	assert.Empty(t, got.Items)
	assert.Equal(t, Pagination{Page: 1, PerPage: 10}, got.Pagination)
}

func TestSort(t *testing.T) {
	assets := sampledata.AssetProvider{}.Assets()
	allowed := map[string]string{
		"id":             "id",
		"name":           "name",
		"purchase_price": "purchase_price",
		"purchase_date":  "purchase_date",
		"status":         "status",
	}

	ids := func(list []models.Asset) []int {
		out := make([]int, len(list))
		for i, a := range list {
			out[i] = a.ID
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(Sort(assets, "", allowed)))
	assert.Equal(t, []int{4, 5, 3, 1, 2}, ids(Sort(assets, "-purchase_price", allowed)))
	assert.Equal(t, []int{4, 2, 1, 5, 3}, ids(Sort(assets, "purchase_date", allowed)))
	// unknown keys are ignored
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(Sort(assets, "serial_number", allowed)))
	// ties on status broken by the next key
	assert.Equal(t, []int{3, 4, 5, 2, 1}, ids(Sort(assets, "status,-id", allowed)))
}

func TestDistributionIncludesZeroKeys(t *testing.T) {
	got := Distribution([]string{"a", "a", "c"}, func(s string) string { return s }, "a", "b")
	assert.Equal(t, map[string]int{"a": 2, "b": 0, "c": 1}, got)
}
