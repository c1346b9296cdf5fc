package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	Name  string
	Email string
}

func rowFields(r row) []string { return []string{r.Name, r.Email} }

func TestFilterMatchesCaseInsensitiveSubstring(t *testing.T) {
	rows := []row{
		{Name: "Customer 1", Email: "one@example.com"},
		{Name: "Customer 2", Email: "two@example.com"},
	}

	got := Filter(rows, "customer 1", rowFields)
	assert.Len(t, got, 1)
	assert.Equal(t, "Customer 1", got[0].Name)

	got = Filter(rows, "", rowFields)
	assert.Len(t, got, 2, "clearing the query restores the full list")
}

func TestFilterSearchesAllDesignatedFields(t *testing.T) {
	rows := []row{
		{Name: "Alice", Email: "alice@corp.example"},
		{Name: "Bob", Email: "bob@home.example"},
	}

	got := Filter(rows, "HOME.EXAMPLE", rowFields)
	assert.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)
}

func TestBuildPaginatesSevenItemsAcrossTwoPages(t *testing.T) {
	rows := make([]row, 0, 7)
	for i := 1; i <= 7; i++ {
		rows = append(rows, row{Name: fmt.Sprintf("Product %d", i)})
	}

	page1 := Build(rows, Query{Page: 1}, rowFields)
	assert.Len(t, page1.Items, 5)
	assert.Equal(t, 2, page1.TotalPages)
	assert.False(t, page1.HasPrev, "previous is disabled on page 1")
	assert.True(t, page1.HasNext)

	page2 := Build(rows, Query{Page: 2}, rowFields)
	assert.Len(t, page2.Items, 2)
	assert.True(t, page2.HasPrev)
	assert.False(t, page2.HasNext, "next is disabled on page 2")
	assert.Equal(t, "Product 6", page2.Items[0].Name)
}

func TestBuildClampsPageIndex(t *testing.T) {
	rows := []row{{Name: "only"}}

	assert.Equal(t, 1, Build(rows, Query{Page: 0}, rowFields).Number)
	assert.Equal(t, 1, Build(rows, Query{Page: -3}, rowFields).Number)
	assert.Equal(t, 1, Build(rows, Query{Page: 99}, rowFields).Number)
}

func TestBuildEmptyState(t *testing.T) {
	rows := []row{{Name: "Customer 1"}}

	page := Build(rows, Query{Search: "no such customer"}, rowFields)
	assert.True(t, page.Empty)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Zero(t, page.Total)
}

func TestBuildFilterAndPageInteraction(t *testing.T) {
	rows := make([]row, 0, 12)
	for i := 1; i <= 12; i++ {
		rows = append(rows, row{Name: fmt.Sprintf("Customer %d", i)})
	}

	// "Customer 1" matches 1, 10, 11, 12 — one page worth.
	page := Build(rows, Query{Search: "Customer 1", Page: 7}, rowFields)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.Number, "page is clamped back into range for the narrowed result")
	assert.Len(t, page.Items, 4)
}
