package listquery_test

import (
	"net/http/httptest"
	"testing"

	"hrconsole/internal/shared/listquery"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFromURL(t *testing.T, url string, allowedSort map[string]string, allowedFilters []string) listquery.Params {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)

	return listquery.FromQuery(c, allowedSort, allowedFilters)
}

var testSortable = map[string]string{
	"name":       "employees.name",
	"created_at": "employees.created_at",
}

func TestFromQuery(t *testing.T) {
	t.Run("success defaults", func(t *testing.T) {
		p := paramsFromURL(t, "/employees", testSortable, []string{"status"})

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, listquery.DefaultPageSize, p.PageSize)
		assert.Equal(t, "", p.SortKey)
		assert.Equal(t, listquery.DirAsc, p.SortDir)
		assert.Empty(t, p.Filters)
	})

	t.Run("success reads page sort and filters", func(t *testing.T) {
		p := paramsFromURL(t, "/employees?page=3&page_size=25&sort=name&dir=DESC&status=ACTIVE", testSortable, []string{"status"})

		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.PageSize)
		assert.Equal(t, "name", p.SortKey)
		assert.Equal(t, listquery.DirDesc, p.SortDir)
		assert.Equal(t, map[string]string{"status": "ACTIVE"}, p.Filters)
	})

	t.Run("negative sort key outside whitelist is dropped", func(t *testing.T) {
		p := paramsFromURL(t, "/employees?sort=password", testSortable, nil)

		assert.Equal(t, "", p.SortKey)
	})

	t.Run("negative blank filter values are pruned", func(t *testing.T) {
		p := paramsFromURL(t, "/employees?status=%20%20&department_id=", testSortable, []string{"status", "department_id"})

		assert.Empty(t, p.Filters)
	})

	t.Run("negative page and page size are clamped", func(t *testing.T) {
		p := paramsFromURL(t, "/employees?page=-2&page_size=9999", testSortable, nil)

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, listquery.MaxPageSize, p.PageSize)
	})
}

func TestToggle(t *testing.T) {
	base := listquery.Params{Page: 4, PageSize: 20, SortKey: "name", SortDir: listquery.DirAsc}

	t.Run("same column flips direction", func(t *testing.T) {
		next := listquery.Toggle(base, "name")
		assert.Equal(t, "name", next.SortKey)
		assert.Equal(t, listquery.DirDesc, next.SortDir)

		again := listquery.Toggle(next, "name")
		assert.Equal(t, listquery.DirAsc, again.SortDir)
	})

	t.Run("different column starts ascending", func(t *testing.T) {
		desc := base
		desc.SortDir = listquery.DirDesc

		next := listquery.Toggle(desc, "created_at")

		assert.Equal(t, "created_at", next.SortKey)
		assert.Equal(t, listquery.DirAsc, next.SortDir)
	})
}

func TestWithPageSize(t *testing.T) {
	base := listquery.Params{Page: 7, PageSize: 10}

	t.Run("resets to the first page", func(t *testing.T) {
		next := listquery.WithPageSize(base, 50)
		assert.Equal(t, 50, next.PageSize)
		assert.Equal(t, 1, next.Page)
	})

	t.Run("clamps out of range sizes", func(t *testing.T) {
		assert.Equal(t, listquery.DefaultPageSize, listquery.WithPageSize(base, 0).PageSize)
		assert.Equal(t, listquery.MaxPageSize, listquery.WithPageSize(base, 1000).PageSize)
	})
}

func TestOrderClause(t *testing.T) {
	t.Run("known key with direction", func(t *testing.T) {
		p := listquery.Params{SortKey: "name", SortDir: listquery.DirDesc}
		assert.Equal(t, "employees.name DESC", p.OrderClause(testSortable, "employees.created_at DESC"))
	})

	t.Run("unknown key falls back", func(t *testing.T) {
		p := listquery.Params{SortKey: "salary", SortDir: listquery.DirAsc}
		assert.Equal(t, "employees.created_at DESC", p.OrderClause(testSortable, "employees.created_at DESC"))
	})
}

func TestOffset(t *testing.T) {
	p := listquery.Params{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())
}
