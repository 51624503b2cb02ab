package listquery

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DirAsc  = "asc"
	DirDesc = "desc"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params adalah kontrak list generik: page + sort tunggal + filter map.
// Dipakai ulang oleh semua list (employees, leave requests, catalogs).
type Params struct {
	Page     int
	PageSize int
	SortKey  string
	SortDir  string
	Filters  map[string]string
}

// FromQuery membaca query string gin menjadi Params.
// allowedSort membatasi kolom yang boleh di-sort (key query -> kolom DB),
// allowedFilters membatasi key filter yang diteruskan ke repository.
// Nilai filter kosong / whitespace dibuang sebelum sampai ke query.
func FromQuery(c *gin.Context, allowedSort map[string]string, allowedFilters []string) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	sortKey := c.Query("sort")
	if _, ok := allowedSort[sortKey]; !ok {
		sortKey = ""
	}

	sortDir := strings.ToLower(c.Query("dir"))
	if sortDir != DirDesc {
		sortDir = DirAsc
	}

	filters := make(map[string]string)
	for _, key := range allowedFilters {
		v := strings.TrimSpace(c.Query(key))
		if v == "" {
			continue
		}
		filters[key] = v
	}

	return Params{
		Page:     page,
		PageSize: pageSize,
		SortKey:  sortKey,
		SortDir:  sortDir,
		Filters:  filters,
	}
}

// Toggle memberikan arah sort berikutnya: klik kolom yang sama membalik
// ASC -> DESC -> ASC, klik kolom lain selalu mulai dari ASC.
func Toggle(p Params, clickedKey string) Params {
	next := p
	if clickedKey == p.SortKey {
		if p.SortDir == DirAsc {
			next.SortDir = DirDesc
		} else {
			next.SortDir = DirAsc
		}
	} else {
		next.SortKey = clickedKey
		next.SortDir = DirAsc
	}
	return next
}

// WithPageSize mengganti ukuran halaman dan mengembalikan posisi ke halaman 1.
func WithPageSize(p Params, pageSize int) Params {
	next := p
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	next.PageSize = pageSize
	next.Page = 1
	return next
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause menerjemahkan sort key ke klausa ORDER BY yang aman.
// sortable harus berisi mapping yang sama dengan allowedSort di FromQuery.
func (p Params) OrderClause(sortable map[string]string, fallback string) string {
	column, ok := sortable[p.SortKey]
	if !ok || column == "" {
		return fallback
	}
	dir := "ASC"
	if p.SortDir == DirDesc {
		dir = "DESC"
	}
	return column + " " + dir
}

// Scope menerapkan filter + order + offset/limit ke query gorm.
// filterable memetakan key filter ke kolom DB (whitelist, bukan input bebas).
func Scope(p Params, sortable, filterable map[string]string, fallbackOrder string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range p.Filters {
			column, ok := filterable[key]
			if !ok {
				continue
			}
			db = db.Where(column+" = ?", value)
		}
		return db.
			Order(p.OrderClause(sortable, fallbackOrder)).
			Offset(p.Offset()).
			Limit(p.PageSize)
	}
}

// FilterScope hanya bagian filternya, dipakai untuk query COUNT.
func FilterScope(p Params, filterable map[string]string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range p.Filters {
			column, ok := filterable[key]
			if !ok {
				continue
			}
			db = db.Where(column+" = ?", value)
		}
		return db
	}
}
