package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu perusahaan. Semua repo katalog dan cuti
// wajib memakainya; company_id selalu datang dari klaim JWT, bukan dari
// input request.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
