package companyerrors

import (
	"net/http"

	"hrconsole/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(apperror.CodeNotFound, "Company tidak ditemukan", http.StatusNotFound)
	ErrEmailAlreadyUsed = apperror.New(apperror.CodeConflict, "Email company sudah terdaftar", http.StatusConflict)
	ErrCompanyInactive = apperror.New(apperror.CodeForbidden, "Company tidak aktif", http.StatusForbidden)
)
