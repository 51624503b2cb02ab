package leavetypeerrors

import (
	"net/http"

	"hrconsole/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeConflict,
		"Leave type masih dipakai oleh leave request, tidak bisa dihapus",
		http.StatusConflict,
	)
	ErrMaxDaysRequired = apperror.New(
		apperror.CodeInvalidInput,
		"max_days wajib diisi untuk leave type dengan kuota terbatas",
		http.StatusBadRequest,
	)
)
