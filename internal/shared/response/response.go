package response

import "github.com/gin-gonic/gin"

// ApiEnvelope adalah bentuk tunggal semua respons API, sukses maupun gagal.
type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	meta := PaginationMeta{
		Total:    total,
		Page:     page,
		PageSize: limit,
	}
	if limit > 0 {
		// Pembulatan ke atas tanpa float.
		meta.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return meta
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: errorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}
