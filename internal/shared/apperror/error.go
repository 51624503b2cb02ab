package apperror

import "fmt"

// AppError adalah error ber-kode yang bisa dipetakan langsung ke respons HTTP.
// Sentinel per modul dibuat lewat New sehingga errors.Is cukup membandingkan
// identitas pointer.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membungkus error asal dengan kode dan status; nil tetap nil supaya
// pemanggil bisa merantai tanpa pengecekan tambahan.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
