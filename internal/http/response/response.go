// Package response содержит вспомогательные типы и функции для формирования
// единого JSON-конверта ответов HTTP-обработчиков.
package response

import (
	"net/http"

	"github.com/go-chi/render"
)

const (
	// StatusSuccess значение статуса для успешного ответа.
	StatusSuccess = "success"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "error"
)

// Коды ошибок, возвращаемые клиенту в поле errorCode.
const (
	CodeAuthHeaderMissing  = "AUTH_HEADER_MISSING"
	CodeTokenMissing       = "TOKEN_MISSING"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInvalidEmail       = "INVALID_EMAIL_FORMAT"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUserExists         = "USER_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// MsgInternal общий текст для внутренних ошибок; подробности остаются в логах.
const MsgInternal = "An unexpected error occurred"

// Response описывает конверт каждого ответа сервера.
type Response struct {
	Status    string            `json:"status"`
	ErrorCode string            `json:"errorCode,omitempty"`
	Message   string            `json:"message,omitempty"`
	Data      any               `json:"data,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Meta      *Meta             `json:"meta,omitempty"`
}

// Meta описывает объём данных в ответе.
type Meta struct {
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Success возвращает успешный Response с данными и сообщением.
func Success(data any, msg string) Response {
	return Response{
		Status:  StatusSuccess,
		Message: msg,
		Data:    data,
	}
}

// WithMeta добавляет к ответу сведения о количестве элементов.
func (r Response) WithMeta(total, perPage int) Response {
	r.Meta = &Meta{TotalItems: total, ItemsPerPage: perPage}
	return r
}

// Error возвращает Response с кодом ошибки и сообщением.
func Error(code, msg string) Response {
	return Response{
		Status:    StatusError,
		ErrorCode: code,
		Message:   msg,
	}
}

// Validation возвращает ошибку VALIDATION_ERROR с сообщениями по каждому полю.
func Validation(msg string, fields map[string]string) Response {
	resp := Error(CodeValidation, msg)
	if len(fields) > 0 {
		resp.Errors = fields
	}
	return resp
}

// Internal возвращает ошибку INTERNAL_SERVER_ERROR с общим сообщением.
func Internal() Response {
	return Error(CodeInternal, MsgInternal)
}

// Render пишет resp с заданным HTTP-статусом.
func Render(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}
