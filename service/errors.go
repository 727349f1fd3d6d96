package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind 错误分类，由 API 层映射为 HTTP 状态码
type Kind int

const (
	KindInternal   Kind = iota // 500
	KindNotFound               // 404
	KindValidation             // 400
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error 服务层统一错误
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 资源不存在
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Invalid 参数或语义校验失败
func Invalid(message string, details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// Internal 存储等内部错误
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf 返回错误分类，非 *Error 一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// wrapFind 将查询错误转换为服务层错误，记录不存在时返回 NotFound
func wrapFind(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFound)
	}
	return Internal("Database operation failed", err)
}
