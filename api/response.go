package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"fintrack/config"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response 成功响应结构
type Response struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// ErrorBody 错误详情
type ErrorBody struct {
	Message string               `json:"message" example:"Validation failed"`
	Details []service.FieldError `json:"details,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Success 200 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data, Message: message})
}

// Created 201 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data, Message: message})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string, details ...service.FieldError) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: ErrorBody{Message: message, Details: details}})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string, details ...service.FieldError) {
	Error(c, http.StatusBadRequest, message, details...)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// RespondError 将服务层错误映射为 HTTP 响应
func RespondError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		log.Printf("[%s %s] 内部错误: %v", c.Request.Method, c.Request.URL.Path, err)
		InternalError(c, config.SafeErrorMessage(err, "Internal server error"))
		return
	}

	switch se.Kind {
	case service.KindNotFound:
		NotFound(c, se.Message)
	case service.KindValidation:
		BadRequest(c, se.Message, se.Details...)
	default:
		log.Printf("[%s %s] 内部错误: %v", c.Request.Method, c.Request.URL.Path, se)
		InternalError(c, config.SafeErrorMessage(se, se.Message))
	}
}

// BindError 将请求绑定错误转换为 400 响应，校验失败时返回字段级详情
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]service.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, service.FieldError{Field: fieldName(fe), Message: fieldMessage(fe)})
		}
		BadRequest(c, "Validation failed", details...)
		return
	}

	var numErr *strconv.NumError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		BadRequest(c, "Validation failed", service.FieldError{Field: typeErr.Field, Message: "Invalid value type"})
	case errors.As(err, &numErr):
		BadRequest(c, "Validation failed", service.FieldError{Field: "query", Message: "Invalid number: " + numErr.Num})
	default:
		BadRequest(c, "Invalid request body")
	}
}

// fieldName 优先使用 json/form 标签中的字段名
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return name
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return name + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte", "min":
		return name + " must be at least " + fe.Param()
	case "max":
		return name + " must be at most " + fe.Param()
	case "date":
		return name + " must be in YYYY-MM-DD format"
	}
	return name + " is invalid"
}

// parseID 解析路径中的 id 参数
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "Validation failed", service.FieldError{Field: "id", Message: "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
