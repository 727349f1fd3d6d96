package api

import (
	"fmt"
	"reflect"
	"strings"

	"fintrack/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	RegisterValidators()
}

// RegisterValidators 注册自定义校验规则，并让错误中的字段名使用 json/form 标签
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || service.IsDate(s)
	}); err != nil {
		panic(fmt.Sprintf("注册 date 校验规则失败: %v", err))
	}
}
