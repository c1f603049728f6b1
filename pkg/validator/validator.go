// Package validator go-playground/validator的轻量封装
// 说明：提供共享的验证器单例和友好的错误信息格式化，供配置与请求校验使用
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// globalValidator 全局验证器实例（单例）
	// 说明：validator.Validate内部缓存结构体元信息，共享单例可复用缓存
	globalValidator *validator.Validate

	// validatorOnce 确保验证器只初始化一次
	validatorOnce sync.Once
)

// Get 获取全局验证器实例
func Get() *validator.Validate {
	validatorOnce.Do(func() {
		globalValidator = validator.New()

		// 字段名优先取json标签，错误信息对外更友好
		globalValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return globalValidator
}

// Struct 验证结构体
// 说明：返回的错误已格式化为可读信息，多个字段错误合并为一条
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// 非字段错误（如传入nil），原样返回
		return err
	}

	// 逐字段格式化
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// formatFieldError 格式化单个字段错误
func formatFieldError(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("field '%s' failed rule '%s=%s' (got value '%v')",
			fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("field '%s' failed rule '%s' (got value '%v')",
		fe.Field(), fe.Tag(), fe.Value())
}

// Var 验证单个变量
func Var(field any, tag string) error {
	return Get().Var(field, tag)
}
