// Package validate 提供线程安全的单例校验器（go-playground/validator），
// 校验失败统一转换为 INVALID_INPUT 的 core.DomainError。
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rushteam/dinekit/core"
)

var (
	v     *validator.Validate
	vOnce sync.Once
)

// Validator 返回单例校验器（缓存结构体信息）。
func Validator() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)
	})
	return v
}

// Struct 校验结构体，module 标识产生错误的组件。
func Struct(module string, s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return core.NewDomainError(module, core.ErrorCodeInvalidInput, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return core.NewDomainError(module, core.ErrorCodeInvalidInput, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), opText(fe.Tag()), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func opText(tag string) string {
	if tag == "gt" {
		return ">"
	}
	return ">="
}
