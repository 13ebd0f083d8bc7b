package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 查询阶段的可预期结果（参数无效、实体不存在、数据不足）都使用此类型
//   - 提供错误代码（Code）和消息（Message），Module 标识产生错误的组件
//   - 支持 errors.Is：与同 Code 的哨兵错误比较（哨兵的 Module 为空时忽略 Module）
//
// 使用场景：
//   - 查询校验：INVALID_INPUT
//   - 餐厅 / 用户不存在：NOT_FOUND
//   - 协同过滤无可用邻居：INSUFFICIENT_DATA
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "model", "engine"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 实现 errors.Is 的比较规则。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Module == "" || t.Module == e.Module
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError（支持 wrap 链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"         // 资源不存在
	ErrorCodeInvalidInput     = "INVALID_INPUT"     // 输入无效
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA" // 数据不足，无法预测
	ErrorCodeNotSupported     = "NOT_SUPPORTED"     // 操作不支持
	ErrorCodeInternalError    = "INTERNAL_ERROR"    // 内部错误
)

// 模块名称常量
const (
	ModuleStore       = "store"       // 存储模块
	ModuleCatalog     = "catalog"     // 餐厅目录
	ModuleInteraction = "interaction" // 用户交互
	ModuleModel       = "model"       // 协同过滤 / 矩阵分解
	ModuleEngine      = "engine"      // 推荐引擎
)

// 哨兵错误：Module 为空，可与任意模块的同 Code 错误 errors.Is 匹配。
var (
	ErrNotFound         = &DomainError{Code: ErrorCodeNotFound, Message: "not found"}
	ErrInvalidInput     = &DomainError{Code: ErrorCodeInvalidInput, Message: "invalid input"}
	ErrInsufficientData = &DomainError{Code: ErrorCodeInsufficientData, Message: "insufficient data"}
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsInsufficientData 检查错误是否为 INSUFFICIENT_DATA
func IsInsufficientData(err error) bool {
	return hasCode(err, ErrorCodeInsufficientData)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}
