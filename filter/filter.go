package filter

import (
	"context"

	"github.com/rushteam/dinekit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选餐厅是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// RequestFilter 是需要请求级状态的过滤器。FilterNode 在遍历候选前调用一次 Bind，
// 本次请求内使用返回的 Filter。
type RequestFilter interface {
	Filter
	Bind(ctx context.Context, rctx *core.RecommendContext) (Filter, error)
}
