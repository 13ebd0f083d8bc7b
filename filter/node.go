package filter

import (
	"context"

	"go.uber.org/zap"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/log"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤，保持输入顺序。
// 如果任何一个过滤器返回 true，该餐厅就会被过滤掉。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	filters := n.bind(ctx, rctx)
	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if shouldFilter(ctx, rctx, filters, item) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// bind 为本次请求准备过滤器。绑定失败时记录告警，Bind 返回的降级过滤器照常使用，
// 没有返回过滤器时本次跳过。
func (n *FilterNode) bind(ctx context.Context, rctx *core.RecommendContext) []Filter {
	out := make([]Filter, 0, len(n.Filters))
	for _, f := range n.Filters {
		rf, ok := f.(RequestFilter)
		if !ok {
			out = append(out, f)
			continue
		}
		bound, err := rf.Bind(ctx, rctx)
		if err != nil {
			log.Logger().Warn("filter bind failed",
				zap.String("filter", f.Name()),
				zap.Error(err))
		}
		if bound != nil {
			out = append(out, bound)
		}
	}
	return out
}

func shouldFilter(ctx context.Context, rctx *core.RecommendContext, filters []Filter, item *core.Item) bool {
	for _, f := range filters {
		ok, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			// 过滤器错误时记录但不中断流程
			log.Logger().Warn("filter failed",
				zap.String("filter", f.Name()),
				zap.String("restaurant_id", item.ID),
				zap.Error(err))
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
