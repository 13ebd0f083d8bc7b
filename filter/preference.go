package filter

import (
	"context"
	"strings"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/conv"
)

// 以下过滤器从 rctx.Params 读取用户偏好；参数缺失时不过滤。

// BudgetFilter 过滤人均消费超过预算（Params[budget]）的餐厅。
type BudgetFilter struct{}

func (f *BudgetFilter) Name() string { return "filter.budget" }

func (f *BudgetFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	budget, ok := conv.ToFloat64(rctx.Param(core.ParamBudget))
	if !ok || item.Restaurant == nil {
		return false, nil
	}
	return item.Restaurant.AverageCost > budget, nil
}

// CuisineFilter 过滤菜系文本不包含 Params[cuisine] 的餐厅（大小写不敏感的子串匹配）。
type CuisineFilter struct{}

func (f *CuisineFilter) Name() string { return "filter.cuisine" }

func (f *CuisineFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	cuisine, _ := conv.ToString(rctx.Param(core.ParamCuisine))
	if cuisine == "" || item.Restaurant == nil {
		return false, nil
	}
	return !strings.Contains(strings.ToLower(item.Restaurant.CuisineText()), strings.ToLower(cuisine)), nil
}

// VegFilter 要求餐厅的纯素标记与 Params[veg_only] 完全一致。
type VegFilter struct{}

func (f *VegFilter) Name() string { return "filter.veg" }

func (f *VegFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	veg, ok := conv.ToBool(rctx.Param(core.ParamVegOnly))
	if !ok || item.Restaurant == nil {
		return false, nil
	}
	return item.Restaurant.VegOnly != veg, nil
}

// ServiceModeFilter 过滤不提供 Params[service_mode] 就餐方式的餐厅。
type ServiceModeFilter struct{}

func (f *ServiceModeFilter) Name() string { return "filter.service_mode" }

func (f *ServiceModeFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	mode, _ := conv.ToString(rctx.Param(core.ParamServiceMode))
	if mode == "" || item.Restaurant == nil {
		return false, nil
	}
	return !item.Restaurant.Supports(core.ServiceMode(mode)), nil
}

// RatedForFilter 过滤在 Params[service_mode] 对应评分列上未评分的餐厅。
type RatedForFilter struct{}

func (f *RatedForFilter) Name() string { return "filter.rated_for" }

func (f *RatedForFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	mode, _ := conv.ToString(rctx.Param(core.ParamServiceMode))
	if mode == "" || item.Restaurant == nil {
		return false, nil
	}
	return !item.Restaurant.RatingFor(core.ServiceMode(mode)).Rated, nil
}
