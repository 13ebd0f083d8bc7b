package core

import "github.com/rushteam/dinekit/pkg/utils"

// RecommendContext 承载一次查询的用户/模式/参数，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string // 查询模式，例如 "hybrid"

	// Labels 是请求级标签，用于 explain / 观测
	Labels map[string]utils.Label

	// Params 请求参数：budget, cuisine, service_mode, preference, location, seed_id 等。
	// 表达式过滤器（CEL）通过 query.<key> 访问。
	Params map[string]any
}

// 请求参数 key
const (
	ParamBudget      = "budget"
	ParamCuisine     = "cuisine"
	ParamVegOnly     = "veg_only"
	ParamServiceMode = "service_mode"
	ParamPreference  = "preference"
	ParamLocation    = "location"
	ParamSeedID      = "seed_id"
	ParamTopN        = "top_n"
)

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// Param 读取请求参数，不存在时返回 nil。
func (rctx *RecommendContext) Param(key string) any {
	if rctx == nil || rctx.Params == nil {
		return nil
	}
	return rctx.Params[key]
}
