// Package builders 注册内置的配置化 Node，入口处以空白导入触发注册。
package builders

import (
	"fmt"

	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/conv"
	"github.com/rushteam/dinekit/rerank"
)

func init() {
	config.Register("filter.expr", BuildExprFilterNode)
	config.Register("filter.blacklist", BuildBlacklistFilterNode)
	config.Register("filter.budget", BuildPreferenceFilterNode(&filter.BudgetFilter{}))
	config.Register("filter.cuisine", BuildPreferenceFilterNode(&filter.CuisineFilter{}))
	config.Register("filter.veg", BuildPreferenceFilterNode(&filter.VegFilter{}))
	config.Register("filter.service_mode", BuildPreferenceFilterNode(&filter.ServiceModeFilter{}))
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildExprFilterNode 配置：expr（CEL 表达式，必填）、invert（可选）。
func BuildExprFilterNode(cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	f, err := filter.NewExprFilter(expr, conv.ConfigGet(cfg, "invert", false))
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

// BuildBlacklistFilterNode 配置：ids（餐厅 ID 列表）。
func BuildBlacklistFilterNode(cfg map[string]any) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids not found or empty")
	}
	return &filter.FilterNode{Filters: []filter.Filter{filter.NewBlacklistFilter(ids, nil, "")}}, nil
}

// BuildPreferenceFilterNode 返回无需配置的偏好过滤器构建函数。
func BuildPreferenceFilterNode(f filter.Filter) pipeline.NodeBuilder {
	return func(map[string]any) (pipeline.Node, error) {
		return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
	}
}

// BuildTopNNode 配置：n。
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n, ok := conv.ToInt(cfg["n"])
	if !ok || n <= 0 {
		return nil, fmt.Errorf("n must be a positive integer")
	}
	return &rerank.TopNNode{N: n}, nil
}
