package filter

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤：表达式为 true 的餐厅保留。
// Invert 为 true 时反转，表达式为 true 的餐厅被过滤。
type ExprFilter struct {
	Program *dsl.Program
	Invert  bool
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string, invert bool) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Program: p, Invert: invert}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	ok, err := f.Program.Match(item, rctx)
	if err != nil {
		return false, err
	}
	return ok == f.Invert, nil
}
