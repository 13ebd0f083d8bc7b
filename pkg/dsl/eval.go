package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/conv"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("restaurant", cel.DynType),
			cel.Variable("item", cel.DynType),
			cel.Variable("query", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的餐厅过滤表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次，可被并发求值。
//
// 可用变量：
//   - restaurant：id, name, cuisines, known_for, popular_dishes, area, cost,
//     veg_only, indoor_seating, takeaway, home_delivery, delivery_rating, dinner_rating
//     （未评分时评分为 null）
//   - item：id, score, features
//   - query：请求参数（budget, cuisine, service_mode ...）
//
// 示例：
//   - `restaurant.cost <= 600 && restaurant.home_delivery`
//   - `"Biryani" in restaurant.cuisines`
//   - `restaurant.delivery_rating != null && restaurant.delivery_rating >= 4.0`
//   - `restaurant.area.contains(query.location)`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return boolean, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Match 对单个候选求值。
func (p *Program) Match(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 会报错，应先用 has() 判断
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	restaurant := map[string]any{}
	if r := item.Restaurant; r != nil {
		restaurant = map[string]any{
			"id":              r.ID,
			"name":            r.Name,
			"cuisines":        r.Cuisines,
			"known_for":       r.KnownFor,
			"popular_dishes":  r.PopularDishes,
			"area":            r.Area,
			"cost":            r.AverageCost,
			"veg_only":        r.VegOnly,
			"indoor_seating":  r.IndoorSeating,
			"takeaway":        r.Takeaway,
			"home_delivery":   r.HomeDelivery,
			"delivery_rating": ratingValue(r.DeliveryRating),
			"dinner_rating":   ratingValue(r.DineInRating),
		}
	}

	query := make(map[string]any)
	if rctx != nil {
		for k, v := range rctx.Params {
			if s, ok := conv.ToString(v); ok {
				query[k] = s
				continue
			}
			query[k] = v
		}
	}

	return map[string]any{
		"restaurant": restaurant,
		"item": map[string]any{
			"id":       item.ID,
			"score":    item.Score,
			"features": item.Features,
		},
		"query": query,
	}
}

func ratingValue(r core.Rating) any {
	if !r.Rated {
		return nil
	}
	return r.Value
}
