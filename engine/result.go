package engine

import (
	"maps"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/utils"
)

// Result 是一次推荐的有序结果。
type Result struct {
	Mode            Mode
	Recommendations []Recommendation
}

// Recommendation 是结果中的一家餐厅。
// Scores 包含各阶段特征：content / location / similarity / predicted / cost / 评分等。
type Recommendation struct {
	Restaurant *core.Restaurant
	Score      float64
	Scores     map[string]float64
	Labels     map[string]utils.Label
}

// Empty 表示没有匹配的餐厅。
func (r *Result) Empty() bool {
	return len(r.Recommendations) == 0
}

// IDs 返回结果中的餐厅 ID，按结果顺序。
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		ids[i] = rec.Restaurant.ID
	}
	return ids
}

func newResult(mode Mode, items []*core.Item) *Result {
	res := &Result{Mode: mode, Recommendations: make([]Recommendation, 0, len(items))}
	for _, it := range items {
		res.Recommendations = append(res.Recommendations, Recommendation{
			Restaurant: it.Restaurant,
			Score:      it.Score,
			Scores:     maps.Clone(it.Features),
			Labels:     it.Labels,
		})
	}
	return res
}

// Rated 是用户历史中的一条记录，同一餐厅的多次评分取平均。
type Rated struct {
	Restaurant *core.Restaurant
	Rating     float64
	Cost       float64
	Count      int
}
