// Package rank 为候选餐厅打分并排序。
package rank

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/feature"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/conv"
	"github.com/rushteam/dinekit/pkg/utils"
	"github.com/rushteam/dinekit/vector"
)

// TextMatchNode 计算自由文本查询（Params[Param]）与候选餐厅文本的相似度，
// 写入 Features[Feature]，不改变顺序。
//
// 词表在当前候选集上拟合（词频权重），查询中的未知词被忽略。
type TextMatchNode struct {
	Feature string
	Param   string
	Fields  feature.Fields
}

func (n *TextMatchNode) Name() string        { return "rank.text_match." + n.Feature }
func (n *TextMatchNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *TextMatchNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	query, _ := conv.ToString(rctx.Param(n.Param))

	restaurants := make([]*core.Restaurant, len(items))
	for i, it := range items {
		restaurants[i] = it.Restaurant
	}
	v := feature.FitRestaurants(restaurants, n.Fields, feature.WeightingTF)
	q := v.Transform(query)
	for i, doc := range v.Vectors() {
		items[i].Features[n.Feature] = vector.Cosine(q, doc)
		items[i].PutLabel("rank_feature", utils.RankLabel(n.Feature))
	}
	return items, nil
}
