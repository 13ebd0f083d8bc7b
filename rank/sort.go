package rank

import (
	"context"
	"sort"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
)

// SortKey 是一个排序键：特征名与方向。缺失的特征按 0 处理。
type SortKey struct {
	Feature string
	Desc    bool
}

// SortNode 按多个特征依次稳定排序，相同时保持输入顺序。
// item.Score 被设置为第一个排序键的值。
type SortNode struct {
	Keys []SortKey
}

func (n *SortNode) Name() string        { return "rank.sort" }
func (n *SortNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Keys) == 0 || len(items) == 0 {
		return items, nil
	}
	for _, it := range items {
		it.Score = it.Features[n.Keys[0].Feature]
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, k := range n.Keys {
			a, b := items[i].Features[k.Feature], items[j].Features[k.Feature]
			if a == b {
				continue
			}
			if k.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
	return items, nil
}
