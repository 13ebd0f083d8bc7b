package recall

import (
	"context"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/core"
)

// Recommender 是按用户产出排序结果的模型（协同过滤、矩阵分解）。
type Recommender interface {
	Name() string
	TopN(userID string, excludeRated bool, n int) ([]core.Scored, error)
}

// UserRecall 把 Recommender 包装为召回源：返回模型给出的全部候选并保持其顺序，
// 分数写入 predicted 特征，截断交给 rerank.TopNNode。Catalog 为空时 Item 不关联餐厅详情。
type UserRecall struct {
	Model   Recommender
	Catalog *catalog.Catalog

	// IncludeRated 为 true 时不排除用户已评过的餐厅
	IncludeRated bool
}

func (r *UserRecall) Name() string { return r.Model.Name() }

func (r *UserRecall) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	scored, err := r.Model.TopN(rctx.UserID, !r.IncludeRated, 0)
	if err != nil {
		return nil, err
	}
	items := make([]*core.Item, 0, len(scored))
	for _, s := range scored {
		var it *core.Item
		if r.Catalog != nil {
			rest, err := r.Catalog.Get(s.ID)
			if err != nil {
				return nil, err
			}
			it = core.NewItem(rest)
		} else {
			it = &core.Item{ID: s.ID, Features: make(map[string]float64, 1)}
		}
		it.Score = s.Score
		it.Features[core.FeaturePredicted] = s.Score
		items = append(items, it)
	}
	return items, nil
}
