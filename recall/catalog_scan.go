package recall

import (
	"context"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/core"
)

// CatalogScan 按目录顺序返回全部餐厅，作为规则过滤类模式的候选。
type CatalogScan struct {
	Catalog *catalog.Catalog
}

func (r *CatalogScan) Name() string { return "recall.catalog" }

func (r *CatalogScan) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	all := r.Catalog.All()
	items := make([]*core.Item, 0, len(all))
	for _, rest := range all {
		items = append(items, core.NewItem(rest))
	}
	return items, nil
}
