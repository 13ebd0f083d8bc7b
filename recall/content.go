package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/feature"
	"github.com/rushteam/dinekit/vector"
)

// ContentIndex 是餐厅之间的内容相似度索引：TF-IDF 向量 + 两两余弦矩阵。
// 构建后只读，可被并发查询。
type ContentIndex struct {
	catalog    *catalog.Catalog
	fields     feature.Fields
	vectorizer *feature.Vectorizer
	matrix     *vector.Matrix
}

// NewContentIndex 在整个目录上按 fields 拟合 TF-IDF 并计算相似度矩阵。
func NewContentIndex(ctx context.Context, cat *catalog.Catalog, fields feature.Fields, jobs int) (*ContentIndex, error) {
	v := feature.FitRestaurants(cat.All(), fields, feature.WeightingTFIDF)
	m, err := vector.NewMatrix(ctx, v.Vectors(), jobs)
	if err != nil {
		return nil, err
	}
	return &ContentIndex{catalog: cat, fields: fields, vectorizer: v, matrix: m}, nil
}

// Fields 返回索引使用的文本字段。
func (c *ContentIndex) Fields() feature.Fields { return c.fields }

// Vectorizer 返回拟合好的向量化器。
func (c *ContentIndex) Vectorizer() *feature.Vectorizer { return c.vectorizer }

// Matrix 返回相似度矩阵。
func (c *ContentIndex) Matrix() *vector.Matrix { return c.matrix }

// Similarity 返回两家餐厅的内容相似度。
func (c *ContentIndex) Similarity(a, b string) (float64, error) {
	i, err := c.index(a)
	if err != nil {
		return 0, err
	}
	j, err := c.index(b)
	if err != nil {
		return 0, err
	}
	return c.matrix.At(i, j), nil
}

// Neighbors 返回与 id 最相似的 k 家餐厅（不含自身），同分按目录顺序。
func (c *ContentIndex) Neighbors(id string, k int) ([]core.Scored, error) {
	i, err := c.index(id)
	if err != nil {
		return nil, err
	}
	ns := c.matrix.Neighbors(i, k)
	out := make([]core.Scored, len(ns))
	for x, n := range ns {
		out[x] = core.Scored{ID: c.catalog.At(n.Index).ID, Score: n.Score}
	}
	return out, nil
}

func (c *ContentIndex) index(id string) (int, error) {
	i, ok := c.catalog.Index(id)
	if !ok {
		return 0, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("content: restaurant %q not found", id))
	}
	return i, nil
}

// SimilarRestaurants 是以种子餐厅（Params[seed_id]）为中心的内容召回源。
//   - K > 0：返回最相似的 K 家，不含种子（混合推荐的 shortlist）
//   - K <= 0：按目录顺序返回全部餐厅，只写入相似度，排序交给 Rank 阶段；
//     ExcludeSeed 为 true 时不含种子
type SimilarRestaurants struct {
	Index       *ContentIndex
	K           int
	ExcludeSeed bool
}

func (r *SimilarRestaurants) Name() string { return "recall.content" }

func (r *SimilarRestaurants) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	seed, _ := rctx.Param(core.ParamSeedID).(string)
	i, err := r.Index.index(seed)
	if err != nil {
		return nil, err
	}

	if r.K > 0 {
		ns := r.Index.matrix.Neighbors(i, r.K)
		items := make([]*core.Item, 0, len(ns))
		for _, n := range ns {
			items = append(items, r.newItem(n.Index, n.Score))
		}
		return items, nil
	}

	row := r.Index.matrix.Row(i)
	items := make([]*core.Item, 0, len(row))
	for j, s := range row {
		if j == i && r.ExcludeSeed {
			continue
		}
		items = append(items, r.newItem(j, s))
	}
	return items, nil
}

func (r *SimilarRestaurants) newItem(i int, score float64) *core.Item {
	it := core.NewItem(r.Index.catalog.At(i))
	it.Score = score
	it.Features[core.FeatureSimilarity] = score
	return it
}
