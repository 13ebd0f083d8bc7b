// Package engine 是推荐引擎入口：按查询模式组装 Pipeline 并返回有序结果。
//
// Engine 由 Builder 一次性构建，构建完成后只读，可被并发查询。
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/juju/errors"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/feature"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/interaction"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/rank"
	"github.com/rushteam/dinekit/recall"
	"github.com/rushteam/dinekit/rerank"
)

// Engine 持有构建好的目录、交互、内容索引与评分模型。
type Engine struct {
	cfg *config.Config

	catalog      *catalog.Catalog
	interactions *interaction.Store
	ratings      *interaction.RatingMatrix

	// content: cuisines + popular dishes + known for；shortlist: cuisines + known for
	content   *recall.ContentIndex
	shortlist *recall.ContentIndex

	// 无交互数据时为 nil
	cf *recall.UserBasedCF
	mf *recall.MFModel

	extra     []pipeline.Node
	blacklist filter.Filter

	metrics *metrics
}

// Catalog 返回餐厅目录。
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Config 返回构建使用的配置。
func (e *Engine) Config() *config.Config { return e.cfg }

// Recommend 执行一次推荐。空结果不是错误。
func (e *Engine) Recommend(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	res, err := e.recommend(ctx, q)
	n := 0
	if res != nil {
		n = len(res.Recommendations)
	}
	e.metrics.observeQuery(q.Mode, time.Since(start), n, err)
	return res, err
}

func (e *Engine) recommend(ctx context.Context, q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.TopN == 0 {
		q.TopN = e.cfg.TopN
	}
	rctx := &core.RecommendContext{
		UserID: q.UserID,
		Scene:  string(q.Mode),
		Params: q.params(),
	}

	p, err := e.pipeline(q, rctx)
	if err != nil {
		return nil, err
	}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "%s", q.Mode)
	}
	return newResult(q.Mode, items), nil
}

// pipeline 按模式组装 Node 链：recall -> filter -> rank -> rerank.topn。
func (e *Engine) pipeline(q Query, rctx *core.RecommendContext) (*pipeline.Pipeline, error) {
	var nodes []pipeline.Node
	switch q.Mode {
	case ModeKnowledgeFilter:
		nodes = append(nodes, &recall.Node{Source: &recall.CatalogScan{Catalog: e.catalog}})
		nodes = append(nodes, e.filters(&filter.BudgetFilter{}, &filter.CuisineFilter{}, &filter.VegFilter{}, &filter.ServiceModeFilter{})...)

	case ModeContentQuery:
		nodes = append(nodes, &recall.Node{Source: &recall.CatalogScan{Catalog: e.catalog}})
		nodes = append(nodes, e.filters(&filter.BudgetFilter{}, &filter.RatedForFilter{})...)
		nodes = append(nodes,
			&rank.TextMatchNode{Feature: core.FeatureContent, Param: core.ParamPreference, Fields: feature.ContentQueryFields},
			&rank.TextMatchNode{Feature: core.FeatureLocation, Param: core.ParamLocation, Fields: feature.LocationFields})
		if k := e.cfg.ContentCandidates; k > 0 {
			nodes = append(nodes,
				&rank.SortNode{Keys: []rank.SortKey{{Feature: core.FeatureContent, Desc: true}}},
				&rerank.TopNNode{N: k})
		}
		nodes = append(nodes, &rank.SortNode{Keys: []rank.SortKey{
			{Feature: core.FeatureLocation, Desc: true},
			{Feature: core.FeatureContent, Desc: true},
			{Feature: core.RatingFeature(q.Service), Desc: true},
		}})

	case ModeContentToRestaurant:
		seed, err := e.catalog.GetByName(q.SeedName)
		if err != nil {
			return nil, err
		}
		rctx.Params[core.ParamSeedID] = seed.ID
		nodes = append(nodes, &recall.Node{Source: &recall.SimilarRestaurants{Index: e.content, ExcludeSeed: true}})
		nodes = append(nodes, e.filters(&filter.BudgetFilter{}, &filter.RatedForFilter{})...)
		nodes = append(nodes, &rank.SortNode{Keys: []rank.SortKey{
			{Feature: core.FeatureSimilarity, Desc: true},
			{Feature: core.RatingFeature(q.Service), Desc: true},
			{Feature: core.FeatureCost},
		}})

	case ModeMatrixFactorization:
		if e.mf == nil {
			return nil, userNotFound(q.UserID)
		}
		nodes = append(nodes, &recall.Node{Source: &recall.UserRecall{Model: e.mf, Catalog: e.catalog}})
		nodes = append(nodes, e.filters()...)

	case ModeCollaborative:
		if e.cf == nil {
			return nil, userNotFound(q.UserID)
		}
		nodes = append(nodes, &recall.Node{Source: &recall.UserRecall{Model: e.cf, Catalog: e.catalog}})
		nodes = append(nodes, e.filters()...)

	case ModeHybrid:
		if e.mf == nil {
			return nil, userNotFound(q.UserID)
		}
		if _, err := e.mf.UserFactor(q.UserID); err != nil {
			return nil, err
		}
		nodes = append(nodes, &recall.Node{Source: &recall.SimilarRestaurants{Index: e.shortlist, K: e.cfg.ShortlistSize}})
		nodes = append(nodes, e.filters()...)
		nodes = append(nodes, &rank.PredictNode{Model: e.mf})
	}

	nodes = append(nodes, &rerank.TopNNode{N: q.TopN})
	return &pipeline.Pipeline{Nodes: nodes}, nil
}

// filters 返回过滤阶段：模式内置过滤器与黑名单组成一个 FilterNode，其后是配置化 Node。
func (e *Engine) filters(fs ...filter.Filter) []pipeline.Node {
	if e.blacklist != nil {
		fs = append(fs, e.blacklist)
	}
	return append([]pipeline.Node{&filter.FilterNode{Filters: fs}}, e.extra...)
}

// History 返回用户评过分的餐厅，按评分降序、餐厅 ID 升序；未知用户返回空。
func (e *Engine) History(userID string) []Rated {
	records := e.interactions.ByUser(userID)
	agg := make(map[string]*Rated, len(records))
	out := make([]Rated, 0, len(records))
	var order []string
	for _, it := range records {
		r, ok := agg[it.RestaurantID]
		if !ok {
			rest, err := e.catalog.Get(it.RestaurantID)
			if err != nil {
				continue
			}
			r = &Rated{Restaurant: rest}
			agg[it.RestaurantID] = r
			order = append(order, it.RestaurantID)
		}
		r.Rating += it.Rating
		r.Cost += it.Cost
		r.Count++
	}
	for _, id := range order {
		r := agg[id]
		r.Rating /= float64(r.Count)
		r.Cost /= float64(r.Count)
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Restaurant.ID < out[j].Restaurant.ID
	})
	return out
}

func userNotFound(userID string) error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFound,
		fmt.Sprintf("user %q has no interactions", userID))
}
