package engine

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/config"
	_ "github.com/rushteam/dinekit/config/builders"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/feature"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/interaction"
	"github.com/rushteam/dinekit/pkg/log"
	"github.com/rushteam/dinekit/recall"
	"github.com/rushteam/dinekit/store"
)

// Builder 分阶段构建 Engine：加载数据表 -> 目录/交互 -> 内容索引与评分模型。
// Build 成功之前不存在可查询的 Engine。
//
// 示例：
//
//	eng, err := engine.NewBuilder(cfg).
//	    WithRestaurants(restaurants).
//	    WithInteractions(interactions).
//	    Build(ctx)
type Builder struct {
	cfg          *config.Config
	restaurants  []core.Restaurant
	interactions []core.Interaction
	store        core.Store
	registerer   prometheus.Registerer
}

// NewBuilder 创建构建器，cfg 为 nil 时使用 config.Default()。
func NewBuilder(cfg *config.Config) *Builder {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Builder{cfg: cfg}
}

// WithRestaurants 设置餐厅表。
func (b *Builder) WithRestaurants(restaurants []core.Restaurant) *Builder {
	b.restaurants = restaurants
	return b
}

// WithInteractions 设置交互表。
func (b *Builder) WithInteractions(interactions []core.Interaction) *Builder {
	b.interactions = interactions
	return b
}

// WithStore 设置 KV 存储：未通过 WithRestaurants 提供数据时从中加载数据表，
// 同时用于读取黑名单（config.Data.BlacklistKey）。
func (b *Builder) WithStore(s core.Store) *Builder {
	b.store = s
	return b
}

// WithRegisterer 设置指标注册器，默认使用独立的 prometheus.Registry。
func (b *Builder) WithRegisterer(reg prometheus.Registerer) *Builder {
	b.registerer = reg
	return b
}

// Build 构建 Engine。内容索引与两个评分模型互相独立，并发构建，任一失败则整体失败。
func (b *Builder) Build(ctx context.Context) (*Engine, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	reg := b.registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	e := &Engine{cfg: b.cfg, metrics: newMetrics(reg)}

	if b.restaurants == nil && b.store != nil {
		rs, is, err := store.NewTableSource(b.store, b.cfg.Data.RedisPrefix).Load(ctx)
		if err != nil {
			return nil, errors.Annotate(err, "load tables")
		}
		b.restaurants = rs
		if b.interactions == nil {
			b.interactions = is
		}
	}

	var err error
	if err = e.step("catalog", func() error {
		e.catalog, err = catalog.New(b.restaurants)
		return err
	}); err != nil {
		return nil, errors.Annotate(err, "build catalog")
	}
	if err = e.step("interactions", func() error {
		e.interactions, err = interaction.NewStore(b.interactions, e.catalog)
		if err != nil {
			return err
		}
		e.ratings = interaction.NewRatingMatrix(e.interactions, e.catalog)
		return nil
	}); err != nil {
		return nil, errors.Annotate(err, "build interactions")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.step("content_index", func() error {
			idx, err := recall.NewContentIndex(gctx, e.catalog, feature.RestaurantContentFields, b.cfg.Jobs)
			e.content = idx
			return errors.Annotate(err, "content index")
		})
	})
	g.Go(func() error {
		return e.step("shortlist_index", func() error {
			idx, err := recall.NewContentIndex(gctx, e.catalog, feature.ShortlistFields, b.cfg.Jobs)
			e.shortlist = idx
			return errors.Annotate(err, "shortlist index")
		})
	})
	if e.ratings.Count() > 0 {
		g.Go(func() error {
			return e.step("neighborhood_model", func() error {
				cf := recall.NewUserBasedCF(e.ratings)
				cf.TopKNeighbors = b.cfg.CFNeighbors
				e.cf = cf
				return nil
			})
		})
		g.Go(func() error {
			return e.step("factor_model", func() error {
				mf, err := recall.TrainMF(e.ratings, b.cfg.MF)
				e.mf = mf
				return errors.Annotate(err, "factor model")
			})
		})
	} else {
		log.Logger().Warn("no interactions, collaborative and factor modes disabled")
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nodes, err := config.DefaultFactory().BuildNodes(b.cfg.Filters)
	if err != nil {
		return nil, errors.Annotate(err, "build configured filters")
	}
	e.extra = nodes
	if b.store != nil && b.cfg.Data.BlacklistKey != "" {
		e.blacklist = filter.NewBlacklistFilter(nil, filter.NewStoreAdapter(b.store), b.cfg.Data.BlacklistKey)
	}

	log.Logger().Info("engine built",
		zap.Int("restaurants", e.catalog.Len()),
		zap.Int("users", e.ratings.NumUsers()),
		zap.Int("ratings", e.ratings.Count()))
	return e, nil
}

// step 执行一个构建步骤并记录耗时。
func (e *Engine) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	cost := time.Since(start)
	e.metrics.buildStep.WithLabelValues(name).Observe(cost.Seconds())
	if err != nil {
		return err
	}
	log.Logger().Info("build step done", zap.String("step", name), zap.Duration("cost", cost))
	return nil
}
