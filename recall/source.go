// Package recall 提供候选生成：目录扫描、内容相似召回、协同过滤与矩阵分解。
package recall

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/utils"
)

// Source 表示一个可复用的召回源（目录/内容/CF/MF）。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Node 把 Source 包装为 Pipeline 的召回节点，忽略上游 items。
type Node struct {
	Source Source
}

func (n *Node) Name() string        { return n.Source.Name() }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	items, err := n.Source.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	// 记录召回来源 label，方便 explain / 观测
	for _, it := range items {
		it.PutLabel("recall_source", utils.RecallLabel(n.Source.Name()))
	}
	return items, nil
}
