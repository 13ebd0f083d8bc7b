package pipeline

import (
	"context"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/log"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链，按顺序执行。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行各 Node，任一 Node 出错即中止。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, errors.Annotatef(err, "node %s", node.Name())
		}
		log.Logger().Debug("pipeline node done",
			zap.String("node", node.Name()),
			zap.String("kind", string(node.Kind())),
			zap.Int("in", len(cur)),
			zap.Int("out", len(next)),
			zap.Duration("cost", time.Since(start)))
		cur = next
	}
	return cur, nil
}
