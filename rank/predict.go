package rank

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/log"
	"github.com/rushteam/dinekit/pkg/utils"
)

// Predictor 预测用户对餐厅的评分。
type Predictor interface {
	Name() string
	Predict(userID, itemID string) (float64, error)
}

// PredictNode 用 Predictor 为 rctx.UserID 重新打分并按预测分降序排序（稳定）。
// 不在模型训练空间内或无法预测的候选被跳过并记录告警，不中断请求。
type PredictNode struct {
	Model Predictor
}

func (n *PredictNode) Name() string        { return "rank.predict" }
func (n *PredictNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PredictNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		score, err := n.Model.Predict(rctx.UserID, it.ID)
		if core.IsNotFound(err) || core.IsInsufficientData(err) {
			log.Logger().Warn("skip candidate without prediction",
				zap.String("model", n.Model.Name()),
				zap.String("user_id", rctx.UserID),
				zap.String("restaurant_id", it.ID),
				zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		it.Score = score
		it.Features[core.FeaturePredicted] = score
		it.PutLabel("rank_model", utils.RankLabel(n.Model.Name()))
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
