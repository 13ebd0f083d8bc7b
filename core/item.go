package core

import "github.com/rushteam/dinekit/pkg/utils"

// Item 是推荐链路中的统一承载结构：餐厅、分数、特征、标签。
// Features 保存各阶段计算出的分值（content / location / similarity / predicted ...），
// Labels 用于解释与观测；Score 是当前阶段的排序分。
type Item struct {
	ID         string
	Score      float64
	Restaurant *Restaurant
	Features   map[string]float64
	Labels     map[string]utils.Label
}

// NewItem 用餐厅创建 Item，并写入 cost 以及已有的评分特征。
func NewItem(r *Restaurant) *Item {
	it := &Item{
		ID:         r.ID,
		Restaurant: r,
		Features:   make(map[string]float64, 4),
		Labels:     make(map[string]utils.Label),
	}
	it.Features[FeatureCost] = r.AverageCost
	if r.DeliveryRating.Rated {
		it.Features[FeatureDeliveryRating] = r.DeliveryRating.Value
	}
	if r.DineInRating.Rated {
		it.Features[FeatureDinnerRating] = r.DineInRating.Value
	}
	return it
}

// 特征 key
const (
	FeatureCost           = "cost"
	FeatureDeliveryRating = "delivery_rating"
	FeatureDinnerRating   = "dinner_rating"
	FeatureContent        = "content"
	FeatureLocation       = "location"
	FeatureSimilarity     = "similarity"
	FeaturePredicted      = "predicted"
)

// RatingFeature 返回就餐方式对应的评分特征 key。
func RatingFeature(mode ServiceMode) string {
	if mode == ServiceDelivery {
		return FeatureDeliveryRating
	}
	return FeatureDinnerRating
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
