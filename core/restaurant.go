package core

import "strings"

// ServiceMode 是用户选择的就餐方式。
//   - 知识过滤：delivery / takeaway / indoor（按能力标记过滤）
//   - 内容推荐：delivery / dinner（决定使用哪一列评分）
type ServiceMode string

const (
	ServiceDelivery ServiceMode = "delivery"
	ServiceTakeaway ServiceMode = "takeaway"
	ServiceIndoor   ServiceMode = "indoor"
	ServiceDinner   ServiceMode = "dinner"
)

func (m ServiceMode) String() string { return string(m) }

// Rating 是可缺省的评分，Rated 为 false 表示"未评分"（原始数据中的 "-" 或空值）。
type Rating struct {
	Value float64 `json:"value"`
	Rated bool    `json:"rated"`
}

// Rated 构造一个已评分的 Rating。
func Rated(v float64) Rating {
	return Rating{Value: v, Rated: true}
}

// Restaurant 是餐厅目录中的一条强类型记录，在导入阶段完成解析与校验。
type Restaurant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Cuisines      []string `json:"cuisines"`
	KnownFor      string   `json:"known_for"`
	PopularDishes string   `json:"popular_dishes"`
	Area          string   `json:"area"`
	AverageCost   float64  `json:"average_cost"`

	VegOnly       bool `json:"veg_only"`
	IndoorSeating bool `json:"indoor_seating"`
	Takeaway      bool `json:"takeaway"`
	HomeDelivery  bool `json:"home_delivery"`

	DeliveryRating Rating `json:"delivery_rating"`
	DineInRating   Rating `json:"dine_in_rating"`
}

// CuisineText 返回以 ", " 拼接的菜系文本，与原始表格中的 Cuisines 列一致。
func (r *Restaurant) CuisineText() string {
	return strings.Join(r.Cuisines, ", ")
}

// Supports 判断餐厅是否提供某种就餐方式（知识过滤使用）。
func (r *Restaurant) Supports(mode ServiceMode) bool {
	switch mode {
	case ServiceDelivery:
		return r.HomeDelivery
	case ServiceTakeaway:
		return r.Takeaway
	case ServiceIndoor:
		return r.IndoorSeating
	default:
		return false
	}
}

// RatingFor 返回某种就餐方式对应的评分列：delivery 使用外卖评分，其余使用堂食评分。
func (r *Restaurant) RatingFor(mode ServiceMode) Rating {
	if mode == ServiceDelivery {
		return r.DeliveryRating
	}
	return r.DineInRating
}
