package core

// 评分区间（闭区间）
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Interaction 是一条用户-餐厅交互记录。
type Interaction struct {
	UserID       string  `json:"user_id"`
	RestaurantID string  `json:"rest_id"`
	Rating       float64 `json:"rating"`
	Cost         float64 `json:"cost"`
}

// Scored 是排序结果中的 (ID, 分数) 对。
type Scored struct {
	ID    string
	Score float64
}
