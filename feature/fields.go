package feature

import (
	"strings"

	"github.com/rushteam/dinekit/core"
)

// Fields 选择参与向量化的餐厅文本字段（位掩码）。
type Fields uint8

const (
	FieldCuisines Fields = 1 << iota
	FieldKnownFor
	FieldPopularDishes
	FieldArea
)

// 各推荐模式使用的字段组合
const (
	ContentQueryFields      = FieldCuisines | FieldPopularDishes
	RestaurantContentFields = FieldCuisines | FieldPopularDishes | FieldKnownFor
	ShortlistFields         = FieldCuisines | FieldKnownFor
	LocationFields          = FieldArea
)

// Text 按固定顺序（cuisines, known-for, popular dishes, area）拼接选中的字段。
func (f Fields) Text(r *core.Restaurant) string {
	parts := make([]string, 0, 4)
	if f&FieldCuisines != 0 {
		parts = append(parts, r.CuisineText())
	}
	if f&FieldKnownFor != 0 {
		parts = append(parts, r.KnownFor)
	}
	if f&FieldPopularDishes != 0 {
		parts = append(parts, r.PopularDishes)
	}
	if f&FieldArea != 0 {
		parts = append(parts, r.Area)
	}
	return strings.Join(parts, " ")
}

// Documents 把餐厅列表转换为文档列表。
func (f Fields) Documents(restaurants []*core.Restaurant) []string {
	docs := make([]string, len(restaurants))
	for i, r := range restaurants {
		docs[i] = f.Text(r)
	}
	return docs
}
