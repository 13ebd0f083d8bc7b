// Package catalog 是餐厅目录（Catalog Store）：加载后只读的内存表。
//
// 迭代顺序即加载顺序，其他组件以此作为隐式的稳定 tie-break。
package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// Catalog 是只读的餐厅目录。
type Catalog struct {
	restaurants []*core.Restaurant
	byID        map[string]int
	byName      map[string]int
}

// New 校验并构建目录：ID 非空且唯一、名称非空、人均消费非负。
// 任意一行不合法都会使整个目录构建失败。
func New(restaurants []core.Restaurant) (*Catalog, error) {
	c := &Catalog{
		restaurants: make([]*core.Restaurant, 0, len(restaurants)),
		byID:        make(map[string]int, len(restaurants)),
		byName:      make(map[string]int, len(restaurants)),
	}
	for i := range restaurants {
		r := restaurants[i]
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		if r.ID == "" {
			return nil, invalid(fmt.Sprintf("catalog: row %d: empty restaurant id", i+1))
		}
		if r.Name == "" {
			return nil, invalid(fmt.Sprintf("catalog: row %d: restaurant %s has no name", i+1, r.ID))
		}
		if !(r.AverageCost >= 0) || math.IsInf(r.AverageCost, 1) {
			return nil, invalid(fmt.Sprintf("catalog: row %d: restaurant %s has invalid cost %v", i+1, r.ID, r.AverageCost))
		}
		if !finiteRating(r.DeliveryRating) || !finiteRating(r.DineInRating) {
			return nil, invalid(fmt.Sprintf("catalog: row %d: restaurant %s has a non-finite rating", i+1, r.ID))
		}
		if _, ok := c.byID[r.ID]; ok {
			return nil, invalid(fmt.Sprintf("catalog: row %d: duplicate restaurant id %s", i+1, r.ID))
		}
		r.Cuisines = append([]string(nil), r.Cuisines...)
		c.byID[r.ID] = len(c.restaurants)
		if _, ok := c.byName[r.Name]; !ok {
			c.byName[r.Name] = len(c.restaurants)
		}
		c.restaurants = append(c.restaurants, &r)
	}
	return c, nil
}

// Get 按 ID 获取餐厅。
func (c *Catalog) Get(id string) (*core.Restaurant, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("catalog: restaurant %q not found", id))
	}
	return c.restaurants[i], nil
}

// GetByName 按名称精确查找，同名时返回加载顺序中的第一家。
func (c *Catalog) GetByName(name string) (*core.Restaurant, error) {
	i, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("catalog: restaurant named %q not found", name))
	}
	return c.restaurants[i], nil
}

// Index 返回餐厅在目录中的位置。
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// At 返回位置 i 上的餐厅。
func (c *Catalog) At(i int) *core.Restaurant {
	return c.restaurants[i]
}

// Filter 按加载顺序返回满足 predicate 的餐厅。
func (c *Catalog) Filter(predicate func(*core.Restaurant) bool) []*core.Restaurant {
	out := make([]*core.Restaurant, 0)
	for _, r := range c.restaurants {
		if predicate(r) {
			out = append(out, r)
		}
	}
	return out
}

// All 按加载顺序返回全部餐厅。返回的切片是副本，餐厅本身只读。
func (c *Catalog) All() []*core.Restaurant {
	return append([]*core.Restaurant(nil), c.restaurants...)
}

// Len 返回餐厅数量。
func (c *Catalog) Len() int {
	return len(c.restaurants)
}

func invalid(msg string) error {
	return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, msg)
}

func finiteRating(r core.Rating) bool {
	return !r.Rated || !(math.IsNaN(r.Value) || math.IsInf(r.Value, 0))
}
