package store

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"

	"github.com/rushteam/dinekit/core"
)

// TableSource 从 KV 存储读取以 JSON 数组保存的数据表：
//   - {prefix}:restaurants  -> []core.Restaurant
//   - {prefix}:interactions -> []core.Interaction（缺失时视为空表）
type TableSource struct {
	Store  core.Store
	Prefix string
}

// NewTableSource 创建数据表读取器，prefix 为空时使用 "dinekit"。
func NewTableSource(s core.Store, prefix string) *TableSource {
	if prefix == "" {
		prefix = "dinekit"
	}
	return &TableSource{Store: s, Prefix: prefix}
}

// RestaurantsKey 返回餐厅表的 key。
func (t *TableSource) RestaurantsKey() string { return t.Prefix + ":restaurants" }

// InteractionsKey 返回交互表的 key。
func (t *TableSource) InteractionsKey() string { return t.Prefix + ":interactions" }

// Load 读取两张表，餐厅表必须存在。
func (t *TableSource) Load(ctx context.Context) ([]core.Restaurant, []core.Interaction, error) {
	data, err := t.Store.BatchGet(ctx, []string{t.RestaurantsKey(), t.InteractionsKey()})
	if err != nil {
		return nil, nil, errors.Annotatef(err, "load tables from %s", t.Store.Name())
	}

	raw, ok := data[t.RestaurantsKey()]
	if !ok {
		return nil, nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
			"store: restaurants table "+t.RestaurantsKey()+" not found")
	}
	var restaurants []core.Restaurant
	if err := json.Unmarshal(raw, &restaurants); err != nil {
		return nil, nil, errors.Annotatef(err, "decode %s", t.RestaurantsKey())
	}

	var interactions []core.Interaction
	if raw, ok := data[t.InteractionsKey()]; ok {
		if err := json.Unmarshal(raw, &interactions); err != nil {
			return nil, nil, errors.Annotatef(err, "decode %s", t.InteractionsKey())
		}
	}
	return restaurants, interactions, nil
}

// Save 把两张表写入存储，用于导入 CSV 后共享给其他进程。
func (t *TableSource) Save(ctx context.Context, restaurants []core.Restaurant, interactions []core.Interaction) error {
	r, err := json.Marshal(restaurants)
	if err != nil {
		return errors.Trace(err)
	}
	i, err := json.Marshal(interactions)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(t.Store.BatchSet(ctx, map[string][]byte{
		t.RestaurantsKey():  r,
		t.InteractionsKey(): i,
	}), "save tables to %s", t.Store.Name())
}
