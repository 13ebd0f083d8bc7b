package filter

import (
	"context"
	"slices"

	"github.com/rushteam/dinekit/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉黑名单中的餐厅。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单餐厅 ID 列表
	ItemIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

var _ RequestFilter = (*BlacklistFilter)(nil)

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单餐厅 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(itemIDs []string, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &BlacklistFilter{
		ItemIDs: itemIDs,
		Store:   store,
		Key:     key,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

// Bind 从 Store 读取一次黑名单，合并内存列表后返回本次请求使用的过滤器。
// 读取失败时返回只含内存列表的过滤器和错误。
func (f *BlacklistFilter) Bind(ctx context.Context, _ *core.RecommendContext) (Filter, error) {
	if f.Store == nil || f.Key == "" {
		return f, nil
	}
	blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
	if err != nil {
		return &BlacklistFilter{ItemIDs: f.ItemIDs}, err
	}
	ids := make([]string, 0, len(f.ItemIDs)+len(blacklist))
	ids = append(ids, f.ItemIDs...)
	ids = append(ids, blacklist...)
	return &BlacklistFilter{ItemIDs: ids}, nil
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if slices.Contains(f.ItemIDs, item.ID) {
		return true, nil
	}

	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err != nil {
			return false, err
		}
		if slices.Contains(blacklist, item.ID) {
			return true, nil
		}
	}

	return false, nil
}
