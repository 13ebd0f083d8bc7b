// Package store 提供 core.Store 的实现（内存 / Redis）以及餐厅目录与交互表的导入：
// CSV 解析与以 JSON 形式保存在 KV 存储中的数据表。
//
// 示例：
//
//	var s core.Store = NewMemoryStore()
//	restaurants, interactions, err := NewTableSource(s, "dinekit").Load(ctx)
package store
