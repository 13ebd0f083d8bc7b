package interaction

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/dinekit/catalog"
)

// Entry 是稀疏行/列中的一个观测值。
type Entry struct {
	Index int
	Value float64
}

// RatingMatrix 是稀疏的用户-餐厅评分矩阵，只保存观测到的 (user, item) 对。
//
// 用户按首次出现顺序编号；餐厅只包含至少被评过一次的，按目录顺序编号。
// 同一 (user, item) 的重复交互取平均分。
type RatingMatrix struct {
	Users *Index
	Items *Index

	rows [][]Entry // 按 item 下标升序
	cols [][]Entry // 按 user 下标升序
}

// NewRatingMatrix 从交互表构建评分矩阵。
func NewRatingMatrix(s *Store, cat *catalog.Catalog) *RatingMatrix {
	m := &RatingMatrix{Users: NewIndex(), Items: NewIndex()}

	rated := make(map[string]bool)
	for _, in := range s.interactions {
		rated[in.RestaurantID] = true
	}
	for _, r := range cat.All() {
		if rated[r.ID] {
			m.Items.Add(r.ID)
		}
	}
	for _, u := range s.users {
		m.Users.Add(u)
	}

	type cell struct{ sum, n float64 }
	cells := make([]map[int]*cell, m.Users.Len())
	for _, in := range s.interactions {
		u, _ := m.Users.Lookup(in.UserID)
		i, _ := m.Items.Lookup(in.RestaurantID)
		if cells[u] == nil {
			cells[u] = make(map[int]*cell)
		}
		c, ok := cells[u][i]
		if !ok {
			c = &cell{}
			cells[u][i] = c
		}
		c.sum += in.Rating
		c.n++
	}

	m.rows = make([][]Entry, m.Users.Len())
	m.cols = make([][]Entry, m.Items.Len())
	for u, row := range cells {
		for i, c := range row {
			m.rows[u] = append(m.rows[u], Entry{Index: i, Value: c.sum / c.n})
		}
		sort.Slice(m.rows[u], func(a, b int) bool { return m.rows[u][a].Index < m.rows[u][b].Index })
		for _, e := range m.rows[u] {
			m.cols[e.Index] = append(m.cols[e.Index], Entry{Index: u, Value: e.Value})
		}
	}
	return m
}

// NumUsers 返回用户数。
func (m *RatingMatrix) NumUsers() int { return m.Users.Len() }

// NumItems 返回餐厅数。
func (m *RatingMatrix) NumItems() int { return m.Items.Len() }

// Count 返回观测值个数。
func (m *RatingMatrix) Count() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// Get 返回 (u, i) 的评分；未观测时 ok 为 false。
func (m *RatingMatrix) Get(u, i int) (float64, bool) {
	row := m.rows[u]
	k := sort.Search(len(row), func(k int) bool { return row[k].Index >= i })
	if k < len(row) && row[k].Index == i {
		return row[k].Value, true
	}
	return 0, false
}

// Row 返回用户 u 的观测行（按 item 下标升序），调用方不得修改。
func (m *RatingMatrix) Row(u int) []Entry { return m.rows[u] }

// Col 返回餐厅 i 的观测列（按 user 下标升序），调用方不得修改。
func (m *RatingMatrix) Col(i int) []Entry { return m.cols[i] }

// Dense 返回零填充的稠密矩阵（users × items），0 表示未观测。
// 只用于矩阵分解的线性代数计算，调用方需保证矩阵非空。
func (m *RatingMatrix) Dense() *mat.Dense {
	d := mat.NewDense(m.NumUsers(), m.NumItems(), nil)
	for u, row := range m.rows {
		for _, e := range row {
			d.Set(u, e.Index, e.Value)
		}
	}
	return d
}
