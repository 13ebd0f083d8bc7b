package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/interaction"
)

// UserBasedCF 是基于用户的协同过滤（User-based Collaborative Filtering, User-CF）。
//
// 核心思想："兴趣相似的用户，喜欢相似的餐厅"
//
// 算法流程：
//  1. 用户 → 评分行向量（未评分位置记 0，仅参与余弦计算）
//  2. 计算用户两两余弦相似度
//  3. 预测：对评过该餐厅的其他用户，按正相似度加权平均其评分
//  4. 推荐目标用户未评过的餐厅中预测分最高的 N 家
//
// 未评分的格子不进入预测的分子和分母。构建后只读。
type UserBasedCF struct {
	matrix *interaction.RatingMatrix
	sim    []float64 // users × users

	// TopKNeighbors > 0 时只使用相似度最高的 K 个邻居
	TopKNeighbors int
}

// NewUserBasedCF 计算用户两两相似度。
func NewUserBasedCF(m *interaction.RatingMatrix) *UserBasedCF {
	n := m.NumUsers()
	cf := &UserBasedCF{matrix: m, sim: make([]float64, n*n)}

	norms := make([]float64, n)
	for u := 0; u < n; u++ {
		values := lo.Map(m.Row(u), func(e interaction.Entry, _ int) float64 { return e.Value })
		norms[u] = floats.Norm(values, 2)
	}
	for u := 0; u < n; u++ {
		for v := u; v < n; v++ {
			s := sparseCosine(m.Row(u), m.Row(v), norms[u], norms[v])
			cf.sim[u*n+v] = s
			cf.sim[v*n+u] = s
		}
	}
	return cf
}

func sparseCosine(a, b []interaction.Entry, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].Index == b[j].Index:
			dot += a[i].Value * b[j].Value
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}
	return dot / (na * nb)
}

func (r *UserBasedCF) Name() string { return "recall.u2i" }

// Similarity 返回两个用户的相似度。
func (r *UserBasedCF) Similarity(a, b string) (float64, error) {
	u, err := r.user(a)
	if err != nil {
		return 0, err
	}
	v, err := r.user(b)
	if err != nil {
		return 0, err
	}
	return r.sim[u*r.matrix.NumUsers()+v], nil
}

// Predict 预测 user 对 item 的评分。
// 用户未知返回 NOT_FOUND；没有任何正相似度的邻居评过该餐厅时返回 INSUFFICIENT_DATA。
func (r *UserBasedCF) Predict(userID, itemID string) (float64, error) {
	u, err := r.user(userID)
	if err != nil {
		return 0, err
	}
	i, ok := r.matrix.Items.Lookup(itemID)
	if !ok {
		return 0, insufficient(fmt.Sprintf("cf: restaurant %q has no ratings", itemID))
	}
	return r.predict(u, i, r.neighbors(u))
}

func (r *UserBasedCF) predict(u, i int, allowed map[int]bool) (float64, error) {
	n := r.matrix.NumUsers()
	var num, den float64
	for _, e := range r.matrix.Col(i) {
		if e.Index == u {
			continue
		}
		if allowed != nil && !allowed[e.Index] {
			continue
		}
		s := r.sim[u*n+e.Index]
		if s <= 0 {
			continue
		}
		num += s * e.Value
		den += s
	}
	if den == 0 {
		return 0, insufficient(fmt.Sprintf("cf: no neighbor of user %q rated restaurant %q",
			r.matrix.Users.Name(u), r.matrix.Items.Name(i)))
	}
	return num / den, nil
}

// neighbors 返回允许参与预测的邻居集合，nil 表示全部。
func (r *UserBasedCF) neighbors(u int) map[int]bool {
	if r.TopKNeighbors <= 0 {
		return nil
	}
	n := r.matrix.NumUsers()
	others := make([]int, 0, n-1)
	for v := 0; v < n; v++ {
		if v != u {
			others = append(others, v)
		}
	}
	sort.SliceStable(others, func(a, b int) bool {
		return r.sim[u*n+others[a]] > r.sim[u*n+others[b]]
	})
	if len(others) > r.TopKNeighbors {
		others = others[:r.TopKNeighbors]
	}
	return lo.SliceToMap(others, func(v int) (int, bool) { return v, true })
}

// Recommend 为用户推荐 n 家餐厅（n <= 0 返回全部），分数降序，同分按餐厅 ID。
// excludeRated 为 true 时跳过用户评过的餐厅；无法预测的候选被丢弃。
func (r *UserBasedCF) Recommend(userID string, excludeRated bool, n int) ([]core.Scored, error) {
	u, err := r.user(userID)
	if err != nil {
		return nil, err
	}
	allowed := r.neighbors(u)
	out := make([]core.Scored, 0)
	for i := 0; i < r.matrix.NumItems(); i++ {
		if _, rated := r.matrix.Get(u, i); rated && excludeRated {
			continue
		}
		score, err := r.predict(u, i, allowed)
		if core.IsInsufficientData(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, core.Scored{ID: r.matrix.Items.Name(i), Score: score})
	}
	return topScored(out, n), nil
}

// TopN 实现 Recommender。
func (r *UserBasedCF) TopN(userID string, excludeRated bool, n int) ([]core.Scored, error) {
	return r.Recommend(userID, excludeRated, n)
}

// Recall 实现 Source：为 rctx.UserID 推荐 Params[top_n] 家未评过的餐厅。
func (r *UserBasedCF) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	return (&UserRecall{Model: r}).Recall(ctx, rctx)
}

func (r *UserBasedCF) user(id string) (int, error) {
	u, ok := r.matrix.Users.Lookup(id)
	if !ok {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFound,
			fmt.Sprintf("cf: user %q not found", id))
	}
	return u, nil
}

func insufficient(msg string) error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeInsufficientData, msg)
}

// topScored 按分数降序、ID 升序排序并截取前 n 个。
func topScored(s []core.Scored, n int) []core.Scored {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].ID < s[j].ID
	})
	if n > 0 && len(s) > n {
		s = s[:n]
	}
	return s
}
