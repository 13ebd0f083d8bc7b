// Package vector 提供稀疏词向量之间的余弦相似度、TopK 检索与语料两两相似度矩阵。
package vector

import (
	"math"
	"sort"

	"github.com/rushteam/dinekit/feature"
)

// Scored 是 TopK 结果：语料下标与分数。
type Scored struct {
	Index int
	Score float64
}

// Cosine 计算余弦相似度；任一向量模为 0 时返回 0。
func Cosine(a, b feature.Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func norm(v feature.Vector) float64 {
	var s float64
	for _, w := range v {
		s += w * w
	}
	return math.Sqrt(s)
}

// TopK 返回与 query 最相似的 k 个语料下标，分数降序，同分按语料顺序。
// k <= 0 时返回全部。
func TopK(query feature.Vector, corpus []feature.Vector, k int) []Scored {
	scores := make([]float64, len(corpus))
	for i, v := range corpus {
		scores[i] = Cosine(query, v)
	}
	return rank(scores, k, -1)
}

// Rank 对一行分数排序取前 k，exclude >= 0 时跳过该下标。
func Rank(scores []float64, k, exclude int) []Scored {
	return rank(scores, k, exclude)
}

func rank(scores []float64, k, exclude int) []Scored {
	out := make([]Scored, 0, len(scores))
	for i, s := range scores {
		if i == exclude {
			continue
		}
		out = append(out, Scored{Index: i, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
