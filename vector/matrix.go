package vector

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/dinekit/feature"
)

// Matrix 是语料两两之间的余弦相似度矩阵（n × n，对称）。构建后只读。
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix 逐行并发计算上三角并镜像到下三角，jobs <= 0 时使用 CPU 核数。
func NewMatrix(ctx context.Context, corpus []feature.Vector, jobs int) (*Matrix, error) {
	n := len(corpus)
	m := &Matrix{n: n, data: make([]float64, n*n)}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// 每一行只写自己的上三角部分，互不重叠
			if norm(corpus[i]) > 0 {
				m.data[i*n+i] = 1
			}
			for j := i + 1; j < n; j++ {
				m.data[i*n+j] = Cosine(corpus[i], corpus[j])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.data[j*n+i] = m.data[i*n+j]
		}
	}
	return m, nil
}

// At 返回 (i, j) 的相似度。
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row 返回第 i 行，调用方不得修改。
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}

// Len 返回语料大小。
func (m *Matrix) Len() int {
	return m.n
}

// Neighbors 返回与 i 最相似的 k 个下标（不含 i 自身）。
func (m *Matrix) Neighbors(i, k int) []Scored {
	return Rank(m.Row(i), k, i)
}
