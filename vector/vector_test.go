package vector

import (
	"context"
	"testing"

	"github.com/rushteam/dinekit/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	a := feature.Vector{"pizza": 1, "pasta": 1}
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-9)
	assert.InDelta(t, 0.5, Cosine(a, feature.Vector{"pizza": 1, "sushi": 1}), 1e-9)
	assert.Equal(t, 0.0, Cosine(a, feature.Vector{}))
	assert.Equal(t, 0.0, Cosine(a, feature.Vector{"pizza": 0}))
}

func TestTopK(t *testing.T) {
	corpus := []feature.Vector{
		{"sushi": 1},
		{"pizza": 1},
		{"sushi": 1, "ramen": 1},
		{"pizza": 1},
	}
	query := feature.Vector{"pizza": 1}

	got := TopK(query, corpus, 3)
	require.Len(t, got, 3)
	// 同分按语料顺序
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, 3, got[1].Index)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	for _, s := range got {
		assert.Less(t, s.Index, len(corpus))
	}

	assert.Len(t, TopK(query, corpus, 0), 4)
	assert.Len(t, TopK(query, corpus, 10), 4)
	assert.Empty(t, TopK(query, nil, 3))
	assert.Equal(t, got, TopK(query, corpus, 3))
}

func TestMatrix(t *testing.T) {
	docs := []string{"sushi japanese", "pizza italian", "sushi ramen", "", "pizza pasta italian"}
	v := feature.Fit(docs, feature.WeightingTFIDF)

	m, err := NewMatrix(context.Background(), v.Vectors(), 2)
	require.NoError(t, err)
	require.Equal(t, len(docs), m.Len())

	for i := 0; i < m.Len(); i++ {
		if i == 3 {
			assert.Equal(t, 0.0, m.At(i, i), "empty document has no self-similarity")
		} else {
			assert.InDelta(t, 1.0, m.At(i, i), 1e-9)
		}
		for j := 0; j < m.Len(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}

	n := m.Neighbors(0, 2)
	require.Len(t, n, 2)
	assert.Equal(t, 2, n[0].Index)
	for _, s := range n {
		assert.NotEqual(t, 0, s.Index)
	}
}

func TestMatrix_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMatrix(ctx, []feature.Vector{{"a": 1}, {"b": 1}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
