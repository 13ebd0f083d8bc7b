package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/dinekit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopNNode(t *testing.T) {
	in := []*core.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		n    int
		want int
	}{
		{n: 2, want: 2},
		{n: 3, want: 3},
		{n: 10, want: 3},
		{n: 0, want: 3},
		{n: -1, want: 3},
	}
	for _, tt := range tests {
		out, err := (&TopNNode{N: tt.n}).Process(context.Background(), nil, in)
		require.NoError(t, err)
		assert.Len(t, out, tt.want)
	}
	out, _ := (&TopNNode{N: 2}).Process(context.Background(), nil, in)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}
