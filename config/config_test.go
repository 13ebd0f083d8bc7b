package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/config"
	_ "github.com/rushteam/dinekit/config/builders"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/recall"
	"github.com/rushteam/dinekit/rerank"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 10, cfg.ShortlistSize)
	assert.Equal(t, recall.MethodSVD, cfg.MF.Method)
	assert.Equal(t, 20, cfg.DefaultFactorRank())
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
top_n: 3
mf:
  method: als
  rank: 4
data:
  restaurants: r.csv
  blacklist_key: dinekit:blacklist
filters:
  - type: filter.expr
    config:
      expr: "restaurant.home_delivery"
  - type: rerank.topn
    config:
      n: 2
`))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 10, cfg.ShortlistSize)
	assert.Equal(t, recall.MethodALS, cfg.MF.Method)
	assert.Equal(t, 4, cfg.MF.Rank)
	assert.Equal(t, int64(42), cfg.MF.Seed)
	assert.Equal(t, "r.csv", cfg.Data.Restaurants)
	assert.Equal(t, "dinekit", cfg.Data.RedisPrefix)
	assert.Equal(t, "dinekit:blacklist", cfg.Data.BlacklistKey)

	nodes, err := config.DefaultFactory().BuildNodes(cfg.Filters)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.IsType(t, &filter.FilterNode{}, nodes[0])
	assert.Equal(t, &rerank.TopNNode{N: 2}, nodes[1])
}

func TestParseInvalid(t *testing.T) {
	_, err := config.Parse([]byte("top_n: 0\n"))
	assert.True(t, core.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "top_n")

	_, err = config.Parse([]byte("mf:\n  method: nmf\n"))
	assert.True(t, core.IsInvalidInput(err))

	_, err = config.Parse([]byte("filters:\n  - type: rank.lr\n"))
	assert.True(t, core.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "filter.expr")

	_, err = config.Parse([]byte("top_n: [1"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shortlist_size: 4\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ShortlistSize)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuilders(t *testing.T) {
	f := config.DefaultFactory()
	assert.Contains(t, config.SupportedTypes(), "filter.blacklist")

	node, err := f.Build("filter.blacklist", map[string]any{"ids": []any{"r1", "r2"}})
	require.NoError(t, err)
	items := []*core.Item{{ID: "r1"}, {ID: "r3"}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "r3", out[0].ID)

	_, err = f.Build("filter.blacklist", map[string]any{})
	assert.Error(t, err)
	_, err = f.Build("filter.expr", map[string]any{"expr": "restaurant.cost +"})
	assert.Error(t, err)
	_, err = f.Build("rerank.topn", map[string]any{"n": 0})
	assert.Error(t, err)
	_, err = f.Build("filter.budget", nil)
	assert.NoError(t, err)
}
