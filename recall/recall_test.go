package recall

import (
	"context"
	"testing"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/feature"
	"github.com/rushteam/dinekit/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, rows ...core.Restaurant) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(rows)
	require.NoError(t, err)
	return c
}

func newMatrix(t *testing.T, cat *catalog.Catalog, ins []core.Interaction) *interaction.RatingMatrix {
	t.Helper()
	s, err := interaction.NewStore(ins, cat)
	require.NoError(t, err)
	return interaction.NewRatingMatrix(s, cat)
}

func cfFixture(t *testing.T) *UserBasedCF {
	cat := newCatalog(t,
		core.Restaurant{ID: "r1", Name: "One"},
		core.Restaurant{ID: "r2", Name: "Two"},
		core.Restaurant{ID: "r3", Name: "Three"},
		core.Restaurant{ID: "r4", Name: "Four"},
	)
	m := newMatrix(t, cat, []core.Interaction{
		{UserID: "u1", RestaurantID: "r1", Rating: 5},
		{UserID: "u1", RestaurantID: "r2", Rating: 3},
		{UserID: "u2", RestaurantID: "r1", Rating: 4},
		{UserID: "u2", RestaurantID: "r2", Rating: 3},
		{UserID: "u2", RestaurantID: "r3", Rating: 2},
		{UserID: "u3", RestaurantID: "r3", Rating: 5},
		{UserID: "u4", RestaurantID: "r2", Rating: 3},
	})
	return NewUserBasedCF(m)
}

func TestUserBasedCF_Similarity(t *testing.T) {
	cf := cfFixture(t)
	s, err := cf.Similarity("u1", "u1")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9)

	a, _ := cf.Similarity("u1", "u2")
	b, _ := cf.Similarity("u2", "u1")
	assert.Equal(t, a, b)

	s, _ = cf.Similarity("u1", "u3")
	assert.Equal(t, 0.0, s)
}

func TestUserBasedCF_PredictIgnoresUnratedCells(t *testing.T) {
	cf := cfFixture(t)
	// u4 与 u1 相似但没有评过 r3，不能拉低分母；u3 与 u1 相似度为 0，也不参与
	got, err := cf.Predict("u1", "r3")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestUserBasedCF_PredictErrors(t *testing.T) {
	cf := cfFixture(t)

	_, err := cf.Predict("ghost", "r1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	// 没有人评过 r4
	_, err = cf.Predict("u1", "r4")
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	assert.True(t, core.IsInsufficientData(err))
}

func TestUserBasedCF_Recommend(t *testing.T) {
	cf := cfFixture(t)

	got, err := cf.Recommend("u1", true, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)

	all, err := cf.Recommend("u1", false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	again, err := cf.Recommend("u1", false, 0)
	require.NoError(t, err)
	assert.Equal(t, all, again)

	_, err = cf.Recommend("ghost", true, 5)
	assert.True(t, core.IsNotFound(err))
}

func TestUserBasedCF_TopKNeighbors(t *testing.T) {
	cf := cfFixture(t)
	full, err := cf.Predict("u4", "r1")
	require.NoError(t, err)

	// u4 最相似的是 u2，只用 u2 的评分
	cf.TopKNeighbors = 1
	got, err := cf.Predict("u4", "r1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)
	assert.Greater(t, full, got)
}

func mfFixture(t *testing.T) *interaction.RatingMatrix {
	cat := newCatalog(t,
		core.Restaurant{ID: "r1", Name: "One"},
		core.Restaurant{ID: "r2", Name: "Two"},
		core.Restaurant{ID: "r3", Name: "Three"},
	)
	// 秩为 1 的完整评分矩阵
	return newMatrix(t, cat, []core.Interaction{
		{UserID: "u1", RestaurantID: "r1", Rating: 1},
		{UserID: "u1", RestaurantID: "r2", Rating: 2},
		{UserID: "u1", RestaurantID: "r3", Rating: 2},
		{UserID: "u2", RestaurantID: "r1", Rating: 2},
		{UserID: "u2", RestaurantID: "r2", Rating: 4},
		{UserID: "u2", RestaurantID: "r3", Rating: 4},
		{UserID: "u3", RestaurantID: "r1", Rating: 1},
		{UserID: "u3", RestaurantID: "r2", Rating: 2},
		{UserID: "u3", RestaurantID: "r3", Rating: 2},
	})
}

func TestTrainMF_SVD(t *testing.T) {
	m := mfFixture(t)
	model, err := TrainMF(m, MFConfig{Rank: 20})
	require.NoError(t, err)
	assert.Equal(t, MethodSVD, model.Method())
	assert.Equal(t, 2, model.Rank(), "rank is clamped to min(users, items) - 1")

	got, err := model.Predict("u2", "r2")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)

	uf, err := model.UserFactor("u1")
	require.NoError(t, err)
	assert.Len(t, uf, 2)
	itf, err := model.ItemFactor("r3")
	require.NoError(t, err)
	assert.Len(t, itf, 2)

	_, err = model.Predict("ghost", "r1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = model.Predict("u1", "r9")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestTrainMF_TopN(t *testing.T) {
	model, err := TrainMF(mfFixture(t), MFConfig{Rank: 2})
	require.NoError(t, err)

	got, err := model.TopN("u2", false, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"r2", "r3"}, []string{got[0].ID, got[1].ID})

	rated, err := model.TopN("u2", true, 5)
	require.NoError(t, err)
	assert.Empty(t, rated)

	_, err = model.TopN("ghost", true, 5)
	assert.True(t, core.IsNotFound(err))
}

func TestTrainMF_ALS(t *testing.T) {
	m := mfFixture(t)
	cfg := MFConfig{Method: MethodALS, Rank: 2, Seed: 42, Epochs: 50, Reg: 0.01}
	a, err := TrainMF(m, cfg)
	require.NoError(t, err)
	b, err := TrainMF(m, cfg)
	require.NoError(t, err)

	pa, err := a.Predict("u2", "r2")
	require.NoError(t, err)
	pb, _ := b.Predict("u2", "r2")
	assert.Equal(t, pa, pb, "fixed seed must be reproducible")
	assert.InDelta(t, 4.0, pa, 0.2)
}

func TestTrainMF_Errors(t *testing.T) {
	cat := newCatalog(t, core.Restaurant{ID: "r1", Name: "One"})
	_, err := TrainMF(newMatrix(t, cat, nil), MFConfig{Rank: 2})
	assert.True(t, core.IsInsufficientData(err))

	_, err = TrainMF(mfFixture(t), MFConfig{Method: "nmf", Rank: 2})
	assert.True(t, core.IsNotSupported(err))
}

func TestContentIndex(t *testing.T) {
	cat := newCatalog(t,
		core.Restaurant{ID: "1", Name: "Sushi Place", Cuisines: []string{"Sushi"}},
		core.Restaurant{ID: "2", Name: "Burger Joint", Cuisines: []string{"Burger"}},
		core.Restaurant{ID: "3", Name: "Sushi Express", Cuisines: []string{"Sushi", "Ramen"}},
	)
	idx, err := NewContentIndex(context.Background(), cat, feature.ShortlistFields, 2)
	require.NoError(t, err)

	ns, err := idx.Neighbors("1", 1)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "3", ns[0].ID)

	s, err := idx.Similarity("1", "1")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9)

	_, err = idx.Neighbors("9", 1)
	assert.True(t, core.IsNotFound(err))

	src := &SimilarRestaurants{Index: idx, K: 2}
	items, err := src.Recall(context.Background(), &core.RecommendContext{
		Params: map[string]any{core.ParamSeedID: "1"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "3", items[0].ID)
	assert.NotEqual(t, "1", items[1].ID)

	all, err := (&SimilarRestaurants{Index: idx}).Recall(context.Background(), &core.RecommendContext{
		Params: map[string]any{core.ParamSeedID: "1"},
	})
	require.NoError(t, err)
	assert.Len(t, all, 3, "full row keeps the seed")

	others, err := (&SimilarRestaurants{Index: idx, ExcludeSeed: true}).Recall(context.Background(), &core.RecommendContext{
		Params: map[string]any{core.ParamSeedID: "1"},
	})
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, "2", others[0].ID)
	assert.Equal(t, "3", others[1].ID)
}

func TestUserRecallNode(t *testing.T) {
	model, err := TrainMF(mfFixture(t), MFConfig{Rank: 2})
	require.NoError(t, err)

	node := &Node{Source: model}
	items, err := node.Process(context.Background(), &core.RecommendContext{
		UserID: "u1",
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, items, "u1 rated everything")

	items, err = (&Node{Source: &UserRecall{Model: model, IncludeRated: true}}).Process(
		context.Background(),
		&core.RecommendContext{UserID: "u1"},
		nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "recall.mf", items[0].Labels["recall_source"].Value)
	assert.Contains(t, items[0].Features, core.FeaturePredicted)
}
