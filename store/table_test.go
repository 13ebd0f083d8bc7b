package store

import (
	"context"
	"os"
	"testing"

	"github.com/rushteam/dinekit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() ([]core.Restaurant, []core.Interaction) {
	return []core.Restaurant{
			{ID: "1", Name: "Sushi Bar", Cuisines: []string{"Sushi"}, DeliveryRating: core.Rated(4.5)},
		}, []core.Interaction{
			{UserID: "U1", RestaurantID: "1", Rating: 5, Cost: 700},
		}
}

func TestTableSource_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	src := NewTableSource(s, "")
	assert.Equal(t, "dinekit:restaurants", src.RestaurantsKey())

	_, _, err := src.Load(ctx)
	assert.True(t, core.IsNotFound(err))

	restaurants, interactions := testTables()
	require.NoError(t, src.Save(ctx, restaurants, interactions))

	gotR, gotI, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, restaurants, gotR)
	assert.Equal(t, interactions, gotI)
}

func TestTableSource_MissingInteractions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Set(ctx, "t:restaurants", []byte(`[{"id":"1","name":"A"}]`)))
	r, i, err := NewTableSource(s, "t").Load(ctx)
	require.NoError(t, err)
	assert.Len(t, r, 1)
	assert.Empty(t, i)

	require.NoError(t, s.Set(ctx, "t:restaurants", []byte(`{`)))
	_, _, err = NewTableSource(s, "t").Load(ctx)
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(addr, 0)
	require.NoError(t, err)
	defer s.Close()

	src := NewTableSource(s, "dinekit_test")
	restaurants, interactions := testTables()
	require.NoError(t, src.Save(ctx, restaurants, interactions))
	defer s.Delete(ctx, src.RestaurantsKey())
	defer s.Delete(ctx, src.InteractionsKey())

	gotR, gotI, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, restaurants, gotR)
	assert.Equal(t, interactions, gotI)

	_, err = s.Get(ctx, "dinekit_test:missing")
	assert.True(t, core.IsStoreNotFound(err))
}
