package interaction

import (
	"math"
	"testing"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]core.Restaurant{
		{ID: "r1", Name: "One"},
		{ID: "r2", Name: "Two"},
		{ID: "r3", Name: "Three"},
		{ID: "r4", Name: "Four"},
	})
	require.NoError(t, err)
	return c
}

func TestNewStore(t *testing.T) {
	cat := testCatalog(t)
	s, err := NewStore([]core.Interaction{
		{UserID: "u2", RestaurantID: "r1", Rating: 4, Cost: 300},
		{UserID: "u1", RestaurantID: "r2", Rating: 5, Cost: 200},
		{UserID: "u2", RestaurantID: "r3", Rating: 2, Cost: 100},
	}, cat)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"u2", "u1"}, s.Users())
	assert.Len(t, s.ByUser("u2"), 2)
	assert.True(t, s.HasUser("u1"))
	assert.False(t, s.HasUser("nobody"))
	assert.Empty(t, s.ByUser("nobody"))
}

func TestNewStore_Invalid(t *testing.T) {
	cat := testCatalog(t)
	tests := []struct {
		name string
		in   core.Interaction
	}{
		{name: "empty user", in: core.Interaction{RestaurantID: "r1", Rating: 3}},
		{name: "unknown restaurant", in: core.Interaction{UserID: "u1", RestaurantID: "r9", Rating: 3}},
		{name: "rating too low", in: core.Interaction{UserID: "u1", RestaurantID: "r1", Rating: 0}},
		{name: "rating too high", in: core.Interaction{UserID: "u1", RestaurantID: "r1", Rating: 6}},
		{name: "negative cost", in: core.Interaction{UserID: "u1", RestaurantID: "r1", Rating: 3, Cost: -5}},
		{name: "nan rating", in: core.Interaction{UserID: "u1", RestaurantID: "r1", Rating: math.NaN()}},
		{name: "nan cost", in: core.Interaction{UserID: "u1", RestaurantID: "r1", Rating: 3, Cost: math.NaN()}},
		{name: "infinite cost", in: core.Interaction{UserID: "u1", RestaurantID: "r1", Rating: 3, Cost: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore([]core.Interaction{tt.in}, cat)
			require.Error(t, err)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}

func TestRatingMatrix(t *testing.T) {
	cat := testCatalog(t)
	s, err := NewStore([]core.Interaction{
		{UserID: "u1", RestaurantID: "r3", Rating: 4},
		{UserID: "u1", RestaurantID: "r3", Rating: 2},
		{UserID: "u1", RestaurantID: "r1", Rating: 5},
		{UserID: "u2", RestaurantID: "r3", Rating: 1},
	}, cat)
	require.NoError(t, err)

	m := NewRatingMatrix(s, cat)
	assert.Equal(t, 2, m.NumUsers())
	// 只保留被评过的餐厅，顺序与目录一致
	assert.Equal(t, []string{"r1", "r3"}, m.Items.Names())
	assert.Equal(t, 3, m.Count())

	u1, _ := m.Users.Lookup("u1")
	r3, _ := m.Items.Lookup("r3")
	v, ok := m.Get(u1, r3)
	require.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-9, "duplicates are averaged")

	u2, _ := m.Users.Lookup("u2")
	r1, _ := m.Items.Lookup("r1")
	_, ok = m.Get(u2, r1)
	assert.False(t, ok)

	row := m.Row(u1)
	require.Len(t, row, 2)
	assert.Equal(t, r1, row[0].Index)
	assert.Len(t, m.Col(r3), 2)

	d := m.Dense()
	assert.Equal(t, 0.0, d.At(u2, r1))
	assert.Equal(t, 5.0, d.At(u1, r1))
}
