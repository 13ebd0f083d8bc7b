package catalog

import (
	"math"
	"testing"

	"github.com/rushteam/dinekit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRestaurants() []core.Restaurant {
	return []core.Restaurant{
		{ID: "1", Name: "Sushi Bar", Cuisines: []string{"Sushi", "Japanese"}, AverageCost: 800},
		{ID: "2", Name: "Pizza Hub", Cuisines: []string{"Pizza", "Italian"}, AverageCost: 500},
		{ID: "3", Name: "Dosa Corner", Cuisines: []string{"South Indian"}, AverageCost: 200},
	}
}

func TestNew(t *testing.T) {
	c, err := New(testRestaurants())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	r, err := c.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Pizza Hub", r.Name)

	r, err = c.GetByName(" Dosa Corner ")
	require.NoError(t, err)
	assert.Equal(t, "3", r.ID)

	i, ok := c.Index("3")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "Dosa Corner", c.At(i).Name)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows []core.Restaurant
	}{
		{name: "empty id", rows: []core.Restaurant{{ID: " ", Name: "A"}}},
		{name: "empty name", rows: []core.Restaurant{{ID: "1"}}},
		{name: "negative cost", rows: []core.Restaurant{{ID: "1", Name: "A", AverageCost: -1}}},
		{name: "nan cost", rows: []core.Restaurant{{ID: "1", Name: "A", AverageCost: math.NaN()}}},
		{name: "infinite cost", rows: []core.Restaurant{{ID: "1", Name: "A", AverageCost: math.Inf(1)}}},
		{name: "nan rating", rows: []core.Restaurant{{ID: "1", Name: "A", DineInRating: core.Rated(math.NaN())}}},
		{name: "duplicate id", rows: []core.Restaurant{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows)
			assert.Error(t, err)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	c, err := New(testRestaurants())
	require.NoError(t, err)

	_, err = c.Get("42")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = c.GetByName("Nowhere")
	assert.True(t, core.IsNotFound(err))
}

func TestFilterAndAllKeepLoadOrder(t *testing.T) {
	c, err := New(testRestaurants())
	require.NoError(t, err)

	cheap := c.Filter(func(r *core.Restaurant) bool { return r.AverageCost <= 500 })
	require.Len(t, cheap, 2)
	assert.Equal(t, "2", cheap[0].ID)
	assert.Equal(t, "3", cheap[1].ID)

	all := c.All()
	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	// 修改返回的切片不影响目录
	all[0] = nil
	assert.NotNil(t, c.At(0))
}
