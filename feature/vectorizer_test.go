package feature

import (
	"math"
	"testing"

	"github.com/rushteam/dinekit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "lowercase and split", text: "North Indian, Chinese", want: []string{"north", "indian", "chinese"}},
		{name: "drop short tokens", text: "a b Pizza", want: []string{"pizza"}},
		{name: "drop stop words", text: "the best of the Biryani", want: []string{"best", "biryani"}},
		{name: "empty", text: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestFitTF(t *testing.T) {
	v := Fit([]string{"pizza pasta pizza", "sushi"}, WeightingTF)
	assert.Equal(t, []string{"pasta", "pizza", "sushi"}, v.Vocabulary())
	require.Len(t, v.Vectors(), 2)
	assert.Equal(t, 2.0, v.Vectors()[0]["pizza"])
	assert.Equal(t, 1.0, v.Vectors()[1]["sushi"])
}

func TestFitTFIDF_Normalized(t *testing.T) {
	v := Fit([]string{"pizza pasta", "pizza sushi", "burger"}, WeightingTFIDF)
	for _, vec := range v.Vectors() {
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	}
	// 出现在更多文档中的词权重更低
	first := v.Vectors()[0]
	assert.Less(t, first["pizza"], first["pasta"])
}

func TestTransform_IgnoresUnknownTerms(t *testing.T) {
	v := Fit([]string{"pizza pasta", "sushi"}, WeightingTF)
	vec := v.Transform("pizza tacos")
	assert.Equal(t, Vector{"pizza": 1}, vec)
	assert.Empty(t, v.Transform("tacos burrito"))
	assert.Len(t, v.Vocabulary(), 3, "transform must not grow the vocabulary")
}

func TestFieldsText(t *testing.T) {
	r := &core.Restaurant{
		Cuisines:      []string{"Sushi", "Japanese"},
		KnownFor:      "Fresh fish",
		PopularDishes: "Maki",
		Area:          "Indiranagar",
	}
	assert.Equal(t, "Sushi, Japanese Maki", ContentQueryFields.Text(r))
	assert.Equal(t, "Sushi, Japanese Fresh fish", ShortlistFields.Text(r))
	assert.Equal(t, "Indiranagar", LocationFields.Text(r))
}
