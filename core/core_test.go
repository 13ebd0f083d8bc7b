package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rushteam/dinekit/pkg/utils"
)

func TestDomainErrorIs(t *testing.T) {
	err := NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: restaurant \"x\" not found")
	wrapped := fmt.Errorf("query: %w", err)

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrInvalidInput)
	assert.ErrorIs(t, wrapped, &DomainError{Code: ErrorCodeNotFound, Module: ModuleCatalog})
	assert.NotErrorIs(t, wrapped, &DomainError{Code: ErrorCodeNotFound, Module: ModuleModel})
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsInsufficientData(wrapped))
	assert.Equal(t, ModuleCatalog, GetDomainError(wrapped).Module)
	assert.Nil(t, GetDomainError(fmt.Errorf("plain")))

	assert.True(t, IsStoreNotFound(ErrStoreNotFound))
	assert.False(t, IsStoreNotFound(err))
}

func TestRestaurantServiceModes(t *testing.T) {
	r := &Restaurant{
		Cuisines:       []string{"Sushi", "Japanese"},
		HomeDelivery:   true,
		DeliveryRating: Rated(4.1),
	}
	assert.Equal(t, "Sushi, Japanese", r.CuisineText())
	assert.True(t, r.Supports(ServiceDelivery))
	assert.False(t, r.Supports(ServiceTakeaway))
	assert.False(t, r.Supports(ServiceDinner))
	assert.Equal(t, Rated(4.1), r.RatingFor(ServiceDelivery))
	assert.False(t, r.RatingFor(ServiceDinner).Rated)
}

func TestItemLabels(t *testing.T) {
	it := NewItem(&Restaurant{ID: "r1", AverageCost: 300, DineInRating: Rated(4)})
	assert.Equal(t, 300.0, it.Features[FeatureCost])
	assert.Equal(t, 4.0, it.Features[FeatureDinnerRating])
	assert.NotContains(t, it.Features, FeatureDeliveryRating)

	it.PutLabel("recall_source", utils.RecallLabel("recall.catalog"))
	it.PutLabel("recall_source", utils.RecallLabel("recall.content"))
	assert.Equal(t, utils.Label{Value: "recall.catalog|recall.content", Source: "recall"}, it.Labels["recall_source"])

	rctx := &RecommendContext{}
	assert.Nil(t, rctx.Param(ParamBudget))
	rctx.PutLabel("mode", utils.Label{Value: "hybrid", Source: "engine"})
	lbl, ok := rctx.GetLabel("mode")
	assert.True(t, ok)
	assert.Equal(t, "hybrid", lbl.Value)
}
