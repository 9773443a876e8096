package queries_test

import (
	"testing"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCatalogQueryHandler_Handle(t *testing.T) {
	h := queries.NewGetStatusCatalogQueryHandler(order.DefaultStatusMachine())

	catalog, err := h.Handle(t.Context(), queries.NewGetStatusCatalogQuery())

	require.NoError(t, err)
	require.Len(t, catalog, 5)
	assert.Equal(t, order.Pending, catalog[0].Status)
	assert.Equal(t, "Pending", catalog[0].Metadata.Label)
	assert.Equal(t, order.ColorWarning, catalog[0].Metadata.Color)
	assert.Equal(t, []order.Status{order.Processing, order.Cancelled}, catalog[0].AllowedTransitions)

	last := catalog[4]
	assert.Equal(t, order.Cancelled, last.Status)
	assert.True(t, last.IsTerminal)
	assert.False(t, last.CanBeCancelled)
	assert.Empty(t, last.AllowedTransitions)

	for _, d := range catalog[:4] {
		assert.False(t, d.IsTerminal, d.Status)
		assert.True(t, d.CanBeCancelled, d.Status)
	}
}

func TestGetStatusCatalogQueryHandler_ValidationError(t *testing.T) {
	h := queries.NewGetStatusCatalogQueryHandler(order.DefaultStatusMachine())

	_, err := h.Handle(t.Context(), queries.GetStatusCatalogQuery{})

	require.ErrorIs(t, err, queries.ErrGetStatusCatalogQueryIsNotConstructed)
}

func TestGetPricingRulesQueryHandler_Handle(t *testing.T) {
	rules := pricing.DefaultRules()
	h := queries.NewGetPricingRulesQueryHandler(rules)

	resp, err := h.Handle(t.Context(), queries.NewGetPricingRulesQuery())

	require.NoError(t, err)
	assert.Equal(t, rules.Legend(), resp.Legend)
	assert.Equal(t, rules.FlatShipping(), resp.Rules.FlatShipping())

	_, err = h.Handle(t.Context(), queries.GetPricingRulesQuery{})
	require.ErrorIs(t, err, queries.ErrGetPricingRulesQueryIsNotConstructed)
}
