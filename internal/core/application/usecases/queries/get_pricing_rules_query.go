package queries

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/pkg/guard"
)

var ErrGetPricingRulesQueryIsNotConstructed = errors.New(
	"GetPricingRulesQuery must be created via NewGetPricingRulesQuery constructor",
)

// GetPricingRulesQuery returns the active pricing rules and their legend.
type GetPricingRulesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPricingRulesQuery() GetPricingRulesQuery {
	return GetPricingRulesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPricingRulesQuery) Validate() error {
	return q.guard.Validate(ErrGetPricingRulesQueryIsNotConstructed)
}

// GetPricingRulesQueryResponse carries the rules and the legend rendered
// from them.
type GetPricingRulesQueryResponse struct {
	Rules  pricing.Rules
	Legend []pricing.LegendSection
}

// GetPricingRulesQueryHandler serves the rules the calculator was built with.
type GetPricingRulesQueryHandler struct {
	rules pricing.Rules
}

func NewGetPricingRulesQueryHandler(rules pricing.Rules) GetPricingRulesQueryHandler {
	return GetPricingRulesQueryHandler{rules: rules}
}

func (h GetPricingRulesQueryHandler) Handle(_ context.Context, query GetPricingRulesQuery) (GetPricingRulesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPricingRulesQueryResponse{}, err
	}
	return GetPricingRulesQueryResponse{Rules: h.rules, Legend: h.rules.Legend()}, nil
}
