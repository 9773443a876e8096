package http

import (
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Error string `json:"error"`
}

type transitionErrorResponse struct {
	Error           string       `json:"error"`
	CurrentStatus   order.Status `json:"currentStatus"`
	RequestedStatus order.Status `json:"requestedStatus"`
	Reason          string       `json:"reason"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type bulkUpdateStatusRequest struct {
	OrderIDs []string `json:"orderIds"`
	Status   string   `json:"status"`
	Note     string   `json:"note"`
}

type itemResponse struct {
	ID          string       `json:"id"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	UnitPrice   kernel.Cents `json:"unitPrice"`
}

type statusChangeResponse struct {
	Status    order.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	UpdatedBy string       `json:"updatedBy"`
	Note      string       `json:"note,omitempty"`
}

type totalsResponse struct {
	Subtotal              kernel.Cents      `json:"subtotal"`
	DiscountRate          decimal.Decimal   `json:"discountRate"`
	DiscountAmount        kernel.Cents      `json:"discountAmount"`
	SubtotalAfterDiscount kernel.Cents      `json:"subtotalAfterDiscount"`
	TaxRate               decimal.Decimal   `json:"taxRate"`
	TaxAmount             kernel.Cents      `json:"taxAmount"`
	ShippingCost          kernel.Cents      `json:"shippingCost"`
	FreeShipping          bool              `json:"freeShipping"`
	FinalTotal            kernel.Cents      `json:"finalTotal"`
	Display               map[string]string `json:"display"`
}

type orderResponse struct {
	ID            string                 `json:"id"`
	CustomerID    string                 `json:"customerId"`
	CustomerName  string                 `json:"customerName"`
	CustomerEmail string                 `json:"customerEmail"`
	OrderDate     string                 `json:"orderDate"`
	Status        order.Status           `json:"status"`
	Items         []itemResponse         `json:"items"`
	StatusHistory []statusChangeResponse `json:"statusHistory"`
	Totals        totalsResponse         `json:"totals"`
}

type orderDetailResponse struct {
	orderResponse
	AllowedTransitions []order.Status `json:"allowedTransitions"`
	IsTerminal         bool           `json:"isTerminal"`
	CanBeCancelled     bool           `json:"canBeCancelled"`
	StatusPath         []order.Status `json:"statusPath"`
	NextStatus         *order.Status  `json:"nextStatus,omitempty"`
}

type pageInfoResponse struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type cursorsResponse struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type orderPageResponse struct {
	Data     []orderResponse  `json:"data"`
	PageInfo pageInfoResponse `json:"pageInfo"`
	Cursors  cursorsResponse  `json:"cursors"`
}

type bulkFailureResponse struct {
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

type bulkResultResponse struct {
	Updated []string              `json:"updated"`
	Failed  []bulkFailureResponse `json:"failed"`
}

type metricsResponse struct {
	TotalOrders        int                  `json:"totalOrders"`
	TotalRevenue       kernel.Cents         `json:"totalRevenue"`
	AverageOrderValue  kernel.Cents         `json:"averageOrderValue"`
	OrdersByStatus     map[order.Status]int `json:"ordersByStatus"`
	RequiringAttention int                  `json:"requiringAttention"`
}

type statusDescriptorResponse struct {
	Status             order.Status   `json:"status"`
	Label              string         `json:"label"`
	Color              order.Color    `json:"color"`
	Description        string         `json:"description"`
	AllowedTransitions []order.Status `json:"allowedTransitions"`
	IsTerminal         bool           `json:"isTerminal"`
	CanBeCancelled     bool           `json:"canBeCancelled"`
}

type discountTierResponse struct {
	Threshold kernel.Cents    `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

type legendSectionResponse struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

type pricingRulesResponse struct {
	DiscountTiers    []discountTierResponse  `json:"discountTiers"`
	TaxRate          decimal.Decimal         `json:"taxRate"`
	FlatShipping     kernel.Cents            `json:"flatShipping"`
	FreeShippingOver kernel.Cents            `json:"freeShippingOver"`
	Legend           []legendSectionResponse `json:"legend"`
}

func toOrderResponse(o *order.Order, totals pricing.Totals) orderResponse {
	items := o.Items()
	itemsResp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		itemsResp = append(itemsResp, itemResponse{
			ID:          it.ID(),
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
		})
	}

	history := o.History()
	historyResp := make([]statusChangeResponse, 0, len(history))
	for _, h := range history {
		historyResp = append(historyResp, statusChangeResponse{
			Status:    h.Status,
			Timestamp: h.Timestamp,
			UpdatedBy: h.UpdatedBy,
			Note:      h.Note,
		})
	}

	customer := o.Customer()
	return orderResponse{
		ID:            o.ID(),
		CustomerID:    customer.ID(),
		CustomerName:  customer.Name(),
		CustomerEmail: customer.Email(),
		OrderDate:     o.OrderDate().Format(time.DateOnly),
		Status:        o.Status(),
		Items:         itemsResp,
		StatusHistory: historyResp,
		Totals:        toTotalsResponse(totals),
	}
}

func toTotalsResponse(t pricing.Totals) totalsResponse {
	return totalsResponse{
		Subtotal:              t.Subtotal,
		DiscountRate:          t.DiscountRate,
		DiscountAmount:        t.DiscountAmount,
		SubtotalAfterDiscount: t.SubtotalAfterDiscount,
		TaxRate:               t.TaxRate,
		TaxAmount:             t.TaxAmount,
		ShippingCost:          t.ShippingCost,
		FreeShipping:          t.FreeShipping(),
		FinalTotal:            t.FinalTotal,
		Display: map[string]string{
			"subtotal":              "$" + t.Subtotal.Grouped(),
			"discountAmount":        "-$" + t.DiscountAmount.Grouped(),
			"subtotalAfterDiscount": "$" + t.SubtotalAfterDiscount.Grouped(),
			"taxAmount":             "$" + t.TaxAmount.Grouped(),
			"shippingCost":          shippingLabel(t),
			"finalTotal":            "$" + t.FinalTotal.Grouped(),
		},
	}
}

func shippingLabel(t pricing.Totals) string {
	if t.FreeShipping() {
		return "FREE"
	}
	return "$" + t.ShippingCost.Grouped()
}

func toOrderDetailResponse(resp queries.GetOrderQueryResponse) orderDetailResponse {
	return orderDetailResponse{
		orderResponse:      toOrderResponse(resp.Order, resp.Totals),
		AllowedTransitions: resp.AllowedTransitions,
		IsTerminal:         resp.IsTerminal,
		CanBeCancelled:     resp.CanBeCancelled,
		StatusPath:         resp.StatusPath,
		NextStatus:         resp.NextStatus,
	}
}

func toOrderPageResponse(resp queries.ListOrdersQueryResponse) orderPageResponse {
	data := make([]orderResponse, 0, len(resp.Data))
	for _, s := range resp.Data {
		data = append(data, toOrderResponse(s.Order, s.Totals))
	}
	return orderPageResponse{
		Data: data,
		PageInfo: pageInfoResponse{
			HasNextPage:     resp.PageInfo.HasNextPage,
			HasPreviousPage: resp.PageInfo.HasPreviousPage,
			StartCursor:     resp.PageInfo.StartCursor,
			EndCursor:       resp.PageInfo.EndCursor,
		},
		Cursors: cursorsResponse{
			Next:     resp.Cursors.Next,
			Previous: resp.Cursors.Previous,
		},
	}
}

func toBulkResultResponse(res commands.BulkChangeOrderStatusResult) bulkResultResponse {
	out := bulkResultResponse{
		Updated: make([]string, 0, len(res.Updated)),
		Failed:  make([]bulkFailureResponse, 0, len(res.Failed)),
	}
	for _, o := range res.Updated {
		out.Updated = append(out.Updated, o.ID())
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, bulkFailureResponse{OrderID: f.OrderID, Error: f.Err.Error()})
	}
	return out
}

func toMetricsResponse(m services.Metrics) metricsResponse {
	byStatus := m.OrdersByStatus
	if byStatus == nil {
		byStatus = map[order.Status]int{}
	}
	return metricsResponse{
		TotalOrders:        m.TotalOrders,
		TotalRevenue:       m.TotalRevenue,
		AverageOrderValue:  m.AverageOrderValue,
		OrdersByStatus:     byStatus,
		RequiringAttention: m.RequiringAttention,
	}
}

func toStatusCatalogResponse(catalog []queries.StatusDescriptor) []statusDescriptorResponse {
	out := make([]statusDescriptorResponse, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, statusDescriptorResponse{
			Status:             d.Status,
			Label:              d.Metadata.Label,
			Color:              d.Metadata.Color,
			Description:        d.Metadata.Description,
			AllowedTransitions: d.AllowedTransitions,
			IsTerminal:         d.IsTerminal,
			CanBeCancelled:     d.CanBeCancelled,
		})
	}
	return out
}

func toPricingRulesResponse(resp queries.GetPricingRulesQueryResponse) pricingRulesResponse {
	tiers := resp.Rules.Tiers()
	tiersResp := make([]discountTierResponse, 0, len(tiers))
	for _, t := range tiers {
		tiersResp = append(tiersResp, discountTierResponse{Threshold: t.Threshold, Rate: t.Rate})
	}
	legend := make([]legendSectionResponse, 0, len(resp.Legend))
	for _, s := range resp.Legend {
		legend = append(legend, legendSectionResponse{Title: s.Title, Lines: s.Lines})
	}
	return pricingRulesResponse{
		DiscountTiers:    tiersResp,
		TaxRate:          resp.Rules.TaxRate(),
		FlatShipping:     resp.Rules.FlatShipping(),
		FreeShippingOver: resp.Rules.FreeShippingOver(),
		Legend:           legend,
	}
}
