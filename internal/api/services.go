package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Service is a sellable product with its plan pricing.
type Service struct {
	ID           json.Number `json:"id"`
	Name         string      `json:"name"`
	OneYearPrice int64       `json:"oneYearPrice"`
	TwoYearPrice int64       `json:"twoYearPrice"`
}

// Plan is one purchasable duration of a service.
type Plan struct {
	ID        string `json:"id"`
	ServiceID string `json:"serviceId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Years     int    `json:"years"`
}

// GetServiceByName looks up a service and expands its prices into plans.
// Only durations with a positive price are offered.
func (c *Client) GetServiceByName(ctx context.Context, name string) (*Service, []Plan, error) {
	var svc Service
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/Service/GetByName",
		query:  url.Values{"name": {name}},
	}, &svc)
	if err != nil {
		return nil, nil, err
	}

	var plans []Plan
	if svc.OneYearPrice > 0 {
		plans = append(plans, Plan{
			ID:        fmt.Sprintf("%s-1Y", svc.ID.String()),
			ServiceID: svc.ID.String(),
			Name:      svc.Name,
			Price:     svc.OneYearPrice,
			Years:     1,
		})
	}
	if svc.TwoYearPrice > 0 {
		plans = append(plans, Plan{
			ID:        fmt.Sprintf("%s-2Y", svc.ID.String()),
			ServiceID: svc.ID.String(),
			Name:      svc.Name,
			Price:     svc.TwoYearPrice,
			Years:     2,
		})
	}
	return &svc, plans, nil
}

// PromoResult is the outcome of applying a promo code.
type PromoResult struct {
	Success       bool  `json:"success"`
	DiscountValue int64 `json:"discountValue"`
}

// ApplyPromo applies a promo code. An unsuccessful result is an error so
// callers never silently price with a bad code.
func (c *Client) ApplyPromo(ctx context.Context, code string) (*PromoResult, error) {
	var result PromoResult
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/Promo/Apply",
		body:   map[string]any{"code": code},
	}, &result)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &Error{StatusCode: http.StatusUnprocessableEntity, Message: "invalid promo code"}
	}
	return &result, nil
}
