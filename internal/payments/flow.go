package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trackinventory/trackinventory/internal/log"
)

// Backend is the slice of the REST backend the checkout flow needs.
type Backend interface {
	InitiatePayment(ctx context.Context, req *InitiateRequest) (*Order, error)
	VerifyPayment(ctx context.Context, completion *Completion) error
}

// InitiateRequest asks the backend to create a gateway order for a plan.
type InitiateRequest struct {
	OrderRef     string         `json:"orderId"`
	ServiceID    string         `json:"serviceId"`
	PlanDuration int            `json:"planDuration"`
	Amount       int64          `json:"amount"`
	PromoCode    string         `json:"promoCode,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// SubscribeRequest is one subscription purchase.
type SubscribeRequest struct {
	ServiceID    string
	PlanID       string
	PlanDuration int // years
	Amount       int64
	PromoCode    string
}

// Flow orchestrates a subscription purchase: initiate an order with the
// backend, run the hosted checkout, and forward the gateway's completion to
// the backend for verification.
type Flow struct {
	backend  Backend
	checkout Checkout
}

// NewFlow creates a checkout flow.
func NewFlow(backend Backend, checkout Checkout) *Flow {
	return &Flow{backend: backend, checkout: checkout}
}

// Subscribe runs one purchase end to end. Verification failure is surfaced to
// the caller once; there is no retry loop.
func (f *Flow) Subscribe(ctx context.Context, req *SubscribeRequest) error {
	order, err := f.backend.InitiatePayment(ctx, &InitiateRequest{
		OrderRef:     "ORDER_" + uuid.NewString(),
		ServiceID:    req.ServiceID,
		PlanDuration: req.PlanDuration,
		Amount:       req.Amount,
		PromoCode:    req.PromoCode,
		Metadata: map[string]any{
			"planId":       req.PlanID,
			"planDuration": req.PlanDuration,
		},
	})
	if err != nil {
		return fmt.Errorf("payments: initiate: %w", err)
	}

	completion, err := f.checkout.Open(ctx, order)
	if err != nil {
		return fmt.Errorf("payments: checkout: %w", err)
	}

	if err := f.backend.VerifyPayment(ctx, completion); err != nil {
		return fmt.Errorf("payments: verification failed: %w", err)
	}

	log.Ctx(ctx).Info().Str("order-id", order.OrderID).Msg("payments: subscription activated")
	return nil
}
