// Package payments drives subscription checkout through the hosted payment
// gateway. The gateway itself is a black box: we hand it an order descriptor,
// it runs its own UI, and it calls back with identifiers that the backend
// verifies.
package payments

import "context"

// Order describes a payment the gateway should collect. It is produced by the
// backend's initiate endpoint.
type Order struct {
	KeyID       string `json:"keyId"`
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// Completion carries the gateway identifiers produced by a finished checkout.
// They are opaque here; only the backend can verify them.
type Completion struct {
	OrderID   string `json:"razorpayOrderId"`
	PaymentID string `json:"razorpayPaymentId"`
	Signature string `json:"razorpaySignature"`
}

// Checkout opens the gateway's hosted checkout for an order and blocks until
// the gateway reports completion, the user abandons it, or ctx is done.
type Checkout interface {
	Open(ctx context.Context, order *Order) (*Completion, error)
}
