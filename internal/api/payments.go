package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/trackinventory/trackinventory/internal/payments"
)

// InitiatePayment asks the backend to create a gateway order. It implements
// payments.Backend.
func (c *Client) InitiatePayment(ctx context.Context, req *payments.InitiateRequest) (*payments.Order, error) {
	var order payments.Order
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/Payment/initiate",
		body:   req,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment forwards the gateway's completion identifiers for
// verification.
func (c *Client) VerifyPayment(ctx context.Context, completion *payments.Completion) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/Payment/verify",
		body:   completion,
	})
	return err
}

// Dashboard summarizes the caller's subscription and payment standing.
type Dashboard struct {
	ActivePlan     string    `json:"activePlan"`
	PlanExpiresAt  time.Time `json:"planExpiresAt"`
	TotalPayments  int64     `json:"totalPayments"`
	PendingRenewal bool      `json:"pendingRenewal"`
}

// PaymentDashboard fetches the caller's dashboard summary.
func (c *Client) PaymentDashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	err := c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/Payment/dashboard/me",
	}, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Transaction is one payment record.
type Transaction struct {
	MerchantTransactionID string      `json:"merchantTransactionId"`
	Amount                json.Number `json:"amount"`
	Currency              string      `json:"currency"`
	Status                string      `json:"status"`
	CreatedAt             time.Time   `json:"createdAt"`
}

// PaymentTransactions lists the caller's payment history.
func (c *Client) PaymentTransactions(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction
	err := c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/Payment/transactions/me",
	}, &transactions)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// PaymentTransaction fetches one payment record by its merchant transaction id.
func (c *Client) PaymentTransaction(ctx context.Context, merchantTransactionID string) (*Transaction, error) {
	var transaction Transaction
	err := c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/Payment/transaction/" + merchantTransactionID,
	}, &transaction)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
