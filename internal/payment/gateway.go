package payment

import "context"

// Gateway abstracts the card processor. The shipped implementation is
// simulated; the booking flow only depends on this interface.
type Gateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, transactionID string) error
	Name() string
}

type ChargeRequest struct {
	Amount        float64
	Currency      string
	CardNumber    string
	CardName      string
	ExpiryMonth   string
	ExpiryYear    string
	CVV           string
	CustomerEmail string
	Description   string
}

type ChargeResult struct {
	TransactionID string
	Success       bool
	FailureReason string
}
