package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockGateway simulates a card processor: any card is accepted, a configurable
// fraction of charges is declined, and processing takes a fixed delay.
type MockGateway struct {
	config MockGatewayConfig

	mu       sync.Mutex
	refunded map[string]bool
	charged  map[string]bool
}

type MockGatewayConfig struct {
	// SuccessRate is the probability in [0,1] that a charge succeeds.
	SuccessRate float64
	// Delay is the simulated processing time per charge.
	Delay time.Duration
}

func DefaultMockGatewayConfig() MockGatewayConfig {
	return MockGatewayConfig{
		SuccessRate: 1.0,
		Delay:       500 * time.Millisecond,
	}
}

func NewMockGateway(config MockGatewayConfig) *MockGateway {
	if config.SuccessRate < 0 {
		config.SuccessRate = 0
	}
	if config.SuccessRate > 1 {
		config.SuccessRate = 1
	}
	return &MockGateway{
		config:   config,
		refunded: make(map[string]bool),
		charged:  make(map[string]bool),
	}
}

func (g *MockGateway) Name() string { return "mock" }

func (g *MockGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	if req == nil {
		return nil, fmt.Errorf("charge request is required")
	}

	if g.config.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.config.Delay):
		}
	}

	result := &ChargeResult{
		TransactionID: fmt.Sprintf("txn_%s", uuid.NewString()[:8]),
	}

	if rand.Float64() < g.config.SuccessRate {
		result.Success = true
		g.mu.Lock()
		g.charged[result.TransactionID] = true
		g.mu.Unlock()
	} else {
		result.FailureReason = "card_declined"
	}
	return result, nil
}

func (g *MockGateway) Refund(ctx context.Context, transactionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.charged[transactionID] {
		return fmt.Errorf("unknown transaction %q", transactionID)
	}
	if g.refunded[transactionID] {
		return fmt.Errorf("transaction %q already refunded", transactionID)
	}
	g.refunded[transactionID] = true
	return nil
}

// Refunded reports whether a transaction has been refunded. Used by tests.
func (g *MockGateway) Refunded(transactionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refunded[transactionID]
}
