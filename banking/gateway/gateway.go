package gateway

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/securebank/callcenter-agent/banking/memdb"
)

// simConfig tunes the latency/failure simulation across all domain APIs.
type simConfig struct {
	latencyOverride bool
	minLatency      time.Duration
	maxLatency      time.Duration
	failureRate     float64
	rng             *rand.Rand
}

type Option func(*simConfig)

// WithLatencyRange overrides every API's default latency window. Tests pass
// (0, 0) to make calls immediate.
func WithLatencyRange(min, max time.Duration) Option {
	return func(cfg *simConfig) {
		cfg.latencyOverride = true
		cfg.minLatency = min
		cfg.maxLatency = max
	}
}

// WithFailureRate injects random failures with the given probability (0-1).
func WithFailureRate(rate float64) Option {
	return func(cfg *simConfig) {
		cfg.failureRate = rate
	}
}

// WithRand fixes the source each API's private rng is seeded from, making
// the simulation deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(cfg *simConfig) {
		cfg.rng = rng
	}
}

// Gateway is the single entry point to all banking domain APIs.
type Gateway struct {
	Customer    *CustomerAPI
	Account     *AccountAPI
	Transaction *TransactionAPI
	Loan        *LoanAPI
	Card        *CardAPI
	Support     *SupportAPI
}

func New(db *memdb.DB, opts ...Option) *Gateway {
	var cfg simConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	gw := &Gateway{
		Customer:    newCustomerAPI(db, cfg),
		Account:     newAccountAPI(db, cfg),
		Transaction: newTransactionAPI(db, cfg),
		Loan:        newLoanAPI(db, cfg),
		Card:        newCardAPI(db, cfg),
		Support:     newSupportAPI(db, cfg),
	}

	log.Info().Msg("api gateway initialized with all services")
	return gw
}

// APIStats reports request accounting across every domain API.
func (g *Gateway) APIStats() map[string]Stats {
	return map[string]Stats{
		"customer_api":    g.Customer.Stats(),
		"account_api":     g.Account.Stats(),
		"transaction_api": g.Transaction.Stats(),
		"loan_api":        g.Loan.Stats(),
		"card_api":        g.Card.Stats(),
		"support_api":     g.Support.Stats(),
	}
}
