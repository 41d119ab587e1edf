// Package gateway fronts the simulated banking backends. Each domain API
// wraps the shared in-memory database with a uniform response envelope,
// randomized latency and optional failure injection, the way the real
// upstream systems would look from a call-center integration.
package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Response is the envelope every gateway operation returns. Data is the
// zero value when the operation failed or found nothing.
type Response[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	LatencyMS int64     `json:"latency_ms"`
}

const codeAPIError = "API_ERROR"

// client carries the simulation knobs shared by all domain APIs.
type client struct {
	name        string
	minLatency  time.Duration
	maxLatency  time.Duration
	failureRate float64

	mu           sync.Mutex
	rng          *rand.Rand
	requestCount int64

	log zerolog.Logger
}

func newClient(name string, minLatency, maxLatency time.Duration, cfg simConfig) *client {
	if cfg.latencyOverride {
		minLatency = cfg.minLatency
		maxLatency = cfg.maxLatency
	}
	source := cfg.rng
	if source == nil {
		source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &client{
		name:        name,
		minLatency:  minLatency,
		maxLatency:  maxLatency,
		failureRate: cfg.failureRate,
		// Each API owns a private rng seeded from the configured source;
		// c.mu only guards this client's state, so sharing one *rand.Rand
		// across APIs would race when two families roll latency at once.
		rng: rand.New(rand.NewSource(source.Int63())),
		log: log.With().Str("api", name).Logger(),
	}
}

func (c *client) nextRequestID(start time.Time) string {
	c.mu.Lock()
	c.requestCount++
	n := c.requestCount
	c.mu.Unlock()
	return fmt.Sprintf("%s-%s-%06d", c.name, start.Format("20060102150405"), n)
}

func (c *client) randomLatency() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	span := c.maxLatency - c.minLatency
	if span <= 0 {
		return c.minLatency
	}
	return c.minLatency + time.Duration(c.rng.Int63n(int64(span)+1))
}

func (c *client) shouldFail() bool {
	if c.failureRate <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64() < c.failureRate
}

// Stats reports per-API request accounting.
type Stats struct {
	Name          string  `json:"name"`
	TotalRequests int64   `json:"total_requests"`
	MinLatencyMS  int64   `json:"min_latency_ms"`
	MaxLatencyMS  int64   `json:"max_latency_ms"`
	FailureRate   float64 `json:"failure_rate"`
}

func (c *client) stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Name:          c.name,
		TotalRequests: c.requestCount,
		MinLatencyMS:  c.minLatency.Milliseconds(),
		MaxLatencyMS:  c.maxLatency.Milliseconds(),
		FailureRate:   c.failureRate,
	}
}

// run executes one gateway operation: mint a request id, sleep the simulated
// network delay, roll for injected failure, then call fn. Errors are folded
// into the envelope, never returned.
func run[T any](ctx context.Context, c *client, operation string, fn func() (T, error)) Response[T] {
	start := time.Now()
	requestID := c.nextRequestID(start)

	c.log.Debug().Str("request_id", requestID).Str("operation", operation).Msg("request started")

	fail := func(err error) Response[T] {
		c.log.Error().
			Str("request_id", requestID).
			Str("operation", operation).
			Err(err).
			Msg("request failed")
		return Response[T]{
			Success:   false,
			Error:     err.Error(),
			ErrorCode: codeAPIError,
			Timestamp: time.Now(),
			RequestID: requestID,
			LatencyMS: time.Since(start).Milliseconds(),
		}
	}

	if delay := c.randomLatency(); delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fail(ctx.Err())
		case <-timer.C:
		}
	}

	if c.shouldFail() {
		return fail(fmt.Errorf("simulated %s failure", c.name))
	}

	data, err := fn()
	if err != nil {
		return fail(err)
	}

	elapsed := time.Since(start)
	c.log.Debug().
		Str("request_id", requestID).
		Str("operation", operation).
		Dur("latency", elapsed).
		Msg("request completed")

	return Response[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: requestID,
		LatencyMS: elapsed.Milliseconds(),
	}
}
