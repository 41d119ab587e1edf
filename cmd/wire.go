package cmd

import (
	"math/rand"
	"time"

	"github.com/securebank/callcenter-agent/agent/orchestrator"
	"github.com/securebank/callcenter-agent/banking/gateway"
	"github.com/securebank/callcenter-agent/banking/memdb"
	configx "github.com/securebank/callcenter-agent/pkg/config"
)

// simulationConfig tunes the fake banking backend from BANK_* environment
// variables.
type simulationConfig struct {
	FailureRate  float64 `split_words:"true" default:"0.02"`
	MinLatencyMS int     `envconfig:"MIN_LATENCY_MS" default:"0"`
	MaxLatencyMS int     `envconfig:"MAX_LATENCY_MS" default:"0"`
	Seed         int64   `default:"0"`
}

func wireAgent() (*orchestrator.Agent, error) {
	conf, err := configx.New[simulationConfig]("BANK")
	if err != nil {
		return nil, err
	}

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	db := memdb.New(memdb.WithRand(rand.New(rand.NewSource(seed))))

	opts := []gateway.Option{
		gateway.WithFailureRate(conf.FailureRate),
		gateway.WithRand(rand.New(rand.NewSource(seed))),
	}
	// Latency defaults come from each API; only override when configured.
	if conf.MaxLatencyMS > 0 {
		opts = append(opts, gateway.WithLatencyRange(
			time.Duration(conf.MinLatencyMS)*time.Millisecond,
			time.Duration(conf.MaxLatencyMS)*time.Millisecond,
		))
	}

	return orchestrator.New(gateway.New(db, opts...))
}
