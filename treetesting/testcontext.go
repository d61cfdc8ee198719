package treetesting

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T

	rng *rand.Rand
}

type TestConfig struct {
	// We seed the RNG with Seed. It is normal to force it to some fixed value
	// so that the generated payloads are the same from run to run.
	Seed            int64
	TestLabelPrefix string
	// LogLevel defaults to NOOP
	LogLevel string
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T:   t,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// TxPayloads returns "tx1" .. "txN"
func TxPayloads(n int) [][]byte {
	payloads := make([][]byte, 0, n)
	for i := 1; i <= n; i++ {
		payloads = append(payloads, []byte(fmt.Sprintf("tx%d", i)))
	}
	return payloads
}

// RandomPayloads returns n distinct payloads of varying length, including
// one empty payload when n > 0.
func (c *TestContext) RandomPayloads(n int) [][]byte {
	seen := make(map[string]bool, n)
	payloads := make([][]byte, 0, n)
	if n > 0 {
		payloads = append(payloads, []byte{})
		seen[""] = true
	}
	for len(payloads) < n {
		b := make([]byte, 1+c.rng.Intn(48))
		c.rng.Read(b)
		if seen[string(b)] {
			continue
		}
		seen[string(b)] = true
		payloads = append(payloads, b)
	}
	return payloads
}

// Shuffle returns a shuffled copy of the integers [0, n)
func (c *TestContext) Shuffle(n int) []int {
	return c.rng.Perm(n)
}
