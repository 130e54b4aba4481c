package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewBackOff(t *testing.T) {
	cfg := Config{Interval: time.Second, MaxInterval: 10 * time.Second}.withDefaults()
	bo := newBackOff(cfg)

	first := bo.NextBackOff()
	assert.GreaterOrEqual(t, first, cfg.Interval/2)
	assert.LessOrEqual(t, first, cfg.Interval*3/2)

	for i := 0; i < 50; i++ {
		d := bo.NextBackOff()
		assert.NotEqual(t, backoff.Stop, d, "backoff must never give up")
		assert.LessOrEqual(t, d, cfg.MaxInterval*3/2)
	}

	bo.Reset()
	assert.LessOrEqual(t, bo.NextBackOff(), cfg.Interval*3/2)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
