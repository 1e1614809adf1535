package mdns

import (
	"context"
	"math/rand"
	"time"
)

// Responses to multicast queries are delayed by a random interval within
// these bounds, to avoid collisions between responders that would otherwise
// all answer at once.
//
// See https://tools.ietf.org/html/rfc6762#section-6.
const (
	minResponseDelay = 20 * time.Millisecond
	maxResponseDelay = 120 * time.Millisecond
)

// responseDelay samples a uniformly distributed response delay from rng.
//
// Each response gets an independently sampled delay. Sampling never blocks;
// rng is owned by a single receive loop.
func responseDelay(rng *rand.Rand) time.Duration {
	return randTBetween(rng, minResponseDelay, maxResponseDelay)
}

// randTBetween returns a random duration between min and max, inclusive.
func randTBetween(rng *rand.Rand, min, max time.Duration) time.Duration {
	return min + time.Duration(
		rng.Int63n(int64(max-min)+1),
	)
}

// sleep sleeps for a duration of d, or until ctx is canceled.
// It returns nil if the sleep duration passes before ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
