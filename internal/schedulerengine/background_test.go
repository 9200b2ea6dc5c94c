package schedulerengine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gitlab.com/wizardhub.net/internal/adapter/logging"
	"gitlab.com/wizardhub.net/internal/config"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshLeaderboards(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestStartLeaderboardRefresh(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "refreshes on every tick"},
		{name: "keeps going after failures", err: errors.New("store down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := &countingRefresher{err: tt.err}
			engine := NewSchedulerEngine(&config.DiscoveryConfig{LeaderboardRefreshInterval: 5 * time.Millisecond}, refresher, logging.NewNopLogger())

			ctx, cancel := context.WithCancel(context.Background())
			engine.StartLeaderboardRefresh(ctx)

			assert.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, time.Millisecond)
			cancel()
			engine.Wait()

			stopped := refresher.calls.Load()
			time.Sleep(20 * time.Millisecond)
			assert.Equal(t, stopped, refresher.calls.Load())
		})
	}
}
