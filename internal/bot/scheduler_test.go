package bot

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/atbot/internal/bot/tasks"
	"github.com/edgard/atbot/internal/config"
)

func TestSchedulerRunsEnabledTasks(t *testing.T) {
	var enabled, disabled atomic.Int32
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"enabled":  func(context.Context) error { enabled.Add(1); return nil },
		"disabled": func(context.Context) error { disabled.Add(1); return nil },
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"enabled":      {Enabled: true, Schedule: "* * * * * *"},
		"disabled":     {Enabled: false, Schedule: "* * * * * *"},
		"unregistered": {Enabled: true, Schedule: "* * * * * *"},
	}}

	s, err := NewScheduler(nil, cfg, taskMap)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool { return enabled.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Zero(t, disabled.Load())

	// Stop is idempotent and a stopped scheduler cannot restart.
	require.NoError(t, s.Stop())
	assert.Error(t, s.Start(context.Background()))
}

func TestSchedulerCancelsTaskContextOnStop(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	var cancelled atomic.Bool
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"slow": func(ctx context.Context) error {
			once.Do(func() { close(started) })
			<-ctx.Done()
			cancelled.Store(true)
			return ctx.Err()
		},
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"slow": {Enabled: true, Schedule: "* * * * * *"},
	}}

	s, err := NewScheduler(nil, cfg, taskMap)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("task never started")
	}
	require.NoError(t, s.Stop())
	assert.True(t, cancelled.Load())
}

func TestSchedulerRejectsInvalidSchedule(t *testing.T) {
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"bad": func(context.Context) error { return nil },
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"bad": {Enabled: true, Schedule: "not a cron line"},
	}}

	s, err := NewScheduler(nil, cfg, taskMap)
	require.NoError(t, err)
	assert.Error(t, s.Start(context.Background()))
	require.NoError(t, s.Stop())
}
