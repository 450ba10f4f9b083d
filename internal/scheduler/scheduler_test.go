package scheduler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/service"
)

func testAnalysisService() *service.AnalysisService {
	engineCfg := config.DefaultEngineConfig()
	engineCfg.Simulation.Iterations = 500
	cfg := &config.Config{
		App:    config.AppConfig{Name: "court-vision", Environment: "development", LogLevel: "error"},
		Engine: engineCfg,
	}
	return service.NewAnalysisService(cfg, nil, nil)
}

func TestScheduleAndLifecycle(t *testing.T) {
	s := NewScheduler(testAnalysisService(), nil, config.SchedulerConfig{}, nil)

	require.NoError(t, s.ScheduleSlateAnalysis("0 14 * * *"))
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())

	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleSlateAnalysis("0 15 * * *"))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestStartRequiresJobs(t *testing.T) {
	s := NewScheduler(testAnalysisService(), nil, config.SchedulerConfig{}, nil)
	assert.Error(t, s.Start())
}

func TestScheduleRejectsBadExpression(t *testing.T) {
	s := NewScheduler(testAnalysisService(), nil, config.SchedulerConfig{}, nil)
	assert.Error(t, s.ScheduleSlateAnalysis("not a cron expression"))
}

func TestRunSlateJobFromBundleDir(t *testing.T) {
	dir := t.TempDir()
	today := time.Now().UTC().Format("2006-01-02")
	slate := `{"date": "` + today + `", "games": []}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, today+".json"), []byte(slate), 0o644))

	s := NewScheduler(testAnalysisService(), nil, config.SchedulerConfig{SlateBundleDir: dir}, nil)

	// Empty slate completes without doing any analysis
	assert.NotPanics(t, s.runSlateJob)
}

func TestRunSlateJobMissingBundleLogsAndContinues(t *testing.T) {
	s := NewScheduler(testAnalysisService(), nil, config.SchedulerConfig{SlateBundleDir: t.TempDir()}, nil)
	assert.NotPanics(t, s.runSlateJob)
}
