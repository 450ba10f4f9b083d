// Package scheduler runs recurring slate analysis jobs.
package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/feed"
	"github.com/yourusername/court-vision/internal/service"
)

const slateJobTimeout = 10 * time.Minute

// Scheduler manages recurring slate analysis
type Scheduler struct {
	cron     *cron.Cron
	analysis *service.AnalysisService
	feed     *feed.Client
	cfg      config.SchedulerConfig
	logger   *logrus.Logger

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a scheduler. The feed client may be nil when slates
// are read from the local bundle directory instead.
func NewScheduler(analysis *service.AnalysisService, feedClient *feed.Client, cfg config.SchedulerConfig, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		analysis: analysis,
		feed:     feedClient,
		cfg:      cfg,
		logger:   logger,
		jobIDs:   make([]cron.EntryID, 0),
	}
}

// ScheduleSlateAnalysis schedules the recurring slate job
func (s *Scheduler) ScheduleSlateAnalysis(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, s.runSlateJob)
	if err != nil {
		return fmt.Errorf("failed to add slate job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled slate analysis job")
	return nil
}

func (s *Scheduler) runSlateJob() {
	ctx, cancel := context.WithTimeout(context.Background(), slateJobTimeout)
	defer cancel()

	date := time.Now().UTC().Format("2006-01-02")
	slate, err := s.loadSlate(ctx, date)
	if err != nil {
		s.logger.WithError(err).WithField("date", date).Error("Failed to load slate")
		return
	}
	if len(slate.Games) == 0 {
		s.logger.WithField("date", date).Info("No games on slate")
		return
	}

	results := s.analysis.AnalyzeSlate(slate.Games)

	actionable := 0
	for _, result := range results {
		if result.Recommendation.Units > 0 {
			actionable++
		}
	}
	s.logger.WithFields(logrus.Fields{
		"date":       date,
		"games":      len(results),
		"actionable": actionable,
	}).Info("Scheduled slate analysis completed")
}

// loadSlate prefers the feed service, falling back to the bundle directory
func (s *Scheduler) loadSlate(ctx context.Context, date string) (*feed.Slate, error) {
	if s.feed != nil {
		return s.feed.FetchSlate(ctx, date)
	}
	if s.cfg.SlateBundleDir == "" {
		return nil, fmt.Errorf("no feed client and no slate bundle directory configured")
	}
	return feed.LoadSlateFile(filepath.Join(s.cfg.SlateBundleDir, date+".json"))
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}
	return nextRun
}
