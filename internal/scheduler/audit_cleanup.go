package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// CleanupReporter is told about every cleanup run.
type CleanupReporter interface {
	LogCleanup(deleted int64, err error)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// AuditCleanupScheduler periodically removes audit events older than the
// retention period.
type AuditCleanupScheduler struct {
	cleaner   AuditEventCleaner
	reporter  CleanupReporter
	schedule  string
	retention time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance. reporter may be nil.
func NewAuditCleanupScheduler(cleaner AuditEventCleaner, reporter CleanupReporter, schedule string, retentionDays int) *AuditCleanupScheduler {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &AuditCleanupScheduler{
		cleaner:   cleaner,
		reporter:  reporter,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the cleanup job. The scheduler stops when ctx is done.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.RunNow()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', keeping %v of events", s.schedule, s.retention)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow performs a cleanup immediately and returns the number of deleted events.
func (s *AuditCleanupScheduler) RunNow() (int64, error) {
	deleted, err := s.cleaner.DeleteOldEvents(s.retention)
	if err != nil {
		log.Printf("Audit cleanup: failed: %v", err)
	} else {
		log.Printf("Audit cleanup: deleted %d events older than %v", deleted, s.retention)
	}

	if s.reporter != nil {
		s.reporter.LogCleanup(deleted, err)
	}
	return deleted, err
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur
func (s *AuditCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}
