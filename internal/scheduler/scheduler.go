// Package scheduler runs the periodic Playtomic import and the nightly recap.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// Job names.
const (
	ImportJob = "playtomic-import"
	RecapJob  = "evening-recap"
)

const jobTimeout = 2 * time.Minute

// Runner is the work the scheduled jobs trigger.
type Runner interface {
	ImportPlaytomic(ctx context.Context, dryRun bool) (processor.ImportSummary, error)
	SendRecap(date string, dryRun bool) error
}

// Config holds the cron expressions of the jobs. An empty expression disables a job.
type Config struct {
	ImportCron string
	RecapCron  string
}

// Scheduler wraps a gocron scheduler with the club's jobs registered.
type Scheduler struct {
	sched  gocron.Scheduler
	runner Runner
	loc    *time.Location
	now    func() time.Time
}

// New registers the jobs. Cron expressions are evaluated in loc.
func New(runner Runner, cfg Config, loc *time.Location) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s := &Scheduler{sched: sched, runner: runner, loc: loc, now: time.Now}

	jobs := []struct {
		name string
		cron string
		task func()
	}{
		{ImportJob, cfg.ImportCron, s.runImport},
		{RecapJob, cfg.RecapCron, s.runRecap},
	}
	for _, j := range jobs {
		if j.cron == "" {
			log.Info("Scheduled job disabled", "job", j.name)
			continue
		}
		_, err := sched.NewJob(
			gocron.CronJob(j.cron, false),
			gocron.NewTask(j.task),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = sched.Shutdown()
			return nil, fmt.Errorf("failed to schedule %s (%q): %w", j.name, j.cron, err)
		}
	}
	return s, nil
}

// Start begins running the jobs in the background.
func (s *Scheduler) Start() {
	s.sched.Start()
	for _, j := range s.sched.Jobs() {
		next, _ := j.NextRun()
		log.Info("Scheduled job", "job", j.Name(), "next_run", next)
	}
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	var names []string
	for _, j := range s.sched.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) runImport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	summary, err := s.runner.ImportPlaytomic(ctx, false)
	if err != nil {
		log.Error("[Scheduler] Playtomic import failed", "error", err)
		return
	}
	log.Info("[Scheduler] Playtomic import done", "fetched", summary.Fetched, "imported", summary.Imported)
}

// runRecap recaps the current calendar day in the club's timezone.
func (s *Scheduler) runRecap() {
	date := timeutil.DayKey(s.now(), s.loc)
	if err := s.runner.SendRecap(date, false); err != nil {
		log.Error("[Scheduler] Recap failed", "error", err, "date", date)
		return
	}
	log.Info("[Scheduler] Recap done", "date", date)
}
