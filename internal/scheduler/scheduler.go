package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/go-co-op/gocron/v2"
)

type TaskFn func(ctx context.Context) error

// Job runs Fn every Interval. A run that is still going when the next one is due
// pushes the next one back instead of overlapping.
type Job struct {
	Name             string
	Fn               TaskFn
	Interval         time.Duration
	StartImmediately bool
}

type Scheduler struct {
	scheduler gocron.Scheduler
}

func New() (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{scheduler: scheduler}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) Register(jobs ...Job) error {
	for _, job := range jobs {
		if job.Interval <= 0 {
			return fmt.Errorf("job %s: interval must be positive", job.Name)
		}

		opts := []gocron.JobOption{
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		}
		if job.StartImmediately {
			opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
		}

		_, err := s.scheduler.NewJob(
			gocron.DurationJob(job.Interval),
			gocron.NewTask(taskWithRecover(job.Fn, job.Name)),
			opts...,
		)
		if err != nil {
			slog.Error("Scheduler creating job error", slog.String("jobName", job.Name), slog.String("err", err.Error()))
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
	}
	return nil
}

func taskWithRecover(fn TaskFn, jobName string) func(ctx context.Context) {
	return func(ctx context.Context) {
		ctx = utils.WithRequestID(ctx)
		rqID := utils.GetRequestIDFromCtx(ctx)

		defer func() {
			if r := recover(); r != nil {
				slog.Error(
					"Panic recovered in scheduler job",
					slog.String("rqID", rqID),
					slog.String("jobName", jobName),
					slog.Any("panic", r),
					slog.String("stacktrace", string(debug.Stack())),
				)
			}
		}()

		start := time.Now()
		slog.Info("job start", slog.String("rqID", rqID), slog.String("jobName", jobName))

		err := fn(ctx)
		if err != nil {
			slog.Error("job failed", slog.String("rqID", rqID), slog.String("jobName", jobName), slog.String("err", err.Error()))
			return
		}
		slog.Info("job completed", slog.String("rqID", rqID), slog.String("jobName", jobName), slog.Duration("duration", time.Since(start)))
	}
}
