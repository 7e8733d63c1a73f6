package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/i474232898/weather-party-planner/internal/weather"
)

const dateLayout = "2006-01-02"

// Planner is the part of weather.Service the scheduler needs.
type Planner interface {
	Plan(ctx context.Context, locations []string, from, to string) (weather.GlobalResult, error)
}

// Scheduler periodically plans a party for a fixed list of locations over a
// window starting today, and logs the answer.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	planner     Planner
	clock       clockwork.Clock
	log         *zap.SugaredLogger
	locations   []string
	interval    time.Duration
	horizonDays int
	timeout     time.Duration
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, horizonDays int, planner Planner, clock clockwork.Clock, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		planner:     planner,
		clock:       clock,
		log:         log,
		locations:   locations,
		interval:    interval,
		horizonDays: horizonDays,
		timeout:     2 * time.Minute,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.log.Info("scheduler: no plan locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.log.Infow("scheduler: started", "locations", s.locations, "interval", interval)
	s.scheduler.StartAsync()
	return nil
}

// RunOnce plans for the configured locations over [today, today+horizon].
func (s *Scheduler) RunOnce(ctx context.Context) (weather.GlobalResult, error) {
	from, to := s.window()
	s.log.Infow("scheduler: running party plan job", "from", from, "to", to)

	result, err := s.planner.Plan(ctx, s.locations, from, to)
	if err != nil {
		s.log.Errorw("scheduler: party plan failed", "error", err)
		return weather.GlobalResult{}, err
	}

	if result.Found {
		s.log.Infow("scheduler: best party day",
			"location", result.Best.Location,
			"date", result.Best.Date,
			"sunshine", result.Best.TotalSunshine)
	} else {
		s.log.Infow("scheduler: no optimal date and location found", "from", from, "to", to)
	}
	return result, nil
}

func (s *Scheduler) window() (string, string) {
	today := s.clock.Now().UTC()
	return today.Format(dateLayout), today.AddDate(0, 0, s.horizonDays).Format(dateLayout)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
