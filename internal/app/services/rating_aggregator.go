package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const recomputeTimeout = 10 * time.Second

// aggregatorEnrollmentStore provides the rating aggregate of a course
type aggregatorEnrollmentStore interface {
	AggregateRatings(ctx context.Context, courseID uuid.UUID) (float64, int, error)
}

// aggregatorCourseStore receives the derived rating fields
type aggregatorCourseStore interface {
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// RatingAggregator recomputes a course's rating average and count from its
// enrollments. Rating submissions enqueue a deferred recompute; a worker
// drains the queue with one retry per job, and a cron sweep periodically
// re-derives every course so that lost jobs only cause transient staleness.
type RatingAggregator struct {
	enrollments aggregatorEnrollmentStore
	courses     aggregatorCourseStore
	logger      zerolog.Logger

	queue chan uuid.UUID
	cron  *cron.Cron

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewRatingAggregator creates a rating aggregator with the given queue
// capacity. schedule is a cron expression for the full sweep; empty disables
// the sweep.
func NewRatingAggregator(enrollments aggregatorEnrollmentStore, courses aggregatorCourseStore, queueSize int, schedule string, lgr zerolog.Logger) (*RatingAggregator, error) {
	if queueSize <= 0 {
		queueSize = 64
	}

	a := &RatingAggregator{
		enrollments: enrollments,
		courses:     courses,
		logger:      lgr,
		queue:       make(chan uuid.UUID, queueSize),
		done:        make(chan struct{}),
	}

	if schedule != "" {
		a.cron = cron.New()
		if _, err := a.cron.AddFunc(schedule, a.sweep); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Start launches the queue worker and the sweep scheduler.
func (a *RatingAggregator) Start() {
	a.startOnce.Do(func() {
		go a.drain()
		if a.cron != nil {
			a.cron.Start()
		}
		a.logger.Info().Msg("Rating aggregator started")
	})
}

// Stop stops accepting work and waits for the in-flight job to finish.
func (a *RatingAggregator) Stop() {
	a.stopOnce.Do(func() {
		if a.cron != nil {
			<-a.cron.Stop().Done()
		}
		close(a.queue)
		<-a.done
		a.logger.Info().Msg("Rating aggregator stopped")
	})
}

// Enqueue schedules a deferred recompute for courseID. Best effort: when the
// queue is full the job is dropped and logged, and the sweep picks the
// course up later.
func (a *RatingAggregator) Enqueue(courseID uuid.UUID) {
	defer func() {
		// Enqueue after Stop is a no-op instead of a panic on the closed
		// channel; shutdown races with late requests.
		if recover() != nil {
			a.logger.Warn().Str("courseId", courseID.String()).Msg("Rating recompute dropped, aggregator stopped")
		}
	}()

	select {
	case a.queue <- courseID:
	default:
		a.logger.Warn().Str("courseId", courseID.String()).Msg("Rating queue full, recompute dropped")
	}
}

// Recompute derives the course's rating average (2 decimals) and count from
// its rated enrollments and writes them onto the course row.
func (a *RatingAggregator) Recompute(ctx context.Context, courseID uuid.UUID) error {
	average, count, err := a.enrollments.AggregateRatings(ctx, courseID)
	if err != nil {
		return err
	}
	return a.courses.UpdateRating(ctx, courseID, average, count)
}

func (a *RatingAggregator) drain() {
	defer close(a.done)
	for courseID := range a.queue {
		a.recomputeWithRetry(courseID)
	}
}

func (a *RatingAggregator) recomputeWithRetry(courseID uuid.UUID) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
		err = a.Recompute(ctx, courseID)
		cancel()
		if err == nil {
			return
		}
		a.logger.Warn().Err(err).
			Str("courseId", courseID.String()).
			Int("attempt", attempt+1).
			Msg("Rating recompute failed")
	}
	// Swallowed: stale averages are acceptable and corrected by the sweep.
	a.logger.Error().Err(err).Str("courseId", courseID.String()).Msg("Rating recompute gave up")
}

// sweep re-derives the rating fields of every course.
func (a *RatingAggregator) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ids, err := a.courses.ListIDs(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Rating sweep could not list courses")
		return
	}

	failures := 0
	for _, id := range ids {
		if err := a.Recompute(ctx, id); err != nil {
			failures++
		}
	}
	a.logger.Info().Int("courses", len(ids)).Int("failures", failures).Msg("Rating sweep finished")
}
