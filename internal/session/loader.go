package session

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/plan"
	"github.com/2beens/healthdash/internal/series"
	"github.com/2beens/healthdash/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=loader_mocks_test.go -package=session_test

type seriesFetcher interface {
	FetchSeries(ctx context.Context, kind series.Kind, window calendar.Window) ([]series.Observation, error)
	FetchSleep(ctx context.Context, window calendar.Window) ([]series.SleepEntry, error)
	FetchRatings(ctx context.Context, window calendar.Window) ([]series.DayRating, error)
	FetchDayTemplates(ctx context.Context) ([]plan.DayTemplate, error)
	FetchStepTemplates(ctx context.Context) ([]plan.StepTemplate, error)
	FetchPlannedAssignments(ctx context.Context, kind series.PlanKind) (plan.Assignments, error)
}

type Loader struct {
	fetcher    seriesFetcher
	loc        *time.Location
	windowDays int
	now        func() time.Time
}

type NewLoaderParams struct {
	Fetcher    seriesFetcher
	Location   *time.Location
	WindowDays int
	// Now defaults to time.Now
	Now func() time.Time
}

func NewLoader(params NewLoaderParams) *Loader {
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	windowDays := params.WindowDays
	if windowDays < 1 {
		windowDays = calendar.DefaultWindowDays
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &Loader{
		fetcher:    params.Fetcher,
		loc:        loc,
		windowDays: windowDays,
		now:        now,
	}
}

func (l *Loader) Location() *time.Location {
	return l.loc
}

// Load fetches every series, catalog and plan concurrently and joins them into a snapshot.
// A failing fetch leaves its part empty and is recorded as unavailable; it never aborts the others.
// The returned snapshot has no generation yet.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.load")
	defer span.End()

	now := l.now()
	snapshot := Empty(l.loc)
	snapshot.LoadedAt = now
	snapshot.Today = calendar.DayOf(now, l.loc)
	snapshot.Window = calendar.Trailing(snapshot.Today, l.windowDays)
	window := snapshot.Window

	var (
		mu        sync.Mutex
		fetchErrs error
	)
	track := func(collection string, err error) {
		if err == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		snapshot.unavailable[collection] = true
		fetchErrs = multierr.Append(fetchErrs, err)
	}

	// every goroutine writes a distinct snapshot field; errors never cancel the group
	var g errgroup.Group
	g.Go(func() error {
		weights, err := l.fetcher.FetchSeries(ctx, series.KindWeight, window)
		snapshot.Weights = orEmpty(weights)
		track(series.CollectionWeights, err)
		return nil
	})
	g.Go(func() error {
		steps, err := l.fetcher.FetchSeries(ctx, series.KindSteps, window)
		snapshot.Steps = orEmpty(steps)
		track(series.CollectionSteps, err)
		return nil
	})
	g.Go(func() error {
		sleep, err := l.fetcher.FetchSleep(ctx, window)
		snapshot.Sleep = orEmpty(sleep)
		track(series.CollectionSleep, err)
		return nil
	})
	g.Go(func() error {
		ratings, err := l.fetcher.FetchRatings(ctx, window)
		snapshot.Ratings = orEmpty(ratings)
		track(series.CollectionDayRatings, err)
		return nil
	})
	g.Go(func() error {
		templates, err := l.fetcher.FetchDayTemplates(ctx)
		snapshot.DayTemplates = plan.NewDayCatalog(templates)
		track(series.CollectionDayTemplates, err)
		return nil
	})
	g.Go(func() error {
		templates, err := l.fetcher.FetchStepTemplates(ctx)
		snapshot.StepTemplates = plan.NewStepCatalog(templates)
		track(series.CollectionStepTemplates, err)
		return nil
	})
	g.Go(func() error {
		assignments, err := l.fetcher.FetchPlannedAssignments(ctx, series.PlanNutrition)
		if assignments != nil {
			snapshot.NutritionPlan = assignments
		}
		track(series.CollectionPlannedDays, err)
		return nil
	})
	g.Go(func() error {
		assignments, err := l.fetcher.FetchPlannedAssignments(ctx, series.PlanSteps)
		if assignments != nil {
			snapshot.StepPlan = assignments
		}
		track(series.CollectionStepGoals, err)
		return nil
	})
	_ = g.Wait()

	snapshot.SleepDurations = series.SleepObservations(snapshot.Sleep)
	snapshot.NutritionRatings = series.RatingObservations(snapshot.Ratings)

	if fetchErrs != nil {
		log.Warnf("session: %d fetch(es) degraded to empty: %s", len(multierr.Errors(fetchErrs)), fetchErrs)
	}

	return snapshot
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
