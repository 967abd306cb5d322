package series

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/docstore"
	"github.com/2beens/healthdash/internal/plan"
	"github.com/2beens/healthdash/internal/telemetry/metrics"
	"github.com/2beens/healthdash/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUnavailable = errors.New("data unavailable")

const defaultSleepQuality = 3

//go:generate mockgen -source=$GOFILE -destination=adapter_mocks_test.go -package=series_test

type documentStore interface {
	QueryRange(ctx context.Context, collection, dateField string, from, to time.Time) ([]docstore.Document, error)
	All(ctx context.Context, collection string) ([]docstore.Document, error)
}

// Adapter reads typed daily series out of the generic document store.
// Every fetch degrades to an empty, non-nil result on failure; the returned
// error (wrapping ErrUnavailable) only tells the caller that the emptiness is not real.
type Adapter struct {
	store          documentStore
	loc            *time.Location
	metricsManager *metrics.Manager
}

func NewAdapter(store documentStore, loc *time.Location, metricsManager *metrics.Manager) *Adapter {
	if loc == nil {
		loc = time.Local
	}
	return &Adapter{
		store:          store,
		loc:            loc,
		metricsManager: metricsManager,
	}
}

func (a *Adapter) Location() *time.Location {
	return a.loc
}

// FetchSeries returns one observation per day of the given kind within window, oldest first.
func (a *Adapter) FetchSeries(ctx context.Context, kind Kind, window calendar.Window) (_ []Observation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "series.fetchSeries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("kind", kind.String()))

	switch kind {
	case KindWeight:
		return a.fetchObservations(ctx, CollectionWeights, "datum", "gewicht", kind, window)
	case KindSteps:
		return a.fetchObservations(ctx, CollectionSteps, "date", "steps", kind, window)
	case KindSleepDuration:
		entries, err := a.FetchSleep(ctx, window)
		return SleepObservations(entries), err
	case KindNutritionRating:
		ratings, err := a.FetchRatings(ctx, window)
		return RatingObservations(ratings), err
	default:
		return []Observation{}, fmt.Errorf("unknown series kind: %s", kind)
	}
}

func (a *Adapter) fetchObservations(
	ctx context.Context,
	collection, dateField, valueField string,
	kind Kind,
	window calendar.Window,
) ([]Observation, error) {
	docs, err := a.fetchWindow(ctx, collection, dateField, window)
	if err != nil {
		return []Observation{}, a.degrade(collection, err)
	}

	records := collect(a, collection, docs, []string{dateField}, &window,
		func(doc docstore.Document, date calendar.Coerced) (Observation, bool) {
			value, ok := number(doc.Data, valueField)
			if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
				return Observation{}, false
			}
			return Observation{Day: date.Day, Timestamp: date.Timestamp, Value: value, Kind: kind}, true
		},
	)

	return values(records), nil
}

func (a *Adapter) FetchSleep(ctx context.Context, window calendar.Window) (_ []SleepEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "series.fetchSleep")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := a.fetchWindow(ctx, CollectionSleep, "date", window)
	if err != nil {
		return []SleepEntry{}, a.degrade(CollectionSleep, err)
	}

	records := collect(a, CollectionSleep, docs, []string{"date"}, &window,
		func(doc docstore.Document, date calendar.Coerced) (SleepEntry, bool) {
			bedTime := text(doc.Data, "bedTime")
			wakeTime := text(doc.Data, "wakeTime")

			quality := defaultSleepQuality
			if q, ok := number(doc.Data, "quality"); ok && q >= 1 && q <= 5 {
				quality = int(math.Round(q))
			}

			return SleepEntry{
				Day:         date.Day,
				Timestamp:   date.Timestamp,
				BedTime:     bedTime,
				WakeTime:    wakeTime,
				Duration:    SleepDuration(bedTime, wakeTime),
				Quality:     quality,
				Notes:       text(doc.Data, "notes"),
				IsConfirmed: flag(doc.Data, "isConfirmed"),
				IsManual:    flag(doc.Data, "isManual"),
			}, true
		},
	)

	return values(records), nil
}

// FetchRatings reads day ratings. Their date lives in "date" or, for older documents, in "timestamp",
// so the store range query cannot select them and the window is applied client side.
func (a *Adapter) FetchRatings(ctx context.Context, window calendar.Window) (_ []DayRating, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "series.fetchRatings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := a.store.All(ctx, CollectionDayRatings)
	if err != nil {
		return []DayRating{}, a.degrade(CollectionDayRatings, err)
	}

	records := collect(a, CollectionDayRatings, docs, []string{"date", "timestamp"}, &window,
		func(doc docstore.Document, date calendar.Coerced) (DayRating, bool) {
			rating := DayRating{
				Day:        date.Day,
				Timestamp:  date.Timestamp,
				TemplateID: text(doc.Data, "templateId"),
				Rating:     optionalNumber(doc.Data, "rating"),
			}
			if rating.TemplateID == "" && rating.Rating == nil {
				return DayRating{}, false
			}
			return rating, true
		},
	)

	return values(records), nil
}

func (a *Adapter) FetchDayTemplates(ctx context.Context) (_ []plan.DayTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "series.fetchDayTemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := a.store.All(ctx, CollectionDayTemplates)
	if err != nil {
		return []plan.DayTemplate{}, a.degrade(CollectionDayTemplates, err)
	}

	templates := make([]plan.DayTemplate, 0, len(docs))
	for _, doc := range docs {
		// a template without a coefficient still resolves, contributing no change
		change, _ := number(doc.Data, "weightChangePerDay")
		templates = append(templates, plan.DayTemplate{
			ID:                 doc.ID,
			Name:               text(doc.Data, "name"),
			Color:              text(doc.Data, "color"),
			WeightChangePerDay: change,
			Rating:             optionalNumber(doc.Data, "rating"),
			Notes:              text(doc.Data, "notes"),
		})
	}

	return templates, nil
}

func (a *Adapter) FetchStepTemplates(ctx context.Context) (_ []plan.StepTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "series.fetchStepTemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := a.store.All(ctx, CollectionStepTemplates)
	if err != nil {
		return []plan.StepTemplate{}, a.degrade(CollectionStepTemplates, err)
	}

	templates := make([]plan.StepTemplate, 0, len(docs))
	for _, doc := range docs {
		change, _ := number(doc.Data, "weightChangePerDay")
		template := plan.StepTemplate{
			ID:                 doc.ID,
			Name:               text(doc.Data, "name"),
			WeightChangePerDay: change,
		}
		if target, ok := number(doc.Data, "targetSteps"); ok {
			steps := int(target)
			template.TargetSteps = &steps
		}
		templates = append(templates, template)
	}

	return templates, nil
}

// FetchPlannedAssignments maps each planned day to its template id. Assignments are not windowed:
// the projection reads future days.
func (a *Adapter) FetchPlannedAssignments(ctx context.Context, kind PlanKind) (_ plan.Assignments, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "series.fetchPlannedAssignments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("kind", string(kind)))

	collection := string(kind)
	docs, err := a.store.All(ctx, collection)
	if err != nil {
		return plan.Assignments{}, a.degrade(collection, err)
	}

	records := collect(a, collection, docs, []string{"date"}, nil,
		func(doc docstore.Document, _ calendar.Coerced) (string, bool) {
			templateID := text(doc.Data, "templateId")
			return templateID, templateID != ""
		},
	)

	assignments := make(plan.Assignments, len(records))
	for _, r := range records {
		assignments[r.day] = r.value
	}
	return assignments, nil
}

// fetchWindow prefers the store's range query and falls back to a full read when it fails.
// Results of both paths are filtered again client side, so they are interchangeable.
func (a *Adapter) fetchWindow(
	ctx context.Context,
	collection, dateField string,
	window calendar.Window,
) ([]docstore.Document, error) {
	from, to := window.Bounds(a.loc)
	docs, err := a.store.QueryRange(ctx, collection, dateField, from, to)
	if err == nil {
		return docs, nil
	}

	log.Debugf("series: range query on [%s] failed, falling back to full read: %s", collection, err)
	docs, err = a.store.All(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return docs, nil
}

// collect coerces the date of each document (first usable of dateFields), drops documents outside
// window (nil means no window), builds the typed value and keeps the latest record per day.
func collect[T any](
	a *Adapter,
	collection string,
	docs []docstore.Document,
	dateFields []string,
	window *calendar.Window,
	build func(doc docstore.Document, date calendar.Coerced) (T, bool),
) []record[T] {
	records := make([]record[T], 0, len(docs))
	for _, doc := range docs {
		var date calendar.Coerced
		for _, field := range dateFields {
			if date = calendar.Coerce(doc.Data[field], a.loc); date.OK {
				break
			}
		}
		if !date.OK {
			a.skip(collection, doc.ID, "unusable date")
			continue
		}
		if window != nil && !window.Contains(date.Day) {
			continue
		}

		value, ok := build(doc, date)
		if !ok {
			a.skip(collection, doc.ID, "missing required field")
			continue
		}

		records = append(records, record[T]{
			day:       date.Day,
			docID:     doc.ID,
			updatedAt: doc.UpdatedAt,
			value:     value,
		})
	}

	return latestPerDay(records)
}

func (a *Adapter) skip(collection, docID, reason string) {
	log.Debugf("series: skipping [%s] document [%s]: %s", collection, docID, reason)
	if a.metricsManager != nil {
		a.metricsManager.CounterSkippedRecords.WithLabelValues(collection).Inc()
	}
}

func (a *Adapter) degrade(collection string, err error) error {
	log.Warnf("series: fetch [%s] failed, using empty result: %s", collection, err)
	if a.metricsManager != nil {
		a.metricsManager.CounterFetchFailures.WithLabelValues(collection).Inc()
	}
	return fmt.Errorf("%s: %w: %w", collection, ErrUnavailable, err)
}
