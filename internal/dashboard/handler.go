package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/combined"
	"github.com/2beens/healthdash/internal/correlation"
	"github.com/2beens/healthdash/internal/middleware"
	"github.com/2beens/healthdash/internal/projection"
	"github.com/2beens/healthdash/internal/series"
	"github.com/2beens/healthdash/internal/session"
	"github.com/2beens/healthdash/internal/stats"
	"github.com/2beens/healthdash/internal/telemetry/metrics"
	"github.com/2beens/healthdash/internal/telemetry/tracing"
	"github.com/2beens/healthdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type snapshotSource interface {
	Current() *session.Snapshot
	Reload(ctx context.Context) *session.Snapshot
}

type horizonStore interface {
	LoadHorizon(ctx context.Context, today calendar.Day) projection.Horizon
	SaveDays(ctx context.Context, days int) (projection.Horizon, error)
	SaveEndDate(ctx context.Context, end, today calendar.Day) (projection.Horizon, error)
	ClearEndDate(ctx context.Context) error
}

const (
	MessageDataUnavailable = "data unavailable"

	maxQueryDays = 365
)

// View is the envelope of every JSON view. Message is set when a fetch behind the
// view failed and Data is empty (or partial) because of it.
type View struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type ProjectionView struct {
	Horizon projection.Horizon `json:"horizon"`
	Summary projection.Summary `json:"summary"`
	Points  []projection.Point `json:"points"`
}

type CorrelationView struct {
	Days     int                       `json:"days"`
	MaxSteps int                       `json:"maxSteps"`
	Records  []correlation.Record      `json:"records"`
	Steps    []correlation.StepsDetail `json:"steps"`
}

type StatsView struct {
	Weight stats.WeightStats `json:"weight"`
	Sleep  stats.SleepStats  `json:"sleep"`
}

type ReloadView struct {
	Generation  uint64    `json:"generation"`
	LoadedAt    time.Time `json:"loadedAt"`
	Unavailable []string  `json:"unavailable"`
}

type horizonRequest struct {
	Days *int `json:"days"`
	// an empty string clears the end date
	EndDate *string `json:"endDate"`
}

type Handler struct {
	snapshots       snapshotSource
	horizons        horizonStore
	cache           *responseCache
	correlationDays int
	combinedDays    int

	horizonMutex sync.RWMutex
	horizon      projection.Horizon
}

type NewHandlerParams struct {
	Snapshots       snapshotSource
	Horizons        horizonStore
	CacheSizeBytes  int
	CorrelationDays int
	CombinedDays    int
}

// NewHandler loads the stored planning horizon once; later changes go through PUT /preferences/horizon.
func NewHandler(ctx context.Context, params NewHandlerParams) *Handler {
	correlationDays := params.CorrelationDays
	if correlationDays < 1 {
		correlationDays = correlation.DefaultWindowDays
	}
	combinedDays := params.CombinedDays
	if combinedDays < 1 {
		combinedDays = combined.DefaultDays
	}

	snapshot := params.Snapshots.Current()
	return &Handler{
		snapshots:       params.Snapshots,
		horizons:        params.Horizons,
		cache:           newResponseCache(params.CacheSizeBytes),
		correlationDays: min(correlationDays, maxQueryDays),
		combinedDays:    min(combinedDays, maxQueryDays),
		horizon:         params.Horizons.LoadHorizon(ctx, calendar.Today(snapshot.Location)),
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	reloadAllowedPerMin int,
) {
	mainRouter.HandleFunc("/weights", h.HandleWeights).Methods("GET", "OPTIONS").Name("weights")
	mainRouter.HandleFunc("/sleep", h.HandleSleep).Methods("GET", "OPTIONS").Name("sleep")
	mainRouter.HandleFunc("/steps", h.HandleSteps).Methods("GET", "OPTIONS").Name("steps")
	mainRouter.HandleFunc("/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("stats")
	mainRouter.HandleFunc("/projection", h.HandleProjection).Methods("GET", "OPTIONS").Name("projection")
	mainRouter.HandleFunc("/correlation", h.HandleCorrelation).Methods("GET", "OPTIONS").Name("correlation")
	mainRouter.HandleFunc("/combined", h.HandleCombined).Methods("GET", "OPTIONS").Name("combined")
	mainRouter.HandleFunc("/export.csv", h.HandleExport).Methods("GET", "OPTIONS").Name("export")
	mainRouter.HandleFunc("/preferences/horizon", h.HandleGetHorizon).Methods("GET", "OPTIONS").Name("get-horizon")
	mainRouter.HandleFunc("/preferences/horizon", h.HandleUpdateHorizon).Methods("PUT", "OPTIONS").Name("update-horizon")

	// a reload hits every collection of the store, keep it rare
	mainRouter.Handle(
		"/reload",
		middleware.RateLimit(rateLimiter, "reload", reloadAllowedPerMin, metricsManager)(http.HandlerFunc(h.HandleReload)),
	).Methods("POST", "OPTIONS").Name("reload")
}

func (h *Handler) HandleWeights(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.weights")
	defer span.End()

	snapshot := h.snapshots.Current()
	h.writeView(w, snapshot, "weights", func() View {
		return viewOf(snapshot, snapshot.Weights, series.CollectionWeights)
	})
}

func (h *Handler) HandleSleep(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.sleep")
	defer span.End()

	snapshot := h.snapshots.Current()
	h.writeView(w, snapshot, "sleep", func() View {
		return viewOf(snapshot, snapshot.Sleep, series.CollectionSleep)
	})
}

func (h *Handler) HandleSteps(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.steps")
	defer span.End()

	snapshot := h.snapshots.Current()
	h.writeView(w, snapshot, "steps", func() View {
		return viewOf(snapshot, snapshot.Steps, series.CollectionSteps)
	})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.stats")
	defer span.End()

	snapshot := h.snapshots.Current()
	h.writeView(w, snapshot, "stats", func() View {
		return viewOf(snapshot, StatsView{
			Weight: stats.Weight(snapshot.Weights),
			Sleep:  stats.Sleep(snapshot.Sleep, snapshot.Today),
		}, series.CollectionWeights, series.CollectionSleep)
	})
}

func (h *Handler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.projection")
	defer span.End()

	snapshot := h.snapshots.Current()
	horizon := h.effectiveHorizon(snapshot.Today)

	cacheView := fmt.Sprintf("projection::%d", horizon.Days)
	if horizon.EndDate != nil {
		cacheView += "::" + horizon.EndDate.Key()
	}
	h.writeView(w, snapshot, cacheView, func() View {
		points := snapshot.Project(horizon.Days)
		current, _ := projection.LastWeight(snapshot.Weights)
		return viewOf(snapshot, ProjectionView{
			Horizon: horizon,
			Summary: projection.Summarize(current, points),
			Points:  points,
		},
			series.CollectionWeights,
			series.CollectionDayTemplates, series.CollectionPlannedDays,
			series.CollectionStepTemplates, series.CollectionStepGoals,
		)
	})
}

func (h *Handler) HandleCorrelation(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.correlation")
	defer span.End()

	days, err := daysParam(r, h.correlationDays)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot := h.snapshots.Current()
	days = snapshot.ClampDays(days)
	h.writeView(w, snapshot, fmt.Sprintf("correlation::%d", days), func() View {
		records := snapshot.Correlation(days)
		details := make([]correlation.StepsDetail, 0, len(records))
		for i := range records {
			if detail, ok := correlation.DetailFor(records, i); ok {
				details = append(details, detail)
			}
		}
		return viewOf(snapshot, CorrelationView{
			Days:     days,
			MaxSteps: correlation.MaxSteps(records, correlation.MinStepsScale),
			Records:  records,
			Steps:    details,
		},
			series.CollectionWeights, series.CollectionSteps,
			series.CollectionDayTemplates, series.CollectionPlannedDays,
		)
	})
}

func (h *Handler) HandleCombined(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.combined")
	defer span.End()

	days, err := daysParam(r, h.combinedDays)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot := h.snapshots.Current()
	days = snapshot.ClampDays(days)
	h.writeView(w, snapshot, fmt.Sprintf("combined::%d", days), func() View {
		chart := combined.Build(combined.Input{
			Weights:        snapshot.Weights,
			SleepDurations: snapshot.SleepDurations,
			Steps:          snapshot.Steps,
			Ratings:        snapshot.Ratings,
			DayTemplates:   snapshot.DayTemplates,
			Location:       snapshot.Location,
		}, snapshot.Today, days)
		return viewOf(snapshot, chart,
			series.CollectionWeights, series.CollectionSleep, series.CollectionSteps, series.CollectionDayRatings,
		)
	})
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.export")
	defer span.End()

	snapshot := h.snapshots.Current()
	resp, found := h.cache.get(snapshot.Generation, "export.csv")
	if !found {
		var err error
		resp, err = ExportCSV(snapshot)
		if err != nil {
			log.Errorf("dashboard: export csv: %s", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		h.cache.set(snapshot.Generation, "export.csv", resp)
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, ExportFileName(snapshot.Today)))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.CSV, resp)
}

func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.reload")
	defer span.End()

	// a reload in progress finishes even if the caller goes away
	snapshot := h.snapshots.Reload(context.WithoutCancel(ctx))

	unavailable := snapshot.UnavailableCollections()
	slices.Sort(unavailable)
	log.Infof("dashboard: reloaded snapshot %d, unavailable: %v", snapshot.Generation, unavailable)

	pkg.WriteJSON(w, ReloadView{
		Generation:  snapshot.Generation,
		LoadedAt:    snapshot.LoadedAt,
		Unavailable: unavailable,
	})
}

func (h *Handler) HandleGetHorizon(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.horizon.get")
	defer span.End()

	pkg.WriteJSON(w, h.effectiveHorizon(h.snapshots.Current().Today))
}

func (h *Handler) HandleUpdateHorizon(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.horizon.update")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req horizonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("update horizon, unmarshal json params: %s", err)
		http.Error(w, "invalid horizon request", http.StatusBadRequest)
		return
	}

	today := h.snapshots.Current().Today
	h.horizonMutex.Lock()
	defer h.horizonMutex.Unlock()

	var (
		updated projection.Horizon
		err     error
	)
	switch {
	case req.EndDate != nil && *req.EndDate == "":
		err = h.horizons.ClearEndDate(ctx)
		updated = h.horizon
		updated.ClearEndDate()
	case req.EndDate != nil:
		end, parseErr := calendar.ParseDay(*req.EndDate)
		if parseErr != nil {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}
		updated, err = h.horizons.SaveEndDate(ctx, end, today)
	case req.Days != nil:
		updated, err = h.horizons.SaveDays(ctx, *req.Days)
	default:
		http.Error(w, "days or endDate required", http.StatusBadRequest)
		return
	}

	if err != nil {
		if errors.Is(err, projection.ErrInvalidHorizon) || errors.Is(err, projection.ErrInvalidEndDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("update horizon: %s", err)
		http.Error(w, "failed to save horizon", http.StatusInternalServerError)
		return
	}

	h.horizon = updated
	log.Debugf("planning horizon updated: %d days", updated.Days)
	pkg.WriteJSON(w, updated)
}

// effectiveHorizon re-derives the day count from the end date, which moves closer every day.
// Once the end date has passed the last derived day count is used.
func (h *Handler) effectiveHorizon(today calendar.Day) projection.Horizon {
	h.horizonMutex.RLock()
	horizon := h.horizon
	h.horizonMutex.RUnlock()

	if horizon.EndDate != nil {
		if days, err := projection.DaysUntilEnd(*horizon.EndDate, today); err == nil {
			horizon.Days = days
		}
	}
	return horizon
}

func (h *Handler) writeView(w http.ResponseWriter, snapshot *session.Snapshot, cacheView string, build func() View) {
	if resp, found := h.cache.get(snapshot.Generation, cacheView); found {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
		return
	}

	resp, err := json.Marshal(build())
	if err != nil {
		log.Errorf("dashboard: marshal view [%s]: %s", cacheView, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.cache.set(snapshot.Generation, cacheView, resp)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func viewOf(snapshot *session.Snapshot, data any, collections ...string) View {
	view := View{Data: data}
	if snapshot.Unavailable(collections...) {
		view.Message = MessageDataUnavailable
	}
	return view
}

func daysParam(r *http.Request, defaultDays int) (int, error) {
	daysStr := r.URL.Query().Get("days")
	if daysStr == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("invalid days [%s]", daysStr)
	}
	return min(days, maxQueryDays), nil
}
