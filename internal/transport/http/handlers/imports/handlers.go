package importshandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrimport/internal/auth"
	"hrimport/internal/domain/audit"
	"hrimport/internal/importer"
	"hrimport/internal/requestctx"
	"hrimport/internal/transport/http/api"
	"hrimport/internal/transport/http/middleware"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Runner runs one import batch.
type Runner interface {
	Run(ctx context.Context) (importer.Summary, error)
}

// RunLister reads the import_runs ledger.
type RunLister interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, includeSummary bool, limit, offset int) ([]audit.Run, error)
}

type Handler struct {
	Runner Runner
	Runs   RunLister
	Logger *zap.Logger
}

func NewHandler(runner Runner, runs RunLister, logger *zap.Logger) *Handler {
	return &Handler{Runner: runner, Runs: runs, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermImportRun)).Post("/imports", h.handleRunImport)
	if h.Runs != nil {
		r.With(middleware.RequirePermission(auth.PermImportView)).Get("/imports", h.handleListRuns)
	}
}

func (h *Handler) handleRunImport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	ctx := requestctx.WithOrigin(r.Context(), requestctx.Origin{
		Trigger:   audit.TriggerHTTP,
		ActorID:   user.UserID,
		RequestID: reqID,
	})
	summary, err := h.Runner.Run(ctx)
	switch {
	case errors.Is(err, importer.ErrBatchRunning):
		api.Fail(w, http.StatusConflict, "batch_running", "an import batch is already running", reqID)
		return
	case err != nil:
		h.Logger.Error("import batch failed",
			zap.String("request_id", reqID),
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		api.Fail(w, http.StatusInternalServerError, "import_failed", "import batch failed and was rolled back", reqID)
		return
	}

	h.Logger.Info("import batch triggered over http",
		zap.String("request_id", reqID),
		zap.String("user_id", user.UserID),
		zap.String("batch_id", summary.BatchID),
	)
	api.Success(w, summary, reqID)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	limit, offset := parsePage(query.Get("limit"), query.Get("offset"))
	filter := audit.Filter{Result: query.Get("result"), Trigger: query.Get("trigger")}
	includeSummary := query.Get("includeSummary") == "true"

	total, err := h.Runs.Count(r.Context(), filter)
	if err != nil {
		h.Logger.Warn("import run count failed", zap.String("request_id", reqID), zap.Error(err))
	}

	runs, err := h.Runs.List(r.Context(), filter, includeSummary, limit, offset)
	if err != nil {
		h.Logger.Error("import run list failed", zap.String("request_id", reqID), zap.Error(err))
		api.Fail(w, http.StatusInternalServerError, "runs_list_failed", "failed to list import runs", reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, runs, reqID)
}

func parsePage(rawLimit, rawOffset string) (limit, offset int) {
	limit = defaultPageLimit
	if v, err := strconv.Atoi(rawLimit); err == nil && v > 0 {
		limit = min(v, maxPageLimit)
	}
	if v, err := strconv.Atoi(rawOffset); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
