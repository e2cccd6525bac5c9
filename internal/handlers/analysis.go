package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowloop/momentum-api/internal/analysis"
	"github.com/flowloop/momentum-api/internal/database"
	"github.com/flowloop/momentum-api/internal/middleware"
	"github.com/flowloop/momentum-api/internal/models"
	"github.com/flowloop/momentum-api/internal/queue"
	"github.com/flowloop/momentum-api/internal/services/ai"
	"github.com/flowloop/momentum-api/internal/validation"
)

// AnalysisHandler handles AI cross-analysis requests
type AnalysisHandler struct {
	snapshots analysis.SnapshotSource
	provider  ai.Provider
	usageRepo database.UsageRepositoryInterface
	jobQueue  queue.JobQueue // optional; nil disables usage events
	logger    *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	snapshots analysis.SnapshotSource,
	provider ai.Provider,
	usageRepo database.UsageRepositoryInterface,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		snapshots: snapshots,
		provider:  provider,
		usageRepo: usageRepo,
		jobQueue:  jobQueue,
		logger:    logger,
	}
}

// RegisterRoutes registers analysis routes on the given router.
// The router should already have the /api/v1/ai prefix.
func (h *AnalysisHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/cross-analysis", h.CrossAnalysis).Methods("POST")
}

// CrossAnalysis runs one AI analysis over the user's productivity data:
// fetch everything, derive metrics, build the prompt for the requested
// type, call the model, extract the JSON result, and audit the request.
func (h *AnalysisHandler) CrossAnalysis(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid analysis type", string(req.Type))
		return
	}

	ctx := ai.WithUserID(r.Context(), user.ID)

	snapshot, err := h.snapshots.Fetch(ctx, user.ID)
	if err != nil {
		h.logger.Error("snapshot_fetch_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch user data", err.Error())
		return
	}

	now := time.Now().UTC()
	metrics := analysis.DeriveMetrics(snapshot, now)

	prompt, err := ai.BuildPrompt(req.Type, metrics, snapshot, req.SpecificData, now)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid analysis type", string(req.Type))
		return
	}

	content, err := h.provider.Complete(ctx, prompt)
	if err != nil {
		h.respondUpstreamError(w, user, req.Type, err)
		return
	}

	result := ai.ExtractResult(content)
	if result.Kind == models.ResultKindFallback {
		h.logger.Warn("analysis_result_unparseable",
			zap.String("user_id", user.ID.String()),
			zap.String("analysis_type", string(req.Type)),
		)
	}

	// The audit row is required; a request that cannot be recorded fails.
	if err := h.usageRepo.Record(ctx, user.ID, models.ServiceCrossAnalysis); err != nil {
		h.logger.Error("usage_record_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Failed to record request", err.Error())
		return
	}

	h.publishUsageEvent(r, user, now)

	respondJSON(w, http.StatusOK, models.AnalysisResponse{
		Type:        req.Type,
		Result:      result,
		GeneratedAt: now,
	})
}

// respondUpstreamError maps completion-service failures onto distinct
// statuses so callers can tell "try later" from "add funds".
func (h *AnalysisHandler) respondUpstreamError(w http.ResponseWriter, user *models.User, analysisType models.AnalysisType, err error) {
	h.logger.Error("completion_failed",
		zap.String("user_id", user.ID.String()),
		zap.String("analysis_type", string(analysisType)),
		zap.Error(err),
	)

	switch {
	case ai.IsRateLimitError(err):
		respondJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded", "")
	case ai.IsCreditsError(err):
		respondJSONError(w, http.StatusPaymentRequired, "AI credits exhausted", "")
	default:
		respondJSONError(w, http.StatusInternalServerError, "AI gateway error", err.Error())
	}
}

// publishUsageEvent queues a usage event for the daily rollup worker.
// Best effort: a queue outage must never fail an otherwise good request.
func (h *AnalysisHandler) publishUsageEvent(r *http.Request, user *models.User, occurredAt time.Time) {
	if h.jobQueue == nil {
		return
	}

	job := queue.NewUsageEvent(user.ID, models.ServiceCrossAnalysis, occurredAt)
	if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
		h.logger.Warn("usage_event_publish_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}
}
