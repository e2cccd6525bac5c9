package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowloop/momentum-api/internal/database"
	"github.com/flowloop/momentum-api/internal/middleware"
)

const defaultUsageLimit = 30

// UsageHandler exposes a user's own AI usage counters
type UsageHandler struct {
	usageRepo database.UsageRepositoryInterface
	logger    *zap.Logger
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(usageRepo database.UsageRepositoryInterface, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{usageRepo: usageRepo, logger: logger}
}

// RegisterRoutes registers usage routes on the given router.
// The router should already have the /api/v1 prefix.
func (h *UsageHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/usage", h.GetUsage).Methods("GET")
}

// GetUsage returns the caller's daily usage counts, most recent first
func (h *UsageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	limit := defaultUsageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			respondJSONError(w, http.StatusBadRequest, "Invalid limit", raw)
			return
		}
		limit = parsed
	}

	usage, err := h.usageRepo.GetDailyByUserID(r.Context(), user.ID, limit)
	if err != nil {
		h.logger.Error("usage_query_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Failed to query usage", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"usage": usage})
}
