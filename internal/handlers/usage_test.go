package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowloop/momentum-api/internal/middleware"
	"github.com/flowloop/momentum-api/internal/models"
)

type mockUsageReader struct {
	mockAuditRepo
	usage []*models.DailyUsage
	err   error
	limit int
}

func (m *mockUsageReader) GetDailyByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.DailyUsage, error) {
	m.limit = limit
	return m.usage, m.err
}

func TestGetUsage(t *testing.T) {
	t.Parallel()

	user := testUser()
	repo := &mockUsageReader{
		usage: []*models.DailyUsage{
			{UserID: user.ID, Service: models.ServiceCrossAnalysis, Day: "2026-08-30", Count: 4},
		},
	}
	h := NewUsageHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
	req = req.WithContext(middleware.SetUserInContext(req.Context(), user))
	w := httptest.NewRecorder()

	h.GetUsage(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if repo.limit != defaultUsageLimit {
		t.Errorf("Expected default limit %d, got %d", defaultUsageLimit, repo.limit)
	}

	var body struct {
		Usage []*models.DailyUsage `json:"usage"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Usage) != 1 || body.Usage[0].Count != 4 {
		t.Errorf("Unexpected usage payload: %+v", body.Usage)
	}
}

func TestGetUsage_InvalidLimit(t *testing.T) {
	t.Parallel()

	h := NewUsageHandler(&mockUsageReader{}, zap.NewNop())

	for _, limit := range []string{"abc", "0", "-1", "9999"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/usage?limit="+limit, nil)
		req = req.WithContext(middleware.SetUserInContext(req.Context(), testUser()))
		w := httptest.NewRecorder()

		h.GetUsage(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit %q: expected status 400, got %d", limit, w.Code)
		}
	}
}

func TestGetUsage_Unauthorized(t *testing.T) {
	t.Parallel()

	h := NewUsageHandler(&mockUsageReader{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
	w := httptest.NewRecorder()

	h.GetUsage(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestGetUsage_QueryError(t *testing.T) {
	t.Parallel()

	h := NewUsageHandler(&mockUsageReader{err: errors.New("db down")}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
	req = req.WithContext(middleware.SetUserInContext(req.Context(), testUser()))
	w := httptest.NewRecorder()

	h.GetUsage(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
