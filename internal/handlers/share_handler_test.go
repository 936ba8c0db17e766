package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/services"
)

// --- mock share service ---

type mockShareService struct {
	createOrUpdateShareFn func(userID uint, chartType models.ChartType, title string, defaultTimeframe models.Timeframe) (*services.ShareResult, error)
	getSharedChartFn      func(token string) (*services.SharedChartView, error)
	listSharesFn          func(userID uint) ([]models.SharedChart, error)
	revokeShareFn         func(userID uint, token string) error
}

func (m *mockShareService) CreateOrUpdateShare(userID uint, chartType models.ChartType, title string, defaultTimeframe models.Timeframe) (*services.ShareResult, error) {
	if m.createOrUpdateShareFn != nil {
		return m.createOrUpdateShareFn(userID, chartType, title, defaultTimeframe)
	}
	return &services.ShareResult{ShareURL: "https://example.com/shares/tok", Token: "tok"}, nil
}

func (m *mockShareService) GetSharedChart(token string) (*services.SharedChartView, error) {
	if m.getSharedChartFn != nil {
		return m.getSharedChartFn(token)
	}
	return &services.SharedChartView{}, nil
}

func (m *mockShareService) ListShares(userID uint) ([]models.SharedChart, error) {
	if m.listSharesFn != nil {
		return m.listSharesFn(userID)
	}
	return []models.SharedChart{}, nil
}

func (m *mockShareService) RevokeShare(userID uint, token string) error {
	if m.revokeShareFn != nil {
		return m.revokeShareFn(userID, token)
	}
	return nil
}

var _ services.ShareServicer = (*mockShareService)(nil)

func setupShareRouter(handler *ShareHandler) *gin.Engine {
	r := gin.New()
	// Public fetch has no auth middleware
	r.GET("/shares/:token", handler.GetSharedChart)

	auth := r.Group("", injectUserID(1))
	auth.POST("/shares", handler.CreateShare)
	auth.GET("/shares", handler.ListShares)
	auth.DELETE("/shares/:token", handler.RevokeShare)
	return r
}

// --- tests ---

func TestShareHandler_CreateShare(t *testing.T) {
	t.Run("returns 201 on first publish", func(t *testing.T) {
		svc := &mockShareService{
			createOrUpdateShareFn: func(userID uint, chartType models.ChartType, title string, tf models.Timeframe) (*services.ShareResult, error) {
				return &services.ShareResult{
					ShareURL:   "https://example.com/shares/abc",
					Token:      "abc",
					IsExisting: false,
				}, nil
			},
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "POST", "/shares",
			`{"chart_type":"net_worth","title":"My Net Worth","default_timeframe":"30d"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] != "abc" {
			t.Errorf("expected token abc, got %v", result["token"])
		}
		if result["is_existing"] != false {
			t.Errorf("expected is_existing false, got %v", result["is_existing"])
		}
	})

	t.Run("returns 200 on republish", func(t *testing.T) {
		svc := &mockShareService{
			createOrUpdateShareFn: func(uint, models.ChartType, string, models.Timeframe) (*services.ShareResult, error) {
				return &services.ShareResult{Token: "abc", IsExisting: true}, nil
			},
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "POST", "/shares", `{"chart_type":"net_worth"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown chart type", func(t *testing.T) {
		handler := NewShareHandler(&mockShareService{}, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "POST", "/shares", `{"chart_type":"spending"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 when nothing to share", func(t *testing.T) {
		svc := &mockShareService{
			createOrUpdateShareFn: func(uint, models.ChartType, string, models.Timeframe) (*services.ShareResult, error) {
				return nil, apperrors.ErrNoDataToShare
			},
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "POST", "/shares", `{"chart_type":"net_worth"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_DATA_TO_SHARE")
	})
}

func TestShareHandler_GetSharedChart(t *testing.T) {
	t.Run("returns 200 without authentication", func(t *testing.T) {
		svc := &mockShareService{
			getSharedChartFn: func(token string) (*services.SharedChartView, error) {
				return &services.SharedChartView{
					Title:     "Public Chart",
					ChartData: models.ChartPayload{models.Timeframe30D: {}},
					Settings:  models.ShareSettings{DefaultTimeframe: models.Timeframe30D},
					ViewCount: 42,
					CreatedAt: time.Now(),
				}, nil
			},
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "GET", "/shares/some-token", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["title"] != "Public Chart" {
			t.Errorf("expected title Public Chart, got %v", result["title"])
		}
		if result["view_count"] != float64(42) {
			t.Errorf("expected view_count 42, got %v", result["view_count"])
		}
	})

	t.Run("returns 404 for unknown token", func(t *testing.T) {
		svc := &mockShareService{
			getSharedChartFn: func(string) (*services.SharedChartView, error) {
				return nil, apperrors.ErrShareNotFound
			},
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "GET", "/shares/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SHARE_NOT_FOUND")
	})

	t.Run("returns 410 for expired share", func(t *testing.T) {
		svc := &mockShareService{
			getSharedChartFn: func(string) (*services.SharedChartView, error) {
				return nil, apperrors.ErrShareExpired
			},
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "GET", "/shares/expired", "")

		if rec.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SHARE_EXPIRED")
	})
}

func TestShareHandler_RevokeShare(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewShareHandler(&mockShareService{}, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "DELETE", "/shares/some-token", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 403 for someone elses share", func(t *testing.T) {
		svc := &mockShareService{
			revokeShareFn: func(uint, string) error { return apperrors.ErrForbidden },
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "DELETE", "/shares/not-mine", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for unknown token", func(t *testing.T) {
		svc := &mockShareService{
			revokeShareFn: func(uint, string) error { return apperrors.ErrShareNotFound },
		}
		handler := NewShareHandler(svc, &mockAuditService{})
		r := setupShareRouter(handler)

		rec := doRequest(r, "DELETE", "/shares/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestShareHandler_ListShares(t *testing.T) {
	svc := &mockShareService{
		listSharesFn: func(userID uint) ([]models.SharedChart, error) {
			return []models.SharedChart{
				{UserID: userID, ChartType: models.ChartTypeNetWorth, Token: "tok-1", IsActive: true},
				{UserID: userID, ChartType: models.ChartTypeNetWorth, Token: "tok-2", IsActive: false},
			}, nil
		},
	}
	handler := NewShareHandler(svc, &mockAuditService{})
	r := setupShareRouter(handler)

	rec := doRequest(r, "GET", "/shares", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	shares := result["shares"].([]interface{})
	if len(shares) != 2 {
		t.Errorf("expected 2 shares, got %d", len(shares))
	}
}
