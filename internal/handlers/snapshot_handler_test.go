package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

type mockSnapshotService struct {
	recordDailySnapshotsFn func(day time.Time) (int, error)
	getSnapshotsFn         func(userID uint, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}

func (m *mockSnapshotService) RecordDailySnapshots(day time.Time) (int, error) {
	if m.recordDailySnapshotsFn != nil {
		return m.recordDailySnapshotsFn(day)
	}
	return 0, nil
}

func (m *mockSnapshotService) GetSnapshots(userID uint, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	if m.getSnapshotsFn != nil {
		return m.getSnapshotsFn(userID, from, to, page)
	}
	resp := pagination.NewPageResponse([]models.NetWorthSnapshot{}, 1, 20, 0)
	return &resp, nil
}

var _ services.SnapshotServicer = (*mockSnapshotService)(nil)

func setupSnapshotRouter(handler *SnapshotHandler) *gin.Engine {
	r := gin.New()
	r.POST("/pipeline/snapshots", handler.RecordSnapshots)

	auth := r.Group("", injectUserID(1))
	auth.GET("/snapshots", handler.GetSnapshots)
	return r
}

func TestSnapshotHandler_RecordSnapshots(t *testing.T) {
	t.Run("runs for given date", func(t *testing.T) {
		var got time.Time
		svc := &mockSnapshotService{
			recordDailySnapshotsFn: func(day time.Time) (int, error) {
				got = day
				return 3, nil
			},
		}
		handler := NewSnapshotHandler(svc)
		r := setupSnapshotRouter(handler)

		rec := doRequest(r, "POST", "/pipeline/snapshots", `{"date":"2025-06-15"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["users_snapshotted"] != float64(3) {
			t.Errorf("expected 3 users snapshotted, got %v", result["users_snapshotted"])
		}
		if got.Format("2006-01-02") != "2025-06-15" {
			t.Errorf("expected date 2025-06-15 passed through, got %s", got)
		}
	})

	t.Run("defaults to today on empty body", func(t *testing.T) {
		var got time.Time
		svc := &mockSnapshotService{
			recordDailySnapshotsFn: func(day time.Time) (int, error) {
				got = day
				return 0, nil
			},
		}
		handler := NewSnapshotHandler(svc)
		r := setupSnapshotRouter(handler)

		rec := doRequest(r, "POST", "/pipeline/snapshots", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		today := time.Now().UTC().Format("2006-01-02")
		if got.Format("2006-01-02") != today {
			t.Errorf("expected today %s, got %s", today, got)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		handler := NewSnapshotHandler(&mockSnapshotService{})
		r := setupSnapshotRouter(handler)

		rec := doRequest(r, "POST", "/pipeline/snapshots", `{"date":"June 15th"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestSnapshotHandler_GetSnapshots(t *testing.T) {
	t.Run("passes date range through", func(t *testing.T) {
		var gotFrom, gotTo time.Time
		svc := &mockSnapshotService{
			getSnapshotsFn: func(userID uint, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
				gotFrom, gotTo = from, to
				resp := pagination.NewPageResponse([]models.NetWorthSnapshot{{UserID: userID}}, 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewSnapshotHandler(svc)
		r := setupSnapshotRouter(handler)

		rec := doRequest(r, "GET", "/snapshots?from_date=2025-06-01&to_date=2025-06-15", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFrom.Format("2006-01-02") != "2025-06-01" {
			t.Errorf("expected from 2025-06-01, got %s", gotFrom)
		}
		if gotTo.Format("2006-01-02") != "2025-06-15" {
			t.Errorf("expected to 2025-06-15, got %s", gotTo)
		}
	})

	t.Run("omitted range is open", func(t *testing.T) {
		svc := &mockSnapshotService{
			getSnapshotsFn: func(userID uint, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
				if !from.IsZero() || !to.IsZero() {
					t.Errorf("expected zero range, got from=%s to=%s", from, to)
				}
				resp := pagination.NewPageResponse([]models.NetWorthSnapshot{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewSnapshotHandler(svc)
		r := setupSnapshotRouter(handler)

		rec := doRequest(r, "GET", "/snapshots", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad from_date", func(t *testing.T) {
		handler := NewSnapshotHandler(&mockSnapshotService{})
		r := setupSnapshotRouter(handler)

		rec := doRequest(r, "GET", "/snapshots?from_date=nope", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
