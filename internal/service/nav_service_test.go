package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/testutil"
)

func navPoint(date string, nav float64) model.NavPoint {
	d, _ := time.Parse(model.DateOnly, date)
	return model.NavPoint{Date: d, NAV: nav}
}

// TestNavService_Save tests the bulk NAV upsert.
//
// WHY: NAV points drive every share price in the system. A batch with any
// invalid row must be rejected wholesale so the series never ends up half
// written.
func TestNavService_Save(t *testing.T) {
	t.Run("upserts new points and audits once", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestNavService(t, db)
		points := []model.NavPoint{
			navPoint("2025-06-01", 100),
			navPoint("2025-06-02", 150),
		}

		// Execute
		if err := svc.Save(context.Background(), points, "Admin"); err != nil {
			t.Fatalf("Save() returned unexpected error: %v", err)
		}

		// Assert
		testutil.AssertRowCount(t, db, "nav_point", 2)
		testutil.AssertRowCount(t, db, "audit_event", 1)
	})

	t.Run("overwrites an existing date", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestNavService(t, db)
		testutil.NewNavPoint().WithDate("2025-06-01").WithNAV(100).Build(t, db)

		// Execute
		if err := svc.Save(context.Background(), []model.NavPoint{navPoint("2025-06-01", 175)}, "Admin"); err != nil {
			t.Fatalf("Save() returned unexpected error: %v", err)
		}

		// Assert
		history, err := svc.GetHistory()
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if history["2025-06-01"] != 175 {
			t.Errorf("Expected overwritten NAV 175, got %v", history["2025-06-01"])
		}
		testutil.AssertRowCount(t, db, "nav_point", 1)
	})

	t.Run("rejects a negative NAV without mutating", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestNavService(t, db)

		err := svc.Save(context.Background(), []model.NavPoint{
			navPoint("2025-06-01", 100),
			navPoint("2025-06-02", -5),
		}, "Admin")
		if !errors.Is(err, apperrors.ErrNegativeNav) {
			t.Fatalf("Expected ErrNegativeNav, got %v", err)
		}
		testutil.AssertRowCount(t, db, "nav_point", 0)
		testutil.AssertRowCount(t, db, "audit_event", 0)
	})

	t.Run("rejects a date before the fund start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestNavService(t, db)

		err := svc.Save(context.Background(), []model.NavPoint{navPoint("2025-01-01", 100)}, "Admin")
		if !errors.Is(err, apperrors.ErrDateBeforeStart) {
			t.Fatalf("Expected ErrDateBeforeStart, got %v", err)
		}
		testutil.AssertRowCount(t, db, "nav_point", 0)
	})
}

// TestNavService_GetRange tests the dense editing series.
func TestNavService_GetRange(t *testing.T) {
	t.Run("covers start date through today with zero fill", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestNavService(t, db)
		testutil.NewNavPoint().WithDate("2025-05-20").WithNAV(123).Build(t, db)

		// Execute
		points, err := svc.GetRange()

		// Assert
		if err != nil {
			t.Fatalf("GetRange() returned unexpected error: %v", err)
		}
		if len(points) == 0 {
			t.Fatal("Expected a non-empty range")
		}
		if !points[0].Date.Equal(testutil.TestStartDate) {
			t.Errorf("Expected range to start at %s, got %s", testutil.TestStartDate, points[0].Date)
		}

		byDate := map[string]float64{}
		for _, p := range points {
			byDate[p.Date.Format(model.DateOnly)] = p.NAV
		}
		if byDate["2025-05-20"] != 123 {
			t.Errorf("Expected recorded NAV 123 on 2025-05-20, got %v", byDate["2025-05-20"])
		}
		if byDate["2025-05-18"] != 0 {
			t.Errorf("Expected zero fill on 2025-05-18, got %v", byDate["2025-05-18"])
		}
	})
}
