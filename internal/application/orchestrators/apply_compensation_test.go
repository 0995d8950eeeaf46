package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
)

func compCustomer(id string, end time.Time) customer.Customer {
	return customer.Customer{
		ID:                id,
		FullName:          "Customer " + id,
		CourseType:        customer.CourseMonthly,
		StartDate:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DurationOrPackage: "1 เดือน",
		OriginalEndDate:   end,
	}
}

// TestExecuteApplyCompensation_AllEligible tests that elapsed courses are
// skipped and active ones extended.
func TestExecuteApplyCompensation_AllEligible(t *testing.T) {
	store := newMockCustomerStore()
	store.customers["alive"] = compCustomer("alive", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	store.customers["today"] = compCustomer("today", fixedToday)
	store.customers["elapsed"] = compCustomer("elapsed", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))

	res, err := ExecuteApplyCompensation(context.Background(), ApplyCompensationInput{
		DaysToAdd: 3,
		Mode:      ModeAllEligible,
	}, ApplyCompensationDeps{CustomerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UpdatedCount != 2 {
		t.Errorf("UpdatedCount = %d, want 2 (elapsed course excluded)", res.UpdatedCount)
	}

	if got := store.customers["alive"].ManualEndDate; !got.Equal(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("alive ManualEndDate = %v, want original+3", got)
	}
	if got := store.customers["today"].ManualEndDate; !got.Equal(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("today ManualEndDate = %v, want expiry-day course still eligible", got)
	}
	if got := store.customers["elapsed"].ManualEndDate; !got.IsZero() {
		t.Errorf("elapsed ManualEndDate = %v, want untouched", got)
	}
	if got := store.customers["alive"].OriginalEndDate; !got.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("OriginalEndDate must never change on compensation")
	}
	if got := store.customers["alive"].TotalCompensationDays; got != 0 {
		t.Errorf("TotalCompensationDays = %d, compensation is carried by the manual end date only", got)
	}
}

// TestExecuteApplyCompensation_StacksOnManualEndDate tests that a second
// grant extends the previous manual end date.
func TestExecuteApplyCompensation_StacksOnManualEndDate(t *testing.T) {
	store := newMockCustomerStore()
	c := compCustomer("stacked", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	c.ManualEndDate = time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	store.customers["stacked"] = c

	_, err := ExecuteApplyCompensation(context.Background(), ApplyCompensationInput{
		DaysToAdd: 5,
		Mode:      ModeAllEligible,
	}, ApplyCompensationDeps{CustomerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.customers["stacked"].ManualEndDate; !got.Equal(time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ManualEndDate = %v, want previous manual end + 5", got)
	}
}

// TestExecuteApplyCompensation_SelectedCustomers tests the explicit target
// list mode.
func TestExecuteApplyCompensation_SelectedCustomers(t *testing.T) {
	store := newMockCustomerStore()
	store.customers["a"] = compCustomer("a", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	store.customers["b"] = compCustomer("b", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	res, err := ExecuteApplyCompensation(context.Background(), ApplyCompensationInput{
		DaysToAdd: 2,
		Mode:      ModeSelectedCustomers,
		TargetIDs: []string{"b"},
	}, ApplyCompensationDeps{CustomerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UpdatedCount != 1 {
		t.Errorf("UpdatedCount = %d, want 1", res.UpdatedCount)
	}
	if got := store.customers["a"].ManualEndDate; !got.IsZero() {
		t.Error("unselected customer must not be touched")
	}

	t.Run("empty selection writes nothing", func(t *testing.T) {
		res, err := ExecuteApplyCompensation(context.Background(), ApplyCompensationInput{
			DaysToAdd: 2,
			Mode:      ModeSelectedCustomers,
		}, ApplyCompensationDeps{CustomerStore: store, Now: fixedNow})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.UpdatedCount != 0 {
			t.Errorf("UpdatedCount = %d, want 0", res.UpdatedCount)
		}
	})
}

// TestExecuteApplyCompensation_Bounds tests the day and mode validation.
func TestExecuteApplyCompensation_Bounds(t *testing.T) {
	store := newMockCustomerStore()
	for _, days := range []int{0, -1, 15} {
		_, err := ExecuteApplyCompensation(context.Background(), ApplyCompensationInput{
			DaysToAdd: days,
			Mode:      ModeAllEligible,
		}, ApplyCompensationDeps{CustomerStore: store, Now: fixedNow})
		if !errors.Is(err, ErrInvalidCompensationDays) {
			t.Errorf("days=%d: expected ErrInvalidCompensationDays, got %v", days, err)
		}
	}

	_, err := ExecuteApplyCompensation(context.Background(), ApplyCompensationInput{
		DaysToAdd: 3,
		Mode:      "everyone",
	}, ApplyCompensationDeps{CustomerStore: store, Now: fixedNow})
	if !errors.Is(err, ErrInvalidCompensationMode) {
		t.Errorf("expected ErrInvalidCompensationMode, got %v", err)
	}
}
