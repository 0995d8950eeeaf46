package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// Compensation modes.
const (
	ModeAllEligible       = "all-eligible"
	ModeSelectedCustomers = "selected-customers"
)

// Bounds for a single compensation grant.
const (
	MinCompensationDays = 1
	MaxCompensationDays = 14
)

// compensationWorkers bounds the concurrent row writes of one batch.
const compensationWorkers = 8

var (
	ErrInvalidCompensationDays = errors.New("compensation days must be between 1 and 14")
	ErrInvalidCompensationMode = errors.New("compensation mode must be all-eligible or selected-customers")
)

// ApplyCompensationInput carries input for the bulk compensation orchestrator.
type ApplyCompensationInput struct {
	DaysToAdd int
	Mode      string
	TargetIDs []string // only consulted in selected-customers mode
}

// ApplyCompensationResult carries the number of customers whose end date
// was advanced.
type ApplyCompensationResult struct {
	UpdatedCount int
}

// ApplyCompensationDeps holds dependencies for ApplyCompensation.
type ApplyCompensationDeps struct {
	CustomerStore CustomerStore
	Now           func() time.Time // defaults to dates.TodayUTC
}

// ExecuteApplyCompensation grants extra days to eligible customers by
// advancing their manual end date. Rows are written concurrently and
// best-effort: one failing row never aborts the batch, it is logged and
// excluded from the count.
// PRE: DaysToAdd within [1,14], Mode is a known mode
// POST: Each eligible customer's ManualEndDate = (previous manual end date,
// or original end date) + DaysToAdd; returns the success count
// INVARIANT: Customers whose OriginalEndDate has already elapsed are never touched
func ExecuteApplyCompensation(ctx context.Context, input ApplyCompensationInput, deps ApplyCompensationDeps) (ApplyCompensationResult, error) {
	if input.DaysToAdd < MinCompensationDays || input.DaysToAdd > MaxCompensationDays {
		return ApplyCompensationResult{}, ErrInvalidCompensationDays
	}
	if input.Mode != ModeAllEligible && input.Mode != ModeSelectedCustomers {
		return ApplyCompensationResult{}, ErrInvalidCompensationMode
	}
	if deps.Now == nil {
		deps.Now = dates.TodayUTC
	}

	customers, err := deps.CustomerStore.List(ctx)
	if err != nil {
		return ApplyCompensationResult{}, err
	}

	selected := make(map[string]bool, len(input.TargetIDs))
	for _, id := range input.TargetIDs {
		selected[id] = true
	}

	today := deps.Now()
	var updated atomic.Int64

	p := pool.New().WithMaxGoroutines(compensationWorkers)
	for _, c := range customers {
		if input.Mode == ModeSelectedCustomers && !selected[c.ID] {
			continue
		}
		// Eligibility is judged on the original end date, not the manual
		// override: a course whose base entitlement has elapsed gets nothing.
		diff, ok := dates.DiffDays(c.OriginalEndDate, today)
		if !ok || diff < 0 {
			continue
		}

		c := c
		p.Go(func() {
			base := c.ManualEndDate
			if base.IsZero() {
				base = c.OriginalEndDate
			}
			c.ManualEndDate = dates.AddDays(base, input.DaysToAdd)
			if err := deps.CustomerStore.Save(ctx, c); err != nil {
				slog.Warn("compensation_row_failed", "customer_id", c.ID, "error", err.Error())
				return
			}
			updated.Add(1)
		})
	}
	p.Wait()

	count := int(updated.Load())
	slog.Info("customer_event", "event", "compensation_applied", "days", input.DaysToAdd, "mode", input.Mode, "updated", count)

	return ApplyCompensationResult{UpdatedCount: count}, nil
}
