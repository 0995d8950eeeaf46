package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// CheckInCustomerResult carries the post-check-in session count.
type CheckInCustomerResult struct {
	FullName  string
	Remaining int
}

// CheckInCustomerDeps holds dependencies for CheckInCustomer.
type CheckInCustomerDeps struct {
	CustomerStore CustomerStore
	Now           func() time.Time // defaults to dates.TodayUTC
}

// ExecuteCheckInCustomer consumes one session from a per-session customer.
// PRE: id identifies an existing per-session customer with sessions left
// POST: RemainingSessions decremented by exactly 1, today appended to the
// check-in history
// INVARIANT: Bonus sessions are never drawn from by a check-in
func ExecuteCheckInCustomer(ctx context.Context, id string, deps CheckInCustomerDeps) (CheckInCustomerResult, error) {
	if deps.Now == nil {
		deps.Now = dates.TodayUTC
	}

	c, err := deps.CustomerStore.GetByID(ctx, id)
	if err != nil {
		return CheckInCustomerResult{}, ErrCustomerNotFound
	}

	if err := c.ConsumeSession(deps.Now()); err != nil {
		return CheckInCustomerResult{}, err
	}

	if err := deps.CustomerStore.Save(ctx, c); err != nil {
		return CheckInCustomerResult{}, err
	}

	slog.Info("customer_event", "event", "session_checked_in", "customer_id", c.ID, "name", c.FullName, "remaining", c.RemainingSessions)

	return CheckInCustomerResult{FullName: c.FullName, Remaining: c.RemainingSessions}, nil
}
