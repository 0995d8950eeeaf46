package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// Operation-level errors shared by the customer orchestrators.
var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// CustomerStore defines the full customer store interface used by the
// update, delete and check-in orchestrators.
type CustomerStore interface {
	GetByID(ctx context.Context, id string) (customer.Customer, error)
	Save(ctx context.Context, c customer.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]customer.Customer, error)
}

// UpdateCustomerInput carries the full editable field set. A changed start
// date is a renewal and clears the check-in history.
type UpdateCustomerInput struct {
	CustomerID            string
	FullName              string
	Phone                 string
	CourseType            string
	StartDate             string // YYYY-MM-DD
	DurationOrPackage     string
	ManualEndDate         string // YYYY-MM-DD; empty clears the override
	TotalCompensationDays int
	RemainingSessions     *int
	BonusSessions         *int
}

// UpdateCustomerDeps holds dependencies for UpdateCustomer.
type UpdateCustomerDeps struct {
	CustomerStore CustomerStore
}

// ExecuteUpdateCustomer edits or renews a customer course record.
// PRE: CustomerID identifies an existing record
// POST: All fields written; OriginalEndDate recomputed; on renewal the
// check-in history is cleared for both course types
// INVARIANT: Monthly customers end up with zeroed session counters
func ExecuteUpdateCustomer(ctx context.Context, input UpdateCustomerInput, deps UpdateCustomerDeps) error {
	existing, err := deps.CustomerStore.GetByID(ctx, input.CustomerID)
	if err != nil {
		return ErrCustomerNotFound
	}

	start, ok := dates.Parse(input.StartDate)
	if !ok {
		return customer.ErrInvalidStartDate
	}
	endDate, err := customer.CourseEndDate(start, input.CourseType, input.DurationOrPackage)
	if err != nil {
		return err
	}

	renewal := existing.IsRenewal(start)

	c := existing
	c.FullName = input.FullName
	c.Phone = input.Phone
	c.CourseType = input.CourseType
	c.StartDate = start
	c.DurationOrPackage = input.DurationOrPackage
	c.OriginalEndDate = endDate
	c.TotalCompensationDays = input.TotalCompensationDays

	c.ManualEndDate, _ = dates.Parse(input.ManualEndDate)

	if c.IsPerSession() {
		if input.RemainingSessions != nil {
			c.RemainingSessions = *input.RemainingSessions
		} else {
			c.RemainingSessions = customer.PackageSessions(input.DurationOrPackage)
		}
		if input.BonusSessions != nil {
			c.BonusSessions = *input.BonusSessions
		} else {
			c.BonusSessions = 0
		}
	} else {
		c.RemainingSessions = 0
		c.BonusSessions = 0
	}

	if renewal {
		c.ResetHistory()
	}

	if err := c.Validate(); err != nil {
		return err
	}
	if err := deps.CustomerStore.Save(ctx, c); err != nil {
		return err
	}

	slog.Info("customer_event", "event", "customer_updated", "customer_id", c.ID, "name", c.FullName, "renewal", renewal)

	return nil
}
