package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
	"github.com/supanat00/yaochaigym-data-record/internal/domain/dates"
)

// CustomerSaveStore defines the customer store interface needed to persist
// a new registration.
type CustomerSaveStore interface {
	Save(ctx context.Context, c customer.Customer) error
}

// RegisterCustomerInput carries input for the registration orchestrator.
// Dates arrive as strings from the form layer and are parsed here so that
// an unparseable start date rejects the write.
type RegisterCustomerInput struct {
	FullName          string
	Phone             string
	CourseType        string
	StartDate         string // YYYY-MM-DD
	DurationOrPackage string
	RemainingSessions *int // per-session only; nil defaults from the package token
	BonusSessions     *int // per-session only; nil defaults to 0
}

// RegisterCustomerResult carries the generated customer ID.
type RegisterCustomerResult struct {
	CustomerID string
	FullName   string
}

// RegisterCustomerDeps holds dependencies for RegisterCustomer.
type RegisterCustomerDeps struct {
	CustomerStore CustomerSaveStore
	GenerateID    func() string    // defaults to uuid
	Now           func() time.Time // defaults to dates.TodayUTC
}

// ExecuteRegisterCustomer creates a new customer course record.
// PRE: Input fields are present (structural validation happens at the form layer)
// POST: Customer persisted with derived OriginalEndDate, mirrored
// ManualEndDate, zero compensation and empty check-in history
// INVARIANT: A customer whose end date cannot be derived is never persisted
func ExecuteRegisterCustomer(ctx context.Context, input RegisterCustomerInput, deps RegisterCustomerDeps) (RegisterCustomerResult, error) {
	if deps.GenerateID == nil {
		deps.GenerateID = uuid.NewString
	}

	start, ok := dates.Parse(input.StartDate)
	if !ok {
		return RegisterCustomerResult{}, customer.ErrInvalidStartDate
	}
	endDate, err := customer.CourseEndDate(start, input.CourseType, input.DurationOrPackage)
	if err != nil {
		return RegisterCustomerResult{}, err
	}

	c := customer.Customer{
		ID:                deps.GenerateID(),
		FullName:          input.FullName,
		Phone:             input.Phone,
		CourseType:        input.CourseType,
		StartDate:         start,
		DurationOrPackage: input.DurationOrPackage,
		OriginalEndDate:   endDate,
		ManualEndDate:     endDate, // mirrored at creation
	}
	if c.IsPerSession() {
		if input.RemainingSessions != nil {
			c.RemainingSessions = *input.RemainingSessions
		} else {
			c.RemainingSessions = customer.PackageSessions(input.DurationOrPackage)
		}
		if input.BonusSessions != nil {
			c.BonusSessions = *input.BonusSessions
		}
	}

	if err := c.Validate(); err != nil {
		return RegisterCustomerResult{}, err
	}
	if err := deps.CustomerStore.Save(ctx, c); err != nil {
		return RegisterCustomerResult{}, err
	}

	slog.Info("customer_event", "event", "customer_registered", "customer_id", c.ID, "name", c.FullName, "course_type", c.CourseType, "end_date", dates.FormatISO(c.OriginalEndDate))

	return RegisterCustomerResult{CustomerID: c.ID, FullName: c.FullName}, nil
}
