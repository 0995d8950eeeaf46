package customer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/supanat00/yaochaigym-data-record/internal/domain/customer"
)

func validMonthly() customer.Customer {
	return customer.Customer{
		ID:                "c-1",
		FullName:          "สมชาย ใจดี",
		Phone:             "0812345678",
		CourseType:        customer.CourseMonthly,
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationOrPackage: "1 เดือน",
		OriginalEndDate:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
	}
}

func validPerSession() customer.Customer {
	return customer.Customer{
		ID:                "c-2",
		FullName:          "สมหญิง แข็งแรง",
		CourseType:        customer.CoursePerSession,
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationOrPackage: "10 ครั้ง / 2 เดือน",
		OriginalEndDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		RemainingSessions: 10,
	}
}

// TestCustomerValidation tests validation of Customer.
func TestCustomerValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*customer.Customer)
		wantErr error
	}{
		{"valid monthly", func(c *customer.Customer) {}, nil},
		{"valid per-session", func(c *customer.Customer) { *c = validPerSession() }, nil},
		{"empty name", func(c *customer.Customer) { c.FullName = "  " }, customer.ErrEmptyName},
		{"phone too short", func(c *customer.Customer) { c.Phone = "12345678" }, customer.ErrInvalidPhone},
		{"phone with letters", func(c *customer.Customer) { c.Phone = "08123456ab" }, customer.ErrInvalidPhone},
		{"empty phone is allowed", func(c *customer.Customer) { c.Phone = "" }, nil},
		{"unknown course type", func(c *customer.Customer) { c.CourseType = "weekly" }, customer.ErrInvalidCourseType},
		{"zero start date", func(c *customer.Customer) { c.StartDate = time.Time{} }, customer.ErrInvalidStartDate},
		{"empty package", func(c *customer.Customer) { c.DurationOrPackage = "" }, customer.ErrEmptyPackage},
		{"negative sessions", func(c *customer.Customer) {
			*c = validPerSession()
			c.RemainingSessions = -1
		}, customer.ErrNegativeSessions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validMonthly()
			tt.mutate(&c)
			err := c.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestTotalSessions tests the combined remaining entitlement.
func TestTotalSessions(t *testing.T) {
	c := validPerSession()
	c.RemainingSessions = 3
	c.BonusSessions = 2
	if got := c.TotalSessions(); got != 5 {
		t.Errorf("TotalSessions() = %d, want 5", got)
	}

	m := validMonthly()
	if got := m.TotalSessions(); got != 0 {
		t.Errorf("monthly TotalSessions() = %d, want 0", got)
	}
}

// TestConsumeSession tests session consumption down to exhaustion.
func TestConsumeSession(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("monthly customers cannot check in", func(t *testing.T) {
		c := validMonthly()
		if err := c.ConsumeSession(day); !errors.Is(err, customer.ErrNotPerSession) {
			t.Errorf("ConsumeSession() = %v, want ErrNotPerSession", err)
		}
	})

	t.Run("decrements and appends history", func(t *testing.T) {
		c := validPerSession()
		c.RemainingSessions = 3
		if err := c.ConsumeSession(day); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.RemainingSessions != 2 {
			t.Errorf("RemainingSessions = %d, want 2", c.RemainingSessions)
		}
		if len(c.CheckInHistory) != 1 || !c.CheckInHistory[0].Equal(day) {
			t.Errorf("CheckInHistory = %v, want exactly [%v]", c.CheckInHistory, day)
		}
	})

	t.Run("exhausts at zero", func(t *testing.T) {
		c := validPerSession()
		c.RemainingSessions = 3
		for i := 0; i < 3; i++ {
			if err := c.ConsumeSession(day); err != nil {
				t.Fatalf("check-in %d failed: %v", i+1, err)
			}
		}
		if c.RemainingSessions != 0 {
			t.Fatalf("RemainingSessions = %d, want 0", c.RemainingSessions)
		}
		if err := c.ConsumeSession(day); !errors.Is(err, customer.ErrNoSessionsLeft) {
			t.Errorf("ConsumeSession() on empty = %v, want ErrNoSessionsLeft", err)
		}
		if len(c.CheckInHistory) != 3 {
			t.Errorf("CheckInHistory length = %d, want 3", len(c.CheckInHistory))
		}
	})

	t.Run("bonus sessions are not drawn from", func(t *testing.T) {
		c := validPerSession()
		c.RemainingSessions = 0
		c.BonusSessions = 5
		if err := c.ConsumeSession(day); !errors.Is(err, customer.ErrNoSessionsLeft) {
			t.Errorf("ConsumeSession() = %v, want ErrNoSessionsLeft even with bonus sessions", err)
		}
		if c.BonusSessions != 5 {
			t.Errorf("BonusSessions = %d, want 5 untouched", c.BonusSessions)
		}
	})
}

// TestIsRenewal tests renewal detection by start date change.
func TestIsRenewal(t *testing.T) {
	c := validMonthly()
	if c.IsRenewal(c.StartDate) {
		t.Error("same start date should not be a renewal")
	}
	if !c.IsRenewal(c.StartDate.AddDate(0, 1, 0)) {
		t.Error("changed start date should be a renewal")
	}
}

// TestResetHistory tests clearing the check-in log.
func TestResetHistory(t *testing.T) {
	c := validPerSession()
	c.CheckInHistory = []time.Time{time.Now()}
	c.ResetHistory()
	if len(c.CheckInHistory) != 0 {
		t.Errorf("CheckInHistory = %v, want empty", c.CheckInHistory)
	}
}
