package customer

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Course type constants. The Thai tokens are the values persisted in the
// customer sheet and shown in the UI, so they are kept verbatim.
const (
	CourseMonthly    = "รายเดือน" // unlimited entry until the end date
	CoursePerSession = "รายครั้ง" // fixed number of visits plus an expiry date
)

// Domain errors
var (
	ErrEmptyName           = errors.New("customer name cannot be empty")
	ErrNameTooLong         = errors.New("customer name cannot exceed 100 characters")
	ErrInvalidPhone        = errors.New("phone must be 9-10 digits")
	ErrInvalidCourseType   = errors.New("course type must be รายเดือน or รายครั้ง")
	ErrInvalidStartDate    = errors.New("start date must be a valid date")
	ErrEmptyPackage        = errors.New("duration or package must be provided")
	ErrNegativeSessions    = errors.New("session counts cannot be negative")
	ErrNegativeComp        = errors.New("compensation days cannot be negative")
	ErrNotPerSession       = errors.New("customer is not on a per-session course")
	ErrNoSessionsLeft      = errors.New("customer has no sessions left")
	ErrUnresolvableEndDate = errors.New("cannot derive course end date from start date and package")
)

var phonePattern = regexp.MustCompile(`^[0-9]{9,10}$`)

// Customer holds one course registration row. A customer keeps the same ID
// across renewals; renewal replaces the course fields in place.
type Customer struct {
	ID                    string
	FullName              string
	Phone                 string // optional
	CourseType            string
	StartDate             time.Time
	DurationOrPackage     string // e.g. "3 เดือน" or "10 ครั้ง / 2 เดือน"
	OriginalEndDate       time.Time
	ManualEndDate         time.Time // zero when no override is set
	TotalCompensationDays int
	RemainingSessions     int // per-session courses only
	BonusSessions         int // per-session courses only
	CheckInHistory        []time.Time
}

// Validate checks if the Customer has valid data.
// PRE: Customer struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Session counters are meaningful only for per-session courses
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return ErrEmptyName
	}
	if len(c.FullName) > MaxNameLength {
		return ErrNameTooLong
	}
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		return ErrInvalidPhone
	}
	if c.CourseType != CourseMonthly && c.CourseType != CoursePerSession {
		return ErrInvalidCourseType
	}
	if c.StartDate.IsZero() {
		return ErrInvalidStartDate
	}
	if strings.TrimSpace(c.DurationOrPackage) == "" {
		return ErrEmptyPackage
	}
	if c.TotalCompensationDays < 0 {
		return ErrNegativeComp
	}
	if c.IsPerSession() && (c.RemainingSessions < 0 || c.BonusSessions < 0) {
		return ErrNegativeSessions
	}
	return nil
}

// IsPerSession returns true for per-session course customers.
// INVARIANT: Customer fields are not mutated
func (c *Customer) IsPerSession() bool {
	return c.CourseType == CoursePerSession
}

// TotalSessions returns the remaining entitlement including bonus sessions.
// Monthly customers always report 0.
func (c *Customer) TotalSessions() int {
	if !c.IsPerSession() {
		return 0
	}
	return c.RemainingSessions + c.BonusSessions
}

// ConsumeSession records one check-in on the given date.
// PRE: Customer is on a per-session course with RemainingSessions > 0
// POST: RemainingSessions decremented by 1, date appended to CheckInHistory
// INVARIANT: RemainingSessions never goes below 0; BonusSessions untouched
func (c *Customer) ConsumeSession(date time.Time) error {
	if !c.IsPerSession() {
		return ErrNotPerSession
	}
	if c.RemainingSessions <= 0 {
		return ErrNoSessionsLeft
	}
	c.RemainingSessions--
	c.CheckInHistory = append(c.CheckInHistory, date)
	return nil
}

// IsRenewal reports whether replacing this customer's course fields with the
// new start date constitutes a renewal (re-registration).
// INVARIANT: A start date change is always a renewal, for both course types
func (c *Customer) IsRenewal(newStartDate time.Time) bool {
	return !c.StartDate.Equal(newStartDate)
}

// ResetHistory clears the check-in log. Called on renewal.
// POST: CheckInHistory is empty
func (c *Customer) ResetHistory() {
	c.CheckInHistory = nil
}
